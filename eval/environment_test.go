package eval

import (
	"errors"
	"testing"

	"github.com/kr/pretty"

	"github.com/massmola/compiler/ast"
)

func TestEnvironment(t *testing.T) {
	env := NewEnvironment()
	if err := env.Declare("x", NUMBER, Number(1)); err != nil {
		t.Fatalf("unexpected error %s", err)
	}
	if err := env.Declare("x", NUMBER, Number(2)); !errors.Is(err, ErrRedeclared) {
		t.Errorf("expected a redeclaration error, got=%v", err)
	}
	if err := env.Declare("c", NUMBER, Color("red")); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("expected a type mismatch, got=%v", err)
	}
	if err := env.Assign("x", Color("red")); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("expected a type mismatch, got=%v", err)
	}
	if err := env.Assign("y", Number(3)); !errors.Is(err, ErrUndeclared) {
		t.Errorf("expected an undeclared error, got=%v", err)
	}
	if _, err := env.Lookup("y"); !errors.Is(err, ErrUndeclared) {
		t.Errorf("expected an undeclared error, got=%v", err)
	}
	if err := env.Assign("x", Number(9)); err != nil {
		t.Fatalf("unexpected error %s", err)
	}
	if v, _ := env.Lookup("x"); v != Number(9) {
		t.Errorf("expected x=9, got=%v", v)
	}
	env.Declare("b", COLOR, Color("blue"))
	if typ, ok := env.TypeOf("b"); !ok || typ != COLOR {
		t.Errorf("expected b to be a color, got=%s", typ)
	}
	if diff := pretty.Diff(env.Names(), []string{"b", "x"}); len(diff) != 0 {
		t.Errorf("unexpected names:\n%s", pretty.Sprint(diff))
	}
}

func TestValueType(t *testing.T) {
	if NUMBER.String() != "num" || COLOR.String() != "color" {
		t.Errorf("unexpected names %s %s", NUMBER, COLOR)
	}
	if Number(-0.5).String() != "-0.5" || Number(1e21).String() != "1000000000000000000000" {
		t.Errorf("unexpected number formatting %s", Number(-0.5))
	}
}

func TestArith(t *testing.T) {
	tests := []struct {
		op       ast.BinOp
		left     Value
		right    Value
		expected Value
		err      error
	}{
		{ast.Add, Number(1), Number(2), Number(3), nil},
		{ast.Sub, Number(1), Number(2), Number(-1), nil},
		{ast.Mul, Number(1.5), Number(2), Number(3), nil},
		{ast.Div, Number(1), Number(4), Number(0.25), nil},
		{ast.Div, Number(6), Number(3), Number(2), nil},
		{ast.Mul, Number(1e308), Number(10), nil, ErrArithmetic},
		{ast.Sub, Number(-1e308), Number(1e308), nil, ErrArithmetic},
		{ast.Div, Number(1), Number(0), nil, ErrArithmetic},
		{ast.Add, Color("a"), Number(2), nil, ErrType},
		{ast.Mul, Color("a"), Color("b"), nil, ErrType},
	}
	for i, test := range tests {
		v, err := Arith(test.op, test.left, test.right)
		if test.err != nil {
			if !errors.Is(err, test.err) {
				t.Errorf("tests[%d]: expected %q, got=%v", i, test.err, err)
			}
			continue
		}
		if err != nil || v != test.expected {
			t.Errorf("tests[%d]: expected=%v, got=%v (%v)", i, test.expected, v, err)
		}
	}
}

func TestCompare(t *testing.T) {
	for _, op := range []ast.CmpOp{ast.Lt, ast.Gt, ast.Le, ast.Ge} {
		if _, err := Compare(op, Color("a"), Color("b")); !errors.Is(err, ErrType) {
			t.Errorf("%s on colors: expected a type error, got=%v", op, err)
		}
	}
	for _, op := range []ast.CmpOp{ast.Eq, ast.Ne, ast.Lt} {
		if _, err := Compare(op, Number(1), Color("b")); !errors.Is(err, ErrType) {
			t.Errorf("%s on mixed operands: expected a type error, got=%v", op, err)
		}
	}
	if ok, err := Compare(ast.Eq, Color("red"), Color("red")); err != nil || !ok {
		t.Errorf("expected equal colors, got=%t (%v)", ok, err)
	}
}

func TestRuntimeErrorFormat(t *testing.T) {
	tests := []struct {
		err      *RuntimeError
		expected string
	}{
		{&RuntimeError{Filename: "a.draw", Pos: ast.Pos{Line: 3, Column: 2}, Err: ErrArithmetic}, "a.draw:3:2: arithmetic error"},
		{&RuntimeError{Filename: "a.draw", Err: ErrArithmetic}, "a.draw: arithmetic error"},
		{&RuntimeError{Err: ErrArithmetic}, "arithmetic error"},
	}
	for i, test := range tests {
		if test.err.Error() != test.expected {
			t.Errorf("tests[%d]: expected=%q, got=%q", i, test.expected, test.err.Error())
		}
	}
}

package eval

import (
	"fmt"
	"math"

	"github.com/massmola/compiler/ast"
)

// Arith applies an arithmetic operator. Both operands must be numbers
// and the result must be finite.
func Arith(op ast.BinOp, left, right Value) (Value, error) {
	v, err := arith(op, left, right)
	if err != nil {
		return nil, err
	}
	if f := float64(v); math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, fmt.Errorf("%w: %s %s %s overflows", ErrArithmetic, left, op, right)
	}
	return v, nil
}

func arith(op ast.BinOp, left, right Value) (Number, error) {
	l, lok := left.(Number)
	r, rok := right.(Number)
	if !lok || !rok {
		return 0, fmt.Errorf("%w: unsupported operand types for %s: %s and %s", ErrType, op, left.Type(), right.Type())
	}
	switch op {
	case ast.Add:
		return l + r, nil
	case ast.Sub:
		return l - r, nil
	case ast.Mul:
		return l * r, nil
	case ast.Div:
		if r == 0 {
			return 0, fmt.Errorf("%w: division by zero", ErrArithmetic)
		}
		return l / r, nil
	}
	return 0, fmt.Errorf("unknown operator %s", op)
}

// Compare applies a comparison operator. Numbers support every operator;
// colours only support equality, compared exactly by name.
func Compare(op ast.CmpOp, left, right Value) (bool, error) {
	if left.Type() != right.Type() {
		return false, fmt.Errorf("%w: cannot compare %s and %s with %s", ErrType, left.Type(), right.Type(), op)
	}
	switch l := left.(type) {
	case Number:
		r := right.(Number)
		switch op {
		case ast.Lt:
			return l < r, nil
		case ast.Gt:
			return l > r, nil
		case ast.Le:
			return l <= r, nil
		case ast.Ge:
			return l >= r, nil
		case ast.Eq:
			return l == r, nil
		case ast.Ne:
			return l != r, nil
		}
	case Color:
		r := right.(Color)
		switch op {
		case ast.Eq:
			return l == r, nil
		case ast.Ne:
			return l != r, nil
		case ast.Lt, ast.Gt, ast.Le, ast.Ge:
			return false, fmt.Errorf("%w: %s is not defined on colors", ErrType, op)
		}
	}
	return false, fmt.Errorf("unknown operator %s", op)
}

package checker_test

import (
	"strings"
	"testing"

	"github.com/massmola/compiler/ast"
	"github.com/massmola/compiler/checker"
	"github.com/massmola/compiler/eval"
	"github.com/massmola/compiler/parser"
)

func TestCheckerValid(t *testing.T) {
	tests := []string{
		"",
		`num x = 5; x = x + 3; RECT(x, x, 10, 10, "red");`,
		`color c = #fff; if (c == "white") c = "black"; else c = #000;`,
		`num i = 0; while (i < 10) { LINE(i, 0, i, 10, "k"); i = i + 1; }`,
		`if (1 < 2) { num a = 1; } else { num a = 2; } a = 3;`,
		`num z = 0; num q = 1 / z;`,
	}
	for i, input := range tests {
		prog := parse(t, input)
		if errs := checker.Check(prog); len(errs) != 0 {
			t.Errorf("tests[%d] (%q): unexpected errors %v", i, input, errs)
		}
	}
}

func TestCheckerInvalid(t *testing.T) {
	tests := []struct {
		input   string
		message string
	}{
		{`num x = 1; num x = 2;`, "x is already declared"},
		{`num x = 1; RECT(0, 0, 1, 1, "r"); color x = "r";`, "x is already declared"},
		{`x = 1;`, "assignment to undeclared variable x"},
		{`num y = x;`, "undeclared variable x"},
		{`num x = "red";`, "cannot initialise num x with a color"},
		{`color c = "blue"; num n = 1; c = n;`, "cannot assign a num to color c"},
		{`color c = "red"; num x = c + 1;`, "+ is not defined on colors"},
		{`if ("red" < "blue") RECT(0, 0, 1, 1, "a");`, "< is not defined on colors"},
		{`if (1 == "blue") RECT(0, 0, 1, 1, "a");`, "cannot compare num with color"},
		{`RECT(0, 0, "wide", 1, "a");`, "RECT width must be num, got color"},
		{`LINE(0, 0, 1, 1, 3);`, "LINE stroke must be color, got num"},
		{`num x = 4 / 0;`, "division by zero"},
		// errors in branches that would never run are still reported
		{`if (1 > 2) num y = q;`, "undeclared variable q"},
		{`num i = 0; while (i > 0) i = "x";`, "cannot assign a color to num i"},
		{`num i = 0; while (i < 2) { num y = 1; i = i + 1; }`, "y is declared inside a loop and is redeclared on the next iteration"},
		{`num i = 0; while (i < 2) { if (i > 0) color c = "red"; i = i + 1; }`, "c is declared inside a loop and is redeclared on the next iteration"},
	}
	for i, test := range tests {
		prog := parse(t, test.input)
		errs := checker.Check(prog)
		if len(errs) != 1 {
			t.Errorf("tests[%d] (%q): expected 1 error, got=%v", i, test.input, errs)
			continue
		}
		if !strings.HasSuffix(errs[0].Error(), test.message) {
			t.Errorf("tests[%d] (%q): expected=%q, got=%q", i, test.input, test.message, errs[0])
		}
	}
}

func TestCheckerPosition(t *testing.T) {
	prog := parse(t, "num x = 1;\nRECT(x, y, 1, 1, \"r\");")
	errs := checker.Check(prog)
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got=%v", errs)
	}
	cerr, ok := errs[0].(checker.CheckerError)
	if !ok {
		t.Fatalf("expected a CheckerError, got=%T", errs[0])
	}
	if cerr.Pos != (ast.Pos{Line: 2, Column: 9}) || cerr.Filename != "check.draw" {
		t.Errorf("unexpected position %s", cerr)
	}
}

func TestCheckerGivesUp(t *testing.T) {
	prog := parse(t, strings.Repeat("x = 1;", 25))
	errs := checker.Check(prog)
	if len(errs) != checker.MaxErrors+1 || errs[len(errs)-1] != checker.TooManyErrors {
		t.Errorf("expected to give up after %d errors, got=%d", checker.MaxErrors, len(errs))
	}
}

func TestCheckerGlobals(t *testing.T) {
	prog := parse(t, `x = x + 1; c = "red";`)
	c := checker.New(prog)
	c.AddGlobals(checker.Scope{"x": eval.NUMBER, "c": eval.COLOR})
	c.Check()
	if len(c.Errors) != 0 {
		t.Errorf("unexpected errors %v", c.Errors)
	}
}

func parse(t *testing.T, input string) *ast.Program {
	t.Helper()
	prog, errs := parser.Parse("check.draw", input)
	if len(errs) != 0 {
		t.Fatalf("parse errors in %q: %v", input, errs)
	}
	return prog
}

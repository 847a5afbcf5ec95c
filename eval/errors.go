package eval

import (
	"errors"
	"fmt"

	"github.com/massmola/compiler/ast"
)

var (
	ErrRedeclared   = errors.New("variable already declared")
	ErrUndeclared   = errors.New("undeclared variable")
	ErrTypeMismatch = errors.New("type mismatch")
	ErrType         = errors.New("type error")
	ErrArithmetic   = errors.New("arithmetic error")
	ErrStepLimit    = errors.New("step limit exceeded")

	// ErrMalformed reports a tree the parser would never build, such
	// as a declaration without an initialiser.
	ErrMalformed = errors.New("malformed program")
)

// RuntimeError attaches a source position to an evaluation failure.
// Use errors.Is against the sentinels above to find out what went wrong.
type RuntimeError struct {
	Filename string
	Pos      ast.Pos
	Err      error
}

func (e *RuntimeError) Error() string {
	switch {
	case e.Pos.IsValid():
		return fmt.Sprintf("%s:%d:%d: %s", e.Filename, e.Pos.Line, e.Pos.Column, e.Err)
	case e.Filename != "":
		return fmt.Sprintf("%s: %s", e.Filename, e.Err)
	}
	return e.Err.Error()
}

func (e *RuntimeError) Unwrap() error { return e.Err }

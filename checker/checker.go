// Package checker implements a static pass over a parsed program. It
// reports the errors the evaluator would hit (redeclarations, undeclared
// names and type errors) without running anything, including errors in
// branches and loop bodies that a particular run would never reach.
// The pass is best-effort; the evaluator remains authoritative.
package checker

import (
	"errors"
	"fmt"

	"github.com/massmola/compiler/ast"
	"github.com/massmola/compiler/eval"
)

var TooManyErrors = errors.New("too many errors")

const MaxErrors = 10

type CheckerError struct {
	Filename string
	Pos      ast.Pos
	Message  string
}

func (ce CheckerError) Error() string { return ce.String() }
func (ce CheckerError) String() string {
	return fmt.Sprintf("%s:%d:%d: %s", ce.Filename, ce.Pos.Line, ce.Pos.Column, ce.Message)
}

// Scope maps each declared name to its declared type. The language has
// one flat scope, so there is no stack of these.
type Scope map[string]eval.ValueType

func (s Scope) copy() Scope {
	c := make(Scope, len(s))
	for k, v := range s {
		c[k] = v
	}
	return c
}

// unknown is the type of an expression whose type could not be
// determined because an error was already reported for it.
const unknown = eval.ValueType(0)

type Checker struct {
	prog  *ast.Program
	scope Scope
	// loops is the depth of while bodies being checked.
	loops  int
	Errors []error
}

func New(prog *ast.Program) *Checker {
	return &Checker{
		prog:   prog,
		scope:  Scope{},
		Errors: []error{},
	}
}

// AddGlobals declares names that exist before the program runs, e.g.
// the variables of a REPL session.
func (c *Checker) AddGlobals(globals Scope) {
	for name, typ := range globals {
		c.scope[name] = typ
	}
}

// Check checks the whole program. It can only be called once.
func (c *Checker) Check() {
	for _, stmt := range ast.Flatten(c.prog.Body) {
		c.check(stmt)
		if len(c.Errors) >= MaxErrors {
			c.Errors = append(c.Errors, TooManyErrors)
			break
		}
	}
}

// Check is a shorthand for New followed by Check.
func Check(prog *ast.Program) []error {
	c := New(prog)
	c.Check()
	return c.Errors
}

func (c *Checker) err(pos ast.Pos, s string, args ...interface{}) {
	c.Errors = append(c.Errors, CheckerError{
		Filename: c.prog.Filename,
		Pos:      pos,
		Message:  fmt.Sprintf(s, args...),
	})
}

func (c *Checker) check(node ast.Stmt) {
	switch node := node.(type) {
	case nil:
		return
	case *ast.Sequence:
		for _, stmt := range ast.Flatten(node) {
			c.check(stmt)
		}
	case *ast.DeclNum:
		c.checkDecl(node.Pos, node.Name, eval.NUMBER, node.Init)
	case *ast.DeclColor:
		c.checkDecl(node.Pos, node.Name, eval.COLOR, node.Init)
	case *ast.Assign:
		c.checkAssign(node)
	case *ast.Rect:
		c.expect(node.X, eval.NUMBER, "RECT x")
		c.expect(node.Y, eval.NUMBER, "RECT y")
		c.expect(node.W, eval.NUMBER, "RECT width")
		c.expect(node.H, eval.NUMBER, "RECT height")
		c.expect(node.Fill, eval.COLOR, "RECT fill")
	case *ast.Line:
		c.expect(node.X1, eval.NUMBER, "LINE x1")
		c.expect(node.Y1, eval.NUMBER, "LINE y1")
		c.expect(node.X2, eval.NUMBER, "LINE x2")
		c.expect(node.Y2, eval.NUMBER, "LINE y2")
		c.expect(node.Stroke, eval.COLOR, "LINE stroke")
	case *ast.While:
		c.checkCondition(node.Cond)
		c.loops++
		c.check(node.Body)
		c.loops--
	case *ast.If:
		c.checkIf(node)
	default:
		panic(fmt.Sprintf("unhandled node %#+v", node))
	}
}

func (c *Checker) checkDecl(pos ast.Pos, name string, typ eval.ValueType, init ast.Expr) {
	vt := c.typeOf(init)
	if vt != unknown && vt != typ {
		c.err(pos, "cannot initialise %s %s with a %s", typ, name, vt)
	}
	if _, ok := c.scope[name]; ok {
		c.err(pos, "%s is already declared", name)
		return
	}
	if c.loops > 0 {
		c.err(pos, "%s is declared inside a loop and is redeclared on the next iteration", name)
	}
	c.scope[name] = typ
}

func (c *Checker) checkAssign(node *ast.Assign) {
	vt := c.typeOf(node.Value)
	typ, ok := c.scope[node.Name]
	if !ok {
		c.err(node.Pos, "assignment to undeclared variable %s", node.Name)
		return
	}
	if vt != unknown && vt != typ {
		c.err(node.Pos, "cannot assign a %s to %s %s", vt, typ, node.Name)
	}
}

// checkIf checks each branch against its own copy of the scope. Names
// declared in either branch are treated as declared afterwards, which
// keeps later statements from reporting spurious undeclared names.
func (c *Checker) checkIf(node *ast.If) {
	c.checkCondition(node.Cond)
	outer := c.scope
	c.scope = outer.copy()
	c.check(node.Then)
	then := c.scope
	c.scope = outer.copy()
	c.check(node.Else)
	for name, typ := range then {
		if _, ok := c.scope[name]; !ok {
			c.scope[name] = typ
		}
	}
}

func (c *Checker) expect(node ast.Expr, typ eval.ValueType, what string) {
	vt := c.typeOf(node)
	if vt != unknown && vt != typ {
		c.err(node.Position(), "%s must be %s, got %s", what, typ, vt)
	}
}

func (c *Checker) checkCondition(node *ast.Condition) {
	lt := c.typeOf(node.Left)
	rt := c.typeOf(node.Right)
	if lt == unknown || rt == unknown {
		return
	}
	if lt != rt {
		c.err(node.Pos, "cannot compare %s with %s", lt, rt)
		return
	}
	if lt == eval.COLOR && node.Op.Ordering() {
		c.err(node.Pos, "%s is not defined on colors", node.Op)
	}
}

func (c *Checker) typeOf(node ast.Expr) eval.ValueType {
	switch node := node.(type) {
	case *ast.Number:
		return eval.NUMBER
	case *ast.ColorLit:
		return eval.COLOR
	case *ast.Ident:
		typ, ok := c.scope[node.Name]
		if !ok {
			c.err(node.Pos, "undeclared variable %s", node.Name)
			return unknown
		}
		return typ
	case *ast.Binary:
		lt := c.typeOf(node.Left)
		rt := c.typeOf(node.Right)
		if lt == eval.COLOR || rt == eval.COLOR {
			c.err(node.Pos, "%s is not defined on colors", node.Op)
			return unknown
		}
		if n, ok := node.Right.(*ast.Number); ok && node.Op == ast.Div && n.Value == 0 {
			c.err(node.Pos, "division by zero")
			return unknown
		}
		if lt == unknown || rt == unknown {
			return unknown
		}
		return eval.NUMBER
	}
	panic(fmt.Sprintf("unhandled node %#+v", node))
}

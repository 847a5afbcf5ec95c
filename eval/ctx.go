package eval

import (
	"context"
	"errors"
	"fmt"

	"github.com/massmola/compiler/ast"
	"github.com/massmola/compiler/logger"
)

// Context executes statements against an environment and forwards
// drawing commands to a sink. Execution stops at the first error.
type Context struct {
	env  *Environment
	sink Sink
	// filename is only used when reporting errors.
	filename string
	log      *logger.Logger
	ctx      context.Context
	// steps counts executed statements and loop iterations.
	steps    int
	maxSteps int
}

type Option func(*Context)

// WithStepLimit aborts execution with ErrStepLimit once more than n
// statements or loop iterations have run. n <= 0 means no limit.
func WithStepLimit(n int) Option {
	return func(c *Context) { c.maxSteps = n }
}

// WithContext aborts execution when ctx is done.
func WithContext(ctx context.Context) Option {
	return func(c *Context) { c.ctx = ctx }
}

func WithLogger(log *logger.Logger) Option {
	return func(c *Context) {
		if log != nil {
			c.log = log
		}
	}
}

func WithFilename(fn string) Option {
	return func(c *Context) { c.filename = fn }
}

func NewContext(env *Environment, sink Sink, opts ...Option) *Context {
	if env == nil {
		env = NewEnvironment()
	}
	if sink == nil {
		sink = SinkFunc(func(Command) {})
	}
	c := &Context{
		env:  env,
		sink: sink,
		log:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Context) Env() *Environment { return c.env }

// Steps returns how many statements and loop iterations have run.
func (c *Context) Steps() int { return c.steps }

// Execute runs stmt against env, emitting drawing commands to sink.
func Execute(stmt ast.Stmt, env *Environment, sink Sink) error {
	return NewContext(env, sink).Exec(stmt)
}

// Evaluate computes the value of an expression. It never changes env.
func Evaluate(expr ast.Expr, env *Environment) (Value, error) {
	return NewContext(env, nil).EvalExpr(expr)
}

// EvaluateCondition computes the truth of a condition. It never changes env.
func EvaluateCondition(cond *ast.Condition, env *Environment) (bool, error) {
	return NewContext(env, nil).EvalCond(cond)
}

// Run executes a whole program in a fresh environment and returns the
// commands it drew. On error the commands drawn before the failure are
// still returned.
func Run(prog *ast.Program, opts ...Option) ([]Command, *Environment, error) {
	drawing := &Log{}
	opts = append([]Option{WithFilename(prog.Filename)}, opts...)
	c := NewContext(NewEnvironment(), drawing, opts...)
	done := c.log.Step("run " + prog.Filename)
	err := c.Exec(prog.Body)
	done()
	return drawing.Commands(), c.env, err
}

// ==========
// Statements
// ==========

// Exec runs a statement. A nil statement does nothing.
func (c *Context) Exec(node ast.Stmt) error {
	for node != nil {
		seq, ok := node.(*ast.Sequence)
		if !ok {
			return c.execOne(node)
		}
		if seq == nil {
			return nil
		}
		if err := c.Exec(seq.Stmt); err != nil {
			return err
		}
		node = seq.Next
	}
	return nil
}

func (c *Context) execOne(node ast.Stmt) error {
	if err := c.step(); err != nil {
		return c.errorAt(node.Position(), err)
	}
	switch node := node.(type) {
	case *ast.DeclNum:
		return c.execDecl(node.Pos, node.Name, NUMBER, node.Init)
	case *ast.DeclColor:
		return c.execDecl(node.Pos, node.Name, COLOR, node.Init)
	case *ast.Assign:
		return c.execAssign(node)
	case *ast.Rect:
		return c.execRect(node)
	case *ast.Line:
		return c.execLine(node)
	case *ast.While:
		return c.execWhile(node)
	case *ast.If:
		return c.execIf(node)
	}
	return c.errorAt(node.Position(), fmt.Errorf("%w: unexpected statement %T", ErrMalformed, node))
}

func (c *Context) execDecl(pos ast.Pos, name string, typ ValueType, init ast.Expr) error {
	v, err := c.EvalExpr(init)
	if err != nil {
		return err
	}
	if v.Type() != typ {
		return c.errorAt(pos, fmt.Errorf("%w: cannot initialise %s %s with %s %s", ErrTypeMismatch, typ, name, v.Type(), v))
	}
	if err := c.env.Declare(name, typ, v); err != nil {
		return c.errorAt(pos, err)
	}
	c.log.Debug("%s %s = %s", typ, name, v)
	return nil
}

func (c *Context) execAssign(node *ast.Assign) error {
	v, err := c.EvalExpr(node.Value)
	if err != nil {
		return err
	}
	if err := c.env.Assign(node.Name, v); err != nil {
		return c.errorAt(node.Pos, err)
	}
	c.log.Debug("%s = %s", node.Name, v)
	return nil
}

func (c *Context) execRect(node *ast.Rect) error {
	var cmd RectCmd
	var err error
	if cmd.X, err = c.number(node.X, "RECT x"); err != nil {
		return err
	}
	if cmd.Y, err = c.number(node.Y, "RECT y"); err != nil {
		return err
	}
	if cmd.W, err = c.number(node.W, "RECT width"); err != nil {
		return err
	}
	if cmd.H, err = c.number(node.H, "RECT height"); err != nil {
		return err
	}
	if cmd.Fill, err = c.color(node.Fill, "RECT fill"); err != nil {
		return err
	}
	c.emit(cmd)
	return nil
}

func (c *Context) execLine(node *ast.Line) error {
	var cmd LineCmd
	var err error
	if cmd.X1, err = c.number(node.X1, "LINE x1"); err != nil {
		return err
	}
	if cmd.Y1, err = c.number(node.Y1, "LINE y1"); err != nil {
		return err
	}
	if cmd.X2, err = c.number(node.X2, "LINE x2"); err != nil {
		return err
	}
	if cmd.Y2, err = c.number(node.Y2, "LINE y2"); err != nil {
		return err
	}
	if cmd.Stroke, err = c.color(node.Stroke, "LINE stroke"); err != nil {
		return err
	}
	c.emit(cmd)
	return nil
}

func (c *Context) emit(cmd Command) {
	c.log.Debug("emit %s", cmd)
	c.sink.Emit(cmd)
}

func (c *Context) execWhile(node *ast.While) error {
	for {
		ok, err := c.EvalCond(node.Cond)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := c.Exec(node.Body); err != nil {
			return err
		}
		if err := c.step(); err != nil {
			return c.errorAt(node.Pos, err)
		}
	}
}

func (c *Context) execIf(node *ast.If) error {
	ok, err := c.EvalCond(node.Cond)
	if err != nil {
		return err
	}
	if ok {
		return c.Exec(node.Then)
	}
	return c.Exec(node.Else)
}

// step is called once per statement and once per loop iteration.
func (c *Context) step() error {
	c.steps++
	if c.maxSteps > 0 && c.steps > c.maxSteps {
		return fmt.Errorf("%w (limit %d)", ErrStepLimit, c.maxSteps)
	}
	if c.ctx != nil {
		if err := c.ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}

// ===========
// Expressions
// ===========

// EvalExpr computes the value of an expression.
func (c *Context) EvalExpr(node ast.Expr) (Value, error) {
	switch node := node.(type) {
	case *ast.Number:
		return Number(node.Value), nil
	case *ast.ColorLit:
		return Color(node.Value), nil
	case *ast.Ident:
		v, err := c.env.Lookup(node.Name)
		if err != nil {
			return nil, c.errorAt(node.Pos, err)
		}
		return v, nil
	case *ast.Binary:
		return c.evalBinary(node)
	case nil:
		return nil, c.errorAt(ast.Pos{}, fmt.Errorf("%w: missing expression", ErrMalformed))
	}
	return nil, c.errorAt(node.Position(), fmt.Errorf("%w: unexpected expression %T", ErrMalformed, node))
}

func (c *Context) evalBinary(node *ast.Binary) (Value, error) {
	left, err := c.EvalExpr(node.Left)
	if err != nil {
		return nil, err
	}
	right, err := c.EvalExpr(node.Right)
	if err != nil {
		return nil, err
	}
	v, err := Arith(node.Op, left, right)
	if err != nil {
		return nil, c.errorAt(node.Pos, err)
	}
	return v, nil
}

// EvalCond computes the truth of a condition. Both sides are always
// evaluated, left first.
func (c *Context) EvalCond(node *ast.Condition) (bool, error) {
	if node == nil {
		return false, c.errorAt(ast.Pos{}, fmt.Errorf("%w: missing condition", ErrMalformed))
	}
	left, err := c.EvalExpr(node.Left)
	if err != nil {
		return false, err
	}
	right, err := c.EvalExpr(node.Right)
	if err != nil {
		return false, err
	}
	ok, err := Compare(node.Op, left, right)
	if err != nil {
		return false, c.errorAt(node.Pos, err)
	}
	return ok, nil
}

func (c *Context) number(node ast.Expr, what string) (Number, error) {
	v, err := c.EvalExpr(node)
	if err != nil {
		return 0, err
	}
	n, ok := v.(Number)
	if !ok {
		return 0, c.errorAt(node.Position(), fmt.Errorf("%w: %s must be num, got %s %s", ErrTypeMismatch, what, v.Type(), v))
	}
	return n, nil
}

func (c *Context) color(node ast.Expr, what string) (Color, error) {
	v, err := c.EvalExpr(node)
	if err != nil {
		return "", err
	}
	col, ok := v.(Color)
	if !ok {
		return "", c.errorAt(node.Position(), fmt.Errorf("%w: %s must be color, got %s %s", ErrTypeMismatch, what, v.Type(), v))
	}
	return col, nil
}

// errorAt wraps err with a position unless it already carries one.
func (c *Context) errorAt(pos ast.Pos, err error) error {
	var rerr *RuntimeError
	if errors.As(err, &rerr) {
		return err
	}
	return &RuntimeError{Filename: c.filename, Pos: pos, Err: err}
}

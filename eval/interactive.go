package eval

import (
	"github.com/massmola/compiler/ast"
	"github.com/massmola/compiler/parser"
)

// Interactive runs source one chunk at a time against a persistent
// environment, as a REPL does. Every command drawn so far is kept.
type Interactive struct {
	Filename string
	env      *Environment
	drawing  *Log
	opts     []Option
}

func NewInteractive(opts ...Option) *Interactive {
	return &Interactive{
		Filename: "<stdin>",
		env:      NewEnvironment(),
		drawing:  &Log{},
		opts:     opts,
	}
}

// Run parses and executes input. It returns the commands drawn by this
// input alone. Names declared before a runtime error stay declared.
// opts apply to this call only, after the ones given to NewInteractive.
func (ic *Interactive) Run(input string, opts ...Option) ([]Command, []error) {
	prog, errs := parser.Parse(ic.Filename, input)
	if len(errs) != 0 {
		return nil, errs
	}
	return ic.Exec(prog, opts...)
}

// Exec is Run for an already parsed program.
func (ic *Interactive) Exec(prog *ast.Program, opts ...Option) ([]Command, []error) {
	chunk := &Log{}
	all := append([]Option{WithFilename(ic.Filename)}, ic.opts...)
	all = append(all, opts...)
	err := NewContext(ic.env, chunk, all...).Exec(prog.Body)
	for _, cmd := range chunk.Commands() {
		ic.drawing.Emit(cmd)
	}
	if err != nil {
		return chunk.Commands(), []error{err}
	}
	return chunk.Commands(), nil
}

func (ic *Interactive) Env() *Environment  { return ic.env }
func (ic *Interactive) Drawing() []Command { return ic.drawing.Commands() }
func (ic *Interactive) ClearDrawing()      { ic.drawing.Reset() }

// Reset forgets every variable and the drawing.
func (ic *Interactive) Reset() {
	ic.env = NewEnvironment()
	ic.drawing.Reset()
}

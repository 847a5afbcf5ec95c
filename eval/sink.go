package eval

import (
	"fmt"
)

// Command is a drawing command produced by executing RECT or LINE.
type Command interface {
	Kind() string
	String() string
	command()
}

type RectCmd struct {
	X, Y, W, H Number
	Fill       Color
}

type LineCmd struct {
	X1, Y1, X2, Y2 Number
	Stroke         Color
}

func (RectCmd) command() {}
func (LineCmd) command() {}

func (RectCmd) Kind() string { return "rect" }
func (LineCmd) Kind() string { return "line" }

func (c RectCmd) String() string {
	return fmt.Sprintf("RECT(%s, %s, %s, %s, %q)", c.X, c.Y, c.W, c.H, string(c.Fill))
}

func (c LineCmd) String() string {
	return fmt.Sprintf("LINE(%s, %s, %s, %s, %q)", c.X1, c.Y1, c.X2, c.Y2, string(c.Stroke))
}

// Sink receives drawing commands in execution order.
type Sink interface {
	Emit(cmd Command)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(cmd Command)

func (f SinkFunc) Emit(cmd Command) { f(cmd) }

// Log is a Sink that records every command it is given.
type Log struct {
	cmds []Command
}

func (l *Log) Emit(cmd Command)    { l.cmds = append(l.cmds, cmd) }
func (l *Log) Commands() []Command { return l.cmds }
func (l *Log) Len() int            { return len(l.cmds) }
func (l *Log) Reset()              { l.cmds = nil }

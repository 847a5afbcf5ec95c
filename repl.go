package main

// implements the sketch repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/chzyer/readline"

	"github.com/massmola/compiler/checker"
	"github.com/massmola/compiler/eval"
	"github.com/massmola/compiler/parser"
)

func (a *app) replCmd() int {
	fmt.Fprintln(a.stdout, strings.Replace(LOGO, "$VERSION", sliceVersion(VERSION), 1))
	rl, err := readline.New("> ")
	if err != nil {
		fmt.Fprintln(a.stderr, err)
		return 1
	}
	defer rl.Close()

	ic := eval.NewInteractive(
		eval.WithStepLimit(a.cfg.Limits.MaxSteps),
		eval.WithLogger(a.log.WithPrefix("eval")),
	)
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err != nil {
			if err != io.EOF {
				fmt.Fprintln(a.stderr, err)
			}
			break
		}
		if a.replLine(ic, line) {
			break
		}
	}
	return 0
}

// replLine handles one line of input and reports whether the session
// should end. Lines starting with ':' are session commands.
func (a *app) replLine(ic *eval.Interactive, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if strings.HasPrefix(line, ":") {
		return a.replCommand(ic, line)
	}
	prog, errs := parser.Parse(ic.Filename, line)
	if a.reportErrors(errs) {
		return false
	}
	c := checker.New(prog)
	c.AddGlobals(sessionScope(ic.Env()))
	c.Check()
	if a.reportErrors(c.Errors) {
		return false
	}

	// Ctrl-C stops a runaway line without ending the session.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	cmds, errs := ic.Exec(prog, eval.WithContext(ctx))
	for _, cmd := range cmds {
		fmt.Fprintln(a.stdout, cmd)
	}
	a.reportErrors(errs)
	return false
}

// sessionScope describes the variables a session has declared so far.
func sessionScope(env *eval.Environment) checker.Scope {
	scope := checker.Scope{}
	for _, name := range env.Names() {
		scope[name], _ = env.TypeOf(name)
	}
	return scope
}

func (a *app) replCommand(ic *eval.Interactive, line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":quit", ":q":
		return true
	case ":env":
		env := ic.Env()
		for _, name := range env.Names() {
			typ, _ := env.TypeOf(name)
			v, _ := env.Lookup(name)
			fmt.Fprintf(a.stdout, "%s %s = %s\n", typ, name, v)
		}
	case ":drawing":
		for _, cmd := range ic.Drawing() {
			fmt.Fprintln(a.stdout, cmd)
		}
	case ":svg":
		if len(fields) != 2 {
			fmt.Fprintln(a.stderr, "usage: :svg PATH")
			return false
		}
		if err := a.writeSVG(fields[1], ic.Drawing()); err != nil {
			fmt.Fprintln(a.stderr, err)
			return false
		}
		fmt.Fprintf(a.stdout, "wrote %d commands to %s\n", len(ic.Drawing()), fields[1])
	case ":clear":
		ic.ClearDrawing()
	case ":reset":
		ic.Reset()
	default:
		fmt.Fprintf(a.stderr, "unknown command %s (try :env :drawing :svg :clear :reset :quit)\n", fields[0])
	}
	return false
}

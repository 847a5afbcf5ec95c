package main

// implements the sketch command line tool

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/kr/pretty"

	"github.com/massmola/compiler/ast"
	"github.com/massmola/compiler/checker"
	"github.com/massmola/compiler/config"
	"github.com/massmola/compiler/eval"
	"github.com/massmola/compiler/logger"
	"github.com/massmola/compiler/parser"
	"github.com/massmola/compiler/render"
	"github.com/massmola/compiler/store"
)

var VERSION string
var LOGO = `
     _       _      _     |
 ___| |_____| |____| |_   | sketch drawing language
(_-<| / / -_)  _/ _| ' \  | version: $VERSION
/__/|_\_\___|\__\__|_||_| |
`

func sliceVersion(v string) string {
	if v == "" {
		return "dev"
	}
	m := 10
	if len(v) < 10 {
		m = len(v)
	}
	return v[0:m]
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `usage: sketch [-config file] [-v] <command> [arguments]

commands:
  run [-o out.svg] [-save name] file   execute a program and render it
  check file                           report static errors
  fmt file                             print a program in canonical form
  ast file                             dump the syntax tree
  repl                                 start an interactive session
  show [-o out.svg] name               render a saved drawing
  list                                 list saved drawings
  rm name                              delete a saved drawing
  version                              print the version
`)
}

func main() {
	os.Exit(run(os.Args[1:]))
}

type app struct {
	cfg    *config.Config
	log    *logger.Logger
	stdout io.Writer
	stderr io.Writer
}

func run(args []string) int {
	return runWith(args, os.Stdout, os.Stderr)
}

func runWith(args []string, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("sketch", flag.ContinueOnError)
	global.SetOutput(stderr)
	global.Usage = func() { printUsage(stderr) }
	cfgPath := global.String("config", "", "configuration file (default "+config.DefaultPath+" if present)")
	verbose := global.Bool("v", false, "log at debug level")
	if err := global.Parse(args); err != nil {
		return 2
	}
	rest := global.Args()
	if len(rest) == 0 {
		printUsage(stderr)
		return 1
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	level := cfg.Level()
	if *verbose {
		level = logger.LevelDebug
	}
	a := &app{
		cfg:    cfg,
		log:    logger.New(stderr, level, "sketch"),
		stdout: stdout,
		stderr: stderr,
	}
	if cfg.Path != "" {
		a.log.Debug("loaded config %s", cfg.Path)
	}

	switch rest[0] {
	case "-h", "--help", "help":
		printUsage(stdout)
		return 0
	case "version":
		fmt.Fprintln(stdout, "sketch", sliceVersion(VERSION))
		return 0
	case "run":
		return a.runCmd(rest[1:])
	case "check":
		return a.checkCmd(rest[1:])
	case "fmt":
		return a.fmtCmd(rest[1:])
	case "ast":
		return a.astCmd(rest[1:])
	case "repl":
		return a.replCmd()
	case "show":
		return a.showCmd(rest[1:])
	case "list":
		return a.listCmd()
	case "rm":
		return a.rmCmd(rest[1:])
	}
	fmt.Fprintf(stderr, "unknown command %q\n", rest[0])
	printUsage(stderr)
	return 1
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.LoadDefault()
	}
	return config.Load(path)
}

func (a *app) reportErrors(errs []error) bool {
	if len(errs) == 0 {
		return false
	}
	for _, err := range errs {
		fmt.Fprintf(a.stderr, "%s\n", err)
	}
	return true
}

// parseFile reads and parses path, reporting any errors.
func (a *app) parseFile(path string) (*ast.Program, string, bool) {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(a.stderr, err)
		return nil, "", false
	}
	prog, errs := parser.Parse(path, string(src))
	if a.reportErrors(errs) {
		return nil, "", false
	}
	return prog, string(src), true
}

func oneFile(fs *flag.FlagSet, args []string) (string, bool) {
	if err := fs.Parse(args); err != nil {
		return "", false
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(fs.Output(), "%s: expected exactly one argument\n", fs.Name())
		return "", false
	}
	return fs.Arg(0), true
}

func (a *app) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

func (a *app) runCmd(args []string) int {
	fs := a.newFlagSet("run")
	out := fs.String("o", "", "write SVG to this file instead of stdout")
	save := fs.String("save", "", "save the drawing under this name")
	path, ok := oneFile(fs, args)
	if !ok {
		return 2
	}
	prog, src, ok := a.parseFile(path)
	if !ok {
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	timeout, _ := a.cfg.Timeout()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	drawing := &eval.Log{}
	ec := eval.NewContext(nil, drawing,
		eval.WithFilename(prog.Filename),
		eval.WithContext(ctx),
		eval.WithStepLimit(a.cfg.Limits.MaxSteps),
		eval.WithLogger(a.log.WithPrefix("eval")),
	)
	err := ec.Exec(prog.Body)
	cmds := drawing.Commands()
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			fmt.Fprintf(a.stderr, "%s (timeout %s)\n", err, timeout)
		} else {
			fmt.Fprintln(a.stderr, err)
		}
		return 1
	}
	a.log.Info("%s: %d commands in %d steps", path, len(cmds), ec.Steps())

	if *save != "" {
		if err := a.saveDrawing(&store.Drawing{
			Name:     *save,
			Source:   src,
			Commands: cmds,
			Created:  time.Now(),
		}); err != nil {
			fmt.Fprintln(a.stderr, err)
			return 1
		}
	}
	if err := a.writeSVG(*out, cmds); err != nil {
		fmt.Fprintln(a.stderr, err)
		return 1
	}
	return 0
}

func (a *app) checkCmd(args []string) int {
	path, ok := oneFile(a.newFlagSet("check"), args)
	if !ok {
		return 2
	}
	prog, _, ok := a.parseFile(path)
	if !ok {
		return 1
	}
	if a.reportErrors(checker.Check(prog)) {
		return 1
	}
	return 0
}

func (a *app) fmtCmd(args []string) int {
	path, ok := oneFile(a.newFlagSet("fmt"), args)
	if !ok {
		return 2
	}
	prog, _, ok := a.parseFile(path)
	if !ok {
		return 1
	}
	fmt.Fprint(a.stdout, prog.String())
	return 0
}

func (a *app) astCmd(args []string) int {
	path, ok := oneFile(a.newFlagSet("ast"), args)
	if !ok {
		return 2
	}
	prog, _, ok := a.parseFile(path)
	if !ok {
		return 1
	}
	fmt.Fprintf(a.stdout, "%# v\n", pretty.Formatter(prog))
	return 0
}

func (a *app) showCmd(args []string) int {
	fs := a.newFlagSet("show")
	out := fs.String("o", "", "write SVG to this file instead of stdout")
	name, ok := oneFile(fs, args)
	if !ok {
		return 2
	}
	var d *store.Drawing
	err := a.withStore(func(s *store.Store) error {
		var err error
		d, err = s.Get(name)
		return err
	})
	if err != nil {
		fmt.Fprintln(a.stderr, err)
		return 1
	}
	if err := a.writeSVG(*out, d.Commands); err != nil {
		fmt.Fprintln(a.stderr, err)
		return 1
	}
	return 0
}

func (a *app) listCmd() int {
	var names []string
	err := a.withStore(func(s *store.Store) error {
		var err error
		names, err = s.List()
		return err
	})
	if err != nil {
		fmt.Fprintln(a.stderr, err)
		return 1
	}
	if len(names) > 0 {
		fmt.Fprintln(a.stdout, strings.Join(names, "\n"))
	}
	return 0
}

func (a *app) rmCmd(args []string) int {
	name, ok := oneFile(a.newFlagSet("rm"), args)
	if !ok {
		return 2
	}
	if err := a.withStore(func(s *store.Store) error { return s.Delete(name) }); err != nil {
		fmt.Fprintln(a.stderr, err)
		return 1
	}
	return 0
}

func (a *app) saveDrawing(d *store.Drawing) error {
	err := a.withStore(func(s *store.Store) error { return s.Put(d) })
	if err == nil {
		a.log.Info("saved %s to %s", d.Name, a.cfg.Store)
	}
	return err
}

func (a *app) withStore(fn func(s *store.Store) error) error {
	s, err := store.Open(a.cfg.Store)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

func (a *app) canvas() render.SVG {
	return render.SVG{
		Width:      a.cfg.Canvas.Width,
		Height:     a.cfg.Canvas.Height,
		Background: a.cfg.Canvas.Background,
	}
}

// writeSVG renders cmds to path, or to stdout when path is empty.
func (a *app) writeSVG(path string, cmds []eval.Command) error {
	if path == "" {
		return a.canvas().Render(a.stdout, cmds)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := a.canvas().Render(f, cmds); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

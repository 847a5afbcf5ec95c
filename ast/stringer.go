package ast

import (
	"bytes"
	"strconv"
	"strings"
)

// Format renders s as canonical source, one statement per line.
func Format(s Stmt) string {
	p := printer{}
	p.stmts(s)
	return p.buf.String()
}

func (prog *Program) String() string { return Format(prog.Body) }

// Expressions

func (node *Number) String() string {
	return strconv.FormatFloat(node.Value, 'f', -1, 64)
}

func (node *Ident) String() string { return node.Name }

func (node *ColorLit) String() string {
	if isHexColor(node.Value) {
		return node.Value
	}
	var buf bytes.Buffer
	buf.WriteByte('"')
	for _, ch := range node.Value {
		switch ch {
		case '"', '\\':
			buf.WriteByte('\\')
		}
		buf.WriteRune(ch)
	}
	buf.WriteByte('"')
	return buf.String()
}

func (node *Binary) String() string {
	var buf bytes.Buffer
	buf.WriteString("(")
	buf.WriteString(node.Left.String())
	buf.WriteString(" ")
	buf.WriteString(node.Op.String())
	buf.WriteString(" ")
	buf.WriteString(node.Right.String())
	buf.WriteString(")")
	return buf.String()
}

func (node *Condition) String() string {
	return node.Left.String() + " " + node.Op.String() + " " + node.Right.String()
}

// Statements

func (node *Sequence) String() string  { return Format(node) }
func (node *Rect) String() string      { return Format(node) }
func (node *Line) String() string      { return Format(node) }
func (node *DeclNum) String() string   { return Format(node) }
func (node *DeclColor) String() string { return Format(node) }
func (node *Assign) String() string    { return Format(node) }
func (node *While) String() string     { return Format(node) }
func (node *If) String() string        { return Format(node) }

type printer struct {
	buf   bytes.Buffer
	depth int
}

func (p *printer) line(s string) {
	p.buf.WriteString(strings.Repeat("\t", p.depth))
	p.buf.WriteString(s)
	p.buf.WriteString("\n")
}

func (p *printer) stmts(s Stmt) {
	for _, stmt := range Flatten(s) {
		p.stmt(stmt)
	}
}

func (p *printer) stmt(s Stmt) {
	switch node := s.(type) {
	case *Sequence:
		p.line("{")
		p.block(node)
		p.line("}")
	case *Rect:
		p.line("RECT(" + joinExprs(node.X, node.Y, node.W, node.H, node.Fill) + ");")
	case *Line:
		p.line("LINE(" + joinExprs(node.X1, node.Y1, node.X2, node.Y2, node.Stroke) + ");")
	case *DeclNum:
		p.line("num " + node.Name + " = " + node.Init.String() + ";")
	case *DeclColor:
		p.line("color " + node.Name + " = " + node.Init.String() + ";")
	case *Assign:
		p.line(node.Name + " = " + node.Value.String() + ";")
	case *While:
		p.header("while ("+node.Cond.String()+")", node.Body)
	case *If:
		then := node.Then
		if inner, ok := then.(*If); ok && inner.Else == nil && node.Else != nil {
			// keep the else attached to the outer if
			then = &Sequence{Stmt: inner}
		}
		p.header("if ("+node.Cond.String()+")", then)
		if node.Else != nil {
			p.header("else", node.Else)
		}
	}
}

// header prints a while/if/else line followed by its body. Sequence
// bodies print as braced blocks, single statements are indented.
func (p *printer) header(head string, body Stmt) {
	switch body := body.(type) {
	case nil:
		p.line(head + " {}")
	case *Sequence:
		p.line(head + " {")
		p.block(body)
		p.line("}")
	default:
		p.line(head)
		p.depth++
		p.stmt(body)
		p.depth--
	}
}

func (p *printer) block(s Stmt) {
	p.depth++
	p.stmts(s)
	p.depth--
}

func joinExprs(exprs ...Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

func isHexColor(s string) bool {
	if len(s) != 4 && len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, ch := range s[1:] {
		if !('0' <= ch && ch <= '9' || 'a' <= ch && ch <= 'f' || 'A' <= ch && ch <= 'F') {
			return false
		}
	}
	return true
}

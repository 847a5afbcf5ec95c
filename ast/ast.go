// Package ast defines the program tree consumed by the evaluator.
// Expressions and statements are closed sets of node types: every
// variant owns exactly the children it needs.
package ast

// Pos is the source position of a node. Trees built in code carry
// the zero Pos.
type Pos struct {
	Line   int
	Column int
}

func (p Pos) IsValid() bool { return p.Line > 0 }

type Node interface {
	String() string
	Position() Pos
}

type Expr interface {
	Node
	expr()
}

type Stmt interface {
	Node
	stmt()
}

// Program is the root handed over by the parser.
type Program struct {
	Filename string
	Body     Stmt // nil for an empty program
}

// BinOp is an arithmetic operator.
type BinOp uint8

const (
	Add BinOp = iota + 1
	Sub
	Mul
	Div
)

func (op BinOp) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	}
	return "?"
}

// CmpOp is a comparison operator.
type CmpOp uint8

const (
	Lt CmpOp = iota + 1
	Gt
	Eq
	Ne
	Le
	Ge
)

func (op CmpOp) String() string {
	switch op {
	case Lt:
		return "<"
	case Gt:
		return ">"
	case Eq:
		return "=="
	case Ne:
		return "!="
	case Le:
		return "<="
	case Ge:
		return ">="
	}
	return "?"
}

// Ordering reports whether op is one of < > <= >=.
func (op CmpOp) Ordering() bool {
	return op == Lt || op == Gt || op == Le || op == Ge
}

// ===========
// Expressions
// ===========

type (
	Number struct {
		Pos   Pos
		Value float64
	}
	Ident struct {
		Pos  Pos
		Name string
	}
	ColorLit struct {
		Pos   Pos
		Value string
	}
	Binary struct {
		Pos   Pos // position of the operator
		Op    BinOp
		Left  Expr
		Right Expr
	}
)

func (*Number) expr()   {}
func (*Ident) expr()    {}
func (*ColorLit) expr() {}
func (*Binary) expr()   {}

func (n *Number) Position() Pos   { return n.Pos }
func (n *Ident) Position() Pos    { return n.Pos }
func (n *ColorLit) Position() Pos { return n.Pos }
func (n *Binary) Position() Pos   { return n.Pos }

// Condition compares two expressions. It only appears as the test of
// a While or an If.
type Condition struct {
	Pos   Pos
	Op    CmpOp
	Left  Expr
	Right Expr
}

func (n *Condition) Position() Pos { return n.Pos }

// ==========
// Statements
// ==========

type (
	// Sequence runs Stmt then Next. Next is nil at the end of a chain.
	Sequence struct {
		Stmt Stmt
		Next Stmt
	}
	Rect struct {
		Pos        Pos
		X, Y, W, H Expr
		Fill       Expr
	}
	Line struct {
		Pos            Pos
		X1, Y1, X2, Y2 Expr
		Stroke         Expr
	}
	DeclNum struct {
		Pos  Pos
		Name string
		Init Expr
	}
	DeclColor struct {
		Pos  Pos
		Name string
		Init Expr
	}
	Assign struct {
		Pos   Pos
		Name  string
		Value Expr
	}
	While struct {
		Pos  Pos
		Cond *Condition
		Body Stmt
	}
	If struct {
		Pos  Pos
		Cond *Condition
		Then Stmt
		Else Stmt // nil when there is no else branch
	}
)

func (*Sequence) stmt()  {}
func (*Rect) stmt()      {}
func (*Line) stmt()      {}
func (*DeclNum) stmt()   {}
func (*DeclColor) stmt() {}
func (*Assign) stmt()    {}
func (*While) stmt()     {}
func (*If) stmt()        {}

func (n *Sequence) Position() Pos {
	if n.Stmt == nil {
		return Pos{}
	}
	return n.Stmt.Position()
}
func (n *Rect) Position() Pos      { return n.Pos }
func (n *Line) Position() Pos      { return n.Pos }
func (n *DeclNum) Position() Pos   { return n.Pos }
func (n *DeclColor) Position() Pos { return n.Pos }
func (n *Assign) Position() Pos    { return n.Pos }
func (n *While) Position() Pos     { return n.Pos }
func (n *If) Position() Pos        { return n.Pos }

// ============
// Constructors
// ============

func NewNumber(v float64) *Number { return &Number{Value: v} }
func NewIdent(name string) *Ident { return &Ident{Name: name} }
func NewColor(c string) *ColorLit { return &ColorLit{Value: c} }
func NewBinary(op BinOp, l, r Expr) *Binary {
	return &Binary{Op: op, Left: l, Right: r}
}
func NewCondition(op CmpOp, l, r Expr) *Condition {
	return &Condition{Op: op, Left: l, Right: r}
}

// Seq chains stmts into a right-nested Sequence. Nil statements are
// skipped; Seq of nothing is nil.
func Seq(stmts ...Stmt) Stmt {
	var next Stmt
	for i := len(stmts) - 1; i >= 0; i-- {
		if stmts[i] == nil {
			continue
		}
		if next == nil {
			next = &Sequence{Stmt: stmts[i]}
			continue
		}
		next = &Sequence{Stmt: stmts[i], Next: next}
	}
	return next
}

// Flatten lists the statements of a Sequence chain in order.
// Any other statement is returned as a list of one.
func Flatten(s Stmt) []Stmt {
	var out []Stmt
	for s != nil {
		seq, ok := s.(*Sequence)
		if !ok {
			return append(out, s)
		}
		if seq.Stmt != nil {
			out = append(out, seq.Stmt)
		}
		s = seq.Next
	}
	return out
}

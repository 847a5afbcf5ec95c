package parser

import (
	"github.com/massmola/compiler/ast"
	"github.com/massmola/compiler/lexer"
)

type (
	unaryParser  func() ast.Expr
	binaryParser func(ast.Expr) ast.Expr
)

// MaxErrors is the number of errors after which parsing gives up.
const MaxErrors = 10

type Parser struct {
	filename      string
	tokens        []lexer.Token
	Errors        []error // each a ParserError
	curr          int     // how many we have consumed.
	unaryParsers  map[lexer.TokenType]unaryParser
	binaryParsers map[lexer.TokenType]binaryParser
	precedences   map[lexer.TokenType]int
}

const (
	PREC_LOWEST  = iota
	PREC_SUM     // +, -
	PREC_PRODUCT // *, /
	PREC_UNARY   // -
)

var binOps = map[lexer.TokenType]ast.BinOp{
	lexer.PLUS:  ast.Add,
	lexer.MINUS: ast.Sub,
	lexer.STAR:  ast.Mul,
	lexer.SLASH: ast.Div,
}

var cmpOps = map[lexer.TokenType]ast.CmpOp{
	lexer.LESS:          ast.Lt,
	lexer.GREATER:       ast.Gt,
	lexer.EQUAL_EQUAL:   ast.Eq,
	lexer.BANG_EQUAL:    ast.Ne,
	lexer.LESS_EQUAL:    ast.Le,
	lexer.GREATER_EQUAL: ast.Ge,
}

// ====
// init
// ====

func New(fn string, tokens []lexer.Token) *Parser {
	p := &Parser{
		filename: fn,
		tokens:   tokens,
		Errors:   []error{},
		curr:     0,
	}
	p.unaryParsers = map[lexer.TokenType]unaryParser{
		lexer.LEFT_PAREN: p.grouping,
		lexer.IDENTIFIER: p.identifier,
		lexer.NUMBER:     p.number,
		lexer.STRING:     p.color,
		lexer.COLOR:      p.color,
		lexer.MINUS:      p.unary,
	}
	// note: need to make sure that every entry in binaryParsers
	// has a corresponding entry in precedences.
	p.binaryParsers = map[lexer.TokenType]binaryParser{
		lexer.PLUS:  p.binary,
		lexer.MINUS: p.binary,
		lexer.STAR:  p.binary,
		lexer.SLASH: p.binary,
	}
	p.precedences = map[lexer.TokenType]int{
		lexer.PLUS:  PREC_SUM,
		lexer.MINUS: PREC_SUM,
		lexer.STAR:  PREC_PRODUCT,
		lexer.SLASH: PREC_PRODUCT,
	}
	return p
}

// Parse lexes and parses source in one go. Lexer errors are returned
// without attempting to parse.
func Parse(filename, source string) (*ast.Program, []error) {
	tokens, errs := lexer.Scan(filename, source)
	if len(errs) != 0 {
		return nil, errs
	}
	p := New(filename, tokens)
	prog := p.Parse()
	if len(p.Errors) != 0 {
		return nil, p.Errors
	}
	return prog, nil
}

// =====
// utils
// =====

// consume consumes one token
func (p *Parser) consume() lexer.Token {
	if !p.isAtEnd() {
		p.curr++
	}
	return p.previous()
}

// previous returns the most recently consumed token
func (p *Parser) previous() lexer.Token { return p.tokens[p.curr-1] }

// peek returns the token to be consumed
func (p *Parser) peek() lexer.Token { return p.tokens[p.curr] }

// isAtEnd returns true if the current token is an EOF token
func (p *Parser) isAtEnd() bool { return p.peek().Type == lexer.EOF }

// check returns if the peek token matches the given type
func (p *Parser) check(t lexer.TokenType) bool {
	return !p.isAtEnd() && p.peek().Type == t
}

// match consumes the token if it matches any of the given types
func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.consume()
			return true
		}
	}
	return false
}

func pos(tok lexer.Token) ast.Pos {
	return ast.Pos{Line: tok.Line, Column: tok.Column}
}

// ===========
// entry point
// ===========

// program → statement*

func (p *Parser) Parse() *ast.Program {
	var stmts []ast.Stmt
	for !p.isAtEnd() && len(p.Errors) < MaxErrors {
		stmts = append(stmts, p.declaration())
	}
	return &ast.Program{Filename: p.filename, Body: ast.Seq(stmts...)}
}

// =================
// statement parsing
// =================
//
//   statement → decl | assign | rect | line | while | if | block
//   decl      → ("num" | "color") IDENT "=" expression ";"
//   assign    → IDENT "=" expression ";"
//   rect      → "RECT" "(" expression ("," expression){4} ")" ";"
//   line      → "LINE" "(" expression ("," expression){4} ")" ";"
//   while     → "while" "(" condition ")" statement
//   if        → "if" "(" condition ")" statement ( "else" statement )?
//   block     → "{" statement* "}"
//
// declaration() is the recovery point: a ParserError raised anywhere
// below it is caught there and the parser resynchronizes.

func (p *Parser) declaration() (stmt ast.Stmt) {
	defer func() {
		if rv := recover(); rv != nil {
			if _, ok := rv.(ParserError); ok {
				p.synchronize()
				stmt = nil
				return
			}
			panic(rv)
		}
	}()
	return p.statement()
}

func (p *Parser) statement() ast.Stmt {
	switch p.peek().Type {
	case lexer.NUM, lexer.COLOR_KW:
		return p.declStmt()
	case lexer.IDENTIFIER:
		return p.assignStmt()
	case lexer.RECT:
		return p.rectStmt()
	case lexer.LINE:
		return p.lineStmt()
	case lexer.WHILE:
		return p.whileStmt()
	case lexer.IF:
		return p.ifStmt()
	case lexer.LEFT_BRACE:
		return p.blockStmt()
	}
	panic(p.error(p.peek(), "expected a statement, got %s", p.peek().Type))
}

func (p *Parser) declStmt() ast.Stmt {
	kw := p.consume()
	ident := p.expect(lexer.IDENTIFIER, "expected an identifier after %s", kw.Lexeme)
	p.expect(lexer.EQUAL, "expected = in declaration of %s", ident.Lexeme)
	init := p.expression()
	p.expect(lexer.SEMICOLON, "expected ; after variable declaration")
	if kw.Type == lexer.COLOR_KW {
		return &ast.DeclColor{Pos: pos(kw), Name: ident.Lexeme, Init: init}
	}
	return &ast.DeclNum{Pos: pos(kw), Name: ident.Lexeme, Init: init}
}

func (p *Parser) assignStmt() ast.Stmt {
	ident := p.consume()
	p.expect(lexer.EQUAL, "expected = after %s", ident.Lexeme)
	value := p.expression()
	p.expect(lexer.SEMICOLON, "expected ; after assignment")
	return &ast.Assign{Pos: pos(ident), Name: ident.Lexeme, Value: value}
}

func (p *Parser) rectStmt() ast.Stmt {
	kw := p.consume()
	args := p.arguments(kw)
	return &ast.Rect{
		Pos:  pos(kw),
		X:    args[0],
		Y:    args[1],
		W:    args[2],
		H:    args[3],
		Fill: args[4],
	}
}

func (p *Parser) lineStmt() ast.Stmt {
	kw := p.consume()
	args := p.arguments(kw)
	return &ast.Line{
		Pos:    pos(kw),
		X1:     args[0],
		Y1:     args[1],
		X2:     args[2],
		Y2:     args[3],
		Stroke: args[4],
	}
}

// arguments parses the five arguments of a drawing command and the
// trailing semicolon.
func (p *Parser) arguments(kw lexer.Token) [5]ast.Expr {
	var args [5]ast.Expr
	p.expect(lexer.LEFT_PAREN, "expected ( after %s", kw.Lexeme)
	for i := range args {
		if i > 0 {
			p.expect(lexer.COMMA, "%s takes 5 arguments", kw.Lexeme)
		}
		args[i] = p.expression()
	}
	p.expect(lexer.RIGHT_PAREN, "%s takes 5 arguments", kw.Lexeme)
	p.expect(lexer.SEMICOLON, "expected ; after %s", kw.Lexeme)
	return args
}

func (p *Parser) whileStmt() ast.Stmt {
	token := p.consume()
	p.expect(lexer.LEFT_PAREN, "expected (")
	cond := p.condition()
	p.expect(lexer.RIGHT_PAREN, "unclosed (")
	body := p.statement()
	return &ast.While{Pos: pos(token), Cond: cond, Body: body}
}

func (p *Parser) ifStmt() ast.Stmt {
	token := p.consume()
	p.expect(lexer.LEFT_PAREN, "expected (")
	cond := p.condition()
	p.expect(lexer.RIGHT_PAREN, "unclosed (")
	then := p.statement()
	var elseStmt ast.Stmt
	if p.match(lexer.ELSE) {
		elseStmt = p.statement()
	}
	return &ast.If{Pos: pos(token), Cond: cond, Then: then, Else: elseStmt}
}

// blockStmt returns the block's statements as a Sequence, or nil
// for an empty block.
func (p *Parser) blockStmt() ast.Stmt {
	p.consume()
	var stmts []ast.Stmt
	for !p.isAtEnd() && !p.check(lexer.RIGHT_BRACE) && len(p.Errors) < MaxErrors {
		stmts = append(stmts, p.declaration())
	}
	p.expect(lexer.RIGHT_BRACE, "unmatched {")
	body := ast.Seq(stmts...)
	if body == nil {
		return nil
	}
	if _, ok := body.(*ast.Sequence); !ok {
		body = &ast.Sequence{Stmt: body}
	}
	return body
}

// condition → expression ("<" | ">" | "==" | "!=" | "<=" | ">=") expression
func (p *Parser) condition() *ast.Condition {
	left := p.expression()
	tok := p.peek()
	op, ok := cmpOps[tok.Type]
	if !ok {
		panic(p.error(tok, "expected a comparison operator, got %s", tok.Type))
	}
	p.consume()
	right := p.expression()
	return &ast.Condition{Pos: pos(tok), Op: op, Left: left, Right: right}
}

// ==================
// expression parsing
// ==================

// expression matches a single expression.
func (p *Parser) expression() ast.Expr { return p.precedence(PREC_LOWEST) }
func (p *Parser) precedence(prec int) ast.Expr {
	unary, ok := p.unaryParsers[p.peek().Type]
	if !ok {
		panic(p.error(p.peek(), "not an expression: %s", p.peek().Type))
	}
	expr := unary()
	for prec < p.peekPrecedence() {
		expr = p.binaryParsers[p.peek().Type](expr)
	}
	return expr
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := p.precedences[p.peek().Type]; ok {
		return prec
	}
	return PREC_LOWEST
}

// unary folds a minus in front of a number literal; any other operand
// becomes 0 - operand.
func (p *Parser) unary() ast.Expr {
	tok := p.consume()
	right := p.precedence(PREC_UNARY - 1)
	if num, ok := right.(*ast.Number); ok && p.previous().Type == lexer.NUMBER {
		return &ast.Number{Pos: pos(tok), Value: -num.Value}
	}
	zero := &ast.Number{Pos: pos(tok), Value: 0}
	return &ast.Binary{Pos: pos(tok), Op: ast.Sub, Left: zero, Right: right}
}

func (p *Parser) grouping() ast.Expr {
	p.consume()
	expr := p.expression()
	p.expect(lexer.RIGHT_PAREN, "unmatched (")
	return expr
}

func (p *Parser) binary(left ast.Expr) ast.Expr {
	tok := p.consume()
	right := p.precedence(p.precedences[tok.Type])
	return &ast.Binary{Pos: pos(tok), Op: binOps[tok.Type], Left: left, Right: right}
}

func (p *Parser) identifier() ast.Expr {
	tok := p.consume()
	return &ast.Ident{Pos: pos(tok), Name: tok.Lexeme}
}

func (p *Parser) number() ast.Expr {
	tok := p.consume()
	v, _ := tok.Literal.(float64)
	return &ast.Number{Pos: pos(tok), Value: v}
}

func (p *Parser) color() ast.Expr {
	tok := p.consume()
	v, _ := tok.Literal.(string)
	return &ast.ColorLit{Pos: pos(tok), Value: v}
}

package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

//go:generate stringer -type=TokenType

type TokenType uint8

const (
	_ = TokenType(iota)
	// single-character tokens
	LEFT_PAREN
	RIGHT_PAREN
	LEFT_BRACE
	RIGHT_BRACE
	COMMA
	MINUS
	PLUS
	SEMICOLON
	SLASH
	STAR
	// one or two-character tokens
	BANG_EQUAL
	EQUAL
	EQUAL_EQUAL
	GREATER
	GREATER_EQUAL
	LESS
	LESS_EQUAL
	// literals
	IDENTIFIER
	STRING
	COLOR
	NUMBER
	// keywords
	NUM
	COLOR_KW
	RECT
	LINE
	WHILE
	IF
	ELSE
	// meta
	EOF
)

var keywords = map[string]TokenType{
	"num":   NUM,
	"color": COLOR_KW,
	"RECT":  RECT,
	"LINE":  LINE,
	"while": WHILE,
	"if":    IF,
	"else":  ELSE,
}

// punct maps the characters that always form a token on their own.
var punct = map[rune]TokenType{
	'(': LEFT_PAREN,
	')': RIGHT_PAREN,
	'{': LEFT_BRACE,
	'}': RIGHT_BRACE,
	',': COMMA,
	'-': MINUS,
	'+': PLUS,
	';': SEMICOLON,
	'*': STAR,
}

// comparisons maps the first character of an operator to its token
// alone and followed by '='. A zero entry means the form is invalid.
var comparisons = map[rune][2]TokenType{
	'=': {EQUAL, EQUAL_EQUAL},
	'<': {LESS, LESS_EQUAL},
	'>': {GREATER, GREATER_EQUAL},
	'!': {0, BANG_EQUAL},
}

// escapes lists the only escape sequences allowed in strings.
var escapes = map[rune]rune{
	'\\': '\\',
	'"':  '"',
}

// MaxErrors is the number of errors after which scanning gives up.
const MaxErrors = 10

type Token struct {
	Type    TokenType
	Lexeme  string      // use utf8.RuneCountInString to get the length.
	Literal interface{} // float64 for NUMBER, string for STRING and COLOR
	Line    int
	Column  int
}

func (t Token) String() string {
	return fmt.Sprintf("%d:%d %s %q", t.Line, t.Column, t.Type, t.Lexeme)
}

type Error struct {
	Filename string
	Line     int
	Column   int
	Message  string
}

func (e Error) Error() string { return e.String() }
func (e Error) String() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Filename, e.Line, e.Column, e.Message)
}


// position is a point in the source: a byte offset plus the line and
// rune column it corresponds to.
type position struct {
	offset int
	line   int
	column int
}

type Lexer struct {
	Filename string
	Tokens   []Token
	Errors   []error // each an Error
	source   string
	pos      position // next rune to read
	mark     position // start of the lexeme being scanned
	broken   bool     // set on invalid utf8, nothing past it is read
}

func New(filename string, source string) *Lexer {
	start := position{line: 1, column: 1}
	return &Lexer{
		Filename: filename,
		Tokens:   []Token{},
		source:   source,
		pos:      start,
		mark:     start,
	}
}

// Scan is a shorthand for New followed by ScanTokens.
func Scan(filename, source string) ([]Token, []error) {
	l := New(filename, source)
	l.ScanTokens()
	return l.Tokens, l.Errors
}

// ScanTokens tokenizes the whole source, always ending with an EOF
// token. It stops early after MaxErrors errors.
func (l *Lexer) ScanTokens() {
	for l.more() && len(l.Errors) < MaxErrors {
		l.mark = l.pos
		l.scan()
	}
	l.mark = l.pos
	l.emit(EOF, nil)
}

func (l *Lexer) more() bool { return !l.broken && l.pos.offset < len(l.source) }

// peek returns the next rune without consuming it, or 0 at the end.
func (l *Lexer) peek() rune {
	if !l.more() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.pos.offset:])
	return r
}

// next consumes one rune. Invalid utf8 is reported once and ends the
// scan.
func (l *Lexer) next() rune {
	r, w := utf8.DecodeRuneInString(l.source[l.pos.offset:])
	if r == utf8.RuneError && w <= 1 {
		l.error("invalid utf8 input at byte %d", l.pos.offset)
		l.broken = true
		return 0
	}
	l.pos.offset += w
	if r == '\n' {
		l.pos.line++
		l.pos.column = 1
	} else {
		l.pos.column++
	}
	return r
}

// accept consumes the next rune if it is ch.
func (l *Lexer) accept(ch rune) bool {
	if !l.more() || l.peek() != ch {
		return false
	}
	l.next()
	return true
}

// skipWhile consumes runes for as long as ok holds.
func (l *Lexer) skipWhile(ok func(rune) bool) {
	for l.more() && ok(l.peek()) {
		l.next()
	}
}

func (l *Lexer) lexeme() string { return l.source[l.mark.offset:l.pos.offset] }

func (l *Lexer) scan() {
	ch := l.next()
	if l.broken {
		return
	}
	if typ, ok := punct[ch]; ok {
		l.emit(typ, nil)
		return
	}
	if forms, ok := comparisons[ch]; ok {
		typ := forms[0]
		if l.accept('=') {
			typ = forms[1]
		}
		if typ == 0 {
			l.error("%q must be followed by '='", ch)
			return
		}
		l.emit(typ, nil)
		return
	}
	switch {
	case isWhiteSpace(ch):
		l.skipWhile(isWhiteSpace)
	case ch == '/':
		if l.accept('/') {
			l.skipWhile(func(r rune) bool { return r != '\n' })
			return
		}
		l.emit(SLASH, nil)
	case ch == '"':
		l.lexString()
	case ch == '#':
		l.lexColor()
	case isDigit(ch):
		l.lexNumber()
	case isAlpha(ch):
		l.skipWhile(isIdentifier)
		word := l.lexeme()
		if typ, ok := keywords[word]; ok {
			l.emit(typ, nil)
		} else {
			l.emit(IDENTIFIER, word)
		}
	default:
		l.error("unexpected character %U %q", ch, ch)
	}
}

// lexNumber scans digits with an optional fraction: 12 or 12.5.
func (l *Lexer) lexNumber() {
	l.skipWhile(isDigit)
	if l.accept('.') {
		if !isDigit(l.peek()) {
			l.error("expected digits after '.' in %q", l.lexeme())
			return
		}
		l.skipWhile(isDigit)
	}
	num, err := strconv.ParseFloat(l.lexeme(), 64)
	if err != nil {
		l.error("%s", err)
		return
	}
	l.emit(NUMBER, num)
}

// lexColor scans a #rgb or #rrggbb colour.
func (l *Lexer) lexColor() {
	l.skipWhile(isHexDigit)
	lit := l.lexeme()
	if n := len(lit) - 1; n != 3 && n != 6 {
		l.error("invalid hex color %q", lit)
		return
	}
	l.emit(COLOR, lit)
}

// lexString scans the rest of a string whose opening quote was read.
// A string may not span lines.
func (l *Lexer) lexString() {
	var sb strings.Builder
	for l.more() {
		ch := l.next()
		switch ch {
		case '"':
			l.emit(STRING, sb.String())
			return
		case '\n':
			l.error("newline in string literal")
			return
		case '\\':
			esc, ok := escapes[l.peek()]
			if !ok {
				l.error("invalid escape in string literal: %q", `\`+string(l.peek()))
				continue
			}
			l.next()
			sb.WriteRune(esc)
		default:
			sb.WriteRune(ch)
		}
	}
	if !l.broken {
		l.error("unterminated string")
	}
}

func (l *Lexer) emit(typ TokenType, lit interface{}) {
	l.Tokens = append(l.Tokens, Token{
		Type:    typ,
		Lexeme:  l.lexeme(),
		Literal: lit,
		Line:    l.mark.line,
		Column:  l.mark.column,
	})
}

func (l *Lexer) error(s string, args ...interface{}) {
	l.Errors = append(l.Errors, Error{
		Filename: l.Filename,
		Line:     l.pos.line,
		Column:   l.pos.column,
		Message:  fmt.Sprintf(s, args...),
	})
}

func isWhiteSpace(ch rune) bool { return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' }
func isIdentifier(ch rune) bool { return isAlpha(ch) || isDigit(ch) }
func isAlpha(ch rune) bool      { return ch == '_' || ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') }
func isDigit(ch rune) bool      { return '0' <= ch && ch <= '9' }
func isHexDigit(ch rune) bool {
	return isDigit(ch) || ('a' <= ch && ch <= 'f') || ('A' <= ch && ch <= 'F')
}

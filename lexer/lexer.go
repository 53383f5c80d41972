// Package lexer turns bc source bytes into a token.Token stream.
//
// It is a byte-at-a-time pull lexer in the mold of the teacher's
// lexer.Lexer (see go-mix's lexer/lexer.go): the caller repeatedly calls
// Next to advance, and the Lexer holds exactly the state spec.md §3
// requires: the source buffer, a read index, the current line, an
// after-newline flag, the source file name, and the current+previous
// tokens. The dispatch-on-next-byte structure mirrors the original
// implementation's bc_lex_token (see
// _examples/original_source/src/bc/lex.c).
package lexer

import (
	"strings"

	"github.com/gobc-lang/gobc/diagnostics"
	"github.com/gobc-lang/gobc/token"
)

// Lexer scans bc source text into tokens. It owns the source buffer
// exclusively for the duration of a compile.
type Lexer struct {
	src  string
	pos  int
	line int
	file string

	// afterNewline defers the line-counter increment to the start of the
	// *next* Next() call, so a diagnostic raised by the newline-or-EOF
	// token itself still reports the line it terminates, not the next one
	// (spec.md §4.1; mirrors bc_lex_next's "if (l->newline) { ++l->line; }").
	afterNewline bool

	Cur  token.Token
	Last token.Token

	Reporter *diagnostics.Reporter
}

// New creates a Lexer over src, attributing diagnostics to file and
// routing POSIX-extension warnings through rep.
func New(file, src string, rep *diagnostics.Reporter) *Lexer {
	return &Lexer{src: src, line: 1, file: file, Reporter: rep}
}

// Line returns the lexer's current line counter.
func (l *Lexer) Line() int { return l.line }

func (l *Lexer) errf(kind diagnostics.Kind, detail string) error {
	return diagnostics.NewError(kind, l.file, l.line, detail)
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) advance() byte {
	c := l.peek()
	if l.pos < len(l.src) {
		l.pos++
	}
	return c
}

// Next advances the lexer past whitespace and returns the next
// non-whitespace token, updating Cur/Last. This is the only entry point
// the parser calls (pull model, spec.md §4.5): "the Parser calls back
// into the Lexer (pull model) for every token."
func (l *Lexer) Next() (token.Token, error) {
	if l.Cur.Kind == token.EOF && l.pos >= len(l.src) {
		return l.Cur, nil
	}

	if l.pos >= len(l.src) {
		l.afterNewline = true
		tok := token.Token{Kind: token.EOF, Line: l.line, File: l.file}
		l.Last, l.Cur = l.Cur, tok
		return tok, nil
	}

	if l.afterNewline {
		l.line++
		l.afterNewline = false
	}

	for {
		tok, err := l.scanOne()
		if err != nil {
			return token.Token{}, err
		}
		if tok.Kind != token.Whitespace {
			l.Last, l.Cur = l.Cur, tok
			return tok, nil
		}
	}
}

func (l *Lexer) tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Line: l.line, File: l.file}
}

func (l *Lexer) tokLit(k token.Kind, lit string) token.Token {
	return token.Token{Kind: k, Literal: lit, Line: l.line, File: l.file}
}

// assign implements the lexer's assignment-folding helper: if the next
// byte is '=', consume it and return with, else return without.
func (l *Lexer) assign(with, without token.Kind) token.Token {
	if l.peek() == '=' {
		l.advance()
		return l.tok(with)
	}
	return l.tok(without)
}

func isSpaceNotNL(c byte) bool {
	switch c {
	case '\t', '\v', '\f', '\r', ' ':
		return true
	default:
		return false
	}
}

func isDigitOrHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'F')
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isLower(c byte) bool { return c >= 'a' && c <= 'z' }

func isNameCont(c byte) bool {
	return isLower(c) || (c >= '0' && c <= '9') || c == '_'
}

// scanOne produces exactly one raw token (possibly WHITESPACE) from the
// current position, dispatching on the next byte as bc_lex_token does.
func (l *Lexer) scanOne() (token.Token, error) {
	if l.pos >= len(l.src) {
		l.afterNewline = true
		return l.tok(token.EOF), nil
	}

	c := l.advance()

	switch {
	case c == '\n':
		l.afterNewline = true
		return l.tok(token.NLine), nil

	case isSpaceNotNL(c):
		for isSpaceNotNL(l.peek()) {
			l.advance()
		}
		return l.tok(token.Whitespace), nil

	case c == '\\':
		if l.peek() == '\n' {
			l.advance()
			return l.tok(token.Whitespace), nil
		}
		return token.Token{}, l.errf(diagnostics.ErrBadChar, `\`)

	case c == '#':
		if err := l.posix(diagnostics.WarnScriptComment, ""); err != nil {
			return token.Token{}, err
		}
		for l.peek() != '\n' && l.peek() != 0 {
			l.advance()
		}
		return l.tok(token.Whitespace), nil

	case c == '/':
		if l.peek() == '*' {
			return l.lexBlockComment()
		}
		return l.assign(token.DivAssign, token.Div), nil

	case c == '"':
		return l.lexString()

	case c == '!':
		if l.peek() == '=' {
			l.advance()
			return l.tok(token.Ne), nil
		}
		if err := l.posix(diagnostics.WarnBoolOps, "!"); err != nil {
			return token.Token{}, err
		}
		return l.tok(token.BoolNot), nil

	case c == '&':
		if l.peek() == '&' {
			l.advance()
			if err := l.posix(diagnostics.WarnBoolOps, "&&"); err != nil {
				return token.Token{}, err
			}
			return l.tok(token.BoolAnd), nil
		}
		return token.Token{}, l.errf(diagnostics.ErrBadChar, "&")

	case c == '|':
		if l.peek() == '|' {
			l.advance()
			if err := l.posix(diagnostics.WarnBoolOps, "||"); err != nil {
				return token.Token{}, err
			}
			return l.tok(token.BoolOr), nil
		}
		return token.Token{}, l.errf(diagnostics.ErrBadChar, "|")

	case c == '+':
		if l.peek() == '+' {
			l.advance()
			return l.tok(token.Inc), nil
		}
		return l.assign(token.PlusAssign, token.Plus), nil

	case c == '-':
		if l.peek() == '-' {
			l.advance()
			return l.tok(token.Dec), nil
		}
		return l.assign(token.MinusAssign, token.Minus), nil

	case c == '*':
		return l.assign(token.MulAssign, token.Mul), nil
	case c == '%':
		return l.assign(token.ModAssign, token.Mod), nil
	case c == '^':
		return l.assign(token.PowAssign, token.Pow), nil
	case c == '<':
		return l.assign(token.Le, token.Lt), nil
	case c == '>':
		return l.assign(token.Ge, token.Gt), nil
	case c == '=':
		return l.assign(token.Eq, token.Assign), nil

	case c == '.':
		if isDigit(l.peek()) {
			l.pos--
			return l.lexNumber()
		}
		if err := l.posix(diagnostics.WarnDotLast, ""); err != nil {
			return token.Token{}, err
		}
		return l.tok(token.Last), nil

	case c == ',':
		return l.tok(token.Comma), nil
	case c == ';':
		return l.tok(token.Semicolon), nil
	case c == '(':
		return l.tok(token.LParen), nil
	case c == ')':
		return l.tok(token.RParen), nil
	case c == '[':
		return l.tok(token.LBracket), nil
	case c == ']':
		return l.tok(token.RBracket), nil
	case c == '{':
		return l.tok(token.LBrace), nil
	case c == '}':
		return l.tok(token.RBrace), nil

	case c >= '0' && c <= '9', c >= 'A' && c <= 'F':
		l.pos--
		return l.lexNumber()

	case isLower(c):
		l.pos--
		return l.lexName()

	default:
		return token.Token{}, l.errf(diagnostics.ErrBadChar, string(c))
	}
}

func (l *Lexer) posix(kind diagnostics.WarnKind, detail string) error {
	if l.Reporter == nil {
		return nil
	}
	return l.Reporter.Posix(kind, l.file, l.line, detail)
}

func (l *Lexer) lexBlockComment() (token.Token, error) {
	l.advance() // consume '*'
	for {
		if l.pos >= len(l.src) {
			return token.Token{}, l.errf(diagnostics.ErrUnterminatedComment, "")
		}
		c := l.advance()
		if c == '\n' {
			l.line++
			continue
		}
		if c == '*' && l.peek() == '/' {
			l.advance()
			return l.tok(token.Whitespace), nil
		}
	}
}

func (l *Lexer) lexString() (token.Token, error) {
	var sb strings.Builder
	for {
		if l.pos >= len(l.src) {
			return token.Token{}, l.errf(diagnostics.ErrUnterminatedString, "")
		}
		c := l.advance()
		if c == '"' {
			return l.tokLit(token.String, sb.String()), nil
		}
		if c == '\n' {
			l.line++
		}
		sb.WriteByte(c)
	}
}

func (l *Lexer) lexNumber() (token.Token, error) {
	start := l.pos
	for isDigitOrHex(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' {
		l.advance()
		for isDigitOrHex(l.peek()) {
			l.advance()
		}
	}
	return l.tokLit(token.Number, l.src[start:l.pos]), nil
}

func (l *Lexer) lexName() (token.Token, error) {
	start := l.pos
	l.advance() // first char already known to be [a-z]
	for isNameCont(l.peek()) {
		l.advance()
	}
	name := l.src[start:l.pos]
	if kw, ok := token.Keywords[name]; ok {
		return l.tok(kw), nil
	}
	return l.tokLit(token.Name, name), nil
}

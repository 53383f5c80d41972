package parser

import (
	"github.com/gobc-lang/gobc/bytecode"
	"github.com/gobc-lang/gobc/diagnostics"
	"github.com/gobc-lang/gobc/token"
)

// exprStmtTerm is the terminator set for a bare expression statement: a
// newline, a semicolon, the closing brace of an enclosing body (a
// trailing separator before '}' is tolerated), or EOF (a REPL line
// with no trailing newline). Grounded on BC_PARSE_NEXT_EXPR_STMT.
var exprStmtTerm = map[token.Kind]bool{
	token.NLine: true, token.Semicolon: true, token.RBrace: true, token.EOF: true,
}

// parseStmt dispatches the current token to compile exactly one
// statement. The first switch handles the tokens that are transparent
// or self-validating regardless of a pending body: a bare newline is
// always skipped (so `if (x)` may put its body on the next line
// without that blank line itself counting as the body), a brace
// always opens a block, an auto declaration and a dangling else each
// validate their own preconditions. A semicolon is deliberately NOT
// here: an empty statement is a real statement (the `if(x);else;`
// idiom needs it to close a pending non-braced body), so it falls
// through to the same pre-check as every other statement-shaped token
// before being consumed in the second switch. Grounded on
// bc_parse_stmt.
func (p *Parser) parseStmt() (Result, error) {
	tok := p.cur()

	switch tok.Kind {
	case token.NLine:
		return ResultStmt, p.next()

	case token.LBrace:
		if !p.has(flagBody) {
			return ResultStmt, p.errf(diagnostics.ErrBadToken, "unexpected {")
		}
		p.braceDepth++
		if err := p.next(); err != nil {
			return ResultStmt, err
		}
		return p.parseBody(true)

	case token.Auto:
		return ResultStmt, p.parseAuto()

	case token.Else:
		return ResultStmt, p.parseElse()

	default:
		p.autoPart = false
		if p.has(flagIfEnd) {
			// A stray ';' here is only ever a separator, never the token
			// that decides a pending dangling else (it may be left over
			// from the very statement whose completion just set
			// flagIfEnd) — skip it and look at what actually follows.
			for p.cur().Kind == token.Semicolon {
				if err := p.next(); err != nil {
					return ResultStmt, err
				}
			}
			if p.cur().Kind == token.Else {
				return ResultStmt, p.parseElse()
			}
			return ResultStmt, p.noElse()
		}
		if p.has(flagBody) {
			return p.parseBody(false)
		}
	}

	switch tok.Kind {
	case token.Semicolon:
		for p.cur().Kind == token.Semicolon {
			if err := p.next(); err != nil {
				return ResultStmt, err
			}
		}
		return ResultStmt, nil

	case token.RBrace:
		return ResultStmt, p.endBody(true)

	case token.String:
		return ResultStmt, p.parseBareString()

	case token.Break, token.Continue:
		return ResultStmt, p.parseLoopExit(tok.Kind)

	case token.For:
		return ResultStmt, p.parseFor()

	case token.Halt:
		p.fn().Push(bytecode.Halt)
		return ResultStmt, p.next()

	case token.If:
		return ResultStmt, p.parseIf()

	case token.Limits:
		if err := p.next(); err != nil {
			return ResultStmt, err
		}
		return ResultLimits, nil

	case token.Print:
		return ResultStmt, p.parsePrint()

	case token.Quit:
		return ResultQuit, nil

	case token.Return:
		return ResultStmt, p.parseReturn()

	case token.While:
		return ResultStmt, p.parseWhile()

	case token.EOF:
		return ResultStmt, p.errf(diagnostics.ErrNoBlockEnd, "unexpected end of input")

	default:
		if !isExprStarter(tok.Kind, 0) {
			return ResultStmt, p.errf(diagnostics.ErrBadToken, "unexpected "+tok.Kind.String())
		}
		return ResultStmt, p.parseExpr(exprPrint, exprStmtTerm)
	}
}

// parseAuto parses `auto name, name[], ...`, legal only as the
// statement immediately following a function's opening brace.
// Grounded on bc_parse_auto.
func (p *Parser) parseAuto() error {
	if !p.autoPart {
		return p.errf(diagnostics.ErrBadToken, "auto not allowed here")
	}
	if err := p.next(); err != nil { // consume "auto"
		return err
	}
	if p.cur().Kind != token.Name {
		return p.errf(diagnostics.ErrNoAuto, "")
	}

	for {
		name := p.cur().Literal
		if err := p.next(); err != nil {
			return err
		}

		array := false
		if p.cur().Kind == token.LBracket {
			array = true
			if err := p.next(); err != nil {
				return err
			}
			if p.cur().Kind != token.RBracket {
				return p.errf(diagnostics.ErrBadToken, "expected ]")
			}
			if err := p.next(); err != nil {
				return err
			}
		}
		if !p.fn().InsertLocal(name, array) {
			return p.errf(diagnostics.ErrDupLocal, name)
		}

		if p.cur().Kind != token.Comma {
			break
		}
		if err := p.next(); err != nil {
			return err
		}
		if p.cur().Kind != token.Name {
			return p.errf(diagnostics.ErrBadToken, "expected a name")
		}
	}

	if p.cur().Kind != token.NLine && p.cur().Kind != token.Semicolon {
		return p.errf(diagnostics.ErrBadToken, "expected a statement terminator after auto")
	}
	p.autoPart = false
	return p.next()
}

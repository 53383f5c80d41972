package parser

import (
	"github.com/gobc-lang/gobc/bytecode"
	"github.com/gobc-lang/gobc/diagnostics"
	"github.com/gobc-lang/gobc/token"
)

// parseIf compiles `if (cond) stmt`. The condition's JUMP_ZERO target
// stays pending on the exits stack until the following statement
// dispatch either resolves it via a trailing else (parseElse) or
// closes it with no else (noElse, run from parseStmt's default branch
// the next time IF_END is seen set). Grounded on bc_parse_if.
func (p *Parser) parseIf() error {
	if err := p.next(); err != nil { // consume "if"
		return err
	}
	if p.cur().Kind != token.LParen {
		return p.errf(diagnostics.ErrBadToken, "expected (")
	}
	if err := p.next(); err != nil {
		return err
	}
	if err := p.parseExpr(exprRel, rparenTerm); err != nil {
		return err
	}
	if err := p.next(); err != nil { // consume ')'
		return err
	}

	p.fn().Push(bytecode.JumpZero)
	label := p.fn().NewLabel()
	p.fn().PushIndex(uint64(label))
	p.exits = append(p.exits, exit{label: label})
	p.startBody(flagIf)
	return nil
}

// parseElse compiles the `else` arm of a pending if: an unconditional
// jump over the else body patches in for the if's own fallthrough, the
// if's JUMP_ZERO target resolves to right here, and a fresh exit label
// is pushed for the else body itself. Grounded on bc_parse_else.
func (p *Parser) parseElse() error {
	if !p.has(flagIfEnd) {
		return p.errf(diagnostics.ErrBadToken, "unexpected else")
	}

	p.fn().Push(bytecode.Jump)
	label := p.fn().NewLabel()
	p.fn().PushIndex(uint64(label))

	p.settleIfEnd()
	p.exits = append(p.exits, exit{label: label})

	if err := p.next(); err != nil { // consume "else"
		return err
	}
	p.startBody(flagElse)
	return nil
}

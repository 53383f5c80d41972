package parser

import (
	"github.com/gobc-lang/gobc/bytecode"
	"github.com/gobc-lang/gobc/diagnostics"
	"github.com/gobc-lang/gobc/token"
)

var semicolonTerm = map[token.Kind]bool{token.Semicolon: true}

// parseWhile compiles `while (cond) stmt`: the condition is
// re-evaluated on every iteration from a label at its own top,
// `continue` jumps straight there, and `break` jumps to a fresh exit
// label resolved when the body closes. Grounded on bc_parse_while.
func (p *Parser) parseWhile() error {
	if err := p.next(); err != nil { // consume "while"
		return err
	}
	if p.cur().Kind != token.LParen {
		return p.errf(diagnostics.ErrBadToken, "expected (")
	}
	if err := p.next(); err != nil {
		return err
	}

	cond := p.fn().NewLabelAt(uint64(p.fn().Len()))
	if err := p.parseExpr(exprRel, rparenTerm); err != nil {
		return err
	}
	if err := p.next(); err != nil { // consume ')'
		return err
	}

	p.fn().Push(bytecode.JumpZero)
	exitLabel := p.fn().NewLabel()
	p.fn().PushIndex(uint64(exitLabel))

	p.conds = append(p.conds, cond)
	p.exits = append(p.exits, exit{label: exitLabel, loop: true})
	p.startBody(flagLoop | flagLoopInner)
	return nil
}

// parseFor compiles `for (init; cond; update) stmt`. It is lowered
// into four labels (cond/update/body/exit) so the condition is checked
// before the first iteration without duplicating the condition code:
// init runs once, then the condition is checked and control jumps past
// the update to the body; the body's own close (endBody) jumps back to
// the update label, which runs the update and jumps back to the
// condition. The values of a non-empty init and update are popped. Any
// clause may be empty, each POSIX-warned individually.
// Grounded on bc_parse_for.
func (p *Parser) parseFor() error {
	if err := p.next(); err != nil { // consume "for"
		return err
	}
	if p.cur().Kind != token.LParen {
		return p.errf(diagnostics.ErrBadToken, "expected (")
	}
	if err := p.next(); err != nil {
		return err
	}

	if p.cur().Kind == token.Semicolon {
		if err := p.posix(diagnostics.WarnForInitMissing, ""); err != nil {
			return err
		}
	} else {
		if err := p.parseExpr(0, semicolonTerm); err != nil {
			return err
		}
		p.fn().Push(bytecode.Pop)
	}
	if err := p.next(); err != nil { // consume ';'
		return err
	}

	condLabel := p.fn().NewLabelAt(uint64(p.fn().Len()))
	hasCond := p.cur().Kind != token.Semicolon
	if !hasCond {
		if err := p.posix(diagnostics.WarnForCondMissing, ""); err != nil {
			return err
		}
	} else if err := p.parseExpr(exprRel, semicolonTerm); err != nil {
		return err
	}
	if err := p.next(); err != nil { // consume ';'
		return err
	}

	exitLabel := p.fn().NewLabel()
	if hasCond {
		p.fn().Push(bytecode.JumpZero)
		p.fn().PushIndex(uint64(exitLabel))
	}
	bodyLabel := p.fn().NewLabel()
	p.fn().Push(bytecode.Jump)
	p.fn().PushIndex(uint64(bodyLabel))

	updateLabel := p.fn().NewLabelAt(uint64(p.fn().Len()))
	if p.cur().Kind == token.RParen {
		if err := p.posix(diagnostics.WarnForUpdateMissing, ""); err != nil {
			return err
		}
	} else {
		if err := p.parseExpr(0, rparenTerm); err != nil {
			return err
		}
		p.fn().Push(bytecode.Pop)
	}
	if p.cur().Kind != token.RParen {
		return p.errf(diagnostics.ErrBadToken, "expected )")
	}
	if err := p.next(); err != nil { // consume ')'
		return err
	}
	p.fn().Push(bytecode.Jump)
	p.fn().PushIndex(uint64(condLabel))

	p.fn().ResolveLabel(bodyLabel)

	p.conds = append(p.conds, updateLabel)
	p.exits = append(p.exits, exit{label: exitLabel, loop: true})
	p.startBody(flagLoop | flagLoopInner)
	return nil
}

// parseLoopExit compiles `break` or `continue`. continue jumps to the
// nearest enclosing loop's continue target (its condition recheck for
// while, its update block for for); break searches the exits stack
// top-down for the nearest loop-tagged entry.
//
// This reimplements bc_parse_loopExit with a signed, explicit-found
// search instead of the original's unsigned countdown index, which
// underflows to a huge value when no loop is open and happens to
// terminate the scan only by that accident; an absent enclosing loop
// is reported here as an ordinary compile error instead.
func (p *Parser) parseLoopExit(kind token.Kind) error {
	if err := p.next(); err != nil { // consume break/continue
		return err
	}

	if kind == token.Continue {
		if len(p.conds) == 0 {
			return p.errf(diagnostics.ErrContinueOutsideLoop, "")
		}
		p.fn().Push(bytecode.Jump)
		p.fn().PushIndex(uint64(p.conds[len(p.conds)-1]))
		return nil
	}

	label, found := -1, false
	for i := len(p.exits) - 1; i >= 0; i-- {
		if p.exits[i].loop {
			label, found = p.exits[i].label, true
			break
		}
	}
	if !found {
		return p.errf(diagnostics.ErrBreakOutsideLoop, "")
	}
	p.fn().Push(bytecode.Jump)
	p.fn().PushIndex(uint64(label))
	return nil
}

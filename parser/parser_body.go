package parser

import (
	"github.com/gobc-lang/gobc/bytecode"
	"github.com/gobc-lang/gobc/diagnostics"
	"github.com/gobc-lang/gobc/token"
)

// startBody pushes a new flag frame for a construct that is about to
// read its body (if/else/while/for/function). The new frame carries
// flagBody so the next statement dispatch knows a body is pending, and
// inherits flagFunc/flagLoop from the enclosing frame so nested
// constructs can still answer "am I inside a function" / "inside a
// loop" without re-walking the stack. Grounded on bc_parse_startBody.
func (p *Parser) startBody(f flag) {
	top := p.topFlag()
	p.pushFlag(f | flagBody | (top & (flagFunc | flagLoop)))
}

// parseBody consumes the flagBody marker on the current frame and
// either defers to the function-body convention (statements keep
// arriving via the ordinary top-level dispatch loop until a matching
// '}') or, for a non-braced if/while/for body, parses exactly the one
// statement that follows and then closes every construct that is now
// fully resolved (see closeCascade — a bare `if (a) if (b) c = 1`
// closes only as far as the outer if's own dangling-else window).
// Grounded on bc_parse_body.
func (p *Parser) parseBody(brace bool) (Result, error) {
	top := p.topFlag()
	top &^= flagBody
	if !brace {
		top |= flagNonBrace
	}
	p.flags[len(p.flags)-1] = top

	if top&flagFuncInner != 0 {
		if !brace {
			return ResultStmt, p.errf(diagnostics.ErrBadToken, "function body must be braced")
		}
		p.autoPart = true
		return ResultStmt, nil
	}

	if brace {
		return ResultStmt, nil
	}

	res, err := p.parseStmt()
	if err != nil {
		return res, err
	}
	return res, p.closeCascade()
}

// closeCascade closes the current top frame for as long as it is a
// fully-resolved non-braced single-statement body, stopping the
// instant a close leaves a fresh dangling-else window open on the new
// top frame (a possible `else` might still bind there). This lets
// `if (a) if (b) c = 1` pause after the inner if (the outer if's own
// consequent isn't done until the inner one's else-or-not is decided),
// while `if (a) if (b) c = 1 else d = 2` and `if (a) while (b) c = 1`
// unwind every resolved level in one cascade.
func (p *Parser) closeCascade() error {
	for {
		top := p.topFlag()
		if top&flagNonBrace == 0 || top&flagBody != 0 {
			return nil
		}
		if err := p.endBody(false); err != nil {
			return err
		}
		if p.topFlag()&flagIfEnd != 0 {
			return nil
		}
	}
}

// endBody closes whatever construct owns the current top flag frame:
// an if-arm (recording a pending dangling-else window), an else-arm
// (resolving the if's forward exit), a function (implicit RET0, switch
// back to MAIN), or a loop (backward jump to its continue target,
// resolve its exit). Grounded on bc_parse_endBody.
func (p *Parser) endBody(brace bool) error {
	if len(p.flags) <= 1 {
		return p.errf(diagnostics.ErrBadToken, "unexpected }")
	}
	if brace {
		if p.braceDepth == 0 {
			return p.errf(diagnostics.ErrBadToken, "unexpected }")
		}
		p.braceDepth--
		if err := p.next(); err != nil {
			return err
		}
	}

	switch {
	case p.has(flagIf):
		p.popFlag()
		top := p.flags[len(p.flags)-1]
		p.flags[len(p.flags)-1] = top | flagIfEnd

	case p.has(flagElse):
		p.popFlag()
		p.resolveExit()

	case p.has(flagFuncInner):
		p.fn().Push(bytecode.Ret0)
		p.popFlag()
		p.funcIdx = bytecode.MAIN

	case p.has(flagLoopInner):
		cond := p.conds[len(p.conds)-1]
		p.conds = p.conds[:len(p.conds)-1]
		p.fn().Push(bytecode.Jump)
		p.fn().PushIndex(uint64(cond))
		p.popFlag()
		p.resolveExit()

	default:
		return p.errf(diagnostics.ErrBadToken, "unexpected }")
	}

	// A stray terminator left over from the statement that just closed
	// this body (its ';' may still be sitting unconsumed if this close
	// was reached via a cascade rather than the ordinary statement
	// dispatch) is only ever a separator at this point, never the token
	// that decides a pending dangling else — that decision is made by
	// whatever real token follows.
	if !brace {
		for p.cur().Kind == token.NLine || p.cur().Kind == token.Semicolon {
			if err := p.next(); err != nil {
				return err
			}
		}
	}
	return nil
}

// settleIfEnd drops the pending IF_END marker on the current frame and
// resolves the if's JUMP_ZERO exit label to right here. Shared by
// noElse (no else followed — the if itself may now be fully resolved)
// and parseElse (an else did follow — the if's fallthrough target is
// the else body's start, but the enclosing frame must NOT be
// cascade-closed yet since that else body hasn't been parsed).
func (p *Parser) settleIfEnd() {
	top := p.flags[len(p.flags)-1]
	p.flags[len(p.flags)-1] = top &^ flagIfEnd
	p.resolveExit()
}

// noElse finalizes a pending if with no trailing else. If that if was
// itself a non-braced single-statement body it is now fully resolved
// too, so closeCascade runs to close it (and cascade further through
// any enclosing non-braced bodies this now also completes). Grounded
// on bc_parse_noElse.
func (p *Parser) noElse() error {
	p.settleIfEnd()
	return p.closeCascade()
}

func (p *Parser) resolveExit() {
	ex := p.exits[len(p.exits)-1]
	p.exits = p.exits[:len(p.exits)-1]
	p.fn().ResolveLabel(ex.label)
}

package parser

import (
	"github.com/gobc-lang/gobc/bytecode"
	"github.com/gobc-lang/gobc/diagnostics"
	"github.com/gobc-lang/gobc/token"
)

// parseIncDec handles `++`/`--` in both postfix position (following an
// already-parsed lvalue leaf: emit the post variant directly) and
// prefix position (parse the lvalue target that follows, then emit the
// pre variant). Grounded on bc_parse_incdec.
func (p *Parser) parseIncDec(k token.Kind, prev bytecode.Inst, prevValid bool, nexprs *int, flags exprFlag) (bytecode.Inst, error) {
	if isLvalue(prev, prevValid) {
		inst := bytecode.IncPost
		if k == token.Dec {
			inst = bytecode.DecPost
		}
		p.fn().Push(inst)
		if err := p.next(); err != nil {
			return 0, err
		}
		return inst, nil
	}

	inst := bytecode.IncPre
	if k == token.Dec {
		inst = bytecode.DecPre
	}
	if err := p.next(); err != nil { // consume ++/--
		return 0, err
	}

	// The prefix target is parsed inline here, so it contributes its own
	// operand to the running count (original's "because we parse the
	// next part of the expression right here, we need to increment this").
	*nexprs++

	switch p.cur().Kind {
	case token.Name:
		if _, err := p.parseName(flags | exprNoCall); err != nil {
			return 0, err
		}
	case token.Ibase:
		p.fn().Push(bytecode.Ibase)
		if err := p.next(); err != nil {
			return 0, err
		}
	case token.Obase:
		p.fn().Push(bytecode.Obase)
		if err := p.next(); err != nil {
			return 0, err
		}
	case token.Last:
		p.fn().Push(bytecode.Last)
		if err := p.next(); err != nil {
			return 0, err
		}
	case token.Scale:
		if err := p.next(); err != nil {
			return 0, err
		}
		if p.cur().Kind == token.LParen {
			return 0, p.errf(diagnostics.ErrBadToken, "scale() is not an lvalue")
		}
		p.fn().Push(bytecode.Scale)
	default:
		return 0, p.errf(diagnostics.ErrBadToken, "expected an lvalue after ++/--")
	}

	p.fn().Push(inst)
	return inst, nil
}

package parser

import (
	"github.com/gobc-lang/gobc/bytecode"
	"github.com/gobc-lang/gobc/diagnostics"
	"github.com/gobc-lang/gobc/token"
)

var bracketTerm = map[token.Kind]bool{token.RBracket: true}
var paramTerm = map[token.Kind]bool{token.Comma: true, token.RParen: true}

// parseName disambiguates a NAME token into a bare variable reference, a
// whole-array or subscripted-array reference, or a function call.
// Grounded on bc_parse_name.
func (p *Parser) parseName(flags exprFlag) (bytecode.Inst, error) {
	name := p.cur().Literal
	if err := p.next(); err != nil {
		return 0, err
	}

	switch p.cur().Kind {
	case token.LBracket:
		if err := p.next(); err != nil {
			return 0, err
		}
		if p.cur().Kind == token.RBracket {
			if !flags.has(exprArray) {
				return 0, p.errf(diagnostics.ErrBadExpr, "array reference not allowed here")
			}
			if err := p.next(); err != nil {
				return 0, err
			}
			p.fn().Push(bytecode.Array)
			p.fn().PushName(name)
			return bytecode.Array, nil
		}
		if err := p.parseExpr(exprArray, bracketTerm); err != nil {
			return 0, err
		}
		if p.cur().Kind != token.RBracket {
			return 0, p.errf(diagnostics.ErrBadToken, "expected ]")
		}
		if err := p.next(); err != nil {
			return 0, err
		}
		p.fn().Push(bytecode.ArrayElem)
		p.fn().PushName(name)
		return bytecode.ArrayElem, nil

	case token.LParen:
		if flags.has(exprNoCall) {
			return 0, p.errf(diagnostics.ErrBadToken, "function call not allowed here")
		}
		return p.parseCall(name)

	default:
		p.fn().Push(bytecode.Var)
		p.fn().PushName(name)
		return bytecode.Var, nil
	}
}

// parseCall parses `(args...)` for a call to name, emitting CALL
// followed by the argument count and the (forward-reference-safe)
// function index. Grounded on bc_parse_call / bc_parse_params.
func (p *Parser) parseCall(name string) (bytecode.Inst, error) {
	if err := p.next(); err != nil { // consume '('
		return 0, err
	}

	nparams := 0
	comma := false
	for p.cur().Kind != token.RParen {
		if err := p.parseExpr(exprArray, paramTerm); err != nil {
			return 0, err
		}
		nparams++
		comma = p.cur().Kind == token.Comma
		if comma {
			if err := p.next(); err != nil {
				return 0, err
			}
		}
	}
	if comma {
		return 0, p.errf(diagnostics.ErrBadToken, "trailing comma in argument list")
	}

	idx := p.prog.FuncIndex(name)
	p.fn().Push(bytecode.Call)
	p.fn().PushIndex(uint64(nparams))
	p.fn().PushIndex(uint64(idx))

	if err := p.next(); err != nil { // consume ')'
		return 0, err
	}
	return bytecode.Call, nil
}

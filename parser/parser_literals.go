package parser

import (
	"github.com/gobc-lang/gobc/bytecode"
	"github.com/gobc-lang/gobc/diagnostics"
	"github.com/gobc-lang/gobc/token"
)

// exprFlag is the caller-supplied bitset controlling an expression
// parse's context (spec.md §4.3).
type exprFlag uint8

const (
	exprPrint exprFlag = 1 << iota
	exprRel
	exprArray
	exprNoCall
	exprNoRead
)

func (f exprFlag) has(bit exprFlag) bool { return f&bit != 0 }

// parseNumber interns the current NUMBER token's digit string into the
// program's number pool and emits NUM <index>. Digit interpretation
// under ibase is left to the execution engine (spec.md §3).
func (p *Parser) parseNumber() (bytecode.Inst, error) {
	idx := p.prog.InternNumber(p.cur().Literal)
	p.fn().Push(bytecode.Num)
	p.fn().PushIndex(uint64(idx))
	if err := p.next(); err != nil {
		return 0, err
	}
	return bytecode.Num, nil
}

// parseRegister emits the lvalue-read opcode for ibase/obase/last, each
// a single-token leaf.
func (p *Parser) parseRegister(inst bytecode.Inst) (bytecode.Inst, error) {
	p.fn().Push(inst)
	if err := p.next(); err != nil {
		return 0, err
	}
	return inst, nil
}

// parseBuiltin handles `length(expr)` / `sqrt(expr)`: a single
// sub-expression in parens, followed by the builtin opcode. Grounded on
// bc_parse_builtin.
func (p *Parser) parseBuiltin(inst bytecode.Inst) (bytecode.Inst, error) {
	if err := p.next(); err != nil { // consume "length"/"sqrt"
		return 0, err
	}
	if p.cur().Kind != token.LParen {
		return 0, p.errf(diagnostics.ErrBadToken, "expected (")
	}
	if err := p.next(); err != nil {
		return 0, err
	}
	if err := p.parseExpr(exprArray, rparenTerm); err != nil {
		return 0, err
	}
	if p.cur().Kind != token.RParen {
		return 0, p.errf(diagnostics.ErrBadToken, "expected )")
	}
	p.fn().Push(inst)
	if err := p.next(); err != nil {
		return 0, err
	}
	return inst, nil
}

// parseRead handles `read()`: no arguments, a runtime-only builtin that
// prompts stdin. Rejected when already inside a read()'s own expression
// (spec.md §4.3, NOREAD flag; grounded on bc_parse_read and the
// nested-read rejection in the original bc_parse_expr switch).
func (p *Parser) parseRead(flags exprFlag) (bytecode.Inst, error) {
	if flags.has(exprNoRead) {
		return 0, p.errf(diagnostics.ErrRecursiveRead, "")
	}
	if err := p.next(); err != nil { // consume "read"
		return 0, err
	}
	if p.cur().Kind != token.LParen {
		return 0, p.errf(diagnostics.ErrBadToken, "expected (")
	}
	if err := p.next(); err != nil {
		return 0, err
	}
	if p.cur().Kind != token.RParen {
		return 0, p.errf(diagnostics.ErrBadToken, "expected )")
	}
	p.fn().Push(bytecode.Read)
	if err := p.next(); err != nil {
		return 0, err
	}
	return bytecode.Read, nil
}

// parseScale handles bare `scale` (lvalue) vs `scale(expr)` (builtin),
// grounded on bc_parse_scale.
func (p *Parser) parseScale() (bytecode.Inst, error) {
	if err := p.next(); err != nil { // consume "scale"
		return 0, err
	}
	if p.cur().Kind != token.LParen {
		p.fn().Push(bytecode.Scale)
		return bytecode.Scale, nil
	}
	if err := p.next(); err != nil {
		return 0, err
	}
	if err := p.parseExpr(exprArray, rparenTerm); err != nil {
		return 0, err
	}
	if p.cur().Kind != token.RParen {
		return 0, p.errf(diagnostics.ErrBadToken, "expected )")
	}
	p.fn().Push(bytecode.ScaleFunc)
	if err := p.next(); err != nil {
		return 0, err
	}
	return bytecode.ScaleFunc, nil
}

// rparenTerm is the terminator set naming a single closing paren, used
// by every builtin's single-argument sub-expression parse.
var rparenTerm = map[token.Kind]bool{token.RParen: true}

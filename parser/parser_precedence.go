package parser

import (
	"github.com/gobc-lang/gobc/bytecode"
	"github.com/gobc-lang/gobc/diagnostics"
	"github.com/gobc-lang/gobc/token"
)

// bytecodeFromOperator resolves an operator-stack token kind (including
// the synthetic token.Neg) to the Inst it emits.
func bytecodeFromOperator(k token.Kind) (bytecode.Inst, bool) {
	return bytecode.FromToken(k)
}

// reduces reports whether emitting k's instruction nets a one-operand
// reduction: every binary operator combines two stack values into one,
// while the two unary operators (! and NEG) leave the count unchanged.
// Grounded on bc_parse_expr's "*nexprs -= t != BOOL_NOT && t != NEG".
func reduces(k token.Kind) bool {
	return k != token.BoolNot && k != token.Neg
}

// pushOp implements the shunting-yard reduction step shared by every
// binary/boolean operator: pop and emit everything above opsStart whose
// precedence binds at least as tight as k (strictly tighter, or equal
// with left-associativity), then push k. Returns the number of binary
// reductions performed by the pops (the caller debits this from
// nexprs); the just-pushed operator itself is not yet counted, since it
// has not been emitted. Grounded on bc_parse_operator.
func (p *Parser) pushOp(k token.Kind) (int, error) {
	info, _ := token.Operator(k)
	popped := 0
	for len(p.ops) > p.opsStart {
		top := p.ops[len(p.ops)-1]
		if top == token.LParen {
			break
		}
		topInfo, _ := token.Operator(top)
		if !(topInfo.Prec < info.Prec || (topInfo.Prec == info.Prec && !topInfo.Right)) {
			break
		}
		if err := p.emitOp(top); err != nil {
			return popped, err
		}
		p.ops = p.ops[:len(p.ops)-1]
		if reduces(top) {
			popped++
		}
	}
	p.ops = append(p.ops, k)
	return popped, nil
}

// pushUnary pushes a unary operator (NEG) directly without running the
// pop loop: a prefix operator has no left operand waiting to be reduced,
// so nothing on the stack is popped before it. NEG binds tighter than
// every binary operator except ^. Grounded on bc_parse_minus's NEG branch.
func (p *Parser) pushUnary(k token.Kind) {
	p.ops = append(p.ops, k)
}

// emitOp appends the Inst corresponding to operator token k.
func (p *Parser) emitOp(k token.Kind) error {
	inst, ok := bytecodeFromOperator(k)
	if !ok {
		return p.errf(diagnostics.ErrBadExpr, "unsupported operator")
	}
	p.fn().Push(inst)
	p.lastOpAssign = token.IsAssign(k)
	return nil
}

// closeParen pops and emits operators down to (and discarding) the
// matching '(' on the operator stack, returning the reduction count.
// Grounded on bc_parse_rightParen.
func (p *Parser) closeParen() (int, error) {
	popped := 0
	if len(p.ops) == p.opsStart {
		return popped, p.errf(diagnostics.ErrBadExpr, "unbalanced parentheses")
	}
	for {
		top := p.ops[len(p.ops)-1]
		if top == token.LParen {
			p.ops = p.ops[:len(p.ops)-1]
			return popped, nil
		}
		if err := p.emitOp(top); err != nil {
			return popped, err
		}
		p.ops = p.ops[:len(p.ops)-1]
		if reduces(top) {
			popped++
		}
		if len(p.ops) == p.opsStart {
			return popped, p.errf(diagnostics.ErrBadExpr, "unbalanced parentheses")
		}
	}
}

// flushOps drains any remaining operators down to opsStart at the end of
// an expression, returning the reduction count; a surviving '(' means
// the parens never matched.
func (p *Parser) flushOps() (int, error) {
	popped := 0
	for len(p.ops) > p.opsStart {
		top := p.ops[len(p.ops)-1]
		if top == token.LParen {
			return popped, p.errf(diagnostics.ErrBadExpr, "unbalanced parentheses")
		}
		if err := p.emitOp(top); err != nil {
			return popped, err
		}
		p.ops = p.ops[:len(p.ops)-1]
		if reduces(top) {
			popped++
		}
	}
	return popped, nil
}

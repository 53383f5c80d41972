package parser

import (
	"github.com/gobc-lang/gobc/bytecode"
	"github.com/gobc-lang/gobc/diagnostics"
	"github.com/gobc-lang/gobc/token"
)

// isLeaf reports whether inst denotes a value-producing instruction (a
// completed leaf of the expression), mirroring the original
// implementation's BC_PARSE_LEAF predicate: a leaf is any previously
// emitted value-producing opcode, or the just-closed ')'.
func isLeaf(inst bytecode.Inst, valid, rparen bool) bool {
	if rparen {
		return true
	}
	if !valid {
		return false
	}
	switch inst {
	case bytecode.Num, bytecode.Var, bytecode.ArrayElem, bytecode.Array,
		bytecode.Ibase, bytecode.Obase, bytecode.Scale, bytecode.Last,
		bytecode.Length, bytecode.Sqrt, bytecode.ScaleFunc, bytecode.Read,
		bytecode.IncPost, bytecode.DecPost, bytecode.IncPre, bytecode.DecPre,
		bytecode.Call:
		return true
	default:
		return false
	}
}

func isExprStarter(k token.Kind, flags exprFlag) bool {
	switch k {
	case token.Inc, token.Dec, token.Minus, token.BoolNot,
		token.Plus, token.Mul, token.Div, token.Mod, token.Pow,
		token.Assign, token.PlusAssign, token.MinusAssign, token.MulAssign,
		token.DivAssign, token.ModAssign, token.PowAssign,
		token.Eq, token.Ne, token.Lt, token.Le, token.Gt, token.Ge,
		token.BoolAnd, token.BoolOr,
		token.LParen, token.RParen,
		token.Name, token.Number,
		token.Ibase, token.Obase, token.Last,
		token.Length, token.Sqrt, token.Read, token.Scale:
		return true
	default:
		return false
	}
}

// parseExpr implements the shunting-yard expression compiler of
// spec.md §4.3, grounded directly on bc_parse_expr
// (original_source/src/bc/parse.c). It emits bytecode into the current
// function and leaves the lexer positioned on the terminating token,
// which must belong to terms. The operator stack is shared across
// nested calls (builtin/array/call-argument sub-expressions); opsStart
// is saved and restored so the caller's own reduction loop resumes
// correctly (spec.md §9, "operator stack sharing").
func (p *Parser) parseExpr(flags exprFlag, terms map[token.Kind]bool) error {
	parenFirst := p.cur().Kind == token.LParen
	savedOpsStart := p.opsStart
	p.opsStart = len(p.ops)
	p.lastOpAssign = false
	defer func() { p.opsStart = savedOpsStart }()

	var prev bytecode.Inst
	prevValid := false
	nexprs := 0
	nparens := 0
	nrelops := 0
	binLast := true
	rprn := false

	for isExprStarter(p.cur().Kind, flags) {
		k := p.cur().Kind
		switch {
		case k == token.Inc || k == token.Dec:
			inst, err := p.parseIncDec(k, prev, prevValid, &nexprs, flags)
			if err != nil {
				return err
			}
			prev, prevValid = inst, true
			rprn, binLast = false, false

		case k == token.Minus:
			unary := !isLeaf(prev, prevValid, rprn)
			if err := p.next(); err != nil {
				return err
			}
			if !unary {
				popped, err := p.pushOp(token.Minus)
				if err != nil {
					return err
				}
				nexprs -= popped
				prev = bytecode.Sub
			} else {
				p.pushUnary(token.Neg)
				prev = bytecode.Neg
			}
			prevValid = true
			rprn = false
			binLast = prev == bytecode.Sub

		case k == token.BoolNot || isBinaryOpToken(k):
			if (k == token.BoolNot) != binLast || (k != token.BoolNot && prev == bytecode.BoolNot && prevValid) {
				return p.errf(diagnostics.ErrBadExpr, "")
			}
			if token.IsAssign(k) && !isLvalue(prev, prevValid) {
				return p.errf(diagnostics.ErrBadAssign, "")
			}
			if token.IsRelational(k) {
				nrelops++
			}
			prev, prevValid = mustInst(k), true
			popped, err := p.pushOp(k)
			if err != nil {
				return err
			}
			nexprs -= popped
			if err := p.next(); err != nil {
				return err
			}
			rprn, binLast = false, k != token.BoolNot

		case k == token.LParen:
			if isLeaf(prev, prevValid, rprn) {
				return p.errf(diagnostics.ErrBadExpr, "")
			}
			nparens++
			p.ops = append(p.ops, token.LParen)
			rprn, binLast = false, false
			if err := p.next(); err != nil {
				return err
			}

		case k == token.RParen:
			if binLast || (prev == bytecode.BoolNot && prevValid) {
				return p.errf(diagnostics.ErrBadExpr, "")
			}
			if nparens == 0 {
				goto done
			}
			nparens--
			popped, err := p.closeParen()
			if err != nil {
				return err
			}
			nexprs -= popped
			if err := p.next(); err != nil {
				return err
			}
			rprn, binLast = true, false

		case k == token.Name:
			if isLeaf(prev, prevValid, rprn) {
				return p.errf(diagnostics.ErrBadExpr, "")
			}
			inst, err := p.parseName(flags &^ exprNoCall)
			if err != nil {
				return err
			}
			prev, prevValid = inst, true
			nexprs++
			rprn, binLast = false, false

		case k == token.Number:
			if isLeaf(prev, prevValid, rprn) {
				return p.errf(diagnostics.ErrBadExpr, "")
			}
			inst, err := p.parseNumber()
			if err != nil {
				return err
			}
			prev, prevValid = inst, true
			nexprs++
			rprn, binLast = false, false

		case k == token.Ibase || k == token.Obase || k == token.Last:
			if isLeaf(prev, prevValid, rprn) {
				return p.errf(diagnostics.ErrBadExpr, "")
			}
			inst, err := p.parseRegister(registerInst(k))
			if err != nil {
				return err
			}
			prev, prevValid = inst, true
			nexprs++
			rprn, binLast = false, false

		case k == token.Length || k == token.Sqrt:
			if isLeaf(prev, prevValid, rprn) {
				return p.errf(diagnostics.ErrBadExpr, "")
			}
			builtinInst := bytecode.Length
			if k == token.Sqrt {
				builtinInst = bytecode.Sqrt
			}
			inst, err := p.parseBuiltin(builtinInst)
			if err != nil {
				return err
			}
			prev, prevValid = inst, true
			nexprs++
			rprn, binLast = false, false

		case k == token.Read:
			if isLeaf(prev, prevValid, rprn) {
				return p.errf(diagnostics.ErrBadExpr, "")
			}
			inst, err := p.parseRead(flags)
			if err != nil {
				return err
			}
			prev, prevValid = inst, true
			nexprs++
			rprn, binLast = false, false

		case k == token.Scale:
			if isLeaf(prev, prevValid, rprn) {
				return p.errf(diagnostics.ErrBadExpr, "")
			}
			inst, err := p.parseScale()
			if err != nil {
				return err
			}
			prev, prevValid = inst, true
			nexprs++
			rprn, binLast = false, false
		}
	}

done:
	popped, err := p.flushOps()
	if err != nil {
		return err
	}
	nexprs -= popped

	if (prev == bytecode.BoolNot && prevValid) || nexprs != 1 {
		return p.errf(diagnostics.ErrBadExpr, "")
	}
	if !terms[p.cur().Kind] {
		return p.errf(diagnostics.ErrBadToken, "unexpected "+p.cur().Kind.String())
	}

	if !flags.has(exprRel) && nrelops > 0 {
		if err := p.posix(diagnostics.WarnRelPos, ""); err != nil {
			return err
		}
	} else if flags.has(exprRel) && nrelops > 1 {
		if err := p.posix(diagnostics.WarnMultiRel, ""); err != nil {
			return err
		}
	}

	if flags.has(exprPrint) {
		if parenFirst || !p.lastOpAssign {
			p.fn().Push(bytecode.Print)
		}
		p.fn().Push(bytecode.Pop)
	}
	return nil
}

func isBinaryOpToken(k token.Kind) bool {
	switch k {
	case token.Plus, token.Minus, token.Mul, token.Div, token.Mod, token.Pow,
		token.Assign, token.PlusAssign, token.MinusAssign, token.MulAssign,
		token.DivAssign, token.ModAssign, token.PowAssign,
		token.Eq, token.Ne, token.Lt, token.Le, token.Gt, token.Ge,
		token.BoolAnd, token.BoolOr:
		return true
	default:
		return false
	}
}

func mustInst(k token.Kind) bytecode.Inst {
	inst, _ := bytecode.FromToken(k)
	return inst
}

func registerInst(k token.Kind) bytecode.Inst {
	switch k {
	case token.Ibase:
		return bytecode.Ibase
	case token.Obase:
		return bytecode.Obase
	default:
		return bytecode.Last
	}
}

func isLvalue(inst bytecode.Inst, valid bool) bool {
	return bytecode.IsLvalue(inst, valid)
}

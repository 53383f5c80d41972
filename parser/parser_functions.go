package parser

import (
	"github.com/gobc-lang/gobc/bytecode"
	"github.com/gobc-lang/gobc/diagnostics"
	"github.com/gobc-lang/gobc/token"
)

// parseFuncDef compiles `define name(params) { ... }` up through and
// including the opening brace; the statement list and closing brace
// are driven by the ordinary top-level dispatch loop afterward (see
// parseBody's flagFuncInner branch). Only legal at the top level (the
// caller, Parse, enforces that no body is already open). Grounded on
// bc_parse_func.
func (p *Parser) parseFuncDef() (int, error) {
	if err := p.next(); err != nil { // consume "define"
		return 0, err
	}
	if p.cur().Kind != token.Name {
		return 0, p.errf(diagnostics.ErrBadFunc, "expected a function name")
	}
	name := p.cur().Literal
	if err := p.next(); err != nil {
		return 0, err
	}
	if p.cur().Kind != token.LParen {
		return 0, p.errf(diagnostics.ErrBadFunc, "expected (")
	}
	if err := p.next(); err != nil {
		return 0, err
	}

	idx := p.prog.FuncIndex(name)
	p.funcIdx = idx
	fn := p.fn()
	fn.ResetBody()
	fn.Name = name

	nparams := 0
	for p.cur().Kind != token.RParen {
		if p.cur().Kind != token.Name {
			return 0, p.errf(diagnostics.ErrBadFunc, "expected a parameter name")
		}
		pname := p.cur().Literal
		if err := p.next(); err != nil {
			return 0, err
		}

		array := false
		if p.cur().Kind == token.LBracket {
			array = true
			if err := p.next(); err != nil {
				return 0, err
			}
			if p.cur().Kind != token.RBracket {
				return 0, p.errf(diagnostics.ErrBadToken, "expected ]")
			}
			if err := p.next(); err != nil {
				return 0, err
			}
			if err := p.posix(diagnostics.WarnArrayRefParam, pname); err != nil {
				return 0, err
			}
		}
		if !fn.InsertLocal(pname, array) {
			return 0, p.errf(diagnostics.ErrDupLocal, pname)
		}
		nparams++

		if p.cur().Kind == token.Comma {
			if err := p.next(); err != nil {
				return 0, err
			}
			if p.cur().Kind == token.RParen {
				return 0, p.errf(diagnostics.ErrBadFunc, "trailing comma in parameter list")
			}
		}
	}
	fn.Params = nparams
	if err := p.next(); err != nil { // consume ')'
		return 0, err
	}

	if p.cur().Kind != token.LBrace {
		if err := p.posix(diagnostics.WarnBracePlacement, ""); err != nil {
			return 0, err
		}
		for p.cur().Kind == token.NLine {
			if err := p.next(); err != nil {
				return 0, err
			}
		}
		if p.cur().Kind != token.LBrace {
			return 0, p.errf(diagnostics.ErrBadFunc, "expected {")
		}
	}

	p.pushFlag(flagFunc | flagFuncInner | flagBody)
	p.braceDepth = 0
	if err := p.next(); err != nil { // consume '{'
		return 0, err
	}
	p.braceDepth++
	if _, err := p.parseBody(true); err != nil {
		return 0, err
	}
	return idx, nil
}

// parseReturn compiles `return`, `return expr`, or `return (expr)`,
// legal only inside a function body. `return ()` is accepted and
// quietly downgraded to RET0 rather than treated as an empty-expression
// error. A non-parenthesized return expression is a POSIX extension.
// Grounded on bc_parse_return.
func (p *Parser) parseReturn() error {
	if !p.has(flagFunc) {
		return p.errf(diagnostics.ErrReturnOutsideFunc, "")
	}
	if err := p.next(); err != nil { // consume "return"
		return err
	}

	if p.cur().Kind == token.Semicolon || p.cur().Kind == token.NLine || p.cur().Kind == token.RBrace {
		p.fn().Push(bytecode.Ret0)
		return nil
	}

	if p.cur().Kind != token.LParen {
		if err := p.posix(diagnostics.WarnReturnParens, ""); err != nil {
			return err
		}
		if err := p.parseExpr(0, exprStmtTerm); err != nil {
			return err
		}
		p.fn().Push(bytecode.Ret)
		return nil
	}

	if err := p.next(); err != nil { // consume '('
		return err
	}
	if p.cur().Kind == token.RParen {
		if err := p.next(); err != nil {
			return err
		}
		p.fn().Push(bytecode.Ret0)
		return nil
	}
	if err := p.parseExpr(0, rparenTerm); err != nil {
		return err
	}
	if err := p.next(); err != nil { // consume ')'
		return err
	}
	p.fn().Push(bytecode.Ret)
	return nil
}

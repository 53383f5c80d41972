package parser

import (
	"github.com/gobc-lang/gobc/bytecode"
	"github.com/gobc-lang/gobc/diagnostics"
	"github.com/gobc-lang/gobc/token"
)

// printTerm is the terminator set for one item of a print list: a
// comma introduces another item, anything else ends the list.
var printTerm = map[token.Kind]bool{
	token.Comma: true, token.NLine: true, token.Semicolon: true,
	token.RBrace: true, token.EOF: true,
}

// parsePrint compiles `print item, item, ...`: each item is either a
// string literal (PRINT_STR) or an expression (PRINT_POP, which prints
// and discards in one step, unlike the PRINT+POP pair an ordinary
// expression statement emits). Grounded on bc_parse_print.
func (p *Parser) parsePrint() error {
	if err := p.next(); err != nil { // consume "print"
		return err
	}

	for {
		if p.cur().Kind == token.String {
			if err := p.emitPrintStr(); err != nil {
				return err
			}
		} else {
			if !isExprStarter(p.cur().Kind, 0) {
				return p.errf(diagnostics.ErrBadPrint, "")
			}
			if err := p.parseExpr(0, printTerm); err != nil {
				return err
			}
			p.fn().Push(bytecode.PrintPop)
		}

		if p.cur().Kind != token.Comma {
			return nil
		}
		if err := p.next(); err != nil {
			return err
		}
	}
}

// parseBareString compiles a bare string-literal statement, e.g. `"hi"`
// on its own line: prints the literal without consuming a stack slot.
// Grounded on bc_parse_string.
func (p *Parser) parseBareString() error {
	return p.emitPrintStr()
}

func (p *Parser) emitPrintStr() error {
	idx := p.prog.InternString(p.cur().Literal)
	p.fn().Push(bytecode.PrintStr)
	p.fn().PushIndex(uint64(idx))
	return p.next()
}

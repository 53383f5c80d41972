// Package parser compiles a token stream from the lexer into bytecode,
// appended into a bytecode.Program's functions. It is the driver half of
// go-mix's parser.Parser split across concern-specific files, reworked
// around bc's shunting-yard expression grammar and jump-label-based
// control flow instead of an AST.
package parser

import (
	"github.com/gobc-lang/gobc/bytecode"
	"github.com/gobc-lang/gobc/diagnostics"
	"github.com/gobc-lang/gobc/lexer"
	"github.com/gobc-lang/gobc/token"
)

// flag is one bit of the per-enclosing-body state the parser tracks
// while compiling nested bodies (spec.md §3, "flags stack").
type flag uint16

const (
	flagFunc flag = 1 << iota
	flagFuncInner
	flagBody
	flagLoop
	flagLoopInner
	flagIf
	flagElse
	flagIfEnd
	// flagNonBrace marks a frame whose body turned out to be a single
	// non-braced statement rather than a `{ ... }` block, once that has
	// been decided (see parseBody). Such a frame closes itself as soon
	// as its wrapped statement is fully resolved, instead of waiting for
	// a literal '}' — see closeCascade.
	flagNonBrace
)

// exit is a pending forward jump recorded on the exits stack: a label to
// patch when the enclosing body ends, tagged with whether it marks a
// loop's exit (so break can find it).
type exit struct {
	label int
	loop  bool
}

// Result reports what compile-one-unit produced, mirroring the
// Engine-facing contract of spec.md §6 (compile_unit).
type Result int

const (
	ResultStmt Result = iota
	ResultFuncDefined
	ResultNeedMoreInput
	ResultHalt
	ResultQuit
	ResultLimits
)

// Cancelled is polled by the parser at well-defined points (spec.md §5);
// callers set it from a signal handler and the parser aborts the current
// compile unit the next time it is observed.
type Cancelled func() bool

// Parser drives a Lexer and emits bytecode into a shared Program. One
// Parser instance compiles one Lexer's source, one top-level unit per
// Parse call; the REPL creates a fresh Parser for every input line
// against the session's shared Program, and Program.ResetMain clears
// MAIN's body between statements.
type Parser struct {
	lex *lexer.Lexer
	rep *diagnostics.Reporter
	prog *bytecode.Program

	funcIdx int // index into prog.Functions currently being appended to

	flags []flag
	exits []exit
	conds []int // continue-target label indices

	ops      []token.Kind // shared operator stack
	opsStart int
	lastOpAssign bool // true if the most recently emitted operator was an assignment

	braceDepth int
	autoPart   bool

	cancelled Cancelled
	Errors    []error
}

// New creates a Parser reading from lex and emitting into prog. rep
// gates POSIX-extension diagnostics; cancelled (may be nil) is polled
// for cooperative cancellation (spec.md §5).
func New(lex *lexer.Lexer, rep *diagnostics.Reporter, prog *bytecode.Program, cancelled Cancelled) *Parser {
	return &Parser{
		lex:       lex,
		rep:       rep,
		prog:      prog,
		flags:     []flag{0},
		cancelled: cancelled,
	}
}

func (p *Parser) fn() *bytecode.Function { return p.prog.Functions[p.funcIdx] }

func (p *Parser) topFlag() flag {
	return p.flags[len(p.flags)-1]
}

func (p *Parser) pushFlag(f flag) { p.flags = append(p.flags, f) }

func (p *Parser) popFlag() flag {
	f := p.flags[len(p.flags)-1]
	p.flags = p.flags[:len(p.flags)-1]
	return f
}

func (p *Parser) has(f flag) bool { return p.topFlag()&f != 0 }

func (p *Parser) cur() token.Token { return p.lex.Cur }

func (p *Parser) next() error {
	if p.cancelled != nil && p.cancelled() {
		return diagnostics.NewError(diagnostics.ErrUnexpectedEOF, p.cur().File, p.cur().Line, "cancelled")
	}
	_, err := p.lex.Next()
	return err
}

func (p *Parser) errf(kind diagnostics.Kind, detail string) error {
	c := p.cur()
	return diagnostics.NewError(kind, c.File, c.Line, detail)
}

func (p *Parser) posix(kind diagnostics.WarnKind, detail string) error {
	c := p.cur()
	return p.rep.Posix(kind, c.File, c.Line, detail)
}

// Parse compiles exactly one top-level unit: a single statement, or a
// function definition's header up to and including its opening '{'. A
// function body is not compiled in the same call: its statements and
// closing '}' arrive through later Parse calls, one statement each. It
// returns the Result tag and any error; on error the caller should treat
// the compile unit as aborted. For errors raised while compiling a
// statement or a function header the Parser has already reset its own
// transient state via reset; the "define is not allowed here" and
// unclosed-body-at-end-of-input errors are returned without a reset.
func (p *Parser) Parse() (Result, error) {
	if p.cancelled != nil && p.cancelled() {
		p.reset()
		return ResultStmt, p.errf(diagnostics.ErrUnexpectedEOF, "cancelled")
	}

	if p.cur().Kind == token.Invalid {
		if err := p.next(); err != nil {
			return ResultStmt, err
		}
	}

	if p.cur().Kind == token.EOF {
		// A dangling if awaiting a possible else must be settled before
		// end-of-input can be declared final: nothing more is coming, so
		// this is exactly the no-else case. noElse may itself cascade
		// through several enclosing non-braced bodies; if it leaves
		// another dangling else pending on an outer construct, the next
		// Parse call (still seeing EOF) settles that one in turn.
		if p.has(flagIfEnd) {
			if err := p.noElse(); err != nil {
				p.reset()
				return ResultStmt, err
			}
			return ResultStmt, nil
		}
		if len(p.flags) != 1 {
			return ResultStmt, p.errf(diagnostics.ErrNoBlockEnd, "unexpected end of input")
		}
		return ResultNeedMoreInput, nil
	}

	if p.cur().Kind == token.Define {
		if len(p.flags) != 1 {
			return ResultStmt, p.errf(diagnostics.ErrBadFunc, "define is not allowed here")
		}
		idx, err := p.parseFuncDef()
		if err != nil {
			p.reset()
			return ResultStmt, err
		}
		return resultFor(idx), nil
	}

	res, err := p.parseStmt()
	if err != nil {
		p.reset()
		return ResultStmt, err
	}
	return res, nil
}

func resultFor(idx int) Result {
	_ = idx
	return ResultFuncDefined
}

// reset implements spec.md §4.5's error-recovery contract: drop pending
// operator/flag/exit/cond state, switch back to MAIN and truncate MAIN's
// bytecode to empty, and consume tokens up to (not past) the next
// statement boundary. A function whose definition was interrupted keeps
// its slot and the code emitted for it so far.
func (p *Parser) reset() {
	p.ops = p.ops[:0]
	p.opsStart = 0
	p.flags = []flag{0}
	p.exits = p.exits[:0]
	p.conds = []int{}
	p.braceDepth = 0
	p.autoPart = false
	p.funcIdx = bytecode.MAIN
	p.fn().Truncate(0)

	for p.cur().Kind != token.Semicolon && p.cur().Kind != token.NLine && p.cur().Kind != token.EOF {
		if err := p.next(); err != nil {
			return
		}
	}
}

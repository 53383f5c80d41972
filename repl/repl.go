// Package repl implements the interactive Read-Eval-Print Loop for gobc.
// Unlike the teacher's repl package (which parses into an AST and hands
// it to a tree-walking evaluator), this loop only drives the front end:
// every line is lexed and parsed straight into bytecode, and the REPL's
// job is to report what the compiler produced (or the diagnostic it
// raised), not to execute anything - the arithmetic engine this bytecode
// would feed is out of scope. The readline/color-based shell and the
// Repl struct's constructor-parameter shape are kept from the teacher.
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/gobc-lang/gobc/bytecode"
	"github.com/gobc-lang/gobc/diagnostics"
	"github.com/gobc-lang/gobc/internal/disasm"
	"github.com/gobc-lang/gobc/lexer"
	"github.com/gobc-lang/gobc/parser"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl is an interactive gobc session: one Program persists across
// input lines, reset (for MAIN) after every completed top-level
// statement the way spec.md's compile_unit/ResetMain contract requires.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	License string
	Prompt  string

	// Strict puts the Reporter in POSIX-strict mode: every grammar
	// extension bc accepts beyond POSIX becomes a hard error instead of
	// a warning.
	Strict bool
	// Disasm prints the bytecode of every top-level statement and
	// function definition as it compiles, the REPL's -S behavior.
	Disasm bool
}

// NewRepl creates a Repl with the given banner/version/author/separator/
// license/prompt, mirroring the teacher's go-mix repl.NewRepl signature.
func NewRepl(banner, version, author, line, license, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, License: license, Prompt: prompt}
}

// PrintBannerInfo prints the startup banner, version/author/license line,
// and usage hints.
func (r *Repl) PrintBannerInfo(w io.Writer) {
	blueColor.Fprintf(w, "%s\n", r.Line)
	greenColor.Fprintf(w, "%s\n", r.Banner)
	blueColor.Fprintf(w, "%s\n", r.Line)
	yellowColor.Fprintln(w, "Version: "+r.Version+" | Author: "+r.Author+" | License: "+r.License)
	blueColor.Fprintf(w, "%s\n", r.Line)
	cyanColor.Fprintf(w, "%s\n", "Welcome to gobc.")
	cyanColor.Fprintf(w, "%s\n", "Type a bc statement and press enter. Type 'quit' or press Ctrl+D to exit.")
	cyanColor.Fprintf(w, "%s\n", "Use up/down arrows to navigate command history.")
	blueColor.Fprintf(w, "%s\n", r.Line)
}

// Start runs the REPL loop: print the banner, read lines via readline,
// compile each one against a Program that persists for the session.
func (r *Repl) Start(reader io.Reader, writer io.Writer) {
	r.PrintBannerInfo(writer)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	prog := bytecode.NewProgram()
	rep := diagnostics.NewReporter(r.Strict)

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Good Bye!\n"))
			return
		}

		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			continue
		}
		rl.SaveHistory(line)

		if r.compileLine(writer, prog, rep, line) {
			writer.Write([]byte("Good Bye!\n"))
			return
		}
	}
}

// compileLine feeds one line of input through a fresh Lexer/Parser pair
// against the session's shared Program, reporting every completed unit
// (and any diagnostic) as it goes. It returns true if the session should
// end (the user entered "quit"). A line is compiled to exhaustion (EOF),
// since a single line may hold several semicolon-separated statements,
// unless a quit or a compile error ends it first; after an error the
// rest of the line is dropped.
func (r *Repl) compileLine(writer io.Writer, prog *bytecode.Program, rep *diagnostics.Reporter, line string) (quit bool) {
	defer func() {
		if rec := recover(); rec != nil {
			redColor.Fprintf(writer, "[INTERNAL ERROR] %v\n", rec)
		}
	}()

	lex := lexer.New("<repl>", line+"\n", rep)
	par := parser.New(lex, rep, prog, nil)

	for {
		res, err := par.Parse()
		if err != nil {
			redColor.Fprintf(writer, "%s\n", err)
			return false
		}

		switch res {
		case parser.ResultNeedMoreInput:
			return false

		case parser.ResultQuit:
			return true

		case parser.ResultLimits:
			printLimits(writer)

		case parser.ResultStmt:
			r.reportUnit(writer, prog, rep)
			prog.ResetMain()

		case parser.ResultFuncDefined:
			r.reportUnit(writer, prog, rep)
		}
	}
}

// reportUnit prints accumulated POSIX-extension warnings and, if Disasm
// is set, the program's current bytecode, then clears the warnings for
// the next unit.
func (r *Repl) reportUnit(writer io.Writer, prog *bytecode.Program, rep *diagnostics.Reporter) {
	for _, w := range rep.Warnings {
		yellowColor.Fprintf(writer, "%s\n", w)
	}
	rep.Reset()

	if r.Disasm {
		blueColor.Fprintf(writer, "%s\n", r.Line)
		disasm.Program(writer, prog)
		blueColor.Fprintf(writer, "%s\n", r.Line)
	}
}

// printLimits prints the POSIX limits table, the REPL's response to a
// bare `limits` statement.
func printLimits(w io.Writer) {
	cyanColor.Fprintln(w, "limits:")
	fmt.Fprintf(w, "  ibase.max  = %d\n", bytecode.MaxIbase)
	fmt.Fprintf(w, "  obase.max  = %d\n", bytecode.MaxObase)
	fmt.Fprintf(w, "  scale.max  = %d\n", bytecode.MaxScale)
	fmt.Fprintf(w, "  string.max = %d\n", bytecode.MaxStringLen)
	fmt.Fprintf(w, "  array.max  = %d\n", bytecode.MaxArrayLen)
	fmt.Fprintf(w, "  exponent.max = %d\n", bytecode.MaxExponent)
	fmt.Fprintf(w, "  num.max    = %d\n", bytecode.MaxNumLen)
}

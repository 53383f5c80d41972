// Command gobc is the front-end driver for the gobc compiler: a REPL and
// a file-compile mode, both built on the lexer/parser/bytecode pipeline.
// It mirrors the teacher's main/main.go entry point (mode selection,
// banner/version constants, colored diagnostics) re-pointed at bc's
// grammar, with flag parsing moved onto github.com/pborman/getopt in
// place of the teacher's hand-rolled os.Args switch.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/pborman/getopt"

	"github.com/gobc-lang/gobc/bytecode"
	"github.com/gobc-lang/gobc/diagnostics"
	"github.com/gobc-lang/gobc/internal/disasm"
	"github.com/gobc-lang/gobc/lexer"
	"github.com/gobc-lang/gobc/parser"
	"github.com/gobc-lang/gobc/repl"
)

const (
	version = "v0.1.0"
	author  = "gobc contributors"
	license = "MIT"
	prompt  = "gobc> "
	line    = "----------------------------------------------------------------"
)

const banner = `
   ____   ___  ____    ____
  / ___| / _ \| __ )  / ___|
 | |  _ | | | |  _ \ | |
 | |_| || |_| | |_) || |___
  \____| \___/|____/  \____|
`

var (
	redColor   = color.New(color.FgRed)
	cyanColor  = color.New(color.FgCyan)
	greenColor = color.New(color.FgGreen)
)

func main() {
	strict := getopt.BoolLong("strict-posix", 0, "reject grammar extensions POSIX bc does not define")
	file := getopt.StringLong("file", 'f', "", "compile FILE instead of starting the REPL")
	quiet := getopt.BoolLong("quiet", 'q', "suppress the startup banner")
	dis := getopt.BoolLong("disassemble", 'S', "print the compiled bytecode of every statement and function")
	help := getopt.BoolLong("help", 'h', "display this help and exit")
	getopt.Parse()

	if *help {
		getopt.PrintUsage(os.Stdout)
		os.Exit(0)
	}

	if *file != "" {
		if err := compileFile(*file, *strict, *dis); err != nil {
			redColor.Fprintf(os.Stderr, "%s\n", err)
			os.Exit(1)
		}
		return
	}

	r := repl.NewRepl(banner, version, author, line, license, prompt)
	r.Strict = *strict
	r.Disasm = *dis
	if *quiet {
		r.Banner = ""
	}
	r.Start(os.Stdin, os.Stdout)
}

// compileFile reads src top to bottom and compiles it as a single
// sequence of top-level units, the way bc compiles a script file: unlike
// the REPL, a hard error aborts the whole run rather than just the one
// statement, and MAIN's bytecode is never reset between statements (a
// script is one continuous program, not a sequence of independent REPL
// inputs).
func compileFile(path string, strict, dis bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return err
	}
	src := string(raw)

	rep := diagnostics.NewReporter(strict)
	prog := bytecode.NewProgram()
	lex := lexer.New(path, src, rep)
	par := parser.New(lex, rep, prog, nil)

	for {
		res, err := par.Parse()
		if err != nil {
			return err
		}
		switch res {
		case parser.ResultNeedMoreInput:
			for _, w := range rep.Warnings {
				cyanColor.Fprintf(os.Stdout, "%s\n", w)
			}
			if dis {
				disasm.Program(os.Stdout, prog)
			}
			greenColor.Fprintf(os.Stdout, "compiled %s\n", path)
			return nil
		case parser.ResultQuit:
			return nil
		case parser.ResultLimits:
			fmt.Fprintf(os.Stdout, "ibase.max=%d obase.max=%d scale.max=%d\n",
				bytecode.MaxIbase, bytecode.MaxObase, bytecode.MaxScale)
		}
	}
}


// Package disasm renders a bytecode.Function's code buffer as human
// readable text, one instruction per line, for the CLI driver's -S flag
// and for debugging. Grounded on db47h/ngaro's asm.Disassemble: a single
// step function that reads one instruction at a known position and
// returns the offset of the next one, so callers can either walk a whole
// buffer or disassemble a single instruction on demand (the way a
// debugger would print the instruction at a breakpoint).
package disasm

import (
	"fmt"
	"io"

	"github.com/gobc-lang/gobc/bytecode"
)

// operand tags what trailing bytes follow an opcode in the code stream,
// mirroring bytecode.Function's Push/PushIndex/PushName encodings.
type operand int

const (
	operandNone operand = iota
	operandNumberIndex
	operandStringIndex
	operandLabelIndex
	operandName
	operandCallIndices // two back-to-back PushIndex operands: nparams, funcidx
)

var operands = map[bytecode.Inst]operand{
	bytecode.Num:       operandNumberIndex,
	bytecode.Str:       operandStringIndex,
	bytecode.PrintStr:  operandStringIndex,
	bytecode.Jump:      operandLabelIndex,
	bytecode.JumpZero:  operandLabelIndex,
	bytecode.Var:       operandName,
	bytecode.Array:     operandName,
	bytecode.ArrayElem: operandName,
	bytecode.Call:      operandCallIndices,
}

// decodeIndex reads a bytecode.Function.PushIndex-encoded value at pc:
// one length byte (0-8) followed by that many little-endian value bytes.
func decodeIndex(code []byte, pc int) (value uint64, next int, err error) {
	if pc >= len(code) {
		return 0, pc, fmt.Errorf("disasm: truncated index at offset %d", pc)
	}
	n := int(code[pc])
	pc++
	if n > 8 || pc+n > len(code) {
		return 0, pc, fmt.Errorf("disasm: malformed index length %d at offset %d", n, pc-1)
	}
	for i := 0; i < n; i++ {
		value |= uint64(code[pc+i]) << (8 * i)
	}
	return value, pc + n, nil
}

// decodeName reads a bytecode.Function.PushName-encoded identifier at pc:
// raw bytes up to and including a NUL terminator.
func decodeName(code []byte, pc int) (name string, next int, err error) {
	start := pc
	for pc < len(code) && code[pc] != 0 {
		pc++
	}
	if pc >= len(code) {
		return "", pc, fmt.Errorf("disasm: unterminated name at offset %d", start)
	}
	return string(code[start:pc]), pc + 1, nil
}

// Step disassembles exactly one instruction from code at pc, writing its
// text form to w, and returns the offset of the next instruction. fn and
// prog supply the label table and the number/string pools an instruction's
// operand may index into; prog may be nil (operands are then rendered as
// bare indices rather than resolved literals).
func Step(w io.Writer, code []byte, pc int, fn *bytecode.Function, prog *bytecode.Program) (next int, err error) {
	if pc >= len(code) {
		return pc, fmt.Errorf("disasm: offset %d out of range", pc)
	}
	inst := bytecode.Inst(code[pc])
	pc++

	if _, err := io.WriteString(w, inst.String()); err != nil {
		return pc, err
	}

	switch operands[inst] {
	case operandNone:

	case operandNumberIndex:
		idx, n, err := decodeIndex(code, pc)
		if err != nil {
			return n, err
		}
		pc = n
		if prog != nil && int(idx) < len(prog.Numbers) {
			fmt.Fprintf(w, " %s", prog.Numbers[idx])
		} else {
			fmt.Fprintf(w, " #%d", idx)
		}

	case operandStringIndex:
		idx, n, err := decodeIndex(code, pc)
		if err != nil {
			return n, err
		}
		pc = n
		if prog != nil && int(idx) < len(prog.Strings) {
			fmt.Fprintf(w, " %q", prog.Strings[idx])
		} else {
			fmt.Fprintf(w, " #%d", idx)
		}

	case operandLabelIndex:
		idx, n, err := decodeIndex(code, pc)
		if err != nil {
			return n, err
		}
		pc = n
		target := "?"
		if fn != nil && int(idx) < len(fn.Labels) {
			if off := fn.Labels[idx]; off != bytecode.Unresolved {
				target = fmt.Sprintf("%d", off)
			}
		}
		fmt.Fprintf(w, " L%d(%s)", idx, target)

	case operandName:
		name, n, err := decodeName(code, pc)
		if err != nil {
			return n, err
		}
		pc = n
		fmt.Fprintf(w, " %s", name)

	case operandCallIndices:
		nparams, n, err := decodeIndex(code, pc)
		if err != nil {
			return n, err
		}
		pc = n
		funcIdx, n, err := decodeIndex(code, pc)
		if err != nil {
			return n, err
		}
		pc = n
		name := fmt.Sprintf("#%d", funcIdx)
		if prog != nil && int(funcIdx) < len(prog.Functions) {
			if fname := prog.Functions[funcIdx].Name; fname != "" {
				name = fname
			}
		}
		fmt.Fprintf(w, " %s/%d", name, nparams)
	}

	return pc, nil
}

// Function writes every instruction in fn's code buffer to w, one per
// line, prefixed with its byte offset. Used by the CLI driver's -S flag
// to print a just-defined function's bytecode.
func Function(w io.Writer, fn *bytecode.Function, prog *bytecode.Program) error {
	pc := 0
	for pc < fn.Len() {
		start := pc
		fmt.Fprintf(w, "% 6d  ", start)
		next, err := Step(w, fn.Code, pc, fn, prog)
		if err != nil {
			fmt.Fprintf(w, "  <%v>\n", err)
			return err
		}
		io.WriteString(w, "\n")
		pc = next
	}
	return nil
}

// Program writes every function in prog, MAIN first, labelled by name
// ("main" for MAIN, the declared name otherwise).
func Program(w io.Writer, prog *bytecode.Program) error {
	for i, fn := range prog.Functions {
		name := fn.Name
		if i == bytecode.MAIN {
			name = "main"
		}
		fmt.Fprintf(w, "%s:\n", name)
		if err := Function(w, fn, prog); err != nil {
			return err
		}
	}
	return nil
}

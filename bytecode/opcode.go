// Package bytecode implements the position-independent instruction model
// spec.md §3-§6 describes: a closed opcode enumeration, a per-function
// append-only code buffer with a label table, and the program-wide
// function/number/string pools. It is the hand-off point to the (external,
// out of scope) execution engine.
package bytecode

import (
	"fmt"

	"github.com/gobc-lang/gobc/token"
)

// Inst is a single bytecode opcode: one byte, drawn from a closed
// enumeration. Some opcodes are followed by operand bytes in the code
// stream (see Function.PushIndex / Function.PushName).
type Inst byte

const (
	// Literals.
	Num Inst = iota
	Str

	// Lvalue reads.
	Var
	ArrayElem
	Array
	Ibase
	Obase
	Scale
	Last

	// Builtins.
	Length
	Sqrt
	ScaleFunc
	Read

	// Arithmetic / boolean / relational.
	Add
	Sub
	Mul
	Div
	Mod
	Pow
	BoolNot
	BoolAnd
	BoolOr
	Neg

	RelEq
	RelLe
	RelGe
	RelNe
	RelLt
	RelGt

	// Pre/post increment/decrement.
	IncPre
	IncPost
	DecPre
	DecPost

	// Assignment.
	Assign
	AssignPlus
	AssignMinus
	AssignMul
	AssignDiv
	AssignMod
	AssignPow

	// Control flow.
	Jump
	JumpZero
	Call
	Ret
	Ret0
	Halt

	// Side effects.
	Print
	PrintPop
	PrintStr
	Pop
)

var mnemonics = [...]string{
	Num: "num", Str: "str",
	Var: "var", ArrayElem: "array_elem", Array: "array",
	Ibase: "ibase", Obase: "obase", Scale: "scale", Last: "last",
	Length: "length", Sqrt: "sqrt", ScaleFunc: "scale_func", Read: "read",
	Add: "+", Sub: "-", Mul: "*", Div: "/", Mod: "%", Pow: "^",
	BoolNot: "!", BoolAnd: "&&", BoolOr: "||", Neg: "neg",
	RelEq: "==", RelLe: "<=", RelGe: ">=", RelNe: "!=", RelLt: "<", RelGt: ">",
	IncPre: "inc_pre", IncPost: "inc_post", DecPre: "dec_pre", DecPost: "dec_post",
	Assign: "=", AssignPlus: "+=", AssignMinus: "-=", AssignMul: "*=",
	AssignDiv: "/=", AssignMod: "%=", AssignPow: "^=",
	Jump: "jump", JumpZero: "jump_zero", Call: "call", Ret: "ret", Ret0: "ret0",
	Halt: "halt", Print: "print", PrintPop: "print_pop", PrintStr: "print_str",
	Pop: "pop",
}

func (i Inst) String() string {
	if int(i) < len(mnemonics) && mnemonics[i] != "" {
		return mnemonics[i]
	}
	return fmt.Sprintf("Inst(%d)", byte(i))
}

// relFromToken maps relational token kinds to their Inst; entries are
// listed in the Inst declaration order (RelEq..RelGt).
var relFromToken = map[token.Kind]Inst{
	token.Eq: RelEq, token.Le: RelLe, token.Ge: RelGe,
	token.Ne: RelNe, token.Lt: RelLt, token.Gt: RelGt,
}

var assignFromToken = map[token.Kind]Inst{
	token.Assign: Assign, token.PlusAssign: AssignPlus, token.MinusAssign: AssignMinus,
	token.MulAssign: AssignMul, token.DivAssign: AssignDiv, token.ModAssign: AssignMod,
	token.PowAssign: AssignPow,
}

var arithFromToken = map[token.Kind]Inst{
	token.Plus: Add, token.Minus: Sub, token.Mul: Mul, token.Div: Div,
	token.Mod: Mod, token.Pow: Pow, token.Neg: Neg,
	token.BoolNot: BoolNot, token.BoolAnd: BoolAnd, token.BoolOr: BoolOr,
}

// FromToken is the explicit tagged-enumeration map the design notes call
// for (spec.md §9, "Opcode as tagged variant"): given an operator token
// kind produced while draining the shunting-yard operator stack, it
// returns the Inst that performs that operation.
func FromToken(k token.Kind) (Inst, bool) {
	if i, ok := relFromToken[k]; ok {
		return i, true
	}
	if i, ok := assignFromToken[k]; ok {
		return i, true
	}
	if i, ok := arithFromToken[k]; ok {
		return i, true
	}
	return 0, false
}

// IsLvalue reports whether inst is one of the instructions that push an
// addressable value: VAR, ARRAY_ELEM, SCALE, LAST, IBASE, OBASE. These are
// the instructions the assignment and inc/dec operators may target.
func IsLvalue(inst Inst, valid bool) bool {
	if !valid {
		return false
	}
	switch inst {
	case Var, ArrayElem, Scale, Last, Ibase, Obase:
		return true
	default:
		return false
	}
}

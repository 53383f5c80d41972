package disasm_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gobc-lang/gobc/bytecode"
	"github.com/gobc-lang/gobc/internal/disasm"
)

func TestStepLiteralAndArithmetic(t *testing.T) {
	prog := bytecode.NewProgram()
	numIdx := prog.InternNumber("3")
	fn := prog.Main()
	fn.Push(bytecode.Num)
	fn.PushIndex(uint64(numIdx))
	fn.Push(bytecode.Neg)

	var sb strings.Builder
	next, err := disasm.Step(&sb, fn.Code, 0, fn, prog)
	require.NoError(t, err)
	assert.Equal(t, "num 3", sb.String())

	sb.Reset()
	_, err = disasm.Step(&sb, fn.Code, next, fn, prog)
	require.NoError(t, err)
	assert.Equal(t, "neg", sb.String())
}

func TestStepVarAndArrayElem(t *testing.T) {
	prog := bytecode.NewProgram()
	fn := prog.Main()
	fn.Push(bytecode.Var)
	fn.PushName("x")
	fn.Push(bytecode.ArrayElem)
	fn.PushName("a")

	var sb strings.Builder
	next, err := disasm.Step(&sb, fn.Code, 0, fn, prog)
	require.NoError(t, err)
	assert.Equal(t, "var x", sb.String())

	sb.Reset()
	_, err = disasm.Step(&sb, fn.Code, next, fn, prog)
	require.NoError(t, err)
	assert.Equal(t, "array_elem a", sb.String())
}

func TestStepJumpResolvedAndUnresolved(t *testing.T) {
	prog := bytecode.NewProgram()
	fn := prog.Main()
	label := fn.NewLabel()
	fn.Push(bytecode.JumpZero)
	fn.PushIndex(uint64(label))

	var sb strings.Builder
	_, err := disasm.Step(&sb, fn.Code, 0, fn, prog)
	require.NoError(t, err)
	assert.Equal(t, "jump_zero L0(?)", sb.String())

	fn.ResolveLabel(label)
	sb.Reset()
	_, err = disasm.Step(&sb, fn.Code, 0, fn, prog)
	require.NoError(t, err)
	assert.Equal(t, "jump_zero L0(2)", sb.String())
}

func TestStepCallResolvesFunctionName(t *testing.T) {
	prog := bytecode.NewProgram()
	callee := prog.FuncIndex("f")
	fn := prog.Main()
	fn.Push(bytecode.Call)
	fn.PushIndex(2)
	fn.PushIndex(uint64(callee))

	var sb strings.Builder
	_, err := disasm.Step(&sb, fn.Code, 0, fn, prog)
	require.NoError(t, err)
	assert.Equal(t, "call f/2", sb.String())
}

func TestStepPrintStrResolvesStringLiteral(t *testing.T) {
	prog := bytecode.NewProgram()
	idx := prog.InternString("hello")
	fn := prog.Main()
	fn.Push(bytecode.PrintStr)
	fn.PushIndex(uint64(idx))

	var sb strings.Builder
	_, err := disasm.Step(&sb, fn.Code, 0, fn, prog)
	require.NoError(t, err)
	assert.Equal(t, `print_str "hello"`, sb.String())
}

func TestStepWithoutProgramFallsBackToBareIndices(t *testing.T) {
	prog := bytecode.NewProgram()
	idx := prog.InternNumber("42")
	fn := prog.Main()
	fn.Push(bytecode.Num)
	fn.PushIndex(uint64(idx))

	var sb strings.Builder
	_, err := disasm.Step(&sb, fn.Code, 0, fn, nil)
	require.NoError(t, err)
	assert.Equal(t, "num #0", sb.String())
}

func TestStepOutOfRangeOffset(t *testing.T) {
	fn := bytecode.NewFunction("")
	fn.Push(bytecode.Halt)

	var sb strings.Builder
	_, err := disasm.Step(&sb, fn.Code, 5, fn, nil)
	assert.Error(t, err)
}

func TestFunctionWalksWholeBuffer(t *testing.T) {
	prog := bytecode.NewProgram()
	idx := prog.InternNumber("1")
	fn := prog.Main()
	fn.Push(bytecode.Num)
	fn.PushIndex(uint64(idx))
	fn.Push(bytecode.Print)
	fn.Push(bytecode.Pop)
	fn.Push(bytecode.Ret0)

	var sb strings.Builder
	require.NoError(t, disasm.Function(&sb, fn, prog))
	out := sb.String()
	assert.Contains(t, out, "num 1")
	assert.Contains(t, out, "print")
	assert.Contains(t, out, "pop")
	assert.Contains(t, out, "ret0")
}

func TestProgramLabelsMainAndNamedFunctions(t *testing.T) {
	prog := bytecode.NewProgram()
	callee := prog.FuncIndex("f")
	prog.Functions[callee].Push(bytecode.Ret0)
	prog.Main().Push(bytecode.Halt)

	var sb strings.Builder
	require.NoError(t, disasm.Program(&sb, prog))
	out := sb.String()
	assert.Contains(t, out, "main:")
	assert.Contains(t, out, "f:")
}

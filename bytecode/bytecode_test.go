package bytecode

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decode walks a code buffer pairing each opcode with any index/name
// operand it carries, for golden-style comparisons in tests. It only
// understands the operand shapes this package defines.
type decoded struct {
	Inst  Inst
	Index uint64
	Name  string
	HasIx bool
	HasNm bool
}

func decode(code []byte) []decoded {
	var out []decoded
	i := 0
	readIndex := func() uint64 {
		n := int(code[i])
		i++
		var v uint64
		for j := n - 1; j >= 0; j-- {
			v = v<<8 | uint64(code[i+j])
		}
		i += n
		return v
	}
	readName := func() string {
		start := i
		for code[i] != 0 {
			i++
		}
		s := string(code[start:i])
		i++
		return s
	}
	for i < len(code) {
		inst := Inst(code[i])
		i++
		d := decoded{Inst: inst}
		switch inst {
		case Num, Str, PrintStr, Jump, JumpZero:
			d.HasIx = true
			d.Index = readIndex()
		case Call:
			d.HasIx = true
			d.Index = readIndex() // nparams
			_ = readIndex()       // function index (consumed, not stored here)
		case Var, Array, ArrayElem:
			d.HasNm = true
			d.Name = readName()
		}
		out = append(out, d)
	}
	return out
}

func TestPushIndexRoundTrip(t *testing.T) {
	cases := []uint64{0, 1, 255, 256, 65535, 1 << 32, ^uint64(0) >> 1}
	for _, u := range cases {
		f := NewFunction("")
		f.PushIndex(u)
		got := decode(append([]byte{byte(Num)}, f.Code...))
		require.Len(t, got, 1)
		assert.Equal(t, u, got[0].Index)
	}
}

func TestPushNameNulTerminated(t *testing.T) {
	f := NewFunction("")
	f.Push(Var)
	f.PushName("scale_local")
	got := decode(f.Code)
	want := []decoded{{Inst: Var, HasNm: true, Name: "scale_local"}}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(decoded{})); diff != "" {
		t.Errorf("decode mismatch (-want +got):\n%s", diff)
	}
}

func TestLabelLifecycle(t *testing.T) {
	f := NewFunction("")
	idx := f.NewLabel()
	assert.Equal(t, Unresolved, f.Labels[idx])
	f.Push(Num)
	f.PushIndex(0)
	f.ResolveLabel(idx)
	assert.Equal(t, uint64(f.Len()), f.Labels[idx])
}

func TestFunctionIndicesAssignedOnFirstReference(t *testing.T) {
	p := NewProgram()
	assert.Equal(t, MAIN, 0)
	i1 := p.FuncIndex("f")
	i2 := p.FuncIndex("g")
	i3 := p.FuncIndex("f")
	assert.Equal(t, i1, i3)
	assert.NotEqual(t, i1, i2)
	assert.Len(t, p.Functions, 3)
}

func TestResetMainClearsBodyOnly(t *testing.T) {
	p := NewProgram()
	m := p.Main()
	m.Push(Num)
	m.PushIndex(0)
	m.NewLabel()
	p.ResetMain()
	assert.Equal(t, 0, m.Len())
	assert.Empty(t, m.Labels)
}

func TestInsertLocalRejectsDuplicates(t *testing.T) {
	f := NewFunction("f")
	assert.True(t, f.InsertLocal("x", false))
	assert.False(t, f.InsertLocal("x", true))
	assert.True(t, f.HasLocal("x"))
}

func TestInternPoolsAreInsertionOrdered(t *testing.T) {
	p := NewProgram()
	assert.Equal(t, 0, p.InternString("hi"))
	assert.Equal(t, 1, p.InternString("there"))
	assert.Equal(t, []string{"hi", "there"}, p.Strings)
}

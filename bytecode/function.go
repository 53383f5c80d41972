package bytecode

// Unresolved is the sentinel label value: a label allocated but not yet
// patched to a code offset. spec.md §3 invariant: "a label's value is
// either unresolved (sentinel) or a valid code offset within the owning
// function."
const Unresolved = ^uint64(0)

// Local is one entry in a function's name table: a parameter or an
// auto-declared local, tagged with whether it was declared as an array
// (name[]) or a scalar.
type Local struct {
	Name  string
	Array bool
}

// MAIN is the function index reserved for the top-level (REPL/script)
// statement stream. It is reset after every top-level statement executes.
const MAIN = 0

// Function owns one compiled function's opcode buffer, its label table
// (absolute code offsets, patched after forward emission), and its
// parameter/auto-local name table.
type Function struct {
	Name    string
	Code    []byte
	Labels  []uint64
	Locals  []Local
	Params  int
	autoSet map[string]bool
}

// NewFunction creates an empty function named name. MAIN is created with
// name "" by Program.
func NewFunction(name string) *Function {
	return &Function{Name: name, autoSet: make(map[string]bool)}
}

// Len returns the current length of the code buffer, i.e. the offset the
// next emitted byte will land at.
func (f *Function) Len() int { return len(f.Code) }

// Truncate discards everything in the code buffer from n onward. Used by
// Program.ResetMain and by the parser's error-recovery reset().
func (f *Function) Truncate(n int) {
	f.Code = f.Code[:n]
}

// Push appends a single opcode byte.
func (f *Function) Push(inst Inst) {
	f.Code = append(f.Code, byte(inst))
}

// PushRaw appends a raw byte, for opcodes whose operand isn't an index or
// a name (none currently; kept for symmetry with Push/PushIndex/PushName).
func (f *Function) PushRaw(b byte) {
	f.Code = append(f.Code, b)
}

// PushIndex appends a length-prefixed little-endian base-256 encoding of
// u: one byte stating how many value bytes follow (0-8), then that many
// bytes, least-significant first. u == 0 encodes as a single length byte
// of 0 and no value bytes.
func (f *Function) PushIndex(u uint64) {
	var buf [8]byte
	n := 0
	for v := u; v != 0; v >>= 8 {
		buf[n] = byte(v)
		n++
	}
	f.Code = append(f.Code, byte(n))
	f.Code = append(f.Code, buf[:n]...)
}

// PushName appends an identifier's bytes followed by a NUL terminator, for
// the VAR / ARRAY / ARRAY_ELEM opcodes whose operand is a name rather than
// an index (spec.md §6: names are resolved at execution time, not interned
// here).
func (f *Function) PushName(name string) {
	f.Code = append(f.Code, name...)
	f.Code = append(f.Code, 0)
}

// NewLabel allocates a new label slot with an Unresolved offset and
// returns its index, for forward-jump targets: the index is emitted as a
// JUMP / JUMP_ZERO operand and ResolveLabel patches the offset once the
// target is reached. Backward-jump targets, whose offset is already
// known, are allocated with NewLabelAt.
func (f *Function) NewLabel() int {
	f.Labels = append(f.Labels, Unresolved)
	return len(f.Labels) - 1
}

// NewLabelAt allocates a label slot already resolved to the given offset,
// for backward-jump targets recorded at the point they're passed (loop
// condition tops, for-loop update blocks).
func (f *Function) NewLabelAt(offset uint64) int {
	f.Labels = append(f.Labels, offset)
	return len(f.Labels) - 1
}

// ResolveLabel patches label idx to the current end of the code buffer.
func (f *Function) ResolveLabel(idx int) {
	f.Labels[idx] = uint64(f.Len())
}

// InsertLocal adds name to the function's parameter/auto-local table.
// Reports false if name was already declared (caller raises ErrDupLocal).
func (f *Function) InsertLocal(name string, array bool) bool {
	if f.autoSet[name] {
		return false
	}
	f.autoSet[name] = true
	f.Locals = append(f.Locals, Local{Name: name, Array: array})
	return true
}

// HasLocal reports whether name has already been declared as a parameter
// or auto local in this function.
func (f *Function) HasLocal(name string) bool {
	return f.autoSet[name]
}

// ResetBody truncates the code, label table and locals table back to
// empty, zeroes Params and clears the declared-locals set; Name is left
// as it is. Used to reset
// MAIN between top-level statements (spec.md §6, "a mechanism to reset
// MAIN after each top-level statement has executed").
func (f *Function) ResetBody() {
	f.Code = f.Code[:0]
	f.Labels = f.Labels[:0]
	f.Locals = f.Locals[:0]
	f.Params = 0
	f.autoSet = make(map[string]bool)
}

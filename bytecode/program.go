package bytecode

// Program is the compiled-output object the execution engine consumes: an
// ordered table of functions (index 0 is always MAIN), and the shared
// number-literal and string-literal pools every function's NUM/STR/
// PRINT_STR operands index into (PRINT_POP carries no operand).
//
// Function indices are assigned the first time a name is textually
// referenced (as a call, or via `define`), so forward references to
// not-yet-defined functions compile cleanly; the engine resolves them at
// call time against this same table.
type Program struct {
	Functions []*Function
	funcIndex map[string]int

	Numbers []string
	Strings []string
}

// NewProgram creates a Program with an empty MAIN function at index 0.
func NewProgram() *Program {
	p := &Program{funcIndex: make(map[string]int)}
	p.Functions = append(p.Functions, NewFunction(""))
	return p
}

// FuncIndex returns the slot index for name, allocating a fresh (empty)
// Function for it if this is the first reference. funcIndex maps names
// to slots and the slot order of Functions records first-reference
// order; together they serve as the symbol table of spec.md §3's
// "Program" data model.
func (p *Program) FuncIndex(name string) int {
	if idx, ok := p.funcIndex[name]; ok {
		return idx
	}
	idx := len(p.Functions)
	p.Functions = append(p.Functions, NewFunction(name))
	p.funcIndex[name] = idx
	return idx
}

// LookupFunc reports the slot index for name without allocating one.
func (p *Program) LookupFunc(name string) (int, bool) {
	idx, ok := p.funcIndex[name]
	return idx, ok
}

// Main returns the MAIN function (index 0).
func (p *Program) Main() *Function { return p.Functions[MAIN] }

// InternNumber adds s to the number-literal pool and returns its index.
// Numbers are not deduplicated: each textual occurrence gets its own slot,
// matching the original implementation (digit interpretation under ibase
// happens at execution, so two textually-identical literals in different
// ibase contexts could in principle differ, and this spec doesn't demand
// interning).
func (p *Program) InternNumber(s string) int {
	p.Numbers = append(p.Numbers, s)
	return len(p.Numbers) - 1
}

// InternString adds s to the string-literal pool and returns its index.
func (p *Program) InternString(s string) int {
	p.Strings = append(p.Strings, s)
	return len(p.Strings) - 1
}

// ResetMain truncates MAIN back to an empty function body, ready for the
// next top-level statement. This is the reset mechanism spec.md §6
// requires the engine to have access to between REPL statements.
func (p *Program) ResetMain() {
	p.Functions[MAIN].ResetBody()
}

// Snapshot is the read-only view of a compiled Program the execution
// engine consumes (spec.md §6, program_snapshot()).
type Snapshot struct {
	Functions []*Function
	Numbers   []string
	Strings   []string
}

// Snapshot returns a read-only view of the program for the execution
// engine. The returned slices alias the Program's own storage; callers
// must not mutate them.
func (p *Program) Snapshot() Snapshot {
	return Snapshot{Functions: p.Functions, Numbers: p.Numbers, Strings: p.Strings}
}

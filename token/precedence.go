package token

// OpInfo carries the shunting-yard precedence and associativity of one
// binary (or unary-but-stack-resident) operator token.
//
// Precedence follows bc's own quirky ordering, not C's: assignment binds
// tighter than the relational operators, which in turn bind tighter than
// the boolean operators. Lower Prec values bind tighter.
type OpInfo struct {
	Prec  int
	Right bool // right-associative
}

var operators = map[Kind]OpInfo{
	Pow: {1, true},

	Neg:     {2, false},
	BoolNot: {2, false},

	Mul: {3, false},
	Div: {3, false},
	Mod: {3, false},

	Plus:  {4, false},
	Minus: {4, false},

	Assign:      {5, true},
	PlusAssign:  {5, true},
	MinusAssign: {5, true},
	MulAssign:   {5, true},
	DivAssign:   {5, true},
	ModAssign:   {5, true},
	PowAssign:   {5, true},

	Eq: {6, false},
	Ne: {6, false},
	Lt: {6, false},
	Le: {6, false},
	Gt: {6, false},
	Ge: {6, false},

	BoolAnd: {7, false},
	BoolOr:  {8, false},
}

// Operator reports the precedence/associativity of k, if k is an operator
// kind the shunting-yard operator stack can hold.
func Operator(k Kind) (OpInfo, bool) {
	info, ok := operators[k]
	return info, ok
}

// IsAssign reports whether k is one of the assignment operator kinds
// (=, +=, -=, *=, /=, %=, ^=).
func IsAssign(k Kind) bool {
	switch k {
	case Assign, PlusAssign, MinusAssign, MulAssign, DivAssign, ModAssign, PowAssign:
		return true
	default:
		return false
	}
}

// IsRelational reports whether k is one of the relational comparison
// operators (== <= >= != < >).
func IsRelational(k Kind) bool {
	switch k {
	case Eq, Ne, Lt, Le, Gt, Ge:
		return true
	default:
		return false
	}
}

package bytecode

// The bounds a POSIX bc implementation advertises via its `limits`
// statement. The arithmetic engine that enforces these at execution time
// is out of scope; the front end only prints them in response to a
// `limits` statement (parser.ResultLimits) and does not check literal
// lengths against them. Values match stock bc's reported limits.
const (
	MaxIbase       = 16
	MaxObase       = 999
	MaxScale       = 999999999
	MaxStringLen   = 999999999
	MaxArrayLen    = 999999999
	MaxExponent    = 999999999
	MaxNumLen      = 999999999
	DefaultIbase   = 10
	DefaultObase   = 10
	DefaultScale   = 0
)

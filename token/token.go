// Package token defines the closed set of lexical token kinds produced by
// the lexer and consumed by the parser, together with the per-operator
// precedence table the expression parser uses during shunting-yard
// reduction.
package token

import "fmt"

// Kind identifies the lexical category of a Token. It is a closed
// enumeration: every byte the lexer can produce maps to exactly one Kind.
type Kind uint8

const (
	Invalid Kind = iota
	EOF
	NLine
	Whitespace

	Name
	Number
	String

	// Keywords.
	Auto
	Break
	Continue
	Define
	Else
	For
	Halt
	Ibase
	If
	Last
	Length
	Limits
	Obase
	Print
	Quit
	Read
	Return
	Scale
	Sqrt
	While

	// Arithmetic and relational operators.
	Plus
	Minus
	Mul
	Div
	Mod
	Pow

	// Compound assignment operators.
	PlusAssign
	MinusAssign
	MulAssign
	DivAssign
	ModAssign
	PowAssign
	Assign

	Eq
	Ne
	Lt
	Le
	Gt
	Ge

	BoolNot
	BoolAnd
	BoolOr

	Inc
	Dec

	// Neg is synthetic: the lexer never emits it directly. The expression
	// parser reclassifies a lexed Minus as Neg when it occurs in operand
	// position (see parser's unary/binary minus disambiguation).
	Neg

	// Structural tokens.
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Semicolon
)

var names = map[Kind]string{
	Invalid: "invalid", EOF: "EOF", NLine: "newline", Whitespace: "whitespace",
	Name: "name", Number: "number", String: "string",
	Auto: "auto", Break: "break", Continue: "continue", Define: "define",
	Else: "else", For: "for", Halt: "halt", Ibase: "ibase", If: "if",
	Last: "last", Length: "length", Limits: "limits", Obase: "obase",
	Print: "print", Quit: "quit", Read: "read", Return: "return",
	Scale: "scale", Sqrt: "sqrt", While: "while",
	Plus: "+", Minus: "-", Mul: "*", Div: "/", Mod: "%", Pow: "^",
	PlusAssign: "+=", MinusAssign: "-=", MulAssign: "*=", DivAssign: "/=",
	ModAssign: "%=", PowAssign: "^=", Assign: "=",
	Eq: "==", Ne: "!=", Lt: "<", Le: "<=", Gt: ">", Ge: ">=",
	BoolNot: "!", BoolAnd: "&&", BoolOr: "||",
	Inc: "++", Dec: "--", Neg: "unary -",
	LParen: "(", RParen: ")", LBrace: "{", RBrace: "}",
	LBracket: "[", RBracket: "]", Comma: ",", Semicolon: ";",
}

// String renders a Kind as the bc surface syntax it represents (or a
// descriptive name for non-syntactic kinds), for use in diagnostics.
func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Keywords maps reserved identifier spellings to their keyword Kind. The
// lexer consults this after scanning an identifier-shaped run of bytes;
// anything absent from the map is an ordinary Name.
var Keywords = map[string]Kind{
	"auto": Auto, "break": Break, "continue": Continue, "define": Define,
	"else": Else, "for": For, "halt": Halt, "ibase": Ibase, "if": If,
	"last": Last, "length": Length, "limits": Limits, "obase": Obase,
	"print": Print, "quit": Quit, "read": Read, "return": Return,
	"scale": Scale, "sqrt": Sqrt, "while": While,
}

// Token is a single lexical unit: a Kind, an optional string payload
// (identifier spelling, digit string, or string-literal body), and the
// source line it was scanned from. The lexer also stamps the originating
// file name so diagnostics can name it.
type Token struct {
	Kind    Kind
	Literal string
	Line    int
	File    string
}

func (t Token) String() string {
	if t.Literal != "" {
		return fmt.Sprintf("%s(%q)", t.Kind, t.Literal)
	}
	return t.Kind.String()
}

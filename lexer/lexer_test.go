package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gobc-lang/gobc/diagnostics"
	"github.com/gobc-lang/gobc/token"
)

// collect drains every non-EOF token the lexer produces, in the style of
// the teacher's TestConsumeToken fixtures (lexer/lexer_test.go in go-mix):
// an input string paired with the exact token sequence expected from it.
func collect(t *testing.T, src string, rep *diagnostics.Reporter) []token.Token {
	t.Helper()
	l := New("test.bc", src, rep)
	var out []token.Token
	for {
		tok, err := l.Next()
		require.NoError(t, err)
		if tok.Kind == token.EOF {
			return out
		}
		out = append(out, tok)
	}
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestConsumeToken(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected []token.Kind
	}{
		{"empty", "", []token.Kind{}},
		{"number", "3.14", []token.Kind{token.Number}},
		{"hex digits", "FF", []token.Kind{token.Number}},
		{"name", "scale_local", []token.Kind{token.Name}},
		{"keyword not name", "length", []token.Kind{token.Length}},
		{"string", `"hi there"`, []token.Kind{token.String}},
		{"simple expr", "1 + 2", []token.Kind{token.Number, token.Plus, token.Number}},
		{"compound assign", "x += 1", []token.Kind{token.Name, token.PlusAssign, token.Number}},
		{"increment", "++x", []token.Kind{token.Inc, token.Name}},
		{"decrement", "x--", []token.Kind{token.Name, token.Dec}},
		{"relational", "x <= y", []token.Kind{token.Name, token.Le, token.Name}},
		{"line comment style block", "/* c */x", []token.Kind{token.Name}},
		{"line continuation", "x = 1 + \\\n2", []token.Kind{
			token.Name, token.Assign, token.Number, token.Plus, token.Number,
		}},
		{"newline preserved", "x\ny", []token.Kind{token.Name, token.NLine, token.Name}},
		{"structural", "f(a, b)", []token.Kind{
			token.Name, token.LParen, token.Name, token.Comma, token.Name, token.RParen,
		}},
		{"array index", "a[1]", []token.Kind{token.Name, token.LBracket, token.Number, token.RBracket}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rep := diagnostics.NewReporter(false)
			got := kinds(collect(t, tc.input, rep))
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestNumberLiteralSpansDigitsAndHex(t *testing.T) {
	rep := diagnostics.NewReporter(false)
	toks := collect(t, "1A2.B3", rep)
	require.Len(t, toks, 1)
	assert.Equal(t, "1A2.B3", toks[0].Literal)
}

func TestStringLiteralBody(t *testing.T) {
	rep := diagnostics.NewReporter(false)
	toks := collect(t, `"hello world"`, rep)
	require.Len(t, toks, 1)
	assert.Equal(t, "hello world", toks[0].Literal)
}

func TestUnterminatedStringIsHardError(t *testing.T) {
	rep := diagnostics.NewReporter(false)
	l := New("test.bc", `"oops`, rep)
	_, err := l.Next()
	require.Error(t, err)
	var de *diagnostics.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, diagnostics.ErrUnterminatedString, de.Kind)
}

func TestUnterminatedBlockCommentIsHardError(t *testing.T) {
	rep := diagnostics.NewReporter(false)
	l := New("test.bc", "/* never closes", rep)
	_, err := l.Next()
	require.Error(t, err)
	var de *diagnostics.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, diagnostics.ErrUnterminatedComment, de.Kind)
}

func TestScriptCommentWarnsUnderStrictPosix(t *testing.T) {
	rep := diagnostics.NewReporter(true)
	l := New("test.bc", "# nope\nx", rep)
	_, err := l.Next()
	require.Error(t, err)
}

func TestScriptCommentRecordedAsWarningInExtendedMode(t *testing.T) {
	rep := diagnostics.NewReporter(false)
	toks := collect(t, "# nope\nx", rep)
	assert.Equal(t, []token.Kind{token.NLine, token.Name}, kinds(toks))
	require.Len(t, rep.Warnings, 1)
	assert.Equal(t, diagnostics.WarnScriptComment, rep.Warnings[0].Kind)
}

func TestBareBangWarnsButStillLexes(t *testing.T) {
	rep := diagnostics.NewReporter(false)
	toks := collect(t, "!x", rep)
	assert.Equal(t, []token.Kind{token.BoolNot, token.Name}, kinds(toks))
	require.Len(t, rep.Warnings, 1)
	assert.Equal(t, diagnostics.WarnBoolOps, rep.Warnings[0].Kind)
}

func TestBangEqualNeverWarns(t *testing.T) {
	rep := diagnostics.NewReporter(false)
	toks := collect(t, "x != y", rep)
	assert.Equal(t, []token.Kind{token.Name, token.Ne, token.Name}, kinds(toks))
	assert.Empty(t, rep.Warnings)
}

func TestDotAsLastWarnsInExtendedModeAndErrorsInStrict(t *testing.T) {
	loose := diagnostics.NewReporter(false)
	toks := collect(t, ".", loose)
	assert.Equal(t, []token.Kind{token.Last}, kinds(toks))
	require.Len(t, loose.Warnings, 1)

	strict := diagnostics.NewReporter(true)
	l := New("test.bc", ".", strict)
	_, err := l.Next()
	require.Error(t, err)
}

func TestDeferredLineCounting(t *testing.T) {
	rep := diagnostics.NewReporter(false)
	l := New("test.bc", "x\ny", rep)

	tok, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, 1, tok.Line, "x is on line 1")

	tok, err = l.Next()
	require.NoError(t, err)
	assert.Equal(t, 1, tok.Line, "the newline token itself still reports line 1")

	tok, err = l.Next()
	require.NoError(t, err)
	assert.Equal(t, 2, tok.Line, "y is on line 2, after the deferred increment")
}

func TestBlockCommentSpanningLinesAdvancesLineCounter(t *testing.T) {
	rep := diagnostics.NewReporter(false)
	l := New("test.bc", "/* line1\nline2 */y", rep)
	tok, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, token.Name, tok.Kind)
	assert.Equal(t, 2, tok.Line)
}

func TestBadCharacterIsHardError(t *testing.T) {
	rep := diagnostics.NewReporter(false)
	l := New("test.bc", "@", rep)
	_, err := l.Next()
	require.Error(t, err)
	var de *diagnostics.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, diagnostics.ErrBadChar, de.Kind)
}

func TestEOFIsIdempotent(t *testing.T) {
	rep := diagnostics.NewReporter(false)
	l := New("test.bc", "x", rep)
	_, err := l.Next()
	require.NoError(t, err)
	tok, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, token.EOF, tok.Kind)
	tok2, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, token.EOF, tok2.Kind)
}

package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(toks []Token) []TokenKind {
	out := make([]TokenKind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestTokenize_Punctuation(t *testing.T) {
	l := New([]byte("{ } ( ) [ ] [[ ]] , ; : :: ::= . .. ... & @ @. | < > !"), nil)
	toks, diags := l.Tokenize()
	require.Empty(t, diags)
	assert.Equal(t, []TokenKind{
		TokLBrace, TokRBrace, TokLParen, TokRParen, TokLBracket, TokRBracket,
		TokLDoubleBracket, TokRDoubleBracket, TokComma, TokSemicolon, TokColon,
		TokColonColon, TokColonColonEqual, TokDot, TokDotDot, TokEllipsis,
		TokAmpersand, TokAt, TokAtDot, TokPipe, TokLess, TokGreater, TokBang,
		TokEOF,
	}, kinds(toks))
}

func TestTokenize_Identifiers(t *testing.T) {
	l := New([]byte("ifIndex IF-MIB Counter32 internet enterprises"), nil)
	toks, diags := l.Tokenize()
	require.Empty(t, diags)
	require.Len(t, toks, 6)
	assert.Equal(t, TokLowercaseIdent, toks[0].Kind)
	assert.Equal(t, TokUppercaseIdent, toks[1].Kind)
	assert.Equal(t, TokUppercaseIdent, toks[2].Kind)
	assert.Equal(t, TokLowercaseIdent, toks[3].Kind)
	assert.Equal(t, TokLowercaseIdent, toks[4].Kind)
	assert.Equal(t, l.Text(toks[1]), "IF-MIB")
}

func TestTokenize_Numbers(t *testing.T) {
	l := New([]byte("42 -7 'FF'H '1010'B ''H"), nil)
	toks, diags := l.Tokenize()
	require.Empty(t, diags)
	require.Len(t, toks, 6)
	assert.Equal(t, TokNumber, toks[0].Kind)
	assert.Equal(t, TokNegativeNumber, toks[1].Kind)
	assert.Equal(t, TokHexString, toks[2].Kind)
	assert.Equal(t, TokBinString, toks[3].Kind)
	assert.Equal(t, TokHexString, toks[4].Kind)
}

func TestTokenize_QuotedString(t *testing.T) {
	l := New([]byte(`"hello \"world\""`), nil)
	toks, diags := l.Tokenize()
	require.Empty(t, diags)
	require.Len(t, toks, 2)
	assert.Equal(t, TokQuotedString, toks[0].Kind)
}

func TestTokenize_UnterminatedString(t *testing.T) {
	l := New([]byte(`"oops`), nil)
	_, diags := l.Tokenize()
	require.Len(t, diags, 1)
	assert.Equal(t, "lex-error", diags[0].Code)
}

func TestTokenize_Comments(t *testing.T) {
	l := New([]byte("foo -- a comment\nbar -- inline -- baz"), nil)
	toks, diags := l.Tokenize()
	require.Empty(t, diags)
	// "foo" "bar" "baz" EOF
	require.Len(t, toks, 4)
	assert.Equal(t, "foo", l.Text(toks[0]))
	assert.Equal(t, "bar", l.Text(toks[1]))
	assert.Equal(t, "baz", l.Text(toks[2]))
}

func TestTokenize_Keywords(t *testing.T) {
	l := New([]byte("OBJECT-TYPE TRAP-TYPE SYNTAX MAX-ACCESS INDEX"), nil)
	toks, _ := l.Tokenize()
	assert.Equal(t, []TokenKind{
		TokKwObjectType, TokKwTrapType, TokKwSyntax, TokKwMaxAccess, TokKwIndex, TokEOF,
	}, kinds(toks))
	assert.True(t, toks[0].Kind.IsMacroKeyword())
	assert.True(t, toks[1].Kind.IsMacroKeyword())
	assert.False(t, toks[2].Kind.IsMacroKeyword())
}

func TestTokenize_ForbiddenKeyword(t *testing.T) {
	l := New([]byte("BOOLEAN"), nil)
	toks, _ := l.Tokenize()
	require.Len(t, toks, 2)
	assert.Equal(t, TokForbiddenKeyword, toks[0].Kind)
}

func TestTokenize_MacroBodySkipped(t *testing.T) {
	l := New([]byte("OBJECT-TYPE MACRO ::= BEGIN blah blah END foo"), nil)
	toks, diags := l.Tokenize()
	require.Empty(t, diags)
	assert.Equal(t, []TokenKind{
		TokKwObjectType, TokKwMacro, TokColonColonEqual, TokKwBegin, TokKwEnd, TokLowercaseIdent, TokEOF,
	}, kinds(toks))
}

func TestTokenize_ExportsSkipped(t *testing.T) {
	l := New([]byte("EXPORTS foo, bar; IMPORTS"), nil)
	toks, _ := l.Tokenize()
	assert.Equal(t, []TokenKind{TokKwExports, TokSemicolon, TokKwImports, TokEOF}, kinds(toks))
}

func TestTokenize_ExtendedLetterIdentifier(t *testing.T) {
	// U+00E9 'é' is in the Latin-1 supplement LETTER range.
	l := New([]byte("caf\xc3\xa9Name"), nil)
	toks, diags := l.Tokenize()
	require.Empty(t, diags)
	require.Len(t, toks, 2)
	assert.Equal(t, TokLowercaseIdent, toks[0].Kind)
	assert.Equal(t, "café"+"Name", l.Text(toks[0]))
}

func TestTokenize_UnknownCharacterRecorded(t *testing.T) {
	l := New([]byte("foo ~ bar"), nil)
	toks, diags := l.Tokenize()
	require.Len(t, diags, 1)
	assert.Equal(t, []TokenKind{TokLowercaseIdent, TokLowercaseIdent, TokEOF}, kinds(toks))
}

package internal

import (
	"errors"
	"faber/compiler/lexicon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

func tokenTypes(tokens []*Token) []TokenType {
	var tps []TokenType
	for _, token := range tokens {
		tps = append(tps, token.tp)
	}
	return tps
}

func diagnosticCodes(diagnostics []*Diagnostic) []Code {
	var codes []Code
	for _, d := range diagnostics {
		codes = append(codes, d.Code)
	}
	return codes
}

func TestTokenizer_Tokenize(t *testing.T) {
	testData := []struct {
		content  string
		expected []TokenType
	}{
		{content: "fixum x = 5", expected: []TokenType{KeywordTP, IdentifierTP, AssignTP, IntegerTP}},
		{content: "a === b !== c", expected: []TokenType{IdentifierTP, StrictEqualTP, IdentifierTP, StrictNotEqualTP, IdentifierTP}},
		{content: "a <= b >= c", expected: []TokenType{IdentifierTP, LessEqualTP, IdentifierTP, GreaterEqualTP, IdentifierTP}},
		{content: "a += 1; b -= 2", expected: []TokenType{IdentifierTP, AddAssignTP, IntegerTP, SemiColonTP, IdentifierTP, MinusAssignTP, IntegerTP}},
		{content: "functio f() -> numerus {}", expected: []TokenType{KeywordTP, IdentifierTP, LeftParentThesesTP,
			RightParentThesesTP, ArrowTP, IdentifierTP, LeftBraceTP, RightBraceTP}},
		{content: "1..10", expected: []TokenType{IntegerTP, RangeTP, IntegerTP}},
		{content: "a && !b || c", expected: []TokenType{IdentifierTP, AndTP, BooleanNegativeTP, IdentifierTP, OrTP, IdentifierTP}},
		{content: "xs[0].nomen", expected: []TokenType{IdentifierTP, LeftSquareBracketTP, IntegerTP, RightSquareBracketTP, DotTP, IdentifierTP}},
		{content: "c ? 'a' : \"b\"", expected: []TokenType{IdentifierTP, QuestionTP, StringTP, ColonTP, StringTP}},
		{content: "a // comment\nb", expected: []TokenType{IdentifierTP, IdentifierTP}},
		{content: "# comment\na", expected: []TokenType{IdentifierTP}},
		{content: "/* outer /* inner */ still */ a", expected: []TokenType{IdentifierTP}},
		{content: "\uFEFFa", expected: []TokenType{IdentifierTP}},
		{content: "", expected: nil},
	}
	for _, data := range testData {
		tokens, diagnostics := TokenizeSource("test.fab", data.content)
		assert.Empty(t, diagnostics, data.content)
		assert.Equal(t, data.expected, tokenTypes(tokens), data.content)
	}
}

func TestTokenizer_Numbers(t *testing.T) {
	testData := []struct {
		content string
		tp      TokenType
		value   string
	}{
		{content: "1010", tp: IntegerTP, value: "1010"},
		{content: "1_000_000", tp: IntegerTP, value: "1000000"},
		{content: "0xff", tp: IntegerTP, value: "0xff"},
		{content: "10.5", tp: FloatTP, value: "10.5"},
		{content: "2e10", tp: FloatTP, value: "2e10"},
		{content: "1.5e-3", tp: FloatTP, value: "1.5e-3"},
	}
	for _, data := range testData {
		tokens, diagnostics := TokenizeSource("test.fab", data.content)
		assert.Empty(t, diagnostics, data.content)
		require.Len(t, tokens, 1, data.content)
		assert.Equal(t, data.tp, tokens[0].tp, data.content)
		assert.Equal(t, data.value, tokens[0].value, data.content)
	}
}

func TestTokenizer_Strings(t *testing.T) {
	testData := []struct {
		content string
		value   string
	}{
		{content: `"salve"`, value: "salve"},
		{content: `'salve'`, value: "salve"},
		{content: `"a\nb"`, value: "a\nb"},
		{content: `"tab\there"`, value: "tab\there"},
		{content: `"quote \" inside"`, value: `quote " inside`},
		{content: `"A"`, value: "A"},
	}
	for _, data := range testData {
		tokens, diagnostics := TokenizeSource("test.fab", data.content)
		assert.Empty(t, diagnostics, data.content)
		require.Len(t, tokens, 1, data.content)
		assert.Equal(t, StringTP, tokens[0].tp)
		assert.Equal(t, data.value, tokens[0].value, data.content)
	}
}

func TestTokenizer_RegexOrDivide(t *testing.T) {
	testData := []struct {
		content  string
		expected []TokenType
	}{
		{content: "a / b", expected: []TokenType{IdentifierTP, DivideTP, IdentifierTP}},
		{content: "10 / 2", expected: []TokenType{IntegerTP, DivideTP, IntegerTP}},
		{content: "(a) / 2", expected: []TokenType{LeftParentThesesTP, IdentifierTP, RightParentThesesTP, DivideTP, IntegerTP}},
		{content: "x = /ab+/g", expected: []TokenType{IdentifierTP, AssignTP, RegexTP}},
		{content: "/[a/]/", expected: []TokenType{RegexTP}},
		{content: "redde /x/", expected: []TokenType{KeywordTP, RegexTP}},
		{content: "verum / 2", expected: []TokenType{KeywordTP, DivideTP, IntegerTP}},
		{content: "a\n/x/i", expected: []TokenType{IdentifierTP, RegexTP}},
	}
	for _, data := range testData {
		tokens, diagnostics := TokenizeSource("test.fab", data.content)
		assert.Empty(t, diagnostics, data.content)
		assert.Equal(t, data.expected, tokenTypes(tokens), data.content)
	}

	tokens, _ := TokenizeSource("test.fab", "x = /ab+/gi")
	require.Len(t, tokens, 3)
	assert.Equal(t, "ab+", tokens[2].value)
	assert.Equal(t, "gi", tokens[2].flags)
}

func TestTokenizer_LexicalErrorsDoNotStop(t *testing.T) {
	testData := []struct {
		content  string
		codes    []Code
		expected []TokenType
	}{
		{content: "a @ b", codes: []Code{ErrUnexpectedCharacter}, expected: []TokenType{IdentifierTP, IdentifierTP}},
		{content: "a @ b $ c", codes: []Code{ErrUnexpectedCharacter, ErrUnexpectedCharacter},
			expected: []TokenType{IdentifierTP, IdentifierTP, IdentifierTP}},
		{content: "\"abc\nb", codes: []Code{ErrUnterminatedString}, expected: []TokenType{StringTP, IdentifierTP}},
		{content: "12abc + 1", codes: []Code{ErrInvalidNumber}, expected: []TokenType{AddTP, IntegerTP}},
		{content: "1__0", codes: []Code{ErrInvalidNumber}, expected: nil},
		{content: "0x", codes: []Code{ErrInvalidNumber}, expected: nil},
		{content: `"a\qb"`, codes: []Code{ErrInvalidEscape}, expected: []TokenType{StringTP}},
		{content: "a /* never closed", codes: []Code{ErrUnterminatedComment}, expected: []TokenType{IdentifierTP}},
		{content: "x = /abc\ny", codes: []Code{ErrUnterminatedRegex}, expected: []TokenType{IdentifierTP, AssignTP, IdentifierTP}},
	}
	for _, data := range testData {
		tokens, diagnostics := TokenizeSource("test.fab", data.content)
		assert.Equal(t, data.codes, diagnosticCodes(diagnostics), data.content)
		assert.Equal(t, data.expected, tokenTypes(tokens), data.content)
		for _, d := range diagnostics {
			assert.Equal(t, LexicalPhase, d.Code.Phase())
			assert.Equal(t, "test.fab", d.Span.File)
		}
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestTokenizer_UnreadableSource(t *testing.T) {
	tokens, diagnostics := NewTokenizer("broken.fab", nil).Tokenize(failingReader{})
	assert.Empty(t, tokens)
	require.Len(t, diagnostics, 1)
	assert.Equal(t, ErrUnreadableSource, diagnostics[0].Code)
	assert.Contains(t, diagnostics[0].Message, "disk on fire")
}

func TestTokenizer_Positions(t *testing.T) {
	tokens, _ := TokenizeSource("test.fab", "fixum x = 5\n  scribe(x)")
	require.Len(t, tokens, 8)
	testData := []struct {
		index  int
		line   int
		column int
		end    int
	}{
		{index: 0, line: 1, column: 1, end: 6},
		{index: 1, line: 1, column: 7, end: 8},
		{index: 3, line: 1, column: 11, end: 12},
		{index: 4, line: 2, column: 3, end: 9},
		{index: 7, line: 2, column: 11, end: 12},
	}
	for _, data := range testData {
		span := tokens[data.index].Span()
		assert.Equal(t, data.line, span.Start.Line, tokens[data.index].String())
		assert.Equal(t, data.column, span.Start.Column, tokens[data.index].String())
		assert.Equal(t, data.end, span.End.Column, tokens[data.index].String())
	}
}

func TestTokenizer_KeywordsAndAnnotations(t *testing.T) {
	tokens, diagnostics := TokenizeSource("test.fab", "si nuntio fiet Salve")
	assert.Empty(t, diagnostics)
	require.Len(t, tokens, 4)

	assert.Equal(t, KeywordTP, tokens[0].tp)
	require.NotNil(t, tokens[0].Keyword())
	assert.Equal(t, lexicon.ControlCategory, tokens[0].Keyword().Category)
	assert.Equal(t, KeywordTokenKind, tokens[0].Kind())

	annotation := tokens[1].Annotation()
	require.NotNil(t, annotation)
	require.Len(t, annotation.Nouns, 2)
	assert.Equal(t, lexicon.Dative, annotation.Nouns[0].Case)
	assert.Equal(t, lexicon.Ablative, annotation.Nouns[1].Case)
	for _, form := range annotation.Nouns {
		assert.Equal(t, lexicon.Singular, form.Number)
	}

	verb, ok := tokens[2].Annotation().ReturnVerb()
	require.True(t, ok)
	assert.True(t, verb.Async())
	assert.False(t, verb.Generator())

	assert.Equal(t, IdentifierTP, tokens[3].tp)
	assert.Nil(t, tokens[3].Annotation())
	_, ok = tokens[3].Annotation().ReturnVerb()
	assert.False(t, ok)
}

func TestTokenizer_Reset(t *testing.T) {
	tokenizer := NewTokenizer("test.fab", nil)
	tokenizer.Tokenize(strings.NewReader("a @"))
	tokenizer.Reset()
	tokens, diagnostics := tokenizer.Tokenize(strings.NewReader("b"))
	assert.Len(t, tokens, 1)
	assert.Empty(t, diagnostics)
	assert.Equal(t, 1, tokens[0].Line())
}

func TestTokenizer_TokenKinds(t *testing.T) {
	tokens, diagnostics := TokenizeSource("test.fab", `fixum x = (1.5 + "s")`)
	assert.Empty(t, diagnostics)
	expected := []TokenKind{
		KeywordTokenKind, IdentifierTokenKind, OperatorTokenKind, PunctuationTokenKind,
		LiteralTokenKind, OperatorTokenKind, LiteralTokenKind, PunctuationTokenKind,
	}
	require.Len(t, tokens, len(expected))
	for i, token := range tokens {
		assert.Equal(t, expected[i], token.Kind(), token.String())
	}
	assert.Equal(t, "literal", LiteralTokenKind.String())
	assert.Equal(t, "punctuation", PunctuationTokenKind.String())
}

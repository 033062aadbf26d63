package internal

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func analyzeSource(t *testing.T, content string) *Result {
	result := Compile("main.fab", content, Options{Loader: MapLoader{}})
	require.NotNil(t, result.Program)
	require.Empty(t, FilterPhase(result.Diagnostics, SyntaxPhase), content)
	return result
}

func TestAnalyzer_Diagnostics(t *testing.T) {
	testData := []struct {
		content string
		codes   []Code
	}{
		{content: "fixum x = 5\nx = 6", codes: []Code{ErrImmutableAssignment}},
		{content: "varia x = 5\nx = 6", codes: nil},
		{content: "scribe(z)", codes: []Code{ErrUndefinedVariable}},
		{content: "varia x = 1\nvaria x = 2", codes: []Code{ErrDuplicateDefinition}},
		{content: "varia x = 1\n{ varia x = 2 }", codes: nil},
		{content: "functio f() { }\ngenus f { }", codes: []Code{ErrDuplicateDefinition}},
		{content: "fixum numerus x = \"a\"", codes: []Code{ErrTypeMismatch}},
		{content: "fixum fractus x = 1", codes: nil},
		{content: "fixum numeri x = 1", codes: nil},
		{content: "functio f() -> numerus { redde \"a\" }", codes: []Code{ErrReturnTypeMismatch}},
		{content: "functio f() fit numerus { redde }", codes: []Code{ErrReturnTypeMismatch}},
		{content: "functio f() { redde }", codes: nil},
		{content: "fixum a = 1 < \"b\"", codes: []Code{ErrIncomparableTypes}},
		{content: "fixum a = \"a\" < \"b\"", codes: nil},
		{content: "fixum a = 1 == nihil", codes: nil},
		{content: "elige 1 { casu \"a\" { } }", codes: []Code{ErrIncomparableTypes}},
		{content: "cede 1", codes: []Code{ErrCedeOutsideAsync}},
		{content: "functio f() fiet numerus { cede g() }\nfunctio g() fiet numerus { redde 1 }", codes: nil},
		{content: "futura functio f() { functio g() { cede 1 } }", codes: []Code{ErrCedeOutsideAsync}},
		{content: "functio f() fiunt numerus { cede 1 }", codes: nil},
		{content: "incipiet { cede 1 }", codes: nil},
		{content: "incipit { cede 1 }", codes: []Code{ErrCedeOutsideAsync}},
		{content: "functio f(de numerus a = 1) { }", codes: []Code{ErrDefaultOnBorrowedParameter}},
		{content: "functio f(numerus a = 1, numerus b) { }", codes: []Code{ErrRequiredAfterOptional}},
		{content: "functio f(numerus a?, numerus b?) { }", codes: nil},
		{content: "functio f()", codes: []Code{ErrMissingFunctionBody}},
		{content: "externa functio f()", codes: nil},
		{content: "futura functio f() fit numerus { }", codes: []Code{ErrModifierConflict}},
		{content: "cursor functio f() fiet numerus { }", codes: []Code{ErrModifierConflict}},
		{content: "futura functio f() fiet numerus { redde 1 }", codes: nil},
		{content: "fixum Foo x = 1", codes: []Code{ErrUnknownType}},
		{content: "fixum x = novum Foo()", codes: []Code{ErrUnknownType}},
		{content: "rumpe", codes: []Code{ErrLoopControlOutsideLoop}},
		{content: "functio f() { perge }", codes: []Code{ErrLoopControlOutsideLoop}},
		{content: "dum verum { rumpe }", codes: nil},
		{content: "dum verum { functio f() { rumpe } }", codes: []Code{ErrLoopControlOutsideLoop}},
		{content: "redde 1", codes: []Code{ErrReturnOutsideFunction}},
		{content: "incipit { redde }", codes: nil},
		{content: "ego", codes: []Code{ErrEgoOutsideGenus}},
		{content: "genus G {\n\tfixum numerus x = 0\n\tfunctio set() { ego.x = 1 }\n}", codes: []Code{ErrImmutableAssignment}},
		{content: "genus G {\n\tnumerus x = 0\n\tfunctio set() { ego.x = 1 }\n}", codes: nil},
		{content: "genus G {\n\tnumerus x = \"a\"\n}", codes: []Code{ErrTypeMismatch}},
		{content: "genus Punctum { numerus x }\nfixum Punctum p = novum Punctum()\nfixum numerus y = p.x", codes: nil},
		{content: "genus Punctum { numerus x }\nfixum Punctum p = novum Punctum()\nfixum textus y = p.x", codes: []Code{ErrTypeMismatch}},
		{content: "ex [1, 2] pro x { x = 3 }", codes: []Code{ErrImmutableAssignment}},
		{content: "ex [1, 2] pro x { fixum numerus y = x }", codes: nil},
		{content: "ex 0..10 per 2 pro i { scribe(i) }\nscribe(i)", codes: []Code{ErrUndefinedVariable}},
		{content: "functio f(de numerus a) { a = 2 }", codes: []Code{ErrImmutableAssignment}},
		{content: "functio f(in numerus a) { a = 2 }", codes: nil},
		{content: "functio f(numerus a) { a = 2 }", codes: nil},
		{content: "fixum x = 1\nfunctio f() { si verum { dum verum { x = 2 } } }", codes: []Code{ErrImmutableAssignment}},
		{content: "tempta { iace \"e\" } cape err { scribe(err) }", codes: nil},
		{content: "tempta { } cape err { err = err }", codes: []Code{ErrImmutableAssignment}},
		{content: "f()\nfunctio f() { }", codes: nil},
		{content: "fixum numerus? a = nihil", codes: nil},
		{content: "fixum numerus a = nihil", codes: []Code{ErrTypeMismatch}},
		{content: "functio f(numerus a) { }\nf(\"x\")", codes: []Code{ErrTypeMismatch}},
		{content: "functio f(numerus a) { }\nf(1)", codes: nil},
		{content: "fixum a = -\"x\"", codes: []Code{ErrTypeMismatch}},
		{content: "fixum a = 1..\"x\"", codes: []Code{ErrTypeMismatch}},
		{content: "varia textus s = \"a\"\ns += 1", codes: nil},
		{content: "varia numerus n = 1\nn += \"a\"", codes: []Code{ErrTypeMismatch}},
		{content: "probandum \"s\" { praepara { varia n = 0 } proba \"c\" { n = 1 } }", codes: nil},
		{content: "adfirma q", codes: []Code{ErrUndefinedVariable}},
		{content: "custodi verum secus { scribe(w) }", codes: []Code{ErrUndefinedVariable}},
		{content: "scribe(a)\nscribe(b)", codes: []Code{ErrUndefinedVariable, ErrUndefinedVariable}},
	}
	for _, data := range testData {
		result := analyzeSource(t, data.content)
		assert.Equal(t, data.codes, diagnosticCodes(result.Diagnostics), data.content)
	}
}

func TestAnalyzer_ImmutableAssignmentLocation(t *testing.T) {
	result := analyzeSource(t, "fixum x = 5\nx = 6")
	require.Len(t, result.Diagnostics, 1)
	d := result.Diagnostics[0]
	assert.Equal(t, ErrImmutableAssignment, d.Code)
	assert.Equal(t, "main.fab", d.Span.File)
	assert.Equal(t, 2, d.Span.Start.Line)
	assert.Equal(t, 1, d.Span.Start.Column)
	assert.Contains(t, d.Message, `"x"`)
}

func TestAnalyzer_UndefinedVariableLocation(t *testing.T) {
	result := analyzeSource(t, "fixum a = 1\nscribe(a + z)")
	require.Len(t, result.Diagnostics, 1)
	d := result.Diagnostics[0]
	assert.Equal(t, ErrUndefinedVariable, d.Code)
	assert.Equal(t, 2, d.Span.Start.Line)
	assert.Equal(t, 12, d.Span.Start.Column)
	assert.Equal(t, 13, d.Span.End.Column)
}

func TestAnalyzer_UnknownTypeSuggestion(t *testing.T) {
	testData := []struct {
		content string
		help    string
	}{
		{content: "fixum bivalns b = verum", help: "did you mean 'bivalens'?"},
		{content: "genus Punctum { }\nfixum Punctm p = novum Punctum()", help: "did you mean 'Punctum'?"},
		{content: "genus Punctum { }\nfixum p = novum Puntum()", help: "did you mean 'Punctum'?"},
		{content: "fixum Zzzzzzzz x = 1", help: ErrUnknownType.Help()},
	}
	for _, data := range testData {
		result := analyzeSource(t, data.content)
		require.Len(t, result.Diagnostics, 1, data.content)
		assert.Equal(t, ErrUnknownType, result.Diagnostics[0].Code, data.content)
		assert.Equal(t, data.help, result.Diagnostics[0].Help, data.content)
	}
}

func TestAnalyzer_ExpressionTypes(t *testing.T) {
	testData := []struct {
		prelude  string
		expr     string
		expected string
	}{
		{expr: "1 + 2", expected: "numerus"},
		{expr: "1 + 2.5", expected: "fractus"},
		{expr: "4 / 2", expected: "fractus"},
		{expr: "\"a\" + 1", expected: "textus"},
		{expr: "1 < 2", expected: "bivalens"},
		{expr: "verum et falsum", expected: "bivalens"},
		{expr: "non 1", expected: "bivalens"},
		{expr: "[1, 2]", expected: "lista<numerus>"},
		{expr: "[1, \"a\"]", expected: "lista<?>"},
		{expr: "0..3", expected: "lista<numerus>"},
		{expr: "verum ? 1 : 2", expected: "numerus"},
		{prelude: "varia t", expr: "t = { a: 1 }", expected: "?"},
		{prelude: "varia numerus? a", expr: "a vel 1", expected: "numerus"},
		{prelude: "fixum lista<textus> xs = []", expr: "xs[0]", expected: "textus"},
		{prelude: "functio g() fiet numerus { redde 1 }", expr: "g()", expected: "promissum<numerus>"},
		{prelude: "functio h() fiunt numerus { cede 1 }", expr: "h()", expected: "lista<numerus>"},
		{prelude: "functio k() -> textus { redde \"\" }", expr: "k()", expected: "textus"},
		{prelude: "genus G { numerus n }", expr: "novum G().n", expected: "numerus"},
	}
	for _, data := range testData {
		content := data.expr
		if data.prelude != "" {
			content = data.prelude + "\n" + data.expr
		}
		result := analyzeSource(t, content)
		require.Empty(t, result.Diagnostics, content)
		statements := result.Program.Statements
		stm, ok := statements[len(statements)-1].(*ExpressionStatementAst)
		require.True(t, ok, content)
		assert.Equal(t, data.expected, stm.Expression.ResolvedType().String(), content)
	}
}

func TestAnalyzer_ResolvesIdentifiers(t *testing.T) {
	content := `
fixum numerus x = 1
functio f(de textus x) {
	scribe(x)
}
scribe(x)
`
	result := analyzeSource(t, content)
	require.Empty(t, result.Diagnostics)

	var symbols []*SymbolDesc
	Walk(result.Program, func(node Ast) bool {
		if id, ok := node.(*IdentifierAst); ok && id.Name == "x" {
			symbols = append(symbols, id.Symbol())
		}
		return true
	})
	require.Len(t, symbols, 2)
	assert.Equal(t, ParamSymbolType, symbols[0].SymbolType)
	assert.Equal(t, BorrowedParam, symbols[0].Ownership)
	assert.False(t, symbols[0].Mutable)
	assert.Equal(t, "textus", symbols[0].TP.String())
	assert.Equal(t, VariableSymbolType, symbols[1].SymbolType)
	assert.Equal(t, "numerus", symbols[1].TP.String())
}

func TestAnalyzer_AnalyzeWithoutCompile(t *testing.T) {
	tokens, diagnostics := TokenizeSource("solo.fab", "fixum x = 1\nx = 2")
	require.Empty(t, diagnostics)
	program, diagnostics := Parse("solo.fab", tokens)
	require.Empty(t, diagnostics)

	analyzed, diagnostics := NewAnalyzer(nil, nil).Analyze(program)
	assert.True(t, program == analyzed)
	assert.Equal(t, []Code{ErrImmutableAssignment}, diagnosticCodes(diagnostics))
}

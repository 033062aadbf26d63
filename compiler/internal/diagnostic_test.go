package internal

import (
	"github.com/stretchr/testify/assert"
	"strings"
	"testing"
)

func TestDiagnostic_Catalog(t *testing.T) {
	prefixes := map[Phase]string{LexicalPhase: "L", SyntaxPhase: "P", SemanticPhase: "S"}
	seen := map[string]bool{}
	for _, code := range Codes() {
		id := code.ID()
		assert.Len(t, id, 4, id)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
		assert.True(t, strings.HasPrefix(id, prefixes[code.Phase()]), id)
		assert.NotEmpty(t, catalog[code].format, id)
		assert.NotEmpty(t, code.Help(), id)

		byID, ok := CodeByID(id)
		assert.True(t, ok, id)
		assert.Equal(t, code, byID)
	}
	assert.Len(t, seen, int(codeCount))
}

func TestDiagnostic_StableIDs(t *testing.T) {
	testData := []struct {
		code Code
		id   string
	}{
		{code: ErrUnexpectedCharacter, id: "L001"},
		{code: ErrUnreadableSource, id: "L007"},
		{code: ErrUnexpectedToken, id: "P001"},
		{code: ErrExpectedClosingBrace, id: "P002"},
		{code: ErrExpectedFunction, id: "P016"},
		{code: ErrUndefinedVariable, id: "S001"},
		{code: ErrImmutableAssignment, id: "S003"},
		{code: ErrCircularImport, id: "S011"},
		{code: ErrEgoOutsideGenus, id: "S019"},
	}
	for _, data := range testData {
		assert.Equal(t, data.id, data.code.ID())
		assert.Equal(t, data.id, data.code.String())
	}
	_, ok := CodeByID("X999")
	assert.False(t, ok)
	assert.Equal(t, "X000", Code(-1).ID())
}

func TestDiagnostic_Format(t *testing.T) {
	span := Span{File: "a.fab", Start: Position{Line: 3, Column: 5}, End: Position{Line: 3, Column: 6}}
	d := newDiagnostic(ErrUndefinedVariable, span, "z")
	assert.Equal(t, `undefined variable "z"`, d.Message)
	assert.Equal(t, ErrUndefinedVariable.Help(), d.Help)
	assert.Equal(t, Error, d.Severity)
	assert.Equal(t, `a.fab:3:5: error[S001]: undefined variable "z"`, d.Error())
}

func TestDiagnostic_Filters(t *testing.T) {
	span := Span{File: "a.fab"}
	diagnostics := []*Diagnostic{
		newDiagnostic(ErrUnterminatedString, span),
		newDiagnostic(ErrUnexpectedToken, span, "'}'"),
		newDiagnostic(ErrUndefinedVariable, span, "x"),
	}
	assert.True(t, HasErrors(diagnostics))
	assert.False(t, HasErrors(nil))
	assert.Equal(t, []Code{ErrUnexpectedToken}, diagnosticCodes(FilterPhase(diagnostics, SyntaxPhase)))

	warning := &Diagnostic{Code: ErrUndefinedVariable, Severity: Warning}
	assert.False(t, HasErrors([]*Diagnostic{warning}))
	assert.Equal(t, "warning", warning.Severity.String())
}

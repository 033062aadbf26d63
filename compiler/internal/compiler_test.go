package internal

import (
	"bytes"
	"context"
	"errors"
	"faber/compiler/lexicon"
	"fmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

func TestCompile_ImmutableReassignment(t *testing.T) {
	result := Compile("main.fab", "fixum x = 5\nx = 6", Options{Loader: MapLoader{}})
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, ErrImmutableAssignment, result.Diagnostics[0].Code)
	assert.Equal(t, 2, result.Diagnostics[0].Span.Start.Line)
	assert.True(t, result.HasErrors())
}

func TestCompile_UndefinedName(t *testing.T) {
	result := Compile("main.fab", "scribe(z)", Options{Loader: MapLoader{}})
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, ErrUndefinedVariable, result.Diagnostics[0].Code)
	assert.Contains(t, result.Diagnostics[0].Message, `"z"`)
}

func TestCompile_WordFormReadings(t *testing.T) {
	forms, err := lexicon.Default().ResolveNoun("nuntio")
	require.NoError(t, err)
	require.Len(t, forms, 2)
	assert.Equal(t, lexicon.Dative, forms[0].Case)
	assert.Equal(t, lexicon.Ablative, forms[1].Case)
	for _, form := range forms {
		assert.Equal(t, lexicon.Singular, form.Number)
	}
}

func TestCompile_UnclosedBlock(t *testing.T) {
	content := "fixum a = 1\nsi a > 0 {\n\tscribe(a)\nfixum b = a + 1\n"
	result := Compile("main.fab", content, Options{Loader: MapLoader{}})
	assert.Equal(t, []Code{ErrExpectedClosingBrace}, diagnosticCodes(result.Diagnostics))

	var names []string
	Walk(result.Program, func(node Ast) bool {
		if decl, ok := node.(*VarDeclareAst); ok {
			names = append(names, decl.VarName)
		}
		return true
	})
	assert.Equal(t, []string{"a", "b"}, names)
}

func TestCompile_CircularImport(t *testing.T) {
	modules := MapLoader{
		"src/a.fab": "ex \"./b\" importa g\nexporta functio f() { }",
		"src/b.fab": "ex \"./a\" importa f\nexporta functio g() { }",
	}
	result := Compile("src/a.fab", modules["src/a.fab"], Options{Loader: modules})
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, ErrCircularImport, result.Diagnostics[0].Code)
	assert.Contains(t, result.Diagnostics[0].Message, "src/a.fab -> src/b.fab -> src/a.fab")
}

func TestCompile_AllPhasesRun(t *testing.T) {
	result := Compile("main.fab", "fixum x = 1 @\nfixum = 2\nscribe(z)", Options{Loader: MapLoader{}})
	assert.Len(t, FilterPhase(result.Diagnostics, LexicalPhase), 1)
	assert.Len(t, FilterPhase(result.Diagnostics, SyntaxPhase), 1)
	assert.Len(t, FilterPhase(result.Diagnostics, SemanticPhase), 1)
	assert.NotEmpty(t, result.Tokens)
	assert.Len(t, result.Program.Statements, 2)
}

func TestCompile_Logger(t *testing.T) {
	var lines []string
	opts := Options{
		Loader: MapLoader{},
		Logger: func(format string, args ...interface{}) {
			lines = append(lines, fmt.Sprintf(format, args...))
		},
	}
	Compile("main.fab", "fixum x = 1", opts)
	require.Len(t, lines, 4)
	assert.Equal(t, "compiler: start tokenizer at path: main.fab", lines[0])
	assert.Equal(t, "compiler: start parser, 4 tokens", lines[1])
	assert.Equal(t, "compiler: start semantic analyzer, 1 statements", lines[2])
	assert.Equal(t, "compiler: done main.fab, 0 diagnostics", lines[3])
}

func writeSourceFile(t *testing.T, path string, content string) {
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestCompile_CompileFiles(t *testing.T) {
	dir := t.TempDir()
	writeSourceFile(t, filepath.Join(dir, "a.fab"), "ex \"./lib/util\" importa duplex\nscribe(duplex(2))")
	writeSourceFile(t, filepath.Join(dir, "bad.fab"), "fixum x = 1\nx = 2")
	writeSourceFile(t, filepath.Join(dir, "lib", "util.fab"), "exporta functio duplex(numerus n) -> numerus { redde n * 2 }")
	writeSourceFile(t, filepath.Join(dir, "notes.txt"), "not a source file")

	files, err := CollectSourceFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 3)

	results, err := CompileFiles(context.Background(), files, Options{}, 2)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, filepath.ToSlash(files[0]), results[0].File)
	assert.False(t, results[0].HasErrors())
	assert.Len(t, results[0].Modules, 2)
	assert.Equal(t, []Code{ErrImmutableAssignment}, diagnosticCodes(results[1].Diagnostics))
	assert.False(t, results[2].HasErrors())

	single, err := CollectSourceFiles(files[1])
	require.NoError(t, err)
	assert.Equal(t, []string{files[1]}, single)

	withMissing := []string{files[0], filepath.Join(dir, "missing.fab"), files[2]}
	results, err = CompileFiles(context.Background(), withMissing, Options{}, 2)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.False(t, results[0].HasErrors())
	assert.Len(t, results[0].Modules, 2)
	assert.Equal(t, []Code{ErrUnreadableSource}, diagnosticCodes(results[1].Diagnostics))
	assert.Equal(t, filepath.ToSlash(withMissing[1]), results[1].Diagnostics[0].Span.File)
	assert.NotNil(t, results[1].Program)
	assert.False(t, results[2].HasErrors())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = CompileFiles(ctx, files, Options{}, 1)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestCompile_PrintDiagnostics(t *testing.T) {
	result := Compile("main.fab", "fixum x = 5\nx = 6", Options{Loader: MapLoader{}})
	var out bytes.Buffer
	PrintDiagnostics(&out, result.Diagnostics, result.Sources, false)
	expected := "error[S003]: cannot assign to immutable binding \"x\"\n" +
		" --> main.fab:2:1\n" +
		"  |\n" +
		"2 | x = 6\n" +
		"  | ^^^^^\n" +
		"  = help: declare the binding with 'varia' (or the parameter with 'in') to allow assignment\n" +
		"\n"
	assert.Equal(t, expected, out.String())

	out.Reset()
	PrintDiagnostics(&out, result.Diagnostics, result.Sources, true)
	assert.Contains(t, out.String(), "\x1b[1;31m")
	assert.Contains(t, out.String(), "x = 6")
}

func TestCompile_PrintDiagnosticWithoutSource(t *testing.T) {
	d := newDiagnostic(ErrModuleNotFound, Span{File: "gone.fab", Start: Position{Line: 1, Column: 1}}, "./gone", ErrModuleMissing)
	d.Help = ""
	var out bytes.Buffer
	NewDiagnosticPrinter(&out, nil, false).Print(d)
	assert.Equal(t, "error[S012]: cannot load module \"./gone\": module not found\n --> gone.fab:1:1\n\n", out.String())
}

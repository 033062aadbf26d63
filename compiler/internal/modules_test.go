package internal

import (
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

func compileModules(file string, modules MapLoader) *Result {
	return Compile(file, modules[file], Options{Loader: modules})
}

func TestModules_CircularImport(t *testing.T) {
	modules := MapLoader{
		"a.fab": "ex \"./b\" importa g\nexporta functio f() { g() }",
		"b.fab": "ex \"./a\" importa f\nexporta functio g() { f() }",
	}
	result := compileModules("a.fab", modules)

	var cycles []*Diagnostic
	for _, d := range result.Diagnostics {
		if d.Code == ErrCircularImport {
			cycles = append(cycles, d)
		}
	}
	require.Len(t, cycles, 1)
	assert.Equal(t, "circular import: a.fab -> b.fab -> a.fab", cycles[0].Message)
	assert.Equal(t, "b.fab", cycles[0].Span.File)
	assert.Equal(t, []Code{ErrCircularImport}, diagnosticCodes(result.Diagnostics))

	for _, record := range result.Modules {
		assert.Equal(t, ModuleResolved, record.State, record.Path)
	}
}

func TestModules_ImportErrors(t *testing.T) {
	testData := []struct {
		modules MapLoader
		codes   []Code
	}{
		{
			modules: MapLoader{"main.fab": "ex \"./missing\" importa x\nscribe(x)"},
			codes:   []Code{ErrModuleNotFound},
		},
		{
			modules: MapLoader{
				"main.fab": "ex \"./b\" importa hidden",
				"b.fab":    "exporta fixum shown = 1\nfixum hidden = 2",
			},
			codes: []Code{ErrNotExported},
		},
		{
			modules: MapLoader{
				"main.fab": "ex \"./b\" importa shown, hidden",
				"b.fab":    "fixum shown = 1\nfixum hidden = 2",
			},
			codes: nil,
		},
		{
			modules: MapLoader{
				"main.fab": "ex \"./b\" importa x",
				"b.fab":    "fixum = 1",
			},
			codes: []Code{ErrExpectedIdentifier, ErrModuleHasErrors},
		},
		{
			modules: MapLoader{
				"main.fab": "ex \"./b\" importa x",
				"b.fab":    "fixum x = 1\nx = 2",
			},
			codes: []Code{ErrImmutableAssignment},
		},
		{
			modules: MapLoader{
				"main.fab": "ex \"./b\" importa x ut y\nscribe(y)\nscribe(x)",
				"b.fab":    "exporta fixum x = 1",
			},
			codes: []Code{ErrUndefinedVariable},
		},
		{
			modules: MapLoader{
				"main.fab": "ex \"./b\" importa x\nx = 2",
				"b.fab":    "exporta varia x = 1",
			},
			codes: []Code{ErrImmutableAssignment},
		},
		{
			modules: MapLoader{
				"main.fab": "ex \"./b\" importa x\nex \"./b\" importa x",
				"b.fab":    "exporta varia x = 1",
			},
			codes: []Code{ErrDuplicateDefinition},
		},
	}
	for _, data := range testData {
		result := compileModules("main.fab", data.modules)
		assert.Equal(t, data.codes, diagnosticCodes(result.Diagnostics), data.modules["main.fab"])
	}
}

func TestModules_FailedModuleIsReportedOnce(t *testing.T) {
	modules := MapLoader{
		"main.fab": "ex \"./b\" importa x\nex \"./c\" importa y",
		"b.fab":    "fixum = 1",
		"c.fab":    "ex \"./b\" importa x\nexporta fixum y = 1",
	}
	result := compileModules("main.fab", modules)
	assert.Equal(t, []Code{ErrExpectedIdentifier, ErrModuleHasErrors, ErrModuleHasErrors},
		diagnosticCodes(result.Diagnostics))

	require.Len(t, result.Modules, 3)
	record := result.Modules[0]
	assert.Equal(t, "b.fab", record.Path)
	assert.Equal(t, ModuleFailed, record.State)
}

func TestModules_ImportedGenus(t *testing.T) {
	modules := MapLoader{
		"main.fab": "ex \"./geo/punctum\" importa Punctum\nfixum Punctum p = novum Punctum()\nfixum numerus x = p.x",
		"geo/punctum.fab": "exporta genus Punctum { numerus x = 0 }",
	}
	result := compileModules("main.fab", modules)
	assert.Empty(t, result.Diagnostics)
	assert.Contains(t, result.Sources, "geo/punctum.fab")

	last := result.Program.Statements[2].(*VarDeclareAst)
	assert.Equal(t, "numerus", last.Value.ResolvedType().String())
}

func TestModules_ImportedFunctionType(t *testing.T) {
	modules := MapLoader{
		"main.fab": "ex \"./util\" importa summa\nfixum textus s = summa(1, 2)",
		"util.fab": "functio summa(numerus a, numerus b) -> numerus { redde a + b }",
	}
	result := compileModules("main.fab", modules)
	assert.Equal(t, []Code{ErrTypeMismatch}, diagnosticCodes(result.Diagnostics))
}

func TestModules_DiamondSharesCache(t *testing.T) {
	modules := MapLoader{
		"main.fab":   "ex \"./left\" importa l\nex \"./right\" importa r",
		"left.fab":   "ex \"./shared\" importa s\nexporta fixum l = s",
		"right.fab":  "ex \"./shared\" importa s\nexporta fixum r = s",
		"shared.fab": "exporta fixum s = 1\nfixum bad = 1\nbad = 2",
	}
	result := compileModules("main.fab", modules)
	require.Len(t, result.Modules, 4)
	assert.Equal(t, []Code{ErrImmutableAssignment}, diagnosticCodes(result.Diagnostics))
	for _, record := range result.Modules {
		assert.Equal(t, ModuleResolved, record.State, record.Path)
	}
}

func TestModules_ResolveImportPath(t *testing.T) {
	testData := []struct {
		importer string
		spec     string
		expected string
	}{
		{importer: "src/main.fab", spec: "./util", expected: "src/util.fab"},
		{importer: "src/main.fab", spec: "../lib/x.fab", expected: "lib/x.fab"},
		{importer: "src/main.fab", spec: "./a/../b", expected: "src/b.fab"},
		{importer: "main.fab", spec: "/abs/m", expected: "/abs/m.fab"},
		{importer: "main.fab", spec: "util", expected: "util.fab"},
	}
	for _, data := range testData {
		assert.Equal(t, data.expected, ResolveImportPath(data.importer, data.spec))
	}
}

func TestModules_FileSystemLoader(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "lib"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib", "x.fab"), []byte("exporta fixum x = 1"), 0644))

	loader := FileSystemLoader{Root: dir}
	source, err := loader.Load("lib/x.fab")
	require.NoError(t, err)
	assert.Equal(t, "exporta fixum x = 1", source)

	absolute := filepath.ToSlash(filepath.Join(dir, "lib", "x.fab"))
	source, err = FileSystemLoader{Root: "elsewhere"}.Load(absolute)
	require.NoError(t, err)
	assert.Equal(t, "exporta fixum x = 1", source)

	_, err = loader.Load("lib/missing.fab")
	assert.True(t, errors.Is(err, ErrModuleMissing))
}

func TestModules_CacheStates(t *testing.T) {
	cache := NewModuleCache()
	a := cache.begin("a.fab")
	b := cache.begin("b.fab")
	assert.Equal(t, ModuleResolving, a.State)
	assert.Equal(t, "a.fab -> b.fab -> a.fab", cache.cycle("a.fab"))
	assert.Equal(t, "b.fab -> b.fab", cache.cycle("b.fab"))

	cache.finish(b, ModuleResolved)
	cache.finish(a, ModuleFailed)
	assert.Equal(t, "resolved", b.State.String())
	assert.Equal(t, "failed", a.State.String())

	records := cache.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "a.fab", records[0].Path)
	got, ok := cache.Get("b.fab")
	assert.True(t, ok)
	assert.True(t, b == got)
}

func TestModules_RootPathIsCleaned(t *testing.T) {
	modules := MapLoader{
		"a.fab": "ex \"./b\" importa g\nexporta functio f() { }",
		"b.fab": "ex \"./a\" importa f\nexporta functio g() { }",
	}
	result := Compile("./a.fab", modules["a.fab"], Options{Loader: modules})
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, ErrCircularImport, result.Diagnostics[0].Code)
	assert.Equal(t, "circular import: a.fab -> b.fab -> a.fab", result.Diagnostics[0].Message)

	require.Len(t, result.Modules, 2)
	assert.Equal(t, "a.fab", result.Modules[0].Path)
	assert.Equal(t, "b.fab", result.Modules[1].Path)
}

func TestModules_MapLoaderMissing(t *testing.T) {
	_, err := MapLoader{}.Load("gone.fab")
	assert.True(t, errors.Is(err, ErrModuleMissing))
	assert.Contains(t, err.Error(), "gone.fab")
}

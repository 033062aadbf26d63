package internal

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// SourceExtension is appended to import paths written without an extension.
const SourceExtension = ".fab"

// ErrModuleMissing is wrapped by loaders when a module path has no source.
var ErrModuleMissing = errors.New("module not found")

// ModuleLoader hands the analyzer the source text of a module path. Paths are slash
// separated and already resolved against the importing file.
type ModuleLoader interface {
	Load(path string) (string, error)
}

// FileSystemLoader reads modules below Root.
type FileSystemLoader struct {
	Root string
}

func (loader FileSystemLoader) Load(modulePath string) (string, error) {
	name := filepath.FromSlash(modulePath)
	if !filepath.IsAbs(name) {
		name = filepath.Join(loader.Root, name)
	}
	content, err := os.ReadFile(name)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrModuleMissing, modulePath)
		}
		return "", err
	}
	return string(content), nil
}

// MapLoader serves modules from memory, keyed by resolved path.
type MapLoader map[string]string

func (loader MapLoader) Load(modulePath string) (string, error) {
	source, ok := loader[modulePath]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrModuleMissing, modulePath)
	}
	return source, nil
}

// ResolveImportPath resolves spec relative to the directory of importer.
func ResolveImportPath(importer, spec string) string {
	resolved := spec
	if !path.IsAbs(spec) {
		resolved = path.Join(path.Dir(importer), spec)
	}
	resolved = path.Clean(resolved)
	if path.Ext(resolved) == "" {
		resolved += SourceExtension
	}
	return resolved
}

type ModuleState int

const (
	ModuleResolving ModuleState = iota
	ModuleResolved
	ModuleFailed
)

func (s ModuleState) String() string {
	switch s {
	case ModuleResolving:
		return "resolving"
	case ModuleResolved:
		return "resolved"
	}
	return "failed"
}

type ModuleRecord struct {
	Path        string
	State       ModuleState
	Source      string
	Program     *ProgramAst
	Exports     map[string]*SymbolDesc
	Diagnostics []*Diagnostic
	// LoadError is set when the loader could not provide the source.
	LoadError error
}

// ModuleCache remembers every module seen during one compilation. It assumes a single
// writer; share one between goroutines only under the caller's own lock.
type ModuleCache struct {
	records map[string]*ModuleRecord
	stack   []string
}

func NewModuleCache() *ModuleCache {
	return &ModuleCache{records: map[string]*ModuleRecord{}}
}

func (cache *ModuleCache) Get(modulePath string) (*ModuleRecord, bool) {
	record, ok := cache.records[modulePath]
	return record, ok
}

// Records lists the cached modules ordered by path.
func (cache *ModuleCache) Records() []*ModuleRecord {
	records := make([]*ModuleRecord, 0, len(cache.records))
	for _, record := range cache.records {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Path < records[j].Path })
	return records
}

// begin marks modulePath as resolving and pushes it on the resolution stack.
func (cache *ModuleCache) begin(modulePath string) *ModuleRecord {
	record, ok := cache.records[modulePath]
	if !ok {
		record = &ModuleRecord{Path: modulePath}
		cache.records[modulePath] = record
	}
	record.State = ModuleResolving
	cache.stack = append(cache.stack, modulePath)
	return record
}

// finish records the final state of record and pops it from the resolution stack.
func (cache *ModuleCache) finish(record *ModuleRecord, state ModuleState) {
	record.State = state
	for i := len(cache.stack) - 1; i >= 0; i-- {
		if cache.stack[i] == record.Path {
			cache.stack = append(cache.stack[:i], cache.stack[i+1:]...)
			break
		}
	}
}

// cycle renders the import chain that leads back to modulePath, like "a.fab -> b.fab -> a.fab".
func (cache *ModuleCache) cycle(modulePath string) string {
	start := 0
	for i, p := range cache.stack {
		if p == modulePath {
			start = i
			break
		}
	}
	chain := append(append([]string(nil), cache.stack[start:]...), modulePath)
	return strings.Join(chain, " -> ")
}

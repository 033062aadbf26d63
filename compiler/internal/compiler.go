package internal

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"faber/compiler/lexicon"
)

type Options struct {
	// Loader serves imported modules. Nil means a FileSystemLoader rooted at ".".
	Loader ModuleLoader
	// Lexicon defaults to lexicon.Default().
	Lexicon *lexicon.Lexicon
	// Cache is shared by every module of one compilation. Nil means a fresh cache.
	Cache *ModuleCache
	// Logger receives phase progress messages.
	Logger func(format string, args ...interface{})
}

func (opts *Options) logf(format string, args ...interface{}) {
	if opts.Logger != nil {
		opts.Logger(format, args...)
	}
}

// Result is everything one compilation produced. Program is never nil.
type Result struct {
	File        string
	Tokens      []*Token
	Program     *ProgramAst
	Diagnostics []*Diagnostic
	// Sources maps every file that has diagnostics to its text, for rendering.
	Sources map[string]string
	Modules []*ModuleRecord
}

func (result *Result) HasErrors() bool {
	return HasErrors(result.Diagnostics)
}

// Compile runs tokenize, parse and analyze over source, each phase to completion. Every
// phase runs even when an earlier one reported errors.
func Compile(file string, source string, opts Options) *Result {
	if opts.Lexicon == nil {
		opts.Lexicon = lexicon.Default()
	}
	if opts.Loader == nil {
		opts.Loader = FileSystemLoader{Root: "."}
	}
	if opts.Cache == nil {
		opts.Cache = NewModuleCache()
	}
	result := &Result{File: file, Sources: map[string]string{file: source}}

	opts.logf("compiler: start tokenizer at path: %s", file)
	tokens, diagnostics := NewTokenizer(file, opts.Lexicon).Tokenize(strings.NewReader(source))
	result.Tokens = tokens
	result.Diagnostics = append(result.Diagnostics, diagnostics...)

	opts.logf("compiler: start parser, %d tokens", len(tokens))
	program, diagnostics := Parse(file, tokens)
	result.Program = program
	result.Diagnostics = append(result.Diagnostics, diagnostics...)

	opts.logf("compiler: start semantic analyzer, %d statements", len(program.Statements))
	analyzer := NewAnalyzer(opts.Loader, opts.Cache)
	analyzer.lexicon = opts.Lexicon
	_, diagnostics = analyzer.Analyze(program)
	result.Diagnostics = append(result.Diagnostics, diagnostics...)

	result.Modules = opts.Cache.Records()
	for _, record := range result.Modules {
		if record.Source != "" {
			result.Sources[record.Path] = record.Source
		}
	}
	opts.logf("compiler: done %s, %d diagnostics", file, len(result.Diagnostics))
	return result
}

// CompileFile reads path and compiles it. Imports resolve against the file system
// relative to the working directory unless opts.Loader says otherwise.
func CompileFile(path string, opts Options) (*Result, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Compile(filepath.ToSlash(path), string(content), opts), nil
}

// CompileFiles compiles independent files concurrently, at most jobs at a time. Each file
// gets its own ModuleCache. Results keep the order of files; a file that cannot be read
// gets a result holding one L007 diagnostic. Cancellation is only observed between files.
func CompileFiles(ctx context.Context, files []string, opts Options, jobs int) ([]*Result, error) {
	if jobs <= 0 {
		jobs = 1
	}
	results := make([]*Result, len(files))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)
	for i, file := range files {
		i, file := i, file
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fileOpts := opts
			fileOpts.Cache = NewModuleCache()
			result, err := CompileFile(file, fileOpts)
			if err != nil {
				result = unreadableResult(filepath.ToSlash(file), err)
			}
			results[i] = result
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func unreadableResult(file string, err error) *Result {
	start := Position{Line: 1, Column: 1}
	return &Result{
		File:        file,
		Program:     &ProgramAst{File: file},
		Diagnostics: []*Diagnostic{newDiagnostic(ErrUnreadableSource, Span{File: file, Start: start, End: start}, err)},
		Sources:     map[string]string{},
	}
}

// CollectSourceFiles walks path and returns every source file below it, or path itself
// when it is a file.
func CollectSourceFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	var files []string
	err = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(p) == SourceExtension {
			files = append(files, p)
		}
		return nil
	})
	return files, err
}

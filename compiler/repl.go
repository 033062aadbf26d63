package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"faber/compiler/internal"
	"faber/compiler/lexicon"
)

const (
	replFile      = "<repl>"
	historyFile   = ".faber_history"
	promptMain    = "faber> "
	promptCont    = "...... "
	replBanner    = "faber front end. Type :help for commands, :quit to exit."
	replHelpLines = `:tokens <code>   print the tokens of <code>
:decline <word>  print every lexicon reading of <word> and its paradigm
:reset           forget the declarations of this session
:quit            exit`
)

// repl checks each input against everything accepted so far in the session. Input that
// analyzes without errors is kept; anything else is reported and dropped.
type repl struct {
	liner    *liner.State
	out      io.Writer
	color    bool
	opts     internal.Options
	session  []string
	lexicon  *lexicon.Lexicon
	histPath string
}

func runRepl(opts internal.Options, useColor bool) int {
	fmt.Println(replBanner)
	home, _ := os.UserHomeDir()
	r := &repl{
		liner:    liner.NewLiner(),
		out:      os.Stdout,
		color:    useColor,
		opts:     opts,
		lexicon:  lexicon.Default(),
		histPath: filepath.Join(home, historyFile),
	}
	defer r.liner.Close()
	r.liner.SetCtrlCAborts(true)
	if f, err := os.Open(r.histPath); err == nil {
		_, _ = r.liner.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(r.histPath); err == nil {
			_, _ = r.liner.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		code, ok := r.read()
		if !ok {
			fmt.Fprintln(r.out)
			return 0
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		r.liner.AppendHistory(strings.ReplaceAll(code, "\n", " "))
		if strings.HasPrefix(trimmed, ":") {
			if r.command(trimmed) {
				return 0
			}
			continue
		}
		r.check(code)
	}
}

// read collects lines until the input no longer ends inside an open construct.
func (r *repl) read() (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := r.liner.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return "", false
		}
		if err != nil {
			return "", true
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") || !incomplete(src) {
			return src, true
		}
	}
}

// incomplete reports whether src stops in the middle of a block, call or list.
func incomplete(src string) bool {
	tokens, _ := internal.TokenizeSource(replFile, src)
	if len(tokens) == 0 {
		return false
	}
	_, diagnostics := internal.Parse(replFile, tokens)
	end := tokens[len(tokens)-1].Span().End
	for _, d := range diagnostics {
		switch d.Code {
		case internal.ErrExpectedClosingBrace, internal.ErrUnexpectedEndOfInput:
			return true
		case internal.ErrExpectedClosingParen, internal.ErrExpectedClosingBracket:
			if d.Span.Start == end {
				return true
			}
		}
	}
	return false
}

func (r *repl) command(line string) (exit bool) {
	name, arg := line, ""
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		name, arg = line[:i], strings.TrimSpace(line[i+1:])
	}
	switch name {
	case ":quit", ":q":
		return true
	case ":help":
		fmt.Fprintln(r.out, replHelpLines)
	case ":reset":
		r.session = nil
	case ":tokens":
		tokens, diagnostics := internal.TokenizeSource(replFile, arg)
		for _, token := range tokens {
			fmt.Fprintln(r.out, token)
		}
		internal.PrintDiagnostics(r.out, diagnostics, map[string]string{replFile: arg}, r.color)
	case ":decline":
		r.decline(arg)
	default:
		fmt.Fprintf(r.out, "unknown command %s. Type :help for commands.\n", name)
	}
	return false
}

func (r *repl) decline(word string) {
	if entry, ok := r.lexicon.KeywordOf(word); ok {
		fmt.Fprintf(r.out, "%s: keyword, %s (%s)\n", word, entry.Meaning, entry.Category)
	}
	found := false
	if forms, err := r.lexicon.ResolveType(word); err == nil {
		found = true
		for _, form := range forms {
			fmt.Fprintf(r.out, "%s: type %s\n", word, form)
		}
		r.printParadigm(lexicon.Decline(forms[0].Entry.Stem, forms[0].Entry.Lemma, forms[0].Entry.Declension))
	}
	if forms, err := r.lexicon.ResolveNoun(word); err == nil {
		found = true
		for _, form := range forms {
			fmt.Fprintf(r.out, "%s: noun %s\n", word, form)
		}
		r.printParadigm(lexicon.Decline(forms[0].Entry.Stem, forms[0].Entry.Lemma, forms[0].Entry.Declension))
	}
	verbs, err := r.lexicon.ResolveVerb(word)
	if err == nil {
		found = true
		for _, form := range verbs {
			fmt.Fprintf(r.out, "%s: verb %s\n", word, form)
		}
		r.printParadigm(lexicon.Conjugate(*verbs[0].Entry))
	}
	if !found {
		fmt.Fprintf(r.out, "%s: %v\n", word, err)
	}
}

func (r *repl) printParadigm(cells []lexicon.Inflection) {
	for _, cell := range cells {
		if cell.Person != 0 {
			fmt.Fprintf(r.out, "  %-14s %s %s %s\n", cell.Word, cell.Tense, cell.Person, cell.Number)
			continue
		}
		fmt.Fprintf(r.out, "  %-14s %s %s\n", cell.Word, cell.Case, cell.Number)
	}
}

func (r *repl) check(code string) {
	previous := strings.Join(r.session, "\n")
	offset := 0
	if previous != "" {
		offset = strings.Count(previous, "\n") + 1
		previous += "\n"
	}
	opts := r.opts
	opts.Cache = internal.NewModuleCache()
	result := internal.Compile(replFile, previous+code, opts)
	var fresh []*internal.Diagnostic
	for _, d := range result.Diagnostics {
		if d.Span.File != replFile || d.Span.Start.Line > offset {
			fresh = append(fresh, d)
		}
	}
	if internal.HasErrors(fresh) {
		internal.PrintDiagnostics(r.out, fresh, result.Sources, r.color)
		return
	}
	r.session = append(r.session, code)
	fmt.Fprintf(r.out, "ok, %d statements\n", len(result.Program.Statements))
}

package lexicon

import (
	"fmt"
	"sort"

	"github.com/hbollon/go-edlib"
)

// Lexicon answers "which grammatical forms can this spelled word be?" It is read-only
// after New returns and may be shared between goroutines.
type Lexicon struct {
	nouns     []NounEntry
	verbs     []VerbEntry
	types     []TypeEntry
	nounIndex *declinedIndex
	typeIndex *declinedIndex
	verbStems map[string][]int
}

// NounForm is one reading of a word as a noun.
type NounForm struct {
	Entry  *NounEntry
	Ending string
	Case   Case
	Number Number
}

func (f NounForm) String() string {
	return fmt.Sprintf("%s (%s %s)", f.Entry.Lemma, f.Case, f.Number)
}

// TypeForm is one reading of a word as a built-in type name.
type TypeForm struct {
	Entry  *TypeEntry
	Ending string
	Case   Case
	Number Number
}

func (f TypeForm) String() string {
	return fmt.Sprintf("%s (%s %s)", f.Entry.Lemma, f.Case, f.Number)
}

// VerbForm is one reading of a word as a finite verb.
type VerbForm struct {
	Entry  *VerbEntry
	Ending string
	Tense  Tense
	Person Person
	Number Number
}

// Async is derived from the future tense: "fiet" promises a value.
func (f VerbForm) Async() bool {
	return f.Tense == Future
}

// Generator is derived from the plural: "fiunt" yields many values.
func (f VerbForm) Generator() bool {
	return f.Number == Plural
}

func (f VerbForm) String() string {
	return fmt.Sprintf("%s (%s %s %s)", f.Entry.Lemma, f.Tense, f.Person, f.Number)
}

type ErrorKind int

const (
	UnknownStem ErrorKind = iota
	InvalidEnding
)

func (k ErrorKind) String() string {
	if k == InvalidEnding {
		return "invalid_ending"
	}
	return "unknown_stem"
}

// Error is returned by every Resolve method when a word has no valid reading.
type Error struct {
	Kind ErrorKind
	Word string
	// Stem and Ending are set for InvalidEnding. Ending is empty for a bare stem.
	Stem   string
	Ending string
	// Suggestion is the closest dictionary lemma for UnknownStem, possibly empty.
	Suggestion string
}

func (e *Error) Error() string {
	switch e.Kind {
	case InvalidEnding:
		if e.Ending == "" {
			return fmt.Sprintf("missing ending on stem %q in %q", e.Stem, e.Word)
		}
		return fmt.Sprintf("invalid ending %q on stem %q in %q", e.Ending, e.Stem, e.Word)
	default:
		if e.Suggestion != "" {
			return fmt.Sprintf("unknown stem in %q, did you mean %q?", e.Word, e.Suggestion)
		}
		return fmt.Sprintf("unknown stem in %q", e.Word)
	}
}

// minRecognizedStem is the shortest stem that turns an unknown word into an
// invalid_ending report. Shorter stems ("fi", "am") prefix too many unrelated words.
const minRecognizedStem = 3

// maxSuggestionDistance bounds the edit distance of unknown_stem suggestions.
const maxSuggestionDistance = 2

// declinedIndex indexes entries that follow a declension, nouns and type names alike.
type declinedIndex struct {
	stems  []string
	lemmas []string
	decls  []Declension
	byStem map[string][]int
	byLem  map[string][]int
}

func newDeclinedIndex() *declinedIndex {
	return &declinedIndex{byStem: map[string][]int{}, byLem: map[string][]int{}}
}

func (idx *declinedIndex) add(stem, lemma string, decl Declension) {
	i := len(idx.stems)
	idx.stems = append(idx.stems, stem)
	idx.lemmas = append(idx.lemmas, lemma)
	idx.decls = append(idx.decls, decl)
	idx.byStem[stem] = append(idx.byStem[stem], i)
	idx.byLem[lemma] = append(idx.byLem[lemma], i)
}

type declinedMatch struct {
	entry  int
	ending string
	cs     Case
	number Number
}

// match strips every ending of every declension from word and keeps one result per
// (entry, ending cell) whose residue is a known stem of that declension.
func (idx *declinedIndex) match(word string) []declinedMatch {
	var out []declinedMatch
	seen := map[declinedMatch]bool{}
	add := func(m declinedMatch) {
		key := declinedMatch{entry: m.entry, cs: m.cs, number: m.number}
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, m)
	}
	for _, decl := range declensionOrder {
		for _, end := range nounEndings[decl] {
			if end.lemma {
				for _, i := range idx.byLem[word] {
					if idx.decls[i] == decl {
						add(declinedMatch{entry: i, cs: end.cs, number: end.number})
					}
				}
				continue
			}
			if len(word) <= len(end.ending) || word[len(word)-len(end.ending):] != end.ending {
				continue
			}
			residue := word[:len(word)-len(end.ending)]
			for _, i := range idx.byStem[residue] {
				if idx.decls[i] == decl {
					add(declinedMatch{entry: i, ending: end.ending, cs: end.cs, number: end.number})
				}
			}
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		if out[a].entry != out[b].entry {
			return out[a].entry < out[b].entry
		}
		if out[a].number != out[b].number {
			return out[a].number < out[b].number
		}
		return out[a].cs < out[b].cs
	})
	return out
}

// New builds a lexicon over the given dictionaries. Entries are copied.
func New(nouns []NounEntry, verbs []VerbEntry, types []TypeEntry) *Lexicon {
	lex := &Lexicon{
		nouns:     append([]NounEntry(nil), nouns...),
		verbs:     append([]VerbEntry(nil), verbs...),
		types:     append([]TypeEntry(nil), types...),
		nounIndex: newDeclinedIndex(),
		typeIndex: newDeclinedIndex(),
		verbStems: map[string][]int{},
	}
	for _, n := range lex.nouns {
		lex.nounIndex.add(n.Stem, n.Lemma, n.Declension)
	}
	for _, t := range lex.types {
		lex.typeIndex.add(t.Stem, t.Lemma, t.Declension)
	}
	for i, v := range lex.verbs {
		lex.verbStems[v.Stem] = append(lex.verbStems[v.Stem], i)
	}
	return lex
}

var defaultLexicon = New(defaultNouns, defaultVerbs, defaultTypes)

// Default returns the built-in lexicon.
func Default() *Lexicon {
	return defaultLexicon
}

func (lex *Lexicon) Nouns() []NounEntry { return append([]NounEntry(nil), lex.nouns...) }
func (lex *Lexicon) Verbs() []VerbEntry { return append([]VerbEntry(nil), lex.verbs...) }
func (lex *Lexicon) Types() []TypeEntry { return append([]TypeEntry(nil), lex.types...) }

func (lex *Lexicon) IsKeyword(word string) bool { return IsKeyword(word) }

func (lex *Lexicon) KeywordOf(word string) (*KeywordEntry, bool) { return KeywordOf(word) }

// ResolveNoun returns every noun reading of word. The error, when non-nil, is an *Error.
func (lex *Lexicon) ResolveNoun(word string) ([]NounForm, error) {
	matches := lex.nounIndex.match(word)
	if len(matches) == 0 {
		return nil, lex.nounIndex.explain(word)
	}
	forms := make([]NounForm, 0, len(matches))
	for _, m := range matches {
		forms = append(forms, NounForm{Entry: &lex.nouns[m.entry], Ending: m.ending, Case: m.cs, Number: m.number})
	}
	return forms, nil
}

// ResolveType returns every reading of word as a built-in type name.
func (lex *Lexicon) ResolveType(word string) ([]TypeForm, error) {
	matches := lex.typeIndex.match(word)
	if len(matches) == 0 {
		return nil, lex.typeIndex.explain(word)
	}
	forms := make([]TypeForm, 0, len(matches))
	for _, m := range matches {
		forms = append(forms, TypeForm{Entry: &lex.types[m.entry], Ending: m.ending, Case: m.cs, Number: m.number})
	}
	return forms, nil
}

// ResolveVerb returns every finite-verb reading of word.
func (lex *Lexicon) ResolveVerb(word string) ([]VerbForm, error) {
	var forms []VerbForm
	for _, conj := range conjugationOrder {
		for _, end := range verbEndings[conj] {
			if len(word) <= len(end.ending) || word[len(word)-len(end.ending):] != end.ending {
				continue
			}
			for _, i := range lex.verbStems[word[:len(word)-len(end.ending)]] {
				if lex.verbs[i].Conjugation != conj {
					continue
				}
				forms = append(forms, VerbForm{
					Entry:  &lex.verbs[i],
					Ending: end.ending,
					Tense:  end.tense,
					Person: end.person,
					Number: end.number,
				})
			}
		}
	}
	if len(forms) > 0 {
		return forms, nil
	}
	stems := make([]string, len(lex.verbs))
	lemmas := make([]string, len(lex.verbs))
	for i, v := range lex.verbs {
		stems[i], lemmas[i] = v.Stem, v.Lemma
	}
	return nil, explain(word, stems, lemmas)
}

func (idx *declinedIndex) explain(word string) *Error {
	return explain(word, idx.stems, idx.lemmas)
}

// explain classifies a word no ending table accepted. A known stem prefix means the
// ending is at fault; otherwise the closest lemma is offered as a suggestion.
func explain(word string, stems, lemmas []string) *Error {
	best := ""
	for _, stem := range stems {
		if len(stem) < minRecognizedStem || len(stem) > len(word) || word[:len(stem)] != stem {
			continue
		}
		if len(stem) > len(best) {
			best = stem
		}
	}
	if best != "" {
		return &Error{Kind: InvalidEnding, Word: word, Stem: best, Ending: word[len(best):]}
	}
	return &Error{Kind: UnknownStem, Word: word, Suggestion: suggest(word, lemmas)}
}

// suggest picks the lemma closest to word, ties broken alphabetically.
func suggest(word string, lemmas []string) string {
	best, bestDistance := "", maxSuggestionDistance+1
	for _, lemma := range lemmas {
		d := edlib.OSADamerauLevenshteinDistance(word, lemma)
		if d < bestDistance || (d == bestDistance && lemma < best) {
			best, bestDistance = lemma, d
		}
	}
	if bestDistance > maxSuggestionDistance {
		return ""
	}
	return best
}

package lexicon

// Inflection is one generated cell of a paradigm.
type Inflection struct {
	Word   string
	Case   Case
	Tense  Tense
	Person Person
	Number Number
}

// Decline generates the full case/number paradigm of a declined stem.
func Decline(stem, lemma string, decl Declension) []Inflection {
	var out []Inflection
	for _, end := range nounEndings[decl] {
		word := stem + end.ending
		if end.lemma {
			word = lemma
		}
		out = append(out, Inflection{Word: word, Case: end.cs, Number: end.number})
	}
	return out
}

// Conjugate generates every tense/person/number form of a verb.
func Conjugate(entry VerbEntry) []Inflection {
	var out []Inflection
	for _, end := range verbEndings[entry.Conjugation] {
		out = append(out, Inflection{
			Word:   entry.Stem + end.ending,
			Tense:  end.tense,
			Person: end.person,
			Number: end.number,
		})
	}
	return out
}

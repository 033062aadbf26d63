package lexicon

// nounEnding is one cell of a declension paradigm. When lemma is set the cell is not
// stem+ending but the dictionary form itself (third declension nominatives like "rex").
type nounEnding struct {
	ending string
	lemma  bool
	cs     Case
	number Number
}

type verbEnding struct {
	ending string
	tense  Tense
	person Person
	number Number
}

func paradigm(sg, pl [5]string) []nounEnding {
	endings := make([]nounEnding, 0, 10)
	for i, e := range sg {
		endings = append(endings, makeNounEnding(e, Case(i), Singular))
	}
	for i, e := range pl {
		endings = append(endings, makeNounEnding(e, Case(i), Plural))
	}
	return endings
}

const lemmaCell = "<lemma>"

func makeNounEnding(e string, cs Case, number Number) nounEnding {
	if e == lemmaCell {
		return nounEnding{lemma: true, cs: cs, number: number}
	}
	return nounEnding{ending: e, cs: cs, number: number}
}

// Cells are ordered nominative, genitive, dative, accusative, ablative.
var nounEndings = map[Declension][]nounEnding{
	FirstDeclension: paradigm(
		[5]string{"a", "ae", "ae", "am", "a"},
		[5]string{"ae", "arum", "is", "as", "is"},
	),
	SecondMasculineDeclension: paradigm(
		[5]string{"us", "i", "o", "um", "o"},
		[5]string{"i", "orum", "is", "os", "is"},
	),
	SecondNeuterDeclension: paradigm(
		[5]string{"um", "i", "o", "um", "o"},
		[5]string{"a", "orum", "is", "a", "is"},
	),
	ThirdDeclension: paradigm(
		[5]string{lemmaCell, "is", "i", "em", "e"},
		[5]string{"es", "um", "ibus", "es", "ibus"},
	),
	ThirdNeuterDeclension: paradigm(
		[5]string{lemmaCell, "is", "i", lemmaCell, "e"},
		[5]string{"a", "um", "ibus", "a", "ibus"},
	),
	FourthDeclension: paradigm(
		[5]string{"us", "us", "ui", "um", "u"},
		[5]string{"us", "uum", "ibus", "us", "ibus"},
	),
	FifthDeclension: paradigm(
		[5]string{"es", "ei", "ei", "em", "e"},
		[5]string{"es", "erum", "ebus", "es", "ebus"},
	),
}

var declensionOrder = []Declension{
	FirstDeclension, SecondMasculineDeclension, SecondNeuterDeclension, ThirdDeclension,
	ThirdNeuterDeclension, FourthDeclension, FifthDeclension,
}

func tenseTable(tense Tense, forms [6]string) []verbEnding {
	endings := make([]verbEnding, 0, 6)
	for i, e := range forms {
		number := Singular
		if i >= 3 {
			number = Plural
		}
		endings = append(endings, verbEnding{ending: e, tense: tense, person: Person(i%3 + 1), number: number})
	}
	return endings
}

func conjugationTable(present, imperfect, future [6]string) []verbEnding {
	var endings []verbEnding
	endings = append(endings, tenseTable(Present, present)...)
	endings = append(endings, tenseTable(Imperfect, imperfect)...)
	endings = append(endings, tenseTable(Future, future)...)
	return endings
}

// Cells are ordered 1st, 2nd, 3rd singular then 1st, 2nd, 3rd plural.
var verbEndings = map[Conjugation][]verbEnding{
	FirstConjugation: conjugationTable(
		[6]string{"o", "as", "at", "amus", "atis", "ant"},
		[6]string{"abam", "abas", "abat", "abamus", "abatis", "abant"},
		[6]string{"abo", "abis", "abit", "abimus", "abitis", "abunt"},
	),
	SecondConjugation: conjugationTable(
		[6]string{"eo", "es", "et", "emus", "etis", "ent"},
		[6]string{"ebam", "ebas", "ebat", "ebamus", "ebatis", "ebant"},
		[6]string{"ebo", "ebis", "ebit", "ebimus", "ebitis", "ebunt"},
	),
	ThirdConjugation: conjugationTable(
		[6]string{"o", "is", "it", "imus", "itis", "unt"},
		[6]string{"ebam", "ebas", "ebat", "ebamus", "ebatis", "ebant"},
		[6]string{"am", "es", "et", "emus", "etis", "ent"},
	),
	FourthConjugation: conjugationTable(
		[6]string{"io", "is", "it", "imus", "itis", "iunt"},
		[6]string{"iebam", "iebas", "iebat", "iebamus", "iebatis", "iebant"},
		[6]string{"iam", "ies", "iet", "iemus", "ietis", "ient"},
	),
	IrregularConjugation: conjugationTable(
		[6]string{"o", "s", "t", "mus", "tis", "unt"},
		[6]string{"ebam", "ebas", "ebat", "ebamus", "ebatis", "ebant"},
		[6]string{"am", "es", "et", "emus", "etis", "ent"},
	),
}

var conjugationOrder = []Conjugation{
	FirstConjugation, SecondConjugation, ThirdConjugation, FourthConjugation, IrregularConjugation,
}

package lexicon

// Grammatical categories the lexicon resolves. The zero value of every enum is a real
// category, never "unknown": a form either parses fully or it is not returned.

type Case int

const (
	Nominative Case = iota // subject
	Genitive               // possessor
	Dative                 // indirect object
	Accusative             // object
	Ablative               // instrument
)

var caseNames = [...]string{"nominative", "genitive", "dative", "accusative", "ablative"}

func (c Case) String() string {
	if int(c) < len(caseNames) {
		return caseNames[c]
	}
	return "case?"
}

type Number int

const (
	Singular Number = iota
	Plural
)

func (n Number) String() string {
	if n == Plural {
		return "plural"
	}
	return "singular"
}

type Gender int

const (
	Masculine Gender = iota
	Feminine
	Neuter
)

func (g Gender) String() string {
	switch g {
	case Feminine:
		return "feminine"
	case Neuter:
		return "neuter"
	}
	return "masculine"
}

type Tense int

const (
	Present Tense = iota
	Imperfect
	Future
)

func (t Tense) String() string {
	switch t {
	case Imperfect:
		return "imperfect"
	case Future:
		return "future"
	}
	return "present"
}

type Person int

const (
	FirstPerson Person = iota + 1
	SecondPerson
	ThirdPerson
)

func (p Person) String() string {
	switch p {
	case FirstPerson:
		return "1st"
	case SecondPerson:
		return "2nd"
	case ThirdPerson:
		return "3rd"
	}
	return "person?"
}

// Declension is the ending pattern a noun or type name follows.
type Declension int

const (
	FirstDeclension Declension = iota
	SecondMasculineDeclension
	SecondNeuterDeclension
	ThirdDeclension
	ThirdNeuterDeclension
	FourthDeclension
	FifthDeclension
)

var declensionNames = [...]string{
	"1st", "2nd (masculine)", "2nd (neuter)", "3rd", "3rd (neuter)", "4th", "5th",
}

func (d Declension) String() string {
	if int(d) < len(declensionNames) {
		return declensionNames[d]
	}
	return "declension?"
}

// Conjugation is the ending pattern a verb follows.
type Conjugation int

const (
	FirstConjugation Conjugation = iota
	SecondConjugation
	ThirdConjugation
	FourthConjugation
	// IrregularConjugation covers "fio", whose forms carry the return-verb semantics.
	IrregularConjugation
)

var conjugationNames = [...]string{"1st", "2nd", "3rd", "4th", "irregular"}

func (c Conjugation) String() string {
	if int(c) < len(conjugationNames) {
		return conjugationNames[c]
	}
	return "conjugation?"
}

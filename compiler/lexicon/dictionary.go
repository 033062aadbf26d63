package lexicon

// NounEntry is a dictionary noun. Lemma is the nominative singular as a dictionary
// lists it; Stem is what the oblique endings attach to.
type NounEntry struct {
	Stem       string
	Lemma      string
	Declension Declension
	Gender     Gender
	Meaning    string
}

// VerbEntry is a dictionary verb, listed by its first person singular present.
type VerbEntry struct {
	Stem        string
	Lemma       string
	Conjugation Conjugation
	Meaning     string
}

// TypeEntry is a built-in type name. Type names decline like nouns, so "numeri" and
// "numerus" both name the integer type.
type TypeEntry struct {
	Stem       string
	Lemma      string
	Declension Declension
	Gender     Gender
	Meaning    string
}

// ReturnVerbLemma is the verb whose forms stand in a function signature for the return
// arrow and carry its async/generator flavour.
const ReturnVerbLemma = "fio"

var defaultNouns = []NounEntry{
	{Stem: "puell", Lemma: "puella", Declension: FirstDeclension, Gender: Feminine, Meaning: "girl"},
	{Stem: "aqu", Lemma: "aqua", Declension: FirstDeclension, Gender: Feminine, Meaning: "water"},
	{Stem: "epistul", Lemma: "epistula", Declension: FirstDeclension, Gender: Feminine, Meaning: "letter"},
	{Stem: "fabul", Lemma: "fabula", Declension: FirstDeclension, Gender: Feminine, Meaning: "story"},
	{Stem: "pecuni", Lemma: "pecunia", Declension: FirstDeclension, Gender: Feminine, Meaning: "money"},
	{Stem: "lingu", Lemma: "lingua", Declension: FirstDeclension, Gender: Feminine, Meaning: "language"},
	{Stem: "nunti", Lemma: "nuntius", Declension: SecondMasculineDeclension, Gender: Masculine, Meaning: "messenger"},
	{Stem: "serv", Lemma: "servus", Declension: SecondMasculineDeclension, Gender: Masculine, Meaning: "servant"},
	{Stem: "amic", Lemma: "amicus", Declension: SecondMasculineDeclension, Gender: Masculine, Meaning: "friend"},
	{Stem: "lud", Lemma: "ludus", Declension: SecondMasculineDeclension, Gender: Masculine, Meaning: "game"},
	{Stem: "popul", Lemma: "populus", Declension: SecondMasculineDeclension, Gender: Masculine, Meaning: "people"},
	{Stem: "verb", Lemma: "verbum", Declension: SecondNeuterDeclension, Gender: Neuter, Meaning: "word"},
	{Stem: "don", Lemma: "donum", Declension: SecondNeuterDeclension, Gender: Neuter, Meaning: "gift"},
	{Stem: "sign", Lemma: "signum", Declension: SecondNeuterDeclension, Gender: Neuter, Meaning: "signal"},
	{Stem: "templ", Lemma: "templum", Declension: SecondNeuterDeclension, Gender: Neuter, Meaning: "template"},
	{Stem: "reg", Lemma: "rex", Declension: ThirdDeclension, Gender: Masculine, Meaning: "king"},
	{Stem: "homin", Lemma: "homo", Declension: ThirdDeclension, Gender: Masculine, Meaning: "person"},
	{Stem: "urb", Lemma: "urbs", Declension: ThirdDeclension, Gender: Feminine, Meaning: "city"},
	{Stem: "milit", Lemma: "miles", Declension: ThirdDeclension, Gender: Masculine, Meaning: "soldier"},
	{Stem: "civ", Lemma: "civis", Declension: ThirdDeclension, Gender: Masculine, Meaning: "citizen"},
	{Stem: "corpor", Lemma: "corpus", Declension: ThirdNeuterDeclension, Gender: Neuter, Meaning: "body"},
	{Stem: "nomin", Lemma: "nomen", Declension: ThirdNeuterDeclension, Gender: Neuter, Meaning: "name"},
	{Stem: "tempor", Lemma: "tempus", Declension: ThirdNeuterDeclension, Gender: Neuter, Meaning: "time"},
	{Stem: "capit", Lemma: "caput", Declension: ThirdNeuterDeclension, Gender: Neuter, Meaning: "head"},
	{Stem: "man", Lemma: "manus", Declension: FourthDeclension, Gender: Feminine, Meaning: "hand"},
	{Stem: "fluct", Lemma: "fluctus", Declension: FourthDeclension, Gender: Masculine, Meaning: "wave"},
	{Stem: "grad", Lemma: "gradus", Declension: FourthDeclension, Gender: Masculine, Meaning: "step"},
	{Stem: "faci", Lemma: "facies", Declension: FifthDeclension, Gender: Feminine, Meaning: "face"},
	{Stem: "seri", Lemma: "series", Declension: FifthDeclension, Gender: Feminine, Meaning: "series"},
	{Stem: "fid", Lemma: "fides", Declension: FifthDeclension, Gender: Feminine, Meaning: "trust"},
}

var defaultVerbs = []VerbEntry{
	{Stem: "am", Lemma: "amo", Conjugation: FirstConjugation, Meaning: "love"},
	{Stem: "voc", Lemma: "voco", Conjugation: FirstConjugation, Meaning: "call"},
	{Stem: "port", Lemma: "porto", Conjugation: FirstConjugation, Meaning: "carry"},
	{Stem: "vid", Lemma: "video", Conjugation: SecondConjugation, Meaning: "see"},
	{Stem: "mon", Lemma: "moneo", Conjugation: SecondConjugation, Meaning: "warn"},
	{Stem: "hab", Lemma: "habeo", Conjugation: SecondConjugation, Meaning: "have"},
	{Stem: "leg", Lemma: "lego", Conjugation: ThirdConjugation, Meaning: "read"},
	{Stem: "scrib", Lemma: "scribo", Conjugation: ThirdConjugation, Meaning: "write"},
	{Stem: "mitt", Lemma: "mitto", Conjugation: ThirdConjugation, Meaning: "send"},
	{Stem: "duc", Lemma: "duco", Conjugation: ThirdConjugation, Meaning: "lead"},
	{Stem: "aud", Lemma: "audio", Conjugation: FourthConjugation, Meaning: "hear"},
	{Stem: "ven", Lemma: "venio", Conjugation: FourthConjugation, Meaning: "come"},
	{Stem: "sent", Lemma: "sentio", Conjugation: FourthConjugation, Meaning: "feel"},
	{Stem: "fi", Lemma: ReturnVerbLemma, Conjugation: IrregularConjugation, Meaning: "become"},
}

var defaultTypes = []TypeEntry{
	{Stem: "numer", Lemma: "numerus", Declension: SecondMasculineDeclension, Gender: Masculine, Meaning: "integer"},
	{Stem: "fract", Lemma: "fractus", Declension: SecondMasculineDeclension, Gender: Masculine, Meaning: "float"},
	{Stem: "text", Lemma: "textus", Declension: FourthDeclension, Gender: Masculine, Meaning: "string"},
	{Stem: "bivalent", Lemma: "bivalens", Declension: ThirdDeclension, Gender: Masculine, Meaning: "boolean"},
	{Stem: "vacu", Lemma: "vacuum", Declension: SecondNeuterDeclension, Gender: Neuter, Meaning: "void"},
	{Stem: "list", Lemma: "lista", Declension: FirstDeclension, Gender: Feminine, Meaning: "list"},
	{Stem: "tabul", Lemma: "tabula", Declension: FirstDeclension, Gender: Feminine, Meaning: "map"},
	{Stem: "copi", Lemma: "copia", Declension: FirstDeclension, Gender: Feminine, Meaning: "set"},
	{Stem: "promiss", Lemma: "promissum", Declension: SecondNeuterDeclension, Gender: Neuter, Meaning: "promise"},
	{Stem: "ignot", Lemma: "ignotum", Declension: SecondNeuterDeclension, Gender: Neuter, Meaning: "unknown"},
	{Stem: "errat", Lemma: "erratum", Declension: SecondNeuterDeclension, Gender: Neuter, Meaning: "error"},
}

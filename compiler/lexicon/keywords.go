package lexicon

type Category int

const (
	ControlCategory Category = iota
	DeclarationCategory
	OperatorCategory
	ValueCategory
	PrepositionCategory
	ModifierCategory
	DSLCategory
)

func (c Category) String() string {
	switch c {
	case ControlCategory:
		return "control"
	case DeclarationCategory:
		return "declaration"
	case OperatorCategory:
		return "operator"
	case ValueCategory:
		return "value"
	case PrepositionCategory:
		return "preposition"
	case ModifierCategory:
		return "modifier"
	case DSLCategory:
		return "dsl"
	}
	return "category?"
}

type KeywordEntry struct {
	Latin    string
	Meaning  string
	Category Category
}

var keywordTable = []KeywordEntry{
	// Control flow.
	{Latin: "si", Meaning: "if", Category: ControlCategory},
	{Latin: "sin", Meaning: "else if", Category: ControlCategory},
	{Latin: "secus", Meaning: "else", Category: ControlCategory},
	{Latin: "dum", Meaning: "while", Category: ControlCategory},
	{Latin: "pro", Meaning: "for (binding)", Category: ControlCategory},
	{Latin: "redde", Meaning: "return", Category: ControlCategory},
	{Latin: "rumpe", Meaning: "break", Category: ControlCategory},
	{Latin: "perge", Meaning: "continue", Category: ControlCategory},
	{Latin: "elige", Meaning: "switch", Category: ControlCategory},
	{Latin: "casu", Meaning: "case", Category: ControlCategory},
	{Latin: "ceterum", Meaning: "default", Category: ControlCategory},
	{Latin: "custodi", Meaning: "guard", Category: ControlCategory},
	{Latin: "tempta", Meaning: "try", Category: ControlCategory},
	{Latin: "cape", Meaning: "catch", Category: ControlCategory},
	{Latin: "demum", Meaning: "finally", Category: ControlCategory},
	{Latin: "iace", Meaning: "throw", Category: ControlCategory},
	{Latin: "adfirma", Meaning: "assert", Category: ControlCategory},
	{Latin: "cede", Meaning: "await / yield", Category: ControlCategory},
	{Latin: "incipit", Meaning: "entry point", Category: ControlCategory},
	{Latin: "incipiet", Meaning: "async entry point", Category: ControlCategory},
	{Latin: "probandum", Meaning: "test suite", Category: ControlCategory},
	{Latin: "proba", Meaning: "test case", Category: ControlCategory},
	{Latin: "praepara", Meaning: "test setup", Category: ControlCategory},

	// Declarations.
	{Latin: "fixum", Meaning: "const", Category: DeclarationCategory},
	{Latin: "varia", Meaning: "let", Category: DeclarationCategory},
	{Latin: "functio", Meaning: "function", Category: DeclarationCategory},
	{Latin: "genus", Meaning: "class", Category: DeclarationCategory},
	{Latin: "importa", Meaning: "import", Category: DeclarationCategory},
	{Latin: "exporta", Meaning: "export", Category: DeclarationCategory},
	{Latin: "ut", Meaning: "as (alias)", Category: DeclarationCategory},

	// Word operators.
	{Latin: "et", Meaning: "and", Category: OperatorCategory},
	{Latin: "aut", Meaning: "or", Category: OperatorCategory},
	{Latin: "vel", Meaning: "nullish or", Category: OperatorCategory},
	{Latin: "non", Meaning: "not", Category: OperatorCategory},
	{Latin: "est", Meaning: "strict equals", Category: OperatorCategory},
	{Latin: "usque", Meaning: "inclusive range", Category: OperatorCategory},
	{Latin: "novum", Meaning: "new", Category: OperatorCategory},

	// Values.
	{Latin: "verum", Meaning: "true", Category: ValueCategory},
	{Latin: "falsum", Meaning: "false", Category: ValueCategory},
	{Latin: "nihil", Meaning: "null", Category: ValueCategory},
	{Latin: "ego", Meaning: "this", Category: ValueCategory},

	// Prepositions: iteration source and parameter ownership.
	{Latin: "ex", Meaning: "from (values / import source)", Category: PrepositionCategory},
	{Latin: "de", Meaning: "of (keys / borrowed)", Category: PrepositionCategory},
	{Latin: "in", Meaning: "into (mutable borrow)", Category: PrepositionCategory},

	// Modifiers.
	{Latin: "futura", Meaning: "async", Category: ModifierCategory},
	{Latin: "cursor", Meaning: "generator", Category: ModifierCategory},
	{Latin: "externa", Meaning: "externally defined", Category: ModifierCategory},

	// Collection DSL.
	{Latin: "ubi", Meaning: "where (loop filter)", Category: DSLCategory},
	{Latin: "per", Meaning: "step (range)", Category: DSLCategory},
}

var keywords = buildKeywordMap(keywordTable)

func buildKeywordMap(table []KeywordEntry) map[string]*KeywordEntry {
	m := make(map[string]*KeywordEntry, len(table))
	for i := range table {
		m[table[i].Latin] = &table[i]
	}
	return m
}

// IsKeyword reports whether word is a reserved word. Matching is exact: "Si" is an
// identifier.
func IsKeyword(word string) bool {
	_, ok := keywords[word]
	return ok
}

func KeywordOf(word string) (*KeywordEntry, bool) {
	entry, ok := keywords[word]
	return entry, ok
}

// Keywords lists the keyword table in declaration order.
func Keywords() []KeywordEntry {
	out := make([]KeywordEntry, len(keywordTable))
	copy(out, keywordTable)
	return out
}

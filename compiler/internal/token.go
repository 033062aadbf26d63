package internal

import (
	"fmt"

	"faber/compiler/lexicon"
)

// Faber source has those elements:
// * KeyWord: inflected latin words from the lexicon keyword table (si, dum, functio, ...).
// * Symbol: { } ( ) [ ] . , ; : ? + - * / % = += -= *= /= == != === !== < > <= >= && || ! -> ..
// * Constant: integer (1_000, 0xff), float (1.5, 2e10), string ("xxx", 'xxx'), regex (/a+/g).
// * Identifier: letters, digits, underscore, not starting with a digit. Identifiers that
//   are latin word forms carry the lexicon readings as an annotation.
// * Comment: /**/ (nestable), //, #.

type TokenType int

const (
	KeywordTP              TokenType = iota // si, functio, ...
	IdentifierTP                            // nuntius
	IntegerTP                               // 1010
	FloatTP                                 // 10.5
	StringTP                                // "xxx"
	RegexTP                                 // /xxx/g
	LeftBraceTP                             // {
	RightBraceTP                            // }
	LeftParentThesesTP                      // (
	RightParentThesesTP                     // )
	LeftSquareBracketTP                     // [
	RightSquareBracketTP                    // ]
	DotTP                                   // .
	CommaTP                                 // ,
	SemiColonTP                             // ;
	ColonTP                                 // :
	QuestionTP                              // ?
	AddTP                                   // +
	MinusTP                                 // -
	MultiplyTP                              // *
	DivideTP                                // /
	ModTP                                   // %
	AssignTP                                // =
	AddAssignTP                             // +=
	MinusAssignTP                           // -=
	MultiplyAssignTP                        // *=
	DivideAssignTP                          // /=
	EqualTP                                 // ==
	NotEqualTP                              // !=
	StrictEqualTP                           // ===
	StrictNotEqualTP                        // !==
	LessTP                                  // <
	GreaterTP                               // >
	LessEqualTP                             // <=
	GreaterEqualTP                          // >=
	AndTP                                   // &&
	OrTP                                    // ||
	BooleanNegativeTP                       // !
	ArrowTP                                 // ->
	RangeTP                                 // ..
)

// symbolTokenTPs is ordered longest first so a scan can take the maximal munch.
var symbolTokenTPs = []struct {
	symbol string
	tp     TokenType
}{
	{"===", StrictEqualTP},
	{"!==", StrictNotEqualTP},
	{"==", EqualTP},
	{"!=", NotEqualTP},
	{"<=", LessEqualTP},
	{">=", GreaterEqualTP},
	{"&&", AndTP},
	{"||", OrTP},
	{"->", ArrowTP},
	{"..", RangeTP},
	{"+=", AddAssignTP},
	{"-=", MinusAssignTP},
	{"*=", MultiplyAssignTP},
	{"/=", DivideAssignTP},
	{"{", LeftBraceTP},
	{"}", RightBraceTP},
	{"(", LeftParentThesesTP},
	{")", RightParentThesesTP},
	{"[", LeftSquareBracketTP},
	{"]", RightSquareBracketTP},
	{".", DotTP},
	{",", CommaTP},
	{";", SemiColonTP},
	{":", ColonTP},
	{"?", QuestionTP},
	{"+", AddTP},
	{"-", MinusTP},
	{"*", MultiplyTP},
	{"/", DivideTP},
	{"%", ModTP},
	{"=", AssignTP},
	{"<", LessTP},
	{">", GreaterTP},
	{"!", BooleanNegativeTP},
}

var tokenTypeNames = map[TokenType]string{
	KeywordTP:    "keyword",
	IdentifierTP: "identifier",
	IntegerTP:    "integer",
	FloatTP:      "float",
	StringTP:     "string",
	RegexTP:      "regex",
}

func init() {
	for _, s := range symbolTokenTPs {
		tokenTypeNames[s.tp] = s.symbol
	}
}

func (tp TokenType) String() string {
	if name, ok := tokenTypeNames[tp]; ok {
		return name
	}
	return fmt.Sprintf("token(%d)", int(tp))
}

// TokenKind is the coarse classification downstream tools care about.
type TokenKind int

const (
	KeywordTokenKind TokenKind = iota
	IdentifierTokenKind
	LiteralTokenKind
	OperatorTokenKind
	PunctuationTokenKind
)

func (k TokenKind) String() string {
	switch k {
	case KeywordTokenKind:
		return "keyword"
	case IdentifierTokenKind:
		return "identifier"
	case LiteralTokenKind:
		return "literal"
	case OperatorTokenKind:
		return "operator"
	}
	return "punctuation"
}

// Position is 1-based line and column (in runes) plus a 0-based rune offset.
type Position struct {
	Line   int
	Column int
	Offset int
}

// Span is a half-open source range.
type Span struct {
	File  string
	Start Position
	End   Position
}

func (s Span) String() string {
	return fmt.Sprintf("%s:%d:%d", s.File, s.Start.Line, s.Start.Column)
}

// Join returns the span covering s through other.
func (s Span) Join(other Span) Span {
	return Span{File: s.File, Start: s.Start, End: other.End}
}

// Annotation holds every lexicon reading of an identifier. Readings are never
// narrowed here; consumers pick what their grammar position needs.
type Annotation struct {
	Nouns []lexicon.NounForm
	Verbs []lexicon.VerbForm
	Types []lexicon.TypeForm
}

// ReturnVerb reports the reading of a return verb (fit, fiet, fiunt, fient). It fails
// when there is none or when the readings disagree on the async/generator flags.
func (a *Annotation) ReturnVerb() (lexicon.VerbForm, bool) {
	var found []lexicon.VerbForm
	if a == nil {
		return lexicon.VerbForm{}, false
	}
	for _, v := range a.Verbs {
		if v.Entry.Lemma == lexicon.ReturnVerbLemma {
			found = append(found, v)
		}
	}
	if len(found) == 0 {
		return lexicon.VerbForm{}, false
	}
	for _, v := range found[1:] {
		if v.Async() != found[0].Async() || v.Generator() != found[0].Generator() {
			return lexicon.VerbForm{}, false
		}
	}
	return found[0], true
}

type Token struct {
	content    string
	value      string // unescaped string body or regex pattern
	flags      string // regex flags
	file       string
	line       int
	startPos   int
	endPos     int
	offset     int
	tp         TokenType
	keyword    *lexicon.KeywordEntry
	annotation *Annotation
}

func (t *Token) Content() string { return t.content }

func (t *Token) Type() TokenType { return t.tp }

func (t *Token) Keyword() *lexicon.KeywordEntry { return t.keyword }

func (t *Token) Annotation() *Annotation { return t.annotation }

func (t *Token) Line() int { return t.line }

func (t *Token) Kind() TokenKind {
	switch t.tp {
	case KeywordTP:
		return KeywordTokenKind
	case IdentifierTP:
		return IdentifierTokenKind
	case IntegerTP, FloatTP, StringTP, RegexTP:
		return LiteralTokenKind
	case LeftBraceTP, RightBraceTP, LeftParentThesesTP, RightParentThesesTP, LeftSquareBracketTP,
		RightSquareBracketTP, DotTP, CommaTP, SemiColonTP, ColonTP:
		return PunctuationTokenKind
	}
	return OperatorTokenKind
}

func (t *Token) Span() Span {
	return Span{
		File:  t.file,
		Start: Position{Line: t.line, Column: t.startPos, Offset: t.offset},
		End:   Position{Line: t.line, Column: t.endPos, Offset: t.offset + (t.endPos - t.startPos)},
	}
}

func (t *Token) isKeyword(word string) bool {
	return t.tp == KeywordTP && t.content == word
}

func (t *Token) String() string {
	return fmt.Sprintf("%s %q at %d:%d", t.tp, t.content, t.line, t.startPos)
}

package internal

import (
	"io"
	"strings"

	"faber/compiler/lexicon"
	"faber/util"
)

// A Tokenizer for faber source. It walks the whole source once, left to right, and never
// stops at the first problem: unscannable characters are reported and skipped so that one
// pass surfaces every lexical error.
type Tokenizer struct {
	currentPos  int
	currentFile string
	currentLine int
	lineStart   int
	source      []rune
	tokens      []*Token
	diagnostics []*Diagnostic
	lexicon     *lexicon.Lexicon
}

func NewTokenizer(file string, lex *lexicon.Lexicon) *Tokenizer {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &Tokenizer{currentFile: file, currentLine: 1, lexicon: lex}
}

// TokenizeSource tokenizes src with the default lexicon.
func TokenizeSource(file string, src string) ([]*Token, []*Diagnostic) {
	return NewTokenizer(file, nil).Tokenize(strings.NewReader(src))
}

// Tokenize accepts a source `rd` and tokenizes its content according to faber rules.
// This method is the main method of this tokenizer. The returned slices may be empty but
// a read failure is the only case in which no token is attempted.
func (tokenizer *Tokenizer) Tokenize(rd io.Reader) ([]*Token, []*Diagnostic) {
	content, err := io.ReadAll(rd)
	if err != nil {
		tokenizer.makeError(ErrUnreadableSource, tokenizer.mark(), err)
		return tokenizer.tokens, tokenizer.diagnostics
	}
	tokenizer.source = []rune(string(content))
	if len(tokenizer.source) > 0 && tokenizer.source[0] == '\uFEFF' {
		tokenizer.currentPos, tokenizer.lineStart = 1, 1
	}
	for {
		tokenizer.trimSpace()
		if !tokenizer.hasRemainCharacters() {
			break
		}
		if token := tokenizer.getNextToken(); token != nil {
			tokenizer.tokens = append(tokenizer.tokens, token)
		}
	}
	return tokenizer.tokens, tokenizer.diagnostics
}

// getNextToken scans one lexeme at currentPos. It returns nil for comments and for
// characters it had to skip.
func (tokenizer *Tokenizer) getNextToken() *Token {
	c := tokenizer.source[tokenizer.currentPos]
	switch {
	case c == '#':
		tokenizer.skipLine()
		return nil
	case c == '/':
		return tokenizer.tokenCommentOrDivide()
	case c == '"' || c == '\'':
		return tokenizer.tokenString(c)
	case util.IsNumber(c):
		return tokenizer.tokenNumber()
	case util.IsLetterOrUnderscore(c):
		return tokenizer.toKeywordOrIdentifier()
	}
	return tokenizer.tokenSimpleSymbol()
}

// trimSpace will step forward through the source and skip all continuous space including
// line breaks, leaving currentPos on a non-space character or at the end.
func (tokenizer *Tokenizer) trimSpace() {
	for tokenizer.hasRemainCharacters() {
		c := tokenizer.source[tokenizer.currentPos]
		if c == '\n' {
			tokenizer.newLine()
			continue
		}
		if util.IsSpace(c) {
			tokenizer.currentPos++
			continue
		}
		break
	}
}

func (tokenizer *Tokenizer) newLine() {
	tokenizer.currentPos++
	tokenizer.currentLine++
	tokenizer.lineStart = tokenizer.currentPos
}

func (tokenizer *Tokenizer) hasRemainCharacters() bool {
	return tokenizer.currentPos < len(tokenizer.source)
}

func (tokenizer *Tokenizer) peek(ahead int) rune {
	if tokenizer.currentPos+ahead >= len(tokenizer.source) {
		return 0
	}
	return tokenizer.source[tokenizer.currentPos+ahead]
}

func (tokenizer *Tokenizer) mark() Position {
	return Position{
		Line:   tokenizer.currentLine,
		Column: tokenizer.currentPos - tokenizer.lineStart + 1,
		Offset: tokenizer.currentPos,
	}
}

func (tokenizer *Tokenizer) newToken(tp TokenType, start Position) *Token {
	return &Token{
		content:  string(tokenizer.source[start.Offset:tokenizer.currentPos]),
		file:     tokenizer.currentFile,
		line:     start.Line,
		startPos: start.Column,
		endPos:   start.Column + tokenizer.currentPos - start.Offset,
		offset:   start.Offset,
		tp:       tp,
	}
}

func (tokenizer *Tokenizer) skipLine() {
	for tokenizer.hasRemainCharacters() && tokenizer.source[tokenizer.currentPos] != '\n' {
		tokenizer.currentPos++
	}
}

func (tokenizer *Tokenizer) tokenSimpleSymbol() *Token {
	start := tokenizer.mark()
	for _, s := range symbolTokenTPs {
		if tokenizer.hasPrefix(s.symbol) {
			tokenizer.currentPos += len(s.symbol)
			return tokenizer.newToken(s.tp, start)
		}
	}
	c := tokenizer.source[tokenizer.currentPos]
	tokenizer.currentPos++
	tokenizer.makeError(ErrUnexpectedCharacter, start, string(c))
	return nil
}

func (tokenizer *Tokenizer) hasPrefix(symbol string) bool {
	for i, r := range []rune(symbol) {
		if tokenizer.peek(i) != r {
			return false
		}
	}
	return true
}

func (tokenizer *Tokenizer) tokenCommentOrDivide() *Token {
	switch tokenizer.peek(1) {
	case '/':
		tokenizer.skipLine()
		return nil
	case '*':
		tokenizer.skipMultipleLineComment()
		return nil
	}
	if tokenizer.regexAllowed() {
		return tokenizer.tokenRegex()
	}
	return tokenizer.tokenSimpleSymbol()
}

// skipMultipleLineComment skips a block comment; block comments nest.
func (tokenizer *Tokenizer) skipMultipleLineComment() {
	start := tokenizer.mark()
	tokenizer.currentPos += 2
	depth := 1
	for tokenizer.hasRemainCharacters() {
		switch {
		case tokenizer.hasPrefix("/*"):
			depth++
			tokenizer.currentPos += 2
		case tokenizer.hasPrefix("*/"):
			depth--
			tokenizer.currentPos += 2
			if depth == 0 {
				return
			}
		case tokenizer.source[tokenizer.currentPos] == '\n':
			tokenizer.newLine()
		default:
			tokenizer.currentPos++
		}
	}
	tokenizer.makeError(ErrUnterminatedComment, start)
}

// regexAllowed reports whether a '/' starts an operand. After a value (name, literal,
// closing bracket) on the same line it is a division.
func (tokenizer *Tokenizer) regexAllowed() bool {
	if len(tokenizer.tokens) == 0 {
		return true
	}
	prev := tokenizer.tokens[len(tokenizer.tokens)-1]
	if prev.line < tokenizer.currentLine {
		return true
	}
	switch prev.tp {
	case IdentifierTP, IntegerTP, FloatTP, StringTP, RegexTP,
		RightParentThesesTP, RightSquareBracketTP, RightBraceTP:
		return false
	case KeywordTP:
		return prev.keyword == nil || prev.keyword.Category != lexicon.ValueCategory
	}
	return true
}

func (tokenizer *Tokenizer) tokenRegex() *Token {
	start := tokenizer.mark()
	tokenizer.currentPos++
	var pattern strings.Builder
	inClass := false
	for {
		c := tokenizer.peek(0)
		if !tokenizer.hasRemainCharacters() || c == '\n' {
			tokenizer.makeError(ErrUnterminatedRegex, start)
			return nil
		}
		tokenizer.currentPos++
		if c == '\\' && tokenizer.hasRemainCharacters() && tokenizer.peek(0) != '\n' {
			pattern.WriteRune(c)
			pattern.WriteRune(tokenizer.peek(0))
			tokenizer.currentPos++
			continue
		}
		if c == '[' {
			inClass = true
		} else if c == ']' {
			inClass = false
		} else if c == '/' && !inClass {
			break
		}
		pattern.WriteRune(c)
	}
	flagsStart := tokenizer.currentPos
	for tokenizer.hasRemainCharacters() && util.IsLetter(tokenizer.peek(0)) {
		tokenizer.currentPos++
	}
	token := tokenizer.newToken(RegexTP, start)
	token.value = pattern.String()
	token.flags = string(tokenizer.source[flagsStart:tokenizer.currentPos])
	return token
}

func (tokenizer *Tokenizer) tokenString(quote rune) *Token {
	// Looking forward through the line to find the closing quote.
	start := tokenizer.mark()
	tokenizer.currentPos++
	var value strings.Builder
	for {
		if !tokenizer.hasRemainCharacters() || tokenizer.peek(0) == '\n' {
			tokenizer.makeError(ErrUnterminatedString, start)
			token := tokenizer.newToken(StringTP, start)
			token.value = value.String()
			return token
		}
		c := tokenizer.source[tokenizer.currentPos]
		if c == quote {
			tokenizer.currentPos++
			break
		}
		if c == '\\' {
			tokenizer.tokenEscape(&value)
			continue
		}
		value.WriteRune(c)
		tokenizer.currentPos++
	}
	token := tokenizer.newToken(StringTP, start)
	token.value = value.String()
	return token
}

var simpleEscapes = map[rune]rune{
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'0':  0,
	'\\': '\\',
	'"':  '"',
	'\'': '\'',
}

// tokenEscape decodes one escape sequence at currentPos into value. An invalid escape is
// reported and kept literally.
func (tokenizer *Tokenizer) tokenEscape(value *strings.Builder) {
	start := tokenizer.mark()
	tokenizer.currentPos++
	c := tokenizer.peek(0)
	if r, ok := simpleEscapes[c]; ok && tokenizer.hasRemainCharacters() {
		value.WriteRune(r)
		tokenizer.currentPos++
		return
	}
	if c == 'u' {
		code, digits := 0, 0
		for digits < 4 && util.IsHexNumber(tokenizer.peek(1+digits)) {
			code = code*16 + hexValue(tokenizer.peek(1+digits))
			digits++
		}
		if digits == 4 {
			tokenizer.currentPos += 5
			value.WriteRune(rune(code))
			return
		}
	}
	if c == '\n' || !tokenizer.hasRemainCharacters() {
		value.WriteRune('\\')
		tokenizer.makeError(ErrInvalidEscape, start, `\`)
		return
	}
	tokenizer.currentPos++
	value.WriteRune('\\')
	value.WriteRune(c)
	tokenizer.makeError(ErrInvalidEscape, start, `\`+string(c))
}

func hexValue(c rune) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	}
	return int(c-'A') + 10
}

func (tokenizer *Tokenizer) tokenNumber() *Token {
	// Look forward to find a continuous number.
	start := tokenizer.mark()
	tp := IntegerTP
	valid := true
	if tokenizer.peek(0) == '0' && (tokenizer.peek(1) == 'x' || tokenizer.peek(1) == 'X') {
		tokenizer.currentPos += 2
		digits := tokenizer.scanDigits(util.IsHexNumber)
		valid = digits > 0
	} else {
		tokenizer.scanDigits(util.IsNumber)
		// "1..5" is a range and "1.abs" a member access, so a fraction needs a digit.
		if tokenizer.peek(0) == '.' && util.IsNumber(tokenizer.peek(1)) {
			tp = FloatTP
			tokenizer.currentPos++
			tokenizer.scanDigits(util.IsNumber)
		}
		if c := tokenizer.peek(0); c == 'e' || c == 'E' {
			next := tokenizer.peek(1)
			if util.IsNumber(next) || ((next == '+' || next == '-') && util.IsNumber(tokenizer.peek(2))) {
				tp = FloatTP
				tokenizer.currentPos += 2
				tokenizer.scanDigits(util.IsNumber)
			}
		}
	}
	// A letter glued to the digits makes the whole run malformed.
	for tokenizer.hasRemainCharacters() && util.IsLetterOrUnderscoreOrNumber(tokenizer.peek(0)) {
		tokenizer.currentPos++
		valid = false
	}
	token := tokenizer.newToken(tp, start)
	if !valid || strings.HasSuffix(token.content, "_") || strings.Contains(token.content, "__") ||
		strings.Contains(token.content, "_.") || strings.Contains(token.content, "._") {
		tokenizer.makeError(ErrInvalidNumber, start, token.content)
		return nil
	}
	token.value = strings.Replace(token.content, "_", "", -1)
	return token
}

func (tokenizer *Tokenizer) scanDigits(accept func(rune) bool) int {
	digits := 0
	for tokenizer.hasRemainCharacters() {
		c := tokenizer.peek(0)
		if accept(c) {
			digits++
		} else if !util.IsUnderScore(c) {
			break
		}
		tokenizer.currentPos++
	}
	return digits
}

func (tokenizer *Tokenizer) toKeywordOrIdentifier() *Token {
	// Look forward to find a continuous word.
	start := tokenizer.mark()
	for tokenizer.hasRemainCharacters() && util.IsLetterOrUnderscoreOrNumber(tokenizer.peek(0)) {
		tokenizer.currentPos++
	}
	word := string(tokenizer.source[start.Offset:tokenizer.currentPos])
	if token, isKeyWord := tokenizer.tryTransformToKeyWord(word, start); isKeyWord {
		return token
	}
	return tokenizer.tryTransformToIdentifier(word, start)
}

func (tokenizer *Tokenizer) tryTransformToKeyWord(word string, start Position) (*Token, bool) {
	entry, isKeyWord := tokenizer.lexicon.KeywordOf(word)
	if !isKeyWord {
		return nil, false
	}
	token := tokenizer.newToken(KeywordTP, start)
	token.keyword = entry
	return token, true
}

// tryTransformToIdentifier attaches every lexicon reading of word. Words the lexicon does
// not know are still valid identifiers.
func (tokenizer *Tokenizer) tryTransformToIdentifier(word string, start Position) *Token {
	token := tokenizer.newToken(IdentifierTP, start)
	annotation := &Annotation{}
	if forms, err := tokenizer.lexicon.ResolveNoun(word); err == nil {
		annotation.Nouns = forms
	}
	if forms, err := tokenizer.lexicon.ResolveVerb(word); err == nil {
		annotation.Verbs = forms
	}
	if forms, err := tokenizer.lexicon.ResolveType(word); err == nil {
		annotation.Types = forms
	}
	if len(annotation.Nouns)+len(annotation.Verbs)+len(annotation.Types) > 0 {
		token.annotation = annotation
	}
	return token
}

func (tokenizer *Tokenizer) makeError(code Code, start Position, args ...interface{}) {
	span := Span{File: tokenizer.currentFile, Start: start, End: tokenizer.mark()}
	if span.End.Line != start.Line {
		span.End = start
		span.End.Column++
		span.End.Offset++
	}
	tokenizer.diagnostics = append(tokenizer.diagnostics, newDiagnostic(code, span, args...))
}

func (tokenizer *Tokenizer) Reset() {
	tokenizer.currentPos, tokenizer.currentLine, tokenizer.lineStart = 0, 1, 0
	tokenizer.source = nil
	tokenizer.tokens = nil
	tokenizer.diagnostics = nil
}

package internal

import (
	"errors"
)

// Parser is a recursive descent parser over the token list of one file. A statement that
// fails to parse is recorded as a diagnostic and the parser skips ahead to the next
// statement boundary, so one call reports every independent syntax error.
type Parser struct {
	currentTokenPos int
	currentTokens   []*Token
	currentFile     string
	diagnostics     []*Diagnostic
}

func NewParser(file string) *Parser {
	return &Parser{currentFile: file}
}

// Parse parses tokens of file. The program is never nil; statements that failed to parse
// are missing from it and explained by the diagnostics.
func Parse(file string, tokens []*Token) (*ProgramAst, []*Diagnostic) {
	return NewParser(file).Parse(tokens)
}

func (parser *Parser) Parse(tokens []*Token) (*ProgramAst, []*Diagnostic) {
	parser.reset()
	parser.currentTokens = tokens
	program := &ProgramAst{File: parser.currentFile}
	program.Statements, _ = parser.parseStatements(false)
	if len(tokens) > 0 {
		program.Location = tokens[0].Span().Join(tokens[len(tokens)-1].Span())
	} else {
		program.Location = Span{File: parser.currentFile, Start: Position{Line: 1, Column: 1},
			End: Position{Line: 1, Column: 1}}
	}
	return program, parser.diagnostics
}

func (parser *Parser) reset() {
	parser.currentTokenPos = 0
	parser.currentTokens = nil
	parser.diagnostics = nil
}

// parseStatements parses statements until the end of input or, when insideBlock is set, an
// unmatched '}' which is left for the caller. closed reports whether the '}' was seen.
func (parser *Parser) parseStatements(insideBlock bool) (stms []StatementAst, closed bool) {
	for parser.hasRemainTokens() {
		token := parser.getCurrentToken()
		switch token.tp {
		case SemiColonTP:
			parser.stepForward()
			continue
		case RightBraceTP:
			if insideBlock {
				return stms, true
			}
			parser.report(parser.makeError(ErrUnexpectedToken, token, describeToken(token)))
			parser.stepForward()
			continue
		}
		start := parser.currentTokenPos
		stm, err := parser.parseStatement()
		if err != nil {
			parser.report(err)
			parser.synchronize(start)
			continue
		}
		stms = append(stms, stm)
		if !parser.atStatementEnd() {
			token := parser.getCurrentToken()
			parser.report(parser.makeError(ErrUnexpectedToken, token, describeToken(token)))
			parser.synchronize(parser.currentTokenPos)
		}
	}
	return stms, false
}

// synchronize discards tokens up to the next statement boundary: a ';' (consumed), a '}'
// closing the enclosing block, or a token that can start a statement on a later line.
// At least one token is consumed when the failed statement consumed none.
func (parser *Parser) synchronize(start int) {
	if parser.currentTokenPos == start && parser.hasRemainTokens() {
		parser.skipToken()
	}
	depth := 0
	for parser.hasRemainTokens() {
		token := parser.getCurrentToken()
		switch {
		case token.tp == SemiColonTP && depth == 0:
			parser.stepForward()
			return
		case token.tp == RightBraceTP:
			if depth == 0 {
				return
			}
			depth--
		case token.tp == LeftBraceTP:
			depth++
		case depth == 0 && isStatementKeyword(token):
			return
		case depth == 0 && parser.onNewLine() && canStartStatement(token):
			return
		}
		parser.stepForward()
	}
}

// skipToken steps over one token, or over a whole balanced {...} group.
func (parser *Parser) skipToken() {
	if parser.getCurrentToken().tp != LeftBraceTP {
		parser.stepForward()
		return
	}
	depth := 0
	for parser.hasRemainTokens() {
		switch parser.getCurrentToken().tp {
		case LeftBraceTP:
			depth++
		case RightBraceTP:
			depth--
		}
		parser.stepForward()
		if depth == 0 {
			return
		}
	}
}

var statementKeywords = map[string]bool{
	"si": true, "dum": true, "custodi": true, "elige": true, "tempta": true, "iace": true,
	"adfirma": true, "redde": true, "rumpe": true, "perge": true, "incipit": true,
	"incipiet": true, "probandum": true, "proba": true, "fixum": true, "varia": true,
	"functio": true, "genus": true, "exporta": true, "futura": true, "cursor": true,
	"externa": true,
}

func isStatementKeyword(token *Token) bool {
	return token.tp == KeywordTP && statementKeywords[token.content]
}

func canStartStatement(token *Token) bool {
	switch token.tp {
	case IdentifierTP, IntegerTP, FloatTP, StringTP, RegexTP, LeftParentThesesTP,
		LeftSquareBracketTP, LeftBraceTP, MinusTP, BooleanNegativeTP:
		return true
	case KeywordTP:
		switch token.content {
		case "ex", "de", "verum", "falsum", "nihil", "ego", "novum", "non", "cede":
			return true
		}
		return statementKeywords[token.content]
	}
	return false
}

// {
//    statements
// }
func (parser *Parser) parseBlock() (*BlockAst, error) {
	open, match := parser.expectToken(LeftBraceTP, true)
	if !match {
		return nil, parser.errorExpected(ErrExpectedBlock)
	}
	block := &BlockAst{}
	var closed bool
	block.Statements, closed = parser.parseStatements(true)
	if !closed {
		block.Unclosed = true
		block.Location = open.Span().Join(parser.previousToken().Span())
		parser.report(parser.makeError(ErrExpectedClosingBrace, nil, open.line))
		return block, nil
	}
	closing := parser.getCurrentToken()
	parser.stepForward()
	block.Location = open.Span().Join(closing.Span())
	return block, nil
}

func (parser *Parser) stepForward() {
	parser.currentTokenPos++
}

func (parser *Parser) hasRemainTokens() bool {
	return parser.currentTokenPos < len(parser.currentTokens)
}

// getCurrentToken returns nil at the end of input.
func (parser *Parser) getCurrentToken() *Token {
	if !parser.hasRemainTokens() {
		return nil
	}
	return parser.currentTokens[parser.currentTokenPos]
}

func (parser *Parser) peekToken(ahead int) *Token {
	if parser.currentTokenPos+ahead >= len(parser.currentTokens) {
		return nil
	}
	return parser.currentTokens[parser.currentTokenPos+ahead]
}

func (parser *Parser) previousToken() *Token {
	if parser.currentTokenPos == 0 || len(parser.currentTokens) == 0 {
		return nil
	}
	if parser.currentTokenPos > len(parser.currentTokens) {
		return parser.currentTokens[len(parser.currentTokens)-1]
	}
	return parser.currentTokens[parser.currentTokenPos-1]
}

// onNewLine reports whether the current token starts a line after the previous token.
func (parser *Parser) onNewLine() bool {
	current, previous := parser.getCurrentToken(), parser.previousToken()
	return current != nil && previous != nil && current.line > previous.line
}

// atStatementEnd reports whether the current statement may end here.
func (parser *Parser) atStatementEnd() bool {
	token := parser.getCurrentToken()
	return token == nil || token.tp == SemiColonTP || token.tp == RightBraceTP || parser.onNewLine()
}

func (parser *Parser) expectTokens(expectedTokenTPs ...TokenType) bool {
	for _, tokenType := range expectedTokenTPs {
		_, ok := parser.expectToken(tokenType, true)
		if !ok {
			return false
		}
	}
	return true
}

func (parser *Parser) expectToken(expectedTokenTp TokenType, walk bool) (*Token, bool) {
	token := parser.getCurrentToken()
	if token == nil || token.tp != expectedTokenTp {
		return nil, false
	}
	if walk {
		parser.stepForward()
	}
	return token, true
}

func (parser *Parser) expectKeyword(word string, walk bool) (*Token, bool) {
	token := parser.getCurrentToken()
	if token == nil || !token.isKeyword(word) {
		return nil, false
	}
	if walk {
		parser.stepForward()
	}
	return token, true
}

// spanFrom covers start through the last consumed token.
func (parser *Parser) spanFrom(start *Token) Span {
	end := parser.previousToken()
	if end == nil || end.offset < start.offset {
		return start.Span()
	}
	return start.Span().Join(end.Span())
}

func (parser *Parser) eofSpan() Span {
	if len(parser.currentTokens) == 0 {
		return Span{File: parser.currentFile, Start: Position{Line: 1, Column: 1}, End: Position{Line: 1, Column: 1}}
	}
	last := parser.currentTokens[len(parser.currentTokens)-1].Span()
	return Span{File: last.File, Start: last.End, End: last.End}
}

// makeError builds a diagnostic located at token, or at the end of input when token is nil.
func (parser *Parser) makeError(code Code, token *Token, args ...interface{}) *Diagnostic {
	span := parser.eofSpan()
	if token != nil {
		span = token.Span()
	}
	return newDiagnostic(code, span, args...)
}

// errorExpected reports code at the current token, or an end of input error naming what
// was expected.
func (parser *Parser) errorExpected(code Code) *Diagnostic {
	token := parser.getCurrentToken()
	if token == nil {
		return parser.makeError(ErrUnexpectedEndOfInput, nil, expectedByCode[code])
	}
	return parser.makeError(code, token, describeToken(token))
}

// errorExpectedToken reports a missing token described by what.
func (parser *Parser) errorExpectedToken(what string) *Diagnostic {
	token := parser.getCurrentToken()
	if token == nil {
		return parser.makeError(ErrUnexpectedEndOfInput, nil, what)
	}
	return parser.makeError(ErrExpectedToken, token, what, describeToken(token))
}

var expectedByCode = map[Code]string{
	ErrExpectedExpression:  "an expression",
	ErrExpectedIdentifier:  "a name",
	ErrExpectedType:        "a type name",
	ErrExpectedBlock:       "'{'",
	ErrExpectedLoopBinding: "'pro'",
}

func (parser *Parser) report(err error) {
	var diagnostic *Diagnostic
	if !errors.As(err, &diagnostic) {
		diagnostic = parser.makeError(ErrUnexpectedToken, parser.getCurrentToken(), err.Error())
	}
	parser.diagnostics = append(parser.diagnostics, diagnostic)
}

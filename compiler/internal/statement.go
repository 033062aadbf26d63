package internal

// parseStatement parses one statement starting at the current token.
func (parser *Parser) parseStatement() (StatementAst, error) {
	token := parser.getCurrentToken()
	if token.tp == LeftBraceTP {
		return parser.parseBlock()
	}
	if token.tp != KeywordTP {
		return parser.parseExpressionStatement()
	}
	switch token.content {
	case "fixum", "varia":
		return parser.parseVarDeclareStatement(false)
	case "functio", "futura", "cursor", "externa":
		return parser.parseFuncDeclaration(false)
	case "genus":
		return parser.parseGenusDeclaration(false)
	case "exporta":
		return parser.parseExportStatement()
	case "si":
		return parser.parseIfStatement()
	case "dum":
		return parser.parseWhileStatement()
	case "ex":
		if next := parser.peekToken(2); next != nil && next.isKeyword("importa") {
			return parser.parseImportStatement()
		}
		return parser.parseForStatement(ValuesIteration)
	case "de":
		return parser.parseForStatement(KeysIteration)
	case "custodi":
		return parser.parseGuardStatement()
	case "elige":
		return parser.parseSwitchStatement()
	case "tempta":
		return parser.parseTryStatement()
	case "iace":
		return parser.parseThrowStatement()
	case "adfirma":
		return parser.parseAssertStatement()
	case "redde":
		return parser.parseReturnStatement()
	case "rumpe":
		parser.stepForward()
		stm := &BreakStatementAst{}
		stm.Location = token.Span()
		return stm, nil
	case "perge":
		parser.stepForward()
		stm := &ContinueStatementAst{}
		stm.Location = token.Span()
		return stm, nil
	case "probandum":
		return parser.parseTestSuite()
	case "proba":
		return parser.parseTestCase()
	case "incipit", "incipiet":
		return parser.parseEntryPoint()
	case "sin", "secus", "casu", "ceterum", "cape", "demum", "praepara", "pro", "ubi",
		"importa", "ut", "per", "in":
		return nil, parser.makeError(ErrMisplacedClause, token, token.content)
	}
	return parser.parseExpressionStatement()
}

func (parser *Parser) parseExpressionStatement() (StatementAst, error) {
	start := parser.getCurrentToken()
	expr, err := parser.parseExpression()
	if err != nil {
		return nil, err
	}
	stm := &ExpressionStatementAst{Expression: expr}
	stm.Location = parser.spanFrom(start)
	return stm, nil
}

// looksLikeTypedBinding reports whether the tokens at the current position are a type
// followed by a name: "textus nomen", "lista<numerus> xs", "textus? nomen".
func (parser *Parser) looksLikeTypedBinding() bool {
	token, next := parser.getCurrentToken(), parser.peekToken(1)
	if token == nil || token.tp != IdentifierTP || next == nil || next.line != token.line {
		return false
	}
	switch next.tp {
	case IdentifierTP, LessTP:
		return true
	case QuestionTP:
		after := parser.peekToken(2)
		return after != nil && after.tp == IdentifierTP && after.line == token.line
	}
	return false
}

// Type: name ['<' Type {',' Type} '>'] ['?']
func (parser *Parser) parseType() (*TypeAst, error) {
	start, match := parser.expectToken(IdentifierTP, true)
	if !match {
		return nil, parser.errorExpected(ErrExpectedType)
	}
	tp := &TypeAst{Name: start.content}
	if _, match := parser.expectToken(LessTP, true); match {
		for {
			param, err := parser.parseType()
			if err != nil {
				return nil, err
			}
			tp.Params = append(tp.Params, param)
			if _, match := parser.expectToken(CommaTP, true); !match {
				break
			}
		}
		if _, match := parser.expectToken(GreaterTP, true); !match {
			return nil, parser.errorExpectedToken("'>'")
		}
	}
	if _, match := parser.expectToken(QuestionTP, true); match {
		tp.Nullable = true
	}
	tp.Location = parser.spanFrom(start)
	return tp, nil
}

func (parser *Parser) parseName() (*Token, error) {
	token, match := parser.expectToken(IdentifierTP, true)
	if !match {
		return nil, parser.errorExpected(ErrExpectedIdentifier)
	}
	return token, nil
}

// fixum [Type] name = expr
// varia [Type] name [= expr]
func (parser *Parser) parseVarDeclareStatement(exported bool) (*VarDeclareAst, error) {
	start := parser.getCurrentToken()
	parser.stepForward()
	return parser.parseBinding(start, start.content == "varia", exported)
}

// parseBinding parses "[Type] name [= expr]" after an optional declaration keyword.
func (parser *Parser) parseBinding(start *Token, mutable bool, exported bool) (*VarDeclareAst, error) {
	stm := &VarDeclareAst{Mutable: mutable, Exported: exported}
	if parser.looksLikeTypedBinding() {
		tp, err := parser.parseType()
		if err != nil {
			return nil, err
		}
		stm.VarType = tp
	}
	name, err := parser.parseName()
	if err != nil {
		return nil, err
	}
	stm.VarName, stm.NameSpan = name.content, name.Span()
	if _, match := parser.expectToken(AssignTP, true); match {
		stm.Value, err = parser.parseExpression()
		if err != nil {
			return nil, err
		}
	} else if !mutable {
		parser.report(parser.makeError(ErrMissingInitializer, name, name.content))
	}
	stm.Location = parser.spanFrom(start)
	return stm, nil
}

// [exporta] [futura] [cursor] [externa] functio name(params) [-> Type | verb [Type]] [block]
func (parser *Parser) parseFuncDeclaration(exported bool) (*FuncDeclareAst, error) {
	start := parser.getCurrentToken()
	stm := &FuncDeclareAst{Exported: exported}
	for {
		token := parser.getCurrentToken()
		if token == nil || token.tp != KeywordTP {
			break
		}
		switch token.content {
		case "futura":
			stm.Futura = true
		case "cursor":
			stm.Cursor = true
		case "externa":
			stm.External = true
		case "functio":
		default:
			return nil, parser.makeError(ErrExpectedFunction, token, start.content, describeToken(token))
		}
		if token.content == "functio" {
			break
		}
		parser.stepForward()
	}
	if _, match := parser.expectKeyword("functio", true); !match {
		token := parser.getCurrentToken()
		if token == nil {
			return nil, parser.makeError(ErrUnexpectedEndOfInput, nil, "'functio'")
		}
		return nil, parser.makeError(ErrExpectedFunction, token, start.content, describeToken(token))
	}
	name, err := parser.parseName()
	if err != nil {
		return nil, err
	}
	stm.FuncName, stm.NameSpan = name.content, name.Span()
	if stm.Params, err = parser.parseFuncParamList(); err != nil {
		return nil, err
	}
	if err = parser.parseFuncReturnType(stm); err != nil {
		return nil, err
	}
	stm.Async = stm.Futura || (stm.ReturnVerb != nil && stm.ReturnVerb.Async())
	stm.Generator = stm.Cursor || (stm.ReturnVerb != nil && stm.ReturnVerb.Generator())
	if _, match := parser.expectToken(LeftBraceTP, false); match {
		if stm.Body, err = parser.parseBlock(); err != nil {
			return nil, err
		}
	}
	stm.Location = parser.spanFrom(start)
	return stm, nil
}

// "-> Type", or a return verb of fio with an optional type on the same line.
func (parser *Parser) parseFuncReturnType(stm *FuncDeclareAst) error {
	if _, match := parser.expectToken(ArrowTP, true); match {
		tp, err := parser.parseType()
		if err != nil {
			return err
		}
		stm.ReturnTP = tp
		return nil
	}
	token := parser.getCurrentToken()
	if token == nil || token.tp != IdentifierTP {
		return nil
	}
	verb, ok := token.annotation.ReturnVerb()
	if !ok {
		return nil
	}
	parser.stepForward()
	stm.ReturnVerb, stm.ReturnVerbSpan = &verb, token.Span()
	if next, match := parser.expectToken(IdentifierTP, false); match && next.line == token.line {
		tp, err := parser.parseType()
		if err != nil {
			return err
		}
		stm.ReturnTP = tp
	}
	return nil
}

// (param, param, ...)
func (parser *Parser) parseFuncParamList() (params []*FuncParamAst, err error) {
	open, match := parser.expectToken(LeftParentThesesTP, true)
	if !match {
		return nil, parser.errorExpectedToken("'('")
	}
	for parser.hasRemainTokens() {
		if _, match := parser.expectToken(RightParentThesesTP, false); match {
			break
		}
		param, err := parser.parseFuncParam()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		if _, match := parser.expectToken(CommaTP, true); !match {
			break
		}
	}
	if _, match := parser.expectToken(RightParentThesesTP, true); !match {
		return nil, parser.errorClosing(ErrExpectedClosingParen, open)
	}
	return params, nil
}

// [de|in] [Type] name[?] [= default]
func (parser *Parser) parseFuncParam() (*FuncParamAst, error) {
	start := parser.getCurrentToken()
	param := &FuncParamAst{}
	if _, match := parser.expectKeyword("de", true); match {
		param.Ownership = BorrowedParam
	} else if _, match := parser.expectKeyword("in", true); match {
		param.Ownership = MutableParam
	}
	if parser.looksLikeTypedBinding() {
		tp, err := parser.parseType()
		if err != nil {
			return nil, err
		}
		param.ParamTP = tp
	}
	name, err := parser.parseName()
	if err != nil {
		return nil, err
	}
	param.ParamName = name.content
	if _, match := parser.expectToken(QuestionTP, true); match {
		param.Optional = true
	}
	if _, match := parser.expectToken(AssignTP, true); match {
		if param.Default, err = parser.parseExpression(); err != nil {
			return nil, err
		}
	}
	param.Location = parser.spanFrom(start)
	return param, nil
}

// genus Name { [fixum|varia] [Type] field [= expr] ... functio method(...) {...} ... }
func (parser *Parser) parseGenusDeclaration(exported bool) (*GenusDeclareAst, error) {
	start := parser.getCurrentToken()
	parser.stepForward()
	name, err := parser.parseName()
	if err != nil {
		return nil, err
	}
	stm := &GenusDeclareAst{GenusName: name.content, NameSpan: name.Span(), Exported: exported}
	open, match := parser.expectToken(LeftBraceTP, true)
	if !match {
		return nil, parser.errorExpected(ErrExpectedBlock)
	}
	for {
		token := parser.getCurrentToken()
		if token == nil {
			parser.report(parser.makeError(ErrExpectedClosingBrace, nil, open.line))
			break
		}
		if token.tp == RightBraceTP {
			parser.stepForward()
			break
		}
		if token.tp == SemiColonTP || token.tp == CommaTP {
			parser.stepForward()
			continue
		}
		memberStart := parser.currentTokenPos
		if err := parser.parseGenusMember(stm); err != nil {
			parser.report(err)
			parser.synchronize(memberStart)
		}
	}
	stm.Location = parser.spanFrom(start)
	return stm, nil
}

func (parser *Parser) parseGenusMember(stm *GenusDeclareAst) error {
	token := parser.getCurrentToken()
	if token.tp == KeywordTP {
		switch token.content {
		case "functio", "futura", "cursor", "externa":
			method, err := parser.parseFuncDeclaration(false)
			if err != nil {
				return err
			}
			stm.Methods = append(stm.Methods, method)
			return nil
		case "fixum", "varia":
			field, err := parser.parseVarDeclareStatement(false)
			if err != nil {
				return err
			}
			stm.Fields = append(stm.Fields, field)
			return nil
		}
		return parser.makeError(ErrUnexpectedToken, token, describeToken(token))
	}
	field, err := parser.parseBinding(token, true, false)
	if err != nil {
		return err
	}
	stm.Fields = append(stm.Fields, field)
	return nil
}

// exporta declaration
func (parser *Parser) parseExportStatement() (StatementAst, error) {
	start := parser.getCurrentToken()
	parser.stepForward()
	token := parser.getCurrentToken()
	if token != nil && token.tp == KeywordTP {
		var stm StatementAst
		var err error
		switch token.content {
		case "fixum", "varia":
			stm, err = parser.parseVarDeclareStatement(true)
		case "functio", "futura", "cursor", "externa":
			stm, err = parser.parseFuncDeclaration(true)
		case "genus":
			stm, err = parser.parseGenusDeclaration(true)
		default:
			return nil, parser.errorExpectedToken("a declaration after 'exporta'")
		}
		if err != nil {
			return nil, err
		}
		extendSpan(stm, start.Span())
		return stm, nil
	}
	return nil, parser.errorExpectedToken("a declaration after 'exporta'")
}

func extendSpan(stm StatementAst, start Span) {
	switch n := stm.(type) {
	case *VarDeclareAst:
		n.Location = start.Join(n.Location)
	case *FuncDeclareAst:
		n.Location = start.Join(n.Location)
	case *GenusDeclareAst:
		n.Location = start.Join(n.Location)
	}
}

// si cond { } [sin cond { }]* [secus [si ...] { }]
func (parser *Parser) parseIfStatement() (*IfStatementAst, error) {
	start := parser.getCurrentToken()
	parser.stepForward()
	stm := &IfStatementAst{}
	var err error
	if stm.Condition, err = parser.parseExpression(); err != nil {
		return nil, err
	}
	if stm.Then, err = parser.parseBlock(); err != nil {
		return nil, err
	}
	if _, match := parser.expectKeyword("sin", false); match {
		if stm.Else, err = parser.parseIfStatement(); err != nil {
			return nil, err
		}
	} else if _, match := parser.expectKeyword("secus", true); match {
		if _, match := parser.expectKeyword("si", false); match {
			stm.Else, err = parser.parseIfStatement()
		} else {
			stm.Else, err = parser.parseBlock()
		}
		if err != nil {
			return nil, err
		}
	}
	stm.Location = parser.spanFrom(start)
	return stm, nil
}

// dum cond { }
func (parser *Parser) parseWhileStatement() (*WhileStatementAst, error) {
	start := parser.getCurrentToken()
	parser.stepForward()
	stm := &WhileStatementAst{}
	var err error
	if stm.Condition, err = parser.parseExpression(); err != nil {
		return nil, err
	}
	if stm.Body, err = parser.parseBlock(); err != nil {
		return nil, err
	}
	stm.Location = parser.spanFrom(start)
	return stm, nil
}

// ex iterable pro name [ubi filter] { }
// de iterable pro name [ubi filter] { }
func (parser *Parser) parseForStatement(kind IterationKind) (*ForStatementAst, error) {
	start := parser.getCurrentToken()
	parser.stepForward()
	stm := &ForStatementAst{Iteration: kind}
	var err error
	if stm.Iterable, err = parser.parseExpression(); err != nil {
		return nil, err
	}
	if _, match := parser.expectKeyword("pro", true); !match {
		return nil, parser.errorExpected(ErrExpectedLoopBinding)
	}
	name, err := parser.parseName()
	if err != nil {
		return nil, err
	}
	stm.VarName, stm.NameSpan = name.content, name.Span()
	if _, match := parser.expectKeyword("ubi", true); match {
		if stm.Filter, err = parser.parseExpression(); err != nil {
			return nil, err
		}
	}
	if stm.Body, err = parser.parseBlock(); err != nil {
		return nil, err
	}
	stm.Location = parser.spanFrom(start)
	return stm, nil
}

// custodi cond secus { }
func (parser *Parser) parseGuardStatement() (*GuardStatementAst, error) {
	start := parser.getCurrentToken()
	parser.stepForward()
	stm := &GuardStatementAst{}
	var err error
	if stm.Condition, err = parser.parseExpression(); err != nil {
		return nil, err
	}
	if _, match := parser.expectKeyword("secus", true); !match {
		return nil, parser.errorExpectedToken("'secus'")
	}
	if stm.Else, err = parser.parseBlock(); err != nil {
		return nil, err
	}
	stm.Location = parser.spanFrom(start)
	return stm, nil
}

// elige expr { casu v, v { } ... [ceterum { }] }
func (parser *Parser) parseSwitchStatement() (*SwitchStatementAst, error) {
	start := parser.getCurrentToken()
	parser.stepForward()
	stm := &SwitchStatementAst{}
	var err error
	if stm.Subject, err = parser.parseExpression(); err != nil {
		return nil, err
	}
	open, match := parser.expectToken(LeftBraceTP, true)
	if !match {
		return nil, parser.errorExpected(ErrExpectedBlock)
	}
	for {
		token := parser.getCurrentToken()
		if token == nil {
			parser.report(parser.makeError(ErrExpectedClosingBrace, nil, open.line))
			break
		}
		if token.tp == RightBraceTP {
			parser.stepForward()
			break
		}
		if token.tp == SemiColonTP {
			parser.stepForward()
			continue
		}
		clauseStart := parser.currentTokenPos
		if err := parser.parseSwitchClause(stm); err != nil {
			parser.report(err)
			parser.synchronize(clauseStart)
		}
	}
	stm.Location = parser.spanFrom(start)
	return stm, nil
}

func (parser *Parser) parseSwitchClause(stm *SwitchStatementAst) error {
	token := parser.getCurrentToken()
	var err error
	switch {
	case token.isKeyword("casu"):
		parser.stepForward()
		clause := &CaseClauseAst{}
		if clause.Values, err = parser.parseExpressions(); err != nil {
			return err
		}
		if clause.Body, err = parser.parseBlock(); err != nil {
			return err
		}
		clause.Location = parser.spanFrom(token)
		stm.Cases = append(stm.Cases, clause)
	case token.isKeyword("ceterum"):
		parser.stepForward()
		if stm.Default, err = parser.parseBlock(); err != nil {
			return err
		}
	default:
		return parser.errorExpectedToken("'casu' or 'ceterum'")
	}
	return nil
}

// tempta { } [cape [name] { }] [demum { }]
func (parser *Parser) parseTryStatement() (*TryStatementAst, error) {
	start := parser.getCurrentToken()
	parser.stepForward()
	stm := &TryStatementAst{}
	var err error
	if stm.Body, err = parser.parseBlock(); err != nil {
		return nil, err
	}
	if _, match := parser.expectKeyword("cape", true); match {
		if name, match := parser.expectToken(IdentifierTP, true); match {
			stm.CatchName, stm.CatchSpan = name.content, name.Span()
		}
		if stm.Catch, err = parser.parseBlock(); err != nil {
			return nil, err
		}
	}
	if _, match := parser.expectKeyword("demum", true); match {
		if stm.Finally, err = parser.parseBlock(); err != nil {
			return nil, err
		}
	}
	stm.Location = parser.spanFrom(start)
	return stm, nil
}

// iace expr
func (parser *Parser) parseThrowStatement() (*ThrowStatementAst, error) {
	start := parser.getCurrentToken()
	parser.stepForward()
	stm := &ThrowStatementAst{}
	var err error
	if stm.Value, err = parser.parseExpression(); err != nil {
		return nil, err
	}
	stm.Location = parser.spanFrom(start)
	return stm, nil
}

// adfirma cond [, message]
func (parser *Parser) parseAssertStatement() (*AssertStatementAst, error) {
	start := parser.getCurrentToken()
	parser.stepForward()
	stm := &AssertStatementAst{}
	var err error
	if stm.Condition, err = parser.parseExpression(); err != nil {
		return nil, err
	}
	if _, match := parser.expectToken(CommaTP, true); match {
		if stm.Message, err = parser.parseExpression(); err != nil {
			return nil, err
		}
	}
	stm.Location = parser.spanFrom(start)
	return stm, nil
}

// redde [expr]
func (parser *Parser) parseReturnStatement() (*ReturnStatementAst, error) {
	start := parser.getCurrentToken()
	parser.stepForward()
	stm := &ReturnStatementAst{}
	if !parser.atStatementEnd() {
		var err error
		if stm.Value, err = parser.parseExpression(); err != nil {
			return nil, err
		}
	}
	stm.Location = parser.spanFrom(start)
	return stm, nil
}

// ex "path" importa name [ut alias], ...
func (parser *Parser) parseImportStatement() (*ImportStatementAst, error) {
	start := parser.getCurrentToken()
	parser.stepForward()
	source, match := parser.expectToken(StringTP, true)
	if !match {
		return nil, parser.makeError(ErrInvalidImportPath, parser.getCurrentToken())
	}
	stm := &ImportStatementAst{Source: source.value, SourceSpan: source.Span()}
	parser.stepForward() // importa
	for {
		name, err := parser.parseName()
		if err != nil {
			return nil, err
		}
		spec := &ImportSpecifierAst{Name: name.content}
		if _, match := parser.expectKeyword("ut", true); match {
			alias, err := parser.parseName()
			if err != nil {
				return nil, err
			}
			spec.Alias = alias.content
		}
		spec.Location = parser.spanFrom(name)
		stm.Specifiers = append(stm.Specifiers, spec)
		if _, match := parser.expectToken(CommaTP, true); !match {
			break
		}
	}
	stm.Location = parser.spanFrom(start)
	return stm, nil
}

// probandum "suite" { [praepara { }] proba "case" { } ... }
func (parser *Parser) parseTestSuite() (*TestSuiteAst, error) {
	start := parser.getCurrentToken()
	parser.stepForward()
	name, match := parser.expectToken(StringTP, true)
	if !match {
		return nil, parser.errorExpectedToken("a suite name string")
	}
	stm := &TestSuiteAst{Name: name.value}
	open, match := parser.expectToken(LeftBraceTP, true)
	if !match {
		return nil, parser.errorExpected(ErrExpectedBlock)
	}
	for {
		token := parser.getCurrentToken()
		if token == nil {
			parser.report(parser.makeError(ErrExpectedClosingBrace, nil, open.line))
			break
		}
		if token.tp == RightBraceTP {
			parser.stepForward()
			break
		}
		if token.tp == SemiColonTP {
			parser.stepForward()
			continue
		}
		memberStart := parser.currentTokenPos
		var err error
		switch {
		case token.isKeyword("praepara"):
			parser.stepForward()
			stm.Setup, err = parser.parseBlock()
		case token.isKeyword("proba"):
			var testCase *TestCaseAst
			if testCase, err = parser.parseTestCase(); err == nil {
				stm.Cases = append(stm.Cases, testCase)
			}
		default:
			err = parser.errorExpectedToken("'proba' or 'praepara'")
		}
		if err != nil {
			parser.report(err)
			parser.synchronize(memberStart)
		}
	}
	stm.Location = parser.spanFrom(start)
	return stm, nil
}

// proba "case" { }
func (parser *Parser) parseTestCase() (*TestCaseAst, error) {
	start := parser.getCurrentToken()
	parser.stepForward()
	name, match := parser.expectToken(StringTP, true)
	if !match {
		return nil, parser.errorExpectedToken("a test name string")
	}
	stm := &TestCaseAst{Name: name.value}
	var err error
	if stm.Body, err = parser.parseBlock(); err != nil {
		return nil, err
	}
	stm.Location = parser.spanFrom(start)
	return stm, nil
}

// incipit { } / incipiet { }
func (parser *Parser) parseEntryPoint() (*EntryPointAst, error) {
	start := parser.getCurrentToken()
	parser.stepForward()
	stm := &EntryPointAst{Async: start.content == "incipiet"}
	var err error
	if stm.Body, err = parser.parseBlock(); err != nil {
		return nil, err
	}
	stm.Location = parser.spanFrom(start)
	return stm, nil
}

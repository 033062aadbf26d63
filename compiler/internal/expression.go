package internal

// Expressions are parsed in layers, from the loosest binding to the tightest:
//
//	assignment  = += -= *= /=         right associative
//	ternary     c ? a : b
//	binary      || aut vel, && et, == != === !== est, < > <= >=, .. usque per, + -, * / %
//	unary       - ! non cede
//	postfix     call, .member, [index]
//
// The binary layer collects a flat list of terms and operators and folds it with
// precedence climbing on OpAst.priority.

func buildExpressionsTree(parser *Parser, ops []*OpAst, exprTerms []ExpressionAst) ExpressionAst {
	if len(ops) == 0 {
		return exprTerms[0]
	}
	ret, _ := buildExpressionsTree0(parser, ops, exprTerms, 0, 0)
	return ret
}

func buildExpressionsTree0(parser *Parser, ops []*OpAst, exprTerms []ExpressionAst, loc int,
	minPriority int) (ExpressionAst, int) {
	lhs := exprTerms[loc]
	i := loc
	for i < len(ops) && ops[i].priority >= minPriority {
		op := ops[i]
		rhs := exprTerms[i+1]
		j := i + 1
		for j < len(ops) && ops[j].priority > op.priority {
			rhs, j = buildExpressionsTree0(parser, ops, exprTerms, j, ops[j].priority)
		}
		lhs = parser.makeNewExpression(lhs, rhs, op)
		exprTerms[j] = lhs
		i = j
	}
	return lhs, i
}

func (parser *Parser) makeNewExpression(leftExpr ExpressionAst, rightExpr ExpressionAst, op *OpAst) ExpressionAst {
	span := leftExpr.Span().Join(rightExpr.Span())
	switch op.Op {
	case RangeOpTP, InclusiveRangeOpTP:
		ret := &RangeExpressionAst{Start: leftExpr, End: rightExpr, Inclusive: op.Op == InclusiveRangeOpTP}
		ret.Location = span
		return ret
	case StepOpTP:
		if rng, ok := leftExpr.(*RangeExpressionAst); ok && rng.Step == nil {
			rng.Step = rightExpr
			rng.Location = span
			return rng
		}
		parser.report(newDiagnostic(ErrUnexpectedToken, rightExpr.Span(), "'per' without a range"))
		return leftExpr
	}
	ret := &BinaryExpressionAst{Op: op, Left: leftExpr, Right: rightExpr}
	ret.Location = span
	return ret
}

// parseExpressions parses a comma separated list of expressions.
func (parser *Parser) parseExpressions() (exprs []ExpressionAst, err error) {
	for parser.hasRemainTokens() {
		expression, err := parser.parseExpression()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expression)
		_, match := parser.expectToken(CommaTP, false)
		if !match {
			break
		}
		parser.stepForward()
	}
	if len(exprs) == 0 {
		return nil, parser.errorExpected(ErrExpectedExpression)
	}
	return
}

func (parser *Parser) parseExpression() (ExpressionAst, error) {
	return parser.parseAssignment()
}

func (parser *Parser) parseAssignment() (ExpressionAst, error) {
	target, err := parser.parseTernary()
	if err != nil {
		return nil, err
	}
	op := parser.matchAssignOp()
	if op == nil {
		return target, nil
	}
	parser.stepForward()
	if !isAssignable(target) {
		return nil, newDiagnostic(ErrInvalidAssignmentTarget, target.Span())
	}
	value, err := parser.parseAssignment()
	if err != nil {
		return nil, err
	}
	ret := &AssignExpressionAst{Op: op, Target: target, Value: value}
	ret.Location = target.Span().Join(value.Span())
	return ret, nil
}

func isAssignable(expr ExpressionAst) bool {
	switch expr.(type) {
	case *IdentifierAst, *MemberExpressionAst, *IndexExpressionAst:
		return true
	}
	return false
}

func (parser *Parser) matchAssignOp() *OpAst {
	if !parser.continuesLine() {
		return nil
	}
	switch parser.getCurrentToken().tp {
	case AssignTP:
		return &AssignOpAst
	case AddAssignTP:
		return &AddAssignOpAst
	case MinusAssignTP:
		return &MinusAssignOpAst
	case MultiplyAssignTP:
		return &MultipleAssignOpAst
	case DivideAssignTP:
		return &DivideAssignOpAst
	}
	return nil
}

// continuesLine reports whether the current token is on the same line as the previous
// one, which is what lets an operator extend the expression.
func (parser *Parser) continuesLine() bool {
	return parser.hasRemainTokens() && !parser.onNewLine()
}

func (parser *Parser) parseTernary() (ExpressionAst, error) {
	condition, err := parser.parseBinary()
	if err != nil {
		return nil, err
	}
	if !parser.continuesLine() {
		return condition, nil
	}
	if _, match := parser.expectToken(QuestionTP, true); !match {
		return condition, nil
	}
	then, err := parser.parseTernary()
	if err != nil {
		return nil, err
	}
	if _, match := parser.expectToken(ColonTP, true); !match {
		return nil, parser.errorExpectedToken("':'")
	}
	otherwise, err := parser.parseTernary()
	if err != nil {
		return nil, err
	}
	ret := &TernaryExpressionAst{Condition: condition, Then: then, Else: otherwise}
	ret.Location = condition.Span().Join(otherwise.Span())
	return ret, nil
}

func (parser *Parser) parseBinary() (ExpressionAst, error) {
	leftExprTerm, err := parser.parseUnary()
	if err != nil {
		return nil, err
	}
	var ops []*OpAst
	exprTerms := []ExpressionAst{leftExprTerm}
	for op := parser.matchOp(); op != nil; op = parser.matchOp() {
		parser.stepForward()
		exprTerm, err := parser.parseUnary()
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
		exprTerms = append(exprTerms, exprTerm)
	}
	return buildExpressionsTree(parser, ops, exprTerms), nil
}

func (parser *Parser) matchOp() *OpAst {
	if !parser.continuesLine() {
		return nil
	}
	token := parser.getCurrentToken()
	switch token.tp {
	case OrTP:
		return &OrOpAst
	case AndTP:
		return &AndOpAst
	case EqualTP:
		return &EqualOpAst
	case NotEqualTP:
		return &NotEqualOpAst
	case StrictEqualTP:
		return &StrictEqualOpAst
	case StrictNotEqualTP:
		return &StrictNotEqualOpAst
	case LessTP:
		return &LessOpAst
	case LessEqualTP:
		return &LessEqualOpAst
	case GreaterTP:
		return &GreatOpAst
	case GreaterEqualTP:
		return &GreatEqualOpAst
	case RangeTP:
		return &RangeOpAst
	case AddTP:
		return &AddOpAst
	case MinusTP:
		return &MinusOpAst
	case MultiplyTP:
		return &MultipleOpAst
	case DivideTP:
		return &DivideOpAst
	case ModTP:
		return &ModOpAst
	case KeywordTP:
		switch token.content {
		case "aut":
			return &OrOpAst
		case "vel":
			return &NullishOpAst
		case "et":
			return &AndOpAst
		case "est":
			return &StrictEqualOpAst
		case "usque":
			return &InclusiveRangeOpAst
		case "per":
			return &StepOpAst
		}
	}
	return nil
}

// Note: like the C family, 5 + -2 is accepted without parentheses.
func (parser *Parser) parseUnary() (ExpressionAst, error) {
	token := parser.getCurrentToken()
	if token == nil {
		return nil, parser.errorExpected(ErrExpectedExpression)
	}
	var op *OpAst
	switch {
	case token.tp == MinusTP:
		op = &NegationOpAst
	case token.tp == BooleanNegativeTP || token.isKeyword("non"):
		op = &BooleanNegationOpAst
	case token.isKeyword("cede"):
		parser.stepForward()
		operand, err := parser.parseUnary()
		if err != nil {
			return nil, err
		}
		ret := &CedeExpressionAst{Operand: operand}
		ret.Location = token.Span().Join(operand.Span())
		return ret, nil
	default:
		return parser.parsePostfix()
	}
	parser.stepForward()
	operand, err := parser.parseUnary()
	if err != nil {
		return nil, err
	}
	ret := &UnaryExpressionAst{Op: op, Operand: operand}
	ret.Location = token.Span().Join(operand.Span())
	return ret, nil
}

// Could be term|term(args)|term.name|term[expression], repeated.
func (parser *Parser) parsePostfix() (ExpressionAst, error) {
	expr, err := parser.parsePrimary()
	if err != nil {
		return nil, err
	}
	for parser.hasRemainTokens() {
		token := parser.getCurrentToken()
		switch {
		case token.tp == LeftParentThesesTP && !parser.onNewLine():
			parser.stepForward()
			args, err := parser.parseArguments(token, RightParentThesesTP, ErrExpectedClosingParen)
			if err != nil {
				return nil, err
			}
			call := &CallExpressionAst{Callee: expr, Args: args}
			call.Location = expr.Span().Join(parser.previousToken().Span())
			expr = call
		case token.tp == DotTP:
			parser.stepForward()
			name := parser.getCurrentToken()
			if name == nil || (name.tp != IdentifierTP && name.tp != KeywordTP) {
				return nil, parser.errorExpected(ErrExpectedIdentifier)
			}
			parser.stepForward()
			member := &MemberExpressionAst{Object: expr, Property: name.content, PropertySpan: name.Span()}
			member.Location = expr.Span().Join(name.Span())
			expr = member
		case token.tp == LeftSquareBracketTP && !parser.onNewLine():
			parser.stepForward()
			index, err := parser.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, match := parser.expectToken(RightSquareBracketTP, true); !match {
				return nil, parser.errorClosing(ErrExpectedClosingBracket, token)
			}
			ret := &IndexExpressionAst{Object: expr, Index: index}
			ret.Location = expr.Span().Join(parser.previousToken().Span())
			expr = ret
		default:
			return expr, nil
		}
	}
	return expr, nil
}

// parseArguments parses "a, b, c" up to and including the closing token. A trailing comma
// is allowed.
func (parser *Parser) parseArguments(open *Token, closing TokenType, code Code) ([]ExpressionAst, error) {
	var args []ExpressionAst
	for parser.hasRemainTokens() {
		if _, match := parser.expectToken(closing, false); match {
			break
		}
		arg, err := parser.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if _, match := parser.expectToken(CommaTP, true); !match {
			break
		}
	}
	if _, match := parser.expectToken(closing, true); !match {
		return nil, parser.errorClosing(code, open)
	}
	return args, nil
}

// errorClosing reports a missing closing delimiter for the group opened by open.
func (parser *Parser) errorClosing(code Code, open *Token) *Diagnostic {
	return parser.makeError(code, parser.getCurrentToken(), open.line, describeToken(parser.getCurrentToken()))
}

func (parser *Parser) parsePrimary() (ExpressionAst, error) {
	token := parser.getCurrentToken()
	if token == nil {
		return nil, parser.errorExpected(ErrExpectedExpression)
	}
	switch token.tp {
	case IntegerTP, FloatTP, StringTP, RegexTP:
		return parser.parseConstantExpressionTerm()
	case IdentifierTP:
		parser.stepForward()
		ret := &IdentifierAst{Name: token.content, Annotation: token.annotation}
		ret.Location = token.Span()
		return ret, nil
	case LeftParentThesesTP:
		return parser.parseSubExpressionTerm()
	case LeftSquareBracketTP:
		parser.stepForward()
		elements, err := parser.parseArguments(token, RightSquareBracketTP, ErrExpectedClosingBracket)
		if err != nil {
			return nil, err
		}
		ret := &ArrayExpressionAst{Elements: elements}
		ret.Location = parser.spanFrom(token)
		return ret, nil
	case LeftBraceTP:
		return parser.parseObjectExpression()
	case KeywordTP:
		switch token.content {
		case "verum", "falsum", "nihil":
			return parser.parseConstantExpressionTerm()
		case "ego":
			parser.stepForward()
			ret := &EgoAst{}
			ret.Location = token.Span()
			return ret, nil
		case "novum":
			return parser.parseNewExpression()
		}
	}
	return nil, parser.errorExpected(ErrExpectedExpression)
}

func (parser *Parser) parseConstantExpressionTerm() (ExpressionAst, error) {
	token := parser.getCurrentToken()
	term := &LiteralExpressionAst{Value: token.value}
	switch token.tp {
	case IntegerTP:
		term.Kind = IntegerLiteral
	case FloatTP:
		term.Kind = FloatLiteral
	case StringTP:
		term.Kind = StringLiteral
	case RegexTP:
		term.Kind = RegexLiteral
		term.Flags = token.flags
	default:
		switch token.content {
		case "verum", "falsum":
			term.Kind, term.Value = BooleanLiteral, token.content
		case "nihil":
			term.Kind, term.Value = NihilLiteral, token.content
		default:
			return nil, parser.errorExpected(ErrExpectedExpression)
		}
	}
	parser.stepForward()
	term.Location = token.Span()
	return term, nil
}

func (parser *Parser) parseSubExpressionTerm() (ExpressionAst, error) {
	open, _ := parser.expectToken(LeftParentThesesTP, true)
	expr, err := parser.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, match := parser.expectToken(RightParentThesesTP, true); !match {
		return nil, parser.errorClosing(ErrExpectedClosingParen, open)
	}
	return expr, nil
}

// { key: value, "key": value }
func (parser *Parser) parseObjectExpression() (ExpressionAst, error) {
	open, _ := parser.expectToken(LeftBraceTP, true)
	ret := &ObjectExpressionAst{}
	for parser.hasRemainTokens() {
		if _, match := parser.expectToken(RightBraceTP, false); match {
			break
		}
		key := parser.getCurrentToken()
		property := &PropertyAst{}
		switch key.tp {
		case IdentifierTP, KeywordTP:
			property.Key = key.content
		case StringTP:
			property.Key = key.value
		default:
			return nil, parser.errorExpected(ErrExpectedIdentifier)
		}
		parser.stepForward()
		if _, match := parser.expectToken(ColonTP, true); !match {
			return nil, parser.errorExpectedToken("':'")
		}
		value, err := parser.parseExpression()
		if err != nil {
			return nil, err
		}
		property.Value = value
		property.Location = key.Span().Join(value.Span())
		ret.Properties = append(ret.Properties, property)
		if _, match := parser.expectToken(CommaTP, true); !match {
			break
		}
	}
	if _, match := parser.expectToken(RightBraceTP, true); !match {
		return nil, parser.makeError(ErrExpectedClosingBrace, parser.getCurrentToken(), open.line)
	}
	ret.Location = parser.spanFrom(open)
	return ret, nil
}

// novum Name [(args)]
func (parser *Parser) parseNewExpression() (ExpressionAst, error) {
	start := parser.getCurrentToken()
	parser.stepForward()
	name, err := parser.parseName()
	if err != nil {
		return nil, err
	}
	ret := &NewExpressionAst{GenusName: name.content}
	if open, match := parser.expectToken(LeftParentThesesTP, true); match {
		if ret.Args, err = parser.parseArguments(open, RightParentThesesTP, ErrExpectedClosingParen); err != nil {
			return nil, err
		}
	}
	ret.Location = parser.spanFrom(start)
	return ret, nil
}

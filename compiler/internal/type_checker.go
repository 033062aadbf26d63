package internal

import (
	"sort"

	"github.com/hbollon/go-edlib"
)

// resolveType maps a written type to a Type. Built-in names are matched through the
// lexicon, so declined spellings like "numeri" name the same type; any other name must
// be a genus in scope. A nil TypeAst resolves to nil.
func (analyzer *Analyzer) resolveType(tpAst *TypeAst) *Type {
	if tpAst == nil {
		return nil
	}
	tp := &Type{Nullable: tpAst.Nullable}
	if kind, ok := analyzer.builtinKind(tpAst.Name); ok {
		tp.Kind = kind
	} else if symbol, _ := analyzer.table.LookUp(analyzer.currentScope, tpAst.Name); symbol != nil && symbol.SymbolType == GenusSymbolType {
		tp.Kind, tp.Name = GenusKind, tpAst.Name
	} else if symbol != nil && symbol.SymbolType == ImportSymbolType && symbol.TP.Kind == GenusKind {
		tp.Kind, tp.Name = GenusKind, symbol.TP.Name
	} else {
		diagnostic := analyzer.makeSemanticError(ErrUnknownType, tpAst.Span(), tpAst.Name)
		if suggestion := analyzer.suggestType(tpAst.Name); suggestion != "" {
			diagnostic.Help = "did you mean '" + suggestion + "'?"
		}
		return unknownType
	}
	for _, param := range tpAst.Params {
		tp.Params = append(tp.Params, analyzer.resolveType(param))
	}
	return tp
}

func (analyzer *Analyzer) builtinKind(name string) (TypeKind, bool) {
	if kind, ok := builtinTypeKinds[name]; ok {
		return kind, true
	}
	forms, err := analyzer.lexicon.ResolveType(name)
	if err != nil || len(forms) == 0 {
		return UnknownKind, false
	}
	kind, ok := builtinTypeKinds[forms[0].Entry.Lemma]
	return kind, ok
}

// suggestType looks for the closest built-in type or genus name.
func (analyzer *Analyzer) suggestType(name string) string {
	candidates := make([]string, 0, len(builtinTypeKinds))
	for lemma := range builtinTypeKinds {
		candidates = append(candidates, lemma)
	}
	for id := analyzer.currentScope; id != NoScope; id = analyzer.table.Parent(id) {
		for _, symbol := range analyzer.table.Symbols(id) {
			if symbol.SymbolType == GenusSymbolType {
				candidates = append(candidates, symbol.Name)
			}
		}
	}
	sort.Strings(candidates)
	best, bestDistance := "", 3
	for _, candidate := range candidates {
		if d := edlib.OSADamerauLevenshteinDistance(name, candidate); d < bestDistance {
			best, bestDistance = candidate, d
		}
	}
	return best
}

// analyzeExpression types expr, stores the type on the node and returns it. It never
// returns nil.
func (analyzer *Analyzer) analyzeExpression(expr ExpressionAst) *Type {
	if expr == nil {
		return unknownType
	}
	tp := analyzer.typeOf(expr)
	if tp == nil {
		tp = unknownType
	}
	expr.setType(tp)
	return tp
}

func (analyzer *Analyzer) typeOf(expr ExpressionAst) *Type {
	switch n := expr.(type) {
	case *LiteralExpressionAst:
		return literalType(n)
	case *IdentifierAst:
		return analyzer.analyzeIdentifier(n)
	case *EgoAst:
		genus := analyzer.frame().genus
		if genus == nil {
			analyzer.makeSemanticError(ErrEgoOutsideGenus, n.Span())
			return unknownType
		}
		return genus.TP
	case *BinaryExpressionAst:
		return analyzer.analyzeBinary(n)
	case *UnaryExpressionAst:
		operandTP := analyzer.analyzeExpression(n.Operand)
		if n.Op.Op == BooleanNegationOpTP {
			return bivalensType
		}
		if !operandTP.isUnknown() && !operandTP.isNumeric() {
			analyzer.makeSemanticError(ErrTypeMismatch, n.Operand.Span(), numerusType, operandTP)
			return unknownType
		}
		return operandTP
	case *CedeExpressionAst:
		operandTP := analyzer.analyzeExpression(n.Operand)
		frame := analyzer.frame()
		if !frame.async && !frame.generator {
			analyzer.makeSemanticError(ErrCedeOutsideAsync, n.Span())
		}
		if operandTP.Kind == PromissumKind {
			return operandTP.param(0)
		}
		return unknownType
	case *AssignExpressionAst:
		return analyzer.analyzeAssign(n)
	case *TernaryExpressionAst:
		analyzer.analyzeExpression(n.Condition)
		thenTP := analyzer.analyzeExpression(n.Then)
		elseTP := analyzer.analyzeExpression(n.Else)
		if assignable(thenTP, elseTP) && !thenTP.isUnknown() {
			return thenTP
		}
		return unknownType
	case *RangeExpressionAst:
		for _, bound := range []ExpressionAst{n.Start, n.End, n.Step} {
			if bound == nil {
				continue
			}
			if boundTP := analyzer.analyzeExpression(bound); !boundTP.isUnknown() && !boundTP.isNumeric() {
				analyzer.makeSemanticError(ErrTypeMismatch, bound.Span(), numerusType, boundTP)
			}
		}
		return listOf(numerusType)
	case *CallExpressionAst:
		return analyzer.analyzeCall(n)
	case *MemberExpressionAst:
		return analyzer.analyzeMember(n)
	case *IndexExpressionAst:
		objectTP := analyzer.analyzeExpression(n.Object)
		analyzer.analyzeExpression(n.Index)
		switch objectTP.Kind {
		case ListaKind:
			return objectTP.param(0)
		case TabulaKind:
			return objectTP.param(1)
		case TextusKind:
			return textusType
		}
		return unknownType
	case *ArrayExpressionAst:
		elemTP := unknownType
		for i, elem := range n.Elements {
			tp := analyzer.analyzeExpression(elem)
			if i == 0 {
				elemTP = tp
			} else if !assignable(elemTP, tp) {
				elemTP = unknownType
			}
		}
		return listOf(elemTP)
	case *ObjectExpressionAst:
		for _, property := range n.Properties {
			analyzer.analyzeExpression(property.Value)
		}
		return &Type{Kind: TabulaKind, Params: []*Type{textusType, unknownType}}
	case *NewExpressionAst:
		for _, arg := range n.Args {
			analyzer.analyzeExpression(arg)
		}
		symbol, _ := analyzer.table.LookUp(analyzer.currentScope, n.GenusName)
		if symbol == nil || symbol.TP == nil || symbol.TP.Kind != GenusKind && !symbol.TP.isUnknown() {
			diagnostic := analyzer.makeSemanticError(ErrUnknownType, n.Span(), n.GenusName)
			if suggestion := analyzer.suggestType(n.GenusName); suggestion != "" {
				diagnostic.Help = "did you mean '" + suggestion + "'?"
			}
			return unknownType
		}
		n.symbolDesc = symbol
		return symbol.TP
	}
	return unknownType
}

func literalType(literal *LiteralExpressionAst) *Type {
	switch literal.Kind {
	case IntegerLiteral:
		return numerusType
	case FloatLiteral:
		return fractusType
	case StringLiteral:
		return textusType
	case BooleanLiteral:
		return bivalensType
	case NihilLiteral:
		return nihilType
	}
	return unknownType
}

func (analyzer *Analyzer) analyzeIdentifier(id *IdentifierAst) *Type {
	symbol, _ := analyzer.table.LookUp(analyzer.currentScope, id.Name)
	if symbol == nil {
		analyzer.makeSemanticError(ErrUndefinedVariable, id.Span(), id.Name)
		return unknownType
	}
	id.symbolDesc = symbol
	return symbol.TP
}

func (analyzer *Analyzer) analyzeBinary(expr *BinaryExpressionAst) *Type {
	leftTP := analyzer.analyzeExpression(expr.Left)
	rightTP := analyzer.analyzeExpression(expr.Right)
	op := expr.Op
	switch {
	case op.IsComparison():
		if !comparableTypes(op, leftTP, rightTP) {
			analyzer.makeSemanticError(ErrIncomparableTypes, expr.Span(), leftTP, rightTP, op.Name)
		}
		return bivalensType
	case op.Op == OrOpTP || op.Op == AndOpTP:
		return bivalensType
	case op.Op == NullishOpTP:
		if leftTP.isUnknown() {
			return rightTP
		}
		return leftTP.nonNull()
	}
	return arithmeticType(op, leftTP, rightTP)
}

// arithmeticType is the result of + - * / %. Textus + textus concatenates.
func arithmeticType(op *OpAst, left, right *Type) *Type {
	if left.isUnknown() || right.isUnknown() {
		return unknownType
	}
	if op.Op == AddOpTP && (left.Kind == TextusKind || right.Kind == TextusKind) {
		return textusType
	}
	if left.isNumeric() && right.isNumeric() {
		if left.Kind == FractusKind || right.Kind == FractusKind || op.Op == DivideOpTP {
			return fractusType
		}
		return numerusType
	}
	return unknownType
}

func (analyzer *Analyzer) analyzeAssign(expr *AssignExpressionAst) *Type {
	targetTP := analyzer.analyzeExpression(expr.Target)
	valueTP := analyzer.analyzeExpression(expr.Value)
	if name, immutable := analyzer.immutableTarget(expr.Target); immutable {
		analyzer.makeSemanticError(ErrImmutableAssignment, expr.Span(), name)
	}
	if expr.Op.Op == AssignOpTP {
		if !assignable(targetTP, valueTP) {
			analyzer.makeSemanticError(ErrTypeMismatch, expr.Value.Span(), targetTP, valueTP)
		}
	} else if result := arithmeticType(&AddOpAst, targetTP, valueTP); expr.Op.Op == AddAssignOpTP && !assignable(targetTP, result) {
		analyzer.makeSemanticError(ErrTypeMismatch, expr.Value.Span(), targetTP, valueTP)
	}
	return targetTP
}

// immutableTarget reports whether target names a binding that may not be reassigned:
// fixum variables, de parameters, loop and catch bindings, imports, functions, genera,
// and fixum fields reached through ego.
func (analyzer *Analyzer) immutableTarget(target ExpressionAst) (string, bool) {
	switch n := target.(type) {
	case *IdentifierAst:
		if n.symbolDesc == nil {
			return "", false
		}
		return n.Name, !n.symbolDesc.Mutable
	case *MemberExpressionAst:
		if _, ok := n.Object.(*EgoAst); !ok {
			return "", false
		}
		genus := analyzer.frame().genus
		if genus == nil {
			return "", false
		}
		if member, ok := genus.Members[n.Property]; ok && member.SymbolType == VariableSymbolType {
			return n.Property, !member.Mutable
		}
	}
	return "", false
}

func (analyzer *Analyzer) analyzeCall(expr *CallExpressionAst) *Type {
	calleeTP := analyzer.analyzeExpression(expr.Callee)
	argTPs := make([]*Type, len(expr.Args))
	for i, arg := range expr.Args {
		argTPs[i] = analyzer.analyzeExpression(arg)
	}
	if calleeTP.Kind != FunctionKind {
		return unknownType
	}
	if len(calleeTP.Params) > 0 {
		for i, argTP := range argTPs {
			if i < len(calleeTP.Params) && !assignable(calleeTP.Params[i], argTP) {
				analyzer.makeSemanticError(ErrTypeMismatch, expr.Args[i].Span(), calleeTP.Params[i], argTP)
			}
		}
	}
	ret := calleeTP.Return
	if ret == nil {
		ret = unknownType
	}
	if calleeTP.Generator {
		ret = listOf(ret)
	}
	if calleeTP.Async {
		ret = promiseOf(ret)
	}
	return ret
}

func (analyzer *Analyzer) analyzeMember(expr *MemberExpressionAst) *Type {
	objectTP := analyzer.analyzeExpression(expr.Object)
	if objectTP.Kind != GenusKind {
		return unknownType
	}
	symbol, _ := analyzer.table.LookUp(analyzer.currentScope, objectTP.Name)
	if symbol == nil || symbol.Members == nil {
		return unknownType
	}
	if member, ok := symbol.Members[expr.Property]; ok {
		return member.TP
	}
	return unknownType
}

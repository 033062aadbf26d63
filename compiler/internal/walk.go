package internal

// Walk visits node and its children depth first, in source order. visit returning false
// skips the children of that node.
func Walk(node Ast, visit func(Ast) bool) {
	if isNilAst(node) || !visit(node) {
		return
	}
	switch n := node.(type) {
	case *ProgramAst:
		walkStatements(n.Statements, visit)
	case *BlockAst:
		walkStatements(n.Statements, visit)
	case *VarDeclareAst:
		walkType(n.VarType, visit)
		walkExpression(n.Value, visit)
	case *FuncDeclareAst:
		for _, p := range n.Params {
			Walk(p, visit)
		}
		walkType(n.ReturnTP, visit)
		walkBlock(n.Body, visit)
	case *FuncParamAst:
		walkType(n.ParamTP, visit)
		walkExpression(n.Default, visit)
	case *GenusDeclareAst:
		for _, f := range n.Fields {
			Walk(f, visit)
		}
		for _, m := range n.Methods {
			Walk(m, visit)
		}
	case *IfStatementAst:
		walkExpression(n.Condition, visit)
		walkBlock(n.Then, visit)
		if n.Else != nil {
			Walk(n.Else, visit)
		}
	case *WhileStatementAst:
		walkExpression(n.Condition, visit)
		walkBlock(n.Body, visit)
	case *ForStatementAst:
		walkExpression(n.Iterable, visit)
		walkExpression(n.Filter, visit)
		walkBlock(n.Body, visit)
	case *GuardStatementAst:
		walkExpression(n.Condition, visit)
		walkBlock(n.Else, visit)
	case *SwitchStatementAst:
		walkExpression(n.Subject, visit)
		for _, c := range n.Cases {
			Walk(c, visit)
		}
		walkBlock(n.Default, visit)
	case *CaseClauseAst:
		walkExpressions(n.Values, visit)
		walkBlock(n.Body, visit)
	case *TryStatementAst:
		walkBlock(n.Body, visit)
		walkBlock(n.Catch, visit)
		walkBlock(n.Finally, visit)
	case *ThrowStatementAst:
		walkExpression(n.Value, visit)
	case *AssertStatementAst:
		walkExpression(n.Condition, visit)
		walkExpression(n.Message, visit)
	case *ReturnStatementAst:
		walkExpression(n.Value, visit)
	case *ImportStatementAst:
		for _, s := range n.Specifiers {
			Walk(s, visit)
		}
	case *TestSuiteAst:
		walkBlock(n.Setup, visit)
		for _, c := range n.Cases {
			Walk(c, visit)
		}
	case *TestCaseAst:
		walkBlock(n.Body, visit)
	case *EntryPointAst:
		walkBlock(n.Body, visit)
	case *ExpressionStatementAst:
		walkExpression(n.Expression, visit)
	case *TypeAst:
		for _, p := range n.Params {
			Walk(p, visit)
		}
	case *BinaryExpressionAst:
		walkExpression(n.Left, visit)
		walkExpression(n.Right, visit)
	case *UnaryExpressionAst:
		walkExpression(n.Operand, visit)
	case *CedeExpressionAst:
		walkExpression(n.Operand, visit)
	case *AssignExpressionAst:
		walkExpression(n.Target, visit)
		walkExpression(n.Value, visit)
	case *TernaryExpressionAst:
		walkExpression(n.Condition, visit)
		walkExpression(n.Then, visit)
		walkExpression(n.Else, visit)
	case *RangeExpressionAst:
		walkExpression(n.Start, visit)
		walkExpression(n.End, visit)
		walkExpression(n.Step, visit)
	case *CallExpressionAst:
		walkExpression(n.Callee, visit)
		walkExpressions(n.Args, visit)
	case *MemberExpressionAst:
		walkExpression(n.Object, visit)
	case *IndexExpressionAst:
		walkExpression(n.Object, visit)
		walkExpression(n.Index, visit)
	case *ArrayExpressionAst:
		walkExpressions(n.Elements, visit)
	case *ObjectExpressionAst:
		for _, p := range n.Properties {
			Walk(p, visit)
		}
	case *PropertyAst:
		walkExpression(n.Value, visit)
	case *NewExpressionAst:
		walkExpressions(n.Args, visit)
	}
}

func walkStatements(statements []StatementAst, visit func(Ast) bool) {
	for _, s := range statements {
		Walk(s, visit)
	}
}

func walkExpressions(expressions []ExpressionAst, visit func(Ast) bool) {
	for _, e := range expressions {
		walkExpression(e, visit)
	}
}

func walkExpression(expression ExpressionAst, visit func(Ast) bool) {
	if expression != nil {
		Walk(expression, visit)
	}
}

func walkBlock(block *BlockAst, visit func(Ast) bool) {
	if block != nil {
		Walk(block, visit)
	}
}

func walkType(tp *TypeAst, visit func(Ast) bool) {
	if tp != nil {
		Walk(tp, visit)
	}
}

// isNilAst catches typed nil pointers stored in an Ast interface.
func isNilAst(node Ast) bool {
	if node == nil {
		return true
	}
	switch n := node.(type) {
	case *BlockAst:
		return n == nil
	case *IfStatementAst:
		return n == nil
	case *TypeAst:
		return n == nil
	}
	return false
}

// CountNodes returns the number of nodes under node, node included.
func CountNodes(node Ast) int {
	count := 0
	Walk(node, func(Ast) bool {
		count++
		return true
	})
	return count
}

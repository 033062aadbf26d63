package internal

import (
	"faber/compiler/lexicon"
)

// In this file, we define all ast of faber according to its grammar. A faber file is a
// list of top level statements: declarations, imports, tests, entry points and plain
// statements. Every node carries its source span. Expressions carry a type slot and names
// carry a symbol reference; both are filled by the analyzer.

type Ast interface {
	Span() Span
}

type StatementAst interface {
	Ast
	statementNode()
}

type ExpressionAst interface {
	Ast
	expressionNode()
	ResolvedType() *Type
	setType(tp *Type)
}

type astNode struct {
	Location Span
}

func (n *astNode) Span() Span { return n.Location }

type stmtBase struct {
	astNode
}

func (*stmtBase) statementNode() {}

type exprBase struct {
	astNode
	TP *Type // We set the resolved type here.
}

func (*exprBase) expressionNode() {}

func (n *exprBase) ResolvedType() *Type { return n.TP }

func (n *exprBase) setType(tp *Type) { n.TP = tp }

type ProgramAst struct {
	astNode
	File       string
	Statements []StatementAst

	scope ScopeID // We set the module scope here.
}

type BlockAst struct {
	stmtBase
	Statements []StatementAst
	// Unclosed is set when the block ran into the end of input.
	Unclosed bool
}

type TypeAst struct {
	astNode
	Name     string
	Params   []*TypeAst
	Nullable bool
}

func (t *TypeAst) String() string {
	if t == nil {
		return ""
	}
	s := t.Name
	if len(t.Params) > 0 {
		s += "<"
		for i, p := range t.Params {
			if i > 0 {
				s += ", "
			}
			s += p.String()
		}
		s += ">"
	}
	if t.Nullable {
		s += "?"
	}
	return s
}

type VarDeclareAst struct {
	stmtBase
	VarName  string
	NameSpan Span
	Mutable  bool
	VarType  *TypeAst
	Value    ExpressionAst
	Exported bool

	symbolDesc *SymbolDesc // We set symbolTable reference here.
}

type Ownership int

const (
	OwnedParam    Ownership = iota // plain parameter
	BorrowedParam                  // de: read-only borrow
	MutableParam                   // in: mutable borrow
)

func (o Ownership) String() string {
	switch o {
	case BorrowedParam:
		return "de"
	case MutableParam:
		return "in"
	}
	return ""
}

type FuncParamAst struct {
	astNode
	ParamName string
	ParamTP   *TypeAst
	Ownership Ownership
	Optional  bool
	Default   ExpressionAst

	symbolDesc *SymbolDesc // we put symbolDesc here.
}

type FuncDeclareAst struct {
	stmtBase
	FuncName string
	NameSpan Span
	Params   []*FuncParamAst
	ReturnTP *TypeAst
	// ReturnVerb is the reading of fit/fiet/fiunt/fient, nil when the signature uses
	// "->" or declares no return.
	ReturnVerb     *lexicon.VerbForm
	ReturnVerbSpan Span
	// Futura and Cursor are the explicit modifiers as written.
	Futura bool
	Cursor bool
	// Async and Generator are the effective flags: modifier or return verb.
	Async     bool
	Generator bool
	Exported  bool
	External  bool
	Body      *BlockAst

	symbolDesc *SymbolDesc // We set symbolTable reference here.
}

type GenusDeclareAst struct {
	stmtBase
	GenusName string
	NameSpan  Span
	Fields    []*VarDeclareAst
	Methods   []*FuncDeclareAst
	Exported  bool

	symbolDesc *SymbolDesc
}

type IfStatementAst struct {
	stmtBase
	Condition ExpressionAst
	Then      *BlockAst
	// Else is a *BlockAst or, for sin / secus si, a nested *IfStatementAst.
	Else StatementAst
}

type WhileStatementAst struct {
	stmtBase
	Condition ExpressionAst
	Body      *BlockAst
}

type IterationKind int

const (
	ValuesIteration IterationKind = iota // ex ... pro
	KeysIteration                        // de ... pro
)

func (k IterationKind) String() string {
	if k == KeysIteration {
		return "keys"
	}
	return "values"
}

type ForStatementAst struct {
	stmtBase
	Iteration IterationKind
	Iterable  ExpressionAst
	VarName   string
	NameSpan  Span
	Filter    ExpressionAst
	Body      *BlockAst

	symbolDesc *SymbolDesc
}

type GuardStatementAst struct {
	stmtBase
	Condition ExpressionAst
	Else      *BlockAst
}

type CaseClauseAst struct {
	astNode
	Values []ExpressionAst
	Body   *BlockAst
}

type SwitchStatementAst struct {
	stmtBase
	Subject ExpressionAst
	Cases   []*CaseClauseAst
	Default *BlockAst
}

type TryStatementAst struct {
	stmtBase
	Body      *BlockAst
	CatchName string
	CatchSpan Span
	Catch     *BlockAst
	Finally   *BlockAst

	catchSymbol *SymbolDesc
}

type ThrowStatementAst struct {
	stmtBase
	Value ExpressionAst
}

type AssertStatementAst struct {
	stmtBase
	Condition ExpressionAst
	Message   ExpressionAst
}

type ReturnStatementAst struct {
	stmtBase
	Value ExpressionAst
}

type BreakStatementAst struct {
	stmtBase
}

type ContinueStatementAst struct {
	stmtBase
}

type ImportSpecifierAst struct {
	astNode
	Name  string
	Alias string

	symbolDesc *SymbolDesc
}

// LocalName is the name the import binds in the importing module.
func (s *ImportSpecifierAst) LocalName() string {
	if s.Alias != "" {
		return s.Alias
	}
	return s.Name
}

type ImportStatementAst struct {
	stmtBase
	Source     string
	SourceSpan Span
	Specifiers []*ImportSpecifierAst

	module *ModuleRecord // We set the resolved module here.
}

type TestCaseAst struct {
	stmtBase
	Name string
	Body *BlockAst
}

type TestSuiteAst struct {
	stmtBase
	Name  string
	Setup *BlockAst
	Cases []*TestCaseAst
}

type EntryPointAst struct {
	stmtBase
	Async bool
	Body  *BlockAst
}

type ExpressionStatementAst struct {
	stmtBase
	Expression ExpressionAst
}

type LiteralKind int

const (
	IntegerLiteral LiteralKind = iota
	FloatLiteral
	StringLiteral
	RegexLiteral
	BooleanLiteral
	NihilLiteral
)

type LiteralExpressionAst struct {
	exprBase
	Kind LiteralKind
	// For constant value, the value is the normalized text, for example:
	// * For 1_000, value is 1000
	// * For "a\n", value is the unescaped string
	// * For /a+/g, value is a+ and Flags is g
	Value string
	Flags string
}

type IdentifierAst struct {
	exprBase
	Name       string
	Annotation *Annotation

	symbolDesc *SymbolDesc // We set symbolTable reference here.
}

// Symbol returns the binding the analyzer resolved, or nil.
func (id *IdentifierAst) Symbol() *SymbolDesc { return id.symbolDesc }

type EgoAst struct {
	exprBase
}

type BinaryExpressionAst struct {
	exprBase
	Op    *OpAst
	Left  ExpressionAst
	Right ExpressionAst
}

type UnaryExpressionAst struct {
	exprBase
	Op      *OpAst
	Operand ExpressionAst
}

type CedeExpressionAst struct {
	exprBase
	Operand ExpressionAst
}

type AssignExpressionAst struct {
	exprBase
	Op     *OpAst
	Target ExpressionAst
	Value  ExpressionAst
}

type TernaryExpressionAst struct {
	exprBase
	Condition ExpressionAst
	Then      ExpressionAst
	Else      ExpressionAst
}

type RangeExpressionAst struct {
	exprBase
	Start     ExpressionAst
	End       ExpressionAst
	Step      ExpressionAst
	Inclusive bool
}

type CallExpressionAst struct {
	exprBase
	Callee ExpressionAst
	Args   []ExpressionAst
}

type MemberExpressionAst struct {
	exprBase
	Object       ExpressionAst
	Property     string
	PropertySpan Span
}

type IndexExpressionAst struct {
	exprBase
	Object ExpressionAst
	Index  ExpressionAst
}

type ArrayExpressionAst struct {
	exprBase
	Elements []ExpressionAst
}

type PropertyAst struct {
	astNode
	Key   string
	Value ExpressionAst
}

type ObjectExpressionAst struct {
	exprBase
	Properties []*PropertyAst
}

type NewExpressionAst struct {
	exprBase
	GenusName string
	Args      []ExpressionAst

	symbolDesc *SymbolDesc
}

type OpAst struct {
	OpTP     OpType
	Op       OpCode
	priority int
	Name     string
}

type OpType int

const (
	UnaryOPTP OpType = iota
	BinaryOPTP
	AssignOPTP
)

type OpCode int

const (
	OrOpTP OpCode = iota
	NullishOpTP
	AndOpTP
	EqualOpTP
	NotEqualOpTP
	StrictEqualOpTP
	StrictNotEqualOpTP
	LessOpTP
	LessEqualOpTP
	GreaterOpTP
	GreaterEqualOpTP
	RangeOpTP
	InclusiveRangeOpTP
	StepOpTP
	AddOpTP
	MinusOpTP
	MultipleOpTP
	DivideOpTP
	ModOpTP

	// Unary Op
	NegationOpTP
	BooleanNegationOpTP

	// Assign Op
	AssignOpTP
	AddAssignOpTP
	MinusAssignOpTP
	MultipleAssignOpTP
	DivideAssignOpTP
)

var (
	OrOpAst             = OpAst{OpTP: BinaryOPTP, Op: OrOpTP, priority: 1, Name: "||"}
	NullishOpAst        = OpAst{OpTP: BinaryOPTP, Op: NullishOpTP, priority: 1, Name: "vel"}
	AndOpAst            = OpAst{OpTP: BinaryOPTP, Op: AndOpTP, priority: 2, Name: "&&"}
	EqualOpAst          = OpAst{OpTP: BinaryOPTP, Op: EqualOpTP, priority: 3, Name: "=="}
	NotEqualOpAst       = OpAst{OpTP: BinaryOPTP, Op: NotEqualOpTP, priority: 3, Name: "!="}
	StrictEqualOpAst    = OpAst{OpTP: BinaryOPTP, Op: StrictEqualOpTP, priority: 3, Name: "==="}
	StrictNotEqualOpAst = OpAst{OpTP: BinaryOPTP, Op: StrictNotEqualOpTP, priority: 3, Name: "!=="}
	LessOpAst           = OpAst{OpTP: BinaryOPTP, Op: LessOpTP, priority: 4, Name: "<"}
	LessEqualOpAst      = OpAst{OpTP: BinaryOPTP, Op: LessEqualOpTP, priority: 4, Name: "<="}
	GreatOpAst          = OpAst{OpTP: BinaryOPTP, Op: GreaterOpTP, priority: 4, Name: ">"}
	GreatEqualOpAst     = OpAst{OpTP: BinaryOPTP, Op: GreaterEqualOpTP, priority: 4, Name: ">="}
	RangeOpAst          = OpAst{OpTP: BinaryOPTP, Op: RangeOpTP, priority: 5, Name: ".."}
	InclusiveRangeOpAst = OpAst{OpTP: BinaryOPTP, Op: InclusiveRangeOpTP, priority: 5, Name: "usque"}
	StepOpAst           = OpAst{OpTP: BinaryOPTP, Op: StepOpTP, priority: 5, Name: "per"}
	AddOpAst            = OpAst{OpTP: BinaryOPTP, Op: AddOpTP, priority: 6, Name: "+"}
	MinusOpAst          = OpAst{OpTP: BinaryOPTP, Op: MinusOpTP, priority: 6, Name: "-"}
	MultipleOpAst       = OpAst{OpTP: BinaryOPTP, Op: MultipleOpTP, priority: 7, Name: "*"}
	DivideOpAst         = OpAst{OpTP: BinaryOPTP, Op: DivideOpTP, priority: 7, Name: "/"}
	ModOpAst            = OpAst{OpTP: BinaryOPTP, Op: ModOpTP, priority: 7, Name: "%"}

	NegationOpAst        = OpAst{OpTP: UnaryOPTP, Op: NegationOpTP, priority: 8, Name: "-"}
	BooleanNegationOpAst = OpAst{OpTP: UnaryOPTP, Op: BooleanNegationOpTP, priority: 8, Name: "!"}

	AssignOpAst         = OpAst{OpTP: AssignOPTP, Op: AssignOpTP, Name: "="}
	AddAssignOpAst      = OpAst{OpTP: AssignOPTP, Op: AddAssignOpTP, Name: "+="}
	MinusAssignOpAst    = OpAst{OpTP: AssignOPTP, Op: MinusAssignOpTP, Name: "-="}
	MultipleAssignOpAst = OpAst{OpTP: AssignOPTP, Op: MultipleAssignOpTP, Name: "*="}
	DivideAssignOpAst   = OpAst{OpTP: AssignOPTP, Op: DivideAssignOpTP, Name: "/="}
)

func (op OpAst) String() string {
	return op.Name
}

// IsComparison reports whether op compares its operands.
func (op OpAst) IsComparison() bool {
	return op.Op >= EqualOpTP && op.Op <= GreaterEqualOpTP
}

// IsEquality reports whether op tests equality.
func (op OpAst) IsEquality() bool {
	return op.Op >= EqualOpTP && op.Op <= StrictNotEqualOpTP
}

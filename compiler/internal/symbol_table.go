package internal

// Scopes live in one arena per analysis and refer to their parent by ScopeID, so a scope
// never outlives the table and lookups never chase pointers across analyses.

type ScopeID int

const NoScope ScopeID = -1

type ScopeKind int

const (
	PreludeScope ScopeKind = iota
	ModuleScope
	FunctionScope
	GenusScope
	BlockScope
)

type SymbolType int

const (
	VariableSymbolType SymbolType = iota
	ParamSymbolType
	FuncSymbolType
	GenusSymbolType
	ImportSymbolType
	LoopVariableSymbolType
	CatchVariableSymbolType
	BuiltinSymbolType
)

func (t SymbolType) String() string {
	switch t {
	case ParamSymbolType:
		return "parameter"
	case FuncSymbolType:
		return "function"
	case GenusSymbolType:
		return "genus"
	case ImportSymbolType:
		return "import"
	case LoopVariableSymbolType:
		return "loop variable"
	case CatchVariableSymbolType:
		return "catch variable"
	case BuiltinSymbolType:
		return "builtin"
	}
	return "variable"
}

type SymbolDesc struct {
	Name       string
	SymbolType SymbolType
	Mutable    bool
	TP         *Type
	Async      bool
	Generator  bool
	Ownership  Ownership
	Span       Span
	Exported   bool
	// Members holds the fields and methods of a genus.
	Members map[string]*SymbolDesc
}

type scope struct {
	kind    ScopeKind
	parent  ScopeID
	symbols map[string]*SymbolDesc
	order   []*SymbolDesc
}

type SymbolTable struct {
	scopes []scope
}

// NewSymbolTable returns a table holding the prelude scope with the standard library.
func NewSymbolTable() *SymbolTable {
	table := &SymbolTable{}
	prelude := table.NewScope(NoScope, PreludeScope)
	table.initStandardLibrary(prelude)
	return table
}

// Prelude is the root scope holding the builtins.
func (table *SymbolTable) Prelude() ScopeID {
	return 0
}

func (table *SymbolTable) initStandardLibrary(prelude ScopeID) {
	table.addStandardFuncs(prelude,
		[]string{"scribe", "mone", "vide"},
		[]*Type{vacuumType, vacuumType, vacuumType},
	)
}

func (table *SymbolTable) addStandardFuncs(id ScopeID, funcNames []string, returnTP []*Type) {
	for i, name := range funcNames {
		table.Define(id, &SymbolDesc{
			Name:       name,
			SymbolType: BuiltinSymbolType,
			TP:         &Type{Kind: FunctionKind, Return: returnTP[i]},
		})
	}
}

func (table *SymbolTable) NewScope(parent ScopeID, kind ScopeKind) ScopeID {
	table.scopes = append(table.scopes, scope{kind: kind, parent: parent, symbols: map[string]*SymbolDesc{}})
	return ScopeID(len(table.scopes) - 1)
}

func (table *SymbolTable) Parent(id ScopeID) ScopeID {
	return table.scopes[id].parent
}

func (table *SymbolTable) Kind(id ScopeID) ScopeKind {
	return table.scopes[id].kind
}

// Define inserts symbol into scope id. When the name is already bound in that same scope
// the existing binding is returned and nothing changes.
func (table *SymbolTable) Define(id ScopeID, symbol *SymbolDesc) (*SymbolDesc, bool) {
	s := &table.scopes[id]
	if existing, ok := s.symbols[symbol.Name]; ok {
		return existing, false
	}
	s.symbols[symbol.Name] = symbol
	s.order = append(s.order, symbol)
	return symbol, true
}

func (table *SymbolTable) LookUpLocal(id ScopeID, name string) *SymbolDesc {
	return table.scopes[id].symbols[name]
}

// LookUp searches id and then its ancestors; inner bindings shadow outer ones.
func (table *SymbolTable) LookUp(id ScopeID, name string) (*SymbolDesc, ScopeID) {
	for id != NoScope {
		if symbol, ok := table.scopes[id].symbols[name]; ok {
			return symbol, id
		}
		id = table.scopes[id].parent
	}
	return nil, NoScope
}

// Symbols lists the bindings of scope id in declaration order.
func (table *SymbolTable) Symbols(id ScopeID) []*SymbolDesc {
	return append([]*SymbolDesc(nil), table.scopes[id].order...)
}

func (table *SymbolTable) ScopeCount() int {
	return len(table.scopes)
}

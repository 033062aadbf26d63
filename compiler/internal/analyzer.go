package internal

import (
	"path"
	"strings"

	"faber/compiler/lexicon"
)

// Analyzer walks a parsed program once, depth first. It resolves names through a chain
// of scopes, annotates expressions with types and records every semantic problem it
// finds without stopping. Imports are tokenized, parsed and analyzed recursively
// through the module loader.
type Analyzer struct {
	file         string
	loader       ModuleLoader
	cache        *ModuleCache
	lexicon      *lexicon.Lexicon
	table        *SymbolTable
	currentScope ScopeID
	frames       []*contextFrame
	diagnostics  []*Diagnostic
}

// contextFrame is the state of the nearest enclosing function (or entry point).
type contextFrame struct {
	async     bool
	generator bool
	returns   bool
	returnTP  *Type
	funcName  string
	loopDepth int
	genus     *SymbolDesc
}

func NewAnalyzer(loader ModuleLoader, cache *ModuleCache) *Analyzer {
	if loader == nil {
		loader = MapLoader{}
	}
	if cache == nil {
		cache = NewModuleCache()
	}
	return &Analyzer{loader: loader, cache: cache, lexicon: lexicon.Default()}
}

// Analyze annotates program in place and returns it with every semantic diagnostic,
// including those of imported modules.
func (analyzer *Analyzer) Analyze(program *ProgramAst) (*ProgramAst, []*Diagnostic) {
	// The root shares the cleaned key form ResolveImportPath gives imports.
	analyzer.file = program.File
	if analyzer.file != "" {
		analyzer.file = path.Clean(analyzer.file)
	}
	record := analyzer.cache.begin(analyzer.file)
	record.Program = program
	analyzer.analyzeModule(record)
	analyzer.cache.finish(record, ModuleResolved)
	return program, analyzer.diagnostics
}

func (analyzer *Analyzer) analyzeModule(record *ModuleRecord) {
	analyzer.table = NewSymbolTable()
	analyzer.currentScope = analyzer.table.NewScope(analyzer.table.Prelude(), ModuleScope)
	analyzer.frames = []*contextFrame{{}}
	record.Program.scope = analyzer.currentScope
	analyzer.analyzeStatements(record.Program.Statements)
	record.Exports = analyzer.collectExports(record.Program)
}

// collectExports returns the declarations marked exporta, or every top level declaration
// when none is marked.
func (analyzer *Analyzer) collectExports(program *ProgramAst) map[string]*SymbolDesc {
	exports := map[string]*SymbolDesc{}
	all := map[string]*SymbolDesc{}
	for _, stm := range program.Statements {
		var symbol *SymbolDesc
		exported := false
		switch n := stm.(type) {
		case *VarDeclareAst:
			symbol, exported = n.symbolDesc, n.Exported
		case *FuncDeclareAst:
			symbol, exported = n.symbolDesc, n.Exported
		case *GenusDeclareAst:
			symbol, exported = n.symbolDesc, n.Exported
		}
		if symbol == nil {
			continue
		}
		all[symbol.Name] = symbol
		if exported {
			exports[symbol.Name] = symbol
		}
	}
	if len(exports) == 0 {
		return all
	}
	return exports
}

func (analyzer *Analyzer) makeSemanticError(code Code, span Span, args ...interface{}) *Diagnostic {
	diagnostic := newDiagnostic(code, span, args...)
	analyzer.diagnostics = append(analyzer.diagnostics, diagnostic)
	return diagnostic
}

func (analyzer *Analyzer) frame() *contextFrame {
	return analyzer.frames[len(analyzer.frames)-1]
}

func (analyzer *Analyzer) pushFrame(frame *contextFrame) {
	analyzer.frames = append(analyzer.frames, frame)
}

func (analyzer *Analyzer) popFrame() {
	analyzer.frames = analyzer.frames[:len(analyzer.frames)-1]
}

func (analyzer *Analyzer) pushScope(kind ScopeKind) ScopeID {
	analyzer.currentScope = analyzer.table.NewScope(analyzer.currentScope, kind)
	return analyzer.currentScope
}

func (analyzer *Analyzer) popScope() {
	analyzer.currentScope = analyzer.table.Parent(analyzer.currentScope)
}

// define binds symbol in the current scope and reports a duplicate in that same scope.
// Shadowing an outer binding is allowed.
func (analyzer *Analyzer) define(symbol *SymbolDesc) *SymbolDesc {
	if _, ok := analyzer.table.Define(analyzer.currentScope, symbol); !ok {
		analyzer.makeSemanticError(ErrDuplicateDefinition, symbol.Span, symbol.Name)
	}
	return symbol
}

func (analyzer *Analyzer) analyzeStatements(stms []StatementAst) {
	analyzer.hoistDeclarations(stms)
	for _, stm := range stms {
		analyzer.analyzeStatement(stm)
	}
}

// hoistDeclarations binds the functions and genera of a statement list before any of its
// statements is analyzed, so they can be used before their declaration. Genera go first
// because function signatures may name them.
func (analyzer *Analyzer) hoistDeclarations(stms []StatementAst) {
	for _, stm := range stms {
		if genus, ok := stm.(*GenusDeclareAst); ok {
			genus.symbolDesc = analyzer.define(&SymbolDesc{
				Name:       genus.GenusName,
				SymbolType: GenusSymbolType,
				TP:         &Type{Kind: GenusKind, Name: genus.GenusName},
				Span:       genus.NameSpan,
				Exported:   genus.Exported,
				Members:    map[string]*SymbolDesc{},
			})
		}
	}
	for _, stm := range stms {
		switch n := stm.(type) {
		case *GenusDeclareAst:
			analyzer.declareGenusMembers(n)
		case *FuncDeclareAst:
			n.symbolDesc = analyzer.define(analyzer.funcSymbol(n))
		}
	}
}

func (analyzer *Analyzer) funcSymbol(fn *FuncDeclareAst) *SymbolDesc {
	tp := &Type{Kind: FunctionKind, Async: fn.Async, Generator: fn.Generator}
	if fn.ReturnTP != nil {
		tp.Return = analyzer.resolveType(fn.ReturnTP)
	}
	for _, param := range fn.Params {
		tp.Params = append(tp.Params, analyzer.paramType(param))
	}
	return &SymbolDesc{
		Name:       fn.FuncName,
		SymbolType: FuncSymbolType,
		TP:         tp,
		Async:      fn.Async,
		Generator:  fn.Generator,
		Span:       fn.NameSpan,
		Exported:   fn.Exported,
	}
}

func (analyzer *Analyzer) paramType(param *FuncParamAst) *Type {
	tp := analyzer.resolveType(param.ParamTP)
	if tp == nil {
		return unknownType
	}
	if param.Optional && !tp.Nullable {
		c := *tp
		c.Nullable = true
		return &c
	}
	return tp
}

func (analyzer *Analyzer) declareGenusMembers(genus *GenusDeclareAst) {
	symbol := genus.symbolDesc
	addMember := func(member *SymbolDesc) {
		if _, ok := symbol.Members[member.Name]; ok {
			analyzer.makeSemanticError(ErrDuplicateDefinition, member.Span, member.Name)
			return
		}
		symbol.Members[member.Name] = member
	}
	for _, field := range genus.Fields {
		tp := analyzer.resolveType(field.VarType)
		if tp == nil {
			tp = unknownType
		}
		field.symbolDesc = &SymbolDesc{
			Name:       field.VarName,
			SymbolType: VariableSymbolType,
			Mutable:    field.Mutable,
			TP:         tp,
			Span:       field.NameSpan,
		}
		addMember(field.symbolDesc)
	}
	for _, method := range genus.Methods {
		method.symbolDesc = analyzer.funcSymbol(method)
		addMember(method.symbolDesc)
	}
}

func (analyzer *Analyzer) analyzeStatement(stm StatementAst) {
	switch n := stm.(type) {
	case *BlockAst:
		analyzer.analyzeBlock(n)
	case *VarDeclareAst:
		analyzer.analyzeVarDeclare(n)
	case *FuncDeclareAst:
		analyzer.analyzeFunction(n, nil)
	case *GenusDeclareAst:
		analyzer.analyzeGenus(n)
	case *IfStatementAst:
		analyzer.analyzeExpression(n.Condition)
		analyzer.analyzeBlock(n.Then)
		if n.Else != nil {
			analyzer.analyzeStatement(n.Else)
		}
	case *WhileStatementAst:
		analyzer.analyzeExpression(n.Condition)
		analyzer.analyzeLoopBody(n.Body)
	case *ForStatementAst:
		analyzer.analyzeFor(n)
	case *GuardStatementAst:
		analyzer.analyzeExpression(n.Condition)
		analyzer.analyzeBlock(n.Else)
	case *SwitchStatementAst:
		analyzer.analyzeSwitch(n)
	case *TryStatementAst:
		analyzer.analyzeTry(n)
	case *ThrowStatementAst:
		analyzer.analyzeExpression(n.Value)
	case *AssertStatementAst:
		analyzer.analyzeExpression(n.Condition)
		if n.Message != nil {
			analyzer.analyzeExpression(n.Message)
		}
	case *ReturnStatementAst:
		analyzer.analyzeReturn(n)
	case *BreakStatementAst:
		if analyzer.frame().loopDepth == 0 {
			analyzer.makeSemanticError(ErrLoopControlOutsideLoop, n.Span(), "rumpe")
		}
	case *ContinueStatementAst:
		if analyzer.frame().loopDepth == 0 {
			analyzer.makeSemanticError(ErrLoopControlOutsideLoop, n.Span(), "perge")
		}
	case *ImportStatementAst:
		analyzer.analyzeImport(n)
	case *TestSuiteAst:
		analyzer.pushScope(BlockScope)
		if n.Setup != nil {
			analyzer.analyzeStatements(n.Setup.Statements)
		}
		for _, c := range n.Cases {
			analyzer.analyzeBlock(c.Body)
		}
		analyzer.popScope()
	case *TestCaseAst:
		analyzer.analyzeBlock(n.Body)
	case *EntryPointAst:
		analyzer.pushFrame(&contextFrame{async: n.Async, returns: true})
		analyzer.analyzeBlock(n.Body)
		analyzer.popFrame()
	case *ExpressionStatementAst:
		analyzer.analyzeExpression(n.Expression)
	}
}

func (analyzer *Analyzer) analyzeBlock(block *BlockAst) {
	if block == nil {
		return
	}
	analyzer.pushScope(BlockScope)
	analyzer.analyzeStatements(block.Statements)
	analyzer.popScope()
}

func (analyzer *Analyzer) analyzeLoopBody(block *BlockAst) {
	analyzer.frame().loopDepth++
	analyzer.analyzeBlock(block)
	analyzer.frame().loopDepth--
}

func (analyzer *Analyzer) analyzeVarDeclare(stm *VarDeclareAst) {
	declared := analyzer.resolveType(stm.VarType)
	if stm.Value != nil {
		valueTP := analyzer.analyzeExpression(stm.Value)
		if declared != nil && !assignable(declared, valueTP) {
			analyzer.makeSemanticError(ErrTypeMismatch, stm.Value.Span(), declared, valueTP)
		}
	}
	if declared == nil {
		declared = unknownType
	}
	stm.symbolDesc = analyzer.define(&SymbolDesc{
		Name:       stm.VarName,
		SymbolType: VariableSymbolType,
		Mutable:    stm.Mutable,
		TP:         declared,
		Span:       stm.NameSpan,
		Exported:   stm.Exported,
	})
}

// analyzeFunction checks a function declaration and its body. genus is set for methods.
func (analyzer *Analyzer) analyzeFunction(fn *FuncDeclareAst, genus *SymbolDesc) {
	if fn.Body == nil && !fn.External {
		analyzer.makeSemanticError(ErrMissingFunctionBody, fn.NameSpan, fn.FuncName)
	}
	if verb := fn.ReturnVerb; verb != nil {
		word := verb.Entry.Stem + verb.Ending
		if fn.Futura && !verb.Async() {
			analyzer.makeSemanticError(ErrModifierConflict, fn.ReturnVerbSpan, "futura", word)
		}
		if fn.Cursor && !verb.Generator() {
			analyzer.makeSemanticError(ErrModifierConflict, fn.ReturnVerbSpan, "cursor", word)
		}
	}
	frame := &contextFrame{
		async:     fn.Async,
		generator: fn.Generator,
		returns:   true,
		funcName:  fn.FuncName,
		genus:     genus,
	}
	if fn.symbolDesc != nil {
		frame.returnTP = fn.symbolDesc.TP.Return
	}
	analyzer.pushScope(FunctionScope)
	analyzer.pushFrame(frame)
	seenOptional := false
	for i, param := range fn.Params {
		if param.Ownership == BorrowedParam && param.Default != nil {
			analyzer.makeSemanticError(ErrDefaultOnBorrowedParameter, param.Span(), param.ParamName)
		}
		optional := param.Optional || param.Default != nil
		if !optional && seenOptional {
			analyzer.makeSemanticError(ErrRequiredAfterOptional, param.Span(), param.ParamName)
		}
		seenOptional = seenOptional || optional
		tp := unknownType
		if fn.symbolDesc != nil {
			tp = fn.symbolDesc.TP.param(i)
		}
		if param.Default != nil {
			defaultTP := analyzer.analyzeExpression(param.Default)
			if !assignable(tp, defaultTP) {
				analyzer.makeSemanticError(ErrTypeMismatch, param.Default.Span(), tp, defaultTP)
			}
		}
		param.symbolDesc = analyzer.define(&SymbolDesc{
			Name:       param.ParamName,
			SymbolType: ParamSymbolType,
			Mutable:    param.Ownership != BorrowedParam,
			TP:         tp,
			Ownership:  param.Ownership,
			Span:       param.Span(),
		})
	}
	if fn.Body != nil {
		analyzer.analyzeStatements(fn.Body.Statements)
	}
	analyzer.popFrame()
	analyzer.popScope()
}

func (analyzer *Analyzer) analyzeGenus(genus *GenusDeclareAst) {
	symbol := genus.symbolDesc
	analyzer.pushScope(GenusScope)
	analyzer.pushFrame(&contextFrame{genus: symbol})
	for _, field := range genus.Fields {
		if field.Value == nil {
			continue
		}
		valueTP := analyzer.analyzeExpression(field.Value)
		if field.symbolDesc != nil && !assignable(field.symbolDesc.TP, valueTP) {
			analyzer.makeSemanticError(ErrTypeMismatch, field.Value.Span(), field.symbolDesc.TP, valueTP)
		}
	}
	analyzer.popFrame()
	for _, method := range genus.Methods {
		analyzer.analyzeFunction(method, symbol)
	}
	analyzer.popScope()
}

func (analyzer *Analyzer) analyzeFor(stm *ForStatementAst) {
	iterableTP := analyzer.analyzeExpression(stm.Iterable)
	analyzer.pushScope(BlockScope)
	stm.symbolDesc = analyzer.define(&SymbolDesc{
		Name:       stm.VarName,
		SymbolType: LoopVariableSymbolType,
		TP:         iterationType(stm.Iteration, iterableTP),
		Span:       stm.NameSpan,
	})
	if stm.Filter != nil {
		analyzer.analyzeExpression(stm.Filter)
	}
	analyzer.analyzeLoopBody(stm.Body)
	analyzer.popScope()
}

// iterationType is the type of the loop binding when iterating over a value of type tp.
func iterationType(kind IterationKind, tp *Type) *Type {
	if tp.isUnknown() {
		return unknownType
	}
	switch tp.Kind {
	case ListaKind, CopiaKind:
		if kind == KeysIteration {
			return numerusType
		}
		return tp.param(0)
	case TabulaKind:
		if kind == KeysIteration {
			return tp.param(0)
		}
		return tp.param(1)
	case TextusKind:
		if kind == KeysIteration {
			return numerusType
		}
		return textusType
	}
	return unknownType
}

func (analyzer *Analyzer) analyzeSwitch(stm *SwitchStatementAst) {
	subjectTP := analyzer.analyzeExpression(stm.Subject)
	for _, clause := range stm.Cases {
		for _, value := range clause.Values {
			valueTP := analyzer.analyzeExpression(value)
			if !comparableTypes(&EqualOpAst, subjectTP, valueTP) {
				analyzer.makeSemanticError(ErrIncomparableTypes, value.Span(), subjectTP, valueTP, "casu")
			}
		}
		analyzer.analyzeBlock(clause.Body)
	}
	analyzer.analyzeBlock(stm.Default)
}

func (analyzer *Analyzer) analyzeTry(stm *TryStatementAst) {
	analyzer.analyzeBlock(stm.Body)
	if stm.Catch != nil {
		analyzer.pushScope(BlockScope)
		if stm.CatchName != "" {
			stm.catchSymbol = analyzer.define(&SymbolDesc{
				Name:       stm.CatchName,
				SymbolType: CatchVariableSymbolType,
				TP:         &Type{Kind: ErratumKind},
				Span:       stm.CatchSpan,
			})
		}
		analyzer.analyzeBlock(stm.Catch)
		analyzer.popScope()
	}
	analyzer.analyzeBlock(stm.Finally)
}

func (analyzer *Analyzer) analyzeReturn(stm *ReturnStatementAst) {
	frame := analyzer.frame()
	var valueTP *Type = vacuumType
	if stm.Value != nil {
		valueTP = analyzer.analyzeExpression(stm.Value)
	}
	if !frame.returns {
		analyzer.makeSemanticError(ErrReturnOutsideFunction, stm.Span())
		return
	}
	if frame.returnTP == nil || frame.generator {
		return
	}
	if frame.returnTP.Kind == VacuumKind && stm.Value == nil {
		return
	}
	if valueTP.Kind == VacuumKind && frame.returnTP.Kind != VacuumKind ||
		valueTP.Kind != VacuumKind && !assignable(frame.returnTP, valueTP) {
		analyzer.makeSemanticError(ErrReturnTypeMismatch, stm.Span(), frame.funcName, frame.returnTP, valueTP)
	}
}

// analyzeImport resolves the imported module and binds every imported name. Names are
// bound even when the module failed so that later references are not also reported.
func (analyzer *Analyzer) analyzeImport(stm *ImportStatementAst) {
	record := analyzer.resolveImport(stm)
	stm.module = record
	for _, spec := range stm.Specifiers {
		symbol := &SymbolDesc{
			Name:       spec.LocalName(),
			SymbolType: ImportSymbolType,
			TP:         unknownType,
			Span:       spec.Span(),
		}
		if record != nil && record.State == ModuleResolved {
			exported, ok := record.Exports[spec.Name]
			if !ok {
				analyzer.makeSemanticError(ErrNotExported, spec.Span(), stm.Source, spec.Name)
			} else {
				symbol.TP, symbol.Members = exported.TP, exported.Members
				symbol.Async, symbol.Generator = exported.Async, exported.Generator
			}
		}
		spec.symbolDesc = analyzer.define(symbol)
	}
}

func (analyzer *Analyzer) resolveImport(stm *ImportStatementAst) *ModuleRecord {
	target := ResolveImportPath(analyzer.file, stm.Source)
	if record, ok := analyzer.cache.Get(target); ok {
		switch {
		case record.State == ModuleResolving:
			analyzer.makeSemanticError(ErrCircularImport, stm.SourceSpan, analyzer.cache.cycle(target))
			return nil
		case record.LoadError != nil:
			analyzer.makeSemanticError(ErrModuleNotFound, stm.SourceSpan, stm.Source, record.LoadError)
		case record.State == ModuleFailed:
			analyzer.makeSemanticError(ErrModuleHasErrors, stm.SourceSpan, stm.Source)
		}
		return record
	}
	record := analyzer.cache.begin(target)
	source, err := analyzer.loader.Load(target)
	if err != nil {
		record.LoadError = err
		analyzer.cache.finish(record, ModuleFailed)
		analyzer.makeSemanticError(ErrModuleNotFound, stm.SourceSpan, stm.Source, err)
		return record
	}
	record.Source = source
	tokens, diagnostics := NewTokenizer(target, analyzer.lexicon).Tokenize(strings.NewReader(source))
	program, parseDiagnostics := Parse(target, tokens)
	record.Program = program
	record.Diagnostics = append(diagnostics, parseDiagnostics...)
	analyzer.diagnostics = append(analyzer.diagnostics, record.Diagnostics...)
	if HasErrors(record.Diagnostics) {
		analyzer.cache.finish(record, ModuleFailed)
		analyzer.makeSemanticError(ErrModuleHasErrors, stm.SourceSpan, stm.Source)
		return record
	}
	sub := &Analyzer{file: target, loader: analyzer.loader, cache: analyzer.cache, lexicon: analyzer.lexicon}
	sub.analyzeModule(record)
	record.Diagnostics = append(record.Diagnostics, sub.diagnostics...)
	analyzer.diagnostics = append(analyzer.diagnostics, sub.diagnostics...)
	analyzer.cache.finish(record, ModuleResolved)
	return record
}

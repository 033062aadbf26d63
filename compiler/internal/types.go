package internal

import (
	"strings"
)

type TypeKind int

const (
	// UnknownKind is the type of anything without an annotation. It is compatible with
	// every other type.
	UnknownKind TypeKind = iota
	NumerusKind
	FractusKind
	TextusKind
	BivalensKind
	VacuumKind
	NihilKind
	ListaKind
	TabulaKind
	CopiaKind
	PromissumKind
	IgnotumKind
	ErratumKind
	GenusKind
	FunctionKind
)

// builtinTypeKinds maps the lemma of every built-in type name to its kind.
var builtinTypeKinds = map[string]TypeKind{
	"numerus":   NumerusKind,
	"fractus":   FractusKind,
	"textus":    TextusKind,
	"bivalens":  BivalensKind,
	"vacuum":    VacuumKind,
	"lista":     ListaKind,
	"tabula":    TabulaKind,
	"copia":     CopiaKind,
	"promissum": PromissumKind,
	"ignotum":   IgnotumKind,
	"erratum":   ErratumKind,
}

type Type struct {
	Kind     TypeKind
	Name     string // genus name
	Params   []*Type
	Nullable bool

	// Function types.
	Return    *Type
	Async     bool
	Generator bool
}

var (
	unknownType  = &Type{Kind: UnknownKind}
	numerusType  = &Type{Kind: NumerusKind}
	fractusType  = &Type{Kind: FractusKind}
	textusType   = &Type{Kind: TextusKind}
	bivalensType = &Type{Kind: BivalensKind}
	vacuumType   = &Type{Kind: VacuumKind}
	nihilType    = &Type{Kind: NihilKind}
)

func listOf(elem *Type) *Type {
	return &Type{Kind: ListaKind, Params: []*Type{elem}}
}

func promiseOf(elem *Type) *Type {
	return &Type{Kind: PromissumKind, Params: []*Type{elem}}
}

func (t *Type) String() string {
	if t == nil {
		return "ignotum"
	}
	var s string
	switch t.Kind {
	case UnknownKind:
		return "?"
	case NihilKind:
		return "nihil"
	case GenusKind:
		s = t.Name
	case FunctionKind:
		s = "functio"
		if t.Return != nil {
			s += " -> " + t.Return.String()
		}
		return s
	default:
		for name, kind := range builtinTypeKinds {
			if kind == t.Kind {
				s = name
			}
		}
	}
	if len(t.Params) > 0 {
		params := make([]string, len(t.Params))
		for i, p := range t.Params {
			params[i] = p.String()
		}
		s += "<" + strings.Join(params, ", ") + ">"
	}
	if t.Nullable {
		s += "?"
	}
	return s
}

func (t *Type) isUnknown() bool {
	return t == nil || t.Kind == UnknownKind || t.Kind == IgnotumKind
}

func (t *Type) isNumeric() bool {
	return t.Kind == NumerusKind || t.Kind == FractusKind
}

func (t *Type) param(i int) *Type {
	if t == nil || i >= len(t.Params) {
		return unknownType
	}
	return t.Params[i]
}

func (t *Type) nonNull() *Type {
	if t == nil || !t.Nullable {
		return t
	}
	c := *t
	c.Nullable = false
	return &c
}

// assignable reports whether a value of type value can be stored where target is expected.
func assignable(target, value *Type) bool {
	if target.isUnknown() || value.isUnknown() {
		return true
	}
	if value.Kind == NihilKind {
		return target.Nullable
	}
	if value.Nullable && !target.Nullable {
		return false
	}
	if target.Kind == FractusKind && value.Kind == NumerusKind {
		return true
	}
	if target.Kind != value.Kind {
		return false
	}
	switch target.Kind {
	case GenusKind:
		return target.Name == value.Name
	case FunctionKind:
		return true
	}
	if len(target.Params) == 0 || len(value.Params) == 0 {
		return true
	}
	for i := range target.Params {
		if i < len(value.Params) && !assignable(target.Params[i], value.Params[i]) {
			return false
		}
	}
	return true
}

// comparableTypes reports whether op may compare left with right.
func comparableTypes(op *OpAst, left, right *Type) bool {
	if left.isUnknown() || right.isUnknown() {
		return true
	}
	if op.IsEquality() {
		if left.Kind == NihilKind || right.Kind == NihilKind {
			return true
		}
		if left.isNumeric() && right.isNumeric() {
			return true
		}
		return assignable(left.nonNull(), right.nonNull()) || assignable(right.nonNull(), left.nonNull())
	}
	if left.Nullable || right.Nullable {
		return false
	}
	if left.isNumeric() && right.isNumeric() {
		return true
	}
	return left.Kind == TextusKind && right.Kind == TextusKind
}

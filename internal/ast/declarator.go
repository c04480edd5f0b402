package ast

import (
	"cmm/internal/source"
)

type DeclaratorKind uint8

const (
	DeclaratorName DeclaratorKind = iota
	DeclaratorAbstract // без имени: база абстрактного декларатора
	DeclaratorPointer
	DeclaratorArray
	DeclaratorFunction
)

var declaratorKindNames = [...]string{
	DeclaratorName:     "Name",
	DeclaratorAbstract: "Abstract",
	DeclaratorPointer:  "Pointer",
	DeclaratorArray:    "Array",
	DeclaratorFunction: "Function",
}

func (k DeclaratorKind) String() string {
	if int(k) < len(declaratorKindNames) {
		return declaratorKindNames[k]
	}
	return "Declarator(?)"
}

// Declarator is one layer of a declarator chain. Read from the name
// outwards: for `*a[3]` the chain is Pointer -> Array -> Name, an array of
// pointers; for `(*f)(void)` it is Function -> Pointer -> Name.
type Declarator struct {
	Kind  DeclaratorKind
	Span  source.Span
	Inner DeclaratorID
	Name  string   // DeclaratorName
	Quals []string // pointer and array qualifiers
	Size  ExprID   // DeclaratorArray; NoExprID for []
	// Static marks `[static N]` array parameters.
	Static   bool
	Params   []DeclID // DeclaratorFunction
	Variadic bool
}

type Declarators struct {
	Arena *Arena[Declarator]
}

func NewDeclarators(capHint uint) *Declarators {
	if capHint == 0 {
		capHint = 1 << 7
	}
	return &Declarators{Arena: NewArena[Declarator](capHint)}
}

func (d *Declarators) New(decl Declarator) DeclaratorID {
	return DeclaratorID(d.Arena.Allocate(decl))
}

func (d *Declarators) Get(id DeclaratorID) *Declarator {
	return d.Arena.Get(uint32(id))
}

// Name returns the identifier declared by the chain, or "" for an abstract declarator.
func (d *Declarators) Name(id DeclaratorID) string {
	for id.IsValid() {
		decl := d.Get(id)
		if decl.Kind == DeclaratorName {
			return decl.Name
		}
		id = decl.Inner
	}
	return ""
}

// IsFunction reports whether the layer applied directly to the name is a
// function declarator, i.e. the chain declares a function and not a pointer to one.
func (d *Declarators) IsFunction(id DeclaratorID) bool {
	var last *Declarator
	for id.IsValid() {
		decl := d.Get(id)
		if decl.Kind == DeclaratorName {
			break
		}
		last = decl
		id = decl.Inner
	}
	return last != nil && last.Kind == DeclaratorFunction
}

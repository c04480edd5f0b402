package ast

import (
	"cmm/internal/source"
	"cmm/internal/token"
)

type DeclKind uint8

const (
	DeclVar          DeclKind = iota // declaration с init-declarator'ами
	DeclFunc                         // определение функции
	DeclParam                        // параметр функции
	DeclRecord                       // struct / union
	DeclField                        // объявление полей внутри record
	DeclEnum                         // enum
	DeclEnumerator                   // константа enum
	DeclStaticAssert                 // _Static_assert
	DeclTypeName                     // type-name в cast, sizeof, compound literal
)

var declKindNames = [...]string{
	DeclVar:          "Declaration",
	DeclFunc:         "FunctionDef",
	DeclParam:        "Param",
	DeclRecord:       "Record",
	DeclField:        "Field",
	DeclEnum:         "Enum",
	DeclEnumerator:   "Enumerator",
	DeclStaticAssert: "StaticAssert",
	DeclTypeName:     "TypeName",
}

func (k DeclKind) String() string {
	if int(k) < len(declKindNames) {
		return declKindNames[k]
	}
	return "Decl(?)"
}

type Decl struct {
	Kind    DeclKind
	Span    source.Span
	Payload PayloadID
}

type SpecKind uint8

const (
	SpecStorage   SpecKind = iota // typedef extern static ...
	SpecQualifier                 // const volatile restrict _Atomic
	SpecFunction                  // inline _Noreturn
	SpecType                      // int char unsigned ...
	SpecTypedefName
	SpecTag // struct/union/enum; Spec.Tag указывает на объявление
)

// Spec is one declaration specifier in source order.
type Spec struct {
	Kind SpecKind
	Tok  token.Kind // ключевое слово; для SpecTypedefName — Ident
	Name string
	Tag  DeclID
}

// DeclSpecs is the specifier list shared by every declaration form.
type DeclSpecs struct {
	Span  source.Span
	Items []Spec
}

func (s DeclSpecs) IsTypedef() bool {
	for _, sp := range s.Items {
		if sp.Kind == SpecStorage && sp.Tok == token.KwTypedef {
			return true
		}
	}
	return false
}

// HasType reports whether a type specifier (basic, typedef name or tag) was given.
func (s DeclSpecs) HasType() bool {
	for _, sp := range s.Items {
		switch sp.Kind {
		case SpecType, SpecTypedefName, SpecTag:
			return true
		}
	}
	return false
}

type InitDeclarator struct {
	Declarator DeclaratorID
	Init       ExprID
}

type DeclVarData struct {
	Specs DeclSpecs
	Inits []InitDeclarator
}

type DeclFuncData struct {
	Specs      DeclSpecs
	Declarator DeclaratorID
	Body       StmtID
}

// DeclParamData.Declarator may be absent or abstract.
type DeclParamData struct {
	Specs      DeclSpecs
	Declarator DeclaratorID
}

type DeclRecordData struct {
	Union   bool
	Name    string // пусто у анонимных
	HasBody bool
	Fields  []DeclID
}

type FieldDeclarator struct {
	Declarator DeclaratorID
	Width      ExprID // битовое поле
}

type DeclFieldData struct {
	Specs       DeclSpecs
	Declarators []FieldDeclarator
}

type DeclEnumData struct {
	Name        string
	HasBody     bool
	Enumerators []DeclID
}

type DeclEnumeratorData struct {
	Name  string
	Value ExprID
}

type DeclStaticAssertData struct {
	Cond    ExprID
	Message string // может отсутствовать (C23)
}

type DeclTypeNameData struct {
	Specs      DeclSpecs
	Declarator DeclaratorID
}

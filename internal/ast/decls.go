package ast

import (
	"cmm/internal/source"
)

type Decls struct {
	Arena         *Arena[Decl]
	Vars          *Arena[DeclVarData]
	Funcs         *Arena[DeclFuncData]
	Params        *Arena[DeclParamData]
	Records       *Arena[DeclRecordData]
	Fields        *Arena[DeclFieldData]
	Enums         *Arena[DeclEnumData]
	Enumerators   *Arena[DeclEnumeratorData]
	StaticAsserts *Arena[DeclStaticAssertData]
	TypeNames     *Arena[DeclTypeNameData]
}

func NewDecls(capHint uint) *Decls {
	if capHint == 0 {
		capHint = 1 << 7
	}
	return &Decls{
		Arena:         NewArena[Decl](capHint),
		Vars:          NewArena[DeclVarData](capHint),
		Funcs:         NewArena[DeclFuncData](capHint),
		Params:        NewArena[DeclParamData](capHint),
		Records:       NewArena[DeclRecordData](capHint),
		Fields:        NewArena[DeclFieldData](capHint),
		Enums:         NewArena[DeclEnumData](capHint),
		Enumerators:   NewArena[DeclEnumeratorData](capHint),
		StaticAsserts: NewArena[DeclStaticAssertData](capHint),
		TypeNames:     NewArena[DeclTypeNameData](capHint),
	}
}

func (d *Decls) new(kind DeclKind, span source.Span, payload uint32) DeclID {
	return DeclID(d.Arena.Allocate(Decl{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

func (d *Decls) Get(id DeclID) *Decl {
	return d.Arena.Get(uint32(id))
}

func (d *Decls) payload(id DeclID, kind DeclKind) (uint32, bool) {
	decl := d.Get(id)
	if decl == nil || decl.Kind != kind {
		return 0, false
	}
	return uint32(decl.Payload), true
}

func (d *Decls) NewVar(span source.Span, data DeclVarData) DeclID {
	return d.new(DeclVar, span, d.Vars.Allocate(data))
}

func (d *Decls) Var(id DeclID) (*DeclVarData, bool) {
	p, ok := d.payload(id, DeclVar)
	return d.Vars.Get(p), ok
}

func (d *Decls) NewFunc(span source.Span, data DeclFuncData) DeclID {
	return d.new(DeclFunc, span, d.Funcs.Allocate(data))
}

func (d *Decls) Func(id DeclID) (*DeclFuncData, bool) {
	p, ok := d.payload(id, DeclFunc)
	return d.Funcs.Get(p), ok
}

func (d *Decls) NewParam(span source.Span, data DeclParamData) DeclID {
	return d.new(DeclParam, span, d.Params.Allocate(data))
}

func (d *Decls) Param(id DeclID) (*DeclParamData, bool) {
	p, ok := d.payload(id, DeclParam)
	return d.Params.Get(p), ok
}

func (d *Decls) NewRecord(span source.Span, data DeclRecordData) DeclID {
	return d.new(DeclRecord, span, d.Records.Allocate(data))
}

func (d *Decls) Record(id DeclID) (*DeclRecordData, bool) {
	p, ok := d.payload(id, DeclRecord)
	return d.Records.Get(p), ok
}

func (d *Decls) NewField(span source.Span, data DeclFieldData) DeclID {
	return d.new(DeclField, span, d.Fields.Allocate(data))
}

func (d *Decls) Field(id DeclID) (*DeclFieldData, bool) {
	p, ok := d.payload(id, DeclField)
	return d.Fields.Get(p), ok
}

func (d *Decls) NewEnum(span source.Span, data DeclEnumData) DeclID {
	return d.new(DeclEnum, span, d.Enums.Allocate(data))
}

func (d *Decls) Enum(id DeclID) (*DeclEnumData, bool) {
	p, ok := d.payload(id, DeclEnum)
	return d.Enums.Get(p), ok
}

func (d *Decls) NewEnumerator(span source.Span, name string, value ExprID) DeclID {
	return d.new(DeclEnumerator, span, d.Enumerators.Allocate(DeclEnumeratorData{Name: name, Value: value}))
}

func (d *Decls) Enumerator(id DeclID) (*DeclEnumeratorData, bool) {
	p, ok := d.payload(id, DeclEnumerator)
	return d.Enumerators.Get(p), ok
}

func (d *Decls) NewStaticAssert(span source.Span, cond ExprID, msg string) DeclID {
	return d.new(DeclStaticAssert, span, d.StaticAsserts.Allocate(DeclStaticAssertData{Cond: cond, Message: msg}))
}

func (d *Decls) StaticAssert(id DeclID) (*DeclStaticAssertData, bool) {
	p, ok := d.payload(id, DeclStaticAssert)
	return d.StaticAsserts.Get(p), ok
}

func (d *Decls) NewTypeName(span source.Span, data DeclTypeNameData) DeclID {
	return d.new(DeclTypeName, span, d.TypeNames.Allocate(data))
}

func (d *Decls) TypeName(id DeclID) (*DeclTypeNameData, bool) {
	p, ok := d.payload(id, DeclTypeName)
	return d.TypeNames.Get(p), ok
}

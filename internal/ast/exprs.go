package ast

import (
	"cmm/internal/source"
	"cmm/internal/token"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena        *Arena[Expr]
	Idents       *Arena[ExprIdentData]
	Literals     *Arena[ExprLiteralData]
	Unaries      *Arena[ExprUnaryData]
	Postfixes    *Arena[ExprPostfixData]
	Binaries     *Arena[ExprBinaryData]
	Conditionals *Arena[ExprConditionalData]
	Casts        *Arena[ExprCastData]
	Calls        *Arena[ExprCallData]
	Indices      *Arena[ExprIndexData]
	Members      *Arena[ExprMemberData]
	Sizeofs      *Arena[ExprSizeofData]
	CompoundLits *Arena[ExprCompoundLitData]
	InitLists    *Arena[ExprInitListData]
}

func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:        NewArena[Expr](capHint),
		Idents:       NewArena[ExprIdentData](capHint),
		Literals:     NewArena[ExprLiteralData](capHint),
		Unaries:      NewArena[ExprUnaryData](capHint),
		Postfixes:    NewArena[ExprPostfixData](capHint),
		Binaries:     NewArena[ExprBinaryData](capHint),
		Conditionals: NewArena[ExprConditionalData](capHint),
		Casts:        NewArena[ExprCastData](capHint),
		Calls:        NewArena[ExprCallData](capHint),
		Indices:      NewArena[ExprIndexData](capHint),
		Members:      NewArena[ExprMemberData](capHint),
		Sizeofs:      NewArena[ExprSizeofData](capHint),
		CompoundLits: NewArena[ExprCompoundLitData](capHint),
		InitLists:    NewArena[ExprInitListData](capHint),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload uint32) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// payload returns the payload index of id when it has the wanted kind.
func (e *Exprs) payload(id ExprID, kind ExprKind) (uint32, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != kind {
		return 0, false
	}
	return uint32(expr.Payload), true
}

func (e *Exprs) NewIdent(span source.Span, name string) ExprID {
	return e.new(ExprIdent, span, e.Idents.Allocate(ExprIdentData{Name: name}))
}

func (e *Exprs) Ident(id ExprID) (*ExprIdentData, bool) {
	p, ok := e.payload(id, ExprIdent)
	return e.Idents.Get(p), ok
}

func (e *Exprs) NewLiteral(span source.Span, data ExprLiteralData) ExprID {
	return e.new(ExprLiteral, span, e.Literals.Allocate(data))
}

func (e *Exprs) Literal(id ExprID) (*ExprLiteralData, bool) {
	p, ok := e.payload(id, ExprLiteral)
	return e.Literals.Get(p), ok
}

func (e *Exprs) NewUnary(span source.Span, op token.Kind, operand ExprID) ExprID {
	return e.new(ExprUnary, span, e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand}))
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	p, ok := e.payload(id, ExprUnary)
	return e.Unaries.Get(p), ok
}

func (e *Exprs) NewPostfix(span source.Span, op token.Kind, operand ExprID) ExprID {
	return e.new(ExprPostfix, span, e.Postfixes.Allocate(ExprPostfixData{Op: op, Operand: operand}))
}

func (e *Exprs) Postfix(id ExprID) (*ExprPostfixData, bool) {
	p, ok := e.payload(id, ExprPostfix)
	return e.Postfixes.Get(p), ok
}

func (e *Exprs) NewBinary(span source.Span, op token.Kind, left, right ExprID) ExprID {
	return e.new(ExprBinary, span, e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right}))
}

func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	p, ok := e.payload(id, ExprBinary)
	return e.Binaries.Get(p), ok
}

func (e *Exprs) NewConditional(span source.Span, cond, then, els ExprID) ExprID {
	return e.new(ExprConditional, span, e.Conditionals.Allocate(ExprConditionalData{Cond: cond, Then: then, Else: els}))
}

func (e *Exprs) Conditional(id ExprID) (*ExprConditionalData, bool) {
	p, ok := e.payload(id, ExprConditional)
	return e.Conditionals.Get(p), ok
}

func (e *Exprs) NewCast(span source.Span, typ DeclID, operand ExprID) ExprID {
	return e.new(ExprCast, span, e.Casts.Allocate(ExprCastData{Type: typ, Operand: operand}))
}

func (e *Exprs) Cast(id ExprID) (*ExprCastData, bool) {
	p, ok := e.payload(id, ExprCast)
	return e.Casts.Get(p), ok
}

func (e *Exprs) NewCall(span source.Span, callee ExprID, args []ExprID) ExprID {
	return e.new(ExprCall, span, e.Calls.Allocate(ExprCallData{Callee: callee, Args: args}))
}

func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	p, ok := e.payload(id, ExprCall)
	return e.Calls.Get(p), ok
}

func (e *Exprs) NewIndex(span source.Span, base, index ExprID) ExprID {
	return e.new(ExprIndex, span, e.Indices.Allocate(ExprIndexData{Base: base, Index: index}))
}

func (e *Exprs) Index(id ExprID) (*ExprIndexData, bool) {
	p, ok := e.payload(id, ExprIndex)
	return e.Indices.Get(p), ok
}

func (e *Exprs) NewMember(span source.Span, base ExprID, name string, arrow bool) ExprID {
	return e.new(ExprMember, span, e.Members.Allocate(ExprMemberData{Base: base, Name: name, Arrow: arrow}))
}

func (e *Exprs) Member(id ExprID) (*ExprMemberData, bool) {
	p, ok := e.payload(id, ExprMember)
	return e.Members.Get(p), ok
}

func (e *Exprs) NewSizeof(span source.Span, data ExprSizeofData) ExprID {
	return e.new(ExprSizeof, span, e.Sizeofs.Allocate(data))
}

func (e *Exprs) Sizeof(id ExprID) (*ExprSizeofData, bool) {
	p, ok := e.payload(id, ExprSizeof)
	return e.Sizeofs.Get(p), ok
}

func (e *Exprs) NewCompoundLit(span source.Span, typ DeclID, init ExprID) ExprID {
	return e.new(ExprCompoundLit, span, e.CompoundLits.Allocate(ExprCompoundLitData{Type: typ, Init: init}))
}

func (e *Exprs) CompoundLit(id ExprID) (*ExprCompoundLitData, bool) {
	p, ok := e.payload(id, ExprCompoundLit)
	return e.CompoundLits.Get(p), ok
}

func (e *Exprs) NewInitList(span source.Span, items []Initializer) ExprID {
	return e.new(ExprInitList, span, e.InitLists.Allocate(ExprInitListData{Items: items}))
}

func (e *Exprs) InitList(id ExprID) (*ExprInitListData, bool) {
	p, ok := e.payload(id, ExprInitList)
	return e.InitLists.Get(p), ok
}

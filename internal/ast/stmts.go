package ast

import (
	"cmm/internal/source"
)

type Stmts struct {
	Arena     *Arena[Stmt]
	Compounds *Arena[StmtCompoundData]
	Exprs     *Arena[StmtExprData]
	Decls     *Arena[StmtDeclData]
	Ifs       *Arena[StmtIfData]
	Switches  *Arena[StmtSwitchData]
	Whiles    *Arena[StmtWhileData]
	Dos       *Arena[StmtDoData]
	Fors      *Arena[StmtForData]
	Gotos     *Arena[StmtGotoData]
	Returns   *Arena[StmtReturnData]
	Labels    *Arena[StmtLabelData]
	Cases     *Arena[StmtCaseData]
	Defaults  *Arena[StmtDefaultData]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Stmts{
		Arena:     NewArena[Stmt](capHint),
		Compounds: NewArena[StmtCompoundData](capHint),
		Exprs:     NewArena[StmtExprData](capHint),
		Decls:     NewArena[StmtDeclData](capHint),
		Ifs:       NewArena[StmtIfData](capHint),
		Switches:  NewArena[StmtSwitchData](capHint),
		Whiles:    NewArena[StmtWhileData](capHint),
		Dos:       NewArena[StmtDoData](capHint),
		Fors:      NewArena[StmtForData](capHint),
		Gotos:     NewArena[StmtGotoData](capHint),
		Returns:   NewArena[StmtReturnData](capHint),
		Labels:    NewArena[StmtLabelData](capHint),
		Cases:     NewArena[StmtCaseData](capHint),
		Defaults:  NewArena[StmtDefaultData](capHint),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload uint32) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) payload(id StmtID, kind StmtKind) (uint32, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != kind {
		return 0, false
	}
	return uint32(stmt.Payload), true
}

func (s *Stmts) NewCompound(span source.Span, items []StmtID) StmtID {
	return s.new(StmtCompound, span, s.Compounds.Allocate(StmtCompoundData{Items: items}))
}

func (s *Stmts) Compound(id StmtID) (*StmtCompoundData, bool) {
	p, ok := s.payload(id, StmtCompound)
	return s.Compounds.Get(p), ok
}

func (s *Stmts) NewExpr(span source.Span, expr ExprID) StmtID {
	return s.new(StmtExpr, span, s.Exprs.Allocate(StmtExprData{Expr: expr}))
}

func (s *Stmts) Expr(id StmtID) (*StmtExprData, bool) {
	p, ok := s.payload(id, StmtExpr)
	return s.Exprs.Get(p), ok
}

func (s *Stmts) NewDecl(span source.Span, decl DeclID) StmtID {
	return s.new(StmtDecl, span, s.Decls.Allocate(StmtDeclData{Decl: decl}))
}

func (s *Stmts) Decl(id StmtID) (*StmtDeclData, bool) {
	p, ok := s.payload(id, StmtDecl)
	return s.Decls.Get(p), ok
}

func (s *Stmts) NewIf(span source.Span, cond ExprID, then, els StmtID) StmtID {
	return s.new(StmtIf, span, s.Ifs.Allocate(StmtIfData{Cond: cond, Then: then, Else: els}))
}

func (s *Stmts) If(id StmtID) (*StmtIfData, bool) {
	p, ok := s.payload(id, StmtIf)
	return s.Ifs.Get(p), ok
}

func (s *Stmts) NewSwitch(span source.Span, cond ExprID, body StmtID) StmtID {
	return s.new(StmtSwitch, span, s.Switches.Allocate(StmtSwitchData{Cond: cond, Body: body}))
}

func (s *Stmts) Switch(id StmtID) (*StmtSwitchData, bool) {
	p, ok := s.payload(id, StmtSwitch)
	return s.Switches.Get(p), ok
}

func (s *Stmts) NewWhile(span source.Span, cond ExprID, body StmtID) StmtID {
	return s.new(StmtWhile, span, s.Whiles.Allocate(StmtWhileData{Cond: cond, Body: body}))
}

func (s *Stmts) While(id StmtID) (*StmtWhileData, bool) {
	p, ok := s.payload(id, StmtWhile)
	return s.Whiles.Get(p), ok
}

func (s *Stmts) NewDo(span source.Span, body StmtID, cond ExprID) StmtID {
	return s.new(StmtDo, span, s.Dos.Allocate(StmtDoData{Body: body, Cond: cond}))
}

func (s *Stmts) Do(id StmtID) (*StmtDoData, bool) {
	p, ok := s.payload(id, StmtDo)
	return s.Dos.Get(p), ok
}

func (s *Stmts) NewFor(span source.Span, data StmtForData) StmtID {
	return s.new(StmtFor, span, s.Fors.Allocate(data))
}

func (s *Stmts) For(id StmtID) (*StmtForData, bool) {
	p, ok := s.payload(id, StmtFor)
	return s.Fors.Get(p), ok
}

func (s *Stmts) NewGoto(span source.Span, label string) StmtID {
	return s.new(StmtGoto, span, s.Gotos.Allocate(StmtGotoData{Label: label}))
}

func (s *Stmts) Goto(id StmtID) (*StmtGotoData, bool) {
	p, ok := s.payload(id, StmtGoto)
	return s.Gotos.Get(p), ok
}

// NewJump creates continue/break, which carry no payload.
func (s *Stmts) NewJump(kind StmtKind, span source.Span) StmtID {
	return s.new(kind, span, 0)
}

func (s *Stmts) NewReturn(span source.Span, value ExprID) StmtID {
	return s.new(StmtReturn, span, s.Returns.Allocate(StmtReturnData{Value: value}))
}

func (s *Stmts) Return(id StmtID) (*StmtReturnData, bool) {
	p, ok := s.payload(id, StmtReturn)
	return s.Returns.Get(p), ok
}

func (s *Stmts) NewLabel(span source.Span, label string, body StmtID) StmtID {
	return s.new(StmtLabel, span, s.Labels.Allocate(StmtLabelData{Label: label, Body: body}))
}

func (s *Stmts) Label(id StmtID) (*StmtLabelData, bool) {
	p, ok := s.payload(id, StmtLabel)
	return s.Labels.Get(p), ok
}

func (s *Stmts) NewCase(span source.Span, value ExprID, body StmtID) StmtID {
	return s.new(StmtCase, span, s.Cases.Allocate(StmtCaseData{Value: value, Body: body}))
}

func (s *Stmts) Case(id StmtID) (*StmtCaseData, bool) {
	p, ok := s.payload(id, StmtCase)
	return s.Cases.Get(p), ok
}

func (s *Stmts) NewDefault(span source.Span, body StmtID) StmtID {
	return s.new(StmtDefault, span, s.Defaults.Allocate(StmtDefaultData{Body: body}))
}

func (s *Stmts) Default(id StmtID) (*StmtDefaultData, bool) {
	p, ok := s.payload(id, StmtDefault)
	return s.Defaults.Get(p), ok
}

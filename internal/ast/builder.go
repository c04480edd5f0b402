package ast

import (
	"cmm/internal/source"
)

type Hints struct{ Exprs, Stmts, Decls uint }

type Builder struct {
	Exprs       *Exprs
	Stmts       *Stmts
	Decls       *Decls
	Declarators *Declarators
}

func NewBuilder(hints Hints) *Builder {
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 8
	}
	if hints.Decls == 0 {
		hints.Decls = 1 << 7
	}
	return &Builder{
		Exprs:       NewExprs(hints.Exprs),
		Stmts:       NewStmts(hints.Stmts),
		Decls:       NewDecls(hints.Decls),
		Declarators: NewDeclarators(hints.Decls),
	}
}

// Unit is a parsed translation unit: its external declarations in order.
type Unit struct {
	Path  string
	Span  source.Span
	Decls []DeclID
}

package ast

import (
	"cmm/internal/source"
)

type StmtKind uint8

const (
	StmtCompound StmtKind = iota
	StmtExpr              // выражение или пустой ';'
	StmtDecl
	StmtIf
	StmtSwitch
	StmtWhile
	StmtDo
	StmtFor
	StmtGoto
	StmtContinue
	StmtBreak
	StmtReturn
	StmtLabel
	StmtCase
	StmtDefault
)

var stmtKindNames = [...]string{
	StmtCompound: "Compound",
	StmtExpr:     "ExprStmt",
	StmtDecl:     "DeclStmt",
	StmtIf:       "If",
	StmtSwitch:   "Switch",
	StmtWhile:    "While",
	StmtDo:       "Do",
	StmtFor:      "For",
	StmtGoto:     "Goto",
	StmtContinue: "Continue",
	StmtBreak:    "Break",
	StmtReturn:   "Return",
	StmtLabel:    "Label",
	StmtCase:     "Case",
	StmtDefault:  "Default",
}

func (k StmtKind) String() string {
	if int(k) < len(stmtKindNames) {
		return stmtKindNames[k]
	}
	return "Stmt(?)"
}

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

// StmtCompoundData holds block items; declarations appear as StmtDecl.
type StmtCompoundData struct {
	Items []StmtID
}

// StmtExprData.Expr is NoExprID for the empty statement.
type StmtExprData struct {
	Expr ExprID
}

type StmtDeclData struct {
	Decl DeclID
}

type StmtIfData struct {
	Cond ExprID
	Then StmtID
	Else StmtID
}

type StmtSwitchData struct {
	Cond ExprID
	Body StmtID
}

type StmtWhileData struct {
	Cond ExprID
	Body StmtID
}

type StmtDoData struct {
	Body StmtID
	Cond ExprID
}

// StmtForData: Init is either InitDecl or InitExpr (or neither).
type StmtForData struct {
	InitDecl DeclID
	InitExpr ExprID
	Cond     ExprID
	Post     ExprID
	Body     StmtID
}

type StmtGotoData struct {
	Label string
}

type StmtReturnData struct {
	Value ExprID
}

type StmtLabelData struct {
	Label string
	Body  StmtID
}

type StmtCaseData struct {
	Value ExprID
	Body  StmtID
}

type StmtDefaultData struct {
	Body StmtID
}

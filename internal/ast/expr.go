package ast

import (
	"cmm/internal/source"
	"cmm/internal/token"
)

type ExprKind uint8

const (
	ExprIdent ExprKind = iota
	ExprLiteral
	ExprUnary       // префиксные операторы
	ExprPostfix     // x++ x--
	ExprBinary      // включая присваивания и запятую
	ExprConditional // c ? a : b
	ExprCast
	ExprCall
	ExprIndex
	ExprMember // a.b a->b
	ExprSizeof // sizeof и alignof
	ExprCompoundLit
	ExprInitList
)

var exprKindNames = [...]string{
	ExprIdent:       "Ident",
	ExprLiteral:     "Literal",
	ExprUnary:       "Unary",
	ExprPostfix:     "Postfix",
	ExprBinary:      "Binary",
	ExprConditional: "Conditional",
	ExprCast:        "Cast",
	ExprCall:        "Call",
	ExprIndex:       "Index",
	ExprMember:      "Member",
	ExprSizeof:      "Sizeof",
	ExprCompoundLit: "CompoundLiteral",
	ExprInitList:    "InitList",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return "Expr(?)"
}

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

type ExprIdentData struct {
	Name string
}

type LiteralKind uint8

const (
	LitInt LiteralKind = iota
	LitFloat
	LitChar
	LitString
	LitBool    // true false
	LitNullptr // nullptr
)

type ExprLiteralData struct {
	Kind LiteralKind
	Text string // как в исходнике
	// Content and Prefix are set for character and string literals.
	Content string
	Prefix  string
}

// Operators keep the punctuator kind they were spelled with.
type ExprUnaryData struct {
	Op      token.Kind
	Operand ExprID
}

type ExprPostfixData struct {
	Op      token.Kind
	Operand ExprID
}

type ExprBinaryData struct {
	Op    token.Kind
	Left  ExprID
	Right ExprID
}

type ExprConditionalData struct {
	Cond ExprID
	Then ExprID
	Else ExprID
}

type ExprCastData struct {
	Type    DeclID // DeclTypeName
	Operand ExprID
}

type ExprCallData struct {
	Callee ExprID
	Args   []ExprID
}

type ExprIndexData struct {
	Base  ExprID
	Index ExprID
}

type ExprMemberData struct {
	Base  ExprID
	Name  string
	Arrow bool
}

// ExprSizeofData has exactly one of Type and Operand.
type ExprSizeofData struct {
	Op      token.Kind // KwSizeof или KwAlignof
	Type    DeclID
	Operand ExprID
}

type ExprCompoundLitData struct {
	Type DeclID
	Init ExprID // ExprInitList
}

// Designator is one `.field` or `[index]` step.
type Designator struct {
	Field string
	Index ExprID
}

type Initializer struct {
	Designators []Designator
	Value       ExprID
}

type ExprInitListData struct {
	Items []Initializer
}

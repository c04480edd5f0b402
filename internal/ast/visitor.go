package ast

// Visitor has one method per node variant. Payload-free variants get only the ID.
type Visitor interface {
	// exprs
	VisitIdent(id ExprID, data *ExprIdentData)
	VisitLiteral(id ExprID, data *ExprLiteralData)
	VisitUnary(id ExprID, data *ExprUnaryData)
	VisitPostfix(id ExprID, data *ExprPostfixData)
	VisitBinary(id ExprID, data *ExprBinaryData)
	VisitConditional(id ExprID, data *ExprConditionalData)
	VisitCast(id ExprID, data *ExprCastData)
	VisitCall(id ExprID, data *ExprCallData)
	VisitIndex(id ExprID, data *ExprIndexData)
	VisitMember(id ExprID, data *ExprMemberData)
	VisitSizeof(id ExprID, data *ExprSizeofData)
	VisitCompoundLit(id ExprID, data *ExprCompoundLitData)
	VisitInitList(id ExprID, data *ExprInitListData)
	// stmts
	VisitCompound(id StmtID, data *StmtCompoundData)
	VisitExprStmt(id StmtID, data *StmtExprData)
	VisitDeclStmt(id StmtID, data *StmtDeclData)
	VisitIf(id StmtID, data *StmtIfData)
	VisitSwitch(id StmtID, data *StmtSwitchData)
	VisitWhile(id StmtID, data *StmtWhileData)
	VisitDo(id StmtID, data *StmtDoData)
	VisitFor(id StmtID, data *StmtForData)
	VisitGoto(id StmtID, data *StmtGotoData)
	VisitContinue(id StmtID)
	VisitBreak(id StmtID)
	VisitReturn(id StmtID, data *StmtReturnData)
	VisitLabel(id StmtID, data *StmtLabelData)
	VisitCase(id StmtID, data *StmtCaseData)
	VisitDefault(id StmtID, data *StmtDefaultData)
	// decls
	VisitVarDecl(id DeclID, data *DeclVarData)
	VisitFuncDecl(id DeclID, data *DeclFuncData)
	VisitParam(id DeclID, data *DeclParamData)
	VisitRecord(id DeclID, data *DeclRecordData)
	VisitField(id DeclID, data *DeclFieldData)
	VisitEnum(id DeclID, data *DeclEnumData)
	VisitEnumerator(id DeclID, data *DeclEnumeratorData)
	VisitStaticAssert(id DeclID, data *DeclStaticAssertData)
	VisitTypeName(id DeclID, data *DeclTypeNameData)
}

// AcceptExpr calls the Visitor method matching the variant of id.
func (b *Builder) AcceptExpr(v Visitor, id ExprID) {
	n := b.Exprs.Get(id)
	if n == nil {
		return
	}
	p := uint32(n.Payload)
	switch n.Kind {
	case ExprIdent:
		v.VisitIdent(id, b.Exprs.Idents.Get(p))
	case ExprLiteral:
		v.VisitLiteral(id, b.Exprs.Literals.Get(p))
	case ExprUnary:
		v.VisitUnary(id, b.Exprs.Unaries.Get(p))
	case ExprPostfix:
		v.VisitPostfix(id, b.Exprs.Postfixes.Get(p))
	case ExprBinary:
		v.VisitBinary(id, b.Exprs.Binaries.Get(p))
	case ExprConditional:
		v.VisitConditional(id, b.Exprs.Conditionals.Get(p))
	case ExprCast:
		v.VisitCast(id, b.Exprs.Casts.Get(p))
	case ExprCall:
		v.VisitCall(id, b.Exprs.Calls.Get(p))
	case ExprIndex:
		v.VisitIndex(id, b.Exprs.Indices.Get(p))
	case ExprMember:
		v.VisitMember(id, b.Exprs.Members.Get(p))
	case ExprSizeof:
		v.VisitSizeof(id, b.Exprs.Sizeofs.Get(p))
	case ExprCompoundLit:
		v.VisitCompoundLit(id, b.Exprs.CompoundLits.Get(p))
	case ExprInitList:
		v.VisitInitList(id, b.Exprs.InitLists.Get(p))
	}
}

// AcceptStmt calls the Visitor method matching the variant of id.
func (b *Builder) AcceptStmt(v Visitor, id StmtID) {
	n := b.Stmts.Get(id)
	if n == nil {
		return
	}
	p := uint32(n.Payload)
	switch n.Kind {
	case StmtCompound:
		v.VisitCompound(id, b.Stmts.Compounds.Get(p))
	case StmtExpr:
		v.VisitExprStmt(id, b.Stmts.Exprs.Get(p))
	case StmtDecl:
		v.VisitDeclStmt(id, b.Stmts.Decls.Get(p))
	case StmtIf:
		v.VisitIf(id, b.Stmts.Ifs.Get(p))
	case StmtSwitch:
		v.VisitSwitch(id, b.Stmts.Switches.Get(p))
	case StmtWhile:
		v.VisitWhile(id, b.Stmts.Whiles.Get(p))
	case StmtDo:
		v.VisitDo(id, b.Stmts.Dos.Get(p))
	case StmtFor:
		v.VisitFor(id, b.Stmts.Fors.Get(p))
	case StmtGoto:
		v.VisitGoto(id, b.Stmts.Gotos.Get(p))
	case StmtContinue:
		v.VisitContinue(id)
	case StmtBreak:
		v.VisitBreak(id)
	case StmtReturn:
		v.VisitReturn(id, b.Stmts.Returns.Get(p))
	case StmtLabel:
		v.VisitLabel(id, b.Stmts.Labels.Get(p))
	case StmtCase:
		v.VisitCase(id, b.Stmts.Cases.Get(p))
	case StmtDefault:
		v.VisitDefault(id, b.Stmts.Defaults.Get(p))
	}
}

// AcceptDecl calls the Visitor method matching the variant of id.
func (b *Builder) AcceptDecl(v Visitor, id DeclID) {
	n := b.Decls.Get(id)
	if n == nil {
		return
	}
	p := uint32(n.Payload)
	switch n.Kind {
	case DeclVar:
		v.VisitVarDecl(id, b.Decls.Vars.Get(p))
	case DeclFunc:
		v.VisitFuncDecl(id, b.Decls.Funcs.Get(p))
	case DeclParam:
		v.VisitParam(id, b.Decls.Params.Get(p))
	case DeclRecord:
		v.VisitRecord(id, b.Decls.Records.Get(p))
	case DeclField:
		v.VisitField(id, b.Decls.Fields.Get(p))
	case DeclEnum:
		v.VisitEnum(id, b.Decls.Enums.Get(p))
	case DeclEnumerator:
		v.VisitEnumerator(id, b.Decls.Enumerators.Get(p))
	case DeclStaticAssert:
		v.VisitStaticAssert(id, b.Decls.StaticAsserts.Get(p))
	case DeclTypeName:
		v.VisitTypeName(id, b.Decls.TypeNames.Get(p))
	}
}

type Category uint8

const (
	CategoryExpr Category = iota
	CategoryStmt
	CategoryDecl
)

func (c Category) String() string {
	switch c {
	case CategoryExpr:
		return "expr"
	case CategoryStmt:
		return "stmt"
	case CategoryDecl:
		return "decl"
	}
	return "?"
}

// Node identifies a node of any category.
type Node struct {
	Category Category
	ID       uint32
}

// Inspector is a Visitor assembled from optional funcs. For every node the
// first non-nil of variant func, category func (OnExpr, OnStmt, OnDecl) and
// OnNode is called.
type Inspector struct {
	Ident        func(ExprID, *ExprIdentData)
	Literal      func(ExprID, *ExprLiteralData)
	Unary        func(ExprID, *ExprUnaryData)
	Postfix      func(ExprID, *ExprPostfixData)
	Binary       func(ExprID, *ExprBinaryData)
	Conditional  func(ExprID, *ExprConditionalData)
	Cast         func(ExprID, *ExprCastData)
	Call         func(ExprID, *ExprCallData)
	Index        func(ExprID, *ExprIndexData)
	Member       func(ExprID, *ExprMemberData)
	Sizeof       func(ExprID, *ExprSizeofData)
	CompoundLit  func(ExprID, *ExprCompoundLitData)
	InitList     func(ExprID, *ExprInitListData)
	Compound     func(StmtID, *StmtCompoundData)
	ExprStmt     func(StmtID, *StmtExprData)
	DeclStmt     func(StmtID, *StmtDeclData)
	If           func(StmtID, *StmtIfData)
	Switch       func(StmtID, *StmtSwitchData)
	While        func(StmtID, *StmtWhileData)
	Do           func(StmtID, *StmtDoData)
	For          func(StmtID, *StmtForData)
	Goto         func(StmtID, *StmtGotoData)
	Continue     func(StmtID)
	Break        func(StmtID)
	Return       func(StmtID, *StmtReturnData)
	Label        func(StmtID, *StmtLabelData)
	Case         func(StmtID, *StmtCaseData)
	Default      func(StmtID, *StmtDefaultData)
	VarDecl      func(DeclID, *DeclVarData)
	FuncDecl     func(DeclID, *DeclFuncData)
	Param        func(DeclID, *DeclParamData)
	Record       func(DeclID, *DeclRecordData)
	Field        func(DeclID, *DeclFieldData)
	Enum         func(DeclID, *DeclEnumData)
	Enumerator   func(DeclID, *DeclEnumeratorData)
	StaticAssert func(DeclID, *DeclStaticAssertData)
	TypeName     func(DeclID, *DeclTypeNameData)

	OnExpr func(ExprID)
	OnStmt func(StmtID)
	OnDecl func(DeclID)
	OnNode func(Node)
}

var _ Visitor = (*Inspector)(nil)

func (in *Inspector) fallbackExpr(id ExprID) {
	switch {
	case in.OnExpr != nil:
		in.OnExpr(id)
	case in.OnNode != nil:
		in.OnNode(Node{Category: CategoryExpr, ID: uint32(id)})
	}
}

func (in *Inspector) fallbackStmt(id StmtID) {
	switch {
	case in.OnStmt != nil:
		in.OnStmt(id)
	case in.OnNode != nil:
		in.OnNode(Node{Category: CategoryStmt, ID: uint32(id)})
	}
}

func (in *Inspector) fallbackDecl(id DeclID) {
	switch {
	case in.OnDecl != nil:
		in.OnDecl(id)
	case in.OnNode != nil:
		in.OnNode(Node{Category: CategoryDecl, ID: uint32(id)})
	}
}

func (in *Inspector) VisitIdent(id ExprID, data *ExprIdentData) {
	if in.Ident != nil {
		in.Ident(id, data)
		return
	}
	in.fallbackExpr(id)
}

func (in *Inspector) VisitLiteral(id ExprID, data *ExprLiteralData) {
	if in.Literal != nil {
		in.Literal(id, data)
		return
	}
	in.fallbackExpr(id)
}

func (in *Inspector) VisitUnary(id ExprID, data *ExprUnaryData) {
	if in.Unary != nil {
		in.Unary(id, data)
		return
	}
	in.fallbackExpr(id)
}

func (in *Inspector) VisitPostfix(id ExprID, data *ExprPostfixData) {
	if in.Postfix != nil {
		in.Postfix(id, data)
		return
	}
	in.fallbackExpr(id)
}

func (in *Inspector) VisitBinary(id ExprID, data *ExprBinaryData) {
	if in.Binary != nil {
		in.Binary(id, data)
		return
	}
	in.fallbackExpr(id)
}

func (in *Inspector) VisitConditional(id ExprID, data *ExprConditionalData) {
	if in.Conditional != nil {
		in.Conditional(id, data)
		return
	}
	in.fallbackExpr(id)
}

func (in *Inspector) VisitCast(id ExprID, data *ExprCastData) {
	if in.Cast != nil {
		in.Cast(id, data)
		return
	}
	in.fallbackExpr(id)
}

func (in *Inspector) VisitCall(id ExprID, data *ExprCallData) {
	if in.Call != nil {
		in.Call(id, data)
		return
	}
	in.fallbackExpr(id)
}

func (in *Inspector) VisitIndex(id ExprID, data *ExprIndexData) {
	if in.Index != nil {
		in.Index(id, data)
		return
	}
	in.fallbackExpr(id)
}

func (in *Inspector) VisitMember(id ExprID, data *ExprMemberData) {
	if in.Member != nil {
		in.Member(id, data)
		return
	}
	in.fallbackExpr(id)
}

func (in *Inspector) VisitSizeof(id ExprID, data *ExprSizeofData) {
	if in.Sizeof != nil {
		in.Sizeof(id, data)
		return
	}
	in.fallbackExpr(id)
}

func (in *Inspector) VisitCompoundLit(id ExprID, data *ExprCompoundLitData) {
	if in.CompoundLit != nil {
		in.CompoundLit(id, data)
		return
	}
	in.fallbackExpr(id)
}

func (in *Inspector) VisitInitList(id ExprID, data *ExprInitListData) {
	if in.InitList != nil {
		in.InitList(id, data)
		return
	}
	in.fallbackExpr(id)
}

func (in *Inspector) VisitCompound(id StmtID, data *StmtCompoundData) {
	if in.Compound != nil {
		in.Compound(id, data)
		return
	}
	in.fallbackStmt(id)
}

func (in *Inspector) VisitExprStmt(id StmtID, data *StmtExprData) {
	if in.ExprStmt != nil {
		in.ExprStmt(id, data)
		return
	}
	in.fallbackStmt(id)
}

func (in *Inspector) VisitDeclStmt(id StmtID, data *StmtDeclData) {
	if in.DeclStmt != nil {
		in.DeclStmt(id, data)
		return
	}
	in.fallbackStmt(id)
}

func (in *Inspector) VisitIf(id StmtID, data *StmtIfData) {
	if in.If != nil {
		in.If(id, data)
		return
	}
	in.fallbackStmt(id)
}

func (in *Inspector) VisitSwitch(id StmtID, data *StmtSwitchData) {
	if in.Switch != nil {
		in.Switch(id, data)
		return
	}
	in.fallbackStmt(id)
}

func (in *Inspector) VisitWhile(id StmtID, data *StmtWhileData) {
	if in.While != nil {
		in.While(id, data)
		return
	}
	in.fallbackStmt(id)
}

func (in *Inspector) VisitDo(id StmtID, data *StmtDoData) {
	if in.Do != nil {
		in.Do(id, data)
		return
	}
	in.fallbackStmt(id)
}

func (in *Inspector) VisitFor(id StmtID, data *StmtForData) {
	if in.For != nil {
		in.For(id, data)
		return
	}
	in.fallbackStmt(id)
}

func (in *Inspector) VisitGoto(id StmtID, data *StmtGotoData) {
	if in.Goto != nil {
		in.Goto(id, data)
		return
	}
	in.fallbackStmt(id)
}

func (in *Inspector) VisitContinue(id StmtID) {
	if in.Continue != nil {
		in.Continue(id)
		return
	}
	in.fallbackStmt(id)
}

func (in *Inspector) VisitBreak(id StmtID) {
	if in.Break != nil {
		in.Break(id)
		return
	}
	in.fallbackStmt(id)
}

func (in *Inspector) VisitReturn(id StmtID, data *StmtReturnData) {
	if in.Return != nil {
		in.Return(id, data)
		return
	}
	in.fallbackStmt(id)
}

func (in *Inspector) VisitLabel(id StmtID, data *StmtLabelData) {
	if in.Label != nil {
		in.Label(id, data)
		return
	}
	in.fallbackStmt(id)
}

func (in *Inspector) VisitCase(id StmtID, data *StmtCaseData) {
	if in.Case != nil {
		in.Case(id, data)
		return
	}
	in.fallbackStmt(id)
}

func (in *Inspector) VisitDefault(id StmtID, data *StmtDefaultData) {
	if in.Default != nil {
		in.Default(id, data)
		return
	}
	in.fallbackStmt(id)
}

func (in *Inspector) VisitVarDecl(id DeclID, data *DeclVarData) {
	if in.VarDecl != nil {
		in.VarDecl(id, data)
		return
	}
	in.fallbackDecl(id)
}

func (in *Inspector) VisitFuncDecl(id DeclID, data *DeclFuncData) {
	if in.FuncDecl != nil {
		in.FuncDecl(id, data)
		return
	}
	in.fallbackDecl(id)
}

func (in *Inspector) VisitParam(id DeclID, data *DeclParamData) {
	if in.Param != nil {
		in.Param(id, data)
		return
	}
	in.fallbackDecl(id)
}

func (in *Inspector) VisitRecord(id DeclID, data *DeclRecordData) {
	if in.Record != nil {
		in.Record(id, data)
		return
	}
	in.fallbackDecl(id)
}

func (in *Inspector) VisitField(id DeclID, data *DeclFieldData) {
	if in.Field != nil {
		in.Field(id, data)
		return
	}
	in.fallbackDecl(id)
}

func (in *Inspector) VisitEnum(id DeclID, data *DeclEnumData) {
	if in.Enum != nil {
		in.Enum(id, data)
		return
	}
	in.fallbackDecl(id)
}

func (in *Inspector) VisitEnumerator(id DeclID, data *DeclEnumeratorData) {
	if in.Enumerator != nil {
		in.Enumerator(id, data)
		return
	}
	in.fallbackDecl(id)
}

func (in *Inspector) VisitStaticAssert(id DeclID, data *DeclStaticAssertData) {
	if in.StaticAssert != nil {
		in.StaticAssert(id, data)
		return
	}
	in.fallbackDecl(id)
}

func (in *Inspector) VisitTypeName(id DeclID, data *DeclTypeNameData) {
	if in.TypeName != nil {
		in.TypeName(id, data)
		return
	}
	in.fallbackDecl(id)
}

package ast

// Walk visits every node reachable from the unit in pre-order: a node is
// passed to v before its children, children in source order.
func Walk(b *Builder, v Visitor, unit *Unit) {
	w := walker{b: b, v: v}
	for _, d := range unit.Decls {
		w.decl(d)
	}
}

// WalkExpr, WalkStmt and WalkDecl walk a single subtree.
func WalkExpr(b *Builder, v Visitor, id ExprID) { (&walker{b: b, v: v}).expr(id) }
func WalkStmt(b *Builder, v Visitor, id StmtID) { (&walker{b: b, v: v}).stmt(id) }
func WalkDecl(b *Builder, v Visitor, id DeclID) { (&walker{b: b, v: v}).decl(id) }

type walker struct {
	b *Builder
	v Visitor
}

func (w *walker) expr(id ExprID) {
	if !id.IsValid() {
		return
	}
	w.b.AcceptExpr(w.v, id)
	ex := w.b.Exprs
	switch w.b.Exprs.Get(id).Kind {
	case ExprUnary:
		x, _ := ex.Unary(id)
		w.expr(x.Operand)
	case ExprPostfix:
		x, _ := ex.Postfix(id)
		w.expr(x.Operand)
	case ExprBinary:
		x, _ := ex.Binary(id)
		w.expr(x.Left)
		w.expr(x.Right)
	case ExprConditional:
		x, _ := ex.Conditional(id)
		w.expr(x.Cond)
		w.expr(x.Then)
		w.expr(x.Else)
	case ExprCast:
		x, _ := ex.Cast(id)
		w.decl(x.Type)
		w.expr(x.Operand)
	case ExprCall:
		x, _ := ex.Call(id)
		w.expr(x.Callee)
		for _, a := range x.Args {
			w.expr(a)
		}
	case ExprIndex:
		x, _ := ex.Index(id)
		w.expr(x.Base)
		w.expr(x.Index)
	case ExprMember:
		x, _ := ex.Member(id)
		w.expr(x.Base)
	case ExprSizeof:
		x, _ := ex.Sizeof(id)
		w.decl(x.Type)
		w.expr(x.Operand)
	case ExprCompoundLit:
		x, _ := ex.CompoundLit(id)
		w.decl(x.Type)
		w.expr(x.Init)
	case ExprInitList:
		x, _ := ex.InitList(id)
		for _, it := range x.Items {
			for _, d := range it.Designators {
				w.expr(d.Index)
			}
			w.expr(it.Value)
		}
	}
}

func (w *walker) stmt(id StmtID) {
	if !id.IsValid() {
		return
	}
	w.b.AcceptStmt(w.v, id)
	st := w.b.Stmts
	switch st.Get(id).Kind {
	case StmtCompound:
		x, _ := st.Compound(id)
		for _, it := range x.Items {
			w.stmt(it)
		}
	case StmtExpr:
		x, _ := st.Expr(id)
		w.expr(x.Expr)
	case StmtDecl:
		x, _ := st.Decl(id)
		w.decl(x.Decl)
	case StmtIf:
		x, _ := st.If(id)
		w.expr(x.Cond)
		w.stmt(x.Then)
		w.stmt(x.Else)
	case StmtSwitch:
		x, _ := st.Switch(id)
		w.expr(x.Cond)
		w.stmt(x.Body)
	case StmtWhile:
		x, _ := st.While(id)
		w.expr(x.Cond)
		w.stmt(x.Body)
	case StmtDo:
		x, _ := st.Do(id)
		w.stmt(x.Body)
		w.expr(x.Cond)
	case StmtFor:
		x, _ := st.For(id)
		w.decl(x.InitDecl)
		w.expr(x.InitExpr)
		w.expr(x.Cond)
		w.expr(x.Post)
		w.stmt(x.Body)
	case StmtReturn:
		x, _ := st.Return(id)
		w.expr(x.Value)
	case StmtLabel:
		x, _ := st.Label(id)
		w.stmt(x.Body)
	case StmtCase:
		x, _ := st.Case(id)
		w.expr(x.Value)
		w.stmt(x.Body)
	case StmtDefault:
		x, _ := st.Default(id)
		w.stmt(x.Body)
	}
}

func (w *walker) decl(id DeclID) {
	if !id.IsValid() {
		return
	}
	w.b.AcceptDecl(w.v, id)
	ds := w.b.Decls
	switch ds.Get(id).Kind {
	case DeclVar:
		x, _ := ds.Var(id)
		w.specs(x.Specs)
		for _, in := range x.Inits {
			w.declarator(in.Declarator)
			w.expr(in.Init)
		}
	case DeclFunc:
		x, _ := ds.Func(id)
		w.specs(x.Specs)
		w.declarator(x.Declarator)
		w.stmt(x.Body)
	case DeclParam:
		x, _ := ds.Param(id)
		w.specs(x.Specs)
		w.declarator(x.Declarator)
	case DeclRecord:
		x, _ := ds.Record(id)
		for _, f := range x.Fields {
			w.decl(f)
		}
	case DeclField:
		x, _ := ds.Field(id)
		w.specs(x.Specs)
		for _, fd := range x.Declarators {
			w.declarator(fd.Declarator)
			w.expr(fd.Width)
		}
	case DeclEnum:
		x, _ := ds.Enum(id)
		for _, e := range x.Enumerators {
			w.decl(e)
		}
	case DeclEnumerator:
		x, _ := ds.Enumerator(id)
		w.expr(x.Value)
	case DeclStaticAssert:
		x, _ := ds.StaticAssert(id)
		w.expr(x.Cond)
	case DeclTypeName:
		x, _ := ds.TypeName(id)
		w.specs(x.Specs)
		w.declarator(x.Declarator)
	}
}

func (w *walker) specs(s DeclSpecs) {
	for _, sp := range s.Items {
		if sp.Kind == SpecTag {
			w.decl(sp.Tag)
		}
	}
}

// declarator descends into array sizes and parameters.
func (w *walker) declarator(id DeclaratorID) {
	for id.IsValid() {
		d := w.b.Declarators.Get(id)
		w.expr(d.Size)
		for _, p := range d.Params {
			w.decl(p)
		}
		id = d.Inner
	}
}

package diagfmt

import (
	"fmt"
	"strconv"

	"cmm/internal/ast"
)

func buildUnitNode(b *ast.Builder, unit *ast.Unit) ASTNodeOutput {
	root := ASTNodeOutput{Type: "Unit", Kind: "TranslationUnit", Label: unit.Path, Span: unit.Span}
	for _, d := range unit.Decls {
		root.Children = append(root.Children, buildDeclNode(b, d))
	}
	return root
}

func appendExpr(b *ast.Builder, out []ASTNodeOutput, id ast.ExprID) []ASTNodeOutput {
	if !id.IsValid() {
		return out
	}
	return append(out, buildExprNode(b, id))
}

func appendStmt(b *ast.Builder, out []ASTNodeOutput, id ast.StmtID) []ASTNodeOutput {
	if !id.IsValid() {
		return out
	}
	return append(out, buildStmtNode(b, id))
}

// tagChildren lists struct/union/enum definitions made inside specifiers.
func tagChildren(b *ast.Builder, specs ast.DeclSpecs) []ASTNodeOutput {
	var out []ASTNodeOutput
	for _, sp := range specs.Items {
		if sp.Kind == ast.SpecTag && sp.Tag.IsValid() {
			out = append(out, buildDeclNode(b, sp.Tag))
		}
	}
	return out
}

func declaratorNode(b *ast.Builder, id ast.DeclaratorID, base string) ASTNodeOutput {
	node := ASTNodeOutput{Type: "Declarator", Kind: "Declarator", Label: describeDeclarator(b, id, base)}
	for cur := id; cur.IsValid(); {
		d := b.Declarators.Get(cur)
		if node.Span.Empty() {
			node.Span = d.Span
		}
		switch d.Kind {
		case ast.DeclaratorArray:
			node.Children = appendExpr(b, node.Children, d.Size)
		case ast.DeclaratorFunction:
			for _, p := range d.Params {
				node.Children = append(node.Children, buildDeclNode(b, p))
			}
		}
		cur = d.Inner
	}
	return node
}

func buildDeclNode(b *ast.Builder, id ast.DeclID) ASTNodeOutput {
	decl := b.Decls.Get(id)
	node := ASTNodeOutput{Type: "Decl", Kind: decl.Kind.String(), Span: decl.Span}
	switch decl.Kind {
	case ast.DeclVar:
		x, _ := b.Decls.Var(id)
		base := specsString(x.Specs)
		node.Label = base
		node.Children = tagChildren(b, x.Specs)
		for _, in := range x.Inits {
			dn := declaratorNode(b, in.Declarator, base)
			dn.Children = appendExpr(b, dn.Children, in.Init)
			node.Children = append(node.Children, dn)
		}
	case ast.DeclFunc:
		x, _ := b.Decls.Func(id)
		node.Label = describeDeclarator(b, x.Declarator, specsString(x.Specs))
		node.Children = tagChildren(b, x.Specs)
		node.Children = append(node.Children, declaratorNode(b, x.Declarator, specsString(x.Specs)).Children...)
		node.Children = appendStmt(b, node.Children, x.Body)
	case ast.DeclParam:
		x, _ := b.Decls.Param(id)
		node.Label = describeDeclarator(b, x.Declarator, specsString(x.Specs))
	case ast.DeclRecord:
		x, _ := b.Decls.Record(id)
		kw := "struct"
		if x.Union {
			kw = "union"
		}
		node.Label = kw + " " + x.Name
		for _, f := range x.Fields {
			node.Children = append(node.Children, buildDeclNode(b, f))
		}
	case ast.DeclField:
		x, _ := b.Decls.Field(id)
		base := specsString(x.Specs)
		node.Label = base
		node.Children = tagChildren(b, x.Specs)
		for _, fd := range x.Declarators {
			dn := declaratorNode(b, fd.Declarator, base)
			if fd.Width.IsValid() {
				dn.Label += " (bit-field)"
				dn.Children = appendExpr(b, dn.Children, fd.Width)
			}
			node.Children = append(node.Children, dn)
		}
	case ast.DeclEnum:
		x, _ := b.Decls.Enum(id)
		node.Label = "enum " + x.Name
		for _, e := range x.Enumerators {
			node.Children = append(node.Children, buildDeclNode(b, e))
		}
	case ast.DeclEnumerator:
		x, _ := b.Decls.Enumerator(id)
		node.Label = x.Name
		node.Children = appendExpr(b, nil, x.Value)
	case ast.DeclStaticAssert:
		x, _ := b.Decls.StaticAssert(id)
		if x.Message != "" {
			node.Label = strconv.Quote(x.Message)
		}
		node.Children = appendExpr(b, nil, x.Cond)
	case ast.DeclTypeName:
		x, _ := b.Decls.TypeName(id)
		node.Label = describeDeclarator(b, x.Declarator, specsString(x.Specs))
		node.Children = tagChildren(b, x.Specs)
	}
	return node
}

func buildStmtNode(b *ast.Builder, id ast.StmtID) ASTNodeOutput {
	st := b.Stmts.Get(id)
	node := ASTNodeOutput{Type: "Stmt", Kind: st.Kind.String(), Span: st.Span}
	var kids []ASTNodeOutput
	switch st.Kind {
	case ast.StmtCompound:
		x, _ := b.Stmts.Compound(id)
		for _, it := range x.Items {
			kids = appendStmt(b, kids, it)
		}
	case ast.StmtExpr:
		x, _ := b.Stmts.Expr(id)
		kids = appendExpr(b, kids, x.Expr)
	case ast.StmtDecl:
		x, _ := b.Stmts.Decl(id)
		kids = append(kids, buildDeclNode(b, x.Decl))
	case ast.StmtIf:
		x, _ := b.Stmts.If(id)
		kids = appendExpr(b, kids, x.Cond)
		kids = appendStmt(b, kids, x.Then)
		kids = appendStmt(b, kids, x.Else)
	case ast.StmtSwitch:
		x, _ := b.Stmts.Switch(id)
		kids = appendExpr(b, kids, x.Cond)
		kids = appendStmt(b, kids, x.Body)
	case ast.StmtWhile:
		x, _ := b.Stmts.While(id)
		kids = appendExpr(b, kids, x.Cond)
		kids = appendStmt(b, kids, x.Body)
	case ast.StmtDo:
		x, _ := b.Stmts.Do(id)
		kids = appendStmt(b, kids, x.Body)
		kids = appendExpr(b, kids, x.Cond)
	case ast.StmtFor:
		x, _ := b.Stmts.For(id)
		if x.InitDecl.IsValid() {
			kids = append(kids, buildDeclNode(b, x.InitDecl))
		}
		kids = appendExpr(b, kids, x.InitExpr)
		kids = appendExpr(b, kids, x.Cond)
		kids = appendExpr(b, kids, x.Post)
		kids = appendStmt(b, kids, x.Body)
	case ast.StmtGoto:
		x, _ := b.Stmts.Goto(id)
		node.Label = x.Label
	case ast.StmtReturn:
		x, _ := b.Stmts.Return(id)
		kids = appendExpr(b, kids, x.Value)
	case ast.StmtLabel:
		x, _ := b.Stmts.Label(id)
		node.Label = x.Label
		kids = appendStmt(b, kids, x.Body)
	case ast.StmtCase:
		x, _ := b.Stmts.Case(id)
		kids = appendExpr(b, kids, x.Value)
		kids = appendStmt(b, kids, x.Body)
	case ast.StmtDefault:
		x, _ := b.Stmts.Default(id)
		kids = appendStmt(b, kids, x.Body)
	}
	node.Children = kids
	return node
}

func buildExprNode(b *ast.Builder, id ast.ExprID) ASTNodeOutput {
	e := b.Exprs.Get(id)
	node := ASTNodeOutput{Type: "Expr", Kind: e.Kind.String(), Span: e.Span}
	var kids []ASTNodeOutput
	switch e.Kind {
	case ast.ExprIdent:
		x, _ := b.Exprs.Ident(id)
		node.Label = x.Name
	case ast.ExprLiteral:
		x, _ := b.Exprs.Literal(id)
		node.Label = x.Text
	case ast.ExprUnary:
		x, _ := b.Exprs.Unary(id)
		node.Label = x.Op.Spelling()
		kids = appendExpr(b, kids, x.Operand)
	case ast.ExprPostfix:
		x, _ := b.Exprs.Postfix(id)
		node.Label = x.Op.Spelling()
		kids = appendExpr(b, kids, x.Operand)
	case ast.ExprBinary:
		x, _ := b.Exprs.Binary(id)
		node.Label = x.Op.Spelling()
		kids = appendExpr(b, kids, x.Left)
		kids = appendExpr(b, kids, x.Right)
	case ast.ExprConditional:
		x, _ := b.Exprs.Conditional(id)
		kids = appendExpr(b, kids, x.Cond)
		kids = appendExpr(b, kids, x.Then)
		kids = appendExpr(b, kids, x.Else)
	case ast.ExprCast:
		x, _ := b.Exprs.Cast(id)
		kids = append(kids, buildDeclNode(b, x.Type))
		kids = appendExpr(b, kids, x.Operand)
	case ast.ExprCall:
		x, _ := b.Exprs.Call(id)
		node.Label = fmt.Sprintf("%d args", len(x.Args))
		kids = appendExpr(b, kids, x.Callee)
		for _, a := range x.Args {
			kids = appendExpr(b, kids, a)
		}
	case ast.ExprIndex:
		x, _ := b.Exprs.Index(id)
		kids = appendExpr(b, kids, x.Base)
		kids = appendExpr(b, kids, x.Index)
	case ast.ExprMember:
		x, _ := b.Exprs.Member(id)
		node.Label = "." + x.Name
		if x.Arrow {
			node.Label = "->" + x.Name
		}
		kids = appendExpr(b, kids, x.Base)
	case ast.ExprSizeof:
		x, _ := b.Exprs.Sizeof(id)
		node.Label = x.Op.Spelling()
		if x.Type.IsValid() {
			kids = append(kids, buildDeclNode(b, x.Type))
		}
		kids = appendExpr(b, kids, x.Operand)
	case ast.ExprCompoundLit:
		x, _ := b.Exprs.CompoundLit(id)
		kids = append(kids, buildDeclNode(b, x.Type))
		kids = appendExpr(b, kids, x.Init)
	case ast.ExprInitList:
		x, _ := b.Exprs.InitList(id)
		for _, it := range x.Items {
			item := buildExprNode(b, it.Value)
			if len(it.Designators) > 0 {
				item.Label = designatorString(b, it.Designators) + " = " + item.Label
			}
			kids = append(kids, item)
		}
	}
	node.Children = kids
	return node
}

func designatorString(b *ast.Builder, ds []ast.Designator) string {
	s := ""
	for _, d := range ds {
		if d.Field != "" {
			s += "." + d.Field
			continue
		}
		idx := buildExprNode(b, d.Index)
		s += "[" + idx.Label + "]"
	}
	return s
}

package parser

import (
	"cmm/internal/ast"
	"cmm/internal/token"
)

// externalDeclaration:
//
//	function-definition
//	declaration
func (p *Parser) externalDeclaration() (ast.DeclID, bool) {
	return rule(p, "external_declaration", func() (ast.DeclID, bool) {
		return first(p, p.functionDefinition, p.declaration)
	})
}

// functionDefinition: declaration-specifiers declarator compound-statement
func (p *Parser) functionDefinition() (ast.DeclID, bool) {
	return rule(p, "function_definition", func() (ast.DeclID, bool) {
		start := p.peek()
		specs, ok := p.declSpecs(false)
		if !ok {
			return ast.NoDeclID, false
		}
		return scoped(p, func() (ast.DeclID, bool) {
			d, ok := p.declarator()
			if !ok || !p.b.Declarators.IsFunction(d) {
				return ast.NoDeclID, false
			}
			body, ok := p.compoundStatement()
			if !ok {
				return ast.NoDeclID, false
			}
			return p.b.Decls.NewFunc(p.cover(start), ast.DeclFuncData{Specs: specs, Declarator: d, Body: body}), true
		})
	})
}

// declaration:
//
//	declaration-specifiers init-declarator-list? ;
//	static_assert-declaration
func (p *Parser) declaration() (ast.DeclID, bool) {
	return rule(p, "declaration", func() (ast.DeclID, bool) {
		if p.at(token.KwStaticAssert) {
			return p.staticAssert()
		}
		start := p.peek()
		specs, ok := p.declSpecs(false)
		if !ok {
			return ast.NoDeclID, false
		}
		var inits []ast.InitDeclarator
		if !p.at(token.Semi) {
			if inits, ok = p.initDeclaratorList(specs.IsTypedef()); !ok {
				return ast.NoDeclID, false
			}
		}
		if _, ok := p.expect(token.Semi); !ok {
			return ast.NoDeclID, false
		}
		return p.b.Decls.NewVar(p.cover(start), ast.DeclVarData{Specs: specs, Inits: inits}), true
	})
}

// initDeclaratorList registers typedef names as soon as each declarator
// is complete, so `typedef int T, *PT;` sees both.
func (p *Parser) initDeclaratorList(isTypedef bool) ([]ast.InitDeclarator, bool) {
	return rule(p, "init_declarator_list", func() ([]ast.InitDeclarator, bool) {
		var out []ast.InitDeclarator
		for {
			d, ok := p.declarator()
			if !ok {
				return nil, false
			}
			init := ast.NoExprID
			if _, ok := p.accept(token.Equal); ok {
				if init, ok = p.initializer(); !ok {
					return nil, false
				}
			}
			if isTypedef {
				p.typedefs.add(p.b.Declarators.Name(d))
			}
			out = append(out, ast.InitDeclarator{Declarator: d, Init: init})
			if _, ok := p.accept(token.Comma); !ok {
				return out, true
			}
		}
	})
}

// staticAssert: static_assert ( constant-expression ( , string-literal )? ) ;
func (p *Parser) staticAssert() (ast.DeclID, bool) {
	return rule(p, "static_assert_declaration", func() (ast.DeclID, bool) {
		start, ok := p.expect(token.KwStaticAssert)
		if !ok {
			return ast.NoDeclID, false
		}
		if _, ok := p.expect(token.LParen); !ok {
			return ast.NoDeclID, false
		}
		cond, ok := p.conditional()
		if !ok {
			return ast.NoDeclID, false
		}
		msg := ""
		if _, ok := p.accept(token.Comma); ok {
			lit, ok := p.expect(token.StringLiteral)
			if !ok {
				return ast.NoDeclID, false
			}
			msg = lit.Content
		}
		if _, ok := p.expect(token.RParen); !ok {
			return ast.NoDeclID, false
		}
		if _, ok := p.expect(token.Semi); !ok {
			return ast.NoDeclID, false
		}
		return p.b.Decls.NewStaticAssert(p.cover(start), cond, msg), true
	})
}

var (
	storageClasses = []token.Kind{
		token.KwTypedef, token.KwExtern, token.KwStatic, token.KwThreadLocal,
		token.KwAuto, token.KwRegister, token.KwConstexpr,
	}
	typeQualifiers = []token.Kind{token.KwConst, token.KwVolatile, token.KwRestrict, token.KwAtomic}
	funcSpecifiers = []token.Kind{token.KwInline, token.KwNoreturn}
	basicTypes     = []token.Kind{
		token.KwVoid, token.KwChar, token.KwShort, token.KwInt, token.KwLong,
		token.KwFloat, token.KwDouble, token.KwSigned, token.KwUnsigned, token.KwBool,
		token.KwComplex, token.KwImaginary, token.KwDecimal32, token.KwDecimal64, token.KwDecimal128,
	}
)

// declSpecs reads declaration specifiers; with qualifiersOnly it reads a
// specifier-qualifier list (no storage class or function specifier).
// An identifier is a typedef name only while no type specifier was seen.
func (p *Parser) declSpecs(qualifiersOnly bool) (ast.DeclSpecs, bool) {
	name := "declaration_specifiers"
	if qualifiersOnly {
		name = "specifier_qualifier_list"
	}
	return rule(p, name, func() (ast.DeclSpecs, bool) {
		start := p.peek()
		var specs ast.DeclSpecs
		for {
			tok := p.peek()
			switch {
			case !qualifiersOnly && tok.Is(storageClasses...):
				specs.Items = append(specs.Items, ast.Spec{Kind: ast.SpecStorage, Tok: tok.Kind, Name: tok.Text})
			case !qualifiersOnly && tok.Is(funcSpecifiers...):
				specs.Items = append(specs.Items, ast.Spec{Kind: ast.SpecFunction, Tok: tok.Kind, Name: tok.Text})
			case tok.Is(typeQualifiers...) && !(tok.Kind == token.KwAtomic && p.lookahead(token.KwAtomic, token.LParen)):
				specs.Items = append(specs.Items, ast.Spec{Kind: ast.SpecQualifier, Tok: tok.Kind, Name: tok.Text})
			case tok.Is(basicTypes...):
				specs.Items = append(specs.Items, ast.Spec{Kind: ast.SpecType, Tok: tok.Kind, Name: tok.Text})
			case tok.Is(token.KwStruct, token.KwUnion):
				tag, ok := p.recordSpecifier()
				if !ok {
					return specs, false
				}
				specs.Items = append(specs.Items, ast.Spec{Kind: ast.SpecTag, Tok: tok.Kind, Name: tok.Text, Tag: tag})
				continue
			case tok.Is(token.KwEnum):
				tag, ok := p.enumSpecifier()
				if !ok {
					return specs, false
				}
				specs.Items = append(specs.Items, ast.Spec{Kind: ast.SpecTag, Tok: tok.Kind, Name: tok.Text, Tag: tag})
				continue
			case tok.Kind == token.Ident && !specs.HasType() && p.typedefs.has(tok.Text):
				specs.Items = append(specs.Items, ast.Spec{Kind: ast.SpecTypedefName, Tok: token.Ident, Name: tok.Text})
			default:
				if len(specs.Items) == 0 {
					return specs, false
				}
				specs.Span = p.cover(start)
				return specs, true
			}
			p.advance()
		}
	})
}

// recordSpecifier: struct-or-union identifier? { member-declaration-list } | struct-or-union identifier
func (p *Parser) recordSpecifier() (ast.DeclID, bool) {
	return rule(p, "struct_or_union_specifier", func() (ast.DeclID, bool) {
		start, _ := p.accept(token.KwStruct, token.KwUnion)
		data := ast.DeclRecordData{Union: start.Kind == token.KwUnion}
		if tok, ok := p.accept(token.Ident); ok {
			data.Name = tok.Text
		}
		if _, ok := p.accept(token.LBrace); !ok {
			if data.Name == "" {
				p.expect(token.LBrace)
				return ast.NoDeclID, false
			}
			return p.b.Decls.NewRecord(p.cover(start), data), true
		}
		data.HasBody = true
		for !p.at(token.RBrace) {
			field, ok := p.memberDeclaration()
			if !ok {
				return ast.NoDeclID, false
			}
			data.Fields = append(data.Fields, field)
		}
		if _, ok := p.expect(token.RBrace); !ok {
			return ast.NoDeclID, false
		}
		return p.b.Decls.NewRecord(p.cover(start), data), true
	})
}

// memberDeclaration:
//
//	specifier-qualifier-list member-declarator-list? ;
//	static_assert-declaration
func (p *Parser) memberDeclaration() (ast.DeclID, bool) {
	return rule(p, "member_declaration", func() (ast.DeclID, bool) {
		if p.at(token.KwStaticAssert) {
			return p.staticAssert()
		}
		start := p.peek()
		specs, ok := p.declSpecs(true)
		if !ok {
			return ast.NoDeclID, false
		}
		var fields []ast.FieldDeclarator
		for !p.at(token.Semi) {
			var fd ast.FieldDeclarator
			if !p.at(token.Colon) {
				if fd.Declarator, ok = p.declarator(); !ok {
					return ast.NoDeclID, false
				}
			}
			if _, ok := p.accept(token.Colon); ok {
				if fd.Width, ok = p.conditional(); !ok {
					return ast.NoDeclID, false
				}
			}
			fields = append(fields, fd)
			if _, ok := p.accept(token.Comma); !ok {
				break
			}
		}
		if _, ok := p.expect(token.Semi); !ok {
			return ast.NoDeclID, false
		}
		return p.b.Decls.NewField(p.cover(start), ast.DeclFieldData{Specs: specs, Declarators: fields}), true
	})
}

// enumSpecifier: enum identifier? { enumerator-list ,? } | enum identifier
func (p *Parser) enumSpecifier() (ast.DeclID, bool) {
	return rule(p, "enum_specifier", func() (ast.DeclID, bool) {
		start, ok := p.expect(token.KwEnum)
		if !ok {
			return ast.NoDeclID, false
		}
		var data ast.DeclEnumData
		if tok, ok := p.accept(token.Ident); ok {
			data.Name = tok.Text
		}
		if _, ok := p.accept(token.LBrace); !ok {
			if data.Name == "" {
				p.expect(token.LBrace)
				return ast.NoDeclID, false
			}
			return p.b.Decls.NewEnum(p.cover(start), data), true
		}
		data.HasBody = true
		for !p.at(token.RBrace) {
			e, ok := p.enumerator()
			if !ok {
				return ast.NoDeclID, false
			}
			data.Enumerators = append(data.Enumerators, e)
			if _, ok := p.accept(token.Comma); !ok {
				break
			}
		}
		if _, ok := p.expect(token.RBrace); !ok {
			return ast.NoDeclID, false
		}
		return p.b.Decls.NewEnum(p.cover(start), data), true
	})
}

// enumerator: identifier ( = constant-expression )?
func (p *Parser) enumerator() (ast.DeclID, bool) {
	return rule(p, "enumerator", func() (ast.DeclID, bool) {
		name, ok := p.expect(token.Ident)
		if !ok {
			return ast.NoDeclID, false
		}
		value := ast.NoExprID
		if _, ok := p.accept(token.Equal); ok {
			if value, ok = p.conditional(); !ok {
				return ast.NoDeclID, false
			}
		}
		return p.b.Decls.NewEnumerator(p.cover(name), name.Text, value), true
	})
}

package parser

import (
	"cmm/internal/ast"
	"cmm/internal/token"
)

type pointerLayer struct {
	tok   token.Token
	quals []string
}

// pointers: ( * type-qualifier-list? )*
func (p *Parser) pointers() []pointerLayer {
	var out []pointerLayer
	for {
		star, ok := p.accept(token.Star)
		if !ok {
			return out
		}
		layer := pointerLayer{tok: star}
		for {
			q, ok := p.accept(typeQualifiers...)
			if !ok {
				break
			}
			layer.quals = append(layer.quals, q.Text)
		}
		out = append(out, layer)
	}
}

// wrapPointers applies pointer layers to the direct declarator; the star
// nearest to the name binds first.
func (p *Parser) wrapPointers(ptrs []pointerLayer, inner ast.DeclaratorID) ast.DeclaratorID {
	for i := len(ptrs) - 1; i >= 0; i-- {
		inner = p.b.Declarators.New(ast.Declarator{
			Kind:  ast.DeclaratorPointer,
			Span:  p.cover(ptrs[i].tok),
			Inner: inner,
			Quals: ptrs[i].quals,
		})
	}
	return inner
}

// declarator: pointer? direct-declarator
//
//	direct-declarator:
//	  identifier
//	  ( declarator )
//	  direct-declarator [ ... ]
//	  direct-declarator ( parameter-type-list? )
func (p *Parser) declarator() (ast.DeclaratorID, bool) {
	return rule(p, "declarator", func() (ast.DeclaratorID, bool) {
		ptrs := p.pointers()
		start := p.peek()
		var base ast.DeclaratorID
		if _, ok := p.accept(token.LParen); ok {
			inner, ok := p.declarator()
			if !ok {
				return ast.NoDeclaratorID, false
			}
			if _, ok := p.expect(token.RParen); !ok {
				return ast.NoDeclaratorID, false
			}
			base = inner
		} else {
			name, ok := p.expect(token.Ident)
			if !ok {
				return ast.NoDeclaratorID, false
			}
			base = p.b.Declarators.New(ast.Declarator{Kind: ast.DeclaratorName, Span: name.Span, Name: name.Text})
		}
		d, ok := p.suffixes(start, base)
		if !ok {
			return ast.NoDeclaratorID, false
		}
		return p.wrapPointers(ptrs, d), true
	})
}

// abstractDeclarator is a declarator without a name; at least one layer is required.
func (p *Parser) abstractDeclarator() (ast.DeclaratorID, bool) {
	return rule(p, "abstract_declarator", func() (ast.DeclaratorID, bool) {
		ptrs := p.pointers()
		start := p.peek()
		base, nested := optional(p, func() (ast.DeclaratorID, bool) {
			if _, ok := p.accept(token.LParen); !ok {
				return ast.NoDeclaratorID, false
			}
			inner, ok := p.abstractDeclarator()
			if !ok {
				return ast.NoDeclaratorID, false
			}
			if _, ok := p.expect(token.RParen); !ok {
				return ast.NoDeclaratorID, false
			}
			return inner, true
		})
		if !nested {
			if len(ptrs) == 0 && !p.at(token.LSquare, token.LParen) {
				return ast.NoDeclaratorID, false
			}
			base = p.b.Declarators.New(ast.Declarator{Kind: ast.DeclaratorAbstract, Span: start.Span.Anchor()})
		}
		d, ok := p.suffixes(start, base)
		if !ok {
			return ast.NoDeclaratorID, false
		}
		return p.wrapPointers(ptrs, d), true
	})
}

// suffixes wraps base in array and function layers, left to right.
func (p *Parser) suffixes(start token.Token, base ast.DeclaratorID) (ast.DeclaratorID, bool) {
	for {
		switch {
		case p.at(token.LSquare):
			d, ok := p.arraySuffix(start, base)
			if !ok {
				return ast.NoDeclaratorID, false
			}
			base = d
		case p.at(token.LParen):
			d, ok := p.functionSuffix(start, base)
			if !ok {
				return ast.NoDeclaratorID, false
			}
			base = d
		default:
			return base, true
		}
	}
}

// arraySuffix: [ static? type-qualifier-list? static? ( assignment-expression | * )? ]
func (p *Parser) arraySuffix(start token.Token, inner ast.DeclaratorID) (ast.DeclaratorID, bool) {
	return rule(p, "array_declarator", func() (ast.DeclaratorID, bool) {
		if _, ok := p.expect(token.LSquare); !ok {
			return ast.NoDeclaratorID, false
		}
		d := ast.Declarator{Kind: ast.DeclaratorArray, Inner: inner, Size: ast.NoExprID}
		for {
			if _, ok := p.accept(token.KwStatic); ok {
				d.Static = true
				continue
			}
			q, ok := p.accept(typeQualifiers...)
			if !ok {
				break
			}
			d.Quals = append(d.Quals, q.Text)
		}
		switch {
		case p.lookahead(token.Star, token.RSquare):
			p.advance()
		case !p.at(token.RSquare):
			size, ok := p.assignment()
			if !ok {
				return ast.NoDeclaratorID, false
			}
			d.Size = size
		}
		if _, ok := p.expect(token.RSquare); !ok {
			return ast.NoDeclaratorID, false
		}
		d.Span = p.cover(start)
		return p.b.Declarators.New(d), true
	})
}

// functionSuffix: ( parameter-type-list? ) where
//
//	parameter-type-list: parameter-list ( , ... )? | ...
func (p *Parser) functionSuffix(start token.Token, inner ast.DeclaratorID) (ast.DeclaratorID, bool) {
	return rule(p, "function_declarator", func() (ast.DeclaratorID, bool) {
		if _, ok := p.expect(token.LParen); !ok {
			return ast.NoDeclaratorID, false
		}
		d := ast.Declarator{Kind: ast.DeclaratorFunction, Inner: inner, Size: ast.NoExprID}
		// после запятой нужен параметр или '...', не ')'
		for more := !p.at(token.RParen); more; {
			if _, ok := p.accept(token.Ellipsis); ok {
				d.Variadic = true
				break
			}
			param, ok := p.parameter()
			if !ok {
				return ast.NoDeclaratorID, false
			}
			d.Params = append(d.Params, param)
			_, more = p.accept(token.Comma)
		}
		if _, ok := p.expect(token.RParen); !ok {
			return ast.NoDeclaratorID, false
		}
		d.Span = p.cover(start)
		return p.b.Declarators.New(d), true
	})
}

// parameter: declaration-specifiers ( declarator | abstract-declarator )?
func (p *Parser) parameter() (ast.DeclID, bool) {
	return rule(p, "parameter_declaration", func() (ast.DeclID, bool) {
		start := p.peek()
		specs, ok := p.declSpecs(false)
		if !ok {
			return ast.NoDeclID, false
		}
		d, _ := first(p,
			p.declarator,
			p.abstractDeclarator,
			func() (ast.DeclaratorID, bool) { return ast.NoDeclaratorID, true },
		)
		return p.b.Decls.NewParam(p.cover(start), ast.DeclParamData{Specs: specs, Declarator: d}), true
	})
}

// typeName: specifier-qualifier-list abstract-declarator?
func (p *Parser) typeName() (ast.DeclID, bool) {
	return rule(p, "type_name", func() (ast.DeclID, bool) {
		start := p.peek()
		specs, ok := p.declSpecs(true)
		if !ok {
			return ast.NoDeclID, false
		}
		d, ok := optional(p, p.abstractDeclarator)
		if !ok {
			d = ast.NoDeclaratorID
		}
		return p.b.Decls.NewTypeName(p.cover(start), ast.DeclTypeNameData{Specs: specs, Declarator: d}), true
	})
}

// initializer: assignment-expression | braced-initializer
func (p *Parser) initializer() (ast.ExprID, bool) {
	return rule(p, "initializer", func() (ast.ExprID, bool) {
		if p.at(token.LBrace) {
			return p.initList()
		}
		return p.assignment()
	})
}

// initList: { ( designation? initializer ( , designation? initializer )* ,? )? }
func (p *Parser) initList() (ast.ExprID, bool) {
	return rule(p, "initializer_list", func() (ast.ExprID, bool) {
		start, ok := p.expect(token.LBrace)
		if !ok {
			return ast.NoExprID, false
		}
		var items []ast.Initializer
		for !p.at(token.RBrace) {
			var item ast.Initializer
			if p.at(token.LSquare, token.Period) {
				if item.Designators, ok = p.designation(); !ok {
					return ast.NoExprID, false
				}
			}
			if item.Value, ok = p.initializer(); !ok {
				return ast.NoExprID, false
			}
			items = append(items, item)
			if _, comma := p.accept(token.Comma); !comma {
				break
			}
		}
		if _, ok := p.expect(token.RBrace); !ok {
			return ast.NoExprID, false
		}
		return p.b.Exprs.NewInitList(p.cover(start), items), true
	})
}

// designation: ( [ constant-expression ] | . identifier )+ =
func (p *Parser) designation() ([]ast.Designator, bool) {
	return rule(p, "designation", func() ([]ast.Designator, bool) {
		var out []ast.Designator
		for {
			switch {
			case p.at(token.LSquare):
				p.advance()
				idx, ok := p.conditional()
				if !ok {
					return nil, false
				}
				if _, ok := p.expect(token.RSquare); !ok {
					return nil, false
				}
				out = append(out, ast.Designator{Index: idx})
			case p.at(token.Period):
				p.advance()
				name, ok := p.expect(token.Ident)
				if !ok {
					return nil, false
				}
				out = append(out, ast.Designator{Field: name.Text, Index: ast.NoExprID})
			default:
				if _, ok := p.expect(token.Equal); !ok {
					return nil, false
				}
				return out, true
			}
		}
	})
}

package parser

import (
	"cmm/internal/ast"
	"cmm/internal/source"
	"cmm/internal/token"
)

// expression: assignment-expression ( , assignment-expression )*
func (p *Parser) expression() (ast.ExprID, bool) {
	return rule(p, "expression", func() (ast.ExprID, bool) {
		left, ok := p.assignment()
		if !ok {
			return ast.NoExprID, false
		}
		for {
			op, ok := p.accept(token.Comma)
			if !ok {
				return left, true
			}
			right, ok := p.assignment()
			if !ok {
				return ast.NoExprID, false
			}
			left = p.b.Exprs.NewBinary(p.spanOf(left), op.Kind, left, right)
		}
	})
}

var assignOps = []token.Kind{
	token.Equal, token.StarEqual, token.SlashEqual, token.PercentEqual,
	token.PlusEqual, token.MinusEqual, token.LessLessEqual, token.GreaterGreaterEqual,
	token.AmpEqual, token.CaretEqual, token.PipeEqual,
}

// assignment: conditional-expression | unary-expression assignment-operator assignment-expression
//
// The left side is parsed once as a conditional expression; an assignment
// operator after it is taken only when that turned out to be a unary expression.
func (p *Parser) assignment() (ast.ExprID, bool) {
	return rule(p, "assignment_expression", func() (ast.ExprID, bool) {
		left, ok := p.conditional()
		if !ok {
			return ast.NoExprID, false
		}
		switch p.b.Exprs.Get(left).Kind {
		case ast.ExprBinary, ast.ExprConditional, ast.ExprCast:
			return left, true
		}
		op, ok := p.accept(assignOps...)
		if !ok {
			return left, true
		}
		right, ok := p.assignment()
		if !ok {
			return ast.NoExprID, false
		}
		return p.b.Exprs.NewBinary(p.spanOf(left), op.Kind, left, right), true
	})
}

// conditional: logical-or-expression ( ? expression : conditional-expression )?
func (p *Parser) conditional() (ast.ExprID, bool) {
	return rule(p, "conditional_expression", func() (ast.ExprID, bool) {
		cond, ok := p.binary(0)
		if !ok {
			return ast.NoExprID, false
		}
		if _, ok := p.accept(token.Question); !ok {
			return cond, true
		}
		then, ok := p.expression()
		if !ok {
			return ast.NoExprID, false
		}
		if _, ok := p.expect(token.Colon); !ok {
			return ast.NoExprID, false
		}
		els, ok := p.conditional()
		if !ok {
			return ast.NoExprID, false
		}
		return p.b.Exprs.NewConditional(p.spanOf(cond), cond, then, els), true
	})
}

type binaryLevel struct {
	rule string
	ops  []token.Kind
}

// binaryLevels — от слабого приоритета к сильному
var binaryLevels = []binaryLevel{
	{"logical_or_expression", []token.Kind{token.PipePipe}},
	{"logical_and_expression", []token.Kind{token.AmpAmp}},
	{"inclusive_or_expression", []token.Kind{token.Pipe}},
	{"exclusive_or_expression", []token.Kind{token.Caret}},
	{"and_expression", []token.Kind{token.Amp}},
	{"equality_expression", []token.Kind{token.EqualEqual, token.ExclaimEqual}},
	{"relational_expression", []token.Kind{token.Less, token.Greater, token.LessEqual, token.GreaterEqual}},
	{"shift_expression", []token.Kind{token.LessLess, token.GreaterGreater}},
	{"additive_expression", []token.Kind{token.Plus, token.Minus}},
	{"multiplicative_expression", []token.Kind{token.Star, token.Slash, token.Percent}},
}

// binary parses one left-associative precedence level.
func (p *Parser) binary(level int) (ast.ExprID, bool) {
	if level == len(binaryLevels) {
		return p.cast()
	}
	lv := binaryLevels[level]
	return rule(p, lv.rule, func() (ast.ExprID, bool) {
		left, ok := p.binary(level + 1)
		if !ok {
			return ast.NoExprID, false
		}
		for {
			op, ok := p.accept(lv.ops...)
			if !ok {
				return left, true
			}
			right, ok := p.binary(level + 1)
			if !ok {
				return ast.NoExprID, false
			}
			left = p.b.Exprs.NewBinary(p.spanOf(left), op.Kind, left, right)
		}
	})
}

// cast: unary-expression | ( type-name ) cast-expression
func (p *Parser) cast() (ast.ExprID, bool) {
	return rule(p, "cast_expression", func() (ast.ExprID, bool) {
		if !p.at(token.LParen) {
			return p.unary()
		}
		return first(p,
			func() (ast.ExprID, bool) {
				start := p.advance()
				typ, ok := p.typeName()
				if !ok {
					return ast.NoExprID, false
				}
				if _, ok := p.expect(token.RParen); !ok {
					return ast.NoExprID, false
				}
				if p.at(token.LBrace) {
					// (T){...} — составной литерал, не приведение
					return ast.NoExprID, false
				}
				operand, ok := p.cast()
				if !ok {
					return ast.NoExprID, false
				}
				return p.b.Exprs.NewCast(p.cover(start), typ, operand), true
			},
			p.unary,
		)
	})
}

// unary:
//
//	postfix-expression
//	++ unary-expression | -- unary-expression
//	unary-operator cast-expression
//	sizeof unary-expression | sizeof ( type-name ) | alignof ( type-name )
func (p *Parser) unary() (ast.ExprID, bool) {
	return rule(p, "unary_expression", func() (ast.ExprID, bool) {
		tok := p.peek()
		switch tok.Kind {
		case token.PlusPlus, token.MinusMinus:
			p.advance()
			operand, ok := p.unary()
			if !ok {
				return ast.NoExprID, false
			}
			return p.b.Exprs.NewUnary(p.cover(tok), tok.Kind, operand), true
		case token.Amp, token.Star, token.Plus, token.Minus, token.Tilde, token.Exclaim:
			p.advance()
			operand, ok := p.cast()
			if !ok {
				return ast.NoExprID, false
			}
			return p.b.Exprs.NewUnary(p.cover(tok), tok.Kind, operand), true
		case token.KwSizeof, token.KwAlignof:
			p.advance()
			typ, ok := optional(p, p.parenTypeName)
			if ok {
				return p.b.Exprs.NewSizeof(p.cover(tok), ast.ExprSizeofData{Op: tok.Kind, Type: typ, Operand: ast.NoExprID}), true
			}
			if tok.Kind == token.KwAlignof {
				p.expect(token.LParen)
				return ast.NoExprID, false
			}
			operand, ok := p.unary()
			if !ok {
				return ast.NoExprID, false
			}
			return p.b.Exprs.NewSizeof(p.cover(tok), ast.ExprSizeofData{Op: tok.Kind, Type: ast.NoDeclID, Operand: operand}), true
		}
		return p.postfix()
	})
}

// parenTypeName: ( type-name ) not followed by a braced initializer.
func (p *Parser) parenTypeName() (ast.DeclID, bool) {
	if _, ok := p.expect(token.LParen); !ok {
		return ast.NoDeclID, false
	}
	typ, ok := p.typeName()
	if !ok {
		return ast.NoDeclID, false
	}
	if _, ok := p.expect(token.RParen); !ok {
		return ast.NoDeclID, false
	}
	if p.at(token.LBrace) {
		return ast.NoDeclID, false
	}
	return typ, true
}

// postfix: ( primary-expression | compound-literal ) postfix-suffix*
func (p *Parser) postfix() (ast.ExprID, bool) {
	return rule(p, "postfix_expression", func() (ast.ExprID, bool) {
		base, ok := first(p, p.compoundLiteral, p.primary)
		if !ok {
			return ast.NoExprID, false
		}
		for {
			tok := p.peek()
			switch tok.Kind {
			case token.LSquare:
				p.advance()
				idx, ok := p.expression()
				if !ok {
					return ast.NoExprID, false
				}
				if _, ok := p.expect(token.RSquare); !ok {
					return ast.NoExprID, false
				}
				base = p.b.Exprs.NewIndex(p.spanOf(base), base, idx)
			case token.LParen:
				p.advance()
				args, ok := p.arguments()
				if !ok {
					return ast.NoExprID, false
				}
				base = p.b.Exprs.NewCall(p.spanOf(base), base, args)
			case token.Period, token.Arrow:
				p.advance()
				name, ok := p.expect(token.Ident)
				if !ok {
					return ast.NoExprID, false
				}
				base = p.b.Exprs.NewMember(p.spanOf(base), base, name.Text, tok.Kind == token.Arrow)
			case token.PlusPlus, token.MinusMinus:
				p.advance()
				base = p.b.Exprs.NewPostfix(p.spanOf(base), tok.Kind, base)
			default:
				return base, true
			}
		}
	})
}

// arguments: assignment-expression ( , assignment-expression )* )
// The opening parenthesis is already consumed.
func (p *Parser) arguments() ([]ast.ExprID, bool) {
	var args []ast.ExprID
	if _, ok := p.accept(token.RParen); ok {
		return args, true
	}
	for {
		arg, ok := p.assignment()
		if !ok {
			return nil, false
		}
		args = append(args, arg)
		if _, ok := p.accept(token.Comma); ok {
			continue
		}
		if _, ok := p.expect(token.RParen); !ok {
			return nil, false
		}
		return args, true
	}
}

// compoundLiteral: ( type-name ) braced-initializer
func (p *Parser) compoundLiteral() (ast.ExprID, bool) {
	return rule(p, "compound_literal", func() (ast.ExprID, bool) {
		start, ok := p.accept(token.LParen)
		if !ok {
			return ast.NoExprID, false
		}
		typ, ok := p.typeName()
		if !ok {
			return ast.NoExprID, false
		}
		if _, ok := p.expect(token.RParen); !ok {
			return ast.NoExprID, false
		}
		init, ok := p.initList()
		if !ok {
			return ast.NoExprID, false
		}
		return p.b.Exprs.NewCompoundLit(p.cover(start), typ, init), true
	})
}

// primary: identifier | constant | string-literal | ( expression )
// A typedef name is not an expression.
func (p *Parser) primary() (ast.ExprID, bool) {
	return rule(p, "primary_expression", func() (ast.ExprID, bool) {
		tok := p.peek()
		switch tok.Kind {
		case token.Ident:
			if p.typedefs.has(tok.Text) {
				break
			}
			p.advance()
			return p.b.Exprs.NewIdent(tok.Span, tok.Text), true
		case token.IntConst:
			p.advance()
			return p.b.Exprs.NewLiteral(tok.Span, ast.ExprLiteralData{Kind: ast.LitInt, Text: tok.Text}), true
		case token.FloatConst:
			p.advance()
			return p.b.Exprs.NewLiteral(tok.Span, ast.ExprLiteralData{Kind: ast.LitFloat, Text: tok.Text}), true
		case token.CharConst, token.StringLiteral:
			p.advance()
			kind := ast.LitChar
			if tok.Kind == token.StringLiteral {
				kind = ast.LitString
			}
			return p.b.Exprs.NewLiteral(tok.Span, ast.ExprLiteralData{Kind: kind, Text: tok.Text, Content: tok.Content, Prefix: tok.Prefix}), true
		case token.KwTrue, token.KwFalse:
			p.advance()
			return p.b.Exprs.NewLiteral(tok.Span, ast.ExprLiteralData{Kind: ast.LitBool, Text: tok.Text}), true
		case token.KwNullptr:
			p.advance()
			return p.b.Exprs.NewLiteral(tok.Span, ast.ExprLiteralData{Kind: ast.LitNullptr, Text: tok.Text}), true
		case token.LParen:
			p.advance()
			inner, ok := p.expression()
			if !ok {
				return ast.NoExprID, false
			}
			if _, ok := p.expect(token.RParen); !ok {
				return ast.NoExprID, false
			}
			// скобки в дереве не хранятся, но диапазон их включает
			p.b.Exprs.Get(inner).Span = p.cover(tok)
			return inner, true
		}
		p.missing("expression")
		return ast.NoExprID, false
	})
}

// spanOf covers an already built expression through the last consumed token.
func (p *Parser) spanOf(id ast.ExprID) source.Span {
	return p.b.Exprs.Get(id).Span.Merge(p.last.Span)
}

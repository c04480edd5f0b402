package parser

import (
	"cmm/internal/ast"
	"cmm/internal/token"
)

func (p *Parser) statement() (ast.StmtID, bool) {
	return rule(p, "statement", func() (ast.StmtID, bool) {
		switch p.peek().Kind {
		case token.LBrace:
			return p.compoundStatement()
		case token.KwIf:
			return p.ifStatement()
		case token.KwSwitch:
			return p.switchStatement()
		case token.KwWhile:
			return p.whileStatement()
		case token.KwDo:
			return p.doStatement()
		case token.KwFor:
			return p.forStatement()
		case token.KwGoto, token.KwContinue, token.KwBreak, token.KwReturn:
			return p.jumpStatement()
		case token.KwCase, token.KwDefault:
			return p.caseStatement()
		case token.Ident:
			if p.lookahead(token.Ident, token.Colon) {
				return p.labeledStatement()
			}
		}
		return p.expressionStatement()
	})
}

// compoundStatement: { block-item* } and a new typedef scope.
func (p *Parser) compoundStatement() (ast.StmtID, bool) {
	return rule(p, "compound_statement", func() (ast.StmtID, bool) {
		start, ok := p.expect(token.LBrace)
		if !ok {
			return ast.NoStmtID, false
		}
		return scoped(p, func() (ast.StmtID, bool) {
			var items []ast.StmtID
			for !p.at(token.RBrace, token.End) {
				item, ok := p.blockItem()
				if !ok {
					return ast.NoStmtID, false
				}
				items = append(items, item)
			}
			if _, ok := p.expect(token.RBrace); !ok {
				return ast.NoStmtID, false
			}
			return p.b.Stmts.NewCompound(p.cover(start), items), true
		})
	})
}

// blockItem: declaration | statement
func (p *Parser) blockItem() (ast.StmtID, bool) {
	return rule(p, "block_item", func() (ast.StmtID, bool) {
		return first(p,
			func() (ast.StmtID, bool) {
				start := p.peek()
				d, ok := p.declaration()
				if !ok {
					return ast.NoStmtID, false
				}
				return p.b.Stmts.NewDecl(p.cover(start), d), true
			},
			p.statement,
		)
	})
}

// expressionStatement: expression? ;
func (p *Parser) expressionStatement() (ast.StmtID, bool) {
	return rule(p, "expression_statement", func() (ast.StmtID, bool) {
		start := p.peek()
		expr := ast.NoExprID
		if !p.at(token.Semi) {
			var ok bool
			if expr, ok = p.expression(); !ok {
				return ast.NoStmtID, false
			}
		}
		if _, ok := p.expect(token.Semi); !ok {
			return ast.NoStmtID, false
		}
		return p.b.Stmts.NewExpr(p.cover(start), expr), true
	})
}

// labeledStatement: identifier : statement
func (p *Parser) labeledStatement() (ast.StmtID, bool) {
	return rule(p, "labeled_statement", func() (ast.StmtID, bool) {
		label, ok := p.expect(token.Ident)
		if !ok {
			return ast.NoStmtID, false
		}
		if _, ok := p.expect(token.Colon); !ok {
			return ast.NoStmtID, false
		}
		body, ok := p.labelBody()
		if !ok {
			return ast.NoStmtID, false
		}
		return p.b.Stmts.NewLabel(p.cover(label), label.Text, body), true
	})
}

// caseStatement: case constant-expression : statement | default : statement
func (p *Parser) caseStatement() (ast.StmtID, bool) {
	return rule(p, "case_statement", func() (ast.StmtID, bool) {
		start := p.advance()
		value := ast.NoExprID
		if start.Kind == token.KwCase {
			var ok bool
			if value, ok = p.conditional(); !ok {
				return ast.NoStmtID, false
			}
		}
		if _, ok := p.expect(token.Colon); !ok {
			return ast.NoStmtID, false
		}
		body, ok := p.labelBody()
		if !ok {
			return ast.NoStmtID, false
		}
		if start.Kind == token.KwDefault {
			return p.b.Stmts.NewDefault(p.cover(start), body), true
		}
		return p.b.Stmts.NewCase(p.cover(start), value, body), true
	})
}

// labelBody allows a label right before `}` (C23); the body is then absent.
func (p *Parser) labelBody() (ast.StmtID, bool) {
	if p.at(token.RBrace) {
		return ast.NoStmtID, true
	}
	return p.statement()
}

// parenExpression: ( expression )
func (p *Parser) parenExpression() (ast.ExprID, bool) {
	if _, ok := p.expect(token.LParen); !ok {
		return ast.NoExprID, false
	}
	cond, ok := p.expression()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.RParen); !ok {
		return ast.NoExprID, false
	}
	return cond, true
}

// ifStatement: if ( expression ) statement ( else statement )?
func (p *Parser) ifStatement() (ast.StmtID, bool) {
	return rule(p, "if_statement", func() (ast.StmtID, bool) {
		start := p.advance()
		return scoped(p, func() (ast.StmtID, bool) {
			cond, ok := p.parenExpression()
			if !ok {
				return ast.NoStmtID, false
			}
			then, ok := p.statement()
			if !ok {
				return ast.NoStmtID, false
			}
			els := ast.NoStmtID
			if _, ok := p.accept(token.KwElse); ok {
				if els, ok = p.statement(); !ok {
					return ast.NoStmtID, false
				}
			}
			return p.b.Stmts.NewIf(p.cover(start), cond, then, els), true
		})
	})
}

func (p *Parser) switchStatement() (ast.StmtID, bool) {
	return rule(p, "switch_statement", func() (ast.StmtID, bool) {
		start := p.advance()
		return scoped(p, func() (ast.StmtID, bool) {
			cond, ok := p.parenExpression()
			if !ok {
				return ast.NoStmtID, false
			}
			body, ok := p.statement()
			if !ok {
				return ast.NoStmtID, false
			}
			return p.b.Stmts.NewSwitch(p.cover(start), cond, body), true
		})
	})
}

func (p *Parser) whileStatement() (ast.StmtID, bool) {
	return rule(p, "while_statement", func() (ast.StmtID, bool) {
		start := p.advance()
		return scoped(p, func() (ast.StmtID, bool) {
			cond, ok := p.parenExpression()
			if !ok {
				return ast.NoStmtID, false
			}
			body, ok := p.statement()
			if !ok {
				return ast.NoStmtID, false
			}
			return p.b.Stmts.NewWhile(p.cover(start), cond, body), true
		})
	})
}

// doStatement: do statement while ( expression ) ;
func (p *Parser) doStatement() (ast.StmtID, bool) {
	return rule(p, "do_statement", func() (ast.StmtID, bool) {
		start := p.advance()
		body, ok := scoped(p, p.statement)
		if !ok {
			return ast.NoStmtID, false
		}
		if _, ok := p.expect(token.KwWhile); !ok {
			return ast.NoStmtID, false
		}
		cond, ok := p.parenExpression()
		if !ok {
			return ast.NoStmtID, false
		}
		if _, ok := p.expect(token.Semi); !ok {
			return ast.NoStmtID, false
		}
		return p.b.Stmts.NewDo(p.cover(start), body, cond), true
	})
}

// forStatement: for ( ( declaration | expression? ; ) expression? ; expression? ) statement
func (p *Parser) forStatement() (ast.StmtID, bool) {
	return rule(p, "for_statement", func() (ast.StmtID, bool) {
		start := p.advance()
		if _, ok := p.expect(token.LParen); !ok {
			return ast.NoStmtID, false
		}
		return scoped(p, func() (ast.StmtID, bool) {
			data := ast.StmtForData{}
			if decl, ok := optional(p, p.declaration); ok {
				data.InitDecl = decl
			} else {
				if !p.at(token.Semi) {
					if data.InitExpr, ok = p.expression(); !ok {
						return ast.NoStmtID, false
					}
				}
				if _, ok := p.expect(token.Semi); !ok {
					return ast.NoStmtID, false
				}
			}
			var ok bool
			if !p.at(token.Semi) {
				if data.Cond, ok = p.expression(); !ok {
					return ast.NoStmtID, false
				}
			}
			if _, ok := p.expect(token.Semi); !ok {
				return ast.NoStmtID, false
			}
			if !p.at(token.RParen) {
				if data.Post, ok = p.expression(); !ok {
					return ast.NoStmtID, false
				}
			}
			if _, ok := p.expect(token.RParen); !ok {
				return ast.NoStmtID, false
			}
			if data.Body, ok = p.statement(); !ok {
				return ast.NoStmtID, false
			}
			return p.b.Stmts.NewFor(p.cover(start), data), true
		})
	})
}

// jumpStatement: goto identifier ; | continue ; | break ; | return expression? ;
func (p *Parser) jumpStatement() (ast.StmtID, bool) {
	return rule(p, "jump_statement", func() (ast.StmtID, bool) {
		start := p.advance()
		var stmt func() ast.StmtID
		switch start.Kind {
		case token.KwGoto:
			label, ok := p.expect(token.Ident)
			if !ok {
				return ast.NoStmtID, false
			}
			stmt = func() ast.StmtID { return p.b.Stmts.NewGoto(p.cover(start), label.Text) }
		case token.KwContinue:
			stmt = func() ast.StmtID { return p.b.Stmts.NewJump(ast.StmtContinue, p.cover(start)) }
		case token.KwBreak:
			stmt = func() ast.StmtID { return p.b.Stmts.NewJump(ast.StmtBreak, p.cover(start)) }
		default:
			value := ast.NoExprID
			if !p.at(token.Semi) {
				var ok bool
				if value, ok = p.expression(); !ok {
					return ast.NoStmtID, false
				}
			}
			stmt = func() ast.StmtID { return p.b.Stmts.NewReturn(p.cover(start), value) }
		}
		if _, ok := p.expect(token.Semi); !ok {
			return ast.NoStmtID, false
		}
		return stmt(), true
	})
}

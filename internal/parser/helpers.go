package parser

import (
	"cmm/internal/calltree"
	"cmm/internal/source"
	"cmm/internal/token"
)

// state is a backtracking checkpoint.
type state struct {
	pos      int
	typedefs int
	last     token.Token
}

func (p *Parser) save() state {
	return state{pos: p.ts.Save(), typedefs: p.typedefs.len(), last: p.last}
}

func (p *Parser) restore(s state) {
	p.ts.Restore(s.pos)
	p.typedefs.truncate(s.typedefs)
	p.last = s.last
}

// peek returns the next token without consuming it. After a fatal source
// error it keeps returning END so every rule fails quickly.
func (p *Parser) peek() token.Token {
	if p.err != nil {
		return token.Token{Kind: token.End, Span: p.last.Span.Anchor()}
	}
	pos := p.ts.Save()
	tok, err := p.ts.Next()
	if err != nil {
		p.err = err
		return token.Token{Kind: token.End, Span: p.last.Span.Anchor()}
	}
	p.ts.Back()
	if pos > p.farPos {
		p.farPos, p.farTok = pos, tok
	}
	return tok
}

func (p *Parser) at(kinds ...token.Kind) bool {
	return p.peek().Is(kinds...)
}

// advance — съедает следующий токен
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if p.err != nil {
		return tok
	}
	if _, err := p.ts.Next(); err != nil {
		p.err = err
		return tok
	}
	p.last = tok
	return tok
}

// expect consumes a token of kind k. It is recorded in the call tree so a
// mismatch can become "expected X before Y".
func (p *Parser) expect(k token.Kind) (token.Token, bool) {
	tok := p.peek()
	id := p.tree.Enter(calltree.RuleExpect, tok, describe(k))
	if tok.Kind != k {
		p.tree.Exit(id, nil)
		return tok, false
	}
	p.advance()
	p.tree.Exit(id, tok)
	return tok, true
}

// missing records a failed expectation of something that is not a single
// token kind, e.g. "expression".
func (p *Parser) missing(what string) {
	id := p.tree.Enter(calltree.RuleExpect, p.peek(), what)
	p.tree.Exit(id, nil)
}

// accept consumes the next token if it has one of kinds; not recorded.
func (p *Parser) accept(kinds ...token.Kind) (token.Token, bool) {
	tok := p.peek()
	if !tok.Is(kinds...) {
		return tok, false
	}
	return p.advance(), true
}

// lookahead reports whether the next tokens have exactly these kinds.
func (p *Parser) lookahead(kinds ...token.Kind) bool {
	mark := p.save()
	defer p.restore(mark)
	for _, k := range kinds {
		if p.peek().Kind != k {
			return false
		}
		p.advance()
	}
	return true
}

// cover returns the span from start to the last consumed token.
func (p *Parser) cover(start token.Token) source.Span {
	if p.last.Span.Empty() {
		return start.Span
	}
	return start.Span.Merge(p.last.Span)
}

func describe(k token.Kind) string {
	if s := k.Spelling(); s != "" {
		return "'" + s + "'"
	}
	return k.Describe()
}

// rule records one attempt of a grammar rule. On failure the token
// position and typedef table go back to where the rule started.
func rule[T any](p *Parser, name string, fn func() (T, bool)) (T, bool) {
	mark := p.save()
	id := p.tree.Enter(name, p.peek())
	v, ok := fn()
	if !ok {
		p.restore(mark)
		p.tree.Exit(id, nil)
		return v, false
	}
	p.tree.Exit(id, v)
	return v, true
}

// optional tries fn; a failure is not an error and consumes nothing.
func optional[T any](p *Parser, fn func() (T, bool)) (T, bool) {
	return rule(p, calltree.RuleOptional, fn)
}

// first returns the first alternative that succeeds.
func first[T any](p *Parser, alts ...func() (T, bool)) (T, bool) {
	mark := p.save()
	for _, alt := range alts {
		if v, ok := alt(); ok {
			return v, true
		}
		p.restore(mark)
		if p.err != nil {
			break
		}
	}
	var zero T
	return zero, false
}

// scoped runs fn in a new typedef scope.
func scoped[T any](p *Parser, fn func() (T, bool)) (T, bool) {
	n := p.typedefs.len()
	v, ok := fn()
	p.typedefs.truncate(n)
	return v, ok
}

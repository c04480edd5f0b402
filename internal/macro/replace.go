package macro

import (
	"strings"

	"cmm/internal/diag"
	"cmm/internal/lexer"
	"cmm/internal/source"
	"cmm/internal/token"
)

type itemKind uint8

const (
	itemToken itemKind = iota
	itemStringizeStart
	itemStringizeEnd
	itemConcat
	itemPlacemarker
)

// item is a replacement list entry. Markers carry the token they stand
// for only for its location.
type item struct {
	kind itemKind
	tok  token.Token
}

func (it item) nothing() bool { return it.kind != itemToken }

func placemarker(at token.Token) item { return item{kind: itemPlacemarker, tok: at} }

// Replace substitutes args into a copy of the body, then resolves
// stringizing and pasting. The result still has to be rescanned by the caller.
func (m *Macro) Replace(args []Arg) ([]token.Token, error) {
	items, err := m.substitute(args)
	if err != nil {
		return nil, err
	}
	items, err = m.resolve(items)
	if err != nil {
		return nil, err
	}
	out := make([]token.Token, 0, len(items))
	for _, it := range items {
		if it.kind == itemToken {
			out = append(out, it.tok)
		}
	}
	return out, nil
}

func isVaArgs(tok token.Token) bool { return tok.Name() == "__VA_ARGS__" }
func isVaOpt(tok token.Token) bool  { return tok.Name() == "__VA_OPT__" }

func (m *Macro) badReplacement(sp source.Span, msg string) error {
	return diag.Errorf(diag.PPBadReplacement, sp, "in macro '%s': %s", m.Name, msg)
}

// argFor maps a body token to the argument it names. ok is false for
// tokens that are not parameters and for an absent __VA_ARGS__.
func (m *Macro) argFor(tok token.Token, args []Arg) (Arg, bool, error) {
	name := tok.Name()
	if name == "" || !m.FuncLike {
		if isVaArgs(tok) {
			return Arg{}, false, m.badReplacement(tok.Span, "__VA_ARGS__ can only appear in a variadic macro")
		}
		return Arg{}, false, nil
	}
	if name == "__VA_ARGS__" {
		if !m.Variadic() {
			return Arg{}, false, m.badReplacement(tok.Span, "__VA_ARGS__ can only appear in a variadic macro")
		}
		if m.vaSupplied(args) {
			return args[len(m.Params)-1], true, nil
		}
		return Arg{}, false, nil
	}
	idx := m.paramIndex(name)
	if idx < 0 {
		return Arg{}, false, nil
	}
	if idx < len(args) {
		return args[idx], true, nil
	}
	return Arg{}, true, nil
}

func (m *Macro) substitute(args []Arg) ([]item, error) {
	repl := make([]item, len(m.Body))
	for i, tok := range m.Body {
		repl[i] = item{tok: tok}
	}

	out := make([]item, 0, len(repl))
	stringizing := 0 // открытые '#__VA_OPT__' без конца
	for i := 0; i < len(repl); {
		it := repl[i]
		if it.kind != itemToken {
			out = append(out, it)
			i++
			continue
		}
		tok := it.tok

		arg, ok, err := m.argFor(tok, args)
		if err != nil {
			return nil, err
		}
		if ok {
			if len(arg.Tokens) == 0 {
				out = append(out, placemarker(tok))
			}
			for k, at := range arg.Tokens {
				if k == 0 {
					at.Space = tok.Space
				}
				out = append(out, item{tok: at})
			}
			i++
			continue
		}

		switch {
		case isVaArgs(tok):
			out = append(out, placemarker(tok))
			i++
			continue

		case isVaOpt(tok):
			if !m.Variadic() {
				return nil, m.badReplacement(tok.Span, "__VA_OPT__ can only appear in a variadic macro")
			}
			end, content, err := m.vaOptContent(repl, i)
			if err != nil {
				return nil, err
			}
			if !m.vaSupplied(args) || len(args[len(args)-1].Tokens) == 0 {
				content = nil
			}
			splice := make([]item, 0, len(content)+1)
			splice = append(splice, content...)
			switch {
			case stringizing > 0:
				stringizing--
				splice = append(splice, item{kind: itemStringizeEnd, tok: tok})
			case len(content) == 0:
				splice = append(splice, placemarker(tok))
			}
			// содержимое __VA_OPT__ обрабатывается тем же циклом
			repl = append(append(append([]item{}, repl[:i]...), splice...), repl[end:]...)
			continue

		case tok.Kind == token.Hash && m.FuncLike:
			if i+1 >= len(repl) || repl[i+1].kind != itemToken {
				return nil, m.badReplacement(tok.Span, "'#' is not followed by a macro parameter")
			}
			next := repl[i+1].tok
			arg, ok, err := m.argFor(next, args)
			if err != nil {
				return nil, err
			}
			var text string
			switch {
			case ok:
				text = arg.Text
			case isVaArgs(next):
				text = ""
			case isVaOpt(next):
				out = append(out, item{kind: itemStringizeStart, tok: tok})
				stringizing++
				i++
				continue
			default:
				return nil, m.badReplacement(next.Span, "'#' is not followed by a macro parameter")
			}
			lit := stringLiteral(text, tok.Span.Merge(next.Span))
			lit.Space = tok.Space
			out = append(out, item{tok: lit})
			i += 2
			continue

		case tok.Kind == token.HashHash:
			out = append(out, item{kind: itemConcat, tok: tok})
			i++
			continue
		}

		out = append(out, it)
		i++
	}
	return out, nil
}

// vaOptContent parses `__VA_OPT__ ( ... )` starting at repl[at] and returns
// the index just past ')' together with the content between the parens.
func (m *Macro) vaOptContent(repl []item, at int) (int, []item, error) {
	opt := repl[at].tok
	i := at + 1
	if i >= len(repl) || repl[i].kind != itemToken || repl[i].tok.Kind != token.LParen {
		return 0, nil, m.badReplacement(opt.Span, "missing '(' after __VA_OPT__")
	}
	i++
	depth := 1
	var content []item
	for ; i < len(repl); i++ {
		it := repl[i]
		if it.kind == itemToken {
			switch {
			case it.tok.Kind == token.LParen:
				depth++
			case it.tok.Kind == token.RParen:
				depth--
			case isVaOpt(it.tok):
				return 0, nil, m.badReplacement(it.tok.Span, "__VA_OPT__ cannot be nested")
			}
		}
		if depth == 0 {
			return i + 1, content, nil
		}
		content = append(content, it)
	}
	return 0, nil, m.badReplacement(opt.Span, "missing ')' after __VA_OPT__")
}

func (m *Macro) resolve(items []item) ([]item, error) {
	var err error
	for i := 0; i < len(items); i++ {
		switch items[i].kind {
		case itemStringizeStart:
			j := i + 1
			for ; j < len(items) && items[j].kind != itemStringizeEnd; j++ {
				if items[j].kind == itemConcat {
					if items, err = m.paste(items, j); err != nil {
						return nil, err
					}
					j--
				}
			}
			if j >= len(items) {
				return nil, m.badReplacement(items[i].tok.Span, "unterminated '#__VA_OPT__'")
			}
			parts := make([]string, 0, j-i)
			span := items[i].tok.Span
			for _, it := range items[i+1 : j] {
				if it.kind != itemToken {
					continue
				}
				parts = append(parts, it.tok.Text)
				span = span.Merge(it.tok.Span)
			}
			lit := stringLiteral(strings.Join(parts, " "), span)
			lit.Space = items[i].tok.Space
			items = append(append(items[:i:i], item{tok: lit}), items[j+1:]...)
		case itemConcat:
			if items, err = m.paste(items, i); err != nil {
				return nil, err
			}
			i--
		}
	}
	return items, nil
}

// paste resolves the '##' at items[at]. Placemarkers and markers count as
// nothing: real ## nothing keeps the real token, nothing ## nothing leaves
// a placemarker. Real operands are re-lexed as one piece of text, which may
// yield more than one token.
func (m *Macro) paste(items []item, at int) ([]item, error) {
	if at == 0 || at == len(items)-1 {
		return nil, m.badReplacement(items[at].tok.Span, "'##' cannot appear at either end of a macro expansion")
	}
	a, b := items[at-1], items[at+1]
	start, end := at, at+1
	var operands []token.Token
	if !a.nothing() {
		operands = append(operands, a.tok)
		start = at - 1
	}
	if !b.nothing() {
		operands = append(operands, b.tok)
		end = at + 2
	}
	if a.kind == itemPlacemarker {
		start = at - 1
	}
	if b.kind == itemPlacemarker {
		end = at + 2
	}

	var repl []item
	if len(operands) == 0 {
		repl = []item{placemarker(items[at].tok)}
	} else {
		toks, err := m.relex(operands)
		if err != nil {
			return nil, err
		}
		for _, tok := range toks {
			repl = append(repl, item{tok: tok})
		}
		if len(repl) == 0 {
			repl = []item{placemarker(items[at].tok)}
		}
	}
	return append(append(items[:start:start], repl...), items[end:]...), nil
}

func (m *Macro) relex(operands []token.Token) ([]token.Token, error) {
	lx := lexer.New(lexer.NewConcatReader(m.Files, operands), lexer.Options{})
	var hide token.HideSet
	for _, op := range operands {
		hide = hide.Union(op.Hide)
	}
	var out []token.Token
	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == token.End {
			break
		}
		tok.Hide = hide
		out = append(out, tok)
	}
	if len(out) > 0 {
		out[0].Space = operands[0].Space
	}
	return out, nil
}

func stringLiteral(text string, sp source.Span) token.Token {
	lit := stringize(text)
	return token.Token{
		Kind:    token.StringLiteral,
		Span:    sp,
		Text:    lit,
		Content: token.Decode(lit[1 : len(lit)-1]),
	}
}

// stringize quotes text; backslashes and double quotes inside string and
// character literals get escaped.
func stringize(text string) string {
	var b strings.Builder
	b.Grow(len(text) + 2)
	b.WriteByte('"')
	var quote byte
	for i := 0; i < len(text); i++ {
		c := text[i]
		if quote == 0 {
			if c == '"' || c == '\'' {
				quote = c
			}
			if c == '"' {
				b.WriteByte('\\')
			}
			b.WriteByte(c)
			continue
		}
		if c == '\\' || c == '"' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
		switch {
		case c == '\\' && i+1 < len(text):
			i++
			if e := text[i]; e == '\\' || e == '"' {
				b.WriteByte('\\')
			}
			b.WriteByte(text[i])
		case c == quote:
			quote = 0
		}
	}
	b.WriteByte('"')
	return b.String()
}

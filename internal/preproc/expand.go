package preproc

import (
	"slices"
	"strconv"
	"strings"

	"cmm/internal/diag"
	"cmm/internal/macro"
	"cmm/internal/token"
)

// expand tries to replace the identifier at idx. When rescan is true the
// replacement is in the cache at idx and must be read again; otherwise tok
// is the (possibly predefined-substituted) token to emit.
func (pp *Preprocessor) expand(idx int, tok token.Token) (token.Token, bool, error) {
	name := tok.Text
	if tok.Hide.Contains(name) {
		return tok, false, nil
	}
	switch name {
	case "__FILE__", "__LINE__", "__DATE__", "__TIME__":
		lit := pp.predefined(name, tok)
		pp.Set(idx, lit)
		return lit, false, nil
	}

	m, ok := pp.macros.Lookup(name)
	if !ok {
		return tok, false, nil
	}
	var args []macro.Arg
	if m.FuncLike {
		var called bool
		var err error
		args, called, err = pp.macroArgs(m, tok)
		if err != nil {
			return tok, false, err
		}
		if !called || !m.Accepts(len(args)) {
			pp.Restore(idx + 1)
			return tok, false, nil
		}
	}
	end := pp.Save()

	repl, err := m.Replace(args)
	if err != nil {
		return tok, false, err
	}
	hide := tok.Hide.With(name)
	for i := range repl {
		repl[i].Hide = repl[i].Hide.Union(hide)
		repl[i].PPHash = false
	}
	if len(repl) > 0 {
		repl[0].Space = tok.Space
	}
	pp.Splice(idx, end, repl)
	return tok, true, nil
}

func (pp *Preprocessor) predefined(name string, at token.Token) token.Token {
	lit := token.Token{Kind: token.StringLiteral, Span: at.Span, Space: at.Space, Hide: at.Hide}
	switch name {
	case "__FILE__":
		lit.Content = pp.filename
		lit.Text = `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(pp.filename) + `"`
		return lit
	case "__LINE__":
		lit.Kind = token.IntConst
		lit.Text = strconv.Itoa(pp.lineOf(at))
		return lit
	case "__DATE__":
		lit.Content = pp.cfg.now().Format("Jan _2 2006")
	case "__TIME__":
		lit.Content = pp.cfg.now().Format("15:04:05")
	}
	lit.Text = `"` + lit.Content + `"`
	return lit
}

func (pp *Preprocessor) lineOf(tok token.Token) int {
	r := tok.Span.First()
	start, _ := pp.fs.Resolve(r)
	line := int(start.Line)
	if r.File == pp.file.ID {
		line += pp.lineShift
	}
	return line
}

// macroArgs collects the arguments of a function-like macro call. called is
// false when the name is not followed by '('. Each argument is expanded in
// place before the next one is read.
func (pp *Preprocessor) macroArgs(m *macro.Macro, name token.Token) ([]macro.Arg, bool, error) {
	pp.push(GettingMacroArgs)
	defer pp.pop(GettingMacroArgs)

	open, err := pp.Next()
	if err != nil {
		return nil, false, err
	}
	if open.Kind != token.LParen {
		return nil, false, nil
	}

	var args []macro.Arg
	start := pp.Save()
	depth := 0
	for {
		tok, err := pp.Next()
		if err != nil {
			return nil, false, err
		}
		closing := false
		switch {
		case tok.Kind == token.End || tok.Kind == token.Newline:
			return nil, false, diag.Errorf(diag.PPUnterminatedArgs, name.Span, "unterminated argument list invoking macro '%s'", m.Name)
		case tok.Kind == token.LParen:
			depth++
			continue
		case tok.Kind == token.RParen && depth > 0:
			depth--
			continue
		case tok.Kind == token.RParen:
			closing = true
		case tok.Kind == token.Comma && depth == 0:
			// запятые внутри вариативного аргумента его не разделяют
			if m.Variadic() && len(args) >= len(m.Params)-1 {
				continue
			}
		default:
			continue
		}

		delim := pp.Save() - 1
		if closing && len(args) == 0 && delim == start {
			return args, true, nil // F()
		}
		arg, err := pp.expandArg(start, delim)
		if err != nil {
			return nil, false, err
		}
		args = append(args, arg)
		if closing {
			return args, true, nil
		}
		start = pp.Save()
	}
}

// expandArg macro-expands the argument tokens in [start, delim) in place.
// The distance from the delimiter to the end of the cache stays constant
// while the argument grows or shrinks, which locates the delimiter again.
func (pp *Preprocessor) expandArg(start, delim int) (macro.Arg, error) {
	text := spell(pp.Tokens()[start:delim])

	pp.pop(GettingMacroArgs)
	tail := len(pp.Tokens()) - delim
	pp.Restore(start)
	for pp.Save() < len(pp.Tokens())-tail {
		if _, err := pp.Next(); err != nil {
			pp.push(GettingMacroArgs)
			return macro.Arg{}, err
		}
	}
	end := len(pp.Tokens()) - tail
	toks := slices.Clone(pp.Tokens()[start:end])
	pp.Restore(end + 1)
	pp.push(GettingMacroArgs)

	return macro.Arg{Tokens: toks, Text: text}, nil
}

// spell rebuilds source text from tokens; any run of whitespace becomes one space.
func spell(toks []token.Token) string {
	var b strings.Builder
	for i, tok := range toks {
		if i > 0 && tok.Space {
			b.WriteByte(' ')
		}
		b.WriteString(tok.Text)
	}
	return b.String()
}

package preproc

import (
	"strconv"
	"strings"

	"cmm/internal/diag"
	"cmm/internal/macro"
	"cmm/internal/source"
	"cmm/internal/token"
)

// handleDirective processes the directive whose '#' sits at index at and
// removes its tokens (and any skipped group) from the cache.
func (pp *Preprocessor) handleDirective(at int, hash token.Token) error {
	pp.push(HandlingDirective)
	err := pp.directive(hash)
	pp.pop(HandlingDirective)
	if err != nil {
		return err
	}
	pp.Splice(at, pp.Save(), nil)
	return nil
}

func (pp *Preprocessor) directive(hash token.Token) error {
	name, err := pp.Next()
	if err != nil {
		return err
	}
	if name.Kind == token.Newline || name.Kind == token.End {
		return nil // пустая директива
	}
	where := hash.Span.Merge(name.Span)

	switch name.Name() {
	case "define":
		return pp.define()
	case "undef":
		return pp.undef()
	case "ifdef", "ifndef":
		return pp.ifdef(where, name.Text == "ifndef")
	case "if":
		// условие не вычисляется: группа считается выбранной
		if err := pp.readLineEnd(); err != nil {
			return err
		}
		pp.conds = append(pp.conds, cond{taken: true, where: where})
		return nil
	case "elif":
		return pp.elif(where)
	case "elifdef", "elifndef":
		return pp.elifdef(where, name.Text == "elifndef")
	case "else":
		return pp.elseDirective(where)
	case "endif":
		if len(pp.conds) == 0 {
			return diag.Errorf(diag.PPUnbalancedCond, where, "#endif without #if")
		}
		pp.conds = pp.conds[:len(pp.conds)-1]
		return pp.readLineEnd()
	case "include":
		return pp.include(where)
	case "line":
		return pp.line()
	case "error":
		return diag.Errorf(diag.PPUserError, where, "#error %s", pp.restOfLine())
	case "warning":
		diag.ReportWarning(pp.cfg.Reporter, diag.PPUserWarning, where, "#warning "+pp.restOfLine()).Emit()
		return pp.readLineEnd()
	case "pragma":
		diag.NewReportBuilder(pp.cfg.Reporter, diag.SevInfo, diag.PPIgnoredPragma, where, "#pragma ignored").Emit()
		return pp.readLineEnd()
	case "embed":
		pp.push(HandlingEmbed)
		defer pp.pop(HandlingEmbed)
		return pp.readLineEnd()
	}
	return diag.Errorf(diag.PPUnknownDirective, where, "invalid preprocessing directive #%s", name.Text)
}

// readLineEnd consumes tokens up to and including the directive's newline.
func (pp *Preprocessor) readLineEnd() error {
	for {
		if k := pp.Current().Kind; k == token.Newline || k == token.End {
			return nil
		}
		if _, err := pp.Next(); err != nil {
			return err
		}
	}
}

// restOfLine returns the raw text after the directive name, as written.
func (pp *Preprocessor) restOfLine() string {
	if pp.Save() != len(pp.Tokens()) {
		// имя директивы пришло из кэша; собираем текст по токенам
		var parts []string
		for {
			tok, err := pp.Next()
			if err != nil || tok.Kind == token.Newline || tok.Kind == token.End {
				break
			}
			parts = append(parts, tok.Text)
		}
		return strings.Join(parts, " ")
	}
	cs := pp.Chars()
	var b strings.Builder
	for {
		c, ok := cs.Next()
		if !ok {
			break
		}
		if c.R == '\n' {
			cs.Back()
			break
		}
		b.WriteRune(c.R)
	}
	return strings.TrimSpace(b.String())
}

func (pp *Preprocessor) macroName() (token.Token, error) {
	name, err := pp.Next()
	if err != nil {
		return name, err
	}
	if name.Name() == "" {
		return name, diag.Errorf(diag.PPMalformedDirective, name.Span, "macro name must be an identifier")
	}
	return name, nil
}

func (pp *Preprocessor) define() error {
	name, err := pp.macroName()
	if err != nil {
		return err
	}
	m := &macro.Macro{Name: name.Text, Where: name.Span, Files: pp.fs}

	// функциональный макрос, только если '(' стоит вплотную к имени
	if pp.Save() == len(pp.Tokens()) && pp.Chars().PeekIs('(') {
		m.FuncLike = true
		if _, err := pp.Next(); err != nil {
			return err
		}
		if m.Params, err = pp.macroParams(); err != nil {
			return err
		}
	}

	for {
		tok, err := pp.Next()
		if err != nil {
			return err
		}
		if tok.Kind == token.Newline || tok.Kind == token.End {
			break
		}
		m.Body = append(m.Body, tok)
	}
	if len(m.Body) > 0 {
		m.Body[0].Space = false
	}

	if err := m.Check(); err != nil {
		return err
	}
	return pp.macros.Define(m)
}

func (pp *Preprocessor) macroParams() ([]token.Token, error) {
	tok, err := pp.Next()
	if err != nil {
		return nil, err
	}
	params := []token.Token{}
	if tok.Kind == token.RParen {
		return params, nil
	}
	for {
		if tok.Kind != token.Ellipsis && tok.Name() == "" {
			return nil, diag.Errorf(diag.PPBadMacroParams, tok.Span, "expected parameter name, found '%s'", tok.Text)
		}
		params = append(params, tok)
		if tok, err = pp.Next(); err != nil {
			return nil, err
		}
		switch tok.Kind {
		case token.Comma:
			if tok, err = pp.Next(); err != nil {
				return nil, err
			}
		case token.RParen:
			return params, nil
		default:
			return nil, diag.Errorf(diag.PPBadMacroParams, tok.Span, "expected ',' or ')' in macro parameter list")
		}
	}
}

func (pp *Preprocessor) undef() error {
	name, err := pp.macroName()
	if err != nil {
		return err
	}
	pp.macros.Undef(name.Text)
	return pp.readLineEnd()
}

func (pp *Preprocessor) ifdef(where source.Span, negate bool) error {
	name, err := pp.macroName()
	if err != nil {
		return err
	}
	if err := pp.readLineEnd(); err != nil {
		return err
	}
	verdict := pp.macros.Defined(name.Text) != negate
	pp.conds = append(pp.conds, cond{taken: verdict, where: where})
	if !verdict {
		return pp.skipGroup()
	}
	return nil
}

// top returns the innermost open group for an #elif-family directive.
func (pp *Preprocessor) top(where source.Span, directive string) (*cond, error) {
	if len(pp.conds) == 0 {
		return nil, diag.Errorf(diag.PPUnbalancedCond, where, "#%s without #if", directive)
	}
	c := &pp.conds[len(pp.conds)-1]
	if c.inElse {
		return nil, diag.Errorf(diag.PPUnbalancedCond, where, "#%s after #else", directive)
	}
	return c, nil
}

func (pp *Preprocessor) elif(where source.Span) error {
	c, err := pp.top(where, "elif")
	if err != nil {
		return err
	}
	if err := pp.readLineEnd(); err != nil {
		return err
	}
	if c.taken {
		return pp.skipGroup()
	}
	c.taken = true
	return nil
}

func (pp *Preprocessor) elifdef(where source.Span, negate bool) error {
	directive := "elifdef"
	if negate {
		directive = "elifndef"
	}
	c, err := pp.top(where, directive)
	if err != nil {
		return err
	}
	name, err := pp.macroName()
	if err != nil {
		return err
	}
	if err := pp.readLineEnd(); err != nil {
		return err
	}
	if c.taken {
		return pp.skipGroup()
	}
	c.taken = pp.macros.Defined(name.Text) != negate
	if !c.taken {
		return pp.skipGroup()
	}
	return nil
}

func (pp *Preprocessor) elseDirective(where source.Span) error {
	c, err := pp.top(where, "else")
	if err != nil {
		return err
	}
	c.inElse = true
	if err := pp.readLineEnd(); err != nil {
		return err
	}
	if c.taken {
		return pp.skipGroup()
	}
	c.taken = true
	return nil
}

// skipGroup consumes a group up to, not including, the '#' of the
// directive that ends it. Nested groups are balanced by counting levels.
func (pp *Preprocessor) skipGroup() error {
	pp.push(SkippingGroup)
	pp.SetLenient(true)
	defer func() {
		pp.SetLenient(false)
		pp.pop(SkippingGroup)
	}()

	level := 1
	for {
		tok, err := pp.Next()
		if err != nil {
			return err
		}
		if tok.Kind == token.End {
			return nil
		}
		if tok.Kind != token.Hash || !tok.PPHash {
			continue
		}
		name, err := pp.Next()
		if err != nil {
			return err
		}
		stop := false
		switch name.Name() {
		case "if", "ifdef", "ifndef":
			level++
		case "endif":
			level--
			stop = level == 0
		case "elif", "elifdef", "elifndef", "else":
			stop = level == 1
		}
		if stop {
			pp.Back()
			pp.Back()
			return nil
		}
	}
}

// line handles `#line N ["file"]`: the line after the directive becomes N.
func (pp *Preprocessor) line() error {
	pp.push(HandlingLine)
	defer pp.pop(HandlingLine)

	num, err := pp.Next()
	if err != nil {
		return err
	}
	if num.Kind != token.IntConst {
		return diag.Errorf(diag.PPBadLine, num.Span, "#line directive requires a positive integer argument")
	}
	n, err := strconv.ParseUint(strings.ReplaceAll(num.Text, "'", ""), 10, 31)
	if err != nil || n == 0 {
		return diag.Errorf(diag.PPBadLine, num.Span, "invalid line number '%s' in #line directive", num.Text)
	}

	tok, err := pp.Next()
	if err != nil {
		return err
	}
	if tok.Kind == token.StringLiteral {
		pp.filename = tok.Content
	}
	if err := pp.readLineEnd(); err != nil {
		return err
	}

	if nl := pp.Current(); nl.Kind == token.Newline {
		start, _ := pp.fs.Resolve(nl.Span.First())
		pp.lineShift = int(n) - int(start.Line+1)
	}
	return nil
}

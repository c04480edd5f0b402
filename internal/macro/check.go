package macro

import (
	"cmm/internal/diag"
	"cmm/internal/token"
)

// Check validates a definition before it enters the table.
func (m *Macro) Check() error {
	switch m.Name {
	case "defined", "__VA_ARGS__", "__VA_OPT__":
		return diag.Errorf(diag.PPBadMacroParams, m.Where, "'%s' cannot be used as a macro name", m.Name)
	}

	seen := make(map[string]bool, len(m.Params))
	for i, p := range m.Params {
		if p.Kind == token.Ellipsis {
			if i != len(m.Params)-1 {
				return diag.Errorf(diag.PPBadMacroParams, p.Span, "'...' must be the last macro parameter")
			}
			continue
		}
		if isVaArgs(p) || isVaOpt(p) {
			return diag.Errorf(diag.PPBadMacroParams, p.Span, "'%s' cannot be used as a macro parameter", p.Text)
		}
		if seen[p.Text] {
			return diag.Errorf(diag.PPBadMacroParams, p.Span, "duplicate macro parameter '%s'", p.Text)
		}
		seen[p.Text] = true
	}

	n := len(m.Body)
	if n > 0 && m.Body[0].Kind == token.HashHash {
		return m.badReplacement(m.Body[0].Span, "'##' cannot appear at either end of a macro expansion")
	}
	if n > 1 && m.Body[n-1].Kind == token.HashHash {
		return m.badReplacement(m.Body[n-1].Span, "'##' cannot appear at either end of a macro expansion")
	}
	for i, tok := range m.Body {
		if (isVaArgs(tok) || isVaOpt(tok)) && !m.Variadic() {
			return m.badReplacement(tok.Span, tok.Text+" can only appear in a variadic macro")
		}
		if m.FuncLike && tok.Kind == token.Hash {
			if i+1 >= n || !m.stringizable(m.Body[i+1]) {
				return m.badReplacement(tok.Span, "'#' is not followed by a macro parameter")
			}
		}
	}
	return nil
}

func (m *Macro) stringizable(tok token.Token) bool {
	return isVaArgs(tok) || isVaOpt(tok) || (tok.Name() != "" && m.paramIndex(tok.Name()) >= 0)
}

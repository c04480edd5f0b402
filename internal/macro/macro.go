package macro

import (
	"cmm/internal/source"
	"cmm/internal/token"
)

// Macro is one #define.
type Macro struct {
	Name string
	// FuncLike is set when the name was immediately followed by '('.
	FuncLike bool
	// Params are the parameter names; a trailing '...' makes the macro variadic.
	Params []token.Token
	Body   []token.Token
	// Where is the span of the defining directive's name.
	Where source.Span
	// Files resolves token spans when pasted tokens are re-lexed; may be nil.
	Files *source.FileSet
}

// Arg is one argument of a function-like macro call.
type Arg struct {
	// Tokens are already macro-expanded.
	Tokens []token.Token
	// Text is the verbatim spelling used by '#'.
	Text string
}

func (m *Macro) Variadic() bool {
	n := len(m.Params)
	return m.FuncLike && n > 0 && m.Params[n-1].Kind == token.Ellipsis
}

// Arity returns the number of named parameters, not counting '...'.
func (m *Macro) Arity() int {
	if m.Variadic() {
		return len(m.Params) - 1
	}
	return len(m.Params)
}

// Accepts reports whether a call with n arguments can expand this macro.
// A variadic macro needs at least its named parameters, F() included.
// Otherwise the count must match, except for an empty call F() and for
// single-parameter macros, which take any count and use the first argument.
func (m *Macro) Accepts(n int) bool {
	p := len(m.Params)
	if m.Variadic() {
		return n >= p-1
	}
	return n == p || n == 0 || p == 1
}

func (m *Macro) paramIndex(name string) int {
	for i, p := range m.Params {
		if p.Kind != token.Ellipsis && p.Text == name {
			return i
		}
	}
	return -1
}

// vaSupplied reports whether the call had a variadic argument at all.
func (m *Macro) vaSupplied(args []Arg) bool {
	return m.Variadic() && len(args) > len(m.Params)-1
}

// Equal сравнивает определения структурно: имя, параметры, тело и
// пробелы между токенами тела.
func (m *Macro) Equal(o *Macro) bool {
	if m.Name != o.Name || m.FuncLike != o.FuncLike || len(m.Params) != len(o.Params) || len(m.Body) != len(o.Body) {
		return false
	}
	for i := range m.Params {
		if m.Params[i].Text != o.Params[i].Text {
			return false
		}
	}
	for i := range m.Body {
		a, b := m.Body[i], o.Body[i]
		if a.Kind != b.Kind || a.Text != b.Text {
			return false
		}
		if i > 0 && a.Space != b.Space {
			return false
		}
	}
	return true
}

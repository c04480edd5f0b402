package macro

import (
	"sort"

	"cmm/internal/diag"
)

// Table holds the macros of one translation unit. Preprocessors for
// included files share the parent's table, so definitions flow both ways.
type Table struct {
	macros map[string]*Macro
}

func NewTable() *Table {
	return &Table{macros: make(map[string]*Macro)}
}

func (t *Table) Lookup(name string) (*Macro, bool) {
	m, ok := t.macros[name]
	return m, ok
}

func (t *Table) Defined(name string) bool {
	_, ok := t.macros[name]
	return ok
}

// Define adds m. Redefining a name is allowed only with an identical definition.
func (t *Table) Define(m *Macro) error {
	if prev, ok := t.macros[m.Name]; ok && !prev.Equal(m) {
		d := diag.NewError(diag.PPMacroRedefined, m.Where, "macro '"+m.Name+"' redefined")
		if !prev.Where.Empty() {
			d = d.WithNote(prev.Where, "previous definition is here")
		}
		return &diag.Error{Diag: d}
	}
	t.macros[m.Name] = m
	return nil
}

// Undef removes name; undefining an unknown name is not an error.
func (t *Table) Undef(name string) {
	delete(t.macros, name)
}

func (t *Table) Len() int {
	return len(t.macros)
}

// Names returns the defined names in sorted order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.macros))
	for name := range t.macros {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

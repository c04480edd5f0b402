package parser

import "slices"

// typedefs is the stack of names declared by typedef. Scopes and
// backtracking both unwind it by truncation.
type typedefs struct {
	names []string
}

func (t *typedefs) add(name string) {
	t.names = append(t.names, name)
}

func (t *typedefs) has(name string) bool {
	return slices.Contains(t.names, name)
}

func (t *typedefs) len() int {
	return len(t.names)
}

func (t *typedefs) truncate(n int) {
	if n < len(t.names) {
		t.names = t.names[:n]
	}
}

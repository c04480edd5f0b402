package token

import "slices"

// HideSet is a sorted set of macro names. A token is never re-expanded by a
// macro in its hide set, which ends rescanning of self-referential macros.
// Values are immutable; With and Union return fresh sets.
type HideSet []string

func (h HideSet) Contains(name string) bool {
	_, ok := slices.BinarySearch(h, name)
	return ok
}

func (h HideSet) With(name string) HideSet {
	i, ok := slices.BinarySearch(h, name)
	if ok {
		return h
	}
	out := make(HideSet, 0, len(h)+1)
	out = append(out, h[:i]...)
	out = append(out, name)
	return append(out, h[i:]...)
}

func (h HideSet) Union(o HideSet) HideSet {
	out := h
	for _, name := range o {
		out = out.With(name)
	}
	return out
}

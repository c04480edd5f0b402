package source

import (
	"fmt"
	"strings"
)

// Range is a contiguous run of bytes inside one file.
// Ranges produced by the lexer never cross a line break.
type Range struct {
	File  FileID
	Start uint32 // в байтах включительно
	End   uint32 // в байтах не включительно
}

func (r Range) Empty() bool {
	return r.Start == r.End
}

func (r Range) Len() uint32 {
	return r.End - r.Start
}

func (r Range) String() string {
	return fmt.Sprintf("%d:%d-%d", r.File, r.Start, r.End)
}

// less упорядочивает диапазоны по файлу, затем по началу, затем по концу.
func (r Range) less(o Range) bool {
	if r.File != o.File {
		return r.File < o.File
	}
	if r.Start != o.Start {
		return r.Start < o.Start
	}
	return r.End < o.End
}

// touches reports whether the two ranges overlap or are directly adjacent.
func (r Range) touches(o Range) bool {
	return r.File == o.File && r.Start <= o.End && o.Start <= r.End
}

func (r Range) union(o Range) Range {
	if o.Start < r.Start {
		r.Start = o.Start
	}
	if o.End > r.End {
		r.End = o.End
	}
	return r
}

// Span is an ordered set of disjoint ranges.
// Every insertion keeps the set sorted and merges ranges that overlap or touch.
// Spans are values: Add and Merge never modify the receiver.
type Span []Range

// SpanOf returns a span holding the single range r.
func SpanOf(r Range) Span {
	return Span{r}
}

func (s Span) Empty() bool {
	return len(s) == 0
}

// Add returns a new span with r inserted.
func (s Span) Add(r Range) Span {
	out := make(Span, 0, len(s)+1)
	i := 0
	for i < len(s) && s[i].less(r) && !s[i].touches(r) {
		out = append(out, s[i])
		i++
	}
	for i < len(s) && s[i].touches(r) {
		r = r.union(s[i])
		i++
	}
	out = append(out, r)
	return append(out, s[i:]...)
}

// Merge returns the union of both spans.
func (s Span) Merge(o Span) Span {
	if len(s) == 0 {
		return o.Clone()
	}
	out := s.Clone()
	for _, r := range o {
		out = out.Add(r)
	}
	return out
}

func (s Span) Clone() Span {
	if s == nil {
		return nil
	}
	return append(Span(nil), s...)
}

// First returns the leftmost range; the zero Range for an empty span.
func (s Span) First() Range {
	if len(s) == 0 {
		return Range{}
	}
	return s[0]
}

// Last returns the rightmost range; the zero Range for an empty span.
func (s Span) Last() Range {
	if len(s) == 0 {
		return Range{}
	}
	return s[len(s)-1]
}

// Anchor returns a zero-width span at the beginning of s.
func (s Span) Anchor() Span {
	first := s.First()
	return Span{{File: first.File, Start: first.Start, End: first.Start}}
}

func (s Span) Equal(o Span) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

func (s Span) String() string {
	parts := make([]string, 0, len(s))
	for _, r := range s {
		parts = append(parts, r.String())
	}
	return "[" + strings.Join(parts, " ") + "]"
}

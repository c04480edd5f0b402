package source

import (
	"testing"
)

func TestSpanAddKeepsOrderAndMerges(t *testing.T) {
	tests := []struct {
		name   string
		ranges []Range
		want   Span
	}{
		{
			name:   "single range",
			ranges: []Range{{File: 0, Start: 3, End: 5}},
			want:   Span{{File: 0, Start: 3, End: 5}},
		},
		{
			name:   "adjacent ranges merge",
			ranges: []Range{{File: 0, Start: 3, End: 5}, {File: 0, Start: 5, End: 6}},
			want:   Span{{File: 0, Start: 3, End: 6}},
		},
		{
			name:   "overlap merges",
			ranges: []Range{{File: 0, Start: 3, End: 8}, {File: 0, Start: 5, End: 10}},
			want:   Span{{File: 0, Start: 3, End: 10}},
		},
		{
			name:   "gap keeps two ranges sorted",
			ranges: []Range{{File: 0, Start: 10, End: 12}, {File: 0, Start: 1, End: 2}},
			want:   Span{{File: 0, Start: 1, End: 2}, {File: 0, Start: 10, End: 12}},
		},
		{
			name:   "bridge joins neighbours",
			ranges: []Range{{File: 0, Start: 1, End: 2}, {File: 0, Start: 4, End: 5}, {File: 0, Start: 2, End: 4}},
			want:   Span{{File: 0, Start: 1, End: 5}},
		},
		{
			name:   "different files never merge",
			ranges: []Range{{File: 1, Start: 0, End: 2}, {File: 0, Start: 0, End: 2}},
			want:   Span{{File: 0, Start: 0, End: 2}, {File: 1, Start: 0, End: 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Span
			for _, r := range tt.ranges {
				s = s.Add(r)
			}
			if !s.Equal(tt.want) {
				t.Errorf("got %s, want %s", s, tt.want)
			}
		})
	}
}

func TestSpanAddDoesNotAlias(t *testing.T) {
	base := Span{{File: 0, Start: 0, End: 1}, {File: 0, Start: 5, End: 6}}
	_ = base.Add(Range{File: 0, Start: 1, End: 5})
	if len(base) != 2 || base[0].End != 1 {
		t.Fatalf("receiver was modified: %s", base)
	}
}

func TestSpanMerge(t *testing.T) {
	a := Span{{File: 0, Start: 0, End: 2}}
	b := Span{{File: 0, Start: 4, End: 6}, {File: 0, Start: 2, End: 3}}
	got := a.Merge(b)
	want := Span{{File: 0, Start: 0, End: 3}, {File: 0, Start: 4, End: 6}}
	if !got.Equal(want) {
		t.Errorf("got %s, want %s", got, want)
	}
	if got := Span(nil).Merge(b); !got.Equal(b) {
		t.Errorf("merge into empty: got %s", got)
	}
}

func TestSpanAnchor(t *testing.T) {
	s := Span{{File: 2, Start: 7, End: 9}}
	a := s.Anchor()
	if len(a) != 1 || !a[0].Empty() || a[0].Start != 7 || a[0].File != 2 {
		t.Errorf("unexpected anchor %s", a)
	}
	if !Span(nil).Anchor()[0].Empty() {
		t.Error("anchor of empty span must be empty")
	}
}

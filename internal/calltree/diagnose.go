package calltree

import (
	"fmt"

	"cmm/internal/diag"
	"cmm/internal/source"
	"cmm/internal/token"
)

// Diagnose marks the tree and returns one diagnostic per selected leaf.
// Ties between equally advanced alternatives all get reported. A tree whose
// roots never get marked yields nothing.
func (t *Tree) Diagnose() []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, root := range t.Roots() {
		t.mark(root)
		out = append(out, t.selectFrom(root)...)
	}
	return out
}

// mark works bottom-up. A failing child counts only when a sibling
// succeeded after the previous failure; failed optional attempts that
// did not mark are transparent.
func (t *Tree) mark(id NodeID) {
	n := t.Node(id)
	n.Mark = false
	if !n.Failed() {
		return
	}
	succeeded := 0
	for _, c := range n.Children {
		t.mark(c)
		child := t.Node(c)
		if child.Rule == RuleOptional && !child.Mark && child.Failed() {
			continue
		}
		if child.Failed() {
			if succeeded != 0 {
				child.Mark = true
			}
			succeeded = 0
		} else {
			succeeded++
		}
	}
	for _, c := range n.Children {
		if t.Node(c).Mark {
			n.Mark = true
			break
		}
	}
}

func (t *Tree) selectFrom(id NodeID) []diag.Diagnostic {
	n := t.Node(id)
	base := t.position(n.Start)

	var best []NodeID
	var bestDist [2]int
	for _, c := range n.Children {
		child := t.Node(c)
		if !child.Mark {
			continue
		}
		pos := t.position(child.Start)
		dist := [2]int{int(pos.Line) - int(base.Line), int(pos.Col) - int(base.Col)}
		switch {
		case len(best) == 0 || further(dist, bestDist):
			best, bestDist = []NodeID{c}, dist
		case dist == bestDist:
			best = append(best, c)
		}
	}

	var out []diag.Diagnostic
	for _, c := range best {
		out = append(out, t.selectFrom(c)...)
	}
	if len(out) == 0 && n.Mark {
		out = append(out, t.diagnostic(n))
	}
	return out
}

func further(a, b [2]int) bool {
	if a[0] != b[0] {
		return a[0] > b[0]
	}
	return a[1] > b[1]
}

func (t *Tree) position(tok token.Token) source.LineCol {
	if t.fs == nil || tok.Span.Empty() {
		return source.LineCol{}
	}
	start, _ := t.fs.Resolve(tok.Span.First())
	return start
}

func (t *Tree) diagnostic(n *Node) diag.Diagnostic {
	at := describe(n.Start)
	if n.Rule == RuleExpect && len(n.Args) > 0 {
		return diag.NewError(diag.SynExpected, n.Start.Span, fmt.Sprintf("expected %s before %s", n.Args[0], at))
	}
	return diag.NewError(diag.SynExpected, n.Start.Span, fmt.Sprintf("unexpected %s in %s", at, n.Rule))
}

func describe(tok token.Token) string {
	if tok.Kind == token.End {
		return "end of input"
	}
	return "'" + tok.Text + "'"
}

package calltree

import (
	"fmt"
	"strings"

	"cmm/internal/source"
	"cmm/internal/token"
)

// NodeID addresses a node in the tree's arena; 0 is no node.
type NodeID uint32

const NoNode NodeID = 0

func (id NodeID) IsValid() bool { return id != NoNode }

// Rule names with special meaning during diagnosis.
const (
	RuleExpect   = "expect"
	RuleOptional = "optional"
)

type Node struct {
	Rule     string
	Seq      int // порядковый номер вызова правила
	Start    token.Token
	Args     []string
	Result   any // nil — правило не сработало
	Exited   bool
	Parent   NodeID
	Children []NodeID
	Mark     bool
}

// Name is the rule name numbered by call order, e.g. "declarator#12".
func (n *Node) Name() string {
	return fmt.Sprintf("%s#%d", n.Rule, n.Seq)
}

func (n *Node) Failed() bool {
	return n.Result == nil
}

// Tree is an arena of rule attempts. The zero value is not usable; see New.
type Tree struct {
	fs    *source.FileSet
	nodes []Node
	cur   NodeID
	seq   map[string]int
}

// New creates an empty tree; fs resolves token positions during diagnosis.
func New(fs *source.FileSet) *Tree {
	return &Tree{fs: fs, seq: make(map[string]int)}
}

// Enter starts an attempt of rule at start under the current node and makes
// it current.
func (t *Tree) Enter(rule string, start token.Token, args ...string) NodeID {
	t.seq[rule]++
	t.nodes = append(t.nodes, Node{
		Rule:   rule,
		Seq:    t.seq[rule],
		Start:  start,
		Args:   args,
		Parent: t.cur,
	})
	id := NodeID(len(t.nodes))
	if t.cur.IsValid() {
		parent := t.Node(t.cur)
		parent.Children = append(parent.Children, id)
	}
	t.cur = id
	return id
}

// Exit records the attempt's result and makes its parent current again.
// A nil result is a failure.
func (t *Tree) Exit(id NodeID, result any) {
	n := t.Node(id)
	if n == nil {
		return
	}
	n.Result = result
	n.Exited = true
	t.cur = n.Parent
}

// Reset drops every node; numbering continues.
func (t *Tree) Reset() {
	t.nodes = t.nodes[:0]
	t.cur = NoNode
}

func (t *Tree) Node(id NodeID) *Node {
	if id == NoNode || int(id) > len(t.nodes) {
		return nil
	}
	return &t.nodes[id-1]
}

// Roots returns the nodes entered while no other node was current.
func (t *Tree) Roots() []NodeID {
	var out []NodeID
	for i := range t.nodes {
		if !t.nodes[i].Parent.IsValid() {
			out = append(out, NodeID(i+1))
		}
	}
	return out
}

func (t *Tree) Len() int {
	return len(t.nodes)
}

// Current returns the innermost node not yet exited.
func (t *Tree) Current() NodeID {
	return t.cur
}

// Dump prints the tree, one node per line, indented by depth.
func (t *Tree) Dump() string {
	var b strings.Builder
	var walk func(id NodeID, depth int)
	walk = func(id NodeID, depth int) {
		n := t.Node(id)
		status := "ok"
		if n.Failed() {
			status = "fail"
		}
		mark := ""
		if n.Mark {
			mark = " [marked]"
		}
		fmt.Fprintf(&b, "%s%s %q %s%s", strings.Repeat("  ", depth), n.Name(), n.Start.Text, status, mark)
		if len(n.Args) > 0 {
			fmt.Fprintf(&b, " (%s)", strings.Join(n.Args, ", "))
		}
		b.WriteByte('\n')
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	for _, root := range t.Roots() {
		walk(root, 0)
	}
	return b.String()
}

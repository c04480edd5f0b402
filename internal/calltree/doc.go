// Package calltree records every rule attempt of a backtracking parser and,
// after the parse has failed, picks the attempts that most plausibly explain
// the failure.
//
// Each attempt is a node: the rule name, the token it started at, its
// arguments and whether it produced a result. Diagnosis runs in two passes.
// Mark flags a failing child when an earlier sibling had succeeded since the
// last failure, i.e. the production got somewhere before breaking. Select
// walks down from the root through the marked children that got furthest
// from their parent's start and reports at the leaves.
package calltree

// Package parser is a backtracking recursive-descent parser for a subset of
// C. Every rule attempt is recorded in a calltree.Tree; when an external
// declaration cannot be parsed the tree is asked which of the failed
// attempts got furthest, and those become the diagnostics.
//
// The parser reads from any TokenSource. A failing rule restores the token
// position and the typedef table to where the rule started, so callers
// can simply try the next alternative.
package parser

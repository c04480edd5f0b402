// Package ast holds the syntax tree of a C translation unit.
//
// Nodes of each category (expressions, statements, declarations) live in
// arenas owned by a Builder and are addressed by 1-based IDs. A node is a
// kind, a span and a payload index into the arena of its variant. Declarator
// chains have their own arena.
package ast

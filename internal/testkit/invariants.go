// Package testkit holds invariant checks shared by package tests and fuzz
// harnesses. The checks return errors instead of failing a testing.TB so
// they can be reused from fuzz targets.
package testkit

import (
	"bytes"
	"fmt"

	"fortio.org/safecast"

	"cmm/internal/ast"
	"cmm/internal/source"
	"cmm/internal/token"
)

// CheckSpan verifies the Span set invariants:
// 1) ranges are ordered and neither overlap nor touch
// 2) every range lies inside its file's content
func CheckSpan(sp source.Span, fs *source.FileSet) error {
	for i, r := range sp {
		if r.End < r.Start {
			return fmt.Errorf("range %v is inverted", r)
		}
		if int(r.File) >= fs.Len() {
			return fmt.Errorf("range %v points to unknown file", r)
		}
		size, err := safecast.Conv[uint32](len(fs.Get(r.File).Content))
		if err != nil {
			return fmt.Errorf("len content overflow: %w", err)
		}
		if r.End > size {
			return fmt.Errorf("range %v ends beyond content (%d bytes)", r, size)
		}
		if i == 0 {
			continue
		}
		prev := sp[i-1]
		if prev.File > r.File || (prev.File == r.File && prev.End >= r.Start) {
			return fmt.Errorf("ranges %v and %v are out of order or touch", prev, r)
		}
	}
	return nil
}

// CheckTokens verifies that every token has a non-empty valid span whose
// ranges stay on one physical line. Comments may run over several lines.
func CheckTokens(toks []token.Token, fs *source.FileSet) error {
	for i, tok := range toks {
		if tok.Span.Empty() {
			return fmt.Errorf("token %d (%s %q) has no span", i, tok.Kind, tok.Text)
		}
		if err := CheckSpan(tok.Span, fs); err != nil {
			return fmt.Errorf("token %d (%s %q): %w", i, tok.Kind, tok.Text, err)
		}
		if tok.Kind == token.Comment {
			continue
		}
		for _, r := range tok.Span {
			if bytes.IndexByte(fs.Get(r.File).Content[r.Start:r.End], '\n') >= 0 {
				return fmt.Errorf("token %d (%s %q): range %v crosses a line break", i, tok.Kind, tok.Text, r)
			}
		}
	}
	return nil
}

// CheckUnitSpans walks every node of unit and validates its span. Unit
// declarations must also appear in source order within each file.
func CheckUnitSpans(b *ast.Builder, unit *ast.Unit, fs *source.FileSet) error {
	if b == nil || unit == nil {
		return fmt.Errorf("nil builder or unit")
	}
	if err := CheckSpan(unit.Span, fs); err != nil {
		return fmt.Errorf("unit: %w", err)
	}

	var firstErr error
	check := func(kind string, id uint32, sp source.Span) {
		if firstErr != nil {
			return
		}
		if err := CheckSpan(sp, fs); err != nil {
			firstErr = fmt.Errorf("%s %d: %w", kind, id, err)
		}
	}
	ast.Walk(b, &ast.Inspector{
		OnExpr: func(id ast.ExprID) { check("expr", uint32(id), b.Exprs.Get(id).Span) },
		OnStmt: func(id ast.StmtID) { check("stmt", uint32(id), b.Stmts.Get(id).Span) },
		OnDecl: func(id ast.DeclID) { check("decl", uint32(id), b.Decls.Get(id).Span) },
	}, unit)
	if firstErr != nil {
		return firstErr
	}

	last := make(map[source.FileID]uint32)
	for _, d := range unit.Decls {
		first := b.Decls.Get(d).Span.First()
		if prev, ok := last[first.File]; ok && first.Start < prev {
			return fmt.Errorf("decl %d starts at %v before its predecessor", d, first)
		}
		last[first.File] = first.Start
	}
	return nil
}

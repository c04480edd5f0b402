package lexer

import (
	"cmm/internal/diag"
	"cmm/internal/source"
)

type Options struct {
	// Reporter receives non-fatal findings; may be nil.
	Reporter diag.Reporter
}

func (lx *Lexer) warn(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		diag.ReportWarning(lx.opts.Reporter, code, sp, msg).Emit()
	}
}

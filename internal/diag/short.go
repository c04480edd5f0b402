package diag

import (
	"fmt"
	"sort"
	"strings"

	"cmm/internal/source"
)

type shortDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatShortDiagnostics renders diagnostics one per line as
// "severity CODE path:line:col message", sorted deterministically.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	rendered := make([]shortDiagnostic, 0, len(diags))
	for _, d := range diags {
		rendered = append(rendered, resolveShort(fs, d.Severity.Label(), d.Code, d.Primary, d.Message))
		if includeNotes {
			for _, n := range d.Notes {
				rendered = append(rendered, resolveShort(fs, "note", d.Code, n.Span, n.Msg))
			}
		}
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		return di.Message < dj.Message
	})

	var b strings.Builder
	for i, d := range rendered {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", d.Severity, d.Code, d.Path, d.Line, d.Column, d.Message)
	}
	return b.String()
}

func resolveShort(fs *source.FileSet, sev string, code Code, span source.Span, msg string) shortDiagnostic {
	out := shortDiagnostic{Severity: sev, Code: code.ID(), Message: sanitizeMessage(msg)}
	if span.Empty() || int(span.First().File) >= fs.Len() {
		return out
	}
	first := span.First()
	start, _ := fs.Resolve(first)
	out.Path = fs.Get(first.File).Path
	out.Line = start.Line
	out.Column = start.Col
	return out
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}

package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"cmm/internal/diag"
	"cmm/internal/source"
)

type palette struct {
	sev   map[diag.Severity]*color.Color
	path  *color.Color
	caret *color.Color
	note  *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		sev: map[diag.Severity]*color.Color{
			diag.SevError:   color.New(color.FgRed, color.Bold),
			diag.SevWarning: color.New(color.FgYellow, color.Bold),
			diag.SevInfo:    color.New(color.FgCyan, color.Bold),
		},
		path:  color.New(color.FgBlue),
		caret: color.New(color.FgGreen, color.Bold),
		note:  color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.sev[diag.SevError], p.sev[diag.SevWarning], p.sev[diag.SevInfo], p.path, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Для каждой диагностики:
//
//	error[SYN4001]: expected ';' before 'v'
//	test.c:3|	V v;
//	         	  ^
//
// One source line per disjoint range of the primary span, each with a
// caret underline; notes follow in the same form when enabled.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		sev := pal.sev[d.Severity]
		if sev == nil {
			sev = pal.sev[diag.SevInfo]
		}
		fmt.Fprintf(w, "%s: %s\n", sev.Sprintf("%s[%s]", d.Severity.Label(), d.Code.ID()), d.Message)
		writeSpan(w, fs, d.Primary, opts.PathMode, pal)
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			fmt.Fprintf(w, "%s: %s\n", pal.note.Sprint("note"), n.Msg)
			writeSpan(w, fs, n.Span, opts.PathMode, pal)
		}
	}
}

func writeSpan(w io.Writer, fs *source.FileSet, sp source.Span, mode PathMode, pal palette) {
	if fs == nil {
		return
	}
	for _, r := range sp {
		f := fs.Get(r.File)
		start, end := fs.Resolve(r)
		line := f.GetLine(start.Line)
		gutter := fmt.Sprintf("%s:%d|", f.FormatPath(mode.format()), start.Line)
		fmt.Fprintf(w, "%s%s\n", pal.path.Sprint(gutter), line)

		from := int(start.Col) - 1
		to := len(line)
		if end.Line == start.Line {
			to = int(end.Col) - 1
		}
		from = min(max(from, 0), len(line))
		to = min(max(to, from), len(line))
		fmt.Fprintf(w, "%s%s\n", strings.Repeat(" ", runewidth.StringWidth(gutter))+indent(line[:from]), pal.caret.Sprint(underline(line[from:to])))
	}
}

// indent reproduces the display width of prefix; tabs are kept so the
// caret lines up with the source line however the terminal expands them.
func indent(prefix string) string {
	var b strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return b.String()
}

// underline — ^ под первой колонкой, ~ под остальными.
func underline(text string) string {
	width := runewidth.StringWidth(text)
	if width <= 1 {
		return "^"
	}
	return "^" + strings.Repeat("~", width-1)
}

package main

import (
	"fmt"
	"io"

	"cmm/internal/diag"
	"cmm/internal/diagfmt"
	"cmm/internal/observ"
	"cmm/internal/source"
)

// reportDiagnostics prints bag to w in --diag-format. Warnings and notes are
// hidden by --quiet.
func reportDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	bag.Dedup()
	bag.Sort()
	if cfg.quiet {
		if !bag.HasErrors() {
			return
		}
		errs := diag.NewBag(0)
		for _, d := range bag.Items() {
			if d.Severity >= diag.SevError {
				errs.Add(d)
			}
		}
		bag = errs
	}
	switch cfg.diagFormat {
	case "json":
		if err := diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     !cfg.quiet,
		}); err != nil {
			fmt.Fprintf(w, "cmm: failed to encode diagnostics: %v\n", err)
		}
	case "short":
		fmt.Fprintln(w, diag.FormatShortDiagnostics(bag.Items(), fs, !cfg.quiet))
	default:
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:     cfg.color,
			ShowNotes: !cfg.quiet,
		})
	}
}

func printTimings(w io.Writer, timer *observ.Timer) {
	if timer == nil {
		return
	}
	fmt.Fprint(w, timer.Summary())
}

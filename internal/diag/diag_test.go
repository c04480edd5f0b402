package diag_test

import (
	"errors"
	"fmt"
	"testing"

	"cmm/internal/diag"
	"cmm/internal/source"
)

func span(file source.FileID, start, end uint32) source.Span {
	return source.SpanOf(source.Range{File: file, Start: start, End: end})
}

func TestBagLimitAndSort(t *testing.T) {
	bag := diag.NewBag(2)
	bag.Add(diag.NewError(diag.PPUserError, span(0, 10, 12), "b"))
	bag.Add(diag.New(diag.SevWarning, diag.PPUserWarning, span(0, 1, 2), "a"))
	if bag.Add(diag.NewError(diag.PPUserError, span(0, 0, 1), "c")) {
		t.Fatal("bag accepted diagnostic past its limit")
	}
	bag.Sort()
	if got := bag.Items()[0].Message; got != "a" {
		t.Errorf("first after sort = %q, want a", got)
	}
	if !bag.HasErrors() || !bag.HasWarnings() {
		t.Error("expected both errors and warnings")
	}
}

func TestBagUnlimitedAndDedup(t *testing.T) {
	bag := diag.NewBag(0)
	for range 3 {
		bag.Add(diag.NewError(diag.SynExpected, span(0, 4, 5), "expected ';'"))
	}
	bag.Dedup()
	if bag.Len() != 1 {
		t.Errorf("Len after Dedup = %d, want 1", bag.Len())
	}
}

func TestErrorRoundTrip(t *testing.T) {
	base := diag.Errorf(diag.LexUnterminatedLit, span(0, 0, 3), "unterminated %s literal", "string")
	wrapped := fmt.Errorf("lexing main.c: %w", base)

	d, ok := diag.AsDiagnostic(wrapped)
	if !ok {
		t.Fatal("AsDiagnostic failed on wrapped error")
	}
	if d.Code != diag.LexUnterminatedLit || d.Message != "unterminated string literal" {
		t.Errorf("unexpected diagnostic %+v", d)
	}
	if _, ok := diag.AsDiagnostic(errors.New("plain")); ok {
		t.Error("plain error must not convert")
	}
	if base.Error() != "LEX1001: unterminated string literal" {
		t.Errorf("Error() = %q", base.Error())
	}
}

func TestDedupReporter(t *testing.T) {
	bag := diag.NewBag(10)
	r := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	for range 2 {
		diag.ReportWarning(r, diag.PPUserWarning, span(0, 1, 8), "careful").Emit()
	}
	diag.ReportWarning(r, diag.PPUserWarning, span(0, 1, 8), "other").Emit()
	if bag.Len() != 2 {
		t.Errorf("Len = %d, want 2", bag.Len())
	}
}

func TestCodeID(t *testing.T) {
	tests := map[diag.Code]string{
		diag.LexMalformedLit:    "LEX1002",
		diag.PPMacroRedefined:   "PP2003",
		diag.PPUserError:        "PP3001",
		diag.SynUnexpectedToken: "SYN4002",
		diag.IOLoadFileError:    "IO5001",
		diag.UnknownCode:        "E0000",
	}
	for code, want := range tests {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
}

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("m.c", []byte("int a;\n#warning hi\n"))
	diags := []diag.Diagnostic{
		diag.New(diag.SevWarning, diag.PPUserWarning, span(id, 8, 15), "hi"),
		diag.NewError(diag.SynExpected, span(id, 0, 3), "expected ';'\nbefore 'a'"),
	}
	got := diag.FormatShortDiagnostics(diags, fs, false)
	want := "error SYN4001 m.c:1:1 expected ';' before 'a'\nwarning PP3002 m.c:2:2 hi"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

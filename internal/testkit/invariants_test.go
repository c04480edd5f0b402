package testkit_test

import (
	"context"
	"strings"
	"testing"

	"cmm/internal/ast"
	"cmm/internal/parser"
	"cmm/internal/preproc"
	"cmm/internal/source"
	"cmm/internal/testkit"
	"cmm/internal/token"
)

func TestCheckSpan(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.c", []byte("int a;\nint b;\n"))
	tests := []struct {
		name string
		sp   source.Span
		err  string
	}{
		{"empty", nil, ""},
		{"two ranges", source.Span{{File: id, Start: 0, End: 3}, {File: id, Start: 4, End: 5}}, ""},
		{"touching", source.Span{{File: id, Start: 0, End: 3}, {File: id, Start: 3, End: 5}}, "touch"},
		{"unordered", source.Span{{File: id, Start: 4, End: 5}, {File: id, Start: 0, End: 3}}, "order"},
		{"past end", source.Span{{File: id, Start: 10, End: 99}}, "beyond"},
		{"inverted", source.Span{{File: id, Start: 3, End: 1}}, "inverted"},
		{"unknown file", source.Span{{File: 7, Start: 0, End: 1}}, "unknown file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := testkit.CheckSpan(tt.sp, fs)
			switch {
			case tt.err == "" && err != nil:
				t.Errorf("unexpected error: %v", err)
			case tt.err != "" && (err == nil || !strings.Contains(err.Error(), tt.err)):
				t.Errorf("error = %v, want %q", err, tt.err)
			}
		})
	}
}

func TestCheckTokens_LineBreak(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.c", []byte("a\nb"))
	bad := []token.Token{{Kind: token.Ident, Text: "a b", Span: source.Span{{File: id, Start: 0, End: 3}}}}
	if err := testkit.CheckTokens(bad, fs); err == nil || !strings.Contains(err.Error(), "line break") {
		t.Errorf("error = %v", err)
	}
}

func TestPipelineKeepsInvariants(t *testing.T) {
	src := `#define STR(x) #x
#define CAT(a, b) a ## b
typedef struct { int x, y; } point;
static const char *names[] = { STR(a + b), "c" "d" };
int CAT(ma, in)(void) {
	point p = { .x = 1, .y = 2 };
	return p.x \
		+ p.y;
}
`
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.c", []byte(src))
	pp, err := preproc.New(context.Background(), fs, id, preproc.Config{})
	if err != nil {
		t.Fatal(err)
	}
	b := ast.NewBuilder(ast.Hints{})
	res, err := parser.Parse(context.Background(), fs, pp, b, parser.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Diags) != 0 {
		t.Fatalf("diagnostics: %v", res.Diags)
	}
	var toks []token.Token
	for _, tok := range pp.Tokens() {
		if tok.Kind != token.End {
			toks = append(toks, tok)
		}
	}
	if err := testkit.CheckTokens(toks, fs); err != nil {
		t.Error(err)
	}
	if err := testkit.CheckUnitSpans(b, res.Unit, fs); err != nil {
		t.Error(err)
	}
}

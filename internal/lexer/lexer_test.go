package lexer_test

import (
	"testing"

	"cmm/internal/diag"
	"cmm/internal/lexer"
	"cmm/internal/source"
	"cmm/internal/token"

	"github.com/google/go-cmp/cmp"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev, Code: code, Message: msg, Primary: primary, Notes: notes,
	})
}

func makeTestLexer(input string) (*lexer.Lexer, *source.FileSet, *testReporter) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.c", []byte(input))
	rep := &testReporter{}
	return lexer.NewFile(fs.Get(id), lexer.Options{Reporter: rep}), fs, rep
}

// collectAllTokens собирает все токены до END включительно
func collectAllTokens(t *testing.T, lx *lexer.Lexer) []token.Token {
	t.Helper()
	var toks []token.Token
	for {
		tok, err := lx.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		toks = append(toks, tok)
		if tok.Kind == token.End {
			return toks
		}
	}
}

type kt struct {
	Kind token.Kind
	Text string
}

func kindsAndTexts(toks []token.Token) []kt {
	out := make([]kt, 0, len(toks))
	for _, tok := range toks {
		out = append(out, kt{tok.Kind, tok.Text})
	}
	return out
}

func TestLexer_Classification(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []kt
	}{
		{
			name:  "declaration",
			input: "int x = 42;",
			want: []kt{
				{token.KwInt, "int"}, {token.Ident, "x"}, {token.Equal, "="},
				{token.IntConst, "42"}, {token.Semi, ";"}, {token.End, ""},
			},
		},
		{
			name:  "longest punctuator",
			input: "a>>=b",
			want: []kt{
				{token.Ident, "a"}, {token.GreaterGreaterEqual, ">>="}, {token.Ident, "b"}, {token.End, ""},
			},
		},
		{
			name:  "ellipsis and dots",
			input: "... ..",
			want: []kt{
				{token.Ellipsis, "..."}, {token.Period, "."}, {token.Period, "."}, {token.End, ""},
			},
		},
		{
			name:  "float with suffix",
			input: "1.0f .5 1e+3 0x1p-2",
			want: []kt{
				{token.FloatConst, "1.0f"}, {token.FloatConst, ".5"}, {token.FloatConst, "1e+3"},
				{token.FloatConst, "0x1p-2"}, {token.End, ""},
			},
		},
		{
			name:  "int suffix is split off when invalid",
			input: "1f 0x1e+5 1'000ULL",
			want: []kt{
				{token.IntConst, "1"}, {token.Ident, "f"},
				{token.IntConst, "0x1e"}, {token.Plus, "+"}, {token.IntConst, "5"},
				{token.IntConst, "1'000ULL"}, {token.End, ""},
			},
		},
		{
			name:  "encoding prefixes",
			input: `u8"a" L'b' U"c" u x`,
			want: []kt{
				{token.StringLiteral, `u8"a"`}, {token.CharConst, `L'b'`}, {token.StringLiteral, `U"c"`},
				{token.Ident, "u"}, {token.Ident, "x"}, {token.End, ""},
			},
		},
		{
			name:  "line splice inside identifier",
			input: "ab\\\ncd",
			want:  []kt{{token.Ident, "abcd"}, {token.End, ""}},
		},
		{
			name:  "line splice inside number",
			input: "1.\\\n0f",
			want:  []kt{{token.FloatConst, "1.0f"}, {token.End, ""}},
		},
		{
			name:  "line splice inside punctuator",
			input: "a>\\\n>=b",
			want:  []kt{{token.Ident, "a"}, {token.GreaterGreaterEqual, ">>="}, {token.Ident, "b"}, {token.End, ""}},
		},
		{
			name:  "line splice inside string",
			input: "\"ab\\\n cd\"",
			want:  []kt{{token.StringLiteral, `"ab cd"`}, {token.End, ""}},
		},
		{
			name:  "unknown character",
			input: "@",
			want:  []kt{{token.Unknown, "@"}, {token.End, ""}},
		},
		{
			name:  "hash punctuators",
			input: "# ##",
			want:  []kt{{token.Hash, "#"}, {token.HashHash, "##"}, {token.End, ""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lx, _, _ := makeTestLexer(tt.input)
			got := kindsAndTexts(collectAllTokens(t, lx))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("tokens mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// Inserting backslash-newline anywhere must not change the token sequence.
func TestLexer_SpliceAnywhere(t *testing.T) {
	const input = `int x>>=1.0f+"ab cd"->y<<=0x1F;`
	lx, _, _ := makeTestLexer(input)
	want := kindsAndTexts(collectAllTokens(t, lx))
	for i := 1; i < len(input); i++ {
		spliced := input[:i] + "\\\n" + input[i:]
		lx, _, _ := makeTestLexer(spliced)
		got := kindsAndTexts(collectAllTokens(t, lx))
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("splice at %d (%q):\n%s", i, spliced, diff)
		}
	}
}

func TestLexer_SpliceSpanSkipsBackslashNewline(t *testing.T) {
	lx, fs, _ := makeTestLexer("ab\\\ncd")
	tok, err := lx.Next()
	if err != nil {
		t.Fatal(err)
	}
	want := source.Span{{File: 0, Start: 0, End: 2}, {File: 0, Start: 4, End: 6}}
	if !tok.Span.Equal(want) {
		t.Fatalf("span = %v, want %v", tok.Span, want)
	}
	text := ""
	for _, rg := range tok.Span {
		text += fs.Text(rg)
	}
	if text != tok.Text {
		t.Errorf("span spells %q, token text %q", text, tok.Text)
	}
}

func TestLexer_LiteralContent(t *testing.T) {
	lx, _, _ := makeTestLexer(`L"a\tb" 'x'`)
	str, _ := lx.Next()
	if str.Prefix != "L" || str.Content != "a\tb" {
		t.Errorf("string prefix/content = %q/%q", str.Prefix, str.Content)
	}
	ch, _ := lx.Next()
	if ch.Prefix != "" || ch.Content != "x" {
		t.Errorf("char prefix/content = %q/%q", ch.Prefix, ch.Content)
	}
}

func TestLexer_LiteralErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  diag.Code
	}{
		{"unterminated string", "\"abc\nx", diag.LexUnterminatedLit},
		{"unterminated char at eof", "'a", diag.LexUnterminatedLit},
		{"empty char", "''", diag.LexMalformedLit},
		{"bad escape", `"\q"`, diag.LexMalformedLit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lx, _, _ := makeTestLexer(tt.input)
			_, err := lx.Next()
			d, ok := diag.AsDiagnostic(err)
			if !ok {
				t.Fatalf("expected diagnostic error, got %v", err)
			}
			if d.Code != tt.code {
				t.Errorf("code = %s, want %s", d.Code.ID(), tt.code.ID())
			}
		})
	}
}

func TestLexer_LenientLiteral(t *testing.T) {
	lx, _, _ := makeTestLexer("'abc\nx")
	lx.SetLenient(true)
	got := kindsAndTexts(collectAllTokens(t, lx))
	want := []kt{{token.Unknown, "'abc"}, {token.Ident, "x"}, {token.End, ""}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestLexer_SaveRestoreReplays(t *testing.T) {
	lx, _, _ := makeTestLexer("a b c")
	first, _ := lx.Next()
	mark := lx.Save()
	b1, _ := lx.Next()
	c1, _ := lx.Next()
	lx.Restore(mark)
	b2, _ := lx.Next()
	c2, _ := lx.Next()
	if diff := cmp.Diff([]token.Token{b1, c1}, []token.Token{b2, c2}); diff != "" {
		t.Errorf("replay mismatch (-want +got):\n%s", diff)
	}
	lx.Back()
	lx.Back()
	if cur := lx.Current(); cur.Text != first.Text {
		t.Errorf("Current after Back = %q, want %q", cur.Text, first.Text)
	}
}

func TestLexer_EndRepeats(t *testing.T) {
	lx, _, _ := makeTestLexer("x")
	for range 3 {
		_, _ = lx.Next()
	}
	tok, err := lx.Next()
	if err != nil || tok.Kind != token.End {
		t.Fatalf("expected END, got %v (%v)", tok, err)
	}
	if want := (source.Range{Start: 1, End: 1}); tok.Span.First() != want {
		t.Errorf("END span = %v, want %v", tok.Span.First(), want)
	}
}

func TestLexer_SpaceFlag(t *testing.T) {
	lx, _, _ := makeTestLexer("a+ b")
	toks := collectAllTokens(t, lx)
	got := []bool{toks[0].Space, toks[1].Space, toks[2].Space}
	if diff := cmp.Diff([]bool{false, false, true}, got); diff != "" {
		t.Errorf("space flags (-want +got):\n%s", diff)
	}
}

func TestLexer_NonNFCIdentifierWarns(t *testing.T) {
	// "e" + combining acute accent
	lx, _, rep := makeTestLexer("e\u0301x")
	tok, err := lx.Next()
	if err != nil {
		t.Fatal(err)
	}
	if tok.Kind != token.Ident {
		t.Fatalf("kind = %s, want identifier", tok.Kind)
	}
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexIdentNotNFC {
		t.Errorf("diagnostics = %+v", rep.diagnostics)
	}
}

func TestConcatReader_PastesTokens(t *testing.T) {
	lx, fs, _ := makeTestLexer("a 1")
	a, _ := lx.Next()
	one, _ := lx.Next()

	pasted := lexer.New(lexer.NewConcatReader(fs, []token.Token{a, one}), lexer.Options{})
	got := kindsAndTexts(collectAllTokens(t, pasted))
	want := []kt{{token.Ident, "a1"}, {token.End, ""}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("pasted tokens (-want +got):\n%s", diff)
	}
}

func TestConcatReader_SynthesizedText(t *testing.T) {
	lx, fs, _ := makeTestLexer("x")
	x, _ := lx.Next()
	synth := token.Token{Kind: token.Ident, Text: "yy", Span: x.Span}

	pasted := lexer.New(lexer.NewConcatReader(fs, []token.Token{x, synth}), lexer.Options{})
	tok, err := pasted.Next()
	if err != nil {
		t.Fatal(err)
	}
	if tok.Text != "xyy" {
		t.Errorf("text = %q, want %q", tok.Text, "xyy")
	}
}

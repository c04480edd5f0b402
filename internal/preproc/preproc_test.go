package preproc_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cmm/internal/diag"
	"cmm/internal/preproc"
	"cmm/internal/source"
	"cmm/internal/token"

	"github.com/google/go-cmp/cmp"
)

func newPP(t *testing.T, fs *source.FileSet, id source.FileID, cfg preproc.Config) *preproc.Preprocessor {
	t.Helper()
	pp, err := preproc.New(context.Background(), fs, id, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return pp
}

// drain returns every token up to END, or the first error.
func drain(pp *preproc.Preprocessor) ([]token.Token, error) {
	var out []token.Token
	for {
		tok, err := pp.Next()
		if err != nil {
			return out, err
		}
		if tok.Kind == token.End {
			return out, nil
		}
		out = append(out, tok)
	}
}

func texts(toks []token.Token) []string {
	out := make([]string, 0, len(toks))
	for _, tok := range toks {
		out = append(out, tok.Text)
	}
	return out
}

func run(t *testing.T, src string, cfg preproc.Config) ([]string, error) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("main.c", []byte(src))
	toks, err := drain(newPP(t, fs, id, cfg))
	return texts(toks), err
}

func TestPreprocess(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"object-like", "#define FOO 42\nint x = FOO;\n", "int x = 42 ;"},
		{"stringize", "#define STR(x) #x\nSTR(a + b)\n", `"a + b"`},
		{"paste", "#define CAT(a, b) a ## b\nCAT(foo, bar)\n", "foobar"},
		{"va opt absent", "#define F(fmt, ...) f(fmt __VA_OPT__(,) __VA_ARGS__)\nF(a)\n", "f ( a )"},
		{"va opt present", "#define F(fmt, ...) f(fmt __VA_OPT__(,) __VA_ARGS__)\nF(a, b, c)\n", "f ( a , b , c )"},
		{"self reference", "#define foo foo + 1\nfoo\n", "foo + 1"},
		{"mutual reference", "#define a b\n#define b a\na b\n", "a b"},
		{"name without call", "#define F(x) x\nF + 1\n", "F + 1"},
		{"nested call", "#define ID(x) x\n#define TWO 2\nID(ID(TWO))\n", "2"},
		{"paren in argument", "#define FIRST(x, y) x\nFIRST((1, 2), 3)\n", "( 1 , 2 )"},
		{"empty call", "#define E() e\nE()\n", "e"},
		{"single parameter extra arguments", "#define F(x) <x>\nF(a, b)\n", "< a >"},
		{"variadic call without named arguments", "#define V(a, ...) v\nV()\n", "V ( )"},
		{"undef", "#define X 1\n#undef X\nX\n", "X"},
		{"file name", "__FILE__\n", `"main.c"`},
		{"line", "a __LINE__\n#line 100\n__LINE__\n", "a 1 100"},
		{"line with file", "#line 5 \"foo.c\"\n__FILE__ __LINE__\n", `"foo.c" 5`},
		{"null directive", "#\nx\n", "x"},
		{"pragma", "#pragma once\nx\n", "x"},
		{
			"nested conditionals",
			"#define A\n#ifdef A\none\n#ifdef B\ntwo\n#else\nthree\n#endif\n#else\nfour\n#endif\nfive\n",
			"one three five",
		},
		{"ifndef", "#ifndef A\nyes\n#endif\n", "yes"},
		{"if is taken", "#if 0\nyes\n#elif 1\nno\n#else\nno\n#endif\n", "yes"},
		{"elifdef", "#define B\n#ifdef A\na\n#elifdef B\nb\n#else\nc\n#endif\n", "b"},
		{"skipped garbage", "#ifdef A\ndon't \"care\n#endif\nok\n", "ok"},
		{"skipped nested", "#ifdef A\n#ifdef B\n#else\n#endif\nx\n#else\ny\n#endif\n", "y"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, tt.src, preproc.Config{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(strings.Fields(tt.want), got); diff != "" {
				t.Errorf("tokens mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStringMerge(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("main.c", []byte(`x = "ab" L"cd";`))
	toks, err := drain(newPP(t, fs, id, preproc.Config{}))
	if err != nil {
		t.Fatal(err)
	}
	if len(toks) != 4 {
		t.Fatalf("got %d tokens: %q", len(toks), texts(toks))
	}
	lit := toks[2]
	if lit.Kind != token.StringLiteral || lit.Content != "abcd" || lit.Prefix != "L" {
		t.Errorf("merged literal = %+v", lit)
	}
	if len(lit.Span) != 2 {
		t.Errorf("span = %v, want both literals", lit.Span)
	}
}

func TestReplayAfterRestore(t *testing.T) {
	fs := source.NewFileSet()
	src := "#define F(x) x + x\n#ifdef F\nF(1) \"a\" \"b\"\n#endif\n"
	id := fs.AddVirtual("main.c", []byte(src))
	pp := newPP(t, fs, id, preproc.Config{})
	first, err := drain(pp)
	if err != nil {
		t.Fatal(err)
	}
	pp.Restore(0)
	second, err := drain(pp)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(texts(first), texts(second)); diff != "" {
		t.Errorf("replay differs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"1", "+", "1", `"a" "b"`}, texts(first)); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestHideSet(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("main.c", []byte("#define foo foo\nfoo\n"))
	toks, err := drain(newPP(t, fs, id, preproc.Config{}))
	if err != nil {
		t.Fatal(err)
	}
	if len(toks) != 1 || !toks[0].Hide.Contains("foo") {
		t.Errorf("tokens = %+v", toks)
	}
}

func TestInclude(t *testing.T) {
	dir := t.TempDir()
	write := func(name, text string) string {
		t.Helper()
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(text), 0o600); err != nil {
			t.Fatal(err)
		}
		return p
	}
	write("inc.h", "#define INC 7\nint from_header = OUTER;\n")
	write("sys/sys.h", "int sys;\n")
	main := write("main.c", "#define OUTER 1\n#include \"inc.h\"\n#include <sys.h>\nint y = INC;\n")

	fs := source.NewFileSet()
	id, err := fs.Load(main, 0)
	if err != nil {
		t.Fatal(err)
	}
	pp := newPP(t, fs, id, preproc.Config{IncludePaths: []string{filepath.Join(dir, "sys")}})
	toks, err := drain(pp)
	if err != nil {
		t.Fatal(err)
	}
	want := strings.Fields("int from_header = 1 ; int sys ; int y = 7 ;")
	if diff := cmp.Diff(want, texts(toks)); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
	if !pp.Macros().Defined("INC") {
		t.Error("definition from the header is not visible to the includer")
	}
}

func TestIncludeTooDeep(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "self.h")
	if err := os.WriteFile(p, []byte("#include \"self.h\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSet()
	id, err := fs.Load(p, 0)
	if err != nil {
		t.Fatal(err)
	}
	_, err = drain(newPP(t, fs, id, preproc.Config{}))
	d, ok := diag.AsDiagnostic(err)
	if !ok || d.Code != diag.PPIncludeTooDeep {
		t.Fatalf("err = %v, want %s", err, diag.PPIncludeTooDeep.ID())
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
		msg  string
	}{
		{"error directive", "#error bad thing\n", diag.PPUserError, "#error bad thing"},
		{"unknown directive", "#foo\n", diag.PPUnknownDirective, "invalid preprocessing directive #foo"},
		{"endif without if", "#endif\n", diag.PPUnbalancedCond, "#endif without #if"},
		{"else without if", "#else\n", diag.PPUnbalancedCond, "#else without #if"},
		{"elif after else", "#ifdef A\n#else\n#elif\n#endif\n", diag.PPUnbalancedCond, "#elif after #else"},
		{"unterminated conditional", "#ifndef A\nint a;\n", diag.PPUnterminatedCond, "unterminated conditional directive"},
		{"unterminated arguments", "#define F(x) x\nF(1, 2", diag.PPUnterminatedArgs, "unterminated argument list invoking macro 'F'"},
		{"missing header", "#include <missing.h>\n", diag.PPIncludeNotFound, "'missing.h' file not found"},
		{"bad include operand", "#include foo\n", diag.PPMalformedDirective, "#include expects \"FILENAME\" or <FILENAME>"},
		{"define without name", "#define 1\n", diag.PPMalformedDirective, "macro name must be an identifier"},
		{"bad line", "#line x\n", diag.PPBadLine, "#line directive requires a positive integer argument"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.src, preproc.Config{})
			d, ok := diag.AsDiagnostic(err)
			if !ok {
				t.Fatalf("err = %v, want a diagnostic", err)
			}
			if d.Code != tt.code || d.Message != tt.msg {
				t.Errorf("got %s %q, want %s %q", d.Code.ID(), d.Message, tt.code.ID(), tt.msg)
			}
		})
	}
}

func TestErrorIsSticky(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("main.c", []byte("#error stop\nx\n"))
	pp := newPP(t, fs, id, preproc.Config{})
	_, first := pp.Next()
	_, second := pp.Next()
	if first == nil || second != first {
		t.Errorf("errors = %v, %v", first, second)
	}
}

func TestWarningsAreReported(t *testing.T) {
	bag := diag.NewBag(0)
	got, err := run(t, "#warning careful\n#pragma pack\nx\n", preproc.Config{Reporter: diag.BagReporter{Bag: bag}})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"x"}, got); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
	items := bag.Items()
	if len(items) != 2 {
		t.Fatalf("got %d diagnostics", len(items))
	}
	if items[0].Code != diag.PPUserWarning || items[0].Message != "#warning careful" || items[0].Severity != diag.SevWarning {
		t.Errorf("warning = %+v", items[0])
	}
	if items[1].Code != diag.PPIgnoredPragma || items[1].Severity != diag.SevInfo {
		t.Errorf("pragma = %+v", items[1])
	}
}

func TestIncompatibleRedefinition(t *testing.T) {
	_, err := run(t, "#define X 1\n#define X 1\n#define X 2\n", preproc.Config{})
	d, ok := diag.AsDiagnostic(err)
	if !ok || d.Code != diag.PPMacroRedefined {
		t.Fatalf("err = %v", err)
	}
}

func TestCommandLineMacros(t *testing.T) {
	cfg := preproc.Config{
		Defines:   []string{"X=3", "Y", "F(a)=a+1"},
		Undefines: []string{"Y"},
	}
	got, err := run(t, "X Y F(2)\n", cfg)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(strings.Fields("3 Y 2 + 1"), got); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestDateAndTime(t *testing.T) {
	now := func() time.Time { return time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC) }
	got, err := run(t, "__DATE__;\n__TIME__;\n", preproc.Config{Now: now})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{`"Mar  5 2024"`, ";", `"14:07:09"`, ";"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestKeepComments(t *testing.T) {
	src := "a /* c */ b // d\n#define X /* gone */ 1\nX\n"
	got, err := run(t, src, preproc.Config{KeepComments: true})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "/* c */", "b", "// d", "1"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}

	got, err = run(t, src, preproc.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a", "b", "1"}, got); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

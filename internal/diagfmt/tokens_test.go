package diagfmt

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vmihailenco/msgpack/v5"

	"cmm/internal/ast"
	"cmm/internal/parser"
	"cmm/internal/preproc"
	"cmm/internal/source"
	"cmm/internal/token"
)

func preprocess(t *testing.T, src string) (*source.FileSet, *preproc.Preprocessor) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.c", []byte(src))
	pp, err := preproc.New(context.Background(), fs, id, preproc.Config{})
	if err != nil {
		t.Fatal(err)
	}
	return fs, pp
}

func tokensOf(t *testing.T, src string) (*source.FileSet, []token.Token) {
	t.Helper()
	fs, pp := preprocess(t, src)
	var toks []token.Token
	for {
		tok, err := pp.Next()
		if err != nil {
			t.Fatal(err)
		}
		if tok.Kind == token.End {
			return fs, toks
		}
		toks = append(toks, tok)
	}
}

func TestFormatTokensPretty(t *testing.T) {
	fs, toks := tokensOf(t, "#define N 42\nint a = N;\n")
	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks, fs); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[3], `IntConst`) || !strings.Contains(lines[3], `"42"`) {
		t.Errorf("macro expansion line = %q", lines[3])
	}
	if !strings.Contains(lines[1], "at test.c:2:5") {
		t.Errorf("position line = %q", lines[1])
	}
}

func TestFormatTokensMsgpack(t *testing.T) {
	fs, toks := tokensOf(t, `char *s = "a" "b";`)
	var buf bytes.Buffer
	if err := FormatTokensMsgpack(&buf, toks, fs); err != nil {
		t.Fatal(err)
	}
	var got []TokenOutput
	if err := msgpack.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(TokenOutputs(toks, fs), got); diff != "" {
		t.Errorf("msgpack mismatch (-want +got):\n%s", diff)
	}
	if last := got[len(got)-2]; last.Content != "ab" || len(last.Ranges) != 2 {
		t.Errorf("merged literal = %+v", last)
	}
}

func TestFormatASTPretty(t *testing.T) {
	fs, pp := preprocess(t, "static const char *names[2] = { \"a\", [1] = \"b\" };\nint main(void) { return names[0][0] + 1; }\n")
	b := ast.NewBuilder(ast.Hints{})
	res, err := parser.Parse(context.Background(), fs, pp, b, parser.Options{})
	if err != nil || len(res.Diags) != 0 {
		t.Fatalf("parse: %v %v", err, res.Diags)
	}
	var buf bytes.Buffer
	if err := FormatASTPretty(&buf, b, res.Unit, fs); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"├─ Declaration: static const char (span: 1:1-1:50)",
		"Declarator: names: array of pointer to static const char",
		"Literal: [1] = \"b\"",
		"└─ FunctionDef: main: function(1 params) returning int",
		"Return (span:",
		"Binary: +",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("tree lacks %q:\n%s", want, out)
		}
	}
}

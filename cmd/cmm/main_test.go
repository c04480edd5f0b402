package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"cmm/internal/diag"
	"cmm/internal/diagfmt"
	"cmm/internal/source"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestFindManifest(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"cmm.toml":       "",
		"src/deep/app.c": "",
	})
	got, ok, err := findManifest(filepath.Join(dir, "src", "deep"))
	if err != nil || !ok {
		t.Fatalf("findManifest: %v %v", ok, err)
	}
	if want := filepath.Join(dir, "cmm.toml"); got != want {
		t.Errorf("found %s, want %s", got, want)
	}
}

func TestLoadManifest(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"cmm.toml": `
[preprocess]
include = ["include", "/usr/local/include"]
defines = { DEBUG = "1" }
undefines = ["NDEBUG"]
keep_comments = true

[output]
dump_ast = true
max_diagnostics = 7
`,
		"bad.toml":      "[preprocess]\nincludes = [\"x\"]\n",
		"negative.toml": "[output]\nmax_diagnostics = -1\n",
	})

	m, err := loadManifest(filepath.Join(dir, "cmm.toml"))
	if err != nil {
		t.Fatal(err)
	}
	want := manifest{
		Preprocess: preprocessConfig{
			Include:      []string{filepath.Join(dir, "include"), "/usr/local/include"},
			Defines:      map[string]string{"DEBUG": "1"},
			Undefines:    []string{"NDEBUG"},
			KeepComments: true,
		},
		Output: outputConfig{DumpAST: true, MaxDiagnostics: 7},
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("manifest (-want +got):\n%s", diff)
	}

	for _, name := range []string{"bad.toml", "negative.toml", "missing.toml"} {
		if _, err := loadManifest(filepath.Join(dir, name)); err == nil {
			t.Errorf("%s: want an error", name)
		}
	}
}

func TestMergeDefines(t *testing.T) {
	got := mergeDefines(
		map[string]string{"B": "2", "A": "1"},
		[]string{"C", "A=10", "F(x)=x"},
	)
	want := []string{"A=10", "B=2", "C", "F(x)=x"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("defines (-want +got):\n%s", diff)
	}
}

func TestAutoSwitch(t *testing.T) {
	tests := []struct {
		in   string
		want autoSwitch
		ok   bool
	}{
		{"auto", switchAuto, true},
		{" ON ", switchOn, true},
		{"off", switchOff, true},
		{"", switchAuto, true},
		{"loud", "", false},
	}
	for _, tt := range tests {
		var s autoSwitch
		err := s.Set(tt.in)
		if (err == nil) != tt.ok || (tt.ok && s != tt.want) {
			t.Errorf("Set(%q) = %q, %v", tt.in, s, err)
		}
	}
	if !switchOn.enabled(nil) || switchOff.enabled(nil) {
		t.Error("on/off must not consult the terminal")
	}
}

func TestReportDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.c", []byte("int x = ;\n"))
	newBag := func() *diag.Bag {
		bag := diag.NewBag(0)
		bag.Add(diag.New(diag.SevWarning, diag.PPUserWarning, source.Span{{File: id, Start: 0, End: 3}}, "careful"))
		bag.Add(diag.New(diag.SevError, diag.SynExpected, source.Span{{File: id, Start: 8, End: 9}}, "expected expression"))
		return bag
	}
	defer func(saved settings) { cfg = saved }(cfg)

	t.Run("short", func(t *testing.T) {
		cfg = settings{diagFormat: "short"}
		var out bytes.Buffer
		reportDiagnostics(&out, newBag(), fs)
		want := "warning PP3002 a.c:1:1 careful\nerror SYN4001 a.c:1:9 expected expression\n"
		if diff := cmp.Diff(want, out.String()); diff != "" {
			t.Errorf("output (-want +got):\n%s", diff)
		}
	})

	t.Run("json quiet", func(t *testing.T) {
		cfg = settings{diagFormat: "json", quiet: true}
		var out bytes.Buffer
		reportDiagnostics(&out, newBag(), fs)
		var got diagfmt.DiagnosticsOutput
		if err := json.Unmarshal(out.Bytes(), &got); err != nil {
			t.Fatalf("%v\n%s", err, out.String())
		}
		if got.Count != 1 || got.Diagnostics[0].Code != "SYN4001" {
			t.Errorf("diagnostics = %+v", got)
		}
	})
}

// execute runs the root command inside dir and returns stdout.
func execute(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	t.Chdir(dir)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append([]string{"--color=off"}, args...))
	err := rootCmd.Execute()
	teardown()
	return out.String(), err
}

func TestCLI(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"cmm.toml":       "[preprocess]\ninclude = [\"inc\"]\ndefines = { WIDTH = \"80\" }\n",
		"inc/defs.h":     "typedef int cell;\n",
		"ok.c":           "#include <defs.h>\ncell row[WIDTH];\n",
		"bad.c":          "int f(void) { return 1 }\n",
		"nested/other.c": "int g;\n",
	})

	t.Run("tokenize json", func(t *testing.T) {
		out, err := execute(t, dir, "tokenize", "--format", "json", "ok.c")
		if err != nil {
			t.Fatal(err)
		}
		var toks []diagfmt.TokenOutput
		if err := json.Unmarshal([]byte(out), &toks); err != nil {
			t.Fatalf("%v\n%s", err, out)
		}
		texts := make([]string, 0, len(toks))
		for _, tok := range toks {
			texts = append(texts, tok.Text)
		}
		want := []string{"typedef", "int", "cell", ";", "cell", "row", "[", "80", "]", ";"}
		if diff := cmp.Diff(want, texts); diff != "" {
			t.Errorf("tokens (-want +got):\n%s", diff)
		}
	})

	t.Run("parse", func(t *testing.T) {
		out, err := execute(t, dir, "parse", "ok.c")
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(out, "ok.c: 2 declarations") {
			t.Errorf("output = %q", out)
		}
	})

	t.Run("parse error", func(t *testing.T) {
		_, err := execute(t, dir, "parse", "bad.c")
		if !errors.Is(err, errDiagnostics) {
			t.Errorf("err = %v, want errDiagnostics", err)
		}
	})

	t.Run("check", func(t *testing.T) {
		out, err := execute(t, filepath.Join(dir, "nested"), "check", "--ui=off", "--jobs=2", "../ok.c", "../bad.c", "other.c")
		if !errors.Is(err, errDiagnostics) {
			t.Errorf("err = %v, want errDiagnostics", err)
		}
		if !strings.Contains(out, "3 files checked, 1 failed") {
			t.Errorf("output = %q", out)
		}
	})

	t.Run("cache", func(t *testing.T) {
		cacheDir := filepath.Join(dir, "cache")
		out, err := execute(t, dir, "--cache-dir", cacheDir, "cache", "path")
		if err != nil {
			t.Fatal(err)
		}
		if got := strings.TrimSpace(out); got != cacheDir {
			t.Errorf("cache path = %q, want %q", got, cacheDir)
		}
		out, err = execute(t, dir, "--cache-dir", cacheDir, "cache", "clean")
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(out, "cleared ") {
			t.Errorf("output = %q", out)
		}
	})

	t.Run("bad ui value", func(t *testing.T) {
		_, err := execute(t, dir, "check", "--ui=sometimes", "ok.c")
		if err == nil || !strings.Contains(err.Error(), "auto|on|off") {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("version", func(t *testing.T) {
		out, err := execute(t, dir, "version", "--format=json")
		if err != nil {
			t.Fatal(err)
		}
		var p versionPayload
		if err := json.Unmarshal([]byte(out), &p); err != nil || p.Tool != "cmm" || p.Version == "" {
			t.Errorf("payload = %+v (%v)", p, err)
		}
	})
}

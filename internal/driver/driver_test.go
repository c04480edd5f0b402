package driver_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"cmm/internal/diag"
	"cmm/internal/driver"
	"cmm/internal/observ"
	"cmm/internal/token"
	"cmm/internal/trace"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func texts(toks []token.Token) []string {
	out := make([]string, 0, len(toks))
	for _, tok := range toks {
		out = append(out, tok.Text)
	}
	return out
}

func codes(bag *diag.Bag) []string {
	out := make([]string, 0, bag.Len())
	for _, d := range bag.Items() {
		out = append(out, d.Code.ID())
	}
	return out
}

func TestTokenize(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"main.c":    "#include \"defs.h\"\n#include <sys.h>\nint v = N + M;\n",
		"defs.h":    "#define N 1\n",
		"inc/sys.h": "#define M SYS\n",
	})
	opts := driver.Options{
		IncludePaths: []string{filepath.Join(dir, "inc")},
		Defines:      []string{"SYS=2"},
	}
	res, err := driver.Tokenize(context.Background(), filepath.Join(dir, "main.c"), opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.Fatal || res.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", codes(res.Bag))
	}
	want := []string{"int", "v", "=", "1", "+", "2", ";"}
	if diff := cmp.Diff(want, texts(res.Tokens)); diff != "" {
		t.Errorf("tokens (-want +got):\n%s", diff)
	}
	// main.c, <command line>, defs.h, sys.h
	if got := res.FileSet.Len(); got != 4 {
		t.Errorf("files = %d, want 4", got)
	}
}

func TestTokenize_Fatal(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"err.c": "int a;\n#error stop here\nint b;\n",
	})
	tests := []struct {
		name string
		path string
		code diag.Code
	}{
		{"missing file", filepath.Join(dir, "nope.c"), diag.IOLoadFileError},
		{"user error", filepath.Join(dir, "err.c"), diag.PPUserError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := driver.Tokenize(context.Background(), tt.path, driver.Options{MaxDiagnostics: 1})
			if err != nil {
				t.Fatal(err)
			}
			if !res.Fatal {
				t.Fatal("expected a fatal result")
			}
			items := res.Bag.Items()
			if last := items[len(items)-1]; last.Code != tt.code {
				t.Errorf("last diagnostic = %s %q, want %s", last.Code.ID(), last.Message, tt.code.ID())
			}
		})
	}
}

func TestTokenize_Cache(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"main.c": "#include \"a.h\"\n#warning cached\nchar *s = \"x\" \"y\" A;\n",
		"a.h":    "#define A + 1\n",
	})
	cache, err := driver.OpenTokenCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	opts := driver.Options{Cache: cache, Defines: []string{"UNUSED"}}
	path := filepath.Join(dir, "main.c")

	first, err := driver.Tokenize(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.Cached {
		t.Fatal("first run must miss")
	}
	second, err := driver.Tokenize(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.Cached {
		t.Fatal("second run must hit")
	}
	if diff := cmp.Diff(first.Tokens, second.Tokens, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("cached tokens (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(codes(first.Bag), codes(second.Bag)); diff != "" {
		t.Errorf("cached diagnostics (-want +got):\n%s", diff)
	}
	if first.FileSet.Len() != second.FileSet.Len() {
		t.Errorf("file count %d != %d", first.FileSet.Len(), second.FileSet.Len())
	}

	// изменение заголовка инвалидирует запись
	if err := os.WriteFile(filepath.Join(dir, "a.h"), []byte("#define A - 2\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	third, err := driver.Tokenize(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.Cached {
		t.Error("stale header must miss")
	}
	if got := texts(third.Tokens); got[len(got)-3] != "-" {
		t.Errorf("tokens after edit = %v", got)
	}

	// other options, other key
	opts.Defines = nil
	fourth, err := driver.Tokenize(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if fourth.Cached {
		t.Error("different defines must miss")
	}

	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	fifth, err := driver.Tokenize(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if fifth.Cached {
		t.Error("dropped cache must miss")
	}
}

func TestParse(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"ok.c":     "#warning careful\ntypedef int T;\nT f(void) { return 0; }\n",
		"bad.c":    "int main(void) { return 0 }\n",
		"broken.c": "#endif\n",
	})
	tests := []struct {
		file   string
		failed bool
		fatal  bool
		first  string
	}{
		{"ok.c", false, false, "PP3002"},
		{"bad.c", true, false, "SYN4001"},
		{"broken.c", true, true, "PP2005"},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			tm := observ.NewTimer()
			res, err := driver.Parse(context.Background(), filepath.Join(dir, tt.file), driver.Options{Timer: tm})
			if err != nil {
				t.Fatal(err)
			}
			if res.Failed() != tt.failed || res.Fatal != tt.fatal {
				t.Errorf("failed=%v fatal=%v, want %v %v", res.Failed(), res.Fatal, tt.failed, tt.fatal)
			}
			if got := codes(res.Bag); len(got) == 0 || got[0] != tt.first {
				t.Errorf("codes = %v, want %s first", got, tt.first)
			}
			if !tt.fatal && (res.Unit == nil || res.Unit.Path != res.File.Path) {
				t.Errorf("unit = %+v", res.Unit)
			}
			if len(tm.Report().Phases) != 2 {
				t.Errorf("phases = %v", tm.Report().Phases)
			}
		})
	}
}

type recorder struct {
	mu     sync.Mutex
	events []driver.Event
}

func (r *recorder) OnEvent(ev driver.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) final() map[string]driver.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]driver.Status)
	for _, ev := range r.events {
		out[ev.File] = ev.Status
	}
	return out
}

func TestCheck(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"shared.h": "#ifndef SHARED\n#define SHARED\ntypedef unsigned size;\n#endif\n",
		"a.c":      "#include \"shared.h\"\nsize a;\n",
		"b.c":      "#include \"shared.h\"\nsize b = ;\n",
		"c.c":      "#define SHARED\n#include \"shared.h\"\nint c;\n",
	})
	paths := []string{
		filepath.Join(dir, "a.c"),
		filepath.Join(dir, "b.c"),
		filepath.Join(dir, "c.c"),
		filepath.Join(dir, "missing.c"),
	}
	rec := &recorder{}
	res, err := driver.Check(context.Background(), paths, driver.Options{Jobs: 2, Progress: rec})
	if err != nil {
		t.Fatal(err)
	}
	if got := res.Failed(); got != 2 {
		t.Errorf("failed units = %d, want 2", got)
	}
	for i, u := range res.Units {
		if u.Path != paths[i] {
			t.Errorf("unit %d path = %s, want %s", i, u.Path, paths[i])
		}
	}
	// у каждой единицы своя таблица макросов: guard из одной не прячет typedef в другой
	for _, i := range []int{0, 2} {
		if res.Units[i].Failed() {
			t.Errorf("%s: %v", paths[i], codes(res.Units[i].Bag))
		}
	}
	if msg := res.Units[1].Bag.Items()[0].Message; msg != "unexpected ';' in initializer" {
		t.Errorf("b.c: %q", msg)
	}

	want := map[string]driver.Status{
		"":       driver.StatusDone,
		paths[0]: driver.StatusDone,
		paths[1]: driver.StatusError,
		paths[2]: driver.StatusDone,
		paths[3]: driver.StatusError,
	}
	if diff := cmp.Diff(want, rec.final()); diff != "" {
		t.Errorf("final statuses (-want +got):\n%s", diff)
	}
}

func TestCheck_Canceled(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.c": "int a;\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := driver.Check(ctx, []string{filepath.Join(dir, "a.c")}, driver.Options{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestChannelSink(t *testing.T) {
	ch := make(chan driver.Event, 1)
	driver.ChannelSink{Ch: ch}.OnEvent(driver.Event{File: "x.c", Status: driver.StatusQueued})
	driver.ChannelSink{}.OnEvent(driver.Event{})
	if ev := <-ch; ev.File != "x.c" || !strings.EqualFold(string(ev.Status), "queued") {
		t.Errorf("event = %+v", ev)
	}
}

func TestTokenize_IncludeSpanNested(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"main.c": "#include \"a.h\"\nint x;\n",
		"a.h":    "#include \"b.h\"\n",
		"b.h":    "int y;\n",
	})
	ring := trace.NewRingTracer(64, trace.LevelDetail)
	ctx := trace.WithTracer(context.Background(), ring)
	if _, err := driver.Tokenize(ctx, filepath.Join(dir, "main.c"), driver.Options{}); err != nil {
		t.Fatal(err)
	}

	// extras are attached to end events
	ends := make(map[string]trace.Event)
	for _, ev := range ring.Snapshot() {
		if ev.Kind != trace.KindSpanEnd {
			continue
		}
		key := ev.Name
		if f := ev.Extra["file"]; f != "" && ev.Name == "include" {
			key += ":" + filepath.Base(f)
		}
		ends[key] = ev
	}
	root, a, b := ends["tokenize"], ends["include:a.h"], ends["include:b.h"]
	if root.SpanID == 0 || a.SpanID == 0 || b.SpanID == 0 {
		t.Fatalf("missing spans: %v", ends)
	}
	if a.ParentID != root.SpanID || b.ParentID != a.SpanID {
		t.Errorf("parents: a.h -> %d (want %d), b.h -> %d (want %d)", a.ParentID, root.SpanID, b.ParentID, a.SpanID)
	}
}

package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"cmm/internal/driver"
)

func TestProgressModel_Events(t *testing.T) {
	events := make(chan driver.Event)
	model := NewProgressModel("check", []string{"a.c", "b.c"}, events)
	m := model.(*progressModel)

	m.Update(eventMsg{File: "a.c", Stage: driver.StageParse, Status: driver.StatusWorking})
	m.Update(eventMsg{File: "b.c", Stage: driver.StageParse, Status: driver.StatusError, Elapsed: time.Millisecond})
	m.Update(eventMsg{File: "ghost.c", Status: driver.StatusDone})

	view := m.View()
	for _, want := range []string{"parsing", "error", "a.c", "b.c", "(1/2, 1 failed)"} {
		if !strings.Contains(view, want) {
			t.Errorf("view misses %q:\n%s", want, view)
		}
	}

	m.Update(eventMsg{Stage: driver.StageParse, Status: driver.StatusDone, Elapsed: 2 * time.Millisecond})
	_, cmd := m.Update(doneMsg{})
	if cmd == nil {
		t.Fatal("done must quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("done command is not tea.Quit")
	}
	if view := m.View(); !strings.HasPrefix(stripANSI(view), "done in 2ms") {
		t.Errorf("final header = %q", strings.SplitN(view, "\n", 2)[0])
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
	}{
		{"very/long/path/file.c", 10},
		{"日本語/ファイル.c", 9},
		{"abc", 2},
	}
	for _, tt := range tests {
		got := truncate(tt.in, tt.width)
		if w := runewidth.StringWidth(got); w > tt.width || w == 0 {
			t.Errorf("truncate(%q, %d) = %q (width %d)", tt.in, tt.width, got, w)
		}
		if tt.width > 3 && !strings.HasSuffix(got, "...") {
			t.Errorf("truncate(%q, %d) = %q, want an ellipsis", tt.in, tt.width, got)
		}
	}
	if got := truncate("short.c", 20); got != "short.c" {
		t.Errorf("short names are kept, got %q", got)
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	esc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			esc = true
		case esc && r == 'm':
			esc = false
		case !esc:
			b.WriteRune(r)
		}
	}
	return b.String()
}

package prof_test

import (
	"os"
	"path/filepath"
	"testing"

	"cmm/internal/prof"
)

func TestSession(t *testing.T) {
	dir := t.TempDir()
	cfg := prof.Config{
		CPUProfile:   filepath.Join(dir, "cpu.out"),
		MemProfile:   filepath.Join(dir, "mem.out"),
		RuntimeTrace: filepath.Join(dir, "trace.out"),
	}
	if !cfg.Enabled() {
		t.Fatal("config with paths must be enabled")
	}
	s, err := prof.Start(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Stop(); err != nil {
		t.Fatal(err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("second Stop: %v", err)
	}
	for _, p := range []string{cfg.CPUProfile, cfg.MemProfile, cfg.RuntimeTrace} {
		st, err := os.Stat(p)
		if err != nil {
			t.Fatal(err)
		}
		if st.Size() == 0 {
			t.Errorf("%s is empty", filepath.Base(p))
		}
	}
}

func TestStart_BadPath(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no", "such", "dir", "cpu.out")
	if _, err := prof.Start(prof.Config{CPUProfile: missing}); err == nil {
		t.Fatal("want an error")
	}
	// профилировщик не должен остаться запущенным
	s, err := prof.Start(prof.Config{CPUProfile: filepath.Join(t.TempDir(), "cpu.out")})
	if err != nil {
		t.Fatal(err)
	}
	_ = s.Stop()
}

func TestNilSession(t *testing.T) {
	var s *prof.Session
	if err := s.Stop(); err != nil {
		t.Fatal(err)
	}
}

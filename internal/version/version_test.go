package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestString(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	tests := []struct {
		in, want string
	}{
		{"1.2.3", "1.2.3"},
		{"  0.1.0-dev ", "0.1.0-dev"},
		{"", "dev"},
	}
	for _, tt := range tests {
		Version = tt.in
		if got := String(); got != tt.want {
			t.Errorf("String() with %q = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestColored_PlainWithoutColor(t *testing.T) {
	orig, origNoColor := Version, color.NoColor
	t.Cleanup(func() { Version, color.NoColor = orig, origNoColor })
	color.NoColor = true

	for _, v := range []string{"1.2.3", "0.3.0-dev", "1.2.3-rc.1+build.5", "weird"} {
		Version = v
		if got := Colored(); got != v {
			t.Errorf("Colored() = %q, want %q", got, v)
		}
	}
}

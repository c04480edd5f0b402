package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"cmm/internal/driver"
	"cmm/internal/observ"
)

const manifestName = "cmm.toml"

// manifest mirrors cmm.toml.
type manifest struct {
	Preprocess preprocessConfig `toml:"preprocess"`
	Output     outputConfig     `toml:"output"`
}

type preprocessConfig struct {
	Include      []string          `toml:"include"`
	Defines      map[string]string `toml:"defines"`
	Undefines    []string          `toml:"undefines"`
	KeepComments bool              `toml:"keep_comments"`
}

type outputConfig struct {
	DumpTokens     bool `toml:"dump_tokens"`
	DumpAST        bool `toml:"dump_ast"`
	MaxDiagnostics int  `toml:"max_diagnostics"`
}

// settings are the manifest and the flags merged; flags win.
type settings struct {
	manifestPath string

	includes       []string
	defines        []string
	undefines      []string
	keepComments   bool
	maxDiagnostics int
	dumpTokens     bool
	dumpAST        bool

	color      bool
	quiet      bool
	timings    bool
	cacheDir   string
	diagFormat string
}

var cfg settings

func findManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, manifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadManifest decodes path; relative include directories are resolved
// against the manifest's directory.
func loadManifest(path string) (manifest, error) {
	var m manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return manifest{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return manifest{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if m.Output.MaxDiagnostics < 0 {
		return manifest{}, fmt.Errorf("%s: [output].max_diagnostics must not be negative", path)
	}
	root := filepath.Dir(path)
	for i, inc := range m.Preprocess.Include {
		if !filepath.IsAbs(inc) {
			m.Preprocess.Include[i] = filepath.Join(root, filepath.FromSlash(inc))
		}
	}
	return m, nil
}

// loadSettings fills cfg from --config (or the nearest cmm.toml) and the flags.
func loadSettings(cmd *cobra.Command) error {
	pf := cmd.Root().PersistentFlags()
	s := settings{}

	path, err := pf.GetString("config")
	if err != nil {
		return err
	}
	if path == "" {
		var ok bool
		if path, ok, err = findManifest("."); err != nil {
			return err
		} else if !ok {
			path = ""
		}
	}
	var m manifest
	if path != "" {
		if m, err = loadManifest(path); err != nil {
			return err
		}
		s.manifestPath = path
	}

	includes, err := pf.GetStringArray("include")
	if err != nil {
		return err
	}
	defines, err := pf.GetStringArray("define")
	if err != nil {
		return err
	}
	undefines, err := pf.GetStringArray("undef")
	if err != nil {
		return err
	}
	// -I ищутся раньше путей из манифеста
	s.includes = append(slices.Clone(includes), m.Preprocess.Include...)
	s.defines = mergeDefines(m.Preprocess.Defines, defines)
	s.undefines = append(slices.Clone(m.Preprocess.Undefines), undefines...)
	s.keepComments = m.Preprocess.KeepComments
	s.dumpTokens = m.Output.DumpTokens
	s.dumpAST = m.Output.DumpAST

	s.maxDiagnostics, err = pf.GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	if !pf.Changed("max-diagnostics") && m.Output.MaxDiagnostics > 0 {
		s.maxDiagnostics = m.Output.MaxDiagnostics
	}

	s.color = pf.Lookup("color").Value.(*autoSwitch).enabled(os.Stderr)
	if s.quiet, err = pf.GetBool("quiet"); err != nil {
		return err
	}
	if s.timings, err = pf.GetBool("timings"); err != nil {
		return err
	}
	if s.cacheDir, err = pf.GetString("cache-dir"); err != nil {
		return err
	}
	if s.diagFormat, err = pf.GetString("diag-format"); err != nil {
		return err
	}
	switch s.diagFormat {
	case "pretty", "json", "short":
	default:
		return fmt.Errorf("invalid --diag-format value %q (expected pretty|json|short)", s.diagFormat)
	}
	cfg = s
	return nil
}

// mergeDefines turns the manifest table and -D flags into NAME=VALUE
// options. A -D for a name in the table replaces its value instead of
// redefining the macro.
func mergeDefines(table map[string]string, flags []string) []string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	slices.Sort(names)

	out := make([]string, 0, len(names)+len(flags))
	pos := make(map[string]int, len(names)+len(flags))
	add := func(name, def string) {
		if i, ok := pos[name]; ok {
			out[i] = def
			return
		}
		pos[name] = len(out)
		out = append(out, def)
	}
	for _, name := range names {
		add(name, name+"="+table[name])
	}
	for _, d := range flags {
		name, _, _ := strings.Cut(d, "=")
		if i := strings.IndexByte(name, '('); i >= 0 {
			name = name[:i]
		}
		add(name, d)
	}
	return out
}

// driverOptions builds the options every command passes to the driver.
func (s settings) driverOptions() driver.Options {
	opts := driver.Options{
		IncludePaths:   s.includes,
		Defines:        s.defines,
		Undefines:      s.undefines,
		KeepComments:   s.keepComments,
		MaxDiagnostics: s.maxDiagnostics,
	}
	if s.timings {
		opts.Timer = observ.NewTimer()
	}
	return opts
}

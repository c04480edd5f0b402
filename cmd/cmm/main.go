package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"cmm/internal/version"
)

// errDiagnostics means errors were already rendered; main only sets the exit code.
var errDiagnostics = errors.New("errors reported")

var rootCmd = &cobra.Command{
	Use:   "cmm",
	Short: "C front end: preprocessor, parser and diagnostics",
	Long: `cmm preprocesses and parses C translation units and explains syntax
errors found by its backtracking parser`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.Version = version.String()

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.Var(newSwitch(switchAuto), "color", "colorize output")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.String("diag-format", "pretty", "diagnostics format (pretty|json|short)")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics per translation unit")
	pf.StringArrayP("include", "I", nil, "add a directory to the include search path")
	pf.StringArrayP("define", "D", nil, "predefine NAME or NAME=VALUE")
	pf.StringArrayP("undef", "U", nil, "undefine NAME after the predefinitions")
	pf.String("config", "", "path to cmm.toml (default: searched upwards from the working directory)")
	pf.String("cache-dir", "", "reuse token dumps stored in this directory")
	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	pf.Duration("trace-heartbeat", 0, "emit a heartbeat event at this interval (0 disables)")
	pf.String("cpu-profile", "", "write a CPU profile to this file")
	pf.String("mem-profile", "", "write a heap profile to this file on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to this file")
}

func main() {
	err := rootCmd.Execute()
	teardown()
	if err != nil {
		if !errors.Is(err, errDiagnostics) {
			fmt.Fprintf(os.Stderr, "cmm: %v\n", err)
		}
		os.Exit(1)
	}
}

// setup runs before every command: config, tracing, profiling.
func setup(cmd *cobra.Command, _ []string) error {
	if err := loadSettings(cmd); err != nil {
		return err
	}
	if err := setupTracing(cmd); err != nil {
		return err
	}
	return setupProfiling(cmd)
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // Fd fits int on supported platforms
}

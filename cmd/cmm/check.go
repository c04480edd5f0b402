package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cmm/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] file.c...",
	Short: "Parse several translation units in parallel",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	checkCmd.Flags().Var(newSwitch(switchAuto), "ui", "progress view")
}

func runCheck(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	ui := *cmd.Flags().Lookup("ui").Value.(*autoSwitch)

	opts := cfg.driverOptions()
	opts.Jobs = jobs

	var result *driver.CheckResult
	// auto: прогресс только на терминале и без --quiet
	if ui == switchOn || (ui == switchAuto && !cfg.quiet && isTerminal(os.Stdout)) {
		result, err = runCheckWithUI(cmd.Context(), args, opts)
	} else {
		result, err = driver.Check(cmd.Context(), args, opts)
	}
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	// диагностики печатаются после прогресса, в порядке аргументов
	for _, unit := range result.Units {
		reportDiagnostics(os.Stderr, unit.Bag, unit.FileSet)
	}
	if cfg.timings {
		printTimings(os.Stderr, opts.Timer)
	}
	failed := result.Failed()
	if !cfg.quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "%d files checked, %d failed\n", len(result.Units), failed)
	}
	if failed > 0 {
		return errDiagnostics
	}
	return nil
}

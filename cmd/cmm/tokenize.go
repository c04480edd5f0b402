package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cmm/internal/diagfmt"
	"cmm/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.c",
	Short: "Print the preprocessed token stream of a C file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
	tokenizeCmd.Flags().Bool("keep-comments", false, "emit comments as COMMENT tokens")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json", "msgpack":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	opts := cfg.driverOptions()
	if cmd.Flags().Changed("keep-comments") {
		if opts.KeepComments, err = cmd.Flags().GetBool("keep-comments"); err != nil {
			return err
		}
	}
	if cfg.cacheDir != "" {
		if opts.Cache, err = driver.OpenTokenCache(cfg.cacheDir); err != nil {
			return fmt.Errorf("token cache: %w", err)
		}
	}

	result, err := driver.Tokenize(cmd.Context(), args[0], opts)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	reportDiagnostics(os.Stderr, result.Bag, result.FileSet)
	if result.Fatal {
		return errDiagnostics
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		err = diagfmt.FormatTokensJSON(out, result.Tokens, result.FileSet)
	case "msgpack":
		err = diagfmt.FormatTokensMsgpack(out, result.Tokens, result.FileSet)
	default:
		err = diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet)
	}
	if err != nil {
		return err
	}
	if cfg.timings {
		printTimings(os.Stderr, opts.Timer)
	}
	return nil
}

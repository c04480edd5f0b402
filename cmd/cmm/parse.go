package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cmm/internal/diagfmt"
	"cmm/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.c",
	Short: "Parse a C file and report syntax errors",
	Long: `Parse preprocesses and parses one translation unit. On a syntax error
the backtracking attempts are ranked and the most plausible failure is
reported with a caret under the offending tokens.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "tree", "AST dump format (tree|json)")
	parseCmd.Flags().Bool("dump-ast", false, "print the AST of a successful parse")
	parseCmd.Flags().Bool("dump-tokens", false, "print the preprocessed tokens first")
}

func runParse(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()
	path := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "tree" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	dumpAST := cfg.dumpAST
	if cmd.Flags().Changed("dump-ast") {
		if dumpAST, err = cmd.Flags().GetBool("dump-ast"); err != nil {
			return err
		}
	}
	dumpTokens := cfg.dumpTokens
	if cmd.Flags().Changed("dump-tokens") {
		if dumpTokens, err = cmd.Flags().GetBool("dump-tokens"); err != nil {
			return err
		}
	}

	opts := cfg.driverOptions()
	out := cmd.OutOrStdout()
	if dumpTokens {
		tokens, err := driver.Tokenize(cmd.Context(), path, opts)
		if err != nil {
			return fmt.Errorf("tokenization failed: %w", err)
		}
		if err := diagfmt.FormatTokensPretty(out, tokens.Tokens, tokens.FileSet); err != nil {
			return err
		}
	}

	result, err := driver.Parse(cmd.Context(), path, opts)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	reportDiagnostics(os.Stderr, result.Bag, result.FileSet)
	if cfg.timings {
		defer printTimings(os.Stderr, opts.Timer)
	}
	if result.Failed() {
		return errDiagnostics
	}

	if !dumpAST {
		if !cfg.quiet {
			fmt.Fprintf(out, "%s: %d declarations\n", result.File.Path, len(result.Unit.Decls))
		}
		return nil
	}
	if format == "json" {
		return diagfmt.FormatASTJSON(out, result.Builder, result.Unit)
	}
	return diagfmt.FormatASTPretty(out, result.Builder, result.Unit, result.FileSet)
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cmm/internal/driver"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the token cache",
}

var cachePathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the cache directory (--cache-dir or the user cache dir)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cache, err := driver.OpenTokenCache(cfg.cacheDir)
		if err != nil {
			return fmt.Errorf("token cache: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), cache.Dir())
		return nil
	},
}

var cacheCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove every cached token dump",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cache, err := driver.OpenTokenCache(cfg.cacheDir)
		if err != nil {
			return fmt.Errorf("token cache: %w", err)
		}
		if err := cache.DropAll(); err != nil {
			return fmt.Errorf("token cache: %w", err)
		}
		if !cfg.quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", cache.Dir())
		}
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cachePathCmd)
	cacheCmd.AddCommand(cacheCleanCmd)
}

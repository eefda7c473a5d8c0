package main

import (
	"fmt"
	"os"

	"searchlight/internal/config"
	"searchlight/internal/paths"
	"searchlight/pkg/flowfmt"
	"searchlight/pkg/resultcache"
	"searchlight/pkg/searchcli"

	"github.com/spf13/cobra"
)

// newSearchCmd creates the "searchlight search" subcommand: a manual
// semantic search through the same invoker, formatter, and result cache
// the hook uses. The cache here is the durable SQLite one, so repeated
// identical searches inside the TTL skip the CLI.
func newSearchCmd() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Run a semantic search for the current directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := args[0]

			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("get working directory: %w", err)
			}
			p, err := paths.Resolve()
			if err != nil {
				return err
			}
			cfg := config.Load(p.ConfigPath, cwd)

			var cache resultcache.Cache = resultcache.Nop{}
			if !noCache {
				if sq, err := resultcache.OpenSQLite(p.ResultCachePath, 0); err == nil {
					defer sq.Close()
					cache = sq
				}
			}

			if cached, ok := cache.Get(cwd, query); ok {
				fmt.Fprintln(cmd.OutOrStdout(), cached)
				fmt.Fprintln(cmd.OutOrStdout(), styled(dimStyle, "(cached)"))
				return nil
			}

			client := searchcli.NewClient(cfg.CLI)
			client.SearchTimeout = cfg.SearchTimeout()

			outcome := client.Search(cmd.Context(), query, cwd)
			if !outcome.OK {
				if outcome.NotIndexed {
					return fmt.Errorf("repository is not indexed; run %q first", cfg.CLI+" analyze")
				}
				return fmt.Errorf("search failed after %s", outcome.Elapsed)
			}

			rendered := flowfmt.Render(flowfmt.Parse(outcome.Text), query, outcome.Elapsed)
			cache.Set(cwd, query, rendered)
			fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the local result cache")
	return cmd
}

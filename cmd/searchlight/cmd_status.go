package main

import (
	"fmt"
	"os"

	"searchlight/internal/config"
	"searchlight/internal/paths"
	"searchlight/pkg/repocache"
	"searchlight/pkg/searchcli"

	"github.com/spf13/cobra"
)

// newStatusCmd creates the "searchlight status" subcommand.
func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show hook state for the current directory",
		Long:  "Resolves the working directory against the repository cache and\nreports whether semantic search would be used, plus the effective\nconfiguration and paths.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("get working directory: %w", err)
			}

			p, err := paths.Resolve()
			if err != nil {
				return err
			}
			cfg := config.Load(p.ConfigPath, cwd)

			client := searchcli.NewClient(cfg.CLI)
			name := client.RepoDisplayName(cmd.Context(), cwd)
			result := repocache.New(p.RepoCachePath).Lookup(cwd)

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, styled(headingStyle, "searchlight status"))
			fmt.Fprintf(w, "repository:   %s\n", name)
			fmt.Fprintf(w, "index state:  %s\n", styledState(result))
			if result.RepoName != "" {
				fmt.Fprintf(w, "cache entry:  %s (%s)\n", result.RepoName, result.RepoID)
			}
			fmt.Fprintf(w, "cli:          %s\n", cfg.CLI)
			fmt.Fprintf(w, "repo cache:   %s\n", p.RepoCachePath)
			fmt.Fprintf(w, "timeouts:     search %s, session %s\n",
				cfg.SearchTimeout(), cfg.SessionTimeout())
			return nil
		},
	}
}

// styledState colors the lookup state: green indexed, yellow unknown,
// red not indexed.
func styledState(result repocache.Result) string {
	switch result.State {
	case repocache.Indexed:
		return styled(okStyle, result.State.String())
	case repocache.NotIndexed:
		return styled(badStyle, result.State.String())
	default:
		return styled(warnStyle, result.State.String())
	}
}

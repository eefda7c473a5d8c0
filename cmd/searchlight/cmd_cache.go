package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"searchlight/internal/paths"
	"searchlight/pkg/repocache"

	"github.com/spf13/cobra"
)

// cacheFileView mirrors the repository cache file for display purposes
// only; the authoritative read path lives in pkg/repocache.
type cacheFileView struct {
	Data struct {
		Repositories []repocache.Entry `json:"repositories"`
	} `json:"data"`
	CachedAt int64 `json:"cached_at"`
}

// newCacheCmd creates the "searchlight cache" subcommand.
func newCacheCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cache",
		Short: "Inspect the repository cache file",
		Long:  "Prints the external CLI's repository cache: every known\nrepository, its indexed flag, and whether the cache is still fresh.",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := paths.Resolve()
			if err != nil {
				return err
			}

			raw, err := os.ReadFile(p.RepoCachePath)
			if err != nil {
				return fmt.Errorf("read repository cache %s: %w", p.RepoCachePath, err)
			}

			var view cacheFileView
			if err := json.Unmarshal(raw, &view); err != nil {
				return fmt.Errorf("parse repository cache: %w", err)
			}

			age := time.Since(time.UnixMilli(view.CachedAt)).Round(time.Second)
			freshness := styled(okStyle, "fresh")
			if age > repocache.TTL {
				freshness = styled(warnStyle, "stale (treated as unknown)")
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, styled(headingStyle, "repository cache"))
			fmt.Fprintf(w, "file: %s\n", p.RepoCachePath)
			fmt.Fprintf(w, "age:  %s, %s\n", age, freshness)
			for _, entry := range view.Data.Repositories {
				flag := styled(okStyle, "indexed")
				if !entry.Indexed {
					flag = styled(dimStyle, "not indexed")
				}
				fmt.Fprintf(w, "  %-30s %-12s %s\n", entry.FullName, flag, entry.SourcePath)
			}
			if len(view.Data.Repositories) == 0 {
				fmt.Fprintln(w, styled(dimStyle, "  (no repositories)"))
			}
			return nil
		},
	}
}

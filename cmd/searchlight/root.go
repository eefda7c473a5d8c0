package main

import (
	"fmt"

	"searchlight/internal/appversion"

	"github.com/spf13/cobra"
)

// newRootCmd creates the root searchlight command with all subcommands
// attached.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "searchlight",
		Short:         "Semantic code-search hooks for Claude Code",
		Long:          "searchlight augments built-in file-search tools with semantic\ncode-search results from an external CLI. The hook itself is the\nsearchlight-hook binary; this command inspects and debugs its state.",
		Version:       fmt.Sprintf("searchlight %s", appversion.String()),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.AddCommand(
		newStatusCmd(),
		newCacheCmd(),
		newExtractCmd(),
		newSearchCmd(),
	)

	return cmd
}

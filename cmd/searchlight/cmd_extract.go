package main

import (
	"fmt"

	"searchlight/pkg/extract"

	"github.com/spf13/cobra"
)

// newExtractCmd creates the "searchlight extract" subcommand, a
// debugging aid that shows what query the hook would derive from a tool
// input.
func newExtractCmd() *cobra.Command {
	var tool string

	cmd := &cobra.Command{
		Use:   "extract <pattern-or-command>",
		Short: "Show the query the hook would extract",
		Long:  "Runs the query extractor for one tool input and prints the\nresulting semantic-search query, or (none) when the input does not\nwarrant augmentation.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var query string
			switch tool {
			case "glob":
				query = extract.FromGlob(args[0])
			case "grep":
				query = extract.FromGrep(args[0])
			case "bash":
				query = extract.FromCommand(args[0])
			default:
				return fmt.Errorf("unknown tool %q (want glob, grep, or bash)", tool)
			}

			if query == "" {
				fmt.Fprintln(cmd.OutOrStdout(), styled(dimStyle, "(none)"))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), query)
			return nil
		},
	}

	cmd.Flags().StringVar(&tool, "tool", "grep", "tool dialect: glob, grep, or bash")
	return cmd
}

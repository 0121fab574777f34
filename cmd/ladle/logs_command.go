package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"ladle/internal/logs"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var lineCount int
	var follow bool

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show recent output from the serve log",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := filepath.Join(cfg.Paths.LogDir, "ladle.log")

			result, err := logs.Tail(path, lineCount)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, line := range result.Lines {
				fmt.Fprintln(out, line)
			}
			if !follow {
				if len(result.Lines) == 0 {
					fmt.Fprintln(out, "No log output yet. Start the backend with `ladle serve`.")
				}
				return nil
			}
			return logs.Follow(cmd.Context(), path, result.Offset, func(line string) {
				fmt.Fprintln(out, line)
			})
		},
	}

	cmd.Flags().IntVarP(&lineCount, "lines", "n", 50, "Number of recent lines to show")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing new lines as they are written")
	return cmd
}

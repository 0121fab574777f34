package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ladle/internal/backup"
	"ladle/internal/store"
)

func newBackupCommand(ctx *commandContext) *cobra.Command {
	backupCmd := &cobra.Command{
		Use:   "backup",
		Short: "Database snapshot utilities",
	}

	backupCmd.AddCommand(newBackupRunCommand(ctx))
	backupCmd.AddCommand(newBackupListCommand(ctx))

	return backupCmd
}

func newBackupRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Write a snapshot archive now",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return ctx.withStore(func(st *store.Store) error {
				var uploader backup.Uploader
				if cfg.Backup.S3Bucket != "" {
					s3up, err := backup.NewS3Uploader(cmd.Context(), cfg.Backup.S3Bucket, cfg.Backup.S3Region)
					if err != nil {
						return fmt.Errorf("configure s3 upload: %w", err)
					}
					uploader = s3up
				}

				svc := backup.NewService(st, cfg, backup.Options{
					Uploader: uploader,
					Logger:   ctx.cliLogger(),
				})
				result, err := svc.Run(cmd.Context())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Wrote %s (%d recipes, %s)\n",
					result.ArchivePath, result.Recipes, formatSize(result.SizeBytes))
				for _, pruned := range result.Pruned {
					fmt.Fprintf(out, "Pruned %s\n", pruned)
				}
				if result.RemoteKey != "" {
					fmt.Fprintf(out, "Uploaded to s3://%s/%s\n", cfg.Backup.S3Bucket, result.RemoteKey)
				}
				return nil
			})
		},
	}
}

func newBackupListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List snapshot archives, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return ctx.withStore(func(st *store.Store) error {
				svc := backup.NewService(st, cfg, backup.Options{Logger: ctx.cliLogger()})
				archives, err := svc.Archives()
				if err != nil {
					return err
				}
				if len(archives) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No backup archives yet. Run `ladle backup run` to create one.")
					return nil
				}

				rows := make([][]string, 0, len(archives))
				for _, archive := range archives {
					rows = append(rows, []string{
						archive.Name,
						formatSize(archive.SizeBytes),
						archive.ModifiedAt.Local().Format("2006-01-02 15:04"),
					})
				}
				table := renderTable([]string{"Archive", "Size", "Created"}, rows, 1)
				fmt.Fprintln(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}
}

func formatSize(bytes int64) string {
	switch {
	case bytes >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(bytes)/(1<<20))
	case bytes >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(bytes)/(1<<10))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ladle/internal/api"
	"ladle/internal/extraction"
	"ladle/internal/store"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	var noSave bool

	cmd := &cobra.Command{
		Use:   "extract <video-url>",
		Short: "Extract a structured recipe from a cooking video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return ctx.withStore(func(st *store.Store) error {
				extractor, err := buildExtractor(cmd.Context(), cfg, st, ctx.cliLogger())
				if err != nil {
					return err
				}
				rec, err := extractor.Extract(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				if noSave {
					if asJSON {
						return writeJSON(cmd, extraction.Formatted(rec))
					}
					printRecipeDetail(cmd.OutOrStdout(), rec)
					return nil
				}

				saved, err := st.SaveRecipe(cmd.Context(), rec)
				if err != nil {
					return fmt.Errorf("save recipe: %w", err)
				}
				if asJSON {
					return writeJSON(cmd, api.FromRecipeRecord(saved))
				}
				printRecipeDetail(cmd.OutOrStdout(), &saved.Record)
				fmt.Fprintf(cmd.OutOrStdout(), "\nSaved as %s\n", saved.ID)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the extraction record as JSON")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "Skip saving the extraction to the database")
	return cmd
}

package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"ladle/internal/api"
	"ladle/internal/extraction"
	"ladle/internal/format"
	"ladle/internal/store"
)

func newRecipesCommand(ctx *commandContext) *cobra.Command {
	recipesCmd := &cobra.Command{
		Use:   "recipes",
		Short: "Browse and manage stored recipes",
	}

	recipesCmd.AddCommand(newRecipesListCommand(ctx))
	recipesCmd.AddCommand(newRecipesShowCommand(ctx))
	recipesCmd.AddCommand(newRecipesDeleteCommand(ctx))
	recipesCmd.AddCommand(newRecipesExportCommand(ctx))

	return recipesCmd
}

func newRecipesListCommand(ctx *commandContext) *cobra.Command {
	var search string
	var channel string
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored recipes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				recipes, err := st.ListRecipes(cmd.Context(), store.ListRecipesOptions{
					Search:  search,
					Channel: channel,
					Limit:   limit,
				})
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, api.RecipeListResponse{Recipes: api.FromRecipes(recipes)})
				}
				if len(recipes) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No recipes stored yet. Run `ladle extract <url>` to add one.")
					return nil
				}

				rows := make([][]string, 0, len(recipes))
				for _, rec := range recipes {
					rows = append(rows, []string{
						rec.ID,
						rec.Title,
						rec.Channel,
						strconv.Itoa(len(rec.Record.Steps)),
						rec.CreatedAt.Local().Format("2006-01-02"),
					})
				}
				table := renderTable([]string{"ID", "Title", "Channel", "Steps", "Added"}, rows, 3)
				fmt.Fprintln(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Filter by title or channel substring")
	cmd.Flags().StringVar(&channel, "channel", "", "Filter by exact channel name")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Limit the number of rows (0 = all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the listing as JSON")
	return cmd
}

func newRecipesShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id-or-video-id>",
		Short: "Show one recipe with its step timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				rec, err := resolveRecipe(cmd.Context(), st, args[0])
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, api.RecipeResponse{Recipe: api.FromRecipeRecord(rec)})
				}
				printRecipeDetail(cmd.OutOrStdout(), &rec.Record)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the recipe as JSON")
	return cmd
}

func newRecipesDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id-or-video-id>",
		Short: "Delete a stored recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				rec, err := resolveRecipe(cmd.Context(), st, args[0])
				if err != nil {
					return err
				}
				if _, err := st.DeleteRecipe(cmd.Context(), rec.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", rec.Title)
				return nil
			})
		},
	}
}

func newRecipesExportCommand(ctx *commandContext) *cobra.Command {
	var formatName string
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export <id-or-video-id>",
		Short: "Export a recipe as JSON, SRT subtitles, or markdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				rec, err := resolveRecipe(cmd.Context(), st, args[0])
				if err != nil {
					return err
				}
				payload, err := exportRecipe(rec, formatName)
				if err != nil {
					return err
				}

				if outputPath == "" {
					_, err := cmd.OutOrStdout().Write(payload)
					return err
				}
				if err := os.WriteFile(outputPath, payload, 0o644); err != nil {
					return fmt.Errorf("write export: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s export to %s\n", formatName, outputPath)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&formatName, "format", "f", "json", "Export format: json, srt, or markdown")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write to a file instead of stdout")
	return cmd
}

// resolveRecipe accepts either a row id or a YouTube video id.
func resolveRecipe(ctx context.Context, st *store.Store, key string) (*store.Recipe, error) {
	rec, err := st.GetRecipe(ctx, key)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		rec, err = st.GetRecipeByVideoID(ctx, key)
		if err != nil {
			return nil, err
		}
	}
	if rec == nil {
		return nil, fmt.Errorf("no recipe matches %q", key)
	}
	return rec, nil
}

func exportRecipe(rec *store.Recipe, name string) ([]byte, error) {
	switch name {
	case "json":
		return format.ExportJSON(extraction.Formatted(&rec.Record))
	case "srt":
		return []byte(format.SubtitleTrack(rec.Record.Steps)), nil
	case "markdown":
		return []byte(format.NarrativeDocument(extraction.Formatted(&rec.Record))), nil
	default:
		return nil, fmt.Errorf("unknown export format %q", name)
	}
}

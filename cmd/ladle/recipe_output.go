package main

import (
	"fmt"
	"io"
	"strconv"

	"ladle/internal/format"
	"ladle/internal/recipe"
)

func printRecipeDetail(out io.Writer, rec *recipe.VideoRecipe) {
	colorize := shouldColorize(out)

	printSectionHeader(out, rec.Title, colorize)
	if rec.Channel != "" {
		fmt.Fprintf(out, "Channel:    %s\n", rec.Channel)
	}
	fmt.Fprintf(out, "URL:        %s\n", rec.VideoURL)
	if rec.TranscriptLanguage != "" {
		fmt.Fprintf(out, "Transcript: %s\n", rec.TranscriptLanguage)
	}

	if len(rec.Ingredients) > 0 {
		fmt.Fprintln(out)
		printSectionHeader(out, "Ingredients", colorize)
		for _, ingredient := range rec.Ingredients {
			fmt.Fprintf(out, "  - %s\n", ingredient)
		}
	}

	if len(rec.Steps) > 0 {
		fmt.Fprintln(out)
		printSectionHeader(out, "Steps", colorize)
		fmt.Fprintln(out, renderTable(
			[]string{"#", "Time", "Action", "Description"},
			buildStepRows(rec.Steps),
			0,
		))
		summary := format.Summarize(rec.Steps)
		fmt.Fprintf(out, "%d steps, %d action types, final step at %s\n",
			summary.StepCount, summary.ActionTypes, summary.TotalTime)
	}
}

func buildStepRows(steps []recipe.Step) [][]string {
	entries := format.Timeline(steps)
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []string{
			strconv.Itoa(entry.StepNumber),
			entry.Timestamp,
			entry.Action,
			entry.Description,
		})
	}
	return rows
}

package format

import (
	"slices"

	"ladle/internal/recipe"
)

// primaryActions is the fixed allow-list behind the quick-jump index. Only
// the first occurrence of each listed action earns an entry.
var primaryActions = []string{"切る", "炒める", "煮る", "焼く", "揚げる"}

// Chapter is a maximal run of consecutive same-action steps.
type Chapter struct {
	Title string `json:"title"`
	Start string `json:"start"`
	Steps []int  `json:"steps"`
}

// QuickJumpEntry points at the first step performing a primary action.
type QuickJumpEntry struct {
	Action     string `json:"action"`
	Timestamp  string `json:"timestamp"`
	Seconds    int    `json:"timestamp_seconds"`
	StepNumber int    `json:"step_number"`
}

// FrontendRecipe is the navigation-oriented variant of the structured record.
type FrontendRecipe struct {
	Recipe
	Chapters  []Chapter        `json:"chapters"`
	QuickJump []QuickJumpEntry `json:"quick_jump"`
}

// ForFrontend assembles the structured record together with its navigation
// metadata.
func ForFrontend(videoURL, title string, steps []recipe.Step, metadata map[string]string) FrontendRecipe {
	return FrontendRecipe{
		Recipe:    Format(videoURL, title, steps, metadata),
		Chapters:  Chapters(steps),
		QuickJump: QuickJump(steps),
	}
}

// Chapters groups consecutive same-action steps; a new chapter starts exactly
// where the action label changes.
func Chapters(steps []recipe.Step) []Chapter {
	var chapters []Chapter
	for _, step := range steps {
		if len(chapters) == 0 || chapters[len(chapters)-1].Title != step.Action {
			chapters = append(chapters, Chapter{Title: step.Action, Start: step.Timestamp})
		}
		last := &chapters[len(chapters)-1]
		last.Steps = append(last.Steps, step.Number)
	}
	return chapters
}

// QuickJump indexes the first occurrence of each primary action, in
// first-occurrence order.
func QuickJump(steps []recipe.Step) []QuickJumpEntry {
	var entries []QuickJumpEntry
	seen := map[string]struct{}{}
	for _, step := range steps {
		if !slices.Contains(primaryActions, step.Action) {
			continue
		}
		if _, ok := seen[step.Action]; ok {
			continue
		}
		seen[step.Action] = struct{}{}
		entries = append(entries, QuickJumpEntry{
			Action:     step.Action,
			Timestamp:  step.Timestamp,
			Seconds:    step.Seconds,
			StepNumber: step.Number,
		})
	}
	return entries
}

package format

import (
	"time"

	"ladle/internal/recipe"
)

// Summary aggregates display statistics for a step sequence.
type Summary struct {
	TotalTime        string `json:"total_time"`
	TotalTimeSeconds int    `json:"total_time_seconds"`
	StepCount        int    `json:"step_count"`
	ActionTypes      int    `json:"action_types"`
}

// TimelineEntry is a flat, display-ready projection of one step.
type TimelineEntry struct {
	Timestamp   string `json:"timestamp"`
	Seconds     int    `json:"timestamp_seconds"`
	Action      string `json:"action"`
	Description string `json:"description"`
	StepNumber  int    `json:"step_number"`
}

// Recipe is the structured record assembled from a classified step sequence.
type Recipe struct {
	VideoURL     string            `json:"video_url"`
	Title        string            `json:"title"`
	TotalSteps   int               `json:"total_steps"`
	GeneratedAt  string            `json:"generated_at"`
	Steps        []recipe.Step     `json:"steps"`
	Summary      Summary           `json:"summary"`
	Timeline     []TimelineEntry   `json:"timeline"`
	ActionsCount map[string]int    `json:"actions_count"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// Format assembles the structured record for a step sequence. metadata may be
// nil; it is echoed into the record untouched.
func Format(videoURL, title string, steps []recipe.Step, metadata map[string]string) Recipe {
	return Recipe{
		VideoURL:     videoURL,
		Title:        title,
		TotalSteps:   len(steps),
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
		Steps:        steps,
		Summary:      Summarize(steps),
		Timeline:     Timeline(steps),
		ActionsCount: CountActions(steps),
		Metadata:     metadata,
	}
}

// Summarize derives the headline statistics of a step sequence. The total
// time is the timestamp of the last step, or zero when there are none.
func Summarize(steps []recipe.Step) Summary {
	summary := Summary{
		TotalTime:   recipe.FormatTimestamp(0),
		StepCount:   len(steps),
		ActionTypes: len(CountActions(steps)),
	}
	if len(steps) > 0 {
		last := steps[len(steps)-1]
		summary.TotalTime = last.Timestamp
		summary.TotalTimeSeconds = last.Seconds
	}
	return summary
}

// Timeline projects steps into flat display entries, in step order.
func Timeline(steps []recipe.Step) []TimelineEntry {
	if len(steps) == 0 {
		return nil
	}
	entries := make([]TimelineEntry, 0, len(steps))
	for _, step := range steps {
		entries = append(entries, TimelineEntry{
			Timestamp:   step.Timestamp,
			Seconds:     step.Seconds,
			Action:      step.Action,
			Description: step.Description,
			StepNumber:  step.Number,
		})
	}
	return entries
}

// CountActions tallies how often each action label occurs.
func CountActions(steps []recipe.Step) map[string]int {
	counts := make(map[string]int, len(steps))
	for _, step := range steps {
		counts[step.Action]++
	}
	return counts
}

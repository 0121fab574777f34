package format_test

import (
	"testing"
	"time"

	"ladle/internal/format"
	"ladle/internal/recipe"
)

func sampleSteps() []recipe.Step {
	return []recipe.Step{
		recipe.NewStep(1, 15, "切る", "玉ねぎを薄切りにします", 0.8),
		recipe.NewStep(2, 45, "切る", "にんじんを切ります", 0.7),
		recipe.NewStep(3, 90, "炒める", "フライパンで炒めます", 0.7),
		recipe.NewStep(4, 150, "煮る", "だしで煮ます", 0.8),
		recipe.NewStep(5, 300, "盛り付け", "器に盛り付けます", 0.9),
	}
}

func TestFormat(t *testing.T) {
	steps := sampleSteps()
	metadata := map[string]string{"channel": "料理チャンネル"}

	record := format.Format("https://www.youtube.com/watch?v=abc123def45", "肉じゃが", steps, metadata)

	if record.TotalSteps != 5 {
		t.Errorf("expected 5 total steps, got %d", record.TotalSteps)
	}
	if record.Title != "肉じゃが" {
		t.Errorf("unexpected title %q", record.Title)
	}
	if record.Metadata["channel"] != "料理チャンネル" {
		t.Errorf("metadata not echoed: %v", record.Metadata)
	}
	if _, err := time.Parse(time.RFC3339, record.GeneratedAt); err != nil {
		t.Errorf("generated_at not RFC3339: %q", record.GeneratedAt)
	}

	if record.Summary.TotalTime != "00:05:00" || record.Summary.TotalTimeSeconds != 300 {
		t.Errorf("unexpected summary time: %+v", record.Summary)
	}
	if record.Summary.StepCount != 5 || record.Summary.ActionTypes != 4 {
		t.Errorf("unexpected summary counts: %+v", record.Summary)
	}

	if len(record.Timeline) != 5 {
		t.Fatalf("expected 5 timeline entries, got %d", len(record.Timeline))
	}
	first := record.Timeline[0]
	if first.Timestamp != "00:00:15" || first.Action != "切る" || first.StepNumber != 1 {
		t.Errorf("unexpected first timeline entry: %+v", first)
	}

	wantCounts := map[string]int{"切る": 2, "炒める": 1, "煮る": 1, "盛り付け": 1}
	if len(record.ActionsCount) != len(wantCounts) {
		t.Fatalf("unexpected action counts: %v", record.ActionsCount)
	}
	for action, count := range wantCounts {
		if record.ActionsCount[action] != count {
			t.Errorf("action %q: expected %d, got %d", action, count, record.ActionsCount[action])
		}
	}
}

func TestSummarizeEmpty(t *testing.T) {
	summary := format.Summarize(nil)
	if summary.TotalTime != "00:00:00" {
		t.Errorf("expected zero total time, got %q", summary.TotalTime)
	}
	if summary.TotalTimeSeconds != 0 || summary.StepCount != 0 || summary.ActionTypes != 0 {
		t.Errorf("expected zeroed summary, got %+v", summary)
	}
}

func TestTimelineEmpty(t *testing.T) {
	if entries := format.Timeline(nil); entries != nil {
		t.Fatalf("expected nil timeline, got %v", entries)
	}
}

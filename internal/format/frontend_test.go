package format_test

import (
	"testing"

	"ladle/internal/format"
	"ladle/internal/recipe"
)

func TestChapters(t *testing.T) {
	chapters := format.Chapters(sampleSteps())
	if len(chapters) != 4 {
		t.Fatalf("expected 4 chapters, got %d: %+v", len(chapters), chapters)
	}

	first := chapters[0]
	if first.Title != "切る" || first.Start != "00:00:15" {
		t.Errorf("unexpected first chapter: %+v", first)
	}
	if len(first.Steps) != 2 || first.Steps[0] != 1 || first.Steps[1] != 2 {
		t.Errorf("expected first chapter to span steps 1 and 2, got %v", first.Steps)
	}
	if chapters[1].Title != "炒める" || chapters[2].Title != "煮る" || chapters[3].Title != "盛り付け" {
		t.Errorf("unexpected chapter order: %+v", chapters)
	}
}

func TestChaptersSplitOnActionChange(t *testing.T) {
	steps := []recipe.Step{
		recipe.NewStep(1, 10, "切る", "a", 0.8),
		recipe.NewStep(2, 60, "炒める", "b", 0.7),
		recipe.NewStep(3, 120, "切る", "c", 0.8),
	}

	chapters := format.Chapters(steps)
	if len(chapters) != 3 {
		t.Fatalf("expected a returning action to open a new chapter, got %d", len(chapters))
	}
	if chapters[0].Title != "切る" || chapters[2].Title != "切る" {
		t.Errorf("unexpected chapter titles: %+v", chapters)
	}
}

func TestQuickJump(t *testing.T) {
	entries := format.QuickJump(sampleSteps())
	if len(entries) != 3 {
		t.Fatalf("expected 3 quick-jump entries, got %d: %+v", len(entries), entries)
	}

	// First occurrence only: the second 切る step does not appear.
	if entries[0].Action != "切る" || entries[0].StepNumber != 1 || entries[0].Seconds != 15 {
		t.Errorf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].Action != "炒める" || entries[2].Action != "煮る" {
		t.Errorf("unexpected entry order: %+v", entries)
	}
}

func TestQuickJumpSkipsNonPrimaryActions(t *testing.T) {
	steps := []recipe.Step{
		recipe.NewStep(1, 10, "盛り付け", "盛り付けます", 0.9),
		recipe.NewStep(2, 20, "その他", "ここで一息つきます", 0.3),
	}
	if entries := format.QuickJump(steps); len(entries) != 0 {
		t.Fatalf("expected no quick-jump entries, got %+v", entries)
	}
}

func TestForFrontend(t *testing.T) {
	record := format.ForFrontend("https://youtu.be/abc123def45", "肉じゃが", sampleSteps(), nil)
	if record.TotalSteps != 5 {
		t.Errorf("expected embedded record, got %+v", record.Recipe)
	}
	if len(record.Chapters) != 4 || len(record.QuickJump) != 3 {
		t.Errorf("expected navigation metadata, got %d chapters and %d jumps", len(record.Chapters), len(record.QuickJump))
	}
}

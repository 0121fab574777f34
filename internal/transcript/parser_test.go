package transcript_test

import (
	"testing"

	"ladle/internal/recipe"
	"ladle/internal/transcript"
)

func TestParseRecipe(t *testing.T) {
	parser := transcript.NewParser(nil)

	text := "肉じゃがの作り方です。2人分。調理時間: 30分\n玉ねぎ 200g、にんじん 1本"
	cues := []recipe.Cue{
		{Text: "まず玉ねぎを薄切りにします", Start: 15, Duration: 5},
		{Text: "次にフライパンで炒めます", Start: 45, Duration: 5},
	}

	result := parser.ParseRecipe(text, cues)
	if len(result.Ingredients) != 2 {
		t.Fatalf("expected 2 ingredients, got %v", result.Ingredients)
	}
	if len(result.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(result.Steps))
	}
	if result.Servings != "2人分" {
		t.Errorf("expected servings 2人分, got %q", result.Servings)
	}
	if result.CookingTime != "30分" {
		t.Errorf("expected cooking time 30分, got %q", result.CookingTime)
	}
}

func TestParseRecipePartialFields(t *testing.T) {
	parser := transcript.NewParser(nil)

	// No text means no ingredients, servings, or cooking time, but the cue
	// sequence still yields steps.
	result := parser.ParseRecipe("", []recipe.Cue{
		{Text: "まず米を研ぎます", Start: 0, Duration: 4},
	})
	if len(result.Ingredients) != 0 {
		t.Errorf("expected no ingredients, got %v", result.Ingredients)
	}
	if len(result.Steps) != 1 {
		t.Errorf("expected 1 step, got %d", len(result.Steps))
	}
	if result.Servings != "" || result.CookingTime != "" {
		t.Errorf("expected empty servings and cooking time, got %q and %q", result.Servings, result.CookingTime)
	}

	// And the inverse: text-only input still yields the text fields.
	result = parser.ParseRecipe("カレー 4人分 じゃがいも 3個", nil)
	if len(result.Ingredients) != 1 {
		t.Errorf("expected 1 ingredient, got %v", result.Ingredients)
	}
	if len(result.Steps) != 0 {
		t.Errorf("expected no steps, got %d", len(result.Steps))
	}
	if result.Servings != "4人分" {
		t.Errorf("expected servings 4人分, got %q", result.Servings)
	}
}

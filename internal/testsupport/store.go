package testsupport

import (
	"context"
	"testing"
	"time"

	"ladle/internal/config"
	"ladle/internal/recipe"
	"ladle/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// SeedRecipe saves a sample extraction record for tests using the provided store.
func SeedRecipe(t testing.TB, st *store.Store, videoID, title string) *store.Recipe {
	t.Helper()

	saved, err := st.SaveRecipe(context.Background(), SampleRecipe(videoID, title))
	if err != nil {
		t.Fatalf("store.SaveRecipe: %v", err)
	}
	return saved
}

// SampleRecipe builds a small extraction record that passes validation.
func SampleRecipe(videoID, title string) *recipe.VideoRecipe {
	return &recipe.VideoRecipe{
		VideoID:     videoID,
		VideoURL:    "https://www.youtube.com/watch?v=" + videoID,
		Title:       title,
		Channel:     "テストキッチン",
		Ingredients: []string{"玉ねぎ 1個", "豚肉 200g"},
		Steps: []recipe.Step{
			recipe.NewStep(1, 15, "切る", "玉ねぎを切ります", 0.7),
			recipe.NewStep(2, 80, "炒める", "豚肉を炒めます", 0.8),
		},
		HasTranscript:      true,
		TranscriptLanguage: "ja",
		ExtractedAt:        time.Now().UTC(),
	}
}

package extraction_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"ladle/internal/extraction"
	"ladle/internal/recipe"
	"ladle/internal/services"
	"ladle/internal/services/captions"
	"ladle/internal/services/youtube"
)

const testURL = "https://www.youtube.com/watch?v=abc123DEF45"

type fakeMetadata struct {
	video *youtube.Video
	err   error
	calls int
}

func (f *fakeMetadata) Video(ctx context.Context, videoID string) (*youtube.Video, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	video := *f.video
	video.ID = videoID
	return &video, nil
}

type fakeTranscripts struct {
	transcript *captions.Transcript
	err        error
}

func (f *fakeTranscripts) Fetch(ctx context.Context, videoID string, preferred []string) (*captions.Transcript, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.transcript, nil
}

func TestExtractBuildsRecipeFromTranscript(t *testing.T) {
	metadata := &fakeMetadata{video: &youtube.Video{
		Title:           "【簡単】　肉じゃが　Ｐａｒｔ１",
		Description:     "じゃがいも 300g、牛肉 200g を使います。4人分です。調理時間は20分です。",
		Channel:         "Kitchen Channel",
		DurationSeconds: 630,
		ThumbnailURL:    "https://img.example/high.jpg",
	}}
	transcripts := &fakeTranscripts{transcript: &captions.Transcript{
		Language: "ja",
		Cues: []recipe.Cue{
			{Text: "まず玉ねぎを薄切りにします", Start: 15, Duration: 4},
			{Text: "フライパンで玉ねぎを炒めます", Start: 45, Duration: 5},
		},
	}}

	extractor := extraction.New(metadata, transcripts, extraction.Options{})
	rec, err := extractor.Extract(context.Background(), testURL)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	if rec.VideoID != "abc123DEF45" || rec.VideoURL != testURL {
		t.Fatalf("unexpected identity: %q %q", rec.VideoID, rec.VideoURL)
	}
	if rec.Title != "【簡単】 肉じゃが Part1" {
		t.Fatalf("expected normalized title, got %q", rec.Title)
	}
	if !rec.HasTranscript || rec.TranscriptLanguage != "ja" {
		t.Fatalf("unexpected transcript metadata: %v %q", rec.HasTranscript, rec.TranscriptLanguage)
	}
	if len(rec.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %#v", rec.Steps)
	}
	if rec.Steps[0].Action != "切る" || rec.Steps[0].Timestamp != "00:00:15" {
		t.Fatalf("unexpected first step: %+v", rec.Steps[0])
	}
	if rec.Steps[1].Action != "炒める" || rec.Steps[1].Timestamp != "00:00:45" {
		t.Fatalf("unexpected second step: %+v", rec.Steps[1])
	}
	if len(rec.Ingredients) != 2 || rec.Ingredients[0] != "じゃがいも 300g" || rec.Ingredients[1] != "牛肉 200g" {
		t.Fatalf("unexpected ingredients: %#v", rec.Ingredients)
	}
	if rec.Servings != "4人分" || rec.CookingTime != "20分" {
		t.Fatalf("unexpected details: %q %q", rec.Servings, rec.CookingTime)
	}
	if err := rec.Validate(); err != nil {
		t.Fatalf("recipe failed validation: %v", err)
	}
}

func TestExtractFallsBackToDescription(t *testing.T) {
	metadata := &fakeMetadata{video: &youtube.Video{
		Title:       "肉じゃがの作り方",
		Description: "レシピはこちら\n00:00:10 玉ねぎを切ります\n00:01:00 弱火で煮込みます\n材料: 玉ねぎ 2個",
	}}
	transcripts := &fakeTranscripts{err: fmt.Errorf("video abc: %w", captions.ErrNoTranscript)}

	extractor := extraction.New(metadata, transcripts, extraction.Options{})
	rec, err := extractor.Extract(context.Background(), testURL)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	if rec.HasTranscript || rec.TranscriptLanguage != "" {
		t.Fatalf("expected description-only extraction, got %v %q", rec.HasTranscript, rec.TranscriptLanguage)
	}
	if len(rec.Steps) != 2 {
		t.Fatalf("expected 2 steps from timestamped description lines, got %#v", rec.Steps)
	}
	if rec.Steps[0].Action != "切る" || rec.Steps[0].Seconds != 10 {
		t.Fatalf("unexpected first step: %+v", rec.Steps[0])
	}
	if rec.Steps[1].Action != "煮る" || rec.Steps[1].Seconds != 60 {
		t.Fatalf("unexpected second step: %+v", rec.Steps[1])
	}
	if len(rec.Ingredients) != 1 || rec.Ingredients[0] != "玉ねぎ 2個" {
		t.Fatalf("unexpected ingredients: %#v", rec.Ingredients)
	}
}

func TestExtractMergesAdjacentSameActionSteps(t *testing.T) {
	metadata := &fakeMetadata{video: &youtube.Video{Title: "下ごしらえ"}}
	transcripts := &fakeTranscripts{transcript: &captions.Transcript{
		Language: "ja",
		Cues: []recipe.Cue{
			{Text: "まず鶏肉を切ります", Start: 10},
			{Text: "次ににんじんを切ります", Start: 15},
		},
	}}

	extractor := extraction.New(metadata, transcripts, extraction.Options{})
	rec, err := extractor.Extract(context.Background(), testURL)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if len(rec.Steps) != 1 {
		t.Fatalf("expected merged step, got %#v", rec.Steps)
	}
	step := rec.Steps[0]
	if step.Seconds != 10 || step.Action != "切る" {
		t.Fatalf("unexpected merged step: %+v", step)
	}
	if step.Description != "まず鶏肉を切ります 次ににんじんを切ります" {
		t.Fatalf("unexpected merged description: %q", step.Description)
	}
}

func TestExtractVideoUnavailable(t *testing.T) {
	metadata := &fakeMetadata{err: fmt.Errorf("video abc: %w", youtube.ErrVideoUnavailable)}
	transcripts := &fakeTranscripts{}

	extractor := extraction.New(metadata, transcripts, extraction.Options{})
	_, err := extractor.Extract(context.Background(), testURL)
	if err == nil {
		t.Fatal("expected error for unavailable video")
	}
	var extErr *extraction.Error
	if !errors.As(err, &extErr) || extErr.Stage != "metadata" {
		t.Fatalf("expected metadata-stage error, got %v", err)
	}
	if !errors.Is(err, youtube.ErrVideoUnavailable) || !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found classification, got %v", err)
	}
}

func TestExtractRejectsUnsupportedURL(t *testing.T) {
	metadata := &fakeMetadata{video: &youtube.Video{Title: "x"}}
	transcripts := &fakeTranscripts{}

	extractor := extraction.New(metadata, transcripts, extraction.Options{})
	_, err := extractor.Extract(context.Background(), "https://vimeo.com/123456")
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if metadata.calls != 0 {
		t.Fatalf("metadata collaborator should not be called, got %d calls", metadata.calls)
	}
}

func TestFrontendProjection(t *testing.T) {
	rec := &recipe.VideoRecipe{
		VideoID:  "abc123DEF45",
		VideoURL: testURL,
		Title:    "肉じゃが",
		Channel:  "Kitchen Channel",
		Servings: "4人分",
		Steps: []recipe.Step{
			recipe.NewStep(1, 10, "切る", "玉ねぎを切る", 0.7),
			recipe.NewStep(2, 40, "炒める", "玉ねぎを炒める", 0.7),
		},
	}

	frontend := extraction.Frontend(rec)
	if frontend.TotalSteps != 2 {
		t.Fatalf("unexpected total steps: %d", frontend.TotalSteps)
	}
	if len(frontend.Chapters) != 2 || frontend.Chapters[0].Title != "切る" {
		t.Fatalf("unexpected chapters: %#v", frontend.Chapters)
	}
	if frontend.Metadata["channel"] != "Kitchen Channel" || frontend.Metadata["servings"] != "4人分" {
		t.Fatalf("unexpected metadata: %#v", frontend.Metadata)
	}
}

package format_test

import (
	"reflect"
	"strings"
	"testing"

	"ladle/internal/format"
	"ladle/internal/recipe"
)

func TestSubtitleTrack(t *testing.T) {
	steps := []recipe.Step{
		recipe.NewStep(1, 15, "切る", "玉ねぎを薄切りにします", 0.8),
		recipe.NewStep(2, 45, "炒める", "フライパンで炒めます", 0.7),
	}

	want := "1\n" +
		"00:00:15,000 --> 00:00:45,000\n" +
		"[切る] 玉ねぎを薄切りにします\n" +
		"\n" +
		"2\n" +
		"00:00:45,000 --> 00:00:50,000\n" +
		"[炒める] フライパンで炒めます\n"

	if got := format.SubtitleTrack(steps); got != want {
		t.Fatalf("unexpected track:\n%q\nwant:\n%q", got, want)
	}
}

func TestSubtitleTrackEmpty(t *testing.T) {
	if got := format.SubtitleTrack(nil); got != "" {
		t.Fatalf("expected empty track, got %q", got)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	record := format.Format(
		"https://www.youtube.com/watch?v=abc123def45",
		"肉じゃが",
		sampleSteps(),
		map[string]string{"channel": "料理チャンネル", "video_id": "abc123def45"},
	)

	data, err := format.ExportJSON(record)
	if err != nil {
		t.Fatalf("ExportJSON returned error: %v", err)
	}

	restored, err := format.ImportJSON(data)
	if err != nil {
		t.Fatalf("ImportJSON returned error: %v", err)
	}
	if !reflect.DeepEqual(restored, record) {
		t.Fatalf("round trip changed the record:\ngot  %+v\nwant %+v", restored, record)
	}
}

func TestImportJSONRejectsGarbage(t *testing.T) {
	if _, err := format.ImportJSON([]byte("{not json")); err == nil {
		t.Fatal("expected error for malformed input")
	}
}

func TestNarrativeDocument(t *testing.T) {
	record := format.Format("https://youtu.be/abc123def45", "肉じゃが", sampleSteps(), nil)

	doc := format.NarrativeDocument(record)
	if !strings.HasPrefix(doc, "# 肉じゃが\n") {
		t.Errorf("expected title heading, got %q", doc)
	}
	if !strings.Contains(doc, "手順数: 5 / 合計時間: 00:05:00") {
		t.Errorf("expected summary line, got %q", doc)
	}
	if !strings.Contains(doc, "1. [00:00:15] 切る: 玉ねぎを薄切りにします") {
		t.Errorf("expected numbered step line, got %q", doc)
	}
}

func TestNarrativeDocumentUntitled(t *testing.T) {
	doc := format.NarrativeDocument(format.Format("", "", nil, nil))
	if !strings.HasPrefix(doc, "# レシピ\n") {
		t.Errorf("expected fallback title, got %q", doc)
	}
}

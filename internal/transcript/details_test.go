package transcript_test

import (
	"testing"

	"ladle/internal/transcript"
)

func TestExtractServings(t *testing.T) {
	cases := []struct {
		text  string
		want  string
		found bool
	}{
		{"2人分のレシピです", "2人分", true},
		{"４人前を想定しています", "4人分", true},
		{"たっぷり作ります", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, found := transcript.ExtractServings(tc.text)
		if found != tc.found || got != tc.want {
			t.Errorf("ExtractServings(%q) = %q, %v; want %q, %v", tc.text, got, found, tc.want, tc.found)
		}
	}
}

func TestExtractCookingTime(t *testing.T) {
	cases := []struct {
		text  string
		want  string
		found bool
	}{
		{"調理時間: 30分", "30分", true},
		{"調理時間：１５分です", "15分", true},
		{"所要時間 45分", "45分", true},
		{"弱火で10分煮込みます", "10分", true},
		{"あと5分で出かけます", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, found := transcript.ExtractCookingTime(tc.text)
		if found != tc.found || got != tc.want {
			t.Errorf("ExtractCookingTime(%q) = %q, %v; want %q, %v", tc.text, got, found, tc.want, tc.found)
		}
	}
}

func TestExtractCookingTimePrefersLabeledDuration(t *testing.T) {
	got, found := transcript.ExtractCookingTime("5分炒めます。調理時間は合計20分です")
	if !found || got != "20分" {
		t.Fatalf("expected labeled duration 20分, got %q (found=%v)", got, found)
	}
}

package actions_test

import (
	"testing"

	"ladle/internal/actions"
)

func TestParseTimestamp(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		want  int
		found bool
	}{
		{name: "clock full", text: "00:01:30", want: 90, found: true},
		{name: "clock full with hours", text: "01:02:03 煮込み開始", want: 3723, found: true},
		{name: "clock short", text: "5:30 あたりをご覧ください", want: 330, found: true},
		{name: "japanese minutes seconds", text: "1分30秒", want: 90, found: true},
		{name: "japanese minutes", text: "3分ほど待ちます", want: 180, found: true},
		{name: "japanese seconds", text: "45秒加熱します", want: 45, found: true},
		{name: "no reference", text: "no time here", found: false},
		{name: "empty", text: "", found: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, found := actions.ParseTimestamp(tc.text)
			if found != tc.found {
				t.Fatalf("expected found=%v, got %v", tc.found, found)
			}
			if found && got != tc.want {
				t.Fatalf("expected %d seconds, got %d", tc.want, got)
			}
		})
	}
}

func TestParseTimestampPrefersClockForm(t *testing.T) {
	// A line can carry both a clock marker and a spoken duration; the
	// clock marker anchors the step.
	got, found := actions.ParseTimestamp("00:02:00 ここから3分煮ます")
	if !found || got != 120 {
		t.Fatalf("expected 120 seconds, got %d (found=%v)", got, found)
	}
}

func TestRemoveTimestamps(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"00:00:15 玉ねぎを薄切りにします", "玉ねぎを薄切りにします"},
		{"1分30秒煮ます", "煮ます"},
		{"5:30 から 7:00 まで", "から まで"},
		{"タイムなし", "タイムなし"},
		{"  00:01:00  ", ""},
	}
	for _, tc := range cases {
		if got := actions.RemoveTimestamps(tc.text); got != tc.want {
			t.Errorf("RemoveTimestamps(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}

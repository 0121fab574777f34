package actions_test

import (
	"strings"
	"testing"

	"ladle/internal/actions"
)

func TestDetect(t *testing.T) {
	cases := []struct {
		name       string
		text       string
		wantAction string
		wantConf   float64
	}{
		{name: "specific cut phrase", text: "玉ねぎをみじん切りにします", wantAction: "切る", wantConf: 1.0},
		{name: "thin slice", text: "玉ねぎを薄切りにします", wantAction: "切る", wantConf: 0.8},
		{name: "fry", text: "フライパンで玉ねぎを炒めます", wantAction: "炒める", wantConf: 0.7},
		{name: "simmer", text: "10分ほど煮込みます", wantAction: "煮る", wantConf: 0.8},
		{name: "bake", text: "オーブンで焼きます", wantAction: "焼く", wantConf: 0.7},
		{name: "marinate", text: "30分マリネにします", wantAction: "漬ける", wantConf: 0.8},
		{name: "plate", text: "皿に盛りましょう", wantAction: "盛り付け", wantConf: 0.8},
		{name: "no keyword", text: "今日はいい天気ですね", wantAction: actions.ActionOther, wantConf: 0.3},
		{name: "empty", text: "", wantAction: actions.ActionOther, wantConf: 0.3},
		{name: "whitespace only", text: "   ", wantAction: actions.ActionOther, wantConf: 0.3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			action, confidence := actions.Detect(tc.text)
			if action != tc.wantAction {
				t.Fatalf("expected action %q, got %q", tc.wantAction, action)
			}
			if confidence != tc.wantConf {
				t.Fatalf("expected confidence %v, got %v", tc.wantConf, confidence)
			}
		})
	}
}

func TestDetectTableOrderBreaksTies(t *testing.T) {
	// 炒めて煮る carries both a fry and a boil keyword; the table lists
	// 炒める first, so it must win on every invocation.
	for i := 0; i < 5; i++ {
		action, _ := actions.Detect("炒めて煮る")
		if action != "炒める" {
			t.Fatalf("expected 炒める, got %q", action)
		}
	}
}

func TestDetectConfidenceBounds(t *testing.T) {
	inputs := []string{
		"玉ねぎをみじん切りにして、フライパンで炒めてから鍋で煮込みます",
		"no cooking words at all",
		"",
		"12345 67890",
		strings.Repeat("切る", 200),
		"盛り付けて完成です",
	}
	for _, text := range inputs {
		if _, confidence := actions.Detect(text); confidence < 0 || confidence > 1 {
			t.Errorf("Detect(%q) confidence %v outside [0, 1]", text, confidence)
		}
	}
}

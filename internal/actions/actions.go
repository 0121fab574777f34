package actions

import (
	"strings"
	"unicode/utf8"
)

// ActionOther is the fallback label for text with no recognized keyword.
const ActionOther = "その他"

// otherConfidence is the score assigned alongside ActionOther.
const otherConfidence = 0.3

type actionPattern struct {
	label    string
	keywords []string
}

// actionTable is scanned top to bottom and each keyword list front to back;
// the first containment hit decides both label and confidence. Table order is
// part of the observable contract (炒めて煮る classifies as 炒める), so new
// entries go at the end and new keywords never get inserted above an
// established one. Longer keywords sit first within a list so the most
// specific phrasing supplies the confidence.
var actionTable = []actionPattern{
	{label: "切る", keywords: []string{"みじん切り", "薄切り", "千切り", "輪切り", "乱切り", "カット", "刻む", "刻ん", "切る", "切り", "切っ"}},
	{label: "炒める", keywords: []string{"炒める", "炒め", "ソテー"}},
	{label: "煮る", keywords: []string{"煮込む", "煮込み", "煮詰め", "煮る", "煮て", "煮ま", "茹でる", "茹で", "ゆでる", "ゆがく"}},
	{label: "混ぜる", keywords: []string{"かき混ぜ", "混ぜ合わせ", "混ぜる", "混ぜ", "和える", "和え"}},
	{label: "加える", keywords: []string{"加える", "加え", "入れる", "入れて", "入れ", "投入"}},
	{label: "焼く", keywords: []string{"焼き上げ", "焼く", "焼き", "焼い", "グリル"}},
	{label: "揚げる", keywords: []string{"素揚げ", "唐揚げ", "から揚げ", "揚げる", "揚げ"}},
	{label: "蒸す", keywords: []string{"蒸し器", "蒸す", "蒸し", "せいろ"}},
	{label: "漬ける", keywords: []string{"漬け込む", "漬ける", "漬け", "マリネ", "浸す", "浸け"}},
	{label: "盛り付け", keywords: []string{"盛り付ける", "盛り付け", "盛りつけ", "皿に盛", "盛る", "盛っ"}},
}

// Detect assigns a cooking-action label and a confidence in [0, 1] to a text
// fragment. Confidence is derived from the matched keyword's rune length,
// capped at 1.0; text with no keyword classifies as ActionOther at 0.3.
func Detect(text string) (string, float64) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ActionOther, otherConfidence
	}
	for _, entry := range actionTable {
		for _, keyword := range entry.keywords {
			if strings.Contains(trimmed, keyword) {
				return entry.label, keywordConfidence(keyword)
			}
		}
	}
	return ActionOther, otherConfidence
}

func keywordConfidence(keyword string) float64 {
	return min(1.0, float64(utf8.RuneCountInString(keyword))/10+0.5)
}

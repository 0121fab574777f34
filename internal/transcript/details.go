package transcript

import "regexp"

// Serving counts appear as N人分 or N人前; both canonicalize to N人分.
var servingsPatterns = []*regexp.Regexp{
	regexp.MustCompile(`([0-9０-９]+)\s*人分`),
	regexp.MustCompile(`([0-9０-９]+)\s*人前`),
}

// Cooking durations are either labeled outright or spoken as "N分" right
// before a cooking verb. Labeled forms win.
var cookingTimePatterns = []*regexp.Regexp{
	regexp.MustCompile(`調理時間[^\d０-９]{0,5}([0-9０-９]+)\s*分`),
	regexp.MustCompile(`所要時間[^\d０-９]{0,5}([0-9０-９]+)\s*分`),
	regexp.MustCompile(`([0-9０-９]+)\s*分(?:ほど|くらい|程度)?(?:煮|焼|炒|茹|蒸|漬|加熱|調理)`),
}

// ExtractServings returns the canonical serving count mentioned in text, or
// false when no pattern matches.
func ExtractServings(text string) (string, bool) {
	for _, pattern := range servingsPatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			return normalizeDigits(m[1]) + "人分", true
		}
	}
	return "", false
}

// ExtractCookingTime returns the canonical cooking duration mentioned in
// text, or false when no pattern matches.
func ExtractCookingTime(text string) (string, bool) {
	for _, pattern := range cookingTimePatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			return normalizeDigits(m[1]) + "分", true
		}
	}
	return "", false
}

package actions

import (
	"regexp"
	"strconv"
	"strings"
)

// Timestamp forms are tried in this order; the clock forms go first so the
// MM:SS pattern never claims the front of an HH:MM:SS value, and 分秒 goes
// before its single-unit variants for the same reason.
var (
	clockFullPattern  = regexp.MustCompile(`(\d{1,2}):(\d{2}):(\d{2})`)
	clockShortPattern = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
	minSecPattern     = regexp.MustCompile(`(\d+)分(\d+)秒`)
	minPattern        = regexp.MustCompile(`(\d+)分`)
	secPattern        = regexp.MustCompile(`(\d+)秒`)

	whitespaceRun = regexp.MustCompile(`\s+`)
)

// ParseTimestamp extracts the first time reference in text and returns it as
// a second offset. Clock forms (HH:MM:SS, MM:SS) are preferred over the
// Japanese spoken forms (N分M秒, N分, N秒). The second return is false when
// text carries no recognizable time reference.
func ParseTimestamp(text string) (int, bool) {
	if m := clockFullPattern.FindStringSubmatch(text); m != nil {
		return toInt(m[1])*3600 + toInt(m[2])*60 + toInt(m[3]), true
	}
	if m := clockShortPattern.FindStringSubmatch(text); m != nil {
		return toInt(m[1])*60 + toInt(m[2]), true
	}
	if m := minSecPattern.FindStringSubmatch(text); m != nil {
		return toInt(m[1])*60 + toInt(m[2]), true
	}
	if m := minPattern.FindStringSubmatch(text); m != nil {
		return toInt(m[1]) * 60, true
	}
	if m := secPattern.FindStringSubmatch(text); m != nil {
		return toInt(m[1]), true
	}
	return 0, false
}

// RemoveTimestamps strips every recognized time reference from text and
// collapses the whitespace left behind.
func RemoveTimestamps(text string) string {
	cleaned := clockFullPattern.ReplaceAllString(text, "")
	cleaned = clockShortPattern.ReplaceAllString(cleaned, "")
	cleaned = minSecPattern.ReplaceAllString(cleaned, "")
	cleaned = minPattern.ReplaceAllString(cleaned, "")
	cleaned = secPattern.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(cleaned, " "))
}

func toInt(value string) int {
	n, _ := strconv.Atoi(value)
	return n
}

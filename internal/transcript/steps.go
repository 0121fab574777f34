package transcript

import (
	"strings"
	"unicode/utf8"

	"ladle/internal/recipe"
)

// fallbackSegmentSeconds is the fixed window used when no cue text looks like
// a step opening.
const fallbackSegmentSeconds = 30

// minSegmentRunes rejects segments whose combined text is filler noise.
const minSegmentRunes = 10

// The step-opening lexicon: sequencing adverbs, polite imperative endings,
// and bare cooking-verb roots. A cue matching any of these starts a new step;
// everything else extends the step that is already open.
var (
	stepAdverbs = []string{"まず", "次に", "続いて", "最後に", "それでは", "はじめに", "first", "next", "then", "finally"}
	stepEndings = []string{"ましょう", "してください", "てください"}
	stepRoots   = []string{"切", "炒", "煮", "焼", "混", "加", "揚", "蒸", "茹", "漬", "盛"}
)

// ExtractSteps walks the cue sequence and groups it into step candidates. A
// cue that matches the step-opening lexicon anchors a new step at its start
// offset; later non-opening cues are appended to that step's description.
// When nothing in the transcript matches the lexicon the fixed-window
// segmentation takes over. Output is capped at recipe.MaxSteps and carries no
// action label.
func ExtractSteps(cues []recipe.Cue) []recipe.Step {
	var steps []recipe.Step
	current := -1
	for _, cue := range cues {
		text := strings.TrimSpace(cue.Text)
		if text == "" {
			continue
		}
		if opensStep(text) {
			if len(steps) >= recipe.MaxSteps {
				break
			}
			steps = append(steps, recipe.NewStep(len(steps)+1, int(cue.Start), "", text, 0))
			current = len(steps) - 1
			continue
		}
		if current >= 0 {
			steps[current].Description += " " + text
		}
	}
	if len(steps) == 0 {
		return stepsByTimeSegments(cues)
	}
	return recipe.NormalizeSteps(steps)
}

func opensStep(text string) bool {
	lowered := strings.ToLower(text)
	for _, adverb := range stepAdverbs {
		if strings.Contains(lowered, adverb) {
			return true
		}
	}
	for _, ending := range stepEndings {
		if strings.Contains(text, ending) {
			return true
		}
	}
	for _, root := range stepRoots {
		if strings.Contains(text, root) {
			return true
		}
	}
	return false
}

// stepsByTimeSegments partitions the cue stream into fixed windows and keeps
// each window whose combined text is long enough to be a plausible step.
func stepsByTimeSegments(cues []recipe.Cue) []recipe.Step {
	var steps []recipe.Step
	segmentStart := -1
	var parts []string

	flush := func() {
		if len(parts) == 0 {
			return
		}
		text := strings.Join(parts, " ")
		parts = nil
		if utf8.RuneCountInString(text) <= minSegmentRunes {
			return
		}
		if len(steps) >= recipe.MaxSteps {
			return
		}
		steps = append(steps, recipe.NewStep(len(steps)+1, segmentStart, "", text, 0))
	}

	for _, cue := range cues {
		text := strings.TrimSpace(cue.Text)
		if text == "" {
			continue
		}
		start := int(cue.Start) / fallbackSegmentSeconds * fallbackSegmentSeconds
		if start != segmentStart {
			flush()
			segmentStart = start
		}
		parts = append(parts, text)
	}
	flush()
	return recipe.NormalizeSteps(steps)
}

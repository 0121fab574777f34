package actions

import (
	"slices"
	"strings"

	"ladle/internal/recipe"
)

// DefaultMinConfidence is the classification floor below which a transcript
// line is dropped from step generation.
const DefaultMinConfidence = 0.5

// DefaultMergeThreshold is the maximum gap in seconds across which two
// same-action steps are folded together.
const DefaultMergeThreshold = 10

// GenerateSteps scans a transcript line by line and emits one step per line
// that carries an embedded time reference and classifies at or above
// minConfidence. The time reference is stripped from the step description.
// Results are ordered by offset and numbered from 1.
func GenerateSteps(transcript string, minConfidence float64) []recipe.Step {
	var steps []recipe.Step
	for _, line := range strings.Split(transcript, "\n") {
		seconds, ok := ParseTimestamp(line)
		if !ok {
			continue
		}
		description := RemoveTimestamps(line)
		if description == "" {
			continue
		}
		action, confidence := Detect(description)
		if confidence < minConfidence {
			continue
		}
		steps = append(steps, recipe.NewStep(len(steps)+1, seconds, action, description, confidence))
	}
	return recipe.NormalizeSteps(steps)
}

// MergeSimilar folds runs of same-action steps whose offsets sit within
// threshold seconds of the run's first step. The merged step keeps the
// earliest timestamp, joins the descriptions with a space in original order,
// and takes the highest confidence of the run. Numbers are reassigned from 1
// afterwards. The input is expected in offset order and is not modified.
func MergeSimilar(steps []recipe.Step, threshold int) []recipe.Step {
	if len(steps) == 0 {
		return nil
	}
	merged := []recipe.Step{steps[0]}
	for _, step := range steps[1:] {
		last := &merged[len(merged)-1]
		if step.Action == last.Action && step.Seconds-last.Seconds <= threshold {
			last.Description = strings.TrimSpace(last.Description + " " + step.Description)
			if step.Confidence > last.Confidence {
				last.Confidence = step.Confidence
			}
			continue
		}
		merged = append(merged, step)
	}
	return recipe.NormalizeSteps(merged)
}

// FilterByAction keeps only steps whose action appears in allowed, preserving
// both order and the original step numbers.
func FilterByAction(steps []recipe.Step, allowed []string) []recipe.Step {
	var filtered []recipe.Step
	for _, step := range steps {
		if slices.Contains(allowed, step.Action) {
			filtered = append(filtered, step)
		}
	}
	return filtered
}

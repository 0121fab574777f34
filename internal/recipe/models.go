package recipe

import (
	"fmt"
	"sort"
	"time"
)

// MaxIngredients caps the ingredient list of a single recipe.
const MaxIngredients = 20

// MaxSteps caps the step list of a single recipe.
const MaxSteps = 30

// Cue is one timestamped fragment of a video transcript.
type Cue struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Step is a single cooking step anchored to a moment in the video. Timestamp
// and Seconds denote the same instant; Number is positional and reassigned
// whenever the surrounding sequence is reordered or merged.
type Step struct {
	Number      int     `json:"step_number"`
	Timestamp   string  `json:"timestamp"`
	Seconds     int     `json:"timestamp_seconds"`
	Action      string  `json:"action"`
	Description string  `json:"description"`
	Confidence  float64 `json:"confidence"`
}

// VideoRecipe is the assembled extraction result for one video.
type VideoRecipe struct {
	VideoID            string    `json:"video_id"`
	VideoURL           string    `json:"video_url"`
	Title              string    `json:"title"`
	Channel            string    `json:"channel"`
	ThumbnailURL       string    `json:"thumbnail_url,omitempty"`
	DurationSeconds    int       `json:"duration_seconds"`
	Ingredients        []string  `json:"ingredients"`
	Steps              []Step    `json:"steps"`
	Servings           string    `json:"servings,omitempty"`
	CookingTime        string    `json:"cooking_time,omitempty"`
	HasTranscript      bool      `json:"has_transcript"`
	TranscriptLanguage string    `json:"transcript_language,omitempty"`
	ExtractedAt        time.Time `json:"extracted_at"`
}

// NewStep builds a Step whose timestamp fields agree and whose confidence is
// inside [0, 1]. Negative offsets are treated as zero.
func NewStep(number, seconds int, action, description string, confidence float64) Step {
	if seconds < 0 {
		seconds = 0
	}
	return Step{
		Number:      number,
		Timestamp:   FormatTimestamp(seconds),
		Seconds:     seconds,
		Action:      action,
		Description: description,
		Confidence:  ClampConfidence(confidence),
	}
}

// FormatTimestamp renders a second offset as zero-padded HH:MM:SS.
func FormatTimestamp(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

// ClampConfidence bounds a classifier score to [0, 1].
func ClampConfidence(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}

// NormalizeSteps orders steps by second offset and reassigns contiguous step
// numbers from 1. The sort is stable so same-instant steps keep their relative
// order. The input slice is left untouched.
func NormalizeSteps(steps []Step) []Step {
	if len(steps) == 0 {
		return nil
	}
	normalized := make([]Step, len(steps))
	copy(normalized, steps)
	sort.SliceStable(normalized, func(i, j int) bool {
		return normalized[i].Seconds < normalized[j].Seconds
	})
	for i := range normalized {
		normalized[i].Number = i + 1
	}
	return normalized
}

// Validate reports the first ordering or bounds violation in the step
// sequence, or nil when the record is internally consistent.
func (r VideoRecipe) Validate() error {
	for i, step := range r.Steps {
		if step.Number != i+1 {
			return fmt.Errorf("step at position %d: number %d breaks the 1..N sequence", i+1, step.Number)
		}
		if step.Seconds < 0 {
			return fmt.Errorf("step %d: negative timestamp offset %d", step.Number, step.Seconds)
		}
		if i > 0 && step.Seconds < r.Steps[i-1].Seconds {
			return fmt.Errorf("step %d: offset %d precedes step %d", step.Number, step.Seconds, r.Steps[i-1].Number)
		}
		if step.Confidence < 0 || step.Confidence > 1 {
			return fmt.Errorf("step %d: confidence %v outside [0, 1]", step.Number, step.Confidence)
		}
		if step.Timestamp != FormatTimestamp(step.Seconds) {
			return fmt.Errorf("step %d: timestamp %q does not match offset %d", step.Number, step.Timestamp, step.Seconds)
		}
	}
	return nil
}

package format

import (
	"encoding/json"
	"fmt"
	"strings"

	"ladle/internal/recipe"
)

// subtitleTailSeconds pads the final cue, which has no successor to borrow an
// end time from.
const subtitleTailSeconds = 5

// SubtitleTrack renders the steps as an SRT track. Each cue runs from its
// step's timestamp to the next step's timestamp; the last cue gets a fixed
// five-second tail.
func SubtitleTrack(steps []recipe.Step) string {
	if len(steps) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, step := range steps {
		end := step.Seconds + subtitleTailSeconds
		if i+1 < len(steps) {
			end = steps[i+1].Seconds
		}
		fmt.Fprintf(&sb, "%d\n%s --> %s\n[%s] %s\n\n",
			i+1, srtTimestamp(step.Seconds), srtTimestamp(end), step.Action, step.Description)
	}
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

func srtTimestamp(seconds int) string {
	return recipe.FormatTimestamp(seconds) + ",000"
}

// NarrativeDocument renders the record as a markdown document.
func NarrativeDocument(r Recipe) string {
	var sb strings.Builder
	title := r.Title
	if title == "" {
		title = "レシピ"
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)
	if r.VideoURL != "" {
		fmt.Fprintf(&sb, "動画: %s\n", r.VideoURL)
	}
	fmt.Fprintf(&sb, "手順数: %d / 合計時間: %s\n\n", r.TotalSteps, r.Summary.TotalTime)
	sb.WriteString("## 手順\n\n")
	for _, step := range r.Steps {
		fmt.Fprintf(&sb, "%d. [%s] %s: %s\n", step.Number, step.Timestamp, step.Action, step.Description)
	}
	return sb.String()
}

// ExportJSON serializes the record for storage or download.
func ExportJSON(r Recipe) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode recipe export: %w", err)
	}
	return data, nil
}

// ImportJSON restores a record produced by ExportJSON.
func ImportJSON(data []byte) (Recipe, error) {
	var r Recipe
	if err := json.Unmarshal(data, &r); err != nil {
		return Recipe{}, fmt.Errorf("decode recipe export: %w", err)
	}
	return r, nil
}

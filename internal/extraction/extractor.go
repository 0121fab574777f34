package extraction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"ladle/internal/actions"
	"ladle/internal/format"
	"ladle/internal/logging"
	"ladle/internal/recipe"
	"ladle/internal/services"
	"ladle/internal/services/captions"
	"ladle/internal/services/youtube"
	"ladle/internal/transcript"
)

// MetadataFetcher defines the subset of the YouTube client the extractor uses.
type MetadataFetcher interface {
	Video(ctx context.Context, videoID string) (*youtube.Video, error)
}

// TranscriptFetcher defines the subset of the captions client the extractor uses.
type TranscriptFetcher interface {
	Fetch(ctx context.Context, videoID string, preferred []string) (*captions.Transcript, error)
}

// Error describes a failed extraction attempt.
type Error struct {
	VideoID string
	Stage   string
	Err     error
}

func (e *Error) Error() string {
	if e.VideoID == "" {
		return fmt.Sprintf("extraction %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("extraction %s for %s: %v", e.Stage, e.VideoID, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Options tune an Extractor. Zero values select the defaults.
type Options struct {
	Languages      []string
	MinConfidence  float64
	MergeThreshold int
	Logger         *slog.Logger
}

// Extractor converts a video URL into a structured recipe.
type Extractor struct {
	metadata       MetadataFetcher
	transcripts    TranscriptFetcher
	parser         *transcript.Parser
	languages      []string
	minConfidence  float64
	mergeThreshold int
	logger         *slog.Logger
}

// New wires an extractor around the two collaborators.
func New(metadata MetadataFetcher, transcripts TranscriptFetcher, opts Options) *Extractor {
	languages := opts.Languages
	if len(languages) == 0 {
		languages = []string{"ja", "en"}
	}
	minConfidence := opts.MinConfidence
	if minConfidence <= 0 {
		minConfidence = actions.DefaultMinConfidence
	}
	mergeThreshold := opts.MergeThreshold
	if mergeThreshold <= 0 {
		mergeThreshold = actions.DefaultMergeThreshold
	}
	logger := logging.NewComponentLogger(opts.Logger, "extraction")
	return &Extractor{
		metadata:       metadata,
		transcripts:    transcripts,
		parser:         transcript.NewParser(opts.Logger),
		languages:      languages,
		minConfidence:  minConfidence,
		mergeThreshold: mergeThreshold,
		logger:         logger,
	}
}

// Extract resolves the URL, gathers metadata and captions, and assembles the
// recipe. A missing transcript degrades to a description-only recipe; a
// missing video fails with an Error the caller can classify.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (*recipe.VideoRecipe, error) {
	videoID, ok := ResolveVideoID(rawURL)
	if !ok {
		return nil, &Error{
			Stage: "resolve",
			Err:   services.Wrap(services.ErrValidation, "extraction", "resolve", fmt.Sprintf("unsupported video URL %q", strings.TrimSpace(rawURL)), nil),
		}
	}
	ctx = services.WithVideoID(ctx, videoID)
	logger := e.logger.With(logging.String(logging.FieldVideoID, videoID))

	meta, err := e.metadata.Video(ctx, videoID)
	if err != nil {
		marker := services.ErrExternalService
		if errors.Is(err, youtube.ErrVideoUnavailable) {
			marker = services.ErrNotFound
		}
		return nil, &Error{
			VideoID: videoID,
			Stage:   "metadata",
			Err:     services.Wrap(marker, "extraction", "metadata", "fetch video metadata", err),
		}
	}

	tr := e.fetchTranscript(ctx, logger, videoID)

	var cues []recipe.Cue
	transcriptText := ""
	if tr != nil {
		cues = tr.Cues
		transcriptText = joinCueText(tr.Cues)
	}

	parsed := e.parser.ParseRecipe(transcriptText, cues)

	steps := classifySteps(parsed.Steps)
	if len(steps) == 0 {
		steps = actions.GenerateSteps(meta.Description, e.minConfidence)
	}
	steps = actions.MergeSimilar(steps, e.mergeThreshold)

	rec := &recipe.VideoRecipe{
		VideoID:         videoID,
		VideoURL:        WatchURL(videoID),
		Title:           displayTitle(meta.Title),
		Channel:         meta.Channel,
		ThumbnailURL:    meta.ThumbnailURL,
		DurationSeconds: meta.DurationSeconds,
		Ingredients:     mergeIngredients(transcript.ExtractIngredients(meta.Description), parsed.Ingredients),
		Steps:           steps,
		Servings:        parsed.Servings,
		CookingTime:     parsed.CookingTime,
		ExtractedAt:     time.Now().UTC(),
	}
	if value, ok := transcript.ExtractServings(meta.Description); ok {
		rec.Servings = value
	}
	if value, ok := transcript.ExtractCookingTime(meta.Description); ok {
		rec.CookingTime = value
	}
	if tr != nil {
		rec.HasTranscript = true
		rec.TranscriptLanguage = tr.Language
	}

	if err := rec.Validate(); err != nil {
		return nil, &Error{
			VideoID: videoID,
			Stage:   "validate",
			Err:     services.Wrap(services.ErrTransient, "extraction", "validate", "assembled recipe failed validation", err),
		}
	}

	logger.Info("extraction complete",
		logging.Int("steps", len(rec.Steps)),
		logging.Int("ingredients", len(rec.Ingredients)),
		logging.Bool("has_transcript", rec.HasTranscript),
	)
	return rec, nil
}

// Frontend renders the navigation-oriented projection served to clients.
func Frontend(rec *recipe.VideoRecipe) format.FrontendRecipe {
	return format.ForFrontend(rec.VideoURL, rec.Title, rec.Steps, recipeMetadata(rec))
}

// Formatted renders the plain structured record for exports.
func Formatted(rec *recipe.VideoRecipe) format.Recipe {
	return format.Format(rec.VideoURL, rec.Title, rec.Steps, recipeMetadata(rec))
}

func recipeMetadata(rec *recipe.VideoRecipe) map[string]string {
	metadata := make(map[string]string)
	set := func(key, value string) {
		if value != "" {
			metadata[key] = value
		}
	}
	set("channel", rec.Channel)
	set("thumbnail_url", rec.ThumbnailURL)
	set("servings", rec.Servings)
	set("cooking_time", rec.CookingTime)
	set("transcript_language", rec.TranscriptLanguage)
	if len(metadata) == 0 {
		return nil
	}
	return metadata
}

func (e *Extractor) fetchTranscript(ctx context.Context, logger *slog.Logger, videoID string) *captions.Transcript {
	tr, err := e.transcripts.Fetch(ctx, videoID, e.languages)
	if err != nil {
		if errors.Is(err, captions.ErrNoTranscript) {
			logger.Info("no transcript published, using description only")
		} else {
			logger.Warn("transcript fetch failed, using description only", logging.Error(err))
		}
		return nil
	}
	return tr
}

// classifySteps assigns an action label and confidence to each parser step
// candidate. Candidates whose text is nothing but time markers are dropped.
func classifySteps(steps []recipe.Step) []recipe.Step {
	classified := make([]recipe.Step, 0, len(steps))
	for _, step := range steps {
		description := strings.TrimSpace(actions.RemoveTimestamps(step.Description))
		if description == "" {
			continue
		}
		action, confidence := actions.Detect(description)
		classified = append(classified, recipe.NewStep(len(classified)+1, step.Seconds, action, description, confidence))
	}
	return recipe.NormalizeSteps(classified)
}

// mergeIngredients keeps description-derived entries ahead of
// transcript-derived ones, deduplicating by exact string.
func mergeIngredients(fromDescription, fromTranscript []string) []string {
	var merged []string
	seen := make(map[string]struct{})
	for _, list := range [][]string{fromDescription, fromTranscript} {
		for _, ingredient := range list {
			if _, ok := seen[ingredient]; ok {
				continue
			}
			if len(merged) >= recipe.MaxIngredients {
				return merged
			}
			seen[ingredient] = struct{}{}
			merged = append(merged, ingredient)
		}
	}
	return merged
}

func joinCueText(cues []recipe.Cue) string {
	parts := make([]string, 0, len(cues))
	for _, cue := range cues {
		if text := strings.TrimSpace(cue.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n")
}

// displayTitle folds full-width compatibility characters and collapses runs
// of whitespace, including the ideographic spaces common in video titles.
func displayTitle(title string) string {
	return strings.Join(strings.Fields(norm.NFKC.String(title)), " ")
}

package transcript

import (
	"log/slog"

	"ladle/internal/logging"
	"ladle/internal/recipe"
)

// Result carries whatever the parser could derive from one video's text.
// Fields are independent; a miss in one leaves the others intact.
type Result struct {
	Ingredients []string
	Steps       []recipe.Step
	Servings    string
	CookingTime string
}

// Parser bundles the extraction passes behind a single entry point.
type Parser struct {
	logger *slog.Logger
}

// NewParser returns a parser logging under the transcript component. A nil
// logger disables logging.
func NewParser(logger *slog.Logger) *Parser {
	return &Parser{logger: logging.NewComponentLogger(logger, "transcript")}
}

// ParseRecipe runs every extraction pass over the combined text and cue
// sequence and returns the fields that matched. Passes that find nothing
// leave their field empty; nothing here returns an error.
func (p *Parser) ParseRecipe(text string, cues []recipe.Cue) Result {
	result := Result{
		Ingredients: ExtractIngredients(text),
		Steps:       ExtractSteps(cues),
	}
	if servings, ok := ExtractServings(text); ok {
		result.Servings = servings
	}
	if cookingTime, ok := ExtractCookingTime(text); ok {
		result.CookingTime = cookingTime
	}
	p.logger.Debug("parsed transcript",
		logging.Int("ingredients", len(result.Ingredients)),
		logging.Int("steps", len(result.Steps)),
		logging.Bool("servings", result.Servings != ""),
		logging.Bool("cooking_time", result.CookingTime != ""),
	)
	return result
}

package store

import (
	"time"

	"ladle/internal/recipe"
)

// Recipe is a stored extraction result. Record carries the full structured
// recipe; the remaining fields are denormalized copies used for listing and
// search without unmarshaling.
type Recipe struct {
	ID        string
	VideoID   string
	Title     string
	Channel   string
	Record    recipe.VideoRecipe
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Collection groups saved recipes under a user-chosen name.
type Collection struct {
	ID          string
	Name        string
	Description string
	RecipeCount int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Follow is a subscribed YouTube channel checked for new recipe videos.
type Follow struct {
	ID            string
	ChannelID     string
	ChannelName   string
	CreatedAt     time.Time
	LastCheckedAt *time.Time
}

// Expense is one grocery or ingredient purchase. SpentOn is a calendar date
// in YYYY-MM-DD form so month filtering works with plain string matching.
type Expense struct {
	ID        string
	Title     string
	Amount    float64
	Category  string
	Note      string
	SpentOn   string
	CreatedAt time.Time
}

// ExpenseSummary aggregates one month of expenses.
type ExpenseSummary struct {
	Month      string
	Total      float64
	Count      int
	ByCategory map[string]float64
}

// ListRecipesOptions narrows ListRecipes output. Zero values mean no filter.
type ListRecipesOptions struct {
	Search  string
	Channel string
	Limit   int
}

package api

import (
	"ladle/internal/format"
	"ladle/internal/recipe"
)

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// RecipeSummary describes a stored recipe in listing form.
type RecipeSummary struct {
	ID            string `json:"id"`
	VideoID       string `json:"video_id"`
	Title         string `json:"title"`
	Channel       string `json:"channel,omitempty"`
	StepCount     int    `json:"step_count"`
	Ingredients   int    `json:"ingredient_count"`
	HasTranscript bool   `json:"has_transcript"`
	ExtractedAt   string `json:"extracted_at,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
	UpdatedAt     string `json:"updated_at,omitempty"`
}

// RecipeDetail carries the full stored record together with the navigation
// projections derived from its steps.
type RecipeDetail struct {
	ID        string                  `json:"id"`
	CreatedAt string                  `json:"created_at,omitempty"`
	UpdatedAt string                  `json:"updated_at,omitempty"`
	Record    recipe.VideoRecipe      `json:"record"`
	Summary   format.Summary          `json:"summary"`
	Chapters  []format.Chapter        `json:"chapters,omitempty"`
	QuickJump []format.QuickJumpEntry `json:"quick_jump,omitempty"`
}

// CollectionView describes a recipe collection.
type CollectionView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	RecipeCount int    `json:"recipe_count"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

// FollowView describes a followed channel.
type FollowView struct {
	ID            string `json:"id"`
	ChannelID     string `json:"channel_id"`
	ChannelName   string `json:"channel_name,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
	LastCheckedAt string `json:"last_checked_at,omitempty"`
}

// ChannelVideo describes one upload from a followed channel's feed.
type ChannelVideo struct {
	VideoID     string `json:"video_id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Channel     string `json:"channel,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
}

// ExpenseView describes one recorded purchase.
type ExpenseView struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Amount    float64 `json:"amount"`
	Category  string  `json:"category,omitempty"`
	Note      string  `json:"note,omitempty"`
	SpentOn   string  `json:"spent_on"`
	CreatedAt string  `json:"created_at,omitempty"`
}

// ExpenseSummary aggregates one month of purchases by category.
type ExpenseSummary struct {
	Month      string             `json:"month"`
	Total      float64            `json:"total"`
	Count      int                `json:"count"`
	ByCategory map[string]float64 `json:"by_category"`
}

// EntityCounts reports how many rows each entity table holds.
type EntityCounts struct {
	Recipes     int `json:"recipes"`
	Collections int `json:"collections"`
	Follows     int `json:"follows"`
	Expenses    int `json:"expenses"`
}

// HealthStatus aggregates server runtime information.
type HealthStatus struct {
	Status   string       `json:"status"`
	Database string       `json:"database"`
	Counts   EntityCounts `json:"counts"`
}

// RecipeListResponse wraps a collection of recipe summaries.
type RecipeListResponse struct {
	Recipes []RecipeSummary `json:"recipes"`
}

// RecipeResponse wraps a single recipe detail.
type RecipeResponse struct {
	Recipe RecipeDetail `json:"recipe"`
}

// CollectionListResponse wraps the collection listing.
type CollectionListResponse struct {
	Collections []CollectionView `json:"collections"`
}

// CollectionResponse wraps a single collection; Recipes carries the members
// when a detail view was requested.
type CollectionResponse struct {
	Collection CollectionView  `json:"collection"`
	Recipes    []RecipeSummary `json:"recipes,omitempty"`
}

// FollowListResponse wraps the followed-channel listing.
type FollowListResponse struct {
	Follows []FollowView `json:"follows"`
}

// FollowResponse wraps a single follow.
type FollowResponse struct {
	Follow FollowView `json:"follow"`
}

// VideoListResponse wraps a channel's recent uploads.
type VideoListResponse struct {
	Videos []ChannelVideo `json:"videos"`
}

// ExpenseListResponse wraps an expense listing.
type ExpenseListResponse struct {
	Expenses []ExpenseView `json:"expenses"`
}

// ExpenseResponse wraps a single expense.
type ExpenseResponse struct {
	Expense ExpenseView `json:"expense"`
}

// ExpenseSummaryResponse wraps a monthly summary.
type ExpenseSummaryResponse struct {
	Summary ExpenseSummary `json:"summary"`
}

// SettingsResponse wraps the settings map.
type SettingsResponse struct {
	Settings map[string]string `json:"settings"`
}

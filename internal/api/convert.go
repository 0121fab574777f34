package api

import (
	"time"

	"ladle/internal/follows"
	"ladle/internal/format"
	"ladle/internal/store"
)

// FromRecipe converts a stored recipe to its listing representation.
func FromRecipe(rec *store.Recipe) RecipeSummary {
	if rec == nil {
		return RecipeSummary{}
	}
	dto := RecipeSummary{
		ID:            rec.ID,
		VideoID:       rec.VideoID,
		Title:         rec.Title,
		Channel:       rec.Channel,
		StepCount:     len(rec.Record.Steps),
		Ingredients:   len(rec.Record.Ingredients),
		HasTranscript: rec.Record.HasTranscript,
		CreatedAt:     formatTime(rec.CreatedAt),
		UpdatedAt:     formatTime(rec.UpdatedAt),
	}
	if !rec.Record.ExtractedAt.IsZero() {
		dto.ExtractedAt = formatTime(rec.Record.ExtractedAt)
	}
	return dto
}

// FromRecipes converts a slice of stored recipes into listing DTOs.
func FromRecipes(recipes []*store.Recipe) []RecipeSummary {
	if len(recipes) == 0 {
		return nil
	}
	out := make([]RecipeSummary, 0, len(recipes))
	for _, rec := range recipes {
		out = append(out, FromRecipe(rec))
	}
	return out
}

// FromRecipeRecord converts a stored recipe to the detail representation,
// deriving the navigation projections from its steps.
func FromRecipeRecord(rec *store.Recipe) RecipeDetail {
	if rec == nil {
		return RecipeDetail{}
	}
	return RecipeDetail{
		ID:        rec.ID,
		CreatedAt: formatTime(rec.CreatedAt),
		UpdatedAt: formatTime(rec.UpdatedAt),
		Record:    rec.Record,
		Summary:   format.Summarize(rec.Record.Steps),
		Chapters:  format.Chapters(rec.Record.Steps),
		QuickJump: format.QuickJump(rec.Record.Steps),
	}
}

// FromCollection converts a collection record to its API representation.
func FromCollection(col *store.Collection) CollectionView {
	if col == nil {
		return CollectionView{}
	}
	return CollectionView{
		ID:          col.ID,
		Name:        col.Name,
		Description: col.Description,
		RecipeCount: col.RecipeCount,
		CreatedAt:   formatTime(col.CreatedAt),
		UpdatedAt:   formatTime(col.UpdatedAt),
	}
}

// FromCollections converts a slice of collection records into API DTOs.
func FromCollections(collections []*store.Collection) []CollectionView {
	if len(collections) == 0 {
		return nil
	}
	out := make([]CollectionView, 0, len(collections))
	for _, col := range collections {
		out = append(out, FromCollection(col))
	}
	return out
}

// FromFollow converts a follow record to its API representation.
func FromFollow(follow *store.Follow) FollowView {
	if follow == nil {
		return FollowView{}
	}
	dto := FollowView{
		ID:          follow.ID,
		ChannelID:   follow.ChannelID,
		ChannelName: follow.ChannelName,
		CreatedAt:   formatTime(follow.CreatedAt),
	}
	if follow.LastCheckedAt != nil {
		dto.LastCheckedAt = formatTime(*follow.LastCheckedAt)
	}
	return dto
}

// FromFollows converts a slice of follow records into API DTOs.
func FromFollows(list []*store.Follow) []FollowView {
	if len(list) == 0 {
		return nil
	}
	out := make([]FollowView, 0, len(list))
	for _, follow := range list {
		out = append(out, FromFollow(follow))
	}
	return out
}

// FromVideo converts a feed upload to its API representation.
func FromVideo(video follows.Video) ChannelVideo {
	dto := ChannelVideo{
		VideoID: video.VideoID,
		Title:   video.Title,
		URL:     video.URL,
		Channel: video.Channel,
	}
	if !video.PublishedAt.IsZero() {
		dto.PublishedAt = formatTime(video.PublishedAt)
	}
	return dto
}

// FromVideos converts a slice of feed uploads into API DTOs.
func FromVideos(videos []follows.Video) []ChannelVideo {
	if len(videos) == 0 {
		return nil
	}
	out := make([]ChannelVideo, 0, len(videos))
	for _, video := range videos {
		out = append(out, FromVideo(video))
	}
	return out
}

// FromExpense converts an expense record to its API representation.
func FromExpense(exp *store.Expense) ExpenseView {
	if exp == nil {
		return ExpenseView{}
	}
	return ExpenseView{
		ID:        exp.ID,
		Title:     exp.Title,
		Amount:    exp.Amount,
		Category:  exp.Category,
		Note:      exp.Note,
		SpentOn:   exp.SpentOn,
		CreatedAt: formatTime(exp.CreatedAt),
	}
}

// FromExpenses converts a slice of expense records into API DTOs.
func FromExpenses(expenses []*store.Expense) []ExpenseView {
	if len(expenses) == 0 {
		return nil
	}
	out := make([]ExpenseView, 0, len(expenses))
	for _, exp := range expenses {
		out = append(out, FromExpense(exp))
	}
	return out
}

// FromExpenseSummary converts a monthly aggregate to its API representation.
func FromExpenseSummary(summary *store.ExpenseSummary) ExpenseSummary {
	if summary == nil {
		return ExpenseSummary{}
	}
	byCategory := summary.ByCategory
	if byCategory == nil {
		byCategory = map[string]float64{}
	}
	return ExpenseSummary{
		Month:      summary.Month,
		Total:      summary.Total,
		Count:      summary.Count,
		ByCategory: byCategory,
	}
}

// FromStats converts store row counts to the health payload form.
func FromStats(stats *store.Stats) EntityCounts {
	if stats == nil {
		return EntityCounts{}
	}
	return EntityCounts{
		Recipes:     stats.Recipes,
		Collections: stats.Collections,
		Follows:     stats.Follows,
		Expenses:    stats.Expenses,
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateTimeFormat)
}

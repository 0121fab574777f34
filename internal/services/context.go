package services

import "context"

type contextKey string

const (
	videoIDKey   contextKey = "video_id"
	recipeIDKey  contextKey = "recipe_id"
	requestIDKey contextKey = "request_id"
)

// WithVideoID annotates context with the YouTube video identifier.
func WithVideoID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, videoIDKey, id)
}

// VideoIDFromContext extracts the video identifier if present.
func VideoIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(videoIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithRecipeID annotates context with the stored recipe identifier.
func WithRecipeID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, recipeIDKey, id)
}

// RecipeIDFromContext extracts the recipe identifier if present.
func RecipeIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(recipeIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

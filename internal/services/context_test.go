package services_test

import (
	"context"
	"testing"

	"ladle/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithVideoID(ctx, "dQw4w9WgXcQ")
	ctx = services.WithRecipeID(ctx, "2f6d1f2e")
	ctx = services.WithRequestID(ctx, "req-123")

	if id, ok := services.VideoIDFromContext(ctx); !ok || id != "dQw4w9WgXcQ" {
		t.Fatalf("unexpected video id: %v %v", id, ok)
	}
	if id, ok := services.RecipeIDFromContext(ctx); !ok || id != "2f6d1f2e" {
		t.Fatalf("unexpected recipe id: %v %v", id, ok)
	}
	if rid, ok := services.RequestIDFromContext(ctx); !ok || rid != "req-123" {
		t.Fatalf("unexpected request id: %v %v", rid, ok)
	}
}

func TestVideoIDBlankPreservesContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithVideoID(ctx, "")
	if _, ok := services.VideoIDFromContext(ctx); ok {
		t.Fatal("expected no video id value")
	}
}

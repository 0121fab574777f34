package services_test

import (
	"errors"
	"strings"
	"testing"

	"ladle/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternalService, "captions", "fetch", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExternalService) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"captions", "fetch", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapNilMarkerDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "youtube", "video", "lookup failed", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
}

func TestRetryableClassification(t *testing.T) {
	validationErr := services.Wrap(services.ErrValidation, "extract", "resolve", "invalid url", nil)
	if services.Retryable(validationErr) {
		t.Fatal("validation failures should not be retried")
	}

	missingErr := services.Wrap(services.ErrNotFound, "youtube", "video", "gone", nil)
	if services.Retryable(missingErr) {
		t.Fatal("missing resources should not be retried")
	}

	upstreamErr := services.Wrap(services.ErrExternalService, "captions", "list", "timeout", errors.New("io"))
	if !services.Retryable(upstreamErr) {
		t.Fatal("upstream failures should be retryable")
	}

	if services.Retryable(nil) {
		t.Fatal("nil error is not retryable")
	}
}

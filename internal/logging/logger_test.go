package logging_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"ladle/internal/logging"
)

func TestConsoleHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	component := logging.NewComponentLogger(logger, "extractor")
	component.Info("extraction finished",
		logging.String(logging.FieldVideoID, "dQw4w9WgXcQ"),
		logging.Int("steps", 7),
	)

	line := buf.String()
	if !strings.Contains(line, " INFO extractor: extraction finished") {
		t.Fatalf("unexpected line shape: %q", line)
	}
	if !strings.Contains(line, "video_id=dQw4w9WgXcQ") || !strings.Contains(line, "steps=7") {
		t.Fatalf("missing attributes: %q", line)
	}
}

func TestConsoleHandlerQuotesValues(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Warn("fetch failed", logging.Error(errors.New("timeout: no response")))
	if !strings.Contains(buf.String(), `error="timeout: no response"`) {
		t.Fatalf("expected quoted error value, got %q", buf.String())
	}
}

func TestConsoleHandlerLevelFloor(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("should be dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected info suppressed at warn level, got %q", buf.String())
	}
	logger.Warn("kept")
	if !strings.Contains(buf.String(), "WARN kept") {
		t.Fatalf("expected warn line, got %q", buf.String())
	}
}

func TestJSONHandlerOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Debug("probe", logging.String("k", "v"))

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("expected valid JSON, got %q: %v", buf.String(), err)
	}
	if payload["msg"] != "probe" {
		t.Errorf("expected msg %q, got %v", "probe", payload["msg"])
	}
	if payload["level"] != "debug" {
		t.Errorf("expected lowercase level, got %v", payload["level"])
	}
	if _, ok := payload["ts"]; !ok {
		t.Error("expected ts field in JSON output")
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNewNopDiscards(t *testing.T) {
	logger := logging.NewNop()
	logger.Error("must not panic", logging.Error(nil))
}

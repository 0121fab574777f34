package notifications_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"ladle/internal/config"
	"ladle/internal/notifications"
)

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = ""
	svc := notifications.NewService(&cfg)
	err := svc.Publish(context.Background(), notifications.EventExtractionCompleted, notifications.Payload{"title": "肉じゃが"})
	if err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
}

func TestNtfyServiceFormatsPayloads(t *testing.T) {
	tests := []struct {
		name           string
		event          notifications.Event
		payload        notifications.Payload
		expectTitle    string
		expectMessage  string
		expectTags     string
		expectPriority string
	}{
		{
			name:  "extraction completed",
			event: notifications.EventExtractionCompleted,
			payload: notifications.Payload{
				"title": "肉じゃがの作り方",
				"steps": "8",
			},
			expectTitle:   "Ladle - Recipe Saved",
			expectMessage: "🍳 Recipe saved: 肉じゃがの作り方 (8 steps)",
			expectTags:    "ladle,extract,completed",
		},
		{
			name:  "extraction failed",
			event: notifications.EventExtractionFailed,
			payload: notifications.Payload{
				"url":   "https://youtu.be/abc123DEF45",
				"error": "video unavailable",
			},
			expectTitle:    "Ladle - Extraction Failed",
			expectMessage:  "❌ Extraction failed for https://youtu.be/abc123DEF45: video unavailable",
			expectTags:     "ladle,error,alert",
			expectPriority: "high",
		},
		{
			name:  "backup completed",
			event: notifications.EventBackupCompleted,
			payload: notifications.Payload{
				"archive": "ladle-backup-20260825-120000.json",
				"recipes": "42",
			},
			expectTitle:   "Ladle - Backup Complete",
			expectMessage: "💾 Backup complete: ladle-backup-20260825-120000.json (42 recipes)",
			expectTags:    "ladle,backup,completed",
		},
		{
			name:  "new videos",
			event: notifications.EventNewVideos,
			payload: notifications.Payload{
				"channel": "料理チャンネル",
				"count":   "2",
				"titles":  "手羽先の唐揚げ\n基本の出汁",
			},
			expectTitle:   "Ladle - New Videos",
			expectMessage: "📺 2 new videos from 料理チャンネル\n手羽先の唐揚げ\n基本の出汁",
			expectTags:    "ladle,follows,new",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var captured struct {
				title    string
				tags     string
				priority string
				body     string
			}

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Fatalf("unexpected method: %s", r.Method)
				}
				captured.title = r.Header.Get("Title")
				captured.tags = r.Header.Get("Tags")
				captured.priority = r.Header.Get("Priority")
				body, err := io.ReadAll(r.Body)
				if err != nil {
					t.Fatalf("read body: %v", err)
				}
				captured.body = string(body)
				_ = r.Body.Close()
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			cfg := config.Default()
			cfg.Notifications.NtfyTopic = server.URL
			cfg.Notifications.RequestTimeout = 5

			svc := notifications.NewService(&cfg)
			if err := svc.Publish(context.Background(), tc.event, tc.payload); err != nil {
				t.Fatalf("notification returned error: %v", err)
			}

			if captured.title != tc.expectTitle {
				t.Fatalf("expected title %q, got %q", tc.expectTitle, captured.title)
			}
			if captured.body != tc.expectMessage {
				t.Fatalf("expected message %q, got %q", tc.expectMessage, captured.body)
			}
			if captured.tags != tc.expectTags {
				t.Fatalf("expected tags %q, got %q", tc.expectTags, captured.tags)
			}
			if captured.priority != tc.expectPriority {
				t.Fatalf("expected priority %q, got %q", tc.expectPriority, captured.priority)
			}
		})
	}
}

func TestNtfyServiceDropsDisabledEvents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("unexpected call for disabled event: %s", r.URL.String())
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	cfg.Notifications.Extraction = false
	cfg.Notifications.Follows = false

	svc := notifications.NewService(&cfg)
	disabled := []notifications.Event{
		notifications.EventExtractionCompleted,
		notifications.EventNewVideos,
	}

	for _, event := range disabled {
		if err := svc.Publish(context.Background(), event, notifications.Payload{"value": "ignored"}); err != nil {
			t.Fatalf("expected no error for disabled event %s, got %v", event, err)
		}
	}
}

func TestNtfyServiceSurfacesHTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "topic quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL

	svc := notifications.NewService(&cfg)
	err := svc.Publish(context.Background(), notifications.EventBackupCompleted, notifications.Payload{"archive": "a.json"})
	if err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}

package youtube_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"google.golang.org/api/option"

	"ladle/internal/services/youtube"
)

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := youtube.New(context.Background(), "   "); err == nil {
		t.Fatal("expected error when API key missing")
	}
}

func TestVideoFetchesMetadata(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "test-key" {
			t.Fatalf("expected key query parameter, got %q", r.URL.RawQuery)
		}
		if r.URL.Query().Get("id") != "abc123DEF45" {
			t.Fatalf("expected id query parameter, got %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"items": [
				{
					"id": "abc123DEF45",
					"snippet": {
						"title": "肉じゃがの作り方",
						"description": "じゃがいも 300g を使います",
						"channelTitle": "Kitchen Channel",
						"channelId": "UCkitchen",
						"tags": ["料理", "recipe"],
						"thumbnails": {
							"high": {"url": "https://img.example/high.jpg"},
							"default": {"url": "https://img.example/default.jpg"}
						}
					},
					"contentDetails": {"duration": "PT10M30S"}
				}
			]
		}`))
	}))
	t.Cleanup(server.Close)

	client, err := youtube.New(context.Background(), "test-key", option.WithEndpoint(server.URL))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	video, err := client.Video(context.Background(), "abc123DEF45")
	if err != nil {
		t.Fatalf("Video returned error: %v", err)
	}
	if video.Title != "肉じゃがの作り方" {
		t.Fatalf("unexpected title: %q", video.Title)
	}
	if video.Channel != "Kitchen Channel" || video.ChannelID != "UCkitchen" {
		t.Fatalf("unexpected channel: %q %q", video.Channel, video.ChannelID)
	}
	if video.DurationSeconds != 630 {
		t.Fatalf("unexpected duration: %d", video.DurationSeconds)
	}
	if video.ThumbnailURL != "https://img.example/high.jpg" {
		t.Fatalf("expected high thumbnail when maxres missing, got %q", video.ThumbnailURL)
	}
	if len(video.Tags) != 2 {
		t.Fatalf("unexpected tags: %#v", video.Tags)
	}
}

func TestVideoUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items": []}`))
	}))
	t.Cleanup(server.Close)

	client, err := youtube.New(context.Background(), "test-key", option.WithEndpoint(server.URL))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if _, err := client.Video(context.Background(), "gone"); !errors.Is(err, youtube.ErrVideoUnavailable) {
		t.Fatalf("expected ErrVideoUnavailable, got %v", err)
	}
}

func TestVideoRequiresID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for blank video ID")
	}))
	t.Cleanup(server.Close)

	client, err := youtube.New(context.Background(), "test-key", option.WithEndpoint(server.URL))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.Video(context.Background(), "  "); err == nil {
		t.Fatal("expected error for blank video ID")
	}
}

func TestParseDuration(t *testing.T) {
	cases := []struct {
		value string
		want  int
	}{
		{"PT1H2M3S", 3723},
		{"PT15M", 900},
		{"PT45S", 45},
		{"PT2H", 7200},
		{"P0D", 0},
		{"", 0},
		{"garbage", 0},
	}
	for _, tc := range cases {
		if got := youtube.ParseDuration(tc.value); got != tc.want {
			t.Fatalf("ParseDuration(%q) = %d, want %d", tc.value, got, tc.want)
		}
	}
}

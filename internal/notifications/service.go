package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ladle/internal/config"
)

const userAgent = "Ladle/0.1.0"

// Event identifies a notification class. Each class maps to one on/off
// switch in the notifications config section.
type Event string

const (
	EventExtractionCompleted Event = "extraction_completed"
	EventExtractionFailed    Event = "extraction_failed"
	EventBackupCompleted     Event = "backup_completed"
	EventNewVideos           Event = "new_videos"
)

// Payload carries event fields used to render the push message. All values
// are preformatted strings.
type Payload map[string]string

// Service defines the notification surface exposed to the rest of ladle.
type Service interface {
	Publish(ctx context.Context, event Event, payload Payload) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
		enabled: map[Event]bool{
			EventExtractionCompleted: cfg.Notifications.Extraction,
			EventExtractionFailed:    cfg.Notifications.Errors,
			EventBackupCompleted:     cfg.Notifications.Backup,
			EventNewVideos:           cfg.Notifications.Follows,
		},
	}
}

type message struct {
	title    string
	text     string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
	enabled  map[Event]bool
}

// Publish renders and sends one event. Events whose class is switched off in
// config are dropped without error.
func (n *ntfyService) Publish(ctx context.Context, event Event, payload Payload) error {
	if !n.enabled[event] {
		return nil
	}
	msg, err := render(event, payload)
	if err != nil {
		return err
	}
	return n.send(ctx, msg)
}

func render(event Event, payload Payload) (message, error) {
	get := func(key string) string {
		return strings.TrimSpace(payload[key])
	}

	switch event {
	case EventExtractionCompleted:
		text := fmt.Sprintf("🍳 Recipe saved: %s", get("title"))
		if steps := get("steps"); steps != "" {
			text = fmt.Sprintf("%s (%s steps)", text, steps)
		}
		return message{
			title: "Ladle - Recipe Saved",
			text:  text,
			tags:  []string{"ladle", "extract", "completed"},
		}, nil

	case EventExtractionFailed:
		var builder strings.Builder
		builder.WriteString("❌ Extraction failed")
		if source := get("url"); source != "" {
			builder.WriteString(" for ")
			builder.WriteString(source)
		}
		builder.WriteString(": ")
		if reason := get("error"); reason != "" {
			builder.WriteString(reason)
		} else {
			builder.WriteString("unknown")
		}
		return message{
			title:    "Ladle - Extraction Failed",
			text:     builder.String(),
			tags:     []string{"ladle", "error", "alert"},
			priority: "high",
		}, nil

	case EventBackupCompleted:
		text := fmt.Sprintf("💾 Backup complete: %s", get("archive"))
		if recipes := get("recipes"); recipes != "" {
			text = fmt.Sprintf("%s (%s recipes)", text, recipes)
		}
		return message{
			title: "Ladle - Backup Complete",
			text:  text,
			tags:  []string{"ladle", "backup", "completed"},
		}, nil

	case EventNewVideos:
		text := fmt.Sprintf("📺 %s new videos from %s", get("count"), get("channel"))
		if titles := get("titles"); titles != "" {
			text = text + "\n" + titles
		}
		return message{
			title: "Ladle - New Videos",
			text:  text,
			tags:  []string{"ladle", "follows", "new"},
		}, nil
	}

	return message{}, fmt.Errorf("unknown notification event %q", event)
}

func (n *ntfyService) send(ctx context.Context, msg message) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(msg.text))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if msg.title != "" {
		req.Header.Set("Title", msg.title)
	}
	if len(msg.tags) > 0 {
		req.Header.Set("Tags", strings.Join(msg.tags, ","))
	}
	if msg.priority != "" && msg.priority != "default" {
		req.Header.Set("Priority", msg.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) Publish(context.Context, Event, Payload) error { return nil }

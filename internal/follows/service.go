package follows

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"ladle/internal/extraction"
	"ladle/internal/logging"
	"ladle/internal/notifications"
	"ladle/internal/store"
)

// DefaultFeedBaseURL is YouTube's per-channel upload feed endpoint.
const DefaultFeedBaseURL = "https://www.youtube.com/feeds/videos.xml"

const feedUserAgent = "Ladle/0.1.0"

// Video is one upload taken from a channel feed.
type Video struct {
	VideoID     string
	Title       string
	URL         string
	Channel     string
	PublishedAt time.Time
}

// Update lists the uploads on one channel that appeared since its last check.
type Update struct {
	ChannelID   string
	ChannelName string
	Videos      []Video
}

// Options configures a Service. The zero value is usable.
type Options struct {
	// BaseURL overrides the feed endpoint, mainly for tests.
	BaseURL   string
	Timeout   time.Duration
	MaxVideos int
	Notifier  notifications.Service
	Logger    *slog.Logger
}

// Service fetches channel upload feeds and runs the new-video check.
type Service struct {
	store     *store.Store
	notifier  notifications.Service
	parser    *gofeed.Parser
	baseURL   string
	maxVideos int
	logger    *slog.Logger
}

// NewService builds a follows service on top of the persistence layer.
func NewService(st *store.Store, opts Options) *Service {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultFeedBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	maxVideos := opts.MaxVideos
	if maxVideos <= 0 {
		maxVideos = 10
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = noopNotifier{}
	}

	parser := gofeed.NewParser()
	parser.UserAgent = feedUserAgent
	parser.Client = &http.Client{Timeout: timeout}

	return &Service{
		store:     st,
		notifier:  notifier,
		parser:    parser,
		baseURL:   baseURL,
		maxVideos: maxVideos,
		logger:    logging.NewComponentLogger(opts.Logger, "follows"),
	}
}

// RecentVideos returns the latest uploads for one channel, newest first as
// the feed orders them.
func (s *Service) RecentVideos(ctx context.Context, channelID string) ([]Video, error) {
	channelID = strings.TrimSpace(channelID)
	if channelID == "" {
		return nil, errors.New("channel id is empty")
	}
	feed, err := s.fetch(ctx, channelID)
	if err != nil {
		return nil, err
	}
	return s.mapVideos(feed), nil
}

// ChannelTitle fetches just the display name of a channel's feed.
func (s *Service) ChannelTitle(ctx context.Context, channelID string) (string, error) {
	channelID = strings.TrimSpace(channelID)
	if channelID == "" {
		return "", errors.New("channel id is empty")
	}
	feed, err := s.fetch(ctx, channelID)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(feed.Title), nil
}

// CheckNew polls every followed channel once and returns the channels that
// gained uploads since their previous check. Feed failures on individual
// channels are logged and skipped so one dead channel cannot starve the
// rest. Each update is also pushed through the notifier.
func (s *Service) CheckNew(ctx context.Context) ([]Update, error) {
	followed, err := s.store.ListFollows(ctx)
	if err != nil {
		return nil, fmt.Errorf("list follows: %w", err)
	}

	now := time.Now().UTC()
	var updates []Update
	for _, follow := range followed {
		feed, err := s.fetch(ctx, follow.ChannelID)
		if err != nil {
			s.logger.Warn("channel feed check failed",
				logging.String(logging.FieldChannelID, follow.ChannelID),
				logging.Error(err))
			continue
		}

		name := strings.TrimSpace(feed.Title)
		if name != "" && name != follow.ChannelName {
			if _, err := s.store.CreateFollow(ctx, follow.ChannelID, name); err != nil {
				s.logger.Warn("channel name refresh failed",
					logging.String(logging.FieldChannelID, follow.ChannelID),
					logging.Error(err))
			}
		}
		if name == "" {
			name = follow.ChannelName
		}

		if err := s.store.TouchFollow(ctx, follow.ID, now); err != nil {
			s.logger.Warn("poll marker update failed",
				logging.String(logging.FieldChannelID, follow.ChannelID),
				logging.Error(err))
		}

		if follow.LastCheckedAt == nil {
			// First poll establishes the marker without notifying.
			continue
		}

		var fresh []Video
		for _, video := range s.mapVideos(feed) {
			if video.PublishedAt.After(*follow.LastCheckedAt) {
				fresh = append(fresh, video)
			}
		}
		if len(fresh) == 0 {
			continue
		}

		update := Update{ChannelID: follow.ChannelID, ChannelName: name, Videos: fresh}
		updates = append(updates, update)
		s.notify(ctx, update)
	}
	return updates, nil
}

func (s *Service) fetch(ctx context.Context, channelID string) (*gofeed.Feed, error) {
	feedURL := s.baseURL + "?channel_id=" + url.QueryEscape(channelID)
	feed, err := s.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch channel feed: %w", err)
	}
	return feed, nil
}

func (s *Service) mapVideos(feed *gofeed.Feed) []Video {
	count := len(feed.Items)
	if count > s.maxVideos {
		count = s.maxVideos
	}

	videos := make([]Video, 0, count)
	for _, item := range feed.Items[:count] {
		video := Video{
			VideoID: videoIDFromItem(item),
			Title:   strings.TrimSpace(item.Title),
			URL:     strings.TrimSpace(item.Link),
			Channel: strings.TrimSpace(feed.Title),
		}
		if item.PublishedParsed != nil {
			video.PublishedAt = item.PublishedParsed.UTC()
		} else if item.UpdatedParsed != nil {
			video.PublishedAt = item.UpdatedParsed.UTC()
		}
		videos = append(videos, video)
	}
	return videos
}

func videoIDFromItem(item *gofeed.Item) string {
	if id := strings.TrimPrefix(item.GUID, "yt:video:"); id != item.GUID && id != "" {
		return id
	}
	if id, ok := extraction.ResolveVideoID(item.Link); ok {
		return id
	}
	return ""
}

func (s *Service) notify(ctx context.Context, update Update) {
	titles := make([]string, 0, 3)
	for _, video := range update.Videos {
		if len(titles) == 3 {
			break
		}
		titles = append(titles, video.Title)
	}
	payload := notifications.Payload{
		"channel": update.ChannelName,
		"count":   strconv.Itoa(len(update.Videos)),
		"titles":  strings.Join(titles, "\n"),
	}
	if err := s.notifier.Publish(ctx, notifications.EventNewVideos, payload); err != nil {
		s.logger.Warn("new video notification failed",
			logging.String(logging.FieldChannelID, update.ChannelID),
			logging.Error(err))
	}
}

type noopNotifier struct{}

func (noopNotifier) Publish(context.Context, notifications.Event, notifications.Payload) error {
	return nil
}

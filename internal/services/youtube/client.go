package youtube

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"google.golang.org/api/option"
	youtubeapi "google.golang.org/api/youtube/v3"
)

// ErrVideoUnavailable indicates the Data API returned no item for the
// requested ID: deleted, private, or never existed.
var ErrVideoUnavailable = errors.New("video unavailable")

// Video is the flattened metadata the extractor consumes.
type Video struct {
	ID              string
	Title           string
	Description     string
	Channel         string
	ChannelID       string
	DurationSeconds int
	ThumbnailURL    string
	Tags            []string
}

// Fetcher describes the metadata lookups the extractor depends on.
type Fetcher interface {
	Video(ctx context.Context, videoID string) (*Video, error)
}

// Client wraps the generated Data API service.
type Client struct {
	service *youtubeapi.Service
}

var _ Fetcher = (*Client)(nil)

// New constructs a Client authenticated with the provided API key. Extra
// options are appended after the key so tests can override the endpoint.
func New(ctx context.Context, apiKey string, opts ...option.ClientOption) (*Client, error) {
	key := strings.TrimSpace(apiKey)
	if key == "" {
		return nil, errors.New("youtube: API key is required")
	}
	clientOpts := append([]option.ClientOption{option.WithAPIKey(key)}, opts...)
	service, err := youtubeapi.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	return &Client{service: service}, nil
}

// Video fetches snippet and content details for a single video ID.
func (c *Client) Video(ctx context.Context, videoID string) (*Video, error) {
	id := strings.TrimSpace(videoID)
	if id == "" {
		return nil, errors.New("youtube: video ID is required")
	}
	resp, err := c.service.Videos.List([]string{"snippet", "contentDetails"}).Id(id).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("fetch video %s: %w", id, err)
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("video %s: %w", id, ErrVideoUnavailable)
	}

	item := resp.Items[0]
	video := &Video{ID: item.Id}
	if video.ID == "" {
		video.ID = id
	}
	if item.Snippet != nil {
		video.Title = item.Snippet.Title
		video.Description = item.Snippet.Description
		video.Channel = item.Snippet.ChannelTitle
		video.ChannelID = item.Snippet.ChannelId
		video.Tags = item.Snippet.Tags
		video.ThumbnailURL = bestThumbnail(item.Snippet.Thumbnails)
	}
	if item.ContentDetails != nil {
		video.DurationSeconds = ParseDuration(item.ContentDetails.Duration)
	}
	return video, nil
}

var durationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseDuration converts the API's ISO-8601 video duration (PT1H2M3S) into
// seconds. Malformed values, including the P0D reported for live streams,
// yield zero.
func ParseDuration(value string) int {
	match := durationPattern.FindStringSubmatch(strings.TrimSpace(value))
	if match == nil {
		return 0
	}
	return toInt(match[1])*3600 + toInt(match[2])*60 + toInt(match[3])
}

func bestThumbnail(details *youtubeapi.ThumbnailDetails) string {
	if details == nil {
		return ""
	}
	for _, thumb := range []*youtubeapi.Thumbnail{details.Maxres, details.High, details.Medium, details.Default} {
		if thumb != nil && thumb.Url != "" {
			return thumb.Url
		}
	}
	return ""
}

func toInt(value string) int {
	if value == "" {
		return 0
	}
	n, _ := strconv.Atoi(value)
	return n
}

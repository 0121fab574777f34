package captions

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"

	"ladle/internal/recipe"
)

// DefaultBaseURL is the public timedtext endpoint.
const DefaultBaseURL = "https://video.google.com/timedtext"

// ErrNoTranscript indicates the video publishes no usable caption track.
var ErrNoTranscript = errors.New("no transcript available")

// Track describes one caption track from the timedtext track list.
type Track struct {
	ID        string
	Name      string
	Language  string
	Label     string
	Default   bool
	Generated bool
}

// Transcript is a downloaded caption track flattened into cues.
type Transcript struct {
	Language  string
	Generated bool
	Cues      []recipe.Cue
}

// Provider describes the transcript lookups the extractor depends on.
type Provider interface {
	Fetch(ctx context.Context, videoID string, preferred []string) (*Transcript, error)
}

// Client talks to the timedtext endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ Provider = (*Client)(nil)

// Option customises the constructed client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// New constructs a timedtext client. An empty base URL selects the public
// endpoint.
func New(baseURL string, opts ...Option) *Client {
	client := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	if client.baseURL == "" {
		client.baseURL = DefaultBaseURL
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Fetch lists the tracks for a video, picks the best match for the preferred
// languages, and downloads it.
func (c *Client) Fetch(ctx context.Context, videoID string, preferred []string) (*Transcript, error) {
	tracks, err := c.List(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if len(tracks) == 0 {
		return nil, fmt.Errorf("video %s: %w", videoID, ErrNoTranscript)
	}
	return c.Download(ctx, videoID, pickTrack(tracks, preferred))
}

// List returns the caption tracks published for a video.
func (c *Client) List(ctx context.Context, videoID string) ([]Track, error) {
	id := strings.TrimSpace(videoID)
	if id == "" {
		return nil, errors.New("captions: video ID is required")
	}
	params := url.Values{}
	params.Set("type", "list")
	params.Set("v", id)

	var payload trackList
	if err := c.get(ctx, params, &payload); err != nil {
		return nil, fmt.Errorf("list tracks for %s: %w", id, err)
	}

	tracks := make([]Track, 0, len(payload.Tracks))
	for _, track := range payload.Tracks {
		tracks = append(tracks, Track{
			ID:        track.ID,
			Name:      track.Name,
			Language:  track.LangCode,
			Label:     track.LangOriginal,
			Default:   track.LangDefault == "true",
			Generated: track.Kind == "asr",
		})
	}
	return tracks, nil
}

// Download fetches a single track and converts it into cues.
func (c *Client) Download(ctx context.Context, videoID string, track Track) (*Transcript, error) {
	id := strings.TrimSpace(videoID)
	if id == "" {
		return nil, errors.New("captions: video ID is required")
	}
	params := url.Values{}
	params.Set("v", id)
	params.Set("lang", track.Language)
	if track.Name != "" {
		params.Set("name", track.Name)
	}
	if track.Generated {
		params.Set("kind", "asr")
	}

	var payload transcriptXML
	if err := c.get(ctx, params, &payload); err != nil {
		return nil, fmt.Errorf("download track %s/%s: %w", id, track.Language, err)
	}

	cues := make([]recipe.Cue, 0, len(payload.Texts))
	for _, text := range payload.Texts {
		content := html.UnescapeString(text.Content)
		content = strings.TrimSpace(strings.ReplaceAll(content, "\n", " "))
		if content == "" {
			continue
		}
		cues = append(cues, recipe.Cue{
			Text:     content,
			Start:    toFloat(text.Start),
			Duration: toFloat(text.Dur),
		})
	}
	if len(cues) == 0 {
		return nil, fmt.Errorf("video %s: %w", id, ErrNoTranscript)
	}
	return &Transcript{Language: track.Language, Generated: track.Generated, Cues: cues}, nil
}

func (c *Client) get(ctx context.Context, params url.Values, dest any) error {
	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("parse timedtext URL: %w", err)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("create timedtext request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute timedtext request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNoTranscript
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("timedtext request failed: %s", resp.Status)
	}
	if err := xml.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode timedtext response: %w", err)
	}
	return nil
}

// pickTrack prefers manual tracks in the caller's languages, then generated
// ones, then whatever the video marks as default.
func pickTrack(tracks []Track, preferred []string) Track {
	desired := parseTags(preferred)
	if len(desired) > 0 {
		for _, generated := range []bool{false, true} {
			if track, ok := matchTracks(tracks, desired, generated); ok {
				return track
			}
		}
	}
	for _, track := range tracks {
		if track.Default {
			return track
		}
	}
	return tracks[0]
}

func matchTracks(tracks []Track, desired []language.Tag, generated bool) (Track, bool) {
	indices := make([]int, 0, len(tracks))
	supported := make([]language.Tag, 0, len(tracks))
	for i, track := range tracks {
		if track.Generated != generated {
			continue
		}
		tag, err := language.Parse(track.Language)
		if err != nil {
			continue
		}
		indices = append(indices, i)
		supported = append(supported, tag)
	}
	if len(supported) == 0 {
		return Track{}, false
	}
	_, index, conf := language.NewMatcher(supported).Match(desired...)
	if conf < language.High {
		return Track{}, false
	}
	return tracks[indices[index]], true
}

func parseTags(codes []string) []language.Tag {
	tags := make([]language.Tag, 0, len(codes))
	for _, code := range codes {
		if tag, err := language.Parse(strings.TrimSpace(code)); err == nil {
			tags = append(tags, tag)
		}
	}
	return tags
}

type trackList struct {
	XMLName xml.Name   `xml:"transcript_list"`
	Tracks  []trackXML `xml:"track"`
}

type trackXML struct {
	ID           string `xml:"id,attr"`
	Name         string `xml:"name,attr"`
	LangCode     string `xml:"lang_code,attr"`
	LangOriginal string `xml:"lang_original,attr"`
	LangDefault  string `xml:"lang_default,attr"`
	Kind         string `xml:"kind,attr"`
}

type transcriptXML struct {
	XMLName xml.Name  `xml:"transcript"`
	Texts   []textXML `xml:"text"`
}

type textXML struct {
	Start   string `xml:"start,attr"`
	Dur     string `xml:"dur,attr"`
	Content string `xml:",chardata"`
}

func toFloat(value string) float64 {
	if value == "" {
		return 0
	}
	f, _ := strconv.ParseFloat(value, 64)
	return f
}

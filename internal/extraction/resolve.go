package extraction

import (
	"net/url"
	"regexp"
	"strings"
)

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ResolveVideoID extracts the video ID from the YouTube URL shapes users
// paste in: long-form watch URLs, youtu.be short links, and embed/shorts/live
// paths. Anything else reports not found rather than an error.
func ResolveVideoID(rawURL string) (string, bool) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return "", false
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", false
	}

	host := strings.TrimPrefix(strings.ToLower(parsed.Host), "www.")
	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")

	switch host {
	case "youtu.be":
		return validVideoID(segments[0])
	case "youtube.com", "m.youtube.com", "music.youtube.com":
		if segments[0] == "watch" {
			return validVideoID(parsed.Query().Get("v"))
		}
		if len(segments) >= 2 {
			switch segments[0] {
			case "embed", "shorts", "live", "v":
				return validVideoID(segments[1])
			}
		}
	}
	return "", false
}

func validVideoID(id string) (string, bool) {
	if videoIDPattern.MatchString(id) {
		return id, true
	}
	return "", false
}

// WatchURL renders the canonical long-form URL for a video ID.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

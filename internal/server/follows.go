package server

import (
	"net/http"
	"strings"

	"ladle/internal/api"
	"ladle/internal/logging"
)

func (s *Server) handleFollows(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		follows, err := s.store.ListFollows(r.Context())
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.writeJSON(w, http.StatusOK, api.FollowListResponse{Follows: api.FromFollows(follows)})
	case http.MethodPost:
		var req struct {
			ChannelID   string `json:"channel_id"`
			ChannelName string `json:"channel_name"`
		}
		if err := decodeJSON(r, &req); err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		channelID := strings.TrimSpace(req.ChannelID)
		if channelID == "" {
			s.writeError(w, http.StatusBadRequest, "channel_id is required")
			return
		}

		name := strings.TrimSpace(req.ChannelName)
		if name == "" && s.feeds != nil {
			title, err := s.feeds.ChannelTitle(r.Context(), channelID)
			if err != nil {
				s.logger.Warn("channel title lookup failed",
					logging.String("channel_id", channelID),
					logging.Error(err))
			} else {
				name = title
			}
		}

		follow, err := s.store.CreateFollow(r.Context(), channelID, name)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.writeJSON(w, http.StatusCreated, api.FollowResponse{Follow: api.FromFollow(follow)})
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleFollowItem(w http.ResponseWriter, r *http.Request) {
	parts := splitPath(r.URL.Path, "/api/follows/")
	switch {
	case len(parts) == 1:
		id := parts[0]
		switch r.Method {
		case http.MethodGet:
			follow, err := s.store.GetFollow(r.Context(), id)
			if err != nil {
				s.writeError(w, http.StatusInternalServerError, err.Error())
				return
			}
			if follow == nil {
				s.writeError(w, http.StatusNotFound, "follow not found")
				return
			}
			s.writeJSON(w, http.StatusOK, api.FollowResponse{Follow: api.FromFollow(follow)})
		case http.MethodDelete:
			deleted, err := s.store.DeleteFollow(r.Context(), id)
			if err != nil {
				s.writeError(w, http.StatusInternalServerError, err.Error())
				return
			}
			if !deleted {
				s.writeError(w, http.StatusNotFound, "follow not found")
				return
			}
			s.writeJSON(w, http.StatusNoContent, nil)
		default:
			s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	case len(parts) == 2 && parts[1] == "videos":
		if r.Method != http.MethodGet {
			s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		s.handleFollowVideos(w, r, parts[0])
	default:
		s.writeError(w, http.StatusNotFound, "follow not found")
	}
}

func (s *Server) handleFollowVideos(w http.ResponseWriter, r *http.Request, id string) {
	if s.feeds == nil {
		s.writeError(w, http.StatusServiceUnavailable, "feed lookups are not available")
		return
	}

	follow, err := s.store.GetFollow(r.Context(), id)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if follow == nil {
		s.writeError(w, http.StatusNotFound, "follow not found")
		return
	}

	videos, err := s.feeds.RecentVideos(r.Context(), follow.ChannelID)
	if err != nil {
		s.writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, api.VideoListResponse{Videos: api.FromVideos(videos)})
}

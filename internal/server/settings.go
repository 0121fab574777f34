package server

import (
	"net/http"
	"sort"
	"strings"

	"ladle/internal/api"
)

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.writeSettings(w, r)
	case http.MethodPut:
		var req map[string]string
		if err := decodeJSON(r, &req); err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		keys := make([]string, 0, len(req))
		for key := range req {
			if strings.TrimSpace(key) == "" {
				s.writeError(w, http.StatusBadRequest, "setting key is empty")
				return
			}
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			if err := s.store.SetSetting(r.Context(), key, req[key]); err != nil {
				s.writeError(w, http.StatusInternalServerError, err.Error())
				return
			}
		}
		s.writeSettings(w, r)
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleSettingItem(w http.ResponseWriter, r *http.Request) {
	parts := splitPath(r.URL.Path, "/api/settings/")
	if len(parts) != 1 {
		s.writeError(w, http.StatusNotFound, "setting not found")
		return
	}

	key := parts[0]
	switch r.Method {
	case http.MethodGet:
		value, found, err := s.store.GetSetting(r.Context(), key)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if !found {
			s.writeError(w, http.StatusNotFound, "setting not found")
			return
		}
		s.writeJSON(w, http.StatusOK, api.SettingsResponse{Settings: map[string]string{key: value}})
	case http.MethodDelete:
		deleted, err := s.store.DeleteSetting(r.Context(), key)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if !deleted {
			s.writeError(w, http.StatusNotFound, "setting not found")
			return
		}
		s.writeJSON(w, http.StatusNoContent, nil)
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) writeSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.store.ListSettings(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if settings == nil {
		settings = map[string]string{}
	}
	s.writeJSON(w, http.StatusOK, api.SettingsResponse{Settings: settings})
}

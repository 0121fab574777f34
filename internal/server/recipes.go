package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"ladle/internal/api"
	"ladle/internal/extraction"
	"ladle/internal/format"
	"ladle/internal/logging"
	"ladle/internal/notifications"
	"ladle/internal/store"
)

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.extractor == nil {
		s.writeError(w, http.StatusServiceUnavailable, "extraction is not available")
		return
	}

	var req struct {
		URL string `json:"url"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rawURL := strings.TrimSpace(req.URL)
	if rawURL == "" {
		s.writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	rec, err := s.extractor.Extract(r.Context(), rawURL)
	if err != nil {
		s.notifyExtractionFailed(r.Context(), rawURL, err)
		s.writeError(w, statusForExtraction(err), err.Error())
		return
	}

	saved, err := s.store.SaveRecipe(r.Context(), rec)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.notifyExtractionCompleted(r.Context(), saved)
	s.writeJSON(w, http.StatusOK, api.RecipeResponse{Recipe: api.FromRecipeRecord(saved)})
}

func (s *Server) handleRecipes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	query := r.URL.Query()
	opts := store.ListRecipesOptions{
		Search:  strings.TrimSpace(query.Get("search")),
		Channel: strings.TrimSpace(query.Get("channel")),
	}
	if value := strings.TrimSpace(query.Get("limit")); value != "" {
		limit, err := strconv.Atoi(value)
		if err != nil || limit < 0 {
			s.writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		opts.Limit = limit
	}

	recipes, err := s.store.ListRecipes(r.Context(), opts)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, api.RecipeListResponse{Recipes: api.FromRecipes(recipes)})
}

func (s *Server) handleRecipeItem(w http.ResponseWriter, r *http.Request) {
	parts := splitPath(r.URL.Path, "/api/recipes/")
	switch {
	case len(parts) == 1:
		id := parts[0]
		switch r.Method {
		case http.MethodGet:
			rec, err := s.store.GetRecipe(r.Context(), id)
			if err != nil {
				s.writeError(w, http.StatusInternalServerError, err.Error())
				return
			}
			if rec == nil {
				s.writeError(w, http.StatusNotFound, "recipe not found")
				return
			}
			s.writeJSON(w, http.StatusOK, api.RecipeResponse{Recipe: api.FromRecipeRecord(rec)})
		case http.MethodDelete:
			deleted, err := s.store.DeleteRecipe(r.Context(), id)
			if err != nil {
				s.writeError(w, http.StatusInternalServerError, err.Error())
				return
			}
			if !deleted {
				s.writeError(w, http.StatusNotFound, "recipe not found")
				return
			}
			s.writeJSON(w, http.StatusNoContent, nil)
		default:
			s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	case len(parts) == 2 && parts[1] == "export":
		if r.Method != http.MethodGet {
			s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		s.handleRecipeExport(w, r, parts[0])
	default:
		s.writeError(w, http.StatusNotFound, "recipe not found")
	}
}

func (s *Server) handleRecipeExport(w http.ResponseWriter, r *http.Request, id string) {
	rec, err := s.store.GetRecipe(r.Context(), id)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if rec == nil {
		s.writeError(w, http.StatusNotFound, "recipe not found")
		return
	}

	name := strings.TrimSpace(r.URL.Query().Get("format"))
	if name == "" {
		name = "json"
	}
	switch name {
	case "json":
		data, err := format.ExportJSON(extraction.Formatted(&rec.Record))
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.writeRaw(w, "application/json", data)
	case "srt":
		s.writeRaw(w, "text/plain; charset=utf-8", []byte(format.SubtitleTrack(rec.Record.Steps)))
	case "markdown":
		s.writeRaw(w, "text/markdown; charset=utf-8", []byte(format.NarrativeDocument(extraction.Formatted(&rec.Record))))
	default:
		s.writeError(w, http.StatusBadRequest, "unknown export format "+strconv.Quote(name))
	}
}

func (s *Server) notifyExtractionCompleted(ctx context.Context, saved *store.Recipe) {
	payload := notifications.Payload{
		"title": saved.Title,
		"steps": strconv.Itoa(len(saved.Record.Steps)),
	}
	if err := s.notifier.Publish(ctx, notifications.EventExtractionCompleted, payload); err != nil {
		s.logger.Warn("extraction notification failed", logging.Error(err))
	}
}

// notifyExtractionFailed alerts on pipeline failures. URLs that never
// resolved to a video are caller mistakes and stay quiet.
func (s *Server) notifyExtractionFailed(ctx context.Context, rawURL string, cause error) {
	var extractionErr *extraction.Error
	if !errors.As(cause, &extractionErr) || extractionErr.VideoID == "" {
		return
	}
	payload := notifications.Payload{
		"url":   rawURL,
		"error": cause.Error(),
	}
	if err := s.notifier.Publish(ctx, notifications.EventExtractionFailed, payload); err != nil {
		s.logger.Warn("extraction failure notification failed", logging.Error(err))
	}
}

// splitPath strips the route prefix and returns the non-empty remaining
// segments.
func splitPath(path, prefix string) []string {
	rest := strings.TrimPrefix(path, prefix)
	rest = strings.Trim(rest, "/")
	if rest == "" {
		return nil
	}
	return strings.Split(rest, "/")
}

package server

import (
	"net/http"
	"strings"

	"ladle/internal/api"
	"ladle/internal/store"
)

type collectionRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) handleCollections(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		collections, err := s.store.ListCollections(r.Context())
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.writeJSON(w, http.StatusOK, api.CollectionListResponse{Collections: api.FromCollections(collections)})
	case http.MethodPost:
		var req collectionRequest
		if err := decodeJSON(r, &req); err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			s.writeError(w, http.StatusBadRequest, "collection name is required")
			return
		}
		col, err := s.store.CreateCollection(r.Context(), req.Name, req.Description)
		if err != nil {
			if store.IsConflict(err) {
				s.writeError(w, http.StatusConflict, "collection name already exists")
				return
			}
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.writeJSON(w, http.StatusCreated, api.CollectionResponse{Collection: api.FromCollection(col)})
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleCollectionItem(w http.ResponseWriter, r *http.Request) {
	parts := splitPath(r.URL.Path, "/api/collections/")
	switch {
	case len(parts) == 1:
		s.handleCollection(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "recipes":
		if r.Method != http.MethodPost {
			s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		s.handleCollectionAdd(w, r, parts[0])
	case len(parts) == 3 && parts[1] == "recipes":
		if r.Method != http.MethodDelete {
			s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		removed, err := s.store.RemoveRecipeFromCollection(r.Context(), parts[0], parts[2])
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if !removed {
			s.writeError(w, http.StatusNotFound, "recipe not in collection")
			return
		}
		s.writeJSON(w, http.StatusNoContent, nil)
	default:
		s.writeError(w, http.StatusNotFound, "collection not found")
	}
}

func (s *Server) handleCollection(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		col, err := s.store.GetCollection(r.Context(), id)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if col == nil {
			s.writeError(w, http.StatusNotFound, "collection not found")
			return
		}
		members, err := s.store.CollectionRecipes(r.Context(), id)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.writeJSON(w, http.StatusOK, api.CollectionResponse{
			Collection: api.FromCollection(col),
			Recipes:    api.FromRecipes(members),
		})
	case http.MethodPut:
		var req collectionRequest
		if err := decodeJSON(r, &req); err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			s.writeError(w, http.StatusBadRequest, "collection name is required")
			return
		}
		col, err := s.store.UpdateCollection(r.Context(), id, req.Name, req.Description)
		if err != nil {
			if store.IsConflict(err) {
				s.writeError(w, http.StatusConflict, "collection name already exists")
				return
			}
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if col == nil {
			s.writeError(w, http.StatusNotFound, "collection not found")
			return
		}
		s.writeJSON(w, http.StatusOK, api.CollectionResponse{Collection: api.FromCollection(col)})
	case http.MethodDelete:
		deleted, err := s.store.DeleteCollection(r.Context(), id)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if !deleted {
			s.writeError(w, http.StatusNotFound, "collection not found")
			return
		}
		s.writeJSON(w, http.StatusNoContent, nil)
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleCollectionAdd(w http.ResponseWriter, r *http.Request, id string) {
	var req struct {
		RecipeID string `json:"recipe_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.RecipeID) == "" {
		s.writeError(w, http.StatusBadRequest, "recipe_id is required")
		return
	}

	col, err := s.store.GetCollection(r.Context(), id)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if col == nil {
		s.writeError(w, http.StatusNotFound, "collection not found")
		return
	}
	rec, err := s.store.GetRecipe(r.Context(), req.RecipeID)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if rec == nil {
		s.writeError(w, http.StatusNotFound, "recipe not found")
		return
	}

	if err := s.store.AddRecipeToCollection(r.Context(), id, req.RecipeID); err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusNoContent, nil)
}

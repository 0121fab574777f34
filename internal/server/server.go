package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"ladle/internal/api"
	"ladle/internal/config"
	"ladle/internal/follows"
	"ladle/internal/logging"
	"ladle/internal/notifications"
	"ladle/internal/recipe"
	"ladle/internal/services"
	"ladle/internal/store"
)

// RecipeExtractor produces a validated recipe record from a video URL.
type RecipeExtractor interface {
	Extract(ctx context.Context, rawURL string) (*recipe.VideoRecipe, error)
}

// FeedSource reads followed-channel upload feeds.
type FeedSource interface {
	RecentVideos(ctx context.Context, channelID string) ([]follows.Video, error)
	ChannelTitle(ctx context.Context, channelID string) (string, error)
}

// Options carries the server's collaborators. Nil fields disable the
// corresponding routes rather than failing construction.
type Options struct {
	Extractor RecipeExtractor
	Feeds     FeedSource
	Notifier  notifications.Service
	Logger    *slog.Logger
}

// Server serves the ladle HTTP API.
type Server struct {
	bind      string
	store     *store.Store
	extractor RecipeExtractor
	feeds     FeedSource
	notifier  notifications.Service
	logger    *slog.Logger

	listener net.Listener
	server   *http.Server
}

// New assembles the API server. The bind address comes from the config;
// the token, when set, protects every route except the health probe.
func New(cfg *config.Config, st *store.Store, opts Options) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if st == nil {
		return nil, errors.New("store is required")
	}
	bind := strings.TrimSpace(cfg.Paths.APIBind)
	if bind == "" {
		return nil, errors.New("api bind address is empty")
	}

	notifier := opts.Notifier
	if notifier == nil {
		notifier = notifications.NewService(cfg)
	}

	srv := &Server{
		bind:      bind,
		store:     st,
		extractor: opts.Extractor,
		feeds:     opts.Feeds,
		notifier:  notifier,
		logger:    logging.NewComponentLogger(opts.Logger, "api-server"),
	}

	token := strings.TrimSpace(cfg.Paths.APIToken)
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", srv.handleHealth)
	mux.HandleFunc("/api/extract", authMiddleware(token, srv.handleExtract))
	mux.HandleFunc("/api/recipes", authMiddleware(token, srv.handleRecipes))
	mux.HandleFunc("/api/recipes/", authMiddleware(token, srv.handleRecipeItem))
	mux.HandleFunc("/api/collections", authMiddleware(token, srv.handleCollections))
	mux.HandleFunc("/api/collections/", authMiddleware(token, srv.handleCollectionItem))
	mux.HandleFunc("/api/follows", authMiddleware(token, srv.handleFollows))
	mux.HandleFunc("/api/follows/", authMiddleware(token, srv.handleFollowItem))
	mux.HandleFunc("/api/expenses", authMiddleware(token, srv.handleExpenses))
	mux.HandleFunc("/api/expenses/", authMiddleware(token, srv.handleExpenseItem))
	mux.HandleFunc("/api/settings", authMiddleware(token, srv.handleSettings))
	mux.HandleFunc("/api/settings/", authMiddleware(token, srv.handleSettingItem))

	srv.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv, nil
}

// Start begins listening and serving. Serving stops when ctx ends.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop() {
	if s == nil {
		return
	}
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

// Addr reports the bound address once Start has succeeded.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	stats, err := s.store.Stats(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, api.HealthStatus{
		Status:   "ok",
		Database: s.store.Path(),
		Counts:   api.FromStats(stats),
	})
}

// statusForExtraction maps a pipeline failure to an HTTP status: caller
// mistakes are 4xx, upstream trouble is a gateway error.
func statusForExtraction(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrConfiguration):
		return http.StatusInternalServerError
	default:
		return http.StatusBadGateway
	}
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) writeRaw(w http.ResponseWriter, contentType string, payload []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(payload); err != nil {
		s.logger.Error("failed to write response", logging.Error(err))
	}
}

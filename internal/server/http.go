package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/escaperoom/escaperoom-backend/internal/auth"
	"github.com/escaperoom/escaperoom-backend/internal/config"
	"github.com/escaperoom/escaperoom-backend/internal/story"
)

// Check reports whether a dependency is reachable.
type Check func(ctx context.Context) error

// Handlers groups the feature handlers mounted on the router.
type Handlers struct {
	AuthService *auth.Service
	Auth        *auth.HTTPHandlers
	Story       *story.HTTPHandlers
}

const readyTimeout = 2 * time.Second

// NewHTTPServer wires the API router into an http.Server.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, checks map[string]Check, h Handlers) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           NewRouter(logger, checks, h),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// NewRouter registers health, metrics, auth and story routes.
func NewRouter(logger zerolog.Logger, checks map[string]Check, h Handlers) http.Handler {
	mux := http.NewServeMux()
	route := func(pattern string, handler http.Handler) {
		mux.Handle(pattern, instrument(pattern, handler))
	}

	route("GET /healthz", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}))
	route("GET /readyz", readyHandler(logger, checks))
	mux.Handle("GET /metrics", promhttp.Handler())

	if h.Auth != nil {
		route("POST /register", http.HandlerFunc(h.Auth.Register))
		route("POST /login", http.HandlerFunc(h.Auth.Login))
		me := auth.RequireAuth(http.HandlerFunc(h.Auth.GetMe))
		if h.AuthService != nil {
			me = auth.AuthMiddleware(h.AuthService, logger)(me)
		}
		route("GET /users/me", me)
	}

	if h.Story != nil {
		route("POST /story", http.HandlerFunc(h.Story.AddStory))
		route("GET /story/{id}", http.HandlerFunc(h.Story.GetStory))
		route("GET /stories/random", http.HandlerFunc(h.Story.RandomStories))
		route("POST /puzzle", http.HandlerFunc(h.Story.AddPuzzle))
		route("GET /puzzles/{story_id}", http.HandlerFunc(h.Story.ListPuzzles))
		route("GET /puzzle/{id}/hint", http.HandlerFunc(h.Story.Hint))
		route("GET /generate/{subject}/{difficulty}", http.HandlerFunc(h.Story.GenerateRaw))
		route("POST /generate/{subject}/{difficulty}", http.HandlerFunc(h.Story.ImportGenerated))
	}

	return requestLogger(logger)(mux)
}

func readyHandler(logger zerolog.Logger, checks map[string]Check) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		status := map[string]string{}
		healthy := true
		for name, check := range checks {
			if err := check(ctx); err != nil {
				logger.Error().Err(err).Str("dependency", name).Msg("dependency ping failed")
				status[name] = "unavailable"
				healthy = false
				continue
			}
			status[name] = "ok"
		}

		if !healthy {
			writeJSON(w, http.StatusBadGateway, map[string]interface{}{"status": "degraded", "dependencies": status})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"status": "ok", "dependencies": status})
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

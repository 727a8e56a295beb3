package app

import (
	"context"
	"encoding/json"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	analytichttp "github.com/zainulsyai/eko-hajj/internal/analytics/http"
	"github.com/zainulsyai/eko-hajj/internal/auth"
	monitoringhttp "github.com/zainulsyai/eko-hajj/internal/monitoring/http"
	"github.com/zainulsyai/eko-hajj/internal/observability"
	queryhttp "github.com/zainulsyai/eko-hajj/internal/query/http"
	"github.com/zainulsyai/eko-hajj/internal/shared"
	"github.com/zainulsyai/eko-hajj/jobs"
	"github.com/zainulsyai/eko-hajj/web"
)

// ReadyChecker reports whether the record store finished loading.
type ReadyChecker interface {
	Ready() bool
}

// Pinger checks an upstream dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager
	CSRFManager    *shared.CSRFManager
	Store          ReadyChecker
	PDF            Pinger

	AuthHandler       *auth.Handler
	AnalyticsHandler  *analytichttp.Handler
	QueryHandler      *queryhttp.Handler
	MonitoringHandler *monitoringhttp.Handler
	JobHandler        *jobs.Handler
	Metrics           *observability.Metrics
	// AccessLog enables chi request logging.
	AccessLog bool
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}
	if params.AccessLog {
		r.Use(chimw.Logger)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		status := map[string]string{"status": "ok", "store": "ready"}
		if params.Store != nil && !params.Store.Ready() {
			status["store"] = "loading"
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(status)
	})

	r.Get("/healthz/pdf", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if params.PDF == nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "disabled"})
			return
		}
		if err := params.PDF.Ping(r.Context()); err != nil {
			params.Logger.Warn("gotenberg ping failed", slog.Any("error", err))
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "unavailable"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	if params.AuthHandler != nil {
		r.Route("/auth", params.AuthHandler.MountRoutes)
	}
	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireLogin)
		params.AnalyticsHandler.MountRoutes(pr)
		params.QueryHandler.MountRoutes(pr)
		params.MonitoringHandler.MountRoutes(pr)
	})

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		params.Logger.Error("create static sub filesystem", slog.Any("error", err))
	} else {
		fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))
		r.Handle("/static/*", staticCacheHandler(fileServer))
	}

	return r
}

// staticCacheHandler wraps a file server with a one hour Cache-Control header.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}

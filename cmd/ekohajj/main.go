package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/zainulsyai/eko-hajj/internal/analytics"
	"github.com/zainulsyai/eko-hajj/internal/analytics/export"
	analytichttp "github.com/zainulsyai/eko-hajj/internal/analytics/http"
	"github.com/zainulsyai/eko-hajj/internal/app"
	"github.com/zainulsyai/eko-hajj/internal/auth"
	"github.com/zainulsyai/eko-hajj/internal/monitoring"
	monitoringhttp "github.com/zainulsyai/eko-hajj/internal/monitoring/http"
	"github.com/zainulsyai/eko-hajj/internal/observability"
	queryhttp "github.com/zainulsyai/eko-hajj/internal/query/http"
	"github.com/zainulsyai/eko-hajj/internal/shared"
	"github.com/zainulsyai/eko-hajj/internal/view"
	"github.com/zainulsyai/eko-hajj/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	redisClient, err := app.OpenRedis(ctx, cfg)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}

	var sessionStore shared.SessionStore = shared.NewMemorySessionStore()
	if redisClient != nil {
		sessionStore = shared.NewRedisSessionStore(redisClient)
	}
	sessionManager := shared.NewSessionManager(sessionStore, "ekohajj_session", cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	store, err := app.OpenStore(ctx, cfg, redisClient, logger, app.StoreOptions{})
	if err != nil {
		logger.Error("open record store", slog.Any("error", err))
		os.Exit(1)
	}

	metrics := observability.NewMetrics()
	analyticsService, analyticsCache := app.NewAnalytics(cfg, store, redisClient, logger)
	store.OnChange(func(ctx context.Context, ch monitoring.Change) {
		metrics.RecordMutation(string(ch.Collection), ch.Op, ch.Version)
	})
	if analyticsCache != nil {
		if err := analyticsCache.Bump(ctx); err != nil {
			logger.Warn("bump cache after seed", slog.Any("error", err))
		}
		analyticsCache.OnLookup(metrics.RecordCacheLookup)
		store.OnChange(analyticsCache.Invalidate)
		if err := analyticsCache.ListenForInvalidation(ctx, analytics.BumpChannel); err != nil {
			logger.Warn("listen for cache bumps", slog.Any("error", err))
		}
	}

	pdfExporter := &export.PDFExporter{Endpoint: cfg.GotenbergURL, Client: &http.Client{Timeout: 30 * time.Second}}

	var (
		warmer     monitoringhttp.Warmer
		jobHandler *jobs.Handler
	)
	if redisClient != nil {
		redisOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr}
		jobsClient, err := jobs.NewClient(redisOpts)
		if err != nil {
			logger.Error("init jobs client", slog.Any("error", err))
			os.Exit(1)
		}
		defer func() {
			if err := jobsClient.Close(); err != nil {
				logger.Warn("jobs client close", slog.Any("error", err))
			}
		}()
		warmer = jobsClient

		inspector := asynq.NewInspector(redisOpts)
		defer func() {
			if err := inspector.Close(); err != nil {
				logger.Warn("inspector close", slog.Any("error", err))
			}
		}()
		jobHandler = jobs.NewHandler(inspector, logger)
	} else {
		jobHandler = jobs.NewHandler(nil, logger)
	}

	authHandler := auth.NewHandler(logger, auth.NewService(auth.WithPasswordHash(cfg.AuthPasswordHash)), templates, sessionManager, csrfManager)
	analyticsHandler := analytichttp.NewHandler(logger, analyticsService, templates, csrfManager, pdfExporter)
	queryHandler := queryhttp.NewHandler(logger, store, templates, csrfManager, pdfExporter)
	monitoringHandler := monitoringhttp.NewHandler(logger, store, templates, csrfManager, warmer)

	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		SessionManager:    sessionManager,
		CSRFManager:       csrfManager,
		Store:             store,
		PDF:               pdfExporter,
		AuthHandler:       authHandler,
		AnalyticsHandler:  analyticsHandler,
		QueryHandler:      queryHandler,
		MonitoringHandler: monitoringHandler,
		JobHandler:        jobHandler,
		Metrics:           metrics,
		AccessLog:         true,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server",
			slog.String("addr", cfg.AppAddr),
			slog.String("store_backend", cfg.StoreBackend),
			slog.Bool("redis", redisClient != nil))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}

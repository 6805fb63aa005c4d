// Command propmate runs the property-management dashboard service: it polls
// the upstream FixMate maintenance service, serves the manager's issue queue
// and portfolio directory over REST, and pushes live updates over WebSocket.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/propmate/propmate/internal/adapter/fixmate"
	pmhttp "github.com/propmate/propmate/internal/adapter/http"
	"github.com/propmate/propmate/internal/adapter/memory"
	pmotel "github.com/propmate/propmate/internal/adapter/otel"
	pmristretto "github.com/propmate/propmate/internal/adapter/ristretto"
	"github.com/propmate/propmate/internal/adapter/ws"
	"github.com/propmate/propmate/internal/config"
	"github.com/propmate/propmate/internal/logger"
	"github.com/propmate/propmate/internal/middleware"
	"github.com/propmate/propmate/internal/resilience"
	"github.com/propmate/propmate/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log := logger.New(cfg.Logging)
	slog.SetDefault(log)

	slog.Info("config loaded",
		"port", cfg.Server.Port,
		"upstream", cfg.Upstream.URL,
		"org_id", cfg.Upstream.OrgID,
		"queue_interval", cfg.Poll.QueueInterval,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Telemetry ---
	var otelEndpoint string
	if cfg.Telemetry.Enabled {
		otelEndpoint = cfg.Telemetry.Endpoint
	}
	shutdownOtel, err := pmotel.Setup(ctx, cfg.Logging.Service, otelEndpoint)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		if err := shutdownOtel(shutdownCtx); err != nil {
			slog.Warn("telemetry shutdown", "error", err)
		}
	}()

	metrics, err := pmotel.NewMetrics()
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	// --- Infrastructure ---
	views, err := pmristretto.New(cfg.Cache.MaxEntries)
	if err != nil {
		return fmt.Errorf("view cache: %w", err)
	}
	defer views.Close()

	client := fixmate.NewClient(cfg.Upstream.URL, cfg.Upstream.OrgID)
	client.SetBreaker(resilience.NewBreaker(cfg.Breaker.MaxFailures, cfg.Breaker.Timeout))

	store := memory.NewStore()
	hub := ws.NewHub(log)

	// --- Services ---
	queueSvc := service.NewQueueService(client, views, hub, metrics, *cfg, log)
	issueSvc := service.NewIssueService(client, store, queueSvc, hub, *cfg, log)
	dirSvc := service.NewDirectoryService(client, store, cfg.Upstream.OrgID, log)
	analyticsSvc := service.NewAnalyticsService(client)

	stopPolling := queueSvc.StartPolling(ctx, cfg.Poll.QueueInterval)
	defer stopPolling()

	// --- HTTP ---
	handlers := pmhttp.NewHandlers(queueSvc, issueSvc, dirSvc, analyticsSvc)

	r := chi.NewRouter()
	r.Use(pmhttp.CORS(cfg.Server.CORSOrigin))
	r.Use(pmhttp.SecurityHeaders)
	// Identity before the request logger so log lines carry both IDs.
	r.Use(middleware.RequestID)
	r.Use(middleware.OrgID(cfg.Upstream.OrgID))
	r.Use(pmhttp.Logger)
	r.Use(pmotel.HTTPMiddleware(cfg.Logging.Service))
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	pmhttp.MountRoutes(r, handlers, hub)

	addr := ":" + cfg.Server.Port
	// No ReadTimeout/WriteTimeout: their connection deadlines outlive the
	// hijack on /ws and would cut long-lived dashboard sockets. Slow-client
	// protection comes from ReadHeaderTimeout and the per-route timeouts.
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-done
	slog.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

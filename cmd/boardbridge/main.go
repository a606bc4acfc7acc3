package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	bbhttp "github.com/Strob0t/BoardBridge/internal/adapter/http"
	"github.com/Strob0t/BoardBridge/internal/adapter/mattermost"
	bbotel "github.com/Strob0t/BoardBridge/internal/adapter/otel"
	"github.com/Strob0t/BoardBridge/internal/adapter/ristretto"
	"github.com/Strob0t/BoardBridge/internal/adapter/trello"
	"github.com/Strob0t/BoardBridge/internal/config"
	"github.com/Strob0t/BoardBridge/internal/i18n"
	"github.com/Strob0t/BoardBridge/internal/logger"
	"github.com/Strob0t/BoardBridge/internal/resilience"
	"github.com/Strob0t/BoardBridge/internal/service"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "admin" {
		if err := runAdmin(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		return
	}

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

	slog.SetDefault(logger.New(cfg.Logging))
	slog.Info("config loaded",
		"port", cfg.Server.Port,
		"site_url", cfg.Mattermost.SiteURL,
		"trello_base_url", cfg.Trello.BaseURL,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Tracing ---
	shutdownTracer, err := bbotel.InitTracer(ctx, cfg.Logging.Service, cfg.Tracing)
	if err != nil {
		return fmt.Errorf("tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(shutdownCtx); err != nil {
			slog.Warn("tracer shutdown failed", "error", err)
		}
	}()

	// --- Infrastructure ---
	dedupCache, err := ristretto.New(cfg.Cache.MaxSizeMB << 20)
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	defer dedupCache.Close()

	breaker := resilience.NewBreaker(cfg.Breaker.MaxFailures, cfg.Breaker.Timeout)
	providers := trello.Factory(cfg.Trello.BaseURL, breaker)
	poster := mattermost.NewPoster(cfg.Mattermost.SiteURL, cfg.Mattermost.BotToken)

	// --- Services ---
	subscriptions := service.NewSubscriptionService(providers)
	notifications := service.NewNotificationService(poster, dedupCache, cfg.Cache.DedupTTL)

	// --- HTTP ---
	handlers := bbhttp.NewHandlers(subscriptions, notifications, i18n.NewBundle())

	r := chi.NewRouter()
	r.Use(bbhttp.CORS(cfg.Server.CORSOrigin))
	r.Use(bbhttp.Logger)
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(bbotel.HTTPMiddleware(cfg.Logging.Service))

	bbhttp.MountRoutes(r, handlers, cfg.Mattermost.WebhookSecret)

	addr := ":" + cfg.Server.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

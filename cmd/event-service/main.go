package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"eventflow/internal/clients/category"
	"eventflow/internal/clients/comment"
	"eventflow/internal/clients/request"
	"eventflow/internal/clients/stats"
	"eventflow/internal/clients/user"
	"eventflow/internal/config"
	"eventflow/internal/http-server/handlers/event/adminUpdateEvent"
	"eventflow/internal/http-server/handlers/event/categoryEvents"
	"eventflow/internal/http-server/handlers/event/createEvent"
	"eventflow/internal/http-server/handlers/event/getAdminEvent"
	"eventflow/internal/http-server/handlers/event/getEvent"
	"eventflow/internal/http-server/handlers/event/getEventsByIds"
	"eventflow/internal/http-server/handlers/event/getUserEvent"
	"eventflow/internal/http-server/handlers/event/listAdminEvents"
	"eventflow/internal/http-server/handlers/event/listEvents"
	"eventflow/internal/http-server/handlers/event/listUserEvents"
	"eventflow/internal/http-server/handlers/event/updateEvent"
	"eventflow/internal/http-server/middleware/mwlogger"
	"eventflow/internal/http-server/middleware/mwmetrics"
	"eventflow/internal/lib/logger/handlers/slogpretty"
	"eventflow/internal/lib/logger/sl"
	eventservice "eventflow/internal/service/event"
	"eventflow/internal/storage/postgres"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("starting event service", slog.String("env", cfg.Env))
	log.Debug("debug messages are enabled")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	pool, err := postgres.Connect(ctx, &cfg.Database)
	cancel()
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	storage := postgres.New(pool)

	svc := cfg.Services
	service := eventservice.New(
		log,
		storage,
		category.NewFallback(category.New(svc.CategoryURL, svc.Timeout, svc.MaxRetries), log),
		user.NewFallback(user.New(svc.UserURL, svc.Timeout, svc.MaxRetries), log),
		request.NewFallback(request.New(svc.RequestURL, svc.Timeout, svc.MaxRetries), log),
		comment.NewFallback(comment.New(svc.CommentURL, svc.Timeout, svc.MaxRetries), log),
		stats.NewFallback(stats.New(svc.StatsURL, svc.Timeout, svc.MaxRetries), log),
	)

	registry := prometheus.NewRegistry()
	metrics := mwmetrics.New(registry)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	router.Use(metrics.Handler)

	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	router.Route("/users/{userId}/events", func(r chi.Router) {
		r.Post("/", createEvent.New(log, service))
		r.Get("/", listUserEvents.New(log, service))
		r.Get("/{eventId}", getUserEvent.New(log, service))
		r.Patch("/{eventId}", updateEvent.New(log, service))
	})

	router.Route("/events", func(r chi.Router) {
		r.Get("/", listEvents.New(log, service))
		r.Get("/by-ids", getEventsByIds.New(log, service))
		r.Get("/category/{catId}/exists", categoryEvents.New(log, service))
		r.Get("/{id}", getEvent.New(log, service))
	})

	router.Route("/admin/events", func(r chi.Router) {
		r.Get("/", listAdminEvents.New(log, service))
		r.Get("/{eventId}", getAdminEvent.New(log, service))
		r.Patch("/{eventId}", adminUpdateEvent.New(log, service))
	})

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", sl.Err(err))
			stop <- syscall.SIGTERM
		}
	}()

	sign := <-stop

	log.Info("application stopping", slog.String("signal", sign.String()))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	log.Info("application stopped")

	pool.Close()

	log.Info("postgres connection closed")
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	h := opts.NewPrettyHandler(os.Stdout)

	return slog.New(h)
}

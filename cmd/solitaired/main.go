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

	"github.com/labstack/echo/v4"

	"github.com/khempel0430/solitaire/internal/adapters/cardart"
	"github.com/khempel0430/solitaire/internal/adapters/events/logpub"
	natspub "github.com/khempel0430/solitaire/internal/adapters/events/nats"
	httpadapter "github.com/khempel0430/solitaire/internal/adapters/http"
	"github.com/khempel0430/solitaire/internal/adapters/random"
	"github.com/khempel0430/solitaire/internal/adapters/results/discard"
	"github.com/khempel0430/solitaire/internal/adapters/results/postgres"
	"github.com/khempel0430/solitaire/internal/adapters/store/memory"
	redisstore "github.com/khempel0430/solitaire/internal/adapters/store/redis"
	"github.com/khempel0430/solitaire/internal/app"
	"github.com/khempel0430/solitaire/internal/config"
	"github.com/khempel0430/solitaire/internal/ports"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	// A host that cannot seed a shuffle cannot deal a game.
	if _, err := random.New(); err != nil {
		logger.Error("entropy source unavailable", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pingers []ports.Pinger
	var closers []func()

	var store ports.GameStore
	switch cfg.Store.Driver {
	case config.DriverRedis:
		rs := redisstore.New(redisstore.NewClient(cfg.Redis), cfg.Store.GameTTL)
		if err := rs.Ping(ctx); err != nil {
			logger.Error("failed to connect to redis", "addr", cfg.Redis.Addr, "error", err)
			os.Exit(1)
		}
		store = rs
		pingers = append(pingers, rs)
		closers = append(closers, func() { _ = rs.Close() })
	default:
		ms := memory.New(cfg.Store.GameTTL)
		go ms.Run(ctx, cfg.Store.EvictInterval)
		store = ms
	}

	var events ports.EventPublisher = logpub.New(logger)
	if cfg.NATS.URL != "" {
		nc, err := natspub.Connect(cfg.NATS)
		if err != nil {
			logger.Error("failed to connect to nats", "error", err)
			os.Exit(1)
		}
		pub := natspub.NewPublisher(nc, cfg.NATS.SubjectPrefix)
		events = pub
		pingers = append(pingers, pub)
		closers = append(closers, func() { _ = nc.Drain() })
	}

	var results ports.ResultRecorder = discard.New(logger)
	if cfg.Database.DSN != "" {
		pool, err := postgres.Connect(ctx, cfg.Database)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		rec := postgres.NewRecorder(pool)
		if err := rec.EnsureSchema(ctx); err != nil {
			logger.Error("failed to prepare database", "error", err)
			os.Exit(1)
		}
		results = rec
		pingers = append(pingers, rec)
		closers = append(closers, pool.Close)
	}

	svc := app.NewSolitaireService(store, events, results, random.New, logger)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(httpadapter.RequestIDMiddleware())
	e.Use(httpadapter.LoggingMiddleware(logger))

	handler := httpadapter.NewHandler(svc, cardart.NewCatalog(cfg.CardArt.BasePath), logger, pingers...)
	handler.Register(e)

	go func() {
		logger.Info("starting server", "addr", cfg.HTTPAddr, "store", cfg.Store.Driver)
		if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	for i := len(closers) - 1; i >= 0; i-- {
		closers[i]()
	}
}

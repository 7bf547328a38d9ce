package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/cardfinderz/api/routes"
	"github.com/angelmondragon/cardfinderz/internal/app"
	"github.com/angelmondragon/cardfinderz/internal/cart"
	"github.com/angelmondragon/cardfinderz/internal/catalog"
	"github.com/angelmondragon/cardfinderz/internal/featured"
	"github.com/angelmondragon/cardfinderz/internal/search"
	"github.com/angelmondragon/cardfinderz/internal/settings"
	"github.com/angelmondragon/cardfinderz/pkg/config"
	"github.com/angelmondragon/cardfinderz/pkg/instance"
	"github.com/angelmondragon/cardfinderz/pkg/logger"
	"github.com/angelmondragon/cardfinderz/pkg/metrics"
	"github.com/angelmondragon/cardfinderz/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) (err error) {
	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return err
		}
		defer func() {
			err = multierr.Append(err, redisClient.Close())
		}()
	} else {
		logg.Warn(ctx, "redis not configured, catalog cache and search rate limit disabled")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	searchMetrics := metrics.NewSearchMetrics(reg)

	state, err := buildState(cfg, logg, redisClient, searchMetrics)
	if err != nil {
		return err
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	logCtx := logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.GetID(),
	})
	logg.Info(logCtx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(cfg, logg, state, redisClient, reg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logg.Info(logCtx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return multierr.Combine(server.Shutdown(shutdownCtx), <-serveErr)
}

func buildState(cfg *config.Config, logg *logger.Logger, redisClient *redis.Client, m *metrics.SearchMetrics) (*app.State, error) {
	lookup, err := catalog.NewFromConfig(cfg.Catalog, redisClient, logg, m)
	if err != nil {
		return nil, err
	}
	searchCtrl, err := search.NewController(lookup, logg, m)
	if err != nil {
		return nil, err
	}
	settingsStore, err := settings.NewStore(cfg.Settings.DefaultCurrency, cfg.Settings.DefaultRate)
	if err != nil {
		return nil, err
	}
	items, err := featured.Load()
	if err != nil {
		return nil, err
	}
	return app.NewState(searchCtrl, cart.NewStore(), settingsStore, items)
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ngmaloney/weather-terminal/internal/api"
	"github.com/ngmaloney/weather-terminal/internal/config"
	"github.com/ngmaloney/weather-terminal/internal/geocoding"
	"github.com/ngmaloney/weather-terminal/internal/logging"
	"github.com/ngmaloney/weather-terminal/internal/lookup"
	"github.com/ngmaloney/weather-terminal/internal/openweather"
	"github.com/ngmaloney/weather-terminal/internal/store"
)

func main() {
	cfg, err := config.Load("weather-server", os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	// the server has no alt-screen to protect, so it always logs to stderr
	logger, err := logging.New("", cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited with error", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx := context.Background()

	st, err := store.Open(ctx, cfg.Store(), logger)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer func() { _ = st.Close() }()

	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	geocoder := geocoding.NewGeocoder(cfg.APIKey,
		geocoding.WithLimiter(limiter),
		geocoding.WithLogger(logger),
		geocoding.WithDefaultCountry(cfg.Country),
	)
	weather := openweather.NewClient(cfg.APIKey,
		openweather.WithLimiter(limiter),
		openweather.WithLogger(logger),
		openweather.WithLanguage(cfg.Language),
	)
	svc := lookup.NewService(geocoder, weather, st, logger)

	handlers := api.NewHandlers(svc, cfg.Clock, logger)
	router := api.NewRouter(handlers, st, logger)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("listening: %w", err)
		}
	}()

	select {
	case sig := <-quit:
		logger.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	logger.Info("server shut down cleanly")
	return nil
}

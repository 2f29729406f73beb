package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ngmaloney/weather-terminal/internal/config"
	"github.com/ngmaloney/weather-terminal/internal/geocoding"
	"github.com/ngmaloney/weather-terminal/internal/logging"
	"github.com/ngmaloney/weather-terminal/internal/lookup"
	"github.com/ngmaloney/weather-terminal/internal/openweather"
	"github.com/ngmaloney/weather-terminal/internal/store"
	"github.com/ngmaloney/weather-terminal/internal/ui"
)

func main() {
	cfg, err := config.Load("weather-terminal", os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogPath, cfg.Debug)
	if err != nil {
		fmt.Printf("Error opening log: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Error("exited with error", zap.Error(err))
		fmt.Printf("Error running application: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	st, err := store.Open(ctx, cfg.Store(), logger)
	cancel()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	// geocoding and weather calls draw from the same budget
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

	m := ui.NewModel(svc, ui.Options{
		Location: cfg.Location,
		Clock:    cfg.Clock,
		Logger:   logger,
	})

	logger.Info("starting", zap.String("clock", string(cfg.Clock)), zap.String("location", cfg.Location))
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

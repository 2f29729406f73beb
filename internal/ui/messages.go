package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/weather-terminal/internal/geocoding"
	"github.com/ngmaloney/weather-terminal/internal/models"
)

const (
	geocodeTimeout = 10 * time.Second
	fetchTimeout   = 30 * time.Second
	storeTimeout   = 5 * time.Second
)

// Message types for async operations

// lastLoadedMsg is sent when the remembered lookup has been read at startup
type lastLoadedMsg struct {
	last *models.LastLookup
	err  error
}

// resolvedMsg is sent when geocoding completes
type resolvedMsg struct {
	query     geocoding.Query
	locations []models.Location
	err       error
}

// currentFetchedMsg is sent when current conditions have been fetched
type currentFetchedMsg struct {
	observation *models.Observation
	err         error
}

// forecastFetchedMsg is sent when the forecast has been fetched
type forecastFetchedMsg struct {
	forecast *models.Forecast
	err      error
}

// rememberedMsg is sent after the last lookup has been saved
type rememberedMsg struct {
	err error
}

// errMsg is a message type for errors
type errMsg struct {
	err error
}

// loadLast reads the remembered lookup
func loadLast(svc Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		last, err := svc.Last(ctx)
		return lastLoadedMsg{last: last, err: err}
	}
}

// resolveQuery performs geocoding in the background
func resolveQuery(svc Service, raw string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), geocodeTimeout)
		defer cancel()

		q, locs, err := svc.Resolve(ctx, raw)
		return resolvedMsg{query: q, locations: locs, err: err}
	}
}

// fetchCurrent fetches current conditions
func fetchCurrent(svc Service, coords models.Coordinates) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		obs, err := svc.Current(ctx, coords)
		return currentFetchedMsg{observation: obs, err: err}
	}
}

// fetchForecast fetches the 5-day forecast
func fetchForecast(svc Service, coords models.Coordinates) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		fc, err := svc.Forecast(ctx, coords)
		return forecastFetchedMsg{forecast: fc, err: err}
	}
}

// remember saves the displayed location as the last lookup
func remember(svc Service, key string, loc models.Location, tzOffset int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		return rememberedMsg{err: svc.Remember(ctx, key, loc, tzOffset)}
	}
}

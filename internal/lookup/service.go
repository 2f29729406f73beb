// Package lookup ties geocoding, weather fetching and the last-lookup store
// together for the terminal UI and the JSON API.
package lookup

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ngmaloney/weather-terminal/internal/geocoding"
	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/openweather"
	"github.com/ngmaloney/weather-terminal/internal/store"
)

// Geocoder resolves search box input to candidate locations.
// *geocoding.Geocoder satisfies this interface.
type Geocoder interface {
	Parse(input string) (geocoding.Query, error)
	Geocode(ctx context.Context, q geocoding.Query) ([]models.Location, error)
}

// Report is everything shown for one location
type Report struct {
	Query       geocoding.Query
	Location    models.Location
	Observation *models.Observation
	Forecast    *models.Forecast
}

// Service orchestrates lookups
type Service struct {
	geocoder Geocoder
	weather  openweather.WeatherClient
	store    store.LocationStore
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates a new lookup service. store may be nil, in which case
// nothing is remembered between runs.
func NewService(geocoder Geocoder, weather openweather.WeatherClient, st store.LocationStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		geocoder: geocoder,
		weather:  weather,
		store:    st,
		logger:   logger,
		now:      time.Now,
	}
}

// Resolve parses raw input and geocodes it. The returned locations are
// ordered best match first and never empty when err is nil.
func (s *Service) Resolve(ctx context.Context, raw string) (geocoding.Query, []models.Location, error) {
	q, err := s.geocoder.Parse(raw)
	if err != nil {
		return geocoding.Query{}, nil, err
	}

	locs, err := s.geocoder.Geocode(ctx, q)
	if err != nil {
		return q, nil, err
	}

	s.logger.Info("resolved query",
		zap.String("query", q.Key()),
		zap.String("kind", q.Kind.String()),
		zap.Int("candidates", len(locs)),
	)
	return q, locs, nil
}

// Remember stores loc as the last lookup under the canonical query key
func (s *Service) Remember(ctx context.Context, key string, loc models.Location, tzOffset int) error {
	if s.store == nil {
		return nil
	}

	last := models.LastLookup{
		Query:          key,
		Location:       loc,
		TimezoneOffset: tzOffset,
		SavedAt:        s.now(),
	}
	if err := s.store.SaveLast(ctx, last); err != nil {
		return fmt.Errorf("remembering %s: %w", key, err)
	}
	return nil
}

// Last returns the remembered lookup, or nil if there is none
func (s *Service) Last(ctx context.Context) (*models.LastLookup, error) {
	if s.store == nil {
		return nil, nil
	}
	return s.store.LoadLast(ctx)
}

// Current fetches current conditions
func (s *Service) Current(ctx context.Context, coords models.Coordinates) (*models.Observation, error) {
	obs, err := s.weather.CurrentConditions(ctx, coords)
	if err != nil {
		s.logger.Warn("current conditions failed", zap.String("coords", coords.String()), zap.Error(err))
		return nil, err
	}
	return obs, nil
}

// Forecast fetches the 5-day forecast
func (s *Service) Forecast(ctx context.Context, coords models.Coordinates) (*models.Forecast, error) {
	fc, err := s.weather.Forecast(ctx, coords)
	if err != nil {
		s.logger.Warn("forecast failed", zap.String("coords", coords.String()), zap.Error(err))
		return nil, err
	}
	return fc, nil
}

// Lookup resolves raw, takes the best match, fetches both weather views
// and remembers the location. A failure to remember is logged, not returned.
func (s *Service) Lookup(ctx context.Context, raw string) (*Report, error) {
	q, locs, err := s.Resolve(ctx, raw)
	if err != nil {
		return nil, err
	}
	loc := locs[0]

	obs, err := s.Current(ctx, loc.Coordinates)
	if err != nil {
		return nil, fmt.Errorf("fetching current conditions: %w", err)
	}

	fc, err := s.Forecast(ctx, loc.Coordinates)
	if err != nil {
		return nil, fmt.Errorf("fetching forecast: %w", err)
	}

	if err := s.Remember(ctx, q.Key(), loc, obs.TimezoneOffset); err != nil {
		s.logger.Warn("could not remember lookup", zap.Error(err))
	}

	return &Report{Query: q, Location: loc, Observation: obs, Forecast: fc}, nil
}

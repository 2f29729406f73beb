package api

import (
	"context"

	"github.com/ngmaloney/weather-terminal/internal/lookup"
	"github.com/ngmaloney/weather-terminal/internal/models"
)

// WeatherLookup defines the lookup operations needed by handlers.
// *lookup.Service satisfies this interface.
type WeatherLookup interface {
	Lookup(ctx context.Context, raw string) (*lookup.Report, error)
	Last(ctx context.Context) (*models.LastLookup, error)
}

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

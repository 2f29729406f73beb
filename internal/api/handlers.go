package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ngmaloney/weather-terminal/internal/config"
	"github.com/ngmaloney/weather-terminal/internal/geocoding"
	"github.com/ngmaloney/weather-terminal/internal/grid"
	"github.com/ngmaloney/weather-terminal/internal/models"
)

// Handlers holds the dependencies for all HTTP handlers.
type Handlers struct {
	svc    WeatherLookup
	clock  config.ClockMode
	logger *zap.Logger
}

// NewHandlers constructs Handlers. clock picks whose wall clock the grids
// are rendered in.
func NewHandlers(svc WeatherLookup, clock config.ClockMode, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clock == "" {
		clock = config.ClockLocal
	}
	return &Handlers{
		svc:    svc,
		clock:  clock,
		logger: logger,
	}
}

// WeatherResponse is the body of GET /api/v1/weather.
type WeatherResponse struct {
	Query    string          `json:"query"`
	Location models.Location `json:"location"`
	Icon     string          `json:"icon,omitempty"`
	Current  grid.Grid       `json:"current"`
	Forecast grid.Grid       `json:"forecast"`
}

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// lookupStatus maps a lookup failure to an HTTP status.
func lookupStatus(err error) int {
	switch {
	case errors.Is(err, geocoding.ErrEmptyQuery), errors.Is(err, geocoding.ErrInvalidQuery):
		return http.StatusBadRequest
	case errors.Is(err, geocoding.ErrNoResults):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

// GetWeather handles GET /api/v1/weather?q=<query>.
// Resolves the query, fetches both views and remembers the location.
func (h *Handlers) GetWeather(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("q"))
	if raw == "" {
		writeError(w, http.StatusBadRequest, "missing q parameter")
		return
	}

	report, err := h.svc.Lookup(r.Context(), raw)
	if err != nil {
		status := lookupStatus(err)
		if status == http.StatusBadGateway {
			h.logger.Error("lookup failed", zap.String("q", raw), zap.Error(err))
		}
		writeError(w, status, err.Error())
		return
	}

	resp := WeatherResponse{
		Query:    report.Query.Key(),
		Location: report.Location,
	}
	if report.Observation != nil {
		if c, ok := report.Observation.PrimaryCondition(); ok && c.Icon != "" {
			resp.Icon = grid.IconURL(c.Icon)
		}
		b := grid.NewBuilder(h.clock.Zone(report.Observation.TimezoneOffset), h.logger)
		resp.Current = b.Current(report.Location, report.Observation)
	}
	if report.Forecast != nil {
		b := grid.NewBuilder(h.clock.Zone(report.Forecast.TimezoneOffset), h.logger)
		resp.Forecast = b.Forecast(report.Forecast)
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetLast handles GET /api/v1/last.
func (h *Handlers) GetLast(w http.ResponseWriter, r *http.Request) {
	last, err := h.svc.Last(r.Context())
	if err != nil {
		h.logger.Error("load last lookup failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if last == nil {
		writeError(w, http.StatusNotFound, "no lookup remembered yet")
		return
	}
	writeJSON(w, http.StatusOK, last)
}

// HealthHandlerFunc returns an http.HandlerFunc that checks store connectivity.
// Returns 200 if the store answers, 503 otherwise.
func HealthHandlerFunc(store Pinger, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		status := http.StatusOK
		storeStatus := "ok"

		if err := store.Ping(ctx); err != nil {
			logger.Error("health check: store ping failed", zap.Error(err))
			storeStatus = "error"
			status = http.StatusServiceUnavailable
		}

		overall := "ok"
		if status != http.StatusOK {
			overall = "degraded"
		}
		writeJSON(w, status, map[string]string{
			"status": overall,
			"store":  storeStatus,
		})
	}
}

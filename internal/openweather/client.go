// Package openweather fetches current conditions and the five-day forecast
// from the OpenWeatherMap REST API.
package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ngmaloney/weather-terminal/internal/models"
)

const (
	defaultBaseURL  = "https://api.openweathermap.org/data/2.5"
	defaultLanguage = "en"
	units           = "imperial"
	userAgent       = "WeatherTerminal/1.0 (github.com/ngmaloney/weather-terminal)"
)

// WeatherClient defines the interface for fetching weather data
type WeatherClient interface {
	// CurrentConditions retrieves the latest observation for a location
	CurrentConditions(ctx context.Context, coords models.Coordinates) (*models.Observation, error)

	// Forecast retrieves the 3-hourly forecast for the next five days
	Forecast(ctx context.Context, coords models.Coordinates) (*models.Forecast, error)
}

// Client implements WeatherClient against api.openweathermap.org
type Client struct {
	baseURL    string
	apiKey     string
	language   string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
	userAgent  string
}

// Option configures a Client
type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRateLimit caps outgoing requests at rps per second with the given burst
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(rps), burst) }
}

// WithLimiter uses an existing limiter, typically shared with the geocoder
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithLanguage sets the language of condition descriptions
func WithLanguage(lang string) Option {
	return func(c *Client) { c.language = lang }
}

// NewClient creates a new OpenWeatherMap client
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:  defaultBaseURL,
		apiKey:   apiKey,
		language: defaultLanguage,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter:   rate.NewLimiter(rate.Limit(1), 5),
		logger:    zap.NewNop(),
		userAgent: userAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CurrentConditions retrieves the latest observation
func (c *Client) CurrentConditions(ctx context.Context, coords models.Coordinates) (*models.Observation, error) {
	var resp weatherResponse
	if err := c.get(ctx, "/weather", coords, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch current conditions: %w", err)
	}
	return resp.toObservation(time.Now()), nil
}

// Forecast retrieves the 5-day / 3-hour forecast
func (c *Client) Forecast(ctx context.Context, coords models.Coordinates) (*models.Forecast, error) {
	var resp forecastResponse
	if err := c.get(ctx, "/forecast", coords, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch forecast: %w", err)
	}
	return resp.toForecast(time.Now()), nil
}

func (c *Client) get(ctx context.Context, path string, coords models.Coordinates, dst any) error {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(coords.Latitude, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(coords.Longitude, 'f', -1, 64))
	params.Set("appid", c.apiKey)
	params.Set("units", units)
	params.Set("lang", c.language)
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("openweathermap request",
		zap.String("path", path),
		zap.String("coords", coords.String()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		var apiErr errorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("API returned status %d: %s", resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ngmaloney/weather-terminal/internal/models"
)

const (
	defaultBaseURL = "https://api.openweathermap.org/geo/1.0"
	userAgent      = "WeatherTerminal/1.0"

	// DefaultLimit caps the number of candidates a place-name lookup returns
	DefaultLimit = 5
)

// ErrNoResults is returned when the API knows no place matching the query
var ErrNoResults = errors.New("no matching location found")

// Geocoder converts search box queries to coordinates using the
// OpenWeatherMap Geocoding API
type Geocoder struct {
	baseURL        string
	apiKey         string
	httpClient     *http.Client
	limiter        *rate.Limiter
	logger         *zap.Logger
	defaultCountry string
	limit          int
}

// Option configures a Geocoder
type Option func(*Geocoder)

// WithBaseURL points the geocoder at a different host, e.g. a test server
func WithBaseURL(u string) Option {
	return func(g *Geocoder) { g.baseURL = u }
}

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(g *Geocoder) { g.httpClient = c }
}

// WithLimiter shares a request limiter with the weather client.
// Both talk to the same account quota.
func WithLimiter(l *rate.Limiter) Option {
	return func(g *Geocoder) { g.limiter = l }
}

func WithLogger(l *zap.Logger) Option {
	return func(g *Geocoder) { g.logger = l }
}

// WithDefaultCountry sets the country assumed for ZIPs and "City, State"
func WithDefaultCountry(c string) Option {
	return func(g *Geocoder) { g.defaultCountry = c }
}

// NewGeocoder creates a new geocoder
func NewGeocoder(apiKey string, opts ...Option) *Geocoder {
	g := &Geocoder{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter:        rate.NewLimiter(rate.Limit(1), 5),
		logger:         zap.NewNop(),
		defaultCountry: DefaultCountry,
		limit:          DefaultLimit,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// zipResponse is the geo/1.0/zip payload
type zipResponse struct {
	Zip     string  `json:"zip"`
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
}

// directResponse is one element of the geo/1.0/direct payload
type directResponse struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
	State   string  `json:"state"`
}

// apiError is the body OpenWeatherMap sends with non-200 responses.
// cod is a number on some endpoints and a string on others.
type apiError struct {
	Cod     json.RawMessage `json:"cod"`
	Message string          `json:"message"`
}

// Parse parses raw input with the geocoder's default country
func (g *Geocoder) Parse(input string) (Query, error) {
	return ParseQuery(input, g.defaultCountry)
}

// Geocode converts a query (zipcode, city/state, etc.) to candidate locations.
// A ZIP lookup yields exactly one location; a place lookup may yield several,
// best match first.
func (g *Geocoder) Geocode(ctx context.Context, q Query) ([]models.Location, error) {
	if q.Kind == KindZip {
		var result zipResponse
		if err := g.get(ctx, "/zip", q, &result); err != nil {
			return nil, err
		}
		return []models.Location{{
			Name:    result.Name,
			Country: result.Country,
			Zip:     result.Zip,
			Coordinates: models.Coordinates{
				Latitude:  result.Lat,
				Longitude: result.Lon,
			},
		}}, nil
	}

	var results []directResponse
	if err := g.get(ctx, "/direct", q, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%q: %w", q.Key(), ErrNoResults)
	}

	locs := make([]models.Location, 0, len(results))
	for _, r := range results {
		locs = append(locs, models.Location{
			Name:    r.Name,
			State:   r.State,
			Country: r.Country,
			Coordinates: models.Coordinates{
				Latitude:  r.Lat,
				Longitude: r.Lon,
			},
		})
	}
	return locs, nil
}

func (g *Geocoder) get(ctx context.Context, path string, q Query, dst any) error {
	params := q.Values(g.limit)
	params.Set("appid", g.apiKey)
	reqURL := fmt.Sprintf("%s%s?%s", g.baseURL, path, params.Encode())

	if err := g.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	g.logger.Debug("geocoding", zap.String("kind", q.Kind.String()), zap.String("query", q.Key()))

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%q: %w", q.Key(), ErrNoResults)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("geocoding API returned status %d: %s", resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("geocoding API returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

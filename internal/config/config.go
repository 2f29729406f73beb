// Package config gathers settings from a .env file, the environment and
// command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/ngmaloney/weather-terminal/internal/database"
	"github.com/ngmaloney/weather-terminal/internal/store"
)

// ClockMode selects whose wall clock times are shown in
type ClockMode string

const (
	ClockLocal    ClockMode = "local"    // the viewer's zone
	ClockLocation ClockMode = "location" // the looked-up location's zone
)

// Zone returns the zone to render times in for a location at offset
// seconds east of UTC. nil means the local zone.
func (m ClockMode) Zone(offset int) *time.Location {
	if m != ClockLocation {
		return nil
	}
	if offset == 0 {
		return time.UTC
	}
	return time.FixedZone("", offset)
}

// ErrMissingAPIKey is returned by Validate when no OpenWeatherMap key is set
var ErrMissingAPIKey = errors.New("OPENWEATHER_API_KEY is not set")

// Config holds runtime settings
type Config struct {
	APIKey      string
	Location    string
	Clock       ClockMode
	DBPath      string
	RedisURL    string
	RedisTTL    time.Duration
	DatabaseURL string
	LogPath     string
	Debug       bool
	RateLimit   float64 // requests per second to OpenWeatherMap
	RateBurst   int
	Addr        string
	Language    string
	Country     string // assumed for ZIPs and "City, State" queries
}

// DefaultLogPath is where the terminal UI logs, away from the alt-screen
func DefaultLogPath() string {
	return filepath.Join("data", "weather-terminal.log")
}

// Defaults returns the configuration used when nothing is set
func Defaults() *Config {
	return &Config{
		Clock:     ClockLocal,
		DBPath:    database.DBPath(),
		LogPath:   DefaultLogPath(),
		RateLimit: 1,
		RateBurst: 5,
		Addr:      ":8080",
		Language:  "en",
		Country:   "us",
	}
}

// Load reads envFiles (".env" when none are given; missing files are
// ignored), then the environment, then parses args with a FlagSet named name.
func Load(name string, args []string, envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	cfg := Defaults()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	fset := flag.NewFlagSet(name, flag.ContinueOnError)
	fset.StringVar(&cfg.Location, "location", cfg.Location, "Location to load directly (zipcode, city, or city, state[, country])")
	clock := fset.String("clock", string(cfg.Clock), "Show times in the viewer's zone (local) or the location's zone (location)")
	fset.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to the SQLite database")
	fset.StringVar(&cfg.LogPath, "log", cfg.LogPath, "Log file path (empty logs to stderr)")
	fset.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Enable debug logging")
	fset.Float64Var(&cfg.RateLimit, "rate", cfg.RateLimit, "Maximum OpenWeatherMap requests per second")
	fset.StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address for the JSON API")
	if err := fset.Parse(args); err != nil {
		return nil, err
	}
	cfg.Clock = ClockMode(*clock)

	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("OPENWEATHER_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("WEATHER_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		c.RedisURL = v
	}
	if v := os.Getenv("REDIS_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid REDIS_TTL %q: %w", v, err)
		}
		c.RedisTTL = ttl
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v, ok := os.LookupEnv("WEATHER_LOG"); ok {
		c.LogPath = v
	}
	if v := os.Getenv("WEATHER_DEBUG"); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid WEATHER_DEBUG %q: %w", v, err)
		}
		c.Debug = debug
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Addr = ":" + v
	}
	return nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.Clock != ClockLocal && c.Clock != ClockLocation {
		return fmt.Errorf("invalid clock mode %q: want %q or %q", c.Clock, ClockLocal, ClockLocation)
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("rate must be positive, got %g", c.RateLimit)
	}
	if c.RateBurst < 1 {
		return fmt.Errorf("rate burst must be at least 1, got %d", c.RateBurst)
	}
	return nil
}

// Store returns the last-lookup store settings
func (c *Config) Store() store.Config {
	return store.Config{
		SQLitePath:  c.DBPath,
		RedisURL:    c.RedisURL,
		RedisTTL:    c.RedisTTL,
		DatabaseURL: c.DatabaseURL,
	}
}

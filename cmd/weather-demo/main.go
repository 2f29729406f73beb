package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/weather-terminal/internal/config"
	"github.com/ngmaloney/weather-terminal/internal/geocoding"
	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/ui"
)

// This demo shows the UI with canned data and no network access
func main() {
	p := tea.NewProgram(ui.NewModel(newDemoService(), ui.Options{Clock: config.ClockLocation}), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running demo: %v\n", err)
		os.Exit(1)
	}
}

var places = []models.Location{
	{Name: "Chatham", State: "Massachusetts", Country: "US", Zip: "02633",
		Coordinates: models.Coordinates{Latitude: 41.6885, Longitude: -69.9596}},
	{Name: "Portland", State: "Oregon", Country: "US",
		Coordinates: models.Coordinates{Latitude: 45.5152, Longitude: -122.6784}},
	{Name: "Portland", State: "Maine", Country: "US",
		Coordinates: models.Coordinates{Latitude: 43.6591, Longitude: -70.2568}},
}

// demoService answers every request from memory
type demoService struct {
	last *models.LastLookup
}

func newDemoService() *demoService {
	return &demoService{
		last: &models.LastLookup{Query: "02633,us", Location: places[0], TimezoneOffset: -18000},
	}
}

func (d *demoService) Resolve(ctx context.Context, raw string) (geocoding.Query, []models.Location, error) {
	q, err := geocoding.ParseQuery(raw, geocoding.DefaultCountry)
	if err != nil {
		return q, nil, err
	}
	if q.Kind == geocoding.KindZip {
		if q.Zip == places[0].Zip {
			return q, places[:1], nil
		}
		return q, nil, fmt.Errorf("geocoding %s: %w", q, geocoding.ErrNoResults)
	}

	var hits []models.Location
	for _, p := range places {
		if strings.EqualFold(p.Name, q.City) {
			hits = append(hits, p)
		}
	}
	if len(hits) == 0 {
		return q, nil, fmt.Errorf("geocoding %s: %w", q, geocoding.ErrNoResults)
	}
	return q, hits, nil
}

func (d *demoService) Remember(ctx context.Context, key string, loc models.Location, tzOffset int) error {
	d.last = &models.LastLookup{Query: key, Location: loc, TimezoneOffset: tzOffset, SavedAt: time.Now()}
	return nil
}

func (d *demoService) Last(ctx context.Context) (*models.LastLookup, error) {
	return d.last, nil
}

func zoneOffset(coords models.Coordinates) int {
	if coords.Longitude < -100 {
		return -8 * 3600
	}
	return -5 * 3600
}

func (d *demoService) Current(ctx context.Context, coords models.Coordinates) (*models.Observation, error) {
	now := time.Now()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.FixedZone("", zoneOffset(coords)))

	return &models.Observation{
		Readings: models.Readings{
			Time: now,
			Conditions: []models.Condition{
				{ID: 500, Main: "Rain", Description: "light rain", Icon: "10d"},
				{ID: 701, Main: "Mist", Description: "mist", Icon: "50d"},
			},
			Temperature:      48.2,
			FeelsLike:        44.6,
			TempMin:          45.1,
			TempMax:          51.3,
			PressureHPa:      1013,
			Humidity:         71,
			VisibilityMeters: 8047,
			Wind:             models.WindData{SpeedMPH: 12.66, Degrees: 200, GustMPH: 20.71, HasGust: true},
			CloudCover:       75,
			Precipitation: []models.Accumulation{
				{Kind: models.Rain, Window: time.Hour, Millimeters: 1.02},
			},
		},
		TimezoneOffset: zoneOffset(coords),
		Sunrise:        day.Add(6*time.Hour + 30*time.Minute),
		Sunset:         day.Add(16*time.Hour + 24*time.Minute),
		UpdatedAt:      now,
	}, nil
}

func (d *demoService) Forecast(ctx context.Context, coords models.Coordinates) (*models.Forecast, error) {
	start := time.Now().Truncate(3 * time.Hour).Add(3 * time.Hour)
	fc := &models.Forecast{
		City:           "Demo",
		Country:        "US",
		Coordinates:    coords,
		TimezoneOffset: zoneOffset(coords),
		UpdatedAt:      time.Now(),
	}

	icons := []string{"01", "02", "03", "04", "10", "13"}
	mains := []string{"Clear", "Clouds", "Clouds", "Clouds", "Rain", "Snow"}
	zone := fc.Zone()

	for i := 0; i < 40; i++ {
		t := start.Add(time.Duration(i) * 3 * time.Hour)
		hour := t.In(zone).Hour()
		pod := models.Night
		if hour >= 6 && hour < 18 {
			pod = models.Day
		}

		k := (i / 3) % len(icons)
		temp := 45 + 8*math.Sin(float64(hour-9)*math.Pi/12)
		slot := models.ForecastSlot{
			Readings: models.Readings{
				Time:             t,
				Conditions:       []models.Condition{{Main: mains[k], Icon: icons[k] + string(pod)}},
				Temperature:      temp,
				FeelsLike:        temp - 3,
				PressureHPa:      1008 + float64(i%7),
				Humidity:         60 + float64(i%5)*6,
				VisibilityMeters: 10000,
				Wind:             models.WindData{SpeedMPH: 5 + float64(i%4)*3, Degrees: float64(i*23) + 11},
				CloudCover:       float64(k * 20),
			},
			PrecipProbability: float64(k) / 6,
			PartOfDay:         pod,
		}
		switch mains[k] {
		case "Rain":
			slot.Precipitation = []models.Accumulation{{Kind: models.Rain, Window: 3 * time.Hour, Millimeters: 2.4}}
		case "Snow":
			slot.Precipitation = []models.Accumulation{{Kind: models.Snow, Window: 3 * time.Hour, Millimeters: 0.8}}
		}
		fc.Slots = append(fc.Slots, slot)
	}
	return fc, nil
}

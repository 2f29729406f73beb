package models

import (
	"strings"
	"time"
)

// PartOfDay is the day/night indicator used to colour data cells
type PartOfDay string

const (
	Day   PartOfDay = "d"
	Night PartOfDay = "n"
)

// PrecipKind distinguishes rain from snow accumulations
type PrecipKind string

const (
	Rain PrecipKind = "rain"
	Snow PrecipKind = "snow"
)

// Condition is one entry of the API's "weather" array
type Condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`        // e.g., "Rain", "Clouds"
	Description string `json:"description"` // e.g., "light rain"
	Icon        string `json:"icon"`        // e.g., "10d"
}

// WindData represents wind conditions in imperial units
type WindData struct {
	SpeedMPH float64 `json:"speed_mph"`
	Degrees  float64 `json:"degrees"`  // direction the wind blows from
	GustMPH  float64 `json:"gust_mph"` // 0 if no gusts reported
	HasGust  bool    `json:"has_gust"`
}

// Accumulation is a rain or snow volume over a trailing (observations) or
// upcoming (forecasts) window. Absent readings are simply not listed.
type Accumulation struct {
	Kind        PrecipKind    `json:"kind"`
	Window      time.Duration `json:"window"`
	Millimeters float64       `json:"millimeters"`
}

// Readings holds the measurements shared by observations and forecast slots
type Readings struct {
	Time             time.Time      `json:"time"`
	Conditions       []Condition    `json:"conditions"`
	Temperature      float64        `json:"temperature"` // Fahrenheit
	FeelsLike        float64        `json:"feels_like"`  // Fahrenheit
	TempMin          float64        `json:"temp_min"`    // Fahrenheit
	TempMax          float64        `json:"temp_max"`    // Fahrenheit
	PressureHPa      float64        `json:"pressure_hpa"`
	Humidity         float64        `json:"humidity"` // percent
	VisibilityMeters float64        `json:"visibility_m"`
	Wind             WindData       `json:"wind"`
	CloudCover       float64        `json:"cloud_cover"` // percent
	Precipitation    []Accumulation `json:"precipitation,omitempty"`
}

// ConditionSummary joins the main condition names, e.g. "Rain, Mist"
func (r Readings) ConditionSummary() string {
	names := make([]string, 0, len(r.Conditions))
	for _, c := range r.Conditions {
		names = append(names, c.Main)
	}
	return strings.Join(names, ", ")
}

// PrimaryCondition returns the first reported condition, if any
func (r Readings) PrimaryCondition() (Condition, bool) {
	if len(r.Conditions) == 0 {
		return Condition{}, false
	}
	return r.Conditions[0], true
}

// Observation represents current weather conditions at a location
type Observation struct {
	Readings
	TimezoneOffset int       `json:"timezone_offset"` // seconds east of UTC
	Sunrise        time.Time `json:"sunrise"`
	Sunset         time.Time `json:"sunset"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// PartOfDay reports whether the observation was taken between sunrise and
// sunset. The current-conditions endpoint has no day/night field of its own.
func (o *Observation) PartOfDay() PartOfDay {
	if o.Time.After(o.Sunrise) && o.Time.Before(o.Sunset) {
		return Day
	}
	return Night
}

// Zone returns a fixed zone at the location's UTC offset
func (o *Observation) Zone() *time.Location {
	return offsetZone(o.TimezoneOffset)
}

func offsetZone(offset int) *time.Location {
	if offset == 0 {
		return time.UTC
	}
	return time.FixedZone("", offset)
}

package models

import (
	"fmt"
	"strings"
	"time"
)

// Coordinates is a latitude/longitude pair in decimal degrees
type Coordinates struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// String renders the pair the way it is sent to the API, e.g. "42.68,-69.95"
func (c Coordinates) String() string {
	return fmt.Sprintf("%g,%g", c.Latitude, c.Longitude)
}

// Location represents a geocoded place.
// It is transient: produced by a geocoding lookup and held for one query cycle
// unless remembered as the last lookup.
type Location struct {
	Name        string      `json:"name"`              // e.g. "Chatham"
	State       string      `json:"state,omitempty"`   // e.g. "Massachusetts"
	Country     string      `json:"country,omitempty"` // ISO 3166 code, e.g. "US"
	Zip         string      `json:"zip,omitempty"`
	Coordinates Coordinates `json:"coordinates"`
}

// DisplayName joins the non-empty name parts, e.g. "Chatham, Massachusetts, US"
func (l Location) DisplayName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{l.Name, l.State, l.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return l.Coordinates.String()
	}
	return strings.Join(parts, ", ")
}

// LastLookup is the most recently resolved location, remembered between runs
type LastLookup struct {
	Query          string    `json:"query"` // canonical query key, e.g. "02633,us"
	Location       Location  `json:"location"`
	TimezoneOffset int       `json:"timezone_offset"`
	SavedAt        time.Time `json:"saved_at"`
}

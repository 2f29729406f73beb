package models

import "testing"

func TestLocation_DisplayName(t *testing.T) {
	tests := []struct {
		name string
		loc  Location
		want string
	}{
		{"full", Location{Name: "Chatham", State: "Massachusetts", Country: "US"}, "Chatham, Massachusetts, US"},
		{"no state", Location{Name: "London", Country: "GB"}, "London, GB"},
		{"blank parts skipped", Location{Name: "Paris", State: "  ", Country: "FR"}, "Paris, FR"},
		{"coordinates only", Location{Coordinates: Coordinates{Latitude: 41.5, Longitude: -70.25}}, "41.5,-70.25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.loc.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

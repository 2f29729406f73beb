package models

import "time"

// ForecastSlot is a single 3-hour forecast step
type ForecastSlot struct {
	Readings
	PrecipProbability float64   `json:"precip_probability"` // 0.0 - 1.0
	PartOfDay         PartOfDay `json:"part_of_day"`
}

// Forecast contains the ordered forecast slots for a location
type Forecast struct {
	City           string         `json:"city"`
	Country        string         `json:"country"`
	Coordinates    Coordinates    `json:"coordinates"`
	TimezoneOffset int            `json:"timezone_offset"` // seconds east of UTC
	Sunrise        time.Time      `json:"sunrise"`
	Sunset         time.Time      `json:"sunset"`
	Slots          []ForecastSlot `json:"slots"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// Zone returns a fixed zone at the location's UTC offset
func (f *Forecast) Zone() *time.Location {
	return offsetZone(f.TimezoneOffset)
}

// GetSlotsForDay returns forecast slots that fall on the given date
func (f *Forecast) GetSlotsForDay(date time.Time) []ForecastSlot {
	var slots []ForecastSlot
	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	endOfDay := startOfDay.AddDate(0, 0, 1)

	for _, slot := range f.Slots {
		if !slot.Time.Before(startOfDay) && slot.Time.Before(endOfDay) {
			slots = append(slots, slot)
		}
	}
	return slots
}

package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/ngmaloney/weather-terminal/internal/models"
)

// candidateItem wraps a geocoding hit for use in a list
type candidateItem struct {
	location models.Location
}

// FilterValue implements list.Item
func (c candidateItem) FilterValue() string {
	return c.location.DisplayName()
}

// Title implements list.DefaultItem
func (c candidateItem) Title() string {
	return c.location.DisplayName()
}

// Description implements list.DefaultItem
func (c candidateItem) Description() string {
	return fmt.Sprintf("%.4f, %.4f", c.location.Coordinates.Latitude, c.location.Coordinates.Longitude)
}

// createCandidateList creates a list.Model from geocoding hits
func createCandidateList(locations []models.Location, width, height int) list.Model {
	items := make([]list.Item, len(locations))
	for i, loc := range locations {
		items[i] = candidateItem{location: loc}
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Which one did you mean?"
	l.SetShowHelp(true)
	l.SetFilteringEnabled(false)

	return l
}

package ui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/weather-terminal/internal/models"
)

// TestIntegration_SearchAndFetchData tests the complete workflow
func TestIntegration_SearchAndFetchData(t *testing.T) {
	svc := &fakeService{
		locations:   []models.Location{chatham},
		observation: testObservation(),
		forecast:    testForecast(3),
	}
	m := NewModel(svc, Options{})

	// Step 1: User types a zipcode
	m = typeString(m, "02633")
	if m.searchInput.Value() != "02633" {
		t.Errorf("searchInput.Value() = %s, want '02633'", m.searchInput.Value())
	}

	// Step 2: User presses Enter to search
	updatedModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updatedModel.(Model)

	if m.state != StateLoading {
		t.Errorf("state = %v, want StateLoading", m.state)
	}
	if cmd == nil {
		t.Fatal("Expected command to start geocoding")
	}

	// Step 3: Geocoding completes with a single match
	updatedModel, cmd = m.Update(resolveQuery(svc, m.searchQuery)())
	m = updatedModel.(Model)

	if m.location == nil {
		t.Fatal("Expected location to be selected after geocoding")
	}
	if m.location.Name != "Chatham" {
		t.Errorf("location = %s, want Chatham", m.location.Name)
	}
	if m.queryKey != "02633,us" {
		t.Errorf("queryKey = %q, want '02633,us'", m.queryKey)
	}
	if !m.loadingCurrent || !m.loadingForecast {
		t.Error("Both fetches should be loading after location selection")
	}
	if cmd == nil {
		t.Fatal("Expected command to fetch data")
	}

	// Step 4: Current conditions arrive; the location gets remembered
	updatedModel, cmd = m.Update(fetchCurrent(svc, m.location.Coordinates)())
	m = updatedModel.(Model)

	if m.observation == nil {
		t.Error("Observation should be set after currentFetchedMsg")
	}
	if m.loadingCurrent {
		t.Error("loadingCurrent should be false after data received")
	}
	if m.state != StateLoading {
		t.Errorf("state = %v, want StateLoading until forecast arrives", m.state)
	}
	if cmd == nil {
		t.Fatal("Expected command to remember the lookup")
	}
	updatedModel, _ = m.Update(cmd())
	m = updatedModel.(Model)
	if len(svc.remembered) != 1 || svc.remembered[0] != "02633,us" {
		t.Errorf("remembered = %v, want [02633,us]", svc.remembered)
	}

	// Step 5: Forecast arrives
	updatedModel, _ = m.Update(fetchForecast(svc, m.location.Coordinates)())
	m = updatedModel.(Model)

	if m.forecast == nil {
		t.Error("Forecast should be set after forecastFetchedMsg")
	}
	if m.state != StateDisplay {
		t.Errorf("state = %v, want StateDisplay", m.state)
	}
	if len(m.forecast.Slots) != 3 {
		t.Errorf("forecast slots = %d, want 3", len(m.forecast.Slots))
	}
}

// TestIntegration_ErrorHandling tests that a failed fetch only affects its own tab
func TestIntegration_ErrorHandling(t *testing.T) {
	testErr := errors.New("API timeout")
	svc := &fakeService{
		locations:  []models.Location{chatham},
		currentErr: testErr,
		forecast:   testForecast(3),
	}
	m := NewModel(svc, Options{})
	m = typeString(m, "Chatham, MA")

	updatedModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updatedModel.(Model)
	updatedModel, _ = m.Update(resolveQuery(svc, m.searchQuery)())
	m = updatedModel.(Model)

	// Current conditions fail
	updatedModel, cmd := m.Update(currentFetchedMsg{err: testErr})
	m = updatedModel.(Model)

	if m.loadingCurrent {
		t.Error("loadingCurrent should be false after error")
	}
	if m.observation != nil {
		t.Error("observation should remain nil after error")
	}
	if cmd != nil {
		t.Error("A failed fetch should not remember the lookup")
	}

	// Forecast should still work
	updatedModel, _ = m.Update(forecastFetchedMsg{forecast: svc.forecast})
	m = updatedModel.(Model)

	if m.forecast == nil {
		t.Error("Forecast should be set even if current conditions failed")
	}
	if m.state != StateDisplay {
		t.Errorf("state = %v, want StateDisplay despite errors", m.state)
	}
	if !errors.Is(m.currentErr, testErr) {
		t.Errorf("currentErr = %v, want %v", m.currentErr, testErr)
	}
	if len(svc.remembered) != 0 {
		t.Errorf("remembered = %v, want none", svc.remembered)
	}
}

// TestIntegration_Candidates tests picking one of several geocoding hits
func TestIntegration_Candidates(t *testing.T) {
	portlandME := models.Location{Name: "Portland", State: "Maine", Country: "US",
		Coordinates: models.Coordinates{Latitude: 43.6591, Longitude: -70.2568}}
	portlandOR := models.Location{Name: "Portland", State: "Oregon", Country: "US",
		Coordinates: models.Coordinates{Latitude: 45.5152, Longitude: -122.6784}}

	svc := &fakeService{locations: []models.Location{portlandOR, portlandME}}
	m := NewModel(svc, Options{})
	m.width = 100
	m.height = 30
	m = typeString(m, "Portland")

	updatedModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updatedModel.(Model)
	updatedModel, _ = m.Update(resolveQuery(svc, m.searchQuery)())
	m = updatedModel.(Model)

	if m.state != StateCandidates {
		t.Fatalf("state = %v, want StateCandidates", m.state)
	}
	if len(m.candidates) != 2 {
		t.Errorf("candidates = %d, want 2", len(m.candidates))
	}

	// Move to the second entry and select it
	updatedModel, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updatedModel.(Model)
	updatedModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updatedModel.(Model)

	if m.state != StateLoading {
		t.Errorf("state = %v, want StateLoading", m.state)
	}
	if m.location == nil || m.location.State != "Maine" {
		t.Errorf("location = %+v, want Portland, Maine", m.location)
	}
	if cmd == nil {
		t.Error("Expected command to fetch data")
	}
	if m.queryKey != "Portland" {
		t.Errorf("queryKey = %q, want 'Portland'", m.queryKey)
	}
}

// TestIntegration_CandidatesBackToSearch tests leaving the candidate list
func TestIntegration_CandidatesBackToSearch(t *testing.T) {
	m := NewModel(&fakeService{}, Options{})
	m.state = StateCandidates
	m.candidateList = createCandidateList([]models.Location{chatham}, 80, 20)

	updatedModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updatedModel.(Model)

	if m.state != StateSearch {
		t.Errorf("state = %v, want StateSearch", m.state)
	}
}

// TestIntegration_RestoresLastLookup tests startup with a remembered location
func TestIntegration_RestoresLastLookup(t *testing.T) {
	svc := &fakeService{
		last: &models.LastLookup{Query: "02633,us", Location: chatham, TimezoneOffset: -18000},
	}
	m := NewModel(svc, Options{})

	updatedModel, cmd := m.Update(loadLast(svc)())
	m = updatedModel.(Model)

	if m.state != StateLoading {
		t.Errorf("state = %v, want StateLoading", m.state)
	}
	if m.location == nil || m.location.Zip != "02633" {
		t.Errorf("location = %+v, want the remembered location", m.location)
	}
	if m.queryKey != "02633,us" {
		t.Errorf("queryKey = %q, want '02633,us'", m.queryKey)
	}
	if cmd == nil {
		t.Error("Expected command to fetch data")
	}
}

// TestIntegration_LastLookupIgnoredWhileTyping tests that a late restore
// does not interrupt the user
func TestIntegration_LastLookupIgnoredWhileTyping(t *testing.T) {
	svc := &fakeService{
		last: &models.LastLookup{Query: "02633,us", Location: chatham},
	}
	m := NewModel(svc, Options{})
	m = typeString(m, "Lon")

	updatedModel, _ := m.Update(loadLast(svc)())
	m = updatedModel.(Model)

	if m.state != StateSearch {
		t.Errorf("state = %v, want StateSearch", m.state)
	}
	if m.location != nil {
		t.Error("location should not be restored while typing")
	}
}

// TestIntegration_NoLastLookup tests first run with nothing remembered
func TestIntegration_NoLastLookup(t *testing.T) {
	m := NewModel(&fakeService{}, Options{})

	updatedModel, cmd := m.Update(lastLoadedMsg{})
	m = updatedModel.(Model)

	if m.state != StateSearch {
		t.Errorf("state = %v, want StateSearch", m.state)
	}
	if cmd != nil {
		t.Error("Expected no command when nothing is remembered")
	}
}

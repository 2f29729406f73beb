package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/ngmaloney/weather-terminal/internal/config"
	"github.com/ngmaloney/weather-terminal/internal/geocoding"
	"github.com/ngmaloney/weather-terminal/internal/grid"
	"github.com/ngmaloney/weather-terminal/internal/models"
)

// AppState represents the current state of the application
type AppState int

const (
	StateSearch     AppState = iota // Search for location (zipcode/city/state)
	StateCandidates                 // Pick one of several geocoding hits
	StateLoading                    // Loading current conditions and forecast
	StateDisplay                    // Display the Current / Forecast tabs
	StateError                      // Error state
)

// Tab represents which tab of the display is selected
type Tab int

const (
	TabCurrent Tab = iota
	TabForecast
)

var tabNames = []string{"Current", "Forecast"}

// Service is what the UI needs from the lookup layer.
// *lookup.Service satisfies this interface.
type Service interface {
	Resolve(ctx context.Context, raw string) (geocoding.Query, []models.Location, error)
	Remember(ctx context.Context, key string, loc models.Location, tzOffset int) error
	Last(ctx context.Context) (*models.LastLookup, error)
	Current(ctx context.Context, coords models.Coordinates) (*models.Observation, error)
	Forecast(ctx context.Context, coords models.Coordinates) (*models.Forecast, error)
}

// Options configures a new Model
type Options struct {
	// Location is looked up immediately instead of the remembered one
	Location string
	Clock    config.ClockMode
	Logger   *zap.Logger
}

// Model represents the application's state
type Model struct {
	state     AppState
	activeTab Tab
	width     int
	height    int
	err       error

	svc    Service
	clock  config.ClockMode
	logger *zap.Logger

	// Search
	searchInput textinput.Model
	searchQuery string // Last search query

	// Location
	queryKey      string // canonical key remembered with the location
	candidates    []models.Location
	candidateList list.Model
	location      *models.Location

	// Data
	observation    *models.Observation
	forecast       *models.Forecast
	currentErr     error
	forecastErr    error
	forecastOffset int

	// Loading states
	loadingCurrent  bool
	loadingForecast bool
	spinner         spinner.Model
}

// NewModel creates a new application model
func NewModel(svc Service, opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "Enter zipcode or city, state (e.g. 02633 or Chatham, MA)..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 60

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clock := opts.Clock
	if clock == "" {
		clock = config.ClockLocal
	}

	m := Model{
		state:       StateSearch,
		activeTab:   TabCurrent,
		svc:         svc,
		clock:       clock,
		logger:      logger,
		searchInput: ti,
		spinner:     s,
	}

	if q := strings.TrimSpace(opts.Location); q != "" {
		m.searchInput.SetValue(q)
		m.searchQuery = q
		m.state = StateLoading
	}
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	if m.state == StateLoading && m.searchQuery != "" {
		return tea.Batch(m.spinner.Tick, resolveQuery(m.svc, m.searchQuery))
	}
	return tea.Batch(textinput.Blink, loadLast(m.svc))
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Handle window size
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		if m.state == StateCandidates {
			m.candidateList.SetSize(msg.Width-4, msg.Height-10)
		}
		return m, nil
	}

	// Handle custom messages
	switch msg := msg.(type) {
	case errMsg:
		m.err = msg.err
		m.state = StateError
		return m, nil

	case lastLoadedMsg:
		if msg.err != nil {
			m.logger.Warn("could not load last lookup", zap.Error(msg.err))
			return m, nil
		}
		// the user may already be typing a new search
		if msg.last == nil || m.state != StateSearch || m.searchInput.Value() != "" {
			return m, nil
		}
		m.logger.Info("restoring last lookup", zap.String("query", msg.last.Query))
		m.searchQuery = msg.last.Query
		m.queryKey = msg.last.Query
		return m.startFetch(msg.last.Location)

	case resolvedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("geocoding failed: %w", msg.err)
			m.state = StateError
			return m, nil
		}
		m.queryKey = msg.query.Key()
		if len(msg.locations) == 1 {
			return m.startFetch(msg.locations[0])
		}
		m.candidates = msg.locations
		m.candidateList = createCandidateList(msg.locations, m.width-4, m.height-10)
		m.state = StateCandidates
		return m, nil

	case currentFetchedMsg:
		m.loadingCurrent = false
		if msg.err != nil {
			m.currentErr = msg.err
		} else {
			m.observation = msg.observation
			m.currentErr = nil
			cmd = m.rememberLocation()
		}
		m.finishLoading()
		return m, cmd

	case forecastFetchedMsg:
		m.loadingForecast = false
		if msg.err != nil {
			m.forecastErr = msg.err
		} else {
			m.forecast = msg.forecast
			m.forecastErr = nil
		}
		m.finishLoading()
		return m, nil

	case rememberedMsg:
		if msg.err != nil {
			m.logger.Warn("could not remember lookup", zap.Error(msg.err))
		}
		return m, nil

	case spinner.TickMsg:
		if m.state != StateLoading {
			return m, nil
		}
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Handle keyboard input
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		// Global keys
		if keyMsg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		// State-specific handling
		switch m.state {
		case StateSearch:
			return m.handleSearchInput(keyMsg)

		case StateCandidates:
			return m.handleCandidates(msg)

		case StateLoading:
			if keyMsg.String() == "q" {
				return m, tea.Quit
			}
			return m, nil

		case StateDisplay:
			return m.handleDisplay(keyMsg)

		case StateError:
			if keyMsg.String() == "q" {
				return m, tea.Quit
			}
			// Any other key returns to search
			m.state = StateSearch
			m.err = nil
			m.searchInput.Focus()
			return m, textinput.Blink
		}
	}

	// Update appropriate component based on state
	switch m.state {
	case StateSearch:
		m.searchInput, cmd = m.searchInput.Update(msg)
	case StateCandidates:
		m.candidateList, cmd = m.candidateList.Update(msg)
	}

	return m, cmd
}

// handleSearchInput handles keyboard input in search state
func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Clear error when typing
	if m.err != nil && msg.Type != tea.KeyEnter {
		m.err = nil
	}

	// Handle Enter key
	if msg.Type == tea.KeyEnter {
		query := strings.TrimSpace(m.searchInput.Value())
		if query == "" {
			return m, nil
		}
		m.searchQuery = query
		m.err = nil
		m.state = StateLoading
		// Start geocoding
		return m, tea.Batch(m.spinner.Tick, resolveQuery(m.svc, query))
	}

	// Update text input
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleCandidates handles keyboard input in the candidate list
func (m Model) handleCandidates(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		// Enter selects the highlighted location
		if keyMsg.Type == tea.KeyEnter {
			if item, ok := m.candidateList.SelectedItem().(candidateItem); ok {
				m.candidates = nil
				return m.startFetch(item.location)
			}
		}
		// 's' or Esc to go back to search
		if keyMsg.String() == "s" || keyMsg.Type == tea.KeyEsc {
			m.candidates = nil
			m.state = StateSearch
			m.searchInput.Focus()
			return m, textinput.Blink
		}
		if keyMsg.String() == "q" {
			return m, tea.Quit
		}
	}

	m.candidateList, cmd = m.candidateList.Update(msg)
	return m, cmd
}

// handleDisplay handles keyboard input while weather is shown
func (m Model) handleDisplay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "s":
		m.state = StateSearch
		m.searchInput.SetValue("")
		m.searchInput.Focus()
		return m, textinput.Blink

	case "r":
		if m.location != nil {
			return m.startFetch(*m.location)
		}

	case "tab", "shift+tab":
		// two tabs: either direction toggles
		if m.activeTab == TabCurrent {
			m.activeTab = TabForecast
		} else {
			m.activeTab = TabCurrent
		}

	case "1":
		m.activeTab = TabCurrent

	case "2":
		m.activeTab = TabForecast

	case "right", "l":
		if m.activeTab == TabForecast && m.forecast != nil {
			per := columnsPerPage(m.width)
			if m.forecastOffset+per < len(m.forecast.Slots) {
				m.forecastOffset += per
			}
		}

	case "left", "h":
		if m.activeTab == TabForecast {
			m.forecastOffset -= columnsPerPage(m.width)
			if m.forecastOffset < 0 {
				m.forecastOffset = 0
			}
		}
	}
	return m, nil
}

// startFetch clears old data and fetches both views for loc
func (m Model) startFetch(loc models.Location) (Model, tea.Cmd) {
	m.location = &loc
	m.state = StateLoading
	m.loadingCurrent = true
	m.loadingForecast = true
	m.observation = nil
	m.forecast = nil
	m.currentErr = nil
	m.forecastErr = nil
	m.forecastOffset = 0

	return m, tea.Batch(
		m.spinner.Tick,
		fetchCurrent(m.svc, loc.Coordinates),
		fetchForecast(m.svc, loc.Coordinates),
	)
}

// finishLoading transitions to display once both fetches have reported
func (m *Model) finishLoading() {
	if m.state == StateLoading && !m.loadingCurrent && !m.loadingForecast {
		m.state = StateDisplay
	}
}

func (m Model) rememberLocation() tea.Cmd {
	if m.location == nil || m.observation == nil {
		return nil
	}
	key := m.queryKey
	if key == "" {
		key = m.location.DisplayName()
	}
	return remember(m.svc, key, *m.location, m.observation.TimezoneOffset)
}

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.state {
	case StateSearch:
		return m.viewSearch()
	case StateCandidates:
		return m.viewCandidates()
	case StateLoading:
		return m.viewLoading()
	case StateDisplay:
		return m.viewDisplay()
	case StateError:
		return m.viewError()
	}

	return ""
}

// viewError renders the error view
func (m Model) viewError() string {
	title := errorStyle.Render("✗ Error")

	var errorMsg string
	if m.err != nil {
		errorMsg = m.err.Error()
	} else {
		errorMsg = "An unknown error occurred"
	}

	help := helpStyle.Render("Press any key to return to search • Q: Quit")

	var sections []string
	sections = append(sections, title)
	sections = append(sections, "")
	sections = append(sections, errorMsg)
	sections = append(sections, "")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewSearch renders the search view
func (m Model) viewSearch() string {
	title := titleStyle.Render("☂ Weather Terminal")
	subtitle := mutedStyle.Render("Current conditions & 5-day forecast from OpenWeatherMap")

	// Search box with border
	searchBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2).
		Width(64).
		Render(m.searchInput.View())

	help := helpStyle.Render("Press Enter to search • Ctrl+C to quit")
	examples := mutedStyle.Render("Examples: 02633 | Chatham, MA | London | Halifax, NS, CA")

	var sections []string
	sections = append(sections, title)
	sections = append(sections, subtitle)
	sections = append(sections, "")
	sections = append(sections, searchBox)

	if m.err != nil {
		sections = append(sections, "")
		sections = append(sections, errorStyle.Padding(0, 2).Render("✗ "+m.err.Error()))
	}

	sections = append(sections, "")
	sections = append(sections, examples)
	sections = append(sections, "")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewCandidates renders the geocoding hit selection list
func (m Model) viewCandidates() string {
	title := titleStyle.Render("☂ Matching Locations")
	subtitle := mutedStyle.Render(fmt.Sprintf("Found %d places matching %s", len(m.candidates), m.searchQuery))

	help := helpStyle.Render("↑/↓: Navigate • Enter: Select • S/Esc: Back to search • Q: Quit")

	var sections []string
	sections = append(sections, title)
	sections = append(sections, subtitle)
	sections = append(sections, "")
	sections = append(sections, m.candidateList.View())
	sections = append(sections, "")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewLoading renders the loading view
func (m Model) viewLoading() string {
	var b strings.Builder
	b.WriteString(m.spinner.View())
	b.WriteString(" Loading weather")
	if m.location != nil {
		b.WriteString(" for " + m.location.DisplayName())
	} else if m.searchQuery != "" {
		b.WriteString(" for " + m.searchQuery)
	}
	b.WriteString("...\n\n")

	if m.location == nil {
		b.WriteString("⏳ Finding location\n")
		return b.String()
	}

	if m.loadingCurrent {
		b.WriteString("⏳ Fetching current conditions\n")
	} else {
		b.WriteString(successStyle.Render("✓ Current conditions loaded") + "\n")
	}

	if m.loadingForecast {
		b.WriteString("⏳ Fetching forecast\n")
	} else {
		b.WriteString(successStyle.Render("✓ Forecast loaded") + "\n")
	}

	return b.String()
}

// viewDisplay renders the tabbed weather display
func (m Model) viewDisplay() string {
	if m.location == nil {
		return "No location selected"
	}

	var sections []string

	header := titleStyle.Padding(0, 1).Render("☂ " + m.location.DisplayName())
	sections = append(sections, header)
	if m.observation != nil && !m.observation.UpdatedAt.IsZero() {
		sections = append(sections, mutedStyle.Padding(0, 1).Render(
			"Updated "+m.observation.UpdatedAt.Format("Jan 2, 3:04 PM")))
	}
	sections = append(sections, "", renderTabBar(m.activeTab))

	switch m.activeTab {
	case TabCurrent:
		sections = append(sections, m.renderCurrent())
	case TabForecast:
		sections = append(sections, m.renderForecast())
	}

	help := "S: New search • R: Refresh • Tab/1/2: Switch tabs • Q: Quit"
	if m.activeTab == TabForecast {
		help = "←/→: Page • " + help
	}
	sections = append(sections, helpStyle.Render(help))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderCurrent() string {
	if m.currentErr != nil {
		return errorStyle.Render("✗ Current conditions unavailable: " + m.currentErr.Error())
	}
	if m.observation == nil {
		return mutedStyle.Render("No current conditions available")
	}

	b := grid.NewBuilder(m.clock.Zone(m.observation.TimezoneOffset), m.logger)
	return renderGrid(b.Current(*m.location, m.observation))
}

func (m Model) renderForecast() string {
	if m.forecastErr != nil {
		return errorStyle.Render("✗ Forecast unavailable: " + m.forecastErr.Error())
	}
	if m.forecast == nil || len(m.forecast.Slots) == 0 {
		return mutedStyle.Render("No forecast available")
	}

	b := grid.NewBuilder(m.clock.Zone(m.forecast.TimezoneOffset), m.logger)
	page := b.Forecast(m.forecast).Page(m.forecastOffset, columnsPerPage(m.width))

	return lipgloss.JoinVertical(lipgloss.Left,
		renderGrid(page),
		pageIndicator(m.forecastOffset, len(page.Columns), len(m.forecast.Slots)),
	)
}

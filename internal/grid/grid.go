// Package grid lays weather data out as named fields against one value
// column per observation or forecast slot.
package grid

import (
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ngmaloney/weather-terminal/internal/meteo"
	"github.com/ngmaloney/weather-terminal/internal/models"
)

// CellClass tells the renderer how to style a value cell
type CellClass string

const (
	ClassHeader CellClass = "header"
	ClassDay    CellClass = "day"
	ClassNight  CellClass = "night"
)

// Field is a row label with a longer description
type Field struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// Cell is a single rendered value
type Cell struct {
	Value string    `json:"value"`
	Class CellClass `json:"class"`
	Title string    `json:"title,omitempty"`
}

// Grid holds the field labels and one column of cells per time step.
// Columns[i][j] is the value of Fields[j] at step i.
type Grid struct {
	Fields  []Field  `json:"fields"`
	Columns [][]Cell `json:"columns"`
}

// Row returns the cells of field j across all columns
func (g Grid) Row(j int) []Cell {
	row := make([]Cell, 0, len(g.Columns))
	for _, col := range g.Columns {
		if j < len(col) {
			row = append(row, col[j])
		}
	}
	return row
}

// Page returns a grid restricted to columns [start, start+size)
func (g Grid) Page(start, size int) Grid {
	if start < 0 {
		start = 0
	}
	if start > len(g.Columns) {
		start = len(g.Columns)
	}
	end := start + size
	if size <= 0 || end > len(g.Columns) {
		end = len(g.Columns)
	}
	return Grid{Fields: g.Fields, Columns: g.Columns[start:end]}
}

const windTitle = "The direction where the wind is coming from and how fast it is going. Wind gusts will appear in parenthesis if observed."

var currentFields = []Field{
	{Name: "Location", Title: "Observation location"},
	{Name: "Time", Title: "Time of observation"},
	{Name: "Conditions", Title: "The observed weather conditions"},
	{Name: "Temperature", Title: "Air temperature"},
	{Name: "Feels Like", Title: "The 'feels like' temperature; it should factor in wind chill and heat index"},
	{Name: "Barometric Pressure", Title: "The amount of atmospheric pressure"},
	{Name: "Relative Humidity", Title: "The amount of moisture in the air"},
	{Name: "Dewpoint Temperature", Title: "The temperature at which dew forms; also determines outdoor comfort"},
	{Name: "Wind Direction and Speed", Title: windTitle},
	{Name: "Cloud Cover", Title: "a.k.a. Cloudiness; How much of the sky was covered in clouds at time of observation"},
	{Name: "Visibility", Title: "The farthest distance that can be seen"},
	{Name: "Precipitation", Title: "Recorded rain or snow within the last hour or three hours."},
	{Name: "Sunrise", Title: "Time of sunrise"},
	{Name: "Sunset", Title: "Time of sunset"},
}

var forecastFields = []Field{
	{Name: "Day", Title: "Day of the week of forecast"},
	{Name: "Time", Title: "Time of the forecast"},
	{Name: "Conditions", Title: "Forecasted conditions"},
	{Name: "Temperature", Title: "Air temperature"},
	{Name: "Feels Like", Title: "The 'feels like' temperature; it should factor in wind chill and heat index"},
	{Name: "Barometric Pressure", Title: "The amount of atmospheric pressure"},
	{Name: "Relative Humidity", Title: "The amount of moisture in the air"},
	{Name: "Dewpoint Temperature", Title: "The temperature at which dew forms; also determines outdoor comfort"},
	{Name: "Wind Direction and Speed", Title: windTitle},
	{Name: "Cloud Cover", Title: "a.k.a. Cloudiness; How much of the sky was covered in clouds at time of observation"},
	{Name: "Visibility", Title: "The farthest distance that can be seen"},
	{Name: "P.O.P.", Title: "Probability of Precipitation, the chance of precipitation"},
	{Name: "Precipitation", Title: "Expected rain or snow over the next three hours."},
}

// CurrentFields returns the row labels of a current-conditions grid
func CurrentFields() []Field { return append([]Field(nil), currentFields...) }

// ForecastFields returns the row labels of a forecast grid
func ForecastFields() []Field { return append([]Field(nil), forecastFields...) }

// Builder turns observations and forecasts into grids.
// Clock times are shown in zone; nil means the local zone.
type Builder struct {
	zone   *time.Location
	logger *zap.Logger
}

// NewBuilder creates a builder; a nil logger discards output
func NewBuilder(zone *time.Location, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{zone: zone, logger: logger}
}

// Current builds the grid for current conditions at loc
func Current(loc models.Location, obs *models.Observation, tz *time.Location) Grid {
	return NewBuilder(tz, nil).Current(loc, obs)
}

// Forecast builds one column per forecast slot
func Forecast(fc *models.Forecast, tz *time.Location) Grid {
	return NewBuilder(tz, nil).Forecast(fc)
}

// Current builds the grid for current conditions at loc
func (b *Builder) Current(loc models.Location, obs *models.Observation) Grid {
	g := Grid{Fields: CurrentFields()}
	if obs == nil {
		return g
	}

	class := dataClass(obs.PartOfDay())
	r := obs.Readings

	col := []Cell{
		{Value: loc.DisplayName(), Class: ClassHeader, Title: loc.Coordinates.String()},
		{Value: meteo.ClockTime(r.Time.Unix(), b.zone), Class: ClassHeader},
		{Value: conditionText(r), Class: class, Title: conditionTitle(r)},
		{Value: meteo.FormatTemperature(r.Temperature), Class: class},
		{Value: meteo.FormatTemperature(r.FeelsLike), Class: class},
		{Value: pressureText(r.PressureHPa), Class: class},
		{Value: meteo.FormatPercent(r.Humidity), Class: class},
		{Value: b.dewpointText(r), Class: class},
		{Value: windText(r.Wind), Class: class, Title: fmt.Sprintf("%g°", r.Wind.Degrees)},
		{Value: meteo.FormatPercent(r.CloudCover), Class: class},
		{Value: meteo.FormatDistance(meteo.MetersToMiles(r.VisibilityMeters)), Class: class},
		{Value: precipText(r.Precipitation, observedLabel), Class: class},
		{Value: meteo.ClockTime(obs.Sunrise.Unix(), b.zone), Class: class},
		{Value: meteo.ClockTime(obs.Sunset.Unix(), b.zone), Class: class},
	}
	g.Columns = [][]Cell{col}
	return g
}

// Forecast builds one column per forecast slot, in forecast order
func (b *Builder) Forecast(fc *models.Forecast) Grid {
	g := Grid{Fields: ForecastFields()}
	if fc == nil {
		return g
	}

	g.Columns = make([][]Cell, 0, len(fc.Slots))
	for _, slot := range fc.Slots {
		class := dataClass(slot.PartOfDay)
		r := slot.Readings
		unix := r.Time.Unix()

		g.Columns = append(g.Columns, []Cell{
			{Value: meteo.DayOfWeek(unix, b.zone), Class: ClassHeader},
			{Value: meteo.ClockTime(unix, b.zone), Class: ClassHeader},
			{Value: conditionText(r), Class: class, Title: conditionTitle(r)},
			{Value: meteo.FormatTemperature(r.Temperature), Class: class},
			{Value: meteo.FormatTemperature(r.FeelsLike), Class: class},
			{Value: pressureText(r.PressureHPa), Class: class},
			{Value: meteo.FormatPercent(r.Humidity), Class: class},
			{Value: b.dewpointText(r), Class: class},
			{Value: windText(r.Wind), Class: class, Title: fmt.Sprintf("%g°", r.Wind.Degrees)},
			{Value: meteo.FormatPercent(r.CloudCover), Class: class},
			{Value: meteo.FormatDistance(meteo.MetersToMiles(r.VisibilityMeters)), Class: class},
			{Value: meteo.FormatProbability(slot.PrecipProbability), Class: class},
			{Value: precipText(r.Precipitation, expectedLabel), Class: class},
		})
	}
	return g
}

func dataClass(pod models.PartOfDay) CellClass {
	if pod == models.Day {
		return ClassDay
	}
	return ClassNight
}

func pressureText(hpa float64) string {
	return fmt.Sprintf("%s (%s)", meteo.FormatPressureInHg(meteo.HPaToInHg(hpa)), meteo.FormatPressureHPa(hpa))
}

func (b *Builder) dewpointText(r models.Readings) string {
	dp, err := meteo.Dewpoint(r.Temperature, r.Humidity)
	if err != nil {
		b.logger.Debug("dewpoint unavailable",
			zap.Float64("temperature", r.Temperature),
			zap.Float64("humidity", r.Humidity),
			zap.Error(err),
		)
		return "n/a"
	}
	return meteo.FormatTemperature(dp)
}

// windText renders e.g. "NNE 12 MPH (G 20 MPH)"
func windText(w models.WindData) string {
	s := meteo.CardinalDirection(w.Degrees) + " " + meteo.FormatSpeed(w.SpeedMPH)
	if w.HasGust {
		s += " (G " + meteo.FormatSpeed(w.GustMPH) + ")"
	}
	return s
}

func conditionText(r models.Readings) string {
	summary := r.ConditionSummary()
	c, ok := r.PrimaryCondition()
	if !ok {
		return "Unknown"
	}
	if glyph := IconGlyph(c.Icon); glyph != "" {
		return glyph + " " + summary
	}
	return summary
}

func conditionTitle(r models.Readings) string {
	descs := make([]string, 0, len(r.Conditions))
	for _, c := range r.Conditions {
		descs = append(descs, c.Description)
	}
	return strings.Join(descs, ", ")
}

type labelFunc func(a models.Accumulation) string

func observedLabel(a models.Accumulation) string {
	if a.Window == time.Hour {
		return string(a.Kind) + " last hour"
	}
	return fmt.Sprintf("%s last %d hours", a.Kind, int(math.Round(a.Window.Hours())))
}

func expectedLabel(a models.Accumulation) string {
	return string(a.Kind) + " expected"
}

// precipText lists non-zero accumulations one per line, or "None"
func precipText(acc []models.Accumulation, label labelFunc) string {
	lines := make([]string, 0, len(acc))
	for _, a := range acc {
		if a.Millimeters == 0 {
			continue
		}
		lines = append(lines, label(a)+": "+meteo.FormatPrecipitation(meteo.MillimetersToInches(a.Millimeters)))
	}
	if len(lines) == 0 {
		return "None"
	}
	return strings.Join(lines, "\n")
}

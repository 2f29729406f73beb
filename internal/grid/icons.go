package grid

import "fmt"

// iconGlyphs maps the OpenWeatherMap icon family (the two digits before
// the d/n suffix) to a terminal glyph
var iconGlyphs = map[string]string{
	"01": "☀",
	"02": "⛅",
	"03": "☁",
	"04": "☁",
	"09": "🌧",
	"10": "🌦",
	"11": "⛈",
	"13": "❄",
	"50": "🌫",
}

// IconGlyph returns a glyph for an icon code such as "10d", or "" if unknown.
// Clear nights get a moon.
func IconGlyph(code string) string {
	if len(code) < 2 {
		return ""
	}
	if code == "01n" {
		return "☾"
	}
	return iconGlyphs[code[:2]]
}

// IconURL returns the PNG for an icon code
func IconURL(code string) string {
	return fmt.Sprintf("https://openweathermap.org/img/wn/%s.png", code)
}

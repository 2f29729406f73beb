package meteo

import (
	"fmt"
	"math"
	"strconv"
)

// FormatTemperature formats a °F temperature, e.g. "71.3°F"
func FormatTemperature(tempF float64) string {
	return fmt.Sprintf("%.1f°F", tempF)
}

// FormatPressureInHg formats pressure in inches of mercury, e.g. "29.92 in. Hg"
func FormatPressureInHg(pressureInHg float64) string {
	return fmt.Sprintf("%.2f in. Hg", pressureInHg)
}

// FormatPressureHPa formats pressure in millibars, e.g. "1013 mbar"
func FormatPressureHPa(pressureHPa float64) string {
	return strconv.FormatFloat(pressureHPa, 'f', -1, 64) + " mbar"
}

// FormatPercent formats a 0-100 value with a percent sign
func FormatPercent(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64) + "%"
}

// FormatProbability formats a 0.0-1.0 probability as a whole percent
func FormatProbability(p float64) string {
	return fmt.Sprintf("%.0f%%", math.Round(p*100))
}

// FormatDistance formats a distance in miles, e.g. "10.00 mi."
func FormatDistance(miles float64) string {
	return fmt.Sprintf("%.2f mi.", miles)
}

// FormatPrecipitation formats a precipitation amount in inches, e.g. "0.12 in."
func FormatPrecipitation(inches float64) string {
	return fmt.Sprintf("%.2f in.", inches)
}

// FormatSpeed formats a wind speed rounded to whole miles per hour
func FormatSpeed(mph float64) string {
	return fmt.Sprintf("%.0f MPH", math.Round(mph))
}

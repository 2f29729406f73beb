// Package meteo converts raw OpenWeatherMap measurements into derived
// quantities and US customary display units.
package meteo

import (
	"fmt"
	"math"
)

// Magnus parameters over liquid water
const (
	magnusBeta   = 17.625 // dimensionless
	magnusLambda = 243.04 // °C
)

const (
	hPaPerInHg    = 33.864
	mmPerInch     = 25.4
	metersPerMile = 1609.344
)

// FahrenheitToCelsius converts a temperature from °F to °C
func FahrenheitToCelsius(tempF float64) float64 {
	return (tempF - 32) * (5.0 / 9.0)
}

// CelsiusToFahrenheit converts a temperature from °C to °F
func CelsiusToFahrenheit(tempC float64) float64 {
	return tempC*(9.0/5.0) + 32
}

// Dewpoint calculates the dewpoint in °F from the air temperature (°F) and
// relative humidity (percent) using the Magnus approximation.
// Humidity must be in (0, 100]; anything else returns ErrInvalidMeasurement.
func Dewpoint(tempF, relHumidity float64) (float64, error) {
	if math.IsNaN(tempF) || math.IsInf(tempF, 0) {
		return math.NaN(), fmt.Errorf("temperature %v: %w", tempF, ErrInvalidMeasurement)
	}
	if math.IsNaN(relHumidity) || relHumidity <= 0 || relHumidity > 100 {
		return math.NaN(), fmt.Errorf("relative humidity %v: %w", relHumidity, ErrInvalidMeasurement)
	}

	tempC := FahrenheitToCelsius(tempF)
	gamma := math.Log(relHumidity/100) + (magnusBeta*tempC)/(magnusLambda+tempC)
	dewpointC := (magnusLambda * gamma) / (magnusBeta - gamma)

	return CelsiusToFahrenheit(dewpointC), nil
}

// HPaToInHg converts barometric pressure from hectopascals (millibars) to
// inches of mercury
func HPaToInHg(pressureHPa float64) float64 {
	return pressureHPa / hPaPerInHg
}

// MillimetersToInches converts a precipitation amount from mm to inches
func MillimetersToInches(precipMM float64) float64 {
	return precipMM / mmPerInch
}

// MetersToMiles converts a visibility distance from meters to statute miles
func MetersToMiles(visibilityM float64) float64 {
	return visibilityM / metersPerMile
}

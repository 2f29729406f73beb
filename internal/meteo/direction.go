package meteo

// sector is a half-open compass range [low, high)
type sector struct {
	low   float64
	high  float64
	label string
}

// compassSectors is evaluated in order, first match wins. North is not listed:
// it straddles 0° and is whatever falls through every sector.
var compassSectors = []sector{
	{11.25, 33.75, "NNE"},
	{33.75, 56.25, "NE"},
	{56.25, 78.75, "ENE"},
	{78.75, 101.25, "E"},
	{101.25, 123.75, "ESE"},
	{123.75, 146.25, "SE"},
	{146.25, 168.75, "SSE"},
	{168.75, 191.25, "S"},
	{191.25, 213.75, "SSW"},
	{213.75, 236.25, "SW"},
	{236.25, 258.75, "WSW"},
	{258.75, 281.25, "W"},
	{281.25, 303.75, "WNW"},
	{303.75, 326.25, "NW"},
	{326.25, 348.75, "NNW"},
}

// North is the fall-through compass label
const North = "N"

// CardinalDirection returns the 16-point compass label for a wind direction
// in degrees. Values outside [0, 360) resolve to "N".
func CardinalDirection(degrees float64) string {
	for _, s := range compassSectors {
		if degrees >= s.low && degrees < s.high {
			return s.label
		}
	}
	return North
}

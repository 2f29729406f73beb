package meteo

import "errors"

// ErrInvalidMeasurement is returned when an input falls outside the numeric
// domain a conversion is defined for (e.g. zero humidity passed to Dewpoint).
var ErrInvalidMeasurement = errors.New("invalid measurement")

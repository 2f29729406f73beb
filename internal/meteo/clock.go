package meteo

import (
	"fmt"
	"time"
)

// ClockTime renders a Unix timestamp as a 12-hour clock string such as
// " 9:05am" or "12:00pm" in the given zone. The hour is space padded to two
// characters.
func ClockTime(unixSeconds int64, loc *time.Location) string {
	t := time.Unix(unixSeconds, 0).In(zoneOrLocal(loc))

	h := t.Hour() % 12
	if h == 0 {
		h = 12
	}
	suffix := "am"
	if t.Hour() >= 12 {
		suffix = "pm"
	}
	return fmt.Sprintf("%2d:%02d%s", h, t.Minute(), suffix)
}

// LocalClockTime is ClockTime in the viewer's own zone, not the location's
func LocalClockTime(unixSeconds int64) string {
	return ClockTime(unixSeconds, time.Local)
}

// DayOfWeek returns the weekday name (Sunday..Saturday) of a Unix timestamp
// in the given zone
func DayOfWeek(unixSeconds int64, loc *time.Location) string {
	return time.Unix(unixSeconds, 0).In(zoneOrLocal(loc)).Weekday().String()
}

// LocalDayOfWeek is DayOfWeek in the viewer's own zone
func LocalDayOfWeek(unixSeconds int64) string {
	return DayOfWeek(unixSeconds, time.Local)
}

func zoneOrLocal(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}

package model

import (
	"fmt"
	"time"
)

// ParseTimeOfDay validates a zero-padded 24h "HH:MM" value and returns the
// hour and minute.
func ParseTimeOfDay(s string) (hour, minute int, err error) {
	if len(s) != 5 {
		return 0, 0, fmt.Errorf("invalid time of day %q: want HH:MM", s)
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time of day %q: want HH:MM", s)
	}
	return t.Hour(), t.Minute(), nil
}

// At combines a calendar date with an "HH:MM" value in the date's location.
func At(date time.Time, timeOfDay string) (time.Time, error) {
	h, m, err := ParseTimeOfDay(timeOfDay)
	if err != nil {
		return time.Time{}, err
	}
	y, mo, d := date.Date()
	return time.Date(y, mo, d, h, m, 0, 0, date.Location()), nil
}

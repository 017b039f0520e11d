package util

import (
	"time"
)

func AddTimeToDate(date time.Time, sourceTime time.Time) time.Time {
	newDateTime := time.Date(date.Year(), date.Month(), date.Day(), sourceTime.Hour(), sourceTime.Minute(), sourceTime.Second(), sourceTime.Nanosecond(), date.Location())

	return newDateTime
}

// ParseClockTime places an "HH:MM" clock reading on the given date. An unparsable reading
// returns the zero time and false.
func ParseClockTime(date time.Time, clock string) (time.Time, bool) {
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, false
	}

	return AddTimeToDate(date, parsed), true
}

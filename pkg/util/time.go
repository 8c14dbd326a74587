package util

import (
	"fmt"
	"time"
)

const ClockFormat = "15:04"

// ParseClock converts a "HH:MM" string into minutes since midnight.
func ParseClock(clock string) (int, error) {
	parsed, err := time.Parse(ClockFormat, clock)
	if err != nil {
		return 0, err
	}

	return parsed.Hour()*60 + parsed.Minute(), nil
}

// FormatClock converts minutes since midnight into a "HH:MM" string.
// Values outside a single day wrap around midnight.
func FormatClock(minutes int) string {
	minutes = minutes % (24 * 60)
	if minutes < 0 {
		minutes += 24 * 60
	}

	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// TruncateToDay strips the time-of-day component, keeping the location.
func TruncateToDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// ISODate formats a date as YYYY-MM-DD for holiday window comparisons.
func ISODate(date time.Time) string {
	return date.Format("2006-01-02")
}

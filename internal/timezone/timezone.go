package timezone

import (
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

var DefaultTimezone = "America/Lima"

// SetDefault replaces the fallback zone when tz is valid.
func SetDefault(tz string) {
	if IsValid(tz) {
		DefaultTimezone = tz
	}
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func Now() time.Time {
	return time.Now().In(Location(DefaultTimezone))
}

// Today is the current calendar date in the default zone, as UTC midnight.
func Today() time.Time {
	n := Now()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate reads YYYY-MM-DD as a calendar date pinned to UTC midnight, which
// is how slot and booking dates are stored.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseClock reads HH:MM and returns minutes since midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// EndOfDay closes a window that runs until midnight.
const EndOfDay = "24:00"

// ParseClockEnd is ParseClock for the end of a window; it also accepts
// EndOfDay as 1440.
func ParseClockEnd(s string) (int, error) {
	if s == EndOfDay {
		return 24 * 60, nil
	}
	return ParseClock(s)
}

func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

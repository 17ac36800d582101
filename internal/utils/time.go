package utils

import (
	"fmt"
	"strings"
	"time"
)

const (
	layoutDate     = "2006-01-02"
	layoutDateTime = "2006-01-02 15:04:05"
	layoutClock    = "15:04"
	layoutDateTR   = "02.01.2006"
)

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
}

// ParseClock parses "HH:mm" and returns the hour and minute.
func ParseClock(s string) (int, int, error) {
	t, err := time.Parse(layoutClock, strings.TrimSpace(s))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:mm", s)
	}
	return t.Hour(), t.Minute(), nil
}

// CombineDateClock puts an "HH:mm" clock on the calendar day of date.
func CombineDateClock(date time.Time, clock string) (time.Time, error) {
	h, m, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	y, mo, d := date.Date()
	return time.Date(y, mo, d, h, m, 0, 0, date.Location()), nil
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// FormatDateTR formats as dd.MM.yyyy.
func FormatDateTR(t time.Time) string {
	return t.Format(layoutDateTR)
}

// FormatDateTime formats time to "YYYY-MM-DD HH:MM:SS" in its own location.
func FormatDateTime(t time.Time) string {
	return t.Format(layoutDateTime)
}

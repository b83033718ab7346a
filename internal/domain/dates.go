package domain

import (
	"strings"
	"time"
)

// DateLayout is the calendar-day format used for every stored and displayed date.
const DateLayout = "2006-01-02"

var optionalDateLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/01/02",
}

// ParseOptionalDate parses s as a calendar date. Blank or malformed input is
// absent (nil), never the zero time.
func ParseOptionalDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range optionalDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d := DateOnly(t)
			return &d
		}
	}
	return nil
}

// DateOnly truncates t to midnight UTC of its own calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole calendar days from a to b (negative when b is before a).
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}

// FormatOptionalDate renders t as YYYY-MM-DD, or "" when absent.
func FormatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}

// TimePtr returns a pointer to t.
func TimePtr(t time.Time) *time.Time { return &t }

package utils

import "time"

// DateLayout is the calendar-date encoding used for course start dates
const DateLayout = "2006-01-02"

// NowRFC3339 returns the current time in RFC3339 format
func NowRFC3339() string {
	return time.Now().Format(time.RFC3339)
}

// ParseRFC3339 parses a time string in RFC3339 format
func ParseRFC3339(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// ParseDate parses a calendar date in DateLayout, interpreted as UTC midnight
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// DateBefore reports whether the calendar date of a is strictly before the
// calendar date of b, ignoring time-of-day.
func DateBefore(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	at := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	bt := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return at.Before(bt)
}

package timeutil

import "time"

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// DateTimeLayout is used for human-readable report stamps.
const DateTimeLayout = "2006-01-02 15:04:05"

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatDateTime formats a time as YYYY-MM-DD HH:MM:SS in its current location.
func FormatDateTime(t time.Time) string {
	return t.Format(DateTimeLayout)
}

// DaysAgo returns the start of the UTC day n days before t.
func DaysAgo(t time.Time, n int) time.Time {
	day := t.UTC().Truncate(24 * time.Hour)
	return day.AddDate(0, 0, -n)
}

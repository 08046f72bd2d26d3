package dto

import "time"

// Timestamps go on the wire as RFC 3339 in UTC, dates as YYYY-MM-DD.
const DateLayout = "2006-01-02"

func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// FormatTimePtr returns nil for a nil time.
func FormatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatTime(*t)
	return &s
}

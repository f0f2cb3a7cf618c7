package utils

import (
	"strings"
	"time"
)

const layoutDate = "2006-01-02"

// Today returns the current calendar day as YYYY-MM-DD in local timezone.
func Today() string {
	return time.Now().In(time.Local).Format(layoutDate)
}

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
}

// FormatDate formats time to YYYY-MM-DD in local timezone.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(layoutDate)
}

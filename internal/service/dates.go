package service

import (
	"strings"
	"time"

	errorvalues "github.com/limbo/exercise-tracker/internal/error_values"
)

const DateLayout = "2006-01-02"

// Layouts without a zone are read as UTC.
var dateLayouts = []string{
	DateLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errorvalues.ErrInvalidDate
}

// FormatDate renders epoch milliseconds as the UTC calendar date.
func FormatDate(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(DateLayout)
}

package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrMissingDate = errors.New("date is required")
	ErrInvalidDate = errors.New("invalid date")
)

var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
}

// localLayouts carry no zone and are read in the caller's location.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseDate accepts RFC3339 timestamps, HTML datetime-local values and plain dates.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrMissingDate
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// Package dates содержит разбор календарных дат и времени суток,
// которые приходят от клиента строками.
package dates

import (
	"time"

	"github.com/magabrotheeeer/fitness-tracker/internal/lib/apperr"
)

const (
	// DateLayout: формат календарной даты в API.
	DateLayout = "2006-01-02"
	// ClockLayout: формат времени суток в API.
	ClockLayout = "15:04"
)

// ParseDate разбирает дату формата 2006-01-02 в полночь UTC.
func ParseDate(field, value string) (time.Time, error) {
	d, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, apperr.Validation("field %s must be a date in format YYYY-MM-DD", field)
	}
	return d, nil
}

// ParseOptionalDate разбирает дату; пустая строка даёт fallback.
func ParseOptionalDate(field, value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return Day(fallback), nil
	}
	return ParseDate(field, value)
}

// ParseClock разбирает время суток формата HH:MM (допускается HH:MM:SS).
func ParseClock(field, value string) (string, error) {
	if t, err := time.Parse(ClockLayout, value); err == nil {
		return t.Format(ClockLayout), nil
	}
	if t, err := time.Parse("15:04:05", value); err == nil {
		return t.Format(ClockLayout), nil
	}
	return "", apperr.Validation("field %s must be a time in format HH:MM", field)
}

// Day обрезает момент времени до начала суток в UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Format печатает дату в формате API.
func Format(t time.Time) string {
	return t.Format(DateLayout)
}

package service

import (
	"time"

	appErrors "github.com/sportoase/sportoase-api/pkg/errors"
)

const (
	wireDateLayout   = "2006-01-02"
	germanDateLayout = "02.01.2006"
)

// ParseDate parses a YYYY-MM-DD wire date.
func ParseDate(raw string) (time.Time, error) {
	t, err := time.Parse(wireDateLayout, raw)
	if err != nil {
		return time.Time{}, appErrors.Clone(appErrors.ErrValidation, "Ungültiges Datumsformat (YYYY-MM-DD erwartet)")
	}
	return t, nil
}

// FormatDate renders a date in wire format.
func FormatDate(t time.Time) string {
	return t.Format(wireDateLayout)
}

// WeekdayCode maps a date to the catalog weekday code (Mon..Sun).
func WeekdayCode(t time.Time) string {
	return t.Weekday().String()[:3]
}

// MondayOf returns the Monday of the week containing t.
func MondayOf(t time.Time) time.Time {
	offset := int(t.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	return t.AddDate(0, 0, -offset)
}

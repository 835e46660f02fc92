package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2026-01-05")
	require.NoError(t, err)
	assert.Equal(t, monday, parsed)

	_, err = ParseDate("05.01.2026")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Datumsformat")
}

func TestWeekdayCode(t *testing.T) {
	assert.Equal(t, "Mon", WeekdayCode(monday))
	assert.Equal(t, "Sun", WeekdayCode(monday.AddDate(0, 0, -1)))
}

func TestMondayOf(t *testing.T) {
	// Every day of the week, Sunday included, snaps back to its Monday.
	for offset := 0; offset < 7; offset++ {
		day := monday.AddDate(0, 0, offset)
		assert.Equal(t, monday, MondayOf(day), "offset %d", offset)
	}
	assert.Equal(t, monday.AddDate(0, 0, 7), MondayOf(monday.AddDate(0, 0, 7)))
	assert.Equal(t, time.Monday, MondayOf(time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)).Weekday())
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sportoase/sportoase-api/internal/models"
)

type stubTimeSlotLister struct {
	slots []models.TimeSlot
}

func (s *stubTimeSlotLister) ListByWeekday(ctx context.Context, weekday string) ([]models.TimeSlot, error) {
	out := make([]models.TimeSlot, 0, len(s.slots))
	for _, slot := range s.slots {
		if slot.Weekday == weekday {
			out = append(out, slot)
		}
	}
	return out, nil
}

type stubBookingLister struct {
	bookings []models.Booking
}

func (s *stubBookingLister) ListByDate(ctx context.Context, date time.Time) ([]models.Booking, error) {
	out := make([]models.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		if b.Date.Equal(date) {
			out = append(out, b)
		}
	}
	return out, nil
}

type stubBlockedLister struct {
	blocks []models.BlockedSlot
}

func (s *stubBlockedLister) ListByDate(ctx context.Context, date time.Time) ([]models.BlockedSlot, error) {
	out := make([]models.BlockedSlot, 0, len(s.blocks))
	for _, b := range s.blocks {
		if b.Date.Equal(date) {
			out = append(out, b)
		}
	}
	return out, nil
}

func mondaySlots(period int, max int) []models.TimeSlot {
	return []models.TimeSlot{{
		ID:          "ts1",
		Weekday:     models.WeekdayMon,
		Period:      period,
		Label:       "Sporthalle",
		StartTime:   "08:00",
		EndTime:     "08:45",
		MaxStudents: max,
	}}
}

func students(n int) models.StudentList {
	list := make(models.StudentList, n)
	for i := range list {
		list[i] = models.Student{Name: "Kind", Klasse: "5a"}
	}
	return list
}

// 2026-01-05 is a Monday.
var monday = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

func newAvailabilityService(ts *stubTimeSlotLister, bk *stubBookingLister, bl *stubBlockedLister) *AvailabilityService {
	return NewAvailabilityService(ts, bk, bl, nil, nil, zap.NewNop(), false, 0)
}

func TestAvailabilityEmptyDateAllAvailable(t *testing.T) {
	svc := newAvailabilityService(
		&stubTimeSlotLister{slots: mondaySlots(1, 200)},
		&stubBookingLister{},
		&stubBlockedLister{},
	)

	slots, err := svc.Availability(context.Background(), monday)
	require.NoError(t, err)
	require.Len(t, slots, 1)

	assert.True(t, slots[0].IsAvailable)
	assert.False(t, slots[0].IsBlocked)
	assert.Equal(t, 0, slots[0].CurrentStudents)
	assert.Equal(t, 200, slots[0].AvailableSpots)
	assert.NotNil(t, slots[0].Bookings)
	assert.Empty(t, slots[0].Bookings)
}

func TestAvailabilitySumsStudentsAcrossBookings(t *testing.T) {
	svc := newAvailabilityService(
		&stubTimeSlotLister{slots: mondaySlots(2, 200)},
		&stubBookingLister{bookings: []models.Booking{
			{Date: monday, Period: 2, Students: students(12)},
			{Date: monday, Period: 2, Students: students(8)},
		}},
		&stubBlockedLister{},
	)

	slots, err := svc.Availability(context.Background(), monday)
	require.NoError(t, err)
	require.Len(t, slots, 1)

	assert.Equal(t, 20, slots[0].CurrentStudents)
	assert.Equal(t, 180, slots[0].AvailableSpots)
	assert.True(t, slots[0].IsAvailable)
	assert.Len(t, slots[0].Bookings, 2)
}

func TestAvailabilityFullSlotUnavailable(t *testing.T) {
	svc := newAvailabilityService(
		&stubTimeSlotLister{slots: mondaySlots(1, 20)},
		&stubBookingLister{bookings: []models.Booking{
			{Date: monday, Period: 1, Students: students(20)},
		}},
		&stubBlockedLister{},
	)

	slots, err := svc.Availability(context.Background(), monday)
	require.NoError(t, err)
	require.Len(t, slots, 1)

	assert.False(t, slots[0].IsAvailable)
	assert.Equal(t, 0, slots[0].AvailableSpots)
}

func TestAvailabilityOverbookedSlotClampsToZero(t *testing.T) {
	svc := newAvailabilityService(
		&stubTimeSlotLister{slots: mondaySlots(1, 20)},
		&stubBookingLister{bookings: []models.Booking{
			{Date: monday, Period: 1, Students: students(25)},
		}},
		&stubBlockedLister{},
	)

	slots, err := svc.Availability(context.Background(), monday)
	require.NoError(t, err)
	require.Len(t, slots, 1)

	assert.Equal(t, 25, slots[0].CurrentStudents)
	assert.Equal(t, 0, slots[0].AvailableSpots)
	assert.False(t, slots[0].IsAvailable)
}

func TestAvailabilityBlockedSlotCarriesReason(t *testing.T) {
	svc := newAvailabilityService(
		&stubTimeSlotLister{slots: mondaySlots(3, 200)},
		&stubBookingLister{},
		&stubBlockedLister{blocks: []models.BlockedSlot{
			{Date: monday, Period: 3, Reason: "Beratung"},
		}},
	)

	slots, err := svc.Availability(context.Background(), monday)
	require.NoError(t, err)
	require.Len(t, slots, 1)

	assert.True(t, slots[0].IsBlocked)
	assert.False(t, slots[0].IsAvailable)
	require.NotNil(t, slots[0].BlockedReason)
	assert.Equal(t, "Beratung", *slots[0].BlockedReason)
}

func TestWeekOverviewCoversSchoolWeek(t *testing.T) {
	catalog := make([]models.TimeSlot, 0, 5)
	for _, wd := range models.SchoolWeekdays {
		catalog = append(catalog, models.TimeSlot{
			Weekday: wd, Period: 1, Label: "Sporthalle", MaxStudents: 200,
		})
	}
	svc := newAvailabilityService(
		&stubTimeSlotLister{slots: catalog},
		&stubBookingLister{},
		&stubBlockedLister{},
	)

	overview, err := svc.WeekOverview(context.Background(), monday)
	require.NoError(t, err)

	assert.Equal(t, "2026-01-05", overview.StartDate)
	require.Len(t, overview.WeekData, 5)
	assert.Equal(t, "Monday", overview.WeekData[0].Weekday)
	assert.Equal(t, "Friday", overview.WeekData[4].Weekday)
	assert.Equal(t, "2026-01-09", overview.WeekData[4].Date)
	for _, day := range overview.WeekData {
		require.Len(t, day.Slots, 1)
		assert.True(t, day.Slots[0].IsAvailable)
	}
}

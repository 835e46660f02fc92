package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportoase/sportoase-api/internal/dto"
	"github.com/sportoase/sportoase-api/internal/models"
)

type availabilityServiceMock struct {
	slots    []dto.SlotInfo
	overview *dto.WeekOverviewResponse
	lastDate time.Time
}

func (m *availabilityServiceMock) Availability(ctx context.Context, date time.Time) ([]dto.SlotInfo, error) {
	m.lastDate = date
	return m.slots, nil
}

func (m *availabilityServiceMock) WeekOverview(ctx context.Context, start time.Time) (*dto.WeekOverviewResponse, error) {
	m.lastDate = start
	return m.overview, nil
}

type timeSlotServiceMock struct {
	slots   []models.TimeSlot
	updated *models.TimeSlot
	err     error
}

func (m *timeSlotServiceMock) List(ctx context.Context) ([]models.TimeSlot, error) {
	return m.slots, nil
}

func (m *timeSlotServiceMock) UpdateLabel(ctx context.Context, claims *models.JWTClaims, id string, req *dto.UpdateTimeSlotRequest) (*models.TimeSlot, error) {
	return m.updated, m.err
}

func TestSlotHandlerSlotsParsesDate(t *testing.T) {
	mockSvc := &availabilityServiceMock{slots: []dto.SlotInfo{{Period: 1, IsAvailable: true}}}
	h := NewSlotHandler(mockSvc, &timeSlotServiceMock{})

	c, w := testContext(t, http.MethodGet, "/slots?date=2026-01-05", nil)

	h.Slots(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), mockSvc.lastDate)
	assert.Contains(t, w.Body.String(), `"date":"2026-01-05"`)
}

func TestSlotHandlerSlotsRequiresDate(t *testing.T) {
	h := NewSlotHandler(&availabilityServiceMock{}, &timeSlotServiceMock{})

	c, w := testContext(t, http.MethodGet, "/slots", nil)

	h.Slots(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Datum erforderlich")
}

func TestSlotHandlerSlotsRejectsBadDate(t *testing.T) {
	h := NewSlotHandler(&availabilityServiceMock{}, &timeSlotServiceMock{})

	c, w := testContext(t, http.MethodGet, "/slots?date=05.01.2026", nil)

	h.Slots(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}

func TestSlotHandlerWeekSnapsToMonday(t *testing.T) {
	mockSvc := &availabilityServiceMock{overview: &dto.WeekOverviewResponse{StartDate: "x", WeekData: []dto.DayOverview{}}}
	h := NewSlotHandler(mockSvc, &timeSlotServiceMock{})

	c, w := testContext(t, http.MethodGet, "/slots/week", nil)

	h.WeekOverview(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, time.Monday, mockSvc.lastDate.Weekday())
}

func TestSlotHandlerUpdateTimeSlot(t *testing.T) {
	mockSvc := &timeSlotServiceMock{updated: &models.TimeSlot{ID: "ts1", Label: "Kletterwand"}}
	h := NewSlotHandler(&availabilityServiceMock{}, mockSvc)

	c, w := testContext(t, http.MethodPatch, "/timeslots/ts1", []byte(`{"label":"Kletterwand"}`))
	c.Params = gin.Params{{Key: "id", Value: "ts1"}}

	h.UpdateTimeSlot(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Kletterwand")
}

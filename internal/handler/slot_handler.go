package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sportoase/sportoase-api/internal/dto"
	"github.com/sportoase/sportoase-api/internal/middleware"
	"github.com/sportoase/sportoase-api/internal/models"
	"github.com/sportoase/sportoase-api/internal/service"
	appErrors "github.com/sportoase/sportoase-api/pkg/errors"
	"github.com/sportoase/sportoase-api/pkg/response"
)

type availabilityService interface {
	Availability(ctx context.Context, date time.Time) ([]dto.SlotInfo, error)
	WeekOverview(ctx context.Context, start time.Time) (*dto.WeekOverviewResponse, error)
}

type timeSlotService interface {
	List(ctx context.Context) ([]models.TimeSlot, error)
	UpdateLabel(ctx context.Context, claims *models.JWTClaims, id string, req *dto.UpdateTimeSlotRequest) (*models.TimeSlot, error)
}

// SlotHandler exposes availability views and the period catalog.
type SlotHandler struct {
	availability availabilityService
	timeslots    timeSlotService
}

// NewSlotHandler constructs the slot handler.
func NewSlotHandler(availability availabilityService, timeslots timeSlotService) *SlotHandler {
	return &SlotHandler{availability: availability, timeslots: timeslots}
}

// Slots godoc
// @Summary Availability for one date
// @Tags slots
// @Produce json
// @Security BearerAuth
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope{data=dto.SlotsResponse}
// @Failure 400 {object} response.Envelope
// @Router /slots [get]
func (h *SlotHandler) Slots(c *gin.Context) {
	raw := c.Query("date")
	if raw == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "Datum erforderlich"))
		return
	}
	date, err := service.ParseDate(raw)
	if err != nil {
		response.Error(c, err)
		return
	}

	slots, err := h.availability.Availability(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.SlotsResponse{
		Date:  service.FormatDate(date),
		Slots: slots,
	})
}

// WeekOverview godoc
// @Summary Availability for a school week
// @Tags slots
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "Week start (YYYY-MM-DD), snapped to Monday when missing"
// @Success 200 {object} response.Envelope{data=dto.WeekOverviewResponse}
// @Failure 400 {object} response.Envelope
// @Router /slots/week [get]
func (h *SlotHandler) WeekOverview(c *gin.Context) {
	raw := c.Query("start_date")
	var start time.Time
	if raw == "" {
		start = service.MondayOf(time.Now())
	} else {
		parsed, err := service.ParseDate(raw)
		if err != nil {
			response.Error(c, err)
			return
		}
		start = parsed
	}

	overview, err := h.availability.WeekOverview(c.Request.Context(), start)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, overview)
}

// TimeSlots godoc
// @Summary List the period catalog
// @Tags slots
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope{data=[]models.TimeSlot}
// @Router /timeslots [get]
func (h *SlotHandler) TimeSlots(c *gin.Context) {
	slots, err := h.timeslots.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slots)
}

// UpdateTimeSlot godoc
// @Summary Rename a catalog entry
// @Tags slots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Timeslot ID"
// @Param request body dto.UpdateTimeSlotRequest true "New label"
// @Success 200 {object} response.Envelope{data=models.TimeSlot}
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /timeslots/{id} [patch]
func (h *SlotHandler) UpdateTimeSlot(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.UpdateTimeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Ungültiger Anfragetext"))
		return
	}

	slot, err := h.timeslots.UpdateLabel(c.Request.Context(), claims, c.Param("id"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slot)
}

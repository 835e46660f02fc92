package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sportoase/sportoase-api/internal/dto"
	"github.com/sportoase/sportoase-api/internal/middleware"
	"github.com/sportoase/sportoase-api/internal/models"
	"github.com/sportoase/sportoase-api/internal/service"
	appErrors "github.com/sportoase/sportoase-api/pkg/errors"
	"github.com/sportoase/sportoase-api/pkg/response"
)

type bookingService interface {
	Create(ctx context.Context, claims *models.JWTClaims, req *dto.CreateBookingRequest) (*models.Booking, error)
	Delete(ctx context.Context, claims *models.JWTClaims, id string) error
	ListForTeacher(ctx context.Context, claims *models.JWTClaims, query *dto.BookingListQuery) ([]models.Booking, error)
	ListAll(ctx context.Context, query *dto.BookingListQuery) ([]models.Booking, error)
}

type exportService interface {
	Export(ctx context.Context, claims *models.JWTClaims, query *dto.BookingListQuery, format string) (*service.ExportFile, error)
}

// BookingHandler exposes booking creation, listing and deletion.
type BookingHandler struct {
	bookings bookingService
	exports  exportService
}

// NewBookingHandler constructs the booking handler.
func NewBookingHandler(bookings bookingService, exports exportService) *BookingHandler {
	return &BookingHandler{bookings: bookings, exports: exports}
}

// Create godoc
// @Summary Book a slot
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateBookingRequest true "Booking"
// @Success 201 {object} response.Envelope{data=models.Booking}
// @Failure 400 {object} response.Envelope
// @Router /book [post]
func (h *BookingHandler) Create(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Ungültiger Anfragetext"))
		return
	}

	booking, err := h.bookings.Create(c.Request.Context(), claims, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, booking)
}

// MyBookings godoc
// @Summary List the caller's bookings
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "Range start (YYYY-MM-DD)"
// @Param end_date query string false "Range end (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope{data=[]models.Booking}
// @Router /my-bookings [get]
func (h *BookingHandler) MyBookings(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	query := listQuery(c)
	bookings, err := h.bookings.ListForTeacher(c.Request.Context(), claims, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, bookings)
}

// List godoc
// @Summary List bookings across all teachers
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param date query string false "Single day (YYYY-MM-DD), ordered by period"
// @Param start_date query string false "Range start (YYYY-MM-DD)"
// @Param end_date query string false "Range end (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope{data=[]models.Booking}
// @Failure 403 {object} response.Envelope
// @Router /bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	query := listQuery(c)
	bookings, err := h.bookings.ListAll(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, bookings)
}

// Export godoc
// @Summary Download bookings as CSV or PDF
// @Tags bookings
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param format query string false "csv (default) or pdf"
// @Param start_date query string false "Range start (YYYY-MM-DD)"
// @Param end_date query string false "Range end (YYYY-MM-DD)"
// @Success 200 {file} file
// @Failure 403 {object} response.Envelope
// @Router /bookings/export [get]
func (h *BookingHandler) Export(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	file, err := h.exports.Export(c.Request.Context(), claims, listQuery(c), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.FileName+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// Delete godoc
// @Summary Delete a booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /bookings/{id} [delete]
func (h *BookingHandler) Delete(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.bookings.Delete(c.Request.Context(), claims, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "Buchung gelöscht"})
}

func listQuery(c *gin.Context) *dto.BookingListQuery {
	return &dto.BookingListQuery{
		Date:      c.Query("date"),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}
}

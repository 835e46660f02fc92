package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/sportoase/sportoase-api/internal/dto"
	"github.com/sportoase/sportoase-api/internal/models"
	"github.com/sportoase/sportoase-api/internal/repository"
	appErrors "github.com/sportoase/sportoase-api/pkg/errors"
)

type bookingRepo interface {
	ListForSlot(ctx context.Context, date time.Time, period int) ([]models.Booking, error)
	ListByDate(ctx context.Context, date time.Time) ([]models.Booking, error)
	ListByTeacher(ctx context.Context, teacherID string, start, end *time.Time) ([]models.Booking, error)
	ListRecent(ctx context.Context, limit int) ([]models.Booking, error)
	ListRange(ctx context.Context, start, end *time.Time) ([]models.Booking, error)
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	Create(ctx context.Context, booking *models.Booking, note *models.Notification) error
	Delete(ctx context.Context, id string, note *models.Notification) error
}

type bookingTimeSlotRepo interface {
	GetBySlot(ctx context.Context, weekday string, period int) (*models.TimeSlot, error)
}

type bookingBlockedRepo interface {
	GetForSlot(ctx context.Context, date time.Time, period int) (*models.BlockedSlot, error)
}

type availabilityInvalidator interface {
	InvalidateAvailability(ctx context.Context)
}

// BookingService implements slot reservations. Every mutation writes
// its notification in the same transaction and drops the availability
// cache afterwards.
type BookingService struct {
	bookings  bookingRepo
	timeslots bookingTimeSlotRepo
	blocked   bookingBlockedRepo
	cache     availabilityInvalidator
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger

	adminListLimit int
}

// NewBookingService constructs the booking service.
func NewBookingService(
	bookings bookingRepo,
	timeslots bookingTimeSlotRepo,
	blocked bookingBlockedRepo,
	cache availabilityInvalidator,
	metrics *MetricsService,
	logger *zap.Logger,
	adminListLimit int,
) *BookingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if adminListLimit <= 0 {
		adminListLimit = 100
	}
	return &BookingService{
		bookings:       bookings,
		timeslots:      timeslots,
		blocked:        blocked,
		cache:          cache,
		metrics:        metrics,
		validator:      validator.New(),
		logger:         logger,
		adminListLimit: adminListLimit,
	}
}

// Create validates and stores a new booking for the acting teacher.
func (s *BookingService) Create(ctx context.Context, claims *models.JWTClaims, req *dto.CreateBookingRequest) (*models.Booking, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Ungültige Buchungsdaten")
	}
	if !models.IsValidOfferType(req.OfferType) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("Ungültiger Angebotstyp: %s", req.OfferType))
	}

	date, err := ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	weekday := WeekdayCode(date)
	if !models.IsSchoolWeekday(weekday) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Buchungen sind nur von Montag bis Freitag möglich")
	}

	slot, err := s.timeslots.GetBySlot(ctx, weekday, req.Period)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("Keine Sportstunde für %s, %d. Stunde gefunden", weekday, req.Period))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timeslot")
	}

	block, err := s.blocked.GetForSlot(ctx, date, req.Period)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check block")
	}
	if block != nil {
		s.metrics.RecordBooking("create", "blocked")
		return nil, appErrors.Clone(appErrors.ErrSlotBlocked, fmt.Sprintf("Dieser Slot ist blockiert: %s", block.Reason))
	}

	existing, err := s.bookings.ListForSlot(ctx, date, req.Period)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load slot bookings")
	}
	if conflict := findDoubleBooking(existing, req.Students); conflict != nil {
		s.metrics.RecordBooking("create", "double_booking")
		return nil, conflict
	}

	label := strings.TrimSpace(req.OfferLabel)
	if label == "" {
		label = slot.Label
	}

	booking := &models.Booking{
		Date:         date,
		Weekday:      weekday,
		Period:       req.Period,
		TeacherID:    claims.UserID,
		TeacherName:  claims.FullName,
		TeacherClass: firstKlasse(req.Students),
		Students:     req.Students,
		OfferType:    req.OfferType,
		OfferLabel:   label,
	}
	note := &models.Notification{
		Type: models.NotificationNewBooking,
		Message: fmt.Sprintf("Neue Buchung: %s von %s am %s - %d. Stunde",
			label, claims.FullName, date.Format(germanDateLayout), req.Period),
	}

	if err := s.bookings.Create(ctx, booking, note); err != nil {
		s.metrics.RecordBooking("create", "error")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Buchung konnte nicht gespeichert werden")
	}

	s.metrics.RecordBooking("create", "ok")
	s.cache.InvalidateAvailability(ctx)
	s.logger.Info("booking created",
		zap.String("booking_id", booking.ID),
		zap.String("teacher", claims.Username),
		zap.String("date", req.Date),
		zap.Int("period", req.Period),
		zap.Int("students", len(req.Students)))
	return booking, nil
}

// Delete removes a booking. Teachers may only delete their own; the
// admin capability overrides ownership.
func (s *BookingService) Delete(ctx context.Context, claims *models.JWTClaims, id string) error {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "Buchung nicht gefunden")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load booking")
	}

	if booking.TeacherID != claims.UserID && !claims.HasCapability(models.CapabilityAdmin) {
		return appErrors.Clone(appErrors.ErrForbidden, "Keine Berechtigung zum Löschen dieser Buchung")
	}

	note := &models.Notification{
		Type: models.NotificationBookingDeleted,
		Message: fmt.Sprintf("Buchung gelöscht: %s von %s am %s",
			booking.OfferLabel, booking.TeacherName, booking.Date.Format(germanDateLayout)),
	}

	if err := s.bookings.Delete(ctx, id, note); err != nil {
		if errors.Is(err, repository.ErrNoRowsAffected) {
			return appErrors.Clone(appErrors.ErrNotFound, "Buchung nicht gefunden")
		}
		s.metrics.RecordBooking("delete", "error")
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Buchung konnte nicht gelöscht werden")
	}

	s.metrics.RecordBooking("delete", "ok")
	s.cache.InvalidateAvailability(ctx)
	s.logger.Info("booking deleted",
		zap.String("booking_id", id),
		zap.String("actor", claims.Username))
	return nil
}

// ListForTeacher returns the acting teacher's bookings, optionally
// bounded by a date range.
func (s *BookingService) ListForTeacher(ctx context.Context, claims *models.JWTClaims, query *dto.BookingListQuery) ([]models.Booking, error) {
	start, end, err := parseRange(query)
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookings.ListByTeacher(ctx, claims.UserID, start, end)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list bookings")
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}

// ListAll returns bookings across all teachers for the admin view.
// A date filter yields that day ordered by period; without any filter
// it falls back to the newest bookings, capped.
func (s *BookingService) ListAll(ctx context.Context, query *dto.BookingListQuery) ([]models.Booking, error) {
	if query != nil && query.Date != "" {
		date, err := ParseDate(query.Date)
		if err != nil {
			return nil, err
		}
		bookings, err := s.bookings.ListByDate(ctx, date)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list bookings")
		}
		if bookings == nil {
			bookings = []models.Booking{}
		}
		return bookings, nil
	}

	start, end, err := parseRange(query)
	if err != nil {
		return nil, err
	}

	var bookings []models.Booking
	if start == nil && end == nil {
		bookings, err = s.bookings.ListRecent(ctx, s.adminListLimit)
	} else {
		bookings, err = s.bookings.ListRange(ctx, start, end)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list bookings")
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}

// findDoubleBooking reports the first requested student already present
// in another booking of the same slot.
func findDoubleBooking(existing []models.Booking, students []models.Student) *appErrors.Error {
	for _, b := range existing {
		for _, booked := range b.Students {
			for _, requested := range students {
				if sameStudent(booked, requested) {
					return appErrors.Clone(appErrors.ErrDoubleBooking,
						fmt.Sprintf("%s (%s) ist bereits in '%s' bei %s gebucht.",
							requested.Name, requested.Klasse, b.OfferLabel, b.TeacherName))
				}
			}
		}
	}
	return nil
}

func sameStudent(a, b models.Student) bool {
	return strings.EqualFold(strings.TrimSpace(a.Name), strings.TrimSpace(b.Name)) &&
		strings.EqualFold(strings.TrimSpace(a.Klasse), strings.TrimSpace(b.Klasse))
}

func firstKlasse(students []models.Student) string {
	if len(students) == 0 {
		return ""
	}
	return students[0].Klasse
}

func parseRange(query *dto.BookingListQuery) (*time.Time, *time.Time, error) {
	if query == nil {
		return nil, nil, nil
	}
	var start, end *time.Time
	if query.StartDate != "" {
		t, err := ParseDate(query.StartDate)
		if err != nil {
			return nil, nil, err
		}
		start = &t
	}
	if query.EndDate != "" {
		t, err := ParseDate(query.EndDate)
		if err != nil {
			return nil, nil, err
		}
		end = &t
	}
	return start, end, nil
}

package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/sportoase/sportoase-api/internal/dto"
	"github.com/sportoase/sportoase-api/internal/models"
	"github.com/sportoase/sportoase-api/internal/repository"
	appErrors "github.com/sportoase/sportoase-api/pkg/errors"
)

type timeSlotRepo interface {
	List(ctx context.Context) ([]models.TimeSlot, error)
	GetByID(ctx context.Context, id string) (*models.TimeSlot, error)
	UpdateLabel(ctx context.Context, id, label string) error
}

// TimeSlotService exposes the period catalog.
type TimeSlotService struct {
	timeslots timeSlotRepo
	cache     availabilityInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTimeSlotService constructs the timeslot service.
func NewTimeSlotService(timeslots timeSlotRepo, cache availabilityInvalidator, logger *zap.Logger) *TimeSlotService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimeSlotService{timeslots: timeslots, cache: cache, validator: validator.New(), logger: logger}
}

// List returns the full catalog ordered by weekday and period.
func (s *TimeSlotService) List(ctx context.Context) ([]models.TimeSlot, error) {
	slots, err := s.timeslots.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list timeslots")
	}
	if slots == nil {
		slots = []models.TimeSlot{}
	}
	return slots, nil
}

// UpdateLabel renames a catalog entry. Labels feed the availability
// view, so the cache is dropped.
func (s *TimeSlotService) UpdateLabel(ctx context.Context, claims *models.JWTClaims, id string, req *dto.UpdateTimeSlotRequest) (*models.TimeSlot, error) {
	if !claims.HasCapability(models.CapabilityAdmin) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "Nur Admins dürfen Zeitfenster bearbeiten")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Ungültige Bezeichnung")
	}

	if err := s.timeslots.UpdateLabel(ctx, id, req.Label); err != nil {
		if errors.Is(err, repository.ErrNoRowsAffected) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Zeitfenster nicht gefunden")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update timeslot")
	}

	slot, err := s.timeslots.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Zeitfenster nicht gefunden")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reload timeslot")
	}

	s.cache.InvalidateAvailability(ctx)
	s.logger.Info("timeslot renamed",
		zap.String("timeslot_id", id),
		zap.String("label", req.Label),
		zap.String("actor", claims.Username))
	return slot, nil
}

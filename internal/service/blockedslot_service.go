package service

import (
	"context"
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

// DefaultBlockReason is used when an admin blocks a slot without
// naming a reason.
const DefaultBlockReason = "Beratung"

type blockedSlotRepo interface {
	GetForSlot(ctx context.Context, date time.Time, period int) (*models.BlockedSlot, error)
	List(ctx context.Context, limit int) ([]models.BlockedSlot, error)
	Create(ctx context.Context, blocked *models.BlockedSlot, note *models.Notification) error
	Delete(ctx context.Context, date time.Time, period int) error
}

// BlockedSlotService implements admin slot blocking.
type BlockedSlotService struct {
	blocked   blockedSlotRepo
	cache     availabilityInvalidator
	validator *validator.Validate
	logger    *zap.Logger

	listLimit int
}

// NewBlockedSlotService constructs the blocked slot service.
func NewBlockedSlotService(blocked blockedSlotRepo, cache availabilityInvalidator, logger *zap.Logger, listLimit int) *BlockedSlotService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if listLimit <= 0 {
		listLimit = 100
	}
	return &BlockedSlotService{
		blocked:   blocked,
		cache:     cache,
		validator: validator.New(),
		logger:    logger,
		listLimit: listLimit,
	}
}

// Block marks one (date, period) as unbookable. Existing bookings in
// the slot stay untouched; they just can no longer grow.
func (s *BlockedSlotService) Block(ctx context.Context, claims *models.JWTClaims, req *dto.BlockSlotRequest) (*models.BlockedSlot, error) {
	if !claims.HasCapability(models.CapabilityAdmin) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "Nur Admins dürfen Slots blockieren")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Ungültige Blockierungsdaten")
	}

	date, err := ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	weekday := WeekdayCode(date)
	if !models.IsSchoolWeekday(weekday) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Slots gibt es nur von Montag bis Freitag")
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		reason = DefaultBlockReason
	}

	blocked := &models.BlockedSlot{
		Date:          date,
		Weekday:       weekday,
		Period:        req.Period,
		Reason:        reason,
		BlockedBy:     claims.UserID,
		BlockedByName: claims.FullName,
	}
	note := &models.Notification{
		Type: models.NotificationSlotBlocked,
		Message: fmt.Sprintf("Slot blockiert: %s - %d. Stunde (%s)",
			date.Format(germanDateLayout), req.Period, reason),
	}

	if err := s.blocked.Create(ctx, blocked, note); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, appErrors.ErrAlreadyBlocked
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Slot konnte nicht blockiert werden")
	}

	s.cache.InvalidateAvailability(ctx)
	s.logger.Info("slot blocked",
		zap.String("date", req.Date),
		zap.Int("period", req.Period),
		zap.String("reason", reason),
		zap.String("actor", claims.Username))
	return blocked, nil
}

// Unblock removes the block for one (date, period).
func (s *BlockedSlotService) Unblock(ctx context.Context, claims *models.JWTClaims, req *dto.UnblockSlotRequest) error {
	if !claims.HasCapability(models.CapabilityAdmin) {
		return appErrors.Clone(appErrors.ErrForbidden, "Nur Admins dürfen Slots freigeben")
	}
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Ungültige Blockierungsdaten")
	}

	date, err := ParseDate(req.Date)
	if err != nil {
		return err
	}

	if err := s.blocked.Delete(ctx, date, req.Period); err != nil {
		if errors.Is(err, repository.ErrNoRowsAffected) {
			return appErrors.ErrNotBlocked
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Slot konnte nicht freigegeben werden")
	}

	s.cache.InvalidateAvailability(ctx)
	s.logger.Info("slot unblocked",
		zap.String("date", req.Date),
		zap.Int("period", req.Period),
		zap.String("actor", claims.Username))
	return nil
}

// List returns recorded blocks newest first, capped.
func (s *BlockedSlotService) List(ctx context.Context) ([]models.BlockedSlot, error) {
	blocks, err := s.blocked.List(ctx, s.listLimit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list blocked slots")
	}
	if blocks == nil {
		blocks = []models.BlockedSlot{}
	}
	return blocks, nil
}

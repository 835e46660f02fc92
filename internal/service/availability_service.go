package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sportoase/sportoase-api/internal/dto"
	"github.com/sportoase/sportoase-api/internal/models"
	"github.com/sportoase/sportoase-api/internal/repository"
	appErrors "github.com/sportoase/sportoase-api/pkg/errors"
)

type availabilityTimeSlotRepo interface {
	ListByWeekday(ctx context.Context, weekday string) ([]models.TimeSlot, error)
}

type availabilityBookingRepo interface {
	ListByDate(ctx context.Context, date time.Time) ([]models.Booking, error)
}

type availabilityBlockedRepo interface {
	ListByDate(ctx context.Context, date time.Time) ([]models.BlockedSlot, error)
}

type availabilityCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// AvailabilityService derives per-period occupancy for a date from the
// catalog, bookings and blocks. Pure reads; mutations elsewhere drop the
// cache.
type AvailabilityService struct {
	timeslots availabilityTimeSlotRepo
	bookings  availabilityBookingRepo
	blocked   availabilityBlockedRepo
	cache     availabilityCache
	metrics   *MetricsService
	logger    *zap.Logger

	cacheEnabled bool
	cacheTTL     time.Duration
}

// NewAvailabilityService constructs the service. cache may be nil.
func NewAvailabilityService(
	timeslots availabilityTimeSlotRepo,
	bookings availabilityBookingRepo,
	blocked availabilityBlockedRepo,
	cache availabilityCache,
	metrics *MetricsService,
	logger *zap.Logger,
	cacheEnabled bool,
	cacheTTL time.Duration,
) *AvailabilityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvailabilityService{
		timeslots:    timeslots,
		bookings:     bookings,
		blocked:      blocked,
		cache:        cache,
		metrics:      metrics,
		logger:       logger,
		cacheEnabled: cacheEnabled && cache != nil,
		cacheTTL:     cacheTTL,
	}
}

// Availability computes the slot view for one date.
func (s *AvailabilityService) Availability(ctx context.Context, date time.Time) ([]dto.SlotInfo, error) {
	key := repository.AvailabilityKey(FormatDate(date))
	if s.cacheEnabled {
		var cached []dto.SlotInfo
		start := time.Now()
		err := s.cache.Get(ctx, key, &cached)
		s.metrics.RecordCacheOperation(err == nil, time.Since(start))
		if err == nil {
			return cached, nil
		}
	}

	slots, err := s.compute(ctx, date)
	if err != nil {
		return nil, err
	}

	if s.cacheEnabled {
		if err := s.cache.Set(ctx, key, slots, s.cacheTTL); err != nil {
			s.logger.Warn("availability cache write failed", zap.Error(err))
		}
	}
	return slots, nil
}

// WeekOverview computes slot views for the five school days starting at
// start. Callers pass the Monday they are interested in; any other day
// is used as-is, matching the portal behaviour.
func (s *AvailabilityService) WeekOverview(ctx context.Context, start time.Time) (*dto.WeekOverviewResponse, error) {
	key := repository.WeekOverviewKey(FormatDate(start))
	if s.cacheEnabled {
		var cached dto.WeekOverviewResponse
		begin := time.Now()
		err := s.cache.Get(ctx, key, &cached)
		s.metrics.RecordCacheOperation(err == nil, time.Since(begin))
		if err == nil {
			return &cached, nil
		}
	}

	overview := &dto.WeekOverviewResponse{
		StartDate: FormatDate(start),
		WeekData:  make([]dto.DayOverview, 0, 5),
	}
	for i := 0; i < 5; i++ {
		day := start.AddDate(0, 0, i)
		slots, err := s.compute(ctx, day)
		if err != nil {
			return nil, err
		}
		overview.WeekData = append(overview.WeekData, dto.DayOverview{
			Date:    FormatDate(day),
			Weekday: day.Weekday().String(),
			Slots:   slots,
		})
	}

	if s.cacheEnabled {
		if err := s.cache.Set(ctx, key, overview, s.cacheTTL); err != nil {
			s.logger.Warn("week overview cache write failed", zap.Error(err))
		}
	}
	return overview, nil
}

func (s *AvailabilityService) compute(ctx context.Context, date time.Time) ([]dto.SlotInfo, error) {
	weekday := WeekdayCode(date)

	timeslots, err := s.timeslots.ListByWeekday(ctx, weekday)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timeslots")
	}

	bookings, err := s.bookings.ListByDate(ctx, date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load bookings")
	}

	blocks, err := s.blocked.ListByDate(ctx, date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load blocked slots")
	}

	byPeriod := make(map[int][]models.Booking, len(bookings))
	for _, b := range bookings {
		byPeriod[b.Period] = append(byPeriod[b.Period], b)
	}
	blockedByPeriod := make(map[int]models.BlockedSlot, len(blocks))
	for _, bl := range blocks {
		blockedByPeriod[bl.Period] = bl
	}

	result := make([]dto.SlotInfo, 0, len(timeslots))
	for _, slot := range timeslots {
		periodBookings := byPeriod[slot.Period]
		if periodBookings == nil {
			periodBookings = []models.Booking{}
		}

		current := 0
		for _, b := range periodBookings {
			current += b.StudentCount()
		}

		available := slot.MaxStudents - current
		if available < 0 {
			available = 0
		}

		info := dto.SlotInfo{
			Period:          slot.Period,
			Weekday:         slot.Weekday,
			Label:           slot.Label,
			StartTime:       slot.StartTime,
			EndTime:         slot.EndTime,
			MaxStudents:     slot.MaxStudents,
			CurrentStudents: current,
			AvailableSpots:  available,
			Bookings:        periodBookings,
		}
		if blocked, ok := blockedByPeriod[slot.Period]; ok {
			info.IsBlocked = true
			reason := blocked.Reason
			info.BlockedReason = &reason
		}
		info.IsAvailable = !info.IsBlocked && current < slot.MaxStudents

		result = append(result, info)
	}
	return result, nil
}

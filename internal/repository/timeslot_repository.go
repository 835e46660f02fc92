package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sportoase/sportoase-api/internal/models"
)

// TimeSlotRepository reads and maintains the period catalog.
type TimeSlotRepository struct {
	db *sqlx.DB
}

// NewTimeSlotRepository constructs a timeslot repository.
func NewTimeSlotRepository(db *sqlx.DB) *TimeSlotRepository {
	return &TimeSlotRepository{db: db}
}

const weekdayOrder = `CASE weekday WHEN 'Mon' THEN 1 WHEN 'Tue' THEN 2 WHEN 'Wed' THEN 3 WHEN 'Thu' THEN 4 WHEN 'Fri' THEN 5 ELSE 6 END`

// List returns the full catalog ordered by weekday and period.
func (r *TimeSlotRepository) List(ctx context.Context) ([]models.TimeSlot, error) {
	query := fmt.Sprintf(`SELECT id, weekday, period, label, start_time, end_time, max_students
FROM timeslots ORDER BY %s, period`, weekdayOrder)
	var slots []models.TimeSlot
	if err := r.db.SelectContext(ctx, &slots, query); err != nil {
		return nil, fmt.Errorf("list timeslots: %w", err)
	}
	return slots, nil
}

// ListByWeekday returns the catalog entries for one weekday ordered by period.
func (r *TimeSlotRepository) ListByWeekday(ctx context.Context, weekday string) ([]models.TimeSlot, error) {
	const query = `SELECT id, weekday, period, label, start_time, end_time, max_students
FROM timeslots WHERE weekday = $1 ORDER BY period`
	var slots []models.TimeSlot
	if err := r.db.SelectContext(ctx, &slots, query, weekday); err != nil {
		return nil, fmt.Errorf("list timeslots for %s: %w", weekday, err)
	}
	return slots, nil
}

// GetBySlot fetches the catalog entry for one (weekday, period).
func (r *TimeSlotRepository) GetBySlot(ctx context.Context, weekday string, period int) (*models.TimeSlot, error) {
	const query = `SELECT id, weekday, period, label, start_time, end_time, max_students
FROM timeslots WHERE weekday = $1 AND period = $2`
	var slot models.TimeSlot
	if err := r.db.GetContext(ctx, &slot, query, weekday, period); err != nil {
		return nil, err
	}
	return &slot, nil
}

// GetByID fetches a single catalog entry.
func (r *TimeSlotRepository) GetByID(ctx context.Context, id string) (*models.TimeSlot, error) {
	const query = `SELECT id, weekday, period, label, start_time, end_time, max_students
FROM timeslots WHERE id = $1`
	var slot models.TimeSlot
	if err := r.db.GetContext(ctx, &slot, query, id); err != nil {
		return nil, err
	}
	return &slot, nil
}

// UpdateLabel renames a catalog entry.
func (r *TimeSlotRepository) UpdateLabel(ctx context.Context, id, label string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE timeslots SET label = $1 WHERE id = $2`, label, id)
	if err != nil {
		return fmt.Errorf("update timeslot label: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

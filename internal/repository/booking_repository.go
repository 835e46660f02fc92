package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sportoase/sportoase-api/internal/models"
)

const bookingColumns = `id, date, weekday, period, teacher_id, teacher_name, teacher_class,
students, offer_type, offer_label, calendar_event_id, created_at, updated_at`

// BookingRepository persists bookings. Mutations that must stay in sync
// with the notification feed run inside a single transaction.
type BookingRepository struct {
	db *sqlx.DB
}

// NewBookingRepository constructs a booking repository.
func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// ListByDate returns all bookings for a date ordered by period.
func (r *BookingRepository) ListByDate(ctx context.Context, date time.Time) ([]models.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE date = $1 ORDER BY period, created_at`, bookingColumns)
	var bookings []models.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, date); err != nil {
		return nil, fmt.Errorf("list bookings for date: %w", err)
	}
	return bookings, nil
}

// ListForSlot returns all bookings sharing one (date, period).
func (r *BookingRepository) ListForSlot(ctx context.Context, date time.Time, period int) ([]models.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE date = $1 AND period = $2 ORDER BY created_at`, bookingColumns)
	var bookings []models.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, date, period); err != nil {
		return nil, fmt.Errorf("list bookings for slot: %w", err)
	}
	return bookings, nil
}

// ListByTeacher returns a teacher's bookings, optionally bounded by a
// date range, newest date first.
func (r *BookingRepository) ListByTeacher(ctx context.Context, teacherID string, start, end *time.Time) ([]models.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE teacher_id = $1`, bookingColumns)
	args := []interface{}{teacherID}
	if start != nil {
		query += fmt.Sprintf(" AND date >= $%d", len(args)+1)
		args = append(args, *start)
	}
	if end != nil {
		query += fmt.Sprintf(" AND date <= $%d", len(args)+1)
		args = append(args, *end)
	}
	query += " ORDER BY date DESC, period"

	var bookings []models.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, fmt.Errorf("list bookings for teacher: %w", err)
	}
	return bookings, nil
}

// ListRecent returns the newest bookings across all teachers, capped.
func (r *BookingRepository) ListRecent(ctx context.Context, limit int) ([]models.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings ORDER BY date DESC, period LIMIT $1`, bookingColumns)
	var bookings []models.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, limit); err != nil {
		return nil, fmt.Errorf("list recent bookings: %w", err)
	}
	return bookings, nil
}

// ListRange returns bookings within an optional date range, oldest first.
func (r *BookingRepository) ListRange(ctx context.Context, start, end *time.Time) ([]models.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE 1=1`, bookingColumns)
	args := []interface{}{}
	if start != nil {
		query += fmt.Sprintf(" AND date >= $%d", len(args)+1)
		args = append(args, *start)
	}
	if end != nil {
		query += fmt.Sprintf(" AND date <= $%d", len(args)+1)
		args = append(args, *end)
	}
	query += " ORDER BY date, period"

	var bookings []models.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, fmt.Errorf("list bookings in range: %w", err)
	}
	return bookings, nil
}

// GetByID fetches a booking.
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE id = $1`, bookingColumns)
	var booking models.Booking
	if err := r.db.GetContext(ctx, &booking, query, id); err != nil {
		return nil, err
	}
	return &booking, nil
}

// Create inserts the booking and its new_booking notification as one
// atomic unit.
func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking, note *models.Notification) (err error) {
	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin booking transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const insertQuery = `INSERT INTO bookings (id, date, weekday, period, teacher_id, teacher_name, teacher_class, students, offer_type, offer_label, calendar_event_id, created_at, updated_at)
VALUES (:id, :date, :weekday, :period, :teacher_id, :teacher_name, :teacher_class, :students, :offer_type, :offer_label, :calendar_event_id, :created_at, :updated_at)`
	if _, err = tx.NamedExecContext(ctx, insertQuery, booking); err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}

	note.BookingID = &booking.ID
	if err = insertNotification(ctx, tx, note); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit booking: %w", err)
	}
	return nil
}

// Delete removes the booking and records the booking_deleted
// notification in the same transaction. The notification carries no
// booking reference, the row is gone.
func (r *BookingRepository) Delete(ctx context.Context, id string, note *models.Notification) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = insertNotification(ctx, tx, note); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	if affected, raErr := res.RowsAffected(); raErr == nil && affected == 0 {
		err = ErrNoRowsAffected
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit delete: %w", err)
	}
	return nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sportoase/sportoase-api/internal/models"
)

const blockedSlotColumns = `id, date, weekday, period, reason, blocked_by, blocked_by_name, created_at`

// BlockedSlotRepository persists admin slot blocks. The (date, period)
// unique constraint makes double blocking impossible even under
// concurrent requests.
type BlockedSlotRepository struct {
	db *sqlx.DB
}

// NewBlockedSlotRepository constructs a blocked slot repository.
func NewBlockedSlotRepository(db *sqlx.DB) *BlockedSlotRepository {
	return &BlockedSlotRepository{db: db}
}

// GetForSlot returns the block for (date, period), or nil when the slot
// is not blocked.
func (r *BlockedSlotRepository) GetForSlot(ctx context.Context, date time.Time, period int) (*models.BlockedSlot, error) {
	query := fmt.Sprintf(`SELECT %s FROM blocked_slots WHERE date = $1 AND period = $2`, blockedSlotColumns)
	var blocked models.BlockedSlot
	if err := r.db.GetContext(ctx, &blocked, query, date, period); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get blocked slot: %w", err)
	}
	return &blocked, nil
}

// ListByDate returns all blocks for a date.
func (r *BlockedSlotRepository) ListByDate(ctx context.Context, date time.Time) ([]models.BlockedSlot, error) {
	query := fmt.Sprintf(`SELECT %s FROM blocked_slots WHERE date = $1 ORDER BY period`, blockedSlotColumns)
	var blocks []models.BlockedSlot
	if err := r.db.SelectContext(ctx, &blocks, query, date); err != nil {
		return nil, fmt.Errorf("list blocked slots for date: %w", err)
	}
	return blocks, nil
}

// List returns blocks newest date first, capped.
func (r *BlockedSlotRepository) List(ctx context.Context, limit int) ([]models.BlockedSlot, error) {
	query := fmt.Sprintf(`SELECT %s FROM blocked_slots ORDER BY date DESC, period LIMIT $1`, blockedSlotColumns)
	var blocks []models.BlockedSlot
	if err := r.db.SelectContext(ctx, &blocks, query, limit); err != nil {
		return nil, fmt.Errorf("list blocked slots: %w", err)
	}
	return blocks, nil
}

// Create inserts the block and its slot_blocked notification as one
// atomic unit. A unique violation on (date, period) is returned
// unwrapped so the service can map it to the conflict error.
func (r *BlockedSlotRepository) Create(ctx context.Context, blocked *models.BlockedSlot, note *models.Notification) (err error) {
	if blocked.ID == "" {
		blocked.ID = uuid.NewString()
	}
	if blocked.CreatedAt.IsZero() {
		blocked.CreatedAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin block transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const insertQuery = `INSERT INTO blocked_slots (id, date, weekday, period, reason, blocked_by, blocked_by_name, created_at)
VALUES (:id, :date, :weekday, :period, :reason, :blocked_by, :blocked_by_name, :created_at)`
	if _, err = tx.NamedExecContext(ctx, insertQuery, blocked); err != nil {
		if IsUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("insert blocked slot: %w", err)
	}

	if err = insertNotification(ctx, tx, note); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit block: %w", err)
	}
	return nil
}

// Delete removes the block for (date, period).
func (r *BlockedSlotRepository) Delete(ctx context.Context, date time.Time, period int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM blocked_slots WHERE date = $1 AND period = $2`, date, period)
	if err != nil {
		return fmt.Errorf("delete blocked slot: %w", err)
	}
	if affected, raErr := res.RowsAffected(); raErr == nil && affected == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sportoase/sportoase-api/internal/models"
)

const notificationColumns = `id, booking_id, notification_type, message, is_read, read_at, created_at`

// NotificationRepository persists the admin event feed.
type NotificationRepository struct {
	db *sqlx.DB
}

// NewNotificationRepository constructs a notification repository.
func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// insertNotification appends a notification using the given executor so
// booking and block mutations can include it in their transaction.
func insertNotification(ctx context.Context, ext sqlx.ExtContext, note *models.Notification) error {
	if note.ID == "" {
		note.ID = uuid.NewString()
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO notifications (id, booking_id, notification_type, message, is_read, read_at, created_at)
VALUES (:id, :booking_id, :notification_type, :message, :is_read, :read_at, :created_at)`
	if _, err := sqlx.NamedExecContext(ctx, ext, query, note); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// List returns notifications newest first, optionally unread only.
func (r *NotificationRepository) List(ctx context.Context, unreadOnly bool, limit int) ([]models.Notification, error) {
	query := fmt.Sprintf(`SELECT %s FROM notifications`, notificationColumns)
	if unreadOnly {
		query += " WHERE is_read = FALSE"
	}
	query += " ORDER BY created_at DESC LIMIT $1"

	var notes []models.Notification
	if err := r.db.SelectContext(ctx, &notes, query, limit); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notes, nil
}

// GetByID fetches a notification.
func (r *NotificationRepository) GetByID(ctx context.Context, id string) (*models.Notification, error) {
	query := fmt.Sprintf(`SELECT %s FROM notifications WHERE id = $1`, notificationColumns)
	var note models.Notification
	if err := r.db.GetContext(ctx, &note, query, id); err != nil {
		return nil, err
	}
	return &note, nil
}

// MarkRead flags a notification as read. Rows already read keep their
// original read_at timestamp.
func (r *NotificationRepository) MarkRead(ctx context.Context, id string, readAt time.Time) error {
	const query = `UPDATE notifications SET is_read = TRUE, read_at = $1 WHERE id = $2 AND is_read = FALSE`
	if _, err := r.db.ExecContext(ctx, query, readAt, id); err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

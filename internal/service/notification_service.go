package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/sportoase/sportoase-api/internal/models"
	appErrors "github.com/sportoase/sportoase-api/pkg/errors"
)

type notificationRepo interface {
	List(ctx context.Context, unreadOnly bool, limit int) ([]models.Notification, error)
	GetByID(ctx context.Context, id string) (*models.Notification, error)
	MarkRead(ctx context.Context, id string, readAt time.Time) error
}

// NotificationService exposes the admin event feed.
type NotificationService struct {
	notes  notificationRepo
	logger *zap.Logger

	listLimit int
}

// NewNotificationService constructs the notification service.
func NewNotificationService(notes notificationRepo, logger *zap.Logger, listLimit int) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if listLimit <= 0 {
		listLimit = 50
	}
	return &NotificationService{notes: notes, logger: logger, listLimit: listLimit}
}

// List returns notifications newest first, capped. unreadOnly narrows
// the feed to pending entries.
func (s *NotificationService) List(ctx context.Context, unreadOnly bool) ([]models.Notification, error) {
	notes, err := s.notes.List(ctx, unreadOnly, s.listLimit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list notifications")
	}
	if notes == nil {
		notes = []models.Notification{}
	}
	return notes, nil
}

// MarkRead flags a notification as read. Marking an already-read entry
// succeeds without touching its read_at timestamp.
func (s *NotificationService) MarkRead(ctx context.Context, id string) (*models.Notification, error) {
	if _, err := s.notes.GetByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Benachrichtigung nicht gefunden")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load notification")
	}

	if err := s.notes.MarkRead(ctx, id, time.Now().UTC()); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to mark notification read")
	}

	note, err := s.notes.GetByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reload notification")
	}
	return note, nil
}

package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportoase/sportoase-api/internal/models"
)

func TestNotificationRepositoryListUnreadOnly(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewNotificationRepository(db)

	rows := sqlmock.NewRows([]string{"id", "booking_id", "notification_type", "message", "is_read", "read_at", "created_at"}).
		AddRow("n1", nil, "new_booking", "Neue Buchung", false, nil, time.Now())

	mock.ExpectQuery("FROM notifications WHERE is_read = FALSE ORDER BY created_at DESC").
		WithArgs(50).
		WillReturnRows(rows)

	notes, err := repo.List(context.Background(), true, 50)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, models.NotificationNewBooking, notes[0].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepositoryMarkReadSkipsAlreadyRead(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewNotificationRepository(db)

	readAt := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE notifications SET is_read = TRUE, read_at = $1 WHERE id = $2 AND is_read = FALSE")).
		WithArgs(readAt, "n1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.MarkRead(context.Background(), "n1", readAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

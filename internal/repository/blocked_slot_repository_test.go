package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportoase/sportoase-api/internal/models"
)

func TestBlockedSlotRepositoryGetForSlotNoRows(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewBlockedSlotRepository(db)

	date := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM blocked_slots WHERE date = \\$1 AND period = \\$2").
		WithArgs(date, 3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "date", "weekday", "period", "reason", "blocked_by", "blocked_by_name", "created_at"}))

	blocked, err := repo.GetForSlot(context.Background(), date, 3)
	require.NoError(t, err)
	assert.Nil(t, blocked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlockedSlotRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewBlockedSlotRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO blocked_slots").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO notifications").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	blocked := &models.BlockedSlot{
		Date:    time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		Weekday: "Mon", Period: 2, Reason: "Beratung",
		BlockedBy: "a1", BlockedByName: "Der Admin",
	}
	note := &models.Notification{Type: models.NotificationSlotBlocked, Message: "Slot blockiert"}

	require.NoError(t, repo.Create(context.Background(), blocked, note))
	assert.NotEmpty(t, blocked.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlockedSlotRepositoryCreateUniqueViolation(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewBlockedSlotRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO blocked_slots").
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	blocked := &models.BlockedSlot{
		Date:    time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		Weekday: "Mon", Period: 2, Reason: "Beratung",
	}
	err := repo.Create(context.Background(), blocked, &models.Notification{Type: models.NotificationSlotBlocked})
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlockedSlotRepositoryDeleteMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewBlockedSlotRepository(db)

	date := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec("DELETE FROM blocked_slots").
		WithArgs(date, 2).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), date, 2)
	require.ErrorIs(t, err, ErrNoRowsAffected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

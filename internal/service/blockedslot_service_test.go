package service

import (
	"context"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sportoase/sportoase-api/internal/dto"
	"github.com/sportoase/sportoase-api/internal/models"
	"github.com/sportoase/sportoase-api/internal/repository"
	appErrors "github.com/sportoase/sportoase-api/pkg/errors"
)

type mockBlockedRepo struct {
	blocks  map[string]models.BlockedSlot
	notes   []models.Notification
	deleted int
}

func blockKey(date time.Time, period int) string {
	return date.Format("2006-01-02") + "#" + string(rune('0'+period))
}

func (m *mockBlockedRepo) GetForSlot(ctx context.Context, date time.Time, period int) (*models.BlockedSlot, error) {
	if b, ok := m.blocks[blockKey(date, period)]; ok {
		return &b, nil
	}
	return nil, nil
}

func (m *mockBlockedRepo) List(ctx context.Context, limit int) ([]models.BlockedSlot, error) {
	out := []models.BlockedSlot{}
	for _, b := range m.blocks {
		if len(out) == limit {
			break
		}
		out = append(out, b)
	}
	return out, nil
}

func (m *mockBlockedRepo) Create(ctx context.Context, blocked *models.BlockedSlot, note *models.Notification) error {
	if m.blocks == nil {
		m.blocks = make(map[string]models.BlockedSlot)
	}
	key := blockKey(blocked.Date, blocked.Period)
	if _, exists := m.blocks[key]; exists {
		return &pq.Error{Code: "23505"}
	}
	m.blocks[key] = *blocked
	m.notes = append(m.notes, *note)
	return nil
}

func (m *mockBlockedRepo) Delete(ctx context.Context, date time.Time, period int) error {
	key := blockKey(date, period)
	if _, exists := m.blocks[key]; !exists {
		return repository.ErrNoRowsAffected
	}
	delete(m.blocks, key)
	m.deleted++
	return nil
}

func newBlockedFixture() (*BlockedSlotService, *mockBlockedRepo, *mockInvalidator) {
	repo := &mockBlockedRepo{blocks: make(map[string]models.BlockedSlot)}
	inv := &mockInvalidator{}
	return NewBlockedSlotService(repo, inv, zap.NewNop(), 100), repo, inv
}

func TestBlockSlot(t *testing.T) {
	svc, repo, inv := newBlockedFixture()

	blocked, err := svc.Block(context.Background(), adminClaims(), &dto.BlockSlotRequest{
		Date: "2026-01-05", Period: 2, Reason: "Wartung",
	})
	require.NoError(t, err)

	assert.Equal(t, "Wartung", blocked.Reason)
	assert.Equal(t, models.WeekdayMon, blocked.Weekday)
	assert.Equal(t, "a1", blocked.BlockedBy)
	assert.Equal(t, "Der Admin", blocked.BlockedByName)

	require.Len(t, repo.notes, 1)
	assert.Equal(t, models.NotificationSlotBlocked, repo.notes[0].Type)
	assert.Contains(t, repo.notes[0].Message, "Slot blockiert")
	assert.Equal(t, 1, inv.calls)
}

func TestBlockSlotDefaultsReason(t *testing.T) {
	svc, _, _ := newBlockedFixture()

	blocked, err := svc.Block(context.Background(), adminClaims(), &dto.BlockSlotRequest{
		Date: "2026-01-05", Period: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, "Beratung", blocked.Reason)
}

func TestBlockSlotRequiresAdmin(t *testing.T) {
	svc, repo, _ := newBlockedFixture()

	_, err := svc.Block(context.Background(), teacherClaims(), &dto.BlockSlotRequest{
		Date: "2026-01-05", Period: 2,
	})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", appErrors.FromError(err).Code)
	assert.Empty(t, repo.blocks)
}

func TestBlockSlotAlreadyBlocked(t *testing.T) {
	svc, _, _ := newBlockedFixture()

	req := &dto.BlockSlotRequest{Date: "2026-01-05", Period: 2}
	_, err := svc.Block(context.Background(), adminClaims(), req)
	require.NoError(t, err)

	_, err = svc.Block(context.Background(), adminClaims(), req)
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, "ALREADY_BLOCKED", appErr.Code)
	assert.Equal(t, 400, appErr.Status)
}

func TestUnblockSlot(t *testing.T) {
	svc, repo, inv := newBlockedFixture()

	_, err := svc.Block(context.Background(), adminClaims(), &dto.BlockSlotRequest{Date: "2026-01-05", Period: 2})
	require.NoError(t, err)

	err = svc.Unblock(context.Background(), adminClaims(), &dto.UnblockSlotRequest{Date: "2026-01-05", Period: 2})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.deleted)
	assert.Equal(t, 2, inv.calls)
}

func TestUnblockSlotNotBlocked(t *testing.T) {
	svc, _, _ := newBlockedFixture()

	err := svc.Unblock(context.Background(), adminClaims(), &dto.UnblockSlotRequest{Date: "2026-01-05", Period: 2})
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, "NOT_BLOCKED", appErr.Code)
	assert.Equal(t, 404, appErr.Status)
}

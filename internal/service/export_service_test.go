package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sportoase/sportoase-api/internal/dto"
	"github.com/sportoase/sportoase-api/internal/models"
	appErrors "github.com/sportoase/sportoase-api/pkg/errors"
)

type stubExportLister struct {
	bookings []models.Booking
}

func (s *stubExportLister) ListAll(ctx context.Context, query *dto.BookingListQuery) ([]models.Booking, error) {
	return s.bookings, nil
}

func exportFixture() *ExportService {
	return NewExportService(&stubExportLister{bookings: []models.Booking{{
		ID:          "b1",
		Date:        monday,
		Weekday:     models.WeekdayMon,
		Period:      1,
		TeacherName: "Maria Muster",
		OfferType:   models.OfferTypeSport,
		OfferLabel:  "Fußball",
		Students:    models.StudentList{{Name: "Lena", Klasse: "5a"}, {Name: "Ömer", Klasse: "5a"}},
	}}}, zap.NewNop())
}

func TestExportCSV(t *testing.T) {
	file, err := exportFixture().Export(context.Background(), adminClaims(), nil, "csv")
	require.NoError(t, err)

	assert.Contains(t, file.FileName, ".csv")
	assert.Equal(t, "text/csv; charset=utf-8", file.ContentType)

	body := string(file.Data)
	assert.Contains(t, body, "Datum;Wochentag;Stunde")
	assert.Contains(t, body, "05.01.2026")
	assert.Contains(t, body, "Maria Muster")
	assert.Contains(t, body, "Lena (5a), Ömer (5a)")
	assert.True(t, strings.HasSuffix(body, "\n"))
}

func TestExportPDF(t *testing.T) {
	file, err := exportFixture().Export(context.Background(), adminClaims(), nil, "pdf")
	require.NoError(t, err)

	assert.Contains(t, file.FileName, ".pdf")
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, strings.HasPrefix(string(file.Data), "%PDF"))
}

func TestExportRequiresAdmin(t *testing.T) {
	_, err := exportFixture().Export(context.Background(), teacherClaims(), nil, "csv")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", appErrors.FromError(err).Code)
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	_, err := exportFixture().Export(context.Background(), adminClaims(), nil, "xlsx")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", appErrors.FromError(err).Code)
}

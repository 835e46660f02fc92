package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"

	"github.com/sportoase/sportoase-api/internal/dto"
	"github.com/sportoase/sportoase-api/internal/models"
	appErrors "github.com/sportoase/sportoase-api/pkg/errors"
)

// Export formats.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

type exportBookingLister interface {
	ListAll(ctx context.Context, query *dto.BookingListQuery) ([]models.Booking, error)
}

// ExportFile is a rendered booking export.
type ExportFile struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ExportService renders booking lists as CSV or PDF for the admin
// download endpoint.
type ExportService struct {
	bookings exportBookingLister
	logger   *zap.Logger
}

// NewExportService constructs the export service.
func NewExportService(bookings exportBookingLister, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{bookings: bookings, logger: logger}
}

// Export renders all bookings in the given range.
func (s *ExportService) Export(ctx context.Context, claims *models.JWTClaims, query *dto.BookingListQuery, format string) (*ExportFile, error) {
	if !claims.HasCapability(models.CapabilityAdmin) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "Nur Admins dürfen Buchungen exportieren")
	}

	bookings, err := s.bookings.ListAll(ctx, query)
	if err != nil {
		return nil, err
	}

	stamp := time.Now().Format("2006-01-02")
	switch format {
	case "", ExportFormatCSV:
		data, err := renderCSV(bookings)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render CSV export")
		}
		return &ExportFile{
			FileName:    fmt.Sprintf("sportoase-buchungen-%s.csv", stamp),
			ContentType: "text/csv; charset=utf-8",
			Data:        data,
		}, nil
	case ExportFormatPDF:
		data, err := renderPDF(bookings)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render PDF export")
		}
		return &ExportFile{
			FileName:    fmt.Sprintf("sportoase-buchungen-%s.pdf", stamp),
			ContentType: "application/pdf",
			Data:        data,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("Unbekanntes Exportformat: %s", format))
	}
}

func renderCSV(bookings []models.Booking) ([]byte, error) {
	var buf bytes.Buffer
	// BOM so Excel opens umlauts correctly.
	buf.WriteString("\uFEFF")

	w := csv.NewWriter(&buf)
	w.Comma = ';'

	header := []string{"Datum", "Wochentag", "Stunde", "Lehrkraft", "Angebot", "Typ", "Schüler", "Anzahl"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, b := range bookings {
		record := []string{
			b.Date.Format(germanDateLayout),
			b.Weekday,
			strconv.Itoa(b.Period),
			b.TeacherName,
			b.OfferLabel,
			b.OfferType,
			joinStudents(b.Students),
			strconv.Itoa(b.StudentCount()),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderPDF(bookings []models.Booking) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	translate := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, translate("SportOase - Buchungsübersicht"))
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(0, 6, translate(fmt.Sprintf("Erstellt am %s, %d Buchungen", time.Now().Format(germanDateLayout), len(bookings))))
	pdf.Ln(10)

	widths := []float64{22, 20, 14, 45, 50, 95, 16}
	headers := []string{"Datum", "Wochentag", "Stunde", "Lehrkraft", "Angebot", "Schüler", "Anzahl"}

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, translate(h), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, b := range bookings {
		cells := []string{
			b.Date.Format(germanDateLayout),
			b.Weekday,
			strconv.Itoa(b.Period),
			b.TeacherName,
			b.OfferLabel,
			joinStudents(b.Students),
			strconv.Itoa(b.StudentCount()),
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 6, translate(c), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func joinStudents(students models.StudentList) string {
	parts := make([]string, 0, len(students))
	for _, s := range students {
		parts = append(parts, fmt.Sprintf("%s (%s)", s.Name, s.Klasse))
	}
	return strings.Join(parts, ", ")
}

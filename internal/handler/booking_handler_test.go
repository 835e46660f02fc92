package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportoase/sportoase-api/internal/dto"
	"github.com/sportoase/sportoase-api/internal/middleware"
	"github.com/sportoase/sportoase-api/internal/models"
	"github.com/sportoase/sportoase-api/internal/service"
	appErrors "github.com/sportoase/sportoase-api/pkg/errors"
)

type bookingServiceMock struct {
	createResp *models.Booking
	createErr  error
	deleteErr  error
	listResp   []models.Booking
	lastQuery  *dto.BookingListQuery
	lastID     string
}

func (m *bookingServiceMock) Create(ctx context.Context, claims *models.JWTClaims, req *dto.CreateBookingRequest) (*models.Booking, error) {
	return m.createResp, m.createErr
}

func (m *bookingServiceMock) Delete(ctx context.Context, claims *models.JWTClaims, id string) error {
	m.lastID = id
	return m.deleteErr
}

func (m *bookingServiceMock) ListForTeacher(ctx context.Context, claims *models.JWTClaims, query *dto.BookingListQuery) ([]models.Booking, error) {
	m.lastQuery = query
	return m.listResp, nil
}

func (m *bookingServiceMock) ListAll(ctx context.Context, query *dto.BookingListQuery) ([]models.Booking, error) {
	m.lastQuery = query
	return m.listResp, nil
}

type exportServiceMock struct {
	file *service.ExportFile
	err  error
}

func (m *exportServiceMock) Export(ctx context.Context, claims *models.JWTClaims, query *dto.BookingListQuery, format string) (*service.ExportFile, error) {
	return m.file, m.err
}

func testContext(t *testing.T, method, target string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	c.Request = req
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "u1", Role: models.RoleTeacher, FullName: "Maria Muster"})
	return c, w
}

func TestBookingHandlerCreate(t *testing.T) {
	mockSvc := &bookingServiceMock{createResp: &models.Booking{ID: "b1", OfferLabel: "Fußball"}}
	h := NewBookingHandler(mockSvc, &exportServiceMock{})

	payload, _ := json.Marshal(dto.CreateBookingRequest{
		Date: "2026-01-05", Period: 1,
		Students:  []models.Student{{Name: "Lena", Klasse: "5a"}},
		OfferType: "sport",
	})
	c, w := testContext(t, http.MethodPost, "/book", payload)

	h.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"b1"`)
}

func TestBookingHandlerCreateInvalidBody(t *testing.T) {
	h := NewBookingHandler(&bookingServiceMock{}, &exportServiceMock{})

	c, w := testContext(t, http.MethodPost, "/book", []byte(`{"date":`))

	h.Create(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}

func TestBookingHandlerCreateConflictStatus(t *testing.T) {
	mockSvc := &bookingServiceMock{createErr: appErrors.ErrDoubleBooking}
	h := NewBookingHandler(mockSvc, &exportServiceMock{})

	payload, _ := json.Marshal(dto.CreateBookingRequest{Date: "2026-01-05", Period: 1, OfferType: "sport"})
	c, w := testContext(t, http.MethodPost, "/book", payload)

	h.Create(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "DOUBLE_BOOKING")
}

func TestBookingHandlerMyBookingsPassesRange(t *testing.T) {
	mockSvc := &bookingServiceMock{listResp: []models.Booking{}}
	h := NewBookingHandler(mockSvc, &exportServiceMock{})

	c, w := testContext(t, http.MethodGet, "/my-bookings?start_date=2026-01-05&end_date=2026-01-09", nil)

	h.MyBookings(c)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, mockSvc.lastQuery)
	assert.Equal(t, "2026-01-05", mockSvc.lastQuery.StartDate)
	assert.Equal(t, "2026-01-09", mockSvc.lastQuery.EndDate)
}

func TestBookingHandlerListPassesDateFilter(t *testing.T) {
	mockSvc := &bookingServiceMock{listResp: []models.Booking{}}
	h := NewBookingHandler(mockSvc, &exportServiceMock{})

	c, w := testContext(t, http.MethodGet, "/bookings?date=2026-01-05", nil)

	h.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, mockSvc.lastQuery)
	assert.Equal(t, "2026-01-05", mockSvc.lastQuery.Date)
}

func TestBookingHandlerDeleteNotFound(t *testing.T) {
	mockSvc := &bookingServiceMock{deleteErr: appErrors.ErrNotFound}
	h := NewBookingHandler(mockSvc, &exportServiceMock{})

	c, w := testContext(t, http.MethodDelete, "/bookings/missing", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	h.Delete(c)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "missing", mockSvc.lastID)
}

func TestBookingHandlerExportSetsDownloadHeaders(t *testing.T) {
	mockExport := &exportServiceMock{file: &service.ExportFile{
		FileName:    "sportoase-buchungen-2026-01-05.csv",
		ContentType: "text/csv; charset=utf-8",
		Data:        []byte("Datum;Wochentag\n"),
	}}
	h := NewBookingHandler(&bookingServiceMock{}, mockExport)

	c, w := testContext(t, http.MethodGet, "/bookings/export?format=csv", nil)

	h.Export(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "sportoase-buchungen")
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
}

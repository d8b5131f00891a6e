package update_booking_status

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicbook/booking-service/internal/service/bookings"
	"github.com/clinicbook/booking-service/internal/service/bookings/models"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeService struct {
	response *models.BookingResponse
	err      error

	gotBookingID int64
	gotStatus    string
}

func (s *fakeService) UpdateStatus(_ context.Context, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.gotBookingID = bookingID
	s.gotStatus = req.Status
	if s.err != nil {
		return nil, s.err
	}
	return s.response, nil
}

func doRequest(t *testing.T, svc *fakeService, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	router := mux.NewRouter()
	router.HandleFunc("/api/v1/bookings/{bookingId}/status", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodPut)

	req := httptest.NewRequest(http.MethodPut, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	svc := &fakeService{response: &models.BookingResponse{ID: 42, Status: "confirmed"}}

	rec := doRequest(t, svc, "/api/v1/bookings/42/status", `{"status":"confirmed"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), svc.gotBookingID)
	assert.Equal(t, "confirmed", svc.gotStatus)

	var resp models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "confirmed", resp.Status)
}

func TestHandle_InvalidBookingID(t *testing.T) {
	rec := doRequest(t, &fakeService{}, "/api/v1/bookings/abc/status", `{"status":"confirmed"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_InvalidBody(t *testing.T) {
	rec := doRequest(t, &fakeService{}, "/api/v1/bookings/42/status", `{"status":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", bookings.ErrBookingNotFound, http.StatusNotFound},
		{"invalid status", bookings.ErrInvalidStatus, http.StatusBadRequest},
		{"invalid transition", bookings.ErrInvalidTransition, http.StatusConflict},
		{"internal", bookings.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, &fakeService{err: tt.err}, "/api/v1/bookings/42/status", `{"status":"confirmed"}`)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

package get_patient_payments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicbook/booking-service/internal/service/payments/models"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeService struct {
	response *models.PaymentListResponse
	err      error

	gotPatientID int64
}

func (s *fakeService) GetByPatient(_ context.Context, patientID int64) (*models.PaymentListResponse, error) {
	s.gotPatientID = patientID
	if s.err != nil {
		return nil, s.err
	}
	return s.response, nil
}

func doRequest(t *testing.T, svc *fakeService, path string) *httptest.ResponseRecorder {
	t.Helper()

	router := mux.NewRouter()
	router.HandleFunc("/api/v1/patients/{patientId}/payments", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	svc := &fakeService{response: &models.PaymentListResponse{
		Payments: []*models.PaymentResponse{{ID: 1, BookingID: 42, Status: "completed"}},
		Total:    1,
	}}

	rec := doRequest(t, svc, "/api/v1/patients/5/payments")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(5), svc.gotPatientID)

	var resp models.PaymentListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, int64(42), resp.Payments[0].BookingID)
}

func TestHandle_InvalidPatientID(t *testing.T) {
	rec := doRequest(t, &fakeService{}, "/api/v1/patients/abc/payments")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

package get_patient_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/clinicbook/booking-service/internal/api/handlers"
	"github.com/clinicbook/booking-service/internal/service/bookings"
)

const (
	msgInvalidPatientID = "некорректный ID пациента"
	msgInvalidStatus    = "некорректный статус бронирования"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/patients/{patientId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	patientID, err := strconv.ParseInt(vars["patientId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /patients/{patientId}/bookings - Invalid patient ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPatientID)
		return
	}

	// Необязательный фильтр по статусу
	status := r.URL.Query().Get("status")

	result, err := h.service.GetByPatient(r.Context(), patientID, status)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidStatus):
			h.logger.Warn("GET /patients/{patientId}/bookings - Invalid status filter: %q", status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /patients/{patientId}/bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPatientID)

		default:
			h.logger.Error("GET /patients/{patientId}/bookings - Failed to get bookings: patient_id=%d, error=%v",
				patientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /patients/{patientId}/bookings - Retrieved %d bookings: patient_id=%d", result.Total, patientID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

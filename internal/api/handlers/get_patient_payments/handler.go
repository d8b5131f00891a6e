package get_patient_payments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/clinicbook/booking-service/internal/api/handlers"
	"github.com/clinicbook/booking-service/internal/service/payments"
)

const msgInvalidPatientID = "некорректный ID пациента"

type Handler struct {
	service PaymentService
	logger  Logger
}

func NewHandler(service PaymentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/patients/{patientId}/payments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	patientID, err := strconv.ParseInt(vars["patientId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /patients/{patientId}/payments - Invalid patient ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPatientID)
		return
	}

	result, err := h.service.GetByPatient(r.Context(), patientID)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrInvalidInput):
			h.logger.Warn("GET /patients/{patientId}/payments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPatientID)

		default:
			h.logger.Error("GET /patients/{patientId}/payments - Failed to get payments: patient_id=%d, error=%v",
				patientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /patients/{patientId}/payments - Retrieved %d payments: patient_id=%d", result.Total, patientID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

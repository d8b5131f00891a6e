package update_payment_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/clinicbook/booking-service/internal/api/handlers"
	"github.com/clinicbook/booking-service/internal/service/payments"
	"github.com/clinicbook/booking-service/internal/service/payments/models"
)

const (
	msgInvalidPaymentID   = "некорректный ID платежа"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStatus      = "некорректный статус платежа"
	msgNotFound           = "платёж не найден"
)

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

// Handle PUT /api/v1/payments/{paymentId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	paymentID, err := strconv.ParseInt(vars["paymentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /payments/{id}/status - Invalid payment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPaymentID)
		return
	}

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /payments/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateStatus(r.Context(), paymentID, &req)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrPaymentNotFound):
			h.logger.Warn("PUT /payments/{id}/status - Payment not found: payment_id=%d", paymentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, payments.ErrInvalidStatus):
			h.logger.Warn("PUT /payments/{id}/status - Invalid status: payment_id=%d, status=%q", paymentID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, payments.ErrInvalidInput):
			h.logger.Warn("PUT /payments/{id}/status - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPaymentID)

		default:
			h.logger.Error("PUT /payments/{id}/status - Failed to update status: payment_id=%d, error=%v", paymentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /payments/{id}/status - Status updated: payment_id=%d, status=%s", paymentID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}

package create_payment

import (
	"errors"
	"net/http"

	"github.com/clinicbook/booking-service/internal/api/handlers"
	"github.com/clinicbook/booking-service/internal/service/payments"
	"github.com/clinicbook/booking-service/internal/service/payments/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgBookingNotFound    = "бронирование не найдено"
	msgPaymentExists      = "платёж для бронирования уже существует"
	msgInvalidMethod      = "некорректный способ оплаты"
	msgInvalidInput       = "некорректные входные данные"
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

// Handle POST /api/v1/payments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrBookingNotFound):
			h.logger.Warn("POST /payments - Booking not found: booking_id=%d", req.BookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, payments.ErrPaymentExists):
			h.logger.Warn("POST /payments - Payment already exists: booking_id=%d", req.BookingID)
			handlers.RespondConflict(w, msgPaymentExists)

		case errors.Is(err, payments.ErrInvalidMethod):
			h.logger.Warn("POST /payments - Invalid method: %q", req.Method)
			handlers.RespondBadRequest(w, msgInvalidMethod)

		case errors.Is(err, payments.ErrInvalidInput):
			h.logger.Warn("POST /payments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /payments - Failed to create payment: booking_id=%d, error=%v", req.BookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments - Payment created: payment_id=%d, booking_id=%d", result.ID, result.BookingID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

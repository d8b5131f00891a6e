package get_booking_payment

import (
	"context"

	"github.com/clinicbook/booking-service/internal/service/payments/models"
)

type PaymentService interface {
	GetByBooking(ctx context.Context, bookingID int64) (*models.PaymentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

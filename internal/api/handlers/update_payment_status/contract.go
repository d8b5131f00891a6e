package update_payment_status

import (
	"context"

	"github.com/clinicbook/booking-service/internal/service/payments/models"
)

type PaymentService interface {
	UpdateStatus(ctx context.Context, paymentID int64, req *models.UpdateStatusRequest) (*models.PaymentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

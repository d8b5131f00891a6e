package get_patient_payments

import (
	"context"

	"github.com/clinicbook/booking-service/internal/service/payments/models"
)

type PaymentService interface {
	GetByPatient(ctx context.Context, patientID int64) (*models.PaymentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

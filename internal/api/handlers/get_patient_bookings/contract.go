package get_patient_bookings

import (
	"context"

	"github.com/clinicbook/booking-service/internal/service/bookings/models"
)

type BookingService interface {
	GetByPatient(ctx context.Context, patientID int64, status string) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package feedback

import (
	"context"

	"github.com/clinicbook/booking-service/internal/domain"
)

// FeedbackRepository интерфейс репозитория отзывов
type FeedbackRepository interface {
	Create(ctx context.Context, f *domain.Feedback) (*domain.Feedback, error)
	GetByDoctorID(ctx context.Context, doctorID int64) ([]*domain.Feedback, error)
	Delete(ctx context.Context, id int64) error
}

// BookingRepository интерфейс репозитория бронирований
// Нужен для проверки, что пациент действительно был у врача
type BookingRepository interface {
	GetByPatientID(ctx context.Context, patientID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

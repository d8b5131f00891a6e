package get_doctor_feedback

import (
	"context"

	"github.com/clinicbook/booking-service/internal/domain"
)

type FeedbackService interface {
	GetByDoctor(ctx context.Context, doctorID int64) ([]*domain.Feedback, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package create_feedback

import (
	"context"

	"github.com/clinicbook/booking-service/internal/domain"
)

type FeedbackService interface {
	Create(ctx context.Context, f *domain.Feedback) (*domain.Feedback, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

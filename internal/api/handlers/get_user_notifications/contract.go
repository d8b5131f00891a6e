package get_user_notifications

import (
	"context"

	"github.com/clinicbook/booking-service/internal/domain"
)

type NotificationService interface {
	GetByUser(ctx context.Context, userID int64) ([]*domain.Notification, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

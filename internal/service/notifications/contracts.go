package notifications

import (
	"context"

	"github.com/clinicbook/booking-service/internal/domain"
)

// NotificationRepository интерфейс репозитория уведомлений
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	GetByID(ctx context.Context, id int64) (*domain.Notification, error)
	GetAllByUserID(ctx context.Context, userID int64) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

// HubClient интерфейс real-time шлюза уведомлений
type HubClient interface {
	Push(ctx context.Context, userID int64, message string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

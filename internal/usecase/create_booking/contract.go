package create_booking

import (
	"context"
	"time"

	"github.com/clinicbook/booking-service/internal/domain"
	"github.com/clinicbook/booking-service/internal/integrations/profiles"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Schedule, error)
	Reserve(ctx context.Context, id int64) error
}

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	GetServiceByID(ctx context.Context, id int64) (*domain.Service, error)
}

// ProfilesClient интерфейс клиента ProfileService
type ProfilesClient interface {
	GetDoctor(ctx context.Context, doctorID int64) (*profiles.Doctor, error)
	GetPatient(ctx context.Context, patientID int64) (*profiles.Patient, error)
}

// Notifier интерфейс отправки уведомлений
type Notifier interface {
	Notify(ctx context.Context, userID int64, message string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

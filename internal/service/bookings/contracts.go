package bookings

import (
	"context"
	"time"

	"github.com/clinicbook/booking-service/internal/domain"
	"github.com/clinicbook/booking-service/internal/integrations/profiles"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByPatientID(ctx context.Context, patientID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Delete(ctx context.Context, id int64) error
}

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	Release(ctx context.Context, id int64) error
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	GetByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus, paidAt *time.Time) error
}

// ProfilesClient интерфейс клиента ProfileService
// Используется только для адресации уведомлений
type ProfilesClient interface {
	GetDoctor(ctx context.Context, doctorID int64) (*profiles.Doctor, error)
	GetPatient(ctx context.Context, patientID int64) (*profiles.Patient, error)
}

// Notifier интерфейс отправки уведомлений
// Вызывается вне транзакций движка, ошибки подавляются
type Notifier interface {
	Notify(ctx context.Context, userID int64, message string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
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

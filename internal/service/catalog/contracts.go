package catalog

import (
	"context"

	"github.com/clinicbook/booking-service/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога услуг и специальностей
type CatalogRepository interface {
	CreateService(ctx context.Context, s *domain.Service) (*domain.Service, error)
	GetServiceByID(ctx context.Context, id int64) (*domain.Service, error)
	GetAllServices(ctx context.Context) ([]*domain.Service, error)
	UpdateService(ctx context.Context, s *domain.Service) error
	DeleteService(ctx context.Context, id int64) error
	GetAllSpecialties(ctx context.Context) ([]*domain.Specialty, error)
	GetSpecialtyByID(ctx context.Context, id int64) (*domain.Specialty, error)
}

// BookingRepository интерфейс репозитория бронирований
// Нужен только для проверки зависимостей перед удалением услуги
type BookingRepository interface {
	HasActiveByService(ctx context.Context, serviceID int64) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

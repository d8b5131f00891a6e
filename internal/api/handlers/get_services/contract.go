package get_services

import (
	"context"

	"github.com/clinicbook/booking-service/internal/domain"
)

type CatalogService interface {
	GetAllServices(ctx context.Context) ([]*domain.Service, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

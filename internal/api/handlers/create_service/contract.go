package create_service

import (
	"context"

	"github.com/clinicbook/booking-service/internal/domain"
)

type CatalogService interface {
	CreateService(ctx context.Context, svc *domain.Service) (*domain.Service, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

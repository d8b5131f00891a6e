package get_doctor_schedules

import (
	"context"

	"github.com/clinicbook/booking-service/internal/service/schedules/models"
)

type ScheduleService interface {
	GetByDoctor(ctx context.Context, filter *models.ListFilter) (*models.ScheduleListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

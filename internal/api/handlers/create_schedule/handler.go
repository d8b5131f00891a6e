package create_schedule

import (
	"errors"
	"net/http"

	"github.com/clinicbook/booking-service/internal/api/handlers"
	"github.com/clinicbook/booking-service/internal/service/schedules"
	"github.com/clinicbook/booking-service/internal/service/schedules/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidWindow      = "время начала должно быть раньше времени окончания"
	msgInvalidInput       = "некорректные входные данные"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/schedules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /schedules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrInvalidWindow):
			h.logger.Warn("POST /schedules - Invalid window: doctor_id=%d, %s-%s", req.DoctorID, req.StartTime, req.EndTime)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		case errors.Is(err, schedules.ErrInvalidInput):
			h.logger.Warn("POST /schedules - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /schedules - Failed to create schedule: doctor_id=%d, error=%v", req.DoctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /schedules - Schedule created: schedule_id=%d, doctor_id=%d", result.ID, result.DoctorID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

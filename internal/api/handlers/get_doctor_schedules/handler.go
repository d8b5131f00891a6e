package get_doctor_schedules

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/clinicbook/booking-service/internal/api/handlers"
	"github.com/clinicbook/booking-service/internal/domain"
	"github.com/clinicbook/booking-service/internal/service/schedules"
	"github.com/clinicbook/booking-service/internal/service/schedules/models"
)

const (
	msgInvalidDoctorID = "некорректный ID врача"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
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

// Handle GET /api/v1/doctors/{doctorId}/schedules
// Query параметры: from, to (YYYY-MM-DD), available (true/false)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := strconv.ParseInt(vars["doctorId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /doctors/{doctorId}/schedules - Invalid doctor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}

	filter := &models.ListFilter{DoctorID: doctorID}

	query := r.URL.Query()
	if from := query.Get("from"); from != "" {
		t, err := time.Parse(domain.DateFormat, from)
		if err != nil {
			h.logger.Warn("GET /doctors/{doctorId}/schedules - Invalid from date: %q", from)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		filter.FromDate = &t
	}
	if to := query.Get("to"); to != "" {
		t, err := time.Parse(domain.DateFormat, to)
		if err != nil {
			h.logger.Warn("GET /doctors/{doctorId}/schedules - Invalid to date: %q", to)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		filter.ToDate = &t
	}
	filter.OnlyAvailable = query.Get("available") == "true"

	result, err := h.service.GetByDoctor(r.Context(), filter)
	if err != nil {
		if errors.Is(err, schedules.ErrInvalidInput) {
			h.logger.Warn("GET /doctors/{doctorId}/schedules - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDoctorID)
			return
		}
		h.logger.Error("GET /doctors/{doctorId}/schedules - Failed to get schedules: doctor_id=%d, error=%v",
			doctorID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /doctors/{doctorId}/schedules - Retrieved %d schedules: doctor_id=%d", result.Total, doctorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

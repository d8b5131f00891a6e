package create_booking

import (
	"errors"
	"net/http"

	"github.com/clinicbook/booking-service/internal/api/handlers"
	createBooking "github.com/clinicbook/booking-service/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSlotUnavailable    = "выбранный слот расписания недоступен"
	msgDoctorNotFound     = "врач не найден"
	msgPatientNotFound    = "пациент не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgScheduleNotFound   = "слот расписания не найден"
	msgScheduleMismatch   = "слот расписания принадлежит другому врачу"
	msgDateInPast         = "дата приёма уже прошла"
	msgInvalidInput       = "некорректные входные данные"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotUnavailable):
			h.logger.Warn("POST /bookings - Slot unavailable: patient_id=%d, schedule_id=%d", req.PatientID, req.ScheduleID)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, createBooking.ErrDoctorNotFound):
			h.logger.Warn("POST /bookings - Doctor not found: doctor_id=%d", req.DoctorID)
			handlers.RespondNotFound(w, msgDoctorNotFound)

		case errors.Is(err, createBooking.ErrPatientNotFound):
			h.logger.Warn("POST /bookings - Patient not found: patient_id=%d", req.PatientID)
			handlers.RespondNotFound(w, msgPatientNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrScheduleNotFound):
			h.logger.Warn("POST /bookings - Schedule not found: schedule_id=%d", req.ScheduleID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, createBooking.ErrScheduleMismatch):
			h.logger.Warn("POST /bookings - Schedule mismatch: doctor_id=%d, schedule_id=%d", req.DoctorID, req.ScheduleID)
			handlers.RespondBadRequest(w, msgScheduleMismatch)

		case errors.Is(err, createBooking.ErrDateInPast):
			h.logger.Warn("POST /bookings - Date in past: schedule_id=%d", req.ScheduleID)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: patient_id=%d, schedule_id=%d, error=%v",
				req.PatientID, req.ScheduleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, patient_id=%d, schedule_id=%d",
		result.ID, req.PatientID, req.ScheduleID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

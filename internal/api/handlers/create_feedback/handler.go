package create_feedback

import (
	"errors"
	"net/http"
	"time"

	"github.com/clinicbook/booking-service/internal/api/handlers"
	"github.com/clinicbook/booking-service/internal/domain"
	"github.com/clinicbook/booking-service/internal/service/feedback"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotAllowed         = "отзыв можно оставить только после завершённого приёма у врача"
	msgInvalidInput       = "некорректные входные данные"
)

// CreateFeedbackRequest HTTP request model
type CreateFeedbackRequest struct {
	DoctorID  int64   `json:"doctorId"`
	PatientID int64   `json:"patientId"`
	Rating    int     `json:"rating"`
	Comment   *string `json:"comment,omitempty"`
}

// FeedbackResponse HTTP response model
type FeedbackResponse struct {
	ID        int64   `json:"id"`
	DoctorID  int64   `json:"doctorId"`
	PatientID int64   `json:"patientId"`
	Rating    int     `json:"rating"`
	Comment   *string `json:"comment,omitempty"`
	CreatedAt string  `json:"createdAt"`
}

type Handler struct {
	service FeedbackService
	logger  Logger
}

func NewHandler(service FeedbackService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/feedback
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateFeedbackRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /feedback - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	created, err := h.service.Create(r.Context(), &domain.Feedback{
		DoctorID:  req.DoctorID,
		PatientID: req.PatientID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		switch {
		case errors.Is(err, feedback.ErrFeedbackNotAllowed):
			h.logger.Warn("POST /feedback - Not allowed: doctor_id=%d, patient_id=%d", req.DoctorID, req.PatientID)
			handlers.RespondForbidden(w, msgNotAllowed)

		case errors.Is(err, feedback.ErrInvalidInput):
			h.logger.Warn("POST /feedback - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /feedback - Failed to create feedback: doctor_id=%d, patient_id=%d, error=%v",
				req.DoctorID, req.PatientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /feedback - Feedback created: feedback_id=%d, doctor_id=%d", created.ID, created.DoctorID)
	handlers.RespondJSON(w, http.StatusCreated, &FeedbackResponse{
		ID:        created.ID,
		DoctorID:  created.DoctorID,
		PatientID: created.PatientID,
		Rating:    created.Rating,
		Comment:   created.Comment,
		CreatedAt: created.CreatedAt.Format(time.RFC3339),
	})
}

package get_doctor_feedback

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/clinicbook/booking-service/internal/api/handlers"
	"github.com/clinicbook/booking-service/internal/domain"
	"github.com/clinicbook/booking-service/internal/service/feedback"
)

const (
	msgInvalidDoctorID = "некорректный ID врача"
)

// FeedbackResponse HTTP response model
type FeedbackResponse struct {
	ID        int64   `json:"id"`
	DoctorID  int64   `json:"doctorId"`
	PatientID int64   `json:"patientId"`
	Rating    int     `json:"rating"`
	Comment   *string `json:"comment,omitempty"`
	CreatedAt string  `json:"createdAt"`
}

// FeedbackListResponse список отзывов с агрегированным рейтингом
type FeedbackListResponse struct {
	Feedback      []*FeedbackResponse `json:"feedback"`
	Total         int                 `json:"total"`
	AverageRating float64             `json:"averageRating"`
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

// Handle GET /api/v1/doctors/{doctorId}/feedback
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := strconv.ParseInt(vars["doctorId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /doctors/{doctorId}/feedback - Invalid doctor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}

	fs, err := h.service.GetByDoctor(r.Context(), doctorID)
	if err != nil {
		if errors.Is(err, feedback.ErrInvalidInput) {
			h.logger.Warn("GET /doctors/{doctorId}/feedback - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDoctorID)
			return
		}
		h.logger.Error("GET /doctors/{doctorId}/feedback - Failed to get feedback: doctor_id=%d, error=%v",
			doctorID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /doctors/{doctorId}/feedback - Retrieved %d feedback entries: doctor_id=%d", len(fs), doctorID)
	handlers.RespondJSON(w, http.StatusOK, fromDomain(fs))
}

func fromDomain(fs []*domain.Feedback) *FeedbackListResponse {
	out := make([]*FeedbackResponse, 0, len(fs))
	sum := 0

	for _, f := range fs {
		sum += f.Rating
		out = append(out, &FeedbackResponse{
			ID:        f.ID,
			DoctorID:  f.DoctorID,
			PatientID: f.PatientID,
			Rating:    f.Rating,
			Comment:   f.Comment,
			CreatedAt: f.CreatedAt.Format(time.RFC3339),
		})
	}

	avg := 0.0
	if len(out) > 0 {
		avg = float64(sum) / float64(len(out))
	}

	return &FeedbackListResponse{Feedback: out, Total: len(out), AverageRating: avg}
}

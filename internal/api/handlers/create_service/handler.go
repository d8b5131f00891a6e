package create_service

import (
	"errors"
	"net/http"

	"github.com/clinicbook/booking-service/internal/api/handlers"
	"github.com/clinicbook/booking-service/internal/domain"
	"github.com/clinicbook/booking-service/internal/service/catalog"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgDuplicateTitle     = "услуга с таким названием уже существует"
	msgInvalidInput       = "некорректные входные данные"
)

// CreateServiceRequest HTTP request model
type CreateServiceRequest struct {
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// ServiceResponse HTTP response model
type ServiceResponse struct {
	ID              int64   `json:"id"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
}

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	created, err := h.service.CreateService(r.Context(), &domain.Service{
		Title:           req.Title,
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		Status:          domain.ServiceActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrDuplicateTitle):
			h.logger.Warn("POST /services - Duplicate title: %q", req.Title)
			handlers.RespondConflict(w, msgDuplicateTitle)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("POST /services - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /services - Failed to create service: title=%q, error=%v", req.Title, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /services - Service created: service_id=%d, title=%q", created.ID, created.Title)
	handlers.RespondJSON(w, http.StatusCreated, &ServiceResponse{
		ID:              created.ID,
		Title:           created.Title,
		Description:     created.Description,
		Price:           created.Price,
		DurationMinutes: created.DurationMinutes,
		Status:          string(created.Status),
	})
}

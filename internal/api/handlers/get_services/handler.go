package get_services

import (
	"net/http"

	"github.com/clinicbook/booking-service/internal/api/handlers"
	"github.com/clinicbook/booking-service/internal/domain"
)

// ServiceResponse HTTP response model
type ServiceResponse struct {
	ID              int64   `json:"id"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
}

// ServiceListResponse список услуг каталога
type ServiceListResponse struct {
	Services []*ServiceResponse `json:"services"`
	Total    int                `json:"total"`
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

// Handle GET /api/v1/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	svcs, err := h.service.GetAllServices(r.Context())
	if err != nil {
		h.logger.Error("GET /services - Failed to get services: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /services - Retrieved %d services", len(svcs))
	handlers.RespondJSON(w, http.StatusOK, FromDomainServices(svcs))
}

// FromDomainServices конвертирует список доменных моделей в HTTP response
func FromDomainServices(svcs []*domain.Service) *ServiceListResponse {
	out := make([]*ServiceResponse, 0, len(svcs))
	for _, s := range svcs {
		out = append(out, &ServiceResponse{
			ID:              s.ID,
			Title:           s.Title,
			Description:     s.Description,
			Price:           s.Price,
			DurationMinutes: s.DurationMinutes,
			Status:          string(s.Status),
		})
	}

	return &ServiceListResponse{Services: out, Total: len(out)}
}

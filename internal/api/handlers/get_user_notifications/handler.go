package get_user_notifications

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/clinicbook/booking-service/internal/api/handlers"
	"github.com/clinicbook/booking-service/internal/domain"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
)

// NotificationResponse HTTP response model
type NotificationResponse struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	Message   string `json:"message"`
	IsRead    bool   `json:"isRead"`
	CreatedAt string `json:"createdAt"`
}

// NotificationListResponse список уведомлений
type NotificationListResponse struct {
	Notifications []*NotificationResponse `json:"notifications"`
	Total         int                     `json:"total"`
}

type Handler struct {
	service NotificationService
	logger  Logger
}

func NewHandler(service NotificationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{userId}/notifications
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, err := strconv.ParseInt(vars["userId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /users/{userId}/notifications - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	notifs, err := h.service.GetByUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /users/{userId}/notifications - Failed to get notifications: user_id=%d, error=%v",
			userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /users/{userId}/notifications - Retrieved %d notifications: user_id=%d", len(notifs), userID)
	handlers.RespondJSON(w, http.StatusOK, fromDomain(notifs))
}

func fromDomain(notifs []*domain.Notification) *NotificationListResponse {
	out := make([]*NotificationResponse, 0, len(notifs))
	for _, n := range notifs {
		out = append(out, &NotificationResponse{
			ID:        n.ID,
			UserID:    n.UserID,
			Message:   n.Message,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt.Format(time.RFC3339),
		})
	}

	return &NotificationListResponse{Notifications: out, Total: len(out)}
}

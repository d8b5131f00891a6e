package notifications

import (
	"context"
	"errors"
	"fmt"

	"github.com/clinicbook/booking-service/internal/domain"
	notificationRepo "github.com/clinicbook/booking-service/internal/infra/storage/notification"
)

// Service сервис уведомлений: хранение плюс real-time push
// Реализует интерфейс Notifier движка бронирований
type Service struct {
	repo   NotificationRepository
	hub    HubClient
	logger Logger
}

// NewService создает новый экземпляр сервиса уведомлений
func NewService(repo NotificationRepository, hub HubClient, logger Logger) *Service {
	return &Service{
		repo:   repo,
		hub:    hub,
		logger: logger,
	}
}

// Notify создает уведомление и отправляет его через real-time шлюз
// Ошибка push логируется и подавляется: доставка best-effort,
// записанное уведомление пользователь в любом случае увидит в списке
func (s *Service) Notify(ctx context.Context, userID int64, message string) error {
	if userID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if message == "" || len(message) > domain.MaxNotificationMessageLength {
		return fmt.Errorf("%w: message must be non-empty and at most %d characters",
			ErrInvalidInput, domain.MaxNotificationMessageLength)
	}

	created, err := s.repo.Create(ctx, &domain.Notification{
		UserID:  userID,
		Message: message,
	})
	if err != nil {
		s.logger.Error("Notify: failed to store notification for user=%d: %v", userID, err)
		return fmt.Errorf("%w: Notify - repository error: %w", ErrInternal, err)
	}

	if err := s.hub.Push(ctx, userID, message); err != nil {
		s.logger.Warn("Notify: push failed for notification id=%d, user=%d: %v", created.ID, userID, err)
	}

	s.logger.Info("Notify: notification id=%d created for user=%d", created.ID, userID)
	return nil
}

// GetByUser получает все уведомления пользователя
func (s *Service) GetByUser(ctx context.Context, userID int64) ([]*domain.Notification, error) {
	notifs, err := s.repo.GetAllByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("GetByUser: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetByUser - repository error: %w", ErrInternal, err)
	}

	return notifs, nil
}

// MarkRead помечает уведомление прочитанным
func (s *Service) MarkRead(ctx context.Context, id int64) error {
	if err := s.repo.MarkRead(ctx, id); err != nil {
		if errors.Is(err, notificationRepo.ErrNotificationNotFound) {
			s.logger.Warn("MarkRead: notification id=%d not found", id)
			return ErrNotificationNotFound
		}
		s.logger.Error("MarkRead: repository error for notification id=%d: %v", id, err)
		return fmt.Errorf("%w: MarkRead - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("MarkRead: notification id=%d marked as read", id)
	return nil
}

// Delete удаляет уведомление
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, notificationRepo.ErrNotificationNotFound) {
			s.logger.Warn("Delete: notification id=%d not found", id)
			return ErrNotificationNotFound
		}
		s.logger.Error("Delete: repository error for notification id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Delete: notification id=%d deleted", id)
	return nil
}

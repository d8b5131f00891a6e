package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/clinicbook/booking-service/internal/domain"
	catalogRepo "github.com/clinicbook/booking-service/internal/infra/storage/catalog"
)

// Service каталог медицинских услуг и справочник специальностей
type Service struct {
	repo      CatalogRepository
	bookings  BookingRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(repo CatalogRepository, bookings BookingRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		repo:      repo,
		bookings:  bookings,
		txManager: txManager,
		logger:    logger,
	}
}

// validateService проверяет поля услуги по бизнес-ограничениям каталога
func validateService(s *domain.Service) error {
	if s.Title == "" || len(s.Title) > domain.MaxServiceTitleLength {
		return fmt.Errorf("%w: title must be non-empty and at most %d characters",
			ErrInvalidInput, domain.MaxServiceTitleLength)
	}
	if len(s.Description) > domain.MaxServiceDescriptionLength {
		return fmt.Errorf("%w: description must be at most %d characters",
			ErrInvalidInput, domain.MaxServiceDescriptionLength)
	}
	if s.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", ErrInvalidInput)
	}
	if s.DurationMinutes < domain.MinServiceDurationMinutes || s.DurationMinutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}

	return nil
}

// CreateService добавляет услугу в каталог. Название уникально
func (s *Service) CreateService(ctx context.Context, svc *domain.Service) (*domain.Service, error) {
	if err := validateService(svc); err != nil {
		return nil, err
	}

	if svc.Status == "" {
		svc.Status = domain.ServiceActive
	}

	created, err := s.repo.CreateService(ctx, svc)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrDuplicateTitle) {
			return nil, ErrDuplicateTitle
		}
		return nil, fmt.Errorf("%w: CreateService - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("CreateService: service id=%d %q created", created.ID, created.Title)
	return created, nil
}

// GetServiceByID получает услугу по идентификатору
func (s *Service) GetServiceByID(ctx context.Context, id int64) (*domain.Service, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	svc, err := s.repo.GetServiceByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("%w: GetServiceByID - repository error: %w", ErrInternal, err)
	}

	return svc, nil
}

// GetAllServices получает все услуги каталога
func (s *Service) GetAllServices(ctx context.Context) ([]*domain.Service, error) {
	svcs, err := s.repo.GetAllServices(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllServices - repository error: %w", ErrInternal, err)
	}

	return svcs, nil
}

// UpdateService изменяет услугу каталога
func (s *Service) UpdateService(ctx context.Context, svc *domain.Service) (*domain.Service, error) {
	if svc.ID <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}
	if err := validateService(svc); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateService(ctx, svc); err != nil {
		switch {
		case errors.Is(err, catalogRepo.ErrServiceNotFound):
			return nil, ErrServiceNotFound
		case errors.Is(err, catalogRepo.ErrDuplicateTitle):
			return nil, ErrDuplicateTitle
		default:
			return nil, fmt.Errorf("%w: UpdateService - repository error: %w", ErrInternal, err)
		}
	}

	s.logger.Info("UpdateService: service id=%d updated", svc.ID)
	return svc, nil
}

// DeleteService удаляет услугу из каталога. Услугу с активными
// бронированиями удалить нельзя
func (s *Service) DeleteService(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		inUse, err := s.bookings.HasActiveByService(ctx, id)
		if err != nil {
			return fmt.Errorf("%w: DeleteService - dependency check: %w", ErrInternal, err)
		}
		if inUse {
			return ErrServiceInUse
		}

		if err := s.repo.DeleteService(ctx, id); err != nil {
			if errors.Is(err, catalogRepo.ErrServiceNotFound) {
				return ErrServiceNotFound
			}
			return fmt.Errorf("%w: DeleteService - repository error: %w", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("DeleteService: service id=%d deleted", id)
	return nil
}

// GetAllSpecialties получает справочник специальностей
func (s *Service) GetAllSpecialties(ctx context.Context) ([]*domain.Specialty, error) {
	sps, err := s.repo.GetAllSpecialties(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllSpecialties - repository error: %w", ErrInternal, err)
	}

	return sps, nil
}

// GetSpecialtyByID получает специальность по идентификатору
func (s *Service) GetSpecialtyByID(ctx context.Context, id int64) (*domain.Specialty, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	sp, err := s.repo.GetSpecialtyByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrSpecialtyNotFound) {
			return nil, ErrSpecialtyNotFound
		}
		return nil, fmt.Errorf("%w: GetSpecialtyByID - repository error: %w", ErrInternal, err)
	}

	return sp, nil
}

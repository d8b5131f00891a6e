package schedules

import (
	"context"
	"errors"
	"fmt"

	"github.com/clinicbook/booking-service/internal/domain"
	scheduleRepo "github.com/clinicbook/booking-service/internal/infra/storage/schedule"
	"github.com/clinicbook/booking-service/internal/service/schedules/models"
)

// Service управление слотами расписания врачей.
// Резервирование и освобождение слотов сюда не входят: ими владеет
// движок бронирований, здесь только CRUD с проверкой зависимостей
type Service struct {
	schedules ScheduleRepository
	bookings  BookingRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(schedules ScheduleRepository, bookings BookingRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		schedules: schedules,
		bookings:  bookings,
		txManager: txManager,
		logger:    logger,
	}
}

// Create создаёт слот расписания. Новый слот всегда доступен
func (s *Service) Create(ctx context.Context, req *models.CreateScheduleRequest) (*models.ScheduleResponse, error) {
	if req.DoctorID <= 0 {
		return nil, fmt.Errorf("%w: doctor_id must be positive", ErrInvalidInput)
	}

	day, start, end, err := models.ParseWindow(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	sched := &domain.Schedule{
		DoctorID:    req.DoctorID,
		Date:        day,
		StartTime:   start,
		EndTime:     end,
		IsAvailable: true,
	}
	if !sched.IsValidWindow() {
		return nil, fmt.Errorf("%w: %s >= %s", ErrInvalidWindow, start, end)
	}

	created, err := s.schedules.Create(ctx, sched)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Create: schedule id=%d created for doctor=%d on %s", created.ID, created.DoctorID, req.Date)
	return models.FromDomainSchedule(created), nil
}

// GetByID получает слот расписания по идентификатору
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ScheduleResponse, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	sched, err := s.schedules.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainSchedule(sched), nil
}

// GetByDoctor получает слоты расписания врача с фильтрацией
// по датам и доступности
func (s *Service) GetByDoctor(ctx context.Context, filter *models.ListFilter) (*models.ScheduleListResponse, error) {
	if filter.DoctorID <= 0 {
		return nil, fmt.Errorf("%w: doctor_id must be positive", ErrInvalidInput)
	}

	scheds, err := s.schedules.GetByDoctor(ctx, domain.ScheduleFilter{
		DoctorID:      filter.DoctorID,
		FromDate:      filter.FromDate,
		ToDate:        filter.ToDate,
		OnlyAvailable: filter.OnlyAvailable,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDoctor - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainSchedules(scheds), nil
}

// Update изменяет окно слота расписания. Слот с активным
// бронированием изменить нельзя
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	day, start, end, err := models.ParseWindow(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var updated *domain.Schedule

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		sched, err := s.schedules.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				return ErrScheduleNotFound
			}
			return fmt.Errorf("%w: Update - get schedule: %w", ErrInternal, err)
		}

		inUse, err := s.bookings.HasActiveBySchedule(ctx, id)
		if err != nil {
			return fmt.Errorf("%w: Update - dependency check: %w", ErrInternal, err)
		}
		if inUse {
			return ErrScheduleInUse
		}

		sched.Date = day
		sched.StartTime = start
		sched.EndTime = end
		if !sched.IsValidWindow() {
			return fmt.Errorf("%w: %s >= %s", ErrInvalidWindow, start, end)
		}

		if err := s.schedules.Update(ctx, sched); err != nil {
			return fmt.Errorf("%w: Update - repository error: %w", ErrInternal, err)
		}

		updated = sched
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Update: schedule id=%d updated", id)
	return models.FromDomainSchedule(updated), nil
}

// Delete удаляет слот расписания. Слот с активным бронированием
// удалить нельзя
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		inUse, err := s.bookings.HasActiveBySchedule(ctx, id)
		if err != nil {
			return fmt.Errorf("%w: Delete - dependency check: %w", ErrInternal, err)
		}
		if inUse {
			return ErrScheduleInUse
		}

		if err := s.schedules.Delete(ctx, id); err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				return ErrScheduleNotFound
			}
			return fmt.Errorf("%w: Delete - repository error: %w", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Delete: schedule id=%d deleted", id)
	return nil
}

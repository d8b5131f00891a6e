package feedback

import (
	"context"
	"errors"
	"fmt"

	"github.com/clinicbook/booking-service/internal/domain"
	feedbackRepo "github.com/clinicbook/booking-service/internal/infra/storage/feedback"
)

// Service отзывы пациентов о врачах
type Service struct {
	repo     FeedbackRepository
	bookings BookingRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса отзывов
func NewService(repo FeedbackRepository, bookings BookingRepository, logger Logger) *Service {
	return &Service{
		repo:     repo,
		bookings: bookings,
		logger:   logger,
	}
}

// Create создаёт отзыв. Оставить отзыв может только пациент
// с завершённым приёмом у этого врача
func (s *Service) Create(ctx context.Context, f *domain.Feedback) (*domain.Feedback, error) {
	if f.DoctorID <= 0 || f.PatientID <= 0 {
		return nil, fmt.Errorf("%w: doctor_id and patient_id must be positive", ErrInvalidInput)
	}
	if !f.IsValidRating() {
		return nil, fmt.Errorf("%w: rating must be between %d and %d",
			ErrInvalidInput, domain.MinFeedbackRating, domain.MaxFeedbackRating)
	}
	if f.Comment != nil && len(*f.Comment) > domain.MaxFeedbackCommentLength {
		return nil, fmt.Errorf("%w: comment must be at most %d characters",
			ErrInvalidInput, domain.MaxFeedbackCommentLength)
	}

	completed := domain.StatusCompleted
	bookings, err := s.bookings.GetByPatientID(ctx, f.PatientID, &completed)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - booking lookup: %w", ErrInternal, err)
	}

	visited := false
	for _, b := range bookings {
		if b.DoctorID == f.DoctorID {
			visited = true
			break
		}
	}
	if !visited {
		return nil, ErrFeedbackNotAllowed
	}

	created, err := s.repo.Create(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Create: feedback id=%d created for doctor=%d by patient=%d, rating=%d",
		created.ID, created.DoctorID, created.PatientID, created.Rating)
	return created, nil
}

// GetByDoctor получает отзывы о враче
func (s *Service) GetByDoctor(ctx context.Context, doctorID int64) ([]*domain.Feedback, error) {
	if doctorID <= 0 {
		return nil, fmt.Errorf("%w: doctorID must be positive", ErrInvalidInput)
	}

	fs, err := s.repo.GetByDoctorID(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDoctor - repository error: %w", ErrInternal, err)
	}

	return fs, nil
}

// Delete удаляет отзыв
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, feedbackRepo.ErrFeedbackNotFound) {
			return ErrFeedbackNotFound
		}
		return fmt.Errorf("%w: Delete - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Delete: feedback id=%d deleted", id)
	return nil
}

package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/clinicbook/booking-service/internal/domain"
	bookingRepo "github.com/clinicbook/booking-service/internal/infra/storage/booking"
	paymentRepo "github.com/clinicbook/booking-service/internal/infra/storage/payment"
	"github.com/clinicbook/booking-service/internal/service/payments/models"
)

// Шаблоны уведомлений пациенту о результате оплаты
const (
	msgPaymentCompleted = "Оплата на сумму %.2f ₽ по записи «%s» прошла успешно."
	msgPaymentFailed    = "Оплата по записи «%s» не прошла. Запись отменена."
)

// Service реестр платежей и сверка статусов платёж -> бронирование.
// Обратное направление (бронирование -> платёж) живёт в движке
// бронирований; обе сверки однонаправленные и идемпотентные,
// взаимной рекурсии между ними нет.
type Service struct {
	payments  PaymentRepository
	bookings  BookingRepository
	schedules ScheduleRepository
	profiles  ProfilesClient
	notifier  Notifier
	txManager TransactionManager
	timeProv  TimeProvider
	logger    Logger
}

// NewService создает новый экземпляр сервиса платежей
func NewService(
	payments PaymentRepository,
	bookings BookingRepository,
	schedules ScheduleRepository,
	profilesClient ProfilesClient,
	notifier Notifier,
	txManager TransactionManager,
	timeProv TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		payments:  payments,
		bookings:  bookings,
		schedules: schedules,
		profiles:  profilesClient,
		notifier:  notifier,
		txManager: txManager,
		timeProv:  timeProv,
		logger:    logger,
	}
}

// Create создаёт платёж для бронирования (административный путь).
// На одно бронирование допускается не более одного платежа
func (s *Service) Create(ctx context.Context, req *models.CreatePaymentRequest) (*models.PaymentResponse, error) {
	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: booking_id must be positive", ErrInvalidInput)
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	method, ok := domain.ParsePaymentMethod(req.Method)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMethod, req.Method)
	}

	var created *domain.Payment

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if _, err := s.bookings.GetByID(ctx, req.BookingID); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Create - get booking: %w", ErrInternal, err)
		}

		p, err := s.payments.Create(ctx, &domain.Payment{
			BookingID: req.BookingID,
			Amount:    req.Amount,
			Method:    method,
			Status:    domain.PaymentPending,
		})
		if err != nil {
			if errors.Is(err, paymentRepo.ErrPaymentExists) {
				return ErrPaymentExists
			}
			return fmt.Errorf("%w: Create - repository error: %w", ErrInternal, err)
		}

		created = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Create: payment id=%d created for booking id=%d, amount=%.2f", created.ID, created.BookingID, created.Amount)
	return models.FromDomainPayment(created), nil
}

// UpdateStatus переводит платёж в новый статус и в той же транзакции
// сверяет бронирование: оплаченный платёж завершает бронирование,
// неуспешный отменяет его и освобождает слот расписания.
// Повторный перевод в тот же статус - no-op
func (s *Service) UpdateStatus(ctx context.Context, paymentID int64, req *models.UpdateStatusRequest) (*models.PaymentResponse, error) {
	if paymentID <= 0 {
		return nil, fmt.Errorf("%w: paymentID must be positive", ErrInvalidInput)
	}

	newStatus, ok := domain.ParsePaymentStatus(req.Status)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	var (
		updated *domain.Payment
		booking *domain.Booking
	)

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		p, err := s.payments.GetByID(ctx, paymentID)
		if err != nil {
			if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
				return ErrPaymentNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - get payment: %w", ErrInternal, err)
		}

		if p.Status != newStatus {
			paidAt := p.PaidAt
			if newStatus == domain.PaymentCompleted && paidAt == nil {
				now := s.timeProv.Now()
				paidAt = &now
			}

			if err := s.payments.UpdateStatus(ctx, p.ID, newStatus, paidAt); err != nil {
				return fmt.Errorf("%w: UpdateStatus - write status: %w", ErrInternal, err)
			}

			p.Status = newStatus
			p.PaidAt = paidAt
		}

		b, err := s.syncBookingFromPayment(ctx, p)
		if err != nil {
			return err
		}

		updated = p
		booking = b

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateStatus: payment id=%d moved to status=%s", updated.ID, updated.Status)

	s.notifyPatient(ctx, updated, booking)

	return models.FromDomainPayment(updated), nil
}

// syncBookingFromPayment приводит статус бронирования в соответствие
// со статусом платежа. Идемпотентно: бронирование, уже находящееся
// в целевом статусе, не трогается
func (s *Service) syncBookingFromPayment(ctx context.Context, p *domain.Payment) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, p.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: sync - get booking: %w", ErrInternal, err)
	}

	switch p.Status {
	case domain.PaymentCompleted:
		if b.Status == domain.StatusCompleted {
			return b, nil
		}

		if err := s.bookings.UpdateStatus(ctx, b.ID, domain.StatusCompleted); err != nil {
			return nil, fmt.Errorf("%w: sync - complete booking: %w", ErrInternal, err)
		}
		b.Status = domain.StatusCompleted

		s.logger.Info("sync: booking id=%d completed after payment id=%d", b.ID, p.ID)

	case domain.PaymentFailed:
		if b.Status == domain.StatusCancelled {
			return b, nil
		}

		if err := s.bookings.UpdateStatus(ctx, b.ID, domain.StatusCancelled); err != nil {
			return nil, fmt.Errorf("%w: sync - cancel booking: %w", ErrInternal, err)
		}
		if err := s.schedules.Release(ctx, b.ScheduleID); err != nil {
			return nil, fmt.Errorf("%w: sync - release schedule: %w", ErrInternal, err)
		}
		b.Status = domain.StatusCancelled

		s.logger.Info("sync: booking id=%d cancelled after failed payment id=%d, schedule id=%d released",
			b.ID, p.ID, b.ScheduleID)
	}

	return b, nil
}

// notifyPatient отправляет пациенту уведомление о результате оплаты.
// Best-effort: любая ошибка логируется и подавляется
func (s *Service) notifyPatient(ctx context.Context, p *domain.Payment, b *domain.Booking) {
	var message string

	switch p.Status {
	case domain.PaymentCompleted:
		message = fmt.Sprintf(msgPaymentCompleted, p.Amount, b.ServiceTitle)
	case domain.PaymentFailed:
		message = fmt.Sprintf(msgPaymentFailed, b.ServiceTitle)
	default:
		return
	}

	patient, err := s.profiles.GetPatient(ctx, b.PatientID)
	if err != nil {
		s.logger.Warn("notifyPatient: failed to resolve patient id=%d: %v", b.PatientID, err)
		return
	}

	if err := s.notifier.Notify(ctx, patient.UserID, message); err != nil {
		s.logger.Warn("notifyPatient: failed to notify user=%d for payment id=%d: %v", patient.UserID, p.ID, err)
	}
}

// GetByID получает платёж по идентификатору
func (s *Service) GetByID(ctx context.Context, id int64) (*models.PaymentResponse, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	p, err := s.payments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainPayment(p), nil
}

// GetByBooking получает платёж бронирования
func (s *Service) GetByBooking(ctx context.Context, bookingID int64) (*models.PaymentResponse, error) {
	if bookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	p, err := s.payments.GetByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("%w: GetByBooking - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainPayment(p), nil
}

// GetByPatient получает все платежи пациента
func (s *Service) GetByPatient(ctx context.Context, patientID int64) (*models.PaymentListResponse, error) {
	if patientID <= 0 {
		return nil, fmt.Errorf("%w: patientID must be positive", ErrInvalidInput)
	}

	ps, err := s.payments.GetByPatientID(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPatient - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainPayments(ps), nil
}

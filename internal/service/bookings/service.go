package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/clinicbook/booking-service/internal/domain"
	bookingRepo "github.com/clinicbook/booking-service/internal/infra/storage/booking"
	paymentRepo "github.com/clinicbook/booking-service/internal/infra/storage/payment"
	"github.com/clinicbook/booking-service/internal/service/bookings/models"
)

// Шаблоны уведомлений пациенту о смене статуса бронирования
const (
	msgBookingConfirmed = "Ваша запись на услугу «%s» подтверждена. Врач: %s."
	msgBookingCompleted = "Приём по услуге «%s» завершён. Спасибо, что выбрали нашу клинику!"
	msgBookingCancelled = "Ваша запись на услугу «%s» отменена."
)

// Service движок жизненного цикла бронирований.
// Смена статуса и все её побочные эффекты (платёж, расписание)
// выполняются в одной сериализуемой транзакции; уведомления
// отправляются после коммита и не влияют на результат операции.
type Service struct {
	bookings  BookingRepository
	schedules ScheduleRepository
	payments  PaymentRepository
	profiles  ProfilesClient
	notifier  Notifier
	txManager TransactionManager
	timeProv  TimeProvider
	logger    Logger

	// strictTransitions включает проверку легальности перехода
	// по таблице состояний; по умолчанию выключена
	strictTransitions bool
}

// NewService создает новый экземпляр движка бронирований
func NewService(
	bookings BookingRepository,
	schedules ScheduleRepository,
	payments PaymentRepository,
	profilesClient ProfilesClient,
	notifier Notifier,
	txManager TransactionManager,
	timeProv TimeProvider,
	logger Logger,
	strictTransitions bool,
) *Service {
	return &Service{
		bookings:          bookings,
		schedules:         schedules,
		payments:          payments,
		profiles:          profilesClient,
		notifier:          notifier,
		txManager:         txManager,
		timeProv:          timeProv,
		logger:            logger,
		strictTransitions: strictTransitions,
	}
}

// UpdateStatus переводит бронирование в новый статус и выполняет
// побочные эффекты, привязанные к целевому статусу:
//   - confirmed: создаёт ожидающий онлайн-платёж по цене услуги,
//     если платежа ещё нет;
//   - completed: отмечает существующий платёж оплаченным;
//   - cancelled: освобождает слот расписания и помечает платёж
//     неуспешным.
//
// Все эффекты идемпотентны: повторный перевод в тот же статус
// не порождает дублей.
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	if bookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	newStatus, ok := domain.ParseBookingStatus(req.Status)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	var updated *domain.Booking

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		b, err := s.bookings.GetByID(ctx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - get booking: %w", ErrInternal, err)
		}

		if s.strictTransitions && !b.CanTransitionTo(newStatus) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, newStatus)
		}

		if err := s.bookings.UpdateStatus(ctx, b.ID, newStatus); err != nil {
			return fmt.Errorf("%w: UpdateStatus - write status: %w", ErrInternal, err)
		}

		if err := s.applyStatusEffects(ctx, b, newStatus); err != nil {
			return err
		}

		b.Status = newStatus
		updated = b

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateStatus: booking id=%d moved to status=%s", updated.ID, updated.Status)

	// Уведомление после коммита: сбой здесь не откатывает смену статуса
	s.notifyPatient(ctx, updated, newStatus)

	return models.FromDomainBooking(updated), nil
}

// applyStatusEffects выполняет побочные эффекты целевого статуса.
// Вызывается внутри транзакции UpdateStatus.
func (s *Service) applyStatusEffects(ctx context.Context, b *domain.Booking, newStatus domain.BookingStatus) error {
	switch newStatus {
	case domain.StatusConfirmed:
		return s.ensurePaymentExists(ctx, b)
	case domain.StatusCompleted:
		return s.settlePayment(ctx, b)
	case domain.StatusCancelled:
		if err := s.releaseSchedule(ctx, b); err != nil {
			return err
		}
		return s.failPayment(ctx, b)
	default:
		return nil
	}
}

// ensurePaymentExists создаёт ожидающий онлайн-платёж по цене услуги,
// если для бронирования платежа ещё нет
func (s *Service) ensurePaymentExists(ctx context.Context, b *domain.Booking) error {
	_, err := s.payments.GetByBookingID(ctx, b.ID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, paymentRepo.ErrPaymentNotFound) {
		return fmt.Errorf("%w: UpdateStatus - get payment: %w", ErrInternal, err)
	}

	_, err = s.payments.Create(ctx, &domain.Payment{
		BookingID: b.ID,
		Amount:    b.ServicePrice,
		Method:    domain.MethodOnline,
		Status:    domain.PaymentPending,
	})
	if err != nil {
		// Гонка двух подтверждений: платёж уже создан, цель достигнута
		if errors.Is(err, paymentRepo.ErrPaymentExists) {
			return nil
		}
		return fmt.Errorf("%w: UpdateStatus - create payment: %w", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: pending payment created for booking id=%d, amount=%.2f", b.ID, b.ServicePrice)
	return nil
}

// settlePayment отмечает платёж бронирования оплаченным.
// Отсутствие платежа не считается ошибкой: приём мог быть
// оплачен вне системы
func (s *Service) settlePayment(ctx context.Context, b *domain.Booking) error {
	p, err := s.payments.GetByBookingID(ctx, b.ID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			return nil
		}
		return fmt.Errorf("%w: UpdateStatus - get payment: %w", ErrInternal, err)
	}

	if p.Status == domain.PaymentCompleted {
		return nil
	}

	now := s.timeProv.Now()
	if err := s.payments.UpdateStatus(ctx, p.ID, domain.PaymentCompleted, &now); err != nil {
		return fmt.Errorf("%w: UpdateStatus - settle payment: %w", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: payment id=%d settled for booking id=%d", p.ID, b.ID)
	return nil
}

// failPayment помечает платёж бронирования неуспешным, если он есть
// и ещё не помечен таковым
func (s *Service) failPayment(ctx context.Context, b *domain.Booking) error {
	p, err := s.payments.GetByBookingID(ctx, b.ID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			return nil
		}
		return fmt.Errorf("%w: UpdateStatus - get payment: %w", ErrInternal, err)
	}

	if p.Status == domain.PaymentFailed {
		return nil
	}

	if err := s.payments.UpdateStatus(ctx, p.ID, domain.PaymentFailed, nil); err != nil {
		return fmt.Errorf("%w: UpdateStatus - fail payment: %w", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: payment id=%d failed for booking id=%d", p.ID, b.ID)
	return nil
}

// releaseSchedule возвращает слот расписания в доступное состояние
func (s *Service) releaseSchedule(ctx context.Context, b *domain.Booking) error {
	if err := s.schedules.Release(ctx, b.ScheduleID); err != nil {
		return fmt.Errorf("%w: UpdateStatus - release schedule: %w", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: schedule id=%d released for booking id=%d", b.ScheduleID, b.ID)
	return nil
}

// notifyPatient отправляет пациенту уведомление о смене статуса.
// Best-effort: любая ошибка логируется и подавляется
func (s *Service) notifyPatient(ctx context.Context, b *domain.Booking, newStatus domain.BookingStatus) {
	var message string

	switch newStatus {
	case domain.StatusConfirmed:
		doctorName := "специалист"
		if doctor, err := s.profiles.GetDoctor(ctx, b.DoctorID); err == nil {
			doctorName = doctor.FullName
		} else {
			s.logger.Warn("notifyPatient: failed to resolve doctor id=%d: %v", b.DoctorID, err)
		}
		message = fmt.Sprintf(msgBookingConfirmed, b.ServiceTitle, doctorName)
	case domain.StatusCompleted:
		message = fmt.Sprintf(msgBookingCompleted, b.ServiceTitle)
	case domain.StatusCancelled:
		message = fmt.Sprintf(msgBookingCancelled, b.ServiceTitle)
	default:
		return
	}

	patient, err := s.profiles.GetPatient(ctx, b.PatientID)
	if err != nil {
		s.logger.Warn("notifyPatient: failed to resolve patient id=%d: %v", b.PatientID, err)
		return
	}

	if err := s.notifier.Notify(ctx, patient.UserID, message); err != nil {
		s.logger.Warn("notifyPatient: failed to notify user=%d for booking id=%d: %v", patient.UserID, b.ID, err)
	}
}

// GetByID получает бронирование по идентификатору
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainBooking(b), nil
}

// GetByPatient получает бронирования пациента с необязательным
// фильтром по статусу
func (s *Service) GetByPatient(ctx context.Context, patientID int64, status string) (*models.BookingListResponse, error) {
	if patientID <= 0 {
		return nil, fmt.Errorf("%w: patientID must be positive", ErrInvalidInput)
	}

	var statusFilter *domain.BookingStatus
	if status != "" {
		parsed, ok := domain.ParseBookingStatus(status)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
		}
		statusFilter = &parsed
	}

	bs, err := s.bookings.GetByPatientID(ctx, patientID, statusFilter)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPatient - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainBookings(bs), nil
}

// Delete безусловно удаляет бронирование. Административный путь
// очистки: расписание и платёж не затрагиваются, освобождение слота
// остаётся на вызывающей стороне (для этого есть отмена)
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	if err := s.bookings.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("%w: Delete - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Delete: booking id=%d deleted", id)
	return nil
}

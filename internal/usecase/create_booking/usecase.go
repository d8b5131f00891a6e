package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/clinicbook/booking-service/internal/domain"
	bookingRepo "github.com/clinicbook/booking-service/internal/infra/storage/booking"
	catalogRepo "github.com/clinicbook/booking-service/internal/infra/storage/catalog"
	scheduleRepo "github.com/clinicbook/booking-service/internal/infra/storage/schedule"
	profilesClient "github.com/clinicbook/booking-service/internal/integrations/profiles"
	"github.com/clinicbook/booking-service/pkg/txmanager"
)

// msgNewBooking шаблон уведомления врачу о новой записи
const msgNewBooking = "Новая запись: пациент %s, услуга «%s», %s %s-%s."

// UseCase use case создания бронирования: резервирование слота
// и вставка бронирования в одной сериализуемой транзакции
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	catalogRepo  CatalogRepository
	profiles     ProfilesClient
	notifier     Notifier
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	catalogRepo CatalogRepository,
	profiles ProfilesClient,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		catalogRepo:  catalogRepo,
		profiles:     profiles,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проигравший гонку за слот получает ErrSlotUnavailable: резерв
// выполняется условным обновлением доступного слота, вставка
// бронирования дополнительно упирается в частичный уникальный
// индекс по активным бронированиям слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: patient=%d, doctor=%d, service=%d, schedule=%d",
		req.PatientID, req.DoctorID, req.ServiceID, req.ScheduleID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование пациента
	patient, err := uc.profiles.GetPatient(ctx, req.PatientID)
	if err != nil {
		if errors.Is(err, profilesClient.ErrPatientNotFound) {
			uc.logger.Warn("CreateBooking: patient id=%d not found", req.PatientID)
			return nil, ErrPatientNotFound
		}
		uc.logger.Error("CreateBooking: failed to get patient id=%d: %v", req.PatientID, err)
		return nil, fmt.Errorf("%w: failed to get patient: %w", ErrInternal, err)
	}

	// 3. Проверяем существование врача
	doctor, err := uc.profiles.GetDoctor(ctx, req.DoctorID)
	if err != nil {
		if errors.Is(err, profilesClient.ErrDoctorNotFound) {
			uc.logger.Warn("CreateBooking: doctor id=%d not found", req.DoctorID)
			return nil, ErrDoctorNotFound
		}
		uc.logger.Error("CreateBooking: failed to get doctor id=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get doctor: %w", ErrInternal, err)
	}

	// 4. Получаем услугу каталога: цена и название фиксируются
	// в бронировании на момент записи
	service, err := uc.catalogRepo.GetServiceByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
	}
	if !service.IsActive() {
		uc.logger.Warn("CreateBooking: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	now := uc.timeProvider.Now()

	var (
		result   *domain.Booking
		schedule *domain.Schedule
	)

	// 5. Резервируем слот и создаём бронирование в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Слот должен существовать и принадлежать указанному врачу
		sched, err := uc.scheduleRepo.GetByID(txCtx, req.ScheduleID)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				return ErrScheduleNotFound
			}
			return fmt.Errorf("%w: failed to get schedule: %w", ErrInternal, err)
		}

		if sched.DoctorID != req.DoctorID {
			return ErrScheduleMismatch
		}

		if isDateInPast(sched.Date, now) {
			return ErrDateInPast
		}

		// 5.2. Условное обновление: проигравший гонку получает
		// ErrSlotUnavailable, а не молчаливую перезапись резерва
		if err := uc.scheduleRepo.Reserve(txCtx, req.ScheduleID); err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleNotAvailable) {
				return ErrSlotUnavailable
			}
			return fmt.Errorf("%w: failed to reserve schedule: %w", ErrInternal, err)
		}

		// 5.3. Создаём бронирование в статусе pending
		booking, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			PatientID:    req.PatientID,
			DoctorID:     req.DoctorID,
			ServiceID:    req.ServiceID,
			ScheduleID:   req.ScheduleID,
			Status:       domain.StatusPending,
			ServiceTitle: service.Title,
			ServicePrice: service.Price,
		})
		if err != nil {
			if errors.Is(err, bookingRepo.ErrScheduleTaken) {
				return ErrSlotUnavailable
			}
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = booking
		schedule = sched

		return nil
	})
	if err != nil {
		uc.logger.Warn("CreateBooking: failed for patient=%d, schedule=%d: %v", req.PatientID, req.ScheduleID, err)
		// Конфликт сериализации, переживший все повторы, означает
		// проигранную гонку за слот
		if txmanager.IsSerializationFailure(err) {
			return nil, ErrSlotUnavailable
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: booking id=%d created, schedule id=%d reserved", result.ID, req.ScheduleID)

	// 6. Уведомляем врача после коммита, ошибки подавляются
	uc.notifyDoctor(ctx, doctor, patient, result, schedule)

	return buildResponse(result, schedule), nil
}

// notifyDoctor отправляет врачу уведомление о новой записи.
// Best-effort: сбой доставки не влияет на результат создания
func (uc *UseCase) notifyDoctor(
	ctx context.Context,
	doctor *profilesClient.Doctor,
	patient *profilesClient.Patient,
	booking *domain.Booking,
	schedule *domain.Schedule,
) {
	message := fmt.Sprintf(msgNewBooking,
		patient.FullName,
		booking.ServiceTitle,
		schedule.Date.Format(domain.DateFormat),
		schedule.StartTime,
		schedule.EndTime,
	)

	if err := uc.notifier.Notify(ctx, doctor.UserID, message); err != nil {
		uc.logger.Warn("CreateBooking: failed to notify doctor user=%d for booking id=%d: %v",
			doctor.UserID, booking.ID, err)
	}
}

// buildResponse собирает модель ответа из бронирования и слота
func buildResponse(b *domain.Booking, s *domain.Schedule) *Response {
	return &Response{
		ID:           b.ID,
		PatientID:    b.PatientID,
		DoctorID:     b.DoctorID,
		ServiceID:    b.ServiceID,
		ScheduleID:   b.ScheduleID,
		Status:       string(b.Status),
		ServiceTitle: b.ServiceTitle,
		ServicePrice: b.ServicePrice,
		Date:         s.Date.Format(domain.DateFormat),
		StartTime:    s.StartTime.String(),
		EndTime:      s.EndTime.String(),
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

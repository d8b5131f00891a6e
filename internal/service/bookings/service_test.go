package bookings

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicbook/booking-service/internal/domain"
	bookingRepo "github.com/clinicbook/booking-service/internal/infra/storage/booking"
	paymentRepo "github.com/clinicbook/booking-service/internal/infra/storage/payment"
	"github.com/clinicbook/booking-service/internal/integrations/profiles"
	"github.com/clinicbook/booking-service/internal/service/bookings/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
}

func newFakeBookingRepo(bs ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bs {
		repo.bookings[b.ID] = b
	}
	return repo
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) GetByPatientID(_ context.Context, patientID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range r.bookings {
		if b.PatientID != patientID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

func (r *fakeBookingRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	delete(r.bookings, id)
	return nil
}

type fakeScheduleRepo struct {
	released []int64
}

func (r *fakeScheduleRepo) Release(_ context.Context, id int64) error {
	r.released = append(r.released, id)
	return nil
}

type fakePaymentRepo struct {
	byBooking map[int64]*domain.Payment
	nextID    int64
	updates   int
}

func newFakePaymentRepo(ps ...*domain.Payment) *fakePaymentRepo {
	repo := &fakePaymentRepo{byBooking: make(map[int64]*domain.Payment), nextID: 100}
	for _, p := range ps {
		repo.byBooking[p.BookingID] = p
	}
	return repo
}

func (r *fakePaymentRepo) Create(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
	if _, ok := r.byBooking[p.BookingID]; ok {
		return nil, paymentRepo.ErrPaymentExists
	}
	r.nextID++
	p.ID = r.nextID
	r.byBooking[p.BookingID] = p
	return p, nil
}

func (r *fakePaymentRepo) GetByBookingID(_ context.Context, bookingID int64) (*domain.Payment, error) {
	p, ok := r.byBooking[bookingID]
	if !ok {
		return nil, paymentRepo.ErrPaymentNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePaymentRepo) UpdateStatus(_ context.Context, id int64, status domain.PaymentStatus, paidAt *time.Time) error {
	for _, p := range r.byBooking {
		if p.ID == id {
			p.Status = status
			p.PaidAt = paidAt
			r.updates++
			return nil
		}
	}
	return paymentRepo.ErrPaymentNotFound
}

type fakeProfiles struct {
	doctorErr  error
	patientErr error
}

func (f *fakeProfiles) GetDoctor(_ context.Context, doctorID int64) (*profiles.Doctor, error) {
	if f.doctorErr != nil {
		return nil, f.doctorErr
	}
	return &profiles.Doctor{ID: doctorID, UserID: 1000 + doctorID, FullName: "Иванов Иван Иванович"}, nil
}

func (f *fakeProfiles) GetPatient(_ context.Context, patientID int64) (*profiles.Patient, error) {
	if f.patientErr != nil {
		return nil, f.patientErr
	}
	return &profiles.Patient{ID: patientID, UserID: 2000 + patientID, FullName: "Петров Пётр"}, nil
}

type fakeNotifier struct {
	sent []string
	err  error
}

func (f *fakeNotifier) Notify(_ context.Context, _ int64, message string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, message)
	return nil
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

func pendingBooking() *domain.Booking {
	return &domain.Booking{
		ID:           1,
		PatientID:    10,
		DoctorID:     20,
		ServiceID:    30,
		ScheduleID:   40,
		Status:       domain.StatusPending,
		ServiceTitle: "Первичный приём терапевта",
		ServicePrice: 2000,
	}
}

func newTestService(
	bookings *fakeBookingRepo,
	schedules *fakeScheduleRepo,
	payments *fakePaymentRepo,
	notifier *fakeNotifier,
	strict bool,
) *Service {
	return NewService(
		bookings,
		schedules,
		payments,
		&fakeProfiles{},
		notifier,
		fakeTxManager{},
		fixedTime{t: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)},
		nopLogger{},
		strict,
	)
}

func TestUpdateStatus_ConfirmCreatesPendingPayment(t *testing.T) {
	bookings := newFakeBookingRepo(pendingBooking())
	schedules := &fakeScheduleRepo{}
	payments := newFakePaymentRepo()
	notifier := &fakeNotifier{}
	svc := newTestService(bookings, schedules, payments, notifier, false)

	resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)

	p, err := payments.GetByBookingID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPending, p.Status)
	assert.Equal(t, domain.MethodOnline, p.Method)
	assert.Equal(t, 2000.0, p.Amount)
	assert.Nil(t, p.PaidAt)

	require.Len(t, notifier.sent, 1)
	assert.Contains(t, notifier.sent[0], "подтверждена")
}

func TestUpdateStatus_ConfirmIsIdempotent(t *testing.T) {
	bookings := newFakeBookingRepo(pendingBooking())
	payments := newFakePaymentRepo()
	svc := newTestService(bookings, &fakeScheduleRepo{}, payments, &fakeNotifier{}, false)

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "confirmed"})
	require.NoError(t, err)
	first, err := payments.GetByBookingID(context.Background(), 1)
	require.NoError(t, err)

	// Повторное подтверждение не создаёт второй платёж
	_, err = svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "confirmed"})
	require.NoError(t, err)
	second, err := payments.GetByBookingID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, payments.byBooking, 1)
}

func TestUpdateStatus_CompleteSettlesPayment(t *testing.T) {
	b := pendingBooking()
	b.Status = domain.StatusConfirmed
	bookings := newFakeBookingRepo(b)
	payments := newFakePaymentRepo(&domain.Payment{
		ID: 101, BookingID: 1, Amount: 2000, Method: domain.MethodOnline, Status: domain.PaymentPending,
	})
	notifier := &fakeNotifier{}
	svc := newTestService(bookings, &fakeScheduleRepo{}, payments, notifier, false)

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "completed"})
	require.NoError(t, err)

	p, err := payments.GetByBookingID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCompleted, p.Status)
	require.NotNil(t, p.PaidAt)
	assert.Equal(t, time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC), *p.PaidAt)
}

func TestUpdateStatus_CompleteWithoutPaymentIsNoop(t *testing.T) {
	b := pendingBooking()
	b.Status = domain.StatusConfirmed
	bookings := newFakeBookingRepo(b)
	payments := newFakePaymentRepo()
	svc := newTestService(bookings, &fakeScheduleRepo{}, payments, &fakeNotifier{}, false)

	// Платёж мог быть оформлен вне системы, завершение не должно падать
	resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)
	assert.Empty(t, payments.byBooking)
}

func TestUpdateStatus_CancelReleasesScheduleAndFailsPayment(t *testing.T) {
	b := pendingBooking()
	b.Status = domain.StatusConfirmed
	bookings := newFakeBookingRepo(b)
	schedules := &fakeScheduleRepo{}
	payments := newFakePaymentRepo(&domain.Payment{
		ID: 101, BookingID: 1, Amount: 2000, Method: domain.MethodOnline, Status: domain.PaymentPending,
	})
	notifier := &fakeNotifier{}
	svc := newTestService(bookings, schedules, payments, notifier, false)

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "cancelled"})
	require.NoError(t, err)

	assert.Equal(t, []int64{40}, schedules.released)

	p, err := payments.GetByBookingID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentFailed, p.Status)

	require.Len(t, notifier.sent, 1)
	assert.Contains(t, notifier.sent[0], "отменена")
}

func TestUpdateStatus_CancelTwiceFailsPaymentOnce(t *testing.T) {
	bookings := newFakeBookingRepo(pendingBooking())
	schedules := &fakeScheduleRepo{}
	payments := newFakePaymentRepo(&domain.Payment{
		ID: 101, BookingID: 1, Amount: 2000, Method: domain.MethodOnline, Status: domain.PaymentPending,
	})
	svc := newTestService(bookings, schedules, payments, &fakeNotifier{}, false)

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "cancelled"})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "cancelled"})
	require.NoError(t, err)

	// Release идемпотентен, а платёж помечается неуспешным только один раз
	assert.Equal(t, 1, payments.updates)
}

func TestUpdateStatus_StrictPolicyRejectsIllegalTransition(t *testing.T) {
	bookings := newFakeBookingRepo(pendingBooking())
	svc := newTestService(bookings, &fakeScheduleRepo{}, newFakePaymentRepo(), &fakeNotifier{}, true)

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "completed"})
	require.ErrorIs(t, err, ErrInvalidTransition)

	b, err := bookings.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, b.Status)
}

func TestUpdateStatus_StrictPolicyRejectsResurrection(t *testing.T) {
	b := pendingBooking()
	b.Status = domain.StatusCancelled
	bookings := newFakeBookingRepo(b)
	svc := newTestService(bookings, &fakeScheduleRepo{}, newFakePaymentRepo(), &fakeNotifier{}, true)

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "confirmed"})
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatus_LoosePolicyAllowsAnyTarget(t *testing.T) {
	bookings := newFakeBookingRepo(pendingBooking())
	svc := newTestService(bookings, &fakeScheduleRepo{}, newFakePaymentRepo(), &fakeNotifier{}, false)

	// Поведение исходной системы: pending -> completed принимается
	resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)
}

func TestUpdateStatus_UnknownStatusRejected(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(pendingBooking()), &fakeScheduleRepo{}, newFakePaymentRepo(), &fakeNotifier{}, false)

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "archived"})
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(), &fakeScheduleRepo{}, newFakePaymentRepo(), &fakeNotifier{}, false)

	_, err := svc.UpdateStatus(context.Background(), 99, &models.UpdateStatusRequest{Status: "confirmed"})
	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestUpdateStatus_NotificationFailureDoesNotFailOperation(t *testing.T) {
	bookings := newFakeBookingRepo(pendingBooking())
	notifier := &fakeNotifier{err: fmt.Errorf("hub is down")}
	svc := newTestService(bookings, &fakeScheduleRepo{}, newFakePaymentRepo(), notifier, false)

	resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
}

func TestDelete_LeavesScheduleAndPaymentUntouched(t *testing.T) {
	bookings := newFakeBookingRepo(pendingBooking())
	schedules := &fakeScheduleRepo{}
	payments := newFakePaymentRepo(&domain.Payment{
		ID: 101, BookingID: 1, Amount: 2000, Method: domain.MethodOnline, Status: domain.PaymentPending,
	})
	svc := newTestService(bookings, schedules, payments, &fakeNotifier{}, false)

	require.NoError(t, svc.Delete(context.Background(), 1))

	// Административное удаление: слот и платёж остаются как есть
	assert.Empty(t, schedules.released)
	p, err := payments.GetByBookingID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPending, p.Status)

	_, err = bookings.GetByID(context.Background(), 1)
	require.ErrorIs(t, err, bookingRepo.ErrBookingNotFound)
}

func TestDelete_NotFound(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(), &fakeScheduleRepo{}, newFakePaymentRepo(), &fakeNotifier{}, false)
	require.ErrorIs(t, svc.Delete(context.Background(), 7), ErrBookingNotFound)
}

func TestGetByPatient_StatusFilter(t *testing.T) {
	b1 := pendingBooking()
	b2 := pendingBooking()
	b2.ID = 2
	b2.Status = domain.StatusCancelled
	svc := newTestService(newFakeBookingRepo(b1, b2), &fakeScheduleRepo{}, newFakePaymentRepo(), &fakeNotifier{}, false)

	all, err := svc.GetByPatient(context.Background(), 10, "")
	require.NoError(t, err)
	assert.Equal(t, 2, all.Total)

	pending, err := svc.GetByPatient(context.Background(), 10, "pending")
	require.NoError(t, err)
	assert.Equal(t, 1, pending.Total)

	_, err = svc.GetByPatient(context.Background(), 10, "bogus")
	require.ErrorIs(t, err, ErrInvalidStatus)
}

package payments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicbook/booking-service/internal/domain"
	bookingRepo "github.com/clinicbook/booking-service/internal/infra/storage/booking"
	paymentRepo "github.com/clinicbook/booking-service/internal/infra/storage/payment"
	"github.com/clinicbook/booking-service/internal/integrations/profiles"
	"github.com/clinicbook/booking-service/internal/service/payments/models"
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
	bookings      map[int64]*domain.Booking
	statusUpdates int
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	r.statusUpdates++
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
	payments map[int64]*domain.Payment
	nextID   int64
}

func newFakePaymentRepo(ps ...*domain.Payment) *fakePaymentRepo {
	repo := &fakePaymentRepo{payments: make(map[int64]*domain.Payment), nextID: 100}
	for _, p := range ps {
		repo.payments[p.ID] = p
	}
	return repo
}

func (r *fakePaymentRepo) Create(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
	for _, existing := range r.payments {
		if existing.BookingID == p.BookingID {
			return nil, paymentRepo.ErrPaymentExists
		}
	}
	r.nextID++
	p.ID = r.nextID
	r.payments[p.ID] = p
	return p, nil
}

func (r *fakePaymentRepo) GetByID(_ context.Context, id int64) (*domain.Payment, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, paymentRepo.ErrPaymentNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePaymentRepo) GetByBookingID(_ context.Context, bookingID int64) (*domain.Payment, error) {
	for _, p := range r.payments {
		if p.BookingID == bookingID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, paymentRepo.ErrPaymentNotFound
}

func (r *fakePaymentRepo) GetByPatientID(_ context.Context, _ int64) ([]*domain.Payment, error) {
	out := make([]*domain.Payment, 0, len(r.payments))
	for _, p := range r.payments {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakePaymentRepo) UpdateStatus(_ context.Context, id int64, status domain.PaymentStatus, paidAt *time.Time) error {
	p, ok := r.payments[id]
	if !ok {
		return paymentRepo.ErrPaymentNotFound
	}
	p.Status = status
	p.PaidAt = paidAt
	return nil
}

type fakeProfiles struct{}

func (fakeProfiles) GetPatient(_ context.Context, patientID int64) (*profiles.Patient, error) {
	return &profiles.Patient{ID: patientID, UserID: 2000 + patientID, FullName: "Петров Пётр"}, nil
}

type fakeNotifier struct {
	sent []string
}

func (f *fakeNotifier) Notify(_ context.Context, _ int64, message string) error {
	f.sent = append(f.sent, message)
	return nil
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func newFixture(bookings map[int64]*domain.Booking, pr *fakePaymentRepo) (*Service, *fakeBookingRepo, *fakeScheduleRepo, *fakeNotifier) {
	br := &fakeBookingRepo{bookings: bookings}
	sr := &fakeScheduleRepo{}
	notifier := &fakeNotifier{}
	svc := NewService(pr, br, sr, fakeProfiles{}, notifier, fakeTxManager{}, fixedTime{t: testNow}, nopLogger{})
	return svc, br, sr, notifier
}

func confirmedBooking() *domain.Booking {
	return &domain.Booking{
		ID: 1, PatientID: 10, DoctorID: 20, ServiceID: 30, ScheduleID: 40,
		Status: domain.StatusConfirmed, ServiceTitle: "Консультация кардиолога", ServicePrice: 3000,
	}
}

func TestCreate_Success(t *testing.T) {
	pr := newFakePaymentRepo()
	svc, _, _, _ := newFixture(map[int64]*domain.Booking{1: confirmedBooking()}, pr)

	resp, err := svc.Create(context.Background(), &models.CreatePaymentRequest{
		BookingID: 1, Amount: 3000, Method: "cash",
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "cash", resp.Method)
	assert.Equal(t, 3000.0, resp.Amount)
}

func TestCreate_DuplicateRejected(t *testing.T) {
	pr := newFakePaymentRepo(&domain.Payment{ID: 101, BookingID: 1, Amount: 3000, Status: domain.PaymentPending})
	svc, _, _, _ := newFixture(map[int64]*domain.Booking{1: confirmedBooking()}, pr)

	_, err := svc.Create(context.Background(), &models.CreatePaymentRequest{
		BookingID: 1, Amount: 3000, Method: "cash",
	})
	require.ErrorIs(t, err, ErrPaymentExists)
}

func TestCreate_BookingNotFound(t *testing.T) {
	svc, _, _, _ := newFixture(map[int64]*domain.Booking{}, newFakePaymentRepo())

	_, err := svc.Create(context.Background(), &models.CreatePaymentRequest{
		BookingID: 9, Amount: 3000, Method: "cash",
	})
	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCreate_InvalidMethod(t *testing.T) {
	svc, _, _, _ := newFixture(map[int64]*domain.Booking{1: confirmedBooking()}, newFakePaymentRepo())

	_, err := svc.Create(context.Background(), &models.CreatePaymentRequest{
		BookingID: 1, Amount: 3000, Method: "crypto",
	})
	require.ErrorIs(t, err, ErrInvalidMethod)
}

func TestUpdateStatus_CompletedSyncsBookingToCompleted(t *testing.T) {
	pr := newFakePaymentRepo(&domain.Payment{ID: 101, BookingID: 1, Amount: 3000, Status: domain.PaymentPending})
	svc, br, sr, notifier := newFixture(map[int64]*domain.Booking{1: confirmedBooking()}, pr)

	resp, err := svc.UpdateStatus(context.Background(), 101, &models.UpdateStatusRequest{Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)
	require.NotNil(t, resp.PaidAt)
	assert.Equal(t, testNow, *resp.PaidAt)

	assert.Equal(t, domain.StatusCompleted, br.bookings[1].Status)
	assert.Empty(t, sr.released)

	require.Len(t, notifier.sent, 1)
	assert.Contains(t, notifier.sent[0], "успешно")
}

func TestUpdateStatus_FailedCancelsBookingAndReleasesSchedule(t *testing.T) {
	pr := newFakePaymentRepo(&domain.Payment{ID: 101, BookingID: 1, Amount: 3000, Status: domain.PaymentPending})
	svc, br, sr, notifier := newFixture(map[int64]*domain.Booking{1: confirmedBooking()}, pr)

	resp, err := svc.UpdateStatus(context.Background(), 101, &models.UpdateStatusRequest{Status: "failed"})
	require.NoError(t, err)
	assert.Equal(t, "failed", resp.Status)
	assert.Nil(t, resp.PaidAt)

	assert.Equal(t, domain.StatusCancelled, br.bookings[1].Status)
	assert.Equal(t, []int64{40}, sr.released)

	require.Len(t, notifier.sent, 1)
	assert.Contains(t, notifier.sent[0], "отменена")
}

func TestUpdateStatus_ReconciliationIsIdempotent(t *testing.T) {
	pr := newFakePaymentRepo(&domain.Payment{ID: 101, BookingID: 1, Amount: 3000, Status: domain.PaymentPending})
	svc, br, sr, _ := newFixture(map[int64]*domain.Booking{1: confirmedBooking()}, pr)

	_, err := svc.UpdateStatus(context.Background(), 101, &models.UpdateStatusRequest{Status: "failed"})
	require.NoError(t, err)
	updatesAfterFirst := br.statusUpdates

	// Повторный перевод в failed не трогает бронирование и не освобождает слот второй раз
	_, err = svc.UpdateStatus(context.Background(), 101, &models.UpdateStatusRequest{Status: "failed"})
	require.NoError(t, err)
	assert.Equal(t, updatesAfterFirst, br.statusUpdates)
	assert.Equal(t, []int64{40}, sr.released)
}

func TestUpdateStatus_CompletedKeepsExistingPaidAt(t *testing.T) {
	earlier := testNow.Add(-time.Hour)
	pr := newFakePaymentRepo(&domain.Payment{
		ID: 101, BookingID: 1, Amount: 3000, Status: domain.PaymentPending, PaidAt: &earlier,
	})
	svc, _, _, _ := newFixture(map[int64]*domain.Booking{1: confirmedBooking()}, pr)

	resp, err := svc.UpdateStatus(context.Background(), 101, &models.UpdateStatusRequest{Status: "completed"})
	require.NoError(t, err)
	require.NotNil(t, resp.PaidAt)
	assert.Equal(t, earlier, *resp.PaidAt)
}

func TestUpdateStatus_PaymentNotFound(t *testing.T) {
	svc, _, _, _ := newFixture(map[int64]*domain.Booking{}, newFakePaymentRepo())

	_, err := svc.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{Status: "completed"})
	require.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestUpdateStatus_UnknownStatusRejected(t *testing.T) {
	pr := newFakePaymentRepo(&domain.Payment{ID: 101, BookingID: 1, Status: domain.PaymentPending})
	svc, _, _, _ := newFixture(map[int64]*domain.Booking{1: confirmedBooking()}, pr)

	_, err := svc.UpdateStatus(context.Background(), 101, &models.UpdateStatusRequest{Status: "refunded"})
	require.ErrorIs(t, err, ErrInvalidStatus)
}

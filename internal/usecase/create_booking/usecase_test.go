package create_booking

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicbook/booking-service/internal/domain"
	bookingRepo "github.com/clinicbook/booking-service/internal/infra/storage/booking"
	catalogRepo "github.com/clinicbook/booking-service/internal/infra/storage/catalog"
	scheduleRepo "github.com/clinicbook/booking-service/internal/infra/storage/schedule"
	"github.com/clinicbook/booking-service/internal/integrations/profiles"
	"github.com/clinicbook/booking-service/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeScheduleStore CAS-хранилище слотов: Reserve атомарно переводит
// доступный слот в занятый, проигравший получает ошибку
type fakeScheduleStore struct {
	mu        sync.Mutex
	schedules map[int64]*domain.Schedule
}

func newFakeScheduleStore(ss ...*domain.Schedule) *fakeScheduleStore {
	store := &fakeScheduleStore{schedules: make(map[int64]*domain.Schedule)}
	for _, s := range ss {
		store.schedules[s.ID] = s
	}
	return store
}

func (r *fakeScheduleStore) GetByID(_ context.Context, id int64) (*domain.Schedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.schedules[id]
	if !ok {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeScheduleStore) Reserve(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.schedules[id]
	if !ok || !s.IsAvailable {
		return scheduleRepo.ErrScheduleNotAvailable
	}
	s.IsAvailable = false
	return nil
}

type fakeBookingStore struct {
	mu       sync.Mutex
	nextID   int64
	bookings []*domain.Booking
}

func (r *fakeBookingStore) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Частичный уникальный индекс: один активный booking на слот
	for _, existing := range r.bookings {
		if existing.ScheduleID == b.ScheduleID && existing.IsActive() {
			return nil, bookingRepo.ErrScheduleTaken
		}
	}

	r.nextID++
	b.ID = r.nextID
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	r.bookings = append(r.bookings, b)
	return b, nil
}

type fakeCatalog struct {
	services map[int64]*domain.Service
}

func (r *fakeCatalog) GetServiceByID(_ context.Context, id int64) (*domain.Service, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return s, nil
}

type fakeProfiles struct{}

func (fakeProfiles) GetDoctor(_ context.Context, doctorID int64) (*profiles.Doctor, error) {
	if doctorID == 404 {
		return nil, profiles.ErrDoctorNotFound
	}
	return &profiles.Doctor{ID: doctorID, UserID: 1000 + doctorID, FullName: "Иванов Иван Иванович"}, nil
}

func (fakeProfiles) GetPatient(_ context.Context, patientID int64) (*profiles.Patient, error) {
	if patientID == 404 {
		return nil, profiles.ErrPatientNotFound
	}
	return &profiles.Patient{ID: patientID, UserID: 2000 + patientID, FullName: "Петров Пётр"}, nil
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeNotifier) Notify(_ context.Context, _ int64, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, message)
	return nil
}

func mustTime(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func testSchedule(t *testing.T) *domain.Schedule {
	t.Helper()
	return &domain.Schedule{
		ID:          40,
		DoctorID:    20,
		Date:        time.Now().AddDate(0, 0, 7),
		StartTime:   mustTime(t, "10:00"),
		EndTime:     mustTime(t, "10:30"),
		IsAvailable: true,
	}
}

func testCatalog() *fakeCatalog {
	return &fakeCatalog{services: map[int64]*domain.Service{
		30: {ID: 30, Title: "Первичный приём терапевта", Price: 2000, DurationMinutes: 30, Status: domain.ServiceActive},
		31: {ID: 31, Title: "Устаревшая услуга", Price: 500, DurationMinutes: 10, Status: domain.ServiceInactive},
	}}
}

func newFixture(t *testing.T) (*UseCase, *fakeBookingStore, *fakeScheduleStore, *fakeNotifier) {
	t.Helper()
	bookings := &fakeBookingStore{}
	schedules := newFakeScheduleStore(testSchedule(t))
	notifier := &fakeNotifier{}
	uc := NewUseCase(bookings, schedules, testCatalog(), fakeProfiles{}, notifier, fakeTxManager{}, nopLogger{})
	return uc, bookings, schedules, notifier
}

func validRequest() *Request {
	return &Request{PatientID: 10, DoctorID: 20, ServiceID: 30, ScheduleID: 40}
}

func TestExecute_Success(t *testing.T) {
	uc, bookings, schedules, notifier := newFixture(t)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "Первичный приём терапевта", resp.ServiceTitle)
	assert.Equal(t, 2000.0, resp.ServicePrice)
	assert.Equal(t, "10:00", resp.StartTime)

	// Слот занят, бронирование записано
	s, err := schedules.GetByID(context.Background(), 40)
	require.NoError(t, err)
	assert.False(t, s.IsAvailable)
	require.Len(t, bookings.bookings, 1)

	// Врач получил уведомление о новой записи
	require.Len(t, notifier.sent, 1)
	assert.Contains(t, notifier.sent[0], "Новая запись")
}

func TestExecute_SlotAlreadyTaken(t *testing.T) {
	uc, _, _, _ := newFixture(t)

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_ConcurrentRequestsOneWinner(t *testing.T) {
	uc, bookings, _, _ := newFixture(t)

	const attempts = 32

	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), &Request{
				PatientID: int64(100 + i), DoctorID: 20, ServiceID: 30, ScheduleID: 40,
			})
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			require.ErrorIs(t, err, ErrSlotUnavailable)
		}
	}

	assert.Equal(t, 1, winners)
	assert.Len(t, bookings.bookings, 1)
}

func TestExecute_InactiveServiceRejected(t *testing.T) {
	uc, _, _, _ := newFixture(t)

	req := validRequest()
	req.ServiceID = 31
	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	uc, _, _, _ := newFixture(t)

	req := validRequest()
	req.ServiceID = 999
	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_ScheduleNotFound(t *testing.T) {
	uc, _, _, _ := newFixture(t)

	req := validRequest()
	req.ScheduleID = 999
	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestExecute_ScheduleBelongsToAnotherDoctor(t *testing.T) {
	uc, _, _, _ := newFixture(t)

	req := validRequest()
	req.DoctorID = 21
	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrScheduleMismatch)
}

func TestExecute_DoctorNotFound(t *testing.T) {
	uc, _, _, _ := newFixture(t)

	req := validRequest()
	req.DoctorID = 404
	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestExecute_PatientNotFound(t *testing.T) {
	uc, _, _, _ := newFixture(t)

	req := validRequest()
	req.PatientID = 404
	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrPatientNotFound)
}

func TestExecute_DateInPast(t *testing.T) {
	bookings := &fakeBookingStore{}
	past := testSchedule(t)
	past.Date = time.Now().AddDate(0, 0, -1)
	schedules := newFakeScheduleStore(past)
	uc := NewUseCase(bookings, schedules, testCatalog(), fakeProfiles{}, &fakeNotifier{}, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrDateInPast)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc, _, _, _ := newFixture(t)

	_, err := uc.Execute(context.Background(), &Request{PatientID: 0, DoctorID: 20, ServiceID: 30, ScheduleID: 40})
	require.ErrorIs(t, err, ErrInvalidInput)
}

// Менеджер транзакций, у которого конфликт сериализации пережил все
// повторы: наружу выходит цепочка обёрток репозитория и use case
// вокруг ошибки драйвера
type conflictTxManager struct{}

func (conflictTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	repoErr := fmt.Errorf("%w: GetByID - scan schedule: %w", scheduleRepo.ErrScanRow, &pq.Error{Code: "40001"})
	return fmt.Errorf("%w: failed to get schedule: %w", ErrInternal, repoErr)
}

func TestExecute_SerializationConflictMapsToSlotUnavailable(t *testing.T) {
	bookings := &fakeBookingStore{}
	schedules := newFakeScheduleStore(testSchedule(t))
	uc := NewUseCase(bookings, schedules, testCatalog(), fakeProfiles{}, &fakeNotifier{}, conflictTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSlotUnavailable)
}

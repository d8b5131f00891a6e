package schedules

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicbook/booking-service/internal/domain"
	scheduleRepo "github.com/clinicbook/booking-service/internal/infra/storage/schedule"
	"github.com/clinicbook/booking-service/internal/service/schedules/models"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

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

type fakeScheduleRepo struct {
	schedules map[int64]*domain.Schedule
	nextID    int64
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{schedules: make(map[int64]*domain.Schedule), nextID: 1}
}

func (r *fakeScheduleRepo) Create(_ context.Context, s *domain.Schedule) (*domain.Schedule, error) {
	created := *s
	created.ID = r.nextID
	r.nextID++
	r.schedules[created.ID] = &created
	return &created, nil
}

func (r *fakeScheduleRepo) GetByID(_ context.Context, id int64) (*domain.Schedule, error) {
	s, ok := r.schedules[id]
	if !ok {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *fakeScheduleRepo) GetByDoctor(_ context.Context, filter domain.ScheduleFilter) ([]*domain.Schedule, error) {
	var out []*domain.Schedule
	for _, s := range r.schedules {
		if s.DoctorID != filter.DoctorID {
			continue
		}
		if filter.OnlyAvailable && !s.IsAvailable {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeScheduleRepo) Update(_ context.Context, s *domain.Schedule) error {
	if _, ok := r.schedules[s.ID]; !ok {
		return scheduleRepo.ErrScheduleNotFound
	}
	copied := *s
	r.schedules[s.ID] = &copied
	return nil
}

func (r *fakeScheduleRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.schedules[id]; !ok {
		return scheduleRepo.ErrScheduleNotFound
	}
	delete(r.schedules, id)
	return nil
}

type fakeBookingRepo struct {
	activeSchedules map[int64]bool
}

func (r *fakeBookingRepo) HasActiveBySchedule(_ context.Context, scheduleID int64) (bool, error) {
	return r.activeSchedules[scheduleID], nil
}

func newService(schedules *fakeScheduleRepo, bookings *fakeBookingRepo) *Service {
	if bookings == nil {
		bookings = &fakeBookingRepo{activeSchedules: map[int64]bool{}}
	}
	return NewService(schedules, bookings, fakeTxManager{}, nopLogger{})
}

func TestCreate_Success(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := newService(repo, nil)

	resp, err := svc.Create(context.Background(), &models.CreateScheduleRequest{
		DoctorID:  7,
		Date:      "2026-09-15",
		StartTime: "10:00",
		EndTime:   "10:30",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.DoctorID)
	assert.Equal(t, "2026-09-15", resp.Date)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.True(t, resp.IsAvailable)
}

func TestCreate_InvalidWindow(t *testing.T) {
	svc := newService(newFakeScheduleRepo(), nil)

	_, err := svc.Create(context.Background(), &models.CreateScheduleRequest{
		DoctorID:  7,
		Date:      "2026-09-15",
		StartTime: "11:00",
		EndTime:   "10:00",
	})
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestCreate_UnparsableInput(t *testing.T) {
	svc := newService(newFakeScheduleRepo(), nil)

	_, err := svc.Create(context.Background(), &models.CreateScheduleRequest{
		DoctorID:  7,
		Date:      "15.09.2026",
		StartTime: "10:00",
		EndTime:   "10:30",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), &models.CreateScheduleRequest{
		DoctorID:  7,
		Date:      "2026-09-15",
		StartTime: "25:00",
		EndTime:   "10:30",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newService(newFakeScheduleRepo(), nil)

	_, err := svc.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestGetByDoctor_OnlyAvailable(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := newService(repo, nil)

	day, _ := time.Parse(domain.DateFormat, "2026-09-15")
	repo.schedules[1] = &domain.Schedule{ID: 1, DoctorID: 7, Date: day, StartTime: "10:00", EndTime: "10:30", IsAvailable: true}
	repo.schedules[2] = &domain.Schedule{ID: 2, DoctorID: 7, Date: day, StartTime: "11:00", EndTime: "11:30", IsAvailable: false}

	resp, err := svc.GetByDoctor(context.Background(), &models.ListFilter{DoctorID: 7, OnlyAvailable: true})
	require.NoError(t, err)

	require.Equal(t, 1, resp.Total)
	assert.Equal(t, int64(1), resp.Schedules[0].ID)
}

func TestUpdate_Success(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := newService(repo, nil)

	day, _ := time.Parse(domain.DateFormat, "2026-09-15")
	repo.schedules[1] = &domain.Schedule{ID: 1, DoctorID: 7, Date: day, StartTime: "10:00", EndTime: "10:30", IsAvailable: true}

	resp, err := svc.Update(context.Background(), 1, &models.UpdateScheduleRequest{
		Date:      "2026-09-16",
		StartTime: "12:00",
		EndTime:   "12:30",
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-09-16", resp.Date)
	assert.Equal(t, "12:00", resp.StartTime)
}

func TestUpdate_BlockedByActiveBooking(t *testing.T) {
	repo := newFakeScheduleRepo()
	bookings := &fakeBookingRepo{activeSchedules: map[int64]bool{1: true}}
	svc := newService(repo, bookings)

	day, _ := time.Parse(domain.DateFormat, "2026-09-15")
	repo.schedules[1] = &domain.Schedule{ID: 1, DoctorID: 7, Date: day, StartTime: "10:00", EndTime: "10:30"}

	_, err := svc.Update(context.Background(), 1, &models.UpdateScheduleRequest{
		Date:      "2026-09-16",
		StartTime: "12:00",
		EndTime:   "12:30",
	})
	assert.ErrorIs(t, err, ErrScheduleInUse)
}

func TestDelete_Success(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := newService(repo, nil)

	day, _ := time.Parse(domain.DateFormat, "2026-09-15")
	repo.schedules[1] = &domain.Schedule{ID: 1, DoctorID: 7, Date: day, StartTime: "10:00", EndTime: "10:30"}

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.Empty(t, repo.schedules)
}

func TestDelete_BlockedByActiveBooking(t *testing.T) {
	repo := newFakeScheduleRepo()
	bookings := &fakeBookingRepo{activeSchedules: map[int64]bool{1: true}}
	svc := newService(repo, bookings)

	day, _ := time.Parse(domain.DateFormat, "2026-09-15")
	repo.schedules[1] = &domain.Schedule{ID: 1, DoctorID: 7, Date: day, StartTime: "10:00", EndTime: "10:30"}

	err := svc.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, ErrScheduleInUse)
	assert.Len(t, repo.schedules, 1)
}

func TestDelete_NotFound(t *testing.T) {
	svc := newService(newFakeScheduleRepo(), nil)

	err := svc.Delete(context.Background(), 404)
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

package domain

import (
	"time"

	"github.com/clinicbook/booking-service/pkg/types"
)

// Schedule represents a doctor's bookable time window with an availability flag
type Schedule struct {
	ID          int64
	DoctorID    int64
	Date        time.Time // calendar date, time part is zero
	StartTime   types.TimeString
	EndTime     types.TimeString
	IsAvailable bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsValidWindow returns true if the time window is well-formed (start < end)
func (s *Schedule) IsValidWindow() bool {
	return !s.StartTime.IsZero() && !s.EndTime.IsZero() && s.StartTime.IsBefore(s.EndTime)
}

// ScheduleFilter filter for querying a doctor's schedules
type ScheduleFilter struct {
	DoctorID      int64
	FromDate      *time.Time
	ToDate        *time.Time
	OnlyAvailable bool
}

package domain

import "time"

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a patient's reservation of a schedule slot for a service
type Booking struct {
	ID         int64
	PatientID  int64
	DoctorID   int64
	ServiceID  int64
	ScheduleID int64
	Status     BookingStatus

	// Denormalized service data for history and payment amount
	ServiceTitle string
	ServicePrice float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal returns true if no further transition is defined out of the status
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// IsActive returns true if the booking still holds its schedule slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// CanTransitionTo reports whether the forward state machine permits moving
// from the current status to target:
// pending -> confirmed -> completed, pending|confirmed -> cancelled
func (b *Booking) CanTransitionTo(target BookingStatus) bool {
	if b.Status == target {
		// Re-applying the current status is permitted, effects are idempotent
		return true
	}

	switch b.Status {
	case StatusPending:
		return target == StatusConfirmed || target == StatusCancelled
	case StatusConfirmed:
		return target == StatusCompleted || target == StatusCancelled
	default:
		return false
	}
}

// ParseBookingStatus validates and converts a raw status string
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return BookingStatus(s), true
	default:
		return "", false
	}
}

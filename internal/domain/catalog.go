package domain

import "time"

// ServiceStatus represents availability of a catalog service
type ServiceStatus string

const (
	ServiceActive   ServiceStatus = "active"
	ServiceInactive ServiceStatus = "inactive"
)

// Service is a priced medical offering from the catalog
type Service struct {
	ID              int64
	Title           string
	Description     string
	Price           float64
	DurationMinutes int
	Status          ServiceStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the service can be booked
func (s *Service) IsActive() bool {
	return s.Status == ServiceActive
}

// Specialty is reference data grouping doctors by medical field
type Specialty struct {
	ID          int64
	Name        string
	Description *string

	CreatedAt time.Time
}

package models

import (
	"time"

	"github.com/clinicbook/booking-service/internal/domain"
)

// UpdateStatusRequest запрос на смену статуса бронирования
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// BookingResponse бронирование в ответе сервиса
type BookingResponse struct {
	ID           int64     `json:"id"`
	PatientID    int64     `json:"patient_id"`
	DoctorID     int64     `json:"doctor_id"`
	ServiceID    int64     `json:"service_id"`
	ScheduleID   int64     `json:"schedule_id"`
	Status       string    `json:"status"`
	ServiceTitle string    `json:"service_title"`
	ServicePrice float64   `json:"service_price"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
	Total    int                `json:"total"`
}

// FromDomainBooking конвертирует доменную модель в ответ сервиса
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:           b.ID,
		PatientID:    b.PatientID,
		DoctorID:     b.DoctorID,
		ServiceID:    b.ServiceID,
		ScheduleID:   b.ScheduleID,
		Status:       string(b.Status),
		ServiceTitle: b.ServiceTitle,
		ServicePrice: b.ServicePrice,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

// FromDomainBookings конвертирует список доменных моделей в ответ сервиса
func FromDomainBookings(bs []*domain.Booking) *BookingListResponse {
	out := make([]*BookingResponse, 0, len(bs))
	for _, b := range bs {
		out = append(out, FromDomainBooking(b))
	}

	return &BookingListResponse{Bookings: out, Total: len(out)}
}

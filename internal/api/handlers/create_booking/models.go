package create_booking

import (
	"time"

	createBooking "github.com/clinicbook/booking-service/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	PatientID  int64 `json:"patientId"`
	DoctorID   int64 `json:"doctorId"`
	ServiceID  int64 `json:"serviceId"`
	ScheduleID int64 `json:"scheduleId"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID           int64   `json:"id"`
	PatientID    int64   `json:"patientId"`
	DoctorID     int64   `json:"doctorId"`
	ServiceID    int64   `json:"serviceId"`
	ScheduleID   int64   `json:"scheduleId"`
	Status       string  `json:"status"`
	ServiceTitle string  `json:"serviceTitle"`
	ServicePrice float64 `json:"servicePrice"`
	Date         string  `json:"date"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() *createBooking.Request {
	return &createBooking.Request{
		PatientID:  r.PatientID,
		DoctorID:   r.DoctorID,
		ServiceID:  r.ServiceID,
		ScheduleID: r.ScheduleID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:           resp.ID,
		PatientID:    resp.PatientID,
		DoctorID:     resp.DoctorID,
		ServiceID:    resp.ServiceID,
		ScheduleID:   resp.ScheduleID,
		Status:       resp.Status,
		ServiceTitle: resp.ServiceTitle,
		ServicePrice: resp.ServicePrice,
		Date:         resp.Date,
		StartTime:    resp.StartTime,
		EndTime:      resp.EndTime,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    resp.UpdatedAt.Format(time.RFC3339),
	}
}

package models

import (
	"time"

	"github.com/clinicbook/booking-service/internal/domain"
	"github.com/clinicbook/booking-service/pkg/types"
)

// CreateScheduleRequest запрос на создание слота расписания
type CreateScheduleRequest struct {
	DoctorID  int64  `json:"doctor_id"`
	Date      string `json:"date"`       // YYYY-MM-DD
	StartTime string `json:"start_time"` // HH:MM
	EndTime   string `json:"end_time"`   // HH:MM
}

// UpdateScheduleRequest запрос на изменение слота расписания
type UpdateScheduleRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// ListFilter параметры выборки расписаний врача
type ListFilter struct {
	DoctorID      int64
	FromDate      *time.Time
	ToDate        *time.Time
	OnlyAvailable bool
}

// ScheduleResponse слот расписания в ответе сервиса
type ScheduleResponse struct {
	ID          int64  `json:"id"`
	DoctorID    int64  `json:"doctor_id"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsAvailable bool   `json:"is_available"`
}

// ScheduleListResponse список слотов расписания
type ScheduleListResponse struct {
	Schedules []*ScheduleResponse `json:"schedules"`
	Total     int                 `json:"total"`
}

// FromDomainSchedule конвертирует доменную модель в ответ сервиса
func FromDomainSchedule(s *domain.Schedule) *ScheduleResponse {
	return &ScheduleResponse{
		ID:          s.ID,
		DoctorID:    s.DoctorID,
		Date:        s.Date.Format(domain.DateFormat),
		StartTime:   s.StartTime.String(),
		EndTime:     s.EndTime.String(),
		IsAvailable: s.IsAvailable,
	}
}

// FromDomainSchedules конвертирует список доменных моделей в ответ сервиса
func FromDomainSchedules(ss []*domain.Schedule) *ScheduleListResponse {
	out := make([]*ScheduleResponse, 0, len(ss))
	for _, s := range ss {
		out = append(out, FromDomainSchedule(s))
	}

	return &ScheduleListResponse{Schedules: out, Total: len(out)}
}

// ParseWindow разбирает дату и границы окна из строкового представления
func ParseWindow(date, start, end string) (time.Time, types.TimeString, types.TimeString, error) {
	day, err := time.Parse(domain.DateFormat, date)
	if err != nil {
		return time.Time{}, "", "", err
	}

	startTS, err := types.NewTimeStringFromString(start)
	if err != nil {
		return time.Time{}, "", "", err
	}

	endTS, err := types.NewTimeStringFromString(end)
	if err != nil {
		return time.Time{}, "", "", err
	}

	return day, startTS, endTS, nil
}

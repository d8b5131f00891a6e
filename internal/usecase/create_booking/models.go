package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	PatientID  int64 // ID пациента
	DoctorID   int64 // ID врача
	ServiceID  int64 // ID услуги каталога
	ScheduleID int64 // ID слота расписания
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         int64  // ID созданного бронирования
	PatientID  int64  // ID пациента
	DoctorID   int64  // ID врача
	ServiceID  int64  // ID услуги
	ScheduleID int64  // ID слота расписания
	Status     string // Статус бронирования

	// Денормализованные данные услуги
	ServiceTitle string  // Название услуги
	ServicePrice float64 // Цена услуги на момент записи

	// Данные слота для ответа клиенту
	Date      string // Дата приёма (YYYY-MM-DD)
	StartTime string // Время начала (HH:MM)
	EndTime   string // Время окончания (HH:MM)

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}

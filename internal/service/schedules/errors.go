package schedules

import "errors"

var (
	// ErrScheduleNotFound расписание не найдено
	ErrScheduleNotFound = errors.New("schedules: schedule not found")
	// ErrScheduleInUse на расписание ссылается активное бронирование
	ErrScheduleInUse = errors.New("schedules: schedule has active bookings")
	// ErrInvalidWindow некорректное временное окно (start >= end)
	ErrInvalidWindow = errors.New("schedules: invalid time window")
	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("schedules: invalid input")
	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("schedules: internal error")
)

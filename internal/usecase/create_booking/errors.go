package create_booking

import "errors"

var (
	// ErrDoctorNotFound возвращается, когда врач не найден
	ErrDoctorNotFound = errors.New("create_booking: doctor not found")

	// ErrPatientNotFound возвращается, когда пациент не найден
	ErrPatientNotFound = errors.New("create_booking: patient not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	// или снята с оказания
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrScheduleNotFound возвращается, когда слот расписания не найден
	ErrScheduleNotFound = errors.New("create_booking: schedule not found")

	// ErrScheduleMismatch возвращается, когда слот принадлежит другому врачу
	ErrScheduleMismatch = errors.New("create_booking: schedule belongs to another doctor")

	// ErrSlotUnavailable возвращается, когда слот уже занят -
	// в том числе проигравшему гонку за слот
	ErrSlotUnavailable = errors.New("create_booking: slot is not available")

	// ErrDateInPast возвращается при попытке записаться на прошедшую дату
	ErrDateInPast = errors.New("create_booking: schedule date is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

package profiles

import "errors"

var (
	// ErrDoctorNotFound возвращается, когда профиль врача не найден
	ErrDoctorNotFound = errors.New("profiles client: doctor not found")

	// ErrPatientNotFound возвращается, когда профиль пациента не найден
	ErrPatientNotFound = errors.New("profiles client: patient not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("profiles client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("profiles client: invalid response")
)

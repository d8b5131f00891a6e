package catalog

import "errors"

var (
	// ErrServiceNotFound услуга не найдена
	ErrServiceNotFound = errors.New("catalog: service not found")
	// ErrSpecialtyNotFound специальность не найдена
	ErrSpecialtyNotFound = errors.New("catalog: specialty not found")
	// ErrDuplicateTitle услуга с таким названием уже существует
	ErrDuplicateTitle = errors.New("catalog: service title already exists")
	// ErrServiceInUse на услугу ссылается активное бронирование
	ErrServiceInUse = errors.New("catalog: service has active bookings")
	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("catalog: invalid input")
	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("catalog: internal error")
)

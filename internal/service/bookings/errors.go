package bookings

import "errors"

var (
	// ErrBookingNotFound бронирование не найдено
	ErrBookingNotFound = errors.New("bookings: booking not found")
	// ErrInvalidStatus передан неизвестный статус бронирования
	ErrInvalidStatus = errors.New("bookings: invalid booking status")
	// ErrInvalidTransition переход запрещён политикой строгих переходов
	ErrInvalidTransition = errors.New("bookings: invalid status transition")
	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("bookings: invalid input")
	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("bookings: internal error")
)

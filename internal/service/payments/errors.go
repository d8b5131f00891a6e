package payments

import "errors"

var (
	// ErrPaymentNotFound платёж не найден
	ErrPaymentNotFound = errors.New("payments: payment not found")
	// ErrPaymentExists для бронирования уже существует платёж
	ErrPaymentExists = errors.New("payments: payment for booking already exists")
	// ErrBookingNotFound бронирование для платежа не найдено
	ErrBookingNotFound = errors.New("payments: booking not found")
	// ErrInvalidStatus передан неизвестный статус платежа
	ErrInvalidStatus = errors.New("payments: invalid payment status")
	// ErrInvalidMethod передан неизвестный способ оплаты
	ErrInvalidMethod = errors.New("payments: invalid payment method")
	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("payments: invalid input")
	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("payments: internal error")
)

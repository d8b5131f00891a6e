package feedback

import "errors"

var (
	// ErrFeedbackNotFound отзыв не найден
	ErrFeedbackNotFound = errors.New("feedback: feedback not found")
	// ErrFeedbackNotAllowed у пациента нет завершённого приёма у врача
	ErrFeedbackNotAllowed = errors.New("feedback: no completed booking with this doctor")
	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("feedback: invalid input")
	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("feedback: internal error")
)

package models

import (
	"time"

	"github.com/clinicbook/booking-service/internal/domain"
)

// CreatePaymentRequest запрос на создание платежа (административный путь)
type CreatePaymentRequest struct {
	BookingID int64   `json:"booking_id"`
	Amount    float64 `json:"amount"`
	Method    string  `json:"method"`
}

// UpdateStatusRequest запрос на смену статуса платежа
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// PaymentResponse платёж в ответе сервиса
type PaymentResponse struct {
	ID        int64      `json:"id"`
	BookingID int64      `json:"booking_id"`
	Amount    float64    `json:"amount"`
	Method    string     `json:"method"`
	Status    string     `json:"status"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// PaymentListResponse список платежей
type PaymentListResponse struct {
	Payments []*PaymentResponse `json:"payments"`
	Total    int                `json:"total"`
}

// FromDomainPayment конвертирует доменную модель в ответ сервиса
func FromDomainPayment(p *domain.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:        p.ID,
		BookingID: p.BookingID,
		Amount:    p.Amount,
		Method:    string(p.Method),
		Status:    string(p.Status),
		PaidAt:    p.PaidAt,
		CreatedAt: p.CreatedAt,
	}
}

// FromDomainPayments конвертирует список доменных моделей в ответ сервиса
func FromDomainPayments(ps []*domain.Payment) *PaymentListResponse {
	out := make([]*PaymentResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, FromDomainPayment(p))
	}

	return &PaymentListResponse{Payments: out, Total: len(out)}
}

package domain

import "time"

// PaymentStatus represents the settlement status of a payment
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// PaymentMethod represents how a payment is made
type PaymentMethod string

const (
	MethodCash       PaymentMethod = "cash"
	MethodCreditCard PaymentMethod = "credit_card"
	MethodInsurance  PaymentMethod = "insurance"
	MethodOnline     PaymentMethod = "online"
)

// Payment is the money record for a booking, at most one per booking
type Payment struct {
	ID        int64
	BookingID int64
	Amount    float64
	Method    PaymentMethod
	Status    PaymentStatus
	PaidAt    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsSettled returns true if the payment reached a terminal status
func (p *Payment) IsSettled() bool {
	return p.Status == PaymentCompleted || p.Status == PaymentFailed
}

// ParsePaymentStatus validates and converts a raw status string
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentCompleted, PaymentFailed:
		return PaymentStatus(s), true
	default:
		return "", false
	}
}

// ParsePaymentMethod validates and converts a raw method string
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch PaymentMethod(s) {
	case MethodCash, MethodCreditCard, MethodInsurance, MethodOnline:
		return PaymentMethod(s), true
	default:
		return "", false
	}
}

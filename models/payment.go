package models

import "time"

// PaymentMethod enumerates how a customer settles a completed reservation.
type PaymentMethod string

const (
	MethodCreditCard PaymentMethod = "CREDIT_CARD"
	MethodDebitCard  PaymentMethod = "DEBIT_CARD"
	MethodYape       PaymentMethod = "YAPE"
	MethodPlin       PaymentMethod = "PLIN"
	MethodCash       PaymentMethod = "CASH"
)

// PaymentMethods lists the methods offered at checkout, in display order.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{MethodCash, MethodCreditCard, MethodDebitCard, MethodYape, MethodPlin}
}

// PaymentStatus is the settlement state owned by the backend.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
	PaymentFailed    PaymentStatus = "FAILED"
)

// Payment records one settlement attempt for a completed reservation.
type Payment struct {
	ID            int64         `json:"id"`
	Reservation   *Reservation  `json:"reservation,omitempty"`
	Amount        float64       `json:"amount"`
	Method        PaymentMethod `json:"method"`
	Status        PaymentStatus `json:"status"`
	TransactionID string        `json:"transactionId,omitempty"`
	PaidAt        *time.Time    `json:"paidAt,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// CreatePaymentRequest is the payment submission body.
type CreatePaymentRequest struct {
	ReservationID int64         `json:"reservationId"`
	Amount        float64       `json:"amount"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
}

package entity

import "time"

// PaymentStatus is the state of a payment transaction.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

// PaymentTransaction records the money movement for one purchase.
// Stripe identifiers are recorded as opaque references; the gateway
// integration itself lives outside this service.
type PaymentTransaction struct {
	ID                    int64
	TicketPurchaseID      int64
	AmountCents           int64
	Currency              string
	PaymentMethod         string
	Status                PaymentStatus
	StripePaymentIntentID string
	StripeChargeID        string
	FailureReason         string
	TransactionDate       time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

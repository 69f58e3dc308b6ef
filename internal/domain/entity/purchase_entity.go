package entity

import "time"

// PurchaseStatus is the lifecycle state of a ticket purchase.
type PurchaseStatus string

const (
	PurchasePending   PurchaseStatus = "PENDING"
	PurchaseConfirmed PurchaseStatus = "CONFIRMED"
	PurchaseCancelled PurchaseStatus = "CANCELLED"
	PurchaseRefunded  PurchaseStatus = "REFUNDED"
)

// TicketPurchase is an order for one or more tickets of a single tier.
// UserID is zero for guest purchases. PurchaseCode is the unique,
// human-shareable reference printed on the ticket.
type TicketPurchase struct {
	ID               int64
	UserID           int64
	EventID          int64
	TicketTypeID     int64
	Quantity         int
	TotalAmountCents int64
	PurchaseCode     string
	QRCodeData       string
	Status           PurchaseStatus
	PurchaseDate     time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

package repository

import (
	"context"

	"github.com/BrianKimathi/event-booking-api/internal/domain/entity"
)

// PurchaseRepository persists ticket purchases and their payment
// transactions.
type PurchaseRepository interface {
	// Create inserts the purchase, its pending payment transaction and
	// the availability decrement in one transaction.
	Create(ctx context.Context, p *entity.TicketPurchase, pay *entity.PaymentTransaction) error

	GetByCode(ctx context.Context, code string) (*entity.TicketPurchase, error)
	ListByUser(ctx context.Context, userID int64) ([]entity.TicketPurchase, error)
	SetStatus(ctx context.Context, id int64, status entity.PurchaseStatus) error

	GetPayment(ctx context.Context, purchaseID int64) (*entity.PaymentTransaction, error)
	UpdatePayment(ctx context.Context, pay *entity.PaymentTransaction) error
}

package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/BrianKimathi/event-booking-api/internal/domain/entity"
	"github.com/BrianKimathi/event-booking-api/internal/domain/repository"
	"github.com/BrianKimathi/event-booking-api/pkg/helpers"
	"github.com/BrianKimathi/event-booking-api/pkg/mailer/templates"
)

var (
	ErrPurchaseNotFound = errors.New("purchase not found")

	// ErrEventNotOnSale means the event is not PUBLISHED.
	ErrEventNotOnSale = errors.New("event is not on sale")

	// ErrInsufficientTickets means the requested quantity exceeds the
	// remaining allocation for the tier or the event.
	ErrInsufficientTickets = errors.New("not enough tickets available")

	ErrTierNotOffered = errors.New("ticket type not offered for this event")

	ErrPaymentNotFound = errors.New("payment transaction not found")
)

// PurchaseInput carries validated purchase request fields.
type PurchaseInput struct {
	EventID      int64
	TicketTypeID int64
	Quantity     int
}

// RecordPaymentInput carries the gateway outcome reported for a
// purchase. The gateway references are stored as-is.
type RecordPaymentInput struct {
	Status                entity.PaymentStatus
	StripePaymentIntentID string
	StripeChargeID        string
	FailureReason         string
}

// PurchaseService implements ticket ordering and payment recording.
type PurchaseService struct {
	purchases     repository.PurchaseRepository
	events        repository.EventRepository
	tickets       repository.TicketTypeRepository
	users         repository.UserRepository
	notifications *NotificationService
	currency      string
	log           *logrus.Logger
}

func NewPurchaseService(
	purchases repository.PurchaseRepository,
	events repository.EventRepository,
	tickets repository.TicketTypeRepository,
	users repository.UserRepository,
	notifications *NotificationService,
	currency string,
	log *logrus.Logger,
) *PurchaseService {
	return &PurchaseService{
		purchases:     purchases,
		events:        events,
		tickets:       tickets,
		users:         users,
		notifications: notifications,
		currency:      currency,
		log:           log,
	}
}

// Purchase creates a PENDING purchase with its pending payment
// transaction and decrements availability, all in one repository
// transaction. The price comes from the event's tier attachment, never
// from the request.
func (s *PurchaseService) Purchase(ctx context.Context, userID int64, in PurchaseInput) (*entity.TicketPurchase, error) {
	e, err := s.events.GetByID(ctx, in.EventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if e.Status != entity.EventPublished {
		return nil, ErrEventNotOnSale
	}

	ett, err := s.tickets.GetEventTicketType(ctx, in.EventID, in.TicketTypeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTierNotOffered
		}
		return nil, err
	}
	if in.Quantity > ett.AvailableQuantity || in.Quantity > e.AvailableTickets {
		return nil, ErrInsufficientTickets
	}

	total := ett.PriceCents * int64(in.Quantity)
	code := helpers.GenPurchaseCode()

	p := &entity.TicketPurchase{
		UserID:           userID,
		EventID:          in.EventID,
		TicketTypeID:     in.TicketTypeID,
		Quantity:         in.Quantity,
		TotalAmountCents: total,
		PurchaseCode:     code,
		QRCodeData:       qrPayload(code, in.EventID),
		Status:           entity.PurchasePending,
		PurchaseDate:     time.Now(),
	}
	pay := &entity.PaymentTransaction{
		AmountCents:     total,
		Currency:        s.currency,
		Status:          entity.PaymentPending,
		TransactionDate: time.Now(),
	}
	if err := s.purchases.Create(ctx, p, pay); err != nil {
		return nil, err
	}

	s.sendConfirmation(ctx, userID, p, e)
	return p, nil
}

// qrPayload is the string encoded into the ticket QR code. Gate
// scanners resolve it back to the purchase via the code.
func qrPayload(code string, eventID int64) string {
	return fmt.Sprintf("ticket:%s:event:%d", code, eventID)
}

func (s *PurchaseService) sendConfirmation(ctx context.Context, userID int64, p *entity.TicketPurchase, e *entity.Event) {
	if s.notifications == nil || userID == 0 {
		return
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		s.log.WithError(err).WithField("user_id", userID).Warn("failed to load buyer for confirmation email")
		return
	}
	tt, err := s.tickets.GetByID(ctx, p.TicketTypeID)
	tierName := ""
	if err == nil {
		tierName = tt.Name
	}
	if _, err := s.notifications.Enqueue(ctx, u.Email, templates.PurchaseConfirmation, map[string]any{
		"EventTitle":   e.Title,
		"TicketType":   tierName,
		"Quantity":     p.Quantity,
		"PurchaseCode": p.PurchaseCode,
		"Total":        formatMoney(p.TotalAmountCents, s.currency),
	}); err != nil {
		s.log.WithError(err).WithField("purchase_id", p.ID).Warn("failed to enqueue purchase confirmation email")
	}
}

func formatMoney(cents int64, currency string) string {
	return fmt.Sprintf("%s %d.%02d", currency, cents/100, cents%100)
}

// GetByCode resolves a purchase from its human-shareable code.
func (s *PurchaseService) GetByCode(ctx context.Context, code string) (*entity.TicketPurchase, error) {
	p, err := s.purchases.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPurchaseNotFound
		}
		return nil, err
	}
	return p, nil
}

// ListMine returns the caller's purchases, newest first.
func (s *PurchaseService) ListMine(ctx context.Context, userID int64) ([]entity.TicketPurchase, error) {
	return s.purchases.ListByUser(ctx, userID)
}

// RecordPayment stores the gateway outcome for a purchase and moves
// the purchase to CONFIRMED on a completed payment, CANCELLED on a
// failed one. The gateway interaction itself happens elsewhere; this
// is a plain pass-through of its result.
func (s *PurchaseService) RecordPayment(ctx context.Context, code string, in RecordPaymentInput) (*entity.PaymentTransaction, error) {
	p, err := s.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	pay, err := s.purchases.GetPayment(ctx, p.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	pay.Status = in.Status
	pay.StripePaymentIntentID = in.StripePaymentIntentID
	pay.StripeChargeID = in.StripeChargeID
	pay.FailureReason = in.FailureReason
	pay.TransactionDate = time.Now()
	if err := s.purchases.UpdatePayment(ctx, pay); err != nil {
		return nil, err
	}

	switch in.Status {
	case entity.PaymentCompleted:
		if err := s.purchases.SetStatus(ctx, p.ID, entity.PurchaseConfirmed); err != nil {
			return nil, err
		}
	case entity.PaymentFailed:
		if err := s.purchases.SetStatus(ctx, p.ID, entity.PurchaseCancelled); err != nil {
			return nil, err
		}
	case entity.PaymentRefunded:
		if err := s.purchases.SetStatus(ctx, p.ID, entity.PurchaseRefunded); err != nil {
			return nil, err
		}
	}
	return pay, nil
}

package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BrianKimathi/event-booking-api/internal/domain/entity"
	"github.com/BrianKimathi/event-booking-api/internal/domain/repository"
)

type PurchaseRepository struct {
	pool *pgxpool.Pool
}

func NewPurchaseRepository(pool *pgxpool.Pool) *PurchaseRepository {
	return &PurchaseRepository{pool: pool}
}

const purchaseColumns = `id, user_id, event_id, ticket_type_id, quantity, total_amount_cents,
		purchase_code, qr_code_data, status, purchase_date, created_at, updated_at`

func scanPurchase(row pgx.Row, p *entity.TicketPurchase) error {
	var userID *int64
	if err := row.Scan(&p.ID, &userID, &p.EventID, &p.TicketTypeID, &p.Quantity, &p.TotalAmountCents,
		&p.PurchaseCode, &p.QRCodeData, &p.Status, &p.PurchaseDate, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return err
	}
	if userID != nil {
		p.UserID = *userID
	}
	return nil
}

// Create writes the purchase, its pending payment transaction and the
// availability decrement in one transaction. Availability can go
// negative only if callers skip the pre-check; no reservation logic
// lives here.
func (r *PurchaseRepository) Create(ctx context.Context, p *entity.TicketPurchase, pay *entity.PaymentTransaction) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var userID *int64
	if p.UserID != 0 {
		userID = &p.UserID
	}
	row := tx.QueryRow(ctx, `
		INSERT INTO ticket_purchases (user_id, event_id, ticket_type_id, quantity,
			total_amount_cents, purchase_code, qr_code_data, status, purchase_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, userID, p.EventID, p.TicketTypeID, p.Quantity,
		p.TotalAmountCents, p.PurchaseCode, p.QRCodeData, p.Status, p.PurchaseDate)
	if err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return err
	}

	pay.TicketPurchaseID = p.ID
	row = tx.QueryRow(ctx, `
		INSERT INTO payment_transactions (ticket_purchase_id, amount_cents, currency,
			payment_method, status, transaction_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, pay.TicketPurchaseID, pay.AmountCents, pay.Currency,
		pay.PaymentMethod, pay.Status, pay.TransactionDate)
	if err := row.Scan(&pay.ID, &pay.CreatedAt, &pay.UpdatedAt); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
		UPDATE event_ticket_types
		SET available_quantity = available_quantity - $1, updated_at = now()
		WHERE event_id = $2 AND ticket_type_id = $3
	`, p.Quantity, p.EventID, p.TicketTypeID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `
		UPDATE events
		SET available_tickets = available_tickets - $1, updated_at = now()
		WHERE id = $2
	`, p.Quantity, p.EventID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PurchaseRepository) GetByCode(ctx context.Context, code string) (*entity.TicketPurchase, error) {
	p := &entity.TicketPurchase{}
	row := r.pool.QueryRow(ctx, `SELECT `+purchaseColumns+` FROM ticket_purchases WHERE purchase_code = $1`, code)
	if err := scanPurchase(row, p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *PurchaseRepository) ListByUser(ctx context.Context, userID int64) ([]entity.TicketPurchase, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+purchaseColumns+` FROM ticket_purchases
		WHERE user_id = $1
		ORDER BY purchase_date DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.TicketPurchase
	for rows.Next() {
		var p entity.TicketPurchase
		if err := scanPurchase(rows, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PurchaseRepository) SetStatus(ctx context.Context, id int64, status entity.PurchaseStatus) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE ticket_purchases SET status = $1, updated_at = now() WHERE id = $2
	`, status, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PurchaseRepository) GetPayment(ctx context.Context, purchaseID int64) (*entity.PaymentTransaction, error) {
	pay := &entity.PaymentTransaction{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, ticket_purchase_id, amount_cents, currency, payment_method, status,
			stripe_payment_intent_id, stripe_charge_id, failure_reason, transaction_date,
			created_at, updated_at
		FROM payment_transactions
		WHERE ticket_purchase_id = $1
	`, purchaseID).Scan(&pay.ID, &pay.TicketPurchaseID, &pay.AmountCents, &pay.Currency,
		&pay.PaymentMethod, &pay.Status, &pay.StripePaymentIntentID, &pay.StripeChargeID,
		&pay.FailureReason, &pay.TransactionDate, &pay.CreatedAt, &pay.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return pay, nil
}

func (r *PurchaseRepository) UpdatePayment(ctx context.Context, pay *entity.PaymentTransaction) error {
	pay.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE payment_transactions
		SET payment_method = $1, status = $2, stripe_payment_intent_id = $3,
			stripe_charge_id = $4, failure_reason = $5, updated_at = $6
		WHERE id = $7
	`, pay.PaymentMethod, pay.Status, pay.StripePaymentIntentID,
		pay.StripeChargeID, pay.FailureReason, pay.UpdatedAt, pay.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.PurchaseRepository = (*PurchaseRepository)(nil)

package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BrianKimathi/event-booking-api/internal/domain/entity"
	"github.com/BrianKimathi/event-booking-api/internal/domain/repository"
)

type EmailRepository struct {
	pool *pgxpool.Pool
}

func NewEmailRepository(pool *pgxpool.Pool) *EmailRepository {
	return &EmailRepository{pool: pool}
}

func (r *EmailRepository) Create(ctx context.Context, n *entity.EmailNotification) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO email_notifications (recipient_email, subject, body, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, n.RecipientEmail, n.Subject, n.Body, n.Status)
	return row.Scan(&n.ID, &n.CreatedAt)
}

func (r *EmailRepository) MarkSent(ctx context.Context, id int64, at time.Time) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE email_notifications SET status = $1, sent_at = $2 WHERE id = $3
	`, entity.EmailSent, at, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *EmailRepository) MarkFailed(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE email_notifications SET status = $1 WHERE id = $2
	`, entity.EmailFailed, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *EmailRepository) ListByStatus(ctx context.Context, status entity.EmailNotificationStatus, limit int) ([]entity.EmailNotification, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, recipient_email, subject, body, status, sent_at, created_at
		FROM email_notifications
		WHERE status = $1
		ORDER BY created_at
		LIMIT $2
	`, status, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.EmailNotification
	for rows.Next() {
		var n entity.EmailNotification
		if err := rows.Scan(&n.ID, &n.RecipientEmail, &n.Subject, &n.Body, &n.Status, &n.SentAt, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

var _ repository.EmailRepository = (*EmailRepository)(nil)

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

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

const eventColumns = `id, title, description, venue, start_date, end_date, category,
		status, image_url, total_capacity, available_tickets, creator_id,
		created_at, updated_at`

func scanEvent(row pgx.Row, e *entity.Event) error {
	return row.Scan(&e.ID, &e.Title, &e.Description, &e.Venue, &e.StartDate, &e.EndDate, &e.Category,
		&e.Status, &e.ImageURL, &e.TotalCapacity, &e.AvailableTickets, &e.CreatorID,
		&e.CreatedAt, &e.UpdatedAt)
}

func (r *EventRepository) Create(ctx context.Context, e *entity.Event) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO events (title, description, venue, start_date, end_date, category,
			status, image_url, total_capacity, available_tickets, creator_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`, e.Title, e.Description, e.Venue, e.StartDate, e.EndDate, e.Category,
		e.Status, e.ImageURL, e.TotalCapacity, e.AvailableTickets, e.CreatorID)
	return row.Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (*entity.Event, error) {
	e := &entity.Event{}
	row := r.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	if err := scanEvent(row, e); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *EventRepository) ListByCreator(ctx context.Context, creatorID int64) ([]entity.Event, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+eventColumns+` FROM events
		WHERE creator_id = $1
		ORDER BY start_date DESC
	`, creatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

func (r *EventRepository) ListPublishedUpcoming(ctx context.Context, from time.Time) ([]entity.Event, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+eventColumns+` FROM events
		WHERE status = $1 AND start_date >= $2
		ORDER BY start_date ASC
	`, entity.EventPublished, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

func collectEvents(rows pgx.Rows) ([]entity.Event, error) {
	var out []entity.Event
	for rows.Next() {
		var e entity.Event
		if err := scanEvent(rows, &e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *EventRepository) Update(ctx context.Context, e *entity.Event) error {
	e.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE events
		SET title = $1, description = $2, venue = $3, start_date = $4, end_date = $5,
			category = $6, total_capacity = $7, available_tickets = $8, updated_at = $9
		WHERE id = $10
	`, e.Title, e.Description, e.Venue, e.StartDate, e.EndDate,
		e.Category, e.TotalCapacity, e.AvailableTickets, e.UpdatedAt, e.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *EventRepository) SetStatus(ctx context.Context, id int64, status entity.EventStatus) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE events SET status = $1, updated_at = now() WHERE id = $2
	`, status, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *EventRepository) SetImageURL(ctx context.Context, id int64, url string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE events SET image_url = $1, updated_at = now() WHERE id = $2
	`, url, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *EventRepository) CreateCommission(ctx context.Context, c *entity.Commission) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO commissions (event_id, commission_type, rate_basis_points, fixed_amount_cents)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, c.EventID, c.Type, c.RateBasisPoints, c.FixedAmountCents)
	return row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *EventRepository) GetCommission(ctx context.Context, eventID int64) (*entity.Commission, error) {
	c := &entity.Commission{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, event_id, commission_type, rate_basis_points, fixed_amount_cents, created_at, updated_at
		FROM commissions
		WHERE event_id = $1
	`, eventID).Scan(&c.ID, &c.EventID, &c.Type, &c.RateBasisPoints, &c.FixedAmountCents, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

var _ repository.EventRepository = (*EventRepository)(nil)

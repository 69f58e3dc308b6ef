package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BrianKimathi/event-booking-api/internal/domain/entity"
	"github.com/BrianKimathi/event-booking-api/internal/domain/repository"
)

type TicketTypeRepository struct {
	pool *pgxpool.Pool
}

func NewTicketTypeRepository(pool *pgxpool.Pool) *TicketTypeRepository {
	return &TicketTypeRepository{pool: pool}
}

func (r *TicketTypeRepository) Create(ctx context.Context, t *entity.TicketType) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO ticket_types (name, description, price_cents, capacity)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, t.Name, t.Description, t.PriceCents, t.Capacity)
	return row.Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *TicketTypeRepository) GetByID(ctx context.Context, id int64) (*entity.TicketType, error) {
	t := &entity.TicketType{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, description, price_cents, capacity, created_at, updated_at
		FROM ticket_types
		WHERE id = $1
	`, id).Scan(&t.ID, &t.Name, &t.Description, &t.PriceCents, &t.Capacity, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *TicketTypeRepository) List(ctx context.Context) ([]entity.TicketType, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, description, price_cents, capacity, created_at, updated_at
		FROM ticket_types
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.TicketType
	for rows.Next() {
		var t entity.TicketType
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.PriceCents, &t.Capacity, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TicketTypeRepository) AttachToEvent(ctx context.Context, ett *entity.EventTicketType) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO event_ticket_types (event_id, ticket_type_id, price_cents, available_quantity)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, ett.EventID, ett.TicketTypeID, ett.PriceCents, ett.AvailableQuantity)
	if err := row.Scan(&ett.ID, &ett.CreatedAt, &ett.UpdatedAt); err != nil {
		if isUniqueViolation(err, "") {
			return repository.ErrDuplicateTicketType
		}
		return err
	}
	return nil
}

func (r *TicketTypeRepository) GetEventTicketType(ctx context.Context, eventID, ticketTypeID int64) (*entity.EventTicketType, error) {
	ett := &entity.EventTicketType{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, event_id, ticket_type_id, price_cents, available_quantity, created_at, updated_at
		FROM event_ticket_types
		WHERE event_id = $1 AND ticket_type_id = $2
	`, eventID, ticketTypeID).Scan(&ett.ID, &ett.EventID, &ett.TicketTypeID,
		&ett.PriceCents, &ett.AvailableQuantity, &ett.CreatedAt, &ett.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return ett, nil
}

func (r *TicketTypeRepository) ListForEvent(ctx context.Context, eventID int64) ([]entity.EventTicketType, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, event_id, ticket_type_id, price_cents, available_quantity, created_at, updated_at
		FROM event_ticket_types
		WHERE event_id = $1
		ORDER BY id
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.EventTicketType
	for rows.Next() {
		var ett entity.EventTicketType
		if err := rows.Scan(&ett.ID, &ett.EventID, &ett.TicketTypeID,
			&ett.PriceCents, &ett.AvailableQuantity, &ett.CreatedAt, &ett.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, ett)
	}
	return out, rows.Err()
}

var _ repository.TicketTypeRepository = (*TicketTypeRepository)(nil)

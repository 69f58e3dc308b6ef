package repository

import (
	"context"
	"time"

	"github.com/BrianKimathi/event-booking-api/internal/domain/entity"
)

// EventRepository defines persistence operations for events and their
// commission configuration.
type EventRepository interface {
	Create(ctx context.Context, e *entity.Event) error
	GetByID(ctx context.Context, id int64) (*entity.Event, error)
	ListByCreator(ctx context.Context, creatorID int64) ([]entity.Event, error)

	// ListPublishedUpcoming returns PUBLISHED events starting at or
	// after the given time, ordered by start date ascending.
	ListPublishedUpcoming(ctx context.Context, from time.Time) ([]entity.Event, error)

	Update(ctx context.Context, e *entity.Event) error
	SetStatus(ctx context.Context, id int64, status entity.EventStatus) error
	SetImageURL(ctx context.Context, id int64, url string) error

	CreateCommission(ctx context.Context, c *entity.Commission) error
	GetCommission(ctx context.Context, eventID int64) (*entity.Commission, error)
}

// TicketTypeRepository manages ticket tiers and their per-event
// attachments.
type TicketTypeRepository interface {
	Create(ctx context.Context, t *entity.TicketType) error
	GetByID(ctx context.Context, id int64) (*entity.TicketType, error)
	List(ctx context.Context) ([]entity.TicketType, error)

	// AttachToEvent inserts an event_ticket_types row; returns
	// ErrDuplicateTicketType on the (event, ticket type) unique pair.
	AttachToEvent(ctx context.Context, ett *entity.EventTicketType) error
	GetEventTicketType(ctx context.Context, eventID, ticketTypeID int64) (*entity.EventTicketType, error)
	ListForEvent(ctx context.Context, eventID int64) ([]entity.EventTicketType, error)
}

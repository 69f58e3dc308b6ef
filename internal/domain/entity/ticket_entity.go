package entity

import "time"

// TicketType is a reusable ticket tier (e.g. Regular, VIP).
type TicketType struct {
	ID          int64
	Name        string
	Description string
	PriceCents  int64
	Capacity    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EventTicketType attaches a ticket tier to a specific event with an
// event-specific price and allocation. Unique per (event, ticket type).
type EventTicketType struct {
	ID                int64
	EventID           int64
	TicketTypeID      int64
	PriceCents        int64
	AvailableQuantity int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

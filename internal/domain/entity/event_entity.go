package entity

import "time"

// EventStatus is the publication state of an event.
type EventStatus string

const (
	EventDraft     EventStatus = "DRAFT"
	EventPublished EventStatus = "PUBLISHED"
	EventCancelled EventStatus = "CANCELLED"
	EventCompleted EventStatus = "COMPLETED"
)

// Event is a ticketed happening created by a verified creator.
// AvailableTickets starts at TotalCapacity and is decremented as
// purchases are confirmed.
type Event struct {
	ID               int64
	Title            string
	Description      string
	Venue            string
	StartDate        time.Time
	EndDate          time.Time
	Category         string
	Status           EventStatus
	ImageURL         string
	TotalCapacity    int
	AvailableTickets int
	CreatorID        int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CommissionType selects how the platform cut is computed for an event.
type CommissionType string

const (
	CommissionPercentage CommissionType = "PERCENTAGE"
	CommissionFixed      CommissionType = "FIXED"
)

// Commission is the per-event platform fee configuration.
// RateBasisPoints is used for PERCENTAGE (1000 = 10%); FixedAmountCents
// for FIXED. Amounts are in minor currency units throughout.
type Commission struct {
	ID               int64
	EventID          int64
	Type             CommissionType
	RateBasisPoints  int
	FixedAmountCents int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

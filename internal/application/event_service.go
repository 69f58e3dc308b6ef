package application

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/BrianKimathi/event-booking-api/internal/domain/entity"
	"github.com/BrianKimathi/event-booking-api/internal/domain/repository"
	"github.com/BrianKimathi/event-booking-api/internal/infrastructure/search"
)

var (
	ErrEventNotFound = errors.New("event not found")

	// ErrNotEventOwner means the caller is not the creator of the event.
	ErrNotEventOwner = errors.New("not the owner of this event")

	// ErrEventNotDraft guards transitions that only apply to drafts.
	ErrEventNotDraft = errors.New("event is not in draft state")

	ErrTicketTypeNotFound = errors.New("ticket type not found")

	ErrTicketTypeTaken = errors.New("ticket type already attached to event")
)

// EventIndexer abstracts the search index so the service can be tested
// without Elasticsearch.
type EventIndexer interface {
	Index(ctx context.Context, e *entity.Event) error
	Remove(ctx context.Context, eventID int64) error
	Search(ctx context.Context, query string, size int) ([]search.EventDoc, error)
}

// ImageStore abstracts poster image storage.
type ImageStore interface {
	UploadEventImage(ctx context.Context, eventID int64, filename, contentType string, r io.Reader) (string, error)
}

// CreateEventInput carries validated event creation fields.
type CreateEventInput struct {
	Title         string
	Description   string
	Venue         string
	StartDate     time.Time
	EndDate       time.Time
	Category      string
	TotalCapacity int

	// Optional commission configuration, applied in the same flow.
	Commission *CommissionInput
}

// CommissionInput is the platform fee configuration for a new event.
type CommissionInput struct {
	Type             entity.CommissionType
	RateBasisPoints  int
	FixedAmountCents int64
}

// AttachTicketTypeInput attaches an existing ticket tier to an event
// with an event-specific price and allocation.
type AttachTicketTypeInput struct {
	TicketTypeID      int64
	PriceCents        int64
	AvailableQuantity int
}

// EventService implements event lifecycle, ticket tier attachment,
// poster upload and search.
type EventService struct {
	events  repository.EventRepository
	tickets repository.TicketTypeRepository
	indexer EventIndexer
	images  ImageStore
	log     *logrus.Logger
}

func NewEventService(events repository.EventRepository, tickets repository.TicketTypeRepository, indexer EventIndexer, images ImageStore, log *logrus.Logger) *EventService {
	return &EventService{events: events, tickets: tickets, indexer: indexer, images: images, log: log}
}

// Create inserts a DRAFT event owned by the creator, with its
// commission configuration when provided.
func (s *EventService) Create(ctx context.Context, creatorID int64, in CreateEventInput) (*entity.Event, error) {
	e := &entity.Event{
		Title:            in.Title,
		Description:      in.Description,
		Venue:            in.Venue,
		StartDate:        in.StartDate,
		EndDate:          in.EndDate,
		Category:         in.Category,
		Status:           entity.EventDraft,
		TotalCapacity:    in.TotalCapacity,
		AvailableTickets: in.TotalCapacity,
		CreatorID:        creatorID,
	}
	if err := s.events.Create(ctx, e); err != nil {
		return nil, err
	}

	if in.Commission != nil {
		c := &entity.Commission{
			EventID:          e.ID,
			Type:             in.Commission.Type,
			RateBasisPoints:  in.Commission.RateBasisPoints,
			FixedAmountCents: in.Commission.FixedAmountCents,
		}
		if err := s.events.CreateCommission(ctx, c); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// UpdateEventInput carries editable draft fields. Zero values mean
// "leave unchanged"; capacity changes reset availability.
type UpdateEventInput struct {
	Title         string
	Description   string
	Venue         string
	StartDate     time.Time
	EndDate       time.Time
	Category      string
	TotalCapacity int
}

// TicketTypeInput defines a reusable ticket tier for the catalog.
type TicketTypeInput struct {
	Name        string
	Description string
	PriceCents  int64
	Capacity    int
}

func (s *EventService) Get(ctx context.Context, id int64) (*entity.Event, error) {
	e, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return e, nil
}

func (s *EventService) ListByCreator(ctx context.Context, creatorID int64) ([]entity.Event, error) {
	return s.events.ListByCreator(ctx, creatorID)
}

// ListUpcoming returns published events starting from now.
func (s *EventService) ListUpcoming(ctx context.Context) ([]entity.Event, error) {
	return s.events.ListPublishedUpcoming(ctx, time.Now())
}

// ownedBy loads the event and enforces creator ownership.
func (s *EventService) ownedBy(ctx context.Context, eventID, creatorID int64) (*entity.Event, error) {
	e, err := s.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if e.CreatorID != creatorID {
		return nil, ErrNotEventOwner
	}
	return e, nil
}

// UpdateDraft edits an owned draft. Published events are immutable
// through this path; cancel and recreate instead.
func (s *EventService) UpdateDraft(ctx context.Context, eventID, creatorID int64, in UpdateEventInput) (*entity.Event, error) {
	e, err := s.ownedBy(ctx, eventID, creatorID)
	if err != nil {
		return nil, err
	}
	if e.Status != entity.EventDraft {
		return nil, ErrEventNotDraft
	}
	if in.Title != "" {
		e.Title = in.Title
	}
	if in.Description != "" {
		e.Description = in.Description
	}
	if in.Venue != "" {
		e.Venue = in.Venue
	}
	if !in.StartDate.IsZero() {
		e.StartDate = in.StartDate
	}
	if !in.EndDate.IsZero() {
		e.EndDate = in.EndDate
	}
	if in.Category != "" {
		e.Category = in.Category
	}
	if in.TotalCapacity > 0 {
		e.TotalCapacity = in.TotalCapacity
		e.AvailableTickets = in.TotalCapacity
	}
	if err := s.events.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// GetCommission returns the platform fee configuration for an owned
// event.
func (s *EventService) GetCommission(ctx context.Context, eventID, creatorID int64) (*entity.Commission, error) {
	if _, err := s.ownedBy(ctx, eventID, creatorID); err != nil {
		return nil, err
	}
	return s.events.GetCommission(ctx, eventID)
}

// CreateTicketType adds a reusable tier to the catalog.
func (s *EventService) CreateTicketType(ctx context.Context, in TicketTypeInput) (*entity.TicketType, error) {
	t := &entity.TicketType{
		Name:        in.Name,
		Description: in.Description,
		PriceCents:  in.PriceCents,
		Capacity:    in.Capacity,
	}
	if err := s.tickets.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// TicketTypeCatalog lists all reusable tiers.
func (s *EventService) TicketTypeCatalog(ctx context.Context) ([]entity.TicketType, error) {
	return s.tickets.List(ctx)
}

// Publish flips a draft to PUBLISHED and indexes it for search.
// Index failures are logged, not surfaced: the database is the source
// of truth and the document can be re-indexed.
func (s *EventService) Publish(ctx context.Context, eventID, creatorID int64) (*entity.Event, error) {
	e, err := s.ownedBy(ctx, eventID, creatorID)
	if err != nil {
		return nil, err
	}
	if e.Status != entity.EventDraft {
		return nil, ErrEventNotDraft
	}
	if err := s.events.SetStatus(ctx, eventID, entity.EventPublished); err != nil {
		return nil, err
	}
	e.Status = entity.EventPublished

	if s.indexer != nil {
		if err := s.indexer.Index(ctx, e); err != nil {
			s.log.WithError(err).WithField("event_id", eventID).Warn("failed to index published event")
		}
	}
	return e, nil
}

// Cancel marks the event CANCELLED and removes it from the index.
func (s *EventService) Cancel(ctx context.Context, eventID, creatorID int64) error {
	if _, err := s.ownedBy(ctx, eventID, creatorID); err != nil {
		return err
	}
	if err := s.events.SetStatus(ctx, eventID, entity.EventCancelled); err != nil {
		return err
	}
	if s.indexer != nil {
		if err := s.indexer.Remove(ctx, eventID); err != nil {
			s.log.WithError(err).WithField("event_id", eventID).Warn("failed to remove cancelled event from index")
		}
	}
	return nil
}

// UploadImage stores the poster and records its URL. Published events
// get their search document refreshed with the new URL.
func (s *EventService) UploadImage(ctx context.Context, eventID, creatorID int64, filename, contentType string, r io.Reader) (string, error) {
	e, err := s.ownedBy(ctx, eventID, creatorID)
	if err != nil {
		return "", err
	}
	url, err := s.images.UploadEventImage(ctx, eventID, filename, contentType, r)
	if err != nil {
		return "", err
	}
	if err := s.events.SetImageURL(ctx, eventID, url); err != nil {
		return "", err
	}
	if e.Status == entity.EventPublished && s.indexer != nil {
		e.ImageURL = url
		if err := s.indexer.Index(ctx, e); err != nil {
			s.log.WithError(err).WithField("event_id", eventID).Warn("failed to refresh event index after image upload")
		}
	}
	return url, nil
}

// AttachTicketType attaches an existing ticket tier to an owned event.
func (s *EventService) AttachTicketType(ctx context.Context, eventID, creatorID int64, in AttachTicketTypeInput) (*entity.EventTicketType, error) {
	if _, err := s.ownedBy(ctx, eventID, creatorID); err != nil {
		return nil, err
	}
	if _, err := s.tickets.GetByID(ctx, in.TicketTypeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTicketTypeNotFound
		}
		return nil, err
	}
	ett := &entity.EventTicketType{
		EventID:           eventID,
		TicketTypeID:      in.TicketTypeID,
		PriceCents:        in.PriceCents,
		AvailableQuantity: in.AvailableQuantity,
	}
	if err := s.tickets.AttachToEvent(ctx, ett); err != nil {
		if errors.Is(err, repository.ErrDuplicateTicketType) {
			return nil, ErrTicketTypeTaken
		}
		return nil, err
	}
	return ett, nil
}

// ListTicketTypes returns the tiers attached to an event.
func (s *EventService) ListTicketTypes(ctx context.Context, eventID int64) ([]entity.EventTicketType, error) {
	if _, err := s.Get(ctx, eventID); err != nil {
		return nil, err
	}
	return s.tickets.ListForEvent(ctx, eventID)
}

// Search queries the full-text index.
func (s *EventService) Search(ctx context.Context, query string, size int) ([]search.EventDoc, error) {
	return s.indexer.Search(ctx, query, size)
}

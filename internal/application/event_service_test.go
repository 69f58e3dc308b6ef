package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BrianKimathi/event-booking-api/internal/domain/entity"
	"github.com/BrianKimathi/event-booking-api/internal/domain/repository"
)

func newEventService(events *mockEventRepo, tickets *mockTicketTypeRepo, indexer *mockIndexer) *EventService {
	return NewEventService(events, tickets, indexer, nil, testLogger())
}

func draftEvent(creatorID int64) *entity.Event {
	return &entity.Event{
		ID:               1,
		Title:            "Go Meetup",
		Status:           entity.EventDraft,
		TotalCapacity:    100,
		AvailableTickets: 100,
		CreatorID:        creatorID,
	}
}

func TestCreateEventStartsAsDraftWithFullAvailability(t *testing.T) {
	events := new(mockEventRepo)
	events.On("Create", mock.Anything, mock.MatchedBy(func(e *entity.Event) bool {
		return e.Status == entity.EventDraft && e.AvailableTickets == 250 && e.CreatorID == 2
	})).Return(nil)

	svc := newEventService(events, new(mockTicketTypeRepo), new(mockIndexer))
	_, err := svc.Create(context.Background(), 2, CreateEventInput{
		Title:         "Go Meetup",
		Description:   "talks",
		Venue:         "Hall A",
		StartDate:     time.Now().Add(24 * time.Hour),
		EndDate:       time.Now().Add(26 * time.Hour),
		Category:      "tech",
		TotalCapacity: 250,
	})
	require.NoError(t, err)
	events.AssertExpectations(t)
}

func TestCreateEventPersistsCommission(t *testing.T) {
	events := new(mockEventRepo)
	events.On("Create", mock.Anything, mock.AnythingOfType("*entity.Event")).
		Run(func(args mock.Arguments) { args.Get(1).(*entity.Event).ID = 1 }).
		Return(nil)
	events.On("CreateCommission", mock.Anything, mock.MatchedBy(func(c *entity.Commission) bool {
		return c.EventID == 1 && c.Type == entity.CommissionPercentage && c.RateBasisPoints == 1000
	})).Return(nil)

	svc := newEventService(events, new(mockTicketTypeRepo), new(mockIndexer))
	_, err := svc.Create(context.Background(), 2, CreateEventInput{
		Title: "x", Description: "x", Venue: "x", Category: "x", TotalCapacity: 10,
		Commission: &CommissionInput{Type: entity.CommissionPercentage, RateBasisPoints: 1000},
	})
	require.NoError(t, err)
	events.AssertExpectations(t)
}

func TestPublishIndexesTheEvent(t *testing.T) {
	events := new(mockEventRepo)
	events.On("GetByID", mock.Anything, int64(1)).Return(draftEvent(2), nil)
	events.On("SetStatus", mock.Anything, int64(1), entity.EventPublished).Return(nil)

	indexer := new(mockIndexer)
	indexer.On("Index", mock.Anything, mock.MatchedBy(func(e *entity.Event) bool {
		return e.ID == 1 && e.Status == entity.EventPublished
	})).Return(nil)

	svc := newEventService(events, new(mockTicketTypeRepo), indexer)
	e, err := svc.Publish(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, entity.EventPublished, e.Status)
	indexer.AssertExpectations(t)
}

func TestPublishRejectsNonOwner(t *testing.T) {
	events := new(mockEventRepo)
	events.On("GetByID", mock.Anything, int64(1)).Return(draftEvent(2), nil)

	svc := newEventService(events, new(mockTicketTypeRepo), new(mockIndexer))
	_, err := svc.Publish(context.Background(), 1, 99)
	assert.ErrorIs(t, err, ErrNotEventOwner)
	events.AssertNotCalled(t, "SetStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestPublishRejectsNonDraft(t *testing.T) {
	e := draftEvent(2)
	e.Status = entity.EventPublished
	events := new(mockEventRepo)
	events.On("GetByID", mock.Anything, int64(1)).Return(e, nil)

	svc := newEventService(events, new(mockTicketTypeRepo), new(mockIndexer))
	_, err := svc.Publish(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrEventNotDraft)
}

func TestCancelRemovesFromIndex(t *testing.T) {
	e := draftEvent(2)
	e.Status = entity.EventPublished
	events := new(mockEventRepo)
	events.On("GetByID", mock.Anything, int64(1)).Return(e, nil)
	events.On("SetStatus", mock.Anything, int64(1), entity.EventCancelled).Return(nil)

	indexer := new(mockIndexer)
	indexer.On("Remove", mock.Anything, int64(1)).Return(nil)

	svc := newEventService(events, new(mockTicketTypeRepo), indexer)
	require.NoError(t, svc.Cancel(context.Background(), 1, 2))
	indexer.AssertExpectations(t)
}

func TestUpdateDraftRejectsPublishedEvent(t *testing.T) {
	e := draftEvent(2)
	e.Status = entity.EventPublished
	events := new(mockEventRepo)
	events.On("GetByID", mock.Anything, int64(1)).Return(e, nil)

	svc := newEventService(events, new(mockTicketTypeRepo), new(mockIndexer))
	_, err := svc.UpdateDraft(context.Background(), 1, 2, UpdateEventInput{Title: "new"})
	assert.ErrorIs(t, err, ErrEventNotDraft)
	events.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateDraftCapacityResetsAvailability(t *testing.T) {
	events := new(mockEventRepo)
	events.On("GetByID", mock.Anything, int64(1)).Return(draftEvent(2), nil)
	events.On("Update", mock.Anything, mock.MatchedBy(func(e *entity.Event) bool {
		return e.TotalCapacity == 40 && e.AvailableTickets == 40
	})).Return(nil)

	svc := newEventService(events, new(mockTicketTypeRepo), new(mockIndexer))
	_, err := svc.UpdateDraft(context.Background(), 1, 2, UpdateEventInput{TotalCapacity: 40})
	require.NoError(t, err)
	events.AssertExpectations(t)
}

func TestAttachTicketTypeRejectsDuplicate(t *testing.T) {
	events := new(mockEventRepo)
	events.On("GetByID", mock.Anything, int64(1)).Return(draftEvent(2), nil)

	tickets := new(mockTicketTypeRepo)
	tickets.On("GetByID", mock.Anything, int64(3)).Return(&entity.TicketType{ID: 3, Name: "VIP"}, nil)
	tickets.On("AttachToEvent", mock.Anything, mock.Anything).Return(repository.ErrDuplicateTicketType)

	svc := newEventService(events, tickets, new(mockIndexer))
	_, err := svc.AttachTicketType(context.Background(), 1, 2, AttachTicketTypeInput{
		TicketTypeID: 3, PriceCents: 5000, AvailableQuantity: 20,
	})
	assert.ErrorIs(t, err, ErrTicketTypeTaken)
}

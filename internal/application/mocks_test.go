package application

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/BrianKimathi/event-booking-api/internal/domain/entity"
	"github.com/BrianKimathi/event-booking-api/internal/infrastructure/search"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, u *entity.User, defaultRole entity.RoleName) error {
	args := m.Called(ctx, u, defaultRole)
	return args.Error(0)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, u *entity.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) AssignRole(ctx context.Context, userID int64, name entity.RoleName) error {
	args := m.Called(ctx, userID, name)
	return args.Error(0)
}

func (m *mockUserRepo) SetCreatorVerification(ctx context.Context, userID int64, status entity.CreatorVerificationStatus, otp string, expiry *time.Time) error {
	args := m.Called(ctx, userID, status, otp, expiry)
	return args.Error(0)
}

type mockEventRepo struct{ mock.Mock }

func (m *mockEventRepo) Create(ctx context.Context, e *entity.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *mockEventRepo) GetByID(ctx context.Context, id int64) (*entity.Event, error) {
	args := m.Called(ctx, id)
	if e := args.Get(0); e != nil {
		return e.(*entity.Event), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEventRepo) ListByCreator(ctx context.Context, creatorID int64) ([]entity.Event, error) {
	args := m.Called(ctx, creatorID)
	return args.Get(0).([]entity.Event), args.Error(1)
}

func (m *mockEventRepo) ListPublishedUpcoming(ctx context.Context, from time.Time) ([]entity.Event, error) {
	args := m.Called(ctx, from)
	return args.Get(0).([]entity.Event), args.Error(1)
}

func (m *mockEventRepo) Update(ctx context.Context, e *entity.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *mockEventRepo) SetStatus(ctx context.Context, id int64, status entity.EventStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *mockEventRepo) SetImageURL(ctx context.Context, id int64, url string) error {
	args := m.Called(ctx, id, url)
	return args.Error(0)
}

func (m *mockEventRepo) CreateCommission(ctx context.Context, c *entity.Commission) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockEventRepo) GetCommission(ctx context.Context, eventID int64) (*entity.Commission, error) {
	args := m.Called(ctx, eventID)
	if c := args.Get(0); c != nil {
		return c.(*entity.Commission), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockTicketTypeRepo struct{ mock.Mock }

func (m *mockTicketTypeRepo) Create(ctx context.Context, t *entity.TicketType) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *mockTicketTypeRepo) GetByID(ctx context.Context, id int64) (*entity.TicketType, error) {
	args := m.Called(ctx, id)
	if t := args.Get(0); t != nil {
		return t.(*entity.TicketType), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTicketTypeRepo) List(ctx context.Context) ([]entity.TicketType, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entity.TicketType), args.Error(1)
}

func (m *mockTicketTypeRepo) AttachToEvent(ctx context.Context, ett *entity.EventTicketType) error {
	args := m.Called(ctx, ett)
	return args.Error(0)
}

func (m *mockTicketTypeRepo) GetEventTicketType(ctx context.Context, eventID, ticketTypeID int64) (*entity.EventTicketType, error) {
	args := m.Called(ctx, eventID, ticketTypeID)
	if t := args.Get(0); t != nil {
		return t.(*entity.EventTicketType), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTicketTypeRepo) ListForEvent(ctx context.Context, eventID int64) ([]entity.EventTicketType, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).([]entity.EventTicketType), args.Error(1)
}

type mockPurchaseRepo struct{ mock.Mock }

func (m *mockPurchaseRepo) Create(ctx context.Context, p *entity.TicketPurchase, pay *entity.PaymentTransaction) error {
	args := m.Called(ctx, p, pay)
	return args.Error(0)
}

func (m *mockPurchaseRepo) GetByCode(ctx context.Context, code string) (*entity.TicketPurchase, error) {
	args := m.Called(ctx, code)
	if p := args.Get(0); p != nil {
		return p.(*entity.TicketPurchase), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPurchaseRepo) ListByUser(ctx context.Context, userID int64) ([]entity.TicketPurchase, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]entity.TicketPurchase), args.Error(1)
}

func (m *mockPurchaseRepo) SetStatus(ctx context.Context, id int64, status entity.PurchaseStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *mockPurchaseRepo) GetPayment(ctx context.Context, purchaseID int64) (*entity.PaymentTransaction, error) {
	args := m.Called(ctx, purchaseID)
	if p := args.Get(0); p != nil {
		return p.(*entity.PaymentTransaction), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPurchaseRepo) UpdatePayment(ctx context.Context, pay *entity.PaymentTransaction) error {
	args := m.Called(ctx, pay)
	return args.Error(0)
}

type mockEmailRepo struct{ mock.Mock }

func (m *mockEmailRepo) Create(ctx context.Context, n *entity.EmailNotification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *mockEmailRepo) MarkSent(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *mockEmailRepo) MarkFailed(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockEmailRepo) ListByStatus(ctx context.Context, status entity.EmailNotificationStatus, limit int) ([]entity.EmailNotification, error) {
	args := m.Called(ctx, status, limit)
	return args.Get(0).([]entity.EmailNotification), args.Error(1)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) PublishJSON(ctx context.Context, body any) error {
	args := m.Called(ctx, body)
	return args.Error(0)
}

type mockIndexer struct{ mock.Mock }

func (m *mockIndexer) Index(ctx context.Context, e *entity.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *mockIndexer) Remove(ctx context.Context, eventID int64) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

func (m *mockIndexer) Search(ctx context.Context, query string, size int) ([]search.EventDoc, error) {
	args := m.Called(ctx, query, size)
	return args.Get(0).([]search.EventDoc), args.Error(1)
}

package repository

import (
	"context"
	"time"

	"github.com/BrianKimathi/event-booking-api/internal/domain/entity"
)

// EmailRepository persists outbound email notifications. Rows are
// written PENDING by the API and flipped by the email worker.
type EmailRepository interface {
	Create(ctx context.Context, n *entity.EmailNotification) error
	MarkSent(ctx context.Context, id int64, at time.Time) error
	MarkFailed(ctx context.Context, id int64) error
	ListByStatus(ctx context.Context, status entity.EmailNotificationStatus, limit int) ([]entity.EmailNotification, error)
}

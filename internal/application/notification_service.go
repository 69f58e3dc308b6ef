package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/BrianKimathi/event-booking-api/internal/domain/entity"
	"github.com/BrianKimathi/event-booking-api/internal/domain/repository"
	"github.com/BrianKimathi/event-booking-api/pkg/mailer"
	"github.com/BrianKimathi/event-booking-api/pkg/mailer/templates"
)

// QueuePublisher publishes JSON messages onto the email queue.
type QueuePublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// NotificationService records outbound emails and hands them to the
// queue for asynchronous delivery. Enqueue failures never fail the
// calling flow: the row stays PENDING and can be re-driven later.
type NotificationService struct {
	emails    repository.EmailRepository
	publisher QueuePublisher
	log       *logrus.Logger
}

func NewNotificationService(emails repository.EmailRepository, publisher QueuePublisher, log *logrus.Logger) *NotificationService {
	return &NotificationService{emails: emails, publisher: publisher, log: log}
}

// Enqueue persists a PENDING notification row, then publishes an
// EmailJob referencing it. Returns the persisted notification.
func (s *NotificationService) Enqueue(ctx context.Context, to, tmpl string, data map[string]any) (*entity.EmailNotification, error) {
	subject := templates.Subject(tmpl)
	body, err := templates.RenderHTML(tmpl, data)
	if err != nil {
		return nil, err
	}

	n := &entity.EmailNotification{
		RecipientEmail: to,
		Subject:        subject,
		Body:           body,
		Status:         entity.EmailPending,
	}
	if err := s.emails.Create(ctx, n); err != nil {
		return nil, err
	}

	job := mailer.EmailJob{
		NotificationID: n.ID,
		To:             to,
		Subject:        subject,
		HTML:           body,
		Template:       tmpl,
		Data:           data,
	}
	if err := s.publisher.PublishJSON(ctx, job); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"notification_id": n.ID,
			"template":        tmpl,
		}).Warn("failed to publish email job; row left pending")
	}
	return n, nil
}

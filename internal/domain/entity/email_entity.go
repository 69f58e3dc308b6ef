package entity

import "time"

// EmailNotificationStatus is the delivery state of a queued email.
type EmailNotificationStatus string

const (
	EmailPending EmailNotificationStatus = "PENDING"
	EmailSent    EmailNotificationStatus = "SENT"
	EmailFailed  EmailNotificationStatus = "FAILED"
)

// EmailNotification is the persisted record of an outbound email.
// Delivery happens asynchronously via the email worker; rows stay
// PENDING until the worker reports back.
type EmailNotification struct {
	ID             int64
	RecipientEmail string
	Subject        string
	Body           string
	Status         EmailNotificationStatus
	SentAt         *time.Time
	CreatedAt      time.Time
}

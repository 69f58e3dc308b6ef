package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending
// email. NotificationID points at the persisted email_notifications row
// the worker flips to SENT/FAILED after delivery. Subject/Text/HTML are
// used as-is when Template is empty; otherwise the worker renders
// Template with Data.
type EmailJob struct {
	NotificationID int64          `json:"notification_id,omitempty"`
	To             string         `json:"to"`
	Subject        string         `json:"subject,omitempty"`
	Text           string         `json:"text,omitempty"`
	HTML           string         `json:"html,omitempty"`
	Template       string         `json:"template,omitempty"` // e.g. "welcome", "purchase_confirmation", "creator_otp"
	Data           map[string]any `json:"data,omitempty"`
}

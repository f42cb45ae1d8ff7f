package notification

import (
	"context"

	"pathlab/models"
)

// Mailer delivers one patient email.
type Mailer interface {
	Send(ctx context.Context, payload models.NotificationPayload) error
}

// NotificationService hands emails off for delivery without blocking the caller
// on SMTP.
type NotificationService interface {
	Notify(ctx context.Context, payload models.NotificationPayload) error
}

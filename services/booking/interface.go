package booking

import (
	"context"

	"pathlab/models"
)

// Catalog is the part of the lab store the booking flow needs.
type Catalog interface {
	GetTestByID(id string) (models.LabTest, bool)
	AddAppointment(ctx context.Context, a models.Appointment) error
}

// Notifier delivers patient notifications. Failures are logged by the caller.
type Notifier interface {
	Notify(ctx context.Context, payload models.NotificationPayload) error
}

// BookingService is the session-oriented API used by the HTTP handlers.
type BookingService interface {
	StartSession(ctx context.Context, testID string) (*models.BookingSession, error)
	GetSession(ctx context.Context, id string) (*models.BookingSession, error)
	Schedule(ctx context.Context, id, date, timeSlot string) (*models.BookingSession, error)
	SetPatient(ctx context.Context, id string, details models.PatientDetails) (*models.BookingSession, error)
	Next(ctx context.Context, id string) (*models.BookingSession, error)
	Back(ctx context.Context, id string) (*models.BookingSession, error)
	Confirm(ctx context.Context, id string) (*models.Appointment, error)
	Cancel(ctx context.Context, id string) error
}

package remoteRepo

import (
	"context"

	"pathlab/models"
)

// Repository is the hosted persistence backend holding the tests and
// appointments tables.
type Repository interface {
	ListTests(ctx context.Context) ([]models.LabTest, error)
	InsertTests(ctx context.Context, tests []models.LabTest) error
	InsertTest(ctx context.Context, test models.LabTest) error
	UpdateTest(ctx context.Context, test models.LabTest) error
	DeleteTest(ctx context.Context, id string) error

	// ListAppointments returns every appointment ordered by created_at descending.
	ListAppointments(ctx context.Context) ([]models.Appointment, error)
	InsertAppointment(ctx context.Context, appt models.Appointment) error
	UpdateAppointmentStatus(ctx context.Context, id string, status models.AppointmentStatus) error
	UpdateReportURL(ctx context.Context, id, url string) error

	Ping(ctx context.Context) error
	Close()
}

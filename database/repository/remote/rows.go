package remoteRepo

import (
	"time"

	"pathlab/models"
)

// appointmentRow is the flat column layout of the appointments table.
// The patient snapshot is spread over patient_* columns.
type appointmentRow struct {
	ID             string    `bson:"id"`
	TestID         string    `bson:"test_id"`
	TestName       string    `bson:"test_name"`
	Price          int       `bson:"price"`
	Date           string    `bson:"date"`
	TimeSlot       string    `bson:"time_slot"`
	Status         string    `bson:"status"`
	CreatedAt      time.Time `bson:"created_at"`
	PatientName    string    `bson:"patient_name"`
	PatientAge     string    `bson:"patient_age"`
	PatientPhone   string    `bson:"patient_phone"`
	PatientEmail   string    `bson:"patient_email"`
	PatientAddress string    `bson:"patient_address"`
	ReportURL      string    `bson:"report_url,omitempty"`
}

func toAppointmentRow(a models.Appointment) appointmentRow {
	return appointmentRow{
		ID:             a.ID,
		TestID:         a.TestID,
		TestName:       a.TestName,
		Price:          a.Price,
		Date:           a.Date,
		TimeSlot:       a.TimeSlot,
		Status:         string(a.Status),
		CreatedAt:      a.CreatedAt.UTC(),
		PatientName:    a.User.Name,
		PatientAge:     a.User.Age,
		PatientPhone:   a.User.Phone,
		PatientEmail:   a.User.Email,
		PatientAddress: a.User.Address,
		ReportURL:      a.ReportURL,
	}
}

// toModel rebuilds the appointment. The tables carry no user id, so the
// appointment id doubles as the patient snapshot id.
func (r appointmentRow) toModel() models.Appointment {
	return models.Appointment{
		ID:       r.ID,
		TestID:   r.TestID,
		TestName: r.TestName,
		Price:    r.Price,
		Date:     r.Date,
		TimeSlot: r.TimeSlot,
		User: models.User{
			ID:      r.ID,
			Name:    r.PatientName,
			Age:     r.PatientAge,
			Phone:   r.PatientPhone,
			Email:   r.PatientEmail,
			Address: r.PatientAddress,
		},
		Status:    models.AppointmentStatus(r.Status),
		ReportURL: r.ReportURL,
		CreatedAt: r.CreatedAt,
	}
}

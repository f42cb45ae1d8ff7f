package models

import "time"

// AppointmentStatus tracks an appointment from booking to report delivery.
type AppointmentStatus string

const (
	StatusPending         AppointmentStatus = "Pending"
	StatusConfirmed       AppointmentStatus = "Confirmed"
	StatusSampleCollected AppointmentStatus = "Sample Collected"
	StatusReportReady     AppointmentStatus = "Report Ready"
	StatusCompleted       AppointmentStatus = "Completed"
)

// AppointmentStatuses lists the statuses an admin may assign.
var AppointmentStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusSampleCollected,
	StatusReportReady,
	StatusCompleted,
}

// Valid reports whether s is a known status.
func (s AppointmentStatus) Valid() bool {
	for _, known := range AppointmentStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// User is the patient snapshot embedded in an appointment. It has no
// lifecycle of its own.
type User struct {
	ID      string `bson:"id" json:"id"`
	Name    string `bson:"name" json:"name"`
	Age     string `bson:"age" json:"age"` // free text on purpose
	Phone   string `bson:"phone" json:"phone"`
	Email   string `bson:"email" json:"email"`
	Address string `bson:"address" json:"address"`
}

// Appointment is a booking record. TestName, Price and User are captured at
// booking time and never re-synced with the catalog.
type Appointment struct {
	ID        string            `json:"id"`
	TestID    string            `json:"testId"`
	TestName  string            `json:"testName"`
	Price     int               `json:"price"`
	Date      string            `json:"date"` // YYYY-MM-DD
	TimeSlot  string            `json:"timeSlot"`
	User      User              `json:"user"`
	Status    AppointmentStatus `json:"status"`
	ReportURL string            `json:"reportUrl,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}

// ReportViewable reports whether the printable report may be shown.
func (a Appointment) ReportViewable() bool {
	return a.Status == StatusReportReady || a.Status == StatusCompleted
}

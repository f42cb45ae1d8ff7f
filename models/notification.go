package models

// Notification kinds sent to patients by email.
const (
	NotifyBookingConfirmed = "booking_confirmed"
	NotifyReportReady      = "report_ready"
)

// NotificationPayload is the queued body of a patient email.
type NotificationPayload struct {
	Kind          string `json:"kind"`
	AppointmentID string `json:"appointmentId"`
	PatientName   string `json:"patientName"`
	Email         string `json:"email"`
	TestName      string `json:"testName"`
	Date          string `json:"date"`
	TimeSlot      string `json:"timeSlot"`
	ReportURL     string `json:"reportUrl,omitempty"`
}

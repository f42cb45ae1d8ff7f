package notification

import (
	"fmt"
	"strings"

	"pathlab/models"
)

const labName = "Ravi Diagnostic Lab"

// Compose builds the subject and plain-text body for a payload.
func Compose(p models.NotificationPayload) (subject, body string, err error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", p.PatientName)

	switch p.Kind {
	case models.NotifyBookingConfirmed:
		subject = fmt.Sprintf("Booking confirmed: %s", p.TestName)
		fmt.Fprintf(&b, "Your booking for %s is confirmed.\n\n", p.TestName)
		fmt.Fprintf(&b, "Booking ID: %s\nDate: %s\nTime slot: %s\n\n", p.AppointmentID, p.Date, p.TimeSlot)
		b.WriteString("Our phlebotomist will visit your address for sample collection.\n")
	case models.NotifyReportReady:
		subject = fmt.Sprintf("Your %s report is ready", p.TestName)
		fmt.Fprintf(&b, "The report for %s (booking %s) is ready.\n\n", p.TestName, p.AppointmentID)
		if p.ReportURL != "" {
			fmt.Fprintf(&b, "View or print it here: %s\n", p.ReportURL)
		}
	default:
		return "", "", fmt.Errorf("unknown notification kind %q", p.Kind)
	}

	fmt.Fprintf(&b, "\nRegards,\n%s\n", labName)
	return subject, b.String(), nil
}

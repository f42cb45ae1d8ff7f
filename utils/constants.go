// File: utils/constants.go
package utils

// Durable keys shared by the local fallback store.
const (
	AppointmentsKey      = "patho_appointments"
	AdminPasswordKey     = "lab_admin_password"
	AdminSessionPrefix   = "lab_admin_auth:"
	BookingSessionPrefix = "booking:session:"
	BookingLockPrefix    = "booking:lock:"
	AIRecommendPrefix    = "ai:recommend:"
)

// DateLayout is the calendar date format used for appointments.
const DateLayout = "2006-01-02"

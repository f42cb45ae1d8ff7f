package models

import "time"

// BookingStep is a state of the booking wizard.
type BookingStep string

const (
	StepScheduling     BookingStep = "Scheduling"
	StepPatientDetails BookingStep = "PatientDetails"
	StepPayment        BookingStep = "Payment"
	StepConfirmed      BookingStep = "Confirmed"
)

// Number returns the 1-based step index shown to the patient ("Step 2 of 3").
func (s BookingStep) Number() int {
	switch s {
	case StepScheduling:
		return 1
	case StepPatientDetails:
		return 2
	case StepPayment, StepConfirmed:
		return 3
	}
	return 0
}

// PatientDetails is the form collected on the second step.
type PatientDetails struct {
	Name    string `json:"name"`
	Age     string `json:"age"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// BookingSession is the server-side state of one wizard run.
type BookingSession struct {
	SessionID   string         `json:"sessionId"`
	TestID      string         `json:"testId"`
	TestName    string         `json:"testName"`
	Price       int            `json:"price"`
	Step        BookingStep    `json:"step"`
	Date        string         `json:"date,omitempty"`
	TimeSlot    string         `json:"timeSlot,omitempty"`
	Patient     PatientDetails `json:"patient"`
	Committing  bool           `json:"committing"`
	Appointment *Appointment   `json:"appointment,omitempty"`
	InvoiceID   string         `json:"invoiceId,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

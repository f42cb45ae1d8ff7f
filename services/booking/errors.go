package booking

import (
	"errors"

	"pathlab/models"
)

var (
	ErrTestNotFound      = errors.New("test not found")
	ErrDateNotBookable   = errors.New("date must be within the next 7 days")
	ErrSlotUnavailable   = errors.New("time slot is not available")
	ErrPatientIncomplete = errors.New("name, phone and address are required")
	ErrCommitInProgress  = errors.New("booking confirmation already in progress")
	ErrInvalidTransition = errors.New("action not allowed at this step")
	ErrPaymentFailed     = errors.New("payment failed")
)

// StepError wraps a guard failure with the step it happened on.
type StepError struct {
	Step models.BookingStep
	Err  error
}

func (e *StepError) Error() string {
	return string(e.Step) + ": " + e.Err.Error()
}

func (e *StepError) Unwrap() error { return e.Err }

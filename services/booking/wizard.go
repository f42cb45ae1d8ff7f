package booking

import (
	"strings"
	"time"

	"pathlab/models"
)

// Wizard drives one booking session through
// Scheduling -> PatientDetails -> Payment -> Confirmed.
// It only mutates the session it wraps; persistence is the caller's job.
type Wizard struct {
	s   *models.BookingSession
	now func() time.Time
	loc *time.Location
}

func NewWizard(s *models.BookingSession, now func() time.Time, loc *time.Location) *Wizard {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Wizard{s: s, now: now, loc: loc}
}

// Session returns the wrapped session.
func (w *Wizard) Session() *models.BookingSession { return w.s }

func (w *Wizard) editable(step models.BookingStep) error {
	if w.s.Committing {
		return ErrCommitInProgress
	}
	if w.s.Step != step {
		return &StepError{Step: w.s.Step, Err: ErrInvalidTransition}
	}
	return nil
}

// SelectDate records the collection date.
func (w *Wizard) SelectDate(date string) error {
	if err := w.editable(models.StepScheduling); err != nil {
		return err
	}
	if !dateBookable(date, w.now(), w.loc) {
		return ErrDateNotBookable
	}
	w.s.Date = date
	return nil
}

// SelectSlot records the time slot label.
func (w *Wizard) SelectSlot(label string) error {
	if err := w.editable(models.StepScheduling); err != nil {
		return err
	}
	slot, ok := FindSlot(label)
	if !ok || !slot.Available {
		return ErrSlotUnavailable
	}
	w.s.TimeSlot = label
	return nil
}

// SetPatient stores the patient form. Completeness is checked by Next.
func (w *Wizard) SetPatient(d models.PatientDetails) error {
	if err := w.editable(models.StepPatientDetails); err != nil {
		return err
	}
	w.s.Patient = d
	return nil
}

// Next advances one step if the current step's guard holds.
func (w *Wizard) Next() error {
	if w.s.Committing {
		return ErrCommitInProgress
	}
	switch w.s.Step {
	case models.StepScheduling:
		if !dateBookable(w.s.Date, w.now(), w.loc) {
			return &StepError{Step: w.s.Step, Err: ErrDateNotBookable}
		}
		if slot, ok := FindSlot(w.s.TimeSlot); !ok || !slot.Available {
			return &StepError{Step: w.s.Step, Err: ErrSlotUnavailable}
		}
		w.s.Step = models.StepPatientDetails
	case models.StepPatientDetails:
		if !PatientComplete(w.s.Patient) {
			return &StepError{Step: w.s.Step, Err: ErrPatientIncomplete}
		}
		w.s.Step = models.StepPayment
	default:
		return &StepError{Step: w.s.Step, Err: ErrInvalidTransition}
	}
	return nil
}

// Back returns to the previous step keeping everything entered so far.
func (w *Wizard) Back() error {
	if w.s.Committing {
		return ErrCommitInProgress
	}
	switch w.s.Step {
	case models.StepPatientDetails:
		w.s.Step = models.StepScheduling
	case models.StepPayment:
		w.s.Step = models.StepPatientDetails
	default:
		return &StepError{Step: w.s.Step, Err: ErrInvalidTransition}
	}
	return nil
}

// BeginCommit enters the committing sub-state. If the session is already
// confirmed it returns the existing appointment and no error.
func (w *Wizard) BeginCommit() (*models.Appointment, error) {
	if w.s.Step == models.StepConfirmed && w.s.Appointment != nil {
		return w.s.Appointment, nil
	}
	if w.s.Committing {
		return nil, ErrCommitInProgress
	}
	if w.s.Step != models.StepPayment {
		return nil, &StepError{Step: w.s.Step, Err: ErrInvalidTransition}
	}
	w.s.Committing = true
	return nil, nil
}

// BuildAppointment synthesizes the confirmed record from the session.
func (w *Wizard) BuildAppointment(id string) models.Appointment {
	p := w.s.Patient
	return models.Appointment{
		ID:       id,
		TestID:   w.s.TestID,
		TestName: w.s.TestName,
		Price:    w.s.Price,
		Date:     w.s.Date,
		TimeSlot: w.s.TimeSlot,
		User: models.User{
			ID:      id,
			Name:    strings.TrimSpace(p.Name),
			Age:     strings.TrimSpace(p.Age),
			Phone:   strings.TrimSpace(p.Phone),
			Email:   strings.TrimSpace(p.Email),
			Address: strings.TrimSpace(p.Address),
		},
		Status:    models.StatusConfirmed,
		CreatedAt: w.now(),
	}
}

// Complete moves to the terminal step.
func (w *Wizard) Complete(appt models.Appointment, invoiceID string) {
	w.s.Committing = false
	w.s.Step = models.StepConfirmed
	w.s.Appointment = &appt
	w.s.InvoiceID = invoiceID
}

// Abort leaves the committing sub-state and stays on Payment.
func (w *Wizard) Abort() {
	w.s.Committing = false
}

// PatientComplete checks the fields required to reach payment. Age and
// email are optional.
func PatientComplete(d models.PatientDetails) bool {
	return strings.TrimSpace(d.Name) != "" &&
		strings.TrimSpace(d.Phone) != "" &&
		strings.TrimSpace(d.Address) != ""
}

package booking

import (
	"context"
	"fmt"
	"time"

	bookingSessionRepo "pathlab/database/repository/bookingsession"
	"pathlab/models"
	"pathlab/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// commitLockTTL bounds how long a crashed confirmation can block a session.
const commitLockTTL = 2 * time.Minute

// DefaultBookingService implements BookingService on top of a session store.
type DefaultBookingService struct {
	Sessions    bookingSessionRepo.Store
	Catalog     Catalog
	Payments    PaymentProvider
	Notifier    Notifier // optional
	Logger      *zap.Logger
	Location    *time.Location
	PhoneRegion string
	Now         func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultBookingService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}

func (s *DefaultBookingService) wizard(session *models.BookingSession) *Wizard {
	return NewWizard(session, s.now, s.Location)
}

// StartSession opens a wizard for a catalog test.
func (s *DefaultBookingService) StartSession(ctx context.Context, testID string) (*models.BookingSession, error) {
	test, ok := s.Catalog.GetTestByID(testID)
	if !ok {
		return nil, ErrTestNotFound
	}
	now := s.now()
	session := &models.BookingSession{
		SessionID: uuid.New().String(),
		TestID:    test.ID,
		TestName:  test.Name,
		Price:     test.Price,
		Step:      models.StepScheduling,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save booking session: %w", err)
	}
	return session, nil
}

func (s *DefaultBookingService) GetSession(ctx context.Context, id string) (*models.BookingSession, error) {
	return s.Sessions.Get(ctx, id)
}

// update loads a session, applies fn through a wizard and saves the result.
// Nothing is saved when fn fails.
func (s *DefaultBookingService) update(ctx context.Context, id string, fn func(*Wizard) error) (*models.BookingSession, error) {
	session, err := s.Sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(s.wizard(session)); err != nil {
		return nil, err
	}
	session.UpdatedAt = s.now()
	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save booking session: %w", err)
	}
	return session, nil
}

// Schedule sets the date and slot. Either may be empty to keep the current value.
func (s *DefaultBookingService) Schedule(ctx context.Context, id, date, timeSlot string) (*models.BookingSession, error) {
	return s.update(ctx, id, func(w *Wizard) error {
		if date != "" {
			if err := w.SelectDate(date); err != nil {
				return err
			}
		}
		if timeSlot != "" {
			if err := w.SelectSlot(timeSlot); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *DefaultBookingService) SetPatient(ctx context.Context, id string, details models.PatientDetails) (*models.BookingSession, error) {
	details.Phone = NormalizePhone(details.Phone, s.PhoneRegion)
	return s.update(ctx, id, func(w *Wizard) error { return w.SetPatient(details) })
}

func (s *DefaultBookingService) Next(ctx context.Context, id string) (*models.BookingSession, error) {
	return s.update(ctx, id, func(w *Wizard) error { return w.Next() })
}

func (s *DefaultBookingService) Back(ctx context.Context, id string) (*models.BookingSession, error) {
	return s.update(ctx, id, func(w *Wizard) error { return w.Back() })
}

// Confirm charges the patient and creates exactly one appointment per
// session. A repeated confirm after success returns the same appointment.
func (s *DefaultBookingService) Confirm(ctx context.Context, id string) (*models.Appointment, error) {
	session, err := s.Sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Step == models.StepConfirmed && session.Appointment != nil {
		return session.Appointment, nil
	}

	locked, err := s.Sessions.Lock(ctx, id, commitLockTTL)
	if err != nil {
		return nil, fmt.Errorf("lock booking session: %w", err)
	}
	if !locked {
		return nil, ErrCommitInProgress
	}
	defer func() {
		if err := s.Sessions.Unlock(context.Background(), id); err != nil {
			s.logger().Warn("Failed to release booking lock", zap.String("session", id), zap.Error(err))
		}
	}()

	// Reload under the lock; another request may have just finished.
	session, err = s.Sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	// A committing flag seen while holding the lock was left by a holder
	// that never finished.
	session.Committing = false
	w := s.wizard(session)
	existing, err := w.BeginCommit()
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	s.save(ctx, session)

	invoice, err := s.Payments.Charge(ctx, models.PaymentRequest{
		SessionID:   session.SessionID,
		Amount:      session.Price,
		Currency:    "INR",
		Description: session.TestName,
		Email:       session.Patient.Email,
		Metadata:    map[string]string{"test_id": session.TestID, "date": session.Date},
	})
	if err != nil {
		w.Abort()
		s.save(ctx, session)
		utils.BookingsTotal.WithLabelValues("payment_failed").Inc()
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	appt := w.BuildAppointment(uuid.New().String())
	if err := s.Catalog.AddAppointment(ctx, appt); err != nil {
		w.Abort()
		s.save(ctx, session)
		utils.BookingsTotal.WithLabelValues("persist_failed").Inc()
		return nil, err
	}

	w.Complete(appt, invoice.InvoiceID)
	s.save(ctx, session)
	utils.BookingsTotal.WithLabelValues("confirmed").Inc()
	s.logger().Info("Booking confirmed",
		zap.String("appointment", appt.ID), zap.String("test", appt.TestID), zap.String("invoice", invoice.InvoiceID))

	s.notify(ctx, appt)
	return &appt, nil
}

func (s *DefaultBookingService) save(ctx context.Context, session *models.BookingSession) {
	session.UpdatedAt = s.now()
	if err := s.Sessions.Save(ctx, session); err != nil {
		s.logger().Error("Failed to save booking session", zap.String("session", session.SessionID), zap.Error(err))
	}
}

func (s *DefaultBookingService) notify(ctx context.Context, appt models.Appointment) {
	if s.Notifier == nil || appt.User.Email == "" {
		return
	}
	err := s.Notifier.Notify(ctx, models.NotificationPayload{
		Kind:          models.NotifyBookingConfirmed,
		AppointmentID: appt.ID,
		PatientName:   appt.User.Name,
		Email:         appt.User.Email,
		TestName:      appt.TestName,
		Date:          appt.Date,
		TimeSlot:      appt.TimeSlot,
	})
	if err != nil {
		s.logger().Warn("Failed to queue booking email", zap.String("appointment", appt.ID), zap.Error(err))
	}
}

// Cancel discards the session.
func (s *DefaultBookingService) Cancel(ctx context.Context, id string) error {
	if _, err := s.Sessions.Get(ctx, id); err != nil {
		return err
	}
	if err := s.Sessions.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to cancel booking session: %w", err)
	}
	return nil
}

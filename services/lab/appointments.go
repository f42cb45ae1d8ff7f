package lab

import (
	"context"
	"fmt"

	"pathlab/models"

	"go.uber.org/zap"
)

// AddAppointment puts a at the head of the list, then persists it. In
// fallback mode the local archive is rewritten and the call succeeds. In
// remote mode a failed insert removes the record again and returns
// ErrPersistFailed. Ids are not deduplicated.
func (s *Store) AddAppointment(ctx context.Context, a models.Appointment) error {
	s.mu.Lock()
	s.appointments = append([]models.Appointment{a}, s.appointments...)
	fallback := s.fallback
	s.mu.Unlock()

	s.markPending(EntityAppointment, a.ID, opInsert)

	if fallback {
		err := s.persistArchive(ctx)
		s.markDone(EntityAppointment, a.ID, opInsert, true, err)
		return nil
	}

	rctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.remote.InsertAppointment(rctx, a); err != nil {
		s.logger.Error("Error adding appointment", zap.String("id", a.ID), zap.Error(err))
		s.removeAppointment(a.ID)
		s.markDone(EntityAppointment, a.ID, opInsert, false, err)
		return fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	s.markDone(EntityAppointment, a.ID, opInsert, false, nil)
	return nil
}

// removeAppointment drops the first record with id, which is the one most
// recently inserted at the head.
func (s *Store) removeAppointment(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, appt := range s.appointments {
		if appt.ID == id {
			s.appointments = append(s.appointments[:i], s.appointments[i+1:]...)
			return
		}
	}
}

// UpdateAppointmentStatus changes the status in memory and mirrors it.
// Unknown ids are a no-op and return false. Remote failures are logged and
// never rolled back.
func (s *Store) UpdateAppointmentStatus(ctx context.Context, id string, status models.AppointmentStatus) (models.Appointment, bool) {
	updated, ok := s.mutateAppointment(id, func(a *models.Appointment) { a.Status = status })
	if !ok {
		return models.Appointment{}, false
	}
	s.mirrorAppointment(ctx, id, func(rctx context.Context) error {
		return s.remote.UpdateAppointmentStatus(rctx, id, status)
	})
	return updated, true
}

// SetReportURL attaches a published report link. Same semantics as
// UpdateAppointmentStatus.
func (s *Store) SetReportURL(ctx context.Context, id, url string) (models.Appointment, bool) {
	updated, ok := s.mutateAppointment(id, func(a *models.Appointment) { a.ReportURL = url })
	if !ok {
		return models.Appointment{}, false
	}
	s.mirrorAppointment(ctx, id, func(rctx context.Context) error {
		return s.remote.UpdateReportURL(rctx, id, url)
	})
	return updated, true
}

func (s *Store) mutateAppointment(id string, fn func(*models.Appointment)) (models.Appointment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.appointments {
		if s.appointments[i].ID == id {
			fn(&s.appointments[i])
			return s.appointments[i], true
		}
	}
	return models.Appointment{}, false
}

func (s *Store) mirrorAppointment(ctx context.Context, id string, remote func(context.Context) error) {
	s.markPending(EntityAppointment, id, opUpdate)

	if s.FallbackMode() {
		err := s.persistArchive(ctx)
		s.markDone(EntityAppointment, id, opUpdate, true, err)
		return
	}

	rctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	err := remote(rctx)
	if err != nil {
		s.logger.Error("Error updating appointment", zap.String("id", id), zap.Error(err))
	}
	s.markDone(EntityAppointment, id, opUpdate, false, err)
}

// persistArchive writes the current list to the local archive.
func (s *Store) persistArchive(ctx context.Context) error {
	if s.archive == nil {
		return nil
	}
	s.archiveMu.Lock()
	defer s.archiveMu.Unlock()

	snapshot := s.Appointments()
	if err := s.archive.Save(ctx, snapshot); err != nil {
		s.logger.Error("Failed to write local appointment archive", zap.Error(err))
		return err
	}
	return nil
}

package lab

import (
	"context"
	"fmt"

	"pathlab/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AddTest appends t to the catalog and inserts it remotely. A failed insert
// rolls the catalog back. Nothing is persisted in fallback mode. An id
// already in the catalog is rejected with ErrTestExists.
func (s *Store) AddTest(ctx context.Context, t models.LabTest) (models.LabTest, error) {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}

	s.mu.Lock()
	for _, existing := range s.tests {
		if existing.ID == t.ID {
			s.mu.Unlock()
			return models.LabTest{}, ErrTestExists
		}
	}
	s.tests = append(s.tests, t)
	fallback := s.fallback
	s.mu.Unlock()

	s.markPending(EntityTest, t.ID, opInsert)
	if fallback {
		s.markDone(EntityTest, t.ID, opInsert, true, nil)
		return t, nil
	}

	rctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.remote.InsertTest(rctx, t); err != nil {
		s.logger.Error("Error adding test", zap.String("id", t.ID), zap.Error(err))
		s.removeLastTest(t.ID)
		s.markDone(EntityTest, t.ID, opInsert, false, err)
		return models.LabTest{}, fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	s.markDone(EntityTest, t.ID, opInsert, false, nil)
	return t, nil
}

func (s *Store) removeLastTest(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.tests) - 1; i >= 0; i-- {
		if s.tests[i].ID == id {
			s.tests = append(s.tests[:i], s.tests[i+1:]...)
			return
		}
	}
}

// UpdateTest replaces the entry with the same id. Remote failures are logged
// only; the local catalog keeps the new value.
func (s *Store) UpdateTest(ctx context.Context, t models.LabTest) error {
	s.mu.Lock()
	found := false
	for i := range s.tests {
		if s.tests[i].ID == t.ID {
			s.tests[i] = t
			found = true
		}
	}
	fallback := s.fallback
	s.mu.Unlock()

	if !found {
		return ErrTestNotFound
	}
	s.mirrorTest(ctx, t.ID, opUpdate, fallback, func(rctx context.Context) error {
		return s.remote.UpdateTest(rctx, t)
	})
	return nil
}

// DeleteTest removes the entry. Remote failures are logged only.
func (s *Store) DeleteTest(ctx context.Context, id string) error {
	s.mu.Lock()
	kept := s.tests[:0]
	removed := false
	for _, t := range s.tests {
		if t.ID == id {
			removed = true
			continue
		}
		kept = append(kept, t)
	}
	s.tests = kept
	if removed && s.loading {
		s.dropped[id] = struct{}{}
	}
	fallback := s.fallback
	s.mu.Unlock()

	if !removed {
		return ErrTestNotFound
	}
	s.mirrorTest(ctx, id, opDelete, fallback, func(rctx context.Context) error {
		return s.remote.DeleteTest(rctx, id)
	})
	return nil
}

func (s *Store) mirrorTest(ctx context.Context, id, op string, fallback bool, remote func(context.Context) error) {
	s.markPending(EntityTest, id, op)
	if fallback {
		s.markDone(EntityTest, id, op, true, nil)
		return
	}
	rctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	err := remote(rctx)
	if err != nil {
		s.logger.Error("Error mirroring test", zap.String("id", id), zap.String("op", op), zap.Error(err))
	}
	s.markDone(EntityTest, id, op, false, err)
}

package lab

import (
	"pathlab/models"
	"pathlab/utils"
)

// Entity kinds tracked by SyncState.
const (
	EntityTest        = "test"
	EntityAppointment = "appointment"
)

const (
	opInsert = "insert"
	opUpdate = "update"
	opDelete = "delete"
)

func syncKey(entity, id string) string {
	return entity + ":" + id
}

// SyncState returns the last recorded remote outcome for an entity.
func (s *Store) SyncState(entity, id string) (models.SyncState, bool) {
	s.syncMu.Lock()
	defer s.syncMu.Unlock()
	st, ok := s.syncs[syncKey(entity, id)]
	return st, ok
}

func (s *Store) markPending(entity, id, op string) {
	s.recordSync(models.SyncState{Entity: entity, ID: id, Op: op, Status: models.SyncPending})
}

// markDone records the outcome of a remote or local write and counts it.
func (s *Store) markDone(entity, id, op string, local bool, err error) {
	st := models.SyncState{Entity: entity, ID: id, Op: op, Status: models.SyncSucceeded, Local: local}
	outcome := "succeeded"
	if err != nil {
		st.Status = models.SyncFailed
		st.Error = err.Error()
		outcome = "failed"
	}
	if local {
		outcome = "local_" + outcome
	}
	s.recordSync(st)
	utils.RemoteSyncTotal.WithLabelValues(entity, op, outcome).Inc()
}

func (s *Store) recordSync(st models.SyncState) {
	st.UpdatedAt = s.now()
	s.syncMu.Lock()
	s.syncs[syncKey(st.Entity, st.ID)] = st
	s.syncMu.Unlock()
}

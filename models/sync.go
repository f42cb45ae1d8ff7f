package models

import "time"

// SyncStatus is the outcome of mirroring a local mutation to the remote backend.
type SyncStatus string

const (
	SyncPending   SyncStatus = "pending"
	SyncSucceeded SyncStatus = "succeeded"
	SyncFailed    SyncStatus = "failed"
)

// SyncState is the last known remote outcome for one entity.
type SyncState struct {
	Entity    string     `json:"entity"`
	ID        string     `json:"id"`
	Op        string     `json:"op"`
	Status    SyncStatus `json:"status"`
	Error     string     `json:"error,omitempty"`
	Local     bool       `json:"local"` // persisted to the local fallback instead of the remote
	UpdatedAt time.Time  `json:"updatedAt"`
}

package lab

import "errors"

var (
	// ErrPersistFailed means the remote backend rejected a create and the
	// optimistic record was rolled back.
	ErrPersistFailed = errors.New("failed to persist to remote backend")
	ErrTestNotFound  = errors.New("test not found")
	ErrTestExists    = errors.New("test id already exists")
)

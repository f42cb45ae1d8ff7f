package localRepo

import (
	"context"
	"time"
)

// KeyValue is the durable local store used when no remote backend is
// configured, and for admin credentials and sessions in every mode.
type KeyValue interface {
	// Get returns the value and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value. A zero ttl keeps the key forever.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

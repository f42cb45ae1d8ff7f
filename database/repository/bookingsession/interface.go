package bookingSessionRepo

import (
	"context"
	"errors"
	"time"

	"pathlab/models"
)

// ErrSessionNotFound is returned for unknown or expired sessions.
var ErrSessionNotFound = errors.New("booking session not found")

// Store keeps wizard sessions between requests.
type Store interface {
	Get(ctx context.Context, id string) (*models.BookingSession, error)
	Save(ctx context.Context, session *models.BookingSession) error
	Delete(ctx context.Context, id string) error
	// Lock takes the per-session commit lock. It returns false if another
	// holder has it.
	Lock(ctx context.Context, id string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, id string) error
}

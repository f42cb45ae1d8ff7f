package bookingSessionRepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"pathlab/models"
)

func TestMemoryStoreSaveGetExpire(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	if err := store.Save(ctx, &models.BookingSession{SessionID: "s1", TestID: "t1"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := store.Get(ctx, "s1")
	if err != nil || got.TestID != "t1" {
		t.Fatalf("Get = %+v, %v", got, err)
	}

	got.TestID = "mutated"
	again, _ := store.Get(ctx, "s1")
	if again.TestID != "t1" {
		t.Fatal("Get must return a copy")
	}

	now = now.Add(2 * time.Minute)
	if _, err := store.Get(ctx, "s1"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected expiry, got %v", err)
	}
}

func TestMemoryStoreLock(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)

	ok, _ := store.Lock(ctx, "s1", time.Minute)
	if !ok {
		t.Fatal("first lock should succeed")
	}
	if ok, _ := store.Lock(ctx, "s1", time.Minute); ok {
		t.Fatal("second lock should fail while held")
	}
	_ = store.Unlock(ctx, "s1")
	if ok, _ := store.Lock(ctx, "s1", time.Minute); !ok {
		t.Fatal("lock should succeed after unlock")
	}
}

package localRepo

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"pathlab/models"
)

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "local.json")

	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := s.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, ok, err := reopened.Get(ctx, "k")
	if err != nil || !ok || string(got) != "v" {
		t.Fatalf("Get = %q, %v, %v", got, ok, err)
	}

	if err := reopened.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := reopened.Get(ctx, "k"); ok {
		t.Fatal("key still present after delete")
	}
}

func TestFileStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s, _ := NewFileStore("")
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	if err := s.Set(ctx, "session", []byte("1"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "session"); !ok {
		t.Fatal("expected key before expiry")
	}
	now = now.Add(2 * time.Minute)
	if _, ok, _ := s.Get(ctx, "session"); ok {
		t.Fatal("expected key to expire")
	}
}

func TestAppointmentArchive(t *testing.T) {
	ctx := context.Background()
	s, _ := NewFileStore("")
	archive := NewAppointmentArchive(s)

	appts, err := archive.Load(ctx)
	if err != nil || len(appts) != 0 {
		t.Fatalf("empty archive Load = %v, %v", appts, err)
	}

	want := []models.Appointment{{ID: "a1", TestName: "CBC", Price: 499, Status: models.StatusConfirmed}}
	if err := archive.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := archive.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 1 || got[0].ID != "a1" || got[0].Status != models.StatusConfirmed {
		t.Fatalf("Load = %+v", got)
	}
}

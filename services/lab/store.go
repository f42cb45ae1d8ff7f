package lab

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	localRepo "pathlab/database/repository/local"
	remoteRepo "pathlab/database/repository/remote"
	"pathlab/models"

	"go.uber.org/zap"
)

// Store is the single owner of the catalog and the appointment list. Reads
// are served from memory; mutations are applied in memory first and then
// mirrored to the remote backend, or to the local archive in fallback mode.
type Store struct {
	mu           sync.RWMutex
	tests        []models.LabTest
	appointments []models.Appointment
	loading      bool
	fallback     bool
	// dropped holds catalog ids deleted while loading, so Init does not
	// bring them back from the fetched data.
	dropped map[string]struct{}

	remote  remoteRepo.Repository // nil when not configured
	archive *localRepo.AppointmentArchive
	timeout time.Duration
	logger  *zap.Logger

	// archiveMu orders snapshot+write pairs on the local archive.
	archiveMu sync.Mutex

	syncMu sync.Mutex
	syncs  map[string]models.SyncState

	now func() time.Time
}

// NewStore builds an empty store. Call Init before serving reads. Without a
// remote backend the store is in fallback mode from the start.
func NewStore(remote remoteRepo.Repository, archive *localRepo.AppointmentArchive, timeout time.Duration, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Store{
		remote:   remote,
		archive:  archive,
		timeout:  timeout,
		logger:   logger,
		loading:  true,
		fallback: remote == nil,
		dropped:  make(map[string]struct{}),
		syncs:    make(map[string]models.SyncState),
		now:      time.Now,
	}
}

// Init hydrates the store. A missing or unreachable remote backend switches
// the store into fallback mode for the rest of the process lifetime.
func (s *Store) Init(ctx context.Context) {
	s.setLoading(true)
	defer s.setLoading(false)

	if s.remote == nil {
		s.logger.Warn("Remote backend not configured, using local fallback")
		s.enterFallback(ctx)
		return
	}

	rctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	tests, err := s.remote.ListTests(rctx)
	if err != nil {
		s.logger.Error("Failed to fetch tests, using local fallback", zap.Error(err))
		s.enterFallback(ctx)
		return
	}
	if len(tests) == 0 {
		tests = SeedTests()
		if err := s.remote.InsertTests(rctx, tests); err != nil {
			s.logger.Error("Failed to seed remote catalog", zap.Error(err))
		} else {
			s.logger.Info("Seeded remote catalog", zap.Int("tests", len(tests)))
		}
	}

	appts, err := s.remote.ListAppointments(rctx)
	if err != nil {
		s.logger.Error("Failed to fetch appointments, using local fallback", zap.Error(err))
		s.enterFallback(ctx)
		return
	}
	sortNewestFirst(appts)

	s.mu.Lock()
	s.adoptLocked(tests, appts)
	s.fallback = false
	nTests, nAppts := len(s.tests), len(s.appointments)
	s.mu.Unlock()

	s.logger.Info("Store hydrated from remote backend",
		zap.Int("tests", nTests), zap.Int("appointments", nAppts))
}

func (s *Store) enterFallback(ctx context.Context) {
	var appts []models.Appointment
	if s.archive != nil {
		loaded, err := s.archive.Load(ctx)
		if err != nil {
			s.logger.Error("Failed to read local appointment archive", zap.Error(err))
		}
		appts = loaded
	}
	sortNewestFirst(appts)

	s.mu.Lock()
	s.adoptLocked(SeedTests(), appts)
	s.fallback = true
	s.mu.Unlock()
}

// adoptLocked installs loaded data on top of whatever was written while
// loading. Live entries win over loaded ones with the same id. Caller holds
// s.mu.
func (s *Store) adoptLocked(tests []models.LabTest, appts []models.Appointment) {
	s.tests = mergeTests(tests, s.tests, s.dropped)
	s.appointments = mergeAppointments(appts, s.appointments)
	s.dropped = make(map[string]struct{})
}

func mergeTests(loaded, live []models.LabTest, dropped map[string]struct{}) []models.LabTest {
	liveIdx := make(map[string]int, len(live))
	for i, t := range live {
		liveIdx[t.ID] = i
	}
	used := make(map[string]bool, len(live))
	out := make([]models.LabTest, 0, len(loaded)+len(live))
	for _, t := range loaded {
		if _, gone := dropped[t.ID]; gone {
			continue
		}
		if i, ok := liveIdx[t.ID]; ok {
			t = live[i]
			used[t.ID] = true
		}
		out = append(out, t)
	}
	for _, t := range live {
		if !used[t.ID] {
			out = append(out, t)
		}
	}
	return out
}

// mergeAppointments keeps live records at the head, newest first, followed
// by loaded records not already present.
func mergeAppointments(loaded, live []models.Appointment) []models.Appointment {
	seen := make(map[string]bool, len(live))
	out := make([]models.Appointment, 0, len(loaded)+len(live))
	for _, a := range live {
		seen[a.ID] = true
		out = append(out, a)
	}
	for _, a := range loaded {
		if !seen[a.ID] {
			out = append(out, a)
		}
	}
	return out
}

func sortNewestFirst(appts []models.Appointment) {
	sort.SliceStable(appts, func(i, j int) bool {
		return appts[i].CreatedAt.After(appts[j].CreatedAt)
	})
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

// IsLoading reports whether initial hydration is still running.
func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// FallbackMode reports whether persistence is local-only.
func (s *Store) FallbackMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fallback
}

// Tests returns a copy of the catalog.
func (s *Store) Tests() []models.LabTest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.LabTest, len(s.tests))
	copy(out, s.tests)
	return out
}

// GetTestByID looks up one catalog entry.
func (s *Store) GetTestByID(id string) (models.LabTest, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tests {
		if t.ID == id {
			return t, true
		}
	}
	return models.LabTest{}, false
}

// FilterTests matches query case-insensitively against name and description.
// An empty category or "All" keeps every category.
func (s *Store) FilterTests(query, category string) []models.LabTest {
	q := strings.ToLower(strings.TrimSpace(query))
	all := category == "" || strings.EqualFold(category, "All")

	var out []models.LabTest
	for _, t := range s.Tests() {
		if !all && !strings.EqualFold(string(t.Category), category) {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(t.Name), q) &&
			!strings.Contains(strings.ToLower(t.Description), q) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Categories lists the categories the catalog uses, in order of first
// appearance.
func (s *Store) Categories() []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[models.Category]bool, len(models.Categories))
	var out []models.Category
	for _, t := range s.tests {
		if seen[t.Category] {
			continue
		}
		seen[t.Category] = true
		out = append(out, t.Category)
	}
	return out
}

// Appointments returns a copy of the list, newest first.
func (s *Store) Appointments() []models.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Appointment, len(s.appointments))
	copy(out, s.appointments)
	return out
}

// GetAppointmentByID looks up one appointment in memory.
func (s *Store) GetAppointmentByID(id string) (models.Appointment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.appointments {
		if a.ID == id {
			return a, true
		}
	}
	return models.Appointment{}, false
}

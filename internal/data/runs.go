package data

import (
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"lbo-model/internal/model"
	"lbo-model/internal/projection"
	"lbo-model/internal/sensitivity"
)

// StoredRun is one solved model kept for later retrieval (statement export,
// PDF rendering) without re-running the engine.
type StoredRun struct {
	ID        string
	CreatedAt time.Time

	Input       model.Assumptions
	Result      *projection.Result
	Sensitivity *sensitivity.Analysis
}

type runEntry struct {
	run       *StoredRun
	expiresAt time.Time
}

// RunStore provides in-memory retention for completed model runs.
//
// Runs expire after the configured TTL; the store is not a system of record,
// only a short-lived handle so follow-up requests can reference a run by ID.
type RunStore struct {
	mu    sync.RWMutex
	store map[string]*runEntry
	ttl   time.Duration
}

var globalRuns *RunStore
var runsOnce sync.Once

// GetRunStore returns the global run store instance.
//
// The retention window defaults to one hour and can be overridden with the
// RUN_TTL environment variable (a time.ParseDuration string).
func GetRunStore() *RunStore {
	runsOnce.Do(func() {
		ttl := 1 * time.Hour
		if ttlStr := os.Getenv("RUN_TTL"); ttlStr != "" {
			if parsed, err := time.ParseDuration(ttlStr); err == nil {
				ttl = parsed
			}
		}

		globalRuns = &RunStore{
			store: make(map[string]*runEntry),
			ttl:   ttl,
		}

		// Start cleanup goroutine
		go globalRuns.cleanup()
	})

	return globalRuns
}

// NewRunStore builds an isolated store with an explicit TTL. The global
// store is preferred; this exists for tests and embedded use.
func NewRunStore(ttl time.Duration) *RunStore {
	return &RunStore{
		store: make(map[string]*runEntry),
		ttl:   ttl,
	}
}

// Put stores a run under a fresh ID and returns that ID.
func (s *RunStore) Put(run *StoredRun) string {
	if s == nil || run == nil {
		return ""
	}

	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	run.ID = id
	run.CreatedAt = time.Now()
	s.store[id] = &runEntry{
		run:       run,
		expiresAt: run.CreatedAt.Add(s.ttl),
	}
	return id
}

// Get retrieves a stored run if present and not expired.
func (s *RunStore) Get(id string) (*StoredRun, bool) {
	if s == nil {
		return nil, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.store[id]
	if !exists {
		return nil, false
	}

	if time.Now().After(entry.expiresAt) {
		return nil, false
	}

	return entry.run, true
}

// Clear removes all stored runs.
func (s *RunStore) Clear() {
	if s == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.store = make(map[string]*runEntry)
}

// Len reports the number of retained runs, expired entries included until
// the next cleanup pass.
func (s *RunStore) Len() int {
	if s == nil {
		return 0
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.store)
}

// cleanup periodically removes expired entries
func (s *RunStore) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()
		now := time.Now()
		for id, entry := range s.store {
			if now.After(entry.expiresAt) {
				delete(s.store, id)
			}
		}
		s.mu.Unlock()
	}
}

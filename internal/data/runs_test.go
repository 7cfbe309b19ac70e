package data

import (
	"testing"
	"time"

	"lbo-model/internal/model"
	"lbo-model/internal/projection"
)

func storedRun(company string) *StoredRun {
	return &StoredRun{
		Input:  model.Assumptions{Company: company},
		Result: &projection.Result{Company: company},
	}
}

func TestRunStorePutGet(t *testing.T) {
	s := NewRunStore(time.Minute)

	id := s.Put(storedRun("Acme Corp"))
	if id == "" {
		t.Fatal("expected a run ID")
	}

	got, ok := s.Get(id)
	if !ok {
		t.Fatal("expected run to be retrievable")
	}
	if got.ID != id {
		t.Errorf("expected ID %s, got %s", id, got.ID)
	}
	if got.Result.Company != "Acme Corp" {
		t.Errorf("unexpected run payload: %+v", got.Result)
	}
	if got.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestRunStoreDistinctIDs(t *testing.T) {
	s := NewRunStore(time.Minute)

	a := s.Put(storedRun("A"))
	b := s.Put(storedRun("B"))
	if a == b {
		t.Fatalf("expected distinct IDs, both were %s", a)
	}
	if s.Len() != 2 {
		t.Errorf("expected 2 retained runs, got %d", s.Len())
	}
}

func TestRunStoreExpiry(t *testing.T) {
	s := NewRunStore(10 * time.Millisecond)

	id := s.Put(storedRun("Acme Corp"))
	time.Sleep(25 * time.Millisecond)

	if _, ok := s.Get(id); ok {
		t.Error("expected expired run to be a miss")
	}
}

func TestRunStoreMiss(t *testing.T) {
	s := NewRunStore(time.Minute)
	if _, ok := s.Get("no-such-run"); ok {
		t.Error("expected miss for unknown ID")
	}
}

func TestRunStoreClear(t *testing.T) {
	s := NewRunStore(time.Minute)
	id := s.Put(storedRun("Acme Corp"))

	s.Clear()

	if _, ok := s.Get(id); ok {
		t.Error("expected cleared store to miss")
	}
	if s.Len() != 0 {
		t.Errorf("expected empty store, got %d", s.Len())
	}
}

func TestRunStoreNilSafe(t *testing.T) {
	var s *RunStore

	if id := s.Put(storedRun("Acme Corp")); id != "" {
		t.Errorf("nil store should not mint IDs, got %s", id)
	}
	if _, ok := s.Get("x"); ok {
		t.Error("nil store should miss")
	}
	if s.Len() != 0 {
		t.Error("nil store should be empty")
	}
	s.Clear()
}

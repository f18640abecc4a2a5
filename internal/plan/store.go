package plan

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"capillaire-ai/internal/storage"
)

// planKey is the key the serialized plan lives under in the KV store.
const planKey = "capillaire_plan"

// ErrNoActivePlan is returned by mutations when no plan is loaded.
var ErrNoActivePlan = errors.New("no active plan")

// InvalidDayError is returned when a toggle targets a day no task carries.
type InvalidDayError struct {
	Day int
}

func (e *InvalidDayError) Error() string {
	return fmt.Sprintf("no task for day %d", e.Day)
}

// Store owns the single canonical plan and persists every mutation
// synchronously. Handlers run in per-update goroutines, so access is
// serialized with a mutex.
type Store struct {
	mu      sync.Mutex
	kv      storage.Store
	current *Plan
}

// NewStore creates a Store and loads any previously persisted plan. A
// corrupt stored value is discarded and treated as absent.
func NewStore(kv storage.Store) *Store {
	s := &Store{kv: kv}
	s.load()
	return s
}

func (s *Store) load() {
	raw, err := s.kv.Get(planKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("Warning: failed to read stored plan: %v", err)
		}
		return
	}

	var p Plan
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		log.Printf("Warning: discarding corrupt stored plan: %v", err)
		return
	}
	s.current = &p
}

// Current returns a copy of the canonical plan, or nil when none is active.
func (s *Store) Current() *Plan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// Commit replaces the canonical plan wholesale and persists it.
func (s *Store) Commit(p *Plan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(p); err != nil {
		return err
	}
	s.current = p.Clone()
	return nil
}

// ToggleTask flips the Completed flag of the task scheduled for the given
// day, persists the updated plan and returns a copy of it. Every other
// field is left untouched.
func (s *Store) ToggleTask(day int) (*Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, ErrNoActivePlan
	}

	updated := s.current.Clone()
	found := false
	for i := range updated.Tasks {
		if updated.Tasks[i].Day == day {
			updated.Tasks[i].Completed = !updated.Tasks[i].Completed
			found = true
			break
		}
	}
	if !found {
		return nil, &InvalidDayError{Day: day}
	}

	if err := s.persist(updated); err != nil {
		return nil, err
	}
	s.current = updated
	return updated.Clone(), nil
}

// Clear discards the canonical plan and its persisted representation.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(planKey); err != nil {
		return fmt.Errorf("failed to clear stored plan: %w", err)
	}
	s.current = nil
	return nil
}

func (s *Store) persist(p *Plan) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}
	if err := s.kv.Set(planKey, string(data)); err != nil {
		return fmt.Errorf("failed to persist plan: %w", err)
	}
	return nil
}

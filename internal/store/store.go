// Package store is the injectable client-side cache of server snapshots.
// Nothing here is authoritative: entries are replaced wholesale on refetch
// and invalidated after settlement.
package store

import (
	"sync"

	"trucker-client/internal/run/model"
)

type Store struct {
	mu      sync.RWMutex
	orders  map[string]model.Order
	runs    map[string]model.Run
	profile *model.Profile
}

func New() *Store {
	return &Store{
		orders: make(map[string]model.Order),
		runs:   make(map[string]model.Run),
	}
}

func (s *Store) PutOrder(o model.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID] = o
}

func (s *Store) Order(id string) (model.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	return o, ok
}

func (s *Store) PutRun(r model.Run) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[r.ID] = r
}

func (s *Store) Run(id string) (model.Run, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.runs[id]
	return r, ok
}

// ActiveRun returns the cached non-terminal run, if any. The server enforces
// at most one; the cache mirrors that but is only a hint, so callers must
// re-check with the server before creating a new run.
func (s *Store) ActiveRun() (model.Run, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.runs {
		if !r.Status.IsTerminal() {
			return r, true
		}
	}
	return model.Run{}, false
}

func (s *Store) PutProfile(p model.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = &p
}

func (s *Store) Profile() (model.Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return model.Profile{}, false
	}
	return *s.profile, true
}

// InvalidateProfile drops the cached profile so the next read refetches
// balance and reputation after settlement.
func (s *Store) InvalidateProfile() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = nil
}

package store

import (
	"sort"
	"sync"

	"cricket-live-service/internal/viewmodel"
)

// MemoryStore keeps the latest emitted view model per match in memory.
type MemoryStore struct {
	mu    sync.RWMutex
	views map[string]viewmodel.ViewModel
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		views: make(map[string]viewmodel.ViewModel),
	}
}

// Put stores vm unless a newer version from the same session is already held. A different
// session id means the match was re-tracked and always replaces the stored view.
func (s *MemoryStore) Put(vm viewmodel.ViewModel) bool {
	if vm.MatchID == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.views[vm.MatchID]; ok &&
		existing.SessionID == vm.SessionID && existing.Version >= vm.Version {
		return false
	}
	s.views[vm.MatchID] = vm
	return true
}

// Get retrieves the latest view model for a match.
func (s *MemoryStore) Get(matchID string) (viewmodel.ViewModel, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	vm, ok := s.views[matchID]
	return vm, ok
}

// List returns the stored view models ordered by match id.
func (s *MemoryStore) List() []viewmodel.ViewModel {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]viewmodel.ViewModel, 0, len(s.views))
	for _, vm := range s.views {
		result = append(result, vm)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].MatchID < result[j].MatchID })
	return result
}

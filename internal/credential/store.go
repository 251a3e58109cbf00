package credential

import (
	"fmt"
	"strings"
	"sync"

	"github.com/liliang-cn/docchat/internal/repository"
)

// settingsKey is the single persistent key holding the credential.
const settingsKey = "credential"

// Store owns the lifecycle of the opaque backend credential. The value is
// loaded once at construction, held in memory for the life of the process,
// and written back on every explicit save. The value itself is opaque: no
// local shape validation happens, a bad credential only surfaces as a
// backend-rejected upload or query.
type Store struct {
	mu       sync.RWMutex
	settings *repository.SettingsRepository
	value    string
}

// NewStore creates a store and loads any persisted credential.
func NewStore(settings *repository.SettingsRepository) (*Store, error) {
	s := &Store{settings: settings}

	value, ok, err := settings.Get(settingsKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load credential: %w", err)
	}
	if ok {
		s.value = strings.TrimSpace(value)
	}

	return s, nil
}

// Value returns the current credential. Callers that gate on the
// credential must read it at call time, not earlier, so a save that
// happens mid-flow is observed.
func (s *Store) Value() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value, s.value != ""
}

// Present reports whether a credential is held.
func (s *Store) Present() bool {
	_, ok := s.Value()
	return ok
}

// Save writes the credential to memory and to the persistent store.
// Saving the same value twice is harmless.
func (s *Store) Save(value string) error {
	value = strings.TrimSpace(value)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.settings.Set(settingsKey, value); err != nil {
		return fmt.Errorf("failed to persist credential: %w", err)
	}
	s.value = value

	return nil
}

package status

import (
	"sync"

	"github.com/liliang-cn/docchat/internal/domain"
)

// Surface is a single-slot mailbox for the most recent recoverable
// failure. It carries no retry logic; it only holds what the user should
// currently see.
type Surface struct {
	mu      sync.RWMutex
	current *domain.Alert
}

// NewSurface creates an empty surface.
func NewSurface() *Surface {
	return &Surface{}
}

// Raise replaces any currently held alert. Latest wins; nothing queues.
func (s *Surface) Raise(alert domain.Alert) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &alert
}

// Dismiss clears the held alert unconditionally.
func (s *Surface) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

// Current returns the held alert, if any.
func (s *Surface) Current() (domain.Alert, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return domain.Alert{}, false
	}
	return *s.current, true
}

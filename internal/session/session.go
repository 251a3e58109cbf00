package session

import (
	"fmt"
	"sync"

	"github.com/liliang-cn/docchat/internal/domain"
)

// Session owns the active document selection and the ordered transcript
// for it. The transcript is non-empty only while a document is selected;
// every selection change resets it. Nothing outside this package mutates
// the transcript directly.
type Session struct {
	mu         sync.RWMutex
	active     string
	transcript []domain.Message
	generation uint64
}

// New creates a session in the unselected state.
func New() *Session {
	return &Session{}
}

// Select drives the selection state machine:
//   - unselected -> selected: transcript reset to a single synthesized
//     assistant acknowledgement of the document
//   - re-selecting the active document deselects it (toggle-off)
//   - selecting a different document behaves like a fresh selection;
//     no cross-document history is retained
func (s *Session) Select(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++

	if s.active == name {
		s.active = ""
		s.transcript = nil
		return
	}

	s.active = name
	s.transcript = []domain.Message{
		domain.NewMessage(domain.RoleAssistant,
			fmt.Sprintf("Now chatting about **%s**. Ask me anything about this document.", name)),
	}
}

// Deselect clears the active document and empties the transcript.
// Catalog deletion of the active document goes through here.
func (s *Session) Deselect() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == "" {
		return
	}
	s.generation++
	s.active = ""
	s.transcript = nil
}

// Active returns the active document name, if any.
func (s *Session) Active() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active, s.active != ""
}

// Selection returns the active document together with the generation
// it belongs to, read under a single lock. Callers that tag work with
// the selection must use this rather than separate Active and
// Generation reads, which could straddle a selection change.
func (s *Session) Selection() (string, uint64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active, s.generation, s.active != ""
}

// Generation returns a counter that increments on every selection
// change. The dispatcher uses it to detect that a response arrived for a
// selection that no longer exists.
func (s *Session) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// AppendUser appends a user message to the transcript.
func (s *Session) AppendUser(text string) error {
	return s.append(domain.RoleUser, text)
}

// AppendAssistant appends an assistant message to the transcript.
func (s *Session) AppendAssistant(text string) error {
	return s.append(domain.RoleAssistant, text)
}

func (s *Session) append(role domain.Role, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == "" {
		return domain.ErrNoActiveDocument
	}
	s.transcript = append(s.transcript, domain.NewMessage(role, text))
	return nil
}

// Transcript returns a copy of the ordered message sequence.
func (s *Session) Transcript() []domain.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

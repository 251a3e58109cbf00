package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a transcript message.
type Role string

// Message roles
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single transcript entry. Messages are immutable
// once appended; ordering in the transcript is append-only.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"` // markdown-capable
	CreatedAt time.Time `json:"created_at"`
}

// NewMessage creates a message with a fresh ID and timestamp.
func NewMessage(role Role, content string) Message {
	return Message{
		ID:        uuid.New().String(),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// QueryResponse is the backend's answer to a document query.
type QueryResponse struct {
	Filename string `json:"filename"`
	Query    string `json:"query"`
	Answer   string `json:"answer"`
}

package assistant

import (
	"sync"

	"github.com/google/uuid"

	"github.com/neonclouds/neonclouds-backend/pkg/enums"
	pkgerrors "github.com/neonclouds/neonclouds-backend/pkg/errors"
)

const greeting = "Yo! I'm Cloud Master. Need help finding the perfect flavor or coil? Hit me up! 💨"

// Message is one transcript entry.
type Message struct {
	ID   string         `json:"id"`
	Role enums.ChatRole `json:"role"`
	Text string         `json:"text"`
}

// Transcript is a session's append-only chat history, seeded with the
// fixed greeting. Entries are never mutated or reordered after append.
// Methods are safe for concurrent use.
type Transcript struct {
	mu       sync.Mutex
	messages []Message
	pending  bool
}

// NewTranscript seeds the history with the model greeting.
func NewTranscript() *Transcript {
	return &Transcript{
		messages: []Message{{
			ID:   uuid.NewString(),
			Role: enums.ChatRoleModel,
			Text: greeting,
		}},
	}
}

// Messages returns the history in append order.
func (t *Transcript) Messages() []Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Pending reports whether a reply is in flight.
func (t *Transcript) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending
}

// beginTurn appends the user message and marks the transcript pending.
// A turn already in flight is rejected so sends cannot overlap.
func (t *Transcript) beginTurn(text string) (Message, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.pending {
		return Message{}, pkgerrors.New(pkgerrors.CodeStateConflict, "a reply is already in flight")
	}
	msg := Message{ID: uuid.NewString(), Role: enums.ChatRoleUser, Text: text}
	t.messages = append(t.messages, msg)
	t.pending = true
	return msg, nil
}

// completeTurn appends the model reply and clears the pending flag.
func (t *Transcript) completeTurn(reply string) Message {
	t.mu.Lock()
	defer t.mu.Unlock()

	msg := Message{ID: uuid.NewString(), Role: enums.ChatRoleModel, Text: reply}
	t.messages = append(t.messages, msg)
	t.pending = false
	return msg
}

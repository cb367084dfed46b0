// Package notify delivers campaign messages. Transport implementations live
// behind the Notifier interface; the qualification logic does not care how
// a message travels.
package notify

import (
	"context"
	"sync"
)

// Notifier is the message delivery contract.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Message is a captured delivery, used by the memory notifier.
type Message struct {
	To      string
	Subject string
	Body    string
}

// MemoryNotifier collects messages instead of delivering them. Useful for
// tests and dry runs.
type MemoryNotifier struct {
	mu       sync.Mutex
	messages []Message

	// Err, when set, fails every Send.
	Err error
}

func NewMemoryNotifier() *MemoryNotifier { return &MemoryNotifier{} }

func (m *MemoryNotifier) Send(ctx context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.messages = append(m.messages, Message{To: to, Subject: subject, Body: body})
	return nil
}

// Messages returns a copy of what was sent so far.
func (m *MemoryNotifier) Messages() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, len(m.messages))
	copy(out, m.messages)
	return out
}

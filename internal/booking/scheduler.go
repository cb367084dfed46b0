// Package booking reserves interview slots for qualified candidates.
// Scheduling backends live behind the SchedulerService interface and are
// selected by configuration, not by parallel copies of the trigger logic.
package booking

import (
	"context"
	"sync"
	"time"
)

// Request carries everything a booking backend needs to reserve a slot.
type Request struct {
	StartsAt time.Time
	Name     string
	Email    string
	Phone    string
	Role     string
	Timezone string
}

// SchedulerService is the meeting reservation contract.
type SchedulerService interface {
	Name() string
	Book(ctx context.Context, req Request) error
}

// MemoryScheduler records booking requests instead of placing them.
// Useful for tests.
type MemoryScheduler struct {
	mu       sync.Mutex
	requests []Request

	// Err, when set, fails every Book.
	Err error
}

func NewMemoryScheduler() *MemoryScheduler { return &MemoryScheduler{} }

func (m *MemoryScheduler) Name() string { return "memory" }

func (m *MemoryScheduler) Book(ctx context.Context, req Request) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.requests = append(m.requests, req)
	return nil
}

// Requests returns a copy of what was booked so far.
func (m *MemoryScheduler) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.requests))
	copy(out, m.requests)
	return out
}

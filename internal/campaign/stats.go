package campaign

import (
	"sync"
	"time"
)

// Stats accumulates campaign counters across cycles. It is the only state
// the HTTP surface may read; the ledger and summary files stay single-writer.
type Stats struct {
	mu sync.Mutex
	s  Snapshot
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Cycles       int       `json:"cycles"`
	Targets      int       `json:"targets"`
	Launched     int       `json:"launched"`
	LaunchErrors int       `json:"launch_errors"`
	Timeouts     int       `json:"timeouts"`
	Answered     int       `json:"answered"`
	Failed       int       `json:"failed"`
	NoAnswer     int       `json:"no_answer"`
	Qualified    int       `json:"qualified"`
	Notified     int       `json:"notifications_sent"`
	Booked       int       `json:"bookings"`
	LastCycleAt  time.Time `json:"last_cycle_at"`
}

func NewStats() *Stats { return &Stats{} }

func (st *Stats) CycleStarted(targets int) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.Cycles++
	st.s.Targets += targets
	st.s.LastCycleAt = time.Now()
}

func (st *Stats) Launched()      { st.add(func(s *Snapshot) { s.Launched++ }) }
func (st *Stats) LaunchError()   { st.add(func(s *Snapshot) { s.LaunchErrors++ }) }
func (st *Stats) Timeout()       { st.add(func(s *Snapshot) { s.Timeouts++ }) }
func (st *Stats) Answered()      { st.add(func(s *Snapshot) { s.Answered++ }) }
func (st *Stats) Failed()        { st.add(func(s *Snapshot) { s.Failed++ }) }
func (st *Stats) NoAnswer()      { st.add(func(s *Snapshot) { s.NoAnswer++ }) }
func (st *Stats) Qualified()     { st.add(func(s *Snapshot) { s.Qualified++ }) }
func (st *Stats) Notified(n int) { st.add(func(s *Snapshot) { s.Notified += n }) }
func (st *Stats) Booked()        { st.add(func(s *Snapshot) { s.Booked++ }) }

func (st *Stats) add(f func(*Snapshot)) {
	st.mu.Lock()
	defer st.mu.Unlock()
	f(&st.s)
}

// Snapshot returns a copy safe to serialize.
func (st *Stats) Snapshot() Snapshot {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.s
}

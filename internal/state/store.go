package state

import (
	"sync"
	"time"
)

// DefaultErrorTimeout is how long an error banner stays up on its own.
const DefaultErrorTimeout = 3000 * time.Millisecond

// Transition maps one snapshot to the next.
type Transition func(Snapshot) Snapshot

// Store coordinates concurrent transitions of the snapshot and owns the
// error auto-clear timer.
type Store struct {
	mu           sync.RWMutex
	snapshot     Snapshot
	errorTimeout time.Duration
	timer        *time.Timer
	changes      chan struct{}
	closed       bool
}

// NewStore builds an empty store. A non-positive errorTimeout uses
// DefaultErrorTimeout.
func NewStore(errorTimeout time.Duration) *Store {
	if errorTimeout <= 0 {
		errorTimeout = DefaultErrorTimeout
	}
	return &Store{
		snapshot:     Snapshot{Pending: map[int64]struct{}{}},
		errorTimeout: errorTimeout,
		changes:      make(chan struct{}, 1),
	}
}

// ErrorTimeout returns the banner auto-clear delay.
func (s *Store) ErrorTimeout() time.Duration {
	return s.errorTimeout
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Clone()
}

// Apply runs fn under the write lock and publishes the result. When fn raises
// a new notice the auto-clear delay restarts.
func (s *Store) Apply(fn Transition) Snapshot {
	s.mu.Lock()
	before := s.snapshot.Notice
	s.snapshot = fn(s.snapshot)
	after := s.snapshot.Notice
	switch {
	case after.Active() && after.Seq != before.Seq:
		s.scheduleClearLocked(after.Seq)
	case !after.Active():
		s.stopTimerLocked()
	}
	out := s.snapshot.Clone()
	s.mu.Unlock()

	s.notify()
	return out
}

// Dismiss clears the banner immediately and cancels the pending auto-clear.
func (s *Store) Dismiss() {
	s.Apply(Snapshot.Dismissed)
}

// Changes signals after every applied transition. Bursts are coalesced into a
// single pending signal, so readers should re-read Snapshot on receipt.
func (s *Store) Changes() <-chan struct{} {
	return s.changes
}

// Close stops the auto-clear timer. Later transitions still apply but no
// longer schedule timers.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimerLocked()
	s.closed = true
}

func (s *Store) scheduleClearLocked(seq uint64) {
	s.stopTimerLocked()
	if s.closed {
		return
	}
	s.timer = time.AfterFunc(s.errorTimeout, func() {
		s.expire(seq)
	})
}

func (s *Store) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Store) expire(seq uint64) {
	s.mu.Lock()
	if !s.snapshot.Notice.Active() || s.snapshot.Notice.Seq != seq {
		s.mu.Unlock()
		return
	}
	s.snapshot = s.snapshot.Dismissed()
	s.timer = nil
	s.mu.Unlock()

	s.notify()
}

func (s *Store) notify() {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}

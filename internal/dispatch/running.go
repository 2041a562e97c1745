package dispatch

import (
	"sync"

	"github.com/davrosz/actionhttp/internal/action"
)

// runningSet tracks the tickets of dispatches currently in flight. Membership
// is the sole cancellation mechanism: removal before a checkpoint aborts the
// dispatch at that checkpoint.
type runningSet struct {
	mu      sync.RWMutex
	members map[action.Ticket]struct{}
}

func newRunningSet() *runningSet {
	return &runningSet{
		members: make(map[action.Ticket]struct{}),
	}
}

func (s *runningSet) Register(t action.Ticket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[t] = struct{}{}
}

func (s *runningSet) IsRunning(t action.Ticket) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.members[t]
	return ok
}

// Cancel removes the ticket from the set. Cancelling an absent ticket, or
// the same ticket twice, is a no-op.
func (s *runningSet) Cancel(t action.Ticket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.members, t)
}

// Unregister runs unconditionally at dispatch teardown so no stale membership
// outlives a completed dispatch.
func (s *runningSet) Unregister(t action.Ticket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.members, t)
}

func (s *runningSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.members)
}

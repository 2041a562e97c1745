package action

import (
	"reflect"
	"sync"
	"sync/atomic"
)

var ticketSeq atomic.Uint64

// Ticket identifies one dispatch for cancellation. Tickets are opaque and
// never reused within a process.
type Ticket uint64

// Handle wraps one caller-supplied action for a single dispatch. A handle is
// single-use: it carries the ticket the running set is keyed by and the
// claimed/terminal bookkeeping for its one lifecycle.
type Handle struct {
	mu      sync.Mutex
	act     any
	ticket  Ticket
	claimed atomic.Bool
}

func NewHandle(act any) *Handle {
	return &Handle{
		act:    act,
		ticket: Ticket(ticketSeq.Add(1)),
	}
}

// Action returns the current action value. Response mapping may have replaced
// it since the handle was created.
func (h *Handle) Action() any {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.act
}

// Replace swaps in the action value produced by response mapping.
func (h *Handle) Replace(act any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.act = act
}

// Ticket returns the handle's cancellation ticket.
func (h *Handle) Ticket() Ticket {
	return h.ticket
}

// Claim marks the handle dispatched. It returns false if the handle was
// already claimed; a handle never runs twice.
func (h *Handle) Claim() bool {
	return h.claimed.CompareAndSwap(false, true)
}

// ActionType returns the concrete type of the wrapped action, the key helpers
// are cached by.
func (h *Handle) ActionType() reflect.Type {
	h.mu.Lock()
	defer h.mu.Unlock()
	return reflect.TypeOf(h.act)
}

package dispatch

import "github.com/davrosz/actionhttp/internal/action"

// Callback receives lifecycle events for every dispatch through a Core.
// For any one handle, OnStart precedes all other callbacks, OnProgress values
// are strictly increasing, and at most one terminal callback arrives; a
// canceled dispatch receives none.
type Callback interface {
	OnStart(h *action.Handle)
	OnProgress(h *action.Handle, percent int)
	OnSuccess(h *action.Handle)
	OnError(h *action.Handle, err error)
}

// Callbacks adapts optional functions into a Callback. Nil fields are skipped.
type Callbacks struct {
	Start    func(h *action.Handle)
	Progress func(h *action.Handle, percent int)
	Success  func(h *action.Handle)
	Error    func(h *action.Handle, err error)
}

func (c Callbacks) OnStart(h *action.Handle) {
	if c.Start != nil {
		c.Start(h)
	}
}

func (c Callbacks) OnProgress(h *action.Handle, percent int) {
	if c.Progress != nil {
		c.Progress(h, percent)
	}
}

func (c Callbacks) OnSuccess(h *action.Handle) {
	if c.Success != nil {
		c.Success(h)
	}
}

func (c Callbacks) OnError(h *action.Handle, err error) {
	if c.Error != nil {
		c.Error(h, err)
	}
}

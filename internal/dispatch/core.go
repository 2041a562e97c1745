package dispatch

import (
	"context"
	"strings"

	"github.com/davrosz/actionhttp/internal/action"
	"github.com/davrosz/actionhttp/internal/convert"
	"github.com/davrosz/actionhttp/internal/httpx"
)

// Status is the terminal state of one dispatch.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusCanceled  Status = "canceled"
)

// Result reports how a dispatch ended. Err is set only for StatusFailed and
// is always an *InternalError or *RequestError.
type Result struct {
	Status Status
	Err    error
}

// Core executes action dispatches against a shared transport. Dispatch is
// safe to call from many goroutines at once; the helper cache and running set
// are the only shared state and tolerate concurrent use.
type Core struct {
	baseURL   string
	client    httpx.Client
	converter convert.Converter
	callback  Callback
	cfg       Config

	helpers *helperCache
	running *runningSet
}

func NewCore(baseURL string, client httpx.Client, converter convert.Converter, producer action.Producer, callback Callback, cfg Config) (*Core, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, ErrBaseURLRequired
	}
	if client == nil {
		return nil, ErrClientRequired
	}
	if converter == nil {
		return nil, ErrConverterRequired
	}
	if callback == nil {
		callback = Callbacks{}
	}
	return &Core{
		baseURL:   baseURL,
		client:    client,
		converter: converter,
		callback:  callback,
		cfg:       cfg.WithDefaults(),
		helpers:   newHelperCache(producer),
		running:   newRunningSet(),
	}, nil
}

// Dispatch runs one action's full lifecycle and blocks until its terminal
// state. Callers run concurrent actions by dispatching from their own
// goroutines.
func (c *Core) Dispatch(ctx context.Context, h *action.Handle) Result {
	if h == nil {
		return Result{Status: StatusFailed, Err: &InternalError{Err: ErrNilHandle}}
	}
	if !h.Claim() {
		// The handle already reached a terminal state; emitting anything
		// here would violate callback ordering for its first dispatch.
		return Result{Status: StatusFailed, Err: &InternalError{Err: ErrHandleReused}}
	}

	c.callback.OnStart(h)

	ticket := h.Ticket()
	c.running.Register(ticket)
	defer c.running.Unregister(ticket)

	helper, err := c.helpers.Resolve(h.ActionType())
	if err != nil {
		return c.fail(h, &InternalError{Err: err})
	}

	builder := httpx.NewRequestBuilder(c.baseURL, c.converter)
	if err := helper.FillRequest(builder, h.Action()); err != nil {
		return c.fail(h, &InternalError{Err: err})
	}
	req, err := builder.Build()
	if err != nil {
		return c.fail(h, &InternalError{Err: err})
	}

	// Checkpoint: cancel observed here skips the transport entirely.
	if !c.running.IsRunning(ticket) {
		return Result{Status: StatusCanceled}
	}

	gate := newProgressGate(c.cfg.ProgressThreshold)
	resp, execErr := c.client.Execute(ctx, req, func(percent int) {
		if gate.ShouldEmit(percent) {
			c.callback.OnProgress(h, percent)
		}
	})

	// Checkpoint: cancel that landed while the transport ran discards the
	// response, fault or not.
	if !c.running.IsRunning(ticket) {
		return Result{Status: StatusCanceled}
	}

	if execErr != nil {
		return c.fail(h, &RequestError{Err: execErr})
	}
	if !resp.Successful() {
		return c.fail(h, &RequestError{Status: resp.Status, Reason: resp.Reason})
	}

	updated, err := helper.OnResponse(h.Action(), resp, c.converter)
	if err != nil {
		return c.fail(h, &InternalError{Err: err})
	}
	h.Replace(updated)

	c.callback.OnSuccess(h)
	return Result{Status: StatusSucceeded}
}

// Cancel requests best-effort cancellation of an in-flight dispatch. It never
// blocks; the dispatch observes the cancel at its next checkpoint. Cancelling
// a completed or never-dispatched handle is a no-op.
func (c *Core) Cancel(h *action.Handle) {
	if h == nil {
		return
	}
	c.running.Cancel(h.Ticket())
}

// Running reports whether the handle's dispatch is currently in flight.
func (c *Core) Running(h *action.Handle) bool {
	if h == nil {
		return false
	}
	return c.running.IsRunning(h.Ticket())
}

// RunningCount reports how many dispatches are in flight.
func (c *Core) RunningCount() int {
	return c.running.Len()
}

func (c *Core) fail(h *action.Handle, err error) Result {
	c.callback.OnError(h, err)
	return Result{Status: StatusFailed, Err: err}
}

package dispatch

import (
	"errors"
	"fmt"
)

var (
	ErrClientRequired    = errors.New("dispatch: client required")
	ErrConverterRequired = errors.New("dispatch: converter required")
	ErrBaseURLRequired   = errors.New("dispatch: base url required")
	ErrNilHandle         = errors.New("dispatch: nil handle")
	ErrHandleReused      = errors.New("dispatch: handle already dispatched")
	ErrNoProducer        = errors.New("dispatch: no helper producer configured")
	ErrHelperUnavailable = errors.New("dispatch: helper unavailable")
)

// InternalError marks a configuration or wiring defect: helper resolution
// failed, request building failed, or response mapping faulted. It is never
// retriable and is distinct from request-level failures.
type InternalError struct {
	Err error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("dispatch: internal: %v", e.Err)
}

func (e *InternalError) Unwrap() error { return e.Err }

// RequestError reports an unsuccessful outcome at the request level: either a
// non-2xx response (Status and Reason set) or a transport fault (wrapped in
// Err with Status zero).
type RequestError struct {
	Status int
	Reason string
	Err    error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("dispatch: request failed: %v", e.Err)
	}
	return fmt.Sprintf("dispatch: request failed: status=%d reason=%q", e.Status, e.Reason)
}

func (e *RequestError) Unwrap() error { return e.Err }

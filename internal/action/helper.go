package action

import (
	"reflect"

	"github.com/davrosz/actionhttp/internal/convert"
	"github.com/davrosz/actionhttp/internal/httpx"
)

// Helper fills outgoing requests from, and maps responses onto, one action
// type. Helpers are resolved once per type and must be immutable and safe for
// concurrent reuse across dispatches.
type Helper interface {
	// FillRequest populates the builder from the action's fields.
	FillRequest(b *httpx.RequestBuilder, act any) error
	// OnResponse maps the response onto the action. It may mutate act in place
	// or return a replacement value; either way the returned value is the
	// action the caller observes afterward.
	OnResponse(act any, resp *httpx.Response, conv convert.Converter) (any, error)
}

// Producer builds the Helper for an action type. It is injected at core
// construction; lookup failures are configuration faults, not request faults.
type Producer interface {
	Produce(t reflect.Type) (Helper, error)
}

// ProducerFunc adapts a function into a Producer.
type ProducerFunc func(t reflect.Type) (Helper, error)

func (f ProducerFunc) Produce(t reflect.Type) (Helper, error) {
	return f(t)
}

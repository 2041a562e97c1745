// Package dispatch owns the execution lifecycle of actions.
//
// Ownership boundary:
// - per-dispatch lifecycle: start, request build, transport call, response
//   mapping, terminal outcome
// - helper resolution and caching
// - cooperative cancellation via the running set
// - progress throttling
//
// Lifecycle order:
// - OnStart -> register -> resolve helper -> build -> checkpoint -> execute
//   (progress inline) -> checkpoint -> map response -> unregister -> terminal
//
// - cancellation is observed only at the two checkpoints; the transport call
//   is opaque and runs to completion once started.
//
// - a canceled dispatch is silent: no terminal callback is emitted.
//
// Dispatch does not own the wire transport, serialization formats, or helper
// production; those are injected capabilities.
package dispatch

// Package httpx owns the transport boundary of the client.
//
// Ownership boundary:
// - request/response models
// - request building against a base URL
// - the Client capability and its net/http implementation
//
// It does not own dispatch lifecycle, cancellation, or action mapping.
package httpx

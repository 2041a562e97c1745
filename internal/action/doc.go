// Package action owns the action-facing surface of the client.
//
// Ownership boundary:
// - the dispatch Handle wrapping one caller-supplied action
// - the Helper strategy contract and its Producer capability
//
// Actions themselves are opaque caller values; this package never inspects
// their fields. Field mapping belongs to Helper implementations such as the
// tagged producer.
package action

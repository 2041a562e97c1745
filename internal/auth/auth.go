// Package auth owns caller authentication for the echo surface.
//
// Tokens arrive in the HeaderName request header; echo routes consult a
// Validator before serving. Policy decisions and token storage stay out of
// scope.
package auth

import (
	"crypto/subtle"
	"errors"
	"net/http"
)

// HeaderName carries the caller's token on echo requests.
const HeaderName = "X-Echo-Token"

var ErrUnauthorized = errors.New("auth: unauthorized")

// Validator validates an authentication token.
type Validator interface {
	Validate(token string) error
}

// FromRequest extracts the caller's token from the request headers. Absent
// header reads as an empty token.
func FromRequest(r *http.Request) string {
	return r.Header.Get(HeaderName)
}

// StaticToken accepts exactly one shared token, compared in constant time.
// An empty configured token denies everything.
type StaticToken struct {
	Token string
}

func (s StaticToken) Validate(token string) error {
	if s.Token == "" {
		return ErrUnauthorized
	}
	if subtle.ConstantTimeCompare([]byte(s.Token), []byte(token)) != 1 {
		return ErrUnauthorized
	}
	return nil
}

// FuncValidator adapts a function into a Validator.
type FuncValidator func(token string) error

func (f FuncValidator) Validate(token string) error {
	return f(token)
}

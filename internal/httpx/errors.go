package httpx

import "errors"

var (
	ErrBaseURLRequired = errors.New("httpx: base url required")
	ErrMethodRequired  = errors.New("httpx: request method required")
	ErrNilRequest      = errors.New("httpx: nil request")
	ErrBodyConflict    = errors.New("httpx: body, form fields, and parts are mutually exclusive")
)

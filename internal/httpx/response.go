package httpx

import "net/http"

// Response is one fully read incoming response. The body is drained before the
// dispatch core interprets it, so helpers never race the connection.
type Response struct {
	Status int
	Reason string
	Header http.Header
	Body   []byte
}

// Successful reports whether the status is 2xx.
func (r *Response) Successful() bool {
	return r.Status >= 200 && r.Status < 300
}

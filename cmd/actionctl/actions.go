package main

// Demo actions dispatched against an echod instance.

// EchoPayload is the request/response body for the POST echo round trip.
type EchoPayload struct {
	Message string `json:"message"`
	Seq     int    `json:"seq"`
}

// HealthAction probes the server health endpoint.
type HealthAction struct {
	Status int    `http:"status"`
	Raw    []byte `http:"response"`
}

func (HealthAction) Route() (string, string) { return "GET", "/health" }

// EchoGetAction exercises path, query, and header binding.
type EchoGetAction struct {
	ID    string `http:"path=id"`
	Tag   string `http:"query=tag"`
	Token string `http:"header=X-Echo-Token"`

	Status int    `http:"status"`
	Reply  string `http:"response"`
}

func (EchoGetAction) Route() (string, string) { return "GET", "/echo/{id}" }

// EchoPostAction round-trips a JSON body and reads a response header back.
type EchoPostAction struct {
	Payload EchoPayload `http:"body"`

	Status int         `http:"status"`
	Echoed EchoPayload `http:"response"`
	Length string      `http:"responseHeader=X-Echo-Length"`
}

func (EchoPostAction) Route() (string, string) { return "POST", "/echo" }

// DenyAction always fails with 403; it drives the request-error path.
type DenyAction struct {
	Status int `http:"status"`
}

func (DenyAction) Route() (string, string) { return "GET", "/deny" }

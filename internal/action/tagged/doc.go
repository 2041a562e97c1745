// Package tagged compiles dispatch helpers from struct tags.
//
// An action declares its route by implementing Routed and binds fields with
// `http` tags:
//
//	type GetUser struct {
//		ID     string `http:"path=id"`
//		Expand string `http:"query=expand"`
//		Token  string `http:"header=Authorization"`
//
//		Status int  `http:"status"`
//		User   User `http:"response"`
//	}
//
//	func (GetUser) Route() (string, string) { return "GET", "/users/{id}" }
//
// Request-side tags: path=, query=, header=, field= (form-encoded),
// part= (multipart; []byte renders as a file part, string as a text part), body.
// Response-side tags: status, success, response, responseHeader=.
//
// Produce compiles the tag layout for a type exactly once; the resulting
// helper is immutable and safe for concurrent reuse.
package tagged

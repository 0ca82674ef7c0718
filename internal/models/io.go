// Package models provides the core data structures for handling webhook requests and responses.
package models

import "strings"

// Request represents an inbound webhook call. Body holds the raw bytes exactly as received and
// Headers uses lower-case keys.
type Request struct {
	Body    []byte
	Headers map[string]string
}

// Header returns the value of a header using a case-insensitive lookup.
func (r Request) Header(name string) (string, bool) {
	v, ok := r.Headers[strings.ToLower(name)]
	return v, ok
}

// Response defines the structure for an HTTP response containing a body, headers, and a status code.
type Response struct {
	Body       string
	Headers    map[string]string
	StatusCode int
}

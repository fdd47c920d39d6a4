package client

import "encoding/json"

// ErrorLocation is a line/column position reported by the server.
type ErrorLocation struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Error is a GraphQL-level error returned by Dgraph.
type Error struct {
	Message    string          `json:"message"`
	Locations  []ErrorLocation `json:"locations,omitempty"`
	Path       []interface{}   `json:"path,omitempty"`
	Extensions json.RawMessage `json:"extensions,omitempty"`
}

func (err *Error) Error() string {
	return "dgraph: " + err.Message
}

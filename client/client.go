// Package client talks to a Dgraph instance over HTTP: it fetches the
// GraphQL schema the engine parses, pushes schema updates, and
// executes GraphQL and introspection queries. The parser core has no
// network surface of its own; this is its host-side collaborator.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
)

// Client is a Dgraph HTTP client bound to one instance base URL
// (e.g. http://localhost:8080). It is safe for concurrent use.
type Client struct {
	base string
	http *http.Client
}

// New creates a Client for the given base URL. A nil *http.Client
// falls back to http.DefaultClient.
func New(base string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{base: base, http: hc}
}

const getSchemaQuery = `{ getGQLSchema { schema } }`

const updateSchemaQuery = `mutation($sch: String!) {
  updateGQLSchema(input: { set: { schema: $sch } }) {
    gqlSchema { id }
  }
}`

// GetSchema fetches the current GraphQL schema text from the admin
// endpoint. A fresh instance with no schema yields an empty string.
func (c *Client) GetSchema(ctx context.Context) (string, error) {
	var out struct {
		GetGQLSchema *struct {
			Schema string `json:"schema"`
		} `json:"getGQLSchema"`
	}
	if err := c.post(ctx, "/admin", getSchemaQuery, nil, &out); err != nil {
		return "", errors.Wrap(err, "fetching schema")
	}
	if out.GetGQLSchema == nil {
		return "", nil
	}
	return out.GetGQLSchema.Schema, nil
}

// UpdateSchema replaces the instance's GraphQL schema.
func (c *Client) UpdateSchema(ctx context.Context, sdl string) error {
	vars := map[string]interface{}{"sch": sdl}
	if err := c.post(ctx, "/admin", updateSchemaQuery, vars, &struct{}{}); err != nil {
		return errors.Wrap(err, "updating schema")
	}
	return nil
}

// Execute runs a GraphQL query against the instance and decodes the
// data payload into out.
func (c *Client) Execute(ctx context.Context, query string, vars map[string]interface{}, out interface{}) error {
	return c.post(ctx, "/graphql", query, vars, out)
}

// Introspect runs the standard introspection query and returns the
// raw __schema payload.
func (c *Client) Introspect(ctx context.Context) (json.RawMessage, error) {
	var out struct {
		Schema json.RawMessage `json:"__schema"`
	}
	if err := c.post(ctx, "/graphql", introspectionQuery, nil, &out); err != nil {
		return nil, errors.Wrap(err, "introspecting")
	}
	return out.Schema, nil
}

// post sends one GraphQL request and decodes the response envelope.
// GraphQL-level errors surface as *Error values.
func (c *Client) post(ctx context.Context, path, query string, vars map[string]interface{}, out interface{}) error {
	payload := struct {
		Query     string                 `json:"query"`
		Variables map[string]interface{} `json:"variables,omitempty"`
	}{Query: query, Variables: vars}

	var body bytes.Buffer
	if err := json.NewEncoder(&body).Encode(&payload); err != nil {
		return errors.Wrap(err, "encoding request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, &body)
	if err != nil {
		return errors.Wrap(err, "creating request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "sending request")
	}
	defer resp.Body.Close()

	envelope := struct {
		Data   interface{} `json:"data"`
		Errors []Error     `json:"errors"`
	}{Data: out}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return errors.Wrapf(err, "decoding response (status %d)", resp.StatusCode)
	}
	if len(envelope.Errors) > 0 {
		return &envelope.Errors[0]
	}
	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

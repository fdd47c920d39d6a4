// Package xref composes the scanner, extractor, and resolver into the
// two queries the editor asks: "definition of type X" and "type
// reference at position P".
package xref

import (
	"github.com/Protocol-Lattice/schemalens/lexer"
	"github.com/Protocol-Lattice/schemalens/resolve"
	"github.com/Protocol-Lattice/schemalens/schema"
	"github.com/Protocol-Lattice/schemalens/token"
)

// Engine holds one immutable snapshot of a parsed schema: the token
// stream, the type index, and the resolver built over them. Build a
// new Engine on every text change; never query a stale snapshot
// against edited text.
type Engine struct {
	text     string
	toks     []token.Token
	index    *schema.Index
	resolver *resolve.Resolver
}

// NewEngine scans and extracts the given SDL text. It is total:
// malformed text yields a best-effort snapshot, never an error.
func NewEngine(text string) *Engine {
	toks := lexer.Scan(text)
	index, refs := schema.Extract(toks)
	return &Engine{
		text:     text,
		toks:     toks,
		index:    index,
		resolver: resolve.New(toks, refs),
	}
}

// FindTypeDefinition returns the definition for an exact type name,
// or nil when the name is not defined in the snapshot.
func (e *Engine) FindTypeDefinition(name string) *schema.TypeDefinition {
	return e.index.Get(name)
}

// FindTypeAtPosition returns the type reference under a byte offset,
// or nil. Pure over the snapshot: safe to call on every mouse move.
func (e *Engine) FindTypeAtPosition(offset int) *resolve.TypeReference {
	return e.resolver.ResolveAt(offset)
}

// Text returns the source text the snapshot was built from.
func (e *Engine) Text() string { return e.text }

// Tokens returns the snapshot's token stream.
func (e *Engine) Tokens() []token.Token { return e.toks }

// Index returns the snapshot's type index.
func (e *Engine) Index() *schema.Index { return e.index }

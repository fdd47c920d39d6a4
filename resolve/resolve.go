// Package resolve answers the position question: given a byte offset
// into the source, which type does the identifier under it reference?
package resolve

import (
	"sort"

	"github.com/Protocol-Lattice/schemalens/schema"
	"github.com/Protocol-Lattice/schemalens/token"
)

// TypeReference is the span of an identifier token that references a
// type, plus the referenced name. The name may reference a type absent
// from the index; reporting the reference is the resolver's job,
// reporting the missing definition is the caller's.
type TypeReference struct {
	Name  string `json:"name"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Resolver locates type references by offset over one immutable
// snapshot of the token stream. Only identifiers the extractor marked
// as sitting in type-reference position resolve; field names, argument
// names, and definition names never do.
type Resolver struct {
	toks    []token.Token
	byIndex map[int]string
}

// New creates a Resolver over a token stream and the reference table
// extracted from it. Both must come from the same parse pass.
func New(toks []token.Token, refs []schema.Ref) *Resolver {
	byIndex := make(map[int]string, len(refs))
	for _, ref := range refs {
		byIndex[ref.TokenIndex] = ref.Name
	}
	return &Resolver{toks: toks, byIndex: byIndex}
}

// ResolveAt returns the type reference spanning the given byte offset,
// or nil when the offset is out of range, falls between tokens, or
// lands on anything that is not a type-position identifier.
func (r *Resolver) ResolveAt(offset int) *TypeReference {
	if offset < 0 || len(r.toks) == 0 {
		return nil
	}
	// Token spans are sorted and non-overlapping: find the first token
	// ending past the offset and check it actually covers it.
	i := sort.Search(len(r.toks), func(i int) bool {
		return r.toks[i].End > offset
	})
	if i >= len(r.toks) || !r.toks[i].Contains(offset) {
		return nil
	}
	name, ok := r.byIndex[i]
	if !ok {
		return nil
	}
	return &TypeReference{Name: name, Start: r.toks[i].Start, End: r.toks[i].End}
}

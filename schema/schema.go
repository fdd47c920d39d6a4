// Package schema builds the type index: the mapping from type name to
// parsed definition that the resolver and cross-reference engine query.
// The index is an immutable snapshot, rebuilt wholesale from the current
// token stream on every text change.
package schema

import "strings"

// Kind classifies a top-level type definition.
type Kind string

const (
	Object    Kind = "type"
	Interface Kind = "interface"
	Enum      Kind = "enum"
	Union     Kind = "union"
	Input     Kind = "input"
	Scalar    Kind = "scalar"
)

// Location is the position of a definition's name token, used as the
// navigation target. Start is a byte offset; Line and Column are 1-based.
type Location struct {
	Start  int `json:"start"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

// FieldDefinition is one field of a type. Type is the rendered type
// signature, e.g. "[Post!]!". Enum values and union members are
// represented as fields with an empty Type for display uniformity.
type FieldDefinition struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Location Location `json:"location"`
}

// TypeDefinition is one named schema type.
type TypeDefinition struct {
	Name        string            `json:"name"`
	Kind        Kind              `json:"kind"`
	Description string            `json:"description,omitempty"`
	Fields      []FieldDefinition `json:"fields"`
	Location    Location          `json:"location"`
}

// Ref marks an identifier token that sits in type-reference position:
// a field or argument type annotation, an implements clause, or a
// union member. TokenIndex points into the token stream the index was
// extracted from.
type Ref struct {
	Name       string
	TokenIndex int
}

// Index maps type names to their definitions, preserving first-seen
// source order. A name defined twice keeps its original position in
// the order; the later definition wins and the shadowed name is
// recorded as a duplicate.
type Index struct {
	defs       map[string]*TypeDefinition
	order      []string
	duplicates []string
}

// NewIndex creates an empty type index.
func NewIndex() *Index {
	return &Index{defs: make(map[string]*TypeDefinition)}
}

func (ix *Index) add(def *TypeDefinition) {
	if _, ok := ix.defs[def.Name]; ok {
		ix.duplicates = append(ix.duplicates, def.Name)
	} else {
		ix.order = append(ix.order, def.Name)
	}
	ix.defs[def.Name] = def
}

// Get returns the definition for name, or nil when absent. Reserved
// internal types remain reachable here even though Names hides them.
func (ix *Index) Get(name string) *TypeDefinition {
	return ix.defs[name]
}

// Names returns the defined type names in source order, excluding
// reserved internal names.
func (ix *Index) Names() []string {
	names := make([]string, 0, len(ix.order))
	for _, name := range ix.order {
		if Hidden(name) {
			continue
		}
		names = append(names, name)
	}
	return names
}

// Len returns the number of defined types, hidden ones included.
func (ix *Index) Len() int {
	return len(ix.defs)
}

// Duplicates returns the names that were defined more than once, in
// the order the shadowing definitions appeared. Last definition wins;
// this is the diagnostic surface for that policy.
func (ix *Index) Duplicates() []string {
	return ix.duplicates
}

// Hidden reports whether a type name is reserved for introspection or
// Dgraph internals and should be excluded from user-facing listings.
func Hidden(name string) bool {
	return strings.HasPrefix(name, "__") || strings.HasPrefix(name, "dgraph.")
}

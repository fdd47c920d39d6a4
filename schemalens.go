// Package schemalens provides schema intelligence for the Dgraph admin
// console: SDL scanning, a cross-reference engine over the parsed type
// index, and hover/navigation support for a live editor.
package schemalens

import (
	"github.com/Protocol-Lattice/schemalens/client"
	"github.com/Protocol-Lattice/schemalens/hover"
	"github.com/Protocol-Lattice/schemalens/lexer"
	"github.com/Protocol-Lattice/schemalens/resolve"
	"github.com/Protocol-Lattice/schemalens/schema"
	"github.com/Protocol-Lattice/schemalens/token"
	"github.com/Protocol-Lattice/schemalens/xref"
)

// ===========================
// Re-exported Types
// ===========================

// Token types
type (
	TokenKind = token.Kind
	Token     = token.Token
)

// Token kinds
const (
	ILLEGAL    = token.ILLEGAL
	EOF        = token.EOF
	IDENT      = token.IDENT
	KEYWORD    = token.KEYWORD
	NUMBER     = token.NUMBER
	STRING     = token.STRING
	PUNCT      = token.PUNCT
	COMMENT    = token.COMMENT
	WHITESPACE = token.WHITESPACE
)

// Schema types
type (
	TypeKind        = schema.Kind
	TypeDefinition  = schema.TypeDefinition
	FieldDefinition = schema.FieldDefinition
	Location        = schema.Location
	Index           = schema.Index
)

// Type kinds
const (
	Object    = schema.Object
	Interface = schema.Interface
	Enum      = schema.Enum
	Union     = schema.Union
	Input     = schema.Input
	Scalar    = schema.Scalar
)

// Resolution and navigation types
type (
	TypeReference  = resolve.TypeReference
	Engine         = xref.Engine
	Controller     = hover.Controller
	TooltipContent = hover.TooltipContent
	Event          = hover.Event
	Effect         = hover.Effect
)

// Dgraph client types
type (
	Client = client.Client
)

// ===========================
// Convenience Functions
// ===========================

// Scan tokenizes SDL source text.
func Scan(input string) []Token {
	return lexer.Scan(input)
}

// Extract builds the type index from a token stream.
func Extract(toks []Token) (*Index, []schema.Ref) {
	return schema.Extract(toks)
}

// NewEngine builds a cross-reference engine snapshot for the text.
func NewEngine(text string) *Engine {
	return xref.NewEngine(text)
}

// NewController creates a navigation controller over an engine.
func NewController(engine *Engine) *Controller {
	return hover.NewController(engine)
}

// Tooltip renders the hover payload for a type definition.
func Tooltip(def *TypeDefinition) TooltipContent {
	return hover.Tooltip(def)
}

// ===========================
// Controller Events
// ===========================

// PointerMove builds a pointer-move event at a byte offset.
func PointerMove(offset int, modifier bool) Event {
	return hover.PointerMove{Offset: offset, Modifier: modifier}
}

// Click builds a click event at a byte offset.
func Click(offset int, modifier bool) Event {
	return hover.Click{Offset: offset, Modifier: modifier}
}

// PointerLeave builds a pointer-leave event.
func PointerLeave() Event {
	return hover.PointerLeave{}
}

// ClearExpired builds the event the host delivers when a scheduled
// highlight clear fires.
func ClearExpired(gen uint64) Event {
	return hover.ClearExpired{Gen: gen}
}

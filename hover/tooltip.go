// Package hover turns cross-reference answers into editor-visible
// behavior: tooltip payloads and a state machine emitting decoration
// and navigation effects.
package hover

import (
	"html"

	"github.com/Protocol-Lattice/schemalens/schema"
)

// maxTooltipFields caps the field list in a tooltip; the remainder is
// summarized as a "+N more" note.
const maxTooltipFields = 8

// TooltipField is one line of the tooltip field list. Type is empty
// for enum values.
type TooltipField struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// TooltipContent is the structured payload the host renders at the
// hover anchor. Description is HTML-escaped; everything else is plain
// text for the host to place into its own markup.
type TooltipContent struct {
	Badge       string         `json:"badge"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Fields      []TooltipField `json:"fields"`
	More        int            `json:"more,omitempty"`
	Line        int            `json:"line"`
	Column      int            `json:"column"`
}

// Tooltip renders a tooltip payload for a type definition. Pure: same
// definition, same payload.
func Tooltip(def *schema.TypeDefinition) TooltipContent {
	content := TooltipContent{
		Badge:       string(def.Kind),
		Name:        def.Name,
		Description: html.EscapeString(def.Description),
		Line:        def.Location.Line,
		Column:      def.Location.Column,
	}
	shown := def.Fields
	if len(shown) > maxTooltipFields {
		content.More = len(shown) - maxTooltipFields
		shown = shown[:maxTooltipFields]
	}
	content.Fields = make([]TooltipField, 0, len(shown))
	for _, field := range shown {
		tf := TooltipField{Name: field.Name}
		if def.Kind != schema.Enum {
			tf.Type = field.Type
		}
		content.Fields = append(content.Fields, tf)
	}
	return content
}

package hover

import (
	"time"

	"github.com/Protocol-Lattice/schemalens/resolve"
	"github.com/Protocol-Lattice/schemalens/schema"
	"github.com/Protocol-Lattice/schemalens/xref"
)

// HighlightDuration is how long the navigation highlight stays on the
// target before the scheduled clear fires.
const HighlightDuration = 2 * time.Second

// Event is an input to the controller, delivered by the host editor.
type Event interface{ isEvent() }

// PointerMove reports the pointer over a byte offset, with the state
// of the navigation modifier key (Ctrl/Cmd).
type PointerMove struct {
	Offset   int
	Modifier bool
}

// Click reports a click at a byte offset.
type Click struct {
	Offset   int
	Modifier bool
}

// PointerLeave reports the pointer leaving the editor surface.
type PointerLeave struct{}

// ClearExpired reports that a scheduled highlight clear fired. The
// host echoes back the generation it was scheduled with; a stale
// generation is ignored.
type ClearExpired struct {
	Gen uint64
}

func (PointerMove) isEvent()  {}
func (Click) isEvent()        {}
func (PointerLeave) isEvent() {}
func (ClearExpired) isEvent() {}

// Effect is an output the host editor must apply. Kind names the
// effect for transports that serialize it.
type Effect interface{ Kind() string }

// ShowUnderline decorates the hovered reference span.
type ShowUnderline struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// ClearUnderline removes the hover decoration.
type ClearUnderline struct{}

// SetPointerCursor switches the mouse cursor between pointer and
// default.
type SetPointerCursor struct {
	Pointer bool `json:"pointer"`
}

// ShowTooltip asks the host to render the tooltip at an anchor offset.
type ShowTooltip struct {
	Content TooltipContent `json:"content"`
	Anchor  int            `json:"anchor"`
}

// HideTooltip removes the tooltip.
type HideTooltip struct{}

// MoveCaret places the caret at a byte offset.
type MoveCaret struct {
	Offset int `json:"offset"`
}

// ScrollIntoView scrolls the given offset into the viewport.
type ScrollIntoView struct {
	Offset int `json:"offset"`
}

// Highlight decorates the navigation target span.
type Highlight struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// ClearHighlight removes the navigation highlight.
type ClearHighlight struct{}

// ScheduleClear asks the host to deliver ClearExpired{Gen} after the
// given duration. The generation ties the timer to the navigation
// that started it.
type ScheduleClear struct {
	Gen   uint64        `json:"gen"`
	After time.Duration `json:"after"`
}

// SwallowClick suppresses the default click behavior. Emitted only
// when navigation actually occurs.
type SwallowClick struct{}

func (ShowUnderline) Kind() string    { return "showUnderline" }
func (ClearUnderline) Kind() string   { return "clearUnderline" }
func (SetPointerCursor) Kind() string { return "setPointerCursor" }
func (ShowTooltip) Kind() string      { return "showTooltip" }
func (HideTooltip) Kind() string      { return "hideTooltip" }
func (MoveCaret) Kind() string        { return "moveCaret" }
func (ScrollIntoView) Kind() string   { return "scrollIntoView" }
func (Highlight) Kind() string        { return "highlight" }
func (ClearHighlight) Kind() string   { return "clearHighlight" }
func (ScheduleClear) Kind() string    { return "scheduleClear" }
func (SwallowClick) Kind() string     { return "swallowClick" }

type state int

const (
	stateIdle state = iota
	stateHovering
)

// Controller is the reducer between editor events and decoration
// effects. It owns no timers and paints nothing: the host applies the
// effects and owns the clock. Single-threaded by design, driven
// synchronously from discrete UI events.
type Controller struct {
	engine *xref.Engine
	state  state
	start  int // hovered span while in stateHovering
	end    int
	gen    uint64 // generation of the latest navigation
}

// NewController creates a controller over an engine snapshot. A nil
// engine is valid; every event then reduces to "do nothing".
func NewController(engine *xref.Engine) *Controller {
	return &Controller{engine: engine}
}

// SetEngine swaps in the snapshot for edited text. Hover state and any
// pending highlight belong to the old text, so both are dropped; the
// returned effects clear them host-side.
func (c *Controller) SetEngine(engine *xref.Engine) []Effect {
	c.engine = engine
	c.state = stateIdle
	c.gen++
	return []Effect{ClearUnderline{}, HideTooltip{}, SetPointerCursor{Pointer: false}, ClearHighlight{}}
}

// Handle reduces one event to the effects the host must apply.
func (c *Controller) Handle(event Event) []Effect {
	switch ev := event.(type) {
	case PointerMove:
		return c.pointerMove(ev)
	case Click:
		return c.click(ev)
	case PointerLeave:
		c.state = stateIdle
		return []Effect{ClearUnderline{}, HideTooltip{}, SetPointerCursor{Pointer: false}}
	case ClearExpired:
		if ev.Gen == c.gen && c.gen != 0 {
			return []Effect{ClearHighlight{}}
		}
		return nil
	}
	return nil
}

func (c *Controller) pointerMove(ev PointerMove) []Effect {
	ref, def := c.lookup(ev.Offset, ev.Modifier)
	if ref == nil || def == nil {
		if c.state == stateHovering {
			c.state = stateIdle
			return []Effect{ClearUnderline{}, HideTooltip{}, SetPointerCursor{Pointer: false}}
		}
		return nil
	}
	if c.state == stateHovering && c.start == ref.Start && c.end == ref.End {
		return nil // still over the same reference
	}
	c.state = stateHovering
	c.start, c.end = ref.Start, ref.End
	return []Effect{
		ShowUnderline{Start: ref.Start, End: ref.End},
		SetPointerCursor{Pointer: true},
		ShowTooltip{Content: Tooltip(def), Anchor: ref.Start},
	}
}

func (c *Controller) click(ev Click) []Effect {
	ref, def := c.lookup(ev.Offset, ev.Modifier)
	if ref == nil || def == nil {
		return nil // click passes through untouched
	}
	// A new navigation invalidates any pending clear timer.
	c.gen++
	c.state = stateIdle
	target := def.Location.Start
	return []Effect{
		ClearUnderline{},
		HideTooltip{},
		SetPointerCursor{Pointer: false},
		MoveCaret{Offset: target},
		ScrollIntoView{Offset: target},
		Highlight{Start: target, End: target + len(def.Name)},
		ScheduleClear{Gen: c.gen, After: HighlightDuration},
		SwallowClick{},
	}
}

// lookup resolves the reference under the offset and its definition.
// Either may be nil; callers treat absence as "do nothing".
func (c *Controller) lookup(offset int, modifier bool) (*resolve.TypeReference, *schema.TypeDefinition) {
	if !modifier || c.engine == nil {
		return nil, nil
	}
	ref := c.engine.FindTypeAtPosition(offset)
	if ref == nil {
		return nil, nil
	}
	return ref, c.engine.FindTypeDefinition(ref.Name)
}

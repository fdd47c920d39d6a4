package schemalens_test

import (
	"strings"
	"testing"

	schemalens "github.com/Protocol-Lattice/schemalens"
)

const sdl = `type User { id: ID! name: String posts: [Post!] }
type Post { title: String }
`

func TestScanProducesPositionedTokens(t *testing.T) {
	toks := schemalens.Scan(sdl)
	if len(toks) == 0 {
		t.Fatal("expected tokens for non-empty input")
	}
	if toks[0].Kind != schemalens.KEYWORD || toks[0].Text != "type" {
		t.Errorf("expected leading 'type' keyword, got %s %q", toks[0].Kind, toks[0].Text)
	}
	if toks[len(toks)-1].End != len(sdl) {
		t.Errorf("expected tokens to cover the input, last end %d of %d", toks[len(toks)-1].End, len(sdl))
	}
}

func TestEngineRoundTrip(t *testing.T) {
	engine := schemalens.NewEngine(sdl)

	def := engine.FindTypeDefinition("User")
	if def == nil {
		t.Fatal("expected a definition for User")
	}
	if len(def.Fields) != 3 {
		t.Errorf("expected 3 fields, got %d", len(def.Fields))
	}

	ref := engine.FindTypeAtPosition(strings.Index(sdl, "[Post!]") + 1)
	if ref == nil {
		t.Fatal("expected a reference inside [Post!]")
	}
	if ref.Name != "Post" {
		t.Errorf("expected reference to Post, got %q", ref.Name)
	}
}

func TestControllerThroughFacade(t *testing.T) {
	controller := schemalens.NewController(schemalens.NewEngine(sdl))

	offset := strings.Index(sdl, "[Post!]") + 1
	effects := controller.Handle(schemalens.PointerMove(offset, true))
	if len(effects) == 0 {
		t.Fatal("expected hover effects over a resolvable reference")
	}

	effects = controller.Handle(schemalens.Click(offset, true))
	var swallowed bool
	for _, effect := range effects {
		if effect.Kind() == "swallowClick" {
			swallowed = true
		}
	}
	if !swallowed {
		t.Error("expected navigation click to be swallowed")
	}
}

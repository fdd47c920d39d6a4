// Package handler exposes the schema engine to the browser editor:
// stateless HTTP endpoints for one-shot hover/definition queries, and
// a WebSocket session that drives the navigation controller with
// pointer events and streams decoration effects back.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Protocol-Lattice/schemalens/client"
	"github.com/Protocol-Lattice/schemalens/hover"
	"github.com/Protocol-Lattice/schemalens/schema"
	"github.com/Protocol-Lattice/schemalens/xref"
)

// Server serves the editor-facing API.
type Server struct {
	log    *zap.Logger
	dgraph *client.Client
}

// NewServer creates a Server. A nil logger disables logging; a nil
// Dgraph client disables the /schema proxy.
func NewServer(log *zap.Logger, dgraph *client.Client) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{log: log, dgraph: dgraph}
}

// Routes returns the HTTP mux for the editor API.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/hover", s.Hover)
	mux.HandleFunc("/definition", s.Definition)
	mux.HandleFunc("/types", s.Types)
	mux.HandleFunc("/editor", s.Editor)
	mux.HandleFunc("/schema", s.Schema)
	return mux
}

// Schema proxies the connected Dgraph instance: GET fetches the
// current SDL for the editor to load, POST pushes an edited SDL back.
func (s *Server) Schema(w http.ResponseWriter, r *http.Request) {
	if s.dgraph == nil {
		http.Error(w, "no dgraph instance configured", http.StatusServiceUnavailable)
		return
	}
	switch r.Method {
	case http.MethodGet:
		sdl, err := s.dgraph.GetSchema(r.Context())
		if err != nil {
			s.log.Error("failed to fetch schema", zap.Error(err))
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		writeJSON(w, struct {
			Schema string `json:"schema"`
		}{sdl})
	case http.MethodPost:
		var req struct {
			Schema string `json:"schema"`
		}
		if !decode(w, r, &req) {
			return
		}
		if err := s.dgraph.UpdateSchema(r.Context(), req.Schema); err != nil {
			s.log.Error("failed to update schema", zap.Error(err))
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// positionRequest is a one-shot query: schema text plus a byte offset
// into it.
type positionRequest struct {
	Text   string `json:"text"`
	Offset int    `json:"offset"`
}

// Hover answers with the tooltip payload for the reference under the
// offset, or null when there is nothing to show.
func (s *Server) Hover(w http.ResponseWriter, r *http.Request) {
	var req positionRequest
	if !decode(w, r, &req) {
		return
	}
	engine := xref.NewEngine(req.Text)
	var content *hover.TooltipContent
	if ref := engine.FindTypeAtPosition(req.Offset); ref != nil {
		if def := engine.FindTypeDefinition(ref.Name); def != nil {
			c := hover.Tooltip(def)
			content = &c
		}
	}
	writeJSON(w, struct {
		Tooltip *hover.TooltipContent `json:"tooltip"`
	}{content})
}

// definitionResponse is the navigation target for a resolved
// reference.
type definitionResponse struct {
	Name   string `json:"name"`
	Start  int    `json:"start"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// Definition answers with the definition location of the type
// referenced under the offset, or null.
func (s *Server) Definition(w http.ResponseWriter, r *http.Request) {
	var req positionRequest
	if !decode(w, r, &req) {
		return
	}
	engine := xref.NewEngine(req.Text)
	var target *definitionResponse
	if ref := engine.FindTypeAtPosition(req.Offset); ref != nil {
		if def := engine.FindTypeDefinition(ref.Name); def != nil {
			target = &definitionResponse{
				Name:   def.Name,
				Start:  def.Location.Start,
				Line:   def.Location.Line,
				Column: def.Location.Column,
			}
		}
	}
	writeJSON(w, struct {
		Definition *definitionResponse `json:"definition"`
	}{target})
}

// Types lists the defined type names in source order, with any
// duplicate definitions surfaced for the console to flag.
func (s *Server) Types(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if !decode(w, r, &req) {
		return
	}
	engine := xref.NewEngine(req.Text)
	names := engine.Index().Names()
	defs := make([]*schema.TypeDefinition, 0, len(names))
	for _, name := range names {
		defs = append(defs, engine.Index().Get(name))
	}
	writeJSON(w, struct {
		Types      []*schema.TypeDefinition `json:"types"`
		Duplicates []string                 `json:"duplicates,omitempty"`
	}{defs, engine.Index().Duplicates()})
}

// upgrader upgrades HTTP connections to WebSocket connections.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// editorMessage is one event from the editor. Op selects the fields
// that matter: "text" carries Text, "move"/"click" carry Offset and
// Modifier, "expire" carries Gen, "leave" carries nothing.
type editorMessage struct {
	Op       string `json:"op"`
	Text     string `json:"text,omitempty"`
	Offset   int    `json:"offset,omitempty"`
	Modifier bool   `json:"modifier,omitempty"`
	Gen      uint64 `json:"gen,omitempty"`
}

// wireEffect wraps a controller effect with its kind for the wire.
type wireEffect struct {
	Kind string       `json:"kind"`
	Args hover.Effect `json:"args"`
}

// effectsResponse is the reply to one editor message.
type effectsResponse struct {
	Effects []wireEffect `json:"effects"`
}

// Editor runs one editor session over a WebSocket. The session owns a
// controller; the client pushes text and pointer events and applies
// the effects streamed back. Timer effects are echoed back by the
// client as "expire" messages, since the host owns the clock.
func (s *Server) Editor(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "unable to upgrade to websocket", http.StatusBadRequest)
		return
	}
	defer conn.Close()

	controller := hover.NewController(nil)
	for {
		var msg editorMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Debug("editor session ended", zap.Error(err))
			}
			return
		}

		var effects []hover.Effect
		switch msg.Op {
		case "text":
			effects = controller.SetEngine(xref.NewEngine(msg.Text))
		case "move":
			effects = controller.Handle(hover.PointerMove{Offset: msg.Offset, Modifier: msg.Modifier})
		case "click":
			effects = controller.Handle(hover.Click{Offset: msg.Offset, Modifier: msg.Modifier})
		case "leave":
			effects = controller.Handle(hover.PointerLeave{})
		case "expire":
			effects = controller.Handle(hover.ClearExpired{Gen: msg.Gen})
		default:
			s.log.Warn("unknown editor op", zap.String("op", msg.Op))
			continue
		}

		resp := effectsResponse{Effects: make([]wireEffect, 0, len(effects))}
		for _, effect := range effects {
			resp.Effects = append(resp.Effects, wireEffect{Kind: effect.Kind(), Args: effect})
		}
		if err := conn.WriteJSON(resp); err != nil {
			s.log.Debug("failed to write effects", zap.Error(err))
			return
		}
	}
}

func decode(w http.ResponseWriter, r *http.Request, into interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Protocol-Lattice/schemalens/client"
)

const src = `type User { id: ID! posts: [Post!] }
type Post { title: String }
`

func postJSON(t *testing.T, mux *http.ServeMux, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestHoverEndpoint(t *testing.T) {
	mux := NewServer(nil, nil).Routes()

	offset := strings.Index(src, "[Post!]") + 1
	w := postJSON(t, mux, "/hover", map[string]interface{}{"text": src, "offset": offset})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Tooltip *struct {
			Badge string `json:"badge"`
			Name  string `json:"name"`
		} `json:"tooltip"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Tooltip)
	assert.Equal(t, "type", resp.Tooltip.Badge)
	assert.Equal(t, "Post", resp.Tooltip.Name)
}

func TestHoverEndpointMiss(t *testing.T) {
	mux := NewServer(nil, nil).Routes()

	// A field name never resolves.
	w := postJSON(t, mux, "/hover", map[string]interface{}{
		"text": src, "offset": strings.Index(src, "title"),
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"tooltip":null}`, w.Body.String())
}

func TestDefinitionEndpoint(t *testing.T) {
	mux := NewServer(nil, nil).Routes()

	offset := strings.Index(src, "[Post!]") + 1
	w := postJSON(t, mux, "/definition", map[string]interface{}{"text": src, "offset": offset})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Definition *struct {
			Name  string `json:"name"`
			Start int    `json:"start"`
			Line  int    `json:"line"`
		} `json:"definition"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Definition)
	assert.Equal(t, "Post", resp.Definition.Name)
	assert.Equal(t, strings.Index(src, "type Post")+len("type "), resp.Definition.Start)
	assert.Equal(t, 2, resp.Definition.Line)
}

func TestTypesEndpoint(t *testing.T) {
	mux := NewServer(nil, nil).Routes()

	w := postJSON(t, mux, "/types", map[string]interface{}{"text": src})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Types []struct {
			Name string `json:"name"`
		} `json:"types"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Types, 2)
	assert.Equal(t, "User", resp.Types[0].Name)
	assert.Equal(t, "Post", resp.Types[1].Name)
}

func TestEndpointsRejectInvalidJSON(t *testing.T) {
	mux := NewServer(nil, nil).Routes()

	req := httptest.NewRequest(http.MethodPost, "/hover", strings.NewReader("not-json"))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSchemaProxy(t *testing.T) {
	dgraph := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin", r.URL.Path)
		w.Write([]byte(`{"data":{"getGQLSchema":{"schema":"type User { id: ID! }"}}}`))
	}))
	defer dgraph.Close()

	mux := NewServer(nil, client.New(dgraph.URL, nil)).Routes()
	req := httptest.NewRequest(http.MethodGet, "/schema", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"schema":"type User { id: ID! }"}`, w.Body.String())
}

func TestSchemaProxyUnconfigured(t *testing.T) {
	mux := NewServer(nil, nil).Routes()

	req := httptest.NewRequest(http.MethodGet, "/schema", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestEditorSession(t *testing.T) {
	srv := httptest.NewServer(NewServer(nil, nil).Routes())
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/editor"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	send := func(msg map[string]interface{}) []string {
		t.Helper()
		require.NoError(t, conn.WriteJSON(msg))
		var resp struct {
			Effects []struct {
				Kind string          `json:"kind"`
				Args json.RawMessage `json:"args"`
			} `json:"effects"`
		}
		require.NoError(t, conn.ReadJSON(&resp))
		kinds := make([]string, 0, len(resp.Effects))
		for _, effect := range resp.Effects {
			kinds = append(kinds, effect.Kind)
		}
		return kinds
	}

	// Pushing text resets decorations.
	kinds := send(map[string]interface{}{"op": "text", "text": src})
	assert.Contains(t, kinds, "clearHighlight")

	// Modifier-hover over the Post reference.
	offset := strings.Index(src, "[Post!]") + 1
	kinds = send(map[string]interface{}{"op": "move", "offset": offset, "modifier": true})
	assert.Equal(t, []string{"showUnderline", "setPointerCursor", "showTooltip"}, kinds)

	// Modifier-click navigates and schedules the highlight clear.
	kinds = send(map[string]interface{}{"op": "click", "offset": offset, "modifier": true})
	assert.Contains(t, kinds, "moveCaret")
	assert.Contains(t, kinds, "scheduleClear")
	assert.Contains(t, kinds, "swallowClick")

	// Pointer leave always clears.
	kinds = send(map[string]interface{}{"op": "leave"})
	assert.Equal(t, []string{"clearUnderline", "hideTooltip", "setPointerCursor"}, kinds)
}

// Package server streams generated floors to websocket clients. Each
// connection owns its own generator, so generations never share state.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"mapgen/pkg/game/generator"
	"mapgen/pkg/game/persistence"
)

// Server upgrades /ws requests and serves floor requests on them
type Server struct {
	store    persistence.Storage
	upgrader websocket.Upgrader
}

// New returns a server archiving floors in store. A nil store disables
// load, save and list.
func New(store persistence.Storage) *Server {
	return &Server{
		store: store,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handler returns the HTTP routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.ServeWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return mux
}

// ServeWS upgrades the request and serves the connection until it closes
func (s *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}
	log.Printf("New connection from %s", ws.RemoteAddr())

	conn := NewConnection(ws)
	h := &clientHandler{store: s.store, gen: generator.New()}

	go conn.WritePump()
	conn.ReadPump(h)

	log.Printf("Connection from %s closed", ws.RemoteAddr())
}

// clientHandler holds one connection's generator and its last floor
type clientHandler struct {
	store persistence.Storage
	gen   *generator.Generator
	floor *generator.Floor
}

// HandleMessage dispatches one client frame
func (h *clientHandler) HandleMessage(conn *Connection, message []byte) {
	var msg InboundMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		h.fail(conn, CodeBadRequest, fmt.Errorf("malformed message: %w", err))
		return
	}

	switch msg.Type {
	case MessageTypeGenerate:
		h.handleGenerate(conn, msg.Payload)
	case MessageTypeLoad:
		h.handleLoad(conn, msg.Payload)
	case MessageTypeSave:
		h.handleSave(conn, msg.Payload)
	case MessageTypeList:
		h.handleList(conn)
	default:
		h.fail(conn, CodeBadRequest, fmt.Errorf("unknown message type %q", msg.Type))
	}
}

func (h *clientHandler) handleGenerate(conn *Connection, payload json.RawMessage) {
	var req GenerateMessage
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &req); err != nil {
			h.fail(conn, CodeBadRequest, fmt.Errorf("malformed generate payload: %w", err))
			return
		}
	}

	if req.Seed != nil {
		h.gen.Init(*req.Seed)
	} else {
		h.gen.ResetSeedFlag()
	}
	if err := h.gen.GenerateWithParams(req.Size, req.Hidden, req.Niches, req.Deception); err != nil {
		h.fail(conn, generationCode(err), err)
		return
	}

	h.floor = h.gen.Floor()
	conn.SendMessage(OutboundMessage{Type: MessageTypeFloor, Payload: NewFloorMessage("", h.floor)})
}

func (h *clientHandler) handleLoad(conn *Connection, payload json.RawMessage) {
	name, ok := h.name(conn, payload)
	if !ok {
		return
	}

	rec, err := h.store.LoadFloor(name)
	if err != nil {
		h.fail(conn, CodeStorage, err)
		return
	}
	f, err := rec.Regenerate()
	if err != nil {
		h.fail(conn, generationCode(err), err)
		return
	}

	h.floor = f
	conn.SendMessage(OutboundMessage{Type: MessageTypeFloor, Payload: NewFloorMessage(name, f)})
}

func (h *clientHandler) handleSave(conn *Connection, payload json.RawMessage) {
	name, ok := h.name(conn, payload)
	if !ok {
		return
	}
	if h.floor == nil {
		h.fail(conn, CodeBadRequest, errors.New("nothing generated yet"))
		return
	}

	if err := h.store.SaveFloor(persistence.NewFloorRecord(name, h.floor)); err != nil {
		h.fail(conn, CodeStorage, err)
		return
	}
	conn.SendMessage(OutboundMessage{Type: MessageTypeSaved, Payload: NameMessage{Name: name}})
}

func (h *clientHandler) handleList(conn *Connection) {
	if h.store == nil {
		h.fail(conn, CodeStorage, errors.New("no store configured"))
		return
	}
	names, err := h.store.ListFloors()
	if err != nil {
		h.fail(conn, CodeStorage, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	conn.SendMessage(OutboundMessage{Type: MessageTypeFloors, Payload: FloorsMessage{Names: names}})
}

// name decodes a NameMessage and checks that a store is configured
func (h *clientHandler) name(conn *Connection, payload json.RawMessage) (string, bool) {
	if h.store == nil {
		h.fail(conn, CodeStorage, errors.New("no store configured"))
		return "", false
	}
	var req NameMessage
	if err := json.Unmarshal(payload, &req); err != nil || req.Name == "" {
		h.fail(conn, CodeBadRequest, errors.New("payload needs a name"))
		return "", false
	}
	return req.Name, true
}

func (h *clientHandler) fail(conn *Connection, code int, err error) {
	log.Printf("Request failed (code %d): %v", code, err)
	conn.SendMessage(OutboundMessage{Type: MessageTypeError, Payload: ErrorMessage{Code: code, Message: err.Error()}})
}

// generationCode maps a generator error onto the wire codes
func generationCode(err error) int {
	if errors.Is(err, generator.ErrInvalidParameter) {
		return CodeInvalidParameters
	}
	return CodeGenerationFailed
}

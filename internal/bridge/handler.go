package bridge

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"assay/internal/api"
	"assay/pkg/logging"
)

// Message types of the bridge protocol.
const (
	// MessageListing carries every known operation, sent once on connect
	MessageListing = "listing"
	// MessageExecute requests one operation run
	MessageExecute = "execute"
	// MessageResult carries the execution outcome of an execute message
	MessageResult = "result"
	// MessageError reports a failed or refused request
	MessageError = "error"
	// MessagePing requests a liveness pong
	MessagePing = "ping"
	// MessagePong answers a ping, echoing its id
	MessagePong = "pong"
)

// Message is one text frame of the bridge protocol.
type Message struct {
	Type      string      `json:"type"`
	ID        string      `json:"id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// inboundMessage defers payload decoding until the type is known.
type inboundMessage struct {
	Type    string          `json:"type"`
	ID      string          `json:"id,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// executePayload is the payload of an execute message. Pointer fields
// distinguish "absent" from "false": absent fields take the server's
// configured defaults.
type executePayload struct {
	CommandID           string                 `json:"commandId"`
	Parameters          map[string]interface{} `json:"parameters,omitempty"`
	TimeoutMs           *int64                 `json:"timeoutMs,omitempty"`
	CreateSnapshot      *bool                  `json:"createSnapshot,omitempty"`
	RequireConfirmation *bool                  `json:"requireConfirmation,omitempty"`
	Confirmed           bool                   `json:"confirmed,omitempty"`
}

// errorPayload mirrors api.ExecutionError for protocol errors.
type errorPayload struct {
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
}

// listingPayload carries the operation catalog on connect.
type listingPayload struct {
	Commands []api.Operation `json:"commands"`
}

// handleUpgrade upgrades the request and serves the message loop until the
// client disconnects or the server stops.
func (s *Server) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error("Bridge", err, "Websocket upgrade failed")
		return
	}

	s.trackConn(conn)
	s.wg.Add(1)
	defer func() {
		s.wg.Done()
		s.untrackConn(conn)
		conn.Close()
	}()

	logging.Debug("Bridge", "Client connected from %s", r.RemoteAddr)
	s.serveConn(conn)
}

func (s *Server) serveConn(conn *websocket.Conn) {
	s.sendListing(conn)

	for {
		var msg inboundMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logging.Debug("Bridge", "Connection closed: %v", err)
			}
			return
		}

		switch msg.Type {
		case MessageExecute:
			s.handleExecute(conn, msg)
		case MessagePing:
			s.send(conn, Message{Type: MessagePong, ID: msg.ID})
		default:
			s.sendError(conn, msg.ID, fmt.Sprintf("unknown message type %q", msg.Type), "")
		}
	}
}

// sendListing sends the initial catalog listing. A missing catalog still
// yields a listing so clients always see the same first message.
func (s *Server) sendListing(conn *websocket.Conn) {
	var commands []api.Operation
	if catalog := api.GetCatalog(); catalog != nil {
		commands = catalog.ListOperations()
	}
	s.send(conn, Message{Type: MessageListing, Payload: listingPayload{Commands: commands}})
}

// handleExecute dispatches one execute message through the execution
// engine and answers with a result or error message echoing the id.
func (s *Server) handleExecute(conn *websocket.Conn, msg inboundMessage) {
	var payload executePayload
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			s.sendError(conn, msg.ID, fmt.Sprintf("malformed execute payload: %v", err), "")
			return
		}
	}
	if payload.CommandID == "" {
		s.sendError(conn, msg.ID, "execute payload is missing commandId", "")
		return
	}

	engine := api.GetExecution()
	if engine == nil {
		s.sendError(conn, msg.ID, api.ErrExecutionNotRegistered.Error(), "")
		return
	}

	opts := s.executeOptions(payload)

	outcome, err := engine.Execute(s.dispatchContext(), payload.CommandID, payload.Parameters, opts)
	if err != nil {
		kind := ""
		if api.IsConfirmationRequired(err) {
			kind = string(api.ErrorKindRefused)
		}
		s.sendError(conn, msg.ID, err.Error(), kind)
		return
	}

	s.send(conn, Message{Type: MessageResult, ID: msg.ID, Payload: outcome})
}

// executeOptions maps an execute payload onto engine options, filling
// absent fields from the configured defaults.
func (s *Server) executeOptions(payload executePayload) api.ExecuteOptions {
	opts := api.ExecuteOptions{
		CreateSnapshot:      s.config.Defaults.CreateSnapshot,
		RequireConfirmation: s.config.Defaults.RequireConfirmation,
		Confirmed:           payload.Confirmed,
	}
	if payload.TimeoutMs != nil {
		opts.Timeout = time.Duration(*payload.TimeoutMs) * time.Millisecond
	}
	if payload.CreateSnapshot != nil {
		opts.CreateSnapshot = *payload.CreateSnapshot
	}
	if payload.RequireConfirmation != nil {
		opts.RequireConfirmation = *payload.RequireConfirmation
	}
	return opts
}

func (s *Server) send(conn *websocket.Conn, msg Message) {
	msg.Timestamp = time.Now()
	if err := conn.WriteJSON(msg); err != nil {
		logging.Warn("Bridge", "Failed to write %s message: %v", msg.Type, err)
	}
}

func (s *Server) sendError(conn *websocket.Conn, id, message, kind string) {
	s.send(conn, Message{
		Type:    MessageError,
		ID:      id,
		Payload: errorPayload{Message: message, Kind: kind},
	})
}

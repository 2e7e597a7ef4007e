package ws

import (
	"encoding/json"
	"time"
)

// MessageType represents the type of WebSocket message
type MessageType string

// Client → Server message types
const (
	MsgDispatch MessageType = "dispatch"
	MsgPing     MessageType = "ping"
)

// Server → Client message types
const (
	MsgConnected   MessageType = "connected"
	MsgState       MessageType = "state"
	MsgGameOver    MessageType = "game_over"
	MsgTableClosed MessageType = "table_closed"
	MsgError       MessageType = "error"
	MsgPong        MessageType = "pong"
)

// ClientMessage represents a message from client to server. A dispatch
// payload is an action envelope.
type ClientMessage struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ServerMessage represents a message from server to client
type ServerMessage struct {
	Type      MessageType `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// NewServerMessage creates a new server message with current timestamp
func NewServerMessage(msgType MessageType, payload interface{}) *ServerMessage {
	return &ServerMessage{
		Type:      msgType,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// ConnectedPayload is the payload for connected message
type ConnectedPayload struct {
	ClientID  string `json:"clientId"`
	TableCode string `json:"tableCode"`
}

// ErrorPayload is the payload for error message
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

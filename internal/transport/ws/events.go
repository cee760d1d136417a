package ws

import (
	"encoding/json"
	"time"

	"github.com/zetedec/lanchat/internal/domain"
)

// Event types - Client → Server
const (
	EventTypePing = "ping"
)

// Event types - Server → Client. One canonical event per successful mutation;
// clients compare the payload's audience fields against their selected view
// to decide whether to render it.
const (
	EventTypeNewMessage    = "new_message"
	EventTypeEditMessage   = "edit_message"
	EventTypeDeleteMessage = "delete_message"
	EventTypePresence      = "presence"
	EventTypePong          = "pong"
	EventTypeError         = "error"
)

// Event is the base envelope for all WebSocket messages.
type Event struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"ts,omitempty"`
}

// --- Server → Client payloads ---

type MessagePayload struct {
	domain.Message
}

type MessageDeletedPayload struct {
	ID int64 `json:"id"`
}

type PresencePayload struct {
	UserID int64  `json:"user_id"`
	Status string `json:"status"` // "online" | "offline"
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewEvent creates a server→client event with the current timestamp.
func NewEvent(eventType string, payload any) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Event{
		Type:      eventType,
		Payload:   data,
		Timestamp: time.Now().Unix(),
	}, nil
}

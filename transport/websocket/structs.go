package websocket

import (
	"encoding/json"

	"github.com/chessmind/chess-backend/internal/chess"
	"github.com/chessmind/chess-backend/internal/entity"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payload carries both request fields and response fields; unused fields
// are omitted on the wire.
type Payload struct {
	SessionID    string `json:"session_id,omitempty"`
	FromPos      string `json:"from_pos,omitempty"`
	ToPos        string `json:"to_pos,omitempty"`
	Message      string `json:"message,omitempty"`
	IncludeBoard bool   `json:"include_board,omitempty"`

	Game     *entity.Game `json:"game,omitempty"`
	Move     *chess.Move  `json:"move,omitempty"`
	Response string       `json:"response,omitempty"`
	Error    string       `json:"error,omitempty"`
}

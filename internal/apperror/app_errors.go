package apperror

import "fmt"

const (
	CodeGameOver        = "GAME_OVER"
	CodeInvalidMove     = "INVALID_MOVE"
	CodeInvalidPosition = "INVALID_POSITION"
	CodeAIService       = "AI_SERVICE_ERROR"
	CodeValidation      = "VALIDATION_ERROR"
	CodeInternal        = "INTERNAL_ERROR"
)

// Machine-readable reasons carried in the details of an invalid move.
const (
	ReasonNoPiece     = "no_piece"
	ReasonWrongTurn   = "wrong_turn"
	ReasonSelfCapture = "self_capture"
	ReasonIllegalMove = "illegal_for_piece"
)

// Error - a structured application error rendered as-is by the transport layer.
type Error struct {
	Code    string         `json:"error_code"`
	Message string         `json:"message"`
	Status  int            `json:"status_code"`
	Details map[string]any `json:"details,omitempty"`
}

func (that *Error) Error() string {
	return that.Message
}

// GameOver - a move was attempted after the game reached its terminal state.
func GameOver() *Error {
	return &Error{
		Code:    CodeGameOver,
		Message: "Game is over. No more moves allowed.",
		Status:  409,
	}
}

// InvalidPosition - a square code outside the 64 valid positions.
func InvalidPosition(position string) *Error {
	return &Error{
		Code:    CodeInvalidPosition,
		Message: fmt.Sprintf("Invalid position: %s", position),
		Status:  400,
		Details: map[string]any{"position": position},
	}
}

// InvalidMove - a structurally valid but rule-violating move.
func InvalidMove(message, from, to, reason string) *Error {
	return &Error{
		Code:    CodeInvalidMove,
		Message: message,
		Status:  400,
		Details: map[string]any{
			"from_pos": from,
			"to_pos":   to,
			"reason":   reason,
		},
	}
}

// AIService - the text-generation backend is unavailable or produced no usable move.
func AIService(message string) *Error {
	return &Error{
		Code:    CodeAIService,
		Message: message,
		Status:  503,
	}
}

// Validation - a configuration input was rejected.
func Validation(field string, value any, reason string) *Error {
	return &Error{
		Code:    CodeValidation,
		Message: fmt.Sprintf("Validation error for %s: %s", field, reason),
		Status:  400,
		Details: map[string]any{
			"field":  field,
			"value":  value,
			"reason": reason,
		},
	}
}

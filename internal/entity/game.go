package entity

const (
	ModeHumanVsHuman = "human_vs_human"
	ModeHumanVsAI    = "human_vs_ai"
)

// MoveRecord - an immutable history entry appended on every successful move.
type MoveRecord struct {
	FromPos           string `json:"from_pos"`
	ToPos             string `json:"to_pos"`
	Piece             string `json:"piece"`
	Color             string `json:"color"`
	CapturedPiece     string `json:"captured_piece,omitempty"`
	IsCapture         bool   `json:"is_capture"`
	AlgebraicNotation string `json:"algebraic_notation"`
	TurnNumber        int    `json:"turn_number"`
}

// Game - the aggregate holding one board, turn state, history and game mode.
type Game struct {
	Board       Board        `json:"board"`
	Turn        string       `json:"turn"`
	GameOver    bool         `json:"game_over"`
	MoveHistory []MoveRecord `json:"move_history"`
	Mode        string       `json:"mode"`
	AIColor     string       `json:"ai_color,omitempty"`
}

// NewGame creates a game in the standard starting layout, white to move.
func NewGame() *Game {
	return &Game{
		Board:       NewBoard(),
		Turn:        ColorWhite,
		MoveHistory: []MoveRecord{},
		Mode:        ModeHumanVsHuman,
	}
}

// Reset restores the starting layout and empties the history.
// Game mode and AI color survive a reset.
func (that *Game) Reset() {
	that.Board = NewBoard()
	that.Turn = ColorWhite
	that.GameOver = false
	that.MoveHistory = []MoveRecord{}
}

// CheckGameOver scans the board for both kings and latches the game-over
// flag once either is absent. The flag never goes back to false except
// through Reset.
func (that *Game) CheckGameOver() {
	if !that.Board.HasPiece("K") || !that.Board.HasPiece("k") {
		that.GameOver = true
	}
}

// RecordMove appends a history entry. The turn number is 1-based and
// advances every two half-moves.
func (that *Game) RecordMove(record MoveRecord) {
	record.TurnNumber = len(that.MoveHistory)/2 + 1
	that.MoveHistory = append(that.MoveHistory, record)
}

// IsAITurn reports whether the AI side is to move.
func (that *Game) IsAITurn() bool {
	return that.Mode == ModeHumanVsAI && that.Turn == that.AIColor
}

// Snapshot returns a copy safe to hand to transports while the original
// keeps mutating under its own lock.
func (that *Game) Snapshot() *Game {
	clone := *that
	clone.MoveHistory = make([]MoveRecord, len(that.MoveHistory))
	copy(clone.MoveHistory, that.MoveHistory)
	return &clone
}

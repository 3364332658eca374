package entity

import "encoding/json"

const (
	EmptySquare = "."

	boardFiles = "abcdefgh"
	boardRanks = "12345678"

	SquareCount = 64
)

// Board - a total mapping from all 64 squares to a piece symbol or the empty
// sentinel. Squares are stored in rank-major order starting from a1
// (a1..h1, a2..h2, ...), which is also the scan order of RemoveFirst.
type Board [SquareCount]string

// NewBoard returns a board in the standard starting layout.
func NewBoard() Board {
	var board Board
	for i := range board {
		board[i] = EmptySquare
	}

	backRank := []string{"R", "N", "B", "Q", "K", "B", "N", "R"}
	for file := 0; file < 8; file++ {
		board[squareIndexAt(file, 0)] = backRank[file]
		board[squareIndexAt(file, 1)] = "P"
		board[squareIndexAt(file, 6)] = "p"
		board[squareIndexAt(file, 7)] = toLower(backRank[file])
	}

	return board
}

// IsValidPosition reports whether pos is one of the 64 valid square codes.
func IsValidPosition(pos string) bool {
	return SquareIndex(pos) >= 0
}

// SquareIndex converts a square code like "e4" to its board index, or -1.
func SquareIndex(pos string) int {
	if len(pos) != 2 {
		return -1
	}

	file := int(pos[0]) - 'a'
	rank := int(pos[1]) - '1'
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return -1
	}

	return squareIndexAt(file, rank)
}

// SquareName converts a board index back to its square code.
func SquareName(index int) string {
	return string(boardFiles[index%8]) + string(boardRanks[index/8])
}

func squareIndexAt(file, rank int) int {
	return rank*8 + file
}

// At returns the piece on pos. The caller must pass a valid square code.
func (that *Board) At(pos string) string {
	return that[SquareIndex(pos)]
}

// Set places piece on pos. The caller must pass a valid square code.
func (that *Board) Set(pos, piece string) {
	that[SquareIndex(pos)] = piece
}

// HasPiece reports whether any square holds the given piece symbol.
func (that *Board) HasPiece(symbol string) bool {
	for _, piece := range that {
		if piece == symbol {
			return true
		}
	}
	return false
}

// RemoveFirst clears the first square holding the given piece symbol, in
// board scan order, and returns the square it was removed from.
// Test and debug escape hatch, not reachable from normal play.
func (that *Board) RemoveFirst(symbol string) string {
	for i, piece := range that {
		if piece == symbol {
			that[i] = EmptySquare
			return SquareName(i)
		}
	}
	return ""
}

// MarshalJSON renders the board as a square-to-piece object.
func (that Board) MarshalJSON() ([]byte, error) {
	squares := make(map[string]string, SquareCount)
	for i, piece := range that {
		squares[SquareName(i)] = piece
	}
	return json.Marshal(squares)
}

// UnmarshalJSON restores the board from a square-to-piece object. Squares
// missing from the object come back empty, so the 64-entry invariant holds.
func (that *Board) UnmarshalJSON(data []byte) error {
	squares := make(map[string]string, SquareCount)
	if err := json.Unmarshal(data, &squares); err != nil {
		return err
	}

	for i := range that {
		piece, ok := squares[SquareName(i)]
		if !ok {
			piece = EmptySquare
		}
		that[i] = piece
	}

	return nil
}

func toLower(symbol string) string {
	return string(symbol[0] - 'A' + 'a')
}

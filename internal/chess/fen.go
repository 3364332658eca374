package chess

import (
	"strconv"
	"strings"

	"github.com/chessmind/chess-backend/internal/entity"
)

// BoardToFEN serializes the piece placement field of FEN notation: ranks
// 8 down to 1 separated by "/", files a to h, runs of empty squares
// collapsed to their count. Side to move, castling and the other FEN
// fields are not tracked by this engine and are omitted.
func BoardToFEN(board *entity.Board) string {
	var ranks []string

	for rank := 7; rank >= 0; rank-- {
		var builder strings.Builder
		emptyRun := 0

		for file := 0; file < 8; file++ {
			piece := board[rank*8+file]
			if piece == entity.EmptySquare {
				emptyRun++
				continue
			}
			if emptyRun > 0 {
				builder.WriteString(strconv.Itoa(emptyRun))
				emptyRun = 0
			}
			builder.WriteString(piece)
		}

		if emptyRun > 0 {
			builder.WriteString(strconv.Itoa(emptyRun))
		}

		ranks = append(ranks, builder.String())
	}

	return strings.Join(ranks, "/")
}

package chess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chessmind/chess-backend/internal/entity"
)

func TestBoardToFEN(t *testing.T) {
	t.Run("Serializes the starting position", func(t *testing.T) {
		board := entity.NewBoard()

		fen := BoardToFEN(&board)

		assert.Equal(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR", fen)
	})

	t.Run("Collapses empty runs within a rank", func(t *testing.T) {
		// Given: the position after 1. e4
		game := entity.NewGame()
		require.NoError(t, MakeMove(game, "e2", "e4"))

		fen := BoardToFEN(&game.Board)

		assert.Equal(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR", fen)
	})

	t.Run("Serializes an empty board as eight empty ranks", func(t *testing.T) {
		var board entity.Board
		for i := range board {
			board[i] = entity.EmptySquare
		}

		fen := BoardToFEN(&board)

		assert.Equal(t, "8/8/8/8/8/8/8/8", fen)
	})
}

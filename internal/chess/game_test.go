package chess

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chessmind/chess-backend/internal/apperror"
	"github.com/chessmind/chess-backend/internal/entity"
)

func requireAppError(t *testing.T, err error, code string) *apperror.Error {
	t.Helper()

	var appErr *apperror.Error
	require.True(t, errors.As(err, &appErr), "expected an application error, got %v", err)
	require.Equal(t, code, appErr.Code)
	return appErr
}

func TestMakeMove(t *testing.T) {
	t.Run("e2 to e4 on a fresh game succeeds and flips the turn", func(t *testing.T) {
		// Given: a fresh game
		game := entity.NewGame()

		// When: playing e2 e4
		err := MakeMove(game, "e2", "e4")

		// Then: the pawn moved and it is black's turn
		require.NoError(t, err)
		assert.Equal(t, entity.EmptySquare, game.Board.At("e2"))
		assert.Equal(t, "P", game.Board.At("e4"))
		assert.Equal(t, entity.ColorBlack, game.Turn)
		assert.False(t, game.GameOver)
	})

	t.Run("Fails with an invalid position before touching the board", func(t *testing.T) {
		game := entity.NewGame()

		err := MakeMove(game, "z9", "e4")

		appErr := requireAppError(t, err, apperror.CodeInvalidPosition)
		assert.Equal(t, "z9", appErr.Details["position"])
		assert.Equal(t, entity.NewBoard(), game.Board)
	})

	t.Run("Fails with the no-piece reason for an empty source square", func(t *testing.T) {
		game := entity.NewGame()

		err := MakeMove(game, "e3", "e4")

		appErr := requireAppError(t, err, apperror.CodeInvalidMove)
		assert.Equal(t, apperror.ReasonNoPiece, appErr.Details["reason"])
	})

	t.Run("Fails with the wrong-turn reason when moving out of turn", func(t *testing.T) {
		// Given: white has already moved
		game := entity.NewGame()
		require.NoError(t, MakeMove(game, "e2", "e4"))

		// When: white tries to move again
		err := MakeMove(game, "d2", "d4")

		// Then: the move is rejected and nothing changed
		appErr := requireAppError(t, err, apperror.CodeInvalidMove)
		assert.Equal(t, apperror.ReasonWrongTurn, appErr.Details["reason"])
		assert.Equal(t, "P", game.Board.At("d2"))
	})

	t.Run("Fails with the self-capture reason on an own piece destination", func(t *testing.T) {
		game := entity.NewGame()

		err := MakeMove(game, "a1", "a2")

		appErr := requireAppError(t, err, apperror.CodeInvalidMove)
		assert.Equal(t, apperror.ReasonSelfCapture, appErr.Details["reason"])
	})

	t.Run("Fails with the illegal reason when the piece cannot move that way", func(t *testing.T) {
		game := entity.NewGame()

		err := MakeMove(game, "e2", "e5")

		appErr := requireAppError(t, err, apperror.CodeInvalidMove)
		assert.Equal(t, apperror.ReasonIllegalMove, appErr.Details["reason"])
	})

	t.Run("Records history with captures and algebraic notation", func(t *testing.T) {
		// Given: 1. e4 d5
		game := entity.NewGame()
		require.NoError(t, MakeMove(game, "e2", "e4"))
		require.NoError(t, MakeMove(game, "d7", "d5"))

		// When: white captures 2. exd5
		require.NoError(t, MakeMove(game, "e4", "d5"))

		// Then: the history holds all three half-moves
		require.Len(t, game.MoveHistory, 3)

		first := game.MoveHistory[0]
		assert.Equal(t, "P", first.Piece)
		assert.Equal(t, entity.ColorWhite, first.Color)
		assert.False(t, first.IsCapture)
		assert.Equal(t, "e4", first.AlgebraicNotation)
		assert.Equal(t, 1, first.TurnNumber)

		capture := game.MoveHistory[2]
		assert.True(t, capture.IsCapture)
		assert.Equal(t, "p", capture.CapturedPiece)
		assert.Equal(t, "exd5", capture.AlgebraicNotation)
		assert.Equal(t, 2, capture.TurnNumber)
	})

	t.Run("Uses the piece letter in notation for non-pawns", func(t *testing.T) {
		game := entity.NewGame()

		require.NoError(t, MakeMove(game, "g1", "f3"))

		assert.Equal(t, "Nf3", game.MoveHistory[0].AlgebraicNotation)
	})

	t.Run("Capturing the king ends the game without flipping the turn", func(t *testing.T) {
		// Given: a position where the white queen can take the black king
		game := entity.NewGame()
		game.Board.Set("e7", entity.EmptySquare)
		game.Board.Set("d1", entity.EmptySquare)
		game.Board.Set("e4", "Q")

		// When: the queen captures on e8
		err := MakeMove(game, "e4", "e8")

		// Then: the game is over, white still listed as the mover
		require.NoError(t, err)
		assert.True(t, game.GameOver)
		assert.Equal(t, entity.ColorWhite, game.Turn)
		assert.Equal(t, "k", game.MoveHistory[len(game.MoveHistory)-1].CapturedPiece)
	})

	t.Run("Rejects any move after the game is over and mutates nothing", func(t *testing.T) {
		// Given: a finished game
		game := entity.NewGame()
		game.Board.RemoveFirst("k")
		game.CheckGameOver()
		require.True(t, game.GameOver)
		before := *game.Snapshot()

		// When: attempting another move
		err := MakeMove(game, "e2", "e4")

		// Then: GameOverError, state untouched
		requireAppError(t, err, apperror.CodeGameOver)
		assert.Equal(t, before.Board, game.Board)
		assert.Equal(t, before.Turn, game.Turn)
		assert.Len(t, game.MoveHistory, len(before.MoveHistory))
	})
}

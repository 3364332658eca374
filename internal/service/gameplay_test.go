package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chessmind/chess-backend/internal/apperror"
	"github.com/chessmind/chess-backend/internal/chess"
	"github.com/chessmind/chess-backend/internal/entity"
)

func newTestGamePlayService(ai AIService) GamePlayService {
	return NewGamePlayService(testLogger(), ai)
}

func TestGamePlayService_MakeMove(t *testing.T) {
	t.Run("Commits a legal move and returns the new state", func(t *testing.T) {
		// Given: a fresh game
		gameplay := newTestGamePlayService(nil)

		// When: white opens with e4
		game, err := gameplay.MakeMove("e2", "e4")

		// Then: the board advanced and the turn flipped
		require.NoError(t, err)
		assert.Equal(t, "P", game.Board.At("e4"))
		assert.Equal(t, entity.ColorBlack, game.Turn)
		assert.Len(t, game.MoveHistory, 1)
	})

	t.Run("Propagates rule violations with their error codes", func(t *testing.T) {
		gameplay := newTestGamePlayService(nil)

		_, err := gameplay.MakeMove("e7", "e5")

		var appErr *apperror.Error
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.CodeInvalidMove, appErr.Code)
		assert.Equal(t, apperror.ReasonWrongTurn, appErr.Details["reason"])
	})

	t.Run("Returned state is a snapshot, not the live game", func(t *testing.T) {
		gameplay := newTestGamePlayService(nil)

		game, err := gameplay.MakeMove("e2", "e4")
		require.NoError(t, err)

		game.Board.Set("e4", ".")

		assert.Equal(t, "P", gameplay.State().Board.At("e4"))
	})
}

func TestGamePlayService_Reset(t *testing.T) {
	t.Run("Restores the starting position but keeps the game mode", func(t *testing.T) {
		// Given: a configured game with a move played
		gameplay := newTestGamePlayService(nil)
		_, err := gameplay.SetGameMode(entity.ModeHumanVsAI, entity.ColorBlack)
		require.NoError(t, err)
		_, err = gameplay.MakeMove("e2", "e4")
		require.NoError(t, err)

		// When: the game is reset
		game := gameplay.Reset()

		// Then: board and history are fresh, mode survives
		assert.Equal(t, "P", game.Board.At("e2"))
		assert.Equal(t, entity.ColorWhite, game.Turn)
		assert.Empty(t, game.MoveHistory)
		assert.Equal(t, entity.ModeHumanVsAI, game.Mode)
		assert.Equal(t, entity.ColorBlack, game.AIColor)
	})
}

func TestGamePlayService_SetGameMode(t *testing.T) {
	t.Run("Rejects an unknown mode", func(t *testing.T) {
		gameplay := newTestGamePlayService(nil)

		_, err := gameplay.SetGameMode("ai_vs_ai", "")

		var appErr *apperror.Error
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.CodeValidation, appErr.Code)
		assert.Equal(t, "mode", appErr.Details["field"])
	})

	t.Run("Requires a side for the AI in human-vs-ai mode", func(t *testing.T) {
		gameplay := newTestGamePlayService(nil)

		_, err := gameplay.SetGameMode(entity.ModeHumanVsAI, "green")

		var appErr *apperror.Error
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "ai_color", appErr.Details["field"])
	})

	t.Run("Switching back to human-vs-human clears the AI side", func(t *testing.T) {
		gameplay := newTestGamePlayService(nil)
		_, err := gameplay.SetGameMode(entity.ModeHumanVsAI, entity.ColorWhite)
		require.NoError(t, err)

		game, err := gameplay.SetGameMode(entity.ModeHumanVsHuman, "")

		require.NoError(t, err)
		assert.Equal(t, entity.ModeHumanVsHuman, game.Mode)
		assert.Empty(t, game.AIColor)
	})
}

func TestGamePlayService_PlayAITurn(t *testing.T) {
	t.Run("Requires AI mode to be enabled", func(t *testing.T) {
		// Given: a game still in human-vs-human mode
		ai := newTestAIService(&fakeCompleter{responses: []string{"e2 e4"}}, false, 5)
		gameplay := newTestGamePlayService(ai)

		// When: an AI turn is requested
		_, _, err := gameplay.PlayAITurn(context.Background())

		// Then: a validation error
		var appErr *apperror.Error
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.CodeValidation, appErr.Code)
	})

	t.Run("Refuses to move for the human side", func(t *testing.T) {
		// Given: AI plays black but it is white's turn
		ai := newTestAIService(&fakeCompleter{responses: []string{"e7 e5"}}, false, 5)
		gameplay := newTestGamePlayService(ai)
		_, err := gameplay.SetGameMode(entity.ModeHumanVsAI, entity.ColorBlack)
		require.NoError(t, err)

		_, _, err = gameplay.PlayAITurn(context.Background())

		var appErr *apperror.Error
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.CodeValidation, appErr.Code)
		assert.Equal(t, "turn", appErr.Details["field"])
	})

	t.Run("Generates and commits the AI move when it is the AI's turn", func(t *testing.T) {
		// Given: AI plays black and white has opened
		ai := newTestAIService(&fakeCompleter{responses: []string{"e7 e5"}}, false, 5)
		gameplay := newTestGamePlayService(ai)
		_, err := gameplay.SetGameMode(entity.ModeHumanVsAI, entity.ColorBlack)
		require.NoError(t, err)
		_, err = gameplay.MakeMove("e2", "e4")
		require.NoError(t, err)

		// When: the AI takes its turn
		game, move, err := gameplay.PlayAITurn(context.Background())

		// Then: the suggested reply is committed
		require.NoError(t, err)
		assert.Equal(t, &chess.Move{From: "e7", To: "e5"}, move)
		assert.Equal(t, "p", game.Board.At("e5"))
		assert.Equal(t, entity.ColorWhite, game.Turn)
		assert.Len(t, game.MoveHistory, 2)
	})

	t.Run("Rejects play on a finished game", func(t *testing.T) {
		ai := newTestAIService(&fakeCompleter{responses: []string{"e7 e5"}}, false, 5)
		gameplay := newTestGamePlayService(ai)
		_, err := gameplay.SetGameMode(entity.ModeHumanVsAI, entity.ColorBlack)
		require.NoError(t, err)

		// Scholar-style finish: white captures the black king outright.
		for _, move := range [][2]string{
			{"e2", "e4"}, {"f7", "f5"},
			{"d1", "h5"}, {"a7", "a6"},
			{"h5", "e8"},
		} {
			_, err = gameplay.MakeMove(move[0], move[1])
			require.NoError(t, err)
		}
		require.True(t, gameplay.State().GameOver)

		_, _, err = gameplay.PlayAITurn(context.Background())

		var appErr *apperror.Error
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.CodeGameOver, appErr.Code)
	})
}

func TestGamePlayService_SuggestAIMove(t *testing.T) {
	t.Run("Suggests without committing", func(t *testing.T) {
		// Given: a backend with a canned suggestion
		ai := newTestAIService(&fakeCompleter{responses: []string{"e2 e4"}}, false, 5)
		gameplay := newTestGamePlayService(ai)

		// When: a hint is requested
		move, err := gameplay.SuggestAIMove(context.Background())

		// Then: the move comes back but the board is untouched
		require.NoError(t, err)
		assert.Equal(t, &chess.Move{From: "e2", To: "e4"}, move)
		assert.Equal(t, "P", gameplay.State().Board.At("e2"))
		assert.Empty(t, gameplay.State().MoveHistory)
	})
}

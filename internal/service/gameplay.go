package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/chessmind/chess-backend/internal/apperror"
	"github.com/chessmind/chess-backend/internal/chess"
	"github.com/chessmind/chess-backend/internal/entity"
)

type GamePlayService interface {
	State() *entity.Game
	MakeMove(from, to string) (*entity.Game, error)
	Reset() *entity.Game
	SetGameMode(mode, aiColor string) (*entity.Game, error)

	SuggestAIMove(ctx context.Context) (*chess.Move, error)
	PlayAITurn(ctx context.Context) (*entity.Game, *chess.Move, error)
}

// gamePlayService owns the single shared game instance. All mutation goes
// through the mutex since the transports serve concurrent callers.
type gamePlayService struct {
	logger *slog.Logger
	ai     AIService

	mu   sync.Mutex
	game *entity.Game
}

func NewGamePlayService(logger *slog.Logger, ai AIService) GamePlayService {
	return &gamePlayService{
		logger: logger.With("component", "gameplay"),
		ai:     ai,
		game:   entity.NewGame(),
	}
}

func (that *gamePlayService) State() *entity.Game {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.game.Snapshot()
}

func (that *gamePlayService) MakeMove(from, to string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := chess.MakeMove(that.game, from, to); err != nil {
		return nil, fmt.Errorf("failed to make move: %w", err)
	}

	that.logger.Info("move made", "from", from, "to", to, "turn", that.game.Turn, "game_over", that.game.GameOver)

	return that.game.Snapshot(), nil
}

func (that *gamePlayService) Reset() *entity.Game {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.game.Reset()
	that.logger.Info("game reset")

	return that.game.Snapshot()
}

// SetGameMode selects human-vs-human or human-vs-ai play and the AI side.
func (that *gamePlayService) SetGameMode(mode, aiColor string) (*entity.Game, error) {
	if mode != entity.ModeHumanVsHuman && mode != entity.ModeHumanVsAI {
		return nil, apperror.Validation("mode", mode, "unrecognized game mode")
	}

	if mode == entity.ModeHumanVsAI && aiColor != entity.ColorWhite && aiColor != entity.ColorBlack {
		return nil, apperror.Validation("ai_color", aiColor, "must be white or black")
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.game.Mode = mode
	if mode == entity.ModeHumanVsHuman {
		that.game.AIColor = ""
	} else {
		that.game.AIColor = aiColor
	}

	that.logger.Info("game mode set", "mode", mode, "ai_color", that.game.AIColor)

	return that.game.Snapshot(), nil
}

// SuggestAIMove generates a move for the side to move without committing it.
func (that *gamePlayService) SuggestAIMove(ctx context.Context) (*chess.Move, error) {
	that.mu.Lock()
	if that.game.GameOver {
		that.mu.Unlock()
		return nil, apperror.GameOver()
	}
	snapshot := that.game.Snapshot()
	that.mu.Unlock()

	// the backend call runs outside the lock so a slow completion stalls
	// only the caller, not the shared game
	move, err := that.ai.GenerateMove(ctx, snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to generate AI move: %w", err)
	}

	return move, nil
}

// PlayAITurn generates and commits a move for the AI side. The game must be
// in human-vs-ai mode with the AI side to move.
func (that *gamePlayService) PlayAITurn(ctx context.Context) (*entity.Game, *chess.Move, error) {
	that.mu.Lock()
	if that.game.Mode != entity.ModeHumanVsAI {
		that.mu.Unlock()
		return nil, nil, apperror.Validation("mode", that.game.Mode, "AI mode not enabled")
	}
	if that.game.GameOver {
		that.mu.Unlock()
		return nil, nil, apperror.GameOver()
	}
	if that.game.Turn != that.game.AIColor {
		that.mu.Unlock()
		return nil, nil, apperror.Validation("turn", that.game.Turn, "it is not the AI's turn")
	}
	snapshot := that.game.Snapshot()
	that.mu.Unlock()

	move, err := that.ai.GenerateMove(ctx, snapshot)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate AI move: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if err = chess.MakeMove(that.game, move.From, move.To); err != nil {
		return nil, nil, fmt.Errorf("AI move rejected: %w", err)
	}

	that.logger.Info("AI move made", "from", move.From, "to", move.To, "game_over", that.game.GameOver)

	return that.game.Snapshot(), move, nil
}

package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/chessmind/chess-backend/internal/apperror"
	"github.com/chessmind/chess-backend/internal/chess"
	"github.com/chessmind/chess-backend/internal/entity"
	"github.com/chessmind/chess-backend/internal/llm"
)

const (
	minCacheSize = 1
	maxCacheSize = 20
)

const singleMoveSystemPrompt = `You are a chess AI assistant. Analyze the EXACT current position and suggest the best legal move.

CRITICAL RULES:
- You MUST analyze the actual current board position provided in FEN notation
- Only suggest moves that are legal for the current position
- Do NOT suggest moves that are impossible (e.g., moving pawns that have already moved)
- Consider the actual piece positions, not generic opening theory
- Respond with ONLY a move in the format "from_pos to_pos" (e.g., "e7 e5")
- Do not include any explanations or additional text - just the move coordinates

RESPONSE FORMAT: Respond with exactly "from_pos to_pos" (e.g., "e7 e5")`

// CompletionClient is the slice of the LLM client this service needs.
type CompletionClient interface {
	Complete(ctx context.Context, messages []llm.Message) (string, error)
}

type AIService interface {
	GenerateMove(ctx context.Context, game *entity.Game) (*chess.Move, error)
	AnalyzePosition(ctx context.Context, game *entity.Game) (string, error)

	SetStrategy(useMultiMoveCache bool, cacheSize int) error
	Strategy() (bool, int)
}

type aiService struct {
	logger *slog.Logger
	client CompletionClient

	mu                 sync.Mutex
	useMultiMoveCache  bool
	cacheSize          int
	moveQueue          []chess.Move
	lastRequest        time.Time
	minRequestInterval time.Duration
}

func NewAIService(logger *slog.Logger, client CompletionClient, useMultiMoveCache bool, cacheSize int, minRequestInterval time.Duration) AIService {
	if client == nil {
		logger.Warn("AI client is not configured, move generation will be unavailable")
	}

	return &aiService{
		logger:             logger.With("component", "ai"),
		client:             client,
		useMultiMoveCache:  useMultiMoveCache,
		cacheSize:          cacheSize,
		minRequestInterval: minRequestInterval,
	}
}

// SetStrategy switches between the single-move and multi-move strategies.
// Any change clears the lookahead queue unconditionally.
func (that *aiService) SetStrategy(useMultiMoveCache bool, cacheSize int) error {
	if cacheSize < minCacheSize || cacheSize > maxCacheSize {
		return apperror.Validation("cache_size", cacheSize,
			fmt.Sprintf("must be between %d and %d", minCacheSize, maxCacheSize))
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.useMultiMoveCache = useMultiMoveCache
	that.cacheSize = cacheSize
	that.moveQueue = nil

	that.logger.Info("AI strategy changed", "multi_move_cache", useMultiMoveCache, "cache_size", cacheSize)

	return nil
}

func (that *aiService) Strategy() (bool, int) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.useMultiMoveCache, that.cacheSize
}

// GenerateMove produces one move for the side to move, consulting the
// lookahead queue before spending a backend call.
func (that *aiService) GenerateMove(ctx context.Context, game *entity.Game) (*chess.Move, error) {
	if that.client == nil {
		return nil, apperror.AIService("AI service is not available: no API key configured")
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if that.useMultiMoveCache {
		if move := that.nextCachedMove(game); move != nil {
			that.logger.Info("using cached move", "from", move.From, "to", move.To)
			return move, nil
		}

		moves, err := that.generateMovesAhead(ctx, game)
		if err != nil {
			return nil, err
		}
		if len(moves) > 0 {
			return &moves[0], nil
		}

		// none of the predicted moves survived validation
		return firstLegalMove(game)
	}

	return that.generateSingleMove(ctx, game)
}

// nextCachedMove pops queue entries until one survives re-validation
// against the current position: right piece color at the source, no own
// piece at the destination, and present in the fresh legal-move list.
func (that *aiService) nextCachedMove(game *entity.Game) *chess.Move {
	if len(that.moveQueue) == 0 {
		return nil
	}

	legalMoves := chess.LegalMoves(&game.Board, game.Turn)

	for len(that.moveQueue) > 0 {
		move := that.moveQueue[0]
		that.moveQueue = that.moveQueue[1:]

		if !entity.IsValidPosition(move.From) || !entity.IsValidPosition(move.To) {
			continue
		}

		if entity.PieceColor(game.Board.At(move.From)) != game.Turn {
			that.logger.Debug("discarded cached move, wrong piece color", "from", move.From, "to", move.To)
			continue
		}

		if entity.PieceColor(game.Board.At(move.To)) == game.Turn {
			that.logger.Debug("discarded cached move, would capture own piece", "from", move.From, "to", move.To)
			continue
		}

		if !containsMove(legalMoves, move) {
			that.logger.Debug("discarded cached move, no longer legal", "from", move.From, "to", move.To)
			continue
		}

		return &move
	}

	return nil
}

// generateSingleMove runs the full-analysis strategy: one backend call,
// parse, legality filter, then same-source-or-same-destination substitution
// and first-legal fallback.
func (that *aiService) generateSingleMove(ctx context.Context, game *entity.Game) (*chess.Move, error) {
	fen := chess.BoardToFEN(&game.Board)

	prompt := fmt.Sprintf(`CURRENT BOARD POSITION (FEN): %s
CURRENT TURN: %s
MOVES PLAYED: %d

IMPORTANT: Analyze this EXACT position. Do not suggest generic opening moves.
Look at what pieces are actually on the board and where they can legally move.

Please suggest the best legal move for this specific position:`,
		fen, game.Turn, len(game.MoveHistory))

	response, err := that.complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: singleMoveSystemPrompt},
		{Role: llm.RoleUser, Content: prompt},
	})
	if err != nil {
		return nil, err
	}

	legalMoves := chess.LegalMoves(&game.Board, game.Turn)

	from, to, ok := chess.ParseMove(response)
	if ok {
		suggested := chess.Move{From: from, To: to}
		if containsMove(legalMoves, suggested) {
			that.logger.Info("AI suggested move", "from", from, "to", to)
			return &suggested, nil
		}

		that.logger.Warn("AI suggested illegal move", "from", from, "to", to)

		// substitute a legal move sharing the source or destination
		for _, legal := range legalMoves {
			if legal.From == from || legal.To == to {
				that.logger.Info("substituted similar legal move", "from", legal.From, "to", legal.To)
				return &legal, nil
			}
		}
	} else {
		that.logger.Warn("failed to parse AI move response", "response", response)
	}

	if len(legalMoves) > 0 {
		that.logger.Info("falling back to first legal move")
		return &legalMoves[0], nil
	}

	return nil, apperror.AIService("no legal moves available")
}

// generateMovesAhead asks for a sequence of cacheSize predicted moves in a
// single call, keeps the ones legal in the current position, and stores
// them as the new lookahead queue. Later entries are validated against the
// same starting position rather than the hypothetical positions after
// earlier ones; stale entries are weeded out at consumption time instead.
func (that *aiService) generateMovesAhead(ctx context.Context, game *entity.Game) ([]chess.Move, error) {
	fen := chess.BoardToFEN(&game.Board)
	numMoves := that.cacheSize

	systemPrompt := fmt.Sprintf(`You are a chess AI assistant. Analyze the EXACT current position and predict the best %d moves you would make over the next %d turns, assuming your opponent makes reasonable responses.

CRITICAL RULES:
- You MUST analyze the actual current board position provided in FEN notation
- You are predicting a SEQUENCE of moves over multiple turns, not alternative moves for the same position
- Consider that after each of your moves, your opponent will respond, changing the board
- Respond with exactly %d moves separated by commas
- Each move should be in the format "from_pos to_pos" (e.g., "e7 e5")
- Do not include explanations - just the moves separated by commas

RESPONSE FORMAT: "e7 e5, d7 d6, g8 f6, b8 c6, f8 e7"`, numMoves, numMoves, numMoves)

	prompt := fmt.Sprintf(`CURRENT BOARD POSITION (FEN): %s
CURRENT TURN: %s
MOVES PLAYED: %d

Please predict the best %d moves you would make over the next %d turns:`,
		fen, game.Turn, len(game.MoveHistory), numMoves, numMoves)

	response, err := that.complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt},
		{Role: llm.RoleUser, Content: prompt},
	})
	if err != nil {
		return nil, err
	}

	parsed := chess.ParseMoveList(response)
	legalMoves := chess.LegalMoves(&game.Board, game.Turn)

	validMoves := make([]chess.Move, 0, len(parsed))
	for _, move := range parsed {
		if containsMove(legalMoves, move) {
			validMoves = append(validMoves, move)
		} else {
			that.logger.Warn("discarded predicted move", "from", move.From, "to", move.To)
		}
	}

	that.moveQueue = validMoves
	that.logger.Info("move queue populated", "valid", len(validMoves), "suggested", len(parsed))

	return validMoves, nil
}

// AnalyzePosition asks the backend for a textual assessment of the current
// position, grounded in a full piece listing so it cannot invent material.
func (that *aiService) AnalyzePosition(ctx context.Context, game *entity.Game) (string, error) {
	if that.client == nil {
		return "", apperror.AIService("AI service is not available: no API key configured")
	}

	systemPrompt := `You are a chess expert. You will be given a chess board state in FEN notation and a mapping of all pieces and their positions.

Your job is to:
1. List all pieces and their positions for both White and Black, exactly as given.
2. Provide a brief, insightful analysis of the position, referring ONLY to the pieces and pawns that are actually present on the board.
3. Do NOT mention or analyze any piece, pawn, or square that does not exist in the given board state.

Be precise and do not hallucinate. Your analysis must be based strictly on the provided board state.`

	prompt := fmt.Sprintf("FEN: %s\nCurrent turn: %s\n\nPieces on the board:\n%s\n\nPlease analyze this position as described above.",
		chess.BoardToFEN(&game.Board), game.Turn, pieceListing(&game.Board))

	that.mu.Lock()
	defer that.mu.Unlock()

	return that.complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt},
		{Role: llm.RoleUser, Content: prompt},
	})
}

// complete applies the rate limit and calls the backend. Callers hold the
// service lock, so the limiter state is consistent.
func (that *aiService) complete(ctx context.Context, messages []llm.Message) (string, error) {
	sinceLast := time.Since(that.lastRequest)
	if sinceLast < that.minRequestInterval {
		wait := that.minRequestInterval - sinceLast
		that.logger.Info("rate limiting backend call", "sleep", wait)
		time.Sleep(wait)
	}
	that.lastRequest = time.Now()

	response, err := that.client.Complete(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("%w: %s", apperror.AIService("AI completion failed"), err)
	}

	return strings.TrimSpace(response), nil
}

func firstLegalMove(game *entity.Game) (*chess.Move, error) {
	legalMoves := chess.LegalMoves(&game.Board, game.Turn)
	if len(legalMoves) == 0 {
		return nil, apperror.AIService("no legal moves available")
	}
	return &legalMoves[0], nil
}

func containsMove(moves []chess.Move, move chess.Move) bool {
	for _, candidate := range moves {
		if candidate == move {
			return true
		}
	}
	return false
}

// pieceListing renders every piece on the board as "White Knight on b1"
// lines, in board scan order.
func pieceListing(board *entity.Board) string {
	var lines []string

	for i, piece := range board {
		if piece == entity.EmptySquare {
			continue
		}

		color := "White"
		if entity.IsBlackPiece(piece) {
			color = "Black"
		}

		name := entity.PieceName(piece)
		lines = append(lines, fmt.Sprintf("%s %s%s on %s", color, strings.ToUpper(name[:1]), name[1:], entity.SquareName(i)))
	}

	return strings.Join(lines, "\n")
}

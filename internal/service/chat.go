package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/chessmind/chess-backend/internal/apperror"
	"github.com/chessmind/chess-backend/internal/entity"
	"github.com/chessmind/chess-backend/internal/llm"
	"github.com/chessmind/chess-backend/internal/repository"
)

const chatSystemPrompt = `You are a helpful chess assistant. You can:
- Answer questions about chess rules and strategies
- Help analyze chess positions
- Provide tips and advice for improving chess skills
- Engage in friendly conversation about chess

Be friendly, knowledgeable, and encouraging. Keep responses concise but informative.`

const groundedChatSystemPrompt = `You are a chess expert assistant. You will be given a chess board state and a mapping of all pieces and their positions.

Your job is to:
1. List all pieces and their positions for both White and Black, exactly as given.
2. When answering questions or providing advice, refer ONLY to the pieces and pawns that are actually present on the board.
3. Do NOT mention or analyze any piece, pawn, or square that does not exist in the given board state.
4. If a square is empty, do not mention it.

Be precise and do not hallucinate. Your responses must be based strictly on the provided board state.`

type ChatService interface {
	Chat(ctx context.Context, sessionID, userMessage string, game *entity.Game) (string, error)
	History(ctx context.Context, sessionID string) ([]llm.Message, error)
	ClearHistory(ctx context.Context, sessionID string) error
}

type chatService struct {
	logger  *slog.Logger
	client  CompletionClient
	history repository.ChatRepository
}

func NewChatService(logger *slog.Logger, client CompletionClient, history repository.ChatRepository) ChatService {
	return &chatService{
		logger:  logger.With("component", "chat"),
		client:  client,
		history: history,
	}
}

// Chat sends a user message to the assistant and persists both sides of the
// exchange. When game is non-nil the prompt is grounded in the live board
// state so the assistant only reasons about pieces that exist.
func (that *chatService) Chat(ctx context.Context, sessionID, userMessage string, game *entity.Game) (string, error) {
	if that.client == nil {
		return "", apperror.AIService("AI service is not available: no API key configured")
	}

	history, err := that.history.GetHistory(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("failed to load chat history: %w", err)
	}

	systemPrompt := chatSystemPrompt
	content := userMessage
	if game != nil {
		systemPrompt = groundedChatSystemPrompt
		content = fmt.Sprintf("Current turn: %s\n\nPieces on the board:\n%s\n\n%s",
			game.Turn, pieceListing(&game.Board), userMessage)
	}

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: systemPrompt})
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: content})

	response, err := that.client.Complete(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("%w: %s", apperror.AIService("AI completion failed"), err)
	}

	if err = that.history.AppendMessage(ctx, sessionID, llm.Message{Role: llm.RoleUser, Content: userMessage}); err != nil {
		return "", fmt.Errorf("failed to store user message: %w", err)
	}
	if err = that.history.AppendMessage(ctx, sessionID, llm.Message{Role: llm.RoleAssistant, Content: response}); err != nil {
		return "", fmt.Errorf("failed to store assistant message: %w", err)
	}

	return response, nil
}

func (that *chatService) History(ctx context.Context, sessionID string) ([]llm.Message, error) {
	history, err := that.history.GetHistory(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}

	return history, nil
}

func (that *chatService) ClearHistory(ctx context.Context, sessionID string) error {
	if err := that.history.Clear(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to clear chat history: %w", err)
	}

	return nil
}

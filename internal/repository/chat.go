package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/chessmind/chess-backend/internal/llm"
)

// ChatRepository stores per-session conversation history for the assistant.
// A session with no stored messages yields an empty history, not an error.
type ChatRepository interface {
	AppendMessage(ctx context.Context, sessionID string, message llm.Message) error
	GetHistory(ctx context.Context, sessionID string) ([]llm.Message, error)
	Clear(ctx context.Context, sessionID string) error
}

type dbChat struct {
	client *redis.Client
}

func NewChatRepository(client *redis.Client) ChatRepository {
	return &dbChat{
		client: client,
	}
}

func chatKey(sessionID string) string {
	return "chat:" + sessionID
}

func (that *dbChat) AppendMessage(ctx context.Context, sessionID string, message llm.Message) error {
	messageJSON, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal chat message: %w", err)
	}

	if err = that.client.RPush(ctx, chatKey(sessionID), messageJSON).Err(); err != nil {
		return fmt.Errorf("failed to append chat message: %w", err)
	}

	return nil
}

func (that *dbChat) GetHistory(ctx context.Context, sessionID string) ([]llm.Message, error) {
	entries, err := that.client.LRange(ctx, chatKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get chat history: %w", err)
	}

	history := make([]llm.Message, 0, len(entries))
	for _, entry := range entries {
		var message llm.Message
		if err = json.Unmarshal([]byte(entry), &message); err != nil {
			return nil, fmt.Errorf("failed to unmarshal chat message: %w", err)
		}
		history = append(history, message)
	}

	return history, nil
}

func (that *dbChat) Clear(ctx context.Context, sessionID string) error {
	if err := that.client.Del(ctx, chatKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear chat history: %w", err)
	}

	return nil
}

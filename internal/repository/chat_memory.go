package repository

import (
	"context"
	"sync"

	"github.com/chessmind/chess-backend/internal/llm"
)

// memoryChat - fallback chat history store used when Redis is not
// configured. History is lost on restart.
type memoryChat struct {
	mu       sync.Mutex
	sessions map[string][]llm.Message
}

func NewMemoryChatRepository() ChatRepository {
	return &memoryChat{
		sessions: make(map[string][]llm.Message),
	}
}

func (that *memoryChat) AppendMessage(_ context.Context, sessionID string, message llm.Message) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.sessions[sessionID] = append(that.sessions[sessionID], message)

	return nil
}

func (that *memoryChat) GetHistory(_ context.Context, sessionID string) ([]llm.Message, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	stored := that.sessions[sessionID]
	history := make([]llm.Message, len(stored))
	copy(history, stored)

	return history, nil
}

func (that *memoryChat) Clear(_ context.Context, sessionID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.sessions, sessionID)

	return nil
}

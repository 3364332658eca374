package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/chessmind/chess-backend/internal/config"
	"github.com/chessmind/chess-backend/internal/llm"
	"github.com/chessmind/chess-backend/internal/repository"
	"github.com/chessmind/chess-backend/internal/repository/storage"
	"github.com/chessmind/chess-backend/internal/service"
	"github.com/chessmind/chess-backend/transport/rest"
	"github.com/chessmind/chess-backend/transport/websocket"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	// chat history lives in Redis when configured, in memory otherwise
	chatRepo := repository.NewMemoryChatRepository()
	if redisAddr := conf.Redis.GetRedisAddr(); redisAddr != "" {
		redisStorage, err := storage.New(ctx, redisAddr)
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		chatRepo = repository.NewChatRepository(redisStorage.Connection)
	} else {
		log.Warn("redis is not configured, chat history is kept in memory")
	}

	// the LLM client is optional: without a key the AI endpoints report
	// unavailability instead of failing at startup
	var llmClient service.CompletionClient
	if conf.Groq.APIKey != "" {
		llmClient = llm.New(conf.Groq.APIKey, conf.Groq.BaseURL, conf.Groq.Model)
	}

	aiService := service.NewAIService(logger, llmClient, conf.AI.UseMultiMoveCache, conf.AI.CacheSize, conf.AI.MinRequestInterval)
	chatService := service.NewChatService(logger, llmClient, chatRepo)
	gameplayService := service.NewGamePlayService(logger, aiService)

	restHandlers := rest.NewHandlers(logger, gameplayService, aiService, chatService)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(conf.HTTPPort, restHandlers); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, gameplayService, chatService)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err := <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err := <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

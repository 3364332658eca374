package rest

import (
	"fmt"
	"net/http"
	"time"
)

// NewRouter mounts every API route on a fresh mux.
func NewRouter(handlers Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /", handlers.Welcome)
	mux.HandleFunc("GET /ping", handlers.Ping)

	mux.HandleFunc("GET /board", handlers.GetBoard)
	mux.HandleFunc("POST /move", handlers.MakeMove)
	mux.HandleFunc("POST /reset", handlers.ResetGame)

	mux.HandleFunc("POST /game-mode", handlers.SetGameMode)
	mux.HandleFunc("GET /ai-strategy", handlers.GetAIStrategy)
	mux.HandleFunc("POST /ai-strategy", handlers.SetAIStrategy)
	mux.HandleFunc("POST /ai-move", handlers.SuggestAIMove)
	mux.HandleFunc("POST /ai-play", handlers.PlayAITurn)

	mux.HandleFunc("POST /chat", handlers.Chat)
	mux.HandleFunc("POST /analyze", handlers.AnalyzePosition)

	return mux
}

// Start wires the routes and runs the HTTP server.
func Start(port string, handlers Handlers) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      NewRouter(handlers),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

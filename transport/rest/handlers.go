package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/chessmind/chess-backend/internal/entity"
	"github.com/chessmind/chess-backend/internal/service"
)

const defaultChatSession = "default"

type Handlers interface {
	Welcome(w http.ResponseWriter, r *http.Request)
	Ping(w http.ResponseWriter, r *http.Request)

	GetBoard(w http.ResponseWriter, r *http.Request)
	MakeMove(w http.ResponseWriter, r *http.Request)
	ResetGame(w http.ResponseWriter, r *http.Request)

	SetGameMode(w http.ResponseWriter, r *http.Request)
	GetAIStrategy(w http.ResponseWriter, r *http.Request)
	SetAIStrategy(w http.ResponseWriter, r *http.Request)
	SuggestAIMove(w http.ResponseWriter, r *http.Request)
	PlayAITurn(w http.ResponseWriter, r *http.Request)

	Chat(w http.ResponseWriter, r *http.Request)
	AnalyzePosition(w http.ResponseWriter, r *http.Request)
}

type handlers struct {
	logger *slog.Logger

	gameplay service.GamePlayService
	ai       service.AIService
	chat     service.ChatService
}

func NewHandlers(logger *slog.Logger, gameplay service.GamePlayService, ai service.AIService, chat service.ChatService) Handlers {
	return &handlers{
		logger:   logger.With("component", "rest"),
		gameplay: gameplay,
		ai:       ai,
		chat:     chat,
	}
}

type moveRequest struct {
	FromPos string `json:"from_pos"`
	ToPos   string `json:"to_pos"`
}

type gameModeRequest struct {
	Mode    string `json:"mode"`
	AIColor string `json:"ai_color"`
}

type aiStrategyRequest struct {
	UseMultiMoveCache bool `json:"use_multi_move_cache"`
	CacheSize         int  `json:"cache_size"`
}

type chatRequest struct {
	SessionID    string `json:"session_id"`
	Message      string `json:"message"`
	IncludeBoard bool   `json:"include_board"`
}

type stateResponse struct {
	Board       entity.Board        `json:"board"`
	Turn        string              `json:"turn"`
	GameOver    bool                `json:"game_over"`
	MoveHistory []entity.MoveRecord `json:"move_history"`
	Mode        string              `json:"mode"`
	AIColor     string              `json:"ai_color,omitempty"`
	Message     string              `json:"message,omitempty"`
}

func stateFromGame(game *entity.Game, message string) stateResponse {
	return stateResponse{
		Board:       game.Board,
		Turn:        game.Turn,
		GameOver:    game.GameOver,
		MoveHistory: game.MoveHistory,
		Mode:        game.Mode,
		AIColor:     game.AIColor,
		Message:     message,
	}
}

func (that *handlers) Welcome(w http.ResponseWriter, _ *http.Request) {
	that.writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to the Chess API"})
}

func (that *handlers) Ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *handlers) GetBoard(w http.ResponseWriter, _ *http.Request) {
	that.writeJSON(w, http.StatusOK, stateFromGame(that.gameplay.State(), ""))
}

func (that *handlers) MakeMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if !that.decodeBody(w, r, &req) {
		return
	}

	game, err := that.gameplay.MakeMove(req.FromPos, req.ToPos)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, stateFromGame(game, ""))
}

func (that *handlers) ResetGame(w http.ResponseWriter, _ *http.Request) {
	that.writeJSON(w, http.StatusOK, stateFromGame(that.gameplay.Reset(), "Game reset"))
}

func (that *handlers) SetGameMode(w http.ResponseWriter, r *http.Request) {
	var req gameModeRequest
	if !that.decodeBody(w, r, &req) {
		return
	}

	game, err := that.gameplay.SetGameMode(req.Mode, req.AIColor)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, stateFromGame(game, ""))
}

func (that *handlers) GetAIStrategy(w http.ResponseWriter, _ *http.Request) {
	useCache, cacheSize := that.ai.Strategy()
	that.writeJSON(w, http.StatusOK, aiStrategyRequest{
		UseMultiMoveCache: useCache,
		CacheSize:         cacheSize,
	})
}

func (that *handlers) SetAIStrategy(w http.ResponseWriter, r *http.Request) {
	var req aiStrategyRequest
	if !that.decodeBody(w, r, &req) {
		return
	}

	if err := that.ai.SetStrategy(req.UseMultiMoveCache, req.CacheSize); err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, req)
}

func (that *handlers) SuggestAIMove(w http.ResponseWriter, r *http.Request) {
	move, err := that.gameplay.SuggestAIMove(r.Context())
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, move)
}

func (that *handlers) PlayAITurn(w http.ResponseWriter, r *http.Request) {
	game, move, err := that.gameplay.PlayAITurn(r.Context())
	if err != nil {
		that.writeError(w, err)
		return
	}

	response := stateFromGame(game, "")
	that.writeJSON(w, http.StatusOK, struct {
		stateResponse
		Move any `json:"move"`
	}{stateResponse: response, Move: move})
}

func (that *handlers) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !that.decodeBody(w, r, &req) {
		return
	}

	if req.SessionID == "" {
		req.SessionID = defaultChatSession
	}

	var game *entity.Game
	if req.IncludeBoard {
		game = that.gameplay.State()
	}

	response, err := that.chat.Chat(r.Context(), req.SessionID, req.Message, game)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, map[string]string{"response": response})
}

func (that *handlers) AnalyzePosition(w http.ResponseWriter, r *http.Request) {
	analysis, err := that.ai.AnalyzePosition(r.Context(), that.gameplay.State())
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, map[string]string{"analysis": analysis})
}

func (that *handlers) decodeBody(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		that.writeValidationError(w, "body", err.Error())
		return false
	}
	return true
}

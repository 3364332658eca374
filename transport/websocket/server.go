package websocket

import (
	"bufio"
	"context"
	"crypto/sha1" //nolint: gosec // RFC 6455 mandates SHA-1 for the handshake
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/chessmind/chess-backend/internal/chess"
	"github.com/chessmind/chess-backend/internal/entity"
	"github.com/chessmind/chess-backend/internal/service"
)

// Static GUID defined in RFC 6455 for WebSocket.
const websocketGUID = "258EAFA5-E914-47DA-95CA-C5AB0DC85B11"

const sessionCookieName = "user_session"

type gameplayService interface {
	State() *entity.Game
	MakeMove(from, to string) (*entity.Game, error)
	Reset() *entity.Game
	PlayAITurn(ctx context.Context) (*entity.Game, *chess.Move, error)
}

type chatAssistant interface {
	Chat(ctx context.Context, sessionID, userMessage string, game *entity.Game) (string, error)
}

type Server struct {
	logger   *slog.Logger
	gameplay gameplayService
	chat     chatAssistant

	handlers map[string]func(ctx context.Context, session string, message *Message, bufrw *bufio.ReadWriter) error
}

func New(logger *slog.Logger, gameplay service.GamePlayService, chat service.ChatService) *Server {
	server := &Server{
		logger:   logger.With("component", "websocket"),
		gameplay: gameplay,
		chat:     chat,

		handlers: make(map[string]func(context.Context, string, *Message, *bufio.ReadWriter) error),
	}

	server.handlers["connect"] = server.handleConnect
	server.handlers["game:state"] = server.handleGameState
	server.handlers["game:move"] = server.handleGameMove
	server.handlers["game:reset"] = server.handleGameReset
	server.handlers["game:ai"] = server.handleGameAI
	server.handlers["game:chat"] = server.handleGameChat

	return server
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection to WebSocket.
func (that *Server) upgradeToWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	if req.Header.Get("Upgrade") != "websocket" {
		http.Error(writer, "not a websocket upgrade", http.StatusBadRequest)
		return
	}

	session := that.ensureSession(writer, req)

	key := req.Header.Get("Sec-WebSocket-Key")

	writer.Header().Set("Upgrade", "websocket")
	writer.Header().Set("Connection", "Upgrade")
	writer.Header().Set("Sec-WebSocket-Accept", acceptKey(key))
	writer.WriteHeader(http.StatusSwitchingProtocols)

	hijacker, ok := writer.(http.Hijacker)
	if !ok {
		log.Error("web server does not support hijacking")
		return
	}

	conn, bufrw, err := hijacker.Hijack()
	if err != nil {
		log.Error("failed to hijack connection", "error", err)
		return
	}

	defer conn.Close()

	log.Info("WebSocket connection established", "session", session)

	if err = that.handleMessages(ctx, session, bufrw); err != nil {
		log.Error("error handling messages", "error", err)
	}
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, session string, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleMessages")

	for {
		reqBody, err := that.readRequest(bufrw)
		if err != nil {
			log.Error("error reading message", "error", err)
			return err
		}

		var message Message
		if err = json.Unmarshal(reqBody, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Error("unknown action", "action", message.Action)
			if err = that.sendErrorResponse(bufrw, message.Action, "unknown action"); err != nil {
				return err
			}
			continue
		}

		if err = handler(ctx, session, &message, bufrw); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

// ensureSession - returns the session id from the cookie, creating one when absent.
func (that *Server) ensureSession(writer http.ResponseWriter, req *http.Request) string {
	log := that.logger.With("method", "ensureSession")

	cookie, err := req.Cookie(sessionCookieName)
	if err != nil {
		cookie = &http.Cookie{
			Name:    sessionCookieName,
			Value:   uuid.NewString(),
			Expires: time.Now().Add(24 * time.Hour),
			Path:    "/ws",
		}
		http.SetCookie(writer, cookie)
		log.Info("session cookie not found, new one created", "session", cookie.Value)
		return cookie.Value
	}

	log.Info("session cookie found", "session", cookie.Value)

	return cookie.Value
}

// acceptKey - computes the Sec-WebSocket-Accept value for the handshake.
func acceptKey(key string) string {
	h := sha1.New() //nolint: gosec // not used for security

	h.Write([]byte(key + websocketGUID))

	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

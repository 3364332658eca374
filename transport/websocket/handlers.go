package websocket

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
)

func (that *Server) handleConnect(_ context.Context, session string, msg *Message, bufrw *bufio.ReadWriter) error {
	return that.sendMessage(bufrw, msg.Action, Payload{
		SessionID: session,
		Game:      that.gameplay.State(),
	})
}

func (that *Server) handleGameState(_ context.Context, _ string, msg *Message, bufrw *bufio.ReadWriter) error {
	return that.sendMessage(bufrw, msg.Action, Payload{
		Game: that.gameplay.State(),
	})
}

func (that *Server) handleGameMove(_ context.Context, _ string, msg *Message, bufrw *bufio.ReadWriter) error {
	var payloadReq Payload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	game, err := that.gameplay.MakeMove(payloadReq.FromPos, payloadReq.ToPos)
	if err != nil {
		return that.sendErrorResponse(bufrw, msg.Action, err.Error())
	}

	return that.sendMessage(bufrw, msg.Action, Payload{Game: game})
}

func (that *Server) handleGameReset(_ context.Context, _ string, msg *Message, bufrw *bufio.ReadWriter) error {
	return that.sendMessage(bufrw, msg.Action, Payload{
		Game: that.gameplay.Reset(),
	})
}

func (that *Server) handleGameAI(ctx context.Context, _ string, msg *Message, bufrw *bufio.ReadWriter) error {
	game, move, err := that.gameplay.PlayAITurn(ctx)
	if err != nil {
		return that.sendErrorResponse(bufrw, msg.Action, err.Error())
	}

	return that.sendMessage(bufrw, msg.Action, Payload{Game: game, Move: move})
}

func (that *Server) handleGameChat(ctx context.Context, session string, msg *Message, bufrw *bufio.ReadWriter) error {
	var payloadReq Payload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Message == "" {
		return that.sendErrorResponse(bufrw, msg.Action, "message is required")
	}

	game := that.gameplay.State()
	if !payloadReq.IncludeBoard {
		game = nil
	}

	response, err := that.chat.Chat(ctx, session, payloadReq.Message, game)
	if err != nil {
		return that.sendErrorResponse(bufrw, msg.Action, err.Error())
	}

	return that.sendMessage(bufrw, msg.Action, Payload{Response: response})
}

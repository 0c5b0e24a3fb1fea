package websocket

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gmelsby/cli-shogi-game/internal/apperror"
	"github.com/gmelsby/cli-shogi-game/internal/entity"
)

func (that *Server) handleConnect(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleConnect")

	var payloadReq Payload

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	playerID := ""
	if payloadReq.Player != nil {
		playerID = payloadReq.Player.ID
	}

	player, err := that.gameManager.GetOrCreatePlayer(ctx, playerID)
	if err != nil {
		log.Error("failed to create or get player", "error", err)

		return that.sendErrorResponse(bufrw, msg.Action, "failed to create a new player")
	}

	that.registerConnection(player.ID, bufrw)

	if player.GameID != "" {
		return that.handleExistingGame(ctx, bufrw, msg, player)
	}

	payloadResp := Payload{
		Player: player,
	}

	if err = that.sendMessage(bufrw, msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("successfully connected player", "playerID", player.ID)

	return nil
}

// handleExistingGame processes a player already in a game.
func (that *Server) handleExistingGame(ctx context.Context, bufrw *bufio.ReadWriter, msg *Message, player *entity.Player) error {
	log := that.logger.With("method", "handleExistingGame")

	game, err := that.gameManager.InGame(ctx, player.ID)
	if err != nil {
		log.Error("failed to get game", "gameID", player.GameID, "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "failed to get the game")
	}

	payload := Payload{
		Player: player,
		Game:   game,
		Board:  game.RenderBoard(),
	}

	return that.sendMessage(bufrw, msg.Action, payload)
}

func (that *Server) handleNewGame(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleNewGame")

	var payloadReq Payload

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return that.sendErrorResponse(bufrw, msg.Action, "Player is required")
	}

	that.registerConnection(payloadReq.Player.ID, bufrw)

	game, err := that.gameManager.GetOrCreateGame(ctx, payloadReq.Player.ID)
	if err != nil {
		log.Error("failed to create or get game", "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "failed to create a new game")
	}

	log = log.With("gameID", game.ID)

	that.broadcastGame(msg.Action, game)

	log.Info("game created")

	return nil
}

func (that *Server) handleJoinGame(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleJoinGame")

	var payloadReq Payload

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return that.sendErrorResponse(bufrw, msg.Action, "Player is required")
	}

	if payloadReq.Game == nil {
		log.Error("Game is missing in payload")
		return that.sendErrorResponse(bufrw, msg.Action, "Game is required")
	}

	that.registerConnection(payloadReq.Player.ID, bufrw)

	log = log.With("playerID", payloadReq.Player.ID)

	game, err := that.gameManager.ConnectToGame(ctx, payloadReq.Game.ID, payloadReq.Player.ID)
	if err != nil {
		log.Error("failed to join game", "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, fmt.Sprintf("game %s: %v", payloadReq.Game.ID, err))
	}

	log = log.With("gameID", game.ID)

	that.broadcastGame(msg.Action, game)

	log.Info("Player joined game")

	return nil
}

func (that *Server) handleGameMove(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleGameMove")

	var payloadReq Payload

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return that.sendErrorResponse(bufrw, msg.Action, "Player is required")
	}

	if payloadReq.Move == nil {
		log.Error("Move is missing in payload")
		return that.sendErrorResponse(bufrw, msg.Action, "Move is required")
	}

	that.registerConnection(payloadReq.Player.ID, bufrw)

	log = log.With("playerID", payloadReq.Player.ID)

	game, err := that.gameManager.MakeMove(ctx, payloadReq.Player.ID, payloadReq.Move.From, payloadReq.Move.To)

	switch {
	case errors.Is(err, apperror.ErrGameFinished):
		that.broadcastGame(msg.Action, game)
		log.Info("Game finished", "gameID", game.ID, "winner", game.Winner)

		return nil
	case errors.Is(err, apperror.ErrGameIsNotStarted):
		return that.sendErrorResponse(bufrw, msg.Action, fmt.Sprintf("game %s: %v", game.ID, err))
	case errors.Is(err, apperror.ErrNotYourTurn):
		return that.sendErrorResponse(bufrw, msg.Action, fmt.Sprintf("game %s: %v", game.ID, err))
	case err != nil:
		log.Error("failed to make move", "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, fmt.Sprintf("failed to move: %v", err))
	}

	log = log.With("gameID", game.ID)

	that.broadcastGame(msg.Action, game)

	log.Info("Player made a move", "from", payloadReq.Move.From, "to", payloadReq.Move.To)

	return nil
}

// broadcastGame sends the updated game to every connected player in it.
func (that *Server) broadcastGame(action string, game *entity.Game) {
	log := that.logger.With("method", "broadcastGame", "gameID", game.ID)

	for _, player := range game.Players {
		that.connectionsMutex.RLock()
		conn, ok := that.connections[player.ID]
		that.connectionsMutex.RUnlock()

		if !ok {
			log.Warn("connection not found for player", "playerID", player.ID)
			continue
		}

		payloadResp := Payload{
			Player: player,
			Game:   game,
			Board:  game.RenderBoard(),
		}

		if err := that.sendMessage(conn, action, payloadResp); err != nil {
			log.Error("failed to send game update", "error", err)
		}
	}
}

func (that *Server) sendErrorResponse(bufrw *bufio.ReadWriter, action, message string) error {
	payload := Payload{
		Error: message,
	}

	if err := that.sendMessage(bufrw, action, payload); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gmelsby/cli-shogi-game/internal/apperror"
	"github.com/gmelsby/cli-shogi-game/internal/entity"
	"github.com/gmelsby/cli-shogi-game/internal/hasami"
	"github.com/gmelsby/cli-shogi-game/internal/pkg"
	"github.com/gmelsby/cli-shogi-game/internal/repository"
)

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type archiveRepo interface {
	Save(ctx context.Context, result *repository.GameResult) error
}

// GameManager orchestrates players, live games in redis, and the
// finished-game archive.
type GameManager struct {
	logger     *slog.Logger
	playerRepo playerRepo
	gameRepo   gameRepo
	archive    archiveRepo

	boardSize     int
	captureTarget int
}

func NewGameManager(logger *slog.Logger, playerRepo playerRepo, gameRepo gameRepo, archive archiveRepo, boardSize, captureTarget int) *GameManager {
	return &GameManager{
		logger: logger,

		playerRepo: playerRepo,
		gameRepo:   gameRepo,
		archive:    archive,

		boardSize:     boardSize,
		captureTarget: captureTarget,
	}
}

// MakeMove applies one move by the player and persists the result. A
// finished game is archived, removed from live storage, and returned
// together with apperror.ErrGameFinished.
func (that *GameManager) MakeMove(ctx context.Context, playerID, from, to string) (*entity.Game, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed get player by id: %w", err)
	}

	game, err := that.getGameByID(ctx, player.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed get game by id: %w", err)
	}

	if game.IsWaiting() {
		return game, apperror.ErrGameIsNotStarted
	}

	if err = hasami.MakeMove(game, player.Color, from, to); err != nil {
		return game, fmt.Errorf("failed make move: %w", err)
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed update game: %w", err)
	}

	if game.IsFinished() {
		that.finishGame(ctx, game)

		return game, apperror.ErrGameFinished
	}

	return game, nil
}

// ConnectToGame joins the player to an existing game as RED and starts it.
func (that *GameManager) ConnectToGame(ctx context.Context, gameID, playerID string) (*entity.Game, error) {
	existingGame, err := that.getGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed get game by id: %w", err)
	}

	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed get player by id: %w", err)
	}

	if player.GameID == existingGame.ID {
		return existingGame, nil
	}

	if len(existingGame.Players) == 2 {
		return nil, fmt.Errorf("%w: game id %s", apperror.ErrGameAlreadyExists, gameID)
	}

	player.GameID = existingGame.ID
	player.Color = entity.ColorRed
	if err = that.updatePlayer(ctx, player); err != nil {
		return nil, fmt.Errorf("failed update player by id: %w", err)
	}

	existingGame.Status = entity.StatusOngoing
	existingGame.Players = append(existingGame.Players, player)
	if err = that.updateGame(ctx, existingGame); err != nil {
		return nil, fmt.Errorf("failed update game by id: %w", err)
	}

	return existingGame, nil
}

// GetOrCreateGame returns the game the player is already in, or creates
// a new one with the player as BLACK.
func (that *GameManager) GetOrCreateGame(ctx context.Context, playerID string) (*entity.Game, error) {
	player, err := that.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed get player by id: %w", err)
	}

	if player.GameID != "" {
		return that.getGameByID(ctx, player.GameID)
	}

	return that.createGame(ctx, player)
}

// InGame returns the game the player currently belongs to.
func (that *GameManager) InGame(ctx context.Context, playerID string) (*entity.Game, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed get player by id: %w", err)
	}

	if player.GameID == "" {
		return nil, apperror.ErrNoActiveGames
	}

	return that.getGameByID(ctx, player.GameID)
}

func (that *GameManager) createGame(ctx context.Context, player *entity.Player) (*entity.Game, error) {
	gameID, err := pkg.GenerateGameID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate game id: %w", err)
	}

	game := entity.NewGameWithRules(gameID, entity.PrivateType, that.boardSize, that.captureTarget)

	player.GameID = gameID
	player.Color = entity.ColorBlack
	if err = that.updatePlayer(ctx, player); err != nil {
		return nil, fmt.Errorf("failed update player by id: %w", err)
	}

	game.Players = []*entity.Player{player}
	if err = that.updateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed update game by id: %w", err)
	}

	return game, nil
}

// finishGame archives the result and removes the live game. Archive
// failures are logged, not returned: the game itself is already over.
func (that *GameManager) finishGame(ctx context.Context, game *entity.Game) {
	log := that.logger.With("component", "game_manager", "gameID", game.ID)

	result := &repository.GameResult{
		GameID:        game.ID,
		Winner:        game.Winner,
		BlackCaptured: game.CapturedPieces(entity.ColorBlack),
		RedCaptured:   game.CapturedPieces(entity.ColorRed),
		FinishedAt:    time.Now().UTC(),
	}

	if err := that.archive.Save(ctx, result); err != nil {
		log.Error("failed to archive finished game", "error", err)
	}

	that.deleteGame(ctx, game)
}

func (that *GameManager) deleteGame(ctx context.Context, game *entity.Game) {
	log := that.logger.With("component", "game_manager", "gameID", game.ID)

	for _, player := range game.Players {
		player.GameID = ""
		player.Color = ""
		if err := that.updatePlayer(ctx, player); err != nil {
			log.Error("failed to detach player from game", "playerID", player.ID, "error", err)
		}
	}

	if err := that.gameRepo.DeleteByID(ctx, game.ID); err != nil {
		log.Error("failed to delete game", "error", err)
	}
}

// GetOrCreatePlayer returns the known player or registers a new one.
func (that *GameManager) GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error) {
	if id == "" {
		return that.createPlayer(ctx)
	}

	player, err := that.playerRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrPlayerNotFound) {
		return that.createPlayer(ctx)
	}

	if err != nil {
		return nil, fmt.Errorf("failed get player by id: %w", err)
	}

	return player, nil
}

func (that *GameManager) createPlayer(ctx context.Context) (*entity.Player, error) {
	player := &entity.Player{
		ID: pkg.GenerateNewSessionID(),
	}

	if err := that.updatePlayer(ctx, player); err != nil {
		return nil, fmt.Errorf("failed create player: %w", err)
	}

	return player, nil
}

func (that *GameManager) getGameByID(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve game from storage: %w", err)
	}

	return game, nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func (that *GameManager) getPlayerByID(ctx context.Context, id string) (*entity.Player, error) {
	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve player from storage: %w", err)
	}

	return player, nil
}

func (that *GameManager) updatePlayer(ctx context.Context, player *entity.Player) error {
	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	return nil
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/uttt-backend/internal/apperror"
	"github.com/rocketscienceinc/uttt-backend/internal/entity"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo
	newID    func() string
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo) *GameManager {
	return &GameManager{
		logger:   logger.With("component", "game_manager"),
		gameRepo: gameRepo,
		newID:    uuid.NewString,
	}
}

func (that *GameManager) CreateGame(ctx context.Context) (*entity.Game, error) {
	game := entity.NewGame(that.newID())

	if err := that.updateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "gameID", game.ID)

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// MakeTurn - plays the move for whoever's turn it is and stores the result.
func (that *GameManager) MakeTurn(ctx context.Context, id string, subBoard, cell int) (*entity.Game, entity.MoveResult, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", id)

	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, entity.MoveResult{}, err
	}

	player := game.Board.CurrentPlayer()

	result, err := game.MakeTurn(subBoard, cell)
	if err != nil {
		if errors.Is(err, apperror.ErrIllegalMove) {
			log.Debug("illegal move rejected", "player", player, "subBoard", subBoard, "cell", cell, "error", err)
		}

		return game, entity.MoveResult{}, fmt.Errorf("failed make turn: %w", err)
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, entity.MoveResult{}, fmt.Errorf("failed update game: %w", err)
	}

	if result.Finished {
		log.Info("game finished", "winner", result.Winner)
	}

	return game, result, nil
}

func (that *GameManager) RestartGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	game.Restart()

	if err = that.updateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to restart game: %w", err)
	}

	that.logger.Info("game restarted", "gameID", id)

	return game, nil
}

// ExportState - returns the saved form of the game, suitable for ImportState.
func (that *GameManager) ExportState(ctx context.Context, id string) (string, error) {
	game, err := that.GetGame(ctx, id)
	if err != nil {
		return "", err
	}

	return game.Board.Serialize(), nil
}

// ImportState - replaces the game's board with a saved state. A malformed state leaves the stored game as it was.
func (that *GameManager) ImportState(ctx context.Context, id, state string) (*entity.Game, error) {
	log := that.logger.With("method", "ImportState", "gameID", id)

	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = game.Restore(state); err != nil {
		log.Warn("rejected game state", "error", err)
		return nil, fmt.Errorf("failed to import state: %w", err)
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to import state: %w", err)
	}

	return game, nil
}

func (that *GameManager) DeleteGame(ctx context.Context, id string) error {
	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game deleted", "gameID", id)

	return nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

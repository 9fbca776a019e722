package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/uttt-backend/internal/apperror"
	"github.com/rocketscienceinc/uttt-backend/internal/entity"
)

type sqliteGame struct {
	conn *sql.DB
}

// NewSQLiteGameRepository - keeps one row per game holding its serialized board.
func NewSQLiteGameRepository(conn *sql.DB) GameRepository {
	return &sqliteGame{
		conn: conn,
	}
}

func (that *sqliteGame) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	query := `INSERT INTO games (id, state, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at`

	_, err := that.conn.ExecContext(ctx, query, game.ID, game.Board.Serialize(), game.UpdatedAt)
	if err != nil {
		return fmt.Errorf("can't save game: %w", err)
	}

	return nil
}

func (that *sqliteGame) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	query := `SELECT state, updated_at FROM games WHERE id = ?`

	var (
		state     string
		updatedAt time.Time
	)

	err := that.conn.QueryRowContext(ctx, query, id).Scan(&state, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't find game: %w", err)
	}

	game := &entity.Game{ID: id, Board: entity.NewBoard()}
	if err = game.Board.Deserialize(state); err != nil {
		return nil, fmt.Errorf("can't read stored game %s: %w", id, err)
	}
	game.UpdatedAt = updatedAt

	return game, nil
}

func (that *sqliteGame) DeleteByID(ctx context.Context, id string) error {
	query := `DELETE FROM games WHERE id = ?`

	result, err := that.conn.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("can't delete game: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("can't count deleted games: %w", err)
	}

	if deleted == 0 {
		return apperror.ErrGameNotFound
	}

	return nil
}

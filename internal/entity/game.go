package entity

import (
	"fmt"
	"time"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
)

// Game is a stored match: an id and the board, which is persisted as its state string.
type Game struct {
	ID        string    `json:"id"`
	Board     *Board    `json:"board"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:        id,
		Board:     NewBoard(),
		UpdatedAt: time.Now().UTC(),
	}
}

// MakeTurn - plays the current player's move and passes the turn unless the move ended the game.
func (that *Game) MakeTurn(subBoard, cell int) (MoveResult, error) {
	result, err := that.Board.MakeMove(subBoard, cell)
	if err != nil {
		return MoveResult{}, fmt.Errorf("failed to make move: %w", err)
	}

	if !result.Finished {
		that.Board.AdvanceTurn()
	}

	that.touch()

	return result, nil
}

func (that *Game) Restart() {
	that.Board.Reset()
	that.touch()
}

// Restore - replaces the board with a saved state string, keeping the current one on error.
func (that *Game) Restore(state string) error {
	if that.Board == nil {
		that.Board = NewBoard()
	}

	if err := that.Board.Deserialize(state); err != nil {
		return fmt.Errorf("failed to restore game %s: %w", that.ID, err)
	}

	that.touch()

	return nil
}

func (that *Game) IsFinished() bool {
	return that.Board.IsFinished()
}

func (that *Game) Winner() Owner {
	return that.Board.Winner()
}

func (that *Game) Status() string {
	if that.IsFinished() {
		return StatusFinished
	}
	return StatusOngoing
}

func (that *Game) touch() {
	that.UpdatedAt = time.Now().UTC()
}

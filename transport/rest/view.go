package rest

import (
	"time"

	"github.com/rocketscienceinc/uttt-backend/internal/entity"
)

type subBoardView struct {
	Owner entity.Owner                   `json:"owner"`
	Cells [entity.BoardSize]entity.Owner `json:"cells"`
}

type gameView struct {
	ID            string                         `json:"id"`
	CurrentPlayer entity.Owner                   `json:"current_player"`
	Finished      bool                           `json:"finished"`
	Winner        entity.Owner                   `json:"winner"`
	LastMove      *entity.Move                   `json:"last_move,omitempty"`
	Available     []entity.Move                  `json:"available"`
	Boards        [entity.BoardSize]subBoardView `json:"boards"`
	UpdatedAt     time.Time                      `json:"updated_at"`
}

func newGameView(game *entity.Game) gameView {
	board := game.Board

	view := gameView{
		ID:            game.ID,
		CurrentPlayer: board.CurrentPlayer(),
		Finished:      board.IsFinished(),
		Winner:        board.Winner(),
		Available:     board.Available(),
		UpdatedAt:     game.UpdatedAt,
	}

	if subBoard, cell := board.LastMove(); subBoard != entity.NoMove {
		view.LastMove = &entity.Move{SubBoard: subBoard, Cell: cell}
	}

	for subBoard := range view.Boards {
		view.Boards[subBoard].Owner = board.SubBoardOwner(subBoard)
		for cell := range view.Boards[subBoard].Cells {
			view.Boards[subBoard].Cells[cell] = board.CellOwner(subBoard, cell)
		}
	}

	return view
}

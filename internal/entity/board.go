package entity

import (
	"fmt"

	"github.com/rocketscienceinc/uttt-backend/internal/apperror"
)

// NoMove is the last-move index of a game nobody has played in yet.
const NoMove = -1

// Move addresses one cell: the sub-board on the meta-board and the cell inside it.
type Move struct {
	SubBoard int `json:"sub_board"`
	Cell     int `json:"cell"`
}

// MoveResult describes the board right after a move was applied.
type MoveResult struct {
	Move
	SubBoardOwner Owner `json:"sub_board_owner"`
	Finished      bool  `json:"finished"`
	Winner        Owner `json:"winner"`
}

// Board is the game engine: it owns every tile, whose turn it is and where the next move may go.
type Board struct {
	tiles  *tileTree
	player Owner

	lastSubBoard int
	lastCell     int

	available [boardSize][boardSize]bool
}

func NewBoard() *Board {
	board := &Board{}
	board.Reset()

	return board
}

// Reset - rebuilds all tiles and hands the first move to X anywhere on the board.
func (that *Board) Reset() {
	that.tiles = newTileTree()
	that.player = OwnerX
	that.lastSubBoard = NoMove
	that.lastCell = NoMove

	that.setAvailableFromLastMove()
}

func (that *Board) CurrentPlayer() Owner {
	return that.player
}

// AdvanceTurn - passes the turn to the other player and returns the new current player.
func (that *Board) AdvanceTurn() Owner {
	that.player = that.player.Opponent()
	return that.player
}

func (that *Board) LastMove() (int, int) {
	return that.lastSubBoard, that.lastCell
}

// Owner - returns the owner of the whole board, OwnerNeither while the game is running.
func (that *Board) Owner() Owner {
	return that.tiles[rootTile].Owner()
}

func (that *Board) SubBoardOwner(subBoard int) Owner {
	if !inBoard(subBoard) {
		return OwnerNeither
	}

	return that.tiles[subBoardTile(subBoard)].Owner()
}

func (that *Board) CellOwner(subBoard, cell int) Owner {
	if !inBoard(subBoard) || !inBoard(cell) {
		return OwnerNeither
	}

	return that.tiles[cellTile(subBoard, cell)].Owner()
}

func (that *Board) IsFinished() bool {
	return that.Owner() != OwnerNeither
}

// Winner - returns X, O or OwnerBoth for a drawn game, OwnerNeither while it is running.
func (that *Board) Winner() Owner {
	return that.Owner()
}

func (that *Board) IsLegal(subBoard, cell int) bool {
	return inBoard(subBoard) && inBoard(cell) && that.available[subBoard][cell]
}

// Available - lists every cell the current player may take, in row-major order.
func (that *Board) Available() []Move {
	moves := make([]Move, 0, boardSize)

	for subBoard := 0; subBoard < boardSize; subBoard++ {
		for cell := 0; cell < boardSize; cell++ {
			if that.available[subBoard][cell] {
				moves = append(moves, Move{SubBoard: subBoard, Cell: cell})
			}
		}
	}

	return moves
}

// MakeMove - claims the cell for the current player. The turn is not passed; call AdvanceTurn for that.
func (that *Board) MakeMove(subBoard, cell int) (MoveResult, error) {
	if !inBoard(subBoard) || !inBoard(cell) {
		return MoveResult{}, fmt.Errorf("%w: sub-board %d cell %d is out of range", apperror.ErrIllegalMove, subBoard, cell)
	}

	if that.IsFinished() {
		return MoveResult{}, fmt.Errorf("%w: %w", apperror.ErrIllegalMove, apperror.ErrGameFinished)
	}

	if !that.available[subBoard][cell] {
		return MoveResult{}, fmt.Errorf("%w: sub-board %d cell %d is not available", apperror.ErrIllegalMove, subBoard, cell)
	}

	that.lastSubBoard = subBoard
	that.lastCell = cell
	that.tiles[cellTile(subBoard, cell)].SetOwner(that.player)

	parent := &that.tiles[subBoardTile(subBoard)]
	if winner := that.tiles.computeWinner(subBoardTile(subBoard)); winner != parent.Owner() {
		parent.SetOwner(winner)
	}

	// the cell just played names the sub-board the opponent is sent to
	that.setAvailableFromLastMove()

	if winner := that.tiles.computeWinner(rootTile); winner != OwnerNeither {
		that.tiles[rootTile].SetOwner(winner)
		that.clearAvailable()
	}

	return MoveResult{
		Move:          Move{SubBoard: subBoard, Cell: cell},
		SubBoardOwner: parent.Owner(),
		Finished:      that.IsFinished(),
		Winner:        that.Owner(),
	}, nil
}

func (that *Board) clearAvailable() {
	that.available = [boardSize][boardSize]bool{}
}

func (that *Board) setAvailableFromLastMove() {
	that.clearAvailable()

	found := false
	if that.lastCell != NoMove && that.SubBoardOwner(that.lastCell) == OwnerNeither {
		for cell := 0; cell < boardSize; cell++ {
			if that.CellOwner(that.lastCell, cell) == OwnerNeither {
				that.available[that.lastCell][cell] = true
				found = true
			}
		}
	}

	// no destination yet, or the destination is closed: send anywhere
	if !found {
		that.setAllAvailable()
	}
}

func (that *Board) setAllAvailable() {
	for subBoard := 0; subBoard < boardSize; subBoard++ {
		if that.SubBoardOwner(subBoard) != OwnerNeither {
			continue
		}

		for cell := 0; cell < boardSize; cell++ {
			if that.CellOwner(subBoard, cell) == OwnerNeither {
				that.available[subBoard][cell] = true
			}
		}
	}
}

func inBoard(index int) bool {
	return index >= 0 && index < boardSize
}

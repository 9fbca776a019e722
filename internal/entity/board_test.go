package entity

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/uttt-backend/internal/apperror"
)

// play makes the moves in order, passing the turn after every move that does not end the game.
func play(t *testing.T, board *Board, moves ...Move) MoveResult {
	t.Helper()

	var result MoveResult
	for _, move := range moves {
		var err error
		result, err = board.MakeMove(move.SubBoard, move.Cell)
		require.NoError(t, err, "move %d,%d", move.SubBoard, move.Cell)

		if !result.Finished {
			board.AdvanceTurn()
		}
	}

	return result
}

// playRandom plays up to count random legal moves and stops early when the game ends.
func playRandom(t *testing.T, board *Board, seed int64, count int, each func(MoveResult)) {
	t.Helper()

	rnd := rand.New(rand.NewSource(seed)) //nolint: gosec // it's ok
	for i := 0; i < count; i++ {
		available := board.Available()
		if len(available) == 0 {
			return
		}

		move := available[rnd.Intn(len(available))]
		result := play(t, board, move)
		if each != nil {
			each(result)
		}

		if result.Finished {
			return
		}
	}
}

func subBoardMoves(subBoard int, skip ...int) []Move {
	skipped := make(map[int]bool, len(skip))
	for _, cell := range skip {
		skipped[cell] = true
	}

	moves := make([]Move, 0, boardSize)
	for cell := 0; cell < boardSize; cell++ {
		if !skipped[cell] {
			moves = append(moves, Move{SubBoard: subBoard, Cell: cell})
		}
	}

	return moves
}

func TestBoard_Reset(t *testing.T) {
	t.Run("Starts with X to move anywhere", func(t *testing.T) {
		// When: creating a new board
		board := NewBoard()

		// Then: X moves first, nobody moved yet and all 81 cells are available
		assert.Equal(t, OwnerX, board.CurrentPlayer())
		lastSubBoard, lastCell := board.LastMove()
		assert.Equal(t, NoMove, lastSubBoard)
		assert.Equal(t, NoMove, lastCell)
		assert.Len(t, board.Available(), boardSize*boardSize)
		assert.False(t, board.IsFinished())
	})

	t.Run("Discards the previous game", func(t *testing.T) {
		// Given: a board after a few moves with O to play
		board := NewBoard()
		play(t, board, Move{0, 0}, Move{0, 4}, Move{4, 1})
		require.Equal(t, OwnerO, board.CurrentPlayer())

		// When: resetting it
		board.Reset()

		// Then: it equals a brand new board
		require.Equal(t, NewBoard(), board)
		assert.Equal(t, OwnerNeither, board.CellOwner(0, 0))
	})
}

func TestBoard_MakeMove(t *testing.T) {
	t.Run("Routes the opponent to the sub-board named by the cell", func(t *testing.T) {
		// Given: a new board
		board := NewBoard()

		// When: X plays cell 5 of sub-board 2
		result, err := board.MakeMove(2, 5)
		require.NoError(t, err)

		// Then: only sub-board 5 is available
		assert.Equal(t, subBoardMoves(5), board.Available())
		assert.Equal(t, OwnerX, board.CellOwner(2, 5))
		assert.Equal(t, MoveResult{Move: Move{2, 5}, SubBoardOwner: OwnerNeither}, result)
	})

	t.Run("Leaves the turn to the caller", func(t *testing.T) {
		// Given: a new board
		board := NewBoard()

		// When: X moves
		_, err := board.MakeMove(0, 0)
		require.NoError(t, err)

		// Then: X is still the current player until the turn is advanced
		assert.Equal(t, OwnerX, board.CurrentPlayer())
		assert.Equal(t, OwnerO, board.AdvanceTurn())
		assert.Equal(t, OwnerO, board.CurrentPlayer())
	})

	t.Run("Sends anywhere when the destination sub-board is closed", func(t *testing.T) {
		// Given: sub-board 5 is drawn and X is sent to sub-board 2
		owners := emptyOwners()
		owners.cells[5] = [9]Owner{
			x, o, x,
			x, o, o,
			o, x, x,
		}
		owners.subBoards[5] = OwnerBoth
		owners.cells[7][2] = OwnerO
		board := restore(t, stateOf(7, 2, OwnerX, owners))

		// When: X plays cell 5 of sub-board 2
		_, err := board.MakeMove(2, 5)
		require.NoError(t, err)

		// Then: every open cell outside sub-board 5 is available
		available := board.Available()
		assert.Len(t, available, 9*8-2)
		for _, move := range available {
			assert.NotEqual(t, 5, move.SubBoard)
			assert.Equal(t, OwnerNeither, board.CellOwner(move.SubBoard, move.Cell))
		}
		assert.False(t, board.IsLegal(7, 2))
		assert.False(t, board.IsLegal(2, 5))
	})

	t.Run("Sends anywhere when the destination sub-board was just won", func(t *testing.T) {
		// Given: X holds cells 1 and 2 of sub-board 0 and has to play there
		owners := emptyOwners()
		owners.cells[0][1] = OwnerX
		owners.cells[0][2] = OwnerX
		owners.cells[3][0] = OwnerO
		board := restore(t, stateOf(3, 0, OwnerX, owners))

		// When: X completes the row with cell 0, which would send O back to sub-board 0
		result, err := board.MakeMove(0, 0)
		require.NoError(t, err)

		// Then: sub-board 0 is X's and O may play in every other open cell
		assert.Equal(t, OwnerX, result.SubBoardOwner)
		assert.Equal(t, OwnerX, board.SubBoardOwner(0))
		assert.Len(t, board.Available(), 8*9-1)
	})

	t.Run("Ends the game when the meta-board is won", func(t *testing.T) {
		// Given: X owns sub-boards 0 and 1 and two cells of the top row of sub-board 2
		owners := emptyOwners()
		owners.subBoards[0] = OwnerX
		owners.subBoards[1] = OwnerX
		owners.cells[2][0] = OwnerX
		owners.cells[2][1] = OwnerX
		owners.cells[5][2] = OwnerO
		board := restore(t, stateOf(5, 2, OwnerX, owners))
		require.True(t, board.IsLegal(2, 2))

		// When: X completes sub-board 2
		result, err := board.MakeMove(2, 2)
		require.NoError(t, err)

		// Then: X wins the game and nothing is available any more
		assert.Equal(t, MoveResult{
			Move:          Move{2, 2},
			SubBoardOwner: OwnerX,
			Finished:      true,
			Winner:        OwnerX,
		}, result)
		assert.True(t, board.IsFinished())
		assert.Equal(t, OwnerX, board.Winner())
		assert.Empty(t, board.Available())
	})

	t.Run("Rejects a move off the available set without touching the board", func(t *testing.T) {
		// Given: O is sent to sub-board 0
		board := NewBoard()
		play(t, board, Move{0, 0})
		state := board.Serialize()
		available := board.Available()

		// When: O tries sub-board 1
		_, err := board.MakeMove(1, 1)

		// Then: ErrIllegalMove is returned and the board is unchanged
		require.ErrorIs(t, err, apperror.ErrIllegalMove)
		assert.Equal(t, state, board.Serialize())
		assert.Equal(t, available, board.Available())
		assert.Equal(t, OwnerO, board.CurrentPlayer())
	})

	t.Run("Rejects a taken cell", func(t *testing.T) {
		// Given: X played the centre of sub-board 4 and O is sent back to sub-board 4
		board := NewBoard()
		play(t, board, Move{4, 4})

		// When: O tries the same cell
		_, err := board.MakeMove(4, 4)

		// Then: the move is illegal
		require.ErrorIs(t, err, apperror.ErrIllegalMove)
		assert.Equal(t, OwnerX, board.CellOwner(4, 4))
	})

	t.Run("Rejects indices out of range", func(t *testing.T) {
		board := NewBoard()

		for _, move := range []Move{{-1, 0}, {0, -1}, {9, 0}, {0, 9}} {
			// When: a move points outside the board
			_, err := board.MakeMove(move.SubBoard, move.Cell)

			// Then: ErrIllegalMove is returned
			require.ErrorIs(t, err, apperror.ErrIllegalMove)
			assert.False(t, board.IsLegal(move.SubBoard, move.Cell))
		}

		assert.Equal(t, NewBoard(), board)
	})

	t.Run("Rejects moves after the game is over", func(t *testing.T) {
		// Given: X already owns the top row of sub-boards
		owners := emptyOwners()
		owners.subBoards[0] = OwnerX
		owners.subBoards[1] = OwnerX
		owners.subBoards[2] = OwnerX
		board := restore(t, stateOf(NoMove, NoMove, OwnerO, owners))

		// When: O tries to move
		_, err := board.MakeMove(4, 4)

		// Then: the move is illegal because the game is finished
		require.ErrorIs(t, err, apperror.ErrIllegalMove)
		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})
}

func TestBoard_Scenario(t *testing.T) {
	// Given: a new game
	board := NewBoard()

	// When: X opens in the corner of sub-board 0
	play(t, board, Move{0, 0})

	// Then: O has to answer in sub-board 0
	assert.Equal(t, subBoardMoves(0, 0), board.Available())

	// When: O takes the centre of sub-board 0
	play(t, board, Move{0, 4})

	// Then: X is sent to sub-board 4
	assert.Equal(t, subBoardMoves(4), board.Available())

	// When: play continues until X holds the top row of sub-board 0
	play(t, board,
		Move{4, 1}, // O to 1
		Move{1, 0}, // X to 0
		Move{0, 1}, // O to 1
		Move{1, 2}, // X to 2
		Move{2, 2}, // O to 2
		Move{2, 0}, // X to 0
	)
	require.Equal(t, OwnerX, board.CurrentPlayer())
	result := play(t, board, Move{0, 2})

	// Then: sub-board 0 belongs to X and O is sent to sub-board 2
	assert.Equal(t, OwnerX, result.SubBoardOwner)
	assert.Equal(t, OwnerX, board.SubBoardOwner(0))
	assert.Equal(t, subBoardMoves(2, 0, 2), board.Available())

	// When: O sends X to sub-board 3 and X plays cell 0 there, which names the closed sub-board 0
	play(t, board, Move{2, 3}, Move{3, 0})

	// Then: O may play anywhere except sub-board 0, which stays X's
	available := board.Available()
	assert.Len(t, available, 8*9-7)
	for _, move := range available {
		assert.NotEqual(t, 0, move.SubBoard)
	}
	assert.Equal(t, OwnerX, board.SubBoardOwner(0))
	assert.False(t, board.IsFinished())
}

func TestBoard_Invariants(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		// Given: a new board
		board := NewBoard()
		frozen := make(map[int]Owner)

		// When: a random legal game is played out
		playRandom(t, board, seed, boardSize*boardSize, func(MoveResult) {
			// Then: a claimed sub-board never changes owner
			for subBoard := 0; subBoard < boardSize; subBoard++ {
				owner := board.SubBoardOwner(subBoard)
				if previous, ok := frozen[subBoard]; ok {
					require.Equal(t, previous, owner, "seed %d sub-board %d", seed, subBoard)
				}
				if owner != OwnerNeither {
					frozen[subBoard] = owner
				}
			}

			// Then: only open cells of open sub-boards are available
			for _, move := range board.Available() {
				require.Equal(t, OwnerNeither, board.CellOwner(move.SubBoard, move.Cell))
				require.Equal(t, OwnerNeither, board.SubBoardOwner(move.SubBoard))
			}
		})

		// Then: a random game either ends or still has moves left
		assert.True(t, board.IsFinished() || len(board.Available()) > 0, "seed %d", seed)
	}
}

package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/uttt-backend/internal/apperror"
)

func TestNewGame(t *testing.T) {
	// When: creating a new game
	game := NewGame("123")

	// Then: it holds a fresh board and is ongoing
	require.NotNil(t, game)
	assert.Equal(t, "123", game.ID)
	assert.Equal(t, NewBoard(), game.Board)
	assert.Equal(t, StatusOngoing, game.Status())
	assert.False(t, game.UpdatedAt.IsZero())
}

func TestGame_MakeTurn(t *testing.T) {
	t.Run("Successful turn passes the turn", func(t *testing.T) {
		// Given: a new game
		game := NewGame("123")

		// When: X makes a valid turn
		result, err := game.MakeTurn(4, 4)
		require.NoError(t, err)

		// Then: the cell is X's and O is next
		assert.Equal(t, Move{4, 4}, result.Move)
		assert.Equal(t, OwnerX, game.Board.CellOwner(4, 4))
		assert.Equal(t, OwnerO, game.Board.CurrentPlayer())
	})

	t.Run("Illegal turn keeps the player", func(t *testing.T) {
		// Given: O is sent to sub-board 4
		game := NewGame("123")
		_, err := game.MakeTurn(4, 4)
		require.NoError(t, err)

		// When: O plays in sub-board 0
		_, err = game.MakeTurn(0, 0)

		// Then: ErrIllegalMove is returned and it is still O's turn
		require.ErrorIs(t, err, apperror.ErrIllegalMove)
		assert.Equal(t, OwnerO, game.Board.CurrentPlayer())
	})

	t.Run("Winning turn keeps the winner as current player", func(t *testing.T) {
		// Given: X is one cell away from the top row of sub-boards
		tiles := emptyOwners()
		tiles.subBoards[0] = OwnerX
		tiles.subBoards[1] = OwnerX
		tiles.cells[2][0] = OwnerX
		tiles.cells[2][1] = OwnerX
		tiles.cells[5][2] = OwnerO
		game := NewGame("123")
		require.NoError(t, game.Restore(stateOf(5, 2, OwnerX, tiles)))

		// When: X completes it
		result, err := game.MakeTurn(2, 2)
		require.NoError(t, err)

		// Then: the game is finished and the turn did not move on
		assert.True(t, result.Finished)
		assert.Equal(t, StatusFinished, game.Status())
		assert.Equal(t, OwnerX, game.Winner())
		assert.Equal(t, OwnerX, game.Board.CurrentPlayer())
	})
}

func TestGame_Restart(t *testing.T) {
	// Given: a game in progress with O to move
	game := NewGame("123")
	_, err := game.MakeTurn(0, 0)
	require.NoError(t, err)

	// When: restarting it
	game.Restart()

	// Then: the board is new and X moves first
	assert.Equal(t, NewBoard(), game.Board)
	assert.Equal(t, "123", game.ID)
}

func TestGame_Restore(t *testing.T) {
	t.Run("Keeps the board on a malformed state", func(t *testing.T) {
		// Given: a game after one move
		game := NewGame("123")
		_, err := game.MakeTurn(0, 0)
		require.NoError(t, err)
		before := game.Board.Serialize()

		// When: restoring garbage
		err = game.Restore("1,2,3")

		// Then: ErrMalformedState is returned and the board is unchanged
		require.ErrorIs(t, err, apperror.ErrMalformedState)
		assert.Equal(t, before, game.Board.Serialize())
	})
}

func TestGame_JSON(t *testing.T) {
	// Given: a game after two moves
	game := NewGame("123")
	_, err := game.MakeTurn(6, 2)
	require.NoError(t, err)
	_, err = game.MakeTurn(2, 6)
	require.NoError(t, err)

	// When: encoding it as JSON and decoding it again
	data, err := json.Marshal(game)
	require.NoError(t, err)

	var decoded Game
	require.NoError(t, json.Unmarshal(data, &decoded))

	// Then: the board travels as its state string
	assert.Contains(t, string(data), `"board":"2,6,X,`)
	assert.Equal(t, game.ID, decoded.ID)
	assert.Equal(t, game.Board, decoded.Board)
	assert.True(t, game.UpdatedAt.Equal(decoded.UpdatedAt))
}

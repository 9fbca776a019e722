package entity

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/uttt-backend/internal/apperror"
)

const (
	stateDelimiter  = ","
	stateHeaderSize = 3
	stateTokenCount = stateHeaderSize + boardSize*(1+boardSize)
)

// Serialize - writes the game as "lastSubBoard,lastCell,player," followed by every sub-board owner
// and the owners of its nine cells.
func (that *Board) Serialize() string {
	tokens := make([]string, 0, stateTokenCount)
	tokens = append(tokens,
		strconv.Itoa(that.lastSubBoard),
		strconv.Itoa(that.lastCell),
		that.player.String(),
	)

	for subBoard := 0; subBoard < boardSize; subBoard++ {
		tokens = append(tokens, that.SubBoardOwner(subBoard).String())
		for cell := 0; cell < boardSize; cell++ {
			tokens = append(tokens, that.CellOwner(subBoard, cell).String())
		}
	}

	return strings.Join(tokens, stateDelimiter)
}

// Deserialize - replaces the game with the one encoded in state. On error the board is left untouched.
func (that *Board) Deserialize(state string) error {
	restored, err := parseState(state)
	if err != nil {
		return err
	}

	*that = *restored
	return nil
}

func (that *Board) MarshalText() ([]byte, error) {
	return []byte(that.Serialize()), nil
}

func (that *Board) UnmarshalText(text []byte) error {
	return that.Deserialize(string(text))
}

func parseState(state string) (*Board, error) {
	tokens := strings.Split(strings.TrimSpace(state), stateDelimiter)

	// a trailing delimiter is allowed
	if len(tokens) == stateTokenCount+1 && tokens[stateTokenCount] == "" {
		tokens = tokens[:stateTokenCount]
	}

	if len(tokens) != stateTokenCount {
		return nil, fmt.Errorf("%w: expected %d tokens, got %d", apperror.ErrMalformedState, stateTokenCount, len(tokens))
	}

	lastSubBoard, err := parseLastMoveIndex(tokens[0])
	if err != nil {
		return nil, err
	}

	lastCell, err := parseLastMoveIndex(tokens[1])
	if err != nil {
		return nil, err
	}

	if (lastSubBoard == NoMove) != (lastCell == NoMove) {
		return nil, fmt.Errorf("%w: last move %d,%d is half set", apperror.ErrMalformedState, lastSubBoard, lastCell)
	}

	player, err := ParseOwner(tokens[2])
	if err != nil || !player.IsPlayer() {
		return nil, fmt.Errorf("%w: current player %q", apperror.ErrMalformedState, tokens[2])
	}

	board := &Board{
		tiles:        newTileTree(),
		player:       player,
		lastSubBoard: lastSubBoard,
		lastCell:     lastCell,
	}

	index := stateHeaderSize
	for subBoard := 0; subBoard < boardSize; subBoard++ {
		for position := 0; position < 1+boardSize; position++ {
			owner, err := ParseOwner(tokens[index])
			if err != nil {
				return nil, fmt.Errorf("%w: token %d: %w", apperror.ErrMalformedState, index, err)
			}
			index++

			// the sub-board owner comes first, then its cells
			if position == 0 {
				board.tiles[subBoardTile(subBoard)].SetOwner(owner)
				continue
			}
			board.tiles[cellTile(subBoard, position-1)].SetOwner(owner)
		}
	}

	// the overall winner is not stored, it is derived again from the sub-boards
	board.tiles[rootTile].SetOwner(board.tiles.computeWinner(rootTile))

	board.setAvailableFromLastMove()
	if board.IsFinished() {
		board.clearAvailable()
	}

	return board, nil
}

func parseLastMoveIndex(token string) (int, error) {
	index, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("%w: last move index %q: %w", apperror.ErrMalformedState, token, err)
	}

	if index != NoMove && !inBoard(index) {
		return 0, fmt.Errorf("%w: last move index %d is out of range", apperror.ErrMalformedState, index)
	}

	return index, nil
}

package apperror

import "errors"

var (
	ErrIllegalMove    = errors.New("illegal move")
	ErrMalformedState = errors.New("malformed game state")
	ErrGameFinished   = errors.New("game is already finished")
	ErrGameNotFound   = errors.New("game not found")
)

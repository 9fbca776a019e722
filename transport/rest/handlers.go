package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/uttt-backend/internal/apperror"
	"github.com/rocketscienceinc/uttt-backend/internal/entity"
)

// maxStateSize bounds the body of a state import; a full state is well under 1KB.
const maxStateSize = 4 << 10

var errBadRequest = errors.New("bad request")

type gameUseCase interface {
	CreateGame(ctx context.Context) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	MakeTurn(ctx context.Context, id string, subBoard, cell int) (*entity.Game, entity.MoveResult, error)
	RestartGame(ctx context.Context, id string) (*entity.Game, error)
	ExportState(ctx context.Context, id string) (string, error)
	ImportState(ctx context.Context, id, state string) (*entity.Game, error)
	DeleteGame(ctx context.Context, id string) error
}

type gameHandlers struct {
	logger *slog.Logger
	games  gameUseCase
}

type moveRequest struct {
	SubBoard *int `json:"sub_board"`
	Cell     *int `json:"cell"`
}

type moveResponse struct {
	Game   gameView          `json:"game"`
	Result entity.MoveResult `json:"result"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *gameHandlers) create(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.CreateGame(r.Context())
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, newGameView(game))
}

func (that *gameHandlers) get(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, newGameView(game))
}

func (that *gameHandlers) delete(w http.ResponseWriter, r *http.Request) {
	if err := that.games.DeleteGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *gameHandlers) move(w http.ResponseWriter, r *http.Request) {
	var req moveRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&req); err != nil {
		that.writeError(w, fmt.Errorf("%w: invalid move body: %w", errBadRequest, err))
		return
	}

	if req.SubBoard == nil || req.Cell == nil {
		that.writeError(w, fmt.Errorf("%w: sub_board and cell are required", errBadRequest))
		return
	}

	game, result, err := that.games.MakeTurn(r.Context(), chi.URLParam(r, "id"), *req.SubBoard, *req.Cell)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, moveResponse{
		Game:   newGameView(game),
		Result: result,
	})
}

func (that *gameHandlers) restart(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.RestartGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, newGameView(game))
}

func (that *gameHandlers) exportState(w http.ResponseWriter, r *http.Request) {
	state, err := that.games.ExportState(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err = io.WriteString(w, state); err != nil {
		that.logger.Error("failed to write state", "error", err)
	}
}

func (that *gameHandlers) importState(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxStateSize))
	if err != nil {
		that.writeError(w, fmt.Errorf("%w: failed to read state: %w", errBadRequest, err))
		return
	}

	game, err := that.games.ImportState(r.Context(), chi.URLParam(r, "id"), string(body))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, newGameView(game))
}

func (that *gameHandlers) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}

// writeError - maps the error onto an HTTP status. Unknown errors are logged and hidden from the client.
func (that *gameHandlers) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "error", err)
		message = http.StatusText(status)
	}

	that.writeJSON(w, status, errorResponse{Error: message})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrIllegalMove):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrMalformedState), errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

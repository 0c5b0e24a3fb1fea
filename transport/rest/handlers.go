package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gmelsby/cli-shogi-game/internal/apperror"
	"github.com/gmelsby/cli-shogi-game/internal/entity"
	"github.com/gmelsby/cli-shogi-game/internal/repository"
)

const defaultResultsLimit = 20

type gameFinder interface {
	InGame(ctx context.Context, playerID string) (*entity.Game, error)
}

type resultLister interface {
	ListRecent(ctx context.Context, limit int) ([]*repository.GameResult, error)
}

type Handlers struct {
	games   gameFinder
	archive resultLister
}

func NewHandlers(games gameFinder, archive resultLister) *Handlers {
	return &Handlers{
		games:   games,
		archive: archive,
	}
}

// gameResponse is the read-only view of a live game.
type gameResponse struct {
	ID            string       `json:"id"`
	Status        string       `json:"status"`
	Turn          entity.Color `json:"turn"`
	Winner        entity.Color `json:"winner,omitempty"`
	BlackCaptured int          `json:"black_captured"`
	RedCaptured   int          `json:"red_captured"`
	Board         string       `json:"board"`
}

func (that *Handlers) PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

// GameHandler returns the state of the game the player is currently in.
func (that *Handlers) GameHandler(w http.ResponseWriter, r *http.Request) {
	playerID := r.URL.Query().Get("player_id")
	if playerID == "" {
		http.Error(w, "player_id is required", http.StatusBadRequest)
		return
	}

	game, err := that.games.InGame(r.Context(), playerID)
	if errors.Is(err, apperror.ErrNoActiveGames) {
		http.Error(w, "no active games", http.StatusNotFound)
		return
	}

	if err != nil {
		http.Error(w, "failed to get game", http.StatusInternalServerError)
		return
	}

	response := gameResponse{
		ID:            game.ID,
		Status:        game.Status,
		Turn:          game.ActivePlayer(),
		Winner:        game.Winner,
		BlackCaptured: game.CapturedPieces(entity.ColorBlack),
		RedCaptured:   game.CapturedPieces(entity.ColorRed),
		Board:         game.RenderBoard(),
	}

	writeJSON(w, response)
}

// ResultsHandler returns recently finished games from the archive.
func (that *Handlers) ResultsHandler(w http.ResponseWriter, r *http.Request) {
	limit := defaultResultsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	results, err := that.archive.ListRecent(r.Context(), limit)
	if err != nil {
		http.Error(w, "failed to list results", http.StatusInternalServerError)
		return
	}

	writeJSON(w, results)
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

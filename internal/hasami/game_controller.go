// Package hasami is the move entry point for a Hasami Shogi game: it
// layers turn-ownership and game-over checks over the entity rules.
package hasami

import (
	"fmt"

	"github.com/gmelsby/cli-shogi-game/internal/apperror"
	"github.com/gmelsby/cli-shogi-game/internal/entity"
)

// MakeMove attempts to slide the piece on the from square to the to
// square on behalf of the player with the given color. The board and
// game state are untouched when an error is returned.
func MakeMove(gameInstance *entity.Game, color entity.Color, from, to string) error {
	if gameInstance.IsFinished() {
		return apperror.ErrGameFinished
	}

	if gameInstance.ActivePlayer() != color {
		return apperror.ErrNotYourTurn
	}

	if err := gameInstance.ApplyMove(from, to); err != nil {
		return fmt.Errorf("invalid move: %w", err)
	}

	return nil
}

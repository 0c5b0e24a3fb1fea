package entity

import (
	"fmt"
	"math/rand"

	"github.com/gmelsby/cli-shogi-game/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"
)

const (
	PublicType  = "public"
	PrivateType = "private"
)

// DefaultCaptureTarget is how many opposing pieces a player must
// capture to win on the standard board.
const DefaultCaptureTarget = 8

const (
	StateUnfinished = "UNFINISHED"
	StateBlackWon   = "BLACK_WON"
	StateRedWon     = "RED_WON"
)

// Game is one Hasami Shogi match: a board, the active color, and the
// win bookkeeping. BLACK always moves first.
type Game struct {
	ID            string    `json:"id"`
	Board         *Board    `json:"board"`
	Status        string    `json:"status"`
	Turn          Color     `json:"player_turn"`
	Winner        Color     `json:"winner,omitempty"`
	CaptureTarget int       `json:"capture_target"`
	Players       []*Player `json:"players,omitempty"`
	Type          string    `json:"type,omitempty"`
}

func NewGame(id, gameType string) *Game {
	return NewGameWithRules(id, gameType, DefaultBoardSize, DefaultCaptureTarget)
}

func NewGameWithRules(id, gameType string, boardSize, captureTarget int) *Game {
	return &Game{
		ID:            id,
		Board:         NewBoard(boardSize),
		Turn:          ColorBlack,
		Status:        StatusWaiting,
		CaptureTarget: captureTarget,
		Type:          gameType,
	}
}

// ApplyMove executes one move for the active player. On success it
// updates the win state and switches the active color; on failure the
// game is left completely unchanged.
func (that *Game) ApplyMove(from, to string) error {
	if err := that.ConfirmOngoingState(); err != nil {
		return err
	}

	if err := that.Board.Move(from, to, that.Turn); err != nil {
		return fmt.Errorf("illegal move: %w", err)
	}

	that.updateGameState()
	that.switchActivePlayer()

	return nil
}

// MakeMove is the boolean view of ApplyMove: false means the move was
// rejected and nothing changed.
func (that *Game) MakeMove(from, to string) bool {
	return that.ApplyMove(from, to) == nil
}

// updateGameState checks whether the player who just moved has captured
// enough opposing pieces to win. The count checked is the opponent's
// losses, not the mover's own.
func (that *Game) updateGameState() {
	if that.Board.CapturedCount(that.Turn.Opponent()) >= that.CaptureTarget {
		that.Winner = that.Turn
		that.Status = StatusFinished
	}
}

// switchActivePlayer alternates the turn. It runs after every accepted
// move, including the winning one.
func (that *Game) switchActivePlayer() {
	that.Turn = that.Turn.Opponent()
}

// GameState reports the overall outcome as a single value. The winner
// is only ever set on the move that ends the game, so an unset winner
// means play continues.
func (that *Game) GameState() string {
	switch that.Winner {
	case ColorBlack:
		return StateBlackWon
	case ColorRed:
		return StateRedWon
	default:
		return StateUnfinished
	}
}

// ActivePlayer returns the color whose turn it is.
func (that *Game) ActivePlayer() Color {
	return that.Turn
}

// CapturedPieces returns how many pieces of the color have been captured.
func (that *Game) CapturedPieces(color Color) int {
	return that.Board.CapturedCount(color)
}

// SquareOccupant returns the color occupying the square in algebraic
// notation, or ColorNone.
func (that *Game) SquareOccupant(square string) Color {
	return that.Board.SquareOccupant(square)
}

// RenderBoard returns the text rendering of the current position.
func (that *Game) RenderBoard() string {
	return that.Board.Render()
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", apperror.ErrUnknownGameStatus, that.Status)
	}
}

func (that *Game) IsPublic() bool {
	return that.Type == PublicType
}

// GetRandomColors deals the two playing colors in random order.
func (that *Game) GetRandomColors() (Color, Color) {
	if rand.Intn(2) == 0 { //nolint: gosec // it's ok
		return ColorBlack, ColorRed
	}
	return ColorRed, ColorBlack
}

package entity

import (
	"errors"
	"strconv"
	"strings"
)

// DefaultBoardSize is the standard Hasami Shogi board dimension.
const DefaultBoardSize = 9

var (
	ErrOffBoard            = errors.New("square is off the board")
	ErrWrongColor          = errors.New("origin square does not hold a piece of the moving color")
	ErrSameSquare          = errors.New("origin and destination are the same square")
	ErrNotAligned          = errors.New("move is not along a single row or column")
	ErrPathBlocked         = errors.New("path to the destination is blocked")
	ErrDestinationOccupied = errors.New("destination square is occupied")
)

// direction is a unit step along one of the four orthogonals.
type direction struct {
	deltaRow int
	deltaCol int
}

var orthogonals = [4]direction{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}

func (that Square) step(dir direction) Square {
	return Square{Row: that.Row + dir.deltaRow, Col: that.Col + dir.deltaCol}
}

// Board is a square grid of cells each holding at most one piece.
// Pieces slide orthogonally and are removed by custodian capture.
type Board struct {
	Size int        `json:"size"`
	Grid [][]*Piece `json:"grid"`
}

// NewBoard creates a size x size board in the starting position:
// the entire first row RED, the entire last row BLACK, interior empty.
func NewBoard(size int) *Board {
	grid := make([][]*Piece, size)
	for row := range grid {
		grid[row] = make([]*Piece, size)
	}

	for col := 0; col < size; col++ {
		grid[0][col] = NewPiece(ColorRed)
		grid[size-1][col] = NewPiece(ColorBlack)
	}

	return &Board{Size: size, Grid: grid}
}

func (that *Board) pieceAt(square Square) *Piece {
	return that.Grid[square.Row-1][square.Col-1]
}

func (that *Board) setPiece(square Square, piece *Piece) {
	that.Grid[square.Row-1][square.Col-1] = piece
}

func (that *Board) occupant(square Square) Color {
	if piece := that.pieceAt(square); piece != nil {
		return piece.Color
	}
	return ColorNone
}

// SquareOccupant returns the color of the piece on the square in
// algebraic notation, or ColorNone if the square is off-board or empty.
func (that *Board) SquareOccupant(token string) Color {
	square, ok := ParseSquare(token, that.Size)
	if !ok {
		return ColorNone
	}

	return that.occupant(square)
}

// ValidateMove checks a candidate slide against the movement rules and
// returns nil if it is legal. Each failed rule maps to its own sentinel
// error so callers can report why a move was rejected.
func (that *Board) ValidateMove(from, to string, color Color) error {
	if color != ColorBlack && color != ColorRed {
		return ErrWrongColor
	}

	origin, ok := ParseSquare(from, that.Size)
	if !ok {
		return ErrOffBoard
	}

	dest, ok := ParseSquare(to, that.Size)
	if !ok {
		return ErrOffBoard
	}

	if that.occupant(origin) != color {
		return ErrWrongColor
	}

	if origin == dest {
		return ErrSameSquare
	}

	if origin.Row != dest.Row && origin.Col != dest.Col {
		return ErrNotAligned
	}

	if that.pieceAt(dest) != nil {
		return ErrDestinationOccupied
	}

	dir := direction{
		deltaRow: sign(dest.Row - origin.Row),
		deltaCol: sign(dest.Col - origin.Col),
	}

	for square := origin.step(dir); square != dest; square = square.step(dir) {
		if that.pieceAt(square) != nil {
			return ErrPathBlocked
		}
	}

	return nil
}

// IsLegalMove is the boolean view of ValidateMove.
func (that *Board) IsLegalMove(from, to string, color Color) bool {
	return that.ValidateMove(from, to, color) == nil
}

// Move validates and executes a slide, then removes any pieces captured
// by it. On failure the board is left unchanged.
func (that *Board) Move(from, to string, color Color) error {
	if err := that.ValidateMove(from, to, color); err != nil {
		return err
	}

	origin, _ := ParseSquare(from, that.Size)
	dest, _ := ParseSquare(to, that.Size)

	that.setPiece(dest, that.pieceAt(origin))
	that.setPiece(origin, nil)

	that.removeCaptures(dest)

	return nil
}

// removeCaptures clears every piece captured by the piece that just
// arrived on the anchor square. Detection runs over the full board
// before any cell is cleared, so the scans never read a half-removed
// position.
func (that *Board) removeCaptures(anchor Square) {
	piece := that.pieceAt(anchor)
	if piece == nil {
		return
	}

	captured := that.custodianCaptures(anchor, piece.Color)
	captured = append(captured, that.cornerCaptures(anchor, piece.Color)...)

	for _, square := range captured {
		that.setPiece(square, nil)
	}
}

// custodianCaptures walks outward from the anchor in each orthogonal
// direction, collecting the contiguous run of opponent pieces. The run
// is captured only if a friendly piece closes it; an empty cell or the
// board edge discards it.
func (that *Board) custodianCaptures(anchor Square, color Color) []Square {
	var captured []Square

	for _, dir := range orthogonals {
		var run []Square

		for square := anchor.step(dir); square.OnBoard(that.Size); square = square.step(dir) {
			occupant := that.occupant(square)
			if occupant == ColorNone {
				run = nil
				break
			}

			if occupant == color {
				captured = append(captured, run...)
				run = nil
				break
			}

			run = append(run, square)
		}
	}

	return captured
}

// cornerCaptures handles the weakened custodian rule at the four
// corners: a lone opponent piece on a corner cell is captured when both
// of the corner's orthogonal neighbors are friendly, the flankers
// meeting at a right angle instead of in a straight line. The anchor
// must be one of the two neighbors.
func (that *Board) cornerCaptures(anchor Square, color Color) []Square {
	if that.Size < 3 {
		return nil
	}

	size := that.Size
	corners := [4]struct {
		corner   Square
		neighbor [2]Square
	}{
		{Square{1, 1}, [2]Square{{1, 2}, {2, 1}}},
		{Square{1, size}, [2]Square{{1, size - 1}, {2, size}}},
		{Square{size, 1}, [2]Square{{size - 1, 1}, {size, 2}}},
		{Square{size, size}, [2]Square{{size - 1, size}, {size, size - 1}}},
	}

	var captured []Square

	for _, pattern := range corners {
		var partner Square
		switch anchor {
		case pattern.neighbor[0]:
			partner = pattern.neighbor[1]
		case pattern.neighbor[1]:
			partner = pattern.neighbor[0]
		default:
			continue
		}

		if that.occupant(partner) != color {
			continue
		}

		cornered := that.occupant(pattern.corner)
		if cornered != ColorNone && cornered != color {
			captured = append(captured, pattern.corner)
		}
	}

	return captured
}

// CapturedCount returns how many pieces of the color have been
// captured, derived from the live count: each side starts with exactly
// Size pieces and pieces only ever leave the board by capture.
func (that *Board) CapturedCount(color Color) int {
	count := that.Size

	for _, row := range that.Grid {
		for _, piece := range row {
			if piece != nil && piece.Color == color {
				count--
			}
		}
	}

	return count
}

// Render draws the board as text: a header of column numbers, then one
// row per board row prefixed with its letter. Empty cells render as
// '-', occupied cells as the first letter of the piece color.
func (that *Board) Render() string {
	var builder strings.Builder

	builder.WriteString(" ")
	for col := 1; col <= that.Size; col++ {
		builder.WriteString(" " + strconv.Itoa(col))
	}
	builder.WriteString("\n")

	for index, row := range that.Grid {
		builder.WriteString(string(rune('a' + index)))

		for _, piece := range row {
			if piece == nil {
				builder.WriteString(" -")
			} else {
				builder.WriteString(" " + piece.Color.Glyph())
			}
		}

		builder.WriteString("\n")
	}

	return builder.String()
}

func sign(value int) int {
	switch {
	case value > 0:
		return 1
	case value < 0:
		return -1
	default:
		return 0
	}
}

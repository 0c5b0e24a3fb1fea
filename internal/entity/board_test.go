package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bareBoard returns a board of the given size with every cell empty.
func bareBoard(size int) *Board {
	board := NewBoard(size)
	for row := range board.Grid {
		for col := range board.Grid[row] {
			board.Grid[row][col] = nil
		}
	}

	return board
}

func placePiece(t *testing.T, board *Board, token string, color Color) {
	t.Helper()

	square, ok := ParseSquare(token, board.Size)
	require.True(t, ok, "bad test square %q", token)

	board.setPiece(square, NewPiece(color))
}

func TestNewBoard(t *testing.T) {
	t.Run("Starting position fills the first and last rows", func(t *testing.T) {
		// Given: a fresh default board
		board := NewBoard(DefaultBoardSize)

		// Then: row a is all RED, row i is all BLACK, interior empty
		for col := 1; col <= DefaultBoardSize; col++ {
			assert.Equal(t, ColorRed, board.occupant(Square{Row: 1, Col: col}))
			assert.Equal(t, ColorBlack, board.occupant(Square{Row: 9, Col: col}))
		}

		for row := 2; row <= 8; row++ {
			for col := 1; col <= DefaultBoardSize; col++ {
				assert.Equal(t, ColorNone, board.occupant(Square{Row: row, Col: col}))
			}
		}

		// And: nothing has been captured yet
		assert.Equal(t, 0, board.CapturedCount(ColorBlack))
		assert.Equal(t, 0, board.CapturedCount(ColorRed))
	})
}

func TestBoard_SquareOccupant(t *testing.T) {
	board := NewBoard(DefaultBoardSize)

	t.Run("Returns the color on an occupied square", func(t *testing.T) {
		assert.Equal(t, ColorRed, board.SquareOccupant("a1"))
		assert.Equal(t, ColorBlack, board.SquareOccupant("i9"))
	})

	t.Run("Returns ColorNone for empty squares", func(t *testing.T) {
		assert.Equal(t, ColorNone, board.SquareOccupant("e5"))
	})

	t.Run("Returns ColorNone for off-board and malformed tokens", func(t *testing.T) {
		assert.Equal(t, ColorNone, board.SquareOccupant("z9"))
		assert.Equal(t, ColorNone, board.SquareOccupant("a99"))
		assert.Equal(t, ColorNone, board.SquareOccupant("not a square"))
	})
}

func TestBoard_ValidateMove(t *testing.T) {
	t.Run("Accepts an unobstructed vertical slide", func(t *testing.T) {
		// Given: the starting position
		board := NewBoard(DefaultBoardSize)

		// When: BLACK slides up the first column
		err := board.ValidateMove("i1", "b1", ColorBlack)

		// Then: the move is legal
		require.NoError(t, err)
	})

	t.Run("Accepts an unobstructed horizontal slide", func(t *testing.T) {
		// Given: a board with a lone BLACK piece mid-board
		board := bareBoard(DefaultBoardSize)
		placePiece(t, board, "e5", ColorBlack)

		// When: it slides along its row in both directions
		require.NoError(t, board.ValidateMove("e5", "e1", ColorBlack))
		require.NoError(t, board.ValidateMove("e5", "e9", ColorBlack))
	})

	t.Run("Rejects malformed or off-board squares", func(t *testing.T) {
		board := NewBoard(DefaultBoardSize)

		assert.ErrorIs(t, board.ValidateMove("z1", "b1", ColorBlack), ErrOffBoard)
		assert.ErrorIs(t, board.ValidateMove("i1", "i10", ColorBlack), ErrOffBoard)
		assert.ErrorIs(t, board.ValidateMove("bogus", "b1", ColorBlack), ErrOffBoard)
	})

	t.Run("Rejects moving an empty square or the opponent's piece", func(t *testing.T) {
		board := NewBoard(DefaultBoardSize)

		// Moving from an empty square
		assert.ErrorIs(t, board.ValidateMove("e5", "e6", ColorBlack), ErrWrongColor)

		// Moving the opponent's piece
		assert.ErrorIs(t, board.ValidateMove("a1", "b1", ColorBlack), ErrWrongColor)

		// Moving with no color at all
		assert.ErrorIs(t, board.ValidateMove("i1", "b1", ColorNone), ErrWrongColor)
	})

	t.Run("Rejects a zero-length move", func(t *testing.T) {
		board := NewBoard(DefaultBoardSize)

		assert.ErrorIs(t, board.ValidateMove("i1", "i1", ColorBlack), ErrSameSquare)
	})

	t.Run("Rejects diagonal moves", func(t *testing.T) {
		board := NewBoard(DefaultBoardSize)

		assert.ErrorIs(t, board.ValidateMove("i1", "h2", ColorBlack), ErrNotAligned)
		assert.ErrorIs(t, board.ValidateMove("i1", "e5", ColorBlack), ErrNotAligned)
	})

	t.Run("Rejects an occupied destination", func(t *testing.T) {
		board := NewBoard(DefaultBoardSize)

		// Own piece on the destination
		assert.ErrorIs(t, board.ValidateMove("i1", "i2", ColorBlack), ErrDestinationOccupied)

		// Opponent piece on the destination
		assert.ErrorIs(t, board.ValidateMove("i1", "a1", ColorBlack), ErrDestinationOccupied)
	})

	t.Run("Rejects sliding through an occupied square", func(t *testing.T) {
		// Given: a piece standing between origin and destination
		board := bareBoard(DefaultBoardSize)
		placePiece(t, board, "e1", ColorBlack)
		placePiece(t, board, "e5", ColorRed)

		// When: BLACK tries to slide past it
		err := board.ValidateMove("e1", "e9", ColorBlack)

		// Then: the path is blocked
		assert.ErrorIs(t, err, ErrPathBlocked)

		// And: stopping just short of the blocker is legal
		require.NoError(t, board.ValidateMove("e1", "e4", ColorBlack))
	})
}

func TestBoard_Move(t *testing.T) {
	t.Run("Relocates exactly one piece", func(t *testing.T) {
		// Given: the starting position
		board := NewBoard(DefaultBoardSize)

		// When: BLACK slides i1 to b1
		err := board.Move("i1", "b1", ColorBlack)
		require.NoError(t, err)

		// Then: the piece is on the destination and the origin is empty
		assert.Equal(t, ColorBlack, board.SquareOccupant("b1"))
		assert.Equal(t, ColorNone, board.SquareOccupant("i1"))

		// And: no piece was created or destroyed
		assert.Equal(t, 0, board.CapturedCount(ColorBlack))
		assert.Equal(t, 0, board.CapturedCount(ColorRed))
	})

	t.Run("Leaves the board unchanged on an illegal move", func(t *testing.T) {
		// Given: the starting position
		board := NewBoard(DefaultBoardSize)

		// When: BLACK attempts a diagonal move
		err := board.Move("i1", "h2", ColorBlack)

		// Then: the move fails and both squares keep their occupants
		require.Error(t, err)
		assert.Equal(t, ColorBlack, board.SquareOccupant("i1"))
		assert.Equal(t, ColorNone, board.SquareOccupant("h2"))
	})
}

func TestBoard_CustodianCapture(t *testing.T) {
	t.Run("Captures a single flanked piece", func(t *testing.T) {
		// Given: a RED piece with a BLACK custodian behind it
		board := bareBoard(DefaultBoardSize)
		placePiece(t, board, "c4", ColorRed)
		placePiece(t, board, "c3", ColorBlack)
		placePiece(t, board, "f5", ColorBlack)

		// When: BLACK closes the sandwich from the other side
		require.NoError(t, board.Move("f5", "c5", ColorBlack))

		// Then: the flanked RED piece is removed
		assert.Equal(t, ColorNone, board.SquareOccupant("c4"))
		assert.Equal(t, ColorBlack, board.SquareOccupant("c3"))
		assert.Equal(t, ColorBlack, board.SquareOccupant("c5"))
	})

	t.Run("Captures an entire contiguous run", func(t *testing.T) {
		// Given: three RED pieces in a row with a BLACK custodian
		board := bareBoard(DefaultBoardSize)
		placePiece(t, board, "c4", ColorRed)
		placePiece(t, board, "c3", ColorRed)
		placePiece(t, board, "c2", ColorRed)
		placePiece(t, board, "c1", ColorBlack)
		placePiece(t, board, "f5", ColorBlack)

		// When: BLACK closes the run
		require.NoError(t, board.Move("f5", "c5", ColorBlack))

		// Then: the whole run is removed in one move
		assert.Equal(t, ColorNone, board.SquareOccupant("c4"))
		assert.Equal(t, ColorNone, board.SquareOccupant("c3"))
		assert.Equal(t, ColorNone, board.SquareOccupant("c2"))
		assert.Equal(t, ColorBlack, board.SquareOccupant("c1"))
	})

	t.Run("Captures in several directions on the same move", func(t *testing.T) {
		// Given: RED runs east and west of the destination, both closed by BLACK
		board := bareBoard(DefaultBoardSize)
		placePiece(t, board, "e4", ColorRed)
		placePiece(t, board, "e3", ColorBlack)
		placePiece(t, board, "e6", ColorRed)
		placePiece(t, board, "e7", ColorRed)
		placePiece(t, board, "e8", ColorBlack)
		placePiece(t, board, "a5", ColorBlack)

		// When: BLACK lands between the two runs
		require.NoError(t, board.Move("a5", "e5", ColorBlack))

		// Then: both runs are captured
		assert.Equal(t, ColorNone, board.SquareOccupant("e4"))
		assert.Equal(t, ColorNone, board.SquareOccupant("e6"))
		assert.Equal(t, ColorNone, board.SquareOccupant("e7"))
	})

	t.Run("A run ending at the board edge is not captured", func(t *testing.T) {
		// Given: RED pieces running to the edge with no custodian beyond
		board := bareBoard(DefaultBoardSize)
		placePiece(t, board, "c2", ColorRed)
		placePiece(t, board, "c1", ColorRed)
		placePiece(t, board, "f3", ColorBlack)

		// When: BLACK moves adjacent to the run
		require.NoError(t, board.Move("f3", "c3", ColorBlack))

		// Then: nothing is captured
		assert.Equal(t, ColorRed, board.SquareOccupant("c2"))
		assert.Equal(t, ColorRed, board.SquareOccupant("c1"))
	})

	t.Run("A run interrupted by an empty square is not captured", func(t *testing.T) {
		// Given: a gap between the RED piece and the far BLACK piece
		board := bareBoard(DefaultBoardSize)
		placePiece(t, board, "c4", ColorRed)
		placePiece(t, board, "c2", ColorBlack)
		placePiece(t, board, "f5", ColorBlack)

		// When: BLACK moves next to the RED piece
		require.NoError(t, board.Move("f5", "c5", ColorBlack))

		// Then: the gap breaks the sandwich
		assert.Equal(t, ColorRed, board.SquareOccupant("c4"))
	})

	t.Run("An adjacent friendly piece captures nothing", func(t *testing.T) {
		// Given: two BLACK pieces about to stand side by side
		board := bareBoard(DefaultBoardSize)
		placePiece(t, board, "c4", ColorBlack)
		placePiece(t, board, "f5", ColorBlack)

		// When: they end up adjacent
		require.NoError(t, board.Move("f5", "c5", ColorBlack))

		// Then: no piece is removed
		assert.Equal(t, ColorBlack, board.SquareOccupant("c4"))
		assert.Equal(t, ColorBlack, board.SquareOccupant("c5"))
	})

	t.Run("Moving into a sandwich does not capture the mover", func(t *testing.T) {
		// Given: two RED pieces with a BLACK-sized hole between them
		board := bareBoard(DefaultBoardSize)
		placePiece(t, board, "e4", ColorRed)
		placePiece(t, board, "e6", ColorRed)
		placePiece(t, board, "a5", ColorBlack)

		// When: BLACK moves voluntarily between them
		require.NoError(t, board.Move("a5", "e5", ColorBlack))

		// Then: only arriving pieces capture; the mover is safe
		assert.Equal(t, ColorBlack, board.SquareOccupant("e5"))
		assert.Equal(t, ColorRed, board.SquareOccupant("e4"))
		assert.Equal(t, ColorRed, board.SquareOccupant("e6"))
	})
}

func TestBoard_CornerCapture(t *testing.T) {
	cornerCases := []struct {
		name    string
		corner  string
		partner string
		from    string
		anchor  string
	}{
		{name: "a1 corner, anchor below", corner: "a1", partner: "a2", from: "e1", anchor: "b1"},
		{name: "a1 corner, anchor beside", corner: "a1", partner: "b1", from: "a5", anchor: "a2"},
		{name: "a9 corner, anchor below", corner: "a9", partner: "a8", from: "e9", anchor: "b9"},
		{name: "i1 corner, anchor beside", corner: "i1", partner: "h1", from: "i5", anchor: "i2"},
		{name: "i9 corner, anchor above", corner: "i9", partner: "i8", from: "e9", anchor: "h9"},
	}

	for _, tc := range cornerCases {
		t.Run("Captures a cornered piece: "+tc.name, func(t *testing.T) {
			// Given: an opponent piece on the corner and a friendly partner on one neighbor
			board := bareBoard(DefaultBoardSize)
			placePiece(t, board, tc.corner, ColorRed)
			placePiece(t, board, tc.partner, ColorBlack)
			placePiece(t, board, tc.from, ColorBlack)

			// When: BLACK moves onto the other neighbor
			require.NoError(t, board.Move(tc.from, tc.anchor, ColorBlack))

			// Then: the cornered piece is captured at a right angle
			assert.Equal(t, ColorNone, board.SquareOccupant(tc.corner))
			assert.Equal(t, ColorBlack, board.SquareOccupant(tc.partner))
			assert.Equal(t, ColorBlack, board.SquareOccupant(tc.anchor))
		})
	}

	t.Run("No capture when the partner square is empty", func(t *testing.T) {
		// Given: a cornered RED piece but no partner on the other neighbor
		board := bareBoard(DefaultBoardSize)
		placePiece(t, board, "a1", ColorRed)
		placePiece(t, board, "e1", ColorBlack)

		// When: BLACK moves onto one corner neighbor only
		require.NoError(t, board.Move("e1", "b1", ColorBlack))

		// Then: the corner piece survives
		assert.Equal(t, ColorRed, board.SquareOccupant("a1"))
	})

	t.Run("No capture when the partner is opponent-colored", func(t *testing.T) {
		// Given: RED holds both the corner and the partner square
		board := bareBoard(DefaultBoardSize)
		placePiece(t, board, "a1", ColorRed)
		placePiece(t, board, "a2", ColorRed)
		placePiece(t, board, "e1", ColorBlack)

		// When: BLACK moves onto the other neighbor
		require.NoError(t, board.Move("e1", "b1", ColorBlack))

		// Then: there is no right-angle flank
		assert.Equal(t, ColorRed, board.SquareOccupant("a1"))
	})

	t.Run("No capture of a friendly piece on the corner", func(t *testing.T) {
		// Given: BLACK already holds the corner
		board := bareBoard(DefaultBoardSize)
		placePiece(t, board, "a1", ColorBlack)
		placePiece(t, board, "a2", ColorBlack)
		placePiece(t, board, "e1", ColorBlack)

		// When: BLACK completes the pattern
		require.NoError(t, board.Move("e1", "b1", ColorBlack))

		// Then: friendly pieces are never captured
		assert.Equal(t, ColorBlack, board.SquareOccupant("a1"))
	})

	t.Run("Corner rule follows the board size", func(t *testing.T) {
		// Given: a 5x5 board with a RED piece cornered at e5
		board := bareBoard(5)
		placePiece(t, board, "e5", ColorRed)
		placePiece(t, board, "e4", ColorBlack)
		placePiece(t, board, "a5", ColorBlack)

		// When: BLACK moves onto the corner's other neighbor
		require.NoError(t, board.Move("a5", "d5", ColorBlack))

		// Then: the capture works without any hardcoded dimension
		assert.Equal(t, ColorNone, board.SquareOccupant("e5"))
	})

	t.Run("Corner and custodian captures combine in one move", func(t *testing.T) {
		// Given: a cornered RED piece and a separate flanked RED run
		board := bareBoard(DefaultBoardSize)
		placePiece(t, board, "a1", ColorRed)
		placePiece(t, board, "a2", ColorBlack)
		placePiece(t, board, "c1", ColorRed)
		placePiece(t, board, "d1", ColorBlack)
		placePiece(t, board, "b5", ColorBlack)

		// When: BLACK lands on b1, closing both patterns
		require.NoError(t, board.Move("b5", "b1", ColorBlack))

		// Then: both the corner piece and the run are removed in one batch
		assert.Equal(t, ColorNone, board.SquareOccupant("a1"))
		assert.Equal(t, ColorNone, board.SquareOccupant("c1"))
	})
}

func TestBoard_CapturedCount(t *testing.T) {
	t.Run("Captured plus live always equals the starting count", func(t *testing.T) {
		// Given: the starting position with an extra BLACK custodian placed mid-board
		board := NewBoard(DefaultBoardSize)

		// When: a sequence of legal moves produces a capture
		require.NoError(t, board.Move("i1", "b1", ColorBlack))
		require.NoError(t, board.Move("a2", "b2", ColorRed))
		require.NoError(t, board.Move("i3", "b3", ColorBlack))

		// Then: the RED piece on b2 is flanked and captured
		assert.Equal(t, ColorNone, board.SquareOccupant("b2"))
		assert.Equal(t, 1, board.CapturedCount(ColorRed))
		assert.Equal(t, 0, board.CapturedCount(ColorBlack))

		// And: captured plus live equals the board size for both colors
		for _, color := range []Color{ColorBlack, ColorRed} {
			live := 0
			for _, row := range board.Grid {
				for _, piece := range row {
					if piece != nil && piece.Color == color {
						live++
					}
				}
			}
			assert.Equal(t, DefaultBoardSize, live+board.CapturedCount(color))
		}
	})
}

func TestBoard_Render(t *testing.T) {
	t.Run("Renders the starting position", func(t *testing.T) {
		// Given: a fresh 3x3 board
		board := NewBoard(3)

		// When: rendering it
		rendered := board.Render()

		// Then: header, row letters, glyphs and dashes line up
		expected := "  1 2 3\n" +
			"a R R R\n" +
			"b - - -\n" +
			"c B B B\n"
		assert.Equal(t, expected, rendered)
	})

	t.Run("Rendering never mutates the board", func(t *testing.T) {
		// Given: a board mid-game
		board := NewBoard(DefaultBoardSize)
		require.NoError(t, board.Move("i1", "b1", ColorBlack))

		// When: rendering twice
		first := board.Render()
		second := board.Render()

		// Then: the output is identical
		assert.Equal(t, first, second)
	})
}

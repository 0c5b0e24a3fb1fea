package entity

import (
	"strconv"
)

// Square is a 1-based board coordinate.
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// ParseSquare translates algebraic notation ("a1".."i9" on a 9x9 board)
// into a Square. The leading letter is the row, the decimal remainder
// the column. Returns false for malformed tokens or coordinates outside
// the size x size board; it never panics on bad input.
func ParseSquare(token string, size int) (Square, bool) {
	if len(token) < 2 {
		return Square{}, false
	}

	row := int(token[0]-'a') + 1
	col, err := strconv.Atoi(token[1:])
	if err != nil {
		return Square{}, false
	}

	square := Square{Row: row, Col: col}
	if !square.OnBoard(size) {
		return Square{}, false
	}

	return square, true
}

// OnBoard reports whether the square lies inside a size x size board.
func (that Square) OnBoard(size int) bool {
	return that.Row >= 1 && that.Row <= size && that.Col >= 1 && that.Col <= size
}

// String renders the square back to algebraic notation.
func (that Square) String() string {
	return string(rune('a'+that.Row-1)) + strconv.Itoa(that.Col)
}

package entity

// Color identifies a side. BLACK moves first.
type Color string

const (
	ColorBlack Color = "BLACK"
	ColorRed   Color = "RED"
	ColorNone  Color = "NONE"
)

// Opponent returns the other playing color. ColorNone has no opponent.
func (that Color) Opponent() Color {
	switch that {
	case ColorBlack:
		return ColorRed
	case ColorRed:
		return ColorBlack
	default:
		return ColorNone
	}
}

// Glyph is the single-character board rendering of the color.
func (that Color) Glyph() string {
	return string(that[0:1])
}

// Piece is a game piece. It has no identity beyond its color.
type Piece struct {
	Color Color `json:"color"`
}

func NewPiece(color Color) *Piece {
	return &Piece{Color: color}
}

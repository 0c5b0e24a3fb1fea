package entity

type Player struct {
	ID     string `json:"id"`
	Color  Color  `json:"color,omitempty"`
	GameID string `json:"game_id,omitempty"`
}

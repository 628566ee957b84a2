package domain

import "time"

// Label is a board-scoped tag with a presentation color pair.
type Label struct {
	ID        string    `json:"id"`
	BoardID   string    `json:"board_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	BgColor   string    `json:"bg_color,omitempty"`
	TextColor string    `json:"text_color,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

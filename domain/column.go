package domain

import (
	"strings"
	"time"
)

// Column is an ordered grouping of tasks within a board. Order values
// are non-negative and unique by convention only; display sorting
// breaks ties by creation time.
type Column struct {
	ID        string    `json:"id"`
	BoardID   string    `json:"board_id"`
	Title     string    `json:"title"`
	Color     string    `json:"color,omitempty"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DenotesCompletion reports whether tasks placed in this column count
// as finished. Matching is on the column title, case-insensitively.
func (c *Column) DenotesCompletion() bool {
	if c == nil {
		return false
	}
	title := strings.ToLower(c.Title)
	return strings.Contains(title, "done") || strings.Contains(title, "completed")
}

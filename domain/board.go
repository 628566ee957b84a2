package domain

import "time"

// Visibility controls who can discover a board.
type Visibility string

const (
	VisibilityPrivate Visibility = "PRIVATE"
	VisibilityPublic  Visibility = "PUBLIC"
)

// Board is the top-level collaborative workspace. Deleting a board
// cascades to every entity it owns.
type Board struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Color       string     `json:"color,omitempty"`
	Visibility  Visibility `json:"visibility"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// BoardSnapshot is the fully resolved board a client refetches to
// reconcile after missed realtime events.
type BoardSnapshot struct {
	Board
	Columns []ColumnWithTasks `json:"columns"`
	Labels  []Label           `json:"labels"`
	Members []Member          `json:"members"`
}

// ColumnWithTasks pairs a column with its tasks in display order.
type ColumnWithTasks struct {
	Column
	Tasks []Task `json:"tasks"`
}

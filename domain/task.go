package domain

import "time"

// Priority ranks a task's urgency.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Task is a unit of work belonging to exactly one column at a time.
// ChecklistCount and CommentCount are derived caches maintained as
// side effects of checklist/comment mutations, not authoritative.
type Task struct {
	ID             string     `json:"id"`
	ColumnID       string     `json:"column_id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Tag            string     `json:"tag,omitempty"`
	TagColor       string     `json:"tag_color,omitempty"`
	Priority       Priority   `json:"priority"`
	Order          int        `json:"order"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	ChecklistCount int        `json:"checklist_count"`
	CommentCount   int        `json:"comment_count"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	IsArchived     bool       `json:"is_archived"`
	AssigneeIDs    []string   `json:"assignee_ids"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (t *Task) IsCompleted() bool {
	return t != nil && t.CompletedAt != nil
}

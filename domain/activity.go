package domain

import (
	"strings"
	"time"
)

// ActivityEntry is an append-only, human-readable log row describing a
// user-visible mutation. The actor's id and display name are both
// captured at write time so historical attribution survives renames.
type ActivityEntry struct {
	ID        string    `json:"id"`
	BoardID   string    `json:"board_id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Action    string    `json:"action"`
	Target    string    `json:"target"`
	TaskID    string    `json:"task_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationType is derived from the activity action text.
type NotificationType string

const (
	NotificationCreate  NotificationType = "create"
	NotificationUpdate  NotificationType = "update"
	NotificationDelete  NotificationType = "delete"
	NotificationComment NotificationType = "comment"
)

// ClassifyAction maps a free-text action phrase to a notification type
// by substring match. Anything unrecognized counts as an update.
func ClassifyAction(action string) NotificationType {
	lower := strings.ToLower(action)
	switch {
	case strings.Contains(lower, "create"):
		return NotificationCreate
	case strings.Contains(lower, "delete"):
		return NotificationDelete
	case strings.Contains(lower, "comment"):
		return NotificationComment
	default:
		return NotificationUpdate
	}
}

// Notification is the read/unread derivative of an activity entry.
// IsRead is the only field a client may mutate.
type Notification struct {
	ID        string           `json:"id"`
	BoardID   string           `json:"board_id"`
	ActorName string           `json:"actor_name"`
	Action    string           `json:"action"`
	Target    string           `json:"target"`
	Type      NotificationType `json:"type"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}

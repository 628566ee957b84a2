package domain

// EventType tags every realtime event with its entity and action. The
// set is closed: subscribers can match exhaustively instead of probing
// payload fields.
type EventType string

const (
	EventBoardUpdated     EventType = "board:update"
	EventBoardDeleted     EventType = "board:delete"
	EventColumnCreated    EventType = "column:create"
	EventColumnUpdated    EventType = "column:update"
	EventColumnDeleted    EventType = "column:delete"
	EventColumnMoved      EventType = "column:moved"
	EventTaskCreated      EventType = "task:create"
	EventTaskUpdated      EventType = "task:update"
	EventTaskDeleted      EventType = "task:delete"
	EventTaskMoved        EventType = "task:moved"
	EventCommentCreated   EventType = "comment:create"
	EventCommentDeleted   EventType = "comment:delete"
	EventChecklistCreated EventType = "checklist:create"
	EventChecklistUpdated EventType = "checklist:update"
	EventChecklistDeleted EventType = "checklist:delete"
	EventLabelCreated     EventType = "label:create"
	EventLabelUpdated     EventType = "label:update"
	EventLabelDeleted     EventType = "label:delete"
	EventMemberCreated    EventType = "member:create"
	EventMemberUpdated    EventType = "member:update"
	EventMemberDeleted    EventType = "member:delete"
	EventActivity         EventType = "activity:new"
)

// Event is the wire shape forwarded verbatim to stream clients.
// Payload always carries enough identity (entity id plus Type) for a
// consumer to no-op on duplicate delivery. Activity-derived events
// additionally carry the user/action/target triple at the top level.
type Event struct {
	Type    EventType   `json:"type"`
	Payload interface{} `json:"payload"`
	User    string      `json:"user,omitempty"`
	Action  string      `json:"action,omitempty"`
	Target  string      `json:"target,omitempty"`
}

// BoardChannel names the bus channel carrying every mutation scoped to
// a board.
func BoardChannel(boardID string) string {
	return boardID
}

// TaskChannel names the bus channel a task-detail view subscribes to.
// Comment and checklist mutations publish here so such a view stays
// current without the noisier board channel.
func TaskChannel(taskID string) string {
	return "task:" + taskID
}

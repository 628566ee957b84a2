package transport

// Order fields are pointers so "absent" can mean append-to-end while 0
// still addresses the first position.

type BoardRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Visibility  string `json:"visibility"`
}

type ColumnRequest struct {
	BoardID string `json:"board_id"`
	Title   string `json:"title"`
	Color   string `json:"color"`
	Order   *int   `json:"order"`
}

type TaskRequest struct {
	ColumnID    string   `json:"column_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tag         string   `json:"tag"`
	TagColor    string   `json:"tag_color"`
	Priority    string   `json:"priority"`
	Order       *int     `json:"order"`
	DueDate     string   `json:"due_date"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	IsArchived  *bool    `json:"is_archived"`
	AssigneeIDs []string `json:"assignee_ids"`
}

type MoveRequest struct {
	ColumnID string `json:"column_id"`
	Position int    `json:"position"`
}

type PositionRequest struct {
	Position int `json:"position"`
}

type AssigneesRequest struct {
	MemberIDs []string `json:"member_ids"`
}

type CommentRequest struct {
	Content string `json:"content"`
	Author  string `json:"author"`
}

type ChecklistItemRequest struct {
	Text      string `json:"text"`
	IsChecked *bool  `json:"is_checked"`
	Order     *int   `json:"order"`
}

type LabelRequest struct {
	Name      string `json:"name"`
	Color     string `json:"color"`
	BgColor   string `json:"bg_color"`
	TextColor string `json:"text_color"`
}

type MemberRequest struct {
	Name   string `json:"name"`
	Role   string `json:"role"`
	Avatar string `json:"avatar"`
	Color  string `json:"color"`
}

package domain

import "testing"

func TestClassifyAction(t *testing.T) {
	t.Parallel()
	cases := []struct {
		action string
		want   NotificationType
	}{
		{"created a column", NotificationCreate},
		{"deleted the column", NotificationDelete},
		{"added a comment to", NotificationComment},
		{"renamed the column", NotificationUpdate},
		{"moved a task", NotificationUpdate},
		{"", NotificationUpdate},
		{"CREATED a task", NotificationCreate},
	}
	for _, tc := range cases {
		if got := ClassifyAction(tc.action); got != tc.want {
			t.Errorf("ClassifyAction(%q): got %q, want %q", tc.action, got, tc.want)
		}
	}
}

func TestColumnDenotesCompletion(t *testing.T) {
	t.Parallel()
	cases := []struct {
		title string
		want  bool
	}{
		{"Done", true},
		{"done", true},
		{"DONE ✅", true},
		{"Completed", true},
		{"Almost done", true},
		{"Doing", false},
		{"To Do", false},
		{"Backlog", false},
	}
	for _, tc := range cases {
		col := &Column{Title: tc.title}
		if got := col.DenotesCompletion(); got != tc.want {
			t.Errorf("DenotesCompletion(%q): got %v, want %v", tc.title, got, tc.want)
		}
	}
}

func TestColumnDenotesCompletionNil(t *testing.T) {
	t.Parallel()
	var col *Column
	if col.DenotesCompletion() {
		t.Error("nil column should not denote completion")
	}
}

package column

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/boardflow/backend/domain"
	"github.com/boardflow/backend/repository"
	"github.com/boardflow/backend/usecase"
)

type publishedEvent struct {
	channel string
	event   domain.Event
}

type fakePublisher struct {
	events []publishedEvent
}

func (p *fakePublisher) Publish(channel string, event domain.Event) {
	p.events = append(p.events, publishedEvent{channel: channel, event: event})
}

type fakeRecorder struct {
	actions []string
	targets []string
}

func (r *fakeRecorder) Record(_ context.Context, _ string, _ usecase.Actor, action, target, _ string) {
	r.actions = append(r.actions, action)
	r.targets = append(r.targets, target)
}

type fakeColumns struct {
	columns map[string]*domain.Column
	nextID  int
}

func (f *fakeColumns) GetByID(_ context.Context, id string) (*domain.Column, error) {
	column, ok := f.columns[id]
	if !ok {
		return nil, domain.ErrColumnNotFound
	}
	clone := *column
	return &clone, nil
}

func (f *fakeColumns) ListByBoard(_ context.Context, boardID string) ([]domain.Column, error) {
	var out []domain.Column
	for _, column := range f.columns {
		if column.BoardID == boardID {
			out = append(out, *column)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeColumns) Create(_ context.Context, column *domain.Column) (*domain.Column, error) {
	f.nextID++
	clone := *column
	if clone.ID == "" {
		clone.ID = fmt.Sprintf("col-%d", f.nextID)
	}
	clone.CreatedAt = time.Now()
	f.columns[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (f *fakeColumns) Update(_ context.Context, column *domain.Column) error {
	existing, ok := f.columns[column.ID]
	if !ok {
		return domain.ErrColumnNotFound
	}
	clone := *column
	clone.CreatedAt = existing.CreatedAt
	f.columns[column.ID] = &clone
	return nil
}

func (f *fakeColumns) UpdatePositions(_ context.Context, updates []repository.PositionUpdate) error {
	for _, update := range updates {
		if column, ok := f.columns[update.ID]; ok {
			column.Order = update.Order
		}
	}
	return nil
}

func (f *fakeColumns) Delete(_ context.Context, id string) error {
	delete(f.columns, id)
	return nil
}

type fakeTasks struct {
	recomputed []string
	doneFlags  []bool
}

func (f *fakeTasks) GetByID(context.Context, string) (*domain.Task, error) { return nil, nil }

func (f *fakeTasks) ListByColumn(context.Context, string) ([]domain.Task, error) { return nil, nil }

func (f *fakeTasks) ListByBoard(context.Context, string) ([]domain.Task, error) { return nil, nil }

func (f *fakeTasks) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	return task, nil
}
func (f *fakeTasks) Update(context.Context, *domain.Task) error { return nil }
func (f *fakeTasks) Move(context.Context, string, string, int, *time.Time) error {
	return nil
}
func (f *fakeTasks) UpdatePositions(context.Context, []repository.PositionUpdate) error { return nil }

func (f *fakeTasks) RecomputeCompletion(_ context.Context, columnID string, done bool) error {
	f.recomputed = append(f.recomputed, columnID)
	f.doneFlags = append(f.doneFlags, done)
	return nil
}

func (f *fakeTasks) SetAssignees(context.Context, string, []string) error { return nil }
func (f *fakeTasks) AdjustCommentCount(context.Context, string, int) error { return nil }
func (f *fakeTasks) AdjustChecklistCount(context.Context, string, int) error { return nil }
func (f *fakeTasks) Delete(context.Context, string) error { return nil }

func newFixture() (*UseCase, *fakeColumns, *fakeTasks, *fakePublisher, *fakeRecorder) {
	columns := &fakeColumns{columns: map[string]*domain.Column{}}
	tasks := &fakeTasks{}
	publisher := &fakePublisher{}
	recorder := &fakeRecorder{}
	uc := New(columns, tasks, publisher, recorder, nil)
	return uc, columns, tasks, publisher, recorder
}

func seedColumn(columns *fakeColumns, id, title string, order int, createdAt time.Time) {
	columns.columns[id] = &domain.Column{ID: id, BoardID: "board-1", Title: title, Order: order, CreatedAt: createdAt}
}

func TestCreateColumnAppendsToBoard(t *testing.T) {
	t.Parallel()
	uc, columns, _, publisher, recorder := newFixture()
	base := time.Now()
	seedColumn(columns, "a", "To Do", 0, base)
	seedColumn(columns, "b", "Doing", 1, base.Add(time.Second))

	created, err := uc.CreateColumn(context.Background(), &domain.Column{
		BoardID: "board-1",
		Title:   "Review",
		Order:   -1,
	}, usecase.Actor{ID: "u1", Name: "Ada"})
	if err != nil {
		t.Fatalf("CreateColumn: %v", err)
	}
	if created.Order != 2 {
		t.Errorf("order = %d, want 2", created.Order)
	}
	if len(publisher.events) != 1 {
		t.Fatalf("published %d events, want 1", len(publisher.events))
	}
	if got := publisher.events[0]; got.channel != "board-1" || got.event.Type != domain.EventColumnCreated {
		t.Errorf("published %q on %q, want column:create on board-1", got.event.Type, got.channel)
	}
	if len(recorder.actions) != 1 || recorder.actions[0] != "created a column" {
		t.Errorf("recorded actions = %v, want ['created a column']", recorder.actions)
	}
}

func TestCreateColumnAtExplicitOrderShiftsSiblings(t *testing.T) {
	t.Parallel()
	uc, columns, _, _, _ := newFixture()
	base := time.Now()
	seedColumn(columns, "a", "To Do", 0, base)
	seedColumn(columns, "b", "Doing", 1, base.Add(time.Second))
	seedColumn(columns, "c", "Done", 2, base.Add(2*time.Second))

	created, err := uc.CreateColumn(context.Background(), &domain.Column{
		BoardID: "board-1",
		Title:   "Review",
		Order:   1,
	}, usecase.Actor{ID: "u1", Name: "Ada"})
	if err != nil {
		t.Fatalf("CreateColumn: %v", err)
	}
	if created.Order != 1 {
		t.Errorf("created order = %d, want 1", created.Order)
	}

	listed, _ := columns.ListByBoard(context.Background(), "board-1")
	wantIDs := []string{"a", created.ID, "b", "c"}
	for i, column := range listed {
		if column.ID != wantIDs[i] {
			t.Errorf("position %d = %q, want %q", i, column.ID, wantIDs[i])
		}
		if column.Order != i {
			t.Errorf("%q order = %d, want %d", column.ID, column.Order, i)
		}
	}
}

func TestUpdateColumnCarriesStoredTimestamps(t *testing.T) {
	t.Parallel()
	uc, columns, _, publisher, _ := newFixture()
	createdAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	seedColumn(columns, "a", "To Do", 0, createdAt)

	updated, err := uc.UpdateColumn(context.Background(), &domain.Column{
		ID:    "a",
		Title: "Backlog",
		Order: -1,
	}, usecase.Actor{Name: "Ada"})
	if err != nil {
		t.Fatalf("UpdateColumn: %v", err)
	}
	if !updated.CreatedAt.Equal(createdAt) {
		t.Errorf("returned created_at = %v, want %v", updated.CreatedAt, createdAt)
	}

	if len(publisher.events) != 1 {
		t.Fatalf("published %d events, want 1", len(publisher.events))
	}
	payload, ok := publisher.events[0].event.Payload.(*domain.Column)
	if !ok {
		t.Fatalf("payload type = %T, want *domain.Column", publisher.events[0].event.Payload)
	}
	if !payload.CreatedAt.Equal(createdAt) {
		t.Errorf("event payload created_at = %v, want %v", payload.CreatedAt, createdAt)
	}
}

func TestMoveColumnRenumbersSiblings(t *testing.T) {
	t.Parallel()
	uc, columns, _, publisher, _ := newFixture()
	base := time.Now()
	seedColumn(columns, "a", "To Do", 0, base)
	seedColumn(columns, "b", "Doing", 1, base.Add(time.Second))
	seedColumn(columns, "c", "Done", 2, base.Add(2*time.Second))

	moved, err := uc.MoveColumn(context.Background(), "c", 0)
	if err != nil {
		t.Fatalf("MoveColumn: %v", err)
	}
	if moved.Order != 0 {
		t.Errorf("moved column order = %d, want 0", moved.Order)
	}

	listed, _ := columns.ListByBoard(context.Background(), "board-1")
	wantIDs := []string{"c", "a", "b"}
	for i, column := range listed {
		if column.ID != wantIDs[i] {
			t.Errorf("position %d = %q, want %q", i, column.ID, wantIDs[i])
		}
		if column.Order != i {
			t.Errorf("%q order = %d, want %d", column.ID, column.Order, i)
		}
	}
	if len(publisher.events) != 1 || publisher.events[0].event.Type != domain.EventColumnMoved {
		t.Errorf("events = %+v, want one column:moved", publisher.events)
	}
}

func TestRenameColumnToDoneRecomputesCompletion(t *testing.T) {
	t.Parallel()
	uc, columns, tasks, _, recorder := newFixture()
	seedColumn(columns, "a", "In Progress", 0, time.Now())

	if _, err := uc.UpdateColumn(context.Background(), &domain.Column{
		ID:    "a",
		Title: "Done",
		Order: -1,
	}, usecase.Actor{Name: "Ada"}); err != nil {
		t.Fatalf("UpdateColumn: %v", err)
	}

	if len(tasks.recomputed) != 1 || tasks.recomputed[0] != "a" || !tasks.doneFlags[0] {
		t.Errorf("recompute calls = %v/%v, want one done=true pass over column a",
			tasks.recomputed, tasks.doneFlags)
	}
	if len(recorder.actions) != 1 || recorder.actions[0] != "renamed the column" {
		t.Errorf("recorded actions = %v, want ['renamed the column']", recorder.actions)
	}
}

func TestRenameColumnBetweenCompletionTitlesSkipsRecompute(t *testing.T) {
	t.Parallel()
	uc, columns, tasks, _, _ := newFixture()
	seedColumn(columns, "a", "Done", 0, time.Now())

	if _, err := uc.UpdateColumn(context.Background(), &domain.Column{
		ID:    "a",
		Title: "Completed work",
		Order: -1,
	}, usecase.Actor{Name: "Ada"}); err != nil {
		t.Fatalf("UpdateColumn: %v", err)
	}
	if len(tasks.recomputed) != 0 {
		t.Errorf("recompute ran %d times for a done-to-done rename, want 0", len(tasks.recomputed))
	}
}

func TestDeleteColumnPublishesTombstone(t *testing.T) {
	t.Parallel()
	uc, columns, _, publisher, recorder := newFixture()
	seedColumn(columns, "a", "To Do", 0, time.Now())

	if err := uc.DeleteColumn(context.Background(), "a", usecase.Actor{Name: "Ada"}); err != nil {
		t.Fatalf("DeleteColumn: %v", err)
	}
	if _, ok := columns.columns["a"]; ok {
		t.Error("column still present after delete")
	}
	if len(publisher.events) != 1 || publisher.events[0].event.Type != domain.EventColumnDeleted {
		t.Errorf("events = %+v, want one column:delete", publisher.events)
	}
	if len(recorder.actions) != 1 || recorder.actions[0] != "deleted the column" {
		t.Errorf("recorded actions = %v, want ['deleted the column']", recorder.actions)
	}
}

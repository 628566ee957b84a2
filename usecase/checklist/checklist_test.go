package checklist

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/boardflow/backend/domain"
	"github.com/boardflow/backend/repository"
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

type fakeItems struct {
	items  map[string]*domain.ChecklistItem
	nextID int
}

func (f *fakeItems) GetByID(_ context.Context, id string) (*domain.ChecklistItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, domain.ErrChecklistItemNotFound
	}
	clone := *item
	return &clone, nil
}

func (f *fakeItems) ListByTask(_ context.Context, taskID string) ([]domain.ChecklistItem, error) {
	var out []domain.ChecklistItem
	for _, item := range f.items {
		if item.TaskID == taskID {
			out = append(out, *item)
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

func (f *fakeItems) Create(_ context.Context, item *domain.ChecklistItem) (*domain.ChecklistItem, error) {
	f.nextID++
	clone := *item
	if clone.ID == "" {
		clone.ID = fmt.Sprintf("item-%d", f.nextID)
	}
	clone.CreatedAt = time.Now()
	f.items[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (f *fakeItems) Update(_ context.Context, item *domain.ChecklistItem) error {
	existing, ok := f.items[item.ID]
	if !ok {
		return domain.ErrChecklistItemNotFound
	}
	clone := *item
	clone.CreatedAt = existing.CreatedAt
	f.items[item.ID] = &clone
	return nil
}

func (f *fakeItems) UpdatePositions(_ context.Context, updates []repository.PositionUpdate) error {
	for _, update := range updates {
		if item, ok := f.items[update.ID]; ok {
			item.Order = update.Order
		}
	}
	return nil
}

func (f *fakeItems) Delete(_ context.Context, id string) error {
	delete(f.items, id)
	return nil
}

type fakeTasks struct {
	countDeltas []int
}

func (f *fakeTasks) GetByID(_ context.Context, id string) (*domain.Task, error) {
	if id != "task-1" {
		return nil, domain.ErrTaskNotFound
	}
	return &domain.Task{ID: id, ColumnID: "col-1", Title: "host task"}, nil
}

func (f *fakeTasks) ListByColumn(context.Context, string) ([]domain.Task, error) { return nil, nil }

func (f *fakeTasks) ListByBoard(context.Context, string) ([]domain.Task, error) { return nil, nil }

func (f *fakeTasks) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	return task, nil
}

func (f *fakeTasks) Update(context.Context, *domain.Task) error { return nil }

func (f *fakeTasks) Move(context.Context, string, string, int, *time.Time) error { return nil }

func (f *fakeTasks) UpdatePositions(context.Context, []repository.PositionUpdate) error {
	return nil
}

func (f *fakeTasks) RecomputeCompletion(context.Context, string, bool) error { return nil }

func (f *fakeTasks) SetAssignees(context.Context, string, []string) error { return nil }

func (f *fakeTasks) AdjustCommentCount(context.Context, string, int) error { return nil }

func (f *fakeTasks) AdjustChecklistCount(_ context.Context, _ string, delta int) error {
	f.countDeltas = append(f.countDeltas, delta)
	return nil
}

func (f *fakeTasks) Delete(context.Context, string) error { return nil }

func newFixture() (*UseCase, *fakeItems, *fakeTasks, *fakePublisher) {
	items := &fakeItems{items: map[string]*domain.ChecklistItem{}}
	tasks := &fakeTasks{}
	publisher := &fakePublisher{}
	uc := New(items, tasks, publisher, nil)
	return uc, items, tasks, publisher
}

func seedItem(items *fakeItems, id, text string, order int, createdAt time.Time) {
	items.items[id] = &domain.ChecklistItem{ID: id, TaskID: "task-1", Text: text, Order: order, CreatedAt: createdAt}
}

func TestCreateItemAppendsAndBumpsCount(t *testing.T) {
	t.Parallel()
	uc, items, tasks, publisher := newFixture()
	base := time.Now()
	seedItem(items, "a", "write draft", 0, base)
	seedItem(items, "b", "review draft", 1, base.Add(time.Second))

	created, err := uc.CreateItem(context.Background(), &domain.ChecklistItem{
		TaskID: "task-1",
		Text:   "publish",
		Order:  -1,
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if created.Order != 2 {
		t.Errorf("order = %d, want 2", created.Order)
	}
	if len(tasks.countDeltas) != 1 || tasks.countDeltas[0] != 1 {
		t.Errorf("count deltas = %v, want [1]", tasks.countDeltas)
	}
	if len(publisher.events) != 1 {
		t.Fatalf("published %d events, want 1", len(publisher.events))
	}
	if got := publisher.events[0]; got.channel != "task:task-1" || got.event.Type != domain.EventChecklistCreated {
		t.Errorf("published %q on %q, want checklist:create on task:task-1", got.event.Type, got.channel)
	}
}

func TestCreateItemForMissingTaskRejected(t *testing.T) {
	t.Parallel()
	uc, _, tasks, _ := newFixture()

	_, err := uc.CreateItem(context.Background(), &domain.ChecklistItem{
		TaskID: "task-gone",
		Text:   "orphan",
		Order:  -1,
	})
	if err == nil {
		t.Fatal("expected create against a missing task to fail")
	}
	var domainErr *domain.Error
	if !errors.As(err, &domainErr) || domainErr.Code != domain.ErrCodeNotFound {
		t.Errorf("error = %v, want not found", err)
	}
	if len(tasks.countDeltas) != 0 {
		t.Errorf("count adjusted %d times for a rejected create, want 0", len(tasks.countDeltas))
	}
}

func TestCreateItemAtExplicitOrderShiftsSiblings(t *testing.T) {
	t.Parallel()
	uc, items, _, _ := newFixture()
	base := time.Now()
	seedItem(items, "a", "first", 0, base)
	seedItem(items, "b", "second", 1, base.Add(time.Second))
	seedItem(items, "c", "third", 2, base.Add(2*time.Second))

	created, err := uc.CreateItem(context.Background(), &domain.ChecklistItem{
		TaskID: "task-1",
		Text:   "squeezed in",
		Order:  1,
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if created.Order != 1 {
		t.Errorf("created order = %d, want 1", created.Order)
	}

	listed, _ := items.ListByTask(context.Background(), "task-1")
	wantIDs := []string{"a", created.ID, "b", "c"}
	for i, item := range listed {
		if item.ID != wantIDs[i] {
			t.Errorf("position %d = %q, want %q", i, item.ID, wantIDs[i])
		}
		if item.Order != i {
			t.Errorf("%q order = %d, want %d", item.ID, item.Order, i)
		}
	}
}

func TestUpdateItemReorderRenumbersSiblings(t *testing.T) {
	t.Parallel()
	uc, items, _, _ := newFixture()
	base := time.Now()
	seedItem(items, "a", "first", 0, base)
	seedItem(items, "b", "second", 1, base.Add(time.Second))
	seedItem(items, "c", "third", 2, base.Add(2*time.Second))

	updated, err := uc.UpdateItem(context.Background(), &domain.ChecklistItem{
		ID:    "c",
		Text:  "third",
		Order: 0,
	})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if updated.Order != 0 {
		t.Errorf("updated order = %d, want 0", updated.Order)
	}

	listed, _ := items.ListByTask(context.Background(), "task-1")
	wantIDs := []string{"c", "a", "b"}
	for i, item := range listed {
		if item.ID != wantIDs[i] {
			t.Errorf("position %d = %q, want %q", i, item.ID, wantIDs[i])
		}
		if item.Order != i {
			t.Errorf("%q order = %d, want %d", item.ID, item.Order, i)
		}
	}
}

func TestUpdateItemWithoutOrderKeepsPlacement(t *testing.T) {
	t.Parallel()
	uc, items, _, publisher := newFixture()
	createdAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	seedItem(items, "a", "first", 0, createdAt)
	seedItem(items, "b", "second", 1, createdAt.Add(time.Second))

	updated, err := uc.UpdateItem(context.Background(), &domain.ChecklistItem{
		ID:        "b",
		Text:      "second, checked",
		IsChecked: true,
		Order:     -1,
	})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if updated.Order != 1 {
		t.Errorf("order = %d, want 1 (unchanged)", updated.Order)
	}
	if !updated.IsChecked {
		t.Error("is_checked not applied")
	}
	if !updated.CreatedAt.Equal(createdAt.Add(time.Second)) {
		t.Errorf("returned created_at = %v, want %v", updated.CreatedAt, createdAt.Add(time.Second))
	}

	if len(publisher.events) != 1 {
		t.Fatalf("published %d events, want 1", len(publisher.events))
	}
	payload, ok := publisher.events[0].event.Payload.(*domain.ChecklistItem)
	if !ok {
		t.Fatalf("payload type = %T, want *domain.ChecklistItem", publisher.events[0].event.Payload)
	}
	if payload.CreatedAt.IsZero() {
		t.Error("event payload created_at is zero")
	}
}

func TestDeleteItemDropsCountAndPublishesTombstone(t *testing.T) {
	t.Parallel()
	uc, items, tasks, publisher := newFixture()
	seedItem(items, "a", "first", 0, time.Now())

	if err := uc.DeleteItem(context.Background(), "a"); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	if _, ok := items.items["a"]; ok {
		t.Error("item still present after delete")
	}
	if len(tasks.countDeltas) != 1 || tasks.countDeltas[0] != -1 {
		t.Errorf("count deltas = %v, want [-1]", tasks.countDeltas)
	}
	if len(publisher.events) != 1 {
		t.Fatalf("published %d events, want 1", len(publisher.events))
	}
	if got := publisher.events[0]; got.channel != "task:task-1" || got.event.Type != domain.EventChecklistDeleted {
		t.Errorf("published %q on %q, want checklist:delete on task:task-1", got.event.Type, got.channel)
	}
}

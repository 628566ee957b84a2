package label

import (
	"context"
	"testing"
	"time"

	"github.com/boardflow/backend/domain"
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

type fakeLabels struct {
	labels map[string]*domain.Label
}

func (f *fakeLabels) GetByID(_ context.Context, id string) (*domain.Label, error) {
	label, ok := f.labels[id]
	if !ok {
		return nil, domain.ErrLabelNotFound
	}
	clone := *label
	return &clone, nil
}

func (f *fakeLabels) ListByBoard(_ context.Context, boardID string) ([]domain.Label, error) {
	var out []domain.Label
	for _, label := range f.labels {
		if label.BoardID == boardID {
			out = append(out, *label)
		}
	}
	return out, nil
}

func (f *fakeLabels) Create(_ context.Context, label *domain.Label) (*domain.Label, error) {
	clone := *label
	if clone.ID == "" {
		clone.ID = "label-1"
	}
	clone.CreatedAt = time.Now()
	f.labels[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (f *fakeLabels) Update(_ context.Context, label *domain.Label) error {
	existing, ok := f.labels[label.ID]
	if !ok {
		return domain.ErrLabelNotFound
	}
	clone := *label
	clone.CreatedAt = existing.CreatedAt
	f.labels[label.ID] = &clone
	return nil
}

func (f *fakeLabels) Delete(_ context.Context, id string) error {
	delete(f.labels, id)
	return nil
}

func newFixture() (*UseCase, *fakeLabels, *fakePublisher) {
	labels := &fakeLabels{labels: map[string]*domain.Label{}}
	publisher := &fakePublisher{}
	uc := New(labels, publisher, nil)
	return uc, labels, publisher
}

func TestCreateLabelPublishesToBoard(t *testing.T) {
	t.Parallel()
	uc, _, publisher := newFixture()

	created, err := uc.CreateLabel(context.Background(), &domain.Label{
		BoardID: "board-1",
		Name:    "bug",
		Color:   "#d73a4a",
	})
	if err != nil {
		t.Fatalf("CreateLabel: %v", err)
	}
	if created.ID == "" {
		t.Error("created label has empty id")
	}
	if len(publisher.events) != 1 {
		t.Fatalf("published %d events, want 1", len(publisher.events))
	}
	if got := publisher.events[0]; got.channel != "board-1" || got.event.Type != domain.EventLabelCreated {
		t.Errorf("published %q on %q, want label:create on board-1", got.event.Type, got.channel)
	}
}

func TestUpdateLabelCarriesStoredTimestamps(t *testing.T) {
	t.Parallel()
	uc, labels, publisher := newFixture()
	createdAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	labels.labels["l1"] = &domain.Label{ID: "l1", BoardID: "board-1", Name: "bug", Color: "#d73a4a", CreatedAt: createdAt}

	updated, err := uc.UpdateLabel(context.Background(), &domain.Label{
		ID:    "l1",
		Name:  "defect",
		Color: "#d73a4a",
	})
	if err != nil {
		t.Fatalf("UpdateLabel: %v", err)
	}
	if updated.Name != "defect" {
		t.Errorf("name = %q, want %q", updated.Name, "defect")
	}
	if !updated.CreatedAt.Equal(createdAt) {
		t.Errorf("returned created_at = %v, want %v", updated.CreatedAt, createdAt)
	}

	if len(publisher.events) != 1 {
		t.Fatalf("published %d events, want 1", len(publisher.events))
	}
	payload, ok := publisher.events[0].event.Payload.(*domain.Label)
	if !ok {
		t.Fatalf("payload type = %T, want *domain.Label", publisher.events[0].event.Payload)
	}
	if !payload.CreatedAt.Equal(createdAt) {
		t.Errorf("event payload created_at = %v, want %v", payload.CreatedAt, createdAt)
	}
}

func TestDeleteLabelPublishesTombstone(t *testing.T) {
	t.Parallel()
	uc, labels, publisher := newFixture()
	labels.labels["l1"] = &domain.Label{ID: "l1", BoardID: "board-1", Name: "bug"}

	if err := uc.DeleteLabel(context.Background(), "l1"); err != nil {
		t.Fatalf("DeleteLabel: %v", err)
	}
	if _, ok := labels.labels["l1"]; ok {
		t.Error("label still present after delete")
	}
	if len(publisher.events) != 1 || publisher.events[0].event.Type != domain.EventLabelDeleted {
		t.Errorf("events = %+v, want one label:delete", publisher.events)
	}
}

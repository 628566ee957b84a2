package member

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

type fakeMembers struct {
	members map[string]*domain.Member
}

func (f *fakeMembers) GetByID(_ context.Context, id string) (*domain.Member, error) {
	member, ok := f.members[id]
	if !ok {
		return nil, domain.ErrMemberNotFound
	}
	clone := *member
	return &clone, nil
}

func (f *fakeMembers) ListByBoard(_ context.Context, boardID string) ([]domain.Member, error) {
	var out []domain.Member
	for _, member := range f.members {
		if member.BoardID == boardID {
			out = append(out, *member)
		}
	}
	return out, nil
}

func (f *fakeMembers) Create(_ context.Context, member *domain.Member) (*domain.Member, error) {
	clone := *member
	if clone.ID == "" {
		clone.ID = "member-1"
	}
	if clone.Role == "" {
		clone.Role = domain.RoleEditor
	}
	clone.CreatedAt = time.Now()
	f.members[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (f *fakeMembers) Update(_ context.Context, member *domain.Member) error {
	existing, ok := f.members[member.ID]
	if !ok {
		return domain.ErrMemberNotFound
	}
	clone := *member
	clone.CreatedAt = existing.CreatedAt
	f.members[member.ID] = &clone
	return nil
}

func (f *fakeMembers) Delete(_ context.Context, id string) error {
	delete(f.members, id)
	return nil
}

func newFixture() (*UseCase, *fakeMembers, *fakePublisher) {
	members := &fakeMembers{members: map[string]*domain.Member{}}
	publisher := &fakePublisher{}
	uc := New(members, publisher, nil)
	return uc, members, publisher
}

func TestCreateMemberPublishesToBoard(t *testing.T) {
	t.Parallel()
	uc, _, publisher := newFixture()

	created, err := uc.CreateMember(context.Background(), &domain.Member{
		BoardID: "board-1",
		Name:    "Grace",
	})
	if err != nil {
		t.Fatalf("CreateMember: %v", err)
	}
	if created.ID == "" {
		t.Error("created member has empty id")
	}
	if len(publisher.events) != 1 {
		t.Fatalf("published %d events, want 1", len(publisher.events))
	}
	if got := publisher.events[0]; got.channel != "board-1" || got.event.Type != domain.EventMemberCreated {
		t.Errorf("published %q on %q, want member:create on board-1", got.event.Type, got.channel)
	}
}

func TestUpdateMemberCarriesStoredTimestamps(t *testing.T) {
	t.Parallel()
	uc, members, publisher := newFixture()
	createdAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	members.members["m1"] = &domain.Member{ID: "m1", BoardID: "board-1", Name: "Grace", Role: domain.RoleEditor, CreatedAt: createdAt}

	updated, err := uc.UpdateMember(context.Background(), &domain.Member{
		ID:   "m1",
		Name: "Grace",
		Role: domain.RoleOwner,
	})
	if err != nil {
		t.Fatalf("UpdateMember: %v", err)
	}
	if updated.Role != domain.RoleOwner {
		t.Errorf("role = %q, want %q", updated.Role, domain.RoleOwner)
	}
	if !updated.CreatedAt.Equal(createdAt) {
		t.Errorf("returned created_at = %v, want %v", updated.CreatedAt, createdAt)
	}

	if len(publisher.events) != 1 {
		t.Fatalf("published %d events, want 1", len(publisher.events))
	}
	payload, ok := publisher.events[0].event.Payload.(*domain.Member)
	if !ok {
		t.Fatalf("payload type = %T, want *domain.Member", publisher.events[0].event.Payload)
	}
	if !payload.CreatedAt.Equal(createdAt) {
		t.Errorf("event payload created_at = %v, want %v", payload.CreatedAt, createdAt)
	}
}

func TestDeleteMemberPublishesTombstone(t *testing.T) {
	t.Parallel()
	uc, members, publisher := newFixture()
	members.members["m1"] = &domain.Member{ID: "m1", BoardID: "board-1", Name: "Grace"}

	if err := uc.DeleteMember(context.Background(), "m1"); err != nil {
		t.Fatalf("DeleteMember: %v", err)
	}
	if _, ok := members.members["m1"]; ok {
		t.Error("member still present after delete")
	}
	if len(publisher.events) != 1 || publisher.events[0].event.Type != domain.EventMemberDeleted {
		t.Errorf("events = %+v, want one member:delete", publisher.events)
	}
}

package location

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/veasna/clinic/internal/platform/apperr"
)

type mockRepo struct {
	byID   map[int64]Location
	nextID int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{byID: make(map[int64]Location), nextID: 1}
}

func (m *mockRepo) Create(_ context.Context, name string) (Location, error) {
	for _, l := range m.byID {
		if l.Name == name {
			return Location{}, apperr.Conflict("a location with this name already exists")
		}
	}
	l := Location{ID: m.nextID, Name: name, IsActive: true, CreatedAt: time.Now()}
	m.nextID++
	m.byID[l.ID] = l
	return l, nil
}

func (m *mockRepo) GetByID(_ context.Context, id int64) (Location, error) {
	l, ok := m.byID[id]
	if !ok {
		return Location{}, apperr.NotFound("location not found")
	}
	return l, nil
}

func (m *mockRepo) List(_ context.Context, includeInactive bool) ([]Location, error) {
	var out []Location
	for _, l := range m.byID {
		if l.IsActive || includeInactive {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *mockRepo) Rename(_ context.Context, id int64, name string) (Location, error) {
	l, ok := m.byID[id]
	if !ok {
		return Location{}, apperr.NotFound("location not found")
	}
	for _, other := range m.byID {
		if other.ID != id && other.Name == name {
			return Location{}, apperr.Conflict("a location with this name already exists")
		}
	}
	l.Name = name
	m.byID[id] = l
	return l, nil
}

func (m *mockRepo) Deactivate(_ context.Context, id int64) error {
	l, ok := m.byID[id]
	if !ok {
		return apperr.NotFound("location not found")
	}
	l.IsActive = false
	m.byID[id] = l
	return nil
}

func newService() *Service {
	return NewService(newMockRepo(), zerolog.New(os.Stderr))
}

func TestCreate_TrimsAndValidates(t *testing.T) {
	svc := newService()

	l, err := svc.Create(context.Background(), "  Poipet  ")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if l.Name != "Poipet" {
		t.Errorf("expected trimmed name, got %q", l.Name)
	}

	if _, err := svc.Create(context.Background(), "   "); apperr.KindOf(err) != apperr.KindInvalid {
		t.Errorf("expected invalid_argument for blank name, got %v", err)
	}
}

func TestCreate_DuplicateNameConflicts(t *testing.T) {
	svc := newService()

	if _, err := svc.Create(context.Background(), "Poipet"); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := svc.Create(context.Background(), "Poipet")
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Errorf("expected conflict, got %v", err)
	}
}

func TestDeactivate_HidesFromList(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, zerolog.New(os.Stderr))

	l, err := svc.Create(context.Background(), "Poipet")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Deactivate(context.Background(), l.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	active, err := svc.List(context.Background(), false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("expected no active locations, got %d", len(active))
	}

	all, err := svc.List(context.Background(), true)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("deactivated location must remain readable, got %d rows", len(all))
	}
}

func TestDeactivate_Missing(t *testing.T) {
	svc := newService()
	if err := svc.Deactivate(context.Background(), 99); apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("expected not_found, got %v", err)
	}
}

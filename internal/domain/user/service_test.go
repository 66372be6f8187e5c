package user

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/veasna/clinic/internal/platform/apperr"
	"github.com/veasna/clinic/internal/platform/auth"
)

type mockRepo struct {
	users  map[string]User
	nextID int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{users: make(map[string]User), nextID: 1}
}

func (m *mockRepo) Upsert(_ context.Context, username string) (User, error) {
	if u, ok := m.users[username]; ok {
		u.IsActive = true
		m.users[username] = u
		return u, nil
	}
	u := User{ID: m.nextID, Username: username, IsActive: true, CreatedAt: time.Now()}
	m.nextID++
	m.users[username] = u
	return u, nil
}

func (m *mockRepo) GetByID(_ context.Context, id int64) (User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, apperr.NotFound("user not found")
}

func (m *mockRepo) List(_ context.Context) ([]User, error) {
	var out []User
	for _, u := range m.users {
		if u.IsActive {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockRepo) Deactivate(_ context.Context, id int64) error {
	for name, u := range m.users {
		if u.ID == id {
			u.IsActive = false
			m.users[name] = u
			return nil
		}
	}
	return apperr.NotFound("user not found")
}

func newService(repo Repository) *Service {
	issuer := auth.NewTokenIssuer("test-secret", 30)
	return NewService(repo, issuer, zerolog.New(os.Stderr))
}

func TestLogin_CreatesAccount(t *testing.T) {
	svc := newService(newMockRepo())

	result, err := svc.Login(context.Background(), "sokha")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.User.Username != "sokha" || !result.User.IsActive {
		t.Errorf("unexpected user: %+v", result.User)
	}
	if result.Token == "" {
		t.Error("expected a token")
	}
}

func TestLogin_SameUsernameSameAccount(t *testing.T) {
	svc := newService(newMockRepo())

	first, err := svc.Login(context.Background(), "dara")
	if err != nil {
		t.Fatalf("first login: %v", err)
	}
	second, err := svc.Login(context.Background(), "dara")
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if first.User.ID != second.User.ID {
		t.Errorf("expected the same account, got %d then %d", first.User.ID, second.User.ID)
	}
}

func TestLogin_TrimsWhitespace(t *testing.T) {
	svc := newService(newMockRepo())

	result, err := svc.Login(context.Background(), "  dara  ")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.User.Username != "dara" {
		t.Errorf("expected trimmed username, got %q", result.User.Username)
	}
}

func TestLogin_RejectsEmptyAndInvalid(t *testing.T) {
	svc := newService(newMockRepo())

	for _, username := range []string{"", "   ", "ab", "has space", "é", "a/b"} {
		_, err := svc.Login(context.Background(), username)
		if apperr.KindOf(err) != apperr.KindInvalid {
			t.Errorf("username %q: expected invalid_argument, got %v", username, err)
		}
	}
}

func TestLogin_ReactivatesDeactivated(t *testing.T) {
	repo := newMockRepo()
	svc := newService(repo)

	first, err := svc.Login(context.Background(), "sokha")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := svc.Deactivate(context.Background(), first.User.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	again, err := svc.Login(context.Background(), "sokha")
	if err != nil {
		t.Fatalf("re-login: %v", err)
	}
	if !again.User.IsActive {
		t.Error("expected account reactivated on login")
	}
	if again.User.ID != first.User.ID {
		t.Errorf("expected same id after reactivation, got %d then %d", first.User.ID, again.User.ID)
	}
}

func TestLogin_TokenCarriesIdentity(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", 30)
	svc := NewService(newMockRepo(), issuer, zerolog.New(os.Stderr))

	result, err := svc.Login(context.Background(), "sokha")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	id, err := issuer.Parse(result.Token)
	if err != nil {
		t.Fatalf("parse issued token: %v", err)
	}
	if id.ID != result.User.ID || id.Username != "sokha" {
		t.Errorf("token identity mismatch: %+v", id)
	}
}

func TestCreate_UpsertsWithoutToken(t *testing.T) {
	svc := newService(newMockRepo())
	ctx := context.Background()

	u, err := svc.Create(ctx, " dara ")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.Username != "dara" || !u.IsActive {
		t.Errorf("unexpected user: %+v", u)
	}

	again, err := svc.Create(ctx, "dara")
	if err != nil {
		t.Fatalf("re-create: %v", err)
	}
	if again.ID != u.ID {
		t.Errorf("expected same account on re-create, got %d then %d", u.ID, again.ID)
	}

	if _, err := svc.Create(ctx, "ab"); apperr.KindOf(err) != apperr.KindInvalid {
		t.Errorf("expected invalid_argument for short username, got %v", err)
	}
}

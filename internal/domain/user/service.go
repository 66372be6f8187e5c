package user

import (
	"context"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/veasna/clinic/internal/platform/apperr"
	"github.com/veasna/clinic/internal/platform/auth"
)

// usernames are short handles typed on a tablet keyboard.
var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]{3,64}$`)

type Service struct {
	repo   Repository
	issuer *auth.TokenIssuer
	logger zerolog.Logger
}

func NewService(repo Repository, issuer *auth.TokenIssuer, logger zerolog.Logger) *Service {
	return &Service{repo: repo, issuer: issuer, logger: logger}
}

// Login resolves the account for username, creating or reactivating it as
// needed, and returns it with a signed token. There is no password; physical
// custody of a clinic tablet is the trust boundary.
func (s *Service) Login(ctx context.Context, username string) (LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return LoginResult{}, apperr.InvalidField("username", "username is required")
	}
	if !usernamePattern.MatchString(username) {
		return LoginResult{}, apperr.InvalidField("username",
			"username must be 3-64 characters of letters, digits, dot, dash or underscore")
	}

	u, err := s.repo.Upsert(ctx, username)
	if err != nil {
		return LoginResult{}, err
	}

	token, err := s.issuer.Issue(auth.Identity{ID: u.ID, Username: u.Username})
	if err != nil {
		return LoginResult{}, apperr.Internal(err)
	}

	s.logger.Info().Int64("user_id", u.ID).Str("username", u.Username).Msg("user logged in")
	return LoginResult{User: u, Token: token}, nil
}

// Create registers an account without logging it in. Shares the login upsert,
// so re-creating an existing username reactivates it instead of failing.
func (s *Service) Create(ctx context.Context, username string) (User, error) {
	username = strings.TrimSpace(username)
	if !usernamePattern.MatchString(username) {
		return User{}, apperr.InvalidField("username",
			"username must be 3-64 characters of letters, digits, dot, dash or underscore")
	}
	u, err := s.repo.Upsert(ctx, username)
	if err != nil {
		return User{}, err
	}
	s.logger.Info().Int64("user_id", u.ID).Str("username", u.Username).Msg("user created")
	return u, nil
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (User, error) {
	return s.repo.GetByID(ctx, id)
}

// Deactivate soft-deletes an account. Existing tokens keep working until they
// expire; the flag only removes the user from pickers.
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	return s.repo.Deactivate(ctx, id)
}

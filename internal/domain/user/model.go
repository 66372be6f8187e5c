// Package user implements the passwordless account layer: logging in by
// username alone, upserting the account on first use, and issuing tokens.
package user

import "time"

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResult pairs the resolved account with its freshly issued token.
type LoginResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

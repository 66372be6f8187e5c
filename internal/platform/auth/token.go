// Package auth implements the passwordless identity layer: HS256 tokens
// carrying a numeric user id and username, the echo middleware that resolves
// them, and a pluggable action policy.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/veasna/clinic/internal/platform/apperr"
)

// Identity is the caller resolved from a bearer token. The zero id with
// username "public" is the anonymous identity used in permissive mode.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Anonymous is the identity assigned to requests without a usable token when
// the server runs in permissive mode.
var Anonymous = Identity{ID: 0, Username: "public"}

func (i Identity) IsAnonymous() bool { return i.ID == 0 }

type claims struct {
	UserID   int64  `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies identity tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret string, ttlDays int) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    time.Duration(ttlDays) * 24 * time.Hour,
	}
}

// Issue signs a token for id, valid for the configured TTL.
func (t *TokenIssuer) Issue(id Identity) (string, error) {
	now := time.Now()
	c := claims{
		UserID:   id.ID,
		Username: id.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := tok.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies a token string and returns the identity it carries.
func (t *TokenIssuer) Parse(tokenString string) (Identity, error) {
	var c claims
	tok, err := jwt.ParseWithClaims(tokenString, &c, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tok.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return Identity{}, apperr.Invalid("invalid or expired token").Wrap(err)
	}
	if !tok.Valid {
		return Identity{}, apperr.Invalid("invalid or expired token")
	}
	return Identity{ID: c.UserID, Username: c.Username}, nil
}

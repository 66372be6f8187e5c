package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const identityKey = "auth.identity"

// Middleware resolves the request identity from the Authorization header and
// stores it on the echo context. In strict mode a missing or invalid token
// fails the request with 401; in permissive mode it downgrades to Anonymous.
func Middleware(issuer *TokenIssuer, strict bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := bearerToken(c.Request().Header.Get("Authorization"))
			if raw == "" {
				if strict {
					return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
				}
				c.Set(identityKey, Anonymous)
				return next(c)
			}

			id, err := issuer.Parse(raw)
			if err != nil {
				if strict {
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
				}
				c.Set(identityKey, Anonymous)
				return next(c)
			}

			c.Set(identityKey, id)
			return next(c)
		}
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

// IdentityFromContext returns the identity set by Middleware, or Anonymous if
// the middleware has not run.
func IdentityFromContext(c echo.Context) Identity {
	if id, ok := c.Get(identityKey).(Identity); ok {
		return id
	}
	return Anonymous
}

package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Policy decides whether an identity may perform a named action. The default
// AllowAll matches the field deployment, where every tablet user shares full
// access; a stricter policy can be swapped in without touching handlers.
type Policy func(id Identity, action string) bool

// AllowAll permits every action for every identity, anonymous included.
func AllowAll(Identity, string) bool { return true }

// RequireAction gates a route on the policy's answer for the given action.
func RequireAction(policy Policy, action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !policy(IdentityFromContext(c), action) {
				return echo.NewHTTPError(http.StatusForbidden, "not allowed to "+action)
			}
			return next(c)
		}
	}
}

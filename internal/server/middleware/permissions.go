package middleware

import (
	"net/http"
	"slices"

	"github.com/teamscope-ai/teamscope/backend/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Permission checks for the team/contact permission set ("team.create",
// "contact.update", ...). Admin tokens carry the full set already, so
// no role check is needed here.

func HasPermission(user *AppUser, permission string) bool {
	if user == nil {
		return false
	}
	return slices.Contains(user.Permissions, permission)
}

func HasAnyPermission(user *AppUser, permissions ...string) bool {
	if user == nil {
		return false
	}
	for _, permission := range permissions {
		if HasPermission(user, permission) {
			return true
		}
	}
	return false
}

func IsAdmin(user *AppUser) bool {
	if user == nil {
		return false
	}
	return user.Role == "admin"
}

func denyJSON(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{"error": message})
}

// RequirePermission guards a route behind one permission, e.g.
// RequirePermission("team.analyze") on the analyze endpoints.
func RequirePermission(permission string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := c.(*AppContext).User
			if user == nil {
				return denyJSON(c, http.StatusUnauthorized, "Unauthorized")
			}

			if !HasPermission(user, permission) {
				logger.Warn("Permission denied", "user_id", user.UserID, "permission", permission, "path", c.Path())
				return denyJSON(c, http.StatusForbidden, "Forbidden: missing permission "+permission)
			}

			return next(c)
		}
	}
}

// RequireAnyPermission guards a route behind a set of alternatives; any
// one of them grants access.
func RequireAnyPermission(permissions ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := c.(*AppContext).User
			if user == nil {
				return denyJSON(c, http.StatusUnauthorized, "Unauthorized")
			}

			if !HasAnyPermission(user, permissions...) {
				logger.Warn("Permission denied", "user_id", user.UserID, "permissions", permissions, "path", c.Path())
				return denyJSON(c, http.StatusForbidden, "Forbidden: missing required permission")
			}

			return next(c)
		}
	}
}

package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rach2103/moviereview/internal/services"
	"github.com/rach2103/moviereview/internal/types"
)

// SessionCookie is the cookie carrying the session token.
const SessionCookie = "movie_session"

// UserLocal is the context key holding the resolved models.User.
const UserLocal = "user"

// AuthUser validates that the request carries a resolvable session
func AuthUser(sessions *services.SessionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authorize(c, sessions, false, "movies.authorization.user")
	}
}

// AuthAdmin validates that the session identity holds the admin role
func AuthAdmin(sessions *services.SessionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authorize(c, sessions, true, "movies.authorization.admin")
	}
}

// authorize performs the authorization check
func authorize(c *fiber.Ctx, sessions *services.SessionService, admin bool, errorType string) error {
	// Get session cookie
	token := c.Cookies(SessionCookie)
	if token == "" {
		return &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: "Session cookie \"" + SessionCookie + "\" not found",
			Type:    errorType,
		}
	}

	// Resolve session
	user, ok := sessions.Resolve(token)
	if !ok {
		return &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: "Invalid or expired session",
			Type:    errorType,
		}
	}

	if admin && !user.IsAdmin() {
		return &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: "Admin role required",
			Type:    errorType,
		}
	}

	// Set identity in context
	c.Locals(UserLocal, user)

	return c.Next()
}

package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/rach2103/moviereview/internal/middleware"
	"github.com/rach2103/moviereview/internal/services"
	"github.com/rach2103/moviereview/internal/utils"
)

// AuthHandler handles login, logout, and identity routes
type AuthHandler struct {
	Sessions *services.SessionService
}

type loginRequest struct {
	Email string `json:"email"`
}

// Login handles POST /api/auth/login
// @Summary Log in by email
// @Description Resolves the email against the community roster and issues a session cookie. No credential is checked.
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body loginRequest true "Login request"
// @Success 200 {object} models.User
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "login")
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		return utils.ErrorResponse(c, "Email is required", fiber.StatusBadRequest, "login")
	}

	token, user, err := h.Sessions.Login(email)
	if err != nil {
		if errors.Is(err, services.ErrUnknownIdentity) {
			return utils.ErrorResponse(c, "No account matches that email", fiber.StatusUnauthorized, "login")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "login")
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.Status(fiber.StatusOK).JSON(user)
}

// Logout handles POST /api/auth/logout
// @Summary Log out
// @Description Deletes the session and expires the cookie
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /auth/logout [post]
// @Security ApiKeyAuth
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.Sessions.Logout(c.Cookies(middleware.SessionCookie))

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return utils.MutationSuccessResponse(c, nil)
}

// Me handles GET /api/auth/me
// @Summary Current identity
// @Description Returns the identity snapshot stored for the session
// @Tags Auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /auth/me [get]
// @Security ApiKeyAuth
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, currentUser(c), fiber.StatusOK)
}

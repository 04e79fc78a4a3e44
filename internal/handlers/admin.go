package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/rach2103/moviereview/internal/models"
	"github.com/rach2103/moviereview/internal/services"
	"github.com/rach2103/moviereview/internal/utils"
)

// AdminHandler handles roster and catalog administration routes
type AdminHandler struct {
	Social  *services.SocialService
	Catalog *services.CatalogService
}

type addMovieRequest struct {
	Title       string   `json:"title"`
	Genre       string   `json:"genre"`
	ReleaseYear int      `json:"releaseYear"`
	Director    string   `json:"director"`
	Cast        []string `json:"cast"`
	Synopsis    string   `json:"synopsis"`
	PosterURL   string   `json:"posterUrl"`
}

// ListUsers handles GET /api/admin/users
// @Summary List all users
// @Description Returns the full community roster
// @Tags Admin
// @Produce json
// @Success 200 {array} models.User
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /admin/users [get]
// @Security ApiKeyAuth
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.Social.Users())
}

// RemoveUser handles DELETE /api/admin/users/:id
// @Summary Remove a user
// @Description Deletes the roster record. Follow edges pointing at the removed user are not cleaned up. Admins cannot remove their own account.
// @Tags Admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /admin/users/{id} [delete]
// @Security ApiKeyAuth
func (h *AdminHandler) RemoveUser(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == currentUser(c).ID {
		return utils.ErrorResponse(c, "Cannot remove your own account", fiber.StatusBadRequest, "admin.removeUser")
	}
	if _, ok := h.Social.UserByID(id); !ok {
		return utils.NotFoundResponse(c, "User not found")
	}

	h.Social.RemoveUser(id)
	return utils.MutationSuccessResponse(c, nil)
}

// AddMovie handles POST /api/admin/movies
// @Summary Add a movie
// @Description Front-inserts a new movie into the catalog and the featured window. The new record starts with no rating and no reviews.
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body addMovieRequest true "Movie"
// @Success 201 {object} models.Movie
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /admin/movies [post]
// @Security ApiKeyAuth
func (h *AdminHandler) AddMovie(c *fiber.Ctx) error {
	var req addMovieRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "admin.addMovie")
	}
	if req.Title == "" {
		return utils.ErrorResponse(c, "Title is required", fiber.StatusBadRequest, "admin.addMovie")
	}
	if !models.ValidGenre(req.Genre) {
		return utils.ErrorResponse(c, "Unknown genre", fiber.StatusBadRequest, "admin.addMovie")
	}

	movie := models.Movie{
		ID:            uuid.NewString(),
		Title:         req.Title,
		Genre:         req.Genre,
		ReleaseYear:   req.ReleaseYear,
		Director:      req.Director,
		Cast:          req.Cast,
		Synopsis:      req.Synopsis,
		PosterURL:     req.PosterURL,
		AverageRating: 0,
		Reviews:       []models.Review{},
	}
	h.Catalog.AddMovie(movie)

	return c.Status(fiber.StatusCreated).JSON(movie)
}

// RemoveMovie handles DELETE /api/admin/movies/:id
// @Summary Remove a movie
// @Description Purges the movie from every catalog slice, including recommendations
// @Tags Admin
// @Produce json
// @Param id path string true "Movie ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /admin/movies/{id} [delete]
// @Security ApiKeyAuth
func (h *AdminHandler) RemoveMovie(c *fiber.Ctx) error {
	h.Catalog.RemoveMovie(c.Params("id"))
	return utils.MutationSuccessResponse(c, nil)
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rach2103/moviereview/internal/ai"
	"github.com/rach2103/moviereview/internal/models"
	"github.com/rach2103/moviereview/internal/services"
	"github.com/rach2103/moviereview/internal/utils"
)

// MovieHandler handles catalog browsing and review routes
type MovieHandler struct {
	Catalog  *services.CatalogService
	Social   *services.SocialService
	Provider *ai.Provider
}

type reviewRequest struct {
	Rating int    `json:"rating"`
	Text   string `json:"text"`
}

type movieDetailResponse struct {
	Movie   *models.Movie            `json:"movie"`
	Sources []models.GroundingSource `json:"sources,omitempty"`
}

// ListMovies handles GET /api/movies
// @Summary List movies
// @Description Fetches the movie list, optionally filtered by genre or a title search term. An unfiltered fetch also refreshes the featured and trending windows.
// @Tags Movies
// @Produce json
// @Param genre query string false "Genre filter"
// @Param search query string false "Title search term"
// @Success 200 {array} models.Movie
// @Router /movies [get]
func (h *MovieHandler) ListMovies(c *fiber.Ctx) error {
	genre := c.Query("genre")
	search := c.Query("search")

	h.Catalog.FetchMovies(c.UserContext(), genre, search)

	if msg := h.Catalog.Err(); msg != "" {
		return utils.ErrorResponse(c, msg, fiber.StatusBadGateway, "listMovies")
	}
	return c.Status(fiber.StatusOK).JSON(h.Catalog.Movies())
}

// GetFeatured handles GET /api/movies/featured
// @Summary Featured movies
// @Description Returns the featured window of the last unfiltered fetch
// @Tags Movies
// @Produce json
// @Success 200 {array} models.Movie
// @Router /movies/featured [get]
func (h *MovieHandler) GetFeatured(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.Catalog.Featured())
}

// GetTrending handles GET /api/movies/trending
// @Summary Trending movies
// @Description Returns the trending window of the last unfiltered fetch
// @Tags Movies
// @Produce json
// @Success 200 {array} models.Movie
// @Router /movies/trending [get]
func (h *MovieHandler) GetTrending(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.Catalog.Trending())
}

// GetRecommended handles GET /api/movies/recommended
// @Summary Recommended movies
// @Description Returns picks derived from the user's high ratings and watchlist. Cached picks are returned without a new provider call; a user with no derivable taste gets an empty list.
// @Tags Movies
// @Produce json
// @Success 200 {array} models.Movie
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /movies/recommended [get]
// @Security ApiKeyAuth
func (h *MovieHandler) GetRecommended(c *fiber.Ctx) error {
	if picks := h.Catalog.Recommended(); len(picks) > 0 {
		return c.Status(fiber.StatusOK).JSON(picks)
	}

	user := currentUser(c)
	if fresh, ok := h.Social.UserByID(user.ID); ok {
		user = fresh
	}
	h.Catalog.FetchRecommendations(c.UserContext(), user)

	return c.Status(fiber.StatusOK).JSON(h.Catalog.Recommended())
}

// GetMovie handles GET /api/movies/:id
// @Summary Movie detail
// @Description Loads the detail view for one movie, with grounding sources when the content service supplies them
// @Tags Movies
// @Produce json
// @Param id path string true "Movie ID"
// @Param title query string false "Movie title hint for the content service"
// @Success 200 {object} movieDetailResponse
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /movies/{id} [get]
// @Security ApiKeyAuth
func (h *MovieHandler) GetMovie(c *fiber.Ctx) error {
	id := c.Params("id")
	title := c.Query("title")

	h.Catalog.FetchMovieByID(c.UserContext(), id, title)

	movie, sources := h.Catalog.CurrentMovie()
	if movie == nil {
		return utils.NotFoundResponse(c, "Movie not found")
	}
	return c.Status(fiber.StatusOK).JSON(movieDetailResponse{Movie: movie, Sources: sources})
}

// ClearCurrentMovie handles DELETE /api/movies/current
// @Summary Clear movie selection
// @Description Drops the current detail selection and its sources
// @Tags Movies
// @Success 204
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /movies/current [delete]
// @Security ApiKeyAuth
func (h *MovieHandler) ClearCurrentMovie(c *fiber.Ctx) error {
	h.Catalog.ClearCurrentMovie()
	return c.SendStatus(fiber.StatusNoContent)
}

// SubmitReview handles POST /api/movies/:id/reviews
// @Summary Submit a review
// @Description Sends the review to the content service for acknowledgement, then records it on the user's profile
// @Tags Movies
// @Accept json
// @Produce json
// @Param id path string true "Movie ID"
// @Param body body reviewRequest true "Review"
// @Success 200 {object} ai.ReviewAck
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /movies/{id}/reviews [post]
// @Security ApiKeyAuth
func (h *MovieHandler) SubmitReview(c *fiber.Ctx) error {
	id := c.Params("id")

	var req reviewRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "submitReview")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return utils.ErrorResponse(c, "Rating must be between 1 and 5", fiber.StatusBadRequest, "submitReview")
	}

	title, ok := h.resolveTitle(id)
	if !ok {
		return utils.NotFoundResponse(c, "Movie not found")
	}

	ack := h.Provider.SubmitReview(c.UserContext(), id, req.Rating, req.Text)
	if ack.Success {
		h.Social.AddReview(currentUser(c).ID, id, title, req.Rating, req.Text)
	}
	return c.Status(fiber.StatusOK).JSON(ack)
}

// resolveTitle finds the display title for a movie id from the detail
// selection first, then the loaded list.
func (h *MovieHandler) resolveTitle(id string) (string, bool) {
	if movie, _ := h.Catalog.CurrentMovie(); movie != nil && movie.ID == id {
		return movie.Title, true
	}
	if movie, ok := h.Catalog.MovieByID(id); ok {
		return movie.Title, true
	}
	return "", false
}

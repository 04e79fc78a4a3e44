package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rach2103/moviereview/internal/models"
	"github.com/rach2103/moviereview/internal/services"
	"github.com/rach2103/moviereview/internal/utils"
)

// UserHandler handles profile, follow graph, feed, and watchlist routes
type UserHandler struct {
	Social *services.SocialService
}

type profileResponse struct {
	User               models.User           `json:"user"`
	IsFollowing        bool                  `json:"isFollowing"`
	RatingDistribution []models.RatingBucket `json:"ratingDistribution"`
}

// GetProfile handles GET /api/users/:id
// @Summary User profile
// @Description Returns the user's record, whether the viewer follows them, and a breakdown of their ratings by star count
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} profileResponse
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{id} [get]
// @Security ApiKeyAuth
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	user, ok := h.Social.UserByID(c.Params("id"))
	if !ok {
		return utils.NotFoundResponse(c, "User not found")
	}

	return utils.SuccessResponse(c, profileResponse{
		User:               user,
		IsFollowing:        h.Social.IsFollowing(currentUser(c).ID, user.ID),
		RatingDistribution: models.RatingDistribution(user.Reviews),
	}, fiber.StatusOK)
}

// Follow handles POST /api/users/:id/follow
// @Summary Follow a user
// @Description Adds the follow edge in both directions. Following yourself or following twice is a no-op.
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{id}/follow [post]
// @Security ApiKeyAuth
func (h *UserHandler) Follow(c *fiber.Ctx) error {
	targetID := c.Params("id")
	if _, ok := h.Social.UserByID(targetID); !ok {
		return utils.NotFoundResponse(c, "User not found")
	}

	h.Social.Follow(currentUser(c).ID, targetID)
	return utils.MutationSuccessResponse(c, nil)
}

// Unfollow handles DELETE /api/users/:id/follow
// @Summary Unfollow a user
// @Description Removes the follow edge in both directions; a no-op if it did not exist
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /users/{id}/follow [delete]
// @Security ApiKeyAuth
func (h *UserHandler) Unfollow(c *fiber.Ctx) error {
	h.Social.Unfollow(currentUser(c).ID, c.Params("id"))
	return utils.MutationSuccessResponse(c, nil)
}

// GetFeed handles GET /api/feed
// @Summary Review feed
// @Description Returns the reviews of everyone the user follows, newest first
// @Tags Users
// @Produce json
// @Success 200 {array} models.Review
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /feed [get]
// @Security ApiKeyAuth
func (h *UserHandler) GetFeed(c *fiber.Ctx) error {
	feed := h.Social.Feed(currentUser(c).ID)
	if feed == nil {
		feed = []models.Review{}
	}
	return c.Status(fiber.StatusOK).JSON(feed)
}

// AddToWatchlist handles POST /api/watchlist
// @Summary Add to watchlist
// @Description Saves a movie snapshot on the user's watchlist; adding the same movie twice does not duplicate it
// @Tags Users
// @Accept json
// @Produce json
// @Param body body models.Movie true "Movie snapshot"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /watchlist [post]
// @Security ApiKeyAuth
func (h *UserHandler) AddToWatchlist(c *fiber.Ctx) error {
	var movie models.Movie
	if err := c.BodyParser(&movie); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "watchlist")
	}
	if movie.ID == "" {
		return utils.ErrorResponse(c, "Movie id is required", fiber.StatusBadRequest, "watchlist")
	}

	userID := currentUser(c).ID
	h.Social.AddToWatchlist(userID, movie)

	user, _ := h.Social.UserByID(userID)
	return utils.MutationSuccessResponse(c, user.Watchlist)
}

// RemoveFromWatchlist handles DELETE /api/watchlist/:movieId
// @Summary Remove from watchlist
// @Description Removes the movie from the user's watchlist, if present
// @Tags Users
// @Produce json
// @Param movieId path string true "Movie ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /watchlist/{movieId} [delete]
// @Security ApiKeyAuth
func (h *UserHandler) RemoveFromWatchlist(c *fiber.Ctx) error {
	userID := currentUser(c).ID
	h.Social.RemoveFromWatchlist(userID, c.Params("movieId"))

	user, _ := h.Social.UserByID(userID)
	return utils.MutationSuccessResponse(c, user.Watchlist)
}

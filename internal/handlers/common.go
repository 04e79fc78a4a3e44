package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/rach2103/moviereview/internal/config"
	"github.com/rach2103/moviereview/internal/middleware"
	"github.com/rach2103/moviereview/internal/models"
	"github.com/rach2103/moviereview/internal/services"
)

// HealthHandler handles service health routes
type HealthHandler struct {
	Cfg *config.Config
	DB  *gorm.DB
}

// GetHealth handles GET /api/health
// @Summary Service health
// @Description Reports database and content service availability
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *HealthHandler) GetHealth(c *fiber.Ctx) error {
	result := services.HealthCheck(h.Cfg, h.DB)

	status := fiber.StatusOK
	if result.Status == "unhealthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}

// currentUser returns the identity placed in context by the auth middleware.
func currentUser(c *fiber.Ctx) models.User {
	user, _ := c.Locals(middleware.UserLocal).(models.User)
	return user
}

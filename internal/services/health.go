package services

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/rach2103/moviereview/internal/config"
	"github.com/rach2103/moviereview/internal/utils"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status         string            `json:"status"`
	Database       string            `json:"database"`
	ContentService string            `json:"contentService"`
	Details        map[string]string `json:"details,omitempty"`
	ErrorMessage   string            `json:"error,omitempty"`
}

// HealthCheck performs a comprehensive health check of the service.
// A failing database is unhealthy; a missing or unreachable content
// service only degrades the status, since browsing falls back to the
// embedded dataset.
func HealthCheck(cfg *config.Config, db *gorm.DB) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	// Check database connectivity
	sqlDB, err := db.DB()
	if err != nil {
		result.Status = "unhealthy"
		result.Database = "error"
		result.Details["database_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database connection error: %v", err)
		log.Printf("Health check failed - database connection: %v", err)
	} else {
		if err := sqlDB.Ping(); err != nil {
			result.Status = "unhealthy"
			result.Database = "unreachable"
			result.Details["database_ping_error"] = err.Error()
			result.ErrorMessage = fmt.Sprintf("Database ping failed: %v", err)
			log.Printf("Health check failed - database ping: %v", err)
		} else {
			result.Database = "ok"
			result.Details["database_type"] = cfg.DBType
			result.Details["database_name"] = cfg.DBDatabase
		}
	}

	// Check content service availability
	switch {
	case !cfg.AIConfigured():
		result.ContentService = "degraded"
		result.Details["content_service"] = "no API key configured, serving embedded dataset"
		if result.Status == "healthy" {
			result.Status = "degraded"
		}
	case cfg.AIBaseURL != "":
		if err := utils.PingContentService(cfg.AIBaseURL); err != nil {
			result.ContentService = "unreachable"
			result.Details["content_service_error"] = err.Error()
			if result.Status == "healthy" {
				result.Status = "degraded"
			}
			log.Printf("Health check - content service ping: %v", err)
		} else {
			result.ContentService = "ok"
			result.Details["content_service_url"] = cfg.AIBaseURL
		}
	default:
		result.ContentService = "ok"
		result.Details["content_service_model"] = cfg.AIModel
	}

	if result.Status == "healthy" {
		log.Println("Health check passed - all systems operational")
	}

	return result
}

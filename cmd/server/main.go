package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/joho/godotenv"

	"github.com/rach2103/moviereview/internal/ai"
	"github.com/rach2103/moviereview/internal/config"
	"github.com/rach2103/moviereview/internal/database"
	"github.com/rach2103/moviereview/internal/handlers"
	"github.com/rach2103/moviereview/internal/middleware"
	"github.com/rach2103/moviereview/internal/services"

	_ "github.com/rach2103/moviereview/docs/api" // Swagger docs
)

// @title MovieReview API
// @version 1.0.0
// @description Movie browsing and review community service with AI-generated catalog content
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/rach2103/moviereview

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name movie_session

func main() {
	// Load .env if present
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Build stores
	provider, err := ai.NewProvider(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize content provider: %v", err)
	}
	social, err := services.NewSocialService()
	if err != nil {
		log.Fatalf("Failed to seed user roster: %v", err)
	}
	catalog := services.NewCatalogService(provider)
	sessions := services.NewSessionService(db, social)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler,
		DisableStartupMessage: false,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("moviereview")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Create handlers
	healthHandler := &handlers.HealthHandler{Cfg: cfg, DB: db}
	authHandler := &handlers.AuthHandler{Sessions: sessions}
	movieHandler := &handlers.MovieHandler{Catalog: catalog, Social: social, Provider: provider}
	userHandler := &handlers.UserHandler{Social: social}
	adminHandler := &handlers.AdminHandler{Social: social, Catalog: catalog}

	authUser := middleware.AuthUser(sessions)
	authAdmin := middleware.AuthAdmin(sessions)

	// API routes under /api
	api := app.Group("/api")

	// Public routes
	api.Get("/health", healthHandler.GetHealth)
	api.Post("/auth/login", authHandler.Login)
	api.Get("/movies", movieHandler.ListMovies)
	api.Get("/movies/featured", movieHandler.GetFeatured)
	api.Get("/movies/trending", movieHandler.GetTrending)

	// Authenticated routes
	api.Post("/auth/logout", authUser, authHandler.Logout)
	api.Get("/auth/me", authUser, authHandler.Me)
	api.Get("/movies/recommended", authUser, movieHandler.GetRecommended)
	api.Delete("/movies/current", authUser, movieHandler.ClearCurrentMovie)
	api.Get("/movies/:id", authUser, movieHandler.GetMovie)
	api.Post("/movies/:id/reviews", authUser, movieHandler.SubmitReview)
	api.Get("/feed", authUser, userHandler.GetFeed)
	api.Get("/users/:id", authUser, userHandler.GetProfile)
	api.Post("/users/:id/follow", authUser, userHandler.Follow)
	api.Delete("/users/:id/follow", authUser, userHandler.Unfollow)
	api.Post("/watchlist", authUser, userHandler.AddToWatchlist)
	api.Delete("/watchlist/:movieId", authUser, userHandler.RemoveFromWatchlist)

	// Admin-only routes
	api.Get("/admin/users", authAdmin, adminHandler.ListUsers)
	api.Delete("/admin/users/:id", authAdmin, adminHandler.RemoveUser)
	api.Post("/admin/movies", authAdmin, adminHandler.AddMovie)
	api.Delete("/admin/movies/:id", authAdmin, adminHandler.RemoveMovie)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	if provider.Degraded() {
		log.Printf("Content service not configured, serving embedded dataset")
	}

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

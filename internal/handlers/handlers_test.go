package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rach2103/moviereview/internal/ai"
	"github.com/rach2103/moviereview/internal/handlers"
	"github.com/rach2103/moviereview/internal/middleware"
	"github.com/rach2103/moviereview/internal/models"
	"github.com/rach2103/moviereview/internal/services"
	"github.com/rach2103/moviereview/tests/helpers"
)

// newTestApp wires the full route table over an in-memory session database
// and the embedded movie dataset.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	if err := db.AutoMigrate(&models.SessionRecord{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	provider, err := ai.NewProviderWithGenerator(nil)
	if err != nil {
		t.Fatalf("Failed to build provider: %v", err)
	}
	social, err := services.NewSocialService()
	if err != nil {
		t.Fatalf("Failed to seed roster: %v", err)
	}
	catalog := services.NewCatalogService(provider)
	sessions := services.NewSessionService(db, social)

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})

	authHandler := &handlers.AuthHandler{Sessions: sessions}
	movieHandler := &handlers.MovieHandler{Catalog: catalog, Social: social, Provider: provider}
	userHandler := &handlers.UserHandler{Social: social}
	adminHandler := &handlers.AdminHandler{Social: social, Catalog: catalog}

	authUser := middleware.AuthUser(sessions)
	authAdmin := middleware.AuthAdmin(sessions)

	api := app.Group("/api")
	api.Post("/auth/login", authHandler.Login)
	api.Get("/movies", movieHandler.ListMovies)
	api.Get("/movies/featured", movieHandler.GetFeatured)
	api.Get("/movies/trending", movieHandler.GetTrending)
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
	api.Get("/admin/users", authAdmin, adminHandler.ListUsers)
	api.Delete("/admin/users/:id", authAdmin, adminHandler.RemoveUser)
	api.Post("/admin/movies", authAdmin, adminHandler.AddMovie)
	api.Delete("/admin/movies/:id", authAdmin, adminHandler.RemoveMovie)

	return app
}

func doRequest(t *testing.T, app *fiber.App, method, target, body, token string) *http.Response {
	t.Helper()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Request %s %s failed: %v", method, target, err)
	}
	return resp
}

func loginAs(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	resp := doRequest(t, app, http.MethodPost, "/api/auth/login", `{"email":"`+email+`"}`, "")
	helpers.AssertStatus(t, resp, http.StatusOK)
	for _, cookie := range resp.Cookies() {
		if cookie.Name == middleware.SessionCookie {
			return cookie.Value
		}
	}
	t.Fatal("No session cookie on login response")
	return ""
}

func TestLoginValidation(t *testing.T) {
	app := newTestApp(t)

	resp := doRequest(t, app, http.MethodPost, "/api/auth/login", `{"email":""}`, "")
	helpers.AssertStatus(t, resp, http.StatusBadRequest)

	resp = doRequest(t, app, http.MethodPost, "/api/auth/login", `{"email":"stranger@example.com"}`, "")
	helpers.AssertStatus(t, resp, http.StatusUnauthorized)
}

func TestAuthGating(t *testing.T) {
	app := newTestApp(t)

	// No cookie
	resp := doRequest(t, app, http.MethodGet, "/api/feed", "", "")
	helpers.AssertStatus(t, resp, http.StatusForbidden)

	// Bogus token
	resp = doRequest(t, app, http.MethodGet, "/api/feed", "", "not-a-real-token")
	helpers.AssertStatus(t, resp, http.StatusForbidden)

	// Regular user on an admin route
	token := loginAs(t, app, "chris@example.com")
	resp = doRequest(t, app, http.MethodGet, "/api/admin/users", "", token)
	helpers.AssertStatus(t, resp, http.StatusForbidden)
}

func TestMovieListingDegraded(t *testing.T) {
	app := newTestApp(t)

	resp := doRequest(t, app, http.MethodGet, "/api/movies", "", "")
	helpers.AssertStatus(t, resp, http.StatusOK)
	var movies []models.Movie
	helpers.ParseJSON(t, resp, &movies)
	if len(movies) != 4 {
		t.Fatalf("Expected 4 embedded movies, got %d", len(movies))
	}

	// Featured window is populated by the unfiltered fetch
	resp = doRequest(t, app, http.MethodGet, "/api/movies/featured", "", "")
	helpers.AssertStatus(t, resp, http.StatusOK)
	var featured []models.Movie
	helpers.ParseJSON(t, resp, &featured)
	if len(featured) != 4 {
		t.Errorf("Expected 4 featured movies, got %d", len(featured))
	}

	// Genre filter
	resp = doRequest(t, app, http.MethodGet, "/api/movies?genre=Drama", "", "")
	helpers.AssertStatus(t, resp, http.StatusOK)
	helpers.ParseJSON(t, resp, &movies)
	if len(movies) != 2 {
		t.Errorf("Expected 2 Drama movies, got %d", len(movies))
	}

	// Title search
	resp = doRequest(t, app, http.MethodGet, "/api/movies?search=pulp", "", "")
	helpers.AssertStatus(t, resp, http.StatusOK)
	helpers.ParseJSON(t, resp, &movies)
	if len(movies) != 1 || movies[0].ID != "mock-4" {
		t.Errorf("Expected Pulp Fiction, got %+v", movies)
	}
}

func TestMovieDetail(t *testing.T) {
	app := newTestApp(t)
	token := loginAs(t, app, "chris@example.com")

	resp := doRequest(t, app, http.MethodGet, "/api/movies/mock-1", "", token)
	helpers.AssertStatus(t, resp, http.StatusOK)
	var detail struct {
		Movie *models.Movie `json:"movie"`
	}
	helpers.ParseJSON(t, resp, &detail)
	if detail.Movie == nil || detail.Movie.ID != "mock-1" {
		t.Fatalf("Unexpected detail: %+v", detail.Movie)
	}
	if len(detail.Movie.Reviews) != 2 {
		t.Errorf("Expected canned reviews on detail, got %d", len(detail.Movie.Reviews))
	}

	resp = doRequest(t, app, http.MethodGet, "/api/movies/no-such-movie", "", token)
	helpers.AssertStatus(t, resp, http.StatusNotFound)

	resp = doRequest(t, app, http.MethodDelete, "/api/movies/current", "", token)
	helpers.AssertStatus(t, resp, http.StatusNoContent)
	helpers.AssertNoContent(t, resp)
}

func TestSubmitReview(t *testing.T) {
	app := newTestApp(t)
	token := loginAs(t, app, "chris@example.com")

	// Load the catalog so the movie title resolves
	doRequest(t, app, http.MethodGet, "/api/movies", "", "")

	resp := doRequest(t, app, http.MethodPost, "/api/movies/mock-3/reviews", `{"rating":5,"text":"Still holds up."}`, token)
	helpers.AssertStatus(t, resp, http.StatusOK)
	var ack ai.ReviewAck
	helpers.ParseJSON(t, resp, &ack)
	if !ack.Success || ack.NewAverageRating != 4.2 {
		t.Errorf("Unexpected ack: %+v", ack)
	}

	// The review lands on the author's profile with a denormalized title
	resp = doRequest(t, app, http.MethodGet, "/api/users/user-123", "", token)
	helpers.AssertStatus(t, resp, http.StatusOK)
	var profile struct {
		User models.User `json:"user"`
	}
	helpers.ParseJSON(t, resp, &profile)
	if len(profile.User.Reviews) == 0 || profile.User.Reviews[0].MovieTitle != "The Dark Knight" {
		t.Errorf("Expected prepended review for The Dark Knight, got %+v", profile.User.Reviews)
	}

	// Validation
	resp = doRequest(t, app, http.MethodPost, "/api/movies/mock-3/reviews", `{"rating":9,"text":"no"}`, token)
	helpers.AssertStatus(t, resp, http.StatusBadRequest)
	resp = doRequest(t, app, http.MethodPost, "/api/movies/unknown/reviews", `{"rating":4,"text":"ok"}`, token)
	helpers.AssertStatus(t, resp, http.StatusNotFound)
}

func TestProfileAndFollow(t *testing.T) {
	app := newTestApp(t)
	token := loginAs(t, app, "chris@example.com")

	resp := doRequest(t, app, http.MethodGet, "/api/users/user-456", "", token)
	helpers.AssertStatus(t, resp, http.StatusOK)
	var profile struct {
		User               models.User           `json:"user"`
		IsFollowing        bool                  `json:"isFollowing"`
		RatingDistribution []models.RatingBucket `json:"ratingDistribution"`
	}
	helpers.ParseJSON(t, resp, &profile)
	if !profile.IsFollowing {
		t.Error("Chris follows Mary in the seed data")
	}
	if len(profile.RatingDistribution) != 5 {
		t.Fatalf("Expected 5 rating buckets, got %d", len(profile.RatingDistribution))
	}
	if profile.RatingDistribution[0].Count != 1 || profile.RatingDistribution[1].Count != 1 {
		t.Errorf("Unexpected distribution: %+v", profile.RatingDistribution)
	}

	resp = doRequest(t, app, http.MethodGet, "/api/users/user-000", "", token)
	helpers.AssertStatus(t, resp, http.StatusNotFound)

	// Follow and unfollow Frank
	resp = doRequest(t, app, http.MethodPost, "/api/users/user-789/follow", "", token)
	helpers.AssertStatus(t, resp, http.StatusOK)
	resp = doRequest(t, app, http.MethodGet, "/api/users/user-789", "", token)
	helpers.ParseJSON(t, resp, &profile)
	if !profile.IsFollowing {
		t.Error("Expected follow to stick")
	}
	resp = doRequest(t, app, http.MethodDelete, "/api/users/user-789/follow", "", token)
	helpers.AssertStatus(t, resp, http.StatusOK)

	resp = doRequest(t, app, http.MethodPost, "/api/users/user-000/follow", "", token)
	helpers.AssertStatus(t, resp, http.StatusNotFound)
}

func TestFeed(t *testing.T) {
	app := newTestApp(t)
	token := loginAs(t, app, "chris@example.com")

	resp := doRequest(t, app, http.MethodGet, "/api/feed", "", token)
	helpers.AssertStatus(t, resp, http.StatusOK)
	var feed []models.Review
	helpers.ParseJSON(t, resp, &feed)
	if len(feed) != 2 {
		t.Fatalf("Expected Mary's 2 seeded reviews, got %d", len(feed))
	}
	if feed[0].Timestamp < feed[1].Timestamp {
		t.Error("Expected newest review first")
	}
}

func TestWatchlist(t *testing.T) {
	app := newTestApp(t)
	token := loginAs(t, app, "chris@example.com")

	resp := doRequest(t, app, http.MethodPost, "/api/watchlist", `{"id":"mock-3","title":"The Dark Knight","genre":"Action"}`, token)
	helpers.AssertStatus(t, resp, http.StatusOK)

	resp = doRequest(t, app, http.MethodGet, "/api/users/user-123", "", token)
	var profile struct {
		User models.User `json:"user"`
	}
	helpers.ParseJSON(t, resp, &profile)
	if len(profile.User.Watchlist) != 1 || profile.User.Watchlist[0].ID != "mock-3" {
		t.Fatalf("Expected mock-3 on watchlist, got %+v", profile.User.Watchlist)
	}

	resp = doRequest(t, app, http.MethodPost, "/api/watchlist", `{}`, token)
	helpers.AssertStatus(t, resp, http.StatusBadRequest)

	resp = doRequest(t, app, http.MethodDelete, "/api/watchlist/mock-3", "", token)
	helpers.AssertStatus(t, resp, http.StatusOK)

	resp = doRequest(t, app, http.MethodGet, "/api/users/user-123", "", token)
	helpers.ParseJSON(t, resp, &profile)
	if len(profile.User.Watchlist) != 0 {
		t.Errorf("Expected empty watchlist, got %+v", profile.User.Watchlist)
	}
}

func TestAdminRoster(t *testing.T) {
	app := newTestApp(t)
	token := loginAs(t, app, "frank@example.com")

	resp := doRequest(t, app, http.MethodGet, "/api/admin/users", "", token)
	helpers.AssertStatus(t, resp, http.StatusOK)
	var users []models.User
	helpers.ParseJSON(t, resp, &users)
	if len(users) != 3 {
		t.Fatalf("Expected 3 users, got %d", len(users))
	}

	// Self-removal is rejected
	resp = doRequest(t, app, http.MethodDelete, "/api/admin/users/user-789", "", token)
	helpers.AssertStatus(t, resp, http.StatusBadRequest)

	resp = doRequest(t, app, http.MethodDelete, "/api/admin/users/user-456", "", token)
	helpers.AssertStatus(t, resp, http.StatusOK)

	resp = doRequest(t, app, http.MethodGet, "/api/admin/users", "", token)
	helpers.ParseJSON(t, resp, &users)
	if len(users) != 2 {
		t.Errorf("Expected 2 users after removal, got %d", len(users))
	}

	resp = doRequest(t, app, http.MethodDelete, "/api/admin/users/user-000", "", token)
	helpers.AssertStatus(t, resp, http.StatusNotFound)
}

func TestAdminCatalog(t *testing.T) {
	app := newTestApp(t)
	token := loginAs(t, app, "frank@example.com")

	// Populate the catalog first
	doRequest(t, app, http.MethodGet, "/api/movies", "", "")

	resp := doRequest(t, app, http.MethodPost, "/api/admin/movies", `{"title":"Fresh Release","genre":"Horror","releaseYear":2025,"director":"A. Director"}`, token)
	helpers.AssertStatus(t, resp, http.StatusCreated)
	var created models.Movie
	helpers.ParseJSON(t, resp, &created)
	if created.ID == "" || created.AverageRating != 0 || len(created.Reviews) != 0 {
		t.Errorf("Expected fresh record with generated id, got %+v", created)
	}

	// New movie leads the featured window
	resp = doRequest(t, app, http.MethodGet, "/api/movies/featured", "", "")
	var featured []models.Movie
	helpers.ParseJSON(t, resp, &featured)
	if len(featured) == 0 || featured[0].ID != created.ID {
		t.Errorf("Expected new movie at the head of featured, got %+v", featured)
	}

	// Validation
	resp = doRequest(t, app, http.MethodPost, "/api/admin/movies", `{"title":"","genre":"Horror"}`, token)
	helpers.AssertStatus(t, resp, http.StatusBadRequest)
	resp = doRequest(t, app, http.MethodPost, "/api/admin/movies", `{"title":"X","genre":"Documentary"}`, token)
	helpers.AssertStatus(t, resp, http.StatusBadRequest)

	// Removal purges every slice
	resp = doRequest(t, app, http.MethodDelete, "/api/admin/movies/"+created.ID, "", token)
	helpers.AssertStatus(t, resp, http.StatusOK)
	resp = doRequest(t, app, http.MethodGet, "/api/movies/featured", "", "")
	helpers.ParseJSON(t, resp, &featured)
	for _, m := range featured {
		if m.ID == created.ID {
			t.Error("Expected removed movie out of featured")
		}
	}
}

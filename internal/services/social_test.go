package services

import (
	"testing"
	"time"

	"github.com/rach2103/moviereview/internal/models"
)

func newRoster(t *testing.T) *SocialService {
	t.Helper()
	s, err := NewSocialService()
	if err != nil {
		t.Fatalf("Failed to seed roster: %v", err)
	}
	return s
}

func TestRosterSeed(t *testing.T) {
	s := newRoster(t)

	users := s.Users()
	if len(users) != 3 {
		t.Fatalf("Expected 3 seeded users, got %d", len(users))
	}

	admin, ok := s.UserByID("user-789")
	if !ok || !admin.IsAdmin() {
		t.Errorf("Expected user-789 to be the seeded admin")
	}

	if _, ok := s.UserByEmail("CHRIS@example.com"); !ok {
		t.Error("Expected email lookup to be case insensitive")
	}
	if _, ok := s.UserByID("user-000"); ok {
		t.Error("Expected unknown id to miss")
	}
}

func TestFollowSymmetry(t *testing.T) {
	s := newRoster(t)

	s.Follow("user-123", "user-789")
	if !s.IsFollowing("user-123", "user-789") {
		t.Fatal("Expected follow edge")
	}
	target, _ := s.UserByID("user-789")
	if !contains(target.Followers, "user-123") {
		t.Error("Expected mirrored followers entry")
	}

	// Idempotent
	actor, _ := s.UserByID("user-123")
	before := len(actor.Following)
	s.Follow("user-123", "user-789")
	actor, _ = s.UserByID("user-123")
	if len(actor.Following) != before {
		t.Error("Duplicate follow should not grow the set")
	}

	// Self-follow is a no-op
	s.Follow("user-123", "user-123")
	if s.IsFollowing("user-123", "user-123") {
		t.Error("Self-follow should be ignored")
	}

	s.Unfollow("user-123", "user-789")
	if s.IsFollowing("user-123", "user-789") {
		t.Error("Expected edge removed")
	}
	target, _ = s.UserByID("user-789")
	if contains(target.Followers, "user-123") {
		t.Error("Expected mirrored followers entry removed")
	}

	// Unfollowing a non-edge is a no-op
	s.Unfollow("user-123", "user-789")
}

func TestAddReview(t *testing.T) {
	s := newRoster(t)

	before, _ := s.UserByID("user-123")
	s.AddReview("user-123", "m-1", "First Movie", 5, "superb")

	after, _ := s.UserByID("user-123")
	if len(after.Reviews) != len(before.Reviews)+1 {
		t.Fatalf("Expected one more review, got %d", len(after.Reviews))
	}

	newest := after.Reviews[0]
	if newest.MovieID != "m-1" || newest.MovieTitle != "First Movie" {
		t.Errorf("Review not prepended: %+v", newest)
	}
	if newest.Username != "CinephileChris" || newest.UserID != "user-123" {
		t.Errorf("Expected denormalized author fields, got %+v", newest)
	}
	if _, err := time.Parse(time.RFC3339, newest.Timestamp); err != nil {
		t.Errorf("Expected RFC3339 timestamp, got %q", newest.Timestamp)
	}

	// Unknown user is silently ignored
	s.AddReview("user-000", "m-1", "First Movie", 5, "superb")
}

func TestWatchlist(t *testing.T) {
	s := newRoster(t)
	movie := models.Movie{ID: "m-9", Title: "Niner", Genre: "Action"}

	s.AddToWatchlist("user-123", movie)
	if !s.IsInWatchlist("user-123", "m-9") {
		t.Fatal("Expected movie on watchlist")
	}

	user, _ := s.UserByID("user-123")
	count := len(user.Watchlist)
	s.AddToWatchlist("user-123", movie)
	user, _ = s.UserByID("user-123")
	if len(user.Watchlist) != count {
		t.Error("Duplicate add should not grow the watchlist")
	}

	s.RemoveFromWatchlist("user-123", "m-9")
	if s.IsInWatchlist("user-123", "m-9") {
		t.Error("Expected movie removed from watchlist")
	}
}

func TestRemoveUserLeavesDanglingEdges(t *testing.T) {
	s := newRoster(t)

	s.Follow("user-123", "user-456")
	s.RemoveUser("user-456")

	if _, ok := s.UserByID("user-456"); ok {
		t.Fatal("Expected user removed")
	}

	// The peer's following set still holds the removed id
	actor, _ := s.UserByID("user-123")
	if !contains(actor.Following, "user-456") {
		t.Error("Expected dangling following entry to survive removal")
	}
}

func TestFeed(t *testing.T) {
	s := newRoster(t)

	s.Follow("user-123", "user-456")
	s.Follow("user-123", "user-789")
	s.AddReview("user-456", "m-1", "First", 4, "good")
	time.Sleep(1100 * time.Millisecond)
	s.AddReview("user-789", "m-2", "Second", 2, "meh")

	feed := s.Feed("user-123")
	if len(feed) < 2 {
		t.Fatalf("Expected at least 2 feed entries, got %d", len(feed))
	}
	if feed[0].MovieID != "m-2" {
		t.Errorf("Expected newest review first, got %+v", feed[0])
	}
	for i := 1; i < len(feed); i++ {
		if parseTimestamp(feed[i-1].Timestamp).Before(parseTimestamp(feed[i].Timestamp)) {
			t.Errorf("Feed out of order at %d", i)
		}
	}

	// Own reviews are not part of the feed
	s.AddReview("user-123", "m-3", "Third", 5, "mine")
	for _, r := range s.Feed("user-123") {
		if r.UserID == "user-123" {
			t.Error("Feed should only contain followed users' reviews")
		}
	}

	if got := s.Feed("user-000"); got != nil {
		t.Errorf("Expected nil feed for unknown user, got %v", got)
	}
}

func contains(set []string, id string) bool {
	for _, s := range set {
		if s == id {
			return true
		}
	}
	return false
}

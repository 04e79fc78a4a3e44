package services

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rach2103/moviereview/data"
	"github.com/rach2103/moviereview/internal/models"
)

// SocialService owns the user roster: per-user reviews, watchlists, and the
// follow graph. It is the sole mutator of User records. All operations are
// synchronous over in-memory state; invalid ids are silently ignored.
//
// The follow relation is kept symmetric by Follow/Unfollow only: for every
// A following B, B's followers contain A. RemoveUser does not cascade, so
// peer follow sets may hold ids of deleted users afterwards.
type SocialService struct {
	mu    sync.RWMutex
	users []models.User
}

// NewSocialService seeds the roster from the embedded user data.
func NewSocialService() (*SocialService, error) {
	var users []models.User
	if err := json.Unmarshal(data.SeedUsers, &users); err != nil {
		return nil, fmt.Errorf("failed to load seed roster: %w", err)
	}
	return &SocialService{users: users}, nil
}

// Users returns a copy of the full roster.
func (s *SocialService) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.User, len(s.users))
	for i, u := range s.users {
		out[i] = u.Clone()
	}
	return out
}

// UserByID returns a copy of the user with the given id.
func (s *SocialService) UserByID(id string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.users[i].Clone(), true
	}
	return models.User{}, false
}

// UserByEmail returns a copy of the user with the given email,
// case-insensitively. Used by the mock login.
func (s *SocialService) UserByEmail(email string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u.Clone(), true
		}
	}
	return models.User{}, false
}

// Follow adds the directed edge actor -> target and its mirror entry in the
// target's followers. Self-follows are no-ops and duplicate calls are
// idempotent.
func (s *SocialService) Follow(actorID, targetID string) {
	if actorID == targetID {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(actorID); i >= 0 {
		s.users[i].Following = addToSet(s.users[i].Following, targetID)
	}
	if i := s.indexOf(targetID); i >= 0 {
		s.users[i].Followers = addToSet(s.users[i].Followers, actorID)
	}
}

// Unfollow removes both halves of the edge; a no-op if it did not exist.
func (s *SocialService) Unfollow(actorID, targetID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(actorID); i >= 0 {
		s.users[i].Following = removeFromSet(s.users[i].Following, targetID)
	}
	if i := s.indexOf(targetID); i >= 0 {
		s.users[i].Followers = removeFromSet(s.users[i].Followers, actorID)
	}
}

// IsFollowing reports whether actor follows target.
func (s *SocialService) IsFollowing(actorID, targetID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(actorID)
	if i < 0 {
		return false
	}
	for _, id := range s.users[i].Following {
		if id == targetID {
			return true
		}
	}
	return false
}

// AddReview stamps the acting user's id and username plus the current time
// onto the review and prepends it to that user's list. Silently ignored
// when the user id does not resolve.
func (s *SocialService) AddReview(userID, movieID, movieTitle string, rating int, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(userID)
	if i < 0 {
		return
	}

	review := models.Review{
		UserID:     s.users[i].ID,
		Username:   s.users[i].Username,
		MovieID:    movieID,
		MovieTitle: movieTitle,
		Rating:     rating,
		Text:       text,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
	s.users[i].Reviews = append([]models.Review{review}, s.users[i].Reviews...)
}

// AddToWatchlist inserts a movie snapshot keyed by movie id; adding the
// same movie twice does not duplicate it.
func (s *SocialService) AddToWatchlist(userID string, movie models.Movie) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(userID)
	if i < 0 {
		return
	}
	for _, m := range s.users[i].Watchlist {
		if m.ID == movie.ID {
			return
		}
	}
	s.users[i].Watchlist = append(s.users[i].Watchlist, movie.Clone())
}

// RemoveFromWatchlist removes the entry with the given movie id, if present.
func (s *SocialService) RemoveFromWatchlist(userID, movieID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(userID)
	if i < 0 {
		return
	}
	kept := s.users[i].Watchlist[:0]
	for _, m := range s.users[i].Watchlist {
		if m.ID != movieID {
			kept = append(kept, m)
		}
	}
	s.users[i].Watchlist = kept
}

// IsInWatchlist reports whether the user's watchlist holds the movie id.
func (s *SocialService) IsInWatchlist(userID, movieID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(userID)
	if i < 0 {
		return false
	}
	for _, m := range s.users[i].Watchlist {
		if m.ID == movieID {
			return true
		}
	}
	return false
}

// RemoveUser deletes the record outright. Follow edges pointing at the
// removed user are left dangling in peer following/followers sets.
func (s *SocialService) RemoveUser(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(userID)
	if i < 0 {
		return
	}
	s.users = append(s.users[:i], s.users[i+1:]...)
}

// Feed returns the reviews of every user the given user follows, newest
// first.
func (s *SocialService) Feed(userID string) []models.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(userID)
	if i < 0 {
		return nil
	}
	followed := make(map[string]struct{}, len(s.users[i].Following))
	for _, id := range s.users[i].Following {
		followed[id] = struct{}{}
	}

	var feed []models.Review
	for _, u := range s.users {
		if _, ok := followed[u.ID]; ok {
			feed = append(feed, u.Reviews...)
		}
	}

	sort.SliceStable(feed, func(a, b int) bool {
		return parseTimestamp(feed[a].Timestamp).After(parseTimestamp(feed[b].Timestamp))
	})
	return feed
}

func (s *SocialService) indexOf(id string) int {
	for i := range s.users {
		if s.users[i].ID == id {
			return i
		}
	}
	return -1
}

func addToSet(set []string, id string) []string {
	for _, existing := range set {
		if existing == id {
			return set
		}
	}
	return append(set, id)
}

func removeFromSet(set []string, id string) []string {
	for i, existing := range set {
		if existing == id {
			return append(set[:i], set[i+1:]...)
		}
	}
	return set
}

func parseTimestamp(ts string) time.Time {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return time.Time{}
	}
	return t
}

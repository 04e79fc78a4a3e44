package services

import (
	"context"
	"sync"

	"github.com/rach2103/moviereview/internal/ai"
	"github.com/rach2103/moviereview/internal/models"
)

const (
	featuredWindow    = 10
	trendingWindow    = 20
	featuredCapacity  = 6
	favoriteThreshold = 4
)

// CatalogService holds the browsing state fed by the content provider:
// the main movie list, the featured/trending windows carved out of it,
// the currently selected movie, and recommendations. Provider calls run
// outside the lock; only state swaps are guarded.
type CatalogService struct {
	mu          sync.RWMutex
	provider    *ai.Provider
	movies      []models.Movie
	featured    []models.Movie
	trending    []models.Movie
	recommended []models.Movie
	current     *models.Movie
	sources     []models.GroundingSource
	loading     bool
	errMsg      string
}

// NewCatalogService returns an empty catalog backed by the given provider.
func NewCatalogService(provider *ai.Provider) *CatalogService {
	return &CatalogService{provider: provider}
}

// FetchMovies replaces the movie list with the provider's result. An
// unfiltered fetch also repartitions the featured window (first ten) and
// the trending window (the following ten); a genre or search fetch leaves
// both windows as they were. A cancelled or timed-out context surfaces as
// the store error message.
func (c *CatalogService) FetchMovies(ctx context.Context, genre, searchTerm string) {
	c.mu.Lock()
	c.loading = true
	c.errMsg = ""
	c.mu.Unlock()

	movies := c.provider.ListMovies(ctx, genre, searchTerm)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false

	if ctx.Err() != nil {
		c.errMsg = "Failed to fetch movies. Please try again later."
		return
	}

	c.movies = movies
	if genre != "" || searchTerm != "" {
		return
	}
	c.featured = movies[:min(featuredWindow, len(movies))]
	if len(movies) > featuredWindow {
		c.trending = movies[featuredWindow:min(trendingWindow, len(movies))]
	} else {
		c.trending = nil
	}
}

// FetchMovieByID loads the detail view for a single movie, along with any
// grounding sources the provider surfaced for it.
func (c *CatalogService) FetchMovieByID(ctx context.Context, id, title string) {
	c.mu.Lock()
	c.loading = true
	c.errMsg = ""
	c.current = nil
	c.sources = nil
	c.mu.Unlock()

	movie, sources := c.provider.MovieDetail(ctx, id, title)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false

	if ctx.Err() != nil {
		c.errMsg = "Failed to fetch movie details. Please try again later."
		return
	}
	c.current = movie
	c.sources = sources
}

// ClearCurrentMovie drops the detail selection and its sources.
func (c *CatalogService) ClearCurrentMovie() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = nil
	c.sources = nil
}

// FetchRecommendations derives the user's taste and asks the provider for
// picks. Favorite genres come from the genres of loaded catalog movies the
// user rated four stars or higher, plus watchlist genres; seen titles are
// everything reviewed or watchlisted. With no derivable genres the call is
// skipped entirely.
func (c *CatalogService) FetchRecommendations(ctx context.Context, user models.User) {
	genres, seen := c.deriveTaste(user)
	if len(genres) == 0 {
		return
	}

	c.mu.Lock()
	c.loading = true
	c.errMsg = ""
	c.mu.Unlock()

	picks := c.provider.Recommend(ctx, genres, seen)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	c.recommended = picks
}

func (c *CatalogService) deriveTaste(user models.User) (genres, seen []string) {
	c.mu.RLock()
	byID := make(map[string]string, len(c.movies))
	for _, m := range c.movies {
		byID[m.ID] = m.Genre
	}
	c.mu.RUnlock()

	genreSet := make(map[string]struct{})
	for _, r := range user.Reviews {
		if r.Rating < favoriteThreshold {
			continue
		}
		if genre, ok := byID[r.MovieID]; ok {
			genreSet[genre] = struct{}{}
		}
	}
	for _, m := range user.Watchlist {
		if m.Genre != "" {
			genreSet[m.Genre] = struct{}{}
		}
	}

	seenSet := make(map[string]struct{})
	for _, r := range user.Reviews {
		seenSet[r.MovieTitle] = struct{}{}
	}
	for _, m := range user.Watchlist {
		seenSet[m.Title] = struct{}{}
	}

	for g := range genreSet {
		genres = append(genres, g)
	}
	for t := range seenSet {
		seen = append(seen, t)
	}
	return genres, seen
}

// AddMovie front-inserts into the main list and the featured window. The
// featured window is capped at six entries; the main list is unbounded.
// Trending is not touched.
func (c *CatalogService) AddMovie(movie models.Movie) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.movies = append([]models.Movie{movie}, c.movies...)
	featured := append([]models.Movie{movie}, c.featured...)
	if len(featured) > featuredCapacity {
		featured = featured[:featuredCapacity]
	}
	c.featured = featured
}

// RemoveMovie purges the id from every catalog slice.
func (c *CatalogService) RemoveMovie(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.movies = withoutMovie(c.movies, id)
	c.featured = withoutMovie(c.featured, id)
	c.trending = withoutMovie(c.trending, id)
	c.recommended = withoutMovie(c.recommended, id)
}

// Movies returns a copy of the current main list.
func (c *CatalogService) Movies() []models.Movie {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneMovies(c.movies)
}

// Featured returns a copy of the featured window.
func (c *CatalogService) Featured() []models.Movie {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneMovies(c.featured)
}

// Trending returns a copy of the trending window.
func (c *CatalogService) Trending() []models.Movie {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneMovies(c.trending)
}

// Recommended returns a copy of the latest recommendations.
func (c *CatalogService) Recommended() []models.Movie {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneMovies(c.recommended)
}

// CurrentMovie returns a copy of the detail selection and its grounding
// sources, or nil when nothing is selected.
func (c *CatalogService) CurrentMovie() (*models.Movie, []models.GroundingSource) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.current == nil {
		return nil, nil
	}
	clone := c.current.Clone()
	return &clone, append([]models.GroundingSource(nil), c.sources...)
}

// MovieByID looks the id up in the loaded main list.
func (c *CatalogService) MovieByID(id string) (models.Movie, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, m := range c.movies {
		if m.ID == id {
			return m.Clone(), true
		}
	}
	return models.Movie{}, false
}

// IsLoading reports whether a fetch is in flight.
func (c *CatalogService) IsLoading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// Err returns the last fetch error message, empty when none.
func (c *CatalogService) Err() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.errMsg
}

func withoutMovie(movies []models.Movie, id string) []models.Movie {
	if movies == nil {
		return nil
	}
	kept := make([]models.Movie, 0, len(movies))
	for _, m := range movies {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	return kept
}

func cloneMovies(movies []models.Movie) []models.Movie {
	out := make([]models.Movie, len(movies))
	for i, m := range movies {
		out[i] = m.Clone()
	}
	return out
}

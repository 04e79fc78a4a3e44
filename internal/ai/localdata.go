package ai

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rach2103/moviereview/data"
	"github.com/rach2103/moviereview/internal/models"
)

// localDataset is the embedded movie set used when no content service
// credential is configured. Filtering matches the live path's contract:
// exact genre match, case-insensitive substring title match.
type localDataset struct {
	movies []models.Movie
}

func loadLocalDataset() (*localDataset, error) {
	var movies []models.Movie
	if err := json.Unmarshal(data.FallbackMovies, &movies); err != nil {
		return nil, fmt.Errorf("failed to load fallback movie dataset: %w", err)
	}
	return &localDataset{movies: movies}, nil
}

func (d *localDataset) list(genre, searchTerm string) []models.Movie {
	filtered := make([]models.Movie, 0, len(d.movies))
	for _, m := range d.movies {
		if genre != "" && m.Genre != genre {
			continue
		}
		if searchTerm != "" && !strings.Contains(strings.ToLower(m.Title), strings.ToLower(searchTerm)) {
			continue
		}
		filtered = append(filtered, m.Clone())
	}
	return filtered
}

func (d *localDataset) detail(id, title string) *models.Movie {
	for _, m := range d.movies {
		if m.ID == id || m.Title == title {
			detail := m.Clone()
			detail.TrailerURL = "https://www.youtube.com/embed/dQw4w9WgXcQ"
			now := time.Now().UTC()
			detail.Reviews = []models.Review{
				{
					UserID:    "user-123",
					Username:  "CinephileChris",
					Rating:    5,
					Text:      "Absolutely incredible movie! A true masterpiece.",
					Timestamp: now.Format(time.RFC3339),
				},
				{
					UserID:    "user-456",
					Username:  "MovieMavenMary",
					Rating:    4,
					Text:      "Great film with excellent performances.",
					Timestamp: now.Add(-24 * time.Hour).Format(time.RFC3339),
				},
			}
			return &detail
		}
	}
	return nil
}

func (d *localDataset) recommend(favoriteGenres, seenTitles []string) []models.Movie {
	genres := make(map[string]struct{}, len(favoriteGenres))
	for _, g := range favoriteGenres {
		genres[g] = struct{}{}
	}
	seen := make(map[string]struct{}, len(seenTitles))
	for _, t := range seenTitles {
		seen[t] = struct{}{}
	}

	var recs []models.Movie
	for _, m := range d.movies {
		if _, ok := genres[m.Genre]; !ok {
			continue
		}
		if _, ok := seen[m.Title]; ok {
			continue
		}
		recs = append(recs, m.Clone())
		if len(recs) == maxRecommendations {
			break
		}
	}
	return recs
}

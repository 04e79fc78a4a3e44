package ai

import (
	"github.com/rach2103/moviereview/internal/models"
	"github.com/rach2103/moviereview/internal/types"
)

// wireMovie is the decode target for generated movie records. Numeric
// fields use FlexInt because the service quotes numbers often enough that
// strict decoding would throw away otherwise usable replies.
type wireMovie struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Genre         string        `json:"genre"`
	ReleaseYear   types.FlexInt `json:"releaseYear"`
	Director      string        `json:"director"`
	Cast          []string      `json:"cast"`
	Synopsis      string        `json:"synopsis"`
	PosterURL     string        `json:"posterUrl"`
	AverageRating float64       `json:"averageRating"`
	TrailerURL    string        `json:"trailerUrl"`
	Reviews       []wireReview  `json:"reviews"`
	Sources       []wireSource  `json:"sources"`
}

// wireSource is a citation the service attaches to a detail payload.
type wireSource struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

type wireReview struct {
	UserID    string        `json:"userId"`
	Username  string        `json:"username"`
	Rating    types.FlexInt `json:"rating"`
	Text      string        `json:"text"`
	Timestamp string        `json:"timestamp"`
}

func (w wireMovie) toModel() models.Movie {
	m := models.Movie{
		ID:            w.ID,
		Title:         w.Title,
		Genre:         w.Genre,
		ReleaseYear:   w.ReleaseYear.Int(),
		Director:      w.Director,
		Cast:          w.Cast,
		Synopsis:      w.Synopsis,
		PosterURL:     w.PosterURL,
		AverageRating: w.AverageRating,
		TrailerURL:    w.TrailerURL,
	}
	for _, r := range w.Reviews {
		m.Reviews = append(m.Reviews, models.Review{
			UserID:    r.UserID,
			Username:  r.Username,
			Rating:    r.Rating.Int(),
			Text:      r.Text,
			Timestamp: r.Timestamp,
		})
	}
	return m
}

func (w wireMovie) groundingSources() []models.GroundingSource {
	var sources []models.GroundingSource
	for _, s := range w.Sources {
		if s.URI == "" {
			continue
		}
		sources = append(sources, models.GroundingSource{URI: s.URI, Title: s.Title})
	}
	return sources
}

func wireMoviesToModels(wires []wireMovie) []models.Movie {
	movies := make([]models.Movie, 0, len(wires))
	for _, w := range wires {
		movies = append(movies, w.toModel())
	}
	return movies
}

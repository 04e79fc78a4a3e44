package ai

import (
	"context"
	"log"

	"github.com/rach2103/moviereview/internal/config"
	"github.com/rach2103/moviereview/internal/models"
	"github.com/rach2103/moviereview/internal/types"
)

const maxRecommendations = 6

// ReviewAck is the content service's acknowledgement of a submitted review.
// The new average rating is fabricated by the service; persistence of the
// review itself is the caller's responsibility.
type ReviewAck struct {
	Success          bool    `json:"success"`
	NewAverageRating float64 `json:"newAverageRating"`
}

// Provider translates catalog operations into content-service prompts and
// parses the replies into typed records. Every operation absorbs transport
// and parse failures: callers receive empty or zero values, never errors.
// Built without a Generator it runs in degraded mode against the embedded
// dataset, producing the same result shapes as the live path.
type Provider struct {
	gen   Generator
	local *localDataset
}

// NewProvider builds a Provider from configuration. Without a content
// service credential it runs in degraded mode.
func NewProvider(cfg *config.Config) (*Provider, error) {
	local, err := loadLocalDataset()
	if err != nil {
		return nil, err
	}

	var gen Generator
	if cfg.AIConfigured() {
		gen = NewOpenAIGenerator(cfg)
	} else {
		log.Printf("No content service credential configured, running in degraded mode")
	}

	return &Provider{gen: gen, local: local}, nil
}

// NewProviderWithGenerator builds a Provider around an explicit Generator.
func NewProviderWithGenerator(gen Generator) (*Provider, error) {
	local, err := loadLocalDataset()
	if err != nil {
		return nil, err
	}
	return &Provider{gen: gen, local: local}, nil
}

// Degraded reports whether the provider answers from the embedded dataset.
func (p *Provider) Degraded() bool {
	return p.gen == nil
}

// ListMovies fetches a movie listing, optionally filtered by genre or a
// title search term. Failures yield an empty slice.
func (p *Provider) ListMovies(ctx context.Context, genre, searchTerm string) []models.Movie {
	if p.gen == nil {
		return p.local.list(genre, searchTerm)
	}

	text, err := p.gen.Generate(ctx, listMoviesPrompt(genre, searchTerm))
	if err != nil {
		log.Printf("Error fetching movies from content service: %v", err)
		return []models.Movie{}
	}

	parsed := parseJSONResponse(text, types.FlexList[wireMovie](nil))
	return wireMoviesToModels(parsed.value.Slice())
}

// MovieDetail fetches a single movie with fabricated reviews plus the web
// citations the service embedded in the payload. Transport failures and
// unparsable replies both yield (nil, nil).
func (p *Provider) MovieDetail(ctx context.Context, id, title string) (*models.Movie, []models.GroundingSource) {
	if p.gen == nil {
		return p.local.detail(id, title), nil
	}

	text, err := p.gen.Generate(ctx, movieDetailPrompt(id, title))
	if err != nil {
		log.Printf("Error fetching movie details from content service: %v", err)
		return nil, nil
	}

	parsed := parseJSONResponse[*wireMovie](text, nil)
	if parsed.value == nil {
		return nil, nil
	}
	movie := parsed.value.toModel()
	return &movie, parsed.value.groundingSources()
}

// SubmitReview sends the review content to the service and asks for a
// fabricated updated average rating. It does not persist anything.
func (p *Provider) SubmitReview(ctx context.Context, movieID string, rating int, text string) ReviewAck {
	if p.gen == nil {
		return ReviewAck{Success: true, NewAverageRating: 4.2}
	}

	reply, err := p.gen.GenerateJSON(ctx, submitReviewPrompt(movieID, rating, text), "review_ack", ReviewAck{})
	if err != nil {
		log.Printf("Error submitting review to content service: %v", err)
		return ReviewAck{}
	}

	return parseJSONResponse(reply, ReviewAck{}).value
}

// Recommend fetches up to six recommendations within the favorite genres,
// excluding already-seen titles.
func (p *Provider) Recommend(ctx context.Context, favoriteGenres, seenTitles []string) []models.Movie {
	if p.gen == nil {
		return p.local.recommend(favoriteGenres, seenTitles)
	}

	text, err := p.gen.Generate(ctx, recommendPrompt(favoriteGenres, seenTitles))
	if err != nil {
		log.Printf("Error fetching recommendations from content service: %v", err)
		return []models.Movie{}
	}

	parsed := parseJSONResponse(text, types.FlexList[wireMovie](nil))
	return wireMoviesToModels(parsed.value.Slice())
}

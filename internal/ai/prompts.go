package ai

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/rach2103/moviereview/internal/models"
)

const movieObjectShape = `a JSON object with these exact keys: "id" (a unique UUID string), "title" (string), "genre" (string from the list: %s), "releaseYear" (integer), "director" (string), "cast" (array of strings), "synopsis" (a 2-3 sentence string), "posterUrl" (a placeholder image URL from https://picsum.photos/500/750), and "averageRating" (a float between 1.0 and 5.0)`

func listMoviesPrompt(genre, searchTerm string) string {
	shape := fmt.Sprintf(movieObjectShape, strings.Join(models.Genres, ", "))

	switch {
	case searchTerm != "":
		return fmt.Sprintf(`Generate a JSON array of 50 real movies with titles related to %q. For each movie, create %s. The output must be only the JSON array, with no other text or markdown.`, searchTerm, shape)
	case genre != "":
		return fmt.Sprintf(`Generate a JSON array of 50 real, popular, and high-quality movies in the %q genre. For each movie, create %s. The output must be only the JSON array, with no other text or markdown.`, genre, shape)
	default:
		return fmt.Sprintf(`Generate a JSON array of 50 real, popular, and high-quality movies from a variety of genres. For each movie, create %s. The output must be only the JSON array, with no other text or markdown.`, shape)
	}
}

func movieDetailPrompt(id, title string) string {
	return fmt.Sprintf(`Generate a detailed JSON object for the real movie titled %q with id %q. Find the correct director, cast, release year, synopsis, and genre for this movie. The JSON object must have these exact keys: "id", "title", "genre", "releaseYear", "director", "cast", "synopsis", "posterUrl" (use https://picsum.photos/500/750?random=%d), "averageRating" (a plausible float between 1.0 and 5.0), "trailerUrl" (a valid YouTube embed URL), "reviews" (an array of 5 realistic but fictional user reviews), and "sources" (an array of 1-3 real web pages about this movie, each with "uri" and "title"). Each review object needs: "userId" (unique UUID), "username", "rating" (1-5), "text", and "timestamp" (ISO 8601). The output must be only the JSON object, with no other text or markdown.`, title, id, rand.Intn(100))
}

func submitReviewPrompt(movieID string, rating int, text string) string {
	return fmt.Sprintf(`A user submitted a review for movie ID %s. The review is: rating %d, text %q. Acknowledge this by returning a JSON object with 'success: true' and a plausible new 'newAverageRating' for the movie. The previous average rating was 4.2.`, movieID, rating, text)
}

func recommendPrompt(favoriteGenres, seenTitles []string) string {
	return fmt.Sprintf(`Based on a user's favorite movie genres which are [%s], please recommend 6 unique and interesting real movies they might enjoy. Do not include any of the following movies they have already seen or have on their watchlist: [%s]. Return the answer as a JSON array of movie objects. Each object must have these exact keys: "id" (a unique UUID string), "title" (string), "genre" (string), "releaseYear" (integer), "director" (string), "cast" (array of strings), "synopsis" (a 2-3 sentence string), "posterUrl" (a placeholder image URL from https://picsum.photos/500/750), and "averageRating" (a float between 1.0 and 5.0). The output must be only the JSON array, with no other text or markdown.`,
		strings.Join(favoriteGenres, ", "), strings.Join(seenTitles, ", "))
}

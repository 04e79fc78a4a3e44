package models

// Genres is the fixed list of catalog genres. Content requests and the
// degraded-mode dataset both draw from this list.
var Genres = []string{"Action", "Comedy", "Drama", "Sci-Fi", "Horror", "Thriller", "Romance", "Animation"}

// ValidGenre reports whether g is one of the fixed catalog genres.
func ValidGenre(g string) bool {
	for _, genre := range Genres {
		if genre == g {
			return true
		}
	}
	return false
}

// Movie is a catalog entry. Listing results omit Reviews; a detail fetch
// fills them in along with the optional TrailerURL.
type Movie struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Genre         string   `json:"genre"`
	ReleaseYear   int      `json:"releaseYear"`
	Director      string   `json:"director"`
	Cast          []string `json:"cast"`
	Synopsis      string   `json:"synopsis"`
	PosterURL     string   `json:"posterUrl"`
	AverageRating float64  `json:"averageRating"`
	TrailerURL    string   `json:"trailerUrl,omitempty"`
	Reviews       []Review `json:"reviews,omitempty"`
}

// GroundingSource is a web citation attached to AI-generated movie detail.
type GroundingSource struct {
	URI   string `json:"uri,omitempty"`
	Title string `json:"title,omitempty"`
}

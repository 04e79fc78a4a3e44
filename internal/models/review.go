package models

// Review is an immutable user review. Username and MovieTitle are
// denormalized at write time and never looked up again.
type Review struct {
	UserID     string `json:"userId"`
	Username   string `json:"username"`
	MovieID    string `json:"movieId,omitempty"`
	MovieTitle string `json:"movieTitle,omitempty"`
	Rating     int    `json:"rating"`
	Text       string `json:"text"`
	Timestamp  string `json:"timestamp"`
}

// RatingBucket is one bar of a rating distribution, e.g. {"5 Star", 12}.
type RatingBucket struct {
	Rating string `json:"rating"`
	Count  int    `json:"count"`
}

// RatingDistribution counts reviews per star rating, 5 stars first.
// Ratings outside 1..5 are ignored.
func RatingDistribution(reviews []Review) []RatingBucket {
	counts := [6]int{}
	for _, r := range reviews {
		if r.Rating >= 1 && r.Rating <= 5 {
			counts[r.Rating]++
		}
	}

	buckets := make([]RatingBucket, 0, 5)
	for rating := 5; rating >= 1; rating-- {
		buckets = append(buckets, RatingBucket{
			Rating: ratingLabel(rating),
			Count:  counts[rating],
		})
	}
	return buckets
}

func ratingLabel(rating int) string {
	return map[int]string{1: "1 Star", 2: "2 Star", 3: "3 Star", 4: "4 Star", 5: "5 Star"}[rating]
}

package models

// Candidate is an external lookup result normalized into one internal shape.
// Search results and detail records use different provider fields for the same
// concepts; the omdb package maps both into this struct at the boundary.
type Candidate struct {
	ID          string   `json:"id"` // IMDb id, e.g. tt0133093
	ContentType string   `json:"content_type"`
	Title       string   `json:"title"`
	ReleaseYear string   `json:"release_year,omitempty"` // raw, may be a range like "2019-2020"
	Genre       string   `json:"genre,omitempty"`        // comma-separated
	Director    string   `json:"director,omitempty"`
	Actors      string   `json:"actors,omitempty"` // comma-separated
	Plot        string   `json:"plot,omitempty"`
	PosterURL   string   `json:"poster_url,omitempty"`
	Rating      *float64 `json:"imdb_rating,omitempty"`
	Runtime     *int     `json:"runtime,omitempty"` // minutes
}

// SearchResult is a page of candidates from the metadata provider.
type SearchResult struct {
	Results      []Candidate `json:"results"`
	TotalResults int         `json:"total_results"`
	Page         int         `json:"page"`
}

// ScoredRecommendation is a candidate ranked against the user's taste profile.
type ScoredRecommendation struct {
	Candidate
	SimilarityScore float64 `json:"similarity_score"`
	MatchReason     string  `json:"match_reason"`
}

// RecommendationResponse wraps the ranked recommendation list.
type RecommendationResponse struct {
	Recommendations []ScoredRecommendation `json:"recommendations"`
	Count           int                    `json:"count"`
	Message         string                 `json:"message,omitempty"`
}

// ReviewResponse is the AI-generated review payload.
type ReviewResponse struct {
	MovieID         int      `json:"movie_id"`
	MovieTitle      string   `json:"movie_title"`
	GeneratedReview string   `json:"generated_review"`
	UserComments    string   `json:"user_comments"`
	UserRating      *float64 `json:"user_rating,omitempty"`
}

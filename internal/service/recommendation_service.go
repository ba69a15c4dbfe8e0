package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/Vigneswer/MovieMate/internal/models"
)

const (
	genreSearchLimit    = 4
	keywordSearchLimit  = 5
	directorSearchLimit = 2

	resultsPerGenre    = 8
	resultsPerKeyword  = 5
	resultsPerDirector = 5

	candidatePoolCap = 30

	// relevanceFloor filters out candidates with only incidental overlap;
	// the comparison is strictly greater-than.
	relevanceFloor = 0.2
)

// MetadataClient is the slice of the metadata lookup client the engine uses.
type MetadataClient interface {
	SearchMovies(query string, page int) (*models.SearchResult, error)
	GetMovieDetails(imdbID string) (*models.Candidate, error)
	Close()
}

// CollectionLister provides the full collection snapshot for profiling.
type CollectionLister interface {
	ListAll() ([]models.Movie, error)
}

// RecommendationService generates content-based recommendations by profiling
// the collection and ranking external candidates against the profile.
type RecommendationService struct {
	collection CollectionLister
	newClient  func() MetadataClient
}

// NewRecommendationService creates a RecommendationService. newClient is called
// once per recommendation run; the returned client is closed when the run ends.
func NewRecommendationService(collection CollectionLister, newClient func() MetadataClient) *RecommendationService {
	return &RecommendationService{
		collection: collection,
		newClient:  newClient,
	}
}

// Recommend profiles the collection, discovers candidates through the metadata
// provider and returns up to count scored recommendations, best first.
// An empty collection yields an empty list without any provider calls. The run
// stops between provider calls if ctx is canceled.
func (s *RecommendationService) Recommend(ctx context.Context, count int) ([]models.ScoredRecommendation, error) {
	all, err := s.collection.ListAll()
	if err != nil {
		return nil, fmt.Errorf("load collection: %w", err)
	}

	slog.Info("starting recommendation generation", "count", count, "collection_size", len(all))
	if len(all) == 0 {
		return []models.ScoredRecommendation{}, nil
	}

	// Preferences come from watched content; fall back to everything when the
	// collection is all wishlist.
	basis := make([]models.Movie, 0, len(all))
	for _, m := range all {
		if m.Status == models.StatusCompleted || m.Status == models.StatusWatching {
			basis = append(basis, m)
		}
	}
	if len(basis) == 0 {
		basis = all
	}

	profile := analyzePreferences(basis)
	slog.Info("derived preference profile",
		"top_genres", profile.TopGenres,
		"year_range", []int{profile.YearMin, profile.YearMax},
		"top_keywords", profile.TopKeywords)

	// Exclude anything already in the collection, by title and by external id.
	existingTitles := make(map[string]struct{}, len(all))
	existingIDs := make(map[string]struct{})
	for _, m := range all {
		existingTitles[strings.ToLower(m.Title)] = struct{}{}
		if m.IMDBId != "" {
			existingIDs[m.IMDBId] = struct{}{}
		}
	}

	client := s.newClient()
	defer client.Close()

	var pool []models.Candidate
	searched := make(map[string]struct{})

	discover := func(query string, keep int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if query == "" {
			return nil
		}
		if _, done := searched[query]; done {
			return nil
		}
		searched[query] = struct{}{}

		result, err := client.SearchMovies(query, 1)
		if err != nil {
			return fmt.Errorf("search %q: %w", query, err)
		}

		results := result.Results
		if len(results) > keep {
			results = results[:keep]
		}
		for _, candidate := range results {
			if _, owned := existingTitles[strings.ToLower(candidate.Title)]; owned {
				continue
			}
			if _, owned := existingIDs[candidate.ID]; owned {
				continue
			}
			pool = append(pool, candidate)
		}
		return nil
	}

	// Strategy 1: top genres
	for _, genre := range headOf(profile.TopGenres, genreSearchLimit) {
		if err := discover(genre, resultsPerGenre); err != nil {
			return nil, err
		}
	}
	// Strategy 2: top plot keywords
	for _, keyword := range headOf(profile.TopKeywords, keywordSearchLimit) {
		if err := discover(keyword, resultsPerKeyword); err != nil {
			return nil, err
		}
	}
	// Strategy 3: favorite directors
	for _, director := range headOf(profile.TopDirectors, directorSearchLimit) {
		if err := discover(director, resultsPerDirector); err != nil {
			return nil, err
		}
	}

	// Deduplicate by external id, first occurrence wins.
	seen := make(map[string]struct{}, len(pool))
	unique := make([]models.Candidate, 0, len(pool))
	for _, candidate := range pool {
		if candidate.ID == "" {
			continue
		}
		if _, dup := seen[candidate.ID]; dup {
			continue
		}
		seen[candidate.ID] = struct{}{}
		unique = append(unique, candidate)
	}
	if len(unique) > candidatePoolCap {
		unique = unique[:candidatePoolCap]
	}
	slog.Info("collected candidates", "searched_queries", len(searched), "unique", len(unique))

	scored := make([]models.ScoredRecommendation, 0, len(unique))
	for _, candidate := range unique {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		details, err := client.GetMovieDetails(candidate.ID)
		if err != nil {
			slog.Warn("detail fetch failed, skipping candidate", "imdb_id", candidate.ID, "error", err)
			continue
		}
		if details == nil {
			continue
		}

		score := similarityScore(*details, profile)
		if score <= relevanceFloor {
			continue
		}

		scored = append(scored, models.ScoredRecommendation{
			Candidate:       *details,
			SimilarityScore: round2(score),
			MatchReason:     buildMatchReason(*details, profile),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].SimilarityScore > scored[j].SimilarityScore
	})
	if len(scored) > count {
		scored = scored[:count]
	}

	slog.Info("recommendations ready", "returned", len(scored))
	return scored, nil
}

func headOf(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

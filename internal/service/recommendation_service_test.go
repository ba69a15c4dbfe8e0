package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Vigneswer/MovieMate/internal/models"
	"github.com/Vigneswer/MovieMate/internal/service"
)

type fakeCollection struct {
	movies []models.Movie
	err    error
}

func (f *fakeCollection) ListAll() ([]models.Movie, error) {
	return f.movies, f.err
}

type fakeMetadataClient struct {
	searchResults map[string][]models.Candidate
	details       map[string]*models.Candidate
	detailErrs    map[string]error

	searchCalls []string
	detailCalls []string
	closed      bool
}

func (f *fakeMetadataClient) SearchMovies(query string, page int) (*models.SearchResult, error) {
	f.searchCalls = append(f.searchCalls, query)
	results := f.searchResults[query]
	return &models.SearchResult{Results: results, TotalResults: len(results), Page: page}, nil
}

func (f *fakeMetadataClient) GetMovieDetails(imdbID string) (*models.Candidate, error) {
	f.detailCalls = append(f.detailCalls, imdbID)
	if err := f.detailErrs[imdbID]; err != nil {
		return nil, err
	}
	return f.details[imdbID], nil
}

func (f *fakeMetadataClient) Close() { f.closed = true }

type failingSearchClient struct{ fakeMetadataClient }

func (f *failingSearchClient) SearchMovies(query string, page int) (*models.SearchResult, error) {
	return nil, errors.New("provider down")
}

// scifiCandidate builds a candidate that will score well against a Sci-Fi
// heavy profile.
func scifiCandidate(id, title string) models.Candidate {
	return models.Candidate{
		ID:          id,
		Title:       title,
		Genre:       "Sci-Fi",
		ReleaseYear: "2015",
	}
}

func scifiCollection() []models.Movie {
	year := 2015
	return []models.Movie{
		{Title: "Owned One", Genre: "Sci-Fi", ReleaseYear: &year, Status: models.StatusCompleted, IMDBId: "tt0000001"},
		{Title: "Owned Two", Genre: "Sci-Fi", ReleaseYear: &year, Status: models.StatusCompleted},
	}
}

func TestRecommendEmptyCollectionMakesNoProviderCalls(t *testing.T) {
	client := &fakeMetadataClient{}
	factoryCalled := false
	svc := service.NewRecommendationService(&fakeCollection{}, func() service.MetadataClient {
		factoryCalled = true
		return client
	})

	recs, err := svc.Recommend(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("expected empty result, got %d", len(recs))
	}
	if factoryCalled {
		t.Fatal("no client should be acquired for an empty collection")
	}
}

func TestRecommendExcludesOwnedTitlesAndIDs(t *testing.T) {
	client := &fakeMetadataClient{
		searchResults: map[string][]models.Candidate{
			"Sci-Fi": {
				scifiCandidate("tt0000001", "Different Title"), // owned by imdb id
				scifiCandidate("tt0000002", "owned one"),       // owned by title, case-insensitive
				scifiCandidate("tt0000003", "Fresh Pick"),
			},
		},
		details: map[string]*models.Candidate{
			"tt0000003": ptrCandidate(scifiCandidate("tt0000003", "Fresh Pick")),
		},
	}
	svc := service.NewRecommendationService(&fakeCollection{movies: scifiCollection()},
		func() service.MetadataClient { return client })

	recs, err := svc.Recommend(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(recs) != 1 || recs[0].ID != "tt0000003" {
		t.Fatalf("unexpected recommendations: %+v", recs)
	}
	if !client.closed {
		t.Fatal("client should be closed after the run")
	}
}

func TestRecommendDeduplicatesFirstWins(t *testing.T) {
	shared := scifiCandidate("tt0000010", "Shared")
	client := &fakeMetadataClient{
		searchResults: map[string][]models.Candidate{
			"Sci-Fi": {shared, {ID: "", Title: "No ID"}},
			"space":  {shared},
		},
		details: map[string]*models.Candidate{
			"tt0000010": ptrCandidate(shared),
		},
	}
	movies := scifiCollection()
	movies[0].Description = "space space space space"
	svc := service.NewRecommendationService(&fakeCollection{movies: movies},
		func() service.MetadataClient { return client })

	recs, err := svc.Recommend(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected one deduplicated recommendation, got %d", len(recs))
	}
	if len(client.detailCalls) != 1 {
		t.Fatalf("detail fetch count = %d, want 1", len(client.detailCalls))
	}
}

func TestRecommendSkipsCandidateOnDetailFailure(t *testing.T) {
	good := scifiCandidate("tt0000021", "Good")
	bad := scifiCandidate("tt0000022", "Bad")
	client := &fakeMetadataClient{
		searchResults: map[string][]models.Candidate{
			"Sci-Fi": {bad, good},
		},
		details: map[string]*models.Candidate{
			"tt0000021": ptrCandidate(good),
		},
		detailErrs: map[string]error{
			"tt0000022": errors.New("timeout"),
		},
	}
	svc := service.NewRecommendationService(&fakeCollection{movies: scifiCollection()},
		func() service.MetadataClient { return client })

	recs, err := svc.Recommend(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recommend should tolerate per-candidate detail failures: %v", err)
	}
	if len(recs) != 1 || recs[0].ID != "tt0000021" {
		t.Fatalf("unexpected recommendations: %+v", recs)
	}
}

func TestRecommendSearchFailurePropagates(t *testing.T) {
	svc := service.NewRecommendationService(&fakeCollection{movies: scifiCollection()},
		func() service.MetadataClient { return &failingSearchClient{} })

	if _, err := svc.Recommend(context.Background(), 10); err == nil {
		t.Fatal("expected error when discovery search fails")
	}
}

func TestRecommendFiltersByRelevanceFloor(t *testing.T) {
	// Scores only on the year component: 0.3 * (1 - diff/50).
	near := models.Candidate{ID: "tt0000031", Title: "Near", ReleaseYear: "2015"} // 0.3
	far := models.Candidate{ID: "tt0000032", Title: "Far", ReleaseYear: "1985"}   // 0.12
	client := &fakeMetadataClient{
		searchResults: map[string][]models.Candidate{
			"Sci-Fi": {near, far},
		},
		details: map[string]*models.Candidate{
			"tt0000031": &near,
			"tt0000032": &far,
		},
	}
	svc := service.NewRecommendationService(&fakeCollection{movies: scifiCollection()},
		func() service.MetadataClient { return client })

	recs, err := svc.Recommend(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(recs) != 1 || recs[0].ID != "tt0000031" {
		t.Fatalf("floor should drop weak matches: %+v", recs)
	}
}

func TestRecommendFloorComparisonIsStrict(t *testing.T) {
	// With two profile genres, a single-genre overlap is worth 0.4 * 1/2, which
	// lands exactly on the floor in float64 and must be dropped; the comparison
	// only admits strictly greater scores.
	atFloor := models.Candidate{ID: "tt0000051", Title: "At Floor", Genre: "Sci-Fi"}
	above := models.Candidate{ID: "tt0000052", Title: "Above Floor", Genre: "Sci-Fi, Drama"}
	client := &fakeMetadataClient{
		searchResults: map[string][]models.Candidate{
			"Sci-Fi": {atFloor, above},
		},
		details: map[string]*models.Candidate{
			"tt0000051": &atFloor,
			"tt0000052": &above,
		},
	}
	movies := []models.Movie{
		{Title: "Owned", Genre: "Sci-Fi, Drama", Status: models.StatusCompleted},
	}
	svc := service.NewRecommendationService(&fakeCollection{movies: movies},
		func() service.MetadataClient { return client })

	recs, err := svc.Recommend(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(recs) != 1 || recs[0].ID != "tt0000052" {
		t.Fatalf("a score exactly on the floor must be dropped: %+v", recs)
	}
}

func TestRecommendStopsOnCanceledContext(t *testing.T) {
	client := &fakeMetadataClient{}
	svc := service.NewRecommendationService(&fakeCollection{movies: scifiCollection()},
		func() service.MetadataClient { return client })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Recommend(ctx, 10); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if len(client.searchCalls) != 0 {
		t.Fatalf("no provider calls expected after cancellation, got %v", client.searchCalls)
	}
	if !client.closed {
		t.Fatal("client should be closed even when the run is canceled")
	}
}

func TestRecommendRanksAndTruncates(t *testing.T) {
	var results []models.Candidate
	details := make(map[string]*models.Candidate)
	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("tt00001%02d", i)
		c := models.Candidate{ID: id, Title: id, Genre: "Sci-Fi", ReleaseYear: fmt.Sprintf("%d", 2015-5*i)}
		results = append(results, c)
		cc := c
		details[id] = &cc
	}
	client := &fakeMetadataClient{
		searchResults: map[string][]models.Candidate{"Sci-Fi": results},
		details:       details,
	}
	svc := service.NewRecommendationService(&fakeCollection{movies: scifiCollection()},
		func() service.MetadataClient { return client })

	recs, err := svc.Recommend(context.Background(), 3)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("len = %d, want 3", len(recs))
	}
	for i := 1; i < len(recs); i++ {
		if recs[i].SimilarityScore > recs[i-1].SimilarityScore {
			t.Fatalf("results not sorted descending: %+v", recs)
		}
	}
	if recs[0].ID != "tt0000100" {
		t.Fatalf("best match = %s, want tt0000100", recs[0].ID)
	}
}

func TestRecommendWishlistOnlyCollectionStillProfiles(t *testing.T) {
	year := 2015
	movies := []models.Movie{
		{Title: "Wish", Genre: "Sci-Fi", ReleaseYear: &year, Status: models.StatusWishlist},
	}
	pick := scifiCandidate("tt0000041", "Pick")
	client := &fakeMetadataClient{
		searchResults: map[string][]models.Candidate{"Sci-Fi": {pick}},
		details:       map[string]*models.Candidate{"tt0000041": &pick},
	}
	svc := service.NewRecommendationService(&fakeCollection{movies: movies},
		func() service.MetadataClient { return client })

	recs, err := svc.Recommend(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("wishlist-only collection should still drive discovery, got %d recs", len(recs))
	}
	if len(client.searchCalls) == 0 {
		t.Fatal("expected discovery searches")
	}
}

func ptrCandidate(c models.Candidate) *models.Candidate { return &c }

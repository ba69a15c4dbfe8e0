package omdb_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Vigneswer/MovieMate/internal/omdb"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *omdb.Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := omdb.NewClient("test-key", srv.URL)
	t.Cleanup(client.Close)
	return srv, client
}

func TestSearchMovies(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("apikey") != "test-key" {
			t.Errorf("apikey = %q", q.Get("apikey"))
		}
		if q.Get("s") != "matrix" || q.Get("type") != "movie" || q.Get("page") != "2" {
			t.Errorf("unexpected query: %v", q)
		}
		w.Write([]byte(`{
			"Response": "True",
			"totalResults": "42",
			"Search": [
				{"Title": "The Matrix", "Year": "1999", "imdbID": "tt0133093", "Type": "movie", "Poster": "http://img/matrix.jpg"},
				{"Title": "Mystery", "Year": "N/A", "imdbID": "tt0000404", "Type": "movie", "Poster": "N/A"}
			]
		}`))
	})

	result, err := client.SearchMovies("matrix", 2)
	if err != nil {
		t.Fatalf("SearchMovies: %v", err)
	}
	if result.TotalResults != 42 || result.Page != 2 {
		t.Fatalf("totals = %d page %d, want 42 page 2", result.TotalResults, result.Page)
	}
	if len(result.Results) != 2 {
		t.Fatalf("len = %d, want 2", len(result.Results))
	}

	first := result.Results[0]
	if first.ID != "tt0133093" || first.Title != "The Matrix" || first.ReleaseYear != "1999" {
		t.Fatalf("unexpected first result: %+v", first)
	}
	if first.ContentType != "movie" {
		t.Fatalf("content type = %q", first.ContentType)
	}

	// N/A placeholders are scrubbed to empty strings.
	second := result.Results[1]
	if second.ReleaseYear != "" || second.PosterURL != "" {
		t.Fatalf("N/A fields not scrubbed: %+v", second)
	}
}

func TestSearchSeriesSetsType(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("type") != "series" {
			t.Errorf("type = %q, want series", r.URL.Query().Get("type"))
		}
		w.Write([]byte(`{
			"Response": "True",
			"totalResults": "1",
			"Search": [{"Title": "Dark", "Year": "2017–2020", "imdbID": "tt5753856", "Type": "series", "Poster": "N/A"}]
		}`))
	})

	result, err := client.SearchSeries("dark", 1)
	if err != nil {
		t.Fatalf("SearchSeries: %v", err)
	}
	if result.Results[0].ContentType != "tv_show" {
		t.Fatalf("content type = %q, want tv_show", result.Results[0].ContentType)
	}
	if result.Results[0].ReleaseYear != "2017–2020" {
		t.Fatalf("year range should be kept raw, got %q", result.Results[0].ReleaseYear)
	}
}

func TestSearchNotFoundIsEmptyNotError(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Response": "False", "Error": "Movie not found!"}`))
	})

	result, err := client.SearchMovies("zzzzz", 1)
	if err != nil {
		t.Fatalf("a provider not-found must not be an error: %v", err)
	}
	if len(result.Results) != 0 {
		t.Fatalf("len = %d, want 0", len(result.Results))
	}
}

func TestSearchHTTPErrorPropagates(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	if _, err := client.SearchMovies("matrix", 1); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}

func TestGetMovieDetails(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("i") != "tt0133093" || q.Get("plot") != "full" {
			t.Errorf("unexpected query: %v", q)
		}
		w.Write([]byte(`{
			"Response": "True",
			"Title": "The Matrix",
			"Year": "1999",
			"Runtime": "136 min",
			"Genre": "Action, Sci-Fi",
			"Director": "Lana Wachowski, Lilly Wachowski",
			"Actors": "Keanu Reeves, Laurence Fishburne",
			"Plot": "A computer hacker learns the truth.",
			"Poster": "http://img/matrix.jpg",
			"imdbRating": "8.7",
			"imdbID": "tt0133093",
			"Type": "movie"
		}`))
	})

	candidate, err := client.GetMovieDetails("tt0133093")
	if err != nil {
		t.Fatalf("GetMovieDetails: %v", err)
	}
	if candidate == nil {
		t.Fatal("candidate is nil")
	}
	if candidate.Runtime == nil || *candidate.Runtime != 136 {
		t.Fatalf("runtime = %v, want 136", candidate.Runtime)
	}
	if candidate.Rating == nil || *candidate.Rating != 8.7 {
		t.Fatalf("rating = %v, want 8.7", candidate.Rating)
	}
	if candidate.Genre != "Action, Sci-Fi" {
		t.Fatalf("genre = %q", candidate.Genre)
	}
}

func TestGetMovieDetailsNotFound(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Response": "False", "Error": "Incorrect IMDb ID."}`))
	})

	candidate, err := client.GetMovieDetails("tt9999999")
	if err != nil {
		t.Fatalf("GetMovieDetails: %v", err)
	}
	if candidate != nil {
		t.Fatalf("candidate = %+v, want nil", candidate)
	}
}

func TestGetMovieDetailsScrubsNA(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"Response": "True",
			"Title": "Obscure",
			"Year": "N/A",
			"Runtime": "N/A",
			"Genre": "N/A",
			"Director": "N/A",
			"Actors": "N/A",
			"Plot": "N/A",
			"Poster": "N/A",
			"imdbRating": "N/A",
			"imdbID": "tt0000001",
			"Type": "movie"
		}`))
	})

	candidate, err := client.GetMovieDetails("tt0000001")
	if err != nil {
		t.Fatalf("GetMovieDetails: %v", err)
	}
	if candidate.ReleaseYear != "" || candidate.Genre != "" || candidate.Plot != "" {
		t.Fatalf("N/A fields not scrubbed: %+v", candidate)
	}
	if candidate.Rating != nil || candidate.Runtime != nil {
		t.Fatalf("N/A numerics should stay nil: %+v", candidate)
	}
}

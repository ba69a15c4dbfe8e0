package omdb

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Vigneswer/MovieMate/internal/models"
)

// Client is the OMDb API client. Raw OMDb payload shapes stay inside this
// package; every method returns the normalized models.Candidate form.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a new OMDb API client.
func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Close releases idle connections held by the underlying HTTP client.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

// ---- OMDb Response Types (internal, not exposed to consumers) ----

// searchResponse is the OMDb ?s= search response.
type searchResponse struct {
	Response     string       `json:"Response"`
	Error        string       `json:"Error"`
	Search       []searchItem `json:"Search"`
	TotalResults string       `json:"totalResults"`
}

// searchItem is one entry of an OMDb search page.
type searchItem struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	ImdbID string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

// detailResponse is the OMDb ?i= full-detail response.
type detailResponse struct {
	Response     string `json:"Response"`
	Error        string `json:"Error"`
	Title        string `json:"Title"`
	Year         string `json:"Year"`
	Runtime      string `json:"Runtime"`
	Genre        string `json:"Genre"`
	Director     string `json:"Director"`
	Actors       string `json:"Actors"`
	Plot         string `json:"Plot"`
	Poster       string `json:"Poster"`
	ImdbRating   string `json:"imdbRating"`
	ImdbID       string `json:"imdbID"`
	Type         string `json:"Type"`
	TotalSeasons string `json:"totalSeasons"`
}

// ---- Client Methods ----

// SearchMovies searches OMDb for movies by title.
func (c *Client) SearchMovies(query string, page int) (*models.SearchResult, error) {
	return c.search(query, "movie", page)
}

// SearchSeries searches OMDb for TV series by title.
func (c *Client) SearchSeries(query string, page int) (*models.SearchResult, error) {
	return c.search(query, "series", page)
}

func (c *Client) search(query, mediaType string, page int) (*models.SearchResult, error) {
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("s", query)
	params.Set("type", mediaType)
	params.Set("page", strconv.Itoa(page))

	slog.Debug("searching OMDb", "query", query, "type", mediaType, "page", page)
	resp, err := c.doGet(c.baseURL + "?" + params.Encode())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var raw searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	// OMDb reports "not found" as Response=False, not as an HTTP error.
	if raw.Response != "True" {
		return &models.SearchResult{Results: []models.Candidate{}, Page: page}, nil
	}

	total, _ := strconv.Atoi(raw.TotalResults)
	results := make([]models.Candidate, 0, len(raw.Search))
	for _, item := range raw.Search {
		results = append(results, normalizeSearchItem(item))
	}

	return &models.SearchResult{
		Results:      results,
		TotalResults: total,
		Page:         page,
	}, nil
}

// GetMovieDetails fetches the full record for a movie by IMDb ID. A provider
// "not found" answer yields (nil, nil).
func (c *Client) GetMovieDetails(imdbID string) (*models.Candidate, error) {
	return c.details(imdbID)
}

// GetSeriesDetails fetches the full record for a TV series by IMDb ID.
func (c *Client) GetSeriesDetails(imdbID string) (*models.Candidate, error) {
	return c.details(imdbID)
}

func (c *Client) details(imdbID string) (*models.Candidate, error) {
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("i", imdbID)
	params.Set("plot", "full")

	slog.Debug("fetching OMDb details", "imdb_id", imdbID)
	resp, err := c.doGet(c.baseURL + "?" + params.Encode())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var raw detailResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode detail response: %w", err)
	}

	if raw.Response != "True" {
		return nil, nil
	}

	candidate := normalizeDetail(raw)
	return &candidate, nil
}

func (c *Client) doGet(url string) (*http.Response, error) {
	resp, err := c.http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("OMDb request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("OMDb returned status %d", resp.StatusCode)
	}
	return resp, nil
}

// ---- Normalization ----

func normalizeSearchItem(item searchItem) models.Candidate {
	contentType := "movie"
	if item.Type == "series" {
		contentType = "tv_show"
	}
	return models.Candidate{
		ID:          item.ImdbID,
		ContentType: contentType,
		Title:       item.Title,
		ReleaseYear: na(item.Year),
		PosterURL:   na(item.Poster),
	}
}

func normalizeDetail(raw detailResponse) models.Candidate {
	contentType := "movie"
	if raw.Type == "series" {
		contentType = "tv_show"
	}

	candidate := models.Candidate{
		ID:          raw.ImdbID,
		ContentType: contentType,
		Title:       raw.Title,
		ReleaseYear: na(raw.Year),
		Genre:       na(raw.Genre),
		Director:    na(raw.Director),
		Actors:      na(raw.Actors),
		Plot:        na(raw.Plot),
		PosterURL:   na(raw.Poster),
	}

	if s := na(raw.ImdbRating); s != "" {
		if rating, err := strconv.ParseFloat(s, 64); err == nil {
			candidate.Rating = &rating
		}
	}

	// Runtime arrives as "148 min"
	if s := na(raw.Runtime); s != "" {
		if minutes, err := strconv.Atoi(strings.Fields(s)[0]); err == nil {
			candidate.Runtime = &minutes
		}
	}

	return candidate
}

// na maps OMDb's "N/A" placeholder to an empty string.
func na(s string) string {
	if s == "N/A" {
		return ""
	}
	return s
}

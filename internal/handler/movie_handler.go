package handler

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/Vigneswer/MovieMate/internal/models"
	"github.com/Vigneswer/MovieMate/internal/omdb"
	"github.com/Vigneswer/MovieMate/internal/service"
)

// MovieHandler handles HTTP requests for the collection, external lookups and
// recommendations.
type MovieHandler struct {
	svc  *service.MovieService
	recs *service.RecommendationService
	omdb *omdb.Client
}

// NewMovieHandler creates a new MovieHandler.
func NewMovieHandler(svc *service.MovieService, recs *service.RecommendationService, omdbClient *omdb.Client) *MovieHandler {
	return &MovieHandler{svc: svc, recs: recs, omdb: omdbClient}
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Health returns service health status.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *MovieHandler) Health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "moviemate",
	})
}

// CreateMovie adds an entry to the collection.
// @Summary Add a movie or TV show
// @Tags movies
// @Accept json
// @Produce json
// @Param movie body models.MovieCreate true "Entry to add"
// @Success 201 {object} models.Movie
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /movies [post]
func (h *MovieHandler) CreateMovie(c fiber.Ctx) error {
	var req models.MovieCreate
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	movie, err := h.svc.Create(&req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateEntry):
			return c.Status(fiber.StatusConflict).JSON(ErrorResponse{Error: err.Error()})
		case isValidationError(err):
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
		}
		slog.Error("failed to create entry", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to add to collection"})
	}

	return c.Status(fiber.StatusCreated).JSON(movie)
}

// ListMovies returns collection entries with optional filters.
// @Summary List collection
// @Tags movies
// @Produce json
// @Param skip query int false "Offset" default(0)
// @Param limit query int false "Max results" default(100)
// @Param content_type query string false "Filter by type" Enums(movie,tv_show)
// @Param status query string false "Filter by status" Enums(wishlist,watching,completed)
// @Param platform query string false "Filter by platform"
// @Success 200 {array} models.Movie
// @Failure 500 {object} ErrorResponse
// @Router /movies [get]
func (h *MovieHandler) ListMovies(c fiber.Ctx) error {
	params := models.MovieListParams{
		Skip:        fiber.Query(c, "skip", 0),
		Limit:       fiber.Query(c, "limit", 100),
		ContentType: models.ContentType(c.Query("content_type")),
		Status:      models.WatchStatus(c.Query("status")),
		Platform:    c.Query("platform"),
	}

	movies, err := h.svc.List(params)
	if err != nil {
		slog.Error("failed to list collection", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to retrieve collection"})
	}
	if movies == nil {
		movies = []models.Movie{}
	}

	return c.JSON(movies)
}

// GetMovie returns one collection entry.
// @Summary Get entry
// @Tags movies
// @Produce json
// @Param id path int true "Entry ID"
// @Success 200 {object} models.Movie
// @Failure 404 {object} ErrorResponse
// @Router /movies/{id} [get]
func (h *MovieHandler) GetMovie(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid entry ID"})
	}

	movie, err := h.svc.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrMovieNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "movie not found"})
		}
		slog.Error("failed to get entry", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to retrieve entry"})
	}

	return c.JSON(movie)
}

// UpdateMovie applies a partial update to an entry.
// @Summary Update entry
// @Tags movies
// @Accept json
// @Produce json
// @Param id path int true "Entry ID"
// @Param movie body models.MovieUpdate true "Fields to update"
// @Success 200 {object} models.Movie
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /movies/{id} [put]
func (h *MovieHandler) UpdateMovie(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid entry ID"})
	}

	var req models.MovieUpdate
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	movie, err := h.svc.Update(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMovieNotFound):
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "movie not found"})
		case isValidationError(err):
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
		}
		slog.Error("failed to update entry", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to update entry"})
	}

	return c.JSON(movie)
}

// DeleteMovie removes an entry from the collection.
// @Summary Delete entry
// @Tags movies
// @Produce json
// @Param id path int true "Entry ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse
// @Router /movies/{id} [delete]
func (h *MovieHandler) DeleteMovie(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid entry ID"})
	}

	if err := h.svc.Delete(id); err != nil {
		if errors.Is(err, service.ErrMovieNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "movie not found"})
		}
		slog.Error("failed to delete entry", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to delete entry"})
	}

	return c.JSON(fiber.Map{"message": "deleted"})
}

// SearchMovies searches the collection by title, genre or director.
// @Summary Search collection
// @Tags movies
// @Produce json
// @Param q query string true "Search query"
// @Success 200 {array} models.Movie
// @Failure 400 {object} ErrorResponse
// @Router /movies/search [get]
func (h *MovieHandler) SearchMovies(c fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "query parameter 'q' is required"})
	}

	movies, err := h.svc.Search(query)
	if err != nil {
		slog.Error("collection search failed", "query", query, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "search failed"})
	}
	if movies == nil {
		movies = []models.Movie{}
	}

	return c.JSON(movies)
}

// MoviesByGenre returns entries containing the given genre.
// @Summary Filter by genre
// @Tags movies
// @Produce json
// @Param genre path string true "Genre"
// @Success 200 {array} models.Movie
// @Router /movies/genre/{genre} [get]
func (h *MovieHandler) MoviesByGenre(c fiber.Ctx) error {
	movies, err := h.svc.ByGenre(c.Params("genre"))
	if err != nil {
		slog.Error("genre filter failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to retrieve entries"})
	}
	if movies == nil {
		movies = []models.Movie{}
	}
	return c.JSON(movies)
}

// MoviesByStatus returns entries with the given watch status.
// @Summary Filter by status
// @Tags movies
// @Produce json
// @Param status path string true "Status" Enums(wishlist,watching,completed)
// @Success 200 {array} models.Movie
// @Failure 400 {object} ErrorResponse
// @Router /movies/status/{status} [get]
func (h *MovieHandler) MoviesByStatus(c fiber.Ctx) error {
	movies, err := h.svc.ByStatus(models.WatchStatus(c.Params("status")))
	if err != nil {
		if errors.Is(err, models.ErrInvalidStatus) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
		}
		slog.Error("status filter failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to retrieve entries"})
	}
	if movies == nil {
		movies = []models.Movie{}
	}
	return c.JSON(movies)
}

// MoviesByPlatform returns entries on the given platform.
// @Summary Filter by platform
// @Tags movies
// @Produce json
// @Param platform path string true "Platform"
// @Success 200 {array} models.Movie
// @Failure 400 {object} ErrorResponse
// @Router /movies/platform/{platform} [get]
func (h *MovieHandler) MoviesByPlatform(c fiber.Ctx) error {
	movies, err := h.svc.ByPlatform(c.Params("platform"))
	if err != nil {
		if errors.Is(err, models.ErrInvalidPlatform) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
		}
		slog.Error("platform filter failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to retrieve entries"})
	}
	if movies == nil {
		movies = []models.Movie{}
	}
	return c.JSON(movies)
}

// MoviesByType returns entries of one content type.
// @Summary Filter by content type
// @Tags movies
// @Produce json
// @Param type path string true "Content type" Enums(movie,tv_show)
// @Success 200 {array} models.Movie
// @Failure 400 {object} ErrorResponse
// @Router /movies/type/{type} [get]
func (h *MovieHandler) MoviesByType(c fiber.Ctx) error {
	movies, err := h.svc.ByType(models.ContentType(c.Params("type")))
	if err != nil {
		if errors.Is(err, models.ErrInvalidContentType) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
		}
		slog.Error("type filter failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to retrieve entries"})
	}
	if movies == nil {
		movies = []models.Movie{}
	}
	return c.JSON(movies)
}

// Favorites returns all favorited entries.
// @Summary List favorites
// @Tags movies
// @Produce json
// @Success 200 {array} models.Movie
// @Router /movies/favorites [get]
func (h *MovieHandler) Favorites(c fiber.Ctx) error {
	movies, err := h.svc.Favorites()
	if err != nil {
		slog.Error("failed to list favorites", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to retrieve favorites"})
	}
	if movies == nil {
		movies = []models.Movie{}
	}
	return c.JSON(movies)
}

// ToggleFavorite flips an entry's favorite flag.
// @Summary Toggle favorite
// @Tags movies
// @Produce json
// @Param id path int true "Entry ID"
// @Success 200 {object} models.Movie
// @Failure 404 {object} ErrorResponse
// @Router /movies/{id}/favorite [patch]
func (h *MovieHandler) ToggleFavorite(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid entry ID"})
	}

	movie, err := h.svc.ToggleFavorite(id)
	if err != nil {
		if errors.Is(err, service.ErrMovieNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "movie not found"})
		}
		slog.Error("failed to toggle favorite", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to toggle favorite"})
	}

	return c.JSON(movie)
}

// ToggleWatched flips an entry between completed and wishlist.
// @Summary Toggle watched
// @Tags movies
// @Produce json
// @Param id path int true "Entry ID"
// @Success 200 {object} models.Movie
// @Failure 404 {object} ErrorResponse
// @Router /movies/{id}/watched [patch]
func (h *MovieHandler) ToggleWatched(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid entry ID"})
	}

	movie, err := h.svc.ToggleWatched(id)
	if err != nil {
		if errors.Is(err, service.ErrMovieNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "movie not found"})
		}
		slog.Error("failed to toggle watched", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to toggle watched"})
	}

	return c.JSON(movie)
}

// SetStatus updates an entry's watch status.
// @Summary Update watch status
// @Tags movies
// @Accept json
// @Produce json
// @Param id path int true "Entry ID"
// @Param status body object{status=string} true "New status"
// @Success 200 {object} models.Movie
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /movies/{id}/status [patch]
func (h *MovieHandler) SetStatus(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid entry ID"})
	}

	var req struct {
		Status models.WatchStatus `json:"status"`
	}
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	movie, err := h.svc.SetStatus(id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMovieNotFound):
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "movie not found"})
		case errors.Is(err, models.ErrInvalidStatus):
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
		}
		slog.Error("failed to update status", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to update status"})
	}

	return c.JSON(movie)
}

// UpdateProgress records viewing progress on a TV show.
// @Summary Update TV progress
// @Tags movies
// @Accept json
// @Produce json
// @Param id path int true "Entry ID"
// @Param progress body object{episodes_watched=int,current_season=int,current_episode=int} true "Progress"
// @Success 200 {object} models.Movie
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /movies/{id}/progress [patch]
func (h *MovieHandler) UpdateProgress(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid entry ID"})
	}

	var req struct {
		EpisodesWatched int  `json:"episodes_watched"`
		CurrentSeason   *int `json:"current_season"`
		CurrentEpisode  *int `json:"current_episode"`
	}
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}
	if req.EpisodesWatched < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "episodes_watched must be non-negative"})
	}

	movie, err := h.svc.UpdateProgress(id, req.EpisodesWatched, req.CurrentSeason, req.CurrentEpisode)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMovieNotFound):
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "movie not found"})
		case errors.Is(err, service.ErrNotTVShow):
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
		}
		slog.Error("failed to update progress", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to update progress"})
	}

	return c.JSON(movie)
}

// Stats returns aggregate collection statistics.
// @Summary Collection stats
// @Tags analytics
// @Produce json
// @Success 200 {object} models.CollectionStats
// @Router /movies/stats [get]
func (h *MovieHandler) Stats(c fiber.Ctx) error {
	stats, err := h.svc.Stats()
	if err != nil {
		slog.Error("failed to aggregate stats", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to compute statistics"})
	}
	return c.JSON(stats)
}

// WatchTime returns the weekly or monthly watch-time series.
// @Summary Watch-time analytics
// @Tags analytics
// @Produce json
// @Param period query string false "Grouping period" Enums(weekly,monthly) default(weekly)
// @Success 200 {object} models.WatchTimeReport
// @Failure 400 {object} ErrorResponse
// @Router /movies/analytics/watch-time [get]
func (h *MovieHandler) WatchTime(c fiber.Ctx) error {
	period := c.Query("period", "weekly")

	report, err := h.svc.WatchTime(period)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPeriod) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
		}
		slog.Error("failed to compute watch time", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to compute watch time"})
	}

	return c.JSON(report)
}

// LookupSearchMovies proxies a movie search to the metadata provider.
// @Summary Search external movies
// @Tags lookup
// @Produce json
// @Param q query string true "Search query"
// @Param page query int false "Result page" default(1)
// @Success 200 {object} models.SearchResult
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /lookup/movies [get]
func (h *MovieHandler) LookupSearchMovies(c fiber.Ctx) error {
	return h.lookupSearch(c, h.omdb.SearchMovies)
}

// LookupSearchSeries proxies a series search to the metadata provider.
// @Summary Search external TV series
// @Tags lookup
// @Produce json
// @Param q query string true "Search query"
// @Param page query int false "Result page" default(1)
// @Success 200 {object} models.SearchResult
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /lookup/tv [get]
func (h *MovieHandler) LookupSearchSeries(c fiber.Ctx) error {
	return h.lookupSearch(c, h.omdb.SearchSeries)
}

func (h *MovieHandler) lookupSearch(c fiber.Ctx, search func(string, int) (*models.SearchResult, error)) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "query parameter 'q' is required"})
	}
	page := fiber.Query(c, "page", 1)
	if page < 1 {
		page = 1
	}

	result, err := search(query, page)
	if err != nil {
		slog.Error("external search failed", "query", query, "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{Error: "metadata provider unavailable"})
	}

	return c.JSON(result)
}

// LookupMovieDetails fetches external details for one movie.
// @Summary External movie details
// @Tags lookup
// @Produce json
// @Param imdb_id path string true "IMDb ID"
// @Success 200 {object} models.Candidate
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /lookup/movies/{imdb_id} [get]
func (h *MovieHandler) LookupMovieDetails(c fiber.Ctx) error {
	return h.lookupDetails(c, h.omdb.GetMovieDetails)
}

// LookupSeriesDetails fetches external details for one TV series.
// @Summary External series details
// @Tags lookup
// @Produce json
// @Param imdb_id path string true "IMDb ID"
// @Success 200 {object} models.Candidate
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /lookup/tv/{imdb_id} [get]
func (h *MovieHandler) LookupSeriesDetails(c fiber.Ctx) error {
	return h.lookupDetails(c, h.omdb.GetSeriesDetails)
}

func (h *MovieHandler) lookupDetails(c fiber.Ctx, details func(string) (*models.Candidate, error)) error {
	imdbID := c.Params("imdb_id")
	if imdbID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "imdb_id is required"})
	}

	candidate, err := details(imdbID)
	if err != nil {
		slog.Error("external details fetch failed", "imdb_id", imdbID, "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{Error: "metadata provider unavailable"})
	}
	if candidate == nil {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "title not found"})
	}

	return c.JSON(candidate)
}

// SurpriseMe returns personalized recommendations from the user's collection.
// @Summary Get recommendations
// @Tags recommendations
// @Produce json
// @Param count query int false "Number of recommendations" default(10) minimum(1) maximum(50)
// @Success 200 {object} models.RecommendationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /movies/surprise-me [get]
func (h *MovieHandler) SurpriseMe(c fiber.Ctx) error {
	count := fiber.Query(c, "count", 10)
	if count < 1 || count > 50 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "count must be between 1 and 50"})
	}

	recs, err := h.recs.Recommend(c.Context(), count)
	if err != nil {
		slog.Error("failed to generate recommendations", "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{Error: "failed to generate recommendations"})
	}

	resp := models.RecommendationResponse{
		Recommendations: recs,
		Count:           len(recs),
	}
	if len(recs) == 0 {
		resp.Recommendations = []models.ScoredRecommendation{}
		resp.Message = "Add some movies to your collection to get personalized recommendations"
	}

	return c.JSON(resp)
}

// GenerateReview produces an AI review for a watched entry.
// @Summary Generate AI review
// @Tags movies
// @Accept json
// @Produce json
// @Param id path int true "Entry ID"
// @Param request body object{user_comments=string} false "Optional user comments"
// @Success 200 {object} models.ReviewResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /movies/{id}/generate-review [post]
func (h *MovieHandler) GenerateReview(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid entry ID"})
	}

	var req struct {
		UserComments string `json:"user_comments"`
	}
	if len(c.Body()) > 0 {
		if err := c.Bind().JSON(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
		}
	}

	review, err := h.svc.GenerateReview(id, req.UserComments)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMovieNotFound):
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "movie not found"})
		case errors.Is(err, service.ErrReviewNotWatched), errors.Is(err, service.ErrReviewNoPlot):
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
		}
		slog.Error("review generation failed", "id", id, "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{Error: "review generation failed"})
	}

	return c.JSON(review)
}

// isValidationError reports whether the error is one of the payload
// validation sentinels.
func isValidationError(err error) bool {
	return errors.Is(err, models.ErrTitleRequired) ||
		errors.Is(err, models.ErrInvalidContentType) ||
		errors.Is(err, models.ErrInvalidStatus) ||
		errors.Is(err, models.ErrInvalidPlatform)
}

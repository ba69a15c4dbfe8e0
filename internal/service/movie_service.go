package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Vigneswer/MovieMate/internal/models"
	"github.com/Vigneswer/MovieMate/internal/repository"
)

const (
	movieListCacheTTL   = 5 * time.Minute
	movieDetailCacheTTL = 30 * time.Minute
	statsCacheTTL       = 5 * time.Minute

	// Fallback episode length for shows without duration metadata.
	defaultEpisodeMinutes = 45.0
)

var (
	ErrMovieNotFound     = errors.New("movie not found")
	ErrDuplicateEntry    = errors.New("entry with this imdb_id already exists")
	ErrNotTVShow         = errors.New("progress tracking applies to TV shows only")
	ErrReviewNotWatched  = errors.New("can only review watched or in-progress content")
	ErrReviewNoPlot      = errors.New("content has no description to base a review on")
	ErrReviewUnavailable = errors.New("review generation failed")
	ErrInvalidPeriod     = errors.New("period must be 'weekly' or 'monthly'")
)

// ReviewGenerator produces a short review from collection metadata and the
// user's own comments.
type ReviewGenerator interface {
	GenerateReviewSummary(title, overview, userComments string, userRating *float64) (string, error)
}

// MovieService handles business logic for the collection.
type MovieService struct {
	repo     *repository.MovieRepository
	redis    *redis.Client
	reviewer ReviewGenerator
}

// NewMovieService creates a new MovieService. rdb and reviewer may be nil;
// the service then runs without caching or review generation.
func NewMovieService(repo *repository.MovieRepository, rdb *redis.Client, reviewer ReviewGenerator) *MovieService {
	return &MovieService{repo: repo, redis: rdb, reviewer: reviewer}
}

// Create adds a new entry to the collection.
func (s *MovieService) Create(mc *models.MovieCreate) (*models.Movie, error) {
	if err := mc.Validate(); err != nil {
		return nil, err
	}

	if mc.IMDBId != "" {
		existing, err := s.repo.GetByIMDBId(mc.IMDBId, mc.ContentType)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("check duplicate: %w", err)
		}
		if existing != nil {
			return nil, ErrDuplicateEntry
		}
	}

	movie, err := s.repo.Create(mc)
	if err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}

	s.invalidateCache()
	slog.Info("added to collection", "id", movie.ID, "title", movie.Title, "content_type", movie.ContentType)
	return movie, nil
}

// Get returns one collection entry by ID.
func (s *MovieService) Get(id int) (*models.Movie, error) {
	cacheKey := fmt.Sprintf("collection:detail:%d", id)

	if cached, err := s.getFromCache(cacheKey); err == nil {
		var result models.Movie
		if json.Unmarshal([]byte(cached), &result) == nil {
			slog.Debug("cache hit", "key", cacheKey)
			return &result, nil
		}
	}

	movie, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}

	if data, err := json.Marshal(movie); err == nil {
		s.setCache(cacheKey, string(data), movieDetailCacheTTL)
	}
	return movie, nil
}

// List returns collection entries matching the filter params.
func (s *MovieService) List(params models.MovieListParams) ([]models.Movie, error) {
	params.Validate()

	cacheKey := fmt.Sprintf("collection:list:%d:%d:%s:%s:%s",
		params.Skip, params.Limit, params.ContentType, params.Status, params.Platform)

	if cached, err := s.getFromCache(cacheKey); err == nil {
		var result []models.Movie
		if json.Unmarshal([]byte(cached), &result) == nil {
			slog.Debug("cache hit", "key", cacheKey)
			return result, nil
		}
	}

	movies, err := s.repo.List(params)
	if err != nil {
		return nil, fmt.Errorf("list collection: %w", err)
	}

	if data, err := json.Marshal(movies); err == nil {
		s.setCache(cacheKey, string(data), movieListCacheTTL)
	}
	return movies, nil
}

// Search matches the query against title, genre and director.
func (s *MovieService) Search(query string) ([]models.Movie, error) {
	return s.repo.Search(query)
}

// ByGenre returns entries whose genre list contains the given genre.
func (s *MovieService) ByGenre(genre string) ([]models.Movie, error) {
	return s.repo.GetByGenre(genre)
}

// ByStatus returns entries with the given watch status.
func (s *MovieService) ByStatus(status models.WatchStatus) ([]models.Movie, error) {
	switch status {
	case models.StatusWishlist, models.StatusWatching, models.StatusCompleted:
	default:
		return nil, models.ErrInvalidStatus
	}
	return s.repo.GetByStatus(status)
}

// ByPlatform returns entries on the given streaming platform.
func (s *MovieService) ByPlatform(platform string) ([]models.Movie, error) {
	if !models.IsValidPlatform(platform) {
		return nil, models.ErrInvalidPlatform
	}
	return s.repo.GetByPlatform(platform)
}

// ByType returns entries of one content type.
func (s *MovieService) ByType(contentType models.ContentType) ([]models.Movie, error) {
	if contentType != models.ContentTypeMovie && contentType != models.ContentTypeTVShow {
		return nil, models.ErrInvalidContentType
	}
	return s.repo.GetByType(contentType)
}

// Favorites returns all favorited entries.
func (s *MovieService) Favorites() ([]models.Movie, error) {
	return s.repo.GetFavorites()
}

// Update applies a partial update to an entry. Moving an entry to completed
// stamps watched_at when it has none yet.
func (s *MovieService) Update(id int, upd *models.MovieUpdate) (*models.Movie, error) {
	if upd.Status != nil {
		switch *upd.Status {
		case models.StatusWishlist, models.StatusWatching, models.StatusCompleted:
		default:
			return nil, models.ErrInvalidStatus
		}
	}
	if upd.Platform != nil && *upd.Platform != "" && !models.IsValidPlatform(*upd.Platform) {
		return nil, models.ErrInvalidPlatform
	}

	if upd.Status != nil && *upd.Status == models.StatusCompleted && upd.WatchedAt == nil {
		current, err := s.Get(id)
		if err != nil {
			return nil, err
		}
		if current.WatchedAt == nil {
			now := time.Now()
			upd.WatchedAt = &now
		}
	}

	movie, err := s.repo.Update(id, upd)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, fmt.Errorf("update entry: %w", err)
	}

	s.invalidateCache()
	return movie, nil
}

// Delete removes an entry from the collection.
func (s *MovieService) Delete(id int) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrMovieNotFound
		}
		return fmt.Errorf("delete entry: %w", err)
	}
	s.invalidateCache()
	return nil
}

// ToggleFavorite flips the favorite flag on an entry.
func (s *MovieService) ToggleFavorite(id int) (*models.Movie, error) {
	movie, err := s.repo.ToggleFavorite(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, fmt.Errorf("toggle favorite: %w", err)
	}
	s.invalidateCache()
	return movie, nil
}

// SetStatus moves an entry through the watch pipeline.
func (s *MovieService) SetStatus(id int, status models.WatchStatus) (*models.Movie, error) {
	return s.Update(id, &models.MovieUpdate{Status: &status})
}

// ToggleWatched flips an entry between completed and wishlist.
func (s *MovieService) ToggleWatched(id int) (*models.Movie, error) {
	current, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	next := models.StatusCompleted
	if current.Status == models.StatusCompleted {
		next = models.StatusWishlist
	}
	return s.SetStatus(id, next)
}

// UpdateProgress tracks viewing progress on a TV show. Reaching the final
// episode completes the show.
func (s *MovieService) UpdateProgress(id int, episodesWatched int, currentSeason, currentEpisode *int) (*models.Movie, error) {
	current, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if current.ContentType != models.ContentTypeTVShow {
		return nil, ErrNotTVShow
	}

	upd := &models.MovieUpdate{
		EpisodesWatched: &episodesWatched,
		CurrentSeason:   currentSeason,
		CurrentEpisode:  currentEpisode,
	}

	if current.TotalEpisodes != nil && episodesWatched >= *current.TotalEpisodes {
		completed := models.StatusCompleted
		upd.Status = &completed
	} else if episodesWatched > 0 && current.Status == models.StatusWishlist {
		watching := models.StatusWatching
		upd.Status = &watching
	}

	return s.Update(id, upd)
}

// Stats returns aggregate collection statistics.
func (s *MovieService) Stats() (*models.CollectionStats, error) {
	cacheKey := "collection:stats"

	if cached, err := s.getFromCache(cacheKey); err == nil {
		var result models.CollectionStats
		if json.Unmarshal([]byte(cached), &result) == nil {
			slog.Debug("cache hit", "key", cacheKey)
			return &result, nil
		}
	}

	stats, err := s.repo.Stats()
	if err != nil {
		return nil, fmt.Errorf("aggregate stats: %w", err)
	}

	if data, err := json.Marshal(stats); err == nil {
		s.setCache(cacheKey, string(data), statsCacheTTL)
	}
	return stats, nil
}

// WatchTime buckets completed entries by week or month of watched_at.
// Weekly buckets key on the Monday of each week.
func (s *MovieService) WatchTime(period string) (*models.WatchTimeReport, error) {
	if period != "weekly" && period != "monthly" {
		return nil, ErrInvalidPeriod
	}

	entries, err := s.repo.CompletedWithDates()
	if err != nil {
		return nil, fmt.Errorf("load watch history: %w", err)
	}

	type bucket struct {
		minutes float64
		count   int
	}
	buckets := make(map[string]*bucket)
	for _, e := range entries {
		var key string
		if period == "weekly" {
			monday := e.WatchedAt.AddDate(0, 0, -mondayOffset(e.WatchedAt.Weekday()))
			key = monday.Format("2006-01-02")
		} else {
			key = e.WatchedAt.Format("2006-01")
		}

		b := buckets[key]
		if b == nil {
			b = &bucket{}
			buckets[key] = b
		}
		b.minutes += watchMinutes(e)
		b.count++
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	data := make([]models.WatchTimeBucket, 0, len(keys))
	for _, k := range keys {
		b := buckets[k]
		data = append(data, models.WatchTimeBucket{
			Period:           period,
			Date:             k,
			WatchTimeMinutes: round1(b.minutes),
			WatchTimeHours:   round1(b.minutes / 60),
			ContentCount:     b.count,
		})
	}

	return &models.WatchTimeReport{Period: period, Data: data, TotalPeriods: len(data)}, nil
}

// GenerateReview asks the AI reviewer for a short review of a watched entry.
func (s *MovieService) GenerateReview(id int, userComments string) (*models.ReviewResponse, error) {
	movie, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if movie.Status != models.StatusCompleted && movie.Status != models.StatusWatching {
		return nil, ErrReviewNotWatched
	}
	if movie.Description == "" {
		return nil, ErrReviewNoPlot
	}
	if s.reviewer == nil {
		return nil, ErrReviewUnavailable
	}

	review, err := s.reviewer.GenerateReviewSummary(movie.Title, movie.Description, userComments, movie.UserRating)
	if err != nil {
		slog.Error("review generation failed", "id", id, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrReviewUnavailable, err)
	}

	return &models.ReviewResponse{
		MovieID:         movie.ID,
		MovieTitle:      movie.Title,
		GeneratedReview: review,
		UserComments:    userComments,
		UserRating:      movie.UserRating,
	}, nil
}

// mondayOffset returns how many days back the most recent Monday is.
func mondayOffset(d time.Weekday) int {
	if d == time.Sunday {
		return 6
	}
	return int(d) - 1
}

// watchMinutes estimates the minutes spent on one completed entry.
func watchMinutes(e repository.WatchedEntry) float64 {
	if e.ContentType == models.ContentTypeMovie {
		if e.Duration != nil {
			return float64(*e.Duration)
		}
		return 0
	}
	perEpisode := defaultEpisodeMinutes
	if e.Duration != nil && e.TotalEpisodes != nil && *e.TotalEpisodes > 0 {
		perEpisode = float64(*e.Duration) / float64(*e.TotalEpisodes)
	}
	return float64(e.EpisodesWatched) * perEpisode
}

// ---- Redis helpers ----

func (s *MovieService) getFromCache(key string) (string, error) {
	if s.redis == nil {
		return "", fmt.Errorf("redis not available")
	}
	return s.redis.Get(context.Background(), key).Result()
}

func (s *MovieService) setCache(key, value string, ttl time.Duration) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Set(context.Background(), key, value, ttl).Err(); err != nil {
		slog.Error("failed to set cache", "key", key, "error", err)
	}
}

func (s *MovieService) invalidateCache() {
	if s.redis == nil {
		return
	}
	ctx := context.Background()
	iter := s.redis.Scan(ctx, 0, "collection:*", 0).Iterator()
	for iter.Next(ctx) {
		s.redis.Del(ctx, iter.Val())
	}
}

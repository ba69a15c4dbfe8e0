package repository

import (
	"database/sql"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/Vigneswer/MovieMate/internal/models"
)

// MovieRepository handles database operations for the collection.
type MovieRepository struct {
	db *sql.DB
}

// NewMovieRepository creates a new MovieRepository.
func NewMovieRepository(db *sql.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

const movieColumns = `
	id, content_type, title, COALESCE(description, ''), release_year,
	COALESCE(genre, ''), COALESCE(director, ''), COALESCE(cast_members, ''),
	COALESCE(poster_url, ''), COALESCE(backdrop_url, ''), COALESCE(trailer_url, ''),
	COALESCE(platform, ''), status, duration, total_seasons, total_episodes,
	episodes_watched, current_season, current_episode, user_rating, imdb_rating,
	COALESCE(review, ''), COALESCE(notes, ''), COALESCE(imdb_id, ''),
	is_favorite, created_at, updated_at, watched_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMovie(row rowScanner) (*models.Movie, error) {
	var m models.Movie
	err := row.Scan(
		&m.ID, &m.ContentType, &m.Title, &m.Description, &m.ReleaseYear,
		&m.Genre, &m.Director, &m.Cast,
		&m.PosterURL, &m.BackdropURL, &m.TrailerURL,
		&m.Platform, &m.Status, &m.Duration, &m.TotalSeasons, &m.TotalEpisodes,
		&m.EpisodesWatched, &m.CurrentSeason, &m.CurrentEpisode,
		&m.UserRating, &m.IMDBRating,
		&m.Review, &m.Notes, &m.IMDBId,
		&m.IsFavorite, &m.CreatedAt, &m.UpdatedAt, &m.WatchedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MovieRepository) queryMovies(query string, args ...any) ([]models.Movie, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("movie query failed: %w", err)
	}
	defer rows.Close()

	movies := make([]models.Movie, 0)
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			slog.Error("failed to scan movie row", "error", err)
			continue
		}
		movies = append(movies, *m)
	}
	return movies, rows.Err()
}

// Create inserts a new collection entry.
func (r *MovieRepository) Create(mc *models.MovieCreate) (*models.Movie, error) {
	var id int
	err := r.db.QueryRow(`
		INSERT INTO movies (content_type, title, description, release_year, genre,
			director, cast_members, poster_url, backdrop_url, trailer_url,
			platform, status, duration, total_seasons, total_episodes,
			user_rating, imdb_rating, review, notes, imdb_id, is_favorite)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			NULLIF($11, ''), $12, $13, $14, $15, $16, $17, $18, $19, NULLIF($20, ''), $21)
		RETURNING id
	`, mc.ContentType, mc.Title, mc.Description, mc.ReleaseYear, mc.Genre,
		mc.Director, mc.Cast, mc.PosterURL, mc.BackdropURL, mc.TrailerURL,
		mc.Platform, mc.Status, mc.Duration, mc.TotalSeasons, mc.TotalEpisodes,
		mc.UserRating, mc.IMDBRating, mc.Review, mc.Notes, mc.IMDBId, mc.IsFavorite,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create movie: %w", err)
	}
	return r.GetByID(id)
}

// GetByID returns one collection entry.
func (r *MovieRepository) GetByID(id int) (*models.Movie, error) {
	row := r.db.QueryRow(`SELECT `+movieColumns+` FROM movies WHERE id = $1`, id)
	return scanMovie(row)
}

// GetByIMDBId returns the entry matching an external id and content type.
func (r *MovieRepository) GetByIMDBId(imdbID string, contentType models.ContentType) (*models.Movie, error) {
	row := r.db.QueryRow(
		`SELECT `+movieColumns+` FROM movies WHERE imdb_id = $1 AND content_type = $2`,
		imdbID, contentType)
	return scanMovie(row)
}

// List returns collection entries matching the given filters, newest first.
func (r *MovieRepository) List(params models.MovieListParams) ([]models.Movie, error) {
	conditions := []string{"1=1"}
	args := []any{}
	argIdx := 1

	if params.ContentType != "" {
		conditions = append(conditions, fmt.Sprintf("content_type = $%d", argIdx))
		args = append(args, params.ContentType)
		argIdx++
	}
	if params.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, params.Status)
		argIdx++
	}
	if params.Platform != "" {
		conditions = append(conditions, fmt.Sprintf("platform = $%d", argIdx))
		args = append(args, params.Platform)
		argIdx++
	}

	query := fmt.Sprintf(`SELECT %s FROM movies WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		movieColumns, strings.Join(conditions, " AND "), argIdx, argIdx+1)
	args = append(args, params.Limit, params.Skip)

	return r.queryMovies(query, args...)
}

// ListAll returns the entire collection (used for recommendation profiling).
func (r *MovieRepository) ListAll() ([]models.Movie, error) {
	return r.queryMovies(`SELECT ` + movieColumns + ` FROM movies ORDER BY created_at DESC`)
}

// Search matches entries by title, genre or director.
func (r *MovieRepository) Search(query string) ([]models.Movie, error) {
	pattern := "%" + query + "%"
	return r.queryMovies(`SELECT `+movieColumns+` FROM movies
		WHERE title ILIKE $1 OR genre ILIKE $1 OR director ILIKE $1`, pattern)
}

// GetByGenre returns entries containing the given genre.
func (r *MovieRepository) GetByGenre(genre string) ([]models.Movie, error) {
	return r.queryMovies(`SELECT `+movieColumns+` FROM movies WHERE genre ILIKE $1`,
		"%"+genre+"%")
}

// GetByStatus returns entries with a specific watch status, newest first.
func (r *MovieRepository) GetByStatus(status models.WatchStatus) ([]models.Movie, error) {
	return r.queryMovies(`SELECT `+movieColumns+` FROM movies WHERE status = $1
		ORDER BY created_at DESC`, status)
}

// GetByPlatform returns entries on a specific platform, newest first.
func (r *MovieRepository) GetByPlatform(platform string) ([]models.Movie, error) {
	return r.queryMovies(`SELECT `+movieColumns+` FROM movies WHERE platform = $1
		ORDER BY created_at DESC`, platform)
}

// GetByType returns entries of one content type, newest first.
func (r *MovieRepository) GetByType(contentType models.ContentType) ([]models.Movie, error) {
	return r.queryMovies(`SELECT `+movieColumns+` FROM movies WHERE content_type = $1
		ORDER BY created_at DESC`, contentType)
}

// GetFavorites returns all favorited entries.
func (r *MovieRepository) GetFavorites() ([]models.Movie, error) {
	return r.queryMovies(`SELECT ` + movieColumns + ` FROM movies WHERE is_favorite = TRUE`)
}

// Update applies a partial update; nil fields are left untouched.
func (r *MovieRepository) Update(id int, upd *models.MovieUpdate) (*models.Movie, error) {
	sets := []string{}
	args := []any{}
	argIdx := 1

	add := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if upd.ContentType != nil {
		add("content_type", *upd.ContentType)
	}
	if upd.Title != nil {
		add("title", *upd.Title)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.ReleaseYear != nil {
		add("release_year", *upd.ReleaseYear)
	}
	if upd.Genre != nil {
		add("genre", *upd.Genre)
	}
	if upd.Director != nil {
		add("director", *upd.Director)
	}
	if upd.Cast != nil {
		add("cast_members", *upd.Cast)
	}
	if upd.PosterURL != nil {
		add("poster_url", *upd.PosterURL)
	}
	if upd.BackdropURL != nil {
		add("backdrop_url", *upd.BackdropURL)
	}
	if upd.TrailerURL != nil {
		add("trailer_url", *upd.TrailerURL)
	}
	if upd.Platform != nil {
		add("platform", *upd.Platform)
	}
	if upd.Status != nil {
		add("status", *upd.Status)
	}
	if upd.Duration != nil {
		add("duration", *upd.Duration)
	}
	if upd.TotalSeasons != nil {
		add("total_seasons", *upd.TotalSeasons)
	}
	if upd.TotalEpisodes != nil {
		add("total_episodes", *upd.TotalEpisodes)
	}
	if upd.EpisodesWatched != nil {
		add("episodes_watched", *upd.EpisodesWatched)
	}
	if upd.CurrentSeason != nil {
		add("current_season", *upd.CurrentSeason)
	}
	if upd.CurrentEpisode != nil {
		add("current_episode", *upd.CurrentEpisode)
	}
	if upd.UserRating != nil {
		add("user_rating", *upd.UserRating)
	}
	if upd.IMDBRating != nil {
		add("imdb_rating", *upd.IMDBRating)
	}
	if upd.Review != nil {
		add("review", *upd.Review)
	}
	if upd.Notes != nil {
		add("notes", *upd.Notes)
	}
	if upd.IsFavorite != nil {
		add("is_favorite", *upd.IsFavorite)
	}
	if upd.WatchedAt != nil {
		add("watched_at", *upd.WatchedAt)
	}

	if len(sets) == 0 {
		return r.GetByID(id)
	}
	add("updated_at", time.Now())

	query := fmt.Sprintf(`UPDATE movies SET %s WHERE id = $%d`,
		strings.Join(sets, ", "), argIdx)
	args = append(args, id)

	result, err := r.db.Exec(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update movie: %w", err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return nil, sql.ErrNoRows
	}
	return r.GetByID(id)
}

// Delete removes a collection entry (watch parties cascade).
func (r *MovieRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete movie: %w", err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ToggleFavorite flips the favorite flag and returns the updated entry.
func (r *MovieRepository) ToggleFavorite(id int) (*models.Movie, error) {
	result, err := r.db.Exec(
		`UPDATE movies SET is_favorite = NOT is_favorite, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle favorite: %w", err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return nil, sql.ErrNoRows
	}
	return r.GetByID(id)
}

// Stats aggregates collection statistics.
func (r *MovieRepository) Stats() (*models.CollectionStats, error) {
	stats := &models.CollectionStats{
		GenreDistribution:    make(map[string]int),
		PlatformDistribution: make(map[string]int),
	}

	err := r.db.QueryRow(`
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE content_type = 'movie'),
			COUNT(*) FILTER (WHERE content_type = 'tv_show'),
			COUNT(*) FILTER (WHERE status = 'wishlist'),
			COUNT(*) FILTER (WHERE status = 'watching'),
			COUNT(*) FILTER (WHERE status = 'completed'),
			COUNT(*) FILTER (WHERE is_favorite),
			COALESCE(SUM(duration) FILTER (WHERE content_type = 'movie' AND status = 'completed'), 0)
		FROM movies
	`).Scan(&stats.TotalContent, &stats.Movies, &stats.TVShows,
		&stats.Wishlist, &stats.Watching, &stats.Completed,
		&stats.Favorites, &stats.TotalWatchTimeMinutes)
	if err != nil {
		return nil, fmt.Errorf("stats query failed: %w", err)
	}
	if stats.TotalWatchTimeMinutes > 0 {
		stats.TotalWatchTimeHours = round1(float64(stats.TotalWatchTimeMinutes) / 60)
	}

	// Genre distribution over the comma-joined genre column
	rows, err := r.db.Query(`SELECT genre FROM movies WHERE genre IS NOT NULL AND genre <> ''`)
	if err != nil {
		return nil, fmt.Errorf("genre query failed: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var genre string
		if err := rows.Scan(&genre); err != nil {
			continue
		}
		for _, g := range strings.Split(genre, ",") {
			if g = strings.TrimSpace(g); g != "" {
				stats.GenreDistribution[g]++
			}
		}
	}

	platformRows, err := r.db.Query(`
		SELECT platform, COUNT(*) FROM movies
		WHERE platform IS NOT NULL AND platform <> ''
		GROUP BY platform`)
	if err != nil {
		return nil, fmt.Errorf("platform query failed: %w", err)
	}
	defer platformRows.Close()
	for platformRows.Next() {
		var platform string
		var count int
		if err := platformRows.Scan(&platform, &count); err != nil {
			continue
		}
		stats.PlatformDistribution[platform] = count
	}

	return stats, nil
}

// WatchedEntry is the slice of a completed entry needed for watch-time analytics.
type WatchedEntry struct {
	WatchedAt       time.Time
	ContentType     models.ContentType
	Duration        *int
	EpisodesWatched int
	TotalEpisodes   *int
}

// CompletedWithDates returns completed entries that have a watched timestamp.
func (r *MovieRepository) CompletedWithDates() ([]WatchedEntry, error) {
	rows, err := r.db.Query(`
		SELECT watched_at, content_type, duration, episodes_watched, total_episodes
		FROM movies
		WHERE status = 'completed' AND watched_at IS NOT NULL`)
	if err != nil {
		return nil, fmt.Errorf("watch-time query failed: %w", err)
	}
	defer rows.Close()

	var entries []WatchedEntry
	for rows.Next() {
		var e WatchedEntry
		if err := rows.Scan(&e.WatchedAt, &e.ContentType, &e.Duration,
			&e.EpisodesWatched, &e.TotalEpisodes); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

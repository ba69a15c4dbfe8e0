package models

import (
	"errors"
	"time"
)

// ContentType distinguishes movies from TV shows.
type ContentType string

const (
	ContentTypeMovie  ContentType = "movie"
	ContentTypeTVShow ContentType = "tv_show"
)

// WatchStatus tracks where an entry sits in the user's pipeline.
type WatchStatus string

const (
	StatusWishlist  WatchStatus = "wishlist"
	StatusWatching  WatchStatus = "watching"
	StatusCompleted WatchStatus = "completed"
)

// ValidPlatforms lists the accepted streaming platforms.
var ValidPlatforms = []string{
	"Netflix", "Prime Video", "Disney+", "HBO Max", "Hulu",
	"Apple TV+", "YouTube", "Theater", "Other",
}

var (
	ErrTitleRequired      = errors.New("title is required")
	ErrInvalidContentType = errors.New("content_type must be 'movie' or 'tv_show'")
	ErrInvalidStatus      = errors.New("status must be 'wishlist', 'watching' or 'completed'")
	ErrInvalidPlatform    = errors.New("unknown platform")
)

// Movie represents one entry in the user's collection (movie or TV show).
type Movie struct {
	ID          int         `json:"id"`
	ContentType ContentType `json:"content_type"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	ReleaseYear *int        `json:"release_year,omitempty"`
	Genre       string      `json:"genre,omitempty"` // comma-separated
	Director    string      `json:"director,omitempty"`
	Cast        string      `json:"cast,omitempty"` // comma-separated

	PosterURL   string `json:"poster_url,omitempty"`
	BackdropURL string `json:"backdrop_url,omitempty"`
	TrailerURL  string `json:"trailer_url,omitempty"`

	Platform string      `json:"platform,omitempty"`
	Status   WatchStatus `json:"status"`

	// Movie specific
	Duration *int `json:"duration,omitempty"` // minutes

	// TV show specific
	TotalSeasons    *int `json:"total_seasons,omitempty"`
	TotalEpisodes   *int `json:"total_episodes,omitempty"`
	EpisodesWatched int  `json:"episodes_watched"`
	CurrentSeason   *int `json:"current_season,omitempty"`
	CurrentEpisode  *int `json:"current_episode,omitempty"`

	UserRating *float64 `json:"user_rating,omitempty"` // out of 10
	IMDBRating *float64 `json:"imdb_rating,omitempty"` // provider rating out of 10
	Review     string   `json:"review,omitempty"`
	Notes      string   `json:"notes,omitempty"`

	IMDBId     string `json:"imdb_id,omitempty"`
	IsFavorite bool   `json:"is_favorite"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	WatchedAt *time.Time `json:"watched_at,omitempty"`
}

// MovieCreate is the request payload for adding a collection entry.
type MovieCreate struct {
	ContentType   ContentType `json:"content_type"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	ReleaseYear   *int        `json:"release_year"`
	Genre         string      `json:"genre"`
	Director      string      `json:"director"`
	Cast          string      `json:"cast"`
	PosterURL     string      `json:"poster_url"`
	BackdropURL   string      `json:"backdrop_url"`
	TrailerURL    string      `json:"trailer_url"`
	Platform      string      `json:"platform"`
	Status        WatchStatus `json:"status"`
	Duration      *int        `json:"duration"`
	TotalSeasons  *int        `json:"total_seasons"`
	TotalEpisodes *int        `json:"total_episodes"`
	UserRating    *float64    `json:"user_rating"`
	IMDBRating    *float64    `json:"imdb_rating"`
	Review        string      `json:"review"`
	Notes         string      `json:"notes"`
	IMDBId        string      `json:"imdb_id"`
	IsFavorite    bool        `json:"is_favorite"`
}

// Validate normalizes defaults and rejects malformed payloads.
func (m *MovieCreate) Validate() error {
	if m.Title == "" {
		return ErrTitleRequired
	}
	if m.ContentType == "" {
		m.ContentType = ContentTypeMovie
	}
	if m.ContentType != ContentTypeMovie && m.ContentType != ContentTypeTVShow {
		return ErrInvalidContentType
	}
	if m.Status == "" {
		m.Status = StatusWishlist
	}
	if m.Status != StatusWishlist && m.Status != StatusWatching && m.Status != StatusCompleted {
		return ErrInvalidStatus
	}
	if m.Platform != "" && !IsValidPlatform(m.Platform) {
		return ErrInvalidPlatform
	}
	return nil
}

// IsValidPlatform reports whether the platform is one of the accepted values.
func IsValidPlatform(p string) bool {
	for _, v := range ValidPlatforms {
		if v == p {
			return true
		}
	}
	return false
}

// MovieUpdate is a partial-update payload; nil fields are left untouched.
type MovieUpdate struct {
	ContentType     *ContentType `json:"content_type"`
	Title           *string      `json:"title"`
	Description     *string      `json:"description"`
	ReleaseYear     *int         `json:"release_year"`
	Genre           *string      `json:"genre"`
	Director        *string      `json:"director"`
	Cast            *string      `json:"cast"`
	PosterURL       *string      `json:"poster_url"`
	BackdropURL     *string      `json:"backdrop_url"`
	TrailerURL      *string      `json:"trailer_url"`
	Platform        *string      `json:"platform"`
	Status          *WatchStatus `json:"status"`
	Duration        *int         `json:"duration"`
	TotalSeasons    *int         `json:"total_seasons"`
	TotalEpisodes   *int         `json:"total_episodes"`
	EpisodesWatched *int         `json:"episodes_watched"`
	CurrentSeason   *int         `json:"current_season"`
	CurrentEpisode  *int         `json:"current_episode"`
	UserRating      *float64     `json:"user_rating"`
	IMDBRating      *float64     `json:"imdb_rating"`
	Review          *string      `json:"review"`
	Notes           *string      `json:"notes"`
	IsFavorite      *bool        `json:"is_favorite"`
	WatchedAt       *time.Time   `json:"watched_at"`
}

// MovieListParams holds query parameters for collection listing.
type MovieListParams struct {
	Skip        int         `query:"skip"`
	Limit       int         `query:"limit"`
	ContentType ContentType `query:"content_type"`
	Status      WatchStatus `query:"status"`
	Platform    string      `query:"platform"`
}

// Validate clamps pagination and drops unknown filter values.
func (p *MovieListParams) Validate() {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit < 1 || p.Limit > 1000 {
		p.Limit = 100
	}
	switch p.ContentType {
	case "", ContentTypeMovie, ContentTypeTVShow:
	default:
		p.ContentType = ""
	}
	switch p.Status {
	case "", StatusWishlist, StatusWatching, StatusCompleted:
	default:
		p.Status = ""
	}
	if p.Platform != "" && !IsValidPlatform(p.Platform) {
		p.Platform = ""
	}
}

// CollectionStats summarizes the collection for the analytics endpoint.
type CollectionStats struct {
	TotalContent          int            `json:"total_content"`
	Movies                int            `json:"movies"`
	TVShows               int            `json:"tv_shows"`
	Wishlist              int            `json:"wishlist"`
	Watching              int            `json:"watching"`
	Completed             int            `json:"completed"`
	Favorites             int            `json:"favorites"`
	TotalWatchTimeMinutes int            `json:"total_watch_time_minutes"`
	TotalWatchTimeHours   float64        `json:"total_watch_time_hours"`
	GenreDistribution     map[string]int `json:"genre_distribution"`
	PlatformDistribution  map[string]int `json:"platform_distribution"`
}

// WatchTimeBucket is one period in the watch-time series.
type WatchTimeBucket struct {
	Period           string  `json:"period"`
	Date             string  `json:"date"`
	WatchTimeMinutes float64 `json:"watch_time_minutes"`
	WatchTimeHours   float64 `json:"watch_time_hours"`
	ContentCount     int     `json:"content_count"`
}

// WatchTimeReport is the watch-time analytics response.
type WatchTimeReport struct {
	Period       string            `json:"period"`
	Data         []WatchTimeBucket `json:"data"`
	TotalPeriods int               `json:"total_periods"`
}

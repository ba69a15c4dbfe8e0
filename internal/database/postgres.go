package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"

	"github.com/Vigneswer/MovieMate/internal/config"
)

// NewPostgres creates a new PostgreSQL connection and runs migrations.
func NewPostgres(cfg config.DBConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)

	slog.Info("connected to PostgreSQL", "db", cfg.DBName)

	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

func runMigrations(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS movies (
			id SERIAL PRIMARY KEY,
			content_type VARCHAR(20) NOT NULL DEFAULT 'movie',
			title VARCHAR(255) NOT NULL,
			description TEXT,
			release_year INTEGER,
			genre VARCHAR(200),
			director VARCHAR(200),
			cast_members TEXT,
			poster_url VARCHAR(500),
			backdrop_url VARCHAR(500),
			trailer_url VARCHAR(500),
			platform VARCHAR(50),
			status VARCHAR(20) NOT NULL DEFAULT 'wishlist',
			duration INTEGER,
			total_seasons INTEGER,
			total_episodes INTEGER,
			episodes_watched INTEGER NOT NULL DEFAULT 0,
			current_season INTEGER,
			current_episode INTEGER,
			user_rating DOUBLE PRECISION,
			imdb_rating DOUBLE PRECISION,
			review TEXT,
			notes TEXT,
			imdb_id VARCHAR(50),
			is_favorite BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ,
			watched_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS watch_parties (
			id SERIAL PRIMARY KEY,
			movie_id INTEGER NOT NULL REFERENCES movies(id) ON DELETE CASCADE,
			title VARCHAR(255) NOT NULL,
			host_name VARCHAR(100) NOT NULL,
			selected_datetime TIMESTAMPTZ,
			notes TEXT,
			is_finalized BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS watch_party_time_slots (
			id SERIAL PRIMARY KEY,
			watch_party_id INTEGER NOT NULL REFERENCES watch_parties(id) ON DELETE CASCADE,
			proposed_datetime TIMESTAMPTZ NOT NULL,
			votes INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS watch_party_participants (
			id SERIAL PRIMARY KEY,
			watch_party_id INTEGER NOT NULL REFERENCES watch_parties(id) ON DELETE CASCADE,
			name VARCHAR(100) NOT NULL,
			email VARCHAR(255),
			joined_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS watch_party_votes (
			id SERIAL PRIMARY KEY,
			time_slot_id INTEGER NOT NULL REFERENCES watch_party_time_slots(id) ON DELETE CASCADE,
			participant_id INTEGER NOT NULL REFERENCES watch_party_participants(id) ON DELETE CASCADE,
			is_available BOOLEAN NOT NULL DEFAULT TRUE,
			voted_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (time_slot_id, participant_id)
		)`,
		// Indexes for common query patterns
		`CREATE INDEX IF NOT EXISTS idx_movies_status ON movies(status)`,
		`CREATE INDEX IF NOT EXISTS idx_movies_content_type ON movies(content_type)`,
		`CREATE INDEX IF NOT EXISTS idx_movies_platform ON movies(platform)`,
		`CREATE INDEX IF NOT EXISTS idx_movies_imdb_id ON movies(imdb_id)`,
		`CREATE INDEX IF NOT EXISTS idx_movies_is_favorite ON movies(is_favorite)`,
		`CREATE INDEX IF NOT EXISTS idx_parties_movie_id ON watch_parties(movie_id)`,
		`CREATE INDEX IF NOT EXISTS idx_slots_party_id ON watch_party_time_slots(watch_party_id)`,
		`CREATE INDEX IF NOT EXISTS idx_participants_party_id ON watch_party_participants(watch_party_id)`,
		`CREATE INDEX IF NOT EXISTS idx_votes_slot_id ON watch_party_votes(time_slot_id)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}

	slog.Info("database migrations completed")
	return nil
}

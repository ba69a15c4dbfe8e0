package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the MovieMate backend.
type Config struct {
	DB        DBConfig
	Redis     RedisConfig
	OMDB      OMDBConfig
	Gemini    GeminiConfig
	RateLimit RateLimitConfig
	Port      string
}

// DBConfig holds PostgreSQL configuration.
type DBConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	SSLRootCert string
}

// DSN returns the PostgreSQL connection string.
func (d DBConfig) DSN() string {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
	if d.SSLRootCert != "" {
		dsn += fmt.Sprintf(" sslrootcert=%s", d.SSLRootCert)
	}
	return dsn
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// OMDBConfig holds OMDb API configuration.
type OMDBConfig struct {
	APIKey  string
	BaseURL string
}

// GeminiConfig holds Gemini API configuration.
type GeminiConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// RateLimitConfig holds request rate limiting configuration.
type RateLimitConfig struct {
	MaxRequests int
	WindowSec   int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	dbPort, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	rlMax, _ := strconv.Atoi(getEnv("RATE_LIMIT_MAX", "120"))
	rlWindow, _ := strconv.Atoi(getEnv("RATE_LIMIT_WINDOW_SEC", "60"))

	cfg := &Config{
		DB: DBConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        dbPort,
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			DBName:      getEnv("DB_NAME", "moviemate"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			SSLRootCert: getEnv("DB_SSLROOTCERT", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		OMDB: OMDBConfig{
			APIKey:  getEnv("OMDB_API_KEY", ""),
			BaseURL: getEnv("OMDB_BASE_URL", "http://www.omdbapi.com"),
		},
		Gemini: GeminiConfig{
			APIKey:  getEnv("GEMINI_API_KEY", ""),
			BaseURL: getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
			Model:   getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		},
		RateLimit: RateLimitConfig{
			MaxRequests: rlMax,
			WindowSec:   rlWindow,
		},
		Port: getEnv("SERVER_PORT", "8000"),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

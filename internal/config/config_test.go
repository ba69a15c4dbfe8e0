package config_test

import (
	"testing"

	"github.com/Vigneswer/MovieMate/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("Port = %q, want 8000", cfg.Port)
	}
	if cfg.DB.Host != "localhost" || cfg.DB.Port != 5432 {
		t.Errorf("DB defaults = %s:%d", cfg.DB.Host, cfg.DB.Port)
	}
	if cfg.OMDB.BaseURL != "http://www.omdbapi.com" {
		t.Errorf("OMDB base URL = %q", cfg.OMDB.BaseURL)
	}
	if cfg.Gemini.Model != "gemini-2.0-flash" {
		t.Errorf("Gemini model = %q", cfg.Gemini.Model)
	}
	if cfg.RateLimit.MaxRequests != 120 || cfg.RateLimit.WindowSec != 60 {
		t.Errorf("rate limit defaults = %d/%ds", cfg.RateLimit.MaxRequests, cfg.RateLimit.WindowSec)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("OMDB_API_KEY", "abc123")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.DB.Host != "db.internal" || cfg.DB.Port != 6543 {
		t.Errorf("DB = %s:%d", cfg.DB.Host, cfg.DB.Port)
	}
	if cfg.Port != "9999" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.OMDB.APIKey != "abc123" {
		t.Errorf("OMDB key = %q", cfg.OMDB.APIKey)
	}
}

func TestDSN(t *testing.T) {
	db := config.DBConfig{
		Host: "localhost", Port: 5432, User: "postgres",
		Password: "secret", DBName: "moviemate", SSLMode: "disable",
	}
	want := "host=localhost port=5432 user=postgres password=secret dbname=moviemate sslmode=disable"
	if got := db.DSN(); got != want {
		t.Fatalf("DSN = %q, want %q", got, want)
	}

	db.SSLRootCert = "/certs/root.crt"
	if got := db.DSN(); got != want+" sslrootcert=/certs/root.crt" {
		t.Fatalf("DSN with root cert = %q", got)
	}
}

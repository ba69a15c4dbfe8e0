package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/Vigneswer/MovieMate/internal/config"
	"github.com/Vigneswer/MovieMate/internal/database"
	"github.com/Vigneswer/MovieMate/internal/gemini"
	"github.com/Vigneswer/MovieMate/internal/handler"
	"github.com/Vigneswer/MovieMate/internal/middleware"
	"github.com/Vigneswer/MovieMate/internal/omdb"
	"github.com/Vigneswer/MovieMate/internal/repository"
	"github.com/Vigneswer/MovieMate/internal/service"
)

func main() {
	// Structured logging
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Connect to PostgreSQL
	db, err := database.NewPostgres(cfg.DB)
	if err != nil {
		slog.Error("failed to connect to PostgreSQL", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Connect to Redis (non-fatal if unavailable)
	rdb, err := database.NewRedis(cfg.Redis)
	if err != nil {
		slog.Warn("Redis unavailable, running without cache and rate limiting", "error", err)
	}

	// External clients
	geminiClient := gemini.NewClient(cfg.Gemini.APIKey, cfg.Gemini.BaseURL, cfg.Gemini.Model)

	// Initialize layers
	movieRepo := repository.NewMovieRepository(db)
	partyRepo := repository.NewWatchPartyRepository(db)

	movieSvc := service.NewMovieService(movieRepo, rdb, geminiClient)
	partySvc := service.NewWatchPartyService(partyRepo, movieRepo)
	recSvc := service.NewRecommendationService(movieRepo, func() service.MetadataClient {
		return omdb.NewClient(cfg.OMDB.APIKey, cfg.OMDB.BaseURL)
	})

	omdbClient := omdb.NewClient(cfg.OMDB.APIKey, cfg.OMDB.BaseURL)
	defer omdbClient.Close()

	movieHandler := handler.NewMovieHandler(movieSvc, recSvc, omdbClient)
	partyHandler := handler.NewWatchPartyHandler(partySvc)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "MovieMate",
		ServerHeader: "MovieMate",
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			slog.Error("unhandled error", "error", err, "status", code)
			return c.Status(code).JSON(handler.ErrorResponse{Error: err.Error()})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())
	if rdb != nil {
		rl := middleware.NewRateLimiter(rdb, cfg.RateLimit.MaxRequests, cfg.RateLimit.WindowSec)
		app.Use(rl.Handler())
	}

	// Swagger docs
	swaggerYAML, err := os.ReadFile("docs/swagger.yaml")
	if err != nil {
		slog.Warn("swagger.yaml not found, swagger UI will be unavailable", "error", err)
	} else {
		handler.RegisterSwagger(app, swaggerYAML)
	}

	// API routes. Literal movie paths come before /movies/:id so they are not
	// swallowed by the param route.
	api := app.Group("/api/v1")
	api.Get("/health", movieHandler.Health)

	api.Get("/movies/search", movieHandler.SearchMovies)
	api.Get("/movies/favorites", movieHandler.Favorites)
	api.Get("/movies/stats", movieHandler.Stats)
	api.Get("/movies/surprise-me", movieHandler.SurpriseMe)
	api.Get("/movies/analytics/watch-time", movieHandler.WatchTime)
	api.Get("/movies/genre/:genre", movieHandler.MoviesByGenre)
	api.Get("/movies/status/:status", movieHandler.MoviesByStatus)
	api.Get("/movies/platform/:platform", movieHandler.MoviesByPlatform)
	api.Get("/movies/type/:type", movieHandler.MoviesByType)

	api.Post("/movies", movieHandler.CreateMovie)
	api.Get("/movies", movieHandler.ListMovies)
	api.Get("/movies/:id", movieHandler.GetMovie)
	api.Put("/movies/:id", movieHandler.UpdateMovie)
	api.Delete("/movies/:id", movieHandler.DeleteMovie)
	api.Patch("/movies/:id/favorite", movieHandler.ToggleFavorite)
	api.Patch("/movies/:id/watched", movieHandler.ToggleWatched)
	api.Patch("/movies/:id/status", movieHandler.SetStatus)
	api.Patch("/movies/:id/progress", movieHandler.UpdateProgress)
	api.Post("/movies/:id/generate-review", movieHandler.GenerateReview)

	api.Get("/lookup/movies", movieHandler.LookupSearchMovies)
	api.Get("/lookup/movies/:imdb_id", movieHandler.LookupMovieDetails)
	api.Get("/lookup/tv", movieHandler.LookupSearchSeries)
	api.Get("/lookup/tv/:imdb_id", movieHandler.LookupSeriesDetails)

	api.Post("/watch-parties", partyHandler.CreateParty)
	api.Get("/watch-parties", partyHandler.ListParties)
	api.Get("/watch-parties/movie/:movie_id", partyHandler.PartiesByMovie)
	api.Get("/watch-parties/:id", partyHandler.GetParty)
	api.Put("/watch-parties/:id", partyHandler.UpdateParty)
	api.Delete("/watch-parties/:id", partyHandler.DeleteParty)
	api.Post("/watch-parties/:id/participants", partyHandler.AddParticipant)
	api.Post("/watch-parties/:id/votes", partyHandler.CastVote)
	api.Get("/watch-parties/:id/best-time", partyHandler.BestTime)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		slog.Info("shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	addr := ":" + cfg.Port
	slog.Info("starting MovieMate backend", "addr", addr)
	if err := app.Listen(addr); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

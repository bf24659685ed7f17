package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/khiasu/UniManagePro/internal/api"
	"github.com/khiasu/UniManagePro/internal/config"
	"github.com/khiasu/UniManagePro/internal/repository"
	"github.com/khiasu/UniManagePro/internal/repository/memory"
	"github.com/khiasu/UniManagePro/internal/repository/postgres"
	"github.com/khiasu/UniManagePro/internal/repository/redis"
	"github.com/khiasu/UniManagePro/internal/repository/sqlite"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load .env file - try multiple locations
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if err := godotenv.Load(p); err == nil {
			break
		}
	}

	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if level, err := zerolog.ParseLevel(cfg.Logging.Level); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	log.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Str("backend", cfg.Store.Backend).
		Msg("Starting resource booking API server")

	ctx := context.Background()
	deps := api.Deps{}

	// Initialize the selected store backend
	switch cfg.Store.Backend {
	case config.BackendPostgres:
		db, err := postgres.NewDB(ctx, cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer db.Close()
		deps.Store = postgres.NewStore(db)
		deps.Pinger = db

	case config.BackendSQLite:
		store, err := sqlite.NewStore(ctx, cfg.SQLite.Path)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open sqlite store")
		}
		defer store.Close()
		deps.Store = store
		deps.Pinger = store

	case config.BackendMemory:
		store := memory.NewStore()
		if cfg.Store.Seed {
			if err := store.Seed(ctx); err != nil {
				log.Fatal().Err(err).Msg("Failed to seed memory store")
			}
		}
		deps.Store = store

	default:
		log.Fatal().Str("backend", cfg.Store.Backend).Msg("Unknown store backend")
	}

	// Optional seed for the SQL backends
	if cfg.Store.Seed && cfg.Store.Backend != config.BackendMemory {
		if err := seedIfEmpty(ctx, deps.Store); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed store")
		}
	}

	// Initialize Redis when enabled
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer redisClient.Close()
		deps.Redis = redisClient
	}

	// Initialize router
	router := api.NewRouter(cfg, deps)

	// Create HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Msgf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

// seedIfEmpty loads the campus catalogue into a fresh SQL-backed store. A
// store that already has departments is left alone.
func seedIfEmpty(ctx context.Context, store repository.Store) error {
	existing, err := store.ListDepartments(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	seeded := memory.NewStore()
	if err := seeded.Seed(ctx); err != nil {
		return err
	}
	return memory.CopyInto(ctx, seeded, store)
}

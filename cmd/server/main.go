package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/iliyamo/animal-shelter/internal/config"        // Internal config loader
	"github.com/iliyamo/animal-shelter/internal/database"      // MySQL connection and schema
	"github.com/iliyamo/animal-shelter/internal/handler"
	"github.com/iliyamo/animal-shelter/internal/observability" // zerolog setup
	"github.com/iliyamo/animal-shelter/internal/queue"         // reservation events
	"github.com/iliyamo/animal-shelter/internal/repository"
	"github.com/iliyamo/animal-shelter/internal/repository/memory"
	"github.com/iliyamo/animal-shelter/internal/router" // Internal router setup
	"github.com/iliyamo/animal-shelter/internal/service"
)

func main() {
	cfg, err := config.Read() // Load environment config
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	observability.InitLogger("animal-shelter", cfg.Env, cfg.LogLevel)

	checks := map[string]handler.Check{}
	repos, closeStore, err := openStore(cfg, checks)
	if err != nil {
		log.Fatal().Err(err).Str("storage", cfg.Storage).Msg("open store")
	}
	defer closeStore()

	settings := service.Settings{
		JWTSecret:  cfg.JWTSecret,
		AccessTTL:  cfg.AccessTTL,
		BcryptCost: cfg.BcryptCost,
	}
	// leave Events nil when RabbitMQ is not configured
	if cfg.RabbitMQURL != "" {
		settings.Events = queue.NewPublisher(cfg.RabbitMQURL)
	}

	var rdb *redis.Client
	if cfg.Cache.Enabled || cfg.RateLimit.Enabled {
		rdb, err = config.NewRedisClient(cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable; cache and rate limit disabled")
		} else {
			defer rdb.Close()
			checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		}
	}

	e := router.New(router.Options{
		Services:  service.New(repos, settings),
		JWTSecret: cfg.JWTSecret,
		Redis:     rdb,
		Cache:     cfg.Cache,
		RateLimit: cfg.RateLimit,
		Checks:    checks,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := ":" + cfg.Port // Address string with port
	go func() {
		log.Info().Str("addr", addr).Str("env", cfg.Env).Str("storage", cfg.Storage).Msg("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	log.Info().Msg("stopped")
}

// openStore returns the repositories for cfg.Storage and a close func.
// The MySQL store registers its ping in checks.
func openStore(cfg config.Config, checks map[string]handler.Check) (repository.Set, func(), error) {
	if cfg.Storage == config.StorageMemory {
		log.Warn().Msg("using in-memory storage; data is lost on restart")
		return memory.New().Set(), func() {}, nil
	}

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		return repository.Set{}, nil, err
	}
	if cfg.DBApplySchema {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := database.ApplySchema(ctx, db); err != nil {
			_ = db.Close()
			return repository.Set{}, nil, err
		}
	}
	checks["database"] = db.PingContext
	return repository.NewMySQLSet(db), func() { _ = db.Close() }, nil
}

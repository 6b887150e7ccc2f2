package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/escaperoom/escaperoom-backend/internal/auth"
	"github.com/escaperoom/escaperoom-backend/internal/auth/jwt"
	"github.com/escaperoom/escaperoom-backend/internal/config"
	"github.com/escaperoom/escaperoom-backend/internal/db/migrations"
	"github.com/escaperoom/escaperoom-backend/internal/db/repository"
	sqlcgen "github.com/escaperoom/escaperoom-backend/internal/db/sqlc"
	"github.com/escaperoom/escaperoom-backend/internal/logging"
	"github.com/escaperoom/escaperoom-backend/internal/server"
	"github.com/escaperoom/escaperoom-backend/internal/story"
	"github.com/escaperoom/escaperoom-backend/internal/story/generator"
)

// Application aggregates shared infrastructure (DB, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool  *pgxpool.Pool
	redis *redis.Client
	http  *http.Server
}

// New bootstraps logger, Postgres, optional Redis and the HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env, cfg.LogLevel)
	logger.Info().Msg("starting application bootstrap")

	pool, err := pgxpool.New(ctx, cfg.Postgres.ConnString())
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if cfg.Postgres.AutoMigrate {
		if err := migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		logger.Info().Msg("database migrations applied")
	}

	checks := map[string]server.Check{
		"postgres": pool.Ping,
	}

	var redisClient *redis.Client
	var storyCache story.StoryCache
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		storyCache = story.NewCache(redisClient, cfg.Cache.StoryTTL)
		checks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	} else {
		logger.Warn().Msg("REDIS_ADDR not set; story cache disabled")
	}

	queries := sqlcgen.New(pool)

	authSvc, err := auth.NewService(repository.NewUserRepository(queries), auth.ServiceOptions{
		TokenConfig: jwt.TokenConfig{
			Secret:    []byte(cfg.Security.JWTSecret),
			AccessTTL: cfg.Security.AccessTTL,
			Issuer:    cfg.Name,
		},
		BcryptCost: cfg.Security.BcryptCost,
	}, logger)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("init auth: %w", err)
	}

	var gen story.ContentGenerator
	if cfg.AI.GenerationEnabled() {
		gen = generator.New(generator.NewClient(generator.Config{
			APIKey:  cfg.AI.APIKey,
			Model:   cfg.AI.Model,
			BaseURL: cfg.AI.BaseURL,
			Timeout: cfg.AI.HTTPTimeout,
		}, logger))
		logger.Info().Str("model", cfg.AI.Model).Msg("story generation enabled")
	} else {
		logger.Warn().Msg("GOOGLE_API_KEY not set; generation endpoints will return 503")
	}

	storySvc := story.NewService(
		repository.NewStoryRepository(queries),
		repository.NewPuzzleRepository(queries),
		repository.NewTransactor(pool),
		storyCache,
		gen,
		logger,
	)

	apiServer := server.NewHTTPServer(cfg, logger, checks, server.Handlers{
		AuthService: authSvc,
		Auth:        auth.NewHTTPHandlers(authSvc, logger),
		Story:       story.NewHTTPHandlers(storySvc, logger),
	})

	return &Application{
		cfg:    cfg,
		logger: logger,
		pool:   pool,
		redis:  redisClient,
		http:   apiServer,
	}, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var runErr error
	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		runErr = fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	a.pool.Close()
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error().Err(err).Msg("redis shutdown error")
		}
	}

	a.logger.Info().Msg("shutdown complete")
	return runErr
}

func migrate(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := migrations.Up(ctx, db); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

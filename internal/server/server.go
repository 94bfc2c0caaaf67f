// Package server defines the core Server struct that composes the app's main dependencies.
//
// It owns the lifecycle of:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - database pool (only with the relational storage backend)
//   - redis client and background job worker (only when Redis is configured)
//   - http.Server
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/hbnb-api/internal/config"
	"github.com/deppfellow/hbnb-api/internal/database"
	"github.com/deppfellow/hbnb-api/internal/lib/job"
	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	loggerPkg "github.com/deppfellow/hbnb-api/internal/logger"
)

// Server is the application container that holds shared resources.
//
// It is not the HTTP server itself. DB, Redis and Job are nil when the
// corresponding backend is not configured.
type Server struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService
	DB            *database.Database
	Redis         *redis.Client
	Job           *job.JobService

	httpServer *http.Server
}

// New constructs a Server and initializes core dependencies.
//
// A database failure is fatal when storage.type is "db". Redis is optional:
// a failed ping is logged and the API runs without background jobs.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	server := &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
	}

	if cfg.Storage.Type == config.StorageDB {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := database.Migrate(ctx, logger, cfg); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}

		db, err := database.New(cfg, logger, loggerService)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		server.DB = db
	}

	if cfg.Redis.Address != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr: cfg.Redis.Address,
		})

		if loggerService.GetApplication() != nil {
			redisClient.AddHook(nrredis.NewHook(redisClient.Options()))
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Error().Err(err).Msg("failed to connect to Redis, continuing without Redis")
			_ = redisClient.Close()
		} else {
			server.Redis = redisClient

			jobService := job.NewJobService(logger, cfg)
			if err := jobService.Start(); err != nil {
				return nil, fmt.Errorf("failed to start job server: %w", err)
			}
			server.Job = jobService
		}
	}

	return server, nil
}

// SetupHTTPServer configures the internal net/http server around handler.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         s.Config.API.Address(),
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.API.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.API.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.API.IdleTimeout) * time.Second,
	}
}

// Start runs the HTTP server. It requires SetupHTTPServer to be called first
// and blocks until the server stops.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("address", s.httpServer.Addr).
		Str("env", s.Config.Primary.Env).
		Str("storage", s.Config.Storage.Type).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server, then releases the database pool,
// the job worker, the Redis client and the New Relic agent.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	}

	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database connection: %w", err)
		}
	}

	if s.Job != nil {
		s.Job.Stop()
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			return fmt.Errorf("failed to close redis client: %w", err)
		}
	}

	s.LoggerService.Shutdown()

	return nil
}

// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed job queue: tasks are enqueued with asynq.Client and
// processed by the handlers registered on asynq.Server.
package job

import (
	"context"
	"errors"

	"github.com/deppfellow/hbnb-api/internal/config"
	"github.com/deppfellow/hbnb-api/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// Mailer is the part of the email client the job handlers use.
type Mailer interface {
	SendWelcome(w email.Welcome) error
}

// JobService holds the Asynq client (enqueue) and server (worker execution).
type JobService struct {
	Client *asynq.Client
	server *asynq.Server
	mailer Mailer
	logger *zerolog.Logger
}

// NewJobService creates a JobService using the Redis instance from cfg.
// Queue weights give "critical" tasks the largest worker share.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisAddr := cfg.Redis.Address

	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr: redisAddr,
	})

	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				QueueCritical: 6,
				QueueDefault:  3,
				QueueLow:      1,
			},
		},
	)

	return &JobService{
		Client: client,
		server: server,
		mailer: email.NewClient(cfg, logger),
		logger: logger,
	}
}

// Start registers the task handlers and starts the worker server.
// asynq.Server.Start does not block.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskUserWelcome, j.handleWelcomeTask)

	j.logger.Info().Msg("starting background job server")

	return j.server.Start(mux)
}

// EnqueueWelcome queues the welcome email for a new user. Enqueueing the
// same user twice is not an error.
func (j *JobService) EnqueueWelcome(ctx context.Context, w email.Welcome) error {
	task, err := NewWelcomeTask(w)
	if err != nil {
		return err
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		j.logger.Debug().
			Str("user_id", w.UserID).
			Msg("welcome email already queued")
		return nil
	}
	if err != nil {
		return err
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Msg("enqueued welcome email task")
	return nil
}

// Stop gracefully stops the job server and closes client resources.
func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Error().Err(err).Msg("failed to close job client")
	}
}

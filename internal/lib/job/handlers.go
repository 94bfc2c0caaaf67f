package job

import (
	"context"
	"encoding/json"

	"github.com/deppfellow/hbnb-api/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/pkg/errors"
)

func (j *JobService) handleWelcomeTask(ctx context.Context, t *asynq.Task) error {
	var w email.Welcome
	if err := json.Unmarshal(t.Payload(), &w); err != nil {
		return errors.Wrapf(asynq.SkipRetry, "decoding welcome payload: %v", err)
	}
	if w.Email == "" {
		return errors.Wrap(asynq.SkipRetry, "welcome task has no recipient")
	}

	logger := j.logger.With().
		Str("task", TaskUserWelcome).
		Str("user_id", w.UserID).
		Logger()

	if err := j.mailer.SendWelcome(w); err != nil {
		logger.Error().Err(err).Msg("failed to send welcome email")
		return err
	}

	logger.Info().Msg("sent welcome email")
	return nil
}

package job

import (
	"encoding/json"
	"time"

	"github.com/deppfellow/hbnb-api/internal/lib/email"
	"github.com/hibiken/asynq"
)

const (
	TaskUserWelcome = "user:welcome"

	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// NewWelcomeTask builds the welcome email task for a new user.
//
// The task id is derived from the user id, so a user is welcomed at most
// once while the task is retained by Asynq.
func NewWelcomeTask(w email.Welcome) (*asynq.Task, error) {
	payload, err := json.Marshal(w)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskUserWelcome,
		payload,
		asynq.TaskID("welcome:"+w.UserID),
		asynq.MaxRetry(5),
		asynq.Queue(QueueLow),
		asynq.Timeout(30*time.Second),
		asynq.Retention(24*time.Hour),
	), nil
}

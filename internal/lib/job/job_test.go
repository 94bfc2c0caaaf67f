package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/deppfellow/hbnb-api/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	sent []email.Welcome
	err  error
}

func (f *fakeMailer) SendWelcome(w email.Welcome) error {
	f.sent = append(f.sent, w)
	return f.err
}

func newTestJobService(m Mailer) *JobService {
	logger := zerolog.Nop()
	return &JobService{mailer: m, logger: &logger}
}

var ada = email.Welcome{UserID: "u1", Email: "a@b.com", FirstName: "Ada"}

func TestNewWelcomeTask(t *testing.T) {
	task, err := NewWelcomeTask(ada)
	require.NoError(t, err)

	assert.Equal(t, TaskUserWelcome, task.Type())

	var w email.Welcome
	require.NoError(t, json.Unmarshal(task.Payload(), &w))
	assert.Equal(t, ada, w)
}

func TestHandleWelcomeTask(t *testing.T) {
	mailer := &fakeMailer{}
	j := newTestJobService(mailer)

	task, err := NewWelcomeTask(ada)
	require.NoError(t, err)

	require.NoError(t, j.handleWelcomeTask(context.Background(), task))
	assert.Equal(t, []email.Welcome{ada}, mailer.sent)
}

func TestHandleWelcomeTaskPropagatesSendFailure(t *testing.T) {
	j := newTestJobService(&fakeMailer{err: errors.New("provider down")})

	task, err := NewWelcomeTask(ada)
	require.NoError(t, err)

	err = j.handleWelcomeTask(context.Background(), task)
	assert.EqualError(t, err, "provider down")
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleWelcomeTaskSkipsRetry(t *testing.T) {
	mailer := &fakeMailer{}
	j := newTestJobService(mailer)

	err := j.handleWelcomeTask(context.Background(), asynq.NewTask(TaskUserWelcome, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	err = j.handleWelcomeTask(context.Background(), asynq.NewTask(TaskUserWelcome, []byte(`{"user_id":"u1"}`)))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	assert.Empty(t, mailer.sent)
}

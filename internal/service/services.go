package service

import (
	"context"

	"github.com/deppfellow/hbnb-api/internal/lib/email"
	"github.com/deppfellow/hbnb-api/internal/lib/job"
	"github.com/deppfellow/hbnb-api/internal/model"
	"github.com/deppfellow/hbnb-api/internal/server"
	"github.com/rs/zerolog"
)

type Services struct {
	Users     *ResourceService
	States    *ResourceService
	Amenities *ResourceService
	Cities    *ResourceService
	Places    *ResourceService
	Reviews   *ResourceService
	Stats     *StatsService
	Job       *job.JobService
}

// WelcomeQueue schedules the welcome email of a new user.
type WelcomeQueue interface {
	EnqueueWelcome(ctx context.Context, w email.Welcome) error
}

func NewService(s *server.Server) (*Services, error) {
	services := &Services{
		Users:     NewResourceService(UserResource, s.Logger),
		States:    NewResourceService(StateResource, s.Logger),
		Amenities: NewResourceService(AmenityResource, s.Logger),
		Cities:    NewResourceService(CityResource, s.Logger),
		Places:    NewResourceService(PlaceResource, s.Logger),
		Reviews:   NewResourceService(ReviewResource, s.Logger),
		Stats:     NewStatsService(),
		Job:       s.Job,
	}

	if s.Job != nil {
		services.Users.OnCreate(WelcomeHook(s.Job, s.Logger))
	}

	return services, nil
}

// WelcomeHook enqueues a welcome email for every created user. Queue
// failures are logged and do not fail the request.
func WelcomeHook(queue WelcomeQueue, logger *zerolog.Logger) CreateHook {
	return func(ctx context.Context, e model.Entity) {
		user, ok := e.(*model.User)
		if !ok || user.Email == "" {
			return
		}

		w := email.Welcome{
			UserID:    user.ID,
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
		}
		if err := queue.EnqueueWelcome(ctx, w); err != nil {
			logger.Error().
				Err(err).
				Str("user_id", user.ID).
				Msg("failed to enqueue welcome email")
		}
	}
}

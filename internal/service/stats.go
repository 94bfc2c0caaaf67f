package service

import (
	"context"

	"github.com/deppfellow/hbnb-api/internal/model"
	"github.com/deppfellow/hbnb-api/internal/repository"
)

// Stats counts every entity kind. Field order is the wire order.
type Stats struct {
	Amenities int `json:"amenities"`
	Cities    int `json:"cities"`
	Places    int `json:"places"`
	Reviews   int `json:"reviews"`
	States    int `json:"states"`
	Users     int `json:"users"`
}

type StatsService struct{}

func NewStatsService() *StatsService {
	return &StatsService{}
}

func (s *StatsService) Stats(ctx context.Context, sess repository.Session) (*Stats, error) {
	counts := make(map[model.Kind]int, len(model.Kinds))
	for _, kind := range model.Kinds {
		n, err := sess.Count(ctx, kind)
		if err != nil {
			return nil, err
		}
		counts[kind] = n
	}

	return &Stats{
		Amenities: counts[model.KindAmenity],
		Cities:    counts[model.KindCity],
		Places:    counts[model.KindPlace],
		Reviews:   counts[model.KindReview],
		States:    counts[model.KindState],
		Users:     counts[model.KindUser],
	}, nil
}

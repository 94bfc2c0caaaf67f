package service

import "github.com/deppfellow/hbnb-api/internal/model"

var baseImmutable = []string{"id", "created_at", "updated_at"}

func immutable(extra ...string) []string {
	return append(append([]string{}, baseImmutable...), extra...)
}

var (
	UserResource = Resource{
		Kind: model.KindUser,
		Required: []Requirement{
			{Field: "email"},
			{Field: "password"},
		},
		Immutable: immutable("email"),
	}

	StateResource = Resource{
		Kind:      model.KindState,
		Required:  []Requirement{{Field: "name"}},
		Immutable: immutable(),
	}

	AmenityResource = Resource{
		Kind:      model.KindAmenity,
		Required:  []Requirement{{Field: "name"}},
		Immutable: immutable(),
	}

	CityResource = Resource{
		Kind:        model.KindCity,
		Parent:      model.KindState,
		ParentField: "state_id",
		Required:    []Requirement{{Field: "name"}},
		Immutable:   immutable("state_id"),
	}

	PlaceResource = Resource{
		Kind:        model.KindPlace,
		Parent:      model.KindCity,
		ParentField: "city_id",
		Required: []Requirement{
			{Field: "user_id", Ref: model.KindUser},
			{Field: "name"},
		},
		Immutable: immutable("user_id", "city_id"),
	}

	ReviewResource = Resource{
		Kind:        model.KindReview,
		Parent:      model.KindPlace,
		ParentField: "place_id",
		Required: []Requirement{
			{Field: "user_id", Ref: model.KindUser},
			{Field: "text"},
		},
		Immutable: immutable("user_id", "place_id"),
	}
)

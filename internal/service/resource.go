package service

import (
	"context"
	"errors"
	"slices"
	"sort"

	"github.com/deppfellow/hbnb-api/internal/errs"
	"github.com/deppfellow/hbnb-api/internal/model"
	"github.com/deppfellow/hbnb-api/internal/repository"
	"github.com/rs/zerolog"
)

// Requirement is a payload field that must be present on create.
type Requirement struct {
	Field string

	// Ref, when set, is the kind the field's id must resolve to.
	Ref model.Kind
}

// Resource describes one entity family exposed over HTTP.
type Resource struct {
	Kind model.Kind

	// Parent and ParentField describe the nesting of collection routes,
	// e.g. places under a city through city_id. Empty for top-level kinds.
	Parent      model.Kind
	ParentField string

	// Required is checked in order; the first missing field is reported.
	Required []Requirement

	// Immutable keys are ignored by updates.
	Immutable []string
}

// createIgnored keys are server-assigned and never read from a create payload.
var createIgnored = []string{"id", "created_at", "updated_at"}

// Decoder returns the request body as a JSON object.
type Decoder func() (map[string]any, error)

// CreateHook runs after an entity has been committed.
type CreateHook func(ctx context.Context, e model.Entity)

// ResourceService implements list, get, create, update and delete for one
// Resource against a storage session.
type ResourceService struct {
	Resource    Resource
	logger      *zerolog.Logger
	afterCreate CreateHook
}

func NewResourceService(resource Resource, logger *zerolog.Logger) *ResourceService {
	return &ResourceService{
		Resource: resource,
		logger:   logger,
	}
}

// OnCreate registers a hook called after every successful create.
func (r *ResourceService) OnCreate(hook CreateHook) {
	r.afterCreate = hook
}

func (r *ResourceService) fetch(ctx context.Context, sess repository.Session, kind model.Kind, id string) (model.Entity, error) {
	e, err := sess.Get(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, errs.NotFound()
	}
	return e, nil
}

// List returns every entity of the kind, or the children of parentID for a
// nested resource.
func (r *ResourceService) List(ctx context.Context, sess repository.Session, parentID string) ([]map[string]any, error) {
	var (
		entities []model.Entity
		err      error
	)

	if r.Resource.Parent != "" {
		if _, err := r.fetch(ctx, sess, r.Resource.Parent, parentID); err != nil {
			return nil, err
		}
		entities, err = sess.AllBy(ctx, r.Resource.Kind, r.Resource.ParentField, parentID)
	} else {
		entities, err = sess.All(ctx, r.Resource.Kind)
	}
	if err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(entities))
	for _, e := range entities {
		out = append(out, e.ToMap())
	}
	return out, nil
}

func (r *ResourceService) Get(ctx context.Context, sess repository.Session, id string) (map[string]any, error) {
	e, err := r.fetch(ctx, sess, r.Resource.Kind, id)
	if err != nil {
		return nil, err
	}
	return e.ToMap(), nil
}

// Delete removes the entity and its dependents and commits.
func (r *ResourceService) Delete(ctx context.Context, sess repository.Session, id string) (map[string]any, error) {
	e, err := r.fetch(ctx, sess, r.Resource.Kind, id)
	if err != nil {
		return nil, err
	}

	if err := sess.Delete(ctx, e); err != nil {
		return nil, err
	}
	if err := sess.Save(ctx); err != nil {
		return nil, err
	}

	r.logger.Info().
		Str("kind", string(r.Resource.Kind)).
		Str("id", id).
		Msg("entity deleted")

	return map[string]any{}, nil
}

// Create builds a new entity from the payload.
//
// Order of checks: parent exists, body is a JSON object, then each required
// field in turn, resolving referenced ids as soon as the field is seen.
func (r *ResourceService) Create(ctx context.Context, sess repository.Session, parentID string, decode Decoder) (map[string]any, error) {
	if r.Resource.Parent != "" {
		if _, err := r.fetch(ctx, sess, r.Resource.Parent, parentID); err != nil {
			return nil, err
		}
	}

	payload, err := decode()
	if err != nil {
		return nil, err
	}

	for _, req := range r.Resource.Required {
		value, ok := payload[req.Field]
		if !ok {
			return nil, errs.MissingField(req.Field)
		}
		if req.Ref == "" {
			continue
		}
		id, _ := value.(string)
		if _, err := r.fetch(ctx, sess, req.Ref, id); err != nil {
			return nil, err
		}
	}

	e, err := model.New(r.Resource.Kind)
	if err != nil {
		return nil, err
	}

	for _, key := range sortedKeys(payload) {
		if slices.Contains(createIgnored, key) {
			continue
		}
		if err := setField(e, key, payload[key]); err != nil {
			return nil, err
		}
	}

	if r.Resource.Parent != "" {
		if err := e.Set(r.Resource.ParentField, parentID); err != nil {
			return nil, err
		}
	}

	if err := sess.Add(ctx, e); err != nil {
		return nil, err
	}
	if err := sess.Save(ctx); err != nil {
		return nil, err
	}

	r.logger.Info().
		Str("kind", string(r.Resource.Kind)).
		Str("id", e.Base().ID).
		Msg("entity created")

	if r.afterCreate != nil {
		r.afterCreate(ctx, e)
	}

	return e.ToMap(), nil
}

// Update merges every mutable payload key into the entity and commits.
func (r *ResourceService) Update(ctx context.Context, sess repository.Session, id string, decode Decoder) (map[string]any, error) {
	e, err := r.fetch(ctx, sess, r.Resource.Kind, id)
	if err != nil {
		return nil, err
	}

	payload, err := decode()
	if err != nil {
		return nil, err
	}

	for _, key := range sortedKeys(payload) {
		if slices.Contains(r.Resource.Immutable, key) {
			continue
		}
		if err := setField(e, key, payload[key]); err != nil {
			return nil, err
		}
	}

	if err := sess.Add(ctx, e); err != nil {
		return nil, err
	}
	if err := sess.Save(ctx); err != nil {
		return nil, err
	}

	return e.ToMap(), nil
}

func setField(e model.Entity, key string, value any) error {
	err := e.Set(key, value)
	if err == nil {
		return nil
	}

	var attrErr *model.AttributeError
	if errors.As(err, &attrErr) {
		return errs.InvalidField(key, err)
	}
	return err
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

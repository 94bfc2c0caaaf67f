package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/deppfellow/hbnb-api/internal/errs"
	"github.com/deppfellow/hbnb-api/internal/lib/email"
	"github.com/deppfellow/hbnb-api/internal/repository"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	ctx   context.Context
	store *repository.MemoryStorage
	svc   map[string]*ResourceService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := zerolog.Nop()
	return &fixture{
		ctx:   context.Background(),
		store: repository.NewMemoryStorage(),
		svc: map[string]*ResourceService{
			"users":  NewResourceService(UserResource, &logger),
			"states": NewResourceService(StateResource, &logger),
			"cities": NewResourceService(CityResource, &logger),
			"places": NewResourceService(PlaceResource, &logger),
			"review": NewResourceService(ReviewResource, &logger),
		},
	}
}

// run executes fn in a fresh session, as one request would.
func (f *fixture) run(t *testing.T, fn func(sess repository.Session) (map[string]any, error)) (map[string]any, error) {
	t.Helper()
	sess := f.store.Session(f.ctx)
	defer sess.Close()
	return fn(sess)
}

func body(payload map[string]any) Decoder {
	return func() (map[string]any, error) { return payload, nil }
}

func notJSON() (map[string]any, error) {
	return nil, errs.NotAJSON()
}

func requireHTTPError(t *testing.T, err error, status int, message string) {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %v", err)
	assert.Equal(t, status, httpErr.Status)
	assert.Equal(t, message, httpErr.Message)
}

func (f *fixture) create(t *testing.T, resource, parentID string, payload map[string]any) map[string]any {
	t.Helper()
	out, err := f.run(t, func(sess repository.Session) (map[string]any, error) {
		return f.svc[resource].Create(f.ctx, sess, parentID, body(payload))
	})
	require.NoError(t, err)
	return out
}

func TestCreateUser(t *testing.T) {
	f := newFixture(t)

	user := f.create(t, "users", "", map[string]any{
		"email":    "a@b.com",
		"password": "x",
		"id":       "client-id",
	})

	assert.Equal(t, "a@b.com", user["email"])
	assert.Equal(t, "User", user["__class__"])
	assert.NotEqual(t, "client-id", user["id"])
	assert.NotContains(t, user, "password")
}

func TestCreateUserMissingFieldsInOrder(t *testing.T) {
	f := newFixture(t)

	_, err := f.run(t, func(sess repository.Session) (map[string]any, error) {
		return f.svc["users"].Create(f.ctx, sess, "", body(map[string]any{}))
	})
	requireHTTPError(t, err, http.StatusBadRequest, "Missing email")

	_, err = f.run(t, func(sess repository.Session) (map[string]any, error) {
		return f.svc["users"].Create(f.ctx, sess, "", body(map[string]any{"email": "a@b.com"}))
	})
	requireHTTPError(t, err, http.StatusBadRequest, "Missing password")
}

func TestCreateRejectsTypeMismatch(t *testing.T) {
	f := newFixture(t)

	_, err := f.run(t, func(sess repository.Session) (map[string]any, error) {
		return f.svc["states"].Create(f.ctx, sess, "", body(map[string]any{"name": 42}))
	})
	requireHTTPError(t, err, http.StatusBadRequest, "Invalid name")
}

func TestCreatePlaceCheckOrder(t *testing.T) {
	f := newFixture(t)
	state := f.create(t, "states", "", map[string]any{"name": "CA"})
	city := f.create(t, "cities", state["id"].(string), map[string]any{"name": "SF"})
	cityID := city["id"].(string)

	cases := []struct {
		name     string
		parentID string
		decode   Decoder
		status   int
		message  string
	}{
		{"missing city beats bad body", "nope", notJSON, http.StatusNotFound, errs.NotFoundMessage},
		{"bad body", cityID, notJSON, http.StatusBadRequest, errs.NotAJSONMessage},
		{"missing user_id", cityID, body(map[string]any{}), http.StatusBadRequest, "Missing user_id"},
		{"unknown user beats missing name", cityID, body(map[string]any{"user_id": "ghost"}), http.StatusNotFound, errs.NotFoundMessage},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.run(t, func(sess repository.Session) (map[string]any, error) {
				return f.svc["places"].Create(f.ctx, sess, tc.parentID, tc.decode)
			})
			requireHTTPError(t, err, tc.status, tc.message)
		})
	}

	user := f.create(t, "users", "", map[string]any{"email": "a@b.com", "password": "x"})
	_, err := f.run(t, func(sess repository.Session) (map[string]any, error) {
		return f.svc["places"].Create(f.ctx, sess, cityID, body(map[string]any{"user_id": user["id"]}))
	})
	requireHTTPError(t, err, http.StatusBadRequest, "Missing name")
}

func TestCreatePlaceInjectsParent(t *testing.T) {
	f := newFixture(t)
	state := f.create(t, "states", "", map[string]any{"name": "CA"})
	city := f.create(t, "cities", state["id"].(string), map[string]any{"name": "SF"})
	user := f.create(t, "users", "", map[string]any{"email": "a@b.com", "password": "x"})

	place := f.create(t, "places", city["id"].(string), map[string]any{
		"user_id": user["id"],
		"name":    "Loft",
		"city_id": "forged",
		"pets":    true,
	})

	assert.Equal(t, city["id"], place["city_id"])
	assert.Equal(t, user["id"], place["user_id"])
	assert.Equal(t, true, place["pets"])

	list, err := f.run(t, func(sess repository.Session) (map[string]any, error) {
		items, err := f.svc["places"].List(f.ctx, sess, city["id"].(string))
		return map[string]any{"items": items}, err
	})
	require.NoError(t, err)
	require.Len(t, list["items"], 1)
}

func TestUpdateIgnoresImmutableFields(t *testing.T) {
	f := newFixture(t)
	state := f.create(t, "states", "", map[string]any{"name": "CA"})
	city := f.create(t, "cities", state["id"].(string), map[string]any{"name": "SF"})
	user := f.create(t, "users", "", map[string]any{"email": "a@b.com", "password": "x"})
	place := f.create(t, "places", city["id"].(string), map[string]any{"user_id": user["id"], "name": "Loft"})
	id := place["id"].(string)

	updated, err := f.run(t, func(sess repository.Session) (map[string]any, error) {
		return f.svc["places"].Update(f.ctx, sess, id, body(map[string]any{
			"id":         "ignored",
			"name":       "New",
			"city_id":    "other",
			"user_id":    "other",
			"created_at": "2000-01-01T00:00:00.000000",
			"updated_at": "2000-01-01T00:00:00.000000",
		}))
	})
	require.NoError(t, err)

	assert.Equal(t, id, updated["id"])
	assert.Equal(t, "New", updated["name"])
	assert.Equal(t, city["id"], updated["city_id"])
	assert.Equal(t, user["id"], updated["user_id"])
	assert.Equal(t, place["created_at"], updated["created_at"])
	assert.NotEqual(t, "2000-01-01T00:00:00.000000", updated["updated_at"])
}

func TestUpdateUserKeepsEmail(t *testing.T) {
	f := newFixture(t)
	user := f.create(t, "users", "", map[string]any{"email": "a@b.com", "password": "x"})

	updated, err := f.run(t, func(sess repository.Session) (map[string]any, error) {
		return f.svc["users"].Update(f.ctx, sess, user["id"].(string), body(map[string]any{
			"email":      "other@b.com",
			"first_name": "Ada",
		}))
	})
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", updated["email"])
	assert.Equal(t, "Ada", updated["first_name"])
}

func TestUpdateMissingTargetBeatsBadBody(t *testing.T) {
	f := newFixture(t)

	_, err := f.run(t, func(sess repository.Session) (map[string]any, error) {
		return f.svc["states"].Update(f.ctx, sess, "nope", notJSON)
	})
	requireHTTPError(t, err, http.StatusNotFound, errs.NotFoundMessage)
}

func TestDeleteTwice(t *testing.T) {
	f := newFixture(t)
	state := f.create(t, "states", "", map[string]any{"name": "CA"})
	id := state["id"].(string)

	out, err := f.run(t, func(sess repository.Session) (map[string]any, error) {
		return f.svc["states"].Delete(f.ctx, sess, id)
	})
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.NotNil(t, out)

	_, err = f.run(t, func(sess repository.Session) (map[string]any, error) {
		return f.svc["states"].Delete(f.ctx, sess, id)
	})
	requireHTTPError(t, err, http.StatusNotFound, errs.NotFoundMessage)
}

func TestListMissingParent(t *testing.T) {
	f := newFixture(t)
	sess := f.store.Session(f.ctx)
	defer sess.Close()

	_, err := f.svc["review"].List(f.ctx, sess, "nope")
	requireHTTPError(t, err, http.StatusNotFound, errs.NotFoundMessage)
}

func TestStats(t *testing.T) {
	f := newFixture(t)
	f.create(t, "states", "", map[string]any{"name": "CA"})
	f.create(t, "states", "", map[string]any{"name": "NV"})
	f.create(t, "users", "", map[string]any{"email": "a@b.com", "password": "x"})

	sess := f.store.Session(f.ctx)
	defer sess.Close()

	stats, err := NewStatsService().Stats(f.ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, Stats{States: 2, Users: 1}, *stats)
}

type fakeQueue struct {
	queued []email.Welcome
	err    error
}

func (q *fakeQueue) EnqueueWelcome(_ context.Context, w email.Welcome) error {
	q.queued = append(q.queued, w)
	return q.err
}

func TestWelcomeHook(t *testing.T) {
	f := newFixture(t)
	logger := zerolog.Nop()
	queue := &fakeQueue{err: errors.New("redis down")}
	f.svc["users"].OnCreate(WelcomeHook(queue, &logger))

	user := f.create(t, "users", "", map[string]any{
		"email":      "a@b.com",
		"password":   "x",
		"first_name": "Ada",
	})

	assert.Equal(t, "a@b.com", user["email"])
	require.Len(t, queue.queued, 1)
	assert.Equal(t, email.Welcome{
		UserID:    user["id"].(string),
		Email:     "a@b.com",
		FirstName: "Ada",
	}, queue.queued[0])
}

package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/deppfellow/hbnb-api/internal/config"
	"github.com/deppfellow/hbnb-api/internal/handler"
	"github.com/deppfellow/hbnb-api/internal/logger"
	"github.com/deppfellow/hbnb-api/internal/repository"
	"github.com/deppfellow/hbnb-api/internal/server"
	"github.com/deppfellow/hbnb-api/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()
	return newLoggingTestRouter(t, io.Discard)
}

func newLoggingTestRouter(t *testing.T, w io.Writer) *echo.Echo {
	t.Helper()
	log := zerolog.New(w)
	s := &server.Server{
		Config:        config.DefaultConfig(),
		Logger:        &log,
		LoggerService: &logger.LoggerService{},
	}

	repos := repository.NewRepositories(s)
	services, err := service.NewService(s)
	require.NoError(t, err)

	return NewRouter(s, handler.NewHandlers(s, services), repos)
}

type response struct {
	status int
	raw    string
}

func (r response) object(t *testing.T) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(r.raw), &out), r.raw)
	return out
}

func (r response) list(t *testing.T) []map[string]any {
	t.Helper()
	var out []map[string]any
	require.NoError(t, json.Unmarshal([]byte(r.raw), &out), r.raw)
	return out
}

func do(e *echo.Echo, method, path, body string) response {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return response{status: rec.Code, raw: strings.TrimSpace(rec.Body.String())}
}

func create(t *testing.T, e *echo.Echo, path, body string) map[string]any {
	t.Helper()
	res := do(e, http.MethodPost, path, body)
	require.Equal(t, http.StatusCreated, res.status, res.raw)
	return res.object(t)
}

func TestStatus(t *testing.T) {
	e := newTestRouter(t)

	res := do(e, http.MethodGet, "/status", "")
	assert.Equal(t, http.StatusOK, res.status)
	assert.JSONEq(t, `{"status":"OK"}`, res.raw)
}

func TestUnknownRoute(t *testing.T) {
	e := newTestRouter(t)

	res := do(e, http.MethodGet, "/nowhere", "")
	assert.Equal(t, http.StatusNotFound, res.status)
	assert.JSONEq(t, `{"error":"Not found"}`, res.raw)
}

func TestWrongMethod(t *testing.T) {
	e := newTestRouter(t)

	res := do(e, http.MethodPatch, "/users", "{}")
	assert.Equal(t, http.StatusMethodNotAllowed, res.status)
	assert.JSONEq(t, `{"error":"Method Not Allowed"}`, res.raw)
}

func TestCreateUser(t *testing.T) {
	e := newTestRouter(t)

	user := create(t, e, "/users", `{"email":"a@b.com","password":"x"}`)
	assert.Equal(t, "a@b.com", user["email"])
	assert.NotEmpty(t, user["id"])
	assert.NotContains(t, user, "password")

	other := create(t, e, "/users", `{"email":"c@d.com","password":"y"}`)
	assert.NotEqual(t, user["id"], other["id"])
}

func TestCreateUserErrors(t *testing.T) {
	e := newTestRouter(t)

	res := do(e, http.MethodPost, "/users", `{}`)
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, `{"error":"Missing email"}`, res.raw)

	res = do(e, http.MethodPost, "/users", `{"email":"a@b.com"}`)
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, `{"error":"Missing password"}`, res.raw)

	res = do(e, http.MethodPost, "/users", `not json`)
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, `{"error":"Not a JSON"}`, res.raw)

	res = do(e, http.MethodPost, "/users", "")
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, `{"error":"Not a JSON"}`, res.raw)
}

func TestCreatePlaceUnderMissingCity(t *testing.T) {
	e := newTestRouter(t)

	for _, body := range []string{"", "garbage", `{}`, `{"user_id":"u","name":"n"}`} {
		res := do(e, http.MethodPost, "/cities/bad_id/places", body)
		assert.Equal(t, http.StatusNotFound, res.status, body)
		assert.JSONEq(t, `{"error":"Not found"}`, res.raw)
	}
}

// seed creates a user, a state, a city and a place, and returns their ids.
func seed(t *testing.T, e *echo.Echo) (userID, cityID, placeID string) {
	t.Helper()
	user := create(t, e, "/users", `{"email":"a@b.com","password":"x"}`)
	state := create(t, e, "/states", `{"name":"California"}`)
	city := create(t, e, "/states/"+state["id"].(string)+"/cities", `{"name":"San Francisco"}`)
	place := create(t, e, "/cities/"+city["id"].(string)+"/places",
		`{"user_id":"`+user["id"].(string)+`","name":"Loft","number_rooms":2,"latitude":37.7}`)
	return user["id"].(string), city["id"].(string), place["id"].(string)
}

func TestPlaceLifecycle(t *testing.T) {
	e := newTestRouter(t)
	userID, cityID, placeID := seed(t, e)

	res := do(e, http.MethodGet, "/cities/"+cityID+"/places", "")
	require.Equal(t, http.StatusOK, res.status)
	places := res.list(t)
	require.Len(t, places, 1)
	assert.Equal(t, placeID, places[0]["id"])
	assert.Equal(t, cityID, places[0]["city_id"])
	assert.Equal(t, userID, places[0]["user_id"])
	assert.Equal(t, float64(2), places[0]["number_rooms"])
	assert.Equal(t, "Place", places[0]["__class__"])

	res = do(e, http.MethodPut, "/places/"+placeID, `{"id":"ignored","name":"New"}`)
	require.Equal(t, http.StatusOK, res.status, res.raw)
	updated := res.object(t)
	assert.Equal(t, placeID, updated["id"])
	assert.Equal(t, "New", updated["name"])

	res = do(e, http.MethodGet, "/places/"+placeID, "")
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "New", res.object(t)["name"])

	res = do(e, http.MethodDelete, "/places/"+placeID, "")
	assert.Equal(t, http.StatusOK, res.status)
	assert.JSONEq(t, `{}`, res.raw)

	res = do(e, http.MethodDelete, "/places/"+placeID, "")
	assert.Equal(t, http.StatusNotFound, res.status)

	res = do(e, http.MethodGet, "/places/"+placeID, "")
	assert.Equal(t, http.StatusNotFound, res.status)
}

func TestCreatePlaceChecks(t *testing.T) {
	e := newTestRouter(t)
	userID, cityID, _ := seed(t, e)
	path := "/cities/" + cityID + "/places"

	res := do(e, http.MethodPost, path, `{"name":"Loft"}`)
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, `{"error":"Missing user_id"}`, res.raw)

	res = do(e, http.MethodPost, path, `{"user_id":"ghost"}`)
	assert.Equal(t, http.StatusNotFound, res.status)

	res = do(e, http.MethodPost, path, `{"user_id":"`+userID+`"}`)
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, `{"error":"Missing name"}`, res.raw)

	res = do(e, http.MethodPost, path, `{"user_id":"`+userID+`","name":"Loft","max_guest":"many"}`)
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "Invalid max_guest", res.object(t)["error"])
}

func TestReviews(t *testing.T) {
	e := newTestRouter(t)
	userID, _, placeID := seed(t, e)
	path := "/places/" + placeID + "/reviews"

	res := do(e, http.MethodPost, path, `{"user_id":"`+userID+`"}`)
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, `{"error":"Missing text"}`, res.raw)

	review := create(t, e, path, `{"user_id":"`+userID+`","text":"Great stay"}`)
	assert.Equal(t, placeID, review["place_id"])

	res = do(e, http.MethodPut, "/reviews/"+review["id"].(string), `{"text":"Even better","place_id":"x","user_id":"y"}`)
	require.Equal(t, http.StatusOK, res.status)
	updated := res.object(t)
	assert.Equal(t, "Even better", updated["text"])
	assert.Equal(t, placeID, updated["place_id"])
	assert.Equal(t, userID, updated["user_id"])

	res = do(e, http.MethodGet, "/places/missing/reviews", "")
	assert.Equal(t, http.StatusNotFound, res.status)

	res = do(e, http.MethodPut, "/reviews/"+review["id"].(string), "nope")
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, `{"error":"Not a JSON"}`, res.raw)

	res = do(e, http.MethodPut, "/reviews/missing", "nope")
	assert.Equal(t, http.StatusNotFound, res.status)
}

func TestTrailingSlash(t *testing.T) {
	e := newTestRouter(t)
	create(t, e, "/users/", `{"email":"a@b.com","password":"x"}`)

	res := do(e, http.MethodGet, "/users/", "")
	assert.Equal(t, http.StatusOK, res.status)
	assert.Len(t, res.list(t), 1)
}

func TestEmptyListIsArray(t *testing.T) {
	e := newTestRouter(t)

	res := do(e, http.MethodGet, "/amenities", "")
	assert.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "[]", res.raw)
}

func TestStats(t *testing.T) {
	e := newTestRouter(t)
	seed(t, e)
	create(t, e, "/amenities", `{"name":"Wifi"}`)

	res := do(e, http.MethodGet, "/stats", "")
	assert.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, `{"amenities":1,"cities":1,"places":1,"reviews":0,"states":1,"users":1}`, res.raw)
}

func TestDeleteStateCascades(t *testing.T) {
	e := newTestRouter(t)
	_, cityID, placeID := seed(t, e)

	res := do(e, http.MethodGet, "/cities/"+cityID, "")
	require.Equal(t, http.StatusOK, res.status)
	stateID := res.object(t)["state_id"].(string)

	res = do(e, http.MethodDelete, "/states/"+stateID, "")
	require.Equal(t, http.StatusOK, res.status)

	assert.Equal(t, http.StatusNotFound, do(e, http.MethodGet, "/cities/"+cityID, "").status)
	assert.Equal(t, http.StatusNotFound, do(e, http.MethodGet, "/places/"+placeID, "").status)
}

func TestSystemRoutes(t *testing.T) {
	e := newTestRouter(t)

	res := do(e, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "healthy", res.object(t)["status"])

	res = do(e, http.MethodGet, "/openapi.json", "")
	assert.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "3.0.3", res.object(t)["openapi"])

	res = do(e, http.MethodGet, "/docs", "")
	assert.Equal(t, http.StatusOK, res.status)
	assert.Contains(t, res.raw, "/openapi.json")
}

func TestInvalidFieldTypeOnUpdate(t *testing.T) {
	e := newTestRouter(t)
	_, _, placeID := seed(t, e)

	res := do(e, http.MethodPut, "/places/"+placeID, `{"number_rooms":1.5}`)
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t,
		`{"error":"Invalid number_rooms","errors":[{"field":"number_rooms","error":"number_rooms: expected integer"}]}`,
		res.raw)

	res = do(e, http.MethodGet, "/places/"+placeID, "")
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, float64(2), res.object(t)["number_rooms"])
}

func TestClientErrorIsLoggedOnce(t *testing.T) {
	var logs bytes.Buffer
	e := newLoggingTestRouter(t, &logs)

	res := do(e, http.MethodPost, "/users", `{}`)
	require.Equal(t, http.StatusBadRequest, res.status)

	lines := 0
	for _, line := range strings.Split(logs.String(), "\n") {
		if strings.Contains(line, "Missing email") {
			lines++
		}
	}
	assert.Equal(t, 1, lines, logs.String())
}

func TestConcurrentRequests(t *testing.T) {
	e := newTestRouter(t)
	const clients = 50

	var wg sync.WaitGroup
	for i := range clients {
		wg.Add(1)
		go func() {
			defer wg.Done()

			body := fmt.Sprintf(`{"email":"user%d@hbnb.io","password":"x"}`, i)
			assert.Equal(t, http.StatusCreated, do(e, http.MethodPost, "/users", body).status)
			assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/users", "").status)
			assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/stats", "").status)
		}()
	}
	wg.Wait()

	res := do(e, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, res.status)
	users := res.list(t)
	assert.Len(t, users, clients)

	ids := map[any]bool{}
	for _, u := range users {
		ids[u["id"]] = true
	}
	assert.Len(t, ids, clients)

	res = do(e, http.MethodGet, "/stats", "")
	assert.Equal(t, fmt.Sprintf(`{"amenities":0,"cities":0,"places":0,"reviews":0,"states":0,"users":%d}`, clients), res.raw)
}

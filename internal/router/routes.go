package router

import (
	"net/http"

	"github.com/deppfellow/hbnb-api/internal/handler"
	"github.com/labstack/echo/v4"
)

func registerIndexRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", handler.Handle(h.Index.Handler, h.Index.Status, http.StatusOK, &handler.NoParams{}))
	r.GET("/stats", handler.Handle(h.Index.Handler, h.Index.Stats, http.StatusOK, &handler.NoParams{}))
}

// registerResourceRoutes wires every entity family. Nested collections use
// the parent id as :id, e.g. /cities/:id/places.
func registerResourceRoutes(r *echo.Echo, h *handler.Handlers) {
	topLevel(r, "/users", h.Users)
	topLevel(r, "/states", h.States)
	topLevel(r, "/amenities", h.Amenities)

	nested(r, "/states/:id/cities", "/cities", h.Cities)
	nested(r, "/cities/:id/places", "/places", h.Places)
	nested(r, "/places/:id/reviews", "/reviews", h.Reviews)
}

func topLevel(r *echo.Echo, collection string, rh *handler.ResourceHandler) {
	r.GET(collection, handler.Handle(rh.Handler, rh.List, http.StatusOK, &handler.NoParams{}))
	r.POST(collection, handler.Handle(rh.Handler, rh.Create, http.StatusCreated, &handler.NoParams{}))
	singleton(r, collection, rh)
}

func nested(r *echo.Echo, collection, entities string, rh *handler.ResourceHandler) {
	r.GET(collection, handler.Handle(rh.Handler, rh.ListChildren, http.StatusOK, &handler.IDParams{}))
	r.POST(collection, handler.Handle(rh.Handler, rh.CreateChild, http.StatusCreated, &handler.IDParams{}))
	singleton(r, entities, rh)
}

func singleton(r *echo.Echo, collection string, rh *handler.ResourceHandler) {
	path := collection + "/:id"
	r.GET(path, handler.Handle(rh.Handler, rh.Get, http.StatusOK, &handler.IDParams{}))
	r.PUT(path, handler.Handle(rh.Handler, rh.Update, http.StatusOK, &handler.IDParams{}))
	r.DELETE(path, handler.Handle(rh.Handler, rh.Delete, http.StatusOK, &handler.IDParams{}))
}

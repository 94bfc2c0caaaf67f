package handler

import (
	"github.com/deppfellow/hbnb-api/internal/server"
	"github.com/deppfellow/hbnb-api/internal/service"
	"github.com/labstack/echo/v4"
)

// ResourceHandler exposes one ResourceService over HTTP.
//
// For nested resources the :id of the collection routes is the parent id,
// e.g. GET /cities/:id/places lists the places of city :id.
type ResourceHandler struct {
	Handler
	service *service.ResourceService
}

func NewResourceHandler(s *server.Server, svc *service.ResourceService) *ResourceHandler {
	return &ResourceHandler{
		Handler: NewHandler(s),
		service: svc,
	}
}

// List serves top-level collections.
func (h *ResourceHandler) List(c echo.Context, _ *NoParams) ([]map[string]any, error) {
	sess, err := session(c)
	if err != nil {
		return nil, err
	}
	return h.service.List(c.Request().Context(), sess, "")
}

// ListChildren serves collections nested under parent :id.
func (h *ResourceHandler) ListChildren(c echo.Context, req *IDParams) ([]map[string]any, error) {
	sess, err := session(c)
	if err != nil {
		return nil, err
	}
	return h.service.List(c.Request().Context(), sess, req.ID)
}

func (h *ResourceHandler) Get(c echo.Context, req *IDParams) (map[string]any, error) {
	sess, err := session(c)
	if err != nil {
		return nil, err
	}
	return h.service.Get(c.Request().Context(), sess, req.ID)
}

// Delete responds 200 with an empty object.
func (h *ResourceHandler) Delete(c echo.Context, req *IDParams) (map[string]any, error) {
	sess, err := session(c)
	if err != nil {
		return nil, err
	}
	return h.service.Delete(c.Request().Context(), sess, req.ID)
}

// Create serves POST on top-level collections.
func (h *ResourceHandler) Create(c echo.Context, _ *NoParams) (map[string]any, error) {
	sess, err := session(c)
	if err != nil {
		return nil, err
	}
	return h.service.Create(c.Request().Context(), sess, "", decoder(c))
}

// CreateChild serves POST on collections nested under parent :id.
func (h *ResourceHandler) CreateChild(c echo.Context, req *IDParams) (map[string]any, error) {
	sess, err := session(c)
	if err != nil {
		return nil, err
	}
	return h.service.Create(c.Request().Context(), sess, req.ID, decoder(c))
}

func (h *ResourceHandler) Update(c echo.Context, req *IDParams) (map[string]any, error) {
	sess, err := session(c)
	if err != nil {
		return nil, err
	}
	return h.service.Update(c.Request().Context(), sess, req.ID, decoder(c))
}

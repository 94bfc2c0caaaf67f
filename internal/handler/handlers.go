package handler

import (
	"github.com/deppfellow/hbnb-api/internal/server"
	"github.com/deppfellow/hbnb-api/internal/service"
)

// Handlers groups every HTTP handler so the router receives a single value.
type Handlers struct {
	Index     *IndexHandler
	Users     *ResourceHandler
	States    *ResourceHandler
	Amenities *ResourceHandler
	Cities    *ResourceHandler
	Places    *ResourceHandler
	Reviews   *ResourceHandler
	Health    *HealthHandler
	OpenAPI   *OpenAPIHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Index:     NewIndexHandler(s, services.Stats),
		Users:     NewResourceHandler(s, services.Users),
		States:    NewResourceHandler(s, services.States),
		Amenities: NewResourceHandler(s, services.Amenities),
		Cities:    NewResourceHandler(s, services.Cities),
		Places:    NewResourceHandler(s, services.Places),
		Reviews:   NewResourceHandler(s, services.Reviews),
		Health:    NewHealthHandler(s),
		OpenAPI:   NewOpenAPIHandler(s),
	}
}

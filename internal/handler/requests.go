package handler

import "github.com/deppfellow/hbnb-api/internal/validation"

// NoParams is the request of routes without path parameters.
type NoParams struct{}

func (r *NoParams) Validate() error {
	return nil
}

// IDParams carries the single :id path parameter of entity and nested
// collection routes.
type IDParams struct {
	ID string `param:"id" validate:"required"`
}

func (r *IDParams) Validate() error {
	return validation.Struct(r)
}

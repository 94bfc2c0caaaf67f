// Package repository handles all interactions with the storage backends.
//
// It hides whether entities live in process memory or in PostgreSQL behind
// the Storage and Session interfaces, so the service layer only ever talks
// about kinds, ids and entities.
package repository

import (
	"context"
	"errors"

	"github.com/deppfellow/hbnb-api/internal/model"
)

// ErrSessionClosed is returned by any Session call made after Close.
var ErrSessionClosed = errors.New("storage session is closed")

// Storage hands out request-scoped sessions.
type Storage interface {
	Session(ctx context.Context) Session
}

// Session is a unit of work against a Storage.
//
// Reads see the session's own staged writes. Add and Delete only become
// visible to other sessions after Save. Close releases the session and
// discards anything not saved; it is safe to call more than once.
type Session interface {
	// Get returns the entity of kind with id, or nil and no error when it
	// does not exist.
	Get(ctx context.Context, kind model.Kind, id string) (model.Entity, error)

	// All returns every entity of kind in insertion order.
	All(ctx context.Context, kind model.Kind) ([]model.Entity, error)

	// AllBy returns the entities of kind whose string field equals value.
	AllBy(ctx context.Context, kind model.Kind, field, value string) ([]model.Entity, error)

	Count(ctx context.Context, kind model.Kind) (int, error)

	// Add stages an insert or a full update of e and refreshes its
	// updated_at.
	Add(ctx context.Context, e model.Entity) error

	// Delete stages removal of e and of every entity that depends on it.
	Delete(ctx context.Context, e model.Entity) error

	Save(ctx context.Context) error
	Close() error
}

// matches reports whether e's field holds value.
func matches(e model.Entity, field, value string) bool {
	v, ok := e.Get(field)
	if !ok {
		return false
	}
	s, ok := v.(string)
	return ok && s == value
}

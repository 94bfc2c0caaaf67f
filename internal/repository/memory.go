package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/deppfellow/hbnb-api/internal/model"
)

type entityKey struct {
	kind model.Kind
	id   string
}

// MemoryStorage keeps every entity in process memory.
//
// Entities are cloned on the way in and on the way out, so callers never
// share memory with the store.
type MemoryStorage struct {
	mu      sync.RWMutex
	objects map[entityKey]model.Entity
	order   map[model.Kind][]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		objects: make(map[entityKey]model.Entity),
		order:   make(map[model.Kind][]string),
	}
}

func (m *MemoryStorage) Session(_ context.Context) Session {
	return &memorySession{
		store:   m,
		added:   make(map[entityKey]model.Entity),
		deleted: make(map[entityKey]struct{}),
	}
}

// memorySession stages writes until Save.
type memorySession struct {
	store *MemoryStorage

	added    map[entityKey]model.Entity
	addOrder []entityKey
	deleted  map[entityKey]struct{}
	closed   bool
}

func (s *memorySession) lookup(key entityKey) model.Entity {
	if _, gone := s.deleted[key]; gone {
		return nil
	}
	if e, ok := s.added[key]; ok {
		return e
	}

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	return s.store.objects[key]
}

// view returns the session's picture of kind in insertion order.
func (s *memorySession) view(kind model.Kind) []model.Entity {
	s.store.mu.RLock()
	ids := s.store.order[kind]
	out := make([]model.Entity, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		key := entityKey{kind: kind, id: id}
		seen[id] = struct{}{}
		if _, gone := s.deleted[key]; gone {
			continue
		}
		if e, ok := s.added[key]; ok {
			out = append(out, e)
			continue
		}
		out = append(out, s.store.objects[key])
	}
	s.store.mu.RUnlock()

	for _, key := range s.addOrder {
		if key.kind != kind {
			continue
		}
		if _, gone := s.deleted[key]; gone {
			continue
		}
		if _, ok := seen[key.id]; ok {
			continue
		}
		out = append(out, s.added[key])
	}
	return out
}

func (s *memorySession) Get(_ context.Context, kind model.Kind, id string) (model.Entity, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	e := s.lookup(entityKey{kind: kind, id: id})
	if e == nil {
		return nil, nil
	}
	return e.Clone(), nil
}

func (s *memorySession) All(_ context.Context, kind model.Kind) ([]model.Entity, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	view := s.view(kind)
	out := make([]model.Entity, 0, len(view))
	for _, e := range view {
		out = append(out, e.Clone())
	}
	return out, nil
}

func (s *memorySession) AllBy(_ context.Context, kind model.Kind, field, value string) ([]model.Entity, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	out := []model.Entity{}
	for _, e := range s.view(kind) {
		if matches(e, field, value) {
			out = append(out, e.Clone())
		}
	}
	return out, nil
}

func (s *memorySession) Count(_ context.Context, kind model.Kind) (int, error) {
	if s.closed {
		return 0, ErrSessionClosed
	}
	return len(s.view(kind)), nil
}

func (s *memorySession) Add(_ context.Context, e model.Entity) error {
	if s.closed {
		return ErrSessionClosed
	}
	e.Base().Touch()

	key := entityKey{kind: e.Kind(), id: e.Base().ID}
	if _, staged := s.added[key]; !staged {
		s.addOrder = append(s.addOrder, key)
	}
	delete(s.deleted, key)
	s.added[key] = e.Clone()
	return nil
}

func (s *memorySession) Delete(_ context.Context, e model.Entity) error {
	if s.closed {
		return ErrSessionClosed
	}
	s.cascade(entityKey{kind: e.Kind(), id: e.Base().ID})
	return nil
}

func (s *memorySession) cascade(key entityKey) {
	if _, gone := s.deleted[key]; gone {
		return
	}
	s.deleted[key] = struct{}{}

	for _, rel := range model.Dependents(key.kind) {
		for _, child := range s.view(rel.Child) {
			if matches(child, rel.Field, key.id) {
				s.cascade(entityKey{kind: rel.Child, id: child.Base().ID})
			}
		}
	}
}

func (s *memorySession) Save(_ context.Context) error {
	if s.closed {
		return ErrSessionClosed
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	for key := range s.deleted {
		if _, ok := s.store.objects[key]; !ok {
			continue
		}
		delete(s.store.objects, key)
		s.store.order[key.kind] = slices.DeleteFunc(s.store.order[key.kind], func(id string) bool {
			return id == key.id
		})
	}

	for _, key := range s.addOrder {
		if _, gone := s.deleted[key]; gone {
			continue
		}
		if _, exists := s.store.objects[key]; !exists {
			s.store.order[key.kind] = append(s.store.order[key.kind], key.id)
		}
		s.store.objects[key] = s.added[key]
	}

	s.added = make(map[entityKey]model.Entity)
	s.addOrder = nil
	s.deleted = make(map[entityKey]struct{})
	return nil
}

func (s *memorySession) Close() error {
	s.closed = true
	s.added = nil
	s.addOrder = nil
	s.deleted = nil
	return nil
}

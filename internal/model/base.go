package model

import (
	"maps"
	"time"

	"github.com/google/uuid"
)

// TimeFormat is the wire format of created_at and updated_at.
const TimeFormat = "2006-01-02T15:04:05.000000"

// BaseModel holds the attributes every entity shares.
type BaseModel struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Extra holds payload keys that are not part of the kind's field table.
	Extra map[string]any
}

func newBase() BaseModel {
	now := time.Now().UTC()
	return BaseModel{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Base returns b itself so embedding types satisfy Entity.
func (b *BaseModel) Base() *BaseModel {
	return b
}

// Touch refreshes UpdatedAt. Storage calls it on every persist.
func (b *BaseModel) Touch() {
	b.UpdatedAt = time.Now().UTC()
}

func (b *BaseModel) clone() BaseModel {
	out := *b
	out.Extra = maps.Clone(b.Extra)
	return out
}

func (b *BaseModel) setExtra(name string, value any) {
	if b.Extra == nil {
		b.Extra = map[string]any{}
	}
	b.Extra[name] = value
}

// get resolves base and extra attributes.
func (b *BaseModel) get(name string) (any, bool) {
	switch name {
	case "id":
		return b.ID, true
	case "created_at":
		return b.CreatedAt, true
	case "updated_at":
		return b.UpdatedAt, true
	}
	v, ok := b.Extra[name]
	return v, ok
}

// set assigns base attributes. It reports false for any other name.
func (b *BaseModel) set(name string, value any) (bool, error) {
	switch name {
	case "id":
		id, err := asString(name, value)
		if err != nil {
			return true, err
		}
		b.ID = id
	case "created_at":
		t, err := asTime(name, value)
		if err != nil {
			return true, err
		}
		b.CreatedAt = t
	case "updated_at":
		t, err := asTime(name, value)
		if err != nil {
			return true, err
		}
		b.UpdatedAt = t
	case "__class__":
	default:
		return false, nil
	}
	return true, nil
}

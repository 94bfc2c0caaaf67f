package model

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// AttributeError reports a payload value whose type does not fit the field.
type AttributeError struct {
	Field  string
	Reason string
}

func (e *AttributeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// field binds one attribute name to accessors on *T.
type field[T any] struct {
	name string
	get  func(*T) any
	set  func(*T, any) error

	// load overrides set when hydrating from storage.
	load func(*T, any) error

	// hidden fields are persisted but never serialized.
	hidden bool
}

// schema is the ordered field table of an entity type.
type schema[T any] []field[T]

func (s schema[T]) lookup(name string) (field[T], bool) {
	for _, f := range s {
		if f.name == name {
			return f, true
		}
	}
	return field[T]{}, false
}

func (s schema[T]) get(obj *T, base *BaseModel, name string) (any, bool) {
	if f, ok := s.lookup(name); ok {
		return f.get(obj), true
	}
	return base.get(name)
}

func (s schema[T]) set(obj *T, base *BaseModel, name string, value any, load bool) error {
	if handled, err := base.set(name, value); handled {
		return err
	}
	if f, ok := s.lookup(name); ok {
		if load && f.load != nil {
			return f.load(obj, value)
		}
		return f.set(obj, value)
	}
	base.setExtra(name, value)
	return nil
}

func (s schema[T]) columns(obj *T) []Column {
	out := make([]Column, 0, len(s))
	for _, f := range s {
		out = append(out, Column{Name: f.name, Value: f.get(obj)})
	}
	return out
}

func (s schema[T]) toMap(obj *T, kind Kind, base *BaseModel) map[string]any {
	out := make(map[string]any, len(s)+len(base.Extra)+4)
	for k, v := range base.Extra {
		out[k] = v
	}
	for _, f := range s {
		if !f.hidden {
			out[f.name] = f.get(obj)
		}
	}
	out["id"] = base.ID
	out["created_at"] = base.CreatedAt.Format(TimeFormat)
	out["updated_at"] = base.UpdatedAt.Format(TimeFormat)
	out["__class__"] = string(kind)
	return out
}

func stringField[T any](name string, ptr func(*T) *string) field[T] {
	return field[T]{
		name: name,
		get:  func(obj *T) any { return *ptr(obj) },
		set: func(obj *T, v any) error {
			s, err := asString(name, v)
			if err != nil {
				return err
			}
			*ptr(obj) = s
			return nil
		},
	}
}

func intField[T any](name string, ptr func(*T) *int) field[T] {
	return field[T]{
		name: name,
		get:  func(obj *T) any { return *ptr(obj) },
		set: func(obj *T, v any) error {
			n, err := asInt(name, v)
			if err != nil {
				return err
			}
			*ptr(obj) = n
			return nil
		},
	}
}

func floatField[T any](name string, ptr func(*T) *float64) field[T] {
	return field[T]{
		name: name,
		get:  func(obj *T) any { return *ptr(obj) },
		set: func(obj *T, v any) error {
			f, err := asFloat(name, v)
			if err != nil {
				return err
			}
			*ptr(obj) = f
			return nil
		},
	}
}

// A JSON null clears the field to its zero value.

func asString(name string, v any) (string, error) {
	switch s := v.(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	}
	return "", &AttributeError{Field: name, Reason: "expected string"}
}

func asInt(name string, v any) (int, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case float64:
		if n == math.Trunc(n) {
			return int(n), nil
		}
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), nil
		}
	}
	return 0, &AttributeError{Field: name, Reason: "expected integer"}
}

func asFloat(name string, v any) (float64, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return f, nil
		}
	}
	return 0, &AttributeError{Field: name, Reason: "expected number"}
}

func asTime(name string, v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), nil
	case string:
		for _, layout := range []string{TimeFormat, time.RFC3339Nano} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed.UTC(), nil
			}
		}
	}
	return time.Time{}, &AttributeError{Field: name, Reason: "expected timestamp"}
}

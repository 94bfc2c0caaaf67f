// Package model defines the HBnB entities and their field tables.
//
// Every entity kind carries an explicit, ordered table of its typed fields.
// The same table drives JSON payload updates, hydration from storage and
// serialization, so no attribute is ever set by reflection. Keys that are not
// in a kind's table are kept in BaseModel.Extra and serialized back.
package model

import "fmt"

// Kind names an entity type.
type Kind string

const (
	KindAmenity Kind = "Amenity"
	KindCity    Kind = "City"
	KindPlace   Kind = "Place"
	KindReview  Kind = "Review"
	KindState   Kind = "State"
	KindUser    Kind = "User"
)

// Kinds lists every entity kind in stats order.
var Kinds = []Kind{KindAmenity, KindCity, KindPlace, KindReview, KindState, KindUser}

var tables = map[Kind]string{
	KindAmenity: "amenities",
	KindCity:    "cities",
	KindPlace:   "places",
	KindReview:  "reviews",
	KindState:   "states",
	KindUser:    "users",
}

// Table returns the plural collection name of k, e.g. "places".
func (k Kind) Table() string {
	return tables[k]
}

// Entity is implemented by every model type.
type Entity interface {
	Kind() Kind
	Base() *BaseModel

	// Get returns the value of a base, typed or extra attribute.
	Get(name string) (any, bool)

	// Set assigns a value decoded from a client payload. Type mismatches on
	// typed fields return an *AttributeError.
	Set(name string, value any) error

	// Load assigns a value read back from storage.
	Load(name string, value any) error

	// Columns returns the typed fields in table order, for storage.
	Columns() []Column

	// ToMap returns the wire serialization.
	ToMap() map[string]any

	Clone() Entity
}

// Column is one typed field value.
type Column struct {
	Name  string
	Value any
}

// New constructs an empty entity of kind with a fresh id and timestamps.
func New(kind Kind) (Entity, error) {
	base := newBase()
	switch kind {
	case KindAmenity:
		return &Amenity{BaseModel: base}, nil
	case KindCity:
		return &City{BaseModel: base}, nil
	case KindPlace:
		return &Place{BaseModel: base}, nil
	case KindReview:
		return &Review{BaseModel: base}, nil
	case KindState:
		return &State{BaseModel: base}, nil
	case KindUser:
		return &User{BaseModel: base}, nil
	}
	return nil, fmt.Errorf("unknown entity kind %q", kind)
}

// Relation is a foreign key from Child.Field to Parent.
type Relation struct {
	Child  Kind
	Field  string
	Parent Kind
}

// Relations lists every foreign key between kinds. Deleting a parent deletes
// the children that reference it.
var Relations = []Relation{
	{Child: KindCity, Field: "state_id", Parent: KindState},
	{Child: KindPlace, Field: "city_id", Parent: KindCity},
	{Child: KindPlace, Field: "user_id", Parent: KindUser},
	{Child: KindReview, Field: "place_id", Parent: KindPlace},
	{Child: KindReview, Field: "user_id", Parent: KindUser},
}

// Dependents returns the relations whose parent is kind.
func Dependents(kind Kind) []Relation {
	var out []Relation
	for _, r := range Relations {
		if r.Parent == kind {
			out = append(out, r)
		}
	}
	return out
}

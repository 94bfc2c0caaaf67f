package model

type Amenity struct {
	BaseModel
	Name string
}

var amenitySchema = schema[Amenity]{
	stringField("name", func(a *Amenity) *string { return &a.Name }),
}

func (a *Amenity) Kind() Kind { return KindAmenity }

func (a *Amenity) Get(name string) (any, bool) { return amenitySchema.get(a, &a.BaseModel, name) }

func (a *Amenity) Set(name string, v any) error {
	return amenitySchema.set(a, &a.BaseModel, name, v, false)
}

func (a *Amenity) Load(name string, v any) error {
	return amenitySchema.set(a, &a.BaseModel, name, v, true)
}

func (a *Amenity) Columns() []Column { return amenitySchema.columns(a) }

func (a *Amenity) ToMap() map[string]any { return amenitySchema.toMap(a, KindAmenity, &a.BaseModel) }

func (a *Amenity) Clone() Entity {
	out := *a
	out.BaseModel = a.BaseModel.clone()
	return &out
}

package model

// Place is a rental listed in a city by a user.
type Place struct {
	BaseModel
	CityID          string
	UserID          string
	Name            string
	Description     string
	NumberRooms     int
	NumberBathrooms int
	MaxGuest        int
	PriceByNight    int
	Latitude        float64
	Longitude       float64
}

var placeSchema = schema[Place]{
	stringField("city_id", func(p *Place) *string { return &p.CityID }),
	stringField("user_id", func(p *Place) *string { return &p.UserID }),
	stringField("name", func(p *Place) *string { return &p.Name }),
	stringField("description", func(p *Place) *string { return &p.Description }),
	intField("number_rooms", func(p *Place) *int { return &p.NumberRooms }),
	intField("number_bathrooms", func(p *Place) *int { return &p.NumberBathrooms }),
	intField("max_guest", func(p *Place) *int { return &p.MaxGuest }),
	intField("price_by_night", func(p *Place) *int { return &p.PriceByNight }),
	floatField("latitude", func(p *Place) *float64 { return &p.Latitude }),
	floatField("longitude", func(p *Place) *float64 { return &p.Longitude }),
}

func (p *Place) Kind() Kind { return KindPlace }

func (p *Place) Get(name string) (any, bool) { return placeSchema.get(p, &p.BaseModel, name) }

func (p *Place) Set(name string, v any) error {
	return placeSchema.set(p, &p.BaseModel, name, v, false)
}

func (p *Place) Load(name string, v any) error {
	return placeSchema.set(p, &p.BaseModel, name, v, true)
}

func (p *Place) Columns() []Column { return placeSchema.columns(p) }

func (p *Place) ToMap() map[string]any { return placeSchema.toMap(p, KindPlace, &p.BaseModel) }

func (p *Place) Clone() Entity {
	out := *p
	out.BaseModel = p.BaseModel.clone()
	return &out
}

package model

type City struct {
	BaseModel
	StateID string
	Name    string
}

var citySchema = schema[City]{
	stringField("state_id", func(c *City) *string { return &c.StateID }),
	stringField("name", func(c *City) *string { return &c.Name }),
}

func (c *City) Kind() Kind { return KindCity }

func (c *City) Get(name string) (any, bool) { return citySchema.get(c, &c.BaseModel, name) }

func (c *City) Set(name string, v any) error {
	return citySchema.set(c, &c.BaseModel, name, v, false)
}

func (c *City) Load(name string, v any) error {
	return citySchema.set(c, &c.BaseModel, name, v, true)
}

func (c *City) Columns() []Column { return citySchema.columns(c) }

func (c *City) ToMap() map[string]any { return citySchema.toMap(c, KindCity, &c.BaseModel) }

func (c *City) Clone() Entity {
	out := *c
	out.BaseModel = c.BaseModel.clone()
	return &out
}

package model

type State struct {
	BaseModel
	Name string
}

var stateSchema = schema[State]{
	stringField("name", func(s *State) *string { return &s.Name }),
}

func (s *State) Kind() Kind { return KindState }

func (s *State) Get(name string) (any, bool) { return stateSchema.get(s, &s.BaseModel, name) }

func (s *State) Set(name string, v any) error {
	return stateSchema.set(s, &s.BaseModel, name, v, false)
}

func (s *State) Load(name string, v any) error {
	return stateSchema.set(s, &s.BaseModel, name, v, true)
}

func (s *State) Columns() []Column { return stateSchema.columns(s) }

func (s *State) ToMap() map[string]any { return stateSchema.toMap(s, KindState, &s.BaseModel) }

func (s *State) Clone() Entity {
	out := *s
	out.BaseModel = s.BaseModel.clone()
	return &out
}

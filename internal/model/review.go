package model

// Review is a user's text about a place.
type Review struct {
	BaseModel
	PlaceID string
	UserID  string
	Text    string
}

var reviewSchema = schema[Review]{
	stringField("place_id", func(r *Review) *string { return &r.PlaceID }),
	stringField("user_id", func(r *Review) *string { return &r.UserID }),
	stringField("text", func(r *Review) *string { return &r.Text }),
}

func (r *Review) Kind() Kind { return KindReview }

func (r *Review) Get(name string) (any, bool) { return reviewSchema.get(r, &r.BaseModel, name) }

func (r *Review) Set(name string, v any) error {
	return reviewSchema.set(r, &r.BaseModel, name, v, false)
}

func (r *Review) Load(name string, v any) error {
	return reviewSchema.set(r, &r.BaseModel, name, v, true)
}

func (r *Review) Columns() []Column { return reviewSchema.columns(r) }

func (r *Review) ToMap() map[string]any { return reviewSchema.toMap(r, KindReview, &r.BaseModel) }

func (r *Review) Clone() Entity {
	out := *r
	out.BaseModel = r.BaseModel.clone()
	return &out
}

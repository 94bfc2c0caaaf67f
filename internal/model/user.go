package model

import (
	"golang.org/x/crypto/bcrypt"
)

// User is an account that owns places and writes reviews.
type User struct {
	BaseModel
	Email     string
	Password  string // bcrypt hash
	FirstName string
	LastName  string
}

var userSchema = schema[User]{
	stringField("email", func(u *User) *string { return &u.Email }),
	{
		name:   "password",
		get:    func(u *User) any { return u.Password },
		set:    func(u *User, v any) error { return u.SetPassword(v) },
		load:   func(u *User, v any) error { return loadString("password", &u.Password, v) },
		hidden: true,
	},
	stringField("first_name", func(u *User) *string { return &u.FirstName }),
	stringField("last_name", func(u *User) *string { return &u.LastName }),
}

// SetPassword hashes a plain-text password from a payload.
func (u *User) SetPassword(v any) error {
	plain, err := asString("password", v)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return &AttributeError{Field: "password", Reason: err.Error()}
	}
	u.Password = string(hash)
	return nil
}

func (u *User) Kind() Kind { return KindUser }

func (u *User) Get(name string) (any, bool) { return userSchema.get(u, &u.BaseModel, name) }

func (u *User) Set(name string, v any) error {
	return userSchema.set(u, &u.BaseModel, name, v, false)
}

func (u *User) Load(name string, v any) error {
	return userSchema.set(u, &u.BaseModel, name, v, true)
}

func (u *User) Columns() []Column { return userSchema.columns(u) }

func (u *User) ToMap() map[string]any { return userSchema.toMap(u, KindUser, &u.BaseModel) }

func (u *User) Clone() Entity {
	out := *u
	out.BaseModel = u.BaseModel.clone()
	return &out
}

func loadString(name string, dst *string, v any) error {
	s, err := asString(name, v)
	if err != nil {
		return err
	}
	*dst = s
	return nil
}

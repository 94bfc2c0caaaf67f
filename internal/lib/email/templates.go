package email

// Template names a file under templates/ without its extension.
type Template string

const (
	TemplateWelcome Template = "welcome"
)

var subjects = map[Template]string{
	TemplateWelcome: "Welcome to HBnB!",
}

// Subject returns the subject line sent with t.
func (t Template) Subject() string {
	if s, ok := subjects[t]; ok {
		return s
	}
	return "HBnB"
}

// PreviewData holds sample data for rendering each template locally.
var PreviewData = map[Template]any{
	TemplateWelcome: Welcome{
		UserID:    "00000000-0000-4000-8000-000000000000",
		Email:     "betty@example.com",
		FirstName: "Betty",
		LastName:  "Holberton",
	},
}

package email

import "strings"

// Welcome is the message sent to a newly registered user.
type Welcome struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// Greeting is the name the template addresses the user by.
func (w Welcome) Greeting() string {
	if name := strings.TrimSpace(w.FirstName + " " + w.LastName); name != "" {
		return name
	}
	return "there"
}

// SendWelcome renders and delivers the welcome message.
func (c *Client) SendWelcome(w Welcome) error {
	return c.SendEmail(w.Email, TemplateWelcome, w)
}

// Package email provides an email sending client.
//
// It uses Resend (resend-go) as the email provider and renders bodies from
// HTML templates embedded in the binary.
package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/deppfellow/hbnb-api/internal/config"
	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

//go:embed templates/*.html
var templates embed.FS

// Client wraps the Resend client and a logger.
//
// client is nil when no API key is configured; SendEmail then renders the
// template, logs the delivery it would have made and returns nil.
type Client struct {
	client *resend.Client
	from   string
	logger *zerolog.Logger
}

// NewClient creates an email Client from the integration config.
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	c := &Client{
		from:   cfg.Integration.EmailFrom,
		logger: logger,
	}
	if cfg.Integration.ResendAPIKey != "" {
		c.client = resend.NewClient(cfg.Integration.ResendAPIKey)
	}
	return c
}

// Render executes the named template with data.
func Render(templateName Template, data any) (string, error) {
	tmpl, err := template.ParseFS(templates, fmt.Sprintf("templates/%s.html", templateName))
	if err != nil {
		return "", errors.Wrapf(err, "failed to parse email template %s", templateName)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", templateName)
	}
	return body.String(), nil
}

// SendEmail sends an email with HTML rendered from a template. The subject
// comes from the template.
func (c *Client) SendEmail(to string, templateName Template, data any) error {
	if to == "" {
		return errors.New("email recipient is empty")
	}

	html, err := Render(templateName, data)
	if err != nil {
		return err
	}

	if c.client == nil {
		c.logger.Warn().
			Str("to", to).
			Str("template", string(templateName)).
			Msg("resend api key not configured, skipping email delivery")
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: templateName.Subject(),
		Html:    html,
	}

	if _, err := c.client.Emails.Send(params); err != nil {
		return errors.Wrapf(err, "failed to send %s email", templateName)
	}

	return nil
}

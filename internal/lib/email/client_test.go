package email

import (
	"testing"

	"github.com/deppfellow/hbnb-api/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPreviewData(t *testing.T) {
	for name, data := range PreviewData {
		html, err := Render(name, data)
		require.NoError(t, err, name)
		assert.NotEmpty(t, html)
	}
}

func TestRenderWelcome(t *testing.T) {
	html, err := Render(TemplateWelcome, Welcome{UserID: "u1", Email: "a@b.com", FirstName: "Ada", LastName: "Lovelace"})
	require.NoError(t, err)
	assert.Contains(t, html, "Welcome to HBnB, Ada Lovelace!")
	assert.Contains(t, html, "a@b.com")
	assert.Contains(t, html, "u1")
}

func TestWelcomeGreeting(t *testing.T) {
	assert.Equal(t, "there", Welcome{}.Greeting())
	assert.Equal(t, "Ada", Welcome{FirstName: "Ada"}.Greeting())
	assert.Equal(t, "Lovelace", Welcome{LastName: "Lovelace"}.Greeting())
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, err := Render(Template("missing"), nil)
	assert.Error(t, err)
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "Welcome to HBnB!", TemplateWelcome.Subject())
	assert.Equal(t, "HBnB", Template("missing").Subject())
}

func TestSendWithoutAPIKeySkipsDelivery(t *testing.T) {
	logger := zerolog.Nop()
	c := NewClient(config.DefaultConfig(), &logger)

	assert.NoError(t, c.SendWelcome(Welcome{UserID: "u1", Email: "a@b.com"}))
}

func TestSendRequiresRecipient(t *testing.T) {
	logger := zerolog.Nop()
	c := NewClient(config.DefaultConfig(), &logger)

	assert.Error(t, c.SendWelcome(Welcome{UserID: "u1"}))
}

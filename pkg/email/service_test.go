package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notifykit/notifykit/pkg/notify"
)

func validConfig() Config {
	return Config{
		PostmarkServerToken:  "server-token",
		PostmarkAccountToken: "account-token",
		SenderEmail:          "noreply@example.com",
		RecipientEmail:       "ops@example.com",
	}
}

func TestNewService(t *testing.T) {
	svc, err := NewService(validConfig())
	require.NoError(t, err)
	assert.Equal(t, "email", svc.ID())
	assert.Equal(t, "Email", svc.DisplayName())
}

func TestNewService_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "missing server token", mutate: func(c *Config) { c.PostmarkServerToken = "" }},
		{name: "missing account token", mutate: func(c *Config) { c.PostmarkAccountToken = "" }},
		{name: "invalid sender", mutate: func(c *Config) { c.SenderEmail = "not-an-email" }},
		{name: "empty sender", mutate: func(c *Config) { c.SenderEmail = "" }},
		{name: "invalid recipient", mutate: func(c *Config) { c.RecipientEmail = "ops@" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			_, err := NewService(cfg)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestMustNewService_PanicsOnInvalidConfig(t *testing.T) {
	assert.Panics(t, func() {
		MustNewService(Config{})
	})
}

func TestBuildBodies(t *testing.T) {
	req := notify.Request{
		Name:        "Disk <full>",
		Description: "Volume /data is at 98%",
		URL:         "https://dash.example.com/storage?vol=data&x=1",
	}

	html := buildHTMLBody(req)
	assert.Contains(t, html, "Disk &lt;full&gt;")
	assert.Contains(t, html, "Volume /data is at 98%")
	assert.Contains(t, html, "https://dash.example.com/storage?vol=data&amp;x=1")

	text := buildTextBody(req)
	assert.Contains(t, text, "Disk <full>")
	assert.Contains(t, text, "Volume /data is at 98%")
	assert.Contains(t, text, "https://dash.example.com/storage?vol=data&x=1")
}

func TestBuildBodies_MinimalRequest(t *testing.T) {
	req := notify.Request{Name: "Ping"}

	assert.Equal(t, "<h2>Ping</h2>", buildHTMLBody(req))
	assert.Equal(t, "Ping", buildTextBody(req))
}

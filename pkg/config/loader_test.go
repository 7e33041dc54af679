package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Endpoint string        `env:"TEST_NOTIFY_ENDPOINT,required"`
	Timeout  time.Duration `env:"TEST_NOTIFY_TIMEOUT" envDefault:"10s"`
	Retries  int           `env:"TEST_NOTIFY_RETRIES" envDefault:"3"`
}

func TestLoad(t *testing.T) {
	t.Setenv("TEST_NOTIFY_ENDPOINT", "https://example.com/hook")
	t.Setenv("TEST_NOTIFY_TIMEOUT", "2s")

	var cfg testConfig
	require.NoError(t, Load(&cfg))
	assert.Equal(t, "https://example.com/hook", cfg.Endpoint)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
	assert.Equal(t, 3, cfg.Retries, "default applies when env var is unset")
}

func TestLoad_MissingRequired(t *testing.T) {
	var cfg testConfig
	err := Load(&cfg)
	assert.ErrorIs(t, err, ErrParsingConfig)
}

func TestLoad_NilPointer(t *testing.T) {
	err := Load[testConfig](nil)
	assert.ErrorIs(t, err, ErrNilPointer)
}

func TestMustLoad_PanicsOnError(t *testing.T) {
	assert.Panics(t, func() {
		var cfg testConfig
		MustLoad(&cfg)
	})
}

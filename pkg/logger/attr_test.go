package logger

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	err := errors.New("boom")
	attr := Error(err)
	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	assert.Equal(t, slog.Attr{}, Error(nil))
}

func TestIdentifierAttrs(t *testing.T) {
	assert.Equal(t, slog.String("user_id", "u1"), UserID("u1"))
	assert.Equal(t, slog.String("service_id", "email"), ServiceID("email"))
	assert.Equal(t, slog.Uint64("notification_id", 7), NotificationID(7))
	assert.Equal(t, slog.String("component", "dispatcher"), Component("dispatcher"))
}

package webhook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignPayload(t *testing.T) {
	payload := []byte(`{"name":"Disk full"}`)

	headers, err := SignPayload("secret-key", payload)
	require.NoError(t, err)
	assert.NotEmpty(t, headers.Signature)
	assert.NotEmpty(t, headers.ID)
	assert.NotZero(t, headers.Timestamp)

	m := headers.Headers()
	assert.Equal(t, headers.Signature, m["X-Webhook-Signature"])
	assert.Contains(t, m, "X-Webhook-Timestamp")
	assert.Contains(t, m, "X-Webhook-ID")
}

func TestSignPayload_Invalid(t *testing.T) {
	_, err := SignPayload("", []byte("payload"))
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = SignPayload("secret", nil)
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestVerifySignature(t *testing.T) {
	payload := []byte(`{"name":"Disk full"}`)
	headers, err := SignPayload("secret-key", payload)
	require.NoError(t, err)

	assert.True(t, VerifySignature("secret-key", payload, headers.Timestamp, headers.Signature))

	// Wrong secret, tampered payload, wrong timestamp: all rejected.
	assert.False(t, VerifySignature("other-key", payload, headers.Timestamp, headers.Signature))
	assert.False(t, VerifySignature("secret-key", []byte(`{"name":"tampered"}`), headers.Timestamp, headers.Signature))
	assert.False(t, VerifySignature("secret-key", payload, headers.Timestamp+1, headers.Signature))
	assert.False(t, VerifySignature("secret-key", payload, headers.Timestamp, ""))
}

package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notifykit/notifykit/pkg/notify"
)

func TestNewService_ValidatesURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "https", url: "https://example.com/hooks/notify"},
		{name: "http", url: "http://localhost:8080/hook"},
		{name: "file scheme", url: "file:///etc/passwd", wantErr: true},
		{name: "missing host", url: "https://", wantErr: true},
		{name: "garbage", url: "://nope", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewService(Config{EndpointURL: tt.url})
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidURL)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestService_Send(t *testing.T) {
	var received payload
	var gotHeaders http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	svc, err := NewService(Config{EndpointURL: srv.URL, Secret: "hook-secret"})
	require.NoError(t, err)

	err = svc.Send(context.Background(), notify.Request{
		Name:        "Disk full",
		Description: "Volume /data is at 98%",
		Level:       notify.LevelWarning,
		UserIDs:     []string{"u1", "u2"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Disk full", received.Name)
	assert.Equal(t, notify.LevelWarning, received.Level)
	assert.Equal(t, []string{"u1", "u2"}, received.UserIDs)
	assert.False(t, received.SentAt.IsZero())

	assert.Equal(t, "application/json", gotHeaders.Get("Content-Type"))
	assert.NotEmpty(t, gotHeaders.Get("X-Webhook-Signature"))
	assert.NotEmpty(t, gotHeaders.Get("X-Webhook-ID"))

	ts, err := strconv.ParseInt(gotHeaders.Get("X-Webhook-Timestamp"), 10, 64)
	require.NoError(t, err)
	assert.InDelta(t, time.Now().Unix(), ts, 5)
}

func TestService_Send_Unsigned(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("X-Webhook-Signature"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	svc, err := NewService(Config{EndpointURL: srv.URL})
	require.NoError(t, err)

	err = svc.Send(context.Background(), notify.Request{Name: "n", UserIDs: []string{"u1"}})
	assert.NoError(t, err)
}

func TestService_Send_EndpointFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	svc, err := NewService(Config{EndpointURL: srv.URL})
	require.NoError(t, err)

	err = svc.Send(context.Background(), notify.Request{Name: "n", UserIDs: []string{"u1"}})
	assert.ErrorIs(t, err, ErrWebhookDeliveryFailed)
	assert.Contains(t, err.Error(), "502")
}

func TestService_Send_ContextCancelled(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	svc, err := NewService(Config{EndpointURL: srv.URL})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err = svc.Send(ctx, notify.Request{Name: "n", UserIDs: []string{"u1"}})
	assert.ErrorIs(t, err, ErrWebhookDeliveryFailed)
}

func TestService_Identity(t *testing.T) {
	svc, err := NewService(Config{EndpointURL: "https://example.com/hook"})
	require.NoError(t, err)
	assert.Equal(t, "webhook", svc.ID())
	assert.Equal(t, "Webhook", svc.DisplayName())
}

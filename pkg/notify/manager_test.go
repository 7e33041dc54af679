package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_EndToEnd(t *testing.T) {
	registry := NewRegistry(
		Type{ID: "task-failed", DisplayName: "Scheduled Task Failed"},
	)
	m := NewManager(registry, NewMemoryStorage(), StaticDirectory{"admin-1"})
	m.RegisterService(&stubService{id: "email"})

	assert.Len(t, m.Types(), 1)
	require.Len(t, m.ServiceDescriptors(), 1)
	assert.Equal(t, "email", m.ServiceDescriptors()[0].ID)

	ctx := context.Background()

	result, err := m.Send(ctx, Request{
		Name:    "Nightly backup failed",
		Level:   LevelError,
		UserIDs: []string{"user-1"},
	})
	require.NoError(t, err)
	require.Len(t, result.Recipients["user-1"], 1)

	_, err = m.BroadcastToAdmins(ctx, "Restart required", "", "", LevelNormal)
	require.NoError(t, err)

	adminList, err := m.List(ctx, "admin-1", ListOptions{})
	require.NoError(t, err)
	require.Len(t, adminList, 1)

	userList, err := m.List(ctx, "user-1", ListOptions{})
	require.NoError(t, err)
	require.Len(t, userList, 1)

	count, err := m.SetRead(ctx, "user-1", []uint64{userList[0].ID}, true)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	sum, err := m.Summary(ctx, "user-1")
	require.NoError(t, err)
	assert.Zero(t, sum.UnreadCount)
}

package notify

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namedService struct {
	id   string
	name string
}

func (s *namedService) ID() string          { return s.id }
func (s *namedService) DisplayName() string { return s.name }
func (s *namedService) Send(ctx context.Context, req Request) error {
	return nil
}

func TestRegistry_Types(t *testing.T) {
	types := []Type{
		{ID: "task-failed", DisplayName: "Scheduled Task Failed"},
		{ID: "server-restart", DisplayName: "Server Restart Required"},
	}
	r := NewRegistry(types...)

	got := r.Types()
	assert.Equal(t, types, got)

	// Mutating the returned slice must not affect the catalog.
	got[0].ID = "mutated"
	assert.Equal(t, "task-failed", r.Types()[0].ID)
}

func TestRegistry_RegisterService_Order(t *testing.T) {
	r := NewRegistry()
	r.RegisterService(&namedService{id: "email", name: "Email"})
	r.RegisterService(&namedService{id: "webhook", name: "Webhook"})
	r.RegisterService(&namedService{id: "sms", name: "SMS"})

	descriptors := r.ServiceDescriptors()
	require.Len(t, descriptors, 3)
	assert.Equal(t, "email", descriptors[0].ID)
	assert.Equal(t, "webhook", descriptors[1].ID)
	assert.Equal(t, "sms", descriptors[2].ID)
}

func TestRegistry_RegisterService_ReplaceKeepsPosition(t *testing.T) {
	r := NewRegistry()
	r.RegisterService(&namedService{id: "email", name: "Email"})
	r.RegisterService(&namedService{id: "webhook", name: "Webhook"})

	// Hot-reload: same id, new configuration.
	r.RegisterService(&namedService{id: "email", name: "Email (reloaded)"})

	descriptors := r.ServiceDescriptors()
	require.Len(t, descriptors, 2)
	assert.Equal(t, Type{ID: "email", DisplayName: "Email (reloaded)"}, descriptors[0])
	assert.Equal(t, "webhook", descriptors[1].ID)
}

func TestRegistry_ServicesSnapshot(t *testing.T) {
	r := NewRegistry()
	r.RegisterService(&namedService{id: "email", name: "Email"})

	snapshot := r.Services()
	r.RegisterService(&namedService{id: "webhook", name: "Webhook"})

	assert.Len(t, snapshot, 1)
	assert.Len(t, r.Services(), 2)
}

func TestRegistry_ConcurrentRegistration(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r.RegisterService(&namedService{id: fmt.Sprintf("svc-%d", i%10), name: "Service"})
			_ = r.Services()
			_ = r.ServiceDescriptors()
		}(i)
	}
	wg.Wait()

	assert.Len(t, r.Services(), 10)
}

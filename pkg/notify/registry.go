package notify

import (
	"context"
	"sync"
)

// Service is the capability contract every delivery backend satisfies.
// A backend reports delivery failure through the returned error; the
// dispatcher converts it into a DeliveryOutcome instead of escalating it.
type Service interface {
	// ID returns the stable identifier of the backend.
	ID() string

	// DisplayName returns the human-readable backend name.
	DisplayName() string

	// Send delivers one notification request. Implementations must honor
	// context cancellation; the dispatcher additionally bounds each call
	// with its own timeout.
	Send(ctx context.Context, req Request) error
}

// Registry holds the static notification type catalog and the ordered set
// of registered delivery services. The catalog is fixed at construction;
// services are normally registered during process setup, but registration
// stays safe if invoked later.
type Registry struct {
	mu       sync.RWMutex
	types    []Type
	services []Service
	index    map[string]int // service id -> position in services
}

// NewRegistry creates a registry with the given type catalog.
func NewRegistry(types ...Type) *Registry {
	r := &Registry{
		types: make([]Type, len(types)),
		index: make(map[string]int),
	}
	copy(r.types, types)
	return r
}

// Types returns the full type catalog in registration order.
func (r *Registry) Types() []Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Type, len(r.types))
	copy(out, r.types)
	return out
}

// RegisterService adds a delivery service. Registration is idempotent by
// service id: re-registering an id replaces the previous entry in place, so
// hot-reloading a backend's configuration keeps the iteration order stable.
func (r *Registry) RegisterService(svc Service) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i, ok := r.index[svc.ID()]; ok {
		r.services[i] = svc
		return
	}
	r.index[svc.ID()] = len(r.services)
	r.services = append(r.services, svc)
}

// Services returns a snapshot of the registered services in insertion order.
func (r *Registry) Services() []Service {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Service, len(r.services))
	copy(out, r.services)
	return out
}

// ServiceDescriptors returns the id/display-name pair of every registered
// service, in insertion order. This is the shape the listing API exposes.
func (r *Registry) ServiceDescriptors() []Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Type, len(r.services))
	for i, svc := range r.services {
		out[i] = Type{ID: svc.ID(), DisplayName: svc.DisplayName()}
	}
	return out
}

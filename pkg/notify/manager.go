package notify

import "context"

// Manager bundles the registry, storage, dispatcher, and admin broadcast
// into the single surface a transport layer adapts onto routes. It adds no
// behavior of its own; every method delegates to the owning component.
type Manager struct {
	registry   *Registry
	storage    Storage
	dispatcher *Dispatcher
	admins     *AdminNotifier
}

// NewManager wires the notification core together. Dispatcher options
// (logger, delivery timeout) are passed through.
func NewManager(registry *Registry, storage Storage, directory UserDirectory, opts ...DispatcherOption) *Manager {
	dispatcher := NewDispatcher(registry, storage, opts...)
	return &Manager{
		registry:   registry,
		storage:    storage,
		dispatcher: dispatcher,
		admins:     NewAdminNotifier(directory, dispatcher),
	}
}

// Types returns the static notification type catalog.
func (m *Manager) Types() []Type {
	return m.registry.Types()
}

// ServiceDescriptors returns the id/display-name pair of every registered
// delivery service.
func (m *Manager) ServiceDescriptors() []Type {
	return m.registry.ServiceDescriptors()
}

// RegisterService registers or hot-reloads a delivery backend.
func (m *Manager) RegisterService(svc Service) {
	m.registry.RegisterService(svc)
}

// Send dispatches one notification. See Dispatcher.Send.
func (m *Manager) Send(ctx context.Context, req Request) (*DispatchResult, error) {
	return m.dispatcher.Send(ctx, req)
}

// BroadcastToAdmins dispatches to every administrator account.
// See AdminNotifier.Broadcast.
func (m *Manager) BroadcastToAdmins(ctx context.Context, name, description, url string, level Level) (*DispatchResult, error) {
	return m.admins.Broadcast(ctx, name, description, url, level)
}

// List returns a user's notifications, filtered and paginated.
func (m *Manager) List(ctx context.Context, userID string, opts ListOptions) ([]UserNotification, error) {
	return m.storage.List(ctx, userID, opts)
}

// SetRead updates the read state of a user's notifications.
func (m *Manager) SetRead(ctx context.Context, userID string, ids []uint64, read bool) (int, error) {
	return m.storage.SetRead(ctx, userID, ids, read)
}

// Summary returns the unread aggregate for a user.
func (m *Manager) Summary(ctx context.Context, userID string) (Summary, error) {
	return m.storage.Summary(ctx, userID)
}

// Storage returns the underlying notification storage.
func (m *Manager) Storage() Storage {
	return m.storage
}

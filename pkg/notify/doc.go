// Package notify provides a transport-agnostic notification dispatch engine
// with a per-user notification store and pluggable delivery backends.
//
// The package is designed as a utility library: the HTTP layer, the user
// identity source, and the concrete delivery transports all live outside
// and plug in through small interfaces.
//
// # Architecture
//
// The package is built from four parts:
//
//   - Registry: static catalog of notification types plus the ordered set
//     of registered delivery services
//   - Storage: per-user notification records with filtering, pagination,
//     read-state updates, and an unread summary
//   - Dispatcher: fans one request out to every registered service
//     concurrently and persists one record per recipient
//   - AdminNotifier: broadcasts to all administrator accounts resolved
//     from an external user directory
//
// # Basic Usage
//
//	registry := notify.NewRegistry(
//	    notify.Type{ID: "task-failed", DisplayName: "Scheduled Task Failed"},
//	)
//	registry.RegisterService(emailService)
//	registry.RegisterService(webhookService)
//
//	storage := notify.NewMemoryStorage()
//	dispatcher := notify.NewDispatcher(registry, storage)
//
//	result, err := dispatcher.Send(ctx, notify.Request{
//	    Name:    "Disk full",
//	    Level:   notify.LevelWarning,
//	    UserIDs: []string{"user-1", "user-2"},
//	})
//
// A record is persisted for every recipient before delivery outcomes are
// considered, so users see their notifications even when every backend is
// down. Per-service failures come back as data in result.Deliveries and
// never fail the call.
//
// # Custom Backends
//
// A delivery backend implements the Service interface:
//
//	type SMSService struct{ client *sms.Client }
//
//	func (s *SMSService) ID() string          { return "sms" }
//	func (s *SMSService) DisplayName() string { return "SMS" }
//	func (s *SMSService) Send(ctx context.Context, req notify.Request) error {
//	    return s.client.Send(ctx, req.Name)
//	}
//
// # Storage Implementations
//
// MemoryStorage is included for development and testing. Database-backed
// implementations of the Storage interface live in the pg and redis
// packages.
package notify

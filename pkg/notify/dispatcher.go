package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/notifykit/notifykit/pkg/logger"
)

const defaultDeliveryTimeout = 30 * time.Second

// Dispatcher fans one logical notification out to every registered delivery
// service and writes a persisted record per recipient. Persistence happens
// regardless of delivery outcome, so a user always sees notifications
// addressed to them even under total backend outage.
type Dispatcher struct {
	registry        *Registry
	storage         Storage
	deliveryTimeout time.Duration
	logger          *slog.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithLogger sets the logger for the Dispatcher.
func WithLogger(l *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithDeliveryTimeout bounds each per-service delivery call. A service that
// exceeds the bound is recorded as a failed outcome with a timeout reason.
func WithDeliveryTimeout(timeout time.Duration) DispatcherOption {
	return func(d *Dispatcher) {
		if timeout > 0 {
			d.deliveryTimeout = timeout
		}
	}
}

// NewDispatcher creates a dispatcher on top of a registry and a storage.
func NewDispatcher(registry *Registry, storage Storage, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		registry:        registry,
		storage:         storage,
		deliveryTimeout: defaultDeliveryTimeout,
		logger:          slog.Default().With(logger.Component("dispatcher")),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Send validates the request, persists one record per recipient, and
// delivers through every registered service concurrently.
//
// Delivery failures are reported as data in the result, never as an error.
// Send returns an error only on validation failure (before any side effect)
// or on persistence failure; in the latter case the returned *PersistError
// names the recipients whose record could not be written, the partial result
// still carries the records that were written, and nothing is rolled back.
func (d *Dispatcher) Send(ctx context.Context, req Request) (*DispatchResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Level == 0 {
		req.Level = LevelNormal
	}

	dispatchID := uuid.New().String()
	createdAt := time.Now().UTC()
	entry := Entry{
		Name:        req.Name,
		Description: req.Description,
		URL:         req.URL,
		Level:       req.Level,
		CreatedAt:   createdAt,
	}

	result := &DispatchResult{
		Recipients: make(map[string][]UserNotification),
	}

	var (
		failedUsers []string
		failedErrs  []error
	)
	for _, userID := range req.recipients() {
		n, err := d.storage.Append(ctx, userID, entry)
		if err != nil {
			failedUsers = append(failedUsers, userID)
			failedErrs = append(failedErrs, fmt.Errorf("user %s: %w", userID, err))
			d.logger.LogAttrs(ctx, slog.LevelError, "Failed to persist notification record",
				slog.String("dispatch_id", dispatchID),
				logger.UserID(userID),
				logger.Error(err),
			)
			continue
		}
		result.Recipients[userID] = append(result.Recipients[userID], n)
		d.logger.LogAttrs(ctx, slog.LevelDebug, "Notification record persisted",
			slog.String("dispatch_id", dispatchID),
			logger.UserID(userID),
			logger.NotificationID(n.ID),
		)
	}

	// Total persistence failure: the notification never happened for
	// anyone, so delivering it would announce a record nobody can see.
	if len(result.Recipients) > 0 {
		result.Deliveries = d.deliver(ctx, dispatchID, req)
	}

	if len(failedUsers) > 0 {
		return result, newPersistError(failedUsers, failedErrs)
	}
	return result, nil
}

// deliver fans out to every registered service and collects outcomes.
// Caller cancellation abandons in-flight calls; those services are omitted
// from the returned slice.
func (d *Dispatcher) deliver(ctx context.Context, dispatchID string, req Request) []DeliveryOutcome {
	services := d.registry.Services()
	if len(services) == 0 {
		return nil
	}

	// Buffered to capacity so abandoned workers never block on send.
	results := make(chan DeliveryOutcome, len(services))

	for _, svc := range services {
		go func(svc Service) {
			results <- d.callService(ctx, dispatchID, svc, req)
		}(svc)
	}

	outcomes := make([]DeliveryOutcome, 0, len(services))
	for range services {
		select {
		case outcome := <-results:
			outcomes = append(outcomes, outcome)
		case <-ctx.Done():
			return outcomes
		}
	}
	return outcomes
}

// callService invokes one backend under the delivery timeout. The actual
// Send runs in its own goroutine: a backend that ignores its context must
// not hold the aggregate past the bound.
func (d *Dispatcher) callService(ctx context.Context, dispatchID string, svc Service, req Request) DeliveryOutcome {
	callCtx, cancel := context.WithTimeout(ctx, d.deliveryTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- svc.Send(callCtx, req)
	}()

	var err error
	select {
	case err = <-done:
	case <-callCtx.Done():
		if ctx.Err() != nil {
			err = fmt.Errorf("delivery abandoned: %w", ctx.Err())
		} else {
			err = fmt.Errorf("delivery timed out after %s", d.deliveryTimeout)
		}
	}

	outcome := DeliveryOutcome{ServiceID: svc.ID(), Succeeded: err == nil}
	if err != nil {
		outcome.Error = err.Error()
		d.logger.LogAttrs(ctx, slog.LevelWarn, "Notification delivery failed",
			slog.String("dispatch_id", dispatchID),
			logger.ServiceID(svc.ID()),
			logger.Error(err),
		)
	}
	return outcome
}

package notify

import (
	"context"
	"fmt"
)

// UserDirectory resolves accounts from an external identity source.
type UserDirectory interface {
	// ListAdministrators returns the ids of all administrator accounts.
	ListAdministrators(ctx context.Context) ([]string, error)
}

// StaticDirectory is a fixed administrator list. Useful for development
// and testing, or for deployments where the admin set lives in config.
type StaticDirectory []string

func (d StaticDirectory) ListAdministrators(ctx context.Context) ([]string, error) {
	return d, nil
}

// AdminNotifier broadcasts a notification to every administrator account
// resolved from the user directory.
type AdminNotifier struct {
	directory  UserDirectory
	dispatcher *Dispatcher
}

// NewAdminNotifier creates an admin broadcast helper on top of a dispatcher.
func NewAdminNotifier(directory UserDirectory, dispatcher *Dispatcher) *AdminNotifier {
	return &AdminNotifier{
		directory:  directory,
		dispatcher: dispatcher,
	}
}

// Broadcast resolves the administrator set and forwards the request to the
// dispatcher. An empty administrator set fails with ErrNoAdministrators
// before any record is written: it almost always means the directory is
// misconfigured rather than that the caller made a mistake.
func (a *AdminNotifier) Broadcast(ctx context.Context, name, description, url string, level Level) (*DispatchResult, error) {
	admins, err := a.directory.ListAdministrators(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve administrators: %w", err)
	}
	if len(admins) == 0 {
		return nil, ErrNoAdministrators
	}

	return a.dispatcher.Send(ctx, Request{
		Name:        name,
		Description: description,
		URL:         url,
		Level:       level,
		UserIDs:     admins,
	})
}

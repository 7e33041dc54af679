package notify

import (
	"context"
	"time"
)

// Entry holds the immutable fields of a record to append. CreatedAt is
// stamped by the dispatcher so all recipients of one request share it.
type Entry struct {
	Name        string
	Description string
	URL         string
	Level       Level
	CreatedAt   time.Time
}

// ListOptions filters and paginates a user's notification list.
type ListOptions struct {
	// IsRead filters by read state when non-nil.
	IsRead *bool

	// StartIndex drops that many leading records after filtering.
	StartIndex int

	// Limit caps the result length. A nil Limit means unbounded; an
	// explicit zero yields an empty result.
	Limit *int
}

// Storage persists per-user notification records.
//
// Implementations must serialize Append/SetRead/List/Summary per user so ids
// stay monotonic and read-state updates are never lost; operations on
// different users may run fully in parallel. Summary must observe a
// consistent snapshot: it reflects every Append and SetRead that completed
// before the call.
type Storage interface {
	// Append stores a new record for the user, assigning the next id in
	// that user's collection atomically. It fails only on genuine
	// persistence failure, wrapped with ErrStorageFailure.
	Append(ctx context.Context, userID string, e Entry) (UserNotification, error)

	// List returns the user's records ordered by creation time ascending,
	// ties broken by id ascending. An unknown user yields an empty slice,
	// not an error.
	List(ctx context.Context, userID string, opts ListOptions) ([]UserNotification, error)

	// SetRead sets the read state of the given records and returns how
	// many of the ids matched an existing record. Unknown ids are skipped
	// silently, and repeating the call with the same arguments changes
	// nothing and reports the same count.
	SetRead(ctx context.Context, userID string, ids []uint64, read bool) (int, error)

	// Summary computes the unread aggregate for the user.
	Summary(ctx context.Context, userID string) (Summary, error)
}

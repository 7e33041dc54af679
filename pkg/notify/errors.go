package notify

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest is returned when a request fails validation
	// (empty name or empty recipient set) before any side effect.
	ErrInvalidRequest = errors.New("invalid notification request")

	// ErrNoAdministrators is returned by the admin broadcast when the user
	// directory resolves to an empty administrator set. It is distinct from
	// ErrInvalidRequest because it usually signals a misconfigured directory
	// rather than a caller mistake.
	ErrNoAdministrators = errors.New("no administrator accounts found")

	// ErrStorageFailure marks persistence substrate failures.
	ErrStorageFailure = errors.New("notification storage failure")

	// ErrUnknownLevel is returned when encoding or decoding an
	// out-of-range level value.
	ErrUnknownLevel = errors.New("unknown notification level")

	// ErrDuplicateTypeID is returned by the catalog loader when two
	// entries share an id.
	ErrDuplicateTypeID = errors.New("duplicate notification type id")
)

// PersistError reports the recipients whose record could not be written.
// Records for the remaining recipients were persisted and stay persisted;
// there is no rollback. Callers use FailedUserIDs for compensation.
type PersistError struct {
	FailedUserIDs []string
	err           error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("failed to persist notification for %d recipient(s): %v", len(e.FailedUserIDs), e.err)
}

func (e *PersistError) Unwrap() error {
	return e.err
}

func newPersistError(failed []string, errs []error) *PersistError {
	return &PersistError{
		FailedUserIDs: failed,
		err:           errors.Join(append([]error{ErrStorageFailure}, errs...)...),
	}
}

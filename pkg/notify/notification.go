package notify

import (
	"fmt"
	"time"
)

// Level represents the severity of a notification. Levels are ordered:
// a higher value is more severe, which is what summary aggregation relies on.
// The zero value is the unset state; Dispatcher.Send resolves an unset
// request level to LevelNormal before any record is written.
type Level int

const (
	LevelLow Level = iota + 1
	LevelNormal
	LevelWarning
	LevelError
)

// String returns the lowercase name of the level.
func (l Level) String() string {
	switch l {
	case LevelLow:
		return "low"
	case LevelNormal:
		return "normal"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// MarshalText encodes the level as its lowercase name so JSON payloads
// carry readable values instead of raw integers.
func (l Level) MarshalText() ([]byte, error) {
	switch l {
	case LevelLow, LevelNormal, LevelWarning, LevelError:
		return []byte(l.String()), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownLevel, int(l))
}

// UnmarshalText decodes a lowercase level name.
func (l *Level) UnmarshalText(text []byte) error {
	switch string(text) {
	case "low":
		*l = LevelLow
	case "normal":
		*l = LevelNormal
	case "warning":
		*l = LevelWarning
	case "error":
		*l = LevelError
	default:
		return fmt.Errorf("%w: %q", ErrUnknownLevel, string(text))
	}
	return nil
}

// Type is an id/display-name descriptor. It names an entry of the static
// notification type catalog, and doubles as the listing shape for registered
// delivery services.
type Type struct {
	ID          string `json:"id" yaml:"id"`
	DisplayName string `json:"display_name" yaml:"display_name"`
}

// UserNotification is the persisted per-recipient record. IDs are assigned
// by the storage in creation order and are unique within a single user's
// collection. Every field except IsRead is immutable after creation.
type UserNotification struct {
	ID          uint64    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	URL         string    `json:"url,omitempty"`
	Level       Level     `json:"level"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}

// Summary is the derived unread-state aggregate for one user.
// MaxUnreadLevel is nil when the user has no unread notifications.
type Summary struct {
	UnreadCount    int    `json:"unread_count"`
	MaxUnreadLevel *Level `json:"max_unread_level,omitempty"`
}

// DeliveryOutcome is the per-service result of one dispatch.
// Error is empty exactly when Succeeded is true.
type DeliveryOutcome struct {
	ServiceID string `json:"service_id"`
	Succeeded bool   `json:"succeeded"`
	Error     string `json:"error,omitempty"`
}

// DispatchResult aggregates everything one Send produced: the records
// persisted per recipient (normally a single record each) and the outcome
// of every delivery backend that completed.
type DispatchResult struct {
	Recipients map[string][]UserNotification `json:"recipients"`
	Deliveries []DeliveryOutcome             `json:"deliveries"`
}

package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// UserID records the user identifier under the key "user_id".
func UserID(id string) slog.Attr {
	return slog.String("user_id", id)
}

// ServiceID records a delivery backend identifier under the key "service_id".
func ServiceID(id string) slog.Attr {
	return slog.String("service_id", id)
}

// NotificationID records a per-user record id under the key "notification_id".
func NotificationID(id uint64) slog.Attr {
	return slog.Uint64("notification_id", id)
}

// Component records the emitting component under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Package logger provides a small slog factory plus typed attribute helpers
// shared by the notifykit packages, so structured log keys stay consistent
// across the module.
package logger
